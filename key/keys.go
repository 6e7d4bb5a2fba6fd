// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys configure how player processes are launched and addressed.
const (
	PlayerExecutable   = "player.executable"
	PlayerStreams      = "player.streams"
	PlayerBasePort     = "player.base_port"
	PlayerHost         = "player.host"
	PlayerOutput       = "player.output"
	PlayerFullscreen   = "player.fullscreen"
	PlayerSettleDelay  = "player.settle_delay"
	PlayerPollInterval = "player.poll_interval"
	PlayerCommandDelay = "player.command_delay"
	PlayerReplyTimeout = "player.reply_timeout"
	PlayerDialTimeout  = "player.dial_timeout"
)

// Media Inspection
const (
	MediaFFprobe  = "media.ffprobe"
	MediaCacheTTL = "media.cache_ttl"
)

// Output Devices - these keys select how audio devices are enumerated.
const (
	DevicesSource = "devices.source"
	DevicesStatic = "devices.static"
)

// History Tracking - these keys configure the persistence of recent sessions.
const (
	HistorySave = "history.save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the interactive environment's controls.
const (
	TUISeekStep    = "tui.seek_step"
	TUIVolumeStep  = "tui.volume_step"
	TUIItemSpacing = "tui.item_spacing"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite      = "logs.write"
	LogsLevel      = "logs.level"
	LogsJson       = "logs.json"
	LogsMaxSize    = "logs.max_size"
	LogsMaxBackups = "logs.max_backups"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
