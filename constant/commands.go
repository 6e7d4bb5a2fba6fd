package constant

// Remote-control commands understood by the player's rc interface.
const (
	CommandPlay    = "play"
	CommandPause   = "pause"
	CommandSeek    = "seek"
	CommandVolume  = "volume"
	CommandQuit    = "quit"
	CommandGetTime = "get_time"
)

// StatusTemplate renders the one-line headless position report.
const StatusTemplate = `{{ .Elapsed }} / {{ .Duration }}{{ if .Paused }} (paused){{ end }}`
