package icon

// Icon identifies a UI symbol in the global registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Play
	Pause
	Volume
	Device
	Track
	Video
	Mark
)

// glyphs holds one rendering per variant, in the order of variants.
var glyphs = map[Icon][len(variants)]string{
	Fail:     {"💀", "", "Error", "(×﹏×)", "🟥"},
	Success:  {"🎉", "", "Success", "(ᵔ◡ᵔ)", "🟩"},
	Progress: {"👾", "", "...", "┐(￣ヘ￣;)┌", "🟦"},
	Play:     {"▶️", "", ">", "(ﾉ◕ヮ◕)ﾉ", "🟩"},
	Pause:    {"⏸️", "", "||", "(－_－) zzZ", "🟨"},
	Volume:   {"🔊", "", "vol", "♪(´▽｀)", "🟪"},
	Device:   {"🎧", "", "dev", "(◕‿◕)♫", "🟫"},
	Track:    {"🗣️", "", "trk", "( ´ ▽ ` )ﾉ", "🟧"},
	Video:    {"🎬", "", "video", "(⌐■_■)", "⬛"},
	Mark:     {"✅", "", "*", "(•̀ᴗ•́)و", "🟩"},
}
