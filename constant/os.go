package constant

// Values of runtime.GOOS that change how players are started and audio is routed.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)
