package tui

type state int

const (
	loadingState state = iota
	errorState
	historyState
	inputState
	tracksState
	devicesState
	launchingState
	playbackState
)

// transient states are never returned to with back.
var transient = []state{loadingState, launchingState, errorState}
