package chart

// UpdateMode selects the transition a sink uses when redrawing.
type UpdateMode string

const (
	ModeDefault UpdateMode = "default"
	// ModeNone redraws instantly without replaying an animation.
	ModeNone   UpdateMode = "none"
	ModeActive UpdateMode = "active"
	ModeHide   UpdateMode = "hide"
	ModeShow   UpdateMode = "show"
	ModeReset  UpdateMode = "reset"
	ModeResize UpdateMode = "resize"
)
