package pinentry

// Haptic requests a short tactile (or audible) pulse.
type Haptic interface {
	Pulse()
}

// TouchPhase is the phase of a pointer interaction on an entry button.
type TouchPhase int

const (
	TouchDown TouchPhase = iota
	TouchUp
	TouchCancel
)

// Router reduces raw key and touch input to logical actions.
type Router struct {
	haptic Haptic
}

// NewRouter creates a Router. A nil haptic disables pulses.
func NewRouter(haptic Haptic) *Router {
	return &Router{haptic: haptic}
}

// Route classifies a key event. The second result is false when the event
// is declined and must go to the fallback handler.
func (r *Router) Route(ev KeyEvent) (Action, bool) {
	// only key-down is routed so one press yields at most one action
	if ev.Action != KeyActionDown {
		return Action{}, false
	}

	switch {
	case IsConfirmKey(ev.Code):
		return Submit, true
	case ev.Code == KeyDelete:
		return Delete, true
	case ev.Code >= Key0 && ev.Code <= Key9:
		return Digit(int(ev.Code - Key0)), true
	case ev.Code >= KeyNumpad0 && ev.Code <= KeyNumpad9:
		return Digit(int(ev.Code - KeyNumpad0)), true
	}
	return Action{}, false
}

// Touch handles a pointer phase over a digit, OK or delete control.
// It never produces an action and ignores the enabled state.
func (r *Router) Touch(phase TouchPhase) {
	if phase == TouchDown {
		r.pulse()
	}
}

// LongPressDelete pulses and returns ClearAll. The controller still gates it.
func (r *Router) LongPressDelete() Action {
	r.pulse()
	return ClearAll
}

func (r *Router) pulse() {
	if r.haptic != nil {
		r.haptic.Pulse()
	}
}
