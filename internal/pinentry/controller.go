package pinentry

import "fyne.io/fyne/v2/lang"

// Outcome is what a Verifier reports for a submitted entry.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeAccepted
	OutcomeRejected
	OutcomeLockedOut
)

// String returns a string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeLockedOut:
		return "locked-out"
	default:
		return "unknown"
	}
}

// Verifier checks a submitted entry. Implementations may call back into
// the Controller (SetEnabled, ClearEntry, ResetState) before returning.
type Verifier interface {
	Verify(entry []byte) Outcome
}

// FocusProvider is the focus capability of the entry surface.
type FocusProvider interface {
	RequestFocus() bool
	HasFocus() bool
}

// Controller owns the entry buffer and the enabled gate. It is confined to
// the UI goroutine and takes no locks.
type Controller struct {
	entry      []byte
	enabled    bool
	focus      FocusProvider
	verifier   Verifier
	onActivity func()
	onChange   func()
	debugPrint func(format string, args ...interface{})
}

// Option customizes a Controller.
type Option func(*Controller)

// WithActivityListener installs the callback fired on every accepted digit.
func WithActivityListener(fn func()) Option { return func(c *Controller) { c.onActivity = fn } }

// WithChangeListener installs the callback fired after the buffer or the
// enabled state changes.
func WithChangeListener(fn func()) Option { return func(c *Controller) { c.onChange = fn } }

// WithDebug installs a debug logger.
func WithDebug(fn func(format string, args ...interface{})) Option {
	return func(c *Controller) { c.debugPrint = fn }
}

// NewController creates a disabled Controller with an empty entry.
func NewController(focus FocusProvider, verifier Verifier, opts ...Option) *Controller {
	c := &Controller{
		entry:      make([]byte, 0, 16),
		focus:      focus,
		verifier:   verifier,
		debugPrint: func(string, ...interface{}) {},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetVerifier replaces the verifier. Used when the verifier itself needs
// the Controller to be constructed first.
func (c *Controller) SetVerifier(v Verifier) { c.verifier = v }

// SetEnabled opens or closes the entry gate. Enabling seeks focus;
// disabling leaves focus alone.
func (c *Controller) SetEnabled(enabled bool) {
	c.enabled = enabled
	c.debugPrint("Controller: enabled=%t", enabled)
	c.changed()

	if enabled && c.focus != nil && !c.focus.HasFocus() {
		ok := c.focus.RequestFocus()
		c.debugPrint("Controller: focus requested (granted: %t)", ok)
	}
}

// Enabled reports the gate state.
func (c *Controller) Enabled() bool { return c.enabled }

// Handle applies one logical action. Every end-user action is dropped
// silently while the gate is closed.
func (c *Controller) Handle(a Action) {
	if !c.enabled {
		c.debugPrint("Controller: dropped %s while disabled", a)
		return
	}

	switch a.Kind {
	case ActionDigit:
		if a.Digit < 0 || a.Digit > 9 {
			return
		}
		c.entry = append(c.entry, byte('0'+a.Digit))
		c.changed()
		if c.onActivity != nil {
			c.onActivity()
		}

	case ActionDelete:
		if len(c.entry) == 0 {
			return
		}
		c.entry[len(c.entry)-1] = 0
		c.entry = c.entry[:len(c.entry)-1]
		c.changed()

	case ActionSubmit:
		if c.verifier == nil {
			c.debugPrint("Controller: submit without verifier")
			return
		}
		outcome := c.verifier.Verify(c.Entered())
		c.debugPrint("Controller: submit of %d digits -> %s", len(c.entry), outcome)

	case ActionClearAll:
		c.clear()
	}
}

// ResetState reinitializes the machine when the view is shown again. It
// bypasses the gate.
func (c *Controller) ResetState() {
	c.clear()
	c.SetEnabled(true)
}

// ClearEntry empties the buffer regardless of the gate. Callers use it
// after a verification result.
func (c *Controller) ClearEntry() { c.clear() }

// Resume is called when the view is re-shown for reason. It seeks focus
// and returns the selector to display.
func (c *Controller) Resume(reason PromptReason) Selector {
	if c.focus != nil {
		c.focus.RequestFocus()
	}
	return PromptReasonSelector(reason)
}

// Entered returns a copy of the entry bytes, one per digit.
func (c *Controller) Entered() []byte {
	out := make([]byte, len(c.entry))
	copy(out, c.entry)
	return out
}

// Len returns the number of entered digits.
func (c *Controller) Len() int { return len(c.entry) }

// Title is the accessibility title of the entry surface.
func (c *Controller) Title() string { return lang.L("PIN unlock") }

func (c *Controller) clear() {
	if len(c.entry) == 0 {
		return
	}
	for i := range c.entry {
		c.entry[i] = 0
	}
	c.entry = c.entry[:0]
	c.changed()
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
