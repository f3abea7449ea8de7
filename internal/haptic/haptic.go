package haptic

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"pinpad/internal/constants"
	apperrors "pinpad/internal/errors"
)

// Feedback produces the pulse fired on key touch and long-press delete.
type Feedback interface {
	Pulse()
}

// Noop is used when feedback is disabled or no audio device is available.
type Noop struct{}

func (Noop) Pulse() {}

// Settings shapes the click.
type Settings struct {
	FrequencyHz float64
	Duration    time.Duration
	Volume      float64 // base-2 gain, 0 unchanged
}

// Click is a short sine blip played on the default audio device; desktops
// have no vibration motor, so an audible tick stands in for it.
type Click struct {
	mu       sync.Mutex
	rate     beep.SampleRate
	settings Settings
}

var speakerOnce struct {
	sync.Once
	err error
}

// NewClick initializes the speaker (once per process) and returns a Click.
func NewClick(s Settings) (*Click, error) {
	rate := beep.SampleRate(constants.HapticSampleRate)
	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(rate, rate.N(20*time.Millisecond))
	})
	if speakerOnce.err != nil {
		return nil, apperrors.NewAudioError("init_speaker", "audio output unavailable", speakerOnce.err)
	}
	return &Click{rate: rate, settings: s}, nil
}

// SetSettings changes the click shape for later pulses.
func (c *Click) SetSettings(s Settings) {
	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()
}

// Pulse plays one click without blocking.
func (c *Click) Pulse() {
	c.mu.Lock()
	s := c.settings
	c.mu.Unlock()

	tone, err := generators.SineTone(c.rate, s.FrequencyHz)
	if err != nil {
		return
	}
	click := &effects.Volume{
		Streamer: beep.Take(c.rate.N(s.Duration), tone),
		Base:     2,
		Volume:   s.Volume,
	}
	speaker.Play(click)
}

// New returns a Click when enabled and audio works, otherwise Noop. The
// error explains why Noop was chosen and is informational.
func New(enabled bool, s Settings) (Feedback, error) {
	if !enabled {
		return Noop{}, nil
	}
	click, err := NewClick(s)
	if err != nil {
		return Noop{}, err
	}
	return click, nil
}

// Switch is the Feedback handed to the router. Apply swaps what it plays
// when the configuration changes.
type Switch struct {
	mu       sync.Mutex
	current  Feedback
	newClick func(Settings) (Feedback, error)
}

// NewSwitch returns a Switch starting with fb; nil means Noop.
func NewSwitch(fb Feedback) *Switch {
	if fb == nil {
		fb = Noop{}
	}
	return &Switch{
		current: fb,
		newClick: func(s Settings) (Feedback, error) {
			return New(true, s)
		},
	}
}

// Pulse forwards to the current feedback.
func (sw *Switch) Pulse() {
	sw.Current().Pulse()
}

// Current returns the feedback pulses go to.
func (sw *Switch) Current() Feedback {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.current
}

// Set replaces the current feedback; nil means Noop.
func (sw *Switch) Set(fb Feedback) {
	if fb == nil {
		fb = Noop{}
	}
	sw.mu.Lock()
	sw.current = fb
	sw.mu.Unlock()
}

// Apply turns feedback on or off. An existing Click is reshaped in place.
// When audio cannot be opened the switch falls back to Noop and the error
// is returned for logging.
func (sw *Switch) Apply(enabled bool, s Settings) error {
	if !enabled {
		sw.Set(Noop{})
		return nil
	}
	if click, ok := sw.Current().(*Click); ok {
		click.SetSettings(s)
		return nil
	}
	fb, err := sw.newClick(s)
	sw.Set(fb)
	return err
}
