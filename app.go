package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/lang"

	"pinpad/internal/config"
	"pinpad/internal/constants"
	"pinpad/internal/haptic"
	"pinpad/internal/idle"
	"pinpad/internal/jobs"
	"pinpad/internal/keymanager"
	"pinpad/internal/pinentry"
	customtheme "pinpad/internal/theme"
	"pinpad/internal/ui"
	"pinpad/internal/unlock"
	"pinpad/internal/watcher"
)

// PinPad wires the entry controller to the window, storage and workers
type PinPad struct {
	app        fyne.App
	window     fyne.Window
	env        *environment
	reason     pinentry.PromptReason
	keyManager *keymanager.KeyManager
	router     *pinentry.Router
	controller *pinentry.Controller
	view       *ui.PinPadView
	unlocked   *ui.UnlockedDialog
	session    *unlock.Session
	jobs       *jobs.Manager
	haptic     *haptic.Switch
	idle       *idle.Timer
	cfgWatcher *watcher.ConfigWatcher
}

func runPad() error {
	env, err := openEnvironment()
	if err != nil {
		return err
	}

	a := app.NewWithID(constants.ApplicationID)
	if err := ui.LoadTranslations(); err != nil {
		debugPrint("%v", err)
	}
	applyTheme(a, env.config)

	p := NewPinPad(a, env, pinentry.ParsePromptReason(reasonFlag))
	p.Start()
	a.Run()
	return nil
}

// NewPinPad builds the window and its collaborators without starting them
func NewPinPad(a fyne.App, env *environment, reason pinentry.PromptReason) *PinPad {
	p := &PinPad{
		app:        a,
		env:        env,
		reason:     reason,
		keyManager: keymanager.NewKeyManager(debugPrint),
	}

	p.haptic = haptic.NewSwitch(nil)
	if err := p.haptic.Apply(env.config.Haptic.Enabled, hapticSettings(env.config)); err != nil {
		debugPrint("Haptic feedback disabled: %v", err)
	}
	p.router = pinentry.NewRouter(p.haptic)

	p.view = ui.NewPinPadView(p.router, p.keyManager, env.config.LongPressDelay(), debugPrint)
	p.idle = idle.NewTimer(env.config.IdleTimeout(), p.onIdle, fyne.Do)
	p.controller = pinentry.NewController(p.view.Field(), nil,
		pinentry.WithActivityListener(p.idle.Touch),
		pinentry.WithChangeListener(p.view.Refresh),
		pinentry.WithDebug(debugPrint),
	)
	p.view.SetEntry(p.controller)

	jobs.SetDebug(debugPrint)
	p.jobs = jobs.NewManager(constants.VerifyHistoryMax)
	p.session = unlock.NewSession(env.checker, p.jobs, env.tracker, p.controller, unlock.Callbacks{
		OnUnlocked: p.onUnlocked,
		OnStatus:   p.view.SetStatus,
		OnBusy:     p.view.SetBusy,
	}, fyne.Do, debugPrint)
	p.controller.SetVerifier(p.session)

	p.keyManager.PushHandler(keymanager.NewGlobalKeyHandler(p.controller, debugPrint))
	p.keyManager.PushHandler(keymanager.NewPinPadKeyHandler(p.router, p.controller, debugPrint))
	p.unlocked = ui.NewUnlockedDialog(p.keyManager, debugPrint)

	p.cfgWatcher = watcher.NewConfigWatcher(env.manager, p.applyConfig, fyne.Do, debugPrint)

	p.window = a.NewWindow(p.controller.Title())
	p.window.SetContent(p.view.Content())
	p.window.Resize(fyne.NewSize(float32(env.config.Window.Width), float32(env.config.Window.Height)))
	p.window.SetFixedSize(true)
	p.setupKeyboard()

	a.Lifecycle().SetOnEnteredForeground(p.resume)
	a.Lifecycle().SetOnStopped(p.shutdown)
	return p
}

// setupKeyboard routes canvas level key events to the KeyManager so keys
// still work when the field has lost focus
func (p *PinPad) setupKeyboard() {
	if dc, ok := p.window.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			p.keyManager.HandleKeyDown(ev)
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			p.keyManager.HandleKeyUp(ev)
		})
	}
	p.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		p.keyManager.HandleTypedKey(ev)
	})
	p.window.Canvas().SetOnTypedRune(func(r rune) {
		p.keyManager.HandleTypedRune(r)
	})
}

// Start shows the window and opens the entry unless a lockout is pending
func (p *PinPad) Start() {
	p.window.Show()

	if !p.session.Start() {
		p.controller.SetEnabled(true)
	}
	p.resume()
	p.idle.Start()

	if err := p.cfgWatcher.Start(); err != nil {
		debugPrint("Config watcher not started: %v", err)
	}

	enrolled, err := p.env.checker.Enrolled()
	switch {
	case err != nil:
		ui.ShowErrorDialog(p.window, err)
	case !enrolled:
		ui.ShowMessageDialog(p.window, lang.L("No PIN is set"), lang.L("Run \"pinpad set-pin\" to set a PIN."))
	}
}

func (p *PinPad) resume() {
	p.view.SetReason(p.controller.Resume(p.reason))
}

func (p *PinPad) onIdle() {
	debugPrint("Idle timeout, clearing entry")
	p.controller.ClearEntry()
}

func (p *PinPad) onUnlocked() {
	p.idle.Stop()
	p.unlocked.ShowDialog(p.window, p.relock, p.app.Quit)
}

func (p *PinPad) relock() {
	p.reason = pinentry.PromptReasonUserRequest
	p.controller.ResetState()
	p.resume()
	p.idle.Start()
}

func (p *PinPad) applyConfig(cfg *config.Config) {
	p.env.config = cfg
	p.session.SetPolicy(lockoutPolicy(cfg))
	p.idle.SetTimeout(cfg.IdleTimeout())
	p.view.SetLongPressDelay(cfg.LongPressDelay())
	if err := p.haptic.Apply(cfg.Haptic.Enabled, hapticSettings(cfg)); err != nil {
		debugPrint("Haptic feedback disabled: %v", err)
	}
	applyTheme(p.app, cfg)
}

func (p *PinPad) shutdown() {
	p.cfgWatcher.Stop()
	p.idle.Stop()
	p.session.Stop()
	p.jobs.Close()
	p.env.Close()
}

func applyTheme(a fyne.App, cfg *config.Config) {
	th, err := customtheme.NewCustomTheme(cfg.Theme)
	if err != nil {
		debugPrint("Custom font not loaded: %v", err)
	}
	a.Settings().SetTheme(th)
}

func hapticSettings(cfg *config.Config) haptic.Settings {
	return haptic.Settings{
		FrequencyHz: cfg.Haptic.FrequencyHz,
		Duration:    cfg.HapticDuration(),
		Volume:      cfg.Haptic.Volume,
	}
}
