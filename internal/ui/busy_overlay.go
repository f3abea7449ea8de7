package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"
)

// busyBlocker is a full-window widget that shows a dimmed backdrop with a
// spinner and swallows taps so the keypad cannot be used underneath
type busyBlocker struct {
	widget.BaseWidget
	content *fyne.Container
}

func newBusyBlocker(content *fyne.Container) *busyBlocker {
	b := &busyBlocker{content: content}
	b.ExtendBaseWidget(b)
	return b
}

func (b *busyBlocker) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.content)
}

// Swallow taps to block interactions underneath
func (b *busyBlocker) Tapped(_ *fyne.PointEvent)          {}
func (b *busyBlocker) TappedSecondary(_ *fyne.PointEvent) {}

// BusyOverlay is shown while a PIN check runs
type BusyOverlay struct {
	blocker *busyBlocker
	spinner *widget.ProgressBarInfinite
	label   *widget.Label
	root    *fyne.Container
	visible bool
}

func NewBusyOverlay() *BusyOverlay {
	spinner := widget.NewProgressBarInfinite()
	spinner.Stop()

	lbl := widget.NewLabel(lang.L("Checking PIN…"))
	lbl.Alignment = fyne.TextAlignCenter
	lbl.Importance = widget.HighImportance

	// Semi-transparent backdrop
	bg := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: 96})

	panel := container.NewVBox(spinner, lbl)
	centered := container.NewCenter(container.NewPadded(panel))
	blk := newBusyBlocker(container.NewStack(bg, centered))

	// Root container holds the blocker (easy to Hide/Show)
	root := container.NewStack(blk)
	root.Hide()

	return &BusyOverlay{
		blocker: blk,
		spinner: spinner,
		label:   lbl,
		root:    root,
	}
}

func (bo *BusyOverlay) GetContainer() *fyne.Container { return bo.root }

func (bo *BusyOverlay) Show(text string) {
	if text != "" {
		bo.label.SetText(text)
	}
	if bo.visible {
		return
	}
	bo.visible = true
	bo.spinner.Start()
	bo.root.Show()
}

func (bo *BusyOverlay) Hide() {
	if !bo.visible {
		return
	}
	bo.visible = false
	bo.spinner.Stop()
	bo.root.Hide()
}

func (bo *BusyOverlay) IsVisible() bool { return bo.visible }

func (bo *BusyOverlay) Text() string { return bo.label.Text }
