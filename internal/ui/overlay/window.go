package overlay

import (
	"strings"
	"time"

	"countdown/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Config defines overlay visuals.
type Config struct {
	Title   string
	Font    model.FontConfig
	Opacity float64
}

// Window is the borderless label stack pinned to a screen corner.
type Window struct {
	app            fyne.App
	window         fyne.Window
	config         Config
	column         *fyne.Container
	tiles          []*labelTile
	opacity        float64
	visible        bool
	suspended      bool
	resumeTimer    *time.Timer
	onDoubleTap    func()
	onSecondaryTap func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It stays hidden until Show.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	column := container.New(&columnLayout{})
	window.SetContent(column)

	return &Window{
		app:     app,
		window:  window,
		config:  config,
		column:  column,
		opacity: config.Opacity,
	}
}

// SetLabels replaces the displayed labels and resizes the window to fit them.
func (overlay *Window) SetLabels(labels []model.Label) {
	for _, tile := range overlay.tiles {
		tile.hideTip()
	}

	tiles := make([]*labelTile, 0, len(labels))
	objects := make([]fyne.CanvasObject, 0, len(labels))
	for _, label := range labels {
		tile := newLabelTile(label, overlay.config.Font, overlay.opacity)
		tile.onDoubleTap = overlay.handleDoubleTap
		tile.onSecondaryTap = overlay.handleSecondaryTap
		tiles = append(tiles, tile)
		objects = append(objects, tile)
	}
	overlay.tiles = tiles
	overlay.column.Objects = objects
	overlay.column.Refresh()

	if len(tiles) > 0 {
		overlay.window.Resize(overlay.column.MinSize())
	}
	overlay.applyVisibility()
}

// SetOpacity updates the opacity of every label.
func (overlay *Window) SetOpacity(opacity float64) {
	overlay.opacity = opacity
	for _, tile := range overlay.tiles {
		tile.setOpacity(opacity)
	}
	overlay.applyNativeOpacity(opacity)
}

// Opacity returns the current opacity.
func (overlay *Window) Opacity() float64 {
	return overlay.opacity
}

// Show makes the overlay visible.
func (overlay *Window) Show() {
	overlay.visible = true
	overlay.applyVisibility()
}

// Hide hides the overlay until Show.
func (overlay *Window) Hide() {
	overlay.visible = false
	overlay.applyVisibility()
}

// Toggle flips visibility and returns the new state.
func (overlay *Window) Toggle() bool {
	if overlay.visible {
		overlay.Hide()
	} else {
		overlay.Show()
	}
	return overlay.visible
}

// Visible reports whether the user wants the overlay shown.
func (overlay *Window) Visible() bool {
	return overlay.visible
}

// HideFor hides the overlay and brings it back after duration on the UI thread.
func (overlay *Window) HideFor(duration time.Duration) {
	if overlay.resumeTimer != nil {
		overlay.resumeTimer.Stop()
	}
	overlay.suspended = true
	overlay.applyVisibility()

	overlay.resumeTimer = time.AfterFunc(duration, func() {
		fyne.Do(overlay.resume)
	})
}

// SetOnDoubleTapped sets the handler for a double tap on any label.
func (overlay *Window) SetOnDoubleTapped(handler func()) {
	overlay.onDoubleTap = handler
}

// SetOnSecondaryTapped sets the handler for a right click on any label.
func (overlay *Window) SetOnSecondaryTapped(handler func()) {
	overlay.onSecondaryTap = handler
}

func (overlay *Window) resume() {
	overlay.suspended = false
	overlay.resumeTimer = nil
	overlay.applyVisibility()
}

// applyVisibility shows the native window only when the user wants it,
// it is not temporarily hidden and there is something to show.
func (overlay *Window) applyVisibility() {
	if !overlay.visible || overlay.suspended || len(overlay.tiles) == 0 {
		overlay.window.Hide()
		return
	}
	overlay.window.Show()
	overlay.applyNativeOpacity(overlay.opacity)
	overlay.anchorToCorner()
}

func (overlay *Window) handleDoubleTap() {
	if overlay.onDoubleTap != nil {
		overlay.onDoubleTap()
	}
}

func (overlay *Window) handleSecondaryTap() {
	if overlay.onSecondaryTap != nil {
		overlay.onSecondaryTap()
	}
}

func containsFold(value, part string) bool {
	return strings.Contains(strings.ToLower(value), part)
}

// columnLayout stacks objects at full width with no gaps.
type columnLayout struct{}

func (layout *columnLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	y := float32(0)
	for _, object := range objects {
		height := object.MinSize().Height
		object.Move(fyne.NewPos(0, y))
		object.Resize(fyne.NewSize(size.Width, height))
		y += height
	}
}

func (layout *columnLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	width := float32(0)
	height := float32(0)
	for _, object := range objects {
		minSize := object.MinSize()
		if minSize.Width > width {
			width = minSize.Width
		}
		height += minSize.Height
	}
	return fyne.NewSize(width, height)
}
