package overlay

import (
	"image/color"
	"strings"
	"time"

	"countdown/internal/core/model"
	"countdown/internal/palette"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

const (
	tipDuration  = 1500 * time.Millisecond
	tilePaddingX = float32(8)
	tilePaddingY = float32(3)
)

// labelTile is one colored countdown line. Hovering shows its date.
type labelTile struct {
	widget.BaseWidget

	label          model.Label
	fill           color.NRGBA
	ink            color.NRGBA
	background     *canvas.Rectangle
	name           *canvas.Text
	count          *canvas.Text
	opacity        float64
	onDoubleTap    func()
	onSecondaryTap func()
	tipTimer       *time.Timer
}

func newLabelTile(label model.Label, font model.FontConfig, opacity float64) *labelTile {
	fill, _ := palette.Parse(label.Color)
	ink := palette.Contrast(fill)

	namePart, countPart := splitLabel(label.Text)
	name := canvas.NewText(namePart, ink)
	name.TextSize = float32(font.Size)
	name.TextStyle = textStyle(font, true)
	count := canvas.NewText(countPart, ink)
	count.TextSize = float32(font.Size)
	count.TextStyle = textStyle(font, false)

	tile := &labelTile{
		label:      label,
		fill:       fill,
		ink:        ink,
		background: canvas.NewRectangle(fill),
		name:       name,
		count:      count,
		opacity:    opacity,
	}
	tile.applyOpacity()
	tile.ExtendBaseWidget(tile)
	return tile
}

func (tile *labelTile) CreateRenderer() fyne.WidgetRenderer {
	line := container.New(layout.NewCustomPaddedHBoxLayout(0), tile.name, tile.count)
	padded := container.New(layout.NewCustomPaddedLayout(tilePaddingY, tilePaddingY, tilePaddingX, tilePaddingX), line)
	return widget.NewSimpleRenderer(container.NewStack(tile.background, padded))
}

// DoubleTapped cycles the opacity.
func (tile *labelTile) DoubleTapped(*fyne.PointEvent) {
	if tile.onDoubleTap != nil {
		tile.onDoubleTap()
	}
}

// TappedSecondary hides the overlay for a while.
func (tile *labelTile) TappedSecondary(*fyne.PointEvent) {
	if tile.onSecondaryTap != nil {
		tile.onSecondaryTap()
	}
}

// MouseIn shows the date.
func (tile *labelTile) MouseIn(*desktop.MouseEvent) {
	tile.showTip()
}

func (tile *labelTile) MouseMoved(*desktop.MouseEvent) {}

// MouseOut restores the countdown text.
func (tile *labelTile) MouseOut() {
	tile.hideTip()
}

func (tile *labelTile) setOpacity(opacity float64) {
	tile.opacity = opacity
	tile.applyOpacity()
	tile.background.Refresh()
	tile.name.Refresh()
	tile.count.Refresh()
}

func (tile *labelTile) applyOpacity() {
	opacity := tileOpacity(tile.opacity)
	tile.background.FillColor = scaleAlpha(tile.fill, opacity)
	tile.name.Color = scaleAlpha(tile.ink, opacity)
	tile.count.Color = scaleAlpha(tile.ink, opacity)
}

// displayed returns the text currently shown on the tile.
func (tile *labelTile) displayed() string {
	return tile.name.Text + tile.count.Text
}

func (tile *labelTile) setText(name, count string) {
	tile.name.Text = name
	tile.count.Text = count
	tile.name.Refresh()
	tile.count.Refresh()
}

// showTip swaps the text for the date. The overlay window is sized to its
// labels, so a popup would be clipped by the window bounds.
func (tile *labelTile) showTip() {
	if tile.label.Tip == "" {
		return
	}
	tile.stopTipTimer()
	tile.setText("", tile.label.Tip)

	tile.tipTimer = time.AfterFunc(tipDuration, func() {
		fyne.Do(tile.hideTip)
	})
}

func (tile *labelTile) hideTip() {
	tile.stopTipTimer()
	if tile.displayed() != tile.label.Text {
		tile.setText(splitLabel(tile.label.Text))
	}
}

func (tile *labelTile) stopTipTimer() {
	if tile.tipTimer != nil {
		tile.tipTimer.Stop()
		tile.tipTimer = nil
	}
}

// splitLabel separates the bold name from the day count at the last ": ".
func splitLabel(text string) (string, string) {
	index := strings.LastIndex(text, ": ")
	if index < 0 {
		return text, ""
	}
	return text[:index], text[index:]
}

func textStyle(font model.FontConfig, bold bool) fyne.TextStyle {
	family := font.Family
	return fyne.TextStyle{
		Bold:      bold,
		Monospace: containsFold(family, "mono") || containsFold(family, "courier"),
	}
}

func scaleAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}
