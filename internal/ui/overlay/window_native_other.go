//go:build !windows

package overlay

// fyne has no portable window positioning, so outside Windows the window
// manager places the overlay and opacity is per-label alpha.
func (overlay *Window) applyNativeOpacity(float64) {}

func (overlay *Window) anchorToCorner() {}

func tileOpacity(opacity float64) float64 {
	return opacity
}
