package overlay

import (
	"testing"
	"time"

	"countdown/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

func newTestOverlay(t *testing.T) *Window {
	t.Helper()
	app := test.NewTempApp(t)
	return New(app, Config{
		Title:   "Countdown",
		Font:    model.FontConfig{Family: "Sans", Size: 12},
		Opacity: 1,
	})
}

var testLabels = []model.Label{
	{Text: "Launch: 2 days", Color: "#2a9d8f", Tip: "2026/10/21"},
	{Text: "Conference with a long name: 3w", Color: "pink", Tip: "2026/11/9"},
}

func TestSetLabelsBuildsTilesInOrder(t *testing.T) {
	overlay := newTestOverlay(t)
	overlay.SetLabels(testLabels)

	if len(overlay.tiles) != 2 || len(overlay.column.Objects) != 2 {
		t.Fatalf("tiles = %d, objects = %d", len(overlay.tiles), len(overlay.column.Objects))
	}
	for i, tile := range overlay.tiles {
		if tile.displayed() != testLabels[i].Text {
			t.Errorf("tile %d text = %q", i, tile.displayed())
		}
	}
	if overlay.tiles[1].fill.R != 0xff || overlay.tiles[1].fill.G != 0xc0 {
		t.Errorf("named color not parsed: %v", overlay.tiles[1].fill)
	}

	size := overlay.column.MinSize()
	if size.Width < overlay.tiles[1].MinSize().Width {
		t.Error("column must be as wide as the widest label")
	}
	if size.Height != overlay.tiles[0].MinSize().Height+overlay.tiles[1].MinSize().Height {
		t.Error("column height must be the sum of label heights")
	}

	overlay.SetLabels(testLabels[:1])
	if len(overlay.tiles) != 1 {
		t.Errorf("labels not replaced: %d tiles", len(overlay.tiles))
	}
}

func TestVisibility(t *testing.T) {
	overlay := newTestOverlay(t)
	if overlay.Visible() {
		t.Fatal("overlay should start hidden")
	}

	if !overlay.Toggle() || !overlay.Visible() {
		t.Error("toggle should show")
	}
	if overlay.Toggle() || overlay.Visible() {
		t.Error("second toggle should hide")
	}

	overlay.Show()
	overlay.HideFor(time.Hour)
	if !overlay.suspended {
		t.Error("HideFor should suspend the window")
	}
	if !overlay.Visible() {
		t.Error("HideFor must not change the user's visibility choice")
	}
	overlay.resume()
	if overlay.suspended {
		t.Error("resume should clear suspension")
	}
}

func TestTileInteractions(t *testing.T) {
	overlay := newTestOverlay(t)
	doubleTaps, secondaryTaps := 0, 0
	overlay.SetOnDoubleTapped(func() { doubleTaps++ })
	overlay.SetOnSecondaryTapped(func() { secondaryTaps++ })
	overlay.SetLabels(testLabels)

	tile := overlay.tiles[0]
	tile.DoubleTapped(&fyne.PointEvent{})
	tile.TappedSecondary(&fyne.PointEvent{})
	if doubleTaps != 1 || secondaryTaps != 1 {
		t.Errorf("double = %d, secondary = %d", doubleTaps, secondaryTaps)
	}

	tile.MouseIn(nil)
	if tile.displayed() != "2026/10/21" {
		t.Errorf("hover text = %q, want the date", tile.displayed())
	}
	tile.MouseOut()
	if tile.displayed() != testLabels[0].Text {
		t.Errorf("text after hover = %q", tile.displayed())
	}
}

func TestSetOpacity(t *testing.T) {
	overlay := newTestOverlay(t)
	overlay.SetLabels(testLabels)
	overlay.SetOpacity(0.5)

	if overlay.Opacity() != 0.5 {
		t.Errorf("opacity = %v", overlay.Opacity())
	}
	tile := overlay.tiles[0]
	want := scaleAlpha(tile.fill, tileOpacity(0.5))
	if tile.background.FillColor != want {
		t.Errorf("fill = %v, want %v", tile.background.FillColor, want)
	}
}

func TestTileBoldsOnlyName(t *testing.T) {
	overlay := newTestOverlay(t)
	overlay.SetLabels(testLabels[:1])

	tile := overlay.tiles[0]
	if tile.name.Text != "Launch" || !tile.name.TextStyle.Bold {
		t.Errorf("name run = %q bold=%v", tile.name.Text, tile.name.TextStyle.Bold)
	}
	if tile.count.Text != ": 2 days" || tile.count.TextStyle.Bold {
		t.Errorf("count run = %q bold=%v", tile.count.Text, tile.count.TextStyle.Bold)
	}
}

func TestSplitLabel(t *testing.T) {
	tests := []struct {
		text      string
		wantName  string
		wantCount string
	}{
		{text: "Launch: 2 days", wantName: "Launch", wantCount: ": 2 days"},
		{text: "Talk: Keynote: 1w", wantName: "Talk: Keynote", wantCount: ": 1w"},
		{text: "plain", wantName: "plain", wantCount: ""},
	}

	for _, tt := range tests {
		name, count := splitLabel(tt.text)
		if name != tt.wantName || count != tt.wantCount {
			t.Errorf("splitLabel(%q) = %q, %q", tt.text, name, count)
		}
	}
}
