package palette

import (
	"image/color"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
		ok    bool
	}{
		{input: "#2a9d8f", want: color.NRGBA{R: 0x2a, G: 0x9d, B: 0x8f, A: 0xff}, ok: true},
		{input: "#FFF", want: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, ok: true},
		{input: "#11223344", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, ok: true},
		{input: "Pink", want: color.NRGBA{R: 0xff, G: 0xc0, B: 0xcb, A: 0xff}, ok: true},
		{input: "random", want: Fallback, ok: false},
		{input: "#12345", want: Fallback, ok: false},
		{input: "#zzzzzz", want: Fallback, ok: false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHexAndContrast(t *testing.T) {
	c, _ := Parse("yellow")
	if Hex(c) != "#ffff00" {
		t.Errorf("Hex = %s", Hex(c))
	}
	if Contrast(c) != (color.NRGBA{A: 0xff}) {
		t.Error("yellow should get black text")
	}
	navy, _ := Parse("navy")
	if Contrast(navy) != (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Error("navy should get white text")
	}
}
