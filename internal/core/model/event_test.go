package model

import (
	"encoding/json"
	"testing"
)

func TestHiddenPolicyUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  HiddenPolicy
	}{
		{name: "false", input: `false`, want: HiddenNever},
		{name: "true", input: `true`, want: HiddenAlways},
		{name: "auto", input: `"auto"`, want: HiddenAuto},
		{name: "auto upper case", input: `"AUTO"`, want: HiddenAuto},
		{name: "string true", input: `"true"`, want: HiddenAlways},
		{name: "null", input: `null`, want: HiddenNever},
		{name: "unknown string", input: `"sometimes"`, want: HiddenNever},
		{name: "one", input: `1`, want: HiddenAlways},
		{name: "one as float", input: `1.0`, want: HiddenAlways},
		{name: "zero", input: `0`, want: HiddenNever},
		{name: "other number", input: `2`, want: HiddenNever},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := HiddenAlways
			if err := json.Unmarshal([]byte(tt.input), &policy); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if policy != tt.want {
				t.Errorf("got %v, want %v", policy, tt.want)
			}
		})
	}
}

func TestEventRecordKeepsSentinelsOnEncode(t *testing.T) {
	input := `[{"name":"a","year":2026,"month":1,"day":2,"hidden":"auto","bgcolor":"random"},` +
		`{"name":"b","year":2026,"month":3,"day":4,"hidden":true}]`

	var records []EventRecord
	if err := json.Unmarshal([]byte(input), &records); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	encoded, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != input {
		t.Errorf("encoded = %s\nwant      %s", encoded, input)
	}
}

func TestEventRecordEncodeKeepsUntouchedMembers(t *testing.T) {
	input := `{"name":"A","year":2026,"month":11,"day":2,"hidden":"AUTO","note":"keep me","bgcolor":"pink"}`

	tests := []struct {
		name   string
		change func(*EventRecord)
		want   string
	}{
		{
			name:   "unchanged",
			change: func(*EventRecord) {},
			want:   input,
		},
		{
			name:   "renamed",
			change: func(record *EventRecord) { record.Name = "B" },
			want:   `{"name":"B","year":2026,"month":11,"day":2,"hidden":"AUTO","note":"keep me","bgcolor":"pink"}`,
		},
		{
			name:   "policy changed",
			change: func(record *EventRecord) { record.Hidden = HiddenAlways },
			want:   `{"name":"A","year":2026,"month":11,"day":2,"hidden":true,"note":"keep me","bgcolor":"pink"}`,
		},
		{
			name:   "color cleared",
			change: func(record *EventRecord) { record.BgColor = "" },
			want:   `{"name":"A","year":2026,"month":11,"day":2,"hidden":"AUTO","note":"keep me"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record EventRecord
			if err := json.Unmarshal([]byte(input), &record); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			tt.change(&record)
			encoded, err := json.Marshal(record)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(encoded) != tt.want {
				t.Errorf("encoded = %s\nwant      %s", encoded, tt.want)
			}
		})
	}
}

func TestEventRecordEncodeAddsNewMembers(t *testing.T) {
	var record EventRecord
	if err := json.Unmarshal([]byte(`{"note":"x","name":"A","year":2026,"month":1,"day":2}`), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	record.BgColor = "#2a9d8f"
	record.Hidden = HiddenAuto

	encoded, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"note":"x","name":"A","year":2026,"month":1,"day":2,"hidden":"auto","bgcolor":"#2a9d8f"}`
	if string(encoded) != want {
		t.Errorf("encoded = %s\nwant      %s", encoded, want)
	}
}

func TestEventRecordEqual(t *testing.T) {
	var decoded EventRecord
	if err := json.Unmarshal([]byte(`{"name":"A","year":2026,"month":1,"day":2,"extra":true}`), &decoded); err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(EventRecord{Name: "A", Year: 2026, Month: 1, Day: 2}) {
		t.Error("records with the same fields should be equal")
	}
	if decoded.Equal(EventRecord{Name: "A", Year: 2026, Month: 1, Day: 3}) {
		t.Error("records with different days should differ")
	}
}

func TestEventRecordDate(t *testing.T) {
	if _, ok := (EventRecord{Year: 2027, Month: 2, Day: 29}).Date(); ok {
		t.Error("2027-02-29 should be invalid")
	}
	date, ok := EventRecord{Year: 2028, Month: 2, Day: 29}.Date()
	if !ok {
		t.Fatal("2028-02-29 should be valid")
	}
	if date.Day() != 29 {
		t.Errorf("day = %d, want 29", date.Day())
	}
}

func TestNeedsColor(t *testing.T) {
	for _, color := range []string{"", "random", "Random", " RANDOM "} {
		if !(EventRecord{BgColor: color}).NeedsColor() {
			t.Errorf("bgcolor %q should need a color", color)
		}
	}
	if (EventRecord{BgColor: "#ffffff"}).NeedsColor() {
		t.Error("concrete color should be kept")
	}
}

func TestOpacityCycle(t *testing.T) {
	opacity := OpacityConfig{Levels: []float64{1, 0.5, 0.25}}
	index := 0
	var seen []float64
	for i := 0; i < 4; i++ {
		index = opacity.Next(index)
		seen = append(seen, opacity.Level(index))
	}
	want := []float64{0.5, 0.25, 1, 0.5}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("cycle = %v, want %v", seen, want)
		}
	}
	if (OpacityConfig{}).Level(3) != 1 {
		t.Error("empty levels should mean fully opaque")
	}
}
