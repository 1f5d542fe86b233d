package schedule

import (
	"testing"

	"github.com/mwarner/courtsched/internal/config"
)

func TestBuildSlotsCanonicalOrder(t *testing.T) {
	venues := []config.Venue{
		{Name: "Mullum Mullum Stadium", Courts: []string{"4A", "3B", "3A"}},
		{Name: "DCC", Courts: []string{"DC2", "DC1"}},
	}
	// Config order is deliberately unsorted; the catalogue must not care.
	slots := BuildSlots(venues, []string{"20:00", "19:00"})

	want := []Slot{
		{"DCC", "DC1", "19:00"},
		{"DCC", "DC1", "20:00"},
		{"DCC", "DC2", "19:00"},
		{"DCC", "DC2", "20:00"},
		{"Mullum", "3A", "19:00"},
		{"Mullum", "3A", "20:00"},
		{"Mullum", "3B", "19:00"},
		{"Mullum", "3B", "20:00"},
		{"Mullum", "4A", "19:00"},
		{"Mullum", "4A", "20:00"},
	}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d", len(slots), len(want))
	}
	for i, w := range want {
		if slots[i] != w {
			t.Errorf("slots[%d] = %v, want %v", i, slots[i], w)
		}
	}
}

func TestBuildSlotsSkipsBlankCourts(t *testing.T) {
	venues := []config.Venue{{Name: "DCC", Courts: []string{"DC1", " ", ""}}}
	slots := BuildSlots(venues, []string{"19:00"})
	if len(slots) != 1 {
		t.Errorf("got %d slots, want 1", len(slots))
	}
}

func TestCourtOrdering(t *testing.T) {
	tests := []struct {
		a, b string
		less bool
	}{
		{"3A", "3B", true},
		{"3B", "4A", true},
		{"3A", "10A", true}, // numeric, not lexical
		{"4B", "DC1", true}, // number-first courts before letter-first
		{"DC1", "DC2", true},
		{"DC2", "Show Court", true}, // unstructured names last
		{"DC1", "3A", false},
	}
	for _, tt := range tests {
		if got := courtLess(tt.a, tt.b); got != tt.less {
			t.Errorf("courtLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.less)
		}
	}
}

func TestShortVenueName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mullum Mullum Stadium", "Mullum"},
		{"mullum mullum", "Mullum"},
		{"DCC", "DCC"},
		{"  DCC  ", "DCC"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortVenueName(tt.in); got != tt.want {
			t.Errorf("ShortVenueName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTimeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"19:00", "7:00pm"},
		{"20:30", "8:30pm"},
		{"09:15", "9:15am"},
		{"12:00", "12:00pm"},
		{"00:45", "12:45am"},
		{"later", "later"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatTimeLabel(tt.in); got != tt.want {
			t.Errorf("FormatTimeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
