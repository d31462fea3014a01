package keysym

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want xproto.Keysym
		ok   bool
	}{
		{"a", 0x61, true},
		{"A", 0x41, true},
		{"space", 0x20, true},
		{"asciitilde", 0x7e, true},
		{"nobreakspace", 0xa0, true},
		{"ydiaeresis", 0xff, true},
		{"Return", 0xff0d, true},
		{"Page_Up", 0xff55, true},
		{"F1", 0xffbe, true},
		{"F12", 0xffc9, true},
		{"F35", 0xffe0, true},
		{"XF86AudioMute", 0x1008ff12, true},
		{"0x1008ff11", 0x1008ff11, true},
		{"EuroSign", 0x20ac, true},
		{"dead_grave", 0xfe50, true},
		{"Cyrillic_a", 0x6c1, true},
		{"XF86MonBrightnessUp", 0x1008ff02, true},
		{"nokey", NoSymbol, false},
		{"0x", NoSymbol, false},
		{"0x0", NoSymbol, false},
		{"", NoSymbol, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup(tt.name)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Lookup(%q) = (%#x, %v), want (%#x, %v)", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNameFirstEntryWins(t *testing.T) {
	tests := []struct {
		sym  xproto.Keysym
		want string
	}{
		{0xff55, "Prior"},
		{0xff56, "Next"},
		{0xff7e, "Mode_switch"},
		{0xff9a, "KP_Prior"},
		{0x61, "a"},
		{0x20ac, "EuroSign"},
		{0xfe50, "dead_grave"},
	}
	for _, tt := range tests {
		got, ok := Name(tt.sym)
		if !ok || got != tt.want {
			t.Errorf("Name(%#x) = (%q, %v), want %q", tt.sym, got, ok, tt.want)
		}
	}
	if _, ok := Name(0x12345678); ok {
		t.Errorf("Name of an unknown keysym should fail")
	}
}

func TestNameLookupRoundTrip(t *testing.T) {
	for _, name := range append(Complete(""), "EuroSign", "Cyrillic_a", "XF86MonBrightnessUp") {
		sym, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) failed", name)
		}
		canonical, ok := Name(sym)
		if !ok {
			t.Fatalf("Name(%#x) failed", sym)
		}
		again, _ := Lookup(canonical)
		if again != sym {
			t.Errorf("%q -> %#x -> %q -> %#x", name, sym, canonical, again)
		}
	}
}

func TestComplete(t *testing.T) {
	got := Complete("KP_P")
	want := []string{"KP_Page_Down", "KP_Page_Up", "KP_Prior"}
	if len(got) != len(want) {
		t.Fatalf("Complete(KP_P) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Complete(KP_P) = %v, want %v", got, want)
		}
	}
	if n := len(Complete("")); n != len(table) {
		t.Errorf("Complete(\"\") returned %d names, want %d", n, len(table))
	}
}
