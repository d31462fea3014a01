package hotkey

import "testing"

func TestKeymask(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"", "", false},
		{"", "Mod4+a", false},
		{"Mod4\\+a", "Mod4+a", true},
		{"Mod4\\+a", "Mod1+Mod4+a", false},
		{"Mod4\\+a", "Mod4+a+b", false},
		{"a|b", "a", true},
		{"a|b", "xb", false},
		{"Mod1\\+.*", "Mod1+Tab", true},
		{".*", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			mask, err := NewKeymask(tt.pattern)
			if err != nil {
				t.Fatalf("NewKeymask(%q) error: %v", tt.pattern, err)
			}
			if got := mask.MatchString(tt.input); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if mask.Pattern() != tt.pattern {
				t.Errorf("Pattern() = %q, want %q", mask.Pattern(), tt.pattern)
			}
		})
	}
}

func TestKeymaskInvalid(t *testing.T) {
	for _, pattern := range []string{"(", "[a-", "(?=a)", "(a)\\1"} {
		mask, err := NewKeymask(pattern)
		if err == nil {
			t.Errorf("NewKeymask(%q) compiled", pattern)
		}
		if mask.Pattern() != "" || mask.MatchString("a") {
			t.Errorf("NewKeymask(%q) returned a non-empty mask", pattern)
		}
	}
}

func TestZeroKeymask(t *testing.T) {
	var mask Keymask
	if mask.MatchString("") || mask.MatchString("a") {
		t.Error("zero Keymask matched")
	}
}
