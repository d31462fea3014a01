package hotkey

import (
	"fmt"
	"regexp"
)

// Keymask is a regular expression over canonical combo strings. Combos it
// matches are left ungrabbed so they reach the focused window. The zero
// value is the empty mask, which matches nothing.
type Keymask struct {
	pattern string
	re      *regexp.Regexp
}

// NewKeymask compiles pattern. The pattern has to match the whole combo
// string, not a substring of it.
func NewKeymask(pattern string) (Keymask, error) {
	if pattern == "" {
		return Keymask{}, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return Keymask{}, fmt.Errorf("invalid keymask %q: %w", pattern, err)
	}
	return Keymask{pattern: pattern, re: re}, nil
}

// Pattern returns the source pattern ("" for the empty mask).
func (m Keymask) Pattern() string {
	return m.pattern
}

// MatchString reports whether s is masked.
func (m Keymask) MatchString(s string) bool {
	return m.re != nil && m.re.MatchString(s)
}
