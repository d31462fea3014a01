package hotkey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/TanaroSch/xkeybind/internal/keysym"
)

// comboSeparators lists the characters accepted between the parts of a
// combo spec. The first one is used when formatting.
const comboSeparators = "+-"

// ErrUnnamedModifier is returned by Format under RejectUnnamedModifiers
// when the combo carries modifier bits no name exists for.
var ErrUnnamedModifier = errors.New("modifier bits without a name")

// UnnamedModifierPolicy selects what Format does with modifier bits that
// match no entry of the modifier table (LockMask, for instance).
type UnnamedModifierPolicy int

const (
	// OmitUnnamedModifiers drops such bits from the output.
	OmitUnnamedModifiers UnnamedModifierPolicy = iota
	// RejectUnnamedModifiers makes Format fail with ErrUnnamedModifier.
	RejectUnnamedModifiers
)

// ParseError describes why a combo spec could not be parsed.
type ParseError struct {
	Spec   string
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Spec == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %q", e.Reason, e.Token)
}

// KeyCombo is a keysym plus the modifier bits that must be held with it.
type KeyCombo struct {
	Modifiers uint16
	Keysym    xproto.Keysym
}

// ParseCombo parses specs such as "Mod4+Return", "Mod1-space" or "f".
// Every part but the last must be a modifier name; the last part is a
// keysym name.
func ParseCombo(spec string) (KeyCombo, error) {
	if spec == "" {
		return KeyCombo{}, &ParseError{Spec: spec, Reason: "empty key combination"}
	}

	tokens := splitKeySpec(spec)
	var combo KeyCombo
	for _, token := range tokens[:len(tokens)-1] {
		mask, ok := MaskForName(token)
		if !ok {
			return KeyCombo{}, &ParseError{Spec: spec, Token: token, Reason: "unknown modifier"}
		}
		combo.Modifiers |= mask
	}

	last := tokens[len(tokens)-1]
	sym, ok := keysym.Lookup(last)
	if !ok {
		return KeyCombo{}, &ParseError{Spec: spec, Token: last, Reason: "unknown keysym"}
	}
	combo.Keysym = sym
	return combo, nil
}

func splitKeySpec(spec string) []string {
	base := comboSeparators[:1]
	for _, sep := range comboSeparators[1:] {
		spec = strings.ReplaceAll(spec, string(sep), base)
	}
	return strings.Split(spec, base)
}

// String returns the canonical form of the combo. Modifier bits without
// a name are omitted.
func (c KeyCombo) String() string {
	s, _ := c.Format(OmitUnnamedModifiers)
	return s
}

// Format renders the combo, handling unnamed modifier bits per policy.
// Keysyms without a name render as hexadecimal, which ParseCombo accepts
// back; only NoSymbol renders as "?".
func (c KeyCombo) Format(policy UnnamedModifierPolicy) (string, error) {
	names, rest := NamesForMask(c.Modifiers)
	if rest != 0 && policy == RejectUnnamedModifiers {
		return "", fmt.Errorf("%w: %#x", ErrUnnamedModifier, rest)
	}

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte(comboSeparators[0])
	}
	name, ok := keysym.Name(c.Keysym)
	switch {
	case ok:
	case c.Keysym == keysym.NoSymbol:
		name = "?"
	default:
		name = fmt.Sprintf("%#x", uint32(c.Keysym))
	}
	b.WriteString(name)
	return b.String(), nil
}

// Matches reports whether the canonical form of the combo matches mask.
func (c KeyCombo) Matches(mask Keymask) bool {
	return mask.MatchString(c.String())
}

// Equals compares two combos after clearing the ignore bits from both
// modifier sets.
func (c KeyCombo) Equals(other KeyCombo, ignore uint16) bool {
	return c.Modifiers&^ignore == other.Modifiers&^ignore && c.Keysym == other.Keysym
}
