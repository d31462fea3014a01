package hotkey

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// modifierName pairs a modifier name with its X11 state bit.
type modifierName struct {
	name string
	mask uint16
}

// modifierTable is ordered: several names map to one bit, and reverse
// lookups take the first entry that matches.
var modifierTable = []modifierName{
	{"Mod1", xproto.ModMask1},
	{"Mod2", xproto.ModMask2},
	{"Mod3", xproto.ModMask3},
	{"Mod4", xproto.ModMask4},
	{"Mod5", xproto.ModMask5},
	{"Alt", xproto.ModMask1},
	{"Super", xproto.ModMask4},
	{"Shift", xproto.ModMaskShift},
	{"Control", xproto.ModMaskControl},
	{"Ctrl", xproto.ModMaskControl},
}

// MaskForName returns the modifier bit for name.
func MaskForName(name string) (uint16, bool) {
	for _, m := range modifierTable {
		if m.name == name {
			return m.mask, true
		}
	}
	return 0, false
}

// NamesForMask returns the modifier names set in mask, walking the table
// in order and clearing each matched bit so aliases are not repeated.
// The second result holds the bits no table entry covers.
func NamesForMask(mask uint16) ([]string, uint16) {
	var names []string
	for _, m := range modifierTable {
		if mask == 0 {
			break
		}
		if m.mask&mask != 0 {
			names = append(names, m.name)
			mask &^= m.mask
		}
	}
	return names, mask
}

// ModifierNames returns every modifier name in table order.
func ModifierNames() []string {
	names := make([]string, len(modifierTable))
	for i, m := range modifierTable {
		names[i] = m.name
	}
	return names
}

// CompleteModifiers returns the modifier names starting with needle, each
// followed by sep.
func CompleteModifiers(needle string, sep string) []string {
	var out []string
	for _, m := range modifierTable {
		if strings.HasPrefix(m.name, needle) {
			out = append(out, m.name+sep)
		}
	}
	return out
}
