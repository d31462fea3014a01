package hotkey

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestKeycodeInMap(t *testing.T) {
	// keycodes 8..11, two keysyms per keycode
	keysyms := []xproto.Keysym{
		0x61, 0x41, // 8: a A
		0x62, 0x61, // 9: b a
		0xff7f, 0, // 10: Num_Lock
		0x63, 0x43, // 11: c C
	}
	tests := []struct {
		sym  xproto.Keysym
		want xproto.Keycode
		col  int
	}{
		{0x61, 8, 0},
		{0x41, 8, 1},
		{0x62, 9, 0},
		{0xff7f, 10, 0},
		{0x43, 11, 1},
		{0x64, 0, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got, col := keycodeInMap(keysyms, 2, 8, 11, tt.sym); got != tt.want || col != tt.col {
			t.Errorf("keycodeInMap(%#x) = (%d, %d), want (%d, %d)", tt.sym, got, col, tt.want, tt.col)
		}
	}

	if got, _ := keycodeInMap(keysyms[:4], 2, 8, 11, 0x63); got != 0 {
		t.Errorf("keycodeInMap on short map = %d, want 0", got)
	}
	if got, _ := keycodeInMap(keysyms, 0, 8, 11, 0x61); got != 0 {
		t.Errorf("keycodeInMap with no columns = %d, want 0", got)
	}
}

func TestNumlockMask(t *testing.T) {
	// eight modifier rows, two keycodes each
	keycodes := []xproto.Keycode{
		50, 62, // shift
		66, 0, // lock
		37, 105, // control
		64, 108, // mod1
		77, 0, // mod2
		0, 0, // mod3
		133, 134, // mod4
		92, 0, // mod5
	}
	if got := numlockMask(keycodes, 2, 77); got != xproto.ModMask2 {
		t.Errorf("numlockMask = %#x, want %#x", got, xproto.ModMask2)
	}
	if got := numlockMask(keycodes, 2, 200); got != 0 {
		t.Errorf("numlockMask of unmapped keycode = %#x, want 0", got)
	}
	if got := numlockMask(keycodes, 2, 0); got != 0 {
		t.Errorf("numlockMask without NumLock key = %#x, want 0", got)
	}
}
