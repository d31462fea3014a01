package hotkey

import (
	"errors"

	"github.com/BurntSushi/xgb/xproto"
)

// ErrBackendNotAvailable is returned when a backend cannot be used on the current system.
var ErrBackendNotAvailable = errors.New("backend not available on this system")

// KeyPress is a raw key press notification as delivered by a backend.
// X11 reports a keycode; backends that register keysyms directly fill in
// Keysym instead and leave Keycode zero.
type KeyPress struct {
	Keycode xproto.Keycode
	Keysym  xproto.Keysym
	State   uint16
}

// Grabber abstracts the component that talks to the display server.
// It is the only place where grabs are issued or released.
type Grabber interface {
	// Grab grabs combo for every lock-key variant. A keysym without a
	// keycode on the current keyboard is silently skipped.
	Grab(combo KeyCombo)

	// Ungrab releases what Grab issued for combo.
	Ungrab(combo KeyCombo)

	// UngrabAll releases every key grab held on the root window,
	// independent of any binding table.
	UngrabAll()

	// Normalize turns a raw press into a combo that compares exactly
	// against table entries: unshifted keysym, lock bits stripped.
	Normalize(ev KeyPress) KeyCombo

	// RefreshModifierMapping re-reads the keyboard mapping and the bit
	// currently carrying NumLock. Must run whenever the mapping changes.
	RefreshModifierMapping()

	// Name returns a human-readable name for this backend (for logging).
	Name() string
}

// KeyPressSource is implemented by backends that deliver key presses on
// their own channel instead of through the X event stream.
type KeyPressSource interface {
	KeyPresses() <-chan KeyPress
}

// KeysymLister is implemented by backends that can enumerate the keysyms
// present on the current keyboard.
type KeysymLister interface {
	KeyboardKeysyms() []string
}

// ShiftLevelReporter is implemented by backends that can tell whether a
// keysym is only reachable through a shift level on the current keyboard.
type ShiftLevelReporter interface {
	ShiftedOnly(sym xproto.Keysym) bool
}
