package hotkey

import "github.com/BurntSushi/xgb/xproto"

// LockVariants returns the lock-modifier combinations every grab has to be
// replicated over so a binding keeps firing while NumLock or CapsLock is on.
// The server cannot be told to ignore these bits itself.
func LockVariants(numlock uint16) []uint16 {
	if numlock == 0 || numlock == xproto.ModMaskLock {
		return []uint16{0, xproto.ModMaskLock}
	}
	return []uint16{
		0,
		xproto.ModMaskLock,
		numlock,
		numlock | xproto.ModMaskLock,
	}
}

// StripLocks clears the NumLock and CapsLock bits from a reported state.
func StripLocks(state, numlock uint16) uint16 {
	return state &^ (numlock | xproto.ModMaskLock)
}
