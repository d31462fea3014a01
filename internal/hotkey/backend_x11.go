package hotkey

import (
	"log"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/TanaroSch/xkeybind/internal/keysym"
)

// X11Grabber grabs keys on the root window of an X connection.
type X11Grabber struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	numlock uint16
}

// NewX11Grabber loads the current keyboard mapping and returns a grabber
// for the root window of xu.
func NewX11Grabber(xu *xgbutil.XUtil) *X11Grabber {
	g := &X11Grabber{
		xu:   xu,
		root: xu.RootWin(),
	}
	g.RefreshModifierMapping()
	return g
}

// Name returns the name of this backend.
func (g *X11Grabber) Name() string {
	return "X11 (xgbutil)"
}

// RefreshModifierMapping re-reads the keyboard and modifier maps from the
// server and looks up which modifier bit NumLock sits on.
func (g *X11Grabber) RefreshModifierMapping() {
	keyMap, modMap := keybind.MapsGet(g.xu)
	keybind.KeyMapSet(g.xu, keyMap)
	keybind.ModMapSet(g.xu, modMap)

	g.numlock = numlockMask(modMap.Keycodes, int(modMap.KeycodesPerModifier), g.keycodeFor(keysym.NumLock))
	log.Printf("X11 grabber: NumLock modifier mask is %#x", g.numlock)
}

// Grab grabs combo once per lock-key variant.
func (g *X11Grabber) Grab(combo KeyCombo) {
	g.changeGrabbedState(combo, true)
}

// Ungrab releases the grabs Grab issued for combo.
func (g *X11Grabber) Ungrab(combo KeyCombo) {
	g.changeGrabbedState(combo, false)
}

func (g *X11Grabber) changeGrabbedState(combo KeyCombo, grab bool) {
	code := g.keycodeFor(combo.Keysym)
	if code == 0 {
		// no key on this keyboard produces the keysym
		return
	}
	conn := g.xu.Conn()
	for _, lock := range LockVariants(g.numlock) {
		if grab {
			xproto.GrabKey(conn, true, g.root, combo.Modifiers|lock, code,
				xproto.GrabModeAsync, xproto.GrabModeAsync)
		} else {
			xproto.UngrabKey(conn, code, g.root, combo.Modifiers|lock)
		}
	}
}

// UngrabAll releases every key grab on the root window.
func (g *X11Grabber) UngrabAll() {
	xproto.UngrabKey(g.xu.Conn(), xproto.GrabAny, g.root, xproto.ModMaskAny)
}

// Normalize resolves the keycode of ev to its unshifted keysym and strips
// the lock bits from its state.
func (g *X11Grabber) Normalize(ev KeyPress) KeyCombo {
	sym := ev.Keysym
	if ev.Keycode != 0 {
		sym = keybind.KeysymGet(g.xu, ev.Keycode, 0)
	}
	return KeyCombo{
		Modifiers: StripLocks(ev.State, g.numlock),
		Keysym:    sym,
	}
}

// KeyboardKeysyms returns the names of the unshifted keysyms of every key
// on the current keyboard.
func (g *X11Grabber) KeyboardKeysyms() []string {
	first, last := g.xu.Setup().MinKeycode, g.xu.Setup().MaxKeycode
	seen := make(map[xproto.Keysym]bool)
	var names []string
	for kc := int(first); kc <= int(last); kc++ {
		sym := keybind.KeysymGet(g.xu, xproto.Keycode(kc), 0)
		if sym == keysym.NoSymbol || seen[sym] {
			continue
		}
		seen[sym] = true
		if name, ok := keysym.Name(sym); ok {
			names = append(names, name)
		}
	}
	return names
}

func (g *X11Grabber) keycodeFor(sym xproto.Keysym) xproto.Keycode {
	code, _ := g.lookupKeycode(sym)
	return code
}

// ShiftedOnly reports whether sym sits on the keyboard only past the first
// column, so a press of its key never normalizes back to sym.
func (g *X11Grabber) ShiftedOnly(sym xproto.Keysym) bool {
	code, col := g.lookupKeycode(sym)
	return code != 0 && col > 0
}

func (g *X11Grabber) lookupKeycode(sym xproto.Keysym) (xproto.Keycode, int) {
	keyMap := keybind.KeyMapGet(g.xu)
	if keyMap == nil {
		return 0, 0
	}
	setup := g.xu.Setup()
	return keycodeInMap(keyMap.Keysyms, int(keyMap.KeysymsPerKeycode),
		setup.MinKeycode, setup.MaxKeycode, sym)
}

// keycodeInMap finds the first keycode producing sym and the column it was
// found in, scanning column by column so an unshifted match wins over a
// shifted one.
func keycodeInMap(keysyms []xproto.Keysym, perKeycode int,
	first, last xproto.Keycode, sym xproto.Keysym) (xproto.Keycode, int) {

	if sym == keysym.NoSymbol || perKeycode == 0 {
		return 0, 0
	}
	for col := 0; col < perKeycode; col++ {
		for kc := int(first); kc <= int(last); kc++ {
			i := (kc-int(first))*perKeycode + col
			if i >= len(keysyms) {
				break
			}
			if keysyms[i] == sym {
				return xproto.Keycode(kc), col
			}
		}
	}
	return 0, 0
}

// numlockMask returns the modifier bit whose row in the modifier map holds
// the NumLock keycode, or 0 when NumLock is not mapped.
func numlockMask(keycodes []xproto.Keycode, perModifier int, numlock xproto.Keycode) uint16 {
	if numlock == 0 || perModifier == 0 {
		return 0
	}
	var mask uint16
	for mod := 0; mod < 8; mod++ {
		for j := 0; j < perModifier; j++ {
			i := mod*perModifier + j
			if i < len(keycodes) && keycodes[i] == numlock {
				mask = 1 << uint(mod)
			}
		}
	}
	return mask
}
