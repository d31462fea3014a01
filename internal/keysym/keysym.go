// Package keysym maps X keysym names to keysym values and back.
//
// Names resolve against the full X keysym definitions. A short ordered
// table of common names serves completion and picks the display name when
// several names share one keysym (Prior and Page_Up, for example): the
// first table entry wins.
package keysym

import (
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/linuxdeepin/go-x11-client/util/keysyms"
)

// NoSymbol is the X "no keysym" value.
const NoSymbol xproto.Keysym = 0

// Well-known keysyms used outside this package.
const (
	NumLock  xproto.Keysym = 0xff7f
	CapsLock xproto.Keysym = 0xffe5
)

type entry struct {
	name string
	sym  xproto.Keysym
}

var (
	table  []entry
	byName map[string]xproto.Keysym
	bySym  map[xproto.Keysym]string
)

// asciiNames holds the names of keysyms 0x20 through 0x7e.
var asciiNames = []string{
	"space", "exclam", "quotedbl", "numbersign", "dollar", "percent",
	"ampersand", "apostrophe", "parenleft", "parenright", "asterisk", "plus",
	"comma", "minus", "period", "slash",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"colon", "semicolon", "less", "equal", "greater", "question", "at",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"bracketleft", "backslash", "bracketright", "asciicircum", "underscore",
	"grave",
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"braceleft", "bar", "braceright", "asciitilde",
}

// latin1Names holds the names of keysyms 0xa0 through 0xff.
var latin1Names = []string{
	"nobreakspace", "exclamdown", "cent", "sterling", "currency", "yen",
	"brokenbar", "section", "diaeresis", "copyright", "ordfeminine",
	"guillemotleft", "notsign", "hyphen", "registered", "macron",
	"degree", "plusminus", "twosuperior", "threesuperior", "acute", "mu",
	"paragraph", "periodcentered", "cedilla", "onesuperior", "masculine",
	"guillemotright", "onequarter", "onehalf", "threequarters", "questiondown",
	"Agrave", "Aacute", "Acircumflex", "Atilde", "Adiaeresis", "Aring", "AE",
	"Ccedilla", "Egrave", "Eacute", "Ecircumflex", "Ediaeresis", "Igrave",
	"Iacute", "Icircumflex", "Idiaeresis", "ETH", "Ntilde", "Ograve", "Oacute",
	"Ocircumflex", "Otilde", "Odiaeresis", "multiply", "Oslash", "Ugrave",
	"Uacute", "Ucircumflex", "Udiaeresis", "Yacute", "THORN", "ssharp",
	"agrave", "aacute", "acircumflex", "atilde", "adiaeresis", "aring", "ae",
	"ccedilla", "egrave", "eacute", "ecircumflex", "ediaeresis", "igrave",
	"iacute", "icircumflex", "idiaeresis", "eth", "ntilde", "ograve", "oacute",
	"ocircumflex", "otilde", "odiaeresis", "division", "oslash", "ugrave",
	"uacute", "ucircumflex", "udiaeresis", "yacute", "thorn", "ydiaeresis",
}

// special holds function, cursor, keypad, modifier and vendor keysyms.
var special = []entry{
	{"BackSpace", 0xff08},
	{"Tab", 0xff09},
	{"Linefeed", 0xff0a},
	{"Clear", 0xff0b},
	{"Return", 0xff0d},
	{"Pause", 0xff13},
	{"Scroll_Lock", 0xff14},
	{"Sys_Req", 0xff15},
	{"Escape", 0xff1b},
	{"Multi_key", 0xff20},
	{"Home", 0xff50},
	{"Left", 0xff51},
	{"Up", 0xff52},
	{"Right", 0xff53},
	{"Down", 0xff54},
	{"Prior", 0xff55},
	{"Page_Up", 0xff55},
	{"Next", 0xff56},
	{"Page_Down", 0xff56},
	{"End", 0xff57},
	{"Begin", 0xff58},
	{"Select", 0xff60},
	{"Print", 0xff61},
	{"Execute", 0xff62},
	{"Insert", 0xff63},
	{"Undo", 0xff65},
	{"Redo", 0xff66},
	{"Menu", 0xff67},
	{"Find", 0xff68},
	{"Cancel", 0xff69},
	{"Help", 0xff6a},
	{"Break", 0xff6b},
	{"Mode_switch", 0xff7e},
	{"script_switch", 0xff7e},
	{"Num_Lock", NumLock},
	{"KP_Space", 0xff80},
	{"KP_Tab", 0xff89},
	{"KP_Enter", 0xff8d},
	{"KP_F1", 0xff91},
	{"KP_F2", 0xff92},
	{"KP_F3", 0xff93},
	{"KP_F4", 0xff94},
	{"KP_Home", 0xff95},
	{"KP_Left", 0xff96},
	{"KP_Up", 0xff97},
	{"KP_Right", 0xff98},
	{"KP_Down", 0xff99},
	{"KP_Prior", 0xff9a},
	{"KP_Page_Up", 0xff9a},
	{"KP_Next", 0xff9b},
	{"KP_Page_Down", 0xff9b},
	{"KP_End", 0xff9c},
	{"KP_Begin", 0xff9d},
	{"KP_Insert", 0xff9e},
	{"KP_Delete", 0xff9f},
	{"KP_Multiply", 0xffaa},
	{"KP_Add", 0xffab},
	{"KP_Separator", 0xffac},
	{"KP_Subtract", 0xffad},
	{"KP_Decimal", 0xffae},
	{"KP_Divide", 0xffaf},
	{"KP_0", 0xffb0},
	{"KP_1", 0xffb1},
	{"KP_2", 0xffb2},
	{"KP_3", 0xffb3},
	{"KP_4", 0xffb4},
	{"KP_5", 0xffb5},
	{"KP_6", 0xffb6},
	{"KP_7", 0xffb7},
	{"KP_8", 0xffb8},
	{"KP_9", 0xffb9},
	{"KP_Equal", 0xffbd},
	{"Shift_L", 0xffe1},
	{"Shift_R", 0xffe2},
	{"Control_L", 0xffe3},
	{"Control_R", 0xffe4},
	{"Caps_Lock", CapsLock},
	{"Shift_Lock", 0xffe6},
	{"Meta_L", 0xffe7},
	{"Meta_R", 0xffe8},
	{"Alt_L", 0xffe9},
	{"Alt_R", 0xffea},
	{"Super_L", 0xffeb},
	{"Super_R", 0xffec},
	{"Hyper_L", 0xffed},
	{"Hyper_R", 0xffee},
	{"ISO_Level3_Shift", 0xfe03},
	{"ISO_Left_Tab", 0xfe20},
	{"Delete", 0xffff},
	{"XF86MonBrightnessUp", 0x1008ff02},
	{"XF86MonBrightnessDown", 0x1008ff03},
	{"XF86KbdBrightnessUp", 0x1008ff05},
	{"XF86KbdBrightnessDown", 0x1008ff06},
	{"XF86AudioLowerVolume", 0x1008ff11},
	{"XF86AudioMute", 0x1008ff12},
	{"XF86AudioRaiseVolume", 0x1008ff13},
	{"XF86AudioPlay", 0x1008ff14},
	{"XF86AudioStop", 0x1008ff15},
	{"XF86AudioPrev", 0x1008ff16},
	{"XF86AudioNext", 0x1008ff17},
	{"XF86HomePage", 0x1008ff18},
	{"XF86Mail", 0x1008ff19},
	{"XF86Search", 0x1008ff1b},
	{"XF86AudioRecord", 0x1008ff1c},
	{"XF86Calculator", 0x1008ff1d},
	{"XF86Back", 0x1008ff26},
	{"XF86Forward", 0x1008ff27},
	{"XF86PowerOff", 0x1008ff2a},
	{"XF86Eject", 0x1008ff2c},
	{"XF86ScreenSaver", 0x1008ff2d},
	{"XF86WWW", 0x1008ff2e},
	{"XF86Sleep", 0x1008ff2f},
	{"XF86Favorites", 0x1008ff30},
	{"XF86AudioPause", 0x1008ff31},
	{"XF86Display", 0x1008ff59},
	{"XF86Explorer", 0x1008ff5d},
	{"XF86Tools", 0x1008ff81},
	{"XF86WLAN", 0x1008ff95},
	{"XF86TouchpadToggle", 0x1008ffa9},
	{"XF86AudioMicMute", 0x1008ffb2},
}

func init() {
	table = make([]entry, 0, len(asciiNames)+len(latin1Names)+len(special)+35)
	for i, name := range asciiNames {
		table = append(table, entry{name, xproto.Keysym(0x20 + i)})
	}
	for i, name := range latin1Names {
		table = append(table, entry{name, xproto.Keysym(0xa0 + i)})
	}
	table = append(table, special...)
	// F1 (0xffbe) through F35 (0xffe0)
	for i := 1; i <= 35; i++ {
		table = append(table, entry{"F" + strconv.Itoa(i), xproto.Keysym(0xffbd + i)})
	}

	byName = make(map[string]xproto.Keysym, len(table))
	bySym = make(map[xproto.Keysym]string, len(table))
	for _, e := range table {
		if _, ok := byName[e.name]; !ok {
			byName[e.name] = e.sym
		}
		if _, ok := bySym[e.sym]; !ok {
			bySym[e.sym] = e.name
		}
	}
}

// Lookup resolves a keysym name as listed in the X keysym definitions. A
// hexadecimal value such as "0x1008ff11" is accepted as a raw keysym.
func Lookup(name string) (xproto.Keysym, bool) {
	if sym, ok := byName[name]; ok {
		return sym, true
	}
	if strings.HasPrefix(name, "0x") {
		v, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil || v == 0 {
			return NoSymbol, false
		}
		return xproto.Keysym(v), true
	}
	if name == "" {
		return NoSymbol, false
	}
	sym, _ := keysyms.StringToKeysym(name)
	if sym == 0 {
		return NoSymbol, false
	}
	return xproto.Keysym(sym), true
}

// Name returns the display name of sym. Keysyms in the common table use
// their first entry; others use the X definition, provided it resolves
// back to sym.
func Name(sym xproto.Keysym) (string, bool) {
	if name, ok := bySym[sym]; ok {
		return name, true
	}
	name := keybind.KeysymToStr(sym)
	if name == "" {
		return "", false
	}
	if back, ok := Lookup(name); !ok || back != sym {
		return "", false
	}
	return name, true
}

// Complete returns the common names starting with prefix, sorted.
func Complete(prefix string) []string {
	var out []string
	for _, e := range table {
		if strings.HasPrefix(e.name, prefix) {
			out = append(out, e.name)
		}
	}
	sort.Strings(out)
	return out
}
