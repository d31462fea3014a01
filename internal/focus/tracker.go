package focus

import (
	"fmt"
	"log"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Tracker reads the focused window from _NET_ACTIVE_WINDOW on the root
// window and resolves its keymask.
type Tracker struct {
	xu      *xgbutil.XUtil
	rules   Rules
	watched xproto.Window

	activeAtom  xproto.Atom
	wmNameAtom  xproto.Atom
	netNameAtom xproto.Atom
}

// NewTracker starts listening for property changes on the root window.
func NewTracker(xu *xgbutil.XUtil, rules Rules) (*Tracker, error) {
	t := &Tracker{xu: xu, rules: rules}

	var err error
	if t.activeAtom, err = xprop.Atm(xu, "_NET_ACTIVE_WINDOW"); err != nil {
		return nil, fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}
	if t.wmNameAtom, err = xprop.Atm(xu, "WM_NAME"); err != nil {
		return nil, fmt.Errorf("failed to intern WM_NAME: %w", err)
	}
	if t.netNameAtom, err = xprop.Atm(xu, "_NET_WM_NAME"); err != nil {
		return nil, fmt.Errorf("failed to intern _NET_WM_NAME: %w", err)
	}

	if err := xwindow.New(xu, xu.RootWin()).Listen(xproto.EventMaskPropertyChange); err != nil {
		return nil, fmt.Errorf("failed to listen on the root window: %w", err)
	}
	return t, nil
}

// SetRules replaces the rule list used for new lookups.
func (t *Tracker) SetRules(rules Rules) {
	t.rules = rules
}

// Relevant reports whether ev can change the focused target: the active
// window changed, or the focused window got a new title.
func (t *Tracker) Relevant(ev xproto.PropertyNotifyEvent) bool {
	if ev.Window == t.xu.RootWin() {
		return ev.Atom == t.activeAtom
	}
	return ev.Window == t.watched && (ev.Atom == t.wmNameAtom || ev.Atom == t.netNameAtom)
}

// Current returns the focused target. The second result is false when no
// window has the focus.
func (t *Tracker) Current() (Target, bool) {
	win, err := ewmh.ActiveWindowGet(t.xu)
	if err != nil || win == 0 {
		t.watched = 0
		return Target{}, false
	}
	if win != t.watched {
		// title rules need to hear about renames of the focused window
		if err := xwindow.New(t.xu, win).Listen(xproto.EventMaskPropertyChange); err != nil {
			log.Printf("Focus: cannot watch window %#x: %v", win, err)
		}
		t.watched = win
	}
	return t.rules.Apply(t.describe(win)), true
}

func (t *Tracker) describe(win xproto.Window) Target {
	target := Target{Window: win}
	if class, err := icccm.WmClassGet(t.xu, win); err == nil && class != nil {
		target.Class = class.Class
		target.Instance = class.Instance
	}
	title, err := ewmh.WmNameGet(t.xu, win)
	if err != nil || title == "" {
		title, _ = icccm.WmNameGet(t.xu, win)
	}
	target.Title = title
	return target
}
