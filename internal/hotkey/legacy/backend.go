//go:build linux && cgo

// Package legacy grabs keys through golang.design/x/hotkey instead of a
// direct X connection. It cannot read the modifier map, so NumLock is
// assumed to sit on Mod2.
package legacy

import (
	"fmt"
	"log"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	xhotkey "golang.design/x/hotkey"

	"github.com/TanaroSch/xkeybind/internal/hotkey"
)

const numlock = xproto.ModMask2

// Backend registers one library hotkey per lock variant of every grabbed
// combo and funnels their key-downs into a single channel.
type Backend struct {
	mu         sync.Mutex
	registered map[hotkey.KeyCombo][]*registration
	presses    chan hotkey.KeyPress
}

// New returns a Backend, or hotkey.ErrBackendNotAvailable when no X
// display is reachable.
func New() (*Backend, error) {
	ds := hotkey.DetectDisplayServer()
	if !ds.CanGrab() {
		log.Printf("Legacy backend: Not available on %s", ds)
		return nil, hotkey.ErrBackendNotAvailable
	}
	return &Backend{
		registered: make(map[hotkey.KeyCombo][]*registration),
		presses:    make(chan hotkey.KeyPress, 16),
	}, nil
}

// Name returns the name of this backend.
func (b *Backend) Name() string {
	return "Legacy (golang.design/x/hotkey)"
}

// KeyPresses delivers a KeyPress for every key-down of a grabbed combo.
func (b *Backend) KeyPresses() <-chan hotkey.KeyPress {
	return b.presses
}

// Grab registers combo under every lock variant.
func (b *Backend) Grab(combo hotkey.KeyCombo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.registered[combo]; exists {
		return
	}
	if combo.Keysym > 0xffff {
		log.Printf("Legacy backend: Cannot grab %s, keysym %#x is out of range", combo, combo.Keysym)
		return
	}

	var regs []*registration
	for _, lock := range hotkey.LockVariants(numlock) {
		state := combo.Modifiers | lock
		reg, err := b.register(combo.Keysym, state)
		if err != nil {
			log.Printf("Legacy backend: %v", err)
			continue
		}
		regs = append(regs, reg)
	}
	b.registered[combo] = regs
}

// Ungrab unregisters every variant of combo.
func (b *Backend) Ungrab(combo hotkey.KeyCombo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, reg := range b.registered[combo] {
		if err := reg.close(); err != nil {
			log.Printf("Legacy backend: %v", err)
		}
	}
	delete(b.registered, combo)
}

// UngrabAll unregisters everything this backend registered.
func (b *Backend) UngrabAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for combo, regs := range b.registered {
		for _, reg := range regs {
			if err := reg.close(); err != nil {
				log.Printf("Legacy backend: Error unregistering %s: %v", combo, err)
			}
		}
	}
	b.registered = make(map[hotkey.KeyCombo][]*registration)
}

// Normalize strips the lock bits. Key presses from this backend already
// carry their keysym.
func (b *Backend) Normalize(ev hotkey.KeyPress) hotkey.KeyCombo {
	return hotkey.KeyCombo{
		Modifiers: hotkey.StripLocks(ev.State, numlock),
		Keysym:    ev.Keysym,
	}
}

// RefreshModifierMapping does nothing; the library resolves keycodes on
// every registration.
func (b *Backend) RefreshModifierMapping() {}

func (b *Backend) register(sym xproto.Keysym, state uint16) (*registration, error) {
	hk := xhotkey.New(splitModifiers(state), xhotkey.Key(sym))
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("failed to register keysym %#x with state %#x: %w", sym, state, err)
	}
	reg := &registration{
		hotkey: hk,
		press:  hotkey.KeyPress{Keysym: sym, State: state},
		stopCh: make(chan struct{}),
	}
	go reg.forward(b.presses)
	return reg, nil
}

// splitModifiers turns a state mask into the per-bit modifier list the
// library expects.
func splitModifiers(state uint16) []xhotkey.Modifier {
	var mods []xhotkey.Modifier
	for bit := uint16(1); bit != 0 && bit <= state; bit <<= 1 {
		if state&bit != 0 {
			mods = append(mods, xhotkey.Modifier(bit))
		}
	}
	return mods
}

type registration struct {
	hotkey *xhotkey.Hotkey
	press  hotkey.KeyPress
	stopCh chan struct{}
}

// forward turns library key-downs into KeyPress values until closed.
func (r *registration) forward(out chan<- hotkey.KeyPress) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Legacy backend: recovered from panic forwarding %#x: %v", r.press.Keysym, rec)
		}
	}()

	for {
		select {
		case <-r.stopCh:
			return
		case <-r.hotkey.Keydown():
			select {
			case out <- r.press:
			case <-r.stopCh:
				return
			}
		}
	}
}

func (r *registration) close() error {
	close(r.stopCh)
	if err := r.hotkey.Unregister(); err != nil {
		return fmt.Errorf("failed to unregister keysym %#x with state %#x: %w", r.press.Keysym, r.press.State, err)
	}
	return nil
}
