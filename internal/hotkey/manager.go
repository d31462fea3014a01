package hotkey

import (
	"errors"
	"log"
	"strings"
)

var (
	// ErrEmptyCommand is returned when binding a combo to an empty command.
	ErrEmptyCommand = errors.New("command must not be empty")
	// ErrNotBound is returned when unbinding a combo that has no binding.
	ErrNotBound = errors.New("key is not bound")
)

// Executor runs the command bound to a key.
type Executor interface {
	Execute(argv []string) (string, error)
}

// Target is whatever currently holds the input focus. Its keymask decides
// which bindings stay ungrabbed.
type Target interface {
	Keymask() string
}

// Manager owns the binding table and the active keymask and keeps the
// grabs held by its Grabber in line with both. It is not safe for
// concurrent use; all calls are expected from the event loop.
type Manager struct {
	grabber  Grabber
	executor Executor
	bindings []*Binding
	active   Keymask
	debug    bool
}

// NewManager creates a manager with an empty table and the empty keymask.
func NewManager(grabber Grabber, executor Executor) *Manager {
	return &Manager{
		grabber:  grabber,
		executor: executor,
	}
}

// SetDebug toggles verbose tracing of grab decisions.
func (m *Manager) SetDebug(debug bool) {
	m.debug = debug
}

// Grabber returns the backend the manager issues grabs through.
func (m *Manager) Grabber() Grabber {
	return m.grabber
}

func (m *Manager) debugf(format string, args ...interface{}) {
	if m.debug {
		log.Printf("Keys: "+format, args...)
	}
}

// Bind adds a binding for combo, replacing any binding of the same combo.
// The new binding always goes to the end of the table.
func (m *Manager) Bind(combo KeyCombo, argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}
	if _, err := combo.Format(RejectUnnamedModifiers); err != nil {
		log.Printf("Keys: Warning: binding %s: %v", combo, err)
	}
	if r, ok := m.grabber.(ShiftLevelReporter); ok && r.ShiftedOnly(combo.Keysym) {
		log.Printf("Keys: Warning: binding %s: the keysym needs a shift level and will never fire, bind the unshifted keysym with Shift instead", combo)
	}

	b := &Binding{combo: combo, argv: append([]string(nil), argv...)}
	if old := m.remove(combo); old != nil {
		b.grabbed = old.grabbed
	}
	m.apply(b, !combo.Matches(m.active))
	m.bindings = append(m.bindings, b)
	m.debugf("bound %s to %q", combo, argv)
	return nil
}

// Unbind removes the binding of combo and releases its grab.
func (m *Manager) Unbind(combo KeyCombo) error {
	b := m.remove(combo)
	if b == nil {
		return ErrNotBound
	}
	if b.grabbed {
		m.grabber.Ungrab(b.combo)
	}
	m.debugf("unbound %s", combo)
	return nil
}

// UnbindAll clears the table and releases every key grab.
func (m *Manager) UnbindAll() {
	m.bindings = nil
	m.grabber.UngrabAll()
	m.debugf("removed all bindings")
}

// remove takes the binding of combo out of the table without touching
// any grab.
func (m *Manager) remove(combo KeyCombo) *Binding {
	for i, b := range m.bindings {
		if b.combo.Equals(combo, 0) {
			m.bindings = append(m.bindings[:i], m.bindings[i+1:]...)
			return b
		}
	}
	return nil
}

// apply moves b to the wanted grab state, issuing a request only when the
// state changes.
func (m *Manager) apply(b *Binding, grab bool) {
	switch {
	case grab && !b.grabbed:
		m.debugf("grabbing %s", b.combo)
		m.grabber.Grab(b.combo)
	case !grab && b.grabbed:
		m.debugf("ungrabbing %s", b.combo)
		m.grabber.Ungrab(b.combo)
	}
	b.grabbed = grab
}

// List returns the table in order as (combo, command) pairs.
func (m *Manager) List() []Entry {
	entries := make([]Entry, len(m.bindings))
	for i, b := range m.bindings {
		entries[i] = Entry{Combo: b.combo.String(), Command: b.Command()}
	}
	return entries
}

// Bindings returns a snapshot of the table.
func (m *Manager) Bindings() []Binding {
	out := make([]Binding, len(m.bindings))
	for i, b := range m.bindings {
		out[i] = Binding{combo: b.combo, argv: b.Command(), grabbed: b.grabbed}
	}
	return out
}

// FindBound returns the canonical combos of the bindings starting with
// prefix.
func (m *Manager) FindBound(prefix string) []string {
	var out []string
	for _, b := range m.bindings {
		if name := b.combo.String(); strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// ActiveKeymask returns the keymask the grabs currently follow.
func (m *Manager) ActiveKeymask() Keymask {
	return m.active
}

// EnsureKeymask makes the active keymask the one of target, or the empty
// mask when target is nil. Nothing is sent to the server when the pattern
// did not change. A pattern that does not compile falls back to the empty
// mask.
func (m *Manager) EnsureKeymask(target Target) {
	pattern := ""
	if target != nil {
		pattern = target.Keymask()
	}
	if pattern == m.active.Pattern() {
		m.debugf("keymask is still %q", pattern)
		return
	}

	mask, err := NewKeymask(pattern)
	if err != nil {
		m.debugf("cannot apply keymask: %v", err)
		mask = Keymask{}
	} else {
		m.debugf("applying keymask %q", pattern)
	}
	m.SetActiveKeymask(mask)
}

// SetActiveKeymask grabs or ungrabs every binding whose state differs
// under mask, then makes mask the active one.
func (m *Manager) SetActiveKeymask(mask Keymask) {
	for _, b := range m.bindings {
		m.apply(b, !b.combo.Matches(mask))
	}
	m.active = mask
}

// RegrabAll resynchronises the server with the table after a keyboard
// mapping change: every grab is dropped and the unmasked bindings are
// grabbed again under the new mapping.
func (m *Manager) RegrabAll() {
	m.grabber.RefreshModifierMapping()
	m.grabber.UngrabAll()
	for _, b := range m.bindings {
		b.grabbed = false
		if !b.combo.Matches(m.active) {
			m.grabber.Grab(b.combo)
			b.grabbed = true
		}
	}
	m.debugf("regrabbed %d bindings", len(m.bindings))
}

// HandleKeyPress normalizes ev and runs the command bound to it.
func (m *Manager) HandleKeyPress(ev KeyPress) bool {
	return m.Dispatch(m.grabber.Normalize(ev))
}

// Dispatch runs the command bound to combo, if any. Output and errors of
// the command are dropped.
func (m *Manager) Dispatch(combo KeyCombo) bool {
	for _, b := range m.bindings {
		if !b.combo.Equals(combo, 0) {
			continue
		}
		argv := b.Command()
		if m.executor == nil {
			return true
		}
		if _, err := m.executor.Execute(argv); err != nil {
			m.debugf("%s: %q failed: %v", combo, argv, err)
		}
		return true
	}
	m.debugf("no binding for %s", combo)
	return false
}

// Close drops the table and every grab.
func (m *Manager) Close() {
	m.bindings = nil
	m.grabber.UngrabAll()
}
