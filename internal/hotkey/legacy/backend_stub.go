//go:build !(linux && cgo)

package legacy

import (
	"log"

	"github.com/TanaroSch/xkeybind/internal/hotkey"
)

// Backend stub for builds without cgo or outside Linux.
type Backend struct{}

// New always fails with hotkey.ErrBackendNotAvailable.
func New() (*Backend, error) {
	log.Println("Legacy backend: Not available in this build")
	return nil, hotkey.ErrBackendNotAvailable
}

func (b *Backend) Name() string { return "Legacy (unavailable)" }

func (b *Backend) KeyPresses() <-chan hotkey.KeyPress { return nil }

func (b *Backend) Grab(hotkey.KeyCombo) {}

func (b *Backend) Ungrab(hotkey.KeyCombo) {}

func (b *Backend) UngrabAll() {}

func (b *Backend) Normalize(ev hotkey.KeyPress) hotkey.KeyCombo {
	return hotkey.KeyCombo{Modifiers: ev.State, Keysym: ev.Keysym}
}

func (b *Backend) RefreshModifierMapping() {}
