package app

import (
	"errors"
	"io"

	"github.com/TanaroSch/xkeybind/internal/command"
	"github.com/TanaroSch/xkeybind/internal/config"
	"github.com/TanaroSch/xkeybind/internal/hotkey"
)

// nullGrabber stands in for the display server when no connection is
// made. Key presses never arrive through it.
type nullGrabber struct{}

func (nullGrabber) Grab(hotkey.KeyCombo)    {}
func (nullGrabber) Ungrab(hotkey.KeyCombo)  {}
func (nullGrabber) UngrabAll()              {}
func (nullGrabber) RefreshModifierMapping() {}
func (nullGrabber) Name() string            { return "none" }

func (nullGrabber) Normalize(ev hotkey.KeyPress) hotkey.KeyCombo {
	return hotkey.KeyCombo{Modifiers: ev.State, Keysym: ev.Keysym}
}

// offlineRegistry builds the command surface over cfg without touching
// the X server. reload, edit-config and quit are accepted but do nothing.
func offlineRegistry(cfg *config.Config) (*command.Registry, error) {
	r := command.NewRegistry()
	m := hotkey.NewManager(nullGrabber{}, nil)
	command.RegisterKeyCommands(r, m)
	r.MustRegister(command.SpawnCommand())
	noop := func([]string, io.Writer) error { return nil }
	r.MustRegister(command.Command{Name: "reload", Run: noop})
	r.MustRegister(command.Command{Name: "edit-config", Run: noop})
	r.MustRegister(command.Command{Name: "quit", Run: noop})

	bindErr := applyBindings(m, r, cfg.Bindings)
	_, ruleErr := buildRules(cfg.Rules)
	return r, errors.Join(bindErr, ruleErr)
}

// Check applies cfg offline and returns the resulting binding list along
// with every problem found.
func Check(cfg *config.Config) (string, error) {
	r, err := offlineRegistry(cfg)
	return listing(r), err
}

// Complete returns completion candidates for needle as an argument of
// the named command, with the bindings of cfg loaded.
func Complete(cfg *config.Config, commandName, needle string) []string {
	r, _ := offlineRegistry(cfg)
	return r.Complete(commandName, needle)
}

// ListKeysyms returns the known keysym names starting with prefix.
func ListKeysyms(prefix string) string {
	r := command.NewRegistry()
	command.RegisterKeyCommands(r, hotkey.NewManager(nullGrabber{}, nil))
	out, _ := r.Execute([]string{"list-keysyms", prefix})
	return out
}
