package command

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/TanaroSch/xkeybind/internal/hotkey"
	"github.com/TanaroSch/xkeybind/internal/keysym"
)

// RegisterKeyCommands adds the key binding commands operating on m.
func RegisterKeyCommands(r *Registry, m *hotkey.Manager) {
	k := &keyCommands{manager: m}
	r.MustRegister(Command{
		Name:     "bind",
		Aliases:  []string{"keybind"},
		Run:      k.bind,
		Complete: k.completeBind,
	})
	r.MustRegister(Command{
		Name:     "unbind",
		Aliases:  []string{"keyunbind"},
		Run:      k.unbind,
		Complete: k.completeUnbind,
	})
	r.MustRegister(Command{
		Name:    "list-bindings",
		Aliases: []string{"list_keybinds"},
		Run:     k.list,
	})
	r.MustRegister(Command{
		Name:     "list-keysyms",
		Run:      k.listKeysyms,
		Complete: k.keysyms,
	})
}

type keyCommands struct {
	manager *hotkey.Manager
}

func (k *keyCommands) bind(argv []string, out io.Writer) error {
	if len(argv) < 3 {
		return ErrNeedMoreArgs
	}
	combo, err := hotkey.ParseCombo(argv[1])
	if err != nil {
		return fmt.Errorf("%s: %w: %w", argv[0], ErrInvalidArgument, err)
	}
	return k.manager.Bind(combo, argv[2:])
}

func (k *keyCommands) unbind(argv []string, out io.Writer) error {
	if len(argv) < 2 {
		return ErrNeedMoreArgs
	}
	arg := argv[1]
	if arg == "--all" || arg == "-F" {
		k.manager.UnbindAll()
		return nil
	}

	combo, err := hotkey.ParseCombo(arg)
	if err != nil {
		return fmt.Errorf("%s: %s: %w: %w", argv[0], arg, ErrInvalidArgument, err)
	}
	if err := k.manager.Unbind(combo); errors.Is(err, hotkey.ErrNotBound) {
		fmt.Fprintf(out, "%s: Key %q is not bound\n", argv[0], arg)
	}
	return nil
}

func (k *keyCommands) list(argv []string, out io.Writer) error {
	for _, e := range k.manager.List() {
		fmt.Fprintf(out, "%s\t%s\n", e.Combo, strings.Join(e.Command, "\t"))
	}
	return nil
}

func (k *keyCommands) listKeysyms(argv []string, out io.Writer) error {
	prefix := ""
	if len(argv) > 1 {
		prefix = argv[1]
	}
	for _, name := range k.keysyms(prefix) {
		fmt.Fprintln(out, name)
	}
	return nil
}

// keysyms returns the keysym names starting with prefix. Only keys on the
// current keyboard are offered when the grabber can enumerate them.
func (k *keyCommands) keysyms(prefix string) []string {
	lister, ok := k.manager.Grabber().(hotkey.KeysymLister)
	if !ok {
		return keysym.Complete(prefix)
	}
	var out []string
	for _, name := range lister.KeyboardKeysyms() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// completeBind completes the combo argument: the part after the last
// separator is matched against modifier and keysym names.
func (k *keyCommands) completeBind(needle string) []string {
	head, part := "", needle
	if i := strings.LastIndexAny(needle, "+-"); i >= 0 {
		head, part = needle[:i+1], needle[i+1:]
	}
	var out []string
	for _, mod := range hotkey.CompleteModifiers(part, "+") {
		out = append(out, head+mod)
	}
	for _, name := range k.keysyms(part) {
		out = append(out, head+name)
	}
	return out
}

func (k *keyCommands) completeUnbind(needle string) []string {
	var out []string
	for _, flag := range []string{"--all", "-F"} {
		if strings.HasPrefix(flag, needle) {
			out = append(out, flag)
		}
	}
	return append(out, k.manager.FindBound(needle)...)
}
