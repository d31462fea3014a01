package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"github.com/TanaroSch/xkeybind/internal/command"
	"github.com/TanaroSch/xkeybind/internal/config"
	"github.com/TanaroSch/xkeybind/internal/diffutil"
	"github.com/TanaroSch/xkeybind/internal/focus"
	"github.com/TanaroSch/xkeybind/internal/hotkey"
	"github.com/TanaroSch/xkeybind/internal/hotkey/legacy"
	"github.com/TanaroSch/xkeybind/internal/ui"
)

// ErrConnectionClosed is returned by Run when the X server goes away.
var ErrConnectionClosed = errors.New("X connection closed")

// Application represents the running daemon
type Application struct {
	config   *config.Config
	version  string
	xu       *xgbutil.XUtil
	grabber  hotkey.Grabber
	manager  *hotkey.Manager
	registry *command.Registry
	tracker  *focus.Tracker
	notifier *ui.NotificationManager

	quit     chan struct{}
	quitting bool
}

// New connects to the X server, picks the grab backend and applies cfg.
func New(cfg *config.Config, version string) (*Application, error) {
	ds := hotkey.DetectDisplayServer()
	if !ds.CanGrab() {
		return nil, fmt.Errorf("no X display available (display server: %s)", ds)
	}
	if ds == hotkey.DisplayServerXWayland {
		log.Println("Warning: running under XWayland, only keys typed into X clients can be grabbed")
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the X server: %w", err)
	}

	a := &Application{
		config:   cfg,
		version:  version,
		xu:       xu,
		grabber:  selectGrabber(cfg.Backend, xu),
		notifier: ui.NewNotificationManager(cfg.Notifications, config.AppName),
		quit:     make(chan struct{}),
	}
	log.Printf("Selected backend: %s", a.grabber.Name())

	a.registry = command.NewRegistry()
	a.manager = hotkey.NewManager(a.grabber, a.registry)
	a.manager.SetDebug(cfg.Debug)
	command.RegisterKeyCommands(a.registry, a.manager)
	a.registry.MustRegister(command.SpawnCommand())
	a.registry.MustRegister(command.Command{
		Name: "reload",
		Run: func([]string, io.Writer) error {
			a.onReloadConfig()
			return nil
		},
	})
	a.registry.MustRegister(command.Command{
		Name: "edit-config",
		Run: func([]string, io.Writer) error {
			return command.Spawn(ui.OpenerCommand(a.config.GetConfigPath()))
		},
	})
	a.registry.MustRegister(command.Command{
		Name: "quit",
		Run: func([]string, io.Writer) error {
			a.onQuit()
			return nil
		},
	})

	rules, err := buildRules(cfg.Rules)
	if err != nil {
		a.notifier.ShowNotification("Configuration Error", err.Error())
	}
	a.tracker, err = focus.NewTracker(xu, rules)
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}

	if err := applyBindings(a.manager, a.registry, cfg.Bindings); err != nil {
		a.notifier.ShowNotification("Configuration Error", err.Error())
	}
	return a, nil
}

// selectGrabber returns the grabber for backend, falling back to X11
// when the legacy backend cannot be used.
func selectGrabber(backend string, xu *xgbutil.XUtil) hotkey.Grabber {
	if backend == config.BackendLegacy {
		b, err := legacy.New()
		if err == nil {
			return b
		}
		log.Printf("Warning: legacy backend unavailable (%v), using X11", err)
	}
	return hotkey.NewX11Grabber(xu)
}

// Run processes X events, backend key presses, config changes and
// signals until ctx ends, the quit command runs or the X connection
// closes. All binding state is touched from this goroutine only.
func (a *Application) Run(ctx context.Context) error {
	defer a.shutdown()

	events := make(chan xgb.Event, 64)
	go a.readEvents(events)

	var presses <-chan hotkey.KeyPress
	if src, ok := a.grabber.(hotkey.KeyPressSource); ok {
		presses = src.KeyPresses()
	}

	var reloads <-chan struct{}
	if a.config.Watch {
		w, err := watchConfig(a.config.GetConfigPath())
		if err != nil {
			log.Printf("Warning: not watching config file: %v", err)
		} else {
			defer w.Close()
			reloads = w.Changes()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	a.updateFocus()
	log.Printf("xkeybind %s running with %d bindings", a.version, len(a.manager.List()))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-a.quit:
			return nil
		case ev, ok := <-events:
			if !ok {
				return ErrConnectionClosed
			}
			a.handleEvent(ev)
		case kp := <-presses:
			a.manager.HandleKeyPress(kp)
		case <-reloads:
			log.Println("Config file changed, reloading")
			a.onReloadConfig()
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				a.onReloadConfig()
				continue
			}
			log.Printf("Received %s, shutting down", sig)
			return nil
		}
	}
}

// readEvents forwards X events until the connection closes.
func (a *Application) readEvents(out chan<- xgb.Event) {
	defer close(out)
	for {
		ev, xerr := a.xu.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			// grab requests are unchecked, their errors end up here
			log.Printf("X error: %v", xerr)
			continue
		}
		out <- ev
	}
}

func (a *Application) handleEvent(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		a.manager.HandleKeyPress(hotkey.KeyPress{Keycode: e.Detail, State: e.State})
	case xproto.MappingNotifyEvent:
		if e.Request == xproto.MappingKeyboard || e.Request == xproto.MappingModifier {
			log.Println("Keyboard mapping changed, regrabbing keys")
			a.manager.RegrabAll()
		}
	case xproto.PropertyNotifyEvent:
		if a.tracker.Relevant(e) {
			a.updateFocus()
		}
	}
}

// updateFocus applies the keymask of the focused window.
func (a *Application) updateFocus() {
	target, ok := a.tracker.Current()
	if !ok {
		a.manager.EnsureKeymask(nil)
		return
	}
	a.manager.EnsureKeymask(target)
	if a.config.Debug {
		var ungrabbed []string
		for _, b := range a.manager.Bindings() {
			if !b.Grabbed() {
				ungrabbed = append(ungrabbed, b.Combo().String())
			}
		}
		log.Printf("Focus: %s, keymask %q, ungrabbed: %s",
			target, a.manager.ActiveKeymask().Pattern(), strings.Join(ungrabbed, " "))
	}
}

// onReloadConfig re-reads the config file and replaces every binding. A
// config that fails to load leaves the current bindings in place.
func (a *Application) onReloadConfig() {
	configPath := a.config.GetConfigPath()
	newConfig, err := config.Load(configPath)
	if err != nil {
		log.Printf("Error reloading configuration from '%s': %v", configPath, err)
		a.notifier.ShowNotification("Configuration Error", err.Error())
		return
	}

	before := listing(a.registry)
	a.config = newConfig
	a.notifier.SetEnabled(newConfig.Notifications)
	a.manager.SetDebug(newConfig.Debug)

	var problems []error
	if err := applyBindings(a.manager, a.registry, newConfig.Bindings); err != nil {
		problems = append(problems, err)
	}
	rules, err := buildRules(newConfig.Rules)
	if err != nil {
		problems = append(problems, err)
	}
	a.tracker.SetRules(rules)
	a.updateFocus()

	if len(problems) > 0 {
		a.notifier.ShowNotification("Configuration Error", errors.Join(problems...).Error())
	}

	diff := diffutil.Lines(before, listing(a.registry))
	if !diff.Changed() {
		a.notifier.ShowNotification("Configuration Reloaded", "Bindings unchanged.")
		return
	}
	log.Printf("Binding changes:\n%s", diff.Changes())
	a.notifier.ShowNotification("Configuration Reloaded", diff.Summary())
}

func (a *Application) onQuit() {
	if a.quitting {
		return
	}
	a.quitting = true
	close(a.quit)
}

func (a *Application) shutdown() {
	a.manager.Close()
	a.xu.Conn().Close()
	log.Println("Shutdown complete")
}

// applyBindings replaces the binding table with bindings, running each one
// through the bind command. Bindings that fail are skipped and reported
// together.
func applyBindings(m *hotkey.Manager, r *command.Registry, bindings []config.Binding) error {
	m.UnbindAll()
	var errs []error
	for _, b := range bindings {
		argv, err := b.Argv()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := r.Execute(append([]string{"bind", b.Keys}, argv...)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// buildRules compiles the keymask rules, skipping the invalid ones.
func buildRules(cfgRules []config.Rule) (focus.Rules, error) {
	var rules focus.Rules
	var errs []error
	for _, cr := range cfgRules {
		r, err := focus.NewRule(cr.Class, cr.Instance, cr.Title, cr.Keymask)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := hotkey.NewKeymask(cr.Keymask); err != nil {
			log.Printf("Warning: %v", err)
		}
		rules = append(rules, r)
	}
	return rules, errors.Join(errs...)
}

// listing returns the list-bindings output.
func listing(r *command.Registry) string {
	out, _ := r.Execute([]string{"list-bindings"})
	return out
}
