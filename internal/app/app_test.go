package app

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/TanaroSch/xkeybind/internal/command"
	"github.com/TanaroSch/xkeybind/internal/config"
	"github.com/TanaroSch/xkeybind/internal/focus"
)

func TestCheck(t *testing.T) {
	cfg := &config.Config{
		Bindings: []config.Binding{
			{Keys: "Mod4+Return", Command: "spawn xterm"},
			{Keys: "Mod1+q", Args: []string{"quit"}},
			{Keys: "Super+Return", Command: "spawn 'urxvt -e sh'"},
		},
	}
	out, err := Check(cfg)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	want := "Mod1+q\tquit\nMod4+Return\tspawn\turxvt -e sh\n"
	if out != want {
		t.Errorf("Check() = %q, want %q", out, want)
	}
}

func TestCheckReportsEveryProblem(t *testing.T) {
	cfg := &config.Config{
		Bindings: []config.Binding{
			{Keys: "Hyper+a", Command: "true"},
			{Keys: "Mod4+a", Command: "true"},
			{Keys: "Mod4+nokey", Command: "true"},
		},
		Rules: []config.Rule{{Class: "(", Keymask: "a"}},
	}
	out, err := Check(cfg)
	if err == nil {
		t.Fatal("Check accepted invalid bindings")
	}
	if !errors.Is(err, command.ErrInvalidArgument) {
		t.Errorf("error %v does not wrap ErrInvalidArgument", err)
	}
	for _, token := range []string{`"Hyper"`, `"nokey"`, "class"} {
		if !strings.Contains(err.Error(), token) {
			t.Errorf("error %q lacks %s", err, token)
		}
	}
	if out != "Mod4+a\ttrue\n" {
		t.Errorf("valid bindings = %q, want %q", out, "Mod4+a\ttrue\n")
	}
}

func TestBuildRules(t *testing.T) {
	rules, err := buildRules([]config.Rule{
		{Class: "Emacs", Keymask: `Control\+.*`},
		{Title: "[", Keymask: "a"},
		{Instance: "xterm", Keymask: "Mod1\\+Tab"},
	})
	if err == nil {
		t.Error("invalid title condition not reported")
	}
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	got := rules.Apply(focus.Target{Class: "Emacs"})
	if got.Keymask() != `Control\+.*` {
		t.Errorf("keymask = %q", got.Keymask())
	}
}

func TestComplete(t *testing.T) {
	cfg := &config.Config{
		Bindings: []config.Binding{
			{Keys: "Mod4+a", Command: "true"},
			{Keys: "Mod1+a", Command: "true"},
		},
	}
	if got, want := Complete(cfg, "unbind", "Mod4"), []string{"Mod4+a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Complete(unbind, Mod4) = %v, want %v", got, want)
	}
	if got, want := Complete(cfg, "", "re"), []string{"reload"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Complete(\"\", re) = %v, want %v", got, want)
	}
}

func TestListKeysyms(t *testing.T) {
	if got, want := ListKeysyms("KP_P"), "KP_Page_Down\nKP_Page_Up\nKP_Prior\n"; got != want {
		t.Errorf("ListKeysyms(KP_P) = %q, want %q", got, want)
	}
}

func TestConfigWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("debug = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := watchConfig(path)
	if err != nil {
		t.Fatalf("watchConfig: %v", err)
	}
	defer w.Close()

	// a sibling file must not trigger a reload
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
		t.Fatal("change of another file reported")
	case <-time.After(2 * reloadDebounce):
	}

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("debug = true\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-w.Changes():
		t.Error("burst of writes reported more than once")
	case <-time.After(2 * reloadDebounce):
	}
}
