package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", cfg.GetConfigPath(), path)
	}

	want := Default()
	if !reflect.DeepEqual(cfg.Bindings, want.Bindings) || !reflect.DeepEqual(cfg.Rules, want.Rules) {
		t.Errorf("loaded default = %+v, want %+v", cfg, want)
	}
	if cfg.Backend != BackendX11 || !cfg.Notifications || !cfg.Watch {
		t.Errorf("loaded default settings = %+v", cfg)
	}

	argv, err := cfg.Bindings[0].Argv()
	if err != nil || !reflect.DeepEqual(argv, []string{"spawn", "xterm"}) {
		t.Errorf("Argv() = (%v, %v)", argv, err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
backend = "legacy"
debug = true

[[binding]]
keys = "Mod4+Return"
command = "spawn urxvt -e 'tmux new -A'"

[[binding]]
keys = "Mod1+F4"
args = ["spawn", "sh", "-c", "kill $PPID"]

[[rule]]
class = "Emacs"
keymask = 'Control\+.*'
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Backend != BackendLegacy || !cfg.Debug || cfg.Notifications {
		t.Errorf("settings = %+v", cfg)
	}
	if len(cfg.Bindings) != 2 {
		t.Fatalf("bindings = %+v", cfg.Bindings)
	}

	argv, err := cfg.Bindings[0].Argv()
	if want := []string{"spawn", "urxvt", "-e", "tmux new -A"}; err != nil || !reflect.DeepEqual(argv, want) {
		t.Errorf("Argv() = (%v, %v), want %v", argv, err, want)
	}
	argv, err = cfg.Bindings[1].Argv()
	if want := []string{"spawn", "sh", "-c", "kill $PPID"}; err != nil || !reflect.DeepEqual(argv, want) {
		t.Errorf("Argv() = (%v, %v), want %v", argv, err, want)
	}

	if want := []Rule{{Class: "Emacs", Keymask: `Control\+.*`}}; !reflect.DeepEqual(cfg.Rules, want) {
		t.Errorf("rules = %+v, want %+v", cfg.Rules, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":          `backend = `,
		"unknown backend": `backend = "wayland"`,
		"missing keys":    "[[binding]]\ncommand = \"true\"",
		"empty command":   "[[binding]]\nkeys = \"a\"",
		"unbalanced":      "[[binding]]\nkeys = \"a\"\ncommand = \"spawn 'xterm\"",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(data)); err == nil {
				t.Errorf("Parse(%q) succeeded", data)
			}
		})
	}
}

func TestCreateDefaultConfigKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("debug = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CreateDefaultConfig(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "debug = true\n" {
		t.Errorf("existing config overwritten: %q", data)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := "/tmp/xdg/xkeybind/config.toml"; path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}
