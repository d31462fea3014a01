package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kballard/go-shellquote"
	"github.com/pelletier/go-toml"
)

const (
	BackendX11    = "x11"
	BackendLegacy = "legacy"
)

// AppName names the config directory.
const AppName = "xkeybind"

// Binding is one [[binding]] table. Command is split shell-style unless
// Args is given, which is used verbatim.
type Binding struct {
	Keys    string   `toml:"keys"`
	Command string   `toml:"command,omitempty"`
	Args    []string `toml:"args,omitempty"`
}

// Argv returns the argument vector of the binding.
func (b Binding) Argv() ([]string, error) {
	if len(b.Args) > 0 {
		return append([]string(nil), b.Args...), nil
	}
	argv, err := shellquote.Split(b.Command)
	if err != nil {
		return nil, fmt.Errorf("binding %q: %w", b.Keys, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("binding %q has no command", b.Keys)
	}
	return argv, nil
}

// Rule is one [[rule]] table assigning a keymask to matching windows.
type Rule struct {
	Class    string `toml:"class,omitempty"`
	Instance string `toml:"instance,omitempty"`
	Title    string `toml:"title,omitempty"`
	Keymask  string `toml:"keymask"`
}

// Config holds the application configuration
type Config struct {
	Backend       string    `toml:"backend"`
	Notifications bool      `toml:"notifications"`
	Debug         bool      `toml:"debug"`
	Watch         bool      `toml:"watch"`
	Bindings      []Binding `toml:"binding"`
	Rules         []Rule    `toml:"rule"`

	configPath string
}

// GetConfigPath returns the path the configuration was loaded from.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// DefaultPath returns $XDG_CONFIG_HOME/xkeybind/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate the config directory: %w", err)
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// Load reads and validates the configuration file, creating the default
// one first when it does not exist.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Config: '%s' not found. Attempting to create default.", configPath)
		if createErr := CreateDefaultConfig(configPath); createErr != nil {
			return nil, fmt.Errorf("config file not found and failed to create default '%s': %w", configPath, createErr)
		}
		data, err = os.ReadFile(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configPath, err)
	}
	cfg.configPath = configPath
	return cfg, nil
}

// Parse decodes and validates TOML configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fills in defaults and rejects values no component accepts.
// Combos and keymasks are checked where they are applied.
func (c *Config) Validate() error {
	switch c.Backend {
	case "":
		c.Backend = BackendX11
	case BackendX11, BackendLegacy:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendX11, BackendLegacy)
	}
	for i, b := range c.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("binding #%d has no keys", i+1)
		}
		if _, err := b.Argv(); err != nil {
			return err
		}
	}
	return nil
}

func write(configPath string, c *Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(configPath, data, 0o644)
}

// Default returns the configuration written on first start.
func Default() *Config {
	return &Config{
		Backend:       BackendX11,
		Notifications: true,
		Watch:         true,
		Bindings: []Binding{
			{Keys: "Mod4+Return", Command: shellquote.Join("spawn", "xterm")},
			{Keys: "Mod4+d", Command: shellquote.Join("spawn", "dmenu_run")},
			{Keys: "Mod4+Shift+r", Command: "reload"},
			{Keys: "Mod4+Shift+q", Command: "quit"},
		},
		Rules: []Rule{
			{Class: "Xephyr|VirtualBox Machine", Keymask: "Mod4\\+.*"},
		},
	}
}

// CreateDefaultConfig creates a default configuration file if none exists
func CreateDefaultConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error checking config path '%s': %w", configPath, err)
	}

	log.Printf("Config: Creating default configuration file at: %s", configPath)
	if err := write(configPath, Default()); err != nil {
		return fmt.Errorf("failed to write default config file '%s': %w", configPath, err)
	}
	return nil
}
