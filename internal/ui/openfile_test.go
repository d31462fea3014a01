package ui

import (
	"runtime"
	"testing"
)

func TestOpenerCommand(t *testing.T) {
	argv := OpenerCommand("/tmp/config.toml")
	if len(argv) != 2 || argv[1] != "/tmp/config.toml" {
		t.Fatalf("OpenerCommand = %v", argv)
	}
	want := "xdg-open"
	if runtime.GOOS == "darwin" {
		want = "open"
	}
	if argv[0] != want {
		t.Errorf("opener = %q, want %q", argv[0], want)
	}
}
