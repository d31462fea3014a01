package hotkey

import (
	"log"
	"os"
)

// DisplayServer represents the type of display server in use
type DisplayServer int

const (
	DisplayServerUnknown DisplayServer = iota
	DisplayServerX11
	DisplayServerXWayland
	DisplayServerWayland
)

func (ds DisplayServer) String() string {
	switch ds {
	case DisplayServerX11:
		return "X11"
	case DisplayServerXWayland:
		return "XWayland"
	case DisplayServerWayland:
		return "Wayland"
	default:
		return "Unknown"
	}
}

// CanGrab reports whether root window key grabs are possible at all.
// Under XWayland they only see keys typed into X clients.
func (ds DisplayServer) CanGrab() bool {
	return ds == DisplayServerX11 || ds == DisplayServerXWayland
}

// DetectDisplayServer determines which display server is currently in use.
func DetectDisplayServer() DisplayServer {
	ds := detectDisplayServer(os.Getenv)
	log.Printf("Detected display server: %s", ds)
	return ds
}

func detectDisplayServer(getenv func(string) string) DisplayServer {
	x11 := getenv("DISPLAY") != ""
	wayland := getenv("WAYLAND_DISPLAY") != ""
	switch {
	case x11 && wayland:
		return DisplayServerXWayland
	case x11:
		return DisplayServerX11
	case wayland:
		return DisplayServerWayland
	default:
		return DisplayServerUnknown
	}
}
