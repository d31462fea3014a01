package ui

import "runtime"

// OpenerCommand returns the argv opening filePath in the desktop's
// default application.
func OpenerCommand(filePath string) []string {
	if runtime.GOOS == "darwin" {
		return []string{"open", filePath}
	}
	return []string{"xdg-open", filePath}
}
