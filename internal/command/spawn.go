package command

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"syscall"
)

// SpawnCommand starts argv[1:] detached from the daemon.
func SpawnCommand() Command {
	return Command{
		Name: "spawn",
		Run: func(argv []string, out io.Writer) error {
			if len(argv) < 2 {
				return ErrNeedMoreArgs
			}
			return Spawn(argv[1:])
		},
	}
}

// Spawn starts argv in its own process group and returns without waiting.
// The child is reaped in the background.
func Spawn(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %q: %w", argv[0], err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("Spawn: %q exited: %v", argv[0], err)
		}
	}()
	return nil
}
