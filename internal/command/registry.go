// Package command implements the argv based command surface key bindings
// are executed through.
package command

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

var (
	ErrNeedMoreArgs     = errors.New("need more arguments")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrCommandNotFound  = errors.New("command not found")
	errDuplicateCommand = errors.New("command already registered")
)

// Exit codes reported for command results.
const (
	ExitSuccess         = 0
	ExitError           = 1
	ExitCommandNotFound = 2
	ExitInvalidArgument = 3
	ExitNeedMoreArgs    = 9
)

// ExitCode maps the error of a command to its exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNeedMoreArgs):
		return ExitNeedMoreArgs
	case errors.Is(err, ErrInvalidArgument):
		return ExitInvalidArgument
	case errors.Is(err, ErrCommandNotFound):
		return ExitCommandNotFound
	default:
		return ExitError
	}
}

// Command is one entry of the registry. Run receives the full argv, so
// argv[0] is the name the command was called by.
type Command struct {
	Name     string
	Aliases  []string
	Run      func(argv []string, out io.Writer) error
	Complete func(needle string) []string
}

// Registry maps command names and aliases to commands.
type Registry struct {
	commands map[string]*Command
}

// NewRegistry returns a registry holding the builtin "true" and
// "complete" commands.
func NewRegistry() *Registry {
	r := &Registry{commands: make(map[string]*Command)}
	r.MustRegister(Command{
		Name: "true",
		Run:  func([]string, io.Writer) error { return nil },
	})
	r.MustRegister(Command{
		Name: "complete",
		Run:  r.completeCommand,
	})
	return r
}

// Register adds cmd under its name and every alias.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" || cmd.Run == nil {
		return fmt.Errorf("command needs a name and a Run function")
	}
	names := append([]string{cmd.Name}, cmd.Aliases...)
	for _, name := range names {
		if _, exists := r.commands[name]; exists {
			return fmt.Errorf("%w: %q", errDuplicateCommand, name)
		}
	}
	c := cmd
	for _, name := range names {
		r.commands[name] = &c
	}
	return nil
}

// MustRegister is Register for the fixed command set built at startup.
func (r *Registry) MustRegister(cmd Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Names returns every registered name and alias, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs argv, writing the command output to out.
func (r *Registry) Call(argv []string, out io.Writer) error {
	if len(argv) == 0 {
		return ErrNeedMoreArgs
	}
	cmd, ok := r.commands[argv[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCommandNotFound, argv[0])
	}
	return cmd.Run(argv, out)
}

// Execute runs argv and returns its output.
func (r *Registry) Execute(argv []string) (string, error) {
	var out bytes.Buffer
	err := r.Call(argv, &out)
	return out.String(), err
}

// Complete returns the completion candidates for needle as the argument of
// command. An empty command completes command names.
func (r *Registry) Complete(command, needle string) []string {
	if command == "" {
		var out []string
		for _, name := range r.Names() {
			if strings.HasPrefix(name, needle) {
				out = append(out, name)
			}
		}
		return out
	}
	cmd, ok := r.commands[command]
	if !ok || cmd.Complete == nil {
		return nil
	}
	return cmd.Complete(needle)
}

func (r *Registry) completeCommand(argv []string, out io.Writer) error {
	if len(argv) < 2 {
		return ErrNeedMoreArgs
	}
	needle := ""
	if len(argv) > 2 {
		needle = argv[2]
	}
	for _, candidate := range r.Complete(argv[1], needle) {
		fmt.Fprintln(out, candidate)
	}
	return nil
}
