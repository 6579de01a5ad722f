// ABOUTME: Subcommand registry and dispatch for the circles CLI
// ABOUTME: Commands register a name, usage line and run func; Usage lists them sorted

package commands

import (
	"fmt"
	"slices"
	"strings"
)

// Command is one CLI subcommand.
type Command struct {
	Name        string
	Usage       string // argument synopsis, e.g. "[-format ansi|text|json|yaml]"
	Description string
	Run         func(args []string) error
}

// Registry holds the registered subcommands.
type Registry struct {
	commands map[string]*Command
	fallback string
}

// NewRegistry creates an empty registry. fallback names the command
// Dispatch runs when no name is given.
func NewRegistry(fallback string) *Registry {
	return &Registry{commands: make(map[string]*Command), fallback: fallback}
}

// Register adds cmd, replacing any command with the same name.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
}

// Get returns a command by name.
// The second return value indicates whether the name was found.
func (r *Registry) Get(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all commands sorted by name for deterministic output.
func (r *Registry) List() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	slices.SortFunc(result, func(a, b *Command) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Dispatch runs the command named by argv[0] with the remaining arguments.
// An empty argv runs the fallback command.
func (r *Registry) Dispatch(argv []string) error {
	name, args := r.fallback, []string(nil)
	if len(argv) > 0 {
		name, args = argv[0], argv[1:]
	}

	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (want %s)", name, r.names())
	}
	return cmd.Run(args)
}

// Usage renders one line per command.
func (r *Registry) Usage() string {
	var b strings.Builder
	for _, cmd := range r.List() {
		synopsis := cmd.Name
		if cmd.Usage != "" {
			synopsis += " " + cmd.Usage
		}
		fmt.Fprintf(&b, "  %-36s %s\n", synopsis, cmd.Description)
	}
	return b.String()
}

func (r *Registry) names() string {
	list := r.List()
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}
