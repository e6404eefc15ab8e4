package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"
)

const (
	envDev        = "dev"
	envProduction = "production"
	confirmYes    = "yes"
)

// Command is one devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry looks commands up by name
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns the registered command names in alphabetical order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) PrintHelp() {
	fmt.Println("Usage: devtool <command> [args...]")
	fmt.Println()
	fmt.Println("Commands:")

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range r.Names() {
		fmt.Fprintf(tw, "  %s\t%s\n", name, r.commands[name].Description())
	}
	_ = tw.Flush()
}

// splitFlag separates "--name=value" style arguments from positional ones
func splitFlag(arg string) (name, value string, ok bool) {
	if !strings.HasPrefix(arg, "--") {
		return "", "", false
	}
	name, value, _ = strings.Cut(strings.TrimPrefix(arg, "--"), "=")
	return name, value, true
}
