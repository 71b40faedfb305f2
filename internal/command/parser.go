// Package command parses and dispatches webnav command strings such as
// `:open example.com`. Splitting follows shell-like quoting rules via the
// splitter package; this package adds the command registry, alias
// resolution, argument-count checks, and the cursor-to-token mapping used
// for completion.
package command

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/conneroisu/webnav/internal/errors"
	"github.com/conneroisu/webnav/internal/splitter"
)

// Prefix starts an explicit command string, e.g. ":open foo".
const Prefix = ":"

// HandlerFunc executes a parsed command.
type HandlerFunc func(ctx context.Context, args []string) error

// Command describes one registered command.
type Command struct {
	Name    string
	Aliases []string
	Usage   string

	// MinArgs and MaxArgs bound the argument count after splitting.
	// MaxArgs of -1 means unlimited.
	MinArgs int
	MaxArgs int

	Handler HandlerFunc
}

// Invocation is a parsed command line ready to dispatch.
type Invocation struct {
	Command *Command
	Name    string   // name as typed, before alias resolution
	Args    []string // quote- and escape-consumed arguments
	Raw     string   // full input text
}

// Registry maps command names and aliases to commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
}

// Register adds a command and its aliases. Duplicate names are rejected.
func (r *Registry) Register(cmd *Command) error {
	if cmd.Name == "" {
		return errors.New(errors.ErrorTypeCommand, "unnamed_command",
			"command has no name")
	}
	if _, ok := r.commands[cmd.Name]; ok {
		return errors.Newf(errors.ErrorTypeCommand, "duplicate_command",
			"command %q is already registered", cmd.Name)
	}
	if _, ok := r.aliases[cmd.Name]; ok {
		return errors.Newf(errors.ErrorTypeCommand, "duplicate_command",
			"command %q is already registered as an alias", cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		if _, ok := r.commands[alias]; ok {
			return errors.Newf(errors.ErrorTypeCommand, "duplicate_command",
				"alias %q collides with a command", alias)
		}
		r.aliases[alias] = cmd.Name
	}
	return nil
}

// Lookup resolves a name or alias to a command.
func (r *Registry) Lookup(name string) (*Command, bool) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parser turns command strings into invocations.
type Parser struct {
	registry *Registry
}

// NewParser creates a parser over a registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse splits text and resolves the command. A leading Prefix is stripped
// first. Splitting uses plain (non-keep) mode: quotes group arguments and
// are consumed, so `open "a b"` yields one argument.
func (p *Parser) Parse(text string) (*Invocation, error) {
	stripped := strings.TrimPrefix(text, Prefix)
	parts := splitter.Split(stripped, splitter.Options{})
	if len(parts) == 0 {
		return nil, errors.New(errors.ErrorTypeCommand, "empty_command",
			"no command given")
	}

	name := parts[0]
	cmd, ok := p.registry.Lookup(name)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeCommand, "unknown_command",
			"no such command: %s", name).WithContext("command", name)
	}

	args := parts[1:]
	if len(args) < cmd.MinArgs {
		return nil, errors.Newf(errors.ErrorTypeCommand, "missing_argument",
			"%s needs at least %d argument(s)", cmd.Name, cmd.MinArgs)
	}
	if cmd.MaxArgs >= 0 && len(args) > cmd.MaxArgs {
		return nil, errors.Newf(errors.ErrorTypeCommand, "too_many_arguments",
			"%s takes at most %d argument(s)", cmd.Name, cmd.MaxArgs)
	}

	return &Invocation{Command: cmd, Name: name, Args: args, Raw: text}, nil
}

// Run parses and immediately dispatches text.
func (p *Parser) Run(ctx context.Context, text string) error {
	inv, err := p.Parse(text)
	if err != nil {
		return err
	}
	return inv.Command.Handler(ctx, inv.Args)
}

// Parts splits command text for completion purposes. Empty text is a single
// empty part (the imaginary part being typed), and whitespace-only text is
// one part holding the whitespace.
func Parts(text string, keep bool) []string {
	if text == "" {
		return []string{""}
	}
	if strings.TrimSpace(text) == "" {
		return []string{text}
	}
	return splitter.Split(text, splitter.Options{Keep: keep})
}

// CursorPart returns the index of the part the cursor is currently over.
// pos counts runes from the start of text. Keep-mode splitting makes the
// part boundaries line up with positions in the raw text.
func CursorPart(text string, pos int) int {
	parts := Parts(text, true)
	for i, part := range parts {
		length := utf8.RuneCountInString(part)
		if pos <= length {
			return i
		}
		pos -= length
	}
	return len(parts) - 1
}
