// Package command maps operator tokens to commands.
package command

import (
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
)

// Command is one operator command.
type Command interface {
	Token() string
	Aliases() []string
	Name() string
	Description() string
	// Execute runs the command with the tokens that followed it on the
	// input line. quit asks the REPL to stop. A non-nil error is not
	// recoverable and also stops the REPL.
	Execute(args []string) (quit bool, err error)
}

// Registry resolves tokens and aliases to commands. Registering a token that
// is already taken replaces the earlier mapping.
type Registry struct {
	cmds   []Command
	tokens map[string]int
}

// NewRegistry creates a Registry holding cmds.
func NewRegistry(cmds ...Command) *Registry {
	r := &Registry{tokens: make(map[string]int)}
	for _, c := range cmds {
		r.Register(c)
	}
	return r
}

// Register adds c under its token and every alias.
func (r *Registry) Register(c Command) {
	idx := len(r.cmds)
	r.cmds = append(r.cmds, c)
	r.tokens[c.Token()] = idx
	for _, a := range c.Aliases() {
		r.tokens[a] = idx
	}
}

// Resolve looks up a token or alias.
func (r *Registry) Resolve(token string) (Command, bool) {
	i, ok := r.tokens[token]
	if !ok {
		return nil, false
	}
	return r.cmds[i], true
}

// All returns the commands in registration order, leaving out those whose
// tokens have all been taken over by later registrations.
func (r *Registry) All() []Command {
	out := make([]Command, 0, len(r.cmds))
	for i, c := range r.cmds {
		if len(r.owned(i)) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// owned lists the token and aliases of command i that still resolve to it.
func (r *Registry) owned(i int) []string {
	c := r.cmds[i]
	var toks []string
	for _, t := range append([]string{c.Token()}, c.Aliases()...) {
		if r.tokens[t] == i && !slices.Contains(toks, t) {
			toks = append(toks, t)
		}
	}
	return toks
}

// WriteHelp prints the command table to w. Tokens taken over by a later
// registration are listed under the command that now owns them.
func (r *Registry) WriteHelp(w io.Writer) {
	io.WriteString(w, "Help:\n") //nolint:errcheck
	tbl := table.New("[Command]", "[Alias]", "[Name]", "[Description]").
		WithWriter(w).
		WithWidthFunc(runewidth.StringWidth)
	for i, c := range r.cmds {
		toks := r.owned(i)
		if len(toks) == 0 {
			continue
		}
		tbl.AddRow(toks[0], strings.Join(toks[1:], ", "), c.Name(), c.Description())
	}
	tbl.Print()
}
