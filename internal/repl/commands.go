package repl

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"

	"rerview/internal/command"
	"rerview/internal/session"
	"rerview/internal/world"
)

// Session is the part of session.Session the REPL works with.
type Session interface {
	Active() *session.Active
	Worlds() *world.Table
	SelectWorld(id world.ID) error
}

// ─── !help ──────────────────────────────────────────────────────────────────

type helpCommand struct {
	reg *command.Registry
	con *console
}

func (*helpCommand) Token() string       { return "!help" }
func (*helpCommand) Aliases() []string   { return []string{"!h", "!?"} }
func (*helpCommand) Name() string        { return "Help" }
func (*helpCommand) Description() string { return "Show help" }

func (c *helpCommand) Execute([]string) (bool, error) {
	c.reg.WriteHelp(c.con.out)
	return false, nil
}

// ─── !list ──────────────────────────────────────────────────────────────────

type listCommand struct {
	sess Session
	con  *console
}

func (*listCommand) Token() string     { return "!list" }
func (*listCommand) Aliases() []string { return []string{"!l", "!ls", "!lst"} }
func (*listCommand) Name() string      { return "Show List" }
func (*listCommand) Description() string {
	return "Show block ID list, or world ID list with 'world'"
}

func (c *listCommand) Execute(args []string) (bool, error) {
	if len(args) > 0 && (args[0] == "world" || args[0] == "w") {
		ids := c.sess.Worlds().IDs()
		c.con.Println("Showing worlds...")
		for _, id := range ids {
			c.con.Println(id)
		}
		c.con.Println("Total:", len(ids))
		return false, nil
	}

	active := c.sess.Active()
	c.con.Printf("Showing block IDs in current world %s ...\n", active.ID)
	for _, id := range active.Stats.IDs {
		c.con.Println(id)
	}
	c.con.Println("Total:", len(active.Stats.IDs))
	return false, nil
}

// ─── !search ────────────────────────────────────────────────────────────────

type searchCommand struct {
	sess Session
	con  *console
}

func (*searchCommand) Token() string       { return "!search" }
func (*searchCommand) Aliases() []string   { return []string{"!s", "!find"} }
func (*searchCommand) Name() string        { return "Search Block ID" }
func (*searchCommand) Description() string { return "Search block ID by regular expression" }

// Execute ORs the arguments into one pattern, so "!s coal iron" finds both.
func (c *searchCommand) Execute(args []string) (bool, error) {
	expr := strings.Join(args, "|")
	if len(args) == 0 {
		line, err := c.con.Prompt("Enter regular expression pattern: ")
		if err != nil {
			return false, err
		}
		expr = strings.TrimSpace(line)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		c.con.Printf("Invalid pattern: %v\n", err)
		return false, nil
	}

	c.con.Println("Search results:")
	total := 0
	for _, id := range c.sess.Active().Stats.IDs {
		if re.MatchString(id) {
			c.con.Println(id)
			total++
		}
	}
	c.con.Println("Total:", total)
	return false, nil
}

// ─── !select ────────────────────────────────────────────────────────────────

type selectCommand struct {
	sess      Session
	con       *console
	namespace string
}

func (*selectCommand) Token() string       { return "!select" }
func (*selectCommand) Aliases() []string   { return []string{"!sel"} }
func (*selectCommand) Name() string        { return "Select World" }
func (*selectCommand) Description() string { return "Select world by ID" }

func (c *selectCommand) Execute(args []string) (bool, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		line, err := c.con.Prompt("Enter world ID: ")
		if err != nil {
			return false, err
		}
		raw = strings.TrimSpace(line)
	}
	if raw == "" {
		c.con.Println("No world ID given.")
		return false, nil
	}

	id := world.Normalize(raw, c.namespace)
	if p, ok := c.sess.Worlds().Get(id); ok {
		c.con.Println("Read file:", p)
	}
	err := c.sess.SelectWorld(id)
	switch {
	case errors.Is(err, session.ErrWorldNotFound):
		c.con.Printf("World %s not found.\n", id)
	case err != nil:
		c.con.Printf("Cannot load world %s: %v\n", id, err)
	default:
		c.con.Printf("Selected world %s.\n", id)
	}
	return false, nil
}

// ─── !info ──────────────────────────────────────────────────────────────────

type infoCommand struct {
	sess     Session
	con      *console
	minLevel int
}

func (*infoCommand) Token() string       { return "!info" }
func (*infoCommand) Aliases() []string   { return []string{"!i"} }
func (*infoCommand) Name() string        { return "World Info" }
func (*infoCommand) Description() string { return "Show the current world and its sample counts" }

func (c *infoCommand) Execute([]string) (bool, error) {
	a := c.sess.Active()
	levels := len(a.Stats.Totals)
	tbl := table.New("Field", "Value").
		WithWriter(c.con.out).
		WithWidthFunc(runewidth.StringWidth)
	tbl.AddRow("World", a.ID)
	tbl.AddRow("File", a.Path)
	tbl.AddRow("Levels", fmt.Sprintf("%d..%d (%d)", c.minLevel, c.minLevel+levels-1, levels))
	tbl.AddRow("Blocks", len(a.Stats.IDs))
	tbl.AddRow("Samples", a.Stats.Samples())
	tbl.Print()
	return false, nil
}

// ─── !quit ──────────────────────────────────────────────────────────────────

type quitCommand struct {
	con *console
}

func (*quitCommand) Token() string       { return "!quit" }
func (*quitCommand) Aliases() []string   { return []string{"!q", "!exit", "!esc"} }
func (*quitCommand) Name() string        { return "Quit" }
func (*quitCommand) Description() string { return "Quit program" }

// Execute waits for Enter. A closed input counts as the acknowledgement.
func (c *quitCommand) Execute([]string) (bool, error) {
	if _, err := c.con.Prompt("Press Enter to quit... "); err != nil && !errors.Is(err, io.EOF) {
		return true, err
	}
	return true, nil
}
