// Package repl runs the interactive prompt: each line is either a command or
// a block id whose spawn probability curve gets plotted.
package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"rerview/internal/command"
	"rerview/internal/render"
	"rerview/internal/stats"
	"rerview/internal/world"
)

// Prompt is shown before every input line.
const Prompt = "Block ID (Enter !help to show help) >>> "

// State is the REPL life cycle.
type State uint8

const (
	StateRunning State = iota
	StateTerminated
)

// Options configures an Engine.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Renderer render.Renderer
	// Namespace is prepended to block and world ids typed without one.
	Namespace string
	// MinLevel is the level of the first entry of every counts array.
	MinLevel int
	Logger   *slog.Logger
}

// Engine reads operator input and dispatches it.
type Engine struct {
	sess      Session
	con       *console
	reg       *command.Registry
	renderer  render.Renderer
	namespace string
	minLevel  int
	logger    *slog.Logger
	state     State
}

// New creates an Engine over an initialized session and registers the
// built-in commands.
func New(sess Session, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Namespace == "" {
		opts.Namespace = world.DefaultNamespace
	}
	e := &Engine{
		sess:      sess,
		con:       newConsole(opts.In, opts.Out),
		reg:       command.NewRegistry(),
		renderer:  opts.Renderer,
		namespace: opts.Namespace,
		minLevel:  opts.MinLevel,
		logger:    opts.Logger,
	}
	e.reg.Register(&helpCommand{reg: e.reg, con: e.con})
	e.reg.Register(&listCommand{sess: sess, con: e.con})
	e.reg.Register(&searchCommand{sess: sess, con: e.con})
	e.reg.Register(&selectCommand{sess: sess, con: e.con, namespace: opts.Namespace})
	e.reg.Register(&infoCommand{sess: sess, con: e.con, minLevel: opts.MinLevel})
	e.reg.Register(&quitCommand{con: e.con})
	return e
}

// Registry exposes the command table, e.g. to add commands before Run.
func (e *Engine) Registry() *command.Registry { return e.reg }

// State reports whether the loop is still running.
func (e *Engine) State() State { return e.state }

// Run loops until a command asks to quit, the input ends, or an iteration
// fails unexpectedly. Only the last case returns an error.
func (e *Engine) Run() error {
	e.state = StateRunning
	for e.state == StateRunning {
		quit, err := e.step()
		switch {
		case errors.Is(err, io.EOF):
			e.con.Println()
			e.state = StateTerminated
		case err != nil:
			e.con.Printf("error: %v\n", err)
			e.logger.Error("session terminated", "error", err)
			e.state = StateTerminated
			return err
		case quit:
			e.state = StateTerminated
		}
	}
	e.logger.Debug("session ended")
	return nil
}

// step handles one input line. Panics are turned into errors so that a
// broken command ends the session cleanly.
func (e *Engine) step() (quit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	e.con.Println()
	line, err := e.con.Prompt(Prompt)
	if err != nil {
		return false, err
	}
	return e.Dispatch(line)
}

// Dispatch runs one line of input.
func (e *Engine) Dispatch(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	if cmd, ok := e.reg.Resolve(fields[0]); ok {
		e.logger.Debug("command", "token", fields[0], "args", fields[1:])
		return cmd.Execute(fields[1:])
	}
	return false, e.plot(fields[0])
}

// plot draws the spawn probability of block in the active world.
func (e *Engine) plot(token string) error {
	block := world.Normalize(token, e.namespace)
	active := e.sess.Active()
	counts, ok := active.Stats.Counts(block)
	if !ok {
		e.con.Printf("%s does not exist.\n", block)
		return nil
	}

	curve := stats.Curve(counts, active.Stats.Totals)
	points := make([]render.Point, len(curve))
	for i, p := range curve {
		points[i] = render.Point{X: float64(e.minLevel + i), Y: p}
	}
	chart := render.Chart{
		Title:  block,
		Label:  fmt.Sprintf("Block spawn chance of %s in %s", world.DisplayName(block), world.DisplayName(active.ID)),
		Points: points,
	}
	if err := e.renderer.Plot(chart); err != nil {
		return fmt.Errorf("plot %s: %w", block, err)
	}
	return nil
}
