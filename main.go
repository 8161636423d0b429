// rerview browses the worldgen statistics a save collected and plots, for a
// block, how likely it is to generate at every height.
//
// Usage (from inside a save directory, or with -dir):
//
//	rerview [-dir save] [-config rerview.yaml] [-text] [-v]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"rerview/internal/config"
	"rerview/internal/render"
	"rerview/internal/repl"
	"rerview/internal/session"
	"rerview/internal/stats"
	"rerview/internal/world"
)

// errAborted wraps REPL failures, which the REPL has already shown.
var errAborted = errors.New("session aborted")

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errAborted):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("rerview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFile := fs.String("config", "", "YAML config file (built-in defaults when empty)")
	saveDir := fs.String("dir", "", "Save directory to inspect (overrides save_dir)")
	text := fs.Bool("text", false, "Print curves as tables instead of opening a chart")
	verbose := fs.Bool("v", false, "Enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if *saveDir != "" {
		cfg.SaveDir = *saveDir
	}
	if *text {
		cfg.Renderer = config.RendererText
	}

	fmt.Fprintln(stdout, "Initializing...")
	worlds, err := world.NewLocator(cfg, logger).Discover()
	if err != nil {
		return fmt.Errorf("must have at least one world available: %w", err)
	}
	sess := session.New(worlds, stats.NewLoader(cfg.Tags, cfg.Levels(), logger), logger)
	if _, p, ok := worlds.First(); ok {
		fmt.Fprintln(stdout, "Read file:", p)
	}
	if err := sess.Initialize(); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "Done!")

	var renderer render.Renderer = &render.Viewer{}
	if cfg.Renderer == config.RendererText {
		renderer = render.Text{W: stdout}
	}
	eng := repl.New(sess, repl.Options{
		In:        stdin,
		Out:       stdout,
		Renderer:  renderer,
		Namespace: cfg.DefaultNamespace,
		MinLevel:  cfg.MinLevel,
		Logger:    logger,
	})
	if err := eng.Run(); err != nil {
		return fmt.Errorf("%w: %v", errAborted, err)
	}
	return nil
}
