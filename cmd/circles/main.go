// ABOUTME: CLI entry point for circles: loads settings, opens the store, dispatches commands
// ABOUTME: draw runs the TUI; show, export, reset and log work on the persisted drawing

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/circles-go/internal/termfix"

	"golang.org/x/term"

	"github.com/mauromedda/circles-go/internal/board"
	"github.com/mauromedda/circles-go/internal/commands"
	"github.com/mauromedda/circles-go/internal/config"
	"github.com/mauromedda/circles-go/internal/export"
	"github.com/mauromedda/circles-go/internal/journal"
	"github.com/mauromedda/circles-go/internal/keybindings"
	"github.com/mauromedda/circles-go/internal/log"
	"github.com/mauromedda/circles-go/internal/mode/interactive"
	"github.com/mauromedda/circles-go/internal/mode/print"
	"github.com/mauromedda/circles-go/internal/render"
	"github.com/mauromedda/circles-go/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("circles %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by every subcommand.
type app struct {
	cwd      string
	args     cliArgs
	settings *config.Settings
	backend  store.Backend
	stdout   io.Writer
}

// run loads settings, opens the store and dispatches to the subcommand.
func run(args cliArgs) error {
	if args.verbose {
		log.SetLevel(log.LevelDebug)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	settings, err := config.LoadAll(cwd, args.overrides())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	backend, err := store.Open(store.Options{
		Backend:    settings.Store,
		DataDir:    settings.DataDir,
		SQLitePath: settings.SQLitePath,
	})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer backend.Close()
	log.Debug("store: %s", backend)

	a := &app{cwd: cwd, args: args, settings: settings, backend: backend, stdout: os.Stdout}
	return a.commands().Dispatch(args.rest)
}

// commands registers every subcommand; draw runs when none is named.
func (a *app) commands() *commands.Registry {
	r := commands.NewRegistry("draw")
	r.Register(&commands.Command{
		Name:        "draw",
		Description: "Open the drawing canvas (default)",
		Run:         func([]string) error { return a.draw() },
	})
	r.Register(&commands.Command{
		Name:        "show",
		Usage:       "[-format ansi|text|json|yaml]",
		Description: "Print the saved drawing",
		Run:         a.show,
	})
	r.Register(&commands.Command{
		Name:        "export",
		Usage:       "-o FILE.png|.pdf|.html ...",
		Description: "Render the saved drawing to files",
		Run:         a.export,
	})
	r.Register(&commands.Command{
		Name:        "reset",
		Description: "Clear the saved drawing and its redo buffer",
		Run:         func([]string) error { return a.reset() },
	})
	r.Register(&commands.Command{
		Name:        "log",
		Description: "Print the journal of the latest drawing session",
		Run:         func([]string) error { return a.showLog() },
	})
	r.Register(&commands.Command{
		Name:        "help",
		Description: "List commands",
		Run: func([]string) error {
			_, err := fmt.Fprintf(a.stdout, "usage: circles [flags] [command]\n\ncommands:\n%s", r.Usage())
			return err
		},
	})
	return r
}

func (a *app) engine() *board.Engine {
	return board.New(a.backend, board.WithKeys(a.settings.ActiveKey, a.settings.RedoKey))
}

// draw runs the interactive TUI. Logs go to a file while the TUI owns the terminal.
func (a *app) draw() error {
	if err := config.EnsureDir(filepath.Dir(a.settings.LogFile)); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	closeLog, err := log.OpenFile(a.settings.LogFile)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closeLog()

	e := a.engine()

	if a.settings.JournalEnabled() {
		w, err := journal.NewWriter(config.JournalDir(), a.settings.Store)
		if err != nil {
			log.Warn("journal disabled: %v", err)
		} else {
			defer w.Close()
			w.Seed(e.Snapshot())
			defer e.Subscribe(w.Record)()
			log.Info("journal session %s", w.ID())
		}
	}

	cwd, overrides := a.cwd, a.args.overrides()
	return interactive.Run(interactive.AppDeps{
		Engine:    e,
		Settings:  a.settings,
		Keys:      keybindings.New(config.GlobalKeybindingsFile(), config.LocalKeybindingsFile(cwd)),
		StoreName: a.settings.Store,
		Version:   version,
		Reload: func() (*config.Settings, error) {
			return config.LoadAll(cwd, overrides)
		},
		SettingsPaths:   []string{config.GlobalConfigFile(), config.ProjectConfigFile(cwd)},
		KeybindingPaths: []string{config.GlobalKeybindingsFile(), config.LocalKeybindingsFile(cwd)},
	})
}

func (a *app) show(argv []string) error {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	defaultFormat := print.FormatText
	if isTTY {
		defaultFormat = print.FormatANSI
	}

	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	format := fs.String("format", defaultFormat, "Output format: ansi, text, json, or yaml")
	if err := fs.Parse(argv); err != nil {
		return err
	}

	width := print.DefaultWidth
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	e := a.engine()
	activeKey, redoKey := e.Keys()
	return print.Run(a.stdout, print.Config{Format: *format, Width: width}, print.State{
		ActiveKey: activeKey,
		RedoKey:   redoKey,
		Active:    e.Active(),
		Redo:      e.RedoBuffer(),
	})
}

func (a *app) export(argv []string) error {
	opts := export.DefaultOptions()
	var outputs stringList

	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.Var(&outputs, "o", "Output file (.png, .pdf, or .html); repeatable")
	fs.Float64Var(&opts.Layout.CellWidth, "cell-width", opts.Layout.CellWidth, "Pixels per canvas column")
	fs.Float64Var(&opts.Layout.CellHeight, "cell-height", opts.Layout.CellHeight, "Pixels per canvas row")
	fs.Float64Var(&opts.Layout.Radius, "radius", opts.Layout.Radius, "Circle radius in pixels")
	if err := fs.Parse(argv); err != nil {
		return err
	}
	outputs = append(outputs, fs.Args()...)
	if len(outputs) == 0 {
		return errors.New("export: no output files (use -o file.png)")
	}
	opts.Color = render.ParseColor(a.settings.MarkerColor, opts.Color)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pts := a.engine().Active()
	if err := export.All(ctx, pts, outputs, opts); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	for _, o := range outputs {
		fmt.Fprintf(a.stdout, "wrote %s (%d points)\n", o, len(pts))
	}
	return nil
}

func (a *app) reset() error {
	e := a.engine()
	n := len(e.Active())
	e.Reset()
	if err := e.LastSaveError(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Fprintf(a.stdout, "cleared %d points\n", n)
	return nil
}

func (a *app) showLog() error {
	dir := config.JournalDir()
	s, ok, err := journal.Latest(dir)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.stdout, "no journal sessions")
		return nil
	}
	records, err := journal.ReadRecords(dir, s.ID)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.stdout, journal.Format(records))
	return err
}
