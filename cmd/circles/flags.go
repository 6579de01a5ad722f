// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Global flags precede the subcommand; show and export have their own flag sets

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/mauromedda/circles-go/internal/config"
)

type cliArgs struct {
	store   string
	dataDir string
	marker  string
	verbose bool
	version bool
	noDrag  bool
	rest    []string
}

func parseFlags(argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet("circles", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&args.store, "store", "", "Persistence backend: file, sqlite, or memory")
	fs.StringVar(&args.dataDir, "data-dir", "", "Directory of the file store")
	fs.StringVar(&args.marker, "marker", "", "Marker glyph drawn at each point")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")
	fs.BoolVar(&args.noDrag, "no-drag", false, "Place points on click only")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: circles [flags] [command]\n\nRun 'circles help' for commands.\n\nflags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	args.rest = fs.Args()
	return args, nil
}

// overrides converts CLI flags into the highest-precedence settings layer.
func (a cliArgs) overrides() *config.Settings {
	s := &config.Settings{
		Store:   a.store,
		DataDir: a.dataDir,
		Marker:  a.marker,
	}
	if a.noDrag {
		off := false
		s.Drag = &off
	}
	return s
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}
