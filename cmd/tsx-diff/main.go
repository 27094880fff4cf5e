package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/voidshard/tileset"
	"github.com/voidshard/tileset/internal/cli"
)

const desc = `Compares two revisions of a .tsx tileset, matching tiles by id.

Exits 1 if the revisions differ (like diff(1)).`

var args struct {
	Old string `arg:"" help:"old revision"`
	New string `arg:"" help:"new revision"`

	Verbose  bool   `short:"v" help:"print the full report for each changed tile"`
	LogLevel string `default:"warn" help:"log level (debug, info, warn, error)"`
}

func main() {
	kong.Parse(&args, kong.Name("tsx-diff"), kong.Description(desc))
	log := cli.Logger("tsx-diff", args.LogLevel)

	old, err := tileset.Open(args.Old)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to read old revision")
	}
	cur, err := tileset.Open(args.New)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to read new revision")
	}

	changes := tileset.Diff(old, cur)
	if changes.Empty() {
		return
	}

	for _, h := range changes.Header {
		fmt.Printf("~ %s\n", h)
	}
	for _, t := range changes.Removed {
		fmt.Printf("- tile %d %s %s\n", t.ID, t.Source(), t.Type())
	}
	for _, t := range changes.Added {
		fmt.Printf("+ tile %d %s %s\n", t.ID, t.Source(), t.Type())
	}
	for _, c := range changes.Changed {
		if c.OldType != c.NewType {
			fmt.Printf("~ tile %d type: %q -> %q\n", c.ID, c.OldType, c.NewType)
		} else {
			fmt.Printf("~ tile %d\n", c.ID)
		}
		if args.Verbose {
			fmt.Println(c.Report)
		}
	}
	os.Exit(1)
}
