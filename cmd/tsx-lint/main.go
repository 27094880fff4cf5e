package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/voidshard/tileset"
	"github.com/voidshard/tileset/internal/cli"
)

const desc = `Checks .tsx tileset files are well formed & internally consistent.

Tile ids must be unique, every tile needs an image reference & the 'type' property
(if set) must be a single non-empty string. With --layers every tile type must also
map to a map layer (see the layermap section of the config).`

var args struct {
	Files []string `arg:"" help:"tileset files to check"`

	Config   string `short:"c" default:"~/.tileset.yaml" help:"config file"`
	Layers   bool   `help:"also check every tile type maps to a layer"`
	Watch    bool   `short:"w" help:"keep running, re-checking files as they change"`
	LogLevel string `default:"info" help:"log level (debug, info, warn, error)"`
}

// lint checks a single file, logging any problems found.
// Returns false if the file has problems.
func lint(log zerolog.Logger, lm *tileset.LayerMap, fname string) bool {
	ts, err := tileset.Open(fname)
	if err != nil {
		log.Error().Err(err).Str("file", fname).Msg("unable to read tileset")
		return false
	}

	err = tileset.Validate(ts)
	if err == nil && lm != nil {
		err = tileset.ValidateLayers(ts, lm)
	}

	var verr *tileset.ValidationError
	if errors.As(err, &verr) {
		for _, p := range verr.Problems {
			log.Error().Str("file", fname).Str("field", p.Field).Interface("value", p.Value).Msg(p.Message)
		}
		return false
	} else if err != nil {
		log.Error().Err(err).Str("file", fname).Msg("validation failed")
		return false
	}

	log.Info().Str("file", fname).Str("name", ts.Name).Int("tiles", len(ts.Tiles())).Strs("types", ts.Types()).Msg("ok")
	return true
}

// watch re-lints files whenever they're written, until the watcher fails.
func watch(log zerolog.Logger, lm *tileset.LayerMap) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// editors often replace files rather than writing them, so we watch
	// the parent dirs & filter by name
	files := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range args.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			return err
		}
	}

	log.Info().Int("files", len(files)).Msg("watching for changes")
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[ev.Name] || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			lint(log, lm, ev.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func main() {
	kong.Parse(&args, kong.Name("tsx-lint"), kong.Description(desc))
	log := cli.Logger("tsx-lint", args.LogLevel)

	cfg, err := tileset.LoadConfig(args.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load config")
	}

	var lm *tileset.LayerMap
	if args.Layers {
		lm = cfg.Layers
	}

	failed := 0
	for _, f := range args.Files {
		if !lint(log, lm, f) {
			failed++
		}
	}

	if args.Watch {
		if err := watch(log, lm); err != nil {
			log.Fatal().Err(err).Msg("watch failed")
		}
		return
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(args.Files))
		os.Exit(1)
	}
}
