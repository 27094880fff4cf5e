package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fogleman/gg"

	"github.com/voidshard/tileset"
	"github.com/voidshard/tileset/internal/cli"
)

const desc = `Renders all tiles of a .tsx tileset onto one png, captioned with their id & type.`

var args struct {
	Input  string `arg:"" help:"tileset file"`
	Output string `short:"o" help:"output png. Defaults to input + .png"`

	Config   string `short:"c" default:"~/.tileset.yaml" help:"config file"`
	Columns  int    `help:"tiles per row (overrides config)"`
	Scale    int    `help:"pixel scale of each tile (overrides config)"`
	NoLabels bool   `help:"don't caption tiles"`
	LogLevel string `default:"info" help:"log level (debug, info, warn, error)"`
}

func main() {
	kong.Parse(&args, kong.Name("tsx-sheet"), kong.Description(desc))
	log := cli.Logger("tsx-sheet", args.LogLevel)

	cfg, err := tileset.LoadConfig(args.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load config")
	}

	opts := *cfg.Sheet
	if args.Columns > 0 {
		opts.Columns = args.Columns
	}
	if args.Scale > 0 {
		opts.Scale = args.Scale
	}
	if args.NoLabels {
		opts.Labels = false
	}

	if args.Output == "" {
		args.Output = fmt.Sprintf("%s.png", strings.TrimSuffix(args.Input, ".tsx"))
	}

	ts, err := tileset.Open(args.Input)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to read tileset")
	}

	img, err := tileset.Sheet(ts, &opts)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to render sheet")
	}

	if err := gg.SavePNG(args.Output, img); err != nil {
		log.Fatal().Err(err).Msg("unable to write sheet")
	}
	log.Info().Str("output", args.Output).Int("tiles", len(ts.Tiles())).Msg("wrote sheet")
}
