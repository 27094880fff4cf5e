package main

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"

	"github.com/voidshard/tileset"
	"github.com/voidshard/tileset/internal/cli"
)

const desc = `Cuts a sprite sheet into one png per tile & writes a 'collection of images' .tsx
tileset referencing them.

Each tile gets the properties given with -p (eg. -p type=lava). If the output tileset
already exists new tiles are appended to it, keeping existing ids.`

var args struct {
	// input image to cut tiles from
	Input string `arg:"" help:"input sprite sheet"`

	// name of output images and tsx
	Name string `short:"n" default:"out" help:"output name"`
	Dir  string `short:"d" default:"." help:"output directory"`

	// tell us it's ok to overwrite existing stuff (default: no)
	Overwrite bool `help:"overwrite existing image file(s) if found"`

	// how wide/high each tile is in pixels, defaults to the config
	TileWidth  int `help:"width of each tile in px"`
	TileHeight int `help:"height of each tile in px"`

	Margin  int `default:"0" help:"border around the sheet in px"`
	Spacing int `default:"0" help:"gap between tiles in px"`

	// resize the sheet to a whole number of tiles first
	Fit bool `help:"resize the sheet to the nearest whole number of tiles before cutting"`

	// set properties on all tiles
	Props map[string]string `short:"p" help:"set props on resulting tiles"`

	// don't write anything
	DryRun bool `help:"print out what you're planning"`

	Config   string `short:"c" default:"~/.tileset.yaml" help:"config file"`
	LogLevel string `default:"info" help:"log level (debug, info, warn, error)"`
}

// sizeToTiles forces input image to be of a width, height of some multiple(s)
// of given input tx,ty (tile x,y size in pixels).
// We default to 1 tile high/wide. Image will be resized to the nearest full
// tile (resized either up or down)
func sizeToTiles(in image.Image, tx, ty int) image.Image {
	width := in.Bounds().Dx()
	height := in.Bounds().Dy()

	fitx := width / tx
	fity := height / ty

	// if we're more than half a tile short, make the image bigger
	// to fit, otherwise we'll resize downwards, shrinking the image
	if width%tx > tx/2 {
		fitx++
	}
	if height%ty > ty/2 {
		fity++
	}

	if fitx < 1 {
		fitx = 1
	}
	if fity < 1 {
		fity = 1
	}

	return resize.Resize(uint(fitx*tx), uint(fity*ty), in, resize.NearestNeighbor)
}

func main() {
	kong.Parse(&args, kong.Name("tsx-build"), kong.Description(desc))
	log := cli.Logger("tsx-build", args.LogLevel)

	cfg, err := tileset.LoadConfig(args.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load config")
	}
	if args.TileWidth <= 0 {
		args.TileWidth = cfg.TileWidth
	}
	if args.TileHeight <= 0 {
		args.TileHeight = cfg.TileHeight
	}

	in, err := gg.LoadImage(args.Input)
	if err != nil {
		log.Fatal().Err(err).Str("input", args.Input).Msg("unable to read image")
	}
	if args.Fit {
		in = sizeToTiles(in, args.TileWidth, args.TileHeight)
	}

	tiles, err := tileset.Slice(in, args.TileWidth, args.TileHeight, args.Margin, args.Spacing)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to cut sheet")
	}

	props := tileset.ParseProperties(args.Props)
	tsxPath := filepath.Join(args.Dir, fmt.Sprintf("%s.tsx", args.Name))

	log.Info().
		Str("input", args.Input).
		Int("tiles", len(tiles)).
		Strs("props", props.Keys()).
		Str("output", tsxPath).
		Msg("cutting sheet")

	if args.DryRun {
		log.Info().Msg("dry-run detected: doing nothing")
		return
	}

	ts := tileset.New(args.Name, args.TileWidth, args.TileHeight)
	if cli.FileExists(tsxPath) {
		ts, err = tileset.Open(tsxPath)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to read existing tileset")
		}
	}

	for _, t := range tiles {
		// image sources are relative to the tsx file & named after the id
		// they'll get, so building into an existing tileset appends
		fname := fmt.Sprintf("%s.%d.png", args.Name, ts.NextID())
		fpath := filepath.Join(args.Dir, fname)

		if cli.FileExists(fpath) && !args.Overwrite {
			log.Warn().Str("file", fpath).Msg("skipping, exists")
		} else if err := gg.SavePNG(fpath, t); err != nil {
			log.Fatal().Err(err).Str("file", fpath).Msg("unable to write tile")
		}

		tile := ts.Add(fname, args.TileWidth, args.TileHeight)
		tile.SetPropertySet(tile.PropertySet().Merge(props))
	}

	if err := tileset.Validate(ts); err != nil {
		log.Fatal().Err(err).Msg("built an invalid tileset")
	}
	if err := ts.WriteFile(tsxPath); err != nil {
		log.Fatal().Err(err).Msg("unable to write tileset")
	}
	log.Info().Str("output", tsxPath).Int("tiles", len(ts.Tiles())).Msg("wrote tileset")
}
