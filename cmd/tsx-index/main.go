package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/voidshard/tileset"
	"github.com/voidshard/tileset/internal/cli"
)

const desc = `Maintains a catalog (sqlite database) of tiles across many .tsx files so tiles can be
found by their type without opening every tileset.`

var args struct {
	Catalog  string `short:"d" help:"catalog database file. Defaults to the config value"`
	Config   string `short:"c" default:"~/.tileset.yaml" help:"config file"`
	LogLevel string `default:"info" help:"log level (debug, info, warn, error)"`

	Add struct {
		Files []string `arg:"" help:"tileset files to (re)index"`
	} `cmd:"" help:"index tileset files, replacing any previous entries"`

	Rm struct {
		Files []string `arg:"" help:"tileset files to remove"`
	} `cmd:"" help:"remove tileset files from the catalog"`

	List struct{} `cmd:"" help:"list indexed tilesets"`

	Types struct{} `cmd:"" help:"list all tile types"`

	Find struct {
		Type string `arg:"" help:"tile type, eg. lava"`
	} `cmd:"" help:"list tiles of the given type"`

	Props struct {
		File string `arg:"" help:"tileset file"`
		ID   uint   `arg:"" help:"tile id"`
	} `cmd:"" help:"print a tiles properties"`
}

// key returns the path we index a file under
func key(fname string) string {
	abs, err := filepath.Abs(fname)
	if err != nil {
		return fname
	}
	return abs
}

func main() {
	ctx := kong.Parse(&args, kong.Name("tsx-index"), kong.Description(desc))
	log := cli.Logger("tsx-index", args.LogLevel)

	cfg, err := tileset.LoadConfig(args.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load config")
	}
	if args.Catalog == "" {
		args.Catalog = cfg.Catalog
	}

	cat, err := tileset.OpenCatalog(args.Catalog)
	if err != nil {
		log.Fatal().Err(err).Str("catalog", args.Catalog).Msg("unable to open catalog")
	}
	defer cat.Close()

	switch ctx.Command() {
	case "add <files>":
		failed := 0
		for _, f := range args.Add.Files {
			ts, err := tileset.Open(f)
			if err != nil {
				log.Error().Err(err).Str("file", f).Msg("unable to read tileset")
				failed++
				continue
			}
			if err := cat.Index(key(f), ts); err != nil {
				log.Error().Err(err).Str("file", f).Msg("unable to index tileset")
				failed++
				continue
			}
			log.Info().Str("file", f).Int("tiles", len(ts.Tiles())).Msg("indexed")
		}
		if failed > 0 {
			cat.Close()
			os.Exit(1)
		}
	case "rm <files>":
		failed := 0
		for _, f := range args.Rm.Files {
			if err := cat.Remove(key(f)); err != nil {
				log.Error().Err(err).Str("file", f).Msg("unable to remove tileset")
				failed++
			}
		}
		if failed > 0 {
			cat.Close()
			os.Exit(1)
		}
	case "list":
		entries, err := cat.Tilesets()
		if err != nil {
			log.Fatal().Err(err).Msg("unable to list tilesets")
		}
		for _, e := range entries {
			fmt.Printf("%s\t%s\t%dx%d\t%d tiles\n", e.Path, e.Name, e.TileWidth, e.TileHeight, e.TileCount)
		}
	case "types":
		types, err := cat.Types()
		if err != nil {
			log.Fatal().Err(err).Msg("unable to list types")
		}
		fmt.Println(strings.Join(types, "\n"))
	case "find <type>":
		tiles, err := cat.OfType(args.Find.Type)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to find tiles")
		}
		for _, t := range tiles {
			fmt.Printf("%s\t%d\t%s\n", t.Tileset, t.ID, t.Source)
		}
	case "props <file> <id>":
		props, err := cat.Properties(key(args.Props.File), args.Props.ID)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to read properties")
		}
		for _, k := range props.Keys() {
			fmt.Printf("%s\t%s\n", k, propString(props, k))
		}
	}
}

// propString formats property `k` whatever it's type
func propString(p *tileset.Properties, k string) string {
	if v, ok := p.String(k); ok {
		return v
	}
	if v, ok := p.Int(k); ok {
		return fmt.Sprintf("%d", v)
	}
	if v, ok := p.Float(k); ok {
		return fmt.Sprintf("%v", v)
	}
	if v, ok := p.Bool(k); ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
