package tileset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where the tools look for a config if none is given
const DefaultConfigPath = "~/.tileset.yaml"

// Config includes settings shared by the tileset tools
type Config struct {
	// in pixels, used for new tilesets
	TileWidth  int `yaml:"tilewidth"`
	TileHeight int `yaml:"tileheight"`

	// where the tile catalog database lives
	Catalog string `yaml:"catalog"`

	// contact sheet layout
	Sheet *SheetOptions `yaml:"sheet"`

	// tile type -> map layer
	Layers *LayerMap `yaml:"layermap"`
}

// DefaultConfig returns a config with default settings.
func DefaultConfig() *Config {
	return &Config{
		TileWidth:  16,
		TileHeight: 16,
		Catalog:    "~/.tileset.sqlite",
		Sheet:      DefaultSheetOptions(),
		Layers:     DefaultLayerMap(),
	}
}

// LoadConfig reads a YAML config from `fname` over the defaults.
// A leading ~ is expanded. If `fname` is the default path & doesn't exist the
// defaults are returned.
func LoadConfig(fname string) (*Config, error) {
	cfg := DefaultConfig()
	if fname == "" {
		fname = DefaultConfigPath
	}

	path, err := homedir.Expand(fname)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && fname == DefaultConfigPath {
		return cfg, cfg.expand()
	} else if err != nil {
		return nil, err
	}

	// a configured layer map replaces the default rather than merging into it
	cfg.Layers = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.Layers == nil {
		cfg.Layers = DefaultLayerMap()
	} else if err := cfg.Layers.build(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Sheet == nil {
		cfg.Sheet = DefaultSheetOptions()
	}
	if cfg.TileWidth <= 0 || cfg.TileHeight <= 0 {
		return nil, fmt.Errorf("%s: tile size must be > 0", path)
	}

	return cfg, cfg.expand()
}

// expand any ~ in configured paths
func (c *Config) expand() error {
	path, err := homedir.Expand(c.Catalog)
	if err != nil {
		return err
	}
	c.Catalog = path
	return nil
}
