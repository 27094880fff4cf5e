package tileset

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	LayerPlatforms = "Platforms"
	LayerLadders   = "Ladders"
	LayerCoins     = "Coins"
	LayerDangers   = "Dangers"
	LayerGoal      = "Goal"
	LayerJumpPads  = "Jump Pads"
)

// LayerMap says which map layer tiles of a given type belong on.
// Untyped tiles go on the Default layer.
type LayerMap struct {
	Default string              `yaml:"default"`
	Layers  map[string][]string `yaml:"layers"` // layer name -> tile types

	byType map[string]string
}

// DefaultLayerMap returns the layers used by the platformer levels.
func DefaultLayerMap() *LayerMap {
	lm := &LayerMap{
		Default: LayerPlatforms,
		Layers: map[string][]string{
			LayerLadders:  {"ladder"},
			LayerCoins:    {"coin"},
			LayerDangers:  {"lava", "danger"},
			LayerGoal:     {"goal"},
			LayerJumpPads: {"blue_jump_pad", "green_jump_pad", "jump_pad"},
		},
	}
	// the defaults contain no duplicates
	lm.build()
	return lm
}

// build the reverse (type -> layer) index, failing if a type is claimed by
// two layers.
func (lm *LayerMap) build() error {
	lm.byType = map[string]string{}

	// iterate in a fixed order so errors are stable
	names := make([]string, 0, len(lm.Layers))
	for name := range lm.Layers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, typ := range lm.Layers[name] {
			if other, ok := lm.byType[typ]; ok && other != name {
				return fmt.Errorf("type %q is mapped to both %q and %q", typ, other, name)
			}
			lm.byType[typ] = name
		}
	}
	return nil
}

// Layer returns the layer for the given tile type.
// The empty type maps to the default layer.
func (lm *LayerMap) Layer(typ string) (string, bool) {
	if typ == "" {
		return lm.Default, lm.Default != ""
	}
	if lm.byType == nil {
		if err := lm.build(); err != nil {
			return "", false
		}
	}
	name, ok := lm.byType[typ]
	return name, ok
}

// Classification is the result of sorting a tilesets tiles into layers.
type Classification struct {
	Layers   map[string][]*Tile // layer name -> tiles in document order
	Unmapped []*Tile            // tiles with a type no layer claims
}

// LayerNames returns the names of all layers with at least one tile, sorted.
func (c *Classification) LayerNames() []string {
	names := make([]string, 0, len(c.Layers))
	for name := range c.Layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classify sorts all tiles in `ts` into their layers.
func (lm *LayerMap) Classify(ts *Tileset) *Classification {
	c := &Classification{Layers: map[string][]*Tile{}, Unmapped: []*Tile{}}
	for _, t := range ts.Tiles() {
		name, ok := lm.Layer(t.Type())
		if !ok {
			c.Unmapped = append(c.Unmapped, t)
			continue
		}
		c.Layers[name] = append(c.Layers[name], t)
	}
	return c
}

// DecodeLayerMap reads a YAML layer map
//
//	default: Platforms
//	layers:
//	  Ladders: [ladder]
func DecodeLayerMap(r io.Reader) (*LayerMap, error) {
	lm := &LayerMap{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(lm); err != nil {
		return nil, fmt.Errorf("decoding layer map: %w", err)
	}
	if lm.Layers == nil {
		lm.Layers = map[string][]string{}
	}
	if err := lm.build(); err != nil {
		return nil, err
	}
	return lm, nil
}

// OpenLayerMap reads a YAML layer map from disk
func OpenLayerMap(fname string) (*LayerMap, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeLayerMap(f)
}
