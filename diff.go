package tileset

import (
	"fmt"
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Changes describes how one revision of a tileset differs from another.
type Changes struct {
	Header  []string // human readable changes to tileset attributes
	Added   []*Tile  // tiles only in the new revision
	Removed []*Tile  // tiles only in the old revision
	Changed []*TileChange
}

// TileChange is a tile present in both revisions with different content.
type TileChange struct {
	ID      uint
	Old     *Tile
	New     *Tile
	OldType string
	NewType string
	Report  string // cmp report, (-old +new)
}

// Empty returns if there are no changes at all
func (c *Changes) Empty() bool {
	return len(c.Header) == 0 && len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

// tileOpts ignores property ordering, which Tiled does not preserve, and
// whether a value was written as an attribute or character data.
var tileOpts = cmp.Options{
	cmpopts.SortSlices(func(a, b *Property) bool { return a.Name < b.Name }),
	cmpopts.EquateEmpty(),
	cmp.Transformer("property", func(p *Property) propertyValue {
		if p == nil {
			return propertyValue{}
		}
		v, _ := p.value()
		typ := p.Type
		if typ == "" {
			typ = PropString
		}
		return propertyValue{Name: p.Name, Type: typ, Value: v}
	}),
}

type propertyValue struct {
	Name  string
	Type  string
	Value string
}

// Diff compares the `old` and `cur` (current) revisions of a tileset.
// Tiles are matched by id.
func Diff(old, cur *Tileset) *Changes {
	c := &Changes{Header: []string{}, Added: []*Tile{}, Removed: []*Tile{}, Changed: []*TileChange{}}

	header := func(name string, a, b interface{}) {
		if a != b {
			c.Header = append(c.Header, fmt.Sprintf("%s: %v -> %v", name, a, b))
		}
	}
	header("name", old.Name, cur.Name)
	header("version", old.Version, cur.Version)
	header("tiledversion", old.TiledVersion, cur.TiledVersion)
	header("tilewidth", old.TileWidth, cur.TileWidth)
	header("tileheight", old.TileHeight, cur.TileHeight)
	header("tilecount", old.TileCount, cur.TileCount)
	header("columns", old.Columns, cur.Columns)
	header("margin", old.Margin, cur.Margin)
	header("spacing", old.Spacing, cur.Spacing)
	if !cmp.Equal(old.Image, cur.Image) {
		c.Header = append(c.Header, fmt.Sprintf("image: %s", cmp.Diff(old.Image, cur.Image)))
	}
	if !cmp.Equal(old.Grid, cur.Grid) {
		c.Header = append(c.Header, fmt.Sprintf("grid: %s", cmp.Diff(old.Grid, cur.Grid)))
	}
	if !cmp.Equal(old.Properties, cur.Properties, tileOpts) {
		c.Header = append(c.Header, fmt.Sprintf("properties: %s", cmp.Diff(old.Properties, cur.Properties, tileOpts)))
	}

	oldByID := map[uint]*Tile{}
	for _, t := range old.Tiles() {
		oldByID[t.ID] = t
	}
	newByID := map[uint]*Tile{}
	for _, t := range cur.Tiles() {
		newByID[t.ID] = t

		o, ok := oldByID[t.ID]
		if !ok {
			c.Added = append(c.Added, t)
			continue
		}
		if cmp.Equal(o, t, tileOpts) {
			continue
		}
		c.Changed = append(c.Changed, &TileChange{
			ID:      t.ID,
			Old:     o,
			New:     t,
			OldType: o.Type(),
			NewType: t.Type(),
			Report:  cmp.Diff(o, t, tileOpts),
		})
	}
	for _, t := range old.Tiles() {
		if _, ok := newByID[t.ID]; !ok {
			c.Removed = append(c.Removed, t)
		}
	}

	sort.Slice(c.Changed, func(i, j int) bool { return c.Changed[i].ID < c.Changed[j].ID })
	return c
}
