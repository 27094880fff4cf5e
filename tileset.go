/* file adds helper functions to our tsx tileset struct.
 */
package tileset

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/renameio/v2"
)

var (
	// ErrNotFound is returned when a tile does not exist
	ErrNotFound = errors.New("tile not found")

	// ErrDuplicateID is returned when two tiles share an id
	ErrDuplicateID = errors.New("duplicate tile id")
)

// New returns a new (collection of images) tileset with defaults set.
func New(name string, tileWidth, tileHeight int) *Tileset {
	return &Tileset{
		Name:       name,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Grid:       &Grid{Orientation: OrientationOrthogonal, Width: 1, Height: 1},
		Properties: []*Property{},
		TileList:   []*Tile{},
		tileByID:   map[uint]*Tile{},
		tileBySrc:  map[string]*Tile{},
	}
}

// index rebuilds our internal lookup caches from the tile list.
func (ts *Tileset) index() error {
	ts.tileByID = map[uint]*Tile{}
	ts.tileBySrc = map[string]*Tile{}

	// keep going on duplicates so every source is still indexed
	var err error
	for _, t := range ts.TileList {
		if _, ok := ts.tileByID[t.ID]; ok {
			if err == nil {
				err = fmt.Errorf("%w: %d", ErrDuplicateID, t.ID)
			}
		} else {
			ts.tileByID[t.ID] = t
		}

		src := t.Source()
		if src == "" {
			continue
		}
		if _, ok := ts.tileBySrc[src]; !ok {
			// first tile wins if an image is used twice
			ts.tileBySrc[src] = t
		}
	}
	return err
}

// Dir returns the directory the tileset was read from (or "" if it was
// not read from disk). Image sources are relative to this.
func (ts *Tileset) Dir() string {
	return ts.dir
}

// TilesetProperties returns properties set on the tileset itself
func (ts *Tileset) TilesetProperties() *Properties {
	return newPropertiesFromList(ts.Properties)
}

// SetTilesetProperties sets properties on the tileset
func (ts *Tileset) SetTilesetProperties(in *Properties) {
	ts.Properties = in.toList()
}

// Tiles returns all tiles in document order.
func (ts *Tileset) Tiles() []*Tile {
	return ts.TileList
}

// IDs returns all tile ids in document order.
func (ts *Tileset) IDs() []uint {
	ids := make([]uint, len(ts.TileList))
	for i, t := range ts.TileList {
		ids[i] = t.ID
	}
	return ids
}

// Tile returns the tile with the given id
func (ts *Tileset) Tile(id uint) (*Tile, error) {
	t, ok := ts.tileByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return t, nil
}

// BySource returns the tile using the given image source
func (ts *Tileset) BySource(src string) (*Tile, error) {
	t, ok := ts.tileBySrc[src]
	if !ok {
		return nil, fmt.Errorf("%w: source %s", ErrNotFound, src)
	}
	return t, nil
}

// IsCollection returns if this is a 'collection of images' tileset, that is
// each tile has it's own image rather than being cut from one sheet.
func (ts *Tileset) IsCollection() bool {
	return ts.Image == nil
}

// NextID returns one past the highest id in use. Ids that were removed
// are never reused.
func (ts *Tileset) NextID() uint {
	next := uint(0)
	for _, t := range ts.TileList {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// Add registers a new tile by it's image & returns it.
// If the image is already in the tileset the existing tile is returned.
func (ts *Tileset) Add(source string, width, height int) *Tile {
	if ts.tileByID == nil {
		if err := ts.index(); err != nil {
			logger.Warn().Err(err).Str("name", ts.Name).Msg("tileset has duplicate ids")
		}
	}
	if t, ok := ts.tileBySrc[source]; ok {
		return t
	}

	t := &Tile{
		ID:         ts.NextID(),
		Image:      &Image{Source: source, Width: width, Height: height},
		Properties: []*Property{},
	}
	ts.TileList = append(ts.TileList, t)
	ts.tileByID[t.ID] = t
	ts.tileBySrc[source] = t
	ts.TileCount = len(ts.TileList)
	return t
}

// Remove deletes the tile with the given id. Other ids are left as is.
func (ts *Tileset) Remove(id uint) error {
	for i, t := range ts.TileList {
		if t.ID != id {
			continue
		}
		ts.TileList = append(ts.TileList[:i], ts.TileList[i+1:]...)
		ts.TileCount = len(ts.TileList)
		return ts.index()
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// TileProperties returns the properties of the tile indicated by the `source`
// image (or nil).
func (ts *Tileset) TileProperties(source string) *Properties {
	t, ok := ts.tileBySrc[source]
	if !ok {
		return nil
	}
	return t.PropertySet()
}

// SetTileProperties sets properties on the tile indicated by the given source
// image. The tile is added (with the tileset tile size) if needed.
func (ts *Tileset) SetTileProperties(source string, in *Properties) {
	if source == "" {
		return
	}
	t := ts.Add(source, ts.TileWidth, ts.TileHeight)
	t.SetPropertySet(in)
}

// Types returns all distinct tile types, sorted.
func (ts *Tileset) Types() []string {
	seen := map[string]bool{}
	types := []string{}
	for _, t := range ts.TileList {
		typ := t.Type()
		if typ == "" || seen[typ] {
			continue
		}
		seen[typ] = true
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// OfType returns all tiles of the given type in document order.
func (ts *Tileset) OfType(typ string) []*Tile {
	found := []*Tile{}
	for _, t := range ts.TileList {
		if t.Type() == typ {
			found = append(found, t)
		}
	}
	return found
}

// TileRect returns the rectangle of the tile `id` within the tileset image.
// Only valid for image based tilesets.
func (ts *Tileset) TileRect(id uint) (image.Rectangle, error) {
	if ts.IsCollection() {
		return image.Rectangle{}, fmt.Errorf("tileset %q has no sheet image", ts.Name)
	}
	if ts.Columns <= 0 {
		return image.Rectangle{}, fmt.Errorf("tileset %q has no columns", ts.Name)
	}
	if ts.TileCount > 0 && int(id) >= ts.TileCount {
		return image.Rectangle{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	col := int(id) % ts.Columns
	row := int(id) / ts.Columns

	x := ts.Margin + col*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + row*(ts.TileHeight+ts.Spacing)
	return image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight), nil
}

// Encode the current tileset as XML to a io.Writer stream
func (ts *Tileset) Encode(w io.Writer) error {
	if ts.IsCollection() {
		ts.TileCount = len(ts.TileList)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(ts); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Decode an input TSX tileset XML
func Decode(r io.Reader) (*Tileset, error) {
	ts := &Tileset{}
	if err := xml.NewDecoder(r).Decode(ts); err != nil {
		return nil, fmt.Errorf("decoding tileset: %w", err)
	}

	if err := ts.index(); err != nil {
		return nil, err
	}

	logger.Debug().Str("name", ts.Name).Int("tiles", len(ts.TileList)).Msg("decoded tileset")
	return ts, nil
}

// Open reads a tileset from the given file.
func Open(fname string) (*Tileset, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ts, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	ts.dir = filepath.Dir(fname)
	return ts, nil
}

// WriteFile encodes the tileset to the given file, replacing it atomically.
func (ts *Tileset) WriteFile(fname string) error {
	buff := bytes.Buffer{}
	err := ts.Encode(&buff)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(fname, buff.Bytes(), 0644); err != nil {
		return err
	}
	ts.dir = filepath.Dir(fname)
	return nil
}
