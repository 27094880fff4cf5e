/* this file holds the structs for reading & writing TSX (external tileset) files.

See doc.mapeditor.org/en/stable/reference/tmx-map-format/#tileset

We support the parts of the format used by "collection of images" tilesets
(one image per tile) and the simpler image based tilesets (one sheet, cut
into a grid). Wang sets, terrain, animation & object groups are not parsed.
*/
package tileset

import (
	"encoding/xml"
	"strings"
)

const (
	// OrientationOrthogonal is the only grid orientation we emit by default
	OrientationOrthogonal = "orthogonal"
)

// Tileset is a TSX file structure representing a Tiled tileset as a whole.
type Tileset struct {
	XMLName      xml.Name    `xml:"tileset"`
	Version      string      `xml:"version,attr,omitempty"`      // format version
	TiledVersion string      `xml:"tiledversion,attr,omitempty"` // editor version that wrote the file
	Name         string      `xml:"name,attr"`
	TileWidth    int         `xml:"tilewidth,attr"`  // in pixels
	TileHeight   int         `xml:"tileheight,attr"` // in pixels
	Spacing      int         `xml:"spacing,attr,omitempty"`
	Margin       int         `xml:"margin,attr,omitempty"`
	TileCount    int         `xml:"tilecount,attr"`
	Columns      int         `xml:"columns,attr"` // 0 for collection tilesets
	Grid         *Grid       `xml:"grid,omitempty"`
	Properties   []*Property `xml:"properties>property"`
	Image        *Image      `xml:"image,omitempty"` // set only for image based tilesets
	TileList     []*Tile     `xml:"tile"`

	dir       string
	tileByID  map[uint]*Tile
	tileBySrc map[string]*Tile
}

// Grid describes how tile overlays are drawn in the editor.
type Grid struct {
	Orientation string `xml:"orientation,attr"`
	Width       int    `xml:"width,attr"`
	Height      int    `xml:"height,attr"`
}

// Property is a TSX file structure which holds a Tiled property.
type Property struct {
	Name  string `xml:"name,attr"`
	Type  string `xml:"type,attr,omitempty"` // string (default), int, float, bool, color, file
	Value string `xml:"value,attr,omitempty"`
	Text  string `xml:",chardata"` // multi-line string values are written as character data
}

// value returns the property value, falling back to character data.
// ok is false if the property carries no value at all.
func (p *Property) value() (string, bool) {
	if p.Value != "" {
		return p.Value, true
	}
	text := strings.TrimSpace(p.Text)
	if text != "" {
		return text, true
	}
	return "", false
}

// Image is an image file reference in TSX
type Image struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

// Tile is a TSX tile definition.
type Tile struct {
	ID         uint        `xml:"id,attr"`
	TypeAttr   string      `xml:"type,attr,omitempty"`  // Tiled <= 1.8
	Class      string      `xml:"class,attr,omitempty"` // Tiled >= 1.9
	Properties []*Property `xml:"properties>property"`
	Image      *Image      `xml:"image,omitempty"`
}

// Source returns the tile image source (or "" if there is no image)
func (t *Tile) Source() string {
	if t.Image == nil {
		return ""
	}
	return t.Image.Source
}

// Type returns the gameplay tag of this tile.
// The "type" property wins over the type / class attributes.
func (t *Tile) Type() string {
	for _, p := range t.Properties {
		if p.Name != TypeProperty {
			continue
		}
		if v, ok := p.value(); ok {
			return v
		}
	}
	if t.TypeAttr != "" {
		return t.TypeAttr
	}
	return t.Class
}

// SetType sets the "type" property on the tile, replacing any existing one.
// Passing "" removes the tag.
func (t *Tile) SetType(typ string) {
	props := t.PropertySet()
	if typ == "" {
		props.Delete(TypeProperty)
	} else {
		props.SetString(TypeProperty, typ)
	}
	t.Properties = props.toList()
	t.TypeAttr = ""
	t.Class = ""
}

// PropertySet returns the tiles properties in the typed wrapper
func (t *Tile) PropertySet() *Properties {
	return newPropertiesFromList(t.Properties)
}

// SetPropertySet overwrites the tiles properties
func (t *Tile) SetPropertySet(in *Properties) {
	t.Properties = in.toList()
}
