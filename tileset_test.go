package tileset

import (
	"bytes"
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	revision1 = "testdata/basic_v1.tsx"
	revision2 = "testdata/basic_v2.tsx"
)

const imageTileset = `<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.9" tiledversion="1.9.2" name="tile_set_image" tilewidth="32" tileheight="32" spacing="1" margin="1" tilecount="48" columns="8">
 <image source="../../images/tmw_desert_spacing.png" width="265" height="199"/>
 <tile id="0">
  <properties>
   <property name="Test" value="test property"/>
  </properties>
 </tile>
</tileset>
`

func TestDecode(t *testing.T) {
	ts, err := Open(revision1)

	require.Nil(t, err)
	assert.Equal(t, "Basic Tileset", ts.Name)
	assert.Equal(t, "1.8", ts.Version)
	assert.Equal(t, "1.8.4", ts.TiledVersion)
	assert.Equal(t, 16, ts.TileWidth)
	assert.Equal(t, 16, ts.TileHeight)
	assert.Equal(t, 12, ts.TileCount)
	assert.Equal(t, 0, ts.Columns)
	assert.Equal(t, 12, len(ts.Tiles()))
	assert.True(t, ts.IsCollection())
	assert.Equal(t, "testdata", ts.Dir())
	assert.Equal(t, &Grid{Orientation: OrientationOrthogonal, Width: 1, Height: 1}, ts.Grid)

	tile, err := ts.Tile(4)
	require.Nil(t, err)
	assert.Equal(t, "goal", tile.Type())
	assert.Equal(t, "../../images/tiles/green_flag.png", tile.Source())
	assert.Equal(t, 16, tile.Image.Width)
	assert.Equal(t, 16, tile.Image.Height)

	tile, err = ts.BySource("../../images/tiles/brick.png")
	require.Nil(t, err)
	assert.Equal(t, uint(0), tile.ID)
	assert.Equal(t, "", tile.Type())
}

func TestDecodeRevisionWithGap(t *testing.T) {
	ts, err := Open(revision2)

	require.Nil(t, err)
	assert.Equal(t, 11, len(ts.Tiles()))
	assert.Equal(t, []uint{0, 1, 2, 3, 4, 6, 7, 8, 9, 10, 11}, ts.IDs())

	_, err = ts.Tile(5)
	assert.True(t, errors.Is(err, ErrNotFound))

	tile, err := ts.Tile(2)
	require.Nil(t, err)
	assert.Equal(t, "coin", tile.Type())
}

func TestDecodeDuplicateID(t *testing.T) {
	in := `<tileset name="x" tilewidth="16" tileheight="16" tilecount="2" columns="0">
 <tile id="1"><image width="16" height="16" source="a.png"/></tile>
 <tile id="1"><image width="16" height="16" source="b.png"/></tile>
</tileset>`

	_, err := Decode(strings.NewReader(in))

	assert.True(t, errors.Is(err, ErrDuplicateID))
}

func TestDecodeNotATileset(t *testing.T) {
	_, err := Decode(strings.NewReader(`<map width="1" height="1"></map>`))
	assert.NotNil(t, err)

	_, err = Decode(strings.NewReader(`<tileset name="x"`))
	assert.NotNil(t, err)
}

func TestDecodeImageTileset(t *testing.T) {
	ts, err := Decode(strings.NewReader(imageTileset))

	require.Nil(t, err)
	assert.False(t, ts.IsCollection())
	assert.Equal(t, 48, ts.TileCount)
	assert.Equal(t, 8, ts.Columns)
	assert.Equal(t, 1, ts.Margin)
	assert.Equal(t, 1, ts.Spacing)
	assert.Equal(t, &Image{Source: "../../images/tmw_desert_spacing.png", Width: 265, Height: 199}, ts.Image)

	v, ok := ts.TileList[0].PropertySet().String("Test")
	assert.True(t, ok)
	assert.Equal(t, "test property", v)
}

func TestTileRect(t *testing.T) {
	ts, err := Decode(strings.NewReader(imageTileset))
	require.Nil(t, err)

	r, err := ts.TileRect(0)
	assert.Nil(t, err)
	assert.Equal(t, image.Rect(1, 1, 33, 33), r)

	r, err = ts.TileRect(9)
	assert.Nil(t, err)
	assert.Equal(t, image.Rect(34, 34, 66, 66), r)

	_, err = ts.TileRect(48)
	assert.True(t, errors.Is(err, ErrNotFound))

	collection, err := Open(revision1)
	require.Nil(t, err)
	_, err = collection.TileRect(0)
	assert.NotNil(t, err)
}

func TestEncode(t *testing.T) {
	ts, err := Open(revision1)
	require.Nil(t, err)

	buf := bytes.Buffer{}
	err = ts.Encode(&buf)
	require.Nil(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<tileset version="1.8" tiledversion="1.8.4" name="Basic Tileset" tilewidth="16" tileheight="16" tilecount="12" columns="0">`)
	assert.Contains(t, out, `<image source="../../images/tiles/lava_top.png" width="16" height="16"></image>`)

	again, err := Decode(&buf)
	require.Nil(t, err)

	diff := cmp.Diff(ts, again, cmpopts.IgnoreUnexported(Tileset{}), cmpopts.EquateEmpty())
	assert.Equal(t, "", diff)
}

func TestWriteFile(t *testing.T) {
	ts, err := Open(revision2)
	require.Nil(t, err)

	fname := filepath.Join(t.TempDir(), "out.tsx")
	require.Nil(t, ts.WriteFile(fname))
	assert.Equal(t, filepath.Dir(fname), ts.Dir())

	again, err := Open(fname)
	require.Nil(t, err)
	assert.Equal(t, ts.IDs(), again.IDs())
	assert.Equal(t, ts.Types(), again.Types())
}

func TestAddRemove(t *testing.T) {
	ts := New("things", 16, 16)

	a := ts.Add("a.png", 16, 16)
	b := ts.Add("b.png", 16, 16)
	ts.Add("c.png", 16, 16)

	assert.Equal(t, uint(0), a.ID)
	assert.Equal(t, uint(1), b.ID)
	assert.Equal(t, 3, ts.TileCount)
	assert.Equal(t, a, ts.Add("a.png", 32, 32))

	require.Nil(t, ts.Remove(1))
	assert.True(t, errors.Is(ts.Remove(1), ErrNotFound))

	// removed ids are not reused
	d := ts.Add("d.png", 16, 16)
	assert.Equal(t, uint(3), d.ID)
	assert.Equal(t, []uint{0, 2, 3}, ts.IDs())
	assert.Equal(t, 3, ts.TileCount)

	_, err := ts.BySource("b.png")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Nil(t, Validate(ts))
}

func TestAddDuplicateIDs(t *testing.T) {
	ts := &Tileset{
		Name:       "things",
		TileWidth:  16,
		TileHeight: 16,
		TileList: []*Tile{
			{ID: 0, Image: &Image{Source: "a.png", Width: 16, Height: 16}},
			{ID: 0, Image: &Image{Source: "b.png", Width: 16, Height: 16}},
		},
	}

	b := ts.Add("b.png", 16, 16)

	assert.Equal(t, ts.TileList[1], b)
	assert.Equal(t, 2, len(ts.TileList))

	c := ts.Add("c.png", 16, 16)
	assert.Equal(t, uint(1), c.ID)
	assert.True(t, errors.Is(ts.index(), ErrDuplicateID))
}

func TestNextID(t *testing.T) {
	ts, err := Open(revision2)
	require.Nil(t, err)
	assert.Equal(t, uint(12), ts.NextID())

	require.Nil(t, ts.Remove(11))
	assert.Equal(t, uint(11), ts.NextID())

	assert.Equal(t, uint(0), New("x", 16, 16).NextID())
}

func TestTypes(t *testing.T) {
	ts, err := Open(revision1)
	require.Nil(t, err)

	assert.Equal(t, []string{"danger", "goal", "jump_pad", "ladder"}, ts.Types())

	danger := ts.OfType("danger")
	require.Equal(t, 2, len(danger))
	assert.Equal(t, uint(7), danger[0].ID)
	assert.Equal(t, uint(8), danger[1].ID)

	assert.Equal(t, 0, len(ts.OfType("coin")))
}

func TestTypeAttributes(t *testing.T) {
	in := `<tileset name="x" tilewidth="16" tileheight="16" tilecount="3" columns="0">
 <tile id="0" type="ladder"><image width="16" height="16" source="a.png"/></tile>
 <tile id="1" class="coin"><image width="16" height="16" source="b.png"/></tile>
 <tile id="2" class="coin">
  <properties><property name="type" value="lava"/></properties>
  <image width="16" height="16" source="c.png"/>
 </tile>
</tileset>`

	ts, err := Decode(strings.NewReader(in))
	require.Nil(t, err)

	assert.Equal(t, []string{"coin", "ladder", "lava"}, ts.Types())

	tile, _ := ts.Tile(0)
	tile.SetType("goal")
	assert.Equal(t, "goal", tile.Type())
	assert.Equal(t, "", tile.TypeAttr)

	tile.SetType("")
	assert.Equal(t, "", tile.Type())
	assert.Equal(t, 0, len(tile.Properties))
}

func TestSetTileProperties(t *testing.T) {
	ts := New("things", 16, 16)

	props := NewProperties()
	props.SetString(TypeProperty, "coin")
	props.SetInt("value", 10)
	ts.SetTileProperties("coin.png", props)

	tile, err := ts.BySource("coin.png")
	require.Nil(t, err)
	assert.Equal(t, "coin", tile.Type())
	assert.Equal(t, 16, tile.Image.Width)

	got := ts.TileProperties("coin.png")
	v, ok := got.Int("value")
	assert.True(t, ok)
	assert.Equal(t, 10, v)

	assert.Nil(t, ts.TileProperties("missing.png"))
}
