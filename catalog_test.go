package tileset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCatalog returns a catalog with both sample revisions indexed
func testCatalog(t *testing.T) *Catalog {
	c, err := OpenCatalog(filepath.Join(t.TempDir(), "catalog.sqlite"))
	require.Nil(t, err)
	t.Cleanup(func() { c.Close() })

	for _, fname := range []string{revision1, revision2} {
		ts, err := Open(fname)
		require.Nil(t, err)
		require.Nil(t, c.Index(fname, ts))
	}
	return c
}

func TestCatalogTilesets(t *testing.T) {
	c := testCatalog(t)

	entries, err := c.Tilesets()
	require.Nil(t, err)
	require.Equal(t, 2, len(entries))
	assert.Equal(t, &CatalogEntry{Path: revision1, Name: "Basic Tileset", TileWidth: 16, TileHeight: 16, TileCount: 12}, entries[0])
	assert.Equal(t, &CatalogEntry{Path: revision2, Name: "Basic Tileset", TileWidth: 16, TileHeight: 16, TileCount: 11}, entries[1])
}

func TestCatalogOfType(t *testing.T) {
	c := testCatalog(t)

	tiles, err := c.OfType("lava")
	require.Nil(t, err)
	require.Equal(t, 2, len(tiles))
	assert.Equal(t, &CatalogTile{
		Tileset: revision2,
		ID:      7,
		Source:  "../../images/tiles/lava_middle.png",
		Width:   16,
		Height:  16,
		Type:    "lava",
	}, tiles[0])
	assert.Equal(t, uint(8), tiles[1].ID)

	tiles, err = c.OfType("goal")
	require.Nil(t, err)
	assert.Equal(t, 2, len(tiles))

	types, err := c.Types()
	require.Nil(t, err)
	assert.Equal(t, []string{"coin", "danger", "goal", "jump_pad", "ladder", "lava"}, types)
}

func TestCatalogReindex(t *testing.T) {
	c := testCatalog(t)

	// index revision 1 over the top of revision 2
	ts, err := Open(revision1)
	require.Nil(t, err)
	require.Nil(t, c.Index(revision2, ts))

	tiles, err := c.OfType("lava")
	require.Nil(t, err)
	assert.Equal(t, 0, len(tiles))

	tiles, err = c.OfType("danger")
	require.Nil(t, err)
	assert.Equal(t, 4, len(tiles))
}

func TestCatalogProperties(t *testing.T) {
	c := testCatalog(t)

	props, err := c.Properties(revision2, 2)
	require.Nil(t, err)
	v, ok := props.String(TypeProperty)
	assert.True(t, ok)
	assert.Equal(t, "coin", v)

	props, err = c.Properties(revision2, 0)
	require.Nil(t, err)
	assert.Equal(t, 0, props.Len())

	_, err = c.Properties(revision2, 5)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCatalogTypedProperties(t *testing.T) {
	c, err := OpenCatalog(filepath.Join(t.TempDir(), "catalog.sqlite"))
	require.Nil(t, err)
	defer c.Close()

	ts := New("x", 16, 16)
	props := NewProperties()
	props.SetInt("damage", 3)
	props.SetFloat("friction", 0.5)
	props.SetBool("solid", true)
	props.SetFile("sound", "hiss.wav")
	ts.SetTileProperties("a.png", props)
	require.Nil(t, c.Index("x.tsx", ts))

	got, err := c.Properties("x.tsx", 0)
	require.Nil(t, err)
	assert.Equal(t, props.toList(), got.toList())
}

func TestCatalogRemove(t *testing.T) {
	c := testCatalog(t)

	require.Nil(t, c.Remove(revision1))
	assert.True(t, errors.Is(c.Remove(revision1), ErrNotFound))

	entries, err := c.Tilesets()
	require.Nil(t, err)
	assert.Equal(t, 1, len(entries))

	tiles, err := c.OfType("danger")
	require.Nil(t, err)
	assert.Equal(t, 0, len(tiles))
}
