package tileset

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const (
	sqlUpsertTileset = `INSERT INTO tilesets (path, name, tilewidth, tileheight, tilecount) VALUES (:path, :name, :tilewidth, :tileheight, :tilecount)
		ON CONFLICT (path) DO UPDATE SET name=EXCLUDED.name, tilewidth=EXCLUDED.tilewidth, tileheight=EXCLUDED.tileheight, tilecount=EXCLUDED.tilecount;`
	sqlInsertTile = `INSERT INTO tiles (id, tileset, tile_id, src, width, height, type, props) VALUES (:id, :tileset, :tile_id, :src, :width, :height, :type, :props)`
)

// Catalog is an index of tiles across any number of tileset files, kept in a
// sqlite database on disk so we can find tiles by type (or source) without
// re-reading every .tsx file.
type Catalog struct {
	filename string
	db       *sqlx.DB
}

// CatalogEntry is a tileset known to the catalog
type CatalogEntry struct {
	Path       string `db:"path"`
	Name       string `db:"name"`
	TileWidth  int    `db:"tilewidth"`
	TileHeight int    `db:"tileheight"`
	TileCount  int    `db:"tilecount"`
}

// CatalogTile is a single tile as stored in the catalog
type CatalogTile struct {
	Tileset string `db:"tileset"` // path of the owning tileset
	ID      uint   `db:"tile_id"`
	Source  string `db:"src"`
	Width   int    `db:"width"`
	Height  int    `db:"height"`
	Type    string `db:"type"`
}

// dbTile object encodes a single tile.
// The ID here is unique per (tileset, tile id).
type dbTile struct {
	ID      string `db:"id"`
	Tileset string `db:"tileset"`
	TileID  uint   `db:"tile_id"`
	Src     string `db:"src"`
	Width   int    `db:"width"`
	Height  int    `db:"height"`
	Type    string `db:"type"`
	Props   string `db:"props"`
}

// dbProps is the JSON form of a tiles properties
type dbProps struct {
	I map[string]int
	F map[string]float64
	S map[string]string
	B map[string]bool
	K map[string]string
}

// newDBTile crafts a dbTile struct given it's inputs.
// Properties are encoded into JSON.
func newDBTile(path string, t *Tile) (dbTile, error) {
	props := t.PropertySet()
	data, err := json.Marshal(dbProps{I: props.ints, F: props.floats, S: props.strings, B: props.bools, K: props.kinds})
	if err != nil {
		return dbTile{}, err
	}

	row := dbTile{
		ID:      fmt.Sprintf("%s#%d", path, t.ID),
		Tileset: path,
		TileID:  t.ID,
		Type:    t.Type(),
		Props:   string(data),
	}
	if t.Image != nil {
		row.Src = t.Image.Source
		row.Width = t.Image.Width
		row.Height = t.Image.Height
	}
	return row, nil
}

// OpenCatalog given it's filename (database file) on disk.
// Will create if it doesn't exist.
func OpenCatalog(fname string) (*Catalog, error) {
	db, err := sqlx.Open("sqlite3", fname)
	if err != nil {
		return nil, err
	}

	c := &Catalog{db: db, filename: fname}
	if err := c.init(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Filename returns the path to the catalog data on disk
func (c *Catalog) Filename() string {
	return c.filename
}

// Close the underlying database
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Index adds (or replaces) the given tileset under `path`.
// All rows for the tileset are swapped in a single transaction.
func (c *Catalog) Index(path string, ts *Tileset) error {
	path = filepath.Clean(path)

	rows := make([]dbTile, 0, len(ts.Tiles()))
	for _, t := range ts.Tiles() {
		row, err := newDBTile(path, t)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	txn, err := c.db.Beginx()
	if err != nil {
		return err
	}

	_, err = txn.NamedExec(sqlUpsertTileset, CatalogEntry{
		Path:       path,
		Name:       ts.Name,
		TileWidth:  ts.TileWidth,
		TileHeight: ts.TileHeight,
		TileCount:  ts.TileCount,
	})
	if err != nil {
		txn.Rollback()
		return err
	}

	_, err = txn.Exec("DELETE FROM tiles WHERE tileset=?;", path)
	if err != nil {
		txn.Rollback()
		return err
	}

	if len(rows) > 0 {
		_, err = txn.NamedExec(sqlInsertTile, rows)
		if err != nil {
			txn.Rollback()
			return err
		}
	}

	if err := txn.Commit(); err != nil {
		return err
	}

	logger.Debug().Str("path", path).Int("tiles", len(rows)).Msg("indexed tileset")
	return nil
}

// Remove drops the tileset at `path` (and it's tiles) from the catalog.
func (c *Catalog) Remove(path string) error {
	path = filepath.Clean(path)

	txn, err := c.db.Beginx()
	if err != nil {
		return err
	}
	if _, err := txn.Exec("DELETE FROM tiles WHERE tileset=?;", path); err != nil {
		txn.Rollback()
		return err
	}
	res, err := txn.Exec("DELETE FROM tilesets WHERE path=?;", path)
	if err != nil {
		txn.Rollback()
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		txn.Rollback()
		return fmt.Errorf("%w: tileset %s", ErrNotFound, path)
	}
	return txn.Commit()
}

// Tilesets returns all indexed tilesets, ordered by path.
func (c *Catalog) Tilesets() ([]*CatalogEntry, error) {
	found := []*CatalogEntry{}
	err := c.db.Select(&found, "SELECT path,name,tilewidth,tileheight,tilecount FROM tilesets ORDER BY path;")
	return found, err
}

// OfType returns all tiles of the given type across all tilesets,
// ordered by tileset path then tile id.
func (c *Catalog) OfType(typ string) ([]*CatalogTile, error) {
	found := []*CatalogTile{}
	err := c.db.Select(
		&found,
		"SELECT tileset,tile_id,src,width,height,type FROM tiles WHERE type=? ORDER BY tileset, tile_id;",
		typ,
	)
	return found, err
}

// Types returns all distinct tile types across all tilesets, sorted.
func (c *Catalog) Types() ([]string, error) {
	found := []string{}
	err := c.db.Select(&found, "SELECT DISTINCT type FROM tiles WHERE type != '' ORDER BY type;")
	return found, err
}

// Properties returns the properties of tile `id` in the tileset at `path`.
func (c *Catalog) Properties(path string, id uint) (*Properties, error) {
	path = filepath.Clean(path)

	rows, err := c.db.Queryx("SELECT props FROM tiles WHERE tileset=? AND tile_id=? LIMIT 1;", path, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s#%d", ErrNotFound, path, id)
	}

	var data string
	if err := rows.Scan(&data); err != nil {
		return nil, err
	}

	dblock := dbProps{}
	if err := json.Unmarshal([]byte(data), &dblock); err != nil {
		return nil, err
	}

	props := NewProperties()
	for k, v := range dblock.I {
		props.SetInt(k, v)
	}
	for k, v := range dblock.F {
		props.SetFloat(k, v)
	}
	for k, v := range dblock.S {
		props.setStringKind(k, v, dblock.K[k])
	}
	for k, v := range dblock.B {
		props.SetBool(k, v)
	}
	return props, nil
}

// init creates some DB tables for us if they don't exist
func (c *Catalog) init() error {
	createTilesets := `CREATE TABLE IF NOT EXISTS tilesets(
		path TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		tilewidth INTEGER NOT NULL,
		tileheight INTEGER NOT NULL,
		tilecount INTEGER NOT NULL
	    );`
	_, err := c.db.Exec(createTilesets)
	if err != nil {
		return err
	}

	createTiles := `CREATE TABLE IF NOT EXISTS tiles(
		id TEXT PRIMARY KEY,
		tileset TEXT NOT NULL,
		tile_id INTEGER NOT NULL,
		src TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		type TEXT NOT NULL,
		props TEXT
	    );`
	_, err = c.db.Exec(createTiles)
	if err != nil {
		return err
	}

	_, err = c.db.Exec(`CREATE INDEX IF NOT EXISTS tiles_by_type ON tiles(type);`)
	return err
}
