package tileset

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

// SheetOptions configures contact sheet rendering
type SheetOptions struct {
	Columns int  // tiles per row
	Scale   int  // pixel scale applied to each tile (pixel art stays crisp)
	Labels  bool // caption each tile with it's id & type
	Padding int  // gap between cells in pixels
}

// DefaultSheetOptions returns sensible defaults for small pixel art tiles
func DefaultSheetOptions() *SheetOptions {
	return &SheetOptions{Columns: 8, Scale: 4, Labels: true, Padding: 4}
}

const labelHeight = 16

// tileImage returns the image for tile `t`, either read from it's own file
// (relative to the tileset dir) or cut from the tileset sheet.
func (ts *Tileset) tileImage(t *Tile, sheet image.Image) (image.Image, error) {
	if !ts.IsCollection() {
		r, err := ts.TileRect(t.ID)
		if err != nil {
			return nil, err
		}
		return cutOut(sheet, r.Add(sheet.Bounds().Min)), nil
	}

	if t.Image == nil {
		return nil, fmt.Errorf("tile %d has no image", t.ID)
	}
	src := t.Image.Source
	if !filepath.IsAbs(src) {
		src = filepath.Join(ts.dir, src)
	}
	return gg.LoadImage(src)
}

// Sheet renders every tile of the tileset onto a single image, in document
// order, for eyeballing a tileset without opening the editor.
func Sheet(ts *Tileset, opts *SheetOptions) (image.Image, error) {
	if opts == nil {
		opts = DefaultSheetOptions()
	}
	if opts.Columns <= 0 || opts.Scale <= 0 {
		return nil, fmt.Errorf("columns & scale must be > 0")
	}
	if ts.TileWidth <= 0 || ts.TileHeight <= 0 {
		return nil, fmt.Errorf("tileset %q has no tile size", ts.Name)
	}

	var sheet image.Image
	if !ts.IsCollection() {
		src := ts.Image.Source
		if !filepath.IsAbs(src) {
			src = filepath.Join(ts.dir, src)
		}
		var err error
		sheet, err = gg.LoadImage(src)
		if err != nil {
			return nil, err
		}
	}

	tiles := ts.Tiles()
	if !ts.IsCollection() {
		// image based tilesets only list tiles with properties
		tiles = make([]*Tile, ts.TileCount)
		for i := range tiles {
			tiles[i] = &Tile{ID: uint(i)}
			if t, err := ts.Tile(uint(i)); err == nil {
				tiles[i] = t
			}
		}
	}

	cellW := ts.TileWidth*opts.Scale + opts.Padding
	cellH := ts.TileHeight*opts.Scale + opts.Padding
	if opts.Labels {
		cellH += labelHeight
	}

	cols := opts.Columns
	if len(tiles) < cols {
		cols = len(tiles)
	}
	if cols == 0 {
		cols = 1
	}
	rows := (len(tiles) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}

	dc := gg.NewContext(cols*cellW+opts.Padding, rows*cellH+opts.Padding)
	dc.SetColor(color.Black)
	dc.Clear()

	for i, t := range tiles {
		img, err := ts.tileImage(t, sheet)
		if err != nil {
			return nil, err
		}

		img = resize.Resize(
			uint(ts.TileWidth*opts.Scale),
			uint(ts.TileHeight*opts.Scale),
			img,
			resize.NearestNeighbor,
		)

		x := opts.Padding + (i%cols)*cellW
		y := opts.Padding + (i/cols)*cellH
		dc.DrawImage(img, x, y)

		if opts.Labels {
			label := fmt.Sprintf("%d", t.ID)
			if typ := t.Type(); typ != "" {
				label = fmt.Sprintf("%d %s", t.ID, typ)
			}
			dc.SetColor(color.White)
			dc.DrawString(label, float64(x), float64(y+ts.TileHeight*opts.Scale+labelHeight-4))
		}
	}

	logger.Debug().Str("name", ts.Name).Int("tiles", len(tiles)).Msg("rendered sheet")
	return dc.Image(), nil
}
