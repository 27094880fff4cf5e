package tileset

import (
	"fmt"
	"image"
	"image/draw"
)

// cutOut the rectangle marked by `r` from the given image
func cutOut(in image.Image, r image.Rectangle) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), in, r.Min, draw.Src)
	return out
}

// Slice cuts a sprite sheet into tile sized images, row by row.
// `margin` is the border around the sheet & `spacing` the gap between tiles,
// in pixels. Partial tiles at the right / bottom edges are dropped.
func Slice(in image.Image, tileWidth, tileHeight, margin, spacing int) ([]image.Image, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("tile size must be > 0, got %dx%d", tileWidth, tileHeight)
	}
	if margin < 0 || spacing < 0 {
		return nil, fmt.Errorf("margin & spacing must be >= 0")
	}

	cols, rows := sheetGrid(in.Bounds(), tileWidth, tileHeight, margin, spacing)

	tiles := make([]image.Image, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := in.Bounds().Min.X + margin + col*(tileWidth+spacing)
			y := in.Bounds().Min.Y + margin + row*(tileHeight+spacing)
			tiles = append(tiles, cutOut(in, image.Rect(x, y, x+tileWidth, y+tileHeight)))
		}
	}
	return tiles, nil
}

// sheetGrid returns how many whole tiles fit across & down the given bounds.
func sheetGrid(bnds image.Rectangle, tileWidth, tileHeight, margin, spacing int) (cols, rows int) {
	w := bnds.Dx() - 2*margin + spacing
	h := bnds.Dy() - 2*margin + spacing
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return w / (tileWidth + spacing), h / (tileHeight + spacing)
}
