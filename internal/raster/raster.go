// Package raster renders collages.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/destel/collage"
)

// Background is the color of the canvas and of the gaps between photos.
var Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Gap is the spacing between photos and around the edges, in pixels.
const Gap = 4

// Grid lays photos out in rows of at most two. A row with a single photo gives it the full width.
type Grid struct{}

var _ collage.Rasterizer = Grid{}

// Compose renders the candidates on a canvas of the given size. Each photo is scaled to cover its cell
// and cropped around the center.
func (Grid) Compose(items []collage.Candidate, size image.Point) image.Image {
	canvas := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	cells := Layout(len(items), size)
	for i, cell := range cells {
		if items[i].Image == nil {
			continue
		}
		fill(canvas, cell, items[i].Image)
	}

	return canvas
}

// Thumbnail scales img down to fit into size, preserving the aspect ratio.
func (Grid) Thumbnail(img image.Image, size image.Point) image.Image {
	b := img.Bounds()
	if b.Empty() || size.X <= 0 || size.Y <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}

	w, h := size.X, b.Dy()*size.X/b.Dx()
	if h > size.Y {
		w, h = b.Dx()*size.Y/b.Dy(), size.Y
	}
	w, h = max(w, 1), max(h, 1)

	thumb := image.NewRGBA(image.Rect(0, 0, w, h))
	scale(thumb, thumb.Bounds(), img, b)
	return thumb
}

// Layout returns the cells of n photos on a canvas of the given size.
func Layout(n int, size image.Point) []image.Rectangle {
	if n == 0 {
		return nil
	}

	rows := (n + 1) / 2
	rowHeight := (size.Y - Gap*(rows+1)) / rows

	cells := make([]image.Rectangle, 0, n)
	for r := 0; r < rows; r++ {
		y0 := Gap + r*(rowHeight+Gap)

		perRow := 2
		if r == rows-1 && n%2 == 1 {
			perRow = 1
		}
		cellWidth := (size.X - Gap*(perRow+1)) / perRow

		for c := 0; c < perRow; c++ {
			x0 := Gap + c*(cellWidth+Gap)
			cells = append(cells, image.Rect(x0, y0, x0+cellWidth, y0+rowHeight))
		}
	}

	return cells
}

// fill scales src to cover cell and crops the overflow symmetrically.
func fill(dst *image.RGBA, cell image.Rectangle, src image.Image) {
	sb := src.Bounds()
	if cell.Empty() || sb.Empty() {
		return
	}

	cw, ch := cell.Dx(), cell.Dy()
	crop := sb
	if sb.Dx()*ch > sb.Dy()*cw {
		// source is wider than the cell
		w := sb.Dy() * cw / ch
		crop.Min.X = sb.Min.X + (sb.Dx()-w)/2
		crop.Max.X = crop.Min.X + w
	} else {
		h := sb.Dx() * ch / cw
		crop.Min.Y = sb.Min.Y + (sb.Dy()-h)/2
		crop.Max.Y = crop.Min.Y + h
	}

	scale(dst, cell, src, crop)
}

// scale draws the src rectangle of src into the dst rectangle of dst with nearest neighbour sampling.
func scale(dst *image.RGBA, dr image.Rectangle, src image.Image, sr image.Rectangle) {
	dw, dh := dr.Dx(), dr.Dy()
	sw, sh := sr.Dx(), sr.Dy()
	if dw <= 0 || dh <= 0 || sw <= 0 || sh <= 0 {
		return
	}

	for y := 0; y < dh; y++ {
		sy := sr.Min.Y + (2*y+1)*sh/(2*dh)
		for x := 0; x < dw; x++ {
			sx := sr.Min.X + (2*x+1)*sw/(2*dw)
			dst.Set(dr.Min.X+x, dr.Min.Y+y, src.At(sx, sy))
		}
	}
}
