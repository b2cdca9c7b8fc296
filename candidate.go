package collage

import (
	"encoding/binary"
	"image"
	"image/draw"
	"image/png"

	"github.com/cespare/xxhash/v2"
)

// MaxItems is the maximum number of candidates a collage can hold.
const MaxItems = 6

// Candidate is an image proposed for selection.
type Candidate struct {
	// Name identifies where the image came from, e.g. a file path. It is used for logging only.
	Name  string
	Image image.Image
}

func (c Candidate) Width() int {
	if c.Image == nil {
		return 0
	}
	return c.Image.Bounds().Dx()
}

func (c Candidate) Height() int {
	if c.Image == nil {
		return 0
	}
	return c.Image.Bounds().Dy()
}

// Landscape reports whether the image is strictly wider than it is tall.
func (c Candidate) Landscape() bool {
	return c.Width() > c.Height()
}

// Fingerprint is a cheap proxy for image content, used to reject duplicates.
type Fingerprint uint64

// Fingerprinter computes a Fingerprint of a candidate.
type Fingerprinter func(Candidate) Fingerprint

// EncodedLength fingerprints a candidate by the byte length of its PNG encoding.
// It is cheap to keep but different images of the same encoded length collide,
// in which case the later one is wrongly rejected as a duplicate.
func EncodedLength(c Candidate) Fingerprint {
	if c.Image == nil {
		return 0
	}

	var w countingWriter
	if err := png.Encode(&w, c.Image); err != nil {
		return 0
	}
	return Fingerprint(w)
}

type countingWriter int

func (w *countingWriter) Write(p []byte) (int, error) {
	*w += countingWriter(len(p))
	return len(p), nil
}

// ContentHash fingerprints a candidate by hashing its size and RGBA pixels.
// Equal fingerprints mean equal images with overwhelming probability.
func ContentHash(c Candidate) Fingerprint {
	if c.Image == nil {
		return 0
	}

	b := c.Image.Bounds()
	rgba, ok := c.Image.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, c.Image, b.Min, draw.Src)
	}

	h := xxhash.New()
	var size [16]byte
	binary.LittleEndian.PutUint64(size[:8], uint64(b.Dx()))
	binary.LittleEndian.PutUint64(size[8:], uint64(b.Dy()))
	_, _ = h.Write(size[:])
	_, _ = h.Write(rgba.Pix[:4*b.Dx()*b.Dy()])

	return Fingerprint(h.Sum64())
}
