/*
Package bmp implements a single image, uncompressed Windows bitmap container
with a decoder and encoder.

Supported bit depths are 1, 4, 8 and 24. The indexed depths carry a colour
table of exactly 2^depth entries, new entries default to black. At depth 24
every pixel is stored as a blue, green, red triple and there is no colour
table.

The file is written as a 14 byte file header, a 40 byte BITMAPINFOHEADER,
the colour table as 4 byte blue, green, red, reserved entries and finally the
pixel rows from the bottom of the image to the top. Each row is padded to a
multiple of 4 bytes; indexed pixels are packed 8, 2 or 1 to a byte with the
leftmost pixel in the most significant bits.
*/
package bmp

import (
	"image"

	"github.com/bodgit/vpixels/raster"
)

const (
	fileHeaderSize  = 14
	infoHeaderSize  = 40
	headerSize      = fileHeaderSize + infoHeaderSize
	paletteEntry    = 4
	pixelsPerMetre  = 3780
	maxPixelDataLen = 1 << 28
)

// Supported reports whether depth is a bit depth this package can handle.
func Supported(depth int) bool {
	switch depth {
	case 1, 4, 8, raster.DirectDepth:
		return true
	}
	return false
}

func checkDepth(depth int) error {
	if depth < 0 {
		return raster.Errorf(raster.ErrOverflow, "bmp: bit depth %d is negative", depth)
	}
	if !Supported(depth) {
		return raster.Errorf(raster.ErrDomain, "bmp: bit depth %d not supported", depth)
	}
	return nil
}

func tableSize(depth int) int {
	if depth == raster.DirectDepth {
		return 0
	}
	return 1 << uint(depth)
}

// Bmp is a single bitmap image.
type Bmp struct {
	img        *raster.Image
	xRes, yRes int32
}

// New returns a bitmap of the given depth and dimensions with every pixel
// set to zero.
func New(depth, width, height int) (*Bmp, error) {
	if err := checkDepth(depth); err != nil {
		return nil, err
	}

	var table *raster.ColorTable
	if n := tableSize(depth); n > 0 {
		var err error
		if table, err = raster.NewColorTable(n, raster.Black); err != nil {
			return nil, err
		}
	}

	img, err := raster.NewImage(depth, width, height, table)
	if err != nil {
		return nil, err
	}

	return &Bmp{
		img:  img,
		xRes: pixelsPerMetre,
		yRes: pixelsPerMetre,
	}, nil
}

// Default returns the smallest legal bitmap; 1 bit, 1 by 1 pixels.
func Default() *Bmp {
	b, _ := New(1, 1, 1)
	return b
}

// BitDepth returns the number of bits per pixel.
func (b *Bmp) BitDepth() int { return b.img.Depth() }

// SetBitDepth changes the number of bits per pixel. Every pixel is reset to
// index 0, or black at 24 bits. Between indexed depths the colour table is
// resized, keeping the entries that still fit.
func (b *Bmp) SetBitDepth(depth int) error {
	if err := checkDepth(depth); err != nil {
		return err
	}
	if depth == b.BitDepth() {
		return nil
	}

	switch {
	case depth == raster.DirectDepth:
		b.img.SetTable(nil)
	case b.img.Table() == nil:
		t, err := raster.NewColorTable(tableSize(depth), raster.Black)
		if err != nil {
			return err
		}
		b.img.SetTable(t)
	}
	return b.img.SetDepth(depth)
}

// Width returns the width in pixels.
func (b *Bmp) Width() int { return b.img.Width() }

// Height returns the height in pixels.
func (b *Bmp) Height() int { return b.img.Height() }

// ColorTableSize returns the number of colour table entries, 0 at depth 24.
func (b *Bmp) ColorTableSize() int { return b.img.Table().Len() }

func (b *Bmp) checkIndexed(what string) error {
	if b.img.Table() == nil {
		return raster.Errorf(raster.ErrTypeMismatch, "bmp: %d-bit bitmap has no %s", b.BitDepth(), what)
	}
	return nil
}

// Color returns colour table entry i.
func (b *Bmp) Color(i int) (raster.Color, error) {
	if err := b.checkIndexed("colour table"); err != nil {
		return raster.Color{}, err
	}
	return b.img.Table().At(i)
}

// SetColor sets colour table entry i.
func (b *Bmp) SetColor(i, r, g, bl int) error {
	if err := b.checkIndexed("colour table"); err != nil {
		return err
	}
	return b.img.Table().Set(i, r, g, bl)
}

// Pixel returns the colour index at (x, y) of an indexed bitmap.
func (b *Bmp) Pixel(x, y int) (int, error) {
	return b.img.Pixel(x, y)
}

// SetPixel sets the colour index at (x, y) of an indexed bitmap.
func (b *Bmp) SetPixel(x, y, v int) error {
	return b.img.SetPixel(x, y, v)
}

// PixelRGB returns the colour at (x, y) of a 24-bit bitmap.
func (b *Bmp) PixelRGB(x, y int) (raster.Color, error) {
	return b.img.PixelRGB(x, y)
}

// SetPixelRGB sets the colour at (x, y) of a 24-bit bitmap.
func (b *Bmp) SetPixelRGB(x, y, r, g, bl int) error {
	return b.img.SetPixelRGB(x, y, r, g, bl)
}

// SetAllPixels sets every pixel of an indexed bitmap to v.
func (b *Bmp) SetAllPixels(v int) error {
	return b.img.SetAll(v)
}

// SetAllPixelsRGB sets every pixel of a 24-bit bitmap to (r, g, b).
func (b *Bmp) SetAllPixelsRGB(r, g, bl int) error {
	return b.img.SetAllRGB(r, g, bl)
}

// Crop discards everything outside the given rectangle.
func (b *Bmp) Crop(left, top, width, height int) error {
	return b.img.Crop(left, top, width, height)
}

// Clone returns an independent copy of the bitmap.
func (b *Bmp) Clone() *Bmp {
	return &Bmp{
		img:  b.img.Clone(),
		xRes: b.xRes,
		yRes: b.yRes,
	}
}

// CopyFrom copies the pixels, bit depth and colour table of o. Both bitmaps
// must have the same dimensions.
func (b *Bmp) CopyFrom(o *Bmp) error {
	if err := b.img.CopyFrom(o.img); err != nil {
		return raster.Errorf(raster.ErrDomain, "bmp: %v", err)
	}
	return nil
}

// Equal reports whether both bitmaps have the same geometry, depth, colour
// table and pixels.
func (b *Bmp) Equal(o *Bmp) bool {
	return b.img.Equal(o.img)
}

// Image returns a copy of the bitmap as an image.Image; *image.Paletted for
// indexed bitmaps and *image.RGBA at depth 24.
func (b *Bmp) Image() image.Image {
	if b.BitDepth() == raster.DirectDepth {
		return b.img.RGBA()
	}
	return b.img.Paletted(nil)
}
