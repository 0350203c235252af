package bmp

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/vpixels/raster"
	"github.com/ericpauley/go-quantize/quantize"
)

// FromImage converts m to a bitmap of the given depth. At depth 24 the
// colours are copied directly, otherwise a paletted image that already fits
// is used as-is and anything else is reduced to 2^depth colours with a
// median cut quantizer.
func FromImage(m image.Image, depth int) (*Bmp, error) {
	r := m.Bounds()
	b, err := New(depth, r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}

	if depth == raster.DirectDepth {
		pix := b.img.Buffer().Pix()
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				c := color.NRGBAModel.Convert(m.At(r.Min.X+x, r.Min.Y+y)).(color.NRGBA)
				i := (y*r.Dx() + x) * 3
				pix[i+0], pix[i+1], pix[i+2] = c.R, c.G, c.B
			}
		}
		return b, nil
	}

	max := 1 << uint(depth)

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > max {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(r, q.Quantize(make(color.Palette, 0, max), m))
		draw.Draw(pm, r, m, r.Min, draw.Src)
	}

	b.img.Table().SetPalette(pm.Palette)
	pix := b.img.Buffer().Pix()
	for y := 0; y < r.Dy(); y++ {
		copy(pix[y*r.Dx():(y+1)*r.Dx()], pm.Pix[pm.PixOffset(r.Min.X, r.Min.Y+y):])
	}

	return b, nil
}
