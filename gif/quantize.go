package gif

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/vpixels/raster"
	"github.com/ericpauley/go-quantize/quantize"
)

// FromImages builds an animation from ms, one frame per image, sharing a
// global colour table of 2^depth entries chosen by a median cut quantizer
// across every image. The screen is sized to cover every image and each
// frame is positioned at its image bounds. delay is applied to every frame
// when there is more than one.
func FromImages(ms []image.Image, depth, delay int) (*GIF, error) {
	if len(ms) == 0 {
		return nil, raster.Errorf(raster.ErrDomain, "gif: no images")
	}
	if err := checkDepth(depth); err != nil {
		return nil, err
	}
	if err := raster.CheckUint16("delay", delay); err != nil {
		return nil, err
	}

	var screen image.Rectangle
	for _, m := range ms {
		r := m.Bounds()
		if r.Min.X < 0 || r.Min.Y < 0 || r.Empty() {
			return nil, raster.Errorf(raster.ErrDomain, "gif: unsupported image bounds %v", r)
		}
		screen = screen.Union(r)
	}

	g, err := New(Config{
		BitDepth: depth,
		Width:    screen.Max.X,
		Height:   screen.Max.Y,
		Frames:   len(ms),
	})
	if err != nil {
		return nil, err
	}

	// Quantize the frames as one tall strip so every image contributes to
	// the shared palette
	strip := image.NewRGBA(image.Rect(0, 0, screen.Max.X, screen.Max.Y*len(ms)))
	for i, m := range ms {
		r := m.Bounds()
		draw.Draw(strip, r.Add(image.Pt(0, i*screen.Max.Y)), m, r.Min, draw.Src)
	}
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 1<<uint(depth)), strip)
	g.global.SetPalette(p)

	for i, m := range ms {
		r := m.Bounds()
		pm := image.NewPaletted(r, p)
		draw.Draw(pm, r, m, r.Min, draw.Src)

		f := g.frames[i]
		if err := f.img.Crop(0, 0, r.Dx(), r.Dy()); err != nil {
			return nil, err
		}
		f.left, f.top = r.Min.X, r.Min.Y
		pix := f.img.Buffer().Pix()
		for y := 0; y < r.Dy(); y++ {
			copy(pix[y*r.Dx():(y+1)*r.Dx()], pm.Pix[pm.PixOffset(r.Min.X, r.Min.Y+y):])
		}
		if len(ms) > 1 {
			f.control.delay = delay
		}
	}

	return g, nil
}
