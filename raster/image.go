package raster

import (
	"image"
	"image/color"
)

// Image is a pixel buffer with an optional colour table of its own. Images
// that borrow a colour table from a surrounding container have a nil table.
type Image struct {
	buf   *Buffer
	table *ColorTable
}

// NewImage returns an image of the given depth and dimensions. table may be
// nil, otherwise it becomes owned by the image.
func NewImage(depth, width, height int, table *ColorTable) (*Image, error) {
	buf, err := NewBuffer(depth, width, height)
	if err != nil {
		return nil, err
	}
	if table != nil && depth == DirectDepth {
		return nil, Errorf(ErrDomain, "%d-bit images have no colour table", depth)
	}
	return &Image{buf: buf, table: table}, nil
}

// Buffer returns the underlying pixel buffer.
func (m *Image) Buffer() *Buffer { return m.buf }

// Depth returns the bit depth.
func (m *Image) Depth() int { return m.buf.depth }

// Width returns the number of columns.
func (m *Image) Width() int { return m.buf.width }

// Height returns the number of rows.
func (m *Image) Height() int { return m.buf.height }

// Table returns the image's own colour table, or nil.
func (m *Image) Table() *ColorTable { return m.table }

// SetTable replaces the image's own colour table. Passing nil detaches it.
func (m *Image) SetTable(t *ColorTable) { m.table = t }

func (m *Image) checkIndex(v int) error {
	if err := m.buf.CheckIndex(v); err != nil {
		return err
	}
	if m.table != nil && v >= m.table.Len() {
		return Errorf(ErrDomain, "colour index %d outside colour table of size %d", v, m.table.Len())
	}
	return nil
}

// Pixel returns the palette index at (x, y).
func (m *Image) Pixel(x, y int) (int, error) {
	return m.buf.Index(x, y)
}

// SetPixel stores the palette index v at (x, y).
func (m *Image) SetPixel(x, y, v int) error {
	if _, err := m.buf.offset(x, y); err != nil {
		return err
	}
	if err := m.checkIndex(v); err != nil {
		return err
	}
	return m.buf.SetIndex(x, y, v)
}

// PixelRGB returns the colour at (x, y) of a direct colour image.
func (m *Image) PixelRGB(x, y int) (Color, error) {
	return m.buf.RGB(x, y)
}

// SetPixelRGB stores the colour (r, g, b) at (x, y) of a direct colour
// image.
func (m *Image) SetPixelRGB(x, y, r, g, b int) error {
	return m.buf.SetRGB(x, y, r, g, b)
}

// SetAll sets every pixel to the palette index v.
func (m *Image) SetAll(v int) error {
	if err := m.checkIndex(v); err != nil {
		return err
	}
	return m.buf.Fill(v)
}

// SetAllRGB sets every pixel to the colour (r, g, b).
func (m *Image) SetAllRGB(r, g, b int) error {
	return m.buf.FillRGB(r, g, b)
}

// Crop replaces the image with the given sub-rectangle.
func (m *Image) Crop(left, top, width, height int) error {
	return m.buf.Crop(left, top, width, height)
}

// SetDepth changes the bit depth. An image with its own colour table has
// the table resized to 2^depth.
func (m *Image) SetDepth(depth int) error {
	if err := checkDepth(depth); err != nil {
		return err
	}
	if m.table != nil && depth == DirectDepth {
		return Errorf(ErrDomain, "%d-bit images have no colour table", depth)
	}
	if m.table != nil {
		if err := m.table.Resize(1 << uint(depth)); err != nil {
			return err
		}
	}
	return m.buf.SetDepth(depth)
}

// Clone returns a deep copy of the image.
func (m *Image) Clone() *Image {
	return &Image{
		buf:   m.buf.Clone(),
		table: m.table.Clone(),
	}
}

// CopyFrom copies pixels, depth and colour table from o. Both images must
// have the same width and height.
func (m *Image) CopyFrom(o *Image) error {
	if m.Width() != o.Width() || m.Height() != o.Height() {
		return Errorf(ErrDomain, "cannot copy %dx%d image into %dx%d image", o.Width(), o.Height(), m.Width(), m.Height())
	}
	if m == o {
		return nil
	}
	m.buf = o.buf.Clone()
	m.table = o.table.Clone()
	return nil
}

// Equal reports whether both images have the same geometry, depth, colour
// table and pixels.
func (m *Image) Equal(o *Image) bool {
	return m.buf.Equal(o.buf) && m.table.Equal(o.table)
}

// Paletted returns a copy of an indexed image as an *image.Paletted, using
// the image's own table or fallback when it has none. Entries missing from
// the table render as black.
func (m *Image) Paletted(fallback *ColorTable) *image.Paletted {
	t := m.table
	if t == nil {
		t = fallback
	}
	p := t.Palette()
	for len(p) < 1<<uint(m.Depth()) {
		p = append(p, color.RGBA{0, 0, 0, 0xff})
	}
	dst := image.NewPaletted(image.Rect(0, 0, m.Width(), m.Height()), p)
	copy(dst.Pix, m.buf.pix)
	return dst
}

// RGBA returns a copy of a direct colour image as an *image.RGBA.
func (m *Image) RGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, m.Width(), m.Height()))
	for i, j := 0, 0; i < len(m.buf.pix); i, j = i+3, j+4 {
		dst.Pix[j+0] = m.buf.pix[i+0]
		dst.Pix[j+1] = m.buf.pix[i+1]
		dst.Pix[j+2] = m.buf.pix[i+2]
		dst.Pix[j+3] = 0xff
	}
	return dst
}
