package raster

import (
	"image/color"
)

// Color is a single RGB triple.
type Color struct {
	R, G, B uint8
}

// Common fill colours for newly allocated table entries.
var (
	Black = Color{0x00, 0x00, 0x00}
	White = Color{0xff, 0xff, 0xff}
)

// NewColor validates each channel and returns the resulting Color.
func NewColor(r, g, b int) (Color, error) {
	for _, ch := range []struct {
		name string
		v    int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if err := CheckByte(ch.name, ch.v); err != nil {
			return Color{}, err
		}
	}
	return Color{uint8(r), uint8(g), uint8(b)}, nil
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

// ValidTableSize reports whether n is a legal colour table size: zero or a
// power of two between 2 and 256.
func ValidTableSize(n int) bool {
	return n == 0 || (n >= 2 && n <= 256 && n&(n-1) == 0)
}

// Log2 returns the number of bits needed to index n entries, n being a
// power of two.
func Log2(n int) int {
	bits := 0
	for n > 1 {
		n >>= 1
		bits++
	}
	return bits
}

// ColorTable is an ordered, fixed capacity list of colours.
type ColorTable struct {
	entries []Color
	fill    Color
}

// NewColorTable returns a table of size entries, each set to fill. The
// same fill colour is used for entries added by later calls to Resize.
func NewColorTable(size int, fill Color) (*ColorTable, error) {
	t := &ColorTable{fill: fill}
	if err := t.Resize(size); err != nil {
		return nil, err
	}
	return t, nil
}

// Len returns the number of entries.
func (t *ColorTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Fill returns the colour given to new entries.
func (t *ColorTable) Fill() Color {
	return t.fill
}

// Resize changes the number of entries to n. Existing entries below n are
// kept, new entries are set to the fill colour.
func (t *ColorTable) Resize(n int) error {
	if n < 0 {
		return Errorf(ErrOverflow, "colour table size %d is negative", n)
	}
	if !ValidTableSize(n) {
		return Errorf(ErrDomain, "colour table size %d is not 0 or a power of two in [2, 256]", n)
	}
	if n == len(t.entries) {
		return nil
	}
	entries := make([]Color, n)
	copied := copy(entries, t.entries)
	for i := copied; i < n; i++ {
		entries[i] = t.fill
	}
	t.entries = entries
	return nil
}

func (t *ColorTable) check(i int) error {
	if i < 0 || i >= t.Len() {
		return Errorf(ErrDomain, "colour index %d outside [0, %d)", i, t.Len())
	}
	return nil
}

// At returns the colour at index i.
func (t *ColorTable) At(i int) (Color, error) {
	if err := t.check(i); err != nil {
		return Color{}, err
	}
	return t.entries[i], nil
}

// Set stores the colour (r, g, b) at index i.
func (t *ColorTable) Set(i, r, g, b int) error {
	if err := t.check(i); err != nil {
		return err
	}
	c, err := NewColor(r, g, b)
	if err != nil {
		return err
	}
	t.entries[i] = c
	return nil
}

// SetColor stores c at index i.
func (t *ColorTable) SetColor(i int, c Color) error {
	if err := t.check(i); err != nil {
		return err
	}
	t.entries[i] = c
	return nil
}

// Clone returns a deep copy of the table.
func (t *ColorTable) Clone() *ColorTable {
	if t == nil {
		return nil
	}
	return &ColorTable{
		entries: append([]Color(nil), t.entries...),
		fill:    t.fill,
	}
}

// Equal reports whether both tables hold the same entries.
func (t *ColorTable) Equal(o *ColorTable) bool {
	if t.Len() != o.Len() {
		return false
	}
	for i := 0; i < t.Len(); i++ {
		if t.entries[i] != o.entries[i] {
			return false
		}
	}
	return true
}

// Palette returns the table as a color.Palette.
func (t *ColorTable) Palette() color.Palette {
	p := make(color.Palette, t.Len())
	for i := range p {
		c := t.entries[i]
		p[i] = color.RGBA{c.R, c.G, c.B, 0xff}
	}
	return p
}

// SetPalette replaces the leading entries with the colours in p, up to the
// table size. Remaining entries are left untouched.
func (t *ColorTable) SetPalette(p color.Palette) {
	for i := 0; i < len(p) && i < t.Len(); i++ {
		r, g, b, _ := p[i].RGBA()
		t.entries[i] = Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
	}
}
