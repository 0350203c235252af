package raster

// DirectDepth is the bit depth at which pixels hold RGB values rather than
// palette indices.
const DirectDepth = 24

// Buffer is a two dimensional grid of pixels. Below DirectDepth each pixel
// is a palette index stored in one byte, at DirectDepth each pixel is three
// bytes in R, G, B order.
type Buffer struct {
	width, height int
	depth         int
	pix           []uint8
}

func checkDepth(depth int) error {
	if depth < 0 {
		return Errorf(ErrOverflow, "bit depth %d is negative", depth)
	}
	if (depth < 1 || depth > 8) && depth != DirectDepth {
		return Errorf(ErrDomain, "bit depth %d not supported", depth)
	}
	return nil
}

func checkDimension(name string, v int) error {
	if v < 0 {
		return Errorf(ErrOverflow, "%s %d is negative", name, v)
	}
	if v == 0 {
		return Errorf(ErrDomain, "%s must be at least 1", name)
	}
	return nil
}

func stride(depth int) int {
	if depth == DirectDepth {
		return 3
	}
	return 1
}

// NewBuffer returns a zeroed buffer of the given depth and dimensions.
func NewBuffer(depth, width, height int) (*Buffer, error) {
	if err := checkDepth(depth); err != nil {
		return nil, err
	}
	if err := checkDimension("width", width); err != nil {
		return nil, err
	}
	if err := checkDimension("height", height); err != nil {
		return nil, err
	}
	return &Buffer{
		width:  width,
		height: height,
		depth:  depth,
		pix:    make([]uint8, width*height*stride(depth)),
	}, nil
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// Depth returns the bit depth.
func (b *Buffer) Depth() int { return b.depth }

// Direct reports whether pixels hold RGB values.
func (b *Buffer) Direct() bool { return b.depth == DirectDepth }

// Pix returns the raw pixel storage, row-major from the top-left corner.
func (b *Buffer) Pix() []uint8 { return b.pix }

func (b *Buffer) offset(x, y int) (int, error) {
	if x < 0 || x >= b.width {
		return 0, Errorf(ErrDomain, "x %d outside [0, %d)", x, b.width)
	}
	if y < 0 || y >= b.height {
		return 0, Errorf(ErrDomain, "y %d outside [0, %d)", y, b.height)
	}
	return (y*b.width + x) * stride(b.depth), nil
}

func (b *Buffer) checkIndexed() error {
	if b.Direct() {
		return Errorf(ErrTypeMismatch, "%d-bit pixels hold RGB values, not indices", b.depth)
	}
	return nil
}

func (b *Buffer) checkDirect() error {
	if !b.Direct() {
		return Errorf(ErrTypeMismatch, "%d-bit pixels hold indices, not RGB values", b.depth)
	}
	return nil
}

// CheckIndex validates v as a pixel index for this buffer.
func (b *Buffer) CheckIndex(v int) error {
	if err := b.checkIndexed(); err != nil {
		return err
	}
	if err := CheckByte("colour index", v); err != nil {
		return err
	}
	if v >= 1<<uint(b.depth) {
		return Errorf(ErrDomain, "colour index %d outside [0, %d)", v, 1<<uint(b.depth))
	}
	return nil
}

// Index returns the palette index at (x, y).
func (b *Buffer) Index(x, y int) (int, error) {
	if err := b.checkIndexed(); err != nil {
		return 0, err
	}
	i, err := b.offset(x, y)
	if err != nil {
		return 0, err
	}
	return int(b.pix[i]), nil
}

// SetIndex stores the palette index v at (x, y).
func (b *Buffer) SetIndex(x, y, v int) error {
	i, err := b.offset(x, y)
	if err != nil {
		return err
	}
	if err := b.CheckIndex(v); err != nil {
		return err
	}
	b.pix[i] = uint8(v)
	return nil
}

// RGB returns the colour at (x, y) of a direct colour buffer.
func (b *Buffer) RGB(x, y int) (Color, error) {
	if err := b.checkDirect(); err != nil {
		return Color{}, err
	}
	i, err := b.offset(x, y)
	if err != nil {
		return Color{}, err
	}
	return Color{b.pix[i], b.pix[i+1], b.pix[i+2]}, nil
}

// SetRGB stores the colour (r, g, b) at (x, y) of a direct colour buffer.
func (b *Buffer) SetRGB(x, y, r, g, bl int) error {
	if err := b.checkDirect(); err != nil {
		return err
	}
	i, err := b.offset(x, y)
	if err != nil {
		return err
	}
	c, err := NewColor(r, g, bl)
	if err != nil {
		return err
	}
	b.pix[i], b.pix[i+1], b.pix[i+2] = c.R, c.G, c.B
	return nil
}

// Fill sets every pixel to the index v.
func (b *Buffer) Fill(v int) error {
	if err := b.CheckIndex(v); err != nil {
		return err
	}
	for i := range b.pix {
		b.pix[i] = uint8(v)
	}
	return nil
}

// FillRGB sets every pixel to the colour (r, g, b).
func (b *Buffer) FillRGB(r, g, bl int) error {
	if err := b.checkDirect(); err != nil {
		return err
	}
	c, err := NewColor(r, g, bl)
	if err != nil {
		return err
	}
	for i := 0; i < len(b.pix); i += 3 {
		b.pix[i], b.pix[i+1], b.pix[i+2] = c.R, c.G, c.B
	}
	return nil
}

// CheckCrop validates a crop rectangle against the buffer bounds.
func (b *Buffer) CheckCrop(left, top, width, height int) error {
	for _, v := range []struct {
		name string
		v    int
	}{{"left", left}, {"top", top}, {"width", width}, {"height", height}} {
		if v.v < 0 {
			return Errorf(ErrOverflow, "crop %s %d is negative", v.name, v.v)
		}
	}
	switch {
	case left >= b.width:
		return Errorf(ErrDomain, "crop left %d outside [0, %d)", left, b.width)
	case top >= b.height:
		return Errorf(ErrDomain, "crop top %d outside [0, %d)", top, b.height)
	case width < 1 || left+width > b.width:
		return Errorf(ErrDomain, "crop width %d outside [1, %d]", width, b.width-left)
	case height < 1 || top+height > b.height:
		return Errorf(ErrDomain, "crop height %d outside [1, %d]", height, b.height-top)
	}
	return nil
}

// Crop replaces the buffer contents with the given sub-rectangle.
func (b *Buffer) Crop(left, top, width, height int) error {
	if err := b.CheckCrop(left, top, width, height); err != nil {
		return err
	}
	s := stride(b.depth)
	pix := make([]uint8, width*height*s)
	for y := 0; y < height; y++ {
		src := ((top+y)*b.width + left) * s
		copy(pix[y*width*s:(y+1)*width*s], b.pix[src:src+width*s])
	}
	b.pix, b.width, b.height = pix, width, height
	return nil
}

// SetDepth changes the bit depth, reallocating the buffer with every pixel
// reset to index 0 or black. Setting the current depth is a no-op.
func (b *Buffer) SetDepth(depth int) error {
	if err := checkDepth(depth); err != nil {
		return err
	}
	if depth == b.depth {
		return nil
	}
	b.pix = make([]uint8, b.width*b.height*stride(depth))
	b.depth = depth
	return nil
}

// Clamp resets every index at or above limit to 0.
func (b *Buffer) Clamp(limit int) {
	if b.Direct() {
		return
	}
	for i, v := range b.pix {
		if int(v) >= limit {
			b.pix[i] = 0
		}
	}
}

// MaxIndex returns the largest index stored in the buffer.
func (b *Buffer) MaxIndex() int {
	max := 0
	if b.Direct() {
		return max
	}
	for _, v := range b.pix {
		if int(v) > max {
			max = int(v)
		}
	}
	return max
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	dup := *b
	dup.pix = append([]uint8(nil), b.pix...)
	return &dup
}

// Equal reports whether both buffers have the same geometry, depth and
// pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.width != o.width || b.height != o.height || b.depth != o.depth {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}
