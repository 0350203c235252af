package gif

import (
	"image"

	"github.com/bodgit/vpixels/raster"
)

// binding records where a frame takes its colours from.
type binding int

const (
	// screenTable frames use the global colour table and share the
	// container bit depth
	screenTable binding = iota
	// localTable frames own a colour table and choose their own depth
	localTable
)

// Disposal methods.
const (
	DisposalNone       = 0
	DisposalKeep       = 1
	DisposalBackground = 2
	DisposalPrevious   = 3
)

type graphicControl struct {
	delay       int
	disposal    int
	userInput   bool
	transparent bool
	transIndex  int
}

type frame struct {
	img        *raster.Image
	binding    binding
	left, top  int
	interlaced bool
	sorted     bool
	control    graphicControl
}

func (f *frame) clone() *frame {
	dup := *f
	dup.img = f.img.Clone()
	return &dup
}

func (f *frame) equal(o *frame, animated bool) bool {
	if f.binding != o.binding || f.left != o.left || f.top != o.top || f.interlaced != o.interlaced {
		return false
	}
	if animated && f.control != o.control {
		return false
	}
	return f.img.Equal(o.img)
}

// table returns the colour table the frame draws from, or nil.
func (f *frame) table(g *GIF) *raster.ColorTable {
	if f.binding == localTable {
		return f.img.Table()
	}
	return g.global
}

func (f *frame) tableSize(g *GIF) int {
	return f.table(g).Len()
}

func (f *frame) clampTransparency(size int) {
	if f.control.transIndex >= size {
		f.control.transIndex = 0
		f.control.transparent = false
	}
}

// Frame is a view of one frame of a GIF. It stays usable until the GIF is
// structurally changed, after which every method fails with
// raster.ErrInvalidHandle. The zero Frame is never valid.
type Frame struct {
	g     *GIF
	id    uint64
	gen   uint64
	index int
}

func (v Frame) get() (*frame, error) {
	if !v.Valid() {
		return nil, raster.Errorf(raster.ErrInvalidHandle, "gif: frame %d no longer belongs to its GIF", v.index)
	}
	return v.g.frames[v.index], nil
}

// Valid reports whether the view still refers to a frame.
func (v Frame) Valid() bool {
	return v.g != nil && v.g.id == v.id && v.g.gen == v.gen && v.index < len(v.g.frames)
}

// Index returns the position of the frame within its GIF.
func (v Frame) Index() int { return v.index }

// BitDepth returns the frame bit depth.
func (v Frame) BitDepth() (int, error) {
	f, err := v.get()
	if err != nil {
		return 0, err
	}
	return f.img.Depth(), nil
}

// SetBitDepth changes the frame bit depth and resets its pixels to index 0.
// A frame using the global colour table cannot exceed the GIF bit depth. A
// frame with a local colour table has the table resized to 2^depth.
func (v Frame) SetBitDepth(depth int) error {
	f, err := v.get()
	if err != nil {
		return err
	}
	if err := checkDepth(depth); err != nil {
		return err
	}
	if f.binding == screenTable {
		if depth > v.g.depth {
			return raster.Errorf(raster.ErrDomain, "gif: bit depth %d exceeds GIF bit depth %d", depth, v.g.depth)
		}
		return f.img.Buffer().SetDepth(depth)
	}
	if err := f.img.SetDepth(depth); err != nil {
		return err
	}
	f.clampTransparency(f.img.Table().Len())
	return nil
}

// Left returns the horizontal position of the frame on the screen.
func (v Frame) Left() (int, error) {
	f, err := v.get()
	if err != nil {
		return 0, err
	}
	return f.left, nil
}

// Top returns the vertical position of the frame on the screen.
func (v Frame) Top() (int, error) {
	f, err := v.get()
	if err != nil {
		return 0, err
	}
	return f.top, nil
}

// SetPosition moves the frame. It must stay within the screen.
func (v Frame) SetPosition(left, top int) error {
	f, err := v.get()
	if err != nil {
		return err
	}
	if err := raster.CheckUint16("left", left); err != nil {
		return err
	}
	if err := raster.CheckUint16("top", top); err != nil {
		return err
	}
	if left+f.img.Width() > v.g.width || top+f.img.Height() > v.g.height {
		return raster.Errorf(raster.ErrDomain, "gif: %dx%d frame at (%d, %d) exceeds %dx%d screen", f.img.Width(), f.img.Height(), left, top, v.g.width, v.g.height)
	}
	f.left, f.top = left, top
	return nil
}

// Width returns the frame width.
func (v Frame) Width() (int, error) {
	f, err := v.get()
	if err != nil {
		return 0, err
	}
	return f.img.Width(), nil
}

// Height returns the frame height.
func (v Frame) Height() (int, error) {
	f, err := v.get()
	if err != nil {
		return 0, err
	}
	return f.img.Height(), nil
}

// Crop discards everything outside the given rectangle, which is relative
// to the frame. The frame position moves to the rectangle origin.
func (v Frame) Crop(left, top, width, height int) error {
	f, err := v.get()
	if err != nil {
		return err
	}
	if err := f.img.Crop(left, top, width, height); err != nil {
		return err
	}
	f.left += left
	f.top += top
	return nil
}

// Interlaced reports whether the frame is stored interlaced.
func (v Frame) Interlaced() (bool, error) {
	f, err := v.get()
	if err != nil {
		return false, err
	}
	return f.interlaced, nil
}

// SetInterlaced sets whether the frame is stored interlaced.
func (v Frame) SetInterlaced(on bool) error {
	f, err := v.get()
	if err != nil {
		return err
	}
	f.interlaced = on
	return nil
}

// HasColorTable reports whether the frame has a local colour table.
func (v Frame) HasColorTable() (bool, error) {
	f, err := v.get()
	if err != nil {
		return false, err
	}
	return f.binding == localTable, nil
}

// ColorTableSize returns the number of local colour table entries.
func (v Frame) ColorTableSize() (int, error) {
	f, err := v.get()
	if err != nil {
		return 0, err
	}
	return f.img.Table().Len(), nil
}

// ColorTableSorted reports whether the local colour table is flagged as
// sorted by importance.
func (v Frame) ColorTableSorted() (bool, error) {
	f, err := v.get()
	if err != nil {
		return false, err
	}
	return f.sorted, nil
}

// SetColorTableSize resizes the local colour table to n entries, which
// must be 0 or a power of two up to 256. A frame gaining a local table
// starts from a copy of the global one and becomes independent of the GIF
// bit depth; its own depth follows the table size. Setting 0 returns the
// frame to the global colour table and the GIF bit depth.
func (v Frame) SetColorTableSize(n int) error {
	f, err := v.get()
	if err != nil {
		return err
	}
	if n < 0 {
		return raster.Errorf(raster.ErrOverflow, "gif: colour table size %d is negative", n)
	}
	if !raster.ValidTableSize(n) {
		return raster.Errorf(raster.ErrDomain, "gif: colour table size %d is not 0 or a power of two in [2, 256]", n)
	}

	if n == 0 {
		if f.binding == screenTable {
			return nil
		}
		if v.g.global == nil {
			return raster.Errorf(raster.ErrDomain, "gif: frame %d would have no colour table", v.index)
		}
		f.binding = screenTable
		f.sorted = false
		f.img.SetTable(nil)
		_ = f.img.Buffer().SetDepth(v.g.depth)
		f.img.Buffer().Clamp(v.g.global.Len())
		f.clampTransparency(v.g.global.Len())
		return nil
	}

	t := f.img.Table()
	if f.binding == screenTable {
		if t = v.g.global.Clone(); t == nil {
			t, _ = raster.NewColorTable(0, raster.White)
		}
	}
	if err := t.Resize(n); err != nil {
		return err
	}

	f.binding = localTable
	f.img.SetTable(t)
	_ = f.img.Buffer().SetDepth(depthFor(n))
	f.img.Buffer().Clamp(n)
	f.clampTransparency(n)
	return nil
}

func (v Frame) localTable() (*raster.ColorTable, error) {
	f, err := v.get()
	if err != nil {
		return nil, err
	}
	if f.binding != localTable {
		return nil, raster.Errorf(raster.ErrDomain, "gif: frame %d has no local colour table", v.index)
	}
	return f.img.Table(), nil
}

// Color returns local colour table entry i.
func (v Frame) Color(i int) (raster.Color, error) {
	t, err := v.localTable()
	if err != nil {
		return raster.Color{}, err
	}
	return t.At(i)
}

// SetColor sets local colour table entry i.
func (v Frame) SetColor(i, r, g, b int) error {
	t, err := v.localTable()
	if err != nil {
		return err
	}
	return t.Set(i, r, g, b)
}

func (v Frame) checkIndex(f *frame, i int) error {
	if err := f.img.Buffer().CheckIndex(i); err != nil {
		return err
	}
	if size := f.tableSize(v.g); i >= size {
		return raster.Errorf(raster.ErrDomain, "gif: colour index %d outside colour table of size %d", i, size)
	}
	return nil
}

// Pixel returns the colour index at (x, y).
func (v Frame) Pixel(x, y int) (int, error) {
	f, err := v.get()
	if err != nil {
		return 0, err
	}
	return f.img.Pixel(x, y)
}

// SetPixel sets the colour index at (x, y).
func (v Frame) SetPixel(x, y, i int) error {
	f, err := v.get()
	if err != nil {
		return err
	}
	if _, err := f.img.Pixel(x, y); err != nil {
		return err
	}
	if err := v.checkIndex(f, i); err != nil {
		return err
	}
	return f.img.SetPixel(x, y, i)
}

// SetAllPixels sets every pixel to the colour index i.
func (v Frame) SetAllPixels(i int) error {
	f, err := v.get()
	if err != nil {
		return err
	}
	if err := v.checkIndex(f, i); err != nil {
		return err
	}
	return f.img.SetAll(i)
}

// PixelRGB returns the colour at (x, y) resolved through the local or
// global colour table.
func (v Frame) PixelRGB(x, y int) (raster.Color, error) {
	f, err := v.get()
	if err != nil {
		return raster.Color{}, err
	}
	i, err := f.img.Pixel(x, y)
	if err != nil {
		return raster.Color{}, err
	}
	t := f.table(v.g)
	if t == nil {
		return raster.Color{}, raster.Errorf(raster.ErrDomain, "gif: frame %d has neither a local nor a global colour table", v.index)
	}
	return t.At(i)
}

// animated returns the frame if its GIF has more than one frame, as the
// graphic control fields only exist then.
func (v Frame) animated() (*frame, bool, error) {
	f, err := v.get()
	if err != nil {
		return nil, false, err
	}
	return f, len(v.g.frames) > 1, nil
}

func (v Frame) settable() (*frame, error) {
	f, ok, err := v.animated()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, raster.Errorf(raster.ErrDomain, "gif: a single frame has no animation control")
	}
	return f, nil
}

// Delay returns the delay after the frame in hundredths of a second. It is
// always 0 for a single frame GIF.
func (v Frame) Delay() (int, error) {
	f, ok, err := v.animated()
	if err != nil || !ok {
		return 0, err
	}
	return f.control.delay, nil
}

// SetDelay sets the delay after the frame in hundredths of a second.
func (v Frame) SetDelay(cs int) error {
	if err := raster.CheckUint16("delay", cs); err != nil {
		return err
	}
	f, err := v.settable()
	if err != nil {
		return err
	}
	f.control.delay = cs
	return nil
}

// DisposalMethod returns how the frame is disposed of after display. It is
// always DisposalNone for a single frame GIF.
func (v Frame) DisposalMethod() (int, error) {
	f, ok, err := v.animated()
	if err != nil || !ok {
		return DisposalNone, err
	}
	return f.control.disposal, nil
}

// SetDisposalMethod sets how the frame is disposed of after display.
func (v Frame) SetDisposalMethod(m int) error {
	if err := raster.CheckByte("disposal method", m); err != nil {
		return err
	}
	if m > DisposalPrevious {
		return raster.Errorf(raster.ErrDomain, "gif: disposal method %d outside [0, 3]", m)
	}
	f, err := v.settable()
	if err != nil {
		return err
	}
	f.control.disposal = m
	return nil
}

// UserInput reports whether the frame waits for user input.
func (v Frame) UserInput() (bool, error) {
	f, ok, err := v.animated()
	if err != nil || !ok {
		return false, err
	}
	return f.control.userInput, nil
}

// HasTransparency reports whether the frame has a transparent colour.
func (v Frame) HasTransparency() (bool, error) {
	f, ok, err := v.animated()
	if err != nil || !ok {
		return false, err
	}
	return f.control.transparent, nil
}

// SetTransparency turns the transparent colour on or off.
func (v Frame) SetTransparency(on bool) error {
	f, err := v.settable()
	if err != nil {
		return err
	}
	f.control.transparent = on
	return nil
}

// TransparentIndex returns the transparent colour index.
func (v Frame) TransparentIndex() (int, error) {
	f, ok, err := v.animated()
	if err != nil || !ok {
		return 0, err
	}
	return f.control.transIndex, nil
}

// SetTransparentIndex sets the transparent colour index, which must refer
// to an entry in the colour table the frame uses.
func (v Frame) SetTransparentIndex(i int) error {
	if err := raster.CheckByte("transparent colour", i); err != nil {
		return err
	}
	f, err := v.settable()
	if err != nil {
		return err
	}
	if size := f.tableSize(v.g); i >= size {
		return raster.Errorf(raster.ErrDomain, "gif: transparent colour %d outside colour table of size %d", i, size)
	}
	f.control.transIndex = i
	return nil
}

// CopyFrom copies the pixels, bit depth, colour table and animation control
// of o into this frame, keeping its position. Both frames must have the same
// width and height. A frame copied from another GIF that uses that GIF's
// global colour table is given a local copy of the entries its depth can
// address, and loses a transparent index that copy no longer covers.
func (v Frame) CopyFrom(o Frame) error {
	dst, err := v.get()
	if err != nil {
		return err
	}
	src, err := o.get()
	if err != nil {
		return err
	}
	if dst == src {
		return nil
	}
	if dst.img.Width() != src.img.Width() || dst.img.Height() != src.img.Height() {
		return raster.Errorf(raster.ErrDomain, "gif: cannot copy %dx%d frame into %dx%d frame", src.img.Width(), src.img.Height(), dst.img.Width(), dst.img.Height())
	}

	img := src.img.Clone()
	b := src.binding

	if b == screenTable && o.g != v.g {
		switch {
		case o.g.global != nil:
			t := o.g.global.Clone()
			if n := 1 << uint(img.Depth()); t.Len() > n {
				_ = t.Resize(n)
			}
			img.SetTable(t)
			b = localTable
		case img.Depth() > v.g.depth:
			return raster.Errorf(raster.ErrDomain, "gif: bit depth %d exceeds GIF bit depth %d", img.Depth(), v.g.depth)
		case v.g.global != nil && img.Buffer().MaxIndex() >= v.g.global.Len():
			return raster.Errorf(raster.ErrDomain, "gif: colour index %d outside colour table of size %d", img.Buffer().MaxIndex(), v.g.global.Len())
		}
	}

	dst.img = img
	dst.binding = b
	dst.interlaced = src.interlaced
	dst.sorted = src.sorted
	dst.control = src.control
	if t := dst.table(v.g); t != nil {
		dst.clampTransparency(t.Len())
	}
	return nil
}

// Image returns a copy of the frame as an *image.Paletted positioned on the
// screen.
func (v Frame) Image() (*image.Paletted, error) {
	f, err := v.get()
	if err != nil {
		return nil, err
	}
	m := f.img.Paletted(f.table(v.g))
	m.Rect = m.Rect.Add(image.Pt(f.left, f.top))
	return m, nil
}
