/*
Package gif implements a multi-frame, paletted animation container with a
decoder and encoder for the GIF87a and GIF89a formats.

The container holds the logical screen (width, height, bit depth between 2
and 8), an optional global colour table of 2^depth entries, a background
colour index and one or more frames. A frame either draws its colours from
the global table, in which case its bit depth follows the container and can
never exceed it, or carries a local colour table that makes it independent
of the container's bit depth. New colour table entries default to white.

Frames are only ever handed out as Frame views. A view records the identity
and generation of its owning GIF and fails with raster.ErrInvalidHandle once
the GIF is structurally changed by adding or removing frames, importing, Set
or Close.

The file is written as the 6 byte header, the 7 byte logical screen
descriptor, the global colour table as red, green, blue triples, any
NETSCAPE2.0 looping and comment extensions and then, per frame, a graphic
control extension (only when there is more than one frame), the image
descriptor, the local colour table and the LZW compressed pixel indices split
into sub-blocks of at most 255 bytes. A single trailer byte ends the file.
*/
package gif

import (
	"sync/atomic"

	"github.com/bodgit/vpixels/raster"
)

const (
	minDepth = 2
	maxDepth = 8

	version87a = "GIF87a"
	version89a = "GIF89a"
)

var lastID uint64

func nextID() uint64 {
	return atomic.AddUint64(&lastID, 1)
}

func checkDepth(depth int) error {
	if depth < 0 {
		return raster.Errorf(raster.ErrOverflow, "gif: bit depth %d is negative", depth)
	}
	if depth < minDepth || depth > maxDepth {
		return raster.Errorf(raster.ErrDomain, "gif: bit depth %d outside [%d, %d]", depth, minDepth, maxDepth)
	}
	return nil
}

func checkDimension(name string, v int) error {
	if err := raster.CheckUint16(name, v); err != nil {
		return err
	}
	if v == 0 {
		return raster.Errorf(raster.ErrDomain, "gif: %s must be at least 1", name)
	}
	return nil
}

// depthFor returns the bit depth implied by a colour table of n entries.
func depthFor(n int) int {
	if d := raster.Log2(n); d > minDepth {
		return d
	}
	return minDepth
}

// Config describes a new GIF. BitDepth must be in [2, 8] and both
// dimensions at least 1. A zero Frames gives one frame.
type Config struct {
	BitDepth           int
	Width, Height      int
	Frames             int
	NoGlobalColorTable bool
}

func (c Config) withDefaults() Config {
	if c.Frames == 0 {
		c.Frames = 1
	}
	return c
}

// GIF is a multi-frame animation.
type GIF struct {
	id  uint64
	gen uint64

	version       string
	width, height int
	depth         int
	global        *raster.ColorTable
	sorted        bool
	background    int
	aspect        int
	loopCount     int
	comments      []string

	frames []*frame
}

// New returns a GIF described by c. Every frame covers the whole screen.
// Without a global colour table each frame is given a local one instead.
func New(c Config) (*GIF, error) {
	c = c.withDefaults()

	if err := checkDepth(c.BitDepth); err != nil {
		return nil, err
	}
	if err := checkDimension("width", c.Width); err != nil {
		return nil, err
	}
	if err := checkDimension("height", c.Height); err != nil {
		return nil, err
	}
	if c.Frames < 0 {
		return nil, raster.Errorf(raster.ErrOverflow, "gif: frame count %d is negative", c.Frames)
	}

	g := &GIF{
		id:        nextID(),
		version:   version89a,
		width:     c.Width,
		height:    c.Height,
		depth:     c.BitDepth,
		loopCount: -1,
	}

	if !c.NoGlobalColorTable {
		var err error
		if g.global, err = raster.NewColorTable(1<<uint(c.BitDepth), raster.White); err != nil {
			return nil, err
		}
	}

	for i := 0; i < c.Frames; i++ {
		f, err := g.newFrame()
		if err != nil {
			return nil, err
		}
		g.frames = append(g.frames, f)
	}

	return g, nil
}

// Default returns the smallest legal GIF; 2 bits, 1 by 1 pixels, one frame
// and a global colour table of 4 entries.
func Default() *GIF {
	g, _ := New(Config{BitDepth: minDepth, Width: 1, Height: 1})
	return g
}

// newFrame returns a blank frame covering the screen at the current depth.
func (g *GIF) newFrame() (*frame, error) {
	f := &frame{binding: screenTable}
	var table *raster.ColorTable
	if g.global == nil {
		var err error
		if table, err = raster.NewColorTable(1<<uint(g.depth), raster.White); err != nil {
			return nil, err
		}
		f.binding = localTable
	}
	img, err := raster.NewImage(g.depth, g.width, g.height, table)
	if err != nil {
		return nil, err
	}
	f.img = img
	return f, nil
}

// mutated invalidates every outstanding Frame view.
func (g *GIF) mutated() {
	g.gen++
}

// Version returns the header version, either "GIF87a" or "GIF89a".
func (g *GIF) Version() string { return g.version }

// BitDepth returns the container bit depth.
func (g *GIF) BitDepth() int { return g.depth }

// SetBitDepth changes the container bit depth. The global colour table is
// resized to 2^depth and every frame without a local colour table takes on
// the new depth, its pixels reset to index 0.
func (g *GIF) SetBitDepth(depth int) error {
	if err := checkDepth(depth); err != nil {
		return err
	}
	if g.global != nil {
		if err := g.global.Resize(1 << uint(depth)); err != nil {
			return err
		}
	}
	g.cascade(depth)
	return nil
}

func (g *GIF) cascade(depth int) {
	g.depth = depth
	for _, f := range g.frames {
		if f.binding == screenTable {
			_ = f.img.Buffer().SetDepth(depth)
			if g.global != nil {
				f.img.Buffer().Clamp(g.global.Len())
			}
			f.clampTransparency(f.tableSize(g))
		}
	}
	if g.background >= g.global.Len() {
		g.background = 0
	}
}

// Width returns the logical screen width.
func (g *GIF) Width() int { return g.width }

// Height returns the logical screen height.
func (g *GIF) Height() int { return g.height }

// HasColorTable reports whether there is a global colour table.
func (g *GIF) HasColorTable() bool { return g.global != nil }

// ColorTableSize returns the number of global colour table entries.
func (g *GIF) ColorTableSize() int { return g.global.Len() }

// SetColorTableSize resizes the global colour table to n entries, which
// must be 0 or a power of two up to 256. The container bit depth follows
// the table size and cascades to frames without a local colour table.
// Setting 0 removes the global colour table and drops the bit depth to 2.
func (g *GIF) SetColorTableSize(n int) error {
	if n < 0 {
		return raster.Errorf(raster.ErrOverflow, "gif: colour table size %d is negative", n)
	}
	if !raster.ValidTableSize(n) {
		return raster.Errorf(raster.ErrDomain, "gif: colour table size %d is not 0 or a power of two in [2, 256]", n)
	}

	if n == 0 {
		g.global = nil
		g.sorted = false
		g.cascade(minDepth)
		return nil
	}

	if g.global == nil {
		g.global, _ = raster.NewColorTable(0, raster.White)
	}
	if err := g.global.Resize(n); err != nil {
		return err
	}
	g.cascade(depthFor(n))
	return nil
}

// ColorTableSorted reports whether the global colour table is flagged as
// sorted by importance.
func (g *GIF) ColorTableSorted() bool { return g.sorted }

func (g *GIF) checkGlobal() error {
	if g.global == nil {
		return raster.Errorf(raster.ErrDomain, "gif: no global colour table")
	}
	return nil
}

// Color returns global colour table entry i.
func (g *GIF) Color(i int) (raster.Color, error) {
	if err := g.checkGlobal(); err != nil {
		return raster.Color{}, err
	}
	return g.global.At(i)
}

// SetColor sets global colour table entry i.
func (g *GIF) SetColor(i, r, gr, b int) error {
	if err := g.checkGlobal(); err != nil {
		return err
	}
	return g.global.Set(i, r, gr, b)
}

// BackgroundColor returns the background colour index.
func (g *GIF) BackgroundColor() int { return g.background }

// SetBackgroundColor sets the background colour index, which must refer to
// an entry in the global colour table.
func (g *GIF) SetBackgroundColor(i int) error {
	if err := raster.CheckByte("background colour", i); err != nil {
		return err
	}
	if err := g.checkGlobal(); err != nil {
		return err
	}
	if i >= g.global.Len() {
		return raster.Errorf(raster.ErrDomain, "gif: background colour %d outside colour table of size %d", i, g.global.Len())
	}
	g.background = i
	return nil
}

// AspectRatio returns the raw pixel aspect ratio byte.
func (g *GIF) AspectRatio() int { return g.aspect }

// LoopCount returns the number of times the animation repeats, 0 meaning
// forever, or -1 if there is no looping extension.
func (g *GIF) LoopCount() int { return g.loopCount }

// SetLoopCount sets the number of repeats. Passing -1 removes the looping
// extension.
func (g *GIF) SetLoopCount(n int) error {
	if n == -1 {
		g.loopCount = n
		return nil
	}
	if err := raster.CheckUint16("loop count", n); err != nil {
		return err
	}
	g.loopCount = n
	return nil
}

// Comments returns the comment extensions in file order.
func (g *GIF) Comments() []string {
	return append([]string(nil), g.comments...)
}

// AddComment appends a comment extension.
func (g *GIF) AddComment(s string) {
	g.comments = append(g.comments, s)
}

// ClearComments removes every comment extension.
func (g *GIF) ClearComments() {
	g.comments = nil
}

// FrameCount returns the number of frames.
func (g *GIF) FrameCount() int { return len(g.frames) }

func (g *GIF) view(i int) Frame {
	return Frame{g: g, id: g.id, gen: g.gen, index: i}
}

// Frame returns a view of frame i.
func (g *GIF) Frame(i int) (Frame, error) {
	if i < 0 || i >= len(g.frames) {
		return Frame{}, raster.Errorf(raster.ErrDomain, "gif: frame %d outside [0, %d)", i, len(g.frames))
	}
	return g.view(i), nil
}

// AddFrame appends a blank frame covering the screen and returns a view of
// it. Every previously obtained view is invalidated.
func (g *GIF) AddFrame() (Frame, error) {
	f, err := g.newFrame()
	if err != nil {
		return Frame{}, err
	}
	g.frames = append(g.frames, f)
	g.mutated()
	return g.view(len(g.frames) - 1), nil
}

// RemoveFrame deletes frame i, shifting later frames down. The last frame
// cannot be removed. Every previously obtained view is invalidated.
func (g *GIF) RemoveFrame(i int) error {
	if i < 0 || i >= len(g.frames) {
		return raster.Errorf(raster.ErrDomain, "gif: frame %d outside [0, %d)", i, len(g.frames))
	}
	if len(g.frames) == 1 {
		return raster.Errorf(raster.ErrDomain, "gif: cannot remove the only frame")
	}
	g.frames = append(g.frames[:i], g.frames[i+1:]...)
	g.mutated()
	return nil
}

func (g *GIF) clone() *GIF {
	dup := *g
	dup.global = g.global.Clone()
	dup.comments = append([]string(nil), g.comments...)
	dup.frames = make([]*frame, len(g.frames))
	for i, f := range g.frames {
		dup.frames[i] = f.clone()
	}
	return &dup
}

// Clone returns an independent deep copy. Views of g are not views of the
// copy.
func (g *GIF) Clone() *GIF {
	dup := g.clone()
	dup.id = nextID()
	dup.gen = 0
	return dup
}

// replace takes over the contents of o while keeping the identity of g.
func (g *GIF) replace(o *GIF) {
	id, gen := g.id, g.gen
	*g = *o
	g.id, g.gen = id, gen
	g.mutated()
}

// Set replaces g with a deep copy of o, as if g were rebound to a
// different GIF. Every previously obtained view of g is invalidated.
func (g *GIF) Set(o *GIF) {
	if g == o {
		return
	}
	g.replace(o.clone())
	g.id = nextID()
}

// Close releases every frame, invalidates every view and leaves g as the
// Default GIF.
func (g *GIF) Close() error {
	g.replace(Default())
	g.id = nextID()
	return nil
}

// Equal reports whether both GIFs have the same screen, colour tables,
// extensions and frames.
func (g *GIF) Equal(o *GIF) bool {
	if g.width != o.width || g.height != o.height || g.depth != o.depth ||
		g.background != o.background || g.loopCount != o.loopCount ||
		len(g.frames) != len(o.frames) || len(g.comments) != len(o.comments) {
		return false
	}
	if (g.global == nil) != (o.global == nil) || !g.global.Equal(o.global) {
		return false
	}
	for i := range g.comments {
		if g.comments[i] != o.comments[i] {
			return false
		}
	}
	for i := range g.frames {
		if !g.frames[i].equal(o.frames[i], len(g.frames) > 1) {
			return false
		}
	}
	return true
}
