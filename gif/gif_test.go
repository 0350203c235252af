package gif

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/vpixels/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFrame(t *testing.T, g *GIF, i int) Frame {
	t.Helper()
	f, err := g.Frame(i)
	require.NoError(t, err)
	return f
}

func TestNew(t *testing.T) {
	for depth := 2; depth <= 8; depth++ {
		g, err := New(Config{BitDepth: depth, Width: 3, Height: 2, Frames: 2})
		require.NoError(t, err)
		assert.Equal(t, depth, g.BitDepth())
		assert.Equal(t, 1<<uint(depth), g.ColorTableSize())
		assert.Equal(t, 2, g.FrameCount())

		d, err := mustFrame(t, g, 1).BitDepth()
		require.NoError(t, err)
		assert.Equal(t, depth, d)
	}

	g := Default()
	assert.Equal(t, 2, g.BitDepth())
	assert.Equal(t, 1, g.Width())
	assert.Equal(t, 1, g.Height())
	assert.Equal(t, 1, g.FrameCount())
	assert.Equal(t, 4, g.ColorTableSize())
	assert.Equal(t, -1, g.LoopCount())
	assert.Equal(t, "GIF89a", g.Version())

	c, err := g.Color(3)
	require.NoError(t, err)
	assert.Equal(t, raster.White, c)
}

func TestNewInvalid(t *testing.T) {
	tables := []struct {
		c    Config
		kind error
	}{
		{Config{}, raster.ErrDomain},
		{Config{BitDepth: 0, Width: 3, Height: 4}, raster.ErrDomain},
		{Config{BitDepth: 2, Width: 0, Height: 4}, raster.ErrDomain},
		{Config{BitDepth: 2, Width: 3, Height: 0}, raster.ErrDomain},
		{Config{BitDepth: 1, Width: 1, Height: 1}, raster.ErrDomain},
		{Config{BitDepth: 9, Width: 1, Height: 1}, raster.ErrDomain},
		{Config{BitDepth: -2, Width: 1, Height: 1}, raster.ErrOverflow},
		{Config{BitDepth: 2, Width: 65536, Height: 1}, raster.ErrOverflow},
		{Config{BitDepth: 2, Width: 1, Height: -1}, raster.ErrOverflow},
		{Config{BitDepth: 2, Width: 1, Height: 1, Frames: -1}, raster.ErrOverflow},
	}

	for _, table := range tables {
		_, err := New(table.c)
		assert.True(t, errors.Is(err, table.kind), "%+v: %v", table.c, err)
	}
}

func TestNoGlobalColorTable(t *testing.T) {
	g, err := New(Config{BitDepth: 4, Width: 2, Height: 2, NoGlobalColorTable: true})
	require.NoError(t, err)
	assert.False(t, g.HasColorTable())
	assert.Equal(t, 0, g.ColorTableSize())

	_, err = g.Color(0)
	assert.True(t, errors.Is(err, raster.ErrDomain))
	assert.True(t, errors.Is(g.SetBackgroundColor(0), raster.ErrDomain))

	f := mustFrame(t, g, 0)
	ok, err := f.HasColorTable()
	require.NoError(t, err)
	assert.True(t, ok)
	n, err := f.ColorTableSize()
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	// No table would be left
	assert.True(t, errors.Is(f.SetColorTableSize(0), raster.ErrDomain))
}

func TestScenario(t *testing.T) {
	g, err := New(Config{BitDepth: 2, Width: 3, Height: 4, Frames: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, g.BitDepth())
	assert.Equal(t, 4, g.ColorTableSize())
	assert.Equal(t, 5, g.FrameCount())

	require.NoError(t, g.SetBitDepth(7))
	assert.Equal(t, 128, g.ColorTableSize())
	for it := g.Iter(); it.Next(); {
		d, err := it.Frame().BitDepth()
		require.NoError(t, err)
		assert.Equal(t, 7, d)
	}

	f := mustFrame(t, g, 1)
	require.NoError(t, f.SetColorTableSize(32))
	d, err := f.BitDepth()
	require.NoError(t, err)
	assert.Equal(t, 5, d)

	require.NoError(t, g.SetBitDepth(3))
	d, err = f.BitDepth()
	require.NoError(t, err)
	assert.Equal(t, 5, d)
	d, err = mustFrame(t, g, 0).BitDepth()
	require.NoError(t, err)
	assert.Equal(t, 3, d)

	// Back to the global table
	require.NoError(t, f.SetColorTableSize(0))
	d, err = f.BitDepth()
	require.NoError(t, err)
	assert.Equal(t, 3, d)
}

func TestSetColorTableSize(t *testing.T) {
	g, err := New(Config{BitDepth: 4, Width: 2, Height: 2})
	require.NoError(t, err)
	require.NoError(t, g.SetBackgroundColor(9))

	require.NoError(t, g.SetColorTableSize(8))
	assert.Equal(t, 3, g.BitDepth())
	assert.Equal(t, 0, g.BackgroundColor())

	require.NoError(t, g.SetColorTableSize(0))
	assert.False(t, g.HasColorTable())
	assert.Equal(t, 2, g.BitDepth())

	assert.True(t, errors.Is(g.SetColorTableSize(3), raster.ErrDomain))
	assert.True(t, errors.Is(g.SetColorTableSize(512), raster.ErrDomain))
	assert.True(t, errors.Is(g.SetColorTableSize(-4), raster.ErrOverflow))

	require.NoError(t, g.SetColorTableSize(2))
	assert.Equal(t, 2, g.BitDepth())
	assert.Equal(t, 2, g.ColorTableSize())
}

func TestFrameBitDepth(t *testing.T) {
	g, err := New(Config{BitDepth: 4, Width: 2, Height: 2, Frames: 2})
	require.NoError(t, err)

	f := mustFrame(t, g, 0)
	assert.True(t, errors.Is(f.SetBitDepth(5), raster.ErrDomain))
	require.NoError(t, f.SetPixel(0, 0, 15))
	require.NoError(t, f.SetBitDepth(2))
	v, err := f.Pixel(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	// A local table frees the frame from the GIF depth
	require.NoError(t, f.SetColorTableSize(4))
	require.NoError(t, f.SetBitDepth(8))
	n, err := f.ColorTableSize()
	require.NoError(t, err)
	assert.Equal(t, 256, n)
}

func TestPixels(t *testing.T) {
	g, err := New(Config{BitDepth: 3, Width: 4, Height: 3})
	require.NoError(t, err)
	require.NoError(t, g.SetColor(5, 10, 20, 30))

	f := mustFrame(t, g, 0)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			require.NoError(t, f.SetPixel(x, y, (x+y)%8))
		}
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			v, err := f.Pixel(x, y)
			require.NoError(t, err)
			assert.Equal(t, (x+y)%8, v)
		}
	}

	c, err := f.PixelRGB(3, 2)
	require.NoError(t, err)
	assert.Equal(t, raster.Color{R: 10, G: 20, B: 30}, c)

	assert.True(t, errors.Is(f.SetPixel(0, 0, 8), raster.ErrDomain))
	assert.True(t, errors.Is(f.SetPixel(0, 0, 256), raster.ErrOverflow))
	assert.True(t, errors.Is(f.SetPixel(4, 0, 1), raster.ErrDomain))
	_, err = f.Pixel(0, 3)
	assert.True(t, errors.Is(err, raster.ErrDomain))

	require.NoError(t, f.SetAllPixels(7))
	v, err := f.Pixel(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestRemoveFrame(t *testing.T) {
	g, err := New(Config{BitDepth: 2, Width: 1, Height: 1, Frames: 4})
	require.NoError(t, err)

	for g.FrameCount() > 1 {
		require.NoError(t, g.RemoveFrame(0))
	}
	assert.Equal(t, 1, g.FrameCount())
	assert.True(t, errors.Is(g.RemoveFrame(0), raster.ErrDomain))
	assert.True(t, errors.Is(g.RemoveFrame(3), raster.ErrDomain))
	_, err = g.Frame(1)
	assert.True(t, errors.Is(err, raster.ErrDomain))
	_, err = g.Frame(-1)
	assert.True(t, errors.Is(err, raster.ErrDomain))
}

func TestSingleFrameControl(t *testing.T) {
	f := mustFrame(t, Default(), 0)

	d, err := f.Delay()
	require.NoError(t, err)
	assert.Equal(t, 0, d)
	m, err := f.DisposalMethod()
	require.NoError(t, err)
	assert.Equal(t, DisposalNone, m)
	ok, err := f.HasTransparency()
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = f.UserInput()
	require.NoError(t, err)
	assert.False(t, ok)
	i, err := f.TransparentIndex()
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	assert.True(t, errors.Is(f.SetDelay(10), raster.ErrDomain))
	assert.True(t, errors.Is(f.SetDisposalMethod(DisposalBackground), raster.ErrDomain))
	assert.True(t, errors.Is(f.SetTransparency(true), raster.ErrDomain))
	assert.True(t, errors.Is(f.SetTransparentIndex(1), raster.ErrDomain))
}

func TestAnimationControl(t *testing.T) {
	g, err := New(Config{BitDepth: 2, Width: 1, Height: 1, Frames: 2})
	require.NoError(t, err)
	f := mustFrame(t, g, 1)

	require.NoError(t, f.SetDelay(25))
	require.NoError(t, f.SetDisposalMethod(DisposalPrevious))
	require.NoError(t, f.SetTransparency(true))
	require.NoError(t, f.SetTransparentIndex(3))

	d, err := f.Delay()
	require.NoError(t, err)
	assert.Equal(t, 25, d)
	m, err := f.DisposalMethod()
	require.NoError(t, err)
	assert.Equal(t, DisposalPrevious, m)
	i, err := f.TransparentIndex()
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	assert.True(t, errors.Is(f.SetDisposalMethod(4), raster.ErrDomain))
	assert.True(t, errors.Is(f.SetDisposalMethod(256), raster.ErrOverflow))
	assert.True(t, errors.Is(f.SetDelay(65536), raster.ErrOverflow))
	assert.True(t, errors.Is(f.SetTransparentIndex(4), raster.ErrDomain))
}

func TestInvalidHandle(t *testing.T) {
	tables := map[string]func(*testing.T, *GIF){
		"add": func(t *testing.T, g *GIF) {
			_, err := g.AddFrame()
			require.NoError(t, err)
		},
		"remove": func(t *testing.T, g *GIF) {
			require.NoError(t, g.RemoveFrame(1))
		},
		"set": func(t *testing.T, g *GIF) {
			g.Set(Default())
		},
		"close": func(t *testing.T, g *GIF) {
			require.NoError(t, g.Close())
		},
		"unmarshal": func(t *testing.T, g *GIF) {
			b, err := Default().MarshalBinary()
			require.NoError(t, err)
			require.NoError(t, g.UnmarshalBinary(b))
		},
	}

	for name, mutate := range tables {
		t.Run(name, func(t *testing.T) {
			g, err := New(Config{BitDepth: 2, Width: 1, Height: 1, Frames: 3})
			require.NoError(t, err)
			f := mustFrame(t, g, 0)
			require.True(t, f.Valid())

			mutate(t, g)

			assert.False(t, f.Valid())
			_, err = f.BitDepth()
			assert.True(t, errors.Is(err, raster.ErrInvalidHandle))
			_, err = f.Pixel(0, 0)
			assert.True(t, errors.Is(err, raster.ErrInvalidHandle))
			assert.True(t, errors.Is(f.SetPixel(0, 0, 0), raster.ErrInvalidHandle))
			_, err = f.Delay()
			assert.True(t, errors.Is(err, raster.ErrInvalidHandle))
		})
	}

	// Changing pixels or depth is not structural
	g, err := New(Config{BitDepth: 2, Width: 1, Height: 1, Frames: 2})
	require.NoError(t, err)
	f := mustFrame(t, g, 1)
	require.NoError(t, g.SetBitDepth(6))
	require.NoError(t, f.CopyFrom(mustFrame(t, g, 0)))
	assert.True(t, f.Valid())

	var zero Frame
	_, err = zero.Width()
	assert.True(t, errors.Is(err, raster.ErrInvalidHandle))
}

func TestIterator(t *testing.T) {
	g, err := New(Config{BitDepth: 2, Width: 1, Height: 1, Frames: 4})
	require.NoError(t, err)

	collect := func(it *Iterator) []int {
		var got []int
		for it.Next() {
			got = append(got, it.Frame().Index())
		}
		return got
	}

	assert.Equal(t, []int{0, 1, 2, 3}, collect(g.Iter()))
	assert.Equal(t, []int{3, 2, 1, 0}, collect(g.ReverseIter()))

	a, b := g.Iter(), g.Iter()
	require.True(t, a.Next())
	require.True(t, a.Next())
	require.True(t, b.Next())
	assert.Equal(t, 1, a.Frame().Index())
	assert.Equal(t, 0, b.Frame().Index())

	a.Reset()
	require.True(t, a.Next())
	assert.Equal(t, 0, a.Frame().Index())

	_, err = g.AddFrame()
	require.NoError(t, err)
	assert.False(t, b.Next())
	assert.True(t, errors.Is(b.Err(), raster.ErrInvalidHandle))

	b.Reset()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, collect(b))
	assert.NoError(t, b.Err())
}

func TestClone(t *testing.T) {
	g, err := New(Config{BitDepth: 3, Width: 3, Height: 3, Frames: 2})
	require.NoError(t, err)
	require.NoError(t, mustFrame(t, g, 0).SetPixel(1, 1, 6))
	require.NoError(t, g.SetColor(6, 1, 2, 3))

	dup := g.Clone()
	assert.True(t, g.Equal(dup))

	require.NoError(t, mustFrame(t, dup, 0).SetPixel(1, 1, 2))
	require.NoError(t, dup.SetColor(6, 9, 9, 9))
	v, err := mustFrame(t, g, 0).Pixel(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, v)
	c, err := g.Color(6)
	require.NoError(t, err)
	assert.Equal(t, raster.Color{R: 1, G: 2, B: 3}, c)
	assert.False(t, g.Equal(dup))

	f := mustFrame(t, g, 0)
	g.Set(dup)
	assert.True(t, g.Equal(dup))
	assert.False(t, f.Valid())
}

func TestCopyFrom(t *testing.T) {
	a, err := New(Config{BitDepth: 3, Width: 2, Height: 2, Frames: 2})
	require.NoError(t, err)
	require.NoError(t, a.SetColor(4, 40, 50, 60))
	src := mustFrame(t, a, 0)
	require.NoError(t, src.SetPixel(0, 1, 4))

	b, err := New(Config{BitDepth: 2, Width: 2, Height: 2})
	require.NoError(t, err)
	dst := mustFrame(t, b, 0)
	require.NoError(t, dst.CopyFrom(src))

	ok, err := dst.HasColorTable()
	require.NoError(t, err)
	assert.True(t, ok)
	d, err := dst.BitDepth()
	require.NoError(t, err)
	assert.Equal(t, 3, d)
	c, err := dst.PixelRGB(0, 1)
	require.NoError(t, err)
	assert.Equal(t, raster.Color{R: 40, G: 50, B: 60}, c)

	small, err := New(Config{BitDepth: 2, Width: 1, Height: 2})
	require.NoError(t, err)
	assert.True(t, errors.Is(mustFrame(t, small, 0).CopyFrom(src), raster.ErrDomain))
}

func TestCopyFromTransparency(t *testing.T) {
	a, err := New(Config{BitDepth: 5, Width: 2, Height: 2, Frames: 2})
	require.NoError(t, err)
	src := mustFrame(t, a, 1)
	require.NoError(t, src.SetTransparency(true))
	require.NoError(t, src.SetTransparentIndex(20))
	require.NoError(t, src.SetBitDepth(2))

	// Still valid against the 32 entry global table
	i, err := src.TransparentIndex()
	require.NoError(t, err)
	assert.Equal(t, 20, i)

	b, err := New(Config{BitDepth: 2, Width: 2, Height: 2, Frames: 2})
	require.NoError(t, err)
	dst := mustFrame(t, b, 1)
	require.NoError(t, dst.CopyFrom(src))

	n, err := dst.ColorTableSize()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	ok, err := dst.HasTransparency()
	require.NoError(t, err)
	assert.False(t, ok)
	i, err = dst.TransparentIndex()
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	data, err := b.MarshalBinary()
	require.NoError(t, err)
	c := Default()
	require.NoError(t, c.UnmarshalBinary(data))
	assert.True(t, b.Equal(c))
}

func TestCrop(t *testing.T) {
	g, err := New(Config{BitDepth: 2, Width: 4, Height: 4})
	require.NoError(t, err)
	f := mustFrame(t, g, 0)
	require.NoError(t, f.SetPixel(2, 3, 1))

	require.NoError(t, f.Crop(1, 2, 2, 2))
	w, err := f.Width()
	require.NoError(t, err)
	assert.Equal(t, 2, w)
	left, err := f.Left()
	require.NoError(t, err)
	assert.Equal(t, 1, left)
	top, err := f.Top()
	require.NoError(t, err)
	assert.Equal(t, 2, top)
	v, err := f.Pixel(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	assert.True(t, errors.Is(f.Crop(1, 1, 2, 2), raster.ErrDomain))
	assert.True(t, errors.Is(f.SetPosition(3, 0), raster.ErrDomain))
	require.NoError(t, f.SetPosition(2, 2))
}

func TestInterlace(t *testing.T) {
	pix := make([]byte, 3*10)
	for i := range pix {
		pix[i] = byte(i / 3)
	}
	out := interlace(pix, 3, 10)
	assert.Equal(t, []byte{0, 0, 0, 8, 8, 8, 4, 4, 4, 2, 2, 2, 6, 6, 6}, out[:15])
	assert.Equal(t, pix, deinterlace(out, 3, 10))
}

func newAnimation(t *testing.T) *GIF {
	t.Helper()

	g, err := New(Config{BitDepth: 3, Width: 5, Height: 4, Frames: 3})
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		require.NoError(t, g.SetColor(i, i*30, 255-i*30, i*10))
	}
	require.NoError(t, g.SetBackgroundColor(1))
	require.NoError(t, g.SetLoopCount(0))
	g.AddComment("vpixels")

	for it := g.Iter(); it.Next(); {
		f := it.Frame()
		for y := 0; y < 4; y++ {
			for x := 0; x < 5; x++ {
				require.NoError(t, f.SetPixel(x, y, (x*y+f.Index())%4))
			}
		}
		require.NoError(t, f.SetDelay(10*(f.Index()+1)))
	}

	f := mustFrame(t, g, 0)
	require.NoError(t, f.SetInterlaced(true))
	require.NoError(t, f.SetTransparency(true))
	require.NoError(t, f.SetTransparentIndex(2))
	require.NoError(t, f.SetDisposalMethod(DisposalBackground))

	f = mustFrame(t, g, 1)
	require.NoError(t, f.SetColorTableSize(8))
	require.NoError(t, f.SetColor(7, 1, 2, 3))

	f = mustFrame(t, g, 2)
	require.NoError(t, f.SetBitDepth(2))
	require.NoError(t, f.Crop(1, 1, 3, 2))

	return g
}

func TestRoundTrip(t *testing.T) {
	tables := map[string]func(*testing.T) *GIF{
		"animation": newAnimation,
		"default": func(*testing.T) *GIF {
			return Default()
		},
		"local": func(t *testing.T) *GIF {
			g, err := New(Config{BitDepth: 4, Width: 2, Height: 2, NoGlobalColorTable: true})
			require.NoError(t, err)
			f := mustFrame(t, g, 0)
			require.NoError(t, f.SetColor(15, 100, 0, 0))
			require.NoError(t, f.SetPixel(1, 1, 15))
			return g
		},
	}

	for name, build := range tables {
		t.Run(name, func(t *testing.T) {
			g := build(t)
			b, err := g.MarshalBinary()
			require.NoError(t, err)

			got := Default()
			require.NoError(t, got.UnmarshalBinary(b))
			assert.True(t, g.Equal(got))
			assert.Equal(t, g.Comments(), got.Comments())
		})
	}
}

func TestEncodeVersion(t *testing.T) {
	g := Default()
	g.version = version87a

	b, err := g.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, "GIF87a", string(b[:6]))
	assert.Equal(t, byte(0x3b), b[len(b)-1])

	g.AddComment("x")
	b, err = g.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(b[:6]))
}

func TestDecodeConfig(t *testing.T) {
	b, err := newAnimation(t).MarshalBinary()
	require.NoError(t, err)

	c, err := DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 5, c.Width)
	assert.Equal(t, 4, c.Height)
	assert.Len(t, c.ColorModel.(color.Palette), 8)
}

func TestUnmarshalCorrupt(t *testing.T) {
	good, err := newAnimation(t).MarshalBinary()
	require.NoError(t, err)

	tables := map[string][]byte{
		"empty":     {},
		"signature": append([]byte("GIF90a"), good[6:]...),
		"truncated": good[:len(good)-8],
		"trailer":   good[:len(good)-1],
	}

	for name, data := range tables {
		t.Run(name, func(t *testing.T) {
			g := newAnimation(t)
			f := mustFrame(t, g, 0)

			err := g.UnmarshalBinary(data)
			assert.True(t, errors.Is(err, raster.ErrCorrupt), err)
			assert.True(t, g.Equal(Default()))
			assert.False(t, f.Valid())
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "anim.gif")

	g := newAnimation(t)
	require.NoError(t, g.Export(file, false))
	assert.True(t, errors.Is(g.Export(file, false), raster.ErrIO))
	require.NoError(t, g.Export(file, true))

	got := Default()
	require.NoError(t, got.Import(file))
	assert.True(t, g.Equal(got))

	// A missing file leaves the GIF untouched
	f := mustFrame(t, got, 2)
	err := got.Import(filepath.Join(dir, "missing.gif"))
	assert.True(t, errors.Is(err, raster.ErrIO))
	assert.True(t, f.Valid())
	assert.True(t, g.Equal(got))

	// A corrupt file resets it
	bad := filepath.Join(dir, "bad.gif")
	require.NoError(t, os.WriteFile(bad, []byte("not a gif"), 0o644))
	err = got.Import(bad)
	assert.True(t, errors.Is(err, raster.ErrCorrupt))
	assert.True(t, got.Equal(Default()))
	assert.False(t, f.Valid())
}

func TestFrameImage(t *testing.T) {
	g, err := New(Config{BitDepth: 2, Width: 4, Height: 4})
	require.NoError(t, err)
	require.NoError(t, g.SetColor(1, 255, 0, 0))
	f := mustFrame(t, g, 0)
	require.NoError(t, f.Crop(2, 1, 2, 2))
	require.NoError(t, f.SetPixel(0, 0, 1))

	m, err := f.Image()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(2, 1, 4, 3), m.Bounds())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, m.At(2, 1))
}

func TestFromImages(t *testing.T) {
	solid := func(c color.Color) image.Image {
		m := image.NewRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				m.Set(x, y, c)
			}
		}
		return m
	}

	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}

	g, err := FromImages([]image.Image{solid(red), solid(blue)}, 2, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, g.FrameCount())
	assert.Equal(t, 4, g.Width())

	c, err := mustFrame(t, g, 0).PixelRGB(1, 1)
	require.NoError(t, err)
	assert.Equal(t, raster.Color{R: 255}, c)
	c, err = mustFrame(t, g, 1).PixelRGB(3, 3)
	require.NoError(t, err)
	assert.Equal(t, raster.Color{B: 255}, c)

	d, err := mustFrame(t, g, 1).Delay()
	require.NoError(t, err)
	assert.Equal(t, 50, d)

	_, err = FromImages(nil, 2, 0)
	assert.True(t, errors.Is(err, raster.ErrDomain))
}
