package gif

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"

	"github.com/bodgit/vpixels/raster"
)

var interlacing = []struct {
	start, step int
}{
	{0, 8},
	{4, 8},
	{2, 4},
	{1, 2},
}

// interlace reorders rows into the four interlace passes.
func interlace(pix []byte, width, height int) []byte {
	dst := make([]byte, 0, len(pix))
	for _, p := range interlacing {
		for y := p.start; y < height; y += p.step {
			dst = append(dst, pix[y*width:(y+1)*width]...)
		}
	}
	return dst
}

// sizeBits returns the packed field value for a colour table of n entries.
func sizeBits(n int) uint8 {
	return uint8(raster.Log2(n) - 1)
}

type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) write(data interface{}) {
	if e.err != nil {
		return
	}
	e.err = binary.Write(e.w, binary.LittleEndian, data)
}

func (e *encoder) writeColorTable(t *raster.ColorTable) {
	b := make([]byte, 0, 3*t.Len())
	for _, c := range t.Palette() {
		r, g, bl, _ := c.RGBA()
		b = append(b, uint8(r>>8), uint8(g>>8), uint8(bl>>8))
	}
	e.write(b)
}

func (e *encoder) writeSubBlocks(data []byte) {
	bw := newBlockWriter(e.w)
	if e.err != nil {
		return
	}
	if _, e.err = bw.Write(data); e.err == nil {
		e.err = bw.Close()
	}
}

func (e *encoder) version(g *GIF) string {
	if g.version == version89a || len(g.frames) > 1 || g.loopCount >= 0 || len(g.comments) > 0 {
		return version89a
	}
	return version87a
}

func (e *encoder) writeFrame(f *frame, animated bool) {
	if animated {
		c := f.control
		flags := uint8(c.disposal) << 2
		if c.userInput {
			flags |= gcUserInput
		}
		if c.transparent {
			flags |= gcTransparent
		}
		e.write([]byte{sExtension, eGraphicControl})
		e.write(graphicControlBlock{
			Size:        4,
			Flags:       flags,
			Delay:       uint16(c.delay),
			Transparent: uint8(c.transIndex),
		})
	}

	id := imageDescriptor{
		Left:   uint16(f.left),
		Top:    uint16(f.top),
		Width:  uint16(f.img.Width()),
		Height: uint16(f.img.Height()),
	}
	if f.interlaced {
		id.Flags |= fInterlace
	}
	t := f.img.Table()
	if f.binding == localTable && t.Len() > 0 {
		id.Flags |= fColorTable | sizeBits(t.Len())
		if f.sorted {
			id.Flags |= fImageSorted
		}
	}
	e.write([]byte{sImageDescriptor})
	e.write(id)
	if id.Flags&fColorTable != 0 {
		e.writeColorTable(t)
	}

	pix := f.img.Buffer().Pix()
	if f.interlaced {
		pix = interlace(pix, f.img.Width(), f.img.Height())
	}
	if e.err == nil {
		e.err = compress(e.w, f.img.Depth(), pix)
	}
}

func (e *encoder) encode(g *GIF) error {
	e.write([]byte(e.version(g)))

	sd := screenDescriptor{
		Width:  uint16(g.width),
		Height: uint16(g.height),
		Flags:  uint8(g.depth-1) << 4,
		Aspect: uint8(g.aspect),
	}
	if g.global != nil {
		sd.Flags |= fColorTable | sizeBits(g.global.Len())
		if g.sorted {
			sd.Flags |= fScreenSorted
		}
		sd.Background = uint8(g.background)
	}
	e.write(sd)
	if g.global != nil {
		e.writeColorTable(g.global)
	}

	if g.loopCount >= 0 {
		e.write([]byte{sExtension, eApplication, 11})
		e.write([]byte(netscape))
		e.write([]byte{3, 1, uint8(g.loopCount), uint8(g.loopCount >> 8), 0})
	}

	for _, c := range g.comments {
		e.write([]byte{sExtension, eComment})
		e.writeSubBlocks([]byte(c))
	}

	for _, f := range g.frames {
		e.writeFrame(f, len(g.frames) > 1)
	}

	e.write([]byte{sTrailer})

	if e.err == nil {
		e.err = e.w.Flush()
	}
	return e.err
}

// Encode writes g to w.
func Encode(w io.Writer, g *GIF) error {
	e := encoder{w: bufio.NewWriter(w)}
	return e.encode(g)
}

// MarshalBinary encodes the GIF into binary form and returns the result.
func (g *GIF) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Encode(buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes the GIF from binary form, replacing the current
// contents and invalidating every view. If the data is not a valid GIF an
// ErrCorrupt error is returned and g is reset to the Default GIF.
func (g *GIF) UnmarshalBinary(data []byte) error {
	dup, err := Decode(bytes.NewReader(data))
	if err != nil {
		g.replace(Default())
		return err
	}
	g.replace(dup)
	return nil
}

// Import replaces the GIF with the contents of file. If the file cannot be
// read an ErrIO error is returned and the GIF is unchanged.
func (g *GIF) Import(file string) error {
	data, err := raster.ReadFile(file)
	if err != nil {
		return err
	}
	return g.UnmarshalBinary(data)
}

// Export writes the GIF to file. An existing file is only replaced if
// overwrite is set, otherwise an ErrIO error is returned.
func (g *GIF) Export(file string, overwrite bool) error {
	return raster.WriteFile(file, overwrite, func(w io.Writer) error {
		if err := Encode(w, g); err != nil {
			return raster.Errorf(raster.ErrIO, "gif: %v", err)
		}
		return nil
	})
}
