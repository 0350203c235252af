package gif

import (
	"bufio"
	"encoding/binary"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/vpixels/raster"
)

// Block introducers and extension labels.
const (
	sExtension       = 0x21
	sImageDescriptor = 0x2c
	sTrailer         = 0x3b

	eText           = 0x01
	eGraphicControl = 0xf9
	eComment        = 0xfe
	eApplication    = 0xff
)

// Masks for the packed fields.
const (
	fColorTable     = 0x80
	fResolution     = 0x70
	fScreenSorted   = 0x08
	fInterlace      = 0x40
	fImageSorted    = 0x20
	fColorTableSize = 0x07

	gcDisposal    = 0x1c
	gcUserInput   = 0x02
	gcTransparent = 0x01
)

const netscape = "NETSCAPE2.0"

type screenDescriptor struct {
	Width, Height uint16
	Flags         uint8
	Background    uint8
	Aspect        uint8
}

type imageDescriptor struct {
	Left, Top     uint16
	Width, Height uint16
	Flags         uint8
}

type graphicControlBlock struct {
	Size        uint8
	Flags       uint8
	Delay       uint16
	Transparent uint8
	Terminator  uint8
}

func corrupt(format string, a ...interface{}) error {
	return raster.Errorf(raster.ErrCorrupt, "gif: "+format, a...)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r *bufio.Reader

	sd      screenDescriptor
	control *graphicControl

	g *GIF
}

func (d *decoder) readByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return b, err
}

func (d *decoder) readColorTable(flags uint8) (*raster.ColorTable, error) {
	n := 2 << (flags & fColorTableSize)
	t, err := raster.NewColorTable(n, raster.White)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 3*n)
	if err := readFull(d.r, b); err != nil {
		return nil, corrupt("reading colour table: %v", err)
	}
	for i := 0; i < n; i++ {
		_ = t.SetColor(i, raster.Color{R: b[3*i], G: b[3*i+1], B: b[3*i+2]})
	}
	return t, nil
}

// readSubBlocks returns the concatenated data of a sub-block sequence.
func (d *decoder) readSubBlocks() ([]byte, error) {
	var data []byte
	for {
		n, err := d.readByte()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return data, nil
		}
		start := len(data)
		data = append(data, make([]byte, n)...)
		if err := readFull(d.r, data[start:]); err != nil {
			return nil, err
		}
	}
}

func (d *decoder) readHeader() error {
	var sig [6]byte
	if err := readFull(d.r, sig[:]); err != nil {
		return corrupt("reading header: %v", err)
	}
	switch v := string(sig[:]); v {
	case version87a, version89a:
		d.g.version = v
	default:
		return corrupt("invalid header %q", v)
	}

	if err := binary.Read(d.r, binary.LittleEndian, &d.sd); err != nil {
		return corrupt("reading screen descriptor: %v", err)
	}
	if d.sd.Width == 0 || d.sd.Height == 0 {
		return corrupt("invalid screen size %dx%d", d.sd.Width, d.sd.Height)
	}
	d.g.width, d.g.height = int(d.sd.Width), int(d.sd.Height)
	d.g.aspect = int(d.sd.Aspect)

	if d.sd.Flags&fColorTable != 0 {
		t, err := d.readColorTable(d.sd.Flags)
		if err != nil {
			return err
		}
		d.g.global = t
		d.g.sorted = d.sd.Flags&fScreenSorted != 0
		d.g.depth = depthFor(t.Len())
		if int(d.sd.Background) < t.Len() {
			d.g.background = int(d.sd.Background)
		}
	} else {
		d.g.depth = depthFor(1 << (((d.sd.Flags & fResolution) >> 4) + 1))
	}

	return nil
}

func (d *decoder) readExtension() error {
	label, err := d.readByte()
	if err != nil {
		return corrupt("reading extension: %v", err)
	}

	switch label {
	case eGraphicControl:
		var b graphicControlBlock
		if err := binary.Read(d.r, binary.LittleEndian, &b); err != nil {
			return corrupt("reading graphic control: %v", err)
		}
		if b.Size != 4 || b.Terminator != 0 {
			return corrupt("invalid graphic control block")
		}
		d.control = &graphicControl{
			delay:       int(b.Delay),
			disposal:    int(b.Flags&gcDisposal) >> 2,
			userInput:   b.Flags&gcUserInput != 0,
			transparent: b.Flags&gcTransparent != 0,
			transIndex:  int(b.Transparent),
		}
		if d.control.disposal > DisposalPrevious {
			d.control.disposal = DisposalNone
		}
		return nil
	case eComment:
		data, err := d.readSubBlocks()
		if err != nil {
			return corrupt("reading comment: %v", err)
		}
		d.g.comments = append(d.g.comments, string(data))
		return nil
	case eApplication:
		data, err := d.readSubBlocks()
		if err != nil {
			return corrupt("reading application extension: %v", err)
		}
		// The identifier is the first sub-block, the NETSCAPE2.0 loop
		// count sub-block follows it
		if len(data) == 14 && string(data[:11]) == netscape && data[11] == 1 {
			d.g.loopCount = int(binary.LittleEndian.Uint16(data[12:]))
		}
		return nil
	default:
		// Plain text and unknown extensions
		if _, err := d.readSubBlocks(); err != nil {
			return corrupt("skipping extension %#02x: %v", label, err)
		}
		return nil
	}
}

// deinterlace reorders rows stored in the four interlace passes.
func deinterlace(pix []byte, width, height int) []byte {
	dst := make([]byte, len(pix))
	row := 0
	for _, p := range interlacing {
		for y := p.start; y < height; y += p.step {
			copy(dst[y*width:(y+1)*width], pix[row*width:(row+1)*width])
			row++
		}
	}
	return dst
}

func (d *decoder) readImage() error {
	var id imageDescriptor
	if err := binary.Read(d.r, binary.LittleEndian, &id); err != nil {
		return corrupt("reading image descriptor: %v", err)
	}
	width, height := int(id.Width), int(id.Height)
	if width == 0 || height == 0 {
		return corrupt("invalid image size %dx%d", width, height)
	}
	if int(id.Left)+width > d.g.width || int(id.Top)+height > d.g.height {
		return corrupt("%dx%d image at (%d, %d) exceeds %dx%d screen", width, height, id.Left, id.Top, d.g.width, d.g.height)
	}

	f := &frame{
		binding:    screenTable,
		left:       int(id.Left),
		top:        int(id.Top),
		interlaced: id.Flags&fInterlace != 0,
	}

	var table *raster.ColorTable
	if id.Flags&fColorTable != 0 {
		t, err := d.readColorTable(id.Flags)
		if err != nil {
			return err
		}
		table = t
		f.binding = localTable
		f.sorted = id.Flags&fImageSorted != 0
	}

	codeSize, err := d.readByte()
	if err != nil {
		return corrupt("reading LZW code size: %v", err)
	}
	if codeSize < minDepth || codeSize > maxDepth {
		return corrupt("invalid LZW code size %d", codeSize)
	}

	depth := int(codeSize)
	size := d.g.global.Len()
	switch {
	case table != nil:
		depth = depthFor(table.Len())
		size = table.Len()
	case depth > d.g.depth:
		depth = d.g.depth
	}
	if size == 0 {
		size = 1 << uint(depth)
	}

	data, err := d.readSubBlocks()
	if err != nil {
		return corrupt("reading image data: %v", err)
	}
	pix, err := decompress(int(codeSize), data, width*height)
	if err != nil {
		return err
	}
	for _, v := range pix {
		if int(v) >= size || int(v) >= 1<<uint(depth) {
			return corrupt("colour index %d outside colour table of size %d", v, size)
		}
	}
	if f.interlaced {
		pix = deinterlace(pix, width, height)
	}

	if f.img, err = raster.NewImage(depth, width, height, table); err != nil {
		return corrupt("%v", err)
	}
	copy(f.img.Buffer().Pix(), pix)

	if d.control != nil {
		f.control = *d.control
		if f.control.transIndex >= size {
			f.control.transparent = false
			f.control.transIndex = 0
		}
		d.control = nil
	}

	d.g.frames = append(d.g.frames, f)
	return nil
}

func (d *decoder) decode() error {
	if err := d.readHeader(); err != nil {
		return err
	}

	for {
		b, err := d.readByte()
		if err != nil {
			return corrupt("missing trailer: %v", err)
		}

		switch b {
		case sExtension:
			if err := d.readExtension(); err != nil {
				return err
			}
		case sImageDescriptor:
			if err := d.readImage(); err != nil {
				return err
			}
		case sTrailer:
			if len(d.g.frames) == 0 {
				return corrupt("no images")
			}
			return nil
		default:
			return corrupt("unknown block %#02x", b)
		}
	}
}

// Decode reads a GIF from r.
func Decode(r io.Reader) (*GIF, error) {
	d := decoder{
		r: bufio.NewReader(r),
		g: &GIF{id: nextID(), loopCount: -1},
	}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.g, nil
}

// DecodeConfig returns the global colour table and the screen dimensions of
// a GIF without decoding any frames.
func DecodeConfig(r io.Reader) (image.Config, error) {
	d := decoder{
		r: bufio.NewReader(r),
		g: &GIF{loopCount: -1},
	}
	if err := d.readHeader(); err != nil {
		return image.Config{}, err
	}

	var model color.Model
	if d.g.global != nil {
		model = d.g.global.Palette()
	} else {
		model = color.Palette{}
	}

	return image.Config{
		ColorModel: model,
		Width:      d.g.width,
		Height:     d.g.height,
	}, nil
}
