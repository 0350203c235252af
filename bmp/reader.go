package bmp

import (
	"encoding/binary"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/vpixels/raster"
)

type fileHeader struct {
	Signature [2]byte
	FileSize  uint32
	Reserved1 uint16
	Reserved2 uint16
	Offset    uint32
}

type infoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerMetre int32
	YPixelsPerMetre int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

func corrupt(format string, a ...interface{}) error {
	return raster.Errorf(raster.ErrCorrupt, "bmp: "+format, a...)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// rowSize returns the padded length in bytes of one row of pixels.
func rowSize(depth, width int) int {
	return (width*depth + 31) / 32 * 4
}

type decoder struct {
	r io.Reader

	fh fileHeader
	ih infoHeader

	width, height int
	topDown       bool
	depth         int
	colors        int

	bmp *Bmp
}

func (d *decoder) readHeaders() error {
	if err := binary.Read(d.r, binary.LittleEndian, &d.fh); err != nil {
		return corrupt("reading file header: %v", err)
	}
	if d.fh.Signature != [2]byte{'B', 'M'} {
		return corrupt("invalid signature %q", d.fh.Signature[:])
	}

	if err := binary.Read(d.r, binary.LittleEndian, &d.ih); err != nil {
		return corrupt("reading info header: %v", err)
	}
	if d.ih.Size < infoHeaderSize {
		return corrupt("unsupported info header size %d", d.ih.Size)
	}
	// Skip the remainder of any V4/V5 header
	if extra := int64(d.ih.Size) - infoHeaderSize; extra > 0 {
		if _, err := io.CopyN(io.Discard, d.r, extra); err != nil {
			return corrupt("reading info header: %v", err)
		}
	}

	if d.ih.Planes != 1 {
		return corrupt("invalid number of planes %d", d.ih.Planes)
	}
	if d.ih.Compression != 0 {
		return corrupt("unsupported compression %d", d.ih.Compression)
	}

	d.depth = int(d.ih.BitCount)
	if !Supported(d.depth) {
		return corrupt("unsupported bit depth %d", d.depth)
	}

	d.width = int(d.ih.Width)
	d.height = int(d.ih.Height)
	if d.height < 0 {
		d.height = -d.height
		d.topDown = true
	}
	if d.width <= 0 || d.height <= 0 {
		return corrupt("invalid dimensions %dx%d", d.ih.Width, d.ih.Height)
	}
	// Pixels are unpacked in memory, one byte per index or three per RGB
	stride := int64(1)
	if d.depth == raster.DirectDepth {
		stride = 3
	}
	if n := int64(d.width) * int64(d.height); n > maxPixelDataLen || n*stride > maxPixelDataLen {
		return corrupt("dimensions %dx%d too large", d.width, d.height)
	}

	d.colors = tableSize(d.depth)
	if d.ih.ColorsUsed != 0 && d.colors > 0 {
		if int(d.ih.ColorsUsed) > d.colors {
			return corrupt("%d colours used exceeds %d-bit colour table", d.ih.ColorsUsed, d.depth)
		}
		d.colors = int(d.ih.ColorsUsed)
	}

	return nil
}

func (d *decoder) readPalette() error {
	t := d.bmp.img.Table()
	var tmp [paletteEntry]byte
	for i := 0; i < d.colors; i++ {
		if err := readFull(d.r, tmp[:]); err != nil {
			return corrupt("reading colour table: %v", err)
		}
		if err := t.SetColor(i, raster.Color{R: tmp[2], G: tmp[1], B: tmp[0]}); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) skipToPixels() error {
	pos := int64(headerSize) + int64(d.ih.Size) - infoHeaderSize + int64(d.colors)*paletteEntry
	skip := int64(d.fh.Offset) - pos
	if skip < 0 {
		return corrupt("pixel data offset %d overlaps headers", d.fh.Offset)
	}
	if _, err := io.CopyN(io.Discard, d.r, skip); err != nil {
		return corrupt("seeking to pixel data: %v", err)
	}
	return nil
}

func (d *decoder) readPixels() error {
	pix := d.bmp.img.Buffer().Pix()
	row := make([]byte, rowSize(d.depth, d.width))

	for i := 0; i < d.height; i++ {
		if err := readFull(d.r, row); err != nil {
			return corrupt("reading row %d: %v", i, err)
		}

		y := d.height - 1 - i
		if d.topDown {
			y = i
		}

		switch d.depth {
		case raster.DirectDepth:
			dst := pix[y*d.width*3 : (y+1)*d.width*3]
			for x := 0; x < d.width; x++ {
				dst[x*3+0] = row[x*3+2]
				dst[x*3+1] = row[x*3+1]
				dst[x*3+2] = row[x*3+0]
			}
		default:
			dst := pix[y*d.width : (y+1)*d.width]
			perByte := 8 / d.depth
			mask := byte(1<<uint(d.depth) - 1)
			for x := 0; x < d.width; x++ {
				shift := uint(8 - d.depth*(x%perByte+1))
				dst[x] = row[x/perByte] >> shift & mask
			}
		}
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeaders(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	var err error
	if d.bmp, err = New(d.depth, d.width, d.height); err != nil {
		return corrupt("%v", err)
	}
	d.bmp.xRes, d.bmp.yRes = d.ih.XPixelsPerMetre, d.ih.YPixelsPerMetre

	if err := d.readPalette(); err != nil {
		return err
	}

	if err := d.skipToPixels(); err != nil {
		return err
	}

	return d.readPixels()
}

// Decode reads a bitmap from r.
func Decode(r io.Reader) (*Bmp, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.bmp, nil
}

// DecodeConfig returns the colour model and dimensions of a bitmap without
// decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}

	var model color.Model = color.RGBAModel
	if d.depth != raster.DirectDepth {
		p := make(color.Palette, 1<<uint(d.depth))
		for i := range p {
			p[i] = color.Black
		}
		model = p
	}

	return image.Config{
		ColorModel: model,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
