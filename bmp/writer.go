package bmp

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/bodgit/vpixels/raster"
)

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) write(data interface{}) {
	if e.err != nil {
		return
	}
	e.err = binary.Write(e.w, binary.LittleEndian, data)
}

func (e *encoder) encode(b *Bmp) error {
	depth, width, height := b.BitDepth(), b.Width(), b.Height()
	colors := b.ColorTableSize()

	stride := rowSize(depth, width)
	offset := headerSize + colors*paletteEntry

	e.write(fileHeader{
		Signature: [2]byte{'B', 'M'},
		FileSize:  uint32(offset + stride*height),
		Offset:    uint32(offset),
	})
	e.write(infoHeader{
		Size:            infoHeaderSize,
		Width:           int32(width),
		Height:          int32(height),
		Planes:          1,
		BitCount:        uint16(depth),
		ImageSize:       uint32(stride * height),
		XPixelsPerMetre: b.xRes,
		YPixelsPerMetre: b.yRes,
	})

	if t := b.img.Table(); t != nil {
		for i := 0; i < t.Len(); i++ {
			c, _ := t.At(i)
			e.write([paletteEntry]byte{c.B, c.G, c.R, 0})
		}
	}

	pix := b.img.Buffer().Pix()
	row := make([]byte, stride)

	// Rows are stored bottom-up
	for y := height - 1; y >= 0; y-- {
		for i := range row {
			row[i] = 0
		}

		switch depth {
		case raster.DirectDepth:
			src := pix[y*width*3 : (y+1)*width*3]
			for x := 0; x < width; x++ {
				row[x*3+0] = src[x*3+2]
				row[x*3+1] = src[x*3+1]
				row[x*3+2] = src[x*3+0]
			}
		default:
			src := pix[y*width : (y+1)*width]
			perByte := 8 / depth
			for x := 0; x < width; x++ {
				shift := uint(8 - depth*(x%perByte+1))
				row[x/perByte] |= src[x] << shift
			}
		}

		e.write(row)
	}

	return e.err
}

// Encode writes the bitmap b to w.
func Encode(w io.Writer, b *Bmp) error {
	e := encoder{w: w}
	return e.encode(b)
}

// MarshalBinary encodes the bitmap into binary form and returns the result.
func (b *Bmp) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Encode(buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes the bitmap from binary form, replacing the
// current contents.
func (b *Bmp) UnmarshalBinary(data []byte) error {
	dup, err := Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*b = *dup
	return nil
}

// Import replaces the bitmap with the contents of file. If the file cannot
// be read an ErrIO error is returned and the bitmap is unchanged. If the
// file is not a valid bitmap an ErrCorrupt error is returned; the bitmap
// should then be discarded.
func (b *Bmp) Import(file string) error {
	data, err := raster.ReadFile(file)
	if err != nil {
		return err
	}
	return b.UnmarshalBinary(data)
}

// Export writes the bitmap to file. An existing file is only replaced if
// overwrite is set, otherwise an ErrIO error is returned.
func (b *Bmp) Export(file string, overwrite bool) error {
	return raster.WriteFile(file, overwrite, func(w io.Writer) error {
		if err := Encode(w, b); err != nil {
			return raster.Errorf(raster.ErrIO, "bmp: %v", err)
		}
		return nil
	})
}
