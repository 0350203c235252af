package vpixels

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG input for Load
	_ "image/png"  // register PNG input for Load

	"github.com/bodgit/vpixels/bmp"
	"github.com/bodgit/vpixels/gif"
	"github.com/bodgit/vpixels/raster"
)

// Supported formats.
const (
	FormatBMP = "bmp"
	FormatGIF = "gif"
)

// Info summarises an image file.
type Info struct {
	Path           string
	Format         string
	Width          int
	Height         int
	BitDepth       int
	Frames         int
	ColorTableSize int
	SHA1           string
}

func sniff(b []byte) string {
	switch {
	case bytes.HasPrefix(b, []byte("BM")):
		return FormatBMP
	case bytes.HasPrefix(b, []byte("GIF8")):
		return FormatGIF
	default:
		return ""
	}
}

// Identify decodes the BMP or GIF file and describes it. Anything else is
// an ErrCorrupt error.
func Identify(file string) (*Info, error) {
	b, err := raster.ReadFile(file)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Path: file,
		SHA1: fmt.Sprintf("%X", sha1.Sum(b)),
	}

	switch info.Format = sniff(b); info.Format {
	case FormatBMP:
		m := bmp.Default()
		if err := m.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		info.Width, info.Height = m.Width(), m.Height()
		info.BitDepth = m.BitDepth()
		info.Frames = 1
		info.ColorTableSize = m.ColorTableSize()
	case FormatGIF:
		g, err := gif.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		info.Width, info.Height = g.Width(), g.Height()
		info.BitDepth = g.BitDepth()
		info.Frames = g.FrameCount()
		info.ColorTableSize = g.ColorTableSize()
	default:
		return nil, raster.Errorf(raster.ErrCorrupt, "vpixels: %s is neither a BMP nor a GIF", file)
	}

	return info, nil
}

// Load decodes file into one image per frame. BMP and GIF files are read
// with the bmp and gif packages, PNG and JPEG with the standard decoders.
func Load(file string) ([]image.Image, error) {
	b, err := raster.ReadFile(file)
	if err != nil {
		return nil, err
	}

	switch sniff(b) {
	case FormatBMP:
		m, err := bmp.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		return []image.Image{m.Image()}, nil
	case FormatGIF:
		g, err := gif.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		var ms []image.Image
		for it := g.Iter(); it.Next(); {
			m, err := it.Frame().Image()
			if err != nil {
				return nil, err
			}
			ms = append(ms, m)
		}
		return ms, nil
	}

	m, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, raster.Errorf(raster.ErrCorrupt, "vpixels: %v", err)
	}
	return []image.Image{m}, nil
}
