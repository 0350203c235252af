package vpixels

import (
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/vpixels/bmp"
	"github.com/bodgit/vpixels/gif"
	"github.com/bodgit/vpixels/raster"
)

const defaultDepth = 8

// ConvertOptions controls Convert.
type ConvertOptions struct {
	// BitDepth of the output, 8 if unset
	BitDepth int
	// Delay between GIF frames in hundredths of a second
	Delay     int
	Overwrite bool
}

// Convert reads any image Load understands and writes it as a BMP or GIF,
// chosen by the extension of out. A BMP only keeps the first frame.
func Convert(in, out string, opts ConvertOptions) error {
	if opts.BitDepth == 0 {
		opts.BitDepth = defaultDepth
	}

	ms, err := Load(in)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(out)); ext {
	case "." + FormatBMP:
		b, err := bmp.FromImage(ms[0], opts.BitDepth)
		if err != nil {
			return err
		}
		return b.Export(out, opts.Overwrite)
	case "." + FormatGIF:
		g, err := gif.FromImages(ms, opts.BitDepth, opts.Delay)
		if err != nil {
			return err
		}
		return g.Export(out, opts.Overwrite)
	default:
		return raster.Errorf(raster.ErrDomain, "vpixels: cannot write %q files", ext)
	}
}

// Extract writes every frame of the GIF file to dir as a PNG and returns
// the files written.
func Extract(file, dir string, overwrite bool) ([]string, error) {
	g := gif.Default()
	if err := g.Import(file); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	var files []string
	for it := g.Iter(); it.Next(); {
		m, err := it.Frame().Image()
		if err != nil {
			return nil, err
		}

		name := filepath.Join(dir, fmt.Sprintf("%s-%03d.png", base, it.Frame().Index()))
		if err := raster.WriteFile(name, overwrite, func(w io.Writer) error {
			return png.Encode(w, m)
		}); err != nil {
			return nil, err
		}
		files = append(files, name)
	}

	return files, nil
}
