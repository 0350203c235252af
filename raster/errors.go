/*
Package raster implements the indexed-colour building blocks shared by the
bmp and gif packages: colour tables, pixel buffers and the image type that
couples the two.

A pixel buffer stores one palette index per pixel for bit depths up to 8.
At depth 24 each pixel is stored directly as three bytes and no colour table
exists. Colour tables always hold 0 or a power of two entries up to 256.
*/
package raster

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this module wraps exactly one of
// these and can be tested for with errors.Is.
var (
	// ErrDomain is a value outside the semantically valid range, such as
	// an index, dimension, bit depth or disposal code.
	ErrDomain = errors.New("domain error")
	// ErrOverflow is a value outside the representable width of the
	// field it is stored in, such as a colour channel above 255.
	ErrOverflow = errors.New("overflow error")
	// ErrTypeMismatch is an argument of the wrong shape for the target,
	// for example an RGB value written to an indexed image.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrIO is a missing file, a permission problem or a refused
	// overwrite.
	ErrIO = errors.New("i/o error")
	// ErrCorrupt is returned when bytes do not parse as the expected
	// format.
	ErrCorrupt = errors.New("corrupt data")
	// ErrInvalidHandle is returned when a view is used after its owner
	// was structurally changed or closed.
	ErrInvalidHandle = errors.New("invalid handle")
)

// Errorf returns an error wrapping kind with a formatted message.
func Errorf(kind error, format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, a...))
}

// CheckByte returns ErrOverflow if v does not fit in an unsigned byte.
func CheckByte(name string, v int) error {
	if v < 0 || v > 0xff {
		return Errorf(ErrOverflow, "%s %d outside [0, 255]", name, v)
	}
	return nil
}

// CheckUint16 returns ErrOverflow if v does not fit in an unsigned 16-bit
// field.
func CheckUint16(name string, v int) error {
	if v < 0 || v > 0xffff {
		return Errorf(ErrOverflow, "%s %d outside [0, 65535]", name, v)
	}
	return nil
}
