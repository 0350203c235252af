package raster

import (
	"bufio"
	"io"
	"os"
)

// ReadFile returns the contents of file. Any failure is reported as ErrIO.
func ReadFile(file string) ([]byte, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, Errorf(ErrIO, "%v", err)
	}
	return b, nil
}

// WriteFile creates file and passes a buffered writer to fn. Unless
// overwrite is set an existing file is left alone and ErrIO is returned.
// Failures writing or closing the file are reported as ErrIO, errors
// returned by fn are passed through.
func WriteFile(file string, overwrite bool, fn func(io.Writer) error) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flag |= os.O_EXCL
	}

	f, err := os.OpenFile(file, flag, 0666)
	if err != nil {
		return Errorf(ErrIO, "%v", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return Errorf(ErrIO, "%v", err)
	}
	if err := f.Close(); err != nil {
		return Errorf(ErrIO, "%v", err)
	}
	return nil
}
