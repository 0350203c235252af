package gif

import (
	"bufio"
	"bytes"
	"compress/lzw"
	"io"
)

// blockWriter splits a stream into length-prefixed sub-blocks.
type blockWriter struct {
	w   *bufio.Writer
	buf [255]byte
	n   int
	err error
}

func newBlockWriter(w io.Writer) *blockWriter {
	return &blockWriter{w: bufio.NewWriter(w)}
}

func (b *blockWriter) flush() {
	if b.n == 0 || b.err != nil {
		return
	}
	if b.err = b.w.WriteByte(byte(b.n)); b.err == nil {
		_, b.err = b.w.Write(b.buf[:b.n])
	}
	b.n = 0
}

func (b *blockWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 && b.err == nil {
		n := copy(b.buf[b.n:], p)
		b.n += n
		p = p[n:]
		written += n
		if b.n == len(b.buf) {
			b.flush()
		}
	}
	return written, b.err
}

// Close writes any partial sub-block and the terminating empty block.
func (b *blockWriter) Close() error {
	b.flush()
	if b.err == nil {
		b.err = b.w.WriteByte(0)
	}
	if b.err == nil {
		b.err = b.w.Flush()
	}
	return b.err
}

// compress writes the LZW code size and the compressed pixel indices as
// sub-blocks.
func compress(w io.Writer, codeSize int, pix []byte) error {
	if _, err := w.Write([]byte{byte(codeSize)}); err != nil {
		return err
	}
	bw := newBlockWriter(w)
	lw := lzw.NewWriter(bw, lzw.LSB, codeSize)
	if _, err := lw.Write(pix); err != nil {
		return err
	}
	if err := lw.Close(); err != nil {
		return err
	}
	return bw.Close()
}

// decompress expands the concatenated sub-block data into exactly n pixel
// indices. Data past the end-of-information code is ignored.
func decompress(codeSize int, data []byte, n int) ([]byte, error) {
	r := lzw.NewReader(bytes.NewReader(data), lzw.LSB, codeSize)
	defer r.Close()

	pix := make([]byte, n)
	if _, err := io.ReadFull(r, pix); err != nil {
		return nil, corrupt("pixel data: %v", err)
	}
	return pix, nil
}
