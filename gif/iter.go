package gif

import "github.com/bodgit/vpixels/raster"

// Iterator steps through the frames of a GIF, forwards or backwards. It
// stops early if the GIF is structurally changed, after which Err returns
// raster.ErrInvalidHandle until Reset is called.
type Iterator struct {
	g       *GIF
	id, gen uint64
	reverse bool
	next    int
	cur     Frame
	err     error
}

// Iter returns an iterator over the frames from first to last.
func (g *GIF) Iter() *Iterator {
	it := &Iterator{g: g}
	it.Reset()
	return it
}

// ReverseIter returns an iterator over the frames from last to first.
func (g *GIF) ReverseIter() *Iterator {
	it := &Iterator{g: g, reverse: true}
	it.Reset()
	return it
}

// Reset rewinds the iterator to the first frame of the GIF as it is now.
func (it *Iterator) Reset() {
	it.id, it.gen = it.g.id, it.g.gen
	it.cur, it.err = Frame{}, nil
	if it.reverse {
		it.next = len(it.g.frames) - 1
	} else {
		it.next = 0
	}
}

// Next advances to the next frame, returning false when there are no more
// frames or the GIF has changed.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.g.id != it.id || it.g.gen != it.gen {
		it.err = raster.Errorf(raster.ErrInvalidHandle, "gif: frames changed during iteration")
		it.cur = Frame{}
		return false
	}
	if it.next < 0 || it.next >= len(it.g.frames) {
		it.cur = Frame{}
		return false
	}
	it.cur = it.g.view(it.next)
	if it.reverse {
		it.next--
	} else {
		it.next++
	}
	return true
}

// Frame returns the current frame.
func (it *Iterator) Frame() Frame {
	return it.cur
}

// Err returns the error that stopped the iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}
