package page

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

/*
Block is the unit every decoder works on. The walker owns one Block per
iteration and overwrites Data in place on every read, so nothing decoded
from a Block may hold on to its slice past that iteration.

Data always has the length of the file's block size, but only the first
BytesRead bytes came from the file. Every field reader below refuses to
touch anything at or past BytesRead; a short final read therefore can never
leak stale bytes from the previous block into the annotations.
*/

// ErrOutOfBounds is returned by the field readers when the requested range is
// not inside the bytes actually read.
var ErrOutOfBounds = errors.New("field read past end of read bytes")

type Block struct {
	Number    uint32 // block index within the file
	Data      []byte
	BytesRead int
}

// NewBlock allocates a zeroed block buffer of the given size.
func NewBlock(size int) *Block {
	return &Block{Data: make([]byte, size)}
}

// Size is the file's block size, independent of how much was read.
func (b *Block) Size() int {
	return len(b.Data)
}

// Full reports whether the whole block was read.
func (b *Block) Full() bool {
	return b.BytesRead == len(b.Data)
}

// Readable reports whether [off, off+width) lies within the read bytes.
func (b *Block) Readable(off, width int) bool {
	return off >= 0 && width >= 0 && off+width <= b.BytesRead && off+width <= len(b.Data)
}

func (b *Block) span(off, width int) ([]byte, error) {
	if !b.Readable(off, width) {
		return nil, errors.Wrapf(ErrOutOfBounds, "block %d: offset %d width %d (read %d of %d)",
			b.Number, off, width, b.BytesRead, len(b.Data))
	}
	return b.Data[off : off+width], nil
}

func (b *Block) Uint8(off int) (uint8, error) {
	s, err := b.span(off, 1)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

func (b *Block) Uint16(off int) (uint16, error) {
	s, err := b.span(off, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(s), nil
}

func (b *Block) Uint32(off int) (uint32, error) {
	s, err := b.span(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(s), nil
}

// Bytes returns a read-only view of [off, off+width).
func (b *Block) Bytes(off, width int) ([]byte, error) {
	return b.span(off, width)
}
