// Package pagebuilder constructs synthetic pages in the on-disk format.
// It backs the decoder tests and cmd/seed; nothing in the decode path
// depends on it.
package pagebuilder

import (
	"encoding/binary"

	"PageLens/checksum"
	"PageLens/types"
)

// Builder lays out one page. Items are placed from the end of the free
// space downwards and line pointers are appended after the header, the way
// the storage engine fills a page.
type Builder struct {
	data    []byte
	lower   int
	upper   int
	special int
}

// New returns a builder for an empty page with no special section.
func New(blockSize int) *Builder {
	b := &Builder{
		data:    make([]byte, blockSize),
		lower:   types.PageHeaderSize,
		upper:   blockSize,
		special: blockSize,
	}
	b.PutUint16(types.OffPageSizeVersion, uint16(blockSize)|types.PageLayoutVersion)
	return b
}

// WithSpecial reserves size bytes at the end of the page for the special
// section. It must be called before any item is added.
func (b *Builder) WithSpecial(size int) *Builder {
	b.special = len(b.data) - size
	b.upper = b.special
	return b
}

func (b *Builder) PutUint16(off int, v uint16) *Builder {
	binary.LittleEndian.PutUint16(b.data[off:], v)
	return b
}

func (b *Builder) PutUint32(off int, v uint32) *Builder {
	binary.LittleEndian.PutUint32(b.data[off:], v)
	return b
}

func (b *Builder) SetLSN(xlogid, xrecoff uint32) *Builder {
	b.PutUint32(types.OffLSN, xlogid)
	return b.PutUint32(types.OffLSN+4, xrecoff)
}

func (b *Builder) SetFlags(flags uint16) *Builder {
	return b.PutUint16(types.OffFlags, flags)
}

func (b *Builder) SetPruneXid(xid uint32) *Builder {
	return b.PutUint32(types.OffPruneXid, xid)
}

// SetVersion overwrites the layout version while keeping the page size.
func (b *Builder) SetVersion(v int) *Builder {
	return b.PutUint16(types.OffPageSizeVersion, uint16(len(b.data))&0xFF00|uint16(v))
}

// AddItem copies item into the free space and appends a line pointer to
// it. It returns the 1-based offset number of the new line pointer.
func (b *Builder) AddItem(item []byte, lpFlags int) int {
	b.upper -= types.MaxAlignOf(len(item))
	copy(b.data[b.upper:], item)
	return b.AddItemID(b.upper, lpFlags, len(item))
}

// AddItemID appends a raw line pointer without placing any item data.
func (b *Builder) AddItemID(off, lpFlags, length int) int {
	word := uint32(off&0x7FFF) | uint32(lpFlags&0x3)<<15 | uint32(length&0x7FFF)<<17
	binary.LittleEndian.PutUint32(b.data[b.lower:], word)
	b.lower += types.ItemIDSize
	return (b.lower - types.PageHeaderSize) / types.ItemIDSize
}

// SetBounds forces pd_lower, pd_upper and pd_special, bypassing the layout
// the builder tracked. Used to construct corrupt headers.
func (b *Builder) SetBounds(lower, upper, special int) *Builder {
	b.lower, b.upper, b.special = lower, upper, special
	return b
}

// Bytes writes the tracked bounds into the header and returns the page.
func (b *Builder) Bytes() []byte {
	b.PutUint16(types.OffLower, uint16(b.lower))
	b.PutUint16(types.OffUpper, uint16(b.upper))
	b.PutUint16(types.OffSpecial, uint16(b.special))
	return b.data
}

// Checksummed returns Bytes with pd_checksum set for the logical block.
func (b *Builder) Checksummed(logicalBlock uint32) []byte {
	pg := b.Bytes()
	sum, err := checksum.Page(pg, logicalBlock)
	if err == nil {
		binary.LittleEndian.PutUint16(pg[types.OffChecksum:], sum)
	}
	return pg
}

func (b *Builder) Lower() int   { return b.lower }
func (b *Builder) Upper() int   { return b.upper }
func (b *Builder) Special() int { return b.special }
