package pagebuilder

import (
	"encoding/binary"

	"PageLens/types"
)

// HeapTuple describes a heap tuple header plus its data.
type HeapTuple struct {
	Xmin, Xmax, Cid uint32
	CtidBlock       uint32
	CtidOffset      uint16
	Infomask2       uint16 // natts are taken from Natts, not from here
	Infomask        uint16
	Natts           int
	NullBitmap      []byte // written at t_bits when HEAP_HASNULL is set
	Oid             uint32 // written last in the header when HEAP_HASOID is set
	Data            []byte
	Hoff            int // overrides the computed t_hoff when non-zero
}

// ComputedHoff is the header length implied by the infomask bits.
func (t HeapTuple) ComputedHoff() int {
	n := types.HeapOffBits
	if t.Infomask&types.HeapHasNull != 0 {
		n += (t.Natts + 7) / 8
	}
	if t.Infomask&types.HeapHasOid != 0 {
		n += types.OidSize
	}
	return types.MaxAlignOf(n)
}

func (t HeapTuple) Encode() []byte {
	hoff := t.ComputedHoff()
	if t.Hoff != 0 {
		hoff = t.Hoff
	}
	buf := make([]byte, hoff+len(t.Data))

	binary.LittleEndian.PutUint32(buf[types.HeapOffXmin:], t.Xmin)
	binary.LittleEndian.PutUint32(buf[types.HeapOffXmax:], t.Xmax)
	binary.LittleEndian.PutUint32(buf[types.HeapOffCid:], t.Cid)
	binary.LittleEndian.PutUint16(buf[types.HeapOffCtidBiHi:], uint16(t.CtidBlock>>16))
	binary.LittleEndian.PutUint16(buf[types.HeapOffCtidBiLo:], uint16(t.CtidBlock))
	binary.LittleEndian.PutUint16(buf[types.HeapOffCtidOffset:], t.CtidOffset)
	binary.LittleEndian.PutUint16(buf[types.HeapOffInfomask2:], t.Infomask2&^types.HeapNattsMask|uint16(t.Natts)&types.HeapNattsMask)
	binary.LittleEndian.PutUint16(buf[types.HeapOffInfomask:], t.Infomask)
	buf[types.HeapOffHoff] = byte(hoff)

	if t.Infomask&types.HeapHasNull != 0 {
		copy(buf[types.HeapOffBits:hoff], t.NullBitmap)
	}
	if t.Infomask&types.HeapHasOid != 0 && hoff >= types.HeapOffBits+types.OidSize {
		binary.LittleEndian.PutUint32(buf[hoff-types.OidSize:], t.Oid)
	}
	copy(buf[hoff:], t.Data)
	return buf
}

// IndexTuple describes an index tuple: a heap TID (or downlink) and a key.
type IndexTuple struct {
	Block  uint32
	Offset uint16
	Flags  uint16 // high bits of t_info
	Key    []byte
}

// Size is the MAXALIGNed length stored in t_info.
func (t IndexTuple) Size() int {
	return types.MaxAlignOf(types.IndexHeaderSize + len(t.Key))
}

func (t IndexTuple) Encode() []byte {
	size := t.Size()
	buf := make([]byte, size)
	binary.LittleEndian.PutUint16(buf[types.IndexOffTidBiHi:], uint16(t.Block>>16))
	binary.LittleEndian.PutUint16(buf[types.IndexOffTidBiLo:], uint16(t.Block))
	binary.LittleEndian.PutUint16(buf[types.IndexOffTidOffset:], t.Offset)
	binary.LittleEndian.PutUint16(buf[types.IndexOffInfo:], t.Flags&^types.IndexSizeMask|uint16(size)&types.IndexSizeMask)
	copy(buf[types.IndexHeaderSize:], t.Key)
	return buf
}

// BTreeOpaque is the B-tree special section.
type BTreeOpaque struct {
	Prev, Next uint32
	Level      uint32
	Flags      uint16
	CycleID    uint16
}

// NewBTreePage returns a builder with a B-tree special section written.
func NewBTreePage(blockSize int, o BTreeOpaque) *Builder {
	b := New(blockSize).WithSpecial(types.BTOpaqueSize)
	sp := b.Special()
	b.PutUint32(sp+types.BTOffPrev, o.Prev)
	b.PutUint32(sp+types.BTOffNext, o.Next)
	b.PutUint32(sp+types.BTOffLevel, o.Level)
	b.PutUint16(sp+types.BTOffFlags, o.Flags)
	b.PutUint16(sp+types.BTOffCycleID, o.CycleID)
	return b
}

// BTreeMeta is the content of a B-tree meta page.
type BTreeMeta struct {
	Magic, Version      uint32
	Root, Level         uint32
	FastRoot, FastLevel uint32
}

// btMetaPageDataSize is sizeof(BTMetaPageData), including the two trailing
// vacuum fields that are not annotated.
const btMetaPageDataSize = 40

// NewBTreeMetaPage returns a finished meta page.
func NewBTreeMetaPage(blockSize int, m BTreeMeta) []byte {
	b := NewBTreePage(blockSize, BTreeOpaque{Flags: types.BTPMeta})
	start := types.MaxAlignOf(types.PageHeaderSize)
	b.PutUint32(start+types.BTMetaOffMagic, m.Magic)
	b.PutUint32(start+types.BTMetaOffVersion, m.Version)
	b.PutUint32(start+types.BTMetaOffRoot, m.Root)
	b.PutUint32(start+types.BTMetaOffLevel, m.Level)
	b.PutUint32(start+types.BTMetaOffFastRoot, m.FastRoot)
	b.PutUint32(start+types.BTMetaOffFastLevel, m.FastLevel)
	b.SetBounds(start+btMetaPageDataSize, b.Upper(), b.Special())
	return b.Bytes()
}

// NewTrailerPage returns a page whose special section has the given size and
// whose final two bytes hold pageID, for exercising the classifier.
func NewTrailerPage(blockSize, specialSize int, pageID uint16) *Builder {
	b := New(blockSize).WithSpecial(specialSize)
	b.PutUint16(blockSize-2, pageID)
	return b
}
