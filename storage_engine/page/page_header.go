package page

import (
	"PageLens/types"
)

// Header is the fixed 24-byte page header.
type Header struct {
	XLogID          uint32 // pd_lsn high half
	XRecOff         uint32 // pd_lsn low half
	Checksum        uint16
	Flags           uint16
	Lower           uint16
	Upper           uint16
	Special         uint16
	PageSizeVersion uint16
	PruneXid        uint32
}

// ReadHeader deserializes the page header from the first 24 bytes of the block.
func ReadHeader(b *Block) (*Header, error) {
	if _, err := b.span(0, types.PageHeaderSize); err != nil {
		return nil, err
	}
	h := &Header{}
	h.XLogID, _ = b.Uint32(types.OffLSN)
	h.XRecOff, _ = b.Uint32(types.OffLSN + 4)
	h.Checksum, _ = b.Uint16(types.OffChecksum)
	h.Flags, _ = b.Uint16(types.OffFlags)
	h.Lower, _ = b.Uint16(types.OffLower)
	h.Upper, _ = b.Uint16(types.OffUpper)
	h.Special, _ = b.Uint16(types.OffSpecial)
	h.PageSizeVersion, _ = b.Uint16(types.OffPageSizeVersion)
	h.PruneXid, _ = b.Uint32(types.OffPruneXid)
	return h, nil
}

// PageSize is the block size recorded in pd_pagesize_version.
func (h *Header) PageSize() int {
	return int(h.PageSizeVersion & 0xFF00)
}

// Version is the page layout version recorded in pd_pagesize_version.
func (h *Header) Version() int {
	return int(h.PageSizeVersion & 0x00FF)
}

// MaxOffset is the number of line pointers implied by pd_lower.
func (h *Header) MaxOffset() int {
	if int(h.Lower) <= types.PageHeaderSize {
		return 0
	}
	return (int(h.Lower) - types.PageHeaderSize) / types.ItemIDSize
}

// ItemID is one decoded line pointer.
type ItemID struct {
	Offset int // lp_off
	Flags  int // lp_flags
	Length int // lp_len
}

// ReadItemID decodes line pointer n (1-based) from the slot array.
func ReadItemID(b *Block, n int) (ItemID, error) {
	word, err := b.Uint32(ItemIDOffset(n))
	if err != nil {
		return ItemID{}, err
	}
	return ItemID{
		Offset: int(word & 0x7FFF),
		Flags:  int((word >> 15) & 0x3),
		Length: int(word >> 17),
	}, nil
}

// ItemIDOffset is the in-block offset of line pointer n (1-based).
func ItemIDOffset(n int) int {
	return types.PageHeaderSize + (n-1)*types.ItemIDSize
}
