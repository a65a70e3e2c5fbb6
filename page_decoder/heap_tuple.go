package decoder

import (
	"fmt"

	"PageLens/annotation"
	"PageLens/storage_engine/page"
	"PageLens/types"
)

// HeapHeader is the fixed part of a heap tuple header.
type HeapHeader struct {
	Xmin      uint32
	Xmax      uint32
	CidOrXvac uint32
	Infomask2 uint16
	Infomask  uint16
	Hoff      int
}

func readHeapHeader(blk *page.Block, off int) (*HeapHeader, error) {
	if _, err := blk.Bytes(off, types.HeapOffBits); err != nil {
		return nil, err
	}
	h := &HeapHeader{}
	h.Xmin, _ = blk.Uint32(off + types.HeapOffXmin)
	h.Xmax, _ = blk.Uint32(off + types.HeapOffXmax)
	h.CidOrXvac, _ = blk.Uint32(off + types.HeapOffCid)
	h.Infomask2, _ = blk.Uint16(off + types.HeapOffInfomask2)
	h.Infomask, _ = blk.Uint16(off + types.HeapOffInfomask)
	hoff, _ := blk.Uint8(off + types.HeapOffHoff)
	h.Hoff = int(hoff)
	return h, nil
}

// Natts is the attribute count stored in t_infomask2.
func (h *HeapHeader) Natts() int {
	return int(h.Infomask2 & types.HeapNattsMask)
}

// ExpectedHoff is the header length the infomask bits imply: the fixed
// header, the null bitmap when HEAP_HASNULL is set and the oid when
// HEAP_HASOID is set, MAXALIGNed.
func (h *HeapHeader) ExpectedHoff() int {
	n := types.HeapOffBits
	if h.Infomask&types.HeapHasNull != 0 {
		n += (h.Natts() + 7) / 8
	}
	if h.Infomask&types.HeapHasOid != 0 {
		n += types.OidSize
	}
	return types.MaxAlignOf(n)
}

func (d *Decoder) decodeHeapTuple(p *Page, offnum int, id page.ItemID) error {
	blk := p.Block
	off := id.Offset
	h, err := readHeapHeader(blk, off)
	if err != nil {
		return err
	}

	if expected := h.ExpectedHoff(); expected != h.Hoff {
		d.report(p, KindHeaderLengthMismatch, fmt.Sprintf(
			"item %d: t_hoff %d, infomask implies %d", offnum, h.Hoff, expected))
	}

	cid := headerField{"t_cid", annotation.ColorRedDark, types.HeapOffCid, types.HeapOffCtidBiHi}
	if h.Infomask&types.HeapMoved != 0 {
		cid = headerField{"t_xvac", annotation.ColorPink, types.HeapOffCid, types.HeapOffCtidBiHi}
	}
	fields := []headerField{
		{"xmin", annotation.ColorRedLight, types.HeapOffXmin, types.HeapOffXmax},
		{"xmax", annotation.ColorRedLight, types.HeapOffXmax, types.HeapOffCid},
		cid,
		{"t_ctid->bi_hi", annotation.ColorBlueLight, types.HeapOffCtidBiHi, types.HeapOffCtidBiLo},
		{"t_ctid->bi_lo", annotation.ColorBlueLight, types.HeapOffCtidBiLo, types.HeapOffCtidOffset},
		{"t_ctid->offsetNumber", annotation.ColorBlueDark, types.HeapOffCtidOffset, types.HeapOffInfomask2},
		{parenFlags("t_infomask2", h.Infomask2, types.Infomask2Names), annotation.ColorGreenLight, types.HeapOffInfomask2, types.HeapOffInfomask},
		{parenFlags("t_infomask", h.Infomask, types.InfomaskNames), annotation.ColorGreenDark, types.HeapOffInfomask, types.HeapOffHoff},
		{"t_hoff", annotation.ColorYellowDark, types.HeapOffHoff, types.HeapOffBits},
	}

	// The null bitmap runs up to t_hoff and the oid, when present, is its
	// last four bytes. A t_hoff pointing past the item is clamped to it.
	hoff := min(h.Hoff, id.Length)
	if hoff > types.HeapOffBits {
		fields = append(fields, headerField{"t_bits", annotation.ColorYellowDark, types.HeapOffBits, hoff})
	}
	// a t_hoff inside the fixed header still leaves the data after it
	if start := max(hoff, types.HeapOffBits); start < id.Length {
		fields = append(fields, headerField{"contents", annotation.ColorWhite, start, id.Length})
	}

	for _, f := range fields {
		if err := d.emitter.EmitTuple(blk.Number, offnum, f.name, f.color,
			p.at(off+f.start), p.at(off+f.end-1)); err != nil {
			return err
		}
	}
	return nil
}
