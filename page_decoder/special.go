package decoder

import (
	"fmt"

	"PageLens/annotation"
	"PageLens/storage_engine/page"
	"PageLens/types"
)

// BTreeOpaque is the B-tree special section (BTPageOpaqueData).
type BTreeOpaque struct {
	Prev    uint32
	Next    uint32
	Level   uint32
	Flags   uint16
	CycleID uint16
}

// ReadBTreeOpaque decodes the B-tree special section starting at special.
func ReadBTreeOpaque(blk *page.Block, special int) (*BTreeOpaque, error) {
	if _, err := blk.Bytes(special, types.BTOpaqueSize); err != nil {
		return nil, err
	}
	o := &BTreeOpaque{}
	o.Prev, _ = blk.Uint32(special + types.BTOffPrev)
	o.Next, _ = blk.Uint32(special + types.BTOffNext)
	o.Level, _ = blk.Uint32(special + types.BTOffLevel)
	o.Flags, _ = blk.Uint16(special + types.BTOffFlags)
	o.CycleID, _ = blk.Uint16(special + types.BTOffCycleID)
	return o, nil
}

// DecodeSpecial annotates the special section. Only the B-tree layout is
// decoded field by field; recognized families without a decoder and failed
// classifications are reported instead.
func (d *Decoder) DecodeSpecial(p *Page) error {
	switch {
	case p.Family == types.FamilyNone:
		return nil
	case p.Family.IsError():
		d.report(p, KindInvalidSpecial, fmt.Sprintf(
			"invalid special section type %q", p.Family))
		return nil
	case p.Family != types.FamilyBTree:
		d.report(p, KindUnsupportedSpecial, fmt.Sprintf(
			"unsupported special section type %q", p.Family))
		return nil
	}

	special := int(p.Header.Special)
	opaque := p.BTree
	if opaque == nil {
		var err error
		if opaque, err = ReadBTreeOpaque(p.Block, special); err != nil {
			return err
		}
	}
	fields := []headerField{
		{"btpo_prev", annotation.ColorBlack, types.BTOffPrev, types.BTOffNext},
		{"btpo_next", annotation.ColorBlack, types.BTOffNext, types.BTOffLevel},
		{"btpo.level", annotation.ColorBlack, types.BTOffLevel, types.BTOffFlags},
		{dashFlags("btpo_flags", opaque.Flags, types.BTreeFlagNames), annotation.ColorBlack, types.BTOffFlags, types.BTOffCycleID},
		{"btpo_cycleid", annotation.ColorBlack, types.BTOffCycleID, types.BTOpaqueSize},
	}
	return d.emitFields(p, special, fields)
}
