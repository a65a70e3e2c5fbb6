package decoder

import (
	"fmt"

	"github.com/pkg/errors"

	"PageLens/annotation"
	"PageLens/storage_engine/page"
	"PageLens/types"
)

// decodeIndexTuple annotates a B-tree item. The tuple carries its own size
// in t_info; the line pointer length is not consulted beyond skipping
// pointers without storage.
func (d *Decoder) decodeIndexTuple(p *Page, offnum int, id page.ItemID) error {
	blk := p.Block
	if id.Length == 0 {
		return nil
	}
	off := id.Offset
	info, err := blk.Uint16(off + types.IndexOffInfo)
	if err != nil {
		return errors.Wrapf(ErrItemBeyondBlock, "block %d item %d: index tuple header at %d, %d bytes read",
			blk.Number, offnum, off, blk.BytesRead)
	}
	size := int(info & types.IndexSizeMask)

	fields := []headerField{
		{"t_tid->bi_hi", annotation.ColorBlueLight, types.IndexOffTidBiHi, types.IndexOffTidBiLo},
		{"t_tid->bi_lo", annotation.ColorBlueLight, types.IndexOffTidBiLo, types.IndexOffTidOffset},
		{"t_tid->offsetNumber", annotation.ColorBlueDark, types.IndexOffTidOffset, types.IndexOffInfo},
		{"t_info", annotation.ColorYellowDark, types.IndexOffInfo, types.IndexHeaderSize},
	}

	// "minus infinity" items have no key
	if size > types.IndexHeaderSize {
		end := size
		if off+end > blk.BytesRead {
			end = blk.BytesRead - off
			d.report(p, KindIndexTupleOverrun, fmt.Sprintf(
				"item %d: t_info size %d runs past byte %d", offnum, size, blk.BytesRead))
		}
		if end > types.IndexHeaderSize {
			fields = append(fields, headerField{"contents", annotation.ColorWhite, types.IndexHeaderSize, end})
		}
	}

	for _, f := range fields {
		if err := d.emitter.EmitTuple(blk.Number, offnum, f.name, f.color,
			p.at(off+f.start), p.at(off+f.end-1)); err != nil {
			return err
		}
	}
	return nil
}
