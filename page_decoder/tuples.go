package decoder

import (
	"sort"

	"github.com/pkg/errors"

	"PageLens/storage_engine/page"
	"PageLens/types"
)

type slot struct {
	number int
	id     page.ItemID
}

// DecodeTuples annotates every item the slot array points at. B-tree pages
// use the index tuple layout; every other family that reaches this stage
// is decoded as heap. A page that could not be classified has only its
// header and line pointers annotated.
//
// Items are visited in ascending lp_off order (slot number breaks ties),
// which keeps tag start offsets non-decreasing within the block even
// though pages fill their item space from the end.
func (d *Decoder) DecodeTuples(p *Page) error {
	if IsBTreeMetaPage(p) || p.Family.IsError() {
		return nil
	}
	blk := p.Block
	hdr := p.Header
	maxOffset := hdr.MaxOffset()

	if maxOffset == 0 {
		if hdr.Upper != hdr.Special {
			return errors.Wrapf(ErrEmptyBlock, "block %d: pd_upper %d, pd_special %d", blk.Number, hdr.Upper, hdr.Special)
		}
		return nil
	}
	if maxOffset > blk.Size() {
		return errors.Wrapf(ErrItemIndexCorrupt, "block %d: %d line pointers", blk.Number, maxOffset)
	}
	if p.Family.IsUnsupportedIndex() {
		return errors.Wrapf(ErrUnsupportedFamily, "block %d: %s", blk.Number, p.Family)
	}

	slots := make([]slot, 0, maxOffset)
	for n := 1; n <= maxOffset; n++ {
		id, err := page.ReadItemID(blk, n)
		if err != nil {
			return err
		}
		slots = append(slots, slot{number: n, id: id})
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].id.Offset < slots[j].id.Offset
	})

	for _, s := range slots {
		var err error
		if p.Family == types.FamilyBTree {
			err = d.decodeIndexTuple(p, s.number, s.id)
		} else {
			err = d.decodeHeapItem(p, s.number, s.id)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) decodeHeapItem(p *Page, offnum int, id page.ItemID) error {
	blk := p.Block
	end := id.Offset + id.Length
	if end > blk.Size() || end > blk.BytesRead {
		return errors.Wrapf(ErrItemBeyondBlock, "block %d item %d: offset %d length %d, %d bytes read",
			blk.Number, offnum, id.Offset, id.Length, blk.BytesRead)
	}
	// redirect and unused line pointers have no storage
	if id.Length == 0 {
		return nil
	}
	return d.decodeHeapTuple(p, offnum, id)
}
