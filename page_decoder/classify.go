package decoder

import (
	"PageLens/storage_engine/page"
	"PageLens/types"
)

/*
Classify infers the page family from the special section alone: its size
(block size minus pd_special) and, for some sizes, the trailing page id or
a magic number at its start.

Rules, in order:

	bytes read <= header size              -> unknown
	pd_special 0, past block or past read  -> boundary
	special size 0                         -> none
	special size 8, whole block read:
	    magic 0x1717 at pd_special         -> sequence
	    trailing id 0xFF82                 -> spgist
	    otherwise                          -> gin
	special size 16, whole block read:
	    trailing id <= 0xFF7F              -> btree (id is btpo_cycleid)
	    trailing id 0xFF80                 -> hash
	    trailing id 0xFF81                 -> gist
	anything else                          -> unknown

Reading the trailer of a partially read block could pick up stale bytes, so
every rule that looks at it requires the whole block.
*/
func Classify(blk *page.Block) types.PageFamily {
	if blk.BytesRead <= types.PageHeaderSize {
		return types.FamilyUnknown
	}

	raw, _ := blk.Uint16(types.OffSpecial)
	special := int(raw)
	blockSize := blk.Size()
	if special == 0 || special > blockSize || special > blk.BytesRead {
		return types.FamilyBoundary
	}

	size := blockSize - special
	if size == 0 {
		return types.FamilyNone
	}
	if !blk.Full() || size <= 2 {
		return types.FamilyUnknown
	}

	pageID, _ := blk.Uint16(blockSize - 2)

	switch size {
	case types.GinOpaqueSize: // same as SpGistOpaqueSize
		if magic, err := blk.Uint32(special); err == nil && magic == types.SequenceMagic {
			return types.FamilySequence
		}
		if pageID == types.SpGistPageID {
			return types.FamilySpGist
		}
		return types.FamilyGin
	case types.BTOpaqueSize: // same as HashOpaqueSize and GistOpaqueSize
		switch {
		case pageID <= types.MaxBTCycleID:
			return types.FamilyBTree
		case pageID == types.HashPageID:
			return types.FamilyHash
		case pageID == types.GistPageID:
			return types.FamilyGist
		}
	}
	return types.FamilyUnknown
}
