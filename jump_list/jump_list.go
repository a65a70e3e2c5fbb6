// Package jumplist derives the jump list of a B-tree index: the file
// offset of the root page and of every page the root links to directly.
// A hex editor bookmarks these so the interesting upper levels of a large
// index can be reached without scrolling through the leaves.
package jumplist

import (
	"github.com/pkg/errors"

	decoder "PageLens/page_decoder"
	"PageLens/storage_engine/page"
	"PageLens/types"
)

var (
	ErrNotBTree = errors.New("not a B-tree index")
	ErrBadRoot  = errors.New("root pointer does not lead to a B-tree root page")
)

// BlockFetcher returns a block of an open file. The buffer pool implements it.
type BlockFetcher interface {
	FetchBlock(fileID uint32, blkno uint32) (*page.Block, error)
}

type Entry struct {
	Block  uint32 `json:"block"`
	Offset uint64 `json:"offset"`
	Slot   int    `json:"slot,omitempty"` // root slot holding the downlink; 0 for the root itself
}

type JumpList struct {
	BlockSize int     `json:"block_size"`
	Root      uint32  `json:"root"`
	Level     uint32  `json:"level"`
	Entries   []Entry `json:"entries"` // the root first, then downlinks in slot order
}

// Build reads the meta page in block 0, follows btm_root and collects the
// root's downlinks. An index without a root yet has no entries.
func Build(fetcher BlockFetcher, fileID uint32) (*JumpList, error) {
	meta, err := fetcher.FetchBlock(fileID, 0)
	if err != nil {
		return nil, errors.Wrap(err, "read meta page")
	}
	hdr, err := page.ReadHeader(meta)
	if err != nil {
		return nil, errors.Wrap(ErrNotBTree, "block 0 header unreadable")
	}
	if !decoder.IsBTreeMetaPage(&decoder.Page{Block: meta, Header: hdr}) {
		return nil, errors.Wrap(ErrNotBTree, "block 0 is not a meta page")
	}

	base := types.MaxAlignOf(types.PageHeaderSize)
	magic, _ := meta.Uint32(base + types.BTMetaOffMagic)
	if magic != types.BTreeMagic {
		return nil, errors.Wrapf(ErrNotBTree, "meta page magic 0x%06x", magic)
	}
	root, _ := meta.Uint32(base + types.BTMetaOffRoot)
	level, _ := meta.Uint32(base + types.BTMetaOffLevel)

	jl := &JumpList{BlockSize: meta.Size(), Root: root, Level: level, Entries: []Entry{}}
	if root == 0 {
		return jl, nil
	}

	blk, err := fetcher.FetchBlock(fileID, root)
	if err != nil {
		return nil, errors.Wrapf(err, "read root block %d", root)
	}
	if decoder.Classify(blk) != types.FamilyBTree {
		return nil, errors.Wrapf(ErrBadRoot, "block %d", root)
	}
	rootHdr, err := page.ReadHeader(blk)
	if err != nil {
		return nil, errors.Wrapf(ErrBadRoot, "block %d", root)
	}
	opaque, err := decoder.ReadBTreeOpaque(blk, int(rootHdr.Special))
	if err != nil || opaque.Flags&types.BTPRoot == 0 {
		return nil, errors.Wrapf(ErrBadRoot, "block %d", root)
	}

	jl.Entries = append(jl.Entries, jl.entry(root, 0))
	// a leaf root points at heap tuples, not at index pages
	if opaque.Flags&types.BTPLeaf != 0 {
		return jl, nil
	}

	// a root that is not rightmost carries a high key in slot 1
	first := 1
	if opaque.Next != 0 {
		first = 2
	}
	for n := first; n <= rootHdr.MaxOffset(); n++ {
		id, err := page.ReadItemID(blk, n)
		if err != nil {
			return nil, errors.Wrapf(err, "root block %d slot %d", root, n)
		}
		if id.Flags != types.LPNormal || id.Length == 0 {
			continue
		}
		hi, err := blk.Uint16(id.Offset + types.IndexOffTidBiHi)
		if err != nil {
			return nil, errors.Wrapf(err, "root block %d slot %d", root, n)
		}
		lo, _ := blk.Uint16(id.Offset + types.IndexOffTidBiLo)
		jl.Entries = append(jl.Entries, jl.entry(uint32(hi)<<16|uint32(lo), n))
	}
	return jl, nil
}

func (jl *JumpList) entry(blkno uint32, slot int) Entry {
	return Entry{Block: blkno, Offset: uint64(jl.BlockSize) * uint64(blkno), Slot: slot}
}

// Offsets returns just the file offsets, root first.
func (jl *JumpList) Offsets() []uint64 {
	out := make([]uint64, len(jl.Entries))
	for i, e := range jl.Entries {
		out[i] = e.Offset
	}
	return out
}
