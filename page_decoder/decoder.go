// Package decoder turns one raw block into annotation tags.
//
// A block goes through four stages, always in this order: classification
// of the special section, the page header and slot array, the items the
// slots point at, and the special section itself. Each stage appends tags
// through the shared emitter, so tag ids stay contiguous across stages and
// across blocks. Problems that do not prevent further decoding are sent to
// the Reporter; everything else comes back as an error and ends the run.
package decoder

import (
	"go.uber.org/zap"

	"PageLens/annotation"
	"PageLens/storage_engine/page"
	"PageLens/types"
)

type Options struct {
	VerifyChecksums bool
	SegmentSize     int // bytes per segment file
	SegmentNumber   int
}

type Decoder struct {
	emitter  *annotation.Emitter
	reporter Reporter
	log      *zap.Logger
	opts     Options
}

func New(emitter *annotation.Emitter, reporter Reporter, log *zap.Logger, opts Options) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.SegmentSize <= 0 {
		opts.SegmentSize = types.DefaultSegmentSize
	}
	return &Decoder{emitter: emitter, reporter: reporter, log: log, opts: opts}
}

// Page is everything derived from one block before its tags are emitted.
type Page struct {
	Block  *page.Block
	Header *page.Header // nil until DecodeHeader succeeds
	Family types.PageFamily
	BTree  *BTreeOpaque // set only for FamilyBTree
	Level  int          // B-tree level, or annotation.NoLevel
	Base   uint64       // file offset of the block's first byte
}

// Prepare classifies the block and fixes the values every later stage
// shares. The classification is never repeated.
func (d *Decoder) Prepare(blk *page.Block) *Page {
	p := &Page{
		Block:  blk,
		Family: Classify(blk),
		Level:  annotation.NoLevel,
		Base:   uint64(blk.Size()) * uint64(blk.Number),
	}
	if p.Family == types.FamilyBTree {
		special, _ := blk.Uint16(types.OffSpecial)
		if opaque, err := ReadBTreeOpaque(blk, int(special)); err == nil {
			p.BTree = opaque
			p.Level = int(opaque.Level)
		}
	}
	d.log.Debug("classified block",
		zap.Uint32("block", blk.Number),
		zap.Stringer("family", p.Family),
		zap.Int("bytes_read", blk.BytesRead),
	)
	return p
}

// Decode runs every stage over one block. With skipLeaf set, a non-root
// B-tree leaf is summarized by a single tag instead.
func (d *Decoder) Decode(blk *page.Block, skipLeaf bool) error {
	p := d.Prepare(blk)
	if skipLeaf && p.IsSkippableLeaf() {
		return d.EmitLeafSummary(p)
	}

	ok, err := d.DecodeHeader(p)
	if err != nil || !ok {
		return err
	}
	if err := d.DecodeTuples(p); err != nil {
		return err
	}
	return d.DecodeSpecial(p)
}

// IsSkippableLeaf reports whether the page is a non-root B-tree leaf.
func (p *Page) IsSkippableLeaf() bool {
	if p.BTree == nil {
		return false
	}
	return p.BTree.Flags&types.BTPLeaf != 0 && p.BTree.Flags&types.BTPRoot == 0
}

// EmitLeafSummary replaces the whole decode of a skippable leaf page with
// one tag spanning the block.
func (d *Decoder) EmitLeafSummary(p *Page) error {
	return d.emitter.EmitBlock(p.Block.Number, p.Level, "leaf page", annotation.ColorGreenDark,
		p.Base, p.Base+uint64(p.Block.Size())-1)
}

func (d *Decoder) report(p *Page, kind Kind, msg string) {
	d.reporter.Report(Diagnostic{Block: p.Block.Number, Kind: kind, Message: msg})
}

// at converts an in-block offset to a file offset.
func (p *Page) at(off int) uint64 {
	return p.Base + uint64(off)
}
