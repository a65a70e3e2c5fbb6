package decoder

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"PageLens/annotation"
	"PageLens/checksum"
	"PageLens/storage_engine/page"
	"PageLens/types"
)

type headerField struct {
	name  string
	color annotation.Color
	start int
	end   int // exclusive
}

// DecodeHeader emits the page header, then either the B-tree meta fields
// or one tag per readable line pointer. It returns false when nothing
// more of the block may be decoded: the header itself was cut short, or
// the slot array runs past the bytes read.
func (d *Decoder) DecodeHeader(p *Page) (bool, error) {
	blk := p.Block
	hdr, err := page.ReadHeader(blk)
	if err != nil {
		d.report(p, KindTruncatedHeader, fmt.Sprintf(
			"end of block encountered within the header: %d of %d bytes read", blk.BytesRead, types.PageHeaderSize))
		return false, nil
	}
	p.Header = hdr

	fields := []headerField{
		{"LSN", annotation.ColorYellowLight, types.OffLSN, types.OffChecksum},
		{"checksum", annotation.ColorGreenBright, types.OffChecksum, types.OffFlags},
		{dashFlags("pd_flags", hdr.Flags, types.PageFlagNames), annotation.ColorYellowDark, types.OffFlags, types.OffLower},
		{"pd_lower", annotation.ColorMaroon, types.OffLower, types.OffUpper},
		{"pd_upper", annotation.ColorMaroon, types.OffUpper, types.OffSpecial},
		{"pd_special", annotation.ColorGreenBright, types.OffSpecial, types.OffPageSizeVersion},
		{"pd_pagesize_version", annotation.ColorBrown, types.OffPageSizeVersion, types.OffPruneXid},
		{"pd_prune_xid", annotation.ColorRedLight, types.OffPruneXid, types.PageHeaderSize},
	}
	if err := d.emitFields(p, 0, fields); err != nil {
		return false, err
	}

	if problems := headerProblems(hdr, blk.Size()); len(problems) > 0 {
		d.report(p, KindInvalidHeader, "invalid header information: "+strings.Join(problems, ", "))
	}
	if d.opts.VerifyChecksums {
		d.verifyChecksum(p)
	}

	if IsBTreeMetaPage(p) {
		return true, d.emitMetaFields(p)
	}

	maxOffset := hdr.MaxOffset()
	readable := maxOffset
	if page.ItemIDOffset(maxOffset+1) > blk.BytesRead {
		readable = (blk.BytesRead - types.PageHeaderSize) / types.ItemIDSize
	}
	for n := 1; n <= readable; n++ {
		id, err := page.ReadItemID(blk, n)
		if err != nil {
			return false, err
		}
		off := page.ItemIDOffset(n)
		text := fmt.Sprintf("lp_len: %d, lp_off: %d, lp_flags: %s ", id.Length, id.Offset, lpFlagsName(id.Flags))
		if err := d.emitter.EmitTuple(blk.Number, n, text, annotation.ColorBlueLight,
			p.at(off), p.at(off+types.ItemIDSize-1)); err != nil {
			return false, err
		}
	}
	if readable < maxOffset {
		d.report(p, KindTruncatedSlots, fmt.Sprintf(
			"end of block encountered within the item array: %d line pointers declared, %d readable", maxOffset, readable))
		return false, nil
	}
	return true, nil
}

// emitFields emits block-level tags for fields laid out from base.
func (d *Decoder) emitFields(p *Page, base int, fields []headerField) error {
	for _, f := range fields {
		if err := d.emitter.EmitBlock(p.Block.Number, p.Level, f.name, f.color,
			p.at(base+f.start), p.at(base+f.end-1)); err != nil {
			return err
		}
	}
	return nil
}

func headerProblems(hdr *page.Header, blockSize int) []string {
	var problems []string
	maxOffset := hdr.MaxOffset()
	lower, upper, special := int(hdr.Lower), int(hdr.Upper), int(hdr.Special)

	if maxOffset > blockSize {
		problems = append(problems, fmt.Sprintf("%d line pointers exceed block size", maxOffset))
	}
	if hdr.Version() != types.PageLayoutVersion {
		problems = append(problems, fmt.Sprintf("layout version %d", hdr.Version()))
	}
	if upper > blockSize {
		problems = append(problems, fmt.Sprintf("pd_upper %d past block end", upper))
	}
	if upper > special {
		problems = append(problems, fmt.Sprintf("pd_upper %d past pd_special %d", upper, special))
	}
	if lower < types.PageHeaderSize {
		problems = append(problems, fmt.Sprintf("pd_lower %d inside header", lower))
	}
	if lower > blockSize {
		problems = append(problems, fmt.Sprintf("pd_lower %d past block end", lower))
	}
	if upper < lower {
		problems = append(problems, fmt.Sprintf("pd_upper %d below pd_lower %d", upper, lower))
	}
	if special > blockSize {
		problems = append(problems, fmt.Sprintf("pd_special %d past block end", special))
	}
	return problems
}

// verifyChecksum compares pd_checksum with the checksum computed for the
// block's logical number. A partially read block is not checked; the bytes
// past the read are not the page's.
func (d *Decoder) verifyChecksum(p *Page) {
	blk := p.Block
	if !blk.Full() {
		d.log.Debug("checksum skipped for partial block", zap.Uint32("block", blk.Number))
		return
	}
	logical := checksum.LogicalBlock(d.opts.SegmentSize, blk.Size(), d.opts.SegmentNumber, blk.Number)
	computed, stored, ok, err := checksum.Verify(blk.Data, logical)
	if err != nil {
		d.report(p, KindChecksumMismatch, err.Error())
		return
	}
	if !ok {
		d.report(p, KindChecksumMismatch, fmt.Sprintf(
			"checksum failure: calculated 0x%04x, stored 0x%04x", computed, stored))
	}
}

// IsBTreeMetaPage reports whether the block is a B-tree meta page. All
// three conditions are required: a 16-byte special section in a fully read
// block, a cycle id in the B-tree range, and BTP_META set.
func IsBTreeMetaPage(p *Page) bool {
	blk := p.Block
	if !blk.Full() || p.Header == nil {
		return false
	}
	special := int(p.Header.Special)
	if special > blk.Size() || blk.Size()-special != types.BTOpaqueSize {
		return false
	}
	opaque, err := ReadBTreeOpaque(blk, special)
	if err != nil {
		return false
	}
	return opaque.CycleID <= types.MaxBTCycleID && opaque.Flags&types.BTPMeta != 0
}

func (d *Decoder) emitMetaFields(p *Page) error {
	base := types.MaxAlignOf(types.PageHeaderSize)
	fields := []headerField{
		{"btm_magic", annotation.ColorPink, types.BTMetaOffMagic, types.BTMetaOffVersion},
		{"btm_version", annotation.ColorPink, types.BTMetaOffVersion, types.BTMetaOffRoot},
		{"btm_root", annotation.ColorPink, types.BTMetaOffRoot, types.BTMetaOffLevel},
		{"btm_level", annotation.ColorPink, types.BTMetaOffLevel, types.BTMetaOffFastRoot},
		{"btm_fastroot", annotation.ColorPink, types.BTMetaOffFastRoot, types.BTMetaOffFastLevel},
		{"btm_fastlevel", annotation.ColorPink, types.BTMetaOffFastLevel, types.BTMetaFieldsSize},
	}
	return d.emitFields(p, base, fields)
}
