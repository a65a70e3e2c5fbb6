package decoder

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PageLens/annotation"
	pagebuilder "PageLens/page_builder"
	"PageLens/storage_engine/page"
	"PageLens/types"
)

const blockSize = 8192

type harness struct {
	rec   *annotation.Recorder
	diags *Diagnostics
	dec   *Decoder
}

func newHarness(opts Options) *harness {
	rec := &annotation.Recorder{}
	diags := NewDiagnostics(nil)
	return &harness{
		rec:   rec,
		diags: diags,
		dec:   New(annotation.NewEmitter(rec), diags, nil, opts),
	}
}

func blockOf(data []byte, number uint32, bytesRead int) *page.Block {
	return &page.Block{Number: number, Data: data, BytesRead: bytesRead}
}

func assertNonDecreasing(t *testing.T, tags []annotation.Tag) {
	t.Helper()
	for i := 1; i < len(tags); i++ {
		assert.LessOrEqual(t, tags[i-1].Start, tags[i].Start,
			"tag %d %q starts before tag %d %q", i, tags[i].Text, i-1, tags[i-1].Text)
	}
}

func headerTexts(prefix string) []string {
	return []string{
		prefix + "LSN",
		prefix + "checksum",
		prefix + "pd_flags -",
		prefix + "pd_lower",
		prefix + "pd_upper",
		prefix + "pd_special",
		prefix + "pd_pagesize_version",
		prefix + "pd_prune_xid",
	}
}

func TestClassify(t *testing.T) {
	sequence := pagebuilder.New(blockSize).WithSpecial(8)
	sequence.PutUint32(blockSize-8, types.SequenceMagic)

	tests := []struct {
		name      string
		data      []byte
		bytesRead int
		want      types.PageFamily
	}{
		{"header_only", pagebuilder.New(blockSize).Bytes(), types.PageHeaderSize, types.FamilyUnknown},
		{"zeroed_page", make([]byte, blockSize), blockSize, types.FamilyBoundary},
		{"special_past_block", pagebuilder.New(blockSize).SetBounds(24, 8192, 9000).Bytes(), blockSize, types.FamilyBoundary},
		{"special_past_read", pagebuilder.NewTrailerPage(blockSize, 16, 0).Bytes(), 4096, types.FamilyBoundary},
		{"heap", pagebuilder.New(blockSize).Bytes(), blockSize, types.FamilyNone},
		{"heap_partial", pagebuilder.New(blockSize).Bytes(), 4096, types.FamilyBoundary},
		{"sequence", sequence.Bytes(), blockSize, types.FamilySequence},
		{"spgist", pagebuilder.NewTrailerPage(blockSize, 8, types.SpGistPageID).Bytes(), blockSize, types.FamilySpGist},
		{"gin", pagebuilder.NewTrailerPage(blockSize, 8, 0x0001).Bytes(), blockSize, types.FamilyGin},
		{"btree", pagebuilder.NewTrailerPage(blockSize, 16, 0).Bytes(), blockSize, types.FamilyBTree},
		{"btree_max_cycleid", pagebuilder.NewTrailerPage(blockSize, 16, types.MaxBTCycleID).Bytes(), blockSize, types.FamilyBTree},
		{"hash", pagebuilder.NewTrailerPage(blockSize, 16, types.HashPageID).Bytes(), blockSize, types.FamilyHash},
		{"gist", pagebuilder.NewTrailerPage(blockSize, 16, types.GistPageID).Bytes(), blockSize, types.FamilyGist},
		{"size_16_foreign_id", pagebuilder.NewTrailerPage(blockSize, 16, 0xFF90).Bytes(), blockSize, types.FamilyUnknown},
		{"size_12", pagebuilder.NewTrailerPage(blockSize, 12, 0).Bytes(), blockSize, types.FamilyUnknown},
		{"size_2", pagebuilder.NewTrailerPage(blockSize, 2, 0).Bytes(), blockSize, types.FamilyUnknown},
		{"btree_partial_read", pagebuilder.NewTrailerPage(blockSize, 16, 0).Bytes(), blockSize - 4, types.FamilyUnknown},
		{"gin_partial_read", pagebuilder.NewTrailerPage(blockSize, 8, 0).Bytes(), blockSize - 4, types.FamilyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(blockOf(tt.data, 0, tt.bytesRead)))
		})
	}
}

// heapPage builds a page with two tuples; the second one has a null bitmap.
func heapPage() []byte {
	b := pagebuilder.New(blockSize)
	b.AddItem(pagebuilder.HeapTuple{
		Xmin:     100,
		Natts:    3,
		Infomask: types.HeapXminCommitted | types.HeapXmaxInvalid,
		Data:     make([]byte, 10),
	}.Encode(), types.LPNormal)
	b.AddItem(pagebuilder.HeapTuple{
		Xmin:       101,
		Natts:      3,
		Infomask:   types.HeapHasNull,
		NullBitmap: []byte{0x05},
		Data:       make([]byte, 4),
	}.Encode(), types.LPNormal)
	return b.Bytes()
}

func TestHeapPage(t *testing.T) {
	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(heapPage(), 3, blockSize), false))

	tags := h.rec.Tags
	require.Len(t, tags, 32, spew.Sdump(h.rec.Texts()))
	for i, tag := range tags {
		assert.Equal(t, uint32(i), tag.ID)
	}
	assertNonDecreasing(t, tags)
	assert.Zero(t, h.diags.Count(), spew.Sdump(h.diags.All()))

	texts := h.rec.Texts()
	assert.Equal(t, headerTexts("block 3 "), texts[:8])
	assert.Equal(t, "(3,1) lp_len: 34, lp_off: 8152, lp_flags: LP_NORMAL ", texts[8])
	assert.Equal(t, "(3,2) lp_len: 28, lp_off: 8120, lp_flags: LP_NORMAL ", texts[9])

	base := uint64(3 * blockSize)
	assert.Equal(t, base, tags[0].Start)
	assert.Equal(t, base+7, tags[0].End)
	assert.Equal(t, base+20, tags[7].Start)
	assert.Equal(t, base+23, tags[7].End)
	assert.Equal(t, base+24, tags[8].Start)
	assert.Equal(t, annotation.ColorBlueLight, tags[8].NoteColour)

	// the item at the lower offset (slot 2) is annotated first
	assert.Equal(t, []string{
		"(3,2) xmin",
		"(3,2) xmax",
		"(3,2) t_cid",
		"(3,2) t_ctid->bi_hi",
		"(3,2) t_ctid->bi_lo",
		"(3,2) t_ctid->offsetNumber",
		"(3,2) t_infomask2 ( )",
		"(3,2) t_infomask ( HEAP_HASNULL )",
		"(3,2) t_hoff",
		"(3,2) t_bits",
		"(3,2) contents",
	}, texts[10:21])
	assert.Equal(t, "(3,1) t_infomask ( HEAP_XMIN_COMMITTED|HEAP_XMAX_INVALID )", texts[28])

	bits := tags[19]
	assert.Equal(t, base+8120+23, bits.Start)
	assert.Equal(t, base+8120+23, bits.End)
	contents := tags[31]
	assert.Equal(t, "(3,1) contents", contents.Text)
	assert.Equal(t, base+8152+24, contents.Start)
	assert.Equal(t, base+8152+33, contents.End)
	assert.Equal(t, annotation.ColorWhite, contents.NoteColour)
	assert.Equal(t, annotation.ColorRedDark, tags[12].NoteColour)
}

func TestHeapTupleXvacAndOid(t *testing.T) {
	b := pagebuilder.New(blockSize)
	b.AddItem(pagebuilder.HeapTuple{
		Natts:    2,
		Infomask: types.HeapMovedOff | types.HeapHasOid,
		Oid:      16384,
		Data:     make([]byte, 8),
	}.Encode(), types.LPNormal)

	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(b.Bytes(), 0, blockSize), false))
	assert.Zero(t, h.diags.Count(), spew.Sdump(h.diags.All()))

	tags := h.rec.Tags
	require.Len(t, tags, 8+1+11)
	xvac := tags[11]
	assert.Equal(t, "(0,1) t_xvac", xvac.Text)
	assert.Equal(t, annotation.ColorPink, xvac.NoteColour)

	itemOff := uint64(blockSize - 40)
	bits := tags[18]
	assert.Equal(t, "(0,1) t_bits", bits.Text)
	assert.Equal(t, itemOff+23, bits.Start)
	assert.Equal(t, itemOff+31, bits.End)
}

func TestHeapTupleHeaderLengthMismatch(t *testing.T) {
	b := pagebuilder.New(blockSize)
	b.AddItem(pagebuilder.HeapTuple{Natts: 1, Hoff: 32, Data: make([]byte, 8)}.Encode(), types.LPNormal)

	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(b.Bytes(), 0, blockSize), false))

	require.Equal(t, 1, h.diags.Count())
	assert.Equal(t, KindHeaderLengthMismatch, h.diags.All()[0].Kind)
	// the stored t_hoff still drives the annotation
	assert.Len(t, h.rec.Tags, 8+1+11)
}

func TestHeapTupleShortHoffKeepsContents(t *testing.T) {
	b := pagebuilder.New(blockSize)
	b.AddItem(pagebuilder.HeapTuple{Natts: 1, Data: make([]byte, 8)}.Encode(), types.LPNormal)
	itemOff := b.Upper()
	// t_hoff 16 points inside the fixed header
	b.PutUint16(itemOff+types.HeapOffHoff, 16)

	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(b.Bytes(), 0, blockSize), false))
	assert.True(t, h.diags.Has(KindHeaderLengthMismatch))

	tags := h.rec.Tags
	require.Len(t, tags, 8+1+10, spew.Sdump(h.rec.Texts()))
	contents := tags[len(tags)-1]
	assert.Equal(t, "(0,1) contents", contents.Text)
	assert.Equal(t, uint64(itemOff+types.HeapOffBits), contents.Start)
	assert.Equal(t, uint64(itemOff+32-1), contents.End)
	assertNonDecreasing(t, tags)
}

func TestZeroLengthHeapItemsSkipped(t *testing.T) {
	b := pagebuilder.New(blockSize)
	b.AddItem(pagebuilder.HeapTuple{Natts: 1, Data: make([]byte, 8)}.Encode(), types.LPNormal)
	b.AddItemID(1, types.LPRedirect, 0)
	b.AddItemID(0, types.LPUnused, 0)

	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(b.Bytes(), 0, blockSize), false))

	texts := h.rec.Texts()
	require.Len(t, texts, 8+3+11)
	assert.Equal(t, "(0,2) lp_len: 0, lp_off: 1, lp_flags: LP_REDIRECT ", texts[9])
	assert.Equal(t, "(0,3) lp_len: 0, lp_off: 0, lp_flags: LP_UNUSED ", texts[10])
	assert.Equal(t, "(0,1) xmin", texts[11])
}

func btreeLeaf(flags uint16) []byte {
	b := pagebuilder.NewBTreePage(blockSize, pagebuilder.BTreeOpaque{Prev: 1, Next: 3, Flags: flags})
	b.AddItem(pagebuilder.IndexTuple{Block: 7, Offset: 2, Key: []byte{1, 2, 3, 4, 5, 6, 7, 8}}.Encode(), types.LPNormal)
	b.AddItem(pagebuilder.IndexTuple{Block: 9, Offset: 1}.Encode(), types.LPNormal)
	return b.Bytes()
}

func TestBTreeLeafPage(t *testing.T) {
	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(btreeLeaf(types.BTPLeaf), 2, blockSize), false))
	assert.Zero(t, h.diags.Count(), spew.Sdump(h.diags.All()))

	tags := h.rec.Tags
	texts := h.rec.Texts()
	require.Len(t, tags, 8+2+4+5+5, spew.Sdump(texts))
	assertNonDecreasing(t, tags)

	assert.Equal(t, headerTexts("block 2 (level 0) "), texts[:8])
	assert.Equal(t, []string{
		"(2,2) t_tid->bi_hi",
		"(2,2) t_tid->bi_lo",
		"(2,2) t_tid->offsetNumber",
		"(2,2) t_info",
		"(2,1) t_tid->bi_hi",
		"(2,1) t_tid->bi_lo",
		"(2,1) t_tid->offsetNumber",
		"(2,1) t_info",
		"(2,1) contents",
	}, texts[10:19])
	assert.Equal(t, []string{
		"block 2 (level 0) btpo_prev",
		"block 2 (level 0) btpo_next",
		"block 2 (level 0) btpo.level",
		"block 2 (level 0) btpo_flags - BTP_LEAF",
		"block 2 (level 0) btpo_cycleid",
	}, texts[19:])

	base := uint64(2 * blockSize)
	contents := tags[18]
	assert.Equal(t, base+8160+8, contents.Start)
	assert.Equal(t, base+8160+15, contents.End)
	for _, tag := range tags[19:] {
		assert.Equal(t, annotation.ColorBlack, tag.NoteColour)
	}
	assert.Equal(t, base+8176, tags[19].Start)
	assert.Equal(t, base+8191, tags[23].End)
}

func TestBTreeLeafSkip(t *testing.T) {
	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(btreeLeaf(types.BTPLeaf), 2, blockSize), true))

	require.Len(t, h.rec.Tags, 1)
	tag := h.rec.Tags[0]
	assert.Equal(t, "block 2 (level 0) leaf page", tag.Text)
	assert.Equal(t, uint64(2*blockSize), tag.Start)
	assert.Equal(t, uint64(3*blockSize-1), tag.End)
	assert.Equal(t, annotation.ColorGreenDark, tag.NoteColour)
}

func TestBTreeRootLeafNeverSkipped(t *testing.T) {
	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(btreeLeaf(types.BTPLeaf|types.BTPRoot), 1, blockSize), true))
	assert.Len(t, h.rec.Tags, 24)
	assert.Equal(t, "block 1 (level 0) btpo_flags - BTP_LEAF|BTP_ROOT", h.rec.Tags[22].Text)
}

func TestBTreeMetaPage(t *testing.T) {
	meta := pagebuilder.NewBTreeMetaPage(blockSize, pagebuilder.BTreeMeta{
		Magic: types.BTreeMagic, Version: 3, Root: 3, Level: 1, FastRoot: 3, FastLevel: 1,
	})

	blk := blockOf(meta, 0, blockSize)
	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blk, false))
	assert.Zero(t, h.diags.Count(), spew.Sdump(h.diags.All()))

	texts := h.rec.Texts()
	require.Len(t, texts, 8+6+5, spew.Sdump(texts))
	assert.Equal(t, []string{
		"block 0 (level 0) btm_magic",
		"block 0 (level 0) btm_version",
		"block 0 (level 0) btm_root",
		"block 0 (level 0) btm_level",
		"block 0 (level 0) btm_fastroot",
		"block 0 (level 0) btm_fastlevel",
	}, texts[8:14])
	assert.Equal(t, "block 0 (level 0) btpo_flags - BTP_META", texts[17])

	magic := h.rec.Tags[8]
	assert.Equal(t, uint64(24), magic.Start)
	assert.Equal(t, uint64(27), magic.End)
	assert.Equal(t, uint64(44), h.rec.Tags[13].Start)
	assert.Equal(t, uint64(47), h.rec.Tags[13].End)
	assert.Equal(t, annotation.ColorPink, magic.NoteColour)
	assertNonDecreasing(t, h.rec.Tags)
}

func TestIsBTreeMetaPageNeedsAllConditions(t *testing.T) {
	meta := pagebuilder.NewBTreeMetaPage(blockSize, pagebuilder.BTreeMeta{Magic: types.BTreeMagic})

	header := func(blk *page.Block) *Page {
		hdr, err := page.ReadHeader(blk)
		require.NoError(t, err)
		return &Page{Block: blk, Header: hdr}
	}

	assert.True(t, IsBTreeMetaPage(header(blockOf(meta, 0, blockSize))))
	assert.False(t, IsBTreeMetaPage(header(blockOf(meta, 0, blockSize-1))), "partial read")

	notMeta := pagebuilder.NewBTreePage(blockSize, pagebuilder.BTreeOpaque{Flags: types.BTPLeaf}).Bytes()
	assert.False(t, IsBTreeMetaPage(header(blockOf(notMeta, 0, blockSize))), "BTP_META unset")

	hashLike := pagebuilder.NewBTreePage(blockSize, pagebuilder.BTreeOpaque{Flags: types.BTPMeta, CycleID: types.HashPageID}).Bytes()
	assert.False(t, IsBTreeMetaPage(header(blockOf(hashLike, 0, blockSize))), "cycle id out of range")

	gin := pagebuilder.New(blockSize).WithSpecial(8)
	gin.PutUint16(blockSize-4, types.BTPMeta)
	assert.False(t, IsBTreeMetaPage(header(blockOf(gin.Bytes(), 0, blockSize))), "special size 8")
}

func TestTruncatedHeader(t *testing.T) {
	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(heapPage(), 1, 20), false))

	assert.Empty(t, h.rec.Tags)
	require.Equal(t, 1, h.diags.Count())
	assert.Equal(t, KindTruncatedHeader, h.diags.All()[0].Kind)
	assert.Equal(t, uint32(1), h.diags.All()[0].Block)
}

func TestTruncatedSlotArray(t *testing.T) {
	b := pagebuilder.New(blockSize)
	for i := 0; i < 10; i++ {
		b.AddItem(pagebuilder.HeapTuple{Natts: 1, Data: []byte{byte(i)}}.Encode(), types.LPNormal)
	}

	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(b.Bytes(), 0, 40), false))

	texts := h.rec.Texts()
	require.Len(t, texts, 8+4, spew.Sdump(texts))
	assert.Equal(t, "(0,4) lp_len: 25, lp_off: 8064, lp_flags: LP_NORMAL ", texts[11])
	assert.True(t, h.diags.Has(KindTruncatedSlots))
	assert.False(t, h.diags.Has(KindInvalidSpecial), "special section is not decoded after truncation")
}

func TestHeapItemBeyondBlockIsFatal(t *testing.T) {
	b := pagebuilder.New(blockSize)
	b.AddItemID(8100, types.LPNormal, 200)

	h := newHarness(Options{})
	err := h.dec.Decode(blockOf(b.Bytes(), 4, blockSize), false)
	assert.ErrorIs(t, err, ErrItemBeyondBlock)
	// header and slot tags were already emitted
	assert.Len(t, h.rec.Tags, 9)
}

func TestPartialHeapBlockStopsAfterSlots(t *testing.T) {
	h := newHarness(Options{})
	// pd_special lies past the bytes read, so the block is a boundary page
	require.NoError(t, h.dec.Decode(blockOf(heapPage(), 0, 8140), false))

	assert.Len(t, h.rec.Tags, 8+2, spew.Sdump(h.rec.Texts()))
	assert.True(t, h.diags.Has(KindInvalidSpecial))
}

func TestUnclassifiedPagesStopAfterSlots(t *testing.T) {
	tuple := pagebuilder.HeapTuple{Natts: 2, Data: make([]byte, 16)}.Encode()

	noSpecial := pagebuilder.New(blockSize)
	noSpecial.AddItem(tuple, types.LPNormal)
	noSpecial.SetBounds(noSpecial.Lower(), noSpecial.Upper(), 0)

	oddTrailer := pagebuilder.NewTrailerPage(blockSize, 24, 0)
	oddTrailer.AddItem(tuple, types.LPNormal)

	tests := []struct {
		name   string
		data   []byte
		family types.PageFamily
	}{
		{"pd_special_zero", noSpecial.Bytes(), types.FamilyBoundary},
		{"trailer_size_24", oddTrailer.Bytes(), types.FamilyUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blk := blockOf(tt.data, 0, blockSize)
			require.Equal(t, tt.family, Classify(blk))

			h := newHarness(Options{})
			require.NoError(t, h.dec.Decode(blk, false))

			texts := h.rec.Texts()
			require.Len(t, texts, 8+1, spew.Sdump(texts))
			assert.Contains(t, texts[8], "(0,1) lp_len")
			assert.True(t, h.diags.Has(KindInvalidSpecial))
		})
	}
}

func TestEmptyPages(t *testing.T) {
	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(pagebuilder.New(blockSize).Bytes(), 0, blockSize), false))
	assert.Len(t, h.rec.Tags, 8)
	assert.Zero(t, h.diags.Count())

	claimsItems := pagebuilder.New(blockSize).SetBounds(24, 4096, blockSize).Bytes()
	err := newHarness(Options{}).dec.Decode(blockOf(claimsItems, 0, blockSize), false)
	assert.ErrorIs(t, err, ErrEmptyBlock)
}

func TestZeroedPage(t *testing.T) {
	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(make([]byte, blockSize), 5, blockSize), false))

	assert.Len(t, h.rec.Tags, 8)
	assert.True(t, h.diags.Has(KindInvalidHeader))
	assert.True(t, h.diags.Has(KindInvalidSpecial))
}

func TestUnsupportedFamilies(t *testing.T) {
	hash := pagebuilder.NewTrailerPage(blockSize, 16, types.HashPageID)
	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(hash.Bytes(), 0, blockSize), false))
	assert.True(t, h.diags.Has(KindUnsupportedSpecial))

	hash.AddItem(pagebuilder.IndexTuple{Block: 1, Offset: 1}.Encode(), types.LPNormal)
	err := newHarness(Options{}).dec.Decode(blockOf(hash.Bytes(), 0, blockSize), false)
	assert.ErrorIs(t, err, ErrUnsupportedFamily)
}

func TestIndexTupleOverrun(t *testing.T) {
	b := pagebuilder.NewBTreePage(blockSize, pagebuilder.BTreeOpaque{Flags: types.BTPLeaf | types.BTPRoot})
	b.AddItem(pagebuilder.IndexTuple{Block: 1, Offset: 1, Key: make([]byte, 8)}.Encode(), types.LPNormal)
	b.PutUint16(8160+types.IndexOffInfo, 64)

	h := newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(b.Bytes(), 0, blockSize), false))
	assert.True(t, h.diags.Has(KindIndexTupleOverrun))

	contents := h.rec.Tags[8+1+4]
	assert.Equal(t, "(0,1) contents", contents.Text)
	assert.Equal(t, uint64(8168), contents.Start)
	assert.Equal(t, uint64(8191), contents.End)
}

func TestChecksumVerification(t *testing.T) {
	logical := uint32(131072*2 + 1)
	b := pagebuilder.New(blockSize)
	b.AddItem(pagebuilder.HeapTuple{Natts: 1, Data: make([]byte, 8)}.Encode(), types.LPNormal)
	data := b.Checksummed(logical)

	opts := Options{VerifyChecksums: true, SegmentNumber: 2}
	h := newHarness(opts)
	require.NoError(t, h.dec.Decode(blockOf(data, 1, blockSize), false))
	assert.False(t, h.diags.Has(KindChecksumMismatch), spew.Sdump(h.diags.All()))

	data[blockSize-1] ^= 0xFF
	h = newHarness(opts)
	require.NoError(t, h.dec.Decode(blockOf(data, 1, blockSize), false))
	assert.True(t, h.diags.Has(KindChecksumMismatch))

	h = newHarness(Options{})
	require.NoError(t, h.dec.Decode(blockOf(data, 1, blockSize), false))
	assert.False(t, h.diags.Has(KindChecksumMismatch), "verification is opt-in")
}

func TestFlagRendering(t *testing.T) {
	assert.Equal(t, "pd_flags -", dashFlags("pd_flags", 0, types.PageFlagNames))
	assert.Equal(t, "pd_flags - PD_HAS_FREE_LINES|PD_ALL_VISIBLE",
		dashFlags("pd_flags", types.PDHasFreeLines|types.PDAllVisible, types.PageFlagNames))
	assert.Equal(t, "t_infomask2 ( HEAP_HOT_UPDATED|HEAP_ONLY_TUPLE )",
		parenFlags("t_infomask2", types.HeapHotUpdated|types.HeapOnlyTuple|3, types.Infomask2Names))
	assert.Equal(t, "t_infomask ( )", parenFlags("t_infomask", 0, types.InfomaskNames))
	assert.Equal(t, "LP_DEAD", lpFlagsName(types.LPDead))
	assert.Equal(t, "0x07", lpFlagsName(7))
}
