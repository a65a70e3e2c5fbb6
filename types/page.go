package types

// Layout of the on-disk page family (PostgreSQL 11, layout version 4).
// All multi-byte fields are little-endian and MAXALIGN is 8.
const (
	MaxAlign           = 8
	PageLayoutVersion  = 4
	DefaultBlockSize   = 8192
	DefaultSegmentSize = 131072 * DefaultBlockSize // 1GB segments

	PageHeaderSize = 24 // offsetof(PageHeaderData, pd_linp)
	ItemIDSize     = 4  // one line pointer
)

// page header field offsets
const (
	OffLSN             = 0
	OffChecksum        = 8
	OffFlags           = 10
	OffLower           = 12
	OffUpper           = 14
	OffSpecial         = 16
	OffPageSizeVersion = 18
	OffPruneXid        = 20
)

// line pointer flags (lp_flags)
const (
	LPUnused   = 0
	LPNormal   = 1
	LPRedirect = 2
	LPDead     = 3
)

// heap tuple header field offsets
const (
	HeapOffXmin       = 0
	HeapOffXmax       = 4
	HeapOffCid        = 8
	HeapOffCtidBiHi   = 12
	HeapOffCtidBiLo   = 14
	HeapOffCtidOffset = 16
	HeapOffInfomask2  = 18
	HeapOffInfomask   = 20
	HeapOffHoff       = 22
	HeapOffBits       = 23

	HeapNattsMask = 0x07FF
	OidSize       = 4
)

// index tuple field offsets
const (
	IndexOffTidBiHi   = 0
	IndexOffTidBiLo   = 2
	IndexOffTidOffset = 4
	IndexOffInfo      = 6
	IndexHeaderSize   = 8

	IndexSizeMask = 0x1FFF
)

// B-tree special section (BTPageOpaqueData) offsets
const (
	BTOffPrev    = 0
	BTOffNext    = 4
	BTOffLevel   = 8
	BTOffFlags   = 12
	BTOffCycleID = 14
	BTOpaqueSize = 16

	MaxBTCycleID = 0xFF7F
)

// B-tree meta page (BTMetaPageData) offsets, relative to MAXALIGN(PageHeaderSize)
const (
	BTMetaOffMagic     = 0
	BTMetaOffVersion   = 4
	BTMetaOffRoot      = 8
	BTMetaOffLevel     = 12
	BTMetaOffFastRoot  = 16
	BTMetaOffFastLevel = 20
	BTMetaFieldsSize   = 24

	BTreeMagic = 0x053162
)

// special section sizes and page identifiers for the recognized families
const (
	SequenceMagic = 0x1717

	SpGistOpaqueSize = 8
	GinOpaqueSize    = 8
	HashOpaqueSize   = 16
	GistOpaqueSize   = 16

	HashPageID   = 0xFF80
	GistPageID   = 0xFF81
	SpGistPageID = 0xFF82
)

// MaxAlignOf rounds n up to the platform alignment.
func MaxAlignOf(n int) int {
	return (n + MaxAlign - 1) &^ (MaxAlign - 1)
}

// PageFamily is the closed classification of a page's special section.
// It is produced once per block by the classifier; later stages switch on
// it and never re-inspect the raw trailer bytes.
type PageFamily uint8

const (
	FamilyNone PageFamily = iota
	FamilySequence
	FamilyBTree
	FamilyHash
	FamilyGist
	FamilyGin
	FamilySpGist
	FamilyUnknown
	FamilyBoundary
)

var familyNames = [...]string{
	FamilyNone:     "none",
	FamilySequence: "sequence",
	FamilyBTree:    "btree",
	FamilyHash:     "hash",
	FamilyGist:     "gist",
	FamilyGin:      "gin",
	FamilySpGist:   "spgist",
	FamilyUnknown:  "unknown",
	FamilyBoundary: "boundary",
}

func (f PageFamily) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "invalid"
}

// IsError reports whether the family is one of the two classification
// failure values.
func (f PageFamily) IsError() bool {
	return f == FamilyUnknown || f == FamilyBoundary
}

// IsUnsupportedIndex reports whether the family is an index family that is
// recognized but never field-decoded.
func (f PageFamily) IsUnsupportedIndex() bool {
	switch f {
	case FamilyHash, FamilyGist, FamilyGin, FamilySpGist:
		return true
	}
	return false
}
