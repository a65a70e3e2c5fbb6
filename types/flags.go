package types

// FlagName pairs a bit mask with the name printed for it.
type FlagName struct {
	Mask uint16
	Name string
}

// pd_flags
const (
	PDHasFreeLines = 0x0001
	PDPageFull     = 0x0002
	PDAllVisible   = 0x0004
)

var PageFlagNames = []FlagName{
	{PDHasFreeLines, "PD_HAS_FREE_LINES"},
	{PDPageFull, "PD_PAGE_FULL"},
	{PDAllVisible, "PD_ALL_VISIBLE"},
}

// t_infomask
const (
	HeapHasNull        = 0x0001
	HeapHasVarWidth    = 0x0002
	HeapHasExternal    = 0x0004
	HeapHasOid         = 0x0008
	HeapXmaxKeyShrLock = 0x0010
	HeapComboCid       = 0x0020
	HeapXmaxExclLock   = 0x0040
	HeapXmaxLockOnly   = 0x0080
	HeapXminCommitted  = 0x0100
	HeapXminInvalid    = 0x0200
	HeapXmaxCommitted  = 0x0400
	HeapXmaxInvalid    = 0x0800
	HeapXmaxIsMulti    = 0x1000
	HeapUpdated        = 0x2000
	HeapMovedOff       = 0x4000
	HeapMovedIn        = 0x8000

	HeapMoved = HeapMovedOff | HeapMovedIn
)

var InfomaskNames = []FlagName{
	{HeapHasNull, "HEAP_HASNULL"},
	{HeapHasVarWidth, "HEAP_HASVARWIDTH"},
	{HeapHasExternal, "HEAP_HASEXTERNAL"},
	{HeapHasOid, "HEAP_HASOID"},
	{HeapXmaxKeyShrLock, "HEAP_XMAX_KEYSHR_LOCK"},
	{HeapComboCid, "HEAP_COMBOCID"},
	{HeapXmaxExclLock, "HEAP_XMAX_EXCL_LOCK"},
	{HeapXmaxLockOnly, "HEAP_XMAX_LOCK_ONLY"},
	{HeapXminCommitted, "HEAP_XMIN_COMMITTED"},
	{HeapXminInvalid, "HEAP_XMIN_INVALID"},
	{HeapXmaxCommitted, "HEAP_XMAX_COMMITTED"},
	{HeapXmaxInvalid, "HEAP_XMAX_INVALID"},
	{HeapXmaxIsMulti, "HEAP_XMAX_IS_MULTI"},
	{HeapUpdated, "HEAP_UPDATED"},
	{HeapMovedOff, "HEAP_MOVED_OFF"},
	{HeapMovedIn, "HEAP_MOVED_IN"},
}

// t_infomask2
const (
	HeapKeysUpdated = 0x2000
	HeapHotUpdated  = 0x4000
	HeapOnlyTuple   = 0x8000
)

var Infomask2Names = []FlagName{
	{HeapKeysUpdated, "HEAP_KEYS_UPDATED"},
	{HeapHotUpdated, "HEAP_HOT_UPDATED"},
	{HeapOnlyTuple, "HEAP_ONLY_TUPLE"},
}

// btpo_flags
const (
	BTPLeaf            = 1 << 0
	BTPRoot            = 1 << 1
	BTPDeleted         = 1 << 2
	BTPMeta            = 1 << 3
	BTPHalfDead        = 1 << 4
	BTPSplitEnd        = 1 << 5
	BTPHasGarbage      = 1 << 6
	BTPIncompleteSplit = 1 << 7
)

var BTreeFlagNames = []FlagName{
	{BTPLeaf, "BTP_LEAF"},
	{BTPRoot, "BTP_ROOT"},
	{BTPDeleted, "BTP_DELETED"},
	{BTPMeta, "BTP_META"},
	{BTPHalfDead, "BTP_HALF_DEAD"},
	{BTPSplitEnd, "BTP_SPLIT_END"},
	{BTPHasGarbage, "BTP_HAS_GARBAGE"},
	{BTPIncompleteSplit, "BTP_INCOMPLETE_SPLIT"},
}
