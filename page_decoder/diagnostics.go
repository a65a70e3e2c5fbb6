package decoder

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Fatal conditions. Any of these ends the run; the walker wraps them with
// the block number and stops emitting.
var (
	ErrItemBeyondBlock   = errors.New("item contents extend beyond block")
	ErrEmptyBlock        = errors.New("empty block - no items listed")
	ErrItemIndexCorrupt  = errors.New("item index corrupt on block")
	ErrUnsupportedFamily = errors.New("unsupported index family")
)

// Kind names a reported-and-continue problem.
type Kind string

const (
	KindTruncatedHeader      Kind = "truncated header"
	KindTruncatedSlots       Kind = "truncated slot array"
	KindInvalidHeader        Kind = "invalid header"
	KindChecksumMismatch     Kind = "checksum mismatch"
	KindHeaderLengthMismatch Kind = "header length mismatch"
	KindIndexTupleOverrun    Kind = "index tuple overrun"
	KindInvalidSpecial       Kind = "invalid special section"
	KindUnsupportedSpecial   Kind = "unsupported special section"
	KindPrematureEOF         Kind = "premature end of file"
)

// Diagnostic is one non-fatal problem found while decoding a block.
type Diagnostic struct {
	Block   uint32
	Kind    Kind
	Message string
}

// Reporter receives diagnostics as they are found.
type Reporter interface {
	Report(d Diagnostic)
}

// Diagnostics is the Reporter used for a run: it logs every diagnostic at
// WARN and keeps them for the exit status and the run summary.
type Diagnostics struct {
	list []Diagnostic
	log  *zap.Logger
}

func NewDiagnostics(log *zap.Logger) *Diagnostics {
	if log == nil {
		log = zap.NewNop()
	}
	return &Diagnostics{log: log}
}

func (d *Diagnostics) Report(diag Diagnostic) {
	d.list = append(d.list, diag)
	d.log.Warn("page diagnostic",
		zap.Uint32("block", diag.Block),
		zap.String("kind", string(diag.Kind)),
		zap.String("detail", diag.Message),
	)
}

func (d *Diagnostics) All() []Diagnostic {
	return d.list
}

func (d *Diagnostics) Count() int {
	return len(d.list)
}

// Has reports whether a diagnostic of the given kind was seen.
func (d *Diagnostics) Has(kind Kind) bool {
	for _, diag := range d.list {
		if diag.Kind == kind {
			return true
		}
	}
	return false
}
