// Package walker drives a run: it opens the relation file, reads blocks in
// order through one reused buffer, hands each to the page decoder and
// closes the tag document however the run ends.
package walker

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"PageLens/annotation"
	"PageLens/config"
	decoder "PageLens/page_decoder"
	diskmanager "PageLens/storage_engine/disk_manager"
	"PageLens/storage_engine/page"
	"PageLens/types"
)

// NoBlock marks an unset range bound or segment number.
const NoBlock = -1

type Options struct {
	Path            string
	Start           int // first block, NoBlock for block 0
	End             int // last block, NoBlock for "Start only" or "to end of file"
	SkipLeaf        bool
	VerifyChecksums bool
	BlockSize       int // 0 detects it from block 0
	SegmentSize     int // bytes, 0 for the default
	SegmentNumber   int // NoBlock takes it from the file name
}

// Ranged reports whether a block range was requested.
func (o Options) Ranged() bool {
	return o.Start != NoBlock || o.End != NoBlock
}

// bounds resolves the range: a start with no end is that single block.
func (o Options) bounds() (start, end int) {
	start, end = o.Start, o.End
	if start == NoBlock {
		start = 0
	}
	if end == NoBlock && o.Start != NoBlock {
		end = start
	}
	return start, end
}

// Result summarizes a finished run.
type Result struct {
	Blocks      int    // blocks handed to the decoder
	Tags        uint32 // tags written
	Diagnostics int
	BlockSize   int
	Bytes       int64 // bytes read
}

// BlockSource fills blk.Data with block blk.Number and sets BytesRead.
type BlockSource interface {
	ReadBlock(blk *page.Block) error
}

type Walker struct {
	dm          *diskmanager.DiskManager
	out         *annotation.XMLWriter
	emitter     *annotation.Emitter
	diagnostics *decoder.Diagnostics
	log         *zap.Logger
	opts        Options
}

func New(dm *diskmanager.DiskManager, out *annotation.XMLWriter, diagnostics *decoder.Diagnostics,
	log *zap.Logger, opts Options) *Walker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Walker{
		dm:          dm,
		out:         out,
		emitter:     annotation.NewEmitter(out),
		diagnostics: diagnostics,
		log:         log,
		opts:        opts,
	}
}

// Run writes the whole document. The footer is written on every path,
// including fatal decode errors and a file whose block size cannot be
// determined; the returned error is the fatal one, if any.
func (w *Walker) Run(ctx context.Context, header annotation.DocHeader) (res Result, err error) {
	started := time.Now()
	if err := w.out.WriteHeader(header); err != nil {
		return res, err
	}
	defer func() {
		res.Tags = w.emitter.Count()
		res.Diagnostics = w.diagnostics.Count()
		if ferr := w.out.WriteFooter(); ferr != nil && err == nil {
			err = ferr
		}
		w.log.Info("walk finished",
			zap.String("path", w.opts.Path),
			zap.Int("blocks", res.Blocks),
			zap.Uint32("tags", res.Tags),
			zap.String("read", humanize.IBytes(uint64(res.Bytes))),
			zap.Int("diagnostics", res.Diagnostics),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err),
		)
	}()

	fileID, err := w.dm.OpenFile(w.opts.Path, w.opts.BlockSize)
	if err != nil {
		return res, err
	}
	defer w.dm.CloseFile(fileID)

	fd, err := w.dm.GetFileDescriptor(fileID)
	if err != nil {
		return res, err
	}
	res.BlockSize = fd.BlockSize

	segment := w.opts.SegmentNumber
	if segment == NoBlock {
		segment = fd.SegmentNumber
	}
	dec := decoder.New(w.emitter, w.diagnostics, w.log, decoder.Options{
		VerifyChecksums: w.opts.VerifyChecksums,
		SegmentSize:     w.opts.SegmentSize,
		SegmentNumber:   segment,
	})
	w.log.Debug("walking relation",
		zap.String("path", fd.FilePath),
		zap.Int("block_size", fd.BlockSize),
		zap.Int("segment", segment),
		zap.String("size", humanize.IBytes(uint64(fd.Size))),
	)

	err = w.walk(ctx, fd, fd.BlockSize, dec, &res)
	return res, err
}

// walk is the read/decode loop. Reading zero bytes ends the walk; only
// when that happens on the very first read is it reported.
func (w *Walker) walk(ctx context.Context, src BlockSource, blockSize int, dec *decoder.Decoder, res *Result) error {
	start, end := w.opts.bounds()
	ranged := w.opts.Ranged()

	blk := page.NewBlock(blockSize)
	for current, first := start, true; ; current, first = current+1, false {
		if err := ctx.Err(); err != nil {
			return err
		}

		blk.Number = uint32(current)
		if err := src.ReadBlock(blk); err != nil {
			return err
		}
		if blk.BytesRead == 0 {
			if first {
				w.diagnostics.Report(decoder.Diagnostic{
					Block:   blk.Number,
					Kind:    decoder.KindPrematureEOF,
					Message: "premature end of file encountered",
				})
			}
			return nil
		}

		res.Blocks++
		res.Bytes += int64(blk.BytesRead)
		if err := dec.Decode(blk, w.opts.SkipLeaf); err != nil {
			return errors.Wrapf(err, "block %d", current)
		}

		if ranged && current >= end {
			return nil
		}
	}
}

// DefaultOptions is an unranged walk with block size detection.
func DefaultOptions(path string) Options {
	return Options{
		Path:          path,
		Start:         NoBlock,
		End:           NoBlock,
		SegmentSize:   types.DefaultSegmentSize,
		SegmentNumber: NoBlock,
	}
}

// FromConfig maps the command-line configuration onto walk options.
func FromConfig(cfg config.Config) Options {
	return Options{
		Path:            cfg.Path,
		Start:           cfg.Start,
		End:             cfg.End,
		SkipLeaf:        cfg.SkipLeaf,
		VerifyChecksums: cfg.Checksums,
		BlockSize:       cfg.BlockSize,
		SegmentSize:     cfg.SegmentSize,
		SegmentNumber:   cfg.SegmentNumber,
	}
}
