package bufferpool

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	diskmanager "PageLens/storage_engine/disk_manager"
	"PageLens/storage_engine/page"
)

/*
This file is the main file of the bufferpool
Blocks are looked up by (fileID, block number) in a ristretto cache bounded
by total bytes; on a miss the disk manager reads the block and a copy of the
read bytes is added to the cache for future access.

The walker does not go through here: it reads every block exactly once,
and so does each /tags request of the HTTP server. The jump list revisits
the meta page and the root on every /jump request and cmd/jump_list run,
and those reads are served from the cache.
*/

const (
	DefaultCapacity = 64 << 20 // 64MB of block images
	bufferItems     = 64
)

// NewBufferPool creates a new buffer pool holding up to capacity bytes
func NewBufferPool(capacity int64, diskManager *diskmanager.DiskManager, log *zap.Logger) (*BufferPool, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = zap.NewNop()
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []byte]{
		// ~10x the number of 8K blocks that fit, as ristretto recommends
		NumCounters: max(capacity/8192*10, 1000),
		MaxCost:     capacity,
		BufferItems: bufferItems,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create block cache")
	}
	return &BufferPool{cache: cache, diskManager: diskManager, log: log, capacity: capacity}, nil
}

// FetchBlock returns block blkno of the file. The returned Block is the
// caller's own copy.
func (bp *BufferPool) FetchBlock(fileID uint32, blkno uint32) (*page.Block, error) {
	fd, err := bp.diskManager.GetFileDescriptor(fileID)
	if err != nil {
		return nil, err
	}

	blk := page.NewBlock(fd.BlockSize)
	blk.Number = blkno

	key := blockKey(fileID, blkno)
	if data, ok := bp.cache.Get(key); ok {
		bp.hits.Add(1)
		bp.log.Debug("block cache hit", zap.Uint32("file", fileID), zap.Uint32("block", blkno))
		blk.BytesRead = copy(blk.Data, data)
		return blk, nil
	}

	bp.misses.Add(1)
	bp.log.Debug("block cache miss", zap.Uint32("file", fileID), zap.Uint32("block", blkno))
	if err := fd.ReadBlock(blk); err != nil {
		return nil, errors.Wrapf(err, "failed to read block %d", blkno)
	}

	// a read past end of file is not cached; the file may still grow
	if blk.BytesRead > 0 {
		image := make([]byte, blk.BytesRead)
		copy(image, blk.Data)
		bp.cache.Set(key, image, int64(len(image)))
		bp.cache.Wait()
	}
	return blk, nil
}

// Close releases the cache. The disk manager is left open.
func (bp *BufferPool) Close() {
	bp.cache.Close()
}
