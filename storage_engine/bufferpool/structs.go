package bufferpool

import (
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"

	diskmanager "PageLens/storage_engine/disk_manager"
)

// ############################################# BUFFER POOL #############################################

// BufferPool caches raw block images read through the disk manager. Only
// the bytes actually read are cached, so a short final block stays short.
type BufferPool struct {
	cache       *ristretto.Cache[uint64, []byte]
	diskManager *diskmanager.DiskManager
	log         *zap.Logger
	capacity    int64
	hits        atomic.Uint64
	misses      atomic.Uint64
}

// BufferPoolStats reports cache effectiveness
type BufferPoolStats struct {
	Hits     uint64
	Misses   uint64
	Capacity int64 // bytes
	HitRate  float64
}
