package bufferpool

/*
This file holds helper functions for the bufferpool
*/

// blockKey packs (fileID, block number) into one cache key
func blockKey(fileID uint32, blkno uint32) uint64 {
	return uint64(fileID)<<32 | uint64(blkno)
}

// GetStats returns current buffer pool statistics
func (bp *BufferPool) GetStats() BufferPoolStats {
	stats := BufferPoolStats{
		Hits:     bp.hits.Load(),
		Misses:   bp.misses.Load(),
		Capacity: bp.capacity,
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}

// Reset drops every cached block and the counters
func (bp *BufferPool) Reset() {
	bp.cache.Clear()
	bp.hits.Store(0)
	bp.misses.Store(0)
}
