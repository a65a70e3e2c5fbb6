// Package checksum reimplements the storage engine's 16-bit data page
// checksum so that a page read from disk can be verified offline.
//
// The algorithm treats the page as rows of 32 little-endian uint32 words
// and mixes each column into its own accumulator with an FNV-1a derived
// step. Two extra rounds of zero words finish the mixing, the accumulators
// are folded with XOR, the logical block number is XORed in and the result
// is reduced to the range [1, 65535].
package checksum

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"PageLens/types"
)

const (
	nSums    = 32
	fnvPrime = 16777619
	rowBytes = nSums * 4
)

var baseOffsets = [nSums]uint32{
	0x5B1F36E9, 0xB8525960, 0x02AB50AA, 0x1DE66D2A,
	0x79FF467A, 0x9BB9F8A3, 0x217E7CD2, 0x83E13D2C,
	0xF8D4474F, 0xE39EB970, 0x42C6AE16, 0x993216FA,
	0x7B093B5D, 0x98DAFF3C, 0xF718902A, 0x0B1C9CDB,
	0xE58F764B, 0x187636BC, 0x5D7B3BB1, 0xE73DE7DE,
	0x92BEC979, 0xCCA6C0B2, 0x304A0979, 0x85AA43D4,
	0x783125BB, 0x6CA8EAA2, 0xE407EAC6, 0x4B5CFC3E,
	0x9FBF8C76, 0x15CA20BE, 0xF2CA9FD3, 0x959BD756,
}

// ErrPageSize is returned when the page length is not a whole number of rows.
var ErrPageSize = errors.New("page length is not a multiple of 128 bytes")

func comp(sum, value uint32) uint32 {
	tmp := sum ^ value
	return tmp*fnvPrime ^ (tmp >> 17)
}

// block computes the raw 32-bit mix of the page with pd_checksum treated as zero.
func block(pg []byte) uint32 {
	sums := baseOffsets

	rows := len(pg) / rowBytes
	for i := 0; i < rows; i++ {
		row := pg[i*rowBytes : (i+1)*rowBytes]
		for j := 0; j < nSums; j++ {
			w := binary.LittleEndian.Uint32(row[j*4:])
			if i == 0 && j == types.OffChecksum/4 {
				// pd_checksum occupies the low half of word 2
				w &^= 0xFFFF
			}
			sums[j] = comp(sums[j], w)
		}
	}

	for i := 0; i < 2; i++ {
		for j := 0; j < nSums; j++ {
			sums[j] = comp(sums[j], 0)
		}
	}

	var result uint32
	for _, s := range sums {
		result ^= s
	}
	return result
}

// Page returns the checksum of pg as stored in pd_checksum. blkno is the
// logical block number, see LogicalBlock.
func Page(pg []byte, blkno uint32) (uint16, error) {
	if len(pg) == 0 || len(pg)%rowBytes != 0 {
		return 0, errors.Wrapf(ErrPageSize, "got %d bytes", len(pg))
	}
	sum := block(pg) ^ blkno
	return uint16(sum%65535 + 1), nil
}

// LogicalBlock maps a block index within one segment file to the block
// number the checksum was computed with.
func LogicalBlock(segmentSize, blockSize, segmentNumber int, blkno uint32) uint32 {
	if blockSize <= 0 {
		return blkno
	}
	return uint32(segmentSize/blockSize)*uint32(segmentNumber) + blkno
}

// Verify computes the checksum of pg and compares it against the stored
// pd_checksum field.
func Verify(pg []byte, logicalBlock uint32) (computed, stored uint16, ok bool, err error) {
	computed, err = Page(pg, logicalBlock)
	if err != nil {
		return 0, 0, false, err
	}
	stored = binary.LittleEndian.Uint16(pg[types.OffChecksum:])
	return computed, stored, computed == stored, nil
}
