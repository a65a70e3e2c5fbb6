package checksum

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// patternPage fills a page with a repeating three-word pattern.
func patternPage(size int) []byte {
	pattern := []uint32{0xDEADBEEF, 0x01234567, 0x89ABCDEF}
	pg := make([]byte, size)
	for i := 0; i < size/4; i++ {
		binary.LittleEndian.PutUint32(pg[i*4:], pattern[i%3])
	}
	return pg
}

func TestPageGoldenValues(t *testing.T) {
	tests := []struct {
		name  string
		page  []byte
		blkno uint32
		want  uint16
	}{
		{"pattern_8k_block0", patternPage(8192), 0, 0x571e},
		{"pattern_8k_block1", patternPage(8192), 1, 0x571f},
		{"pattern_8k_second_segment", patternPage(8192), 131072*2 + 5, 0x5727},
		{"zero_8k_block0", make([]byte, 8192), 0, 0xc6aa},
		{"pattern_4k_block0", patternPage(4096), 0, 0x1bf3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Page(tt.page, tt.blkno)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "computed 0x%04x", got)
		})
	}
}

func TestPageIgnoresStoredChecksum(t *testing.T) {
	pg := patternPage(8192)
	before, err := Page(pg, 7)
	require.NoError(t, err)

	binary.LittleEndian.PutUint16(pg[8:], 0xBEEF)
	after, err := Page(pg, 7)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, uint16(0xBEEF), binary.LittleEndian.Uint16(pg[8:]), "input must not be modified")
}

func TestPageRejectsOddSizes(t *testing.T) {
	_, err := Page(make([]byte, 100), 0)
	assert.ErrorIs(t, err, ErrPageSize)

	_, err = Page(nil, 0)
	assert.ErrorIs(t, err, ErrPageSize)
}

func TestVerify(t *testing.T) {
	pg := patternPage(8192)
	sum, err := Page(pg, 3)
	require.NoError(t, err)
	binary.LittleEndian.PutUint16(pg[8:], sum)

	computed, stored, ok, err := Verify(pg, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, computed, stored)

	_, _, ok, err = Verify(pg, 4)
	require.NoError(t, err)
	assert.False(t, ok, "a different logical block must not verify")
}

func TestLogicalBlock(t *testing.T) {
	assert.Equal(t, uint32(12), LogicalBlock(1<<30, 8192, 0, 12))
	assert.Equal(t, uint32(131072*3+12), LogicalBlock(1<<30, 8192, 3, 12))
	assert.Equal(t, uint32(12), LogicalBlock(1<<30, 0, 3, 12))
}
