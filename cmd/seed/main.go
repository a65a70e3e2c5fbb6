// Seed program: writes a small set of relation files to decode.
// Run: go run ./cmd/seed [-dir databases/sample] [-b 8192]
// Then annotate: go run . databases/sample/16384 > 16384.tags
package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"PageLens/checksum"
	pagebuilder "PageLens/page_builder"
	"PageLens/types"
)

func main() {
	dir := flag.String("dir", "databases/sample", "output directory")
	blockSize := flag.Int("b", 8192, "block size")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0755); err != nil {
		log.Fatalf("mkdir: %v", err)
	}

	blocksPerSegment := uint32(types.DefaultSegmentSize / *blockSize)
	files := []struct {
		name   string
		what   string
		blocks [][]byte
	}{
		{"16384", "heap, 3 blocks, checksummed", heapSegment(*blockSize, 0, 3)},
		{"16384.1", "heap, second segment", heapSegment(*blockSize, blocksPerSegment, 1)},
		{"16390", "B-tree index: meta, 3 leaves, root", btreeIndex(*blockSize)},
		{"16400", "sequence", [][]byte{sequencePage(*blockSize)}},
	}

	fmt.Println("Writing sample relations...")
	for _, f := range files {
		path := filepath.Join(*dir, f.name)
		if err := os.WriteFile(path, bytes.Join(f.blocks, nil), 0644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Printf("  %-28s %s\n", path, f.what)
	}

	fmt.Println("\nDone. Annotate with:")
	fmt.Println("  go run . -k", filepath.Join(*dir, "16384"))
	fmt.Println("  go run ./cmd/jump_list", filepath.Join(*dir, "16390"))
}

// heapSegment builds n heap blocks whose checksums are computed for
// logical blocks first, first+1, ...
func heapSegment(blockSize int, first uint32, n int) [][]byte {
	var blocks [][]byte
	for i := 0; i < n; i++ {
		b := pagebuilder.New(blockSize).SetLSN(0, 0x01A2B3C0+uint32(i)*0x100).SetPruneXid(560)
		xmin := uint32(560 + i*10)

		// plain tuple
		b.AddItem(pagebuilder.HeapTuple{
			Xmin: xmin, CtidBlock: uint32(i), CtidOffset: 1,
			Infomask: types.HeapXminCommitted | types.HeapXmaxInvalid,
			Natts:    2, Data: row(int64(i*3+1), "alice"),
		}.Encode(), types.LPNormal)

		// three attributes, the last one null
		b.AddItem(pagebuilder.HeapTuple{
			Xmin: xmin, CtidBlock: uint32(i), CtidOffset: 2,
			Infomask:   types.HeapHasNull | types.HeapHasVarWidth | types.HeapXmaxInvalid,
			Natts:      3,
			NullBitmap: []byte{0x03},
			Data:       row(int64(i*3+2), "bob"),
		}.Encode(), types.LPNormal)

		// HOT chain: the old version redirects to the new one
		b.AddItemID(4, types.LPRedirect, 0)
		b.AddItem(pagebuilder.HeapTuple{
			Xmin: xmin + 1, CtidBlock: uint32(i), CtidOffset: 4,
			Infomask:  types.HeapUpdated | types.HeapXmaxInvalid,
			Infomask2: types.HeapOnlyTuple,
			Natts:     2, Data: row(int64(i*3+3), "carol"),
		}.Encode(), types.LPNormal)

		b.AddItemID(0, types.LPDead, 0)
		blocks = append(blocks, b.Checksummed(first+uint32(i)))
	}
	return blocks
}

// row is an int8 followed by a short varlena text.
func row(id int64, name string) []byte {
	buf := make([]byte, 8, 8+1+len(name))
	binary.LittleEndian.PutUint64(buf, uint64(id))
	buf = append(buf, byte((1+len(name))<<1|1)) // 1-byte varlena header
	return append(buf, name...)
}

func key(k int64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(k))
	return buf
}

func btreeIndex(blockSize int) [][]byte {
	const leaves, perLeaf = 3, 40

	blocks := [][]byte{pagebuilder.NewBTreeMetaPage(blockSize, pagebuilder.BTreeMeta{
		Magic: types.BTreeMagic, Version: 3,
		Root: leaves + 1, Level: 1, FastRoot: leaves + 1, FastLevel: 1,
	})}

	for l := 0; l < leaves; l++ {
		blkno := uint32(l + 1)
		o := pagebuilder.BTreeOpaque{Flags: types.BTPLeaf}
		if l > 0 {
			o.Prev = blkno - 1
		}
		if l < leaves-1 {
			o.Next = blkno + 1
		}
		b := pagebuilder.NewBTreePage(blockSize, o)
		if o.Next != 0 {
			// high key
			b.AddItem(pagebuilder.IndexTuple{Key: key(int64((l + 1) * perLeaf))}.Encode(), types.LPNormal)
		}
		for k := 0; k < perLeaf; k++ {
			n := int64(l*perLeaf + k)
			b.AddItem(pagebuilder.IndexTuple{
				Block: uint32(n / 3), Offset: uint16(n%3 + 1), Key: key(n),
			}.Encode(), types.LPNormal)
		}
		blocks = append(blocks, b.Checksummed(blkno))
	}

	root := pagebuilder.NewBTreePage(blockSize, pagebuilder.BTreeOpaque{Level: 1, Flags: types.BTPRoot})
	root.AddItem(pagebuilder.IndexTuple{Block: 1, Offset: 1}.Encode(), types.LPNormal) // minus infinity
	for l := 1; l < leaves; l++ {
		root.AddItem(pagebuilder.IndexTuple{Block: uint32(l + 1), Offset: 1, Key: key(int64(l * perLeaf))}.Encode(), types.LPNormal)
	}
	blocks = append(blocks, root.Checksummed(leaves+1))

	if sum, err := checksum.Page(blocks[0], 0); err == nil {
		binary.LittleEndian.PutUint16(blocks[0][types.OffChecksum:], sum)
	}
	return blocks
}

// sequencePage is a one-tuple page with the sequence magic in its 8-byte
// special section.
func sequencePage(blockSize int) []byte {
	b := pagebuilder.New(blockSize).WithSpecial(types.GinOpaqueSize)
	b.PutUint32(b.Special(), types.SequenceMagic)
	b.AddItem(pagebuilder.HeapTuple{
		Xmin: 1, Infomask: types.HeapXminCommitted | types.HeapXmaxInvalid,
		Natts: 3, Data: bytes.Repeat([]byte{0}, 24),
	}.Encode(), types.LPNormal)
	return b.Checksummed(0)
}
