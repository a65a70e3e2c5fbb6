// Print the jump list of a B-tree index file: the byte offset of the root
// page and of every page the root links to, one per line, ready to be
// passed to the hex editor as bookmarks.
// Usage: go run ./cmd/jump_list [-b size] [-json] <index file>
// Example: go run ./cmd/jump_list databases/sample/16390
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	jumplist "PageLens/jump_list"
	"PageLens/storage_engine/bufferpool"
	diskmanager "PageLens/storage_engine/disk_manager"
)

func main() {
	blockSize := flag.Int("b", 0, "force block size instead of reading it from block 0")
	asJSON := flag.Bool("json", false, "print the whole jump list as JSON")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-b size] [-json] <index file>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s databases/sample/16390\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if err := run(flag.Arg(0), *blockSize, *asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, blockSize int, asJSON bool) error {
	dm := diskmanager.NewDiskManager()
	defer dm.CloseAll()

	fileID, err := dm.OpenFile(path, blockSize)
	if err != nil {
		return err
	}
	pool, err := bufferpool.NewBufferPool(bufferpool.DefaultCapacity, dm, nil)
	if err != nil {
		return err
	}
	defer pool.Close()

	jl, err := jumplist.Build(pool, fileID)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(jl)
	}
	for _, off := range jl.Offsets() {
		fmt.Println(off)
	}
	return nil
}
