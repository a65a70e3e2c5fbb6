package diskmanager

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"PageLens/storage_engine/page"
	"PageLens/types"
)

/*
This is main file for disk manager
It owns:
File descriptors (os.File), opened read-only
Reading raw blocks at blockSize * blockNumber (ReadAt)
Block size detection from the header of block 0
The segment number implied by the file name

Files are never written. A short read at the end of the file is not an
error: the block comes back with BytesRead below the block size and the
decoders decide what can still be annotated.
*/

// ErrBlockSize is returned when the block size cannot be taken from block 0.
var ErrBlockSize = errors.New("unable to determine block size")

func NewDiskManager() *DiskManager {
	return &DiskManager{
		files:      make(map[uint32]*FileDescriptor),
		nextFileID: 1,
	}
}

// OpenFile opens a relation file read-only and returns its file ID. With
// forcedBlockSize 0 the block size is read from block 0's header.
func (dm *DiskManager) OpenFile(filePath string, forcedBlockSize int) (uint32, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	// Already open, return existing.
	for id, fd := range dm.files {
		if fd.FilePath == filePath {
			return id, nil
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open file %s", filePath)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return 0, errors.Wrap(err, "failed to stat file")
	}

	blockSize := forcedBlockSize
	if blockSize == 0 {
		if blockSize, err = DetectBlockSize(file); err != nil {
			file.Close()
			return 0, errors.Wrapf(err, "file %s", filePath)
		}
	}

	fileID := dm.nextFileID
	dm.nextFileID++

	dm.files[fileID] = &FileDescriptor{
		FileID:        fileID,
		FilePath:      filePath,
		File:          file,
		BlockSize:     blockSize,
		Size:          stat.Size(),
		SegmentNumber: SegmentNumberFromFileName(filePath),
	}
	return fileID, nil
}

// DetectBlockSize reads the page header of block 0 and returns the page
// size recorded in pd_pagesize_version.
func DetectBlockSize(r io.ReaderAt) (int, error) {
	blk := page.NewBlock(types.PageHeaderSize)
	n, err := r.ReadAt(blk.Data, 0)
	if err != nil && err != io.EOF {
		return 0, errors.Wrap(err, "read block 0 header")
	}
	blk.BytesRead = n

	hdr, err := page.ReadHeader(blk)
	if err != nil {
		return 0, errors.Wrapf(ErrBlockSize, "unable to read full page header from block 0: read %d bytes", n)
	}
	if hdr.PageSize() == 0 {
		return 0, errors.Wrap(ErrBlockSize, "block 0 header records a page size of 0")
	}
	return hdr.PageSize(), nil
}

// SegmentNumberFromFileName returns N for a file named "<relfilenode>.N"
// and 0 for anything else.
func SegmentNumberFromFileName(filePath string) int {
	base := filepath.Base(filePath)
	dot := strings.LastIndexByte(base, '.')
	if dot < 0 || dot == len(base)-1 {
		return 0
	}
	n, err := strconv.Atoi(base[dot+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ReadBlock reads block blk.Number of the file into blk.Data and records
// how many bytes were actually there. Reading at or past end of file gives
// BytesRead 0 and no error.
func (dm *DiskManager) ReadBlock(fileID uint32, blk *page.Block) error {
	fd, err := dm.GetFileDescriptor(fileID)
	if err != nil {
		return err
	}
	return fd.ReadBlock(blk)
}

func (fd *FileDescriptor) ReadBlock(blk *page.Block) error {
	fd.mu.RLock()
	defer fd.mu.RUnlock()

	if fd.File == nil {
		return errors.Errorf("file %d is closed", fd.FileID)
	}
	if blk.Size() != fd.BlockSize {
		return errors.Errorf("block buffer of %d bytes for block size %d", blk.Size(), fd.BlockSize)
	}

	offset := int64(blk.Number) * int64(fd.BlockSize)
	n, err := fd.File.ReadAt(blk.Data, offset)
	blk.BytesRead = n
	if err != nil && err != io.EOF {
		return errors.Wrapf(err, "failed to read block %d from file %d", blk.Number, fd.FileID)
	}
	return nil
}

// NumBlocks is the number of blocks in the file, counting a trailing
// partial block.
func (fd *FileDescriptor) NumBlocks() int64 {
	if fd.BlockSize <= 0 {
		return 0
	}
	return (fd.Size + int64(fd.BlockSize) - 1) / int64(fd.BlockSize)
}

// GetFileDescriptor returns the file descriptor for a given file ID
func (dm *DiskManager) GetFileDescriptor(fileID uint32) (*FileDescriptor, error) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	fd, exists := dm.files[fileID]
	if !exists {
		return nil, errors.Errorf("file %d not found", fileID)
	}
	return fd, nil
}

// CloseFile closes a specific file
func (dm *DiskManager) CloseFile(fileID uint32) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	fd, exists := dm.files[fileID]
	if !exists {
		return errors.Errorf("file %d not found", fileID)
	}

	fd.mu.Lock()
	defer fd.mu.Unlock()

	delete(dm.files, fileID)
	if fd.File == nil {
		return nil // Already closed
	}
	err := fd.File.Close()
	fd.File = nil
	return errors.Wrap(err, "failed to close file")
}

// CloseAll closes all open files
func (dm *DiskManager) CloseAll() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	var lastErr error
	for fileID, fd := range dm.files {
		fd.mu.Lock()
		if fd.File != nil {
			if err := fd.File.Close(); err != nil {
				lastErr = err
			}
			fd.File = nil
		}
		fd.mu.Unlock()
		delete(dm.files, fileID)
	}
	return lastErr
}
