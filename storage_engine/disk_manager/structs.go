package diskmanager

import (
	"os"
	"sync"
)

// ############################################# FILE DESCRIPTOR ###########################################

// FileDescriptor represents an open relation segment file
type FileDescriptor struct {
	FileID        uint32
	FilePath      string
	File          *os.File
	BlockSize     int   // detected from block 0, or forced by the caller
	Size          int64 // file size in bytes at open time
	SegmentNumber int   // from the ".N" file name suffix, 0 without one
	mu            sync.RWMutex
}

// ############################################# DISK MANAGER #############################################

// DiskManager owns the read-only file handles of the relations being inspected
type DiskManager struct {
	files      map[uint32]*FileDescriptor // fileID -> file descriptor
	nextFileID uint32
	mu         sync.RWMutex
}
