// Package blockio provides the default BigBlockFile implementation: a
// pageable, random-access view over an *os.File. spec.md treats the
// host-file abstraction as an external collaborator the core only
// consumes through interfaces.BigBlockFile; this package is that
// collaborator's one concrete implementation, so the engine is runnable
// end-to-end without an embedder supplying its own.
package blockio

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/deploymenttheory/go-cfb/internal/interfaces"
)

// FileBackend is a BigBlockFile backed by an *os.File. Block index -1
// addresses the header (the first BigBlockSize bytes); block index i>=0
// addresses the BigBlockSize-byte page starting at absolute file offset
// (i+1)*BigBlockSize.
type FileBackend struct {
	file         *os.File
	bigBlockSize int

	pool sync.Pool
}

var _ interfaces.BigBlockFile = (*FileBackend)(nil)

// NewFileBackend wraps an already-opened file. bigBlockSize must match the
// size recorded in (or about to be written to) the file's header.
func NewFileBackend(file *os.File, bigBlockSize int) *FileBackend {
	fb := &FileBackend{file: file, bigBlockSize: bigBlockSize}
	fb.pool.New = func() any {
		return make([]byte, bigBlockSize)
	}
	return fb
}

// GetSize returns the current size of the host file in bytes.
func (fb *FileBackend) GetSize() (int64, error) {
	info, err := fb.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat host file: %w", err)
	}
	return info.Size(), nil
}

// SetSize grows or truncates the host file to exactly newSize bytes.
func (fb *FileBackend) SetSize(newSize int64) error {
	if err := fb.file.Truncate(newSize); err != nil {
		return fmt.Errorf("resize host file to %d bytes: %w", newSize, err)
	}
	return nil
}

func (fb *FileBackend) offsetOf(index int32) int64 {
	return int64(index+1) * int64(fb.bigBlockSize)
}

func (fb *FileBackend) getBlock(index int32, writable bool) (*interfaces.Page, error) {
	buf := fb.pool.Get().([]byte)
	off := fb.offsetOf(index)
	n, err := fb.file.ReadAt(buf, off)
	if err != nil && err != io.EOF {
		fb.pool.Put(buf)
		return nil, fmt.Errorf("reading block %d: %w", index, err)
	}
	for i := n; i < len(buf); i++ {
		buf[i] = 0
	}
	return &interfaces.Page{Index: index, Data: buf, Writable: writable}, nil
}

// GetBlock returns a writable page for the big block at index.
func (fb *FileBackend) GetBlock(index int32) (*interfaces.Page, error) {
	return fb.getBlock(index, true)
}

// GetROBlock returns a read-only page for the big block at index.
func (fb *FileBackend) GetROBlock(index int32) (*interfaces.Page, error) {
	return fb.getBlock(index, false)
}

// Release flushes page.Data back to the file if the page was writable,
// then returns its buffer to the pool. Callers must not use page after
// calling Release.
func (fb *FileBackend) Release(page *interfaces.Page) error {
	if page == nil {
		return nil
	}
	if page.Writable {
		off := fb.offsetOf(page.Index)
		if _, err := fb.file.WriteAt(page.Data, off); err != nil {
			return fmt.Errorf("flushing block %d: %w", page.Index, err)
		}
	}
	fb.pool.Put(page.Data)
	page.Data = nil
	return nil
}

// Close closes the underlying file.
func (fb *FileBackend) Close() error {
	return fb.file.Close()
}
