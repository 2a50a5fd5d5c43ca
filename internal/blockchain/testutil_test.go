package blockchain

import (
	"io"

	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// memFile is a BigBlockFile backed by an in-memory byte slice, mirroring
// internal/blockio.FileBackend's offset and zero-fill-on-short-read rules
// without touching the filesystem.
type memFile struct {
	data         []byte
	bigBlockSize int
}

var _ interfaces.BigBlockFile = (*memFile)(nil)

func newMemFile(bigBlockSize int) *memFile {
	return &memFile{bigBlockSize: bigBlockSize}
}

func (f *memFile) GetSize() (int64, error) { return int64(len(f.data)), nil }

func (f *memFile) SetSize(newSize int64) error {
	if int64(len(f.data)) == newSize {
		return nil
	}
	grown := make([]byte, newSize)
	copy(grown, f.data)
	f.data = grown
	return nil
}

func (f *memFile) offsetOf(index int32) int64 {
	return int64(index+1) * int64(f.bigBlockSize)
}

func (f *memFile) getBlock(index int32, writable bool) (*interfaces.Page, error) {
	buf := make([]byte, f.bigBlockSize)
	off := f.offsetOf(index)
	if off < int64(len(f.data)) {
		n := copy(buf, f.data[off:])
		_ = n
	} else if off != int64(len(f.data)) {
		return nil, io.ErrUnexpectedEOF
	}
	return &interfaces.Page{Index: index, Data: buf, Writable: writable}, nil
}

func (f *memFile) GetBlock(index int32) (*interfaces.Page, error)   { return f.getBlock(index, true) }
func (f *memFile) GetROBlock(index int32) (*interfaces.Page, error) { return f.getBlock(index, false) }

func (f *memFile) Release(page *interfaces.Page) error {
	if page == nil || !page.Writable {
		return nil
	}
	off := f.offsetOf(page.Index)
	need := off + int64(len(page.Data))
	if need > int64(len(f.data)) {
		grown := make([]byte, need)
		copy(grown, f.data)
		f.data = grown
	}
	copy(f.data[off:], page.Data)
	return nil
}

// fakeHeaderStore is the minimal blockchain.HeaderStore a depot needs.
type fakeHeaderStore struct {
	h *types.FileHeader
}

func (s *fakeHeaderStore) Header() *types.FileHeader { return s.h }
func (s *fakeHeaderStore) PersistHeader() error       { return nil }

// fakePropertyStore is a bare in-memory PropertyStore for exercising
// propertyHead and AllocateProperty without internal/directory.
type fakePropertyStore struct {
	props []types.Property
}

func (s *fakePropertyStore) ReadProperty(index types.PropertyIndex) (types.Property, error) {
	if int(index) >= len(s.props) {
		return types.Property{}, types.ErrInvalidArg
	}
	return s.props[index], nil
}

func (s *fakePropertyStore) WriteProperty(index types.PropertyIndex, p types.Property) error {
	if int(index) >= len(s.props) {
		return types.ErrInvalidArg
	}
	s.props[index] = p
	return nil
}

func (s *fakePropertyStore) AllocateProperty() (types.PropertyIndex, error) {
	for i, p := range s.props {
		if p.IsFree() {
			return types.PropertyIndex(i), nil
		}
	}
	s.props = append(s.props, types.NewFreeProperty())
	return types.PropertyIndex(len(s.props) - 1), nil
}
