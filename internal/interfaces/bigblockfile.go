// Package interfaces declares the small, dependency-inverting contracts
// that let internal/blockchain, internal/directory and internal/enum stay
// decoupled from internal/storagecore and from the concrete host-file
// adapter in internal/blockio.
package interfaces

import "github.com/deploymenttheory/go-cfb/internal/types"

// Page is a big-block-sized buffer obtained from a BigBlockFile. Index -1
// denotes the header block (the first BigBlockSize bytes of the file);
// index 0 and above denote ordinary big blocks, each starting at absolute
// file offset (index+1)*BigBlockSize.
type Page struct {
	Index    int32
	Data     []byte
	Writable bool
}

// BigBlockFile is the pageable, random-access host-file abstraction the
// block-chain and depot layers are built on. Implementations neither know
// nor care about the compound-file format above the page level; a default
// implementation backed by *os.File lives in internal/blockio.
//
// Page handles are scoped: callers must Release every page obtained from
// GetBlock/GetROBlock on every exit path, before issuing any further call
// that might evict or reuse that page.
type BigBlockFile interface {
	// GetSize returns the current size of the host file in bytes.
	GetSize() (int64, error)

	// SetSize grows or truncates the host file to exactly newSize bytes.
	SetSize(newSize int64) error

	// GetBlock returns a writable page for the big block at index.
	GetBlock(index int32) (*Page, error)

	// GetROBlock returns a read-only page for the big block at index.
	GetROBlock(index int32) (*Page, error)

	// Release returns a page obtained from GetBlock/GetROBlock, flushing
	// it to the host file first if it was writable and modified.
	Release(page *Page) error
}

// PropertyReader reads a single property record by index from the
// property table.
type PropertyReader interface {
	ReadProperty(index types.PropertyIndex) (types.Property, error)
}

// PropertyWriter writes a single property record by index to the property
// table, growing the table if index falls past its current end.
type PropertyWriter interface {
	WriteProperty(index types.PropertyIndex, p types.Property) error
}

// PropertyStore is the combined read/write/allocate contract that
// internal/directory's BST mutation helpers and internal/enum's traversal
// need against the property table.
type PropertyStore interface {
	PropertyReader
	PropertyWriter
	// AllocateProperty finds or creates a free property slot and returns
	// its index.
	AllocateProperty() (types.PropertyIndex, error)
}
