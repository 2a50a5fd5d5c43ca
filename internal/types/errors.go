package types

import "errors"

// Sentinel errors returned by the block, directory and storage-core
// layers. pkg/cfb maps these onto the package-neutral error codes listed
// in spec.md §6.2 at the public API boundary.
var (
	// ErrInvalidArg signals a malformed argument (e.g. a name that is
	// too long) rejected before any side effect occurs.
	ErrInvalidArg = errors.New("cfb: invalid argument")

	// ErrInvalidName signals a name exceeding MaxNameCodeUnits-1 code
	// units.
	ErrInvalidName = errors.New("cfb: invalid name")

	// ErrFileNotFound signals a missing stream or storage element.
	ErrFileNotFound = errors.New("cfb: element not found")

	// ErrFileAlreadyExists signals a name collision on create/rename.
	ErrFileAlreadyExists = errors.New("cfb: element already exists")

	// ErrWrongType signals that an element exists but is not of the
	// requested kind (stream vs storage).
	ErrWrongType = errors.New("cfb: element is not of the requested type")

	// ErrInvalidHeader signals a header that failed structural
	// validation (bad magic, truncated file).
	ErrInvalidHeader = errors.New("cfb: invalid compound file header")

	// ErrOldFormat signals the old-beta compound file magic.
	ErrOldFormat = errors.New("cfb: old-format compound file beta magic")

	// ErrNotImplemented signals an operation this engine deliberately
	// stubs out (Commit, Revert, CopyTo, MoveElementTo, ...).
	ErrNotImplemented = errors.New("cfb: not implemented")

	// ErrCorruptChain signals a block chain that fails to reach
	// BlockEndOfChain within the file's own block count, or that walks
	// outside [0, fileBlockCount).
	ErrCorruptChain = errors.New("cfb: corrupt block chain")

	// ErrCorruptDepot signals a depot entry pointing outside the valid
	// range of block indices.
	ErrCorruptDepot = errors.New("cfb: corrupt block depot")

	// ErrReadOnly signals a mutating call against a storage or stream
	// opened in read-only mode.
	ErrReadOnly = errors.New("cfb: storage opened read-only")

	// ErrShortRead signals ReadAt returned fewer bytes than requested
	// because the chain is shorter than the offset+size being read.
	ErrShortRead = errors.New("cfb: short read past end of chain")
)
