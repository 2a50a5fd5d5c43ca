// Package cfb is the public façade over internal/storagecore: IStorage/
// IStream-shaped Go types (Storage, Stream) backed by a real on-disk
// compound file. See spec.md §6.2.
package cfb

import (
	"errors"
	"io"
	"os"

	"github.com/deploymenttheory/go-cfb/internal/blockio"
	"github.com/deploymenttheory/go-cfb/internal/storagecore"
	"github.com/deploymenttheory/go-cfb/internal/types"
	"github.com/google/uuid"
)

// fileOwner is the shared, reference-counted-by-convention state backing
// every Storage/Stream descended from one open compound file: the host
// os.File, its BigBlockFile adapter, and the storagecore.Core built over
// it. Every Storage opened beneath the root shares the same fileOwner, so
// Close on any of them closes the underlying file for all of them —
// mirroring the single storageCore plus non-owning back-references design
// spec.md §9's Open Question resolves on.
type fileOwner struct {
	file    *os.File
	backend *blockio.FileBackend
	core    *storagecore.Core
}

// Storage is an open storage element: the root of a compound file, or any
// nested storage reached via CreateStorage/OpenStorage.
type Storage struct {
	sub   *storagecore.SubStorage
	owner *fileOwner
}

// CreateDocfile creates a brand-new compound file at path and returns its
// root Storage. mode's ModeFailIfThere bit is honored by opening with
// O_EXCL; without it, an existing file at path is truncated and
// reinitialized.
func CreateDocfile(path string, mode CreateMode) (*Storage, error) {
	flag := os.O_CREATE | os.O_RDWR
	if mode&ModeFailIfThere != 0 {
		flag |= os.O_EXCL
	} else {
		flag |= os.O_TRUNC
	}
	file, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrFileAlreadyExists
		}
		return nil, err
	}

	backend := blockio.NewFileBackend(file, types.DefaultBigBlockSize)
	core, err := storagecore.CreateCore(backend)
	if err != nil {
		file.Close()
		return nil, mapErr(err)
	}

	return &Storage{
		sub:   core.RootStorage(),
		owner: &fileOwner{file: file, backend: backend, core: core},
	}, nil
}

// OpenStorage opens an existing compound file at path and returns its
// root Storage. ModeReadOnly opens the host file O_RDONLY and rejects
// every mutating call against the returned Storage (and anything opened
// beneath it) with ErrInvalidArg.
func OpenStorage(path string, mode OpenMode) (*Storage, error) {
	readOnly := mode&ModeReadOnly != 0
	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}
	file, err := os.OpenFile(path, flag, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	backend := blockio.NewFileBackend(file, types.DefaultBigBlockSize)
	core, err := storagecore.OpenCore(backend, readOnly)
	if err != nil {
		file.Close()
		return nil, mapErr(err)
	}

	return &Storage{
		sub:   core.RootStorage(),
		owner: &fileOwner{file: file, backend: backend, core: core},
	}, nil
}

// WriteClassStg stamps clsid onto s's own property record.
func WriteClassStg(s *Storage, clsid uuid.UUID) error {
	return s.SetClass(clsid)
}

// createOrOverwrite runs create against a name-taken-returning create
// function, overwriting the existing element first when mode carries
// ModeCreate (storage32.c keys this off STGM_CREATE rather than a bool —
// see spec.md §6.3).
func (s *Storage) createOrOverwrite(name string, mode Mode, destroy func(string) error, create func(string) error) error {
	err := create(name)
	if err != nil && errors.Is(err, types.ErrFileAlreadyExists) && mode&ModeCreate != 0 {
		if derr := destroy(name); derr != nil {
			return derr
		}
		err = create(name)
	}
	return err
}

// CreateStream creates a new, empty stream named name. With ModeCreate
// set, an existing stream of that name is overwritten rather than
// rejected.
func (s *Storage) CreateStream(name string, mode Mode) (*Stream, error) {
	var h *Stream
	err := s.createOrOverwrite(name, mode, s.sub.DestroyElement, func(n string) error {
		sh, err := s.sub.CreateStream(n)
		if err != nil {
			return err
		}
		h = &Stream{h: sh}
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return h, nil
}

// OpenStream opens the existing stream named name.
func (s *Storage) OpenStream(name string, mode Mode) (*Stream, error) {
	h, err := s.sub.OpenStream(name)
	if err != nil {
		return nil, mapErr(err)
	}
	return &Stream{h: h}, nil
}

// CreateStorage creates a new, empty nested storage named name. With
// ModeCreate set, an existing storage of that name is overwritten rather
// than rejected.
func (s *Storage) CreateStorage(name string, mode Mode) (*Storage, error) {
	var out *Storage
	err := s.createOrOverwrite(name, mode, s.sub.DestroyElement, func(n string) error {
		sub, err := s.sub.CreateStorage(n)
		if err != nil {
			return err
		}
		out = &Storage{sub: sub, owner: s.owner}
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// OpenStorage opens the existing nested storage named name.
func (s *Storage) OpenStorage(name string, mode Mode) (*Storage, error) {
	sub, err := s.sub.OpenStorage(name)
	if err != nil {
		return nil, mapErr(err)
	}
	return &Storage{sub: sub, owner: s.owner}, nil
}

// DestroyElement recursively destroys the element named name.
func (s *Storage) DestroyElement(name string) error {
	return mapErr(s.sub.DestroyElement(name))
}

// RenameElement renames the child element oldName to newName.
func (s *Storage) RenameElement(oldName, newName string) error {
	return mapErr(s.sub.RenameElement(oldName, newName))
}

// EnumElements returns an Iterator over this storage's direct children.
func (s *Storage) EnumElements() (*Iterator, error) {
	items, err := s.sub.ListElements()
	if err != nil {
		return nil, mapErr(err)
	}
	return &Iterator{items: items}, nil
}

// Stat returns this storage's own property record.
func (s *Storage) Stat(flags StatFlag) (Statstg, error) {
	p, err := s.sub.SelfStat()
	if err != nil {
		return Statstg{}, mapErr(err)
	}
	return statstgFromProperty(p, flags), nil
}

// SetClass stamps clsid onto this storage's own property record.
func (s *Storage) SetClass(clsid uuid.UUID) error {
	return mapErr(s.sub.SetSelfClass(clsid))
}

// Close releases the underlying BigBlockFile. Every Storage descended
// from the same compound file shares the host file, so closing any one
// of them closes it for all.
func (s *Storage) Close() error {
	return s.owner.core.Close()
}

// CopyTo, MoveElementTo, Commit, Revert, SetElementTimes and
// SetStateBits are stubbed per spec.md §6.2 and the Open Question in
// spec.md §9: this engine writes through directly rather than
// shadow-paging, so there is nothing to Commit/Revert, and the element
// mutation methods below are simply not implemented.

func (s *Storage) CopyTo(name string, dest *Storage) error { return ErrNotImplemented }

func (s *Storage) MoveElementTo(name string, dest *Storage) error { return ErrNotImplemented }

func (s *Storage) Commit() error { return ErrNotImplemented }

func (s *Storage) Revert() error { return ErrNotImplemented }

func (s *Storage) SetElementTimes(name string, created, modified int64) error {
	return ErrNotImplemented
}

func (s *Storage) SetStateBits(bits uint32) error { return ErrNotImplemented }

// Stream is an open stream, shaped like an io.ReadWriteSeeker.
type Stream struct {
	h   *storagecore.StreamHandle
	pos int64
}

var _ io.ReadWriteSeeker = (*Stream)(nil)

// Read implements io.Reader, reading up to len(p) bytes from the current
// position and returning io.EOF once the stream's logical end is
// reached.
func (s *Stream) Read(p []byte) (int, error) {
	size, err := s.h.Size()
	if err != nil {
		return 0, mapErr(err)
	}
	if s.pos >= int64(size) {
		return 0, io.EOF
	}
	remaining := int64(size) - s.pos
	toRead := p
	if int64(len(p)) > remaining {
		toRead = p[:remaining]
	}
	n, err := s.h.ReadAt(s.pos, toRead)
	s.pos += int64(n)
	if err != nil {
		return n, mapErr(err)
	}
	if int64(len(toRead)) < int64(len(p)) {
		return n, io.EOF
	}
	return n, nil
}

// Write implements io.Writer, growing the stream as needed.
func (s *Stream) Write(p []byte) (int, error) {
	n, err := s.h.WriteAt(s.pos, p)
	s.pos += int64(n)
	return n, mapErr(err)
}

// Seek implements io.Seeker.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	size, err := s.h.Size()
	if err != nil {
		return 0, mapErr(err)
	}
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = s.pos + offset
	case io.SeekEnd:
		newPos = int64(size) + offset
	default:
		return 0, ErrInvalidArg
	}
	if newPos < 0 {
		return 0, ErrInvalidArg
	}
	s.pos = newPos
	return newPos, nil
}

// SetSize grows or truncates the stream to exactly newSize bytes.
func (s *Stream) SetSize(newSize uint64) error {
	return mapErr(s.h.SetSize(newSize))
}

// Stat returns this stream's property record.
func (s *Stream) Stat(flags StatFlag) (Statstg, error) {
	p, err := s.h.Stat()
	if err != nil {
		return Statstg{}, mapErr(err)
	}
	return statstgFromProperty(p, flags), nil
}
