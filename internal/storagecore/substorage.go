package storagecore

import "github.com/deploymenttheory/go-cfb/internal/types"

// SubStorage is an open handle onto one storage element (the root, or any
// nested storage reached by OpenStorage/CreateStorage): a non-owning
// back-reference to the Core plus the property index this handle is
// scoped to. Every operation on it is expressed as the matching Core
// method with that index supplied as the parent. Grounded on storage32.c's
// Storage32Impl, which likewise carries no state beyond a pointer back to
// the shared ancestorStorage and its own property index.
type SubStorage struct {
	core  *Core
	index types.PropertyIndex
}

// Index returns the property index this storage handle is scoped to.
func (s *SubStorage) Index() types.PropertyIndex { return s.index }

// OpenStream opens the existing stream named name directly under this
// storage.
func (s *SubStorage) OpenStream(name string) (*StreamHandle, error) {
	return s.core.OpenStream(s.index, name)
}

// OpenStorage opens the existing storage named name directly under this
// storage.
func (s *SubStorage) OpenStorage(name string) (*SubStorage, error) {
	return s.core.OpenStorage(s.index, name)
}

// CreateStream creates a new, empty stream named name directly under
// this storage.
func (s *SubStorage) CreateStream(name string) (*StreamHandle, error) {
	return s.core.CreateStream(s.index, name)
}

// CreateStorage creates a new, empty storage named name directly under
// this storage.
func (s *SubStorage) CreateStorage(name string) (*SubStorage, error) {
	return s.core.CreateStorage(s.index, name)
}

// RenameElement renames the child element oldName to newName.
func (s *SubStorage) RenameElement(oldName, newName string) error {
	return s.core.RenameElement(s.index, oldName, newName)
}

// DestroyElement recursively destroys the child element named name.
func (s *SubStorage) DestroyElement(name string) error {
	return s.core.DestroyElement(s.index, name)
}

// SetClass stamps clsid onto the child element named name.
func (s *SubStorage) SetClass(name string, clsid types.CLSID) error {
	return s.core.SetClass(s.index, name, clsid)
}

// SetSelfClass stamps clsid onto this storage's own property record.
func (s *SubStorage) SetSelfClass(clsid types.CLSID) error {
	if s.core.readOnly {
		return types.ErrReadOnly
	}
	p, err := s.core.properties.ReadProperty(s.index)
	if err != nil {
		return err
	}
	p.CLSID = clsid
	return s.core.properties.WriteProperty(s.index, p)
}

// Stat returns the property record for the child element named name.
func (s *SubStorage) Stat(name string) (types.Property, error) {
	return s.core.Stat(s.index, name)
}

// SelfStat returns the property record for this storage itself.
func (s *SubStorage) SelfStat() (types.Property, error) {
	return s.core.properties.ReadProperty(s.index)
}

// ListElements lists every direct child of this storage, in BST order.
func (s *SubStorage) ListElements() ([]types.Property, error) {
	return s.core.ListElements(s.index)
}
