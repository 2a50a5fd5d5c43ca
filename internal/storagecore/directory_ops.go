package storagecore

import (
	"github.com/deploymenttheory/go-cfb/internal/directory"
	"github.com/deploymenttheory/go-cfb/internal/enum"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// findChild looks up name among parent's direct children, returning
// types.PropertyNull (with a nil error) if there is no such child.
// Grounded on storage32.c's findElement / Storage32BaseImpl_FindProperty.
func (c *Core) findChild(parent types.PropertyIndex, name string) (types.PropertyIndex, error) {
	e, err := enum.New(c.properties, parent)
	if err != nil {
		return types.PropertyNull, err
	}
	return e.FindProperty(name)
}

// OpenStream opens the existing stream named name directly under parent.
func (c *Core) OpenStream(parent types.PropertyIndex, name string) (*StreamHandle, error) {
	idx, err := c.findChild(parent, name)
	if err != nil {
		return nil, err
	}
	if idx == types.PropertyNull {
		return nil, types.ErrFileNotFound
	}
	p, err := c.properties.ReadProperty(idx)
	if err != nil {
		return nil, err
	}
	if p.Type != types.PropertyTypeStream {
		return nil, types.ErrWrongType
	}
	return c.newStreamHandle(idx)
}

// OpenStorage opens the existing storage named name directly under parent.
func (c *Core) OpenStorage(parent types.PropertyIndex, name string) (*SubStorage, error) {
	idx, err := c.findChild(parent, name)
	if err != nil {
		return nil, err
	}
	if idx == types.PropertyNull {
		return nil, types.ErrFileNotFound
	}
	p, err := c.properties.ReadProperty(idx)
	if err != nil {
		return nil, err
	}
	if p.Type != types.PropertyTypeStorage {
		return nil, types.ErrWrongType
	}
	return &SubStorage{core: c, index: idx}, nil
}

// createElement allocates a fresh property named name of kind elementType
// directly under parent and links it into parent's BST. Shared by
// CreateStream and CreateStorage.
func (c *Core) createElement(parent types.PropertyIndex, name string, elementType types.PropertyType) (types.PropertyIndex, error) {
	if c.readOnly {
		return types.PropertyNull, types.ErrReadOnly
	}
	existing, err := c.findChild(parent, name)
	if err != nil {
		return types.PropertyNull, err
	}
	if existing != types.PropertyNull {
		return types.PropertyNull, types.ErrFileAlreadyExists
	}

	idx, err := c.properties.AllocateProperty()
	if err != nil {
		return types.PropertyNull, err
	}
	p := types.NewFreeProperty()
	p.Name = name
	p.Type = elementType
	p.BlockType = types.BlockTypeSmall
	if err := c.properties.WriteProperty(idx, p); err != nil {
		return types.PropertyNull, err
	}
	if err := directory.UpdatePropertyChain(c.properties, parent, idx, name); err != nil {
		return types.PropertyNull, err
	}
	return idx, nil
}

// CreateStream creates a new, empty stream named name directly under
// parent. Returns ErrFileAlreadyExists if parent already has a child of
// that name.
func (c *Core) CreateStream(parent types.PropertyIndex, name string) (*StreamHandle, error) {
	idx, err := c.createElement(parent, name, types.PropertyTypeStream)
	if err != nil {
		return nil, err
	}
	return c.newStreamHandle(idx)
}

// CreateStorage creates a new, empty storage named name directly under
// parent.
func (c *Core) CreateStorage(parent types.PropertyIndex, name string) (*SubStorage, error) {
	idx, err := c.createElement(parent, name, types.PropertyTypeStorage)
	if err != nil {
		return nil, err
	}
	return &SubStorage{core: c, index: idx}, nil
}

// Stat returns the property record for the element named name directly
// under parent.
func (c *Core) Stat(parent types.PropertyIndex, name string) (types.Property, error) {
	idx, err := c.findChild(parent, name)
	if err != nil {
		return types.Property{}, err
	}
	if idx == types.PropertyNull {
		return types.Property{}, types.ErrFileNotFound
	}
	return c.properties.ReadProperty(idx)
}

// SetClass sets the CLSID stamped on the element named name directly
// under parent.
func (c *Core) SetClass(parent types.PropertyIndex, name string, clsid types.CLSID) error {
	if c.readOnly {
		return types.ErrReadOnly
	}
	idx, err := c.findChild(parent, name)
	if err != nil {
		return err
	}
	if idx == types.PropertyNull {
		return types.ErrFileNotFound
	}
	p, err := c.properties.ReadProperty(idx)
	if err != nil {
		return err
	}
	p.CLSID = clsid
	return c.properties.WriteProperty(idx, p)
}

// ListElements returns every direct child of parent's property, in BST
// (ascending NameCmp) order.
func (c *Core) ListElements(parent types.PropertyIndex) ([]types.Property, error) {
	e, err := enum.New(c.properties, parent)
	if err != nil {
		return nil, err
	}
	var out []types.Property
	for {
		batch, err := e.Next(32)
		if err != nil {
			return out, err
		}
		out = append(out, batch...)
		if len(batch) < 32 {
			break
		}
	}
	return out, nil
}

// removeFromChain unlinks childIdx from the BST rooted at parentStorage's
// dir field, wherever in that BST it is actually linked from (the
// storage's own dir field, or some descendant's previous/next link).
func (c *Core) removeFromChain(parentStorage, childIdx types.PropertyIndex) error {
	parent, err := c.properties.ReadProperty(parentStorage)
	if err != nil {
		return err
	}
	child, err := c.properties.ReadProperty(childIdx)
	if err != nil {
		return err
	}
	if parent.Dir == childIdx {
		return directory.AdjustPropertyChain(c.properties, child, parentStorage, directory.RelationDir)
	}

	e, err := enum.New(c.properties, parentStorage)
	if err != nil {
		return err
	}
	linkOwner, relation, err := e.FindParentProperty(childIdx)
	if err != nil {
		return err
	}
	if linkOwner == types.PropertyNull {
		return types.ErrCorruptChain
	}
	return directory.AdjustPropertyChain(c.properties, child, linkOwner, relation)
}

// RenameElement renames the element oldName, directly under parent, to
// newName, re-inserting it into the BST under its new key.
func (c *Core) RenameElement(parent types.PropertyIndex, oldName, newName string) error {
	if c.readOnly {
		return types.ErrReadOnly
	}
	idx, err := c.findChild(parent, oldName)
	if err != nil {
		return err
	}
	if idx == types.PropertyNull {
		return types.ErrFileNotFound
	}
	dup, err := c.findChild(parent, newName)
	if err != nil {
		return err
	}
	if dup != types.PropertyNull && dup != idx {
		return types.ErrFileAlreadyExists
	}

	if err := c.removeFromChain(parent, idx); err != nil {
		return err
	}
	p, err := c.properties.ReadProperty(idx)
	if err != nil {
		return err
	}
	p.Name = newName
	p.Previous = types.PropertyNull
	p.Next = types.PropertyNull
	if err := c.properties.WriteProperty(idx, p); err != nil {
		return err
	}
	return directory.UpdatePropertyChain(c.properties, parent, idx, newName)
}

// destroyContents frees whatever idx itself owns — a stream's block
// chain, or (recursively) a storage's entire subtree — leaving idx's own
// slot still allocated for the caller to unlink and free.
func (c *Core) destroyContents(idx types.PropertyIndex) error {
	p, err := c.properties.ReadProperty(idx)
	if err != nil {
		return err
	}
	switch p.Type {
	case types.PropertyTypeStream:
		h, err := c.newStreamHandle(idx)
		if err != nil {
			return err
		}
		return h.SetSize(0)
	case types.PropertyTypeStorage, types.PropertyTypeRoot:
		for {
			e, err := enum.New(c.properties, idx)
			if err != nil {
				return err
			}
			kids, err := e.Next(1)
			if err != nil {
				return err
			}
			if len(kids) == 0 {
				return nil
			}
			childIdx, err := c.findChild(idx, kids[0].Name)
			if err != nil {
				return err
			}
			if childIdx == types.PropertyNull {
				return types.ErrCorruptChain
			}
			if err := c.destroyContents(childIdx); err != nil {
				return err
			}
			if err := c.removeFromChain(idx, childIdx); err != nil {
				return err
			}
			if err := c.properties.WriteProperty(childIdx, types.NewFreeProperty()); err != nil {
				return err
			}
		}
	}
	return nil
}

// DestroyElement recursively destroys the element named name directly
// under parent — its stream contents, or (for a storage) its entire
// subtree — then unlinks and frees its own property slot.
func (c *Core) DestroyElement(parent types.PropertyIndex, name string) error {
	if c.readOnly {
		return types.ErrReadOnly
	}
	idx, err := c.findChild(parent, name)
	if err != nil {
		return err
	}
	if idx == types.PropertyNull {
		return types.ErrFileNotFound
	}
	if err := c.destroyContents(idx); err != nil {
		return err
	}
	if err := c.removeFromChain(parent, idx); err != nil {
		return err
	}
	return c.properties.WriteProperty(idx, types.NewFreeProperty())
}
