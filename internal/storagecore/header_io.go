package storagecore

import (
	"fmt"

	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// CreateCore initializes a brand-new compound file over file (expected to
// be empty) and returns its Core, following the create flow of spec.md
// §4.7 exactly: zeroed header with the magic and defaults, a single BBD
// page at block 0 (self-describing, with the root chain's sole block
// marked used), and a single root property at index 0.
func CreateCore(file interfaces.BigBlockFile) (*Core, error) {
	header := types.NewDefaultHeader()
	bigBlockSize := header.BigBlockSize()

	if err := file.SetSize(int64(3) * int64(bigBlockSize)); err != nil {
		return nil, fmt.Errorf("extending new compound file: %w", err)
	}

	page, err := file.GetBlock(0)
	if err != nil {
		return nil, fmt.Errorf("fetching initial BBD page: %w", err)
	}
	entries := bigBlockSize / 4
	for i := 0; i < entries; i++ {
		types.WriteBlockID(page.Data, i*4, types.BlockUnused)
	}
	types.WriteBlockID(page.Data, 0, types.BlockSpecial)    // block 0: the BBD page itself
	types.WriteBlockID(page.Data, 4, types.BlockEndOfChain) // block 1: the root property chain
	if err := file.Release(page); err != nil {
		return nil, fmt.Errorf("writing initial BBD page: %w", err)
	}

	c := newCore(file, header, false)
	if err := c.PersistHeader(); err != nil {
		return nil, err
	}

	root := types.NewFreeProperty()
	root.Name = types.RootEntryName
	root.Type = types.PropertyTypeRoot
	root.StartingBlock = types.BlockEndOfChain
	if err := c.properties.WriteProperty(types.RootPropertyIndex, root); err != nil {
		return nil, fmt.Errorf("writing root property: %w", err)
	}

	return c, nil
}

// OpenCore loads an existing compound file's header and locates its root
// property, following the open flow of spec.md §4.7: validate the magic,
// then linearly scan the property table for the first live `root`-typed
// entry.
func OpenCore(file interfaces.BigBlockFile, readOnly bool) (*Core, error) {
	headerPage, err := file.GetROBlock(-1)
	if err != nil {
		return nil, fmt.Errorf("reading header block: %w", err)
	}
	header, err := types.ParseHeader(headerPage.Data)
	if relErr := file.Release(headerPage); relErr != nil && err == nil {
		err = relErr
	}
	if err != nil {
		return nil, err
	}

	c := newCore(file, header, readOnly)

	rootIndex, err := findRootProperty(c)
	if err != nil {
		return nil, err
	}
	c.rootIndex = rootIndex
	return c, nil
}

// findRootProperty scans from index 0 for the live root-typed property,
// per spec.md §4.7's open flow.
func findRootProperty(c *Core) (types.PropertyIndex, error) {
	size, err := c.rootChain.GetSize()
	if err != nil {
		return 0, err
	}
	slotCount := int(size) / types.PropertySize
	for i := 0; i < slotCount; i++ {
		idx := types.PropertyIndex(i)
		p, err := c.properties.ReadProperty(idx)
		if err != nil {
			return 0, err
		}
		if p.Name != "" && p.Type == types.PropertyTypeRoot {
			return idx, nil
		}
	}
	return 0, types.ErrInvalidHeader
}
