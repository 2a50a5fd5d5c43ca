// Package storagecore owns the on-disk structures of one open compound
// file: the header, both depots, the root property chain, the
// mini-stream, and the directory operations layered over
// internal/directory and internal/enum. It is the ≈45% of the reference
// implementation spec.md §2 calls "Storage core". pkg/cfb is a thin
// façade over this package; cmd/ never imports it directly.
package storagecore

import (
	"fmt"

	"github.com/deploymenttheory/go-cfb/internal/blockchain"
	"github.com/deploymenttheory/go-cfb/internal/directory"
	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// Core is the root of one open compound file: it exclusively owns the
// host-file adapter and the block-chain structures built on it. Per
// spec.md §5, a Core has exclusive access to both the host file and its
// in-memory state; opening the same file twice concurrently is undefined.
type Core struct {
	file   interfaces.BigBlockFile
	header *types.FileHeader

	bbd *blockchain.Depot
	sbd blockchain.BlockDepot

	sbdChain   *blockchain.BlockChainStream // SBD table, a big-block chain headed at header.SBDStart
	rootChain  *blockchain.BlockChainStream // property table, headed at header.RootStartBlock
	miniStream *blockchain.BlockChainStream // root's mini-stream, owning all small-block contents

	properties *directory.PropertyTable
	rootIndex  types.PropertyIndex

	readOnly bool
}

var _ blockchain.HeaderStore = (*Core)(nil)

// Header implements blockchain.HeaderStore.
func (c *Core) Header() *types.FileHeader { return c.header }

// PersistHeader implements blockchain.HeaderStore: marshals the in-memory
// header and writes it to block −1.
func (c *Core) PersistHeader() error {
	page, err := c.file.GetBlock(-1)
	if err != nil {
		return fmt.Errorf("fetching header block: %w", err)
	}
	copy(page.Data, c.header.Marshal())
	return c.file.Release(page)
}

// newCore wires up the block-chain layers over an already-positioned
// header and host file; shared by Create and Open.
func newCore(file interfaces.BigBlockFile, header *types.FileHeader, readOnly bool) *Core {
	c := &Core{file: file, header: header, readOnly: readOnly, rootIndex: types.RootPropertyIndex}

	bigBlockSize := header.BigBlockSize()
	c.bbd = blockchain.NewBBD(file, c, bigBlockSize)

	c.rootChain = blockchain.NewHeadHolderBlockChainStream(
		file, c.bbd, bigBlockSize, &c.header.RootStartBlock, c.PersistHeader)
	c.properties = directory.NewPropertyTable(c.rootChain)

	c.sbdChain = blockchain.NewHeadHolderBlockChainStream(
		file, c.bbd, bigBlockSize, &c.header.SBDStart, c.PersistHeader)
	c.sbd = blockchain.NewSBD(c.sbdChain)

	c.miniStream = blockchain.NewOwnedBlockChainStream(
		file, c.bbd, bigBlockSize, c.properties, types.RootPropertyIndex)

	return c
}

// Properties exposes the underlying PropertyStore for internal/enum.
func (c *Core) Properties() interfaces.PropertyStore { return c.properties }

// RootStorage returns the SubStorage handle for the compound file's root
// storage.
func (c *Core) RootStorage() *SubStorage {
	return &SubStorage{core: c, index: c.rootIndex}
}

// ReadOnly reports whether this Core was opened with a mode that forbids
// mutation.
func (c *Core) ReadOnly() bool { return c.readOnly }

// Close releases the host-file adapter. Core does not own any other
// closable resource.
func (c *Core) Close() error {
	if closer, ok := c.file.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
