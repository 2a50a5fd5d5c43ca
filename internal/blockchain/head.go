package blockchain

import (
	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// headAccessor is how a BlockChainStream reads and persists the head of
// its chain, and (when the chain belongs to a property) the property's
// logical byte size. spec.md §4.2 describes two constructions: one keyed
// by an owner property index, one keyed by an in-memory pointer living in
// the file header (the root property-set chain, and the SBD chain).
type headAccessor interface {
	head() (types.BlockID, error)
	setHead(types.BlockID) error

	// size reports the externally-tracked logical size in bytes and
	// whether this chain has one (owner-property chains do; head-holder
	// chains report hasSize=false and GetSize falls back to block count).
	size() (sz uint64, hasSize bool, err error)
	// setSize persists a new logical size, a no-op when hasSize is false.
	setSize(newSize uint64) error
}

// propertyHead is the owner-property-indexed accessor.
type propertyHead struct {
	store interfaces.PropertyStore
	index types.PropertyIndex
}

func newPropertyHead(store interfaces.PropertyStore, index types.PropertyIndex) headAccessor {
	return &propertyHead{store: store, index: index}
}

func (p *propertyHead) head() (types.BlockID, error) {
	prop, err := p.store.ReadProperty(p.index)
	if err != nil {
		return 0, err
	}
	return prop.StartingBlock, nil
}

func (p *propertyHead) setHead(id types.BlockID) error {
	prop, err := p.store.ReadProperty(p.index)
	if err != nil {
		return err
	}
	prop.StartingBlock = id
	return p.store.WriteProperty(p.index, prop)
}

func (p *propertyHead) size() (uint64, bool, error) {
	prop, err := p.store.ReadProperty(p.index)
	if err != nil {
		return 0, false, err
	}
	return prop.Size, true, nil
}

func (p *propertyHead) setSize(newSize uint64) error {
	prop, err := p.store.ReadProperty(p.index)
	if err != nil {
		return err
	}
	prop.Size = newSize
	return p.store.WriteProperty(p.index, prop)
}

// pointerHead is the in-memory-pointer accessor used for the root
// property-set chain (header.RootStartBlock) and the SBD chain
// (header.SBDStart), both of whose heads live in the file header rather
// than in a property record.
type pointerHead struct {
	ptr     *types.BlockID
	persist func() error
}

func newPointerHead(ptr *types.BlockID, persist func() error) headAccessor {
	return &pointerHead{ptr: ptr, persist: persist}
}

func (p *pointerHead) head() (types.BlockID, error) { return *p.ptr, nil }

func (p *pointerHead) setHead(id types.BlockID) error {
	*p.ptr = id
	return p.persist()
}

func (p *pointerHead) size() (uint64, bool, error) { return 0, false, nil }
func (p *pointerHead) setSize(uint64) error        { return nil }
