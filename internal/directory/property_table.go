package directory

import (
	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

var _ interfaces.PropertyStore = (*PropertyTable)(nil)

// chainReadWriter is the slice of BlockChainStream that PropertyTable
// needs: random-access bytes plus the ability to grow.
type chainReadWriter interface {
	ReadAt(offset int64, buf []byte) (int, error)
	WriteAt(offset int64, buf []byte) (int, error)
	SetSize(newSize uint64) error
	GetSize() (uint64, error)
}

// PropertyTable is the property (directory entry) table: a packed array
// of fixed-size records carried by the root BlockChain, addressed as
// offset = index*PropertySize. Grounded on storage32.c's
// Storage32Impl_ReadProperty/WriteProperty/getFreeProperty.
type PropertyTable struct {
	chain chainReadWriter
}

// NewPropertyTable wraps chain — the root property chain (a
// BlockChainStream headed at header.RootStartBlock) — as a PropertyTable.
func NewPropertyTable(chain chainReadWriter) *PropertyTable {
	return &PropertyTable{chain: chain}
}

// ReadProperty reads and decodes the record at index.
func (t *PropertyTable) ReadProperty(index types.PropertyIndex) (types.Property, error) {
	buf := make([]byte, types.PropertySize)
	if _, err := t.chain.ReadAt(int64(index)*types.PropertySize, buf); err != nil {
		return types.Property{}, err
	}
	return types.ParsePropertyRecord(buf)
}

// WriteProperty encodes and writes p at index, growing the chain first if
// index falls past its current end.
func (t *PropertyTable) WriteProperty(index types.PropertyIndex, p types.Property) error {
	needed := (int64(index) + 1) * types.PropertySize
	size, err := t.chain.GetSize()
	if err != nil {
		return err
	}
	if int64(size) < needed {
		if err := t.chain.SetSize(uint64(needed)); err != nil {
			return err
		}
	}
	buf, err := p.Marshal()
	if err != nil {
		return err
	}
	_, err = t.chain.WriteAt(int64(index)*types.PropertySize, buf)
	return err
}

// AllocateProperty linearly probes slots 0, 1, 2, … for the first whose
// nameLen is 0 (IsFree). Running off the chain's current end grows it by
// one big block's worth of fresh, zeroed property slots and returns the
// first of those.
func (t *PropertyTable) AllocateProperty() (types.PropertyIndex, error) {
	size, err := t.chain.GetSize()
	if err != nil {
		return 0, err
	}
	slotCount := int64(size) / types.PropertySize

	for i := int64(0); i < slotCount; i++ {
		p, err := t.ReadProperty(types.PropertyIndex(i))
		if err != nil {
			return 0, err
		}
		if p.IsFree() {
			return types.PropertyIndex(i), nil
		}
	}

	// Grow by one big block's worth of slots (the chain rounds SetSize up
	// to a whole-block boundary on its own; we just ask for one more slot
	// past the current end and let that growth happen).
	newIndex := types.PropertyIndex(slotCount)
	if err := t.WriteProperty(newIndex, types.NewFreeProperty()); err != nil {
		return 0, err
	}
	return newIndex, nil
}
