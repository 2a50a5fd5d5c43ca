package directory

import (
	"testing"

	"github.com/deploymenttheory/go-cfb/internal/types"
)

// memChain is a minimal in-memory chainReadWriter for property table tests.
type memChain struct{ data []byte }

func (c *memChain) ReadAt(offset int64, buf []byte) (int, error) {
	n := copy(buf, c.data[offset:])
	return n, nil
}

func (c *memChain) WriteAt(offset int64, buf []byte) (int, error) {
	return copy(c.data[offset:], buf), nil
}

func (c *memChain) SetSize(newSize uint64) error {
	grown := make([]byte, newSize)
	copy(grown, c.data)
	c.data = grown
	return nil
}

func (c *memChain) GetSize() (uint64, error) { return uint64(len(c.data)), nil }

func TestPropertyTableWriteReadRoundTrip(t *testing.T) {
	chain := &memChain{}
	table := NewPropertyTable(chain)

	p := types.NewFreeProperty()
	p.Name = "hello"
	p.Type = types.PropertyTypeStream
	p.Size = 42

	if err := table.WriteProperty(3, p); err != nil {
		t.Fatalf("WriteProperty: %v", err)
	}
	got, err := table.ReadProperty(3)
	if err != nil {
		t.Fatalf("ReadProperty: %v", err)
	}
	if got.Name != "hello" || got.Type != types.PropertyTypeStream || got.Size != 42 {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestPropertyTableAllocateFindsFreeSlotThenGrows(t *testing.T) {
	chain := &memChain{}
	table := NewPropertyTable(chain)

	first, err := table.AllocateProperty()
	if err != nil {
		t.Fatalf("AllocateProperty: %v", err)
	}
	if first != 0 {
		t.Fatalf("first AllocateProperty() = %v, want 0", first)
	}

	p := types.NewFreeProperty()
	p.Name = "taken"
	p.Type = types.PropertyTypeStream
	if err := table.WriteProperty(first, p); err != nil {
		t.Fatalf("WriteProperty: %v", err)
	}

	second, err := table.AllocateProperty()
	if err != nil {
		t.Fatalf("AllocateProperty: %v", err)
	}
	if second == first {
		t.Fatalf("second AllocateProperty() reused the occupied slot %v", first)
	}
}
