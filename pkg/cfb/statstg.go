package cfb

import (
	"github.com/deploymenttheory/go-cfb/internal/types"
	"github.com/google/uuid"
)

// StgType discriminates a Statstg's kind, numerically identical to the
// on-disk PropertyType byte so conversions are a plain cast.
type StgType uint32

const (
	StgTypeStorage StgType = StgType(types.PropertyTypeStorage)
	StgTypeStream  StgType = StgType(types.PropertyTypeStream)
	StgTypeRoot    StgType = StgType(types.PropertyTypeRoot)
)

// Statstg describes one directory-tree element, the public counterpart of
// internal/types.Property.
type Statstg struct {
	Name  string
	Type  StgType
	Size  uint64
	CLSID uuid.UUID
}

func statstgFromProperty(p types.Property, flags StatFlag) Statstg {
	st := Statstg{Type: StgType(p.Type), Size: p.Size, CLSID: p.CLSID}
	if flags&StatflagNoname == 0 {
		st.Name = p.Name
	}
	return st
}

// Iterator walks the elements of one storage in ascending name order,
// the public counterpart of internal/enum.Enumerator.
type Iterator struct {
	items []types.Property
	pos   int
}

// Next returns up to n entries, advancing the cursor. A short return
// (fewer than n) means the iterator is exhausted.
func (it *Iterator) Next(n int) []Statstg {
	end := it.pos + n
	if end > len(it.items) {
		end = len(it.items)
	}
	out := make([]Statstg, 0, end-it.pos)
	for _, p := range it.items[it.pos:end] {
		out = append(out, statstgFromProperty(p, 0))
	}
	it.pos = end
	return out
}

// Skip advances the cursor by n entries, reporting whether exactly n
// entries were available to skip.
func (it *Iterator) Skip(n int) bool {
	if it.pos+n > len(it.items) {
		it.pos = len(it.items)
		return false
	}
	it.pos += n
	return true
}

// Reset rewinds the iterator to its first entry.
func (it *Iterator) Reset() { it.pos = 0 }
