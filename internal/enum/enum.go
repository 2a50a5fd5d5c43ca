// Package enum implements the IEnumSTATSTG-style in-order traversal of a
// storage's property BST: an explicit, resumable visit stack rather than
// recursion, so Next can be called incrementally. See spec.md §4.6.
package enum

import (
	"github.com/deploymenttheory/go-cfb/internal/directory"
	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// initialStackCapacity is the stack's starting size; it doubles whenever
// a push would overflow it. Grounded on storage32.c's
// ENUMSTATSGT_SIZE_INCREMENT-based growth (there a fixed increment, here a
// doubling growth — an idiomatic Go slice-append substitutes for the
// original's HeapReAlloc-by-fixed-increment).
const initialStackCapacity = 10

// Enumerator performs an in-order walk of the BST rooted at a storage
// property's dir field, using an explicit stack of property indices so
// traversal can be paused and resumed across Next calls.
type Enumerator struct {
	store    interfaces.PropertyStore
	rootNode types.PropertyIndex // the storage property being enumerated
	stack    []types.PropertyIndex
}

// New builds an Enumerator over the storage property at rootNode and
// immediately primes the stack via Reset.
func New(store interfaces.PropertyStore, rootNode types.PropertyIndex) (*Enumerator, error) {
	e := &Enumerator{
		store:    store,
		rootNode: rootNode,
		stack:    make([]types.PropertyIndex, 0, initialStackCapacity),
	}
	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset empties the stack and primes it with the storage's dir subtree.
func (e *Enumerator) Reset() error {
	e.stack = e.stack[:0]
	root, err := e.store.ReadProperty(e.rootNode)
	if err != nil {
		return err
	}
	return e.pushSearchNode(root.Dir)
}

// pushSearchNode pushes idx and then walks its entire left spine (the
// previousProperty chain), pushing each node along the way — the standard
// iterative in-order traversal setup. A PropertyNull idx is a no-op.
func (e *Enumerator) pushSearchNode(idx types.PropertyIndex) error {
	if idx == types.PropertyNull {
		return nil
	}
	if len(e.stack) == cap(e.stack) {
		grown := make([]types.PropertyIndex, len(e.stack), cap(e.stack)*2)
		copy(grown, e.stack)
		e.stack = grown
	}
	e.stack = append(e.stack, idx)

	p, err := e.store.ReadProperty(idx)
	if err != nil {
		return err
	}
	return e.pushSearchNode(p.Previous)
}

// popSearchNode peeks (remove=false) or pops (remove=true) the stack top,
// returning PropertyNull when empty.
func (e *Enumerator) popSearchNode(remove bool) types.PropertyIndex {
	if len(e.stack) == 0 {
		return types.PropertyNull
	}
	top := e.stack[len(e.stack)-1]
	if remove {
		e.stack = e.stack[:len(e.stack)-1]
	}
	return top
}

// Next returns up to want entries in ascending BST order, and how many
// were actually produced. A short count (got < want) means the traversal
// is exhausted.
func (e *Enumerator) Next(want int) ([]types.Property, error) {
	out := make([]types.Property, 0, want)
	for len(out) < want {
		idx := e.popSearchNode(true)
		if idx == types.PropertyNull {
			break
		}
		p, err := e.store.ReadProperty(idx)
		if err != nil {
			return out, err
		}
		out = append(out, p)
		if err := e.pushSearchNode(p.Next); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Skip advances the traversal by count nodes without copying them out,
// reporting whether exactly count nodes were available to skip.
func (e *Enumerator) Skip(count int) (bool, error) {
	skipped := 0
	for skipped < count {
		idx := e.popSearchNode(true)
		if idx == types.PropertyNull {
			break
		}
		p, err := e.store.ReadProperty(idx)
		if err != nil {
			return false, err
		}
		skipped++
		if err := e.pushSearchNode(p.Next); err != nil {
			return false, err
		}
	}
	return skipped == count, nil
}

// Clone returns an independent Enumerator over the same storage property
// with an identical copy of the current stack, so further traversal on
// either does not affect the other.
func (e *Enumerator) Clone() *Enumerator {
	stack := make([]types.PropertyIndex, len(e.stack))
	copy(stack, e.stack)
	return &Enumerator{store: e.store, rootNode: e.rootNode, stack: stack}
}

// FindProperty walks the remaining traversal for a property named name,
// returning its index or PropertyNull if exhausted without a match. The
// walk consumes the stack, matching storage32.c's FindProperty (callers
// build a fresh Enumerator per lookup).
func (e *Enumerator) FindProperty(name string) (types.PropertyIndex, error) {
	for {
		idx := e.popSearchNode(true)
		if idx == types.PropertyNull {
			return types.PropertyNull, nil
		}
		p, err := e.store.ReadProperty(idx)
		if err != nil {
			return types.PropertyNull, err
		}
		if directory.NameCmp(p.Name, name) == 0 {
			return idx, nil
		}
		if err := e.pushSearchNode(p.Next); err != nil {
			return types.PropertyNull, err
		}
	}
}

// FindParentProperty walks the remaining traversal looking for whichever
// visited node has a link (previous, next, or dir) pointing at childIdx,
// returning that node's index and which link it was. Returns
// (PropertyNull, 0, nil) if exhausted without a match.
func (e *Enumerator) FindParentProperty(childIdx types.PropertyIndex) (types.PropertyIndex, directory.Relation, error) {
	for {
		idx := e.popSearchNode(true)
		if idx == types.PropertyNull {
			return types.PropertyNull, 0, nil
		}
		p, err := e.store.ReadProperty(idx)
		if err != nil {
			return types.PropertyNull, 0, err
		}
		switch childIdx {
		case p.Previous:
			return idx, directory.RelationPrevious, nil
		case p.Next:
			return idx, directory.RelationNext, nil
		case p.Dir:
			return idx, directory.RelationDir, nil
		}
		if err := e.pushSearchNode(p.Next); err != nil {
			return types.PropertyNull, 0, err
		}
	}
}
