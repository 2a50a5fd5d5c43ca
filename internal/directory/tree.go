package directory

import (
	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// Relation identifies which of a parent property's three links pointed at
// a given child, used when repairing the BST after a deletion.
type Relation int

const (
	RelationPrevious Relation = iota
	RelationNext
	RelationDir
)

// UpdatePropertyChain inserts newIndex into the BST rooted at the dir
// field of the property at ownerIndex (the directory the new element
// belongs to). If the directory is currently empty, the new node becomes
// its subtree root; otherwise the insertion point is found by descending
// via NameCmp, exactly as storage32.c's updatePropertyChain does.
// Equal keys must never occur; the caller is responsible for rejecting
// duplicate names before calling this.
func UpdatePropertyChain(store interfaces.PropertyStore, ownerIndex types.PropertyIndex, newIndex types.PropertyIndex, newName string) error {
	owner, err := store.ReadProperty(ownerIndex)
	if err != nil {
		return err
	}

	if owner.Dir == types.PropertyNull {
		owner.Dir = newIndex
		return store.WriteProperty(ownerIndex, owner)
	}

	current := owner.Dir
	for {
		cur, err := store.ReadProperty(current)
		if err != nil {
			return err
		}
		diff := NameCmp(newName, cur.Name)
		if diff < 0 {
			if cur.Previous != types.PropertyNull {
				current = cur.Previous
				continue
			}
			cur.Previous = newIndex
			return store.WriteProperty(current, cur)
		}
		if cur.Next != types.PropertyNull {
			current = cur.Next
			continue
		}
		cur.Next = newIndex
		return store.WriteProperty(current, cur)
	}
}

// findPlaceholder descends storeFrom's relation link until it finds
// PropertyNull, then links toStore there. Grounded on storage32.c's
// findPlaceholder.
func findPlaceholder(store interfaces.PropertyStore, toStore types.PropertyIndex, storeFrom types.PropertyIndex, relation Relation) error {
	p, err := store.ReadProperty(storeFrom)
	if err != nil {
		return err
	}

	switch relation {
	case RelationPrevious:
		if p.Previous != types.PropertyNull {
			return findPlaceholder(store, toStore, p.Previous, relation)
		}
		p.Previous = toStore
	case RelationNext:
		if p.Next != types.PropertyNull {
			return findPlaceholder(store, toStore, p.Next, relation)
		}
		p.Next = toStore
	case RelationDir:
		if p.Dir != types.PropertyNull {
			return findPlaceholder(store, toStore, p.Dir, relation)
		}
		p.Dir = toStore
	}
	return store.WriteProperty(storeFrom, p)
}

// AdjustPropertyChain repairs the BST after deleting toDelete, whose
// parent is at parentIndex and which was linked from the parent via
// relation. Grounded on storage32.c's adjustPropertyChain.
func AdjustPropertyChain(store interfaces.PropertyStore, toDelete types.Property, parentIndex types.PropertyIndex, relation Relation) error {
	parent, err := store.ReadProperty(parentIndex)
	if err != nil {
		return err
	}

	prev, next := toDelete.Previous, toDelete.Next
	var newLink types.PropertyIndex = types.PropertyNull
	needPlaceholder := false

	switch {
	case prev != types.PropertyNull && next != types.PropertyNull:
		newLink = prev
		needPlaceholder = true
	case prev != types.PropertyNull:
		newLink = prev
	case next != types.PropertyNull:
		newLink = next
	}

	switch relation {
	case RelationPrevious:
		parent.Previous = newLink
	case RelationNext:
		parent.Next = newLink
	case RelationDir:
		parent.Dir = newLink
	}
	if err := store.WriteProperty(parentIndex, parent); err != nil {
		return err
	}

	if needPlaceholder {
		return findPlaceholder(store, next, prev, RelationNext)
	}
	return nil
}
