package enum

import (
	"testing"

	"github.com/deploymenttheory/go-cfb/internal/directory"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

type fakeStore struct {
	props []types.Property
}

func (s *fakeStore) ReadProperty(index types.PropertyIndex) (types.Property, error) {
	return s.props[index], nil
}

func (s *fakeStore) WriteProperty(index types.PropertyIndex, p types.Property) error {
	s.props[index] = p
	return nil
}

func (s *fakeStore) AllocateProperty() (types.PropertyIndex, error) {
	s.props = append(s.props, types.NewFreeProperty())
	return types.PropertyIndex(len(s.props) - 1), nil
}

// buildTree inserts names one by one via directory.UpdatePropertyChain
// under a synthetic owner property at index 0, returning the store and a
// name->index map.
func buildTree(t *testing.T, names ...string) (*fakeStore, map[string]types.PropertyIndex) {
	t.Helper()
	store := &fakeStore{props: []types.Property{types.NewFreeProperty()}}
	store.props[0].Name = types.RootEntryName
	store.props[0].Type = types.PropertyTypeRoot

	byName := map[string]types.PropertyIndex{}
	for _, name := range names {
		idx, err := store.AllocateProperty()
		if err != nil {
			t.Fatalf("AllocateProperty: %v", err)
		}
		p := types.NewFreeProperty()
		p.Name = name
		p.Type = types.PropertyTypeStream
		if err := store.WriteProperty(idx, p); err != nil {
			t.Fatalf("WriteProperty: %v", err)
		}
		if err := directory.UpdatePropertyChain(store, 0, idx, name); err != nil {
			t.Fatalf("UpdatePropertyChain(%q): %v", name, err)
		}
		byName[name] = idx
	}
	return store, byName
}

func TestEnumeratorNextVisitsInOrder(t *testing.T) {
	store, _ := buildTree(t, "mmm", "aa", "zzzzzzzz", "b")

	e, err := New(store, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var names []string
	for {
		batch, err := e.Next(1)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if len(batch) == 0 {
			break
		}
		names = append(names, batch[0].Name)
	}

	for i := 1; i < len(names); i++ {
		if directory.NameCmp(names[i-1], names[i]) >= 0 {
			t.Fatalf("traversal not ascending: %v", names)
		}
	}
	if len(names) != 4 {
		t.Fatalf("visited %d nodes, want 4: %v", len(names), names)
	}
}

func TestEnumeratorFindProperty(t *testing.T) {
	store, byName := buildTree(t, "alpha", "beta", "gamma")

	e, err := New(store, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.FindProperty("beta")
	if err != nil {
		t.Fatalf("FindProperty: %v", err)
	}
	if got != byName["beta"] {
		t.Fatalf("FindProperty(beta) = %v, want %v", got, byName["beta"])
	}
}

func TestEnumeratorFindPropertyMissReturnsNull(t *testing.T) {
	store, _ := buildTree(t, "alpha")
	e, err := New(store, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.FindProperty("nope")
	if err != nil {
		t.Fatalf("FindProperty: %v", err)
	}
	if got != types.PropertyNull {
		t.Fatalf("FindProperty(nope) = %v, want PropertyNull", got)
	}
}

func TestEnumeratorFindParentProperty(t *testing.T) {
	store, byName := buildTree(t, "mmm", "aa", "zzzzzzzz")

	e, err := New(store, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	parent, relation, err := e.FindParentProperty(byName["aa"])
	if err != nil {
		t.Fatalf("FindParentProperty: %v", err)
	}
	if parent != byName["mmm"] {
		t.Fatalf("FindParentProperty(aa) parent = %v, want mmm (%v)", parent, byName["mmm"])
	}
	if relation != directory.RelationPrevious {
		t.Fatalf("FindParentProperty(aa) relation = %v, want RelationPrevious", relation)
	}
}

func TestEnumeratorSkip(t *testing.T) {
	store, _ := buildTree(t, "a", "b", "c")
	e, err := New(store, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := e.Skip(2)
	if err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if !ok {
		t.Fatalf("Skip(2) = false, want true (3 nodes available)")
	}
	batch, err := e.Next(10)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(batch) != 1 {
		t.Fatalf("Next after Skip(2) returned %d nodes, want 1", len(batch))
	}
}
