package storagecore

import (
	"bytes"
	"testing"

	"github.com/deploymenttheory/go-cfb/internal/types"
)

func newTestCore(t *testing.T) *Core {
	t.Helper()
	file := newMemFile(types.DefaultBigBlockSize)
	c, err := CreateCore(file)
	if err != nil {
		t.Fatalf("CreateCore: %v", err)
	}
	return c
}

func TestCreateCoreRootIsEmpty(t *testing.T) {
	c := newTestCore(t)
	elems, err := c.RootStorage().ListElements()
	if err != nil {
		t.Fatalf("ListElements: %v", err)
	}
	if len(elems) != 0 {
		t.Fatalf("got %d elements on a fresh root, want 0", len(elems))
	}
}

func TestCreateStreamWriteReadStaysSmall(t *testing.T) {
	c := newTestCore(t)
	root := c.RootStorage()

	stream, err := root.CreateStream("data")
	if err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	want := []byte("hello, compound file")
	if _, err := stream.WriteAt(0, want); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if !stream.small {
		t.Fatalf("stream under the mini-stream cutoff should stay small-block")
	}

	got := make([]byte, len(want))
	if _, err := stream.ReadAt(0, got); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("ReadAt = %q, want %q", got, want)
	}

	// Re-opening by name returns an independent handle onto the same bytes.
	reopened, err := root.OpenStream("data")
	if err != nil {
		t.Fatalf("OpenStream: %v", err)
	}
	got2 := make([]byte, len(want))
	if _, err := reopened.ReadAt(0, got2); err != nil {
		t.Fatalf("ReadAt (reopened): %v", err)
	}
	if !bytes.Equal(got2, want) {
		t.Fatalf("reopened ReadAt = %q, want %q", got2, want)
	}
}

func TestStreamMigratesAcrossMiniStreamCutoff(t *testing.T) {
	c := newTestCore(t)
	root := c.RootStorage()

	stream, err := root.CreateStream("big")
	if err != nil {
		t.Fatalf("CreateStream: %v", err)
	}

	big := bytes.Repeat([]byte{0xAB}, int(c.header.MiniStreamCutoff)+500)
	if _, err := stream.WriteAt(0, big); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}
	if stream.small {
		t.Fatalf("stream past the mini-stream cutoff should have migrated to big blocks")
	}

	got := make([]byte, len(big))
	if _, err := stream.ReadAt(0, got); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if !bytes.Equal(got, big) {
		t.Fatalf("content did not survive migration to big blocks")
	}

	// Shrinking back under the cutoff migrates back down to small blocks.
	if err := stream.SetSize(100); err != nil {
		t.Fatalf("SetSize(100): %v", err)
	}
	if !stream.small {
		t.Fatalf("stream shrunk under the cutoff should migrate back to small blocks")
	}
	small := make([]byte, 100)
	if _, err := stream.ReadAt(0, small); err != nil {
		t.Fatalf("ReadAt after shrink: %v", err)
	}
	if !bytes.Equal(small, big[:100]) {
		t.Fatalf("content did not survive migration back to small blocks")
	}
}

func TestCreateStreamDuplicateNameFails(t *testing.T) {
	c := newTestCore(t)
	root := c.RootStorage()
	if _, err := root.CreateStream("dup"); err != nil {
		t.Fatalf("first CreateStream: %v", err)
	}
	if _, err := root.CreateStream("dup"); err != types.ErrFileAlreadyExists {
		t.Fatalf("second CreateStream error = %v, want ErrFileAlreadyExists", err)
	}
}

func TestNestedStorageAndStat(t *testing.T) {
	c := newTestCore(t)
	root := c.RootStorage()

	sub, err := root.CreateStorage("sub")
	if err != nil {
		t.Fatalf("CreateStorage: %v", err)
	}
	if _, err := sub.CreateStream("inner"); err != nil {
		t.Fatalf("CreateStream in sub: %v", err)
	}

	st, err := root.Stat("sub")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if st.Type != types.PropertyTypeStorage {
		t.Fatalf("Stat(sub).Type = %v, want PropertyTypeStorage", st.Type)
	}

	reopened, err := root.OpenStorage("sub")
	if err != nil {
		t.Fatalf("OpenStorage: %v", err)
	}
	elems, err := reopened.ListElements()
	if err != nil {
		t.Fatalf("ListElements: %v", err)
	}
	if len(elems) != 1 || elems[0].Name != "inner" {
		t.Fatalf("ListElements = %+v, want one element named inner", elems)
	}
}

func TestRenameElement(t *testing.T) {
	c := newTestCore(t)
	root := c.RootStorage()
	if _, err := root.CreateStream("old"); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}
	if err := root.RenameElement("old", "new"); err != nil {
		t.Fatalf("RenameElement: %v", err)
	}
	if _, err := root.Stat("old"); err != types.ErrFileNotFound {
		t.Fatalf("Stat(old) after rename = %v, want ErrFileNotFound", err)
	}
	st, err := root.Stat("new")
	if err != nil {
		t.Fatalf("Stat(new): %v", err)
	}
	if st.Name != "new" {
		t.Fatalf("Stat(new).Name = %q, want new", st.Name)
	}
}

func TestDestroyElementRemovesStreamAndStorage(t *testing.T) {
	c := newTestCore(t)
	root := c.RootStorage()

	if _, err := root.CreateStream("s1"); err != nil {
		t.Fatalf("CreateStream s1: %v", err)
	}
	sub, err := root.CreateStorage("s2")
	if err != nil {
		t.Fatalf("CreateStorage s2: %v", err)
	}
	if _, err := sub.CreateStream("child"); err != nil {
		t.Fatalf("CreateStream child: %v", err)
	}
	if _, err := root.CreateStream("s3"); err != nil {
		t.Fatalf("CreateStream s3: %v", err)
	}

	if err := root.DestroyElement("s2"); err != nil {
		t.Fatalf("DestroyElement s2: %v", err)
	}

	elems, err := root.ListElements()
	if err != nil {
		t.Fatalf("ListElements: %v", err)
	}
	names := map[string]bool{}
	for _, e := range elems {
		names[e.Name] = true
	}
	if names["s2"] {
		t.Fatalf("s2 still present after DestroyElement: %+v", elems)
	}
	if !names["s1"] || !names["s3"] {
		t.Fatalf("siblings s1/s3 should survive destroying s2: %+v", elems)
	}
}

func TestOpenCoreRoundTrip(t *testing.T) {
	file := newMemFile(types.DefaultBigBlockSize)
	c, err := CreateCore(file)
	if err != nil {
		t.Fatalf("CreateCore: %v", err)
	}
	if _, err := c.RootStorage().CreateStream("persisted"); err != nil {
		t.Fatalf("CreateStream: %v", err)
	}

	reopened, err := OpenCore(file, false)
	if err != nil {
		t.Fatalf("OpenCore: %v", err)
	}
	if _, err := reopened.RootStorage().OpenStream("persisted"); err != nil {
		t.Fatalf("OpenStream after reopen: %v", err)
	}
}
