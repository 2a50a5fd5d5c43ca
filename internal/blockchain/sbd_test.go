package blockchain

import (
	"bytes"
	"testing"

	"github.com/deploymenttheory/go-cfb/internal/types"
)

func TestSmallBlockChainStreamRoundTrip(t *testing.T) {
	d, f, _ := newFreshDepot(t)

	store := &fakePropertyStore{props: []types.Property{
		types.NewFreeProperty(), // 0: root (owns the mini-stream)
		types.NewFreeProperty(), // 1: a small stream
	}}
	store.props[0].Name = types.RootEntryName
	store.props[0].Type = types.PropertyTypeRoot
	store.props[1].Name = "tiny"
	store.props[1].Type = types.PropertyTypeStream
	store.props[1].BlockType = types.BlockTypeSmall

	miniStream := NewOwnedBlockChainStream(f, d, 512, store, 0)

	var sbdHead types.BlockID = types.BlockEndOfChain
	sbdChain := NewHeadHolderBlockChainStream(f, d, 512, &sbdHead, func() error { return nil })
	sbd := NewSBD(sbdChain)

	small := NewSmallBlockChainStream(miniStream, sbd, 64, 512, store, 1)

	if err := small.SetSize(100); err != nil {
		t.Fatalf("SetSize(100): %v", err)
	}
	count, err := small.GetCount()
	if err != nil {
		t.Fatalf("GetCount: %v", err)
	}
	if count != 2 { // ceil(100/64)
		t.Fatalf("GetCount() = %d, want 2", count)
	}

	payload := bytes.Repeat([]byte{0xCD}, 90)
	if n, err := small.WriteAt(5, payload); err != nil || n != len(payload) {
		t.Fatalf("WriteAt: n=%d err=%v", n, err)
	}
	readBack := make([]byte, len(payload))
	if n, err := small.ReadAt(5, readBack); err != nil || n != len(readBack) {
		t.Fatalf("ReadAt: n=%d err=%v", n, err)
	}
	if !bytes.Equal(readBack, payload) {
		t.Fatalf("ReadAt did not round-trip across the small-block boundary")
	}

	miniSize, err := miniStream.GetSize()
	if err != nil {
		t.Fatalf("miniStream.GetSize: %v", err)
	}
	if miniSize == 0 {
		t.Fatalf("mini-stream should have grown to hold the small blocks")
	}
	if miniSize != 512 {
		t.Fatalf("mini-stream size = %d, want exactly one big block (512)", miniSize)
	}
	rootProp, err := store.ReadProperty(0)
	if err != nil {
		t.Fatalf("ReadProperty(root): %v", err)
	}
	if rootProp.Size != 512 {
		t.Fatalf("root property Size = %d, want 512 (rounded to a big-block multiple)", rootProp.Size)
	}
}
