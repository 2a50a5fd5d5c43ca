package storagecore

import (
	"fmt"

	"github.com/deploymenttheory/go-cfb/internal/blockchain"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// StreamHandle is an open stream: a BlockChainStream layered over either
// the host file's big blocks or the mini-stream's small blocks, chosen by
// comparing the property's Size against header.MiniStreamCutoff and
// migrated automatically across that boundary as the stream grows or
// shrinks. spec.md §4.3 fixes the cutoff rule; storage32.c's
// StgStreamImpl handles the same crossing in StgStreamImpl_Read/Write by
// rebuilding BlockChainStream around the other depot.
type StreamHandle struct {
	core  *Core
	index types.PropertyIndex
	chain *blockchain.BlockChainStream
	small bool
}

func (c *Core) newStreamHandle(index types.PropertyIndex) (*StreamHandle, error) {
	p, err := c.properties.ReadProperty(index)
	if err != nil {
		return nil, err
	}
	h := &StreamHandle{core: c, index: index}
	h.small = p.Size < uint64(c.header.MiniStreamCutoff)
	h.chain = c.buildChain(index, h.small)
	return h, nil
}

// buildChain constructs the BlockChainStream representation (big- or
// small-block) for the stream property at index.
func (c *Core) buildChain(index types.PropertyIndex, small bool) *blockchain.BlockChainStream {
	if small {
		return blockchain.NewSmallBlockChainStream(
			c.miniStream, c.sbd, c.header.SmallBlockSize(), c.header.BigBlockSize(), c.properties, index)
	}
	return blockchain.NewOwnedBlockChainStream(
		c.file, c.bbd, c.header.BigBlockSize(), c.properties, index)
}

// Size returns the stream's current logical length in bytes.
func (h *StreamHandle) Size() (uint64, error) {
	return h.chain.GetSize()
}

// Stat returns the full property record backing this stream.
func (h *StreamHandle) Stat() (types.Property, error) {
	return h.core.properties.ReadProperty(h.index)
}

// ReadAt reads len(buf) bytes starting at offset, per spec.md §6.2's
// (*Stream).Read.
func (h *StreamHandle) ReadAt(offset int64, buf []byte) (int, error) {
	return h.chain.ReadAt(offset, buf)
}

// WriteAt writes buf at offset, growing the stream first if offset+len(buf)
// exceeds its current size.
func (h *StreamHandle) WriteAt(offset int64, buf []byte) (int, error) {
	if h.core.readOnly {
		return 0, types.ErrReadOnly
	}
	needed := uint64(offset) + uint64(len(buf))
	size, err := h.chain.GetSize()
	if err != nil {
		return 0, err
	}
	if needed > size {
		if err := h.SetSize(needed); err != nil {
			return 0, err
		}
	}
	return h.chain.WriteAt(offset, buf)
}

// SetSize grows or truncates the stream to exactly newSize bytes,
// migrating between the small-block and big-block representations when
// newSize crosses header.MiniStreamCutoff.
func (h *StreamHandle) SetSize(newSize uint64) error {
	if h.core.readOnly {
		return types.ErrReadOnly
	}
	wantSmall := newSize < uint64(h.core.header.MiniStreamCutoff)
	if wantSmall == h.small {
		return h.chain.SetSize(newSize)
	}
	return h.migrate(wantSmall, newSize)
}

// migrate copies the stream's live bytes out of the current
// representation, rebuilds the chain in the other representation sized to
// newSize, and writes the (possibly truncated) content back in.
func (h *StreamHandle) migrate(wantSmall bool, newSize uint64) error {
	oldSize, err := h.chain.GetSize()
	if err != nil {
		return err
	}
	keep := oldSize
	if newSize < keep {
		keep = newSize
	}
	content := make([]byte, keep)
	if keep > 0 {
		if _, err := h.chain.ReadAt(0, content); err != nil {
			return fmt.Errorf("reading stream content before migration: %w", err)
		}
	}
	if err := h.chain.SetSize(0); err != nil {
		return fmt.Errorf("releasing old stream chain: %w", err)
	}

	h.chain = h.core.buildChain(h.index, wantSmall)
	h.small = wantSmall

	if err := h.chain.SetSize(newSize); err != nil {
		return err
	}
	if len(content) > 0 {
		if _, err := h.chain.WriteAt(0, content); err != nil {
			return err
		}
	}

	p, err := h.core.properties.ReadProperty(h.index)
	if err != nil {
		return err
	}
	if wantSmall {
		p.BlockType = types.BlockTypeSmall
	} else {
		p.BlockType = types.BlockTypeBig
	}
	return h.core.properties.WriteProperty(h.index, p)
}
