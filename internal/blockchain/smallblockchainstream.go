package blockchain

import (
	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// miniStreamFile adapts the root's big-block chain (the mini-stream) to
// look like a BigBlockFile whose "blocks" are small blocks, so that the
// Small Block Depot and a BlockChainStream built over it can address the
// mini-stream exactly as if it were the host file itself. spec.md §4.3:
// small blocks live packed inside the mini-stream, which is itself an
// ordinary big-block chain owned by the root property.
type miniStreamFile struct {
	chain          *BlockChainStream
	smallBlockSize int
	bigBlockSize   int
}

var _ interfaces.BigBlockFile = (*miniStreamFile)(nil)

func newMiniStreamFile(chain *BlockChainStream, smallBlockSize, bigBlockSize int) *miniStreamFile {
	return &miniStreamFile{chain: chain, smallBlockSize: smallBlockSize, bigBlockSize: bigBlockSize}
}

// GetSize reports the mini-stream's current length in bytes.
func (m *miniStreamFile) GetSize() (int64, error) {
	sz, err := m.chain.GetSize()
	return int64(sz), err
}

// SetSize grows or shrinks the mini-stream by extending or truncating the
// root's big-block chain. The mini-stream is always a whole number of big
// blocks, so newSize is rounded up to the next bigBlockSize multiple before
// it reaches the root property's recorded Size — mirroring the original's
// "if (rootProp.size.LowPart < blocksRequired * bigBlockSize)" growth check
// (storage32.c) rather than stamping the raw small-block byte requirement.
func (m *miniStreamFile) SetSize(newSize int64) error {
	rounded := int64(ceilDiv(uint64(newSize), uint64(m.bigBlockSize))) * int64(m.bigBlockSize)
	current, err := m.chain.GetSize()
	if err != nil {
		return err
	}
	if rounded <= int64(current) {
		return nil
	}
	return m.chain.SetSize(uint64(rounded))
}

func (m *miniStreamFile) getBlock(index int32, writable bool) (*interfaces.Page, error) {
	buf := make([]byte, m.smallBlockSize)
	off := int64(index) * int64(m.smallBlockSize)
	if _, err := m.chain.ReadAt(off, buf); err != nil {
		return nil, err
	}
	return &interfaces.Page{Index: index, Data: buf, Writable: writable}, nil
}

// GetBlock returns a writable page for the small block at index.
func (m *miniStreamFile) GetBlock(index int32) (*interfaces.Page, error) {
	return m.getBlock(index, true)
}

// GetROBlock returns a read-only page for the small block at index.
func (m *miniStreamFile) GetROBlock(index int32) (*interfaces.Page, error) {
	return m.getBlock(index, false)
}

// Release writes page.Data back into the mini-stream if the page was
// writable.
func (m *miniStreamFile) Release(page *interfaces.Page) error {
	if page == nil || !page.Writable {
		return nil
	}
	off := int64(page.Index) * int64(m.smallBlockSize)
	_, err := m.chain.WriteAt(off, page.Data)
	return err
}

// NewSmallBlockChainStream builds the small-block-chain stream for the
// stream property at ownerIndex. miniStream is the root's big-block chain
// the mini-stream lives in; sbd is the Small Block Depot (see sbd.go),
// itself chained through the host file's BBD. A SmallBlockChainStream is
// structurally identical to a BlockChainStream — a chain of fixed-size
// blocks threaded through a depot — so it is simply a BlockChainStream
// parameterized with the small block size and a file view onto the
// mini-stream rather than the host file.
func NewSmallBlockChainStream(miniStream *BlockChainStream, sbd BlockDepot, smallBlockSize, bigBlockSize int, store interfaces.PropertyStore, ownerIndex types.PropertyIndex) *BlockChainStream {
	return &BlockChainStream{
		file:      newMiniStreamFile(miniStream, smallBlockSize, bigBlockSize),
		bbd:       sbd,
		head:      newPropertyHead(store, ownerIndex),
		blockSize: smallBlockSize,
	}
}
