package blockchain

import (
	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// BlockDepot is the FAT-style next-block lookup a BlockChainStream walks.
// *Depot implements it directly for the Big Block Depot; the Small Block
// Depot implements it via chainedDepot (sbd.go), since unlike the BBD it
// has no self-describing header table of its own and is just an ordinary
// big-block chain holding 4-byte entries.
type BlockDepot interface {
	Get(types.BlockID) (types.BlockID, error)
	Set(types.BlockID, types.BlockID) error
	AllocateNextFreeBigBlock() (types.BlockID, error)
	Free(types.BlockID) error
}

// BlockChainStream is a logical byte stream layered over a linked list of
// fixed-size blocks chained through a depot. See spec.md §4.2. The same
// type serves both the big-block streams (depot = the BBD, file = the
// host file) and the small-block streams (depot = the SBD, file = a view
// onto the mini-stream); see smallblockchainstream.go.
type BlockChainStream struct {
	file interfaces.BigBlockFile
	bbd  BlockDepot
	head headAccessor

	blockSize int
}

// NewOwnedBlockChainStream builds a BlockChainStream whose head is the
// StartingBlock field of the property at ownerIndex, and whose length is
// reported from that property's Size field.
func NewOwnedBlockChainStream(file interfaces.BigBlockFile, bbd *Depot, bigBlockSize int, store interfaces.PropertyStore, ownerIndex types.PropertyIndex) *BlockChainStream {
	return &BlockChainStream{
		file:      file,
		bbd:       bbd,
		head:      newPropertyHead(store, ownerIndex),
		blockSize: bigBlockSize,
	}
}

// NewHeadHolderBlockChainStream builds a BlockChainStream whose head lives
// in an in-memory BlockID (a file-header field) rather than a property.
// persist flushes the header after the pointer is mutated.
func NewHeadHolderBlockChainStream(file interfaces.BigBlockFile, bbd *Depot, bigBlockSize int, headPtr *types.BlockID, persist func() error) *BlockChainStream {
	return &BlockChainStream{
		file:      file,
		bbd:       bbd,
		head:      newPointerHead(headPtr, persist),
		blockSize: bigBlockSize,
	}
}

// blockAt walks the chain to the blockNo-th block (0-indexed) and returns
// its block index. Walking past BLOCK_END_OF_CHAIN before reaching blockNo
// returns ErrCorruptChain.
func (s *BlockChainStream) blockAt(blockNo int) (types.BlockID, error) {
	cur, err := s.head.head()
	if err != nil {
		return 0, err
	}
	for i := 0; i < blockNo; i++ {
		if cur == types.BlockEndOfChain || cur == types.BlockUnused {
			return 0, types.ErrCorruptChain
		}
		cur, err = s.bbd.Get(cur)
		if err != nil {
			return 0, err
		}
	}
	if cur == types.BlockEndOfChain || cur == types.BlockUnused {
		return 0, types.ErrCorruptChain
	}
	return cur, nil
}

// GetCount walks the entire chain and returns its length in blocks.
func (s *BlockChainStream) GetCount() (int, error) {
	cur, err := s.head.head()
	if err != nil {
		return 0, err
	}
	count := 0
	for cur != types.BlockEndOfChain {
		if cur == types.BlockUnused {
			return 0, types.ErrCorruptChain
		}
		count++
		cur, err = s.bbd.Get(cur)
		if err != nil {
			return 0, err
		}
	}
	return count, nil
}

// GetSize returns the owner property's stored size when this chain
// belongs to one, otherwise GetCount()*blockSize.
func (s *BlockChainStream) GetSize() (uint64, error) {
	if sz, has, err := s.head.size(); err != nil {
		return 0, err
	} else if has {
		return sz, nil
	}
	count, err := s.GetCount()
	if err != nil {
		return 0, err
	}
	return uint64(count) * uint64(s.blockSize), nil
}

// ReadAt copies up to len(buf) bytes starting at offset into buf,
// returning the number of bytes actually read. A short read (the chain
// ends before offset+len(buf)) still returns the partial count alongside
// ErrShortRead.
func (s *BlockChainStream) ReadAt(offset int64, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	blockNo := int(offset / int64(s.blockSize))
	offInBlock := int(offset % int64(s.blockSize))

	read := 0
	for read < len(buf) {
		blockIdx, err := s.blockAt(blockNo)
		if err != nil {
			return read, err
		}
		page, err := s.file.GetROBlock(int32(blockIdx))
		if err != nil {
			return read, err
		}
		n := copy(buf[read:], page.Data[offInBlock:])
		if err := s.file.Release(page); err != nil {
			return read, err
		}
		read += n
		offInBlock = 0
		blockNo++
	}
	return read, nil
}

// WriteAt copies buf into the chain starting at offset, returning the
// number of bytes written. It never grows the chain; callers must call
// SetSize first to ensure offset+len(buf) is covered.
func (s *BlockChainStream) WriteAt(offset int64, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	blockNo := int(offset / int64(s.blockSize))
	offInBlock := int(offset % int64(s.blockSize))

	written := 0
	for written < len(buf) {
		blockIdx, err := s.blockAt(blockNo)
		if err != nil {
			return written, err
		}
		page, err := s.file.GetBlock(int32(blockIdx))
		if err != nil {
			return written, err
		}
		n := copy(page.Data[offInBlock:], buf[written:])
		if err := s.file.Release(page); err != nil {
			return written, err
		}
		written += n
		offInBlock = 0
		blockNo++
	}
	return written, nil
}

// SetSize grows or shrinks the chain to hold exactly newSize bytes' worth
// of blocks (ceil(newSize/blockSize) blocks), per spec.md §4.2.
func (s *BlockChainStream) SetSize(newSize uint64) error {
	oldCount, err := s.GetCount()
	if err != nil {
		return err
	}
	newCount := ceilDiv(newSize, uint64(s.blockSize))

	switch {
	case newCount == oldCount:
		// no-op on block count, but the logical size may still differ.
	case newCount < oldCount:
		if err := s.shrink(newCount); err != nil {
			return err
		}
	default:
		if err := s.enlarge(oldCount, newCount); err != nil {
			return err
		}
	}
	return s.head.setSize(newSize)
}

func ceilDiv(a, b uint64) int {
	if a == 0 {
		return 0
	}
	return int((a + b - 1) / b)
}

// shrink walks to the last block to keep, marks it END_OF_CHAIN, and frees
// every block after it.
func (s *BlockChainStream) shrink(keep int) error {
	if keep == 0 {
		head, err := s.head.head()
		if err != nil {
			return err
		}
		if head == types.BlockEndOfChain {
			return nil
		}
		if err := s.freeChainFrom(head); err != nil {
			return err
		}
		return s.head.setHead(types.BlockEndOfChain)
	}

	lastKept, err := s.blockAt(keep - 1)
	if err != nil {
		return err
	}
	next, err := s.bbd.Get(lastKept)
	if err != nil {
		return err
	}
	if next == types.BlockEndOfChain {
		return nil
	}
	if err := s.freeChainFrom(next); err != nil {
		return err
	}
	return s.bbd.Set(lastKept, types.BlockEndOfChain)
}

func (s *BlockChainStream) freeChainFrom(start types.BlockID) error {
	cur := start
	for cur != types.BlockEndOfChain {
		next, err := s.bbd.Get(cur)
		if err != nil {
			return err
		}
		if err := s.bbd.Free(cur); err != nil {
			return err
		}
		cur = next
	}
	return nil
}

// enlarge appends newCount-oldCount freshly allocated blocks to the tail
// of the chain (or allocates the first block if the chain is empty),
// extending the host file first.
func (s *BlockChainStream) enlarge(oldCount, newCount int) error {
	size, err := s.file.GetSize()
	if err != nil {
		return err
	}
	needed := int64(newCount-oldCount) * int64(s.blockSize)
	if needed > 0 && size < size+needed {
		if err := s.file.SetSize(size + needed); err != nil {
			return err
		}
	}

	if oldCount == 0 {
		first, err := s.bbd.AllocateNextFreeBigBlock()
		if err != nil {
			return err
		}
		if err := s.bbd.Set(first, types.BlockEndOfChain); err != nil {
			return err
		}
		if err := s.head.setHead(first); err != nil {
			return err
		}
		oldCount = 1
	}

	tail, err := s.blockAt(oldCount - 1)
	if err != nil {
		return err
	}
	for i := oldCount; i < newCount; i++ {
		next, err := s.bbd.AllocateNextFreeBigBlock()
		if err != nil {
			return err
		}
		if err := s.bbd.Set(next, types.BlockEndOfChain); err != nil {
			return err
		}
		if err := s.bbd.Set(tail, next); err != nil {
			return err
		}
		tail = next
	}
	return nil
}
