package blockchain

import "github.com/deploymenttheory/go-cfb/internal/types"

// chainedDepot is a depot whose own pages are not self-describing (unlike
// the BBD, which bootstraps itself from the header's inline table and the
// extended-BBD chain): its entries live packed into an ordinary big-block
// chain, headed by header.SBDStart. This is exactly how the real Small
// Block Depot is stored — spec.md §4.3 calls it "a stream like any other,
// just interpreted as a flat array of BlockIDs".
type chainedDepot struct {
	chain *BlockChainStream // the depot's own storage, chained via the BBD
}

// NewSBD returns the Depot that manages the Small Block Depot table,
// backed by chain — a BlockChainStream over the host file headed at
// header.SBDStart.
func NewSBD(chain *BlockChainStream) BlockDepot {
	return &chainedDepot{chain: chain}
}

// Get returns the next-small-block pointer stored for blockIndex.
func (d *chainedDepot) Get(blockIndex types.BlockID) (types.BlockID, error) {
	var buf [4]byte
	if _, err := d.chain.ReadAt(int64(blockIndex)*4, buf[:]); err != nil {
		return 0, err
	}
	return types.ReadBlockID(buf[:], 0), nil
}

// Set stores value as the next-small-block pointer for blockIndex,
// growing the backing chain first if blockIndex falls past its current
// end. A grow stamps every entry of the newly added page(s) BLOCK_UNUSED
// before blockIndex's own slot is overwritten with value, mirroring the
// original's memset of a freshly grown SBD page (storage32.c
// SmallBlockChainStream_GetNextFreeBlock) so AllocateNextFreeBigBlock's
// scan never mistakes a zero-filled raw block for a run of used slots.
func (d *chainedDepot) Set(blockIndex types.BlockID, value types.BlockID) error {
	needed := (int64(blockIndex) + 1) * 4
	sizeBefore, err := d.chain.GetSize()
	if err != nil {
		return err
	}
	if int64(sizeBefore) < needed {
		if err := d.chain.SetSize(uint64(needed)); err != nil {
			return err
		}
		sizeAfter, err := d.chain.GetSize()
		if err != nil {
			return err
		}
		if err := d.fillUnused(int64(sizeBefore), int64(sizeAfter)); err != nil {
			return err
		}
	}
	var buf [4]byte
	types.WriteBlockID(buf[:], 0, value)
	_, err = d.chain.WriteAt(int64(blockIndex)*4, buf[:])
	return err
}

// fillUnused stamps every 4-byte entry in the byte range [from, to) with
// BLOCK_UNUSED.
func (d *chainedDepot) fillUnused(from, to int64) error {
	if to <= from {
		return nil
	}
	buf := make([]byte, to-from)
	for i := 0; i < len(buf); i += 4 {
		types.WriteBlockID(buf, i, types.BlockUnused)
	}
	_, err := d.chain.WriteAt(from, buf)
	return err
}

// AllocateNextFreeBigBlock scans existing entries for the first
// BLOCK_UNUSED slot, appending one more entry (via Set, which grows and
// BLOCK_UNUSED-fills the backing chain as needed) when none is found, and
// returns the allocated small-block index left marked BLOCK_END_OF_CHAIN.
func (d *chainedDepot) AllocateNextFreeBigBlock() (types.BlockID, error) {
	size, err := d.chain.GetSize()
	if err != nil {
		return 0, err
	}
	count := int(size / 4)
	for i := 0; i < count; i++ {
		v, err := d.Get(types.BlockID(i))
		if err != nil {
			return 0, err
		}
		if v == types.BlockUnused {
			if err := d.Set(types.BlockID(i), types.BlockEndOfChain); err != nil {
				return 0, err
			}
			return types.BlockID(i), nil
		}
	}

	idx := types.BlockID(count)
	if err := d.Set(idx, types.BlockEndOfChain); err != nil {
		return 0, err
	}
	return idx, nil
}

// Free marks blockIndex's slot BLOCK_UNUSED.
func (d *chainedDepot) Free(blockIndex types.BlockID) error {
	return d.Set(blockIndex, types.BlockUnused)
}
