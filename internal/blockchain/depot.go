// Package blockchain implements the big-block and small-block chain
// layers (spec.md §4.2, §4.3): BlockChainStream, SmallBlockChainStream,
// and the FAT-style depots (BBD, SBD) both are built on.
package blockchain

import (
	"github.com/deploymenttheory/go-cfb/internal/interfaces"
	"github.com/deploymenttheory/go-cfb/internal/types"
)

// HeaderStore is the minimal surface the depot needs from whoever owns
// the file header (internal/storagecore): read access to mutate the BBD
// page table in place, and a way to persist those mutations back to the
// header block.
type HeaderStore interface {
	Header() *types.FileHeader
	PersistHeader() error
}

// Depot manages one FAT-style next-block table: the Big Block Depot when
// built over the host file directly, or the Small Block Depot when built
// over the mini-stream (in which case file is a BlockChainStream wearing
// the BigBlockFile-shaped adapter in smallblockchainstream.go).
type Depot struct {
	file         interfaces.BigBlockFile
	header       HeaderStore
	bigBlockSize int
}

// NewBBD returns a Depot over the container's Big Block Depot.
func NewBBD(file interfaces.BigBlockFile, header HeaderStore, bigBlockSize int) *Depot {
	return &Depot{file: file, header: header, bigBlockSize: bigBlockSize}
}

func (d *Depot) entriesPerPage() int {
	return d.bigBlockSize / 4
}

// pageBlockIndex returns the big-block index that holds BBD page
// pageIndex, following the header's inline table for the first
// CountBBDepotInHeader pages and the extended-BBD chain beyond that.
func (d *Depot) pageBlockIndex(pageIndex int) (int32, error) {
	h := d.header.Header()
	if pageIndex < types.CountBBDepotInHeader {
		id := h.BBDStart[pageIndex]
		if id == types.BlockEndOfChain || id == types.BlockUnused {
			return 0, types.ErrCorruptDepot
		}
		return int32(id), nil
	}

	entriesPerExtPage := d.entriesPerPage() - 1 // last slot is the next-ext-page pointer
	extIndex := pageIndex - types.CountBBDepotInHeader
	extPageNo := extIndex / entriesPerExtPage
	offsetInExtPage := extIndex % entriesPerExtPage

	chainBlock := h.ExtBBDStart
	for i := 0; i < extPageNo; i++ {
		if chainBlock == types.BlockEndOfChain {
			return 0, types.ErrCorruptDepot
		}
		next, err := d.readExtNext(chainBlock)
		if err != nil {
			return 0, err
		}
		chainBlock = next
	}
	if chainBlock == types.BlockEndOfChain {
		return 0, types.ErrCorruptDepot
	}

	page, err := d.file.GetROBlock(int32(chainBlock))
	if err != nil {
		return 0, err
	}
	defer d.file.Release(page)
	return int32(types.ReadBlockID(page.Data, offsetInExtPage*4)), nil
}

func (d *Depot) readExtNext(extBlock types.BlockID) (types.BlockID, error) {
	page, err := d.file.GetROBlock(int32(extBlock))
	if err != nil {
		return 0, err
	}
	defer d.file.Release(page)
	lastSlot := (d.entriesPerPage() - 1) * 4
	return types.ReadBlockID(page.Data, lastSlot), nil
}

// Get returns the next-block pointer stored for blockIndex.
func (d *Depot) Get(blockIndex types.BlockID) (types.BlockID, error) {
	entries := d.entriesPerPage()
	pageIndex := int(blockIndex) / entries
	offset := (int(blockIndex) % entries) * 4

	pageBlock, err := d.pageBlockIndex(pageIndex)
	if err != nil {
		return 0, err
	}
	page, err := d.file.GetROBlock(pageBlock)
	if err != nil {
		return 0, err
	}
	defer d.file.Release(page)
	return types.ReadBlockID(page.Data, offset), nil
}

// Set stores value as the next-block pointer for blockIndex.
func (d *Depot) Set(blockIndex types.BlockID, value types.BlockID) error {
	entries := d.entriesPerPage()
	pageIndex := int(blockIndex) / entries
	offset := (int(blockIndex) % entries) * 4

	pageBlock, err := d.pageBlockIndex(pageIndex)
	if err != nil {
		return err
	}
	page, err := d.file.GetBlock(pageBlock)
	if err != nil {
		return err
	}
	types.WriteBlockID(page.Data, offset, value)
	return d.file.Release(page)
}

// AllocateNextFreeBigBlock scans depot pages in order for the first
// BLOCK_UNUSED slot, growing the depot (and the host file) by one page
// when none is found, and returns the allocated block's index. The
// returned slot is left marked BLOCK_END_OF_CHAIN; callers that append it
// to an existing chain overwrite that as needed.
func (d *Depot) AllocateNextFreeBigBlock() (types.BlockID, error) {
	h := d.header.Header()
	entries := d.entriesPerPage()
	totalPages := int(h.BBDCount)

	for pageIndex := 0; pageIndex < totalPages; pageIndex++ {
		pageBlock, err := d.pageBlockIndex(pageIndex)
		if err != nil {
			return 0, err
		}
		page, err := d.file.GetBlock(pageBlock)
		if err != nil {
			return 0, err
		}
		for i := 0; i < entries; i++ {
			if types.ReadBlockID(page.Data, i*4) == types.BlockUnused {
				types.WriteBlockID(page.Data, i*4, types.BlockEndOfChain)
				if err := d.file.Release(page); err != nil {
					return 0, err
				}
				return types.BlockID(pageIndex*entries + i), nil
			}
		}
		if err := d.file.Release(page); err != nil {
			return 0, err
		}
	}

	if err := d.growDepot(); err != nil {
		return 0, err
	}
	return d.AllocateNextFreeBigBlock()
}

// Free marks blockIndex's slot BLOCK_UNUSED, releasing it back to the
// depot for reuse.
func (d *Depot) Free(blockIndex types.BlockID) error {
	return d.Set(blockIndex, types.BlockUnused)
}

// growDepot allocates one new big block to host a fresh depot page,
// extending the header's inline BBD table (or the extended-BBD chain once
// that table is full) and growing the host file to cover it.
func (d *Depot) growDepot() error {
	h := d.header.Header()
	entries := d.entriesPerPage()

	newPageBlock := types.BlockID(int(h.BBDCount) * entries)
	// The new page always describes block range
	// [newPageBlock, newPageBlock+entries); its own slot (offset 0)
	// addresses itself, since it is the very next never-used block.
	size, err := d.file.GetSize()
	if err != nil {
		return err
	}
	required := int64(newPageBlock+1) * int64(d.bigBlockSize)
	if size < required {
		if err := d.file.SetSize(required); err != nil {
			return err
		}
	}

	page, err := d.file.GetBlock(int32(newPageBlock))
	if err != nil {
		return err
	}
	for i := 0; i < entries; i++ {
		types.WriteBlockID(page.Data, i*4, types.BlockUnused)
	}
	types.WriteBlockID(page.Data, 0, types.BlockSpecial)
	if err := d.file.Release(page); err != nil {
		return err
	}

	pageIndex := int(h.BBDCount)
	if pageIndex < types.CountBBDepotInHeader {
		h.BBDStart[pageIndex] = newPageBlock
	} else {
		if err := d.appendExtBBDEntry(newPageBlock); err != nil {
			return err
		}
	}
	h.BBDCount++
	return d.header.PersistHeader()
}

// appendExtBBDEntry records a new BBD page's block location in the
// extended-BBD chain, allocating a fresh extended-BBD page if the current
// one is full or none exists yet.
func (d *Depot) appendExtBBDEntry(pageBlock types.BlockID) error {
	h := d.header.Header()
	entriesPerExtPage := d.entriesPerPage() - 1
	extIndex := int(h.BBDCount) - types.CountBBDepotInHeader
	extPageNo := extIndex / entriesPerExtPage
	offsetInExtPage := extIndex % entriesPerExtPage

	chainBlock := h.ExtBBDStart
	for i := 0; i < extPageNo; i++ {
		next, err := d.readExtNext(chainBlock)
		if err != nil {
			return err
		}
		chainBlock = next
	}

	if chainBlock == types.BlockEndOfChain {
		newExtBlock, err := d.allocateRawBlock()
		if err != nil {
			return err
		}
		page, err := d.file.GetBlock(int32(newExtBlock))
		if err != nil {
			return err
		}
		for i := 0; i < d.entriesPerPage(); i++ {
			types.WriteBlockID(page.Data, i*4, types.BlockUnused)
		}
		types.WriteBlockID(page.Data, (d.entriesPerPage()-1)*4, types.BlockEndOfChain)
		if err := d.file.Release(page); err != nil {
			return err
		}
		if h.ExtBBDStart == types.BlockEndOfChain {
			h.ExtBBDStart = newExtBlock
		}
		h.ExtBBDCount++
		chainBlock = newExtBlock
	}

	page, err := d.file.GetBlock(int32(chainBlock))
	if err != nil {
		return err
	}
	types.WriteBlockID(page.Data, offsetInExtPage*4, pageBlock)
	return d.file.Release(page)
}

// allocateRawBlock grows the host file by one big block and returns its
// index, for blocks (like extended-BBD pages) that are not themselves
// tracked as ordinary BBD-addressed blocks until referenced.
func (d *Depot) allocateRawBlock() (types.BlockID, error) {
	size, err := d.file.GetSize()
	if err != nil {
		return 0, err
	}
	blockCount := size/int64(d.bigBlockSize) - 1 // -1 for the header block
	newBlock := types.BlockID(blockCount)
	required := int64(newBlock+1) * int64(d.bigBlockSize)
	if err := d.file.SetSize(required); err != nil {
		return 0, err
	}
	return newBlock, nil
}
