package types

// HeaderSize is the fixed size, in bytes, of the file header block (the
// header occupies exactly one default-size big block: 0x4C + 109*4 = 512).
const HeaderSize = 512

// Magic is the eight-byte signature of a conforming compound file.
var Magic = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// OldFormatMagic is the signature of the old-beta compound file format,
// which must be detected and rejected with ErrOldFormat.
var OldFormatMagic = [8]byte{0x0E, 0x11, 0xFC, 0x0D, 0xD0, 0xCF, 0x11, 0xE0}

const (
	headerMinorVersion = 0x003B
	headerMajorVersion = 0x0003
	headerByteOrderBOM = 0xFFFE

	defaultBigBlockSizeBits   = 9 // 1<<9 == 512
	defaultSmallBlockSizeBits = 6 // 1<<6 == 64
)

// Byte offsets within the header block, per spec §4.7.
const (
	offMagic              = 0x00
	offMinorVersion       = 0x18
	offMajorVersion       = 0x1A
	offByteOrder          = 0x1C
	offBigBlockSizeBits   = 0x1E
	offSmallBlockSizeBits = 0x20
	offBBDCount           = 0x2C
	offRootStartBlock     = 0x30
	offMiniStreamCutoff   = 0x38
	offSBDStart           = 0x3C
	offSBDCount           = 0x40
	offExtBBDStart        = 0x44
	offExtBBDCount        = 0x48
	offBBDStart           = 0x4C
)

// FileHeader locates every top-level structure of a compound file: the big
// and small block sizes, the root property's starting block, the small
// block depot's starting block, and the in-header table of big block
// depot page locations.
type FileHeader struct {
	BigBlockSizeBits   uint16
	SmallBlockSizeBits uint16
	BBDCount           uint32
	RootStartBlock     BlockID
	MiniStreamCutoff   uint32
	SBDStart           BlockID
	SBDCount           uint32
	ExtBBDStart        BlockID
	ExtBBDCount        uint32
	BBDStart           [CountBBDepotInHeader]BlockID
}

// BigBlockSize returns the big block size in bytes implied by this header.
func (h *FileHeader) BigBlockSize() int {
	return BlockSizeFromBits(h.BigBlockSizeBits)
}

// SmallBlockSize returns the small block size in bytes implied by this
// header.
func (h *FileHeader) SmallBlockSize() int {
	return BlockSizeFromBits(h.SmallBlockSizeBits)
}

// NewDefaultHeader returns a header initialized the way CreateDocfile
// initializes a new compound file: default block sizes, a single BBD page
// at block 0, the root property chain starting at block 1, and an empty
// small block depot.
func NewDefaultHeader() *FileHeader {
	h := &FileHeader{
		BigBlockSizeBits:   defaultBigBlockSizeBits,
		SmallBlockSizeBits: defaultSmallBlockSizeBits,
		BBDCount:           1,
		RootStartBlock:     1,
		MiniStreamCutoff:   DefaultMiniStreamCutoff,
		SBDStart:           BlockEndOfChain,
		SBDCount:           1,
		ExtBBDStart:        BlockEndOfChain,
		ExtBBDCount:        0,
	}
	for i := range h.BBDStart {
		h.BBDStart[i] = BlockEndOfChain
	}
	h.BBDStart[0] = 0
	return h
}

// Marshal serializes the header into a HeaderSize-byte buffer.
func (h *FileHeader) Marshal() []byte {
	buf := make([]byte, HeaderSize)
	copy(buf[offMagic:], Magic[:])
	WriteU16(buf, offMinorVersion, headerMinorVersion)
	WriteU16(buf, offMajorVersion, headerMajorVersion)
	WriteU16(buf, offByteOrder, headerByteOrderBOM)
	WriteU16(buf, offBigBlockSizeBits, h.BigBlockSizeBits)
	WriteU16(buf, offSmallBlockSizeBits, h.SmallBlockSizeBits)
	WriteU32(buf, offBBDCount, h.BBDCount)
	WriteBlockID(buf, offRootStartBlock, h.RootStartBlock)
	WriteU32(buf, offMiniStreamCutoff, h.MiniStreamCutoff)
	WriteBlockID(buf, offSBDStart, h.SBDStart)
	WriteU32(buf, offSBDCount, h.SBDCount)
	WriteBlockID(buf, offExtBBDStart, h.ExtBBDStart)
	WriteU32(buf, offExtBBDCount, h.ExtBBDCount)
	for i, id := range h.BBDStart {
		WriteBlockID(buf, offBBDStart+i*4, id)
	}
	return buf
}

// ParseHeader decodes a HeaderSize-byte buffer into a FileHeader. It
// returns ErrOldFormat for the old-beta magic and ErrInvalidHeader for any
// other magic mismatch or truncated buffer.
func ParseHeader(buf []byte) (*FileHeader, error) {
	if len(buf) < HeaderSize {
		return nil, ErrInvalidHeader
	}
	if matchesMagic(buf, OldFormatMagic) {
		return nil, ErrOldFormat
	}
	if !matchesMagic(buf, Magic) {
		return nil, ErrInvalidHeader
	}

	h := &FileHeader{
		BigBlockSizeBits:   ReadU16(buf, offBigBlockSizeBits),
		SmallBlockSizeBits: ReadU16(buf, offSmallBlockSizeBits),
		BBDCount:           ReadU32(buf, offBBDCount),
		RootStartBlock:     ReadBlockID(buf, offRootStartBlock),
		MiniStreamCutoff:   ReadU32(buf, offMiniStreamCutoff),
		SBDStart:           ReadBlockID(buf, offSBDStart),
		SBDCount:           ReadU32(buf, offSBDCount),
		ExtBBDStart:        ReadBlockID(buf, offExtBBDStart),
		ExtBBDCount:        ReadU32(buf, offExtBBDCount),
	}
	for i := range h.BBDStart {
		h.BBDStart[i] = ReadBlockID(buf, offBBDStart+i*4)
	}
	return h, nil
}

func matchesMagic(buf []byte, magic [8]byte) bool {
	for i := 0; i < 8; i++ {
		if buf[i] != magic[i] {
			return false
		}
	}
	return true
}
