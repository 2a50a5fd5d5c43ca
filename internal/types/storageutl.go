package types

import "encoding/binary"

// ReadU16 reads a little-endian uint16 at byte offset off in buf.
func ReadU16(buf []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(buf[off : off+2])
}

// WriteU16 writes val as a little-endian uint16 at byte offset off in buf.
func WriteU16(buf []byte, off int, val uint16) {
	binary.LittleEndian.PutUint16(buf[off:off+2], val)
}

// ReadU32 reads a little-endian uint32 at byte offset off in buf.
func ReadU32(buf []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(buf[off : off+4])
}

// WriteU32 writes val as a little-endian uint32 at byte offset off in buf.
func WriteU32(buf []byte, off int, val uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], val)
}

// ReadBlockID reads a BlockID (stored as a little-endian uint32) at byte
// offset off in buf.
func ReadBlockID(buf []byte, off int) BlockID {
	return BlockID(ReadU32(buf, off))
}

// WriteBlockID writes a BlockID as a little-endian uint32 at byte offset
// off in buf.
func WriteBlockID(buf []byte, off int, id BlockID) {
	WriteU32(buf, off, uint32(id))
}

// ReadPropertyIndex reads a PropertyIndex at byte offset off in buf.
func ReadPropertyIndex(buf []byte, off int) PropertyIndex {
	return PropertyIndex(ReadU32(buf, off))
}

// WritePropertyIndex writes a PropertyIndex at byte offset off in buf.
func WritePropertyIndex(buf []byte, off int, idx PropertyIndex) {
	WriteU32(buf, off, uint32(idx))
}
