package types

import "github.com/google/uuid"

// CLSID is the 16-byte class identifier carried by every property record
// and by WriteClassStg. It is exposed at the Go API boundary as a
// uuid.UUID; its on-disk layout (Data1:u32 LE, Data2:u16 LE, Data3:u16 LE,
// Data4:[8]byte) differs from uuid.UUID's RFC 4122 byte order, so reading
// and writing go through ReadCLSID/WriteCLSID rather than a raw copy.
type CLSID = uuid.UUID

// ZeroCLSID is the all-zero class identifier written for new properties.
var ZeroCLSID CLSID

// ReadCLSID unpacks a 16-byte little-endian GUID (Data1 u32 LE, Data2 u16
// LE, Data3 u16 LE, Data4 8 raw bytes) at byte offset off in buf into a
// uuid.UUID, whose own wire format is big-endian per field.
func ReadCLSID(buf []byte, off int) CLSID {
	var out CLSID
	d1 := ReadU32(buf, off)
	d2 := ReadU16(buf, off+4)
	d3 := ReadU16(buf, off+6)

	out[0] = byte(d1 >> 24)
	out[1] = byte(d1 >> 16)
	out[2] = byte(d1 >> 8)
	out[3] = byte(d1)
	out[4] = byte(d2 >> 8)
	out[5] = byte(d2)
	out[6] = byte(d3 >> 8)
	out[7] = byte(d3)
	copy(out[8:16], buf[off+8:off+16])
	return out
}

// WriteCLSID packs a uuid.UUID into the 16-byte little-endian GUID layout
// at byte offset off in buf.
func WriteCLSID(buf []byte, off int, id CLSID) {
	d1 := uint32(id[0])<<24 | uint32(id[1])<<16 | uint32(id[2])<<8 | uint32(id[3])
	d2 := uint16(id[4])<<8 | uint16(id[5])
	d3 := uint16(id[6])<<8 | uint16(id[7])

	WriteU32(buf, off, d1)
	WriteU16(buf, off+4, d2)
	WriteU16(buf, off+6, d3)
	copy(buf[off+8:off+16], id[8:16])
}
