package types

import "unicode/utf16"

// PropertyType discriminates what kind of directory-tree node a property
// represents.
type PropertyType byte

const (
	PropertyTypeInvalid PropertyType = 0
	PropertyTypeStorage PropertyType = 1
	PropertyTypeStream  PropertyType = 2
	PropertyTypeRoot    PropertyType = 5
)

// BlockType records whether a stream property's chain lives in big or
// small blocks.
type BlockType byte

const (
	BlockTypeSmall BlockType = 0
	BlockTypeBig   BlockType = 1
)

// RootEntryName is the literal name given to the root property.
const RootEntryName = "Root Entry"

// Byte offsets within a 128-byte property record, per spec §4.4.
const (
	propOffName          = 0x00
	propNameFieldLen     = 0x40
	propOffNameLen       = 0x40
	propOffType          = 0x42
	propOffBlockType     = 0x43
	propOffPrevious      = 0x44
	propOffNext          = 0x48
	propOffDir           = 0x4C
	propOffCLSID         = 0x50
	propOffTimestamps    = 0x60
	propTimestampsLen    = 16
	propOffStartingBlock = 0x74
	propOffSize          = 0x78
	propOffSizeHigh      = 0x7C
)

// Property is one 128-byte directory-tree entry: a stream, a storage, or
// (at index 0) the root.
type Property struct {
	Name      string // decoded, without the NUL terminator
	Type      PropertyType
	BlockType BlockType
	Previous  PropertyIndex
	Next      PropertyIndex
	Dir       PropertyIndex
	CLSID     CLSID

	StartingBlock BlockID
	Size          uint64
}

// IsFree reports whether this slot holds no live entry (nameLen == 0 on
// disk, modeled here as an empty decoded Name together with Type
// PropertyTypeInvalid).
func (p *Property) IsFree() bool {
	return p.Name == "" && p.Type == PropertyTypeInvalid
}

// NewFreeProperty returns a zeroed, free property record.
func NewFreeProperty() Property {
	return Property{
		Previous:      PropertyNull,
		Next:          PropertyNull,
		Dir:           PropertyNull,
		StartingBlock: BlockID(BlockEndOfChain),
	}
}

// nameLenBytes returns the on-disk nameLen field: the UTF-16 byte length
// of the name including its NUL terminator, or 0 for a free property.
func (p *Property) nameLenBytes() (uint16, error) {
	if p.Name == "" {
		return 0, nil
	}
	units := utf16.Encode([]rune(p.Name))
	n := (len(units) + 1) * 2
	if n > propNameFieldLen {
		return 0, ErrInvalidName
	}
	return uint16(n), nil
}

// Marshal encodes the property into a PropertySize-byte record.
func (p *Property) Marshal() ([]byte, error) {
	buf := make([]byte, PropertySize)

	nameLen, err := p.nameLenBytes()
	if err != nil {
		return nil, err
	}
	if nameLen > 0 {
		units := utf16.Encode([]rune(p.Name))
		for i, u := range units {
			WriteU16(buf, propOffName+i*2, u)
		}
		// NUL terminator is already zero from make().
	}

	WriteU16(buf, propOffNameLen, nameLen)
	buf[propOffType] = byte(p.Type)
	buf[propOffBlockType] = byte(p.BlockType)
	WritePropertyIndex(buf, propOffPrevious, p.Previous)
	WritePropertyIndex(buf, propOffNext, p.Next)
	WritePropertyIndex(buf, propOffDir, p.Dir)
	WriteCLSID(buf, propOffCLSID, p.CLSID)
	// Timestamps (propOffTimestamps, 16 bytes) and the size-high
	// reserved word stay zero, per spec §4.4/§9.
	WriteBlockID(buf, propOffStartingBlock, p.StartingBlock)
	WriteU32(buf, propOffSize, uint32(p.Size))
	WriteU32(buf, propOffSizeHigh, 0)

	return buf, nil
}

// ParsePropertyRecord decodes a PropertySize-byte record into a Property.
func ParsePropertyRecord(buf []byte) (Property, error) {
	if len(buf) < PropertySize {
		return Property{}, ErrInvalidHeader
	}

	nameLen := ReadU16(buf, propOffNameLen)
	var p Property
	if nameLen > 0 {
		units := make([]uint16, 0, nameLen/2)
		for off := propOffName; off < propOffName+int(nameLen)-2; off += 2 {
			units = append(units, ReadU16(buf, off))
		}
		p.Name = string(utf16.Decode(units))
		p.Type = PropertyType(buf[propOffType])
	}

	p.BlockType = BlockType(buf[propOffBlockType])
	p.Previous = ReadPropertyIndex(buf, propOffPrevious)
	p.Next = ReadPropertyIndex(buf, propOffNext)
	p.Dir = ReadPropertyIndex(buf, propOffDir)
	p.CLSID = ReadCLSID(buf, propOffCLSID)
	p.StartingBlock = ReadBlockID(buf, propOffStartingBlock)
	p.Size = uint64(ReadU32(buf, propOffSize))

	return p, nil
}
