// Package directory implements the per-storage property BST: name
// comparison, property-table allocation, and the insert/delete tree
// surgery spec.md §4.4–§4.5 describes. See internal/storagecore for the
// operations (CreateStream, RenameElement, DestroyElement, ...) built on
// top of these primitives.
package directory

import (
	"strings"
	"unicode/utf16"
)

// NameCmp orders two property names the way the on-disk BST requires:
// first by the byte length of their NUL-terminated UTF-16 encoding (the
// shorter name sorts first, regardless of content), and only for equal
// lengths by a case-folded lexicographic comparison of UTF-16 code units.
//
// This ordering is preserved exactly as conforming writers rely on it —
// under byte-length-first comparison, a name as short as "b" sorts before
// a longer name like "aa", which looks wrong under plain alphabetic
// comparison but is the format's actual rule.
func NameCmp(a, b string) int {
	aLen := nulTerminatedUTF16Len(a)
	bLen := nulTerminatedUTF16Len(b)
	if aLen != bLen {
		return aLen - bLen
	}
	return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
}

// nulTerminatedUTF16Len returns the byte length of s encoded as UTF-16
// plus a trailing NUL code unit, matching the on-disk nameLen field.
func nulTerminatedUTF16Len(s string) int {
	return (len(utf16.Encode([]rune(s))) + 1) * 2
}
