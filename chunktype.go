// PNG chunk type codes and their case-bit properties.
//
// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package main

import "fmt"

// From https://www.w3.org/TR/png/#5Chunk-naming-conventions:
// ```
// Chunk types are chosen to be meaningful names when the bit 5s of the
// bytes of the chunk type are set as they are in the name. Chunk types
// are restricted to consist of uppercase and lowercase ASCII letters.
// However, decoders should not assume this. The property bits are an
// inherent part of the chunk type, and hence are fixed for any chunk
// type.
// ```
// Bit 5 (0x20) is the ASCII case bit: uppercase means the bit is 0.

// ChunkType is a four-byte chunk type code, e.g. "IHDR" or "tEXt".
// Two ChunkTypes compare equal iff their four bytes are identical,
// so case is significant.
type ChunkType [4]byte

// ChunkTypeFromBytes stores the four bytes verbatim. It never fails;
// use IsValid to check conformance of codes taken from untrusted input.
func ChunkTypeFromBytes(b [4]byte) ChunkType {
	return ChunkType(b)
}

// ChunkTypeFromString builds a ChunkType from a textual token, which
// must be exactly four ASCII letters.
func ChunkTypeFromString(s string) (ChunkType, error) {
	var t ChunkType
	if len(s) != 4 {
		return t, fmt.Errorf("%w: %q is %d bytes - expected 4", ErrInvalidTypeCode, s, len(s))
	}
	for i := 0; i < 4; i++ {
		if !isTypeByte(s[i]) {
			return t, fmt.Errorf("%w: byte %d of %q is not an ASCII letter", ErrInvalidTypeCode, i, s)
		}
		t[i] = s[i]
	}
	return t, nil
}

// Type code bytes must be in A-Z (65-90) or a-z (97-122).
func isTypeByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Bytes returns the raw four bytes of the type code.
func (t ChunkType) Bytes() [4]byte {
	return [4]byte(t)
}

func (t ChunkType) String() string {
	return string(t[:])
}

// IsCritical reports whether the chunk is required for displaying the
// image: bit 5 of the first byte is 0 (uppercase). Lowercase marks the
// chunk ancillary.
func (t ChunkType) IsCritical() bool {
	return t[0]&0x20 == 0
}

// IsPublic reports whether the code is from the public registry: bit 5
// of the second byte is 0 (uppercase). Lowercase marks it private.
func (t ChunkType) IsPublic() bool {
	return t[1]&0x20 == 0
}

// IsReservedBitValid reports whether bit 5 of the third byte is 0
// (uppercase), which conforming files require of every chunk.
func (t ChunkType) IsReservedBitValid() bool {
	return t[2]&0x20 == 0
}

// IsSafeToCopy reports whether an editor that does not recognize the
// chunk may copy it anyway: bit 5 of the fourth byte is 1 (lowercase).
func (t ChunkType) IsSafeToCopy() bool {
	return t[3]&0x20 != 0
}

// IsValid reports whether the code conforms to the PNG spec: four ASCII
// letters with the reserved bit unset. Codes built via ChunkTypeFromBytes
// may hold arbitrary bytes and report invalid here.
func (t ChunkType) IsValid() bool {
	for _, b := range t {
		if !isTypeByte(b) {
			return false
		}
	}
	return t.IsReservedBitValid()
}
