// A single PNG chunk: length, type code, data and CRC32 checksum.
//
// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"unicode/utf8"
)

// From https://www.w3.org/TR/png/#dfn-png-four-byte-unsigned-integer:
// length fields are limited to the range 0 to 2^31-1.
const maxChunkLength = 1<<31 - 1

// Chunk is one PNG file chunk, including its CRC32 checksum.
type Chunk struct {
	Type     ChunkType
	Data     []byte
	Checksum uint32
}

// NewChunk wraps data in a chunk of the given type, computing the
// checksum over the type code and the data.
func NewChunk(t ChunkType, data []byte) *Chunk {
	return &Chunk{
		Type:     t,
		Data:     data,
		Checksum: checksum(t, data),
	}
}

// From https://www.w3.org/TR/png/#5CRC-algorithm:
// ```
// The CRC is computed over the chunk type field and chunk data fields,
// but not the length field.
// ```
// The algorithm is the standard CRC-32 (IEEE polynomial, init all ones,
// final complement), which is exactly what hash/crc32 computes with its
// default table.
func checksum(t ChunkType, data []byte) uint32 {
	crc := crc32.ChecksumIEEE(t[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}

// Fill will read one chunk from the reader and fill in the chunk,
// verifying the type code bytes and the stored checksum. It returns a
// bare io.EOF when the reader is already exhausted, i.e. the previous
// chunk ended exactly at the end of input.
func (c *Chunk) Fill(r io.Reader) error {
	// Length of the chunk, 4 bytes
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return fmt.Errorf("%w: truncated chunk length field", ErrUnexpectedEOF)
	}
	length := binary.BigEndian.Uint32(buf)
	if length > maxChunkLength {
		return fmt.Errorf("%w: declared chunk length %d exceeds %d",
			ErrUnexpectedEOF, length, maxChunkLength)
	}

	// Type, 4 ASCII bytes
	if err := fillRead(buf, r, "type"); err != nil {
		return err
	}
	var t ChunkType
	copy(t[:], buf)
	for i, b := range t {
		if !isTypeByte(b) {
			return fmt.Errorf("%w: byte %d of %q is not an ASCII letter",
				ErrInvalidTypeCode, i, string(t[:]))
		}
	}
	c.Type = t

	// Data
	// We use a separate buffer for this data since it's kept wholesale
	// in our own data structure, instead of being copy-converted.
	tmp := make([]byte, length)
	if err := fillRead(tmp, r, "data"); err != nil {
		return err
	}
	c.Data = tmp

	// CRC32, 4 bytes
	if err := fillRead(buf, r, "crc"); err != nil {
		return err
	}
	c.Checksum = binary.BigEndian.Uint32(buf)

	if want := checksum(c.Type, c.Data); c.Checksum != want {
		return fmt.Errorf("%w: chunk %q stores %08x - computed %08x",
			ErrCRCMismatch, c.Type.String(), c.Checksum, want)
	}
	return nil
}

// ParseChunk parses exactly one chunk from the front of a byte buffer.
func ParseChunk(b []byte) (*Chunk, error) {
	c := &Chunk{}
	if err := c.Fill(bytes.NewReader(b)); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty input", ErrUnexpectedEOF)
		}
		return nil, err
	}
	return c, nil
}

// Bytes serializes the chunk: length, type, data and CRC, with the
// integer fields big-endian. Round-trips exactly with ParseChunk.
func (c *Chunk) Bytes() []byte {
	var out bytes.Buffer
	u32 := make([]byte, 4)

	binary.BigEndian.PutUint32(u32, uint32(len(c.Data)))
	out.Write(u32)
	out.Write(c.Type[:])
	out.Write(c.Data)
	binary.BigEndian.PutUint32(u32, c.Checksum)
	out.Write(u32)

	return out.Bytes()
}

// Length is the byte count of the chunk data, as stored in the on-wire
// length field.
func (c *Chunk) Length() int {
	return len(c.Data)
}

// DataString returns the chunk data as text. This is for displaying
// message payloads only; structural decisions are never made on it.
func (c *Chunk) DataString() (string, error) {
	if !utf8.Valid(c.Data) {
		return "", fmt.Errorf("%w: chunk %q", ErrInvalidText, c.Type.String())
	}
	return string(c.Data), nil
}

func (c *Chunk) String() string {
	return fmt.Sprintf("%s (%d bytes)", c.Type.String(), len(c.Data))
}

func fillRead(buf []byte, r io.Reader, field string) error {
	expected := len(buf)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return fmt.Errorf("%w: short read in chunk %s - expected %d, got %d",
			ErrUnexpectedEOF, field, expected, n)
	}
	return nil
}
