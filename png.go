// PNG chunk container. Parses a PNG byte stream into its chunk
// sequence, lets chunks be looked up, appended and removed without
// touching the image data, and serializes the sequence back out.
//
// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package main

import (
	"bytes"
	"fmt"
	"io"
	"slices"
)

// From https://www.w3.org/TR/png/#5PNG-file-signature:
// ```
// The first eight bytes of a PNG datastream always contain the following
// (decimal) values:
//
// 137 80 78 71 13 10 26 10
//
// which are (in hexadecimal):
//
// 89 50 4E 47 0D 0A 1A 0A
//
// This signature indicates that the remainder of the datastream contains a
// single PNG image, consisting of a series of chunks beginning with an IHDR
// chunk and ending with an IEND chunk.
// ```
const (
	PNGMagic     = "\x89\x50\x4E\x47\x0D\x0A\x1A\x0A"
	endChunkType = "IEND"
)

// PNG represents a PNG file as the fixed signature followed by its
// chunks in file order. Order is semantically significant; readers
// process chunks front to back, and the IEND chunk must come last.
type PNG struct {
	chunks []*Chunk
}

// Load reads from an io.Reader and returns a PNG struct. Every chunk is
// CRC-checked on the way in; the input must end at a chunk boundary and
// its final chunk must be IEND.
func Load(r io.Reader) (*PNG, error) {
	// Read first 8 bytes == PNG header.
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: input shorter than the 8 byte header", ErrInvalidSignature)
	}
	if string(header) != PNGMagic {
		return nil, fmt.Errorf("%w: got %x - expected %x",
			ErrInvalidSignature, header, PNGMagic)
	}

	png := &PNG{}
	for {
		var c Chunk
		err := (&c).Fill(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		png.chunks = append(png.chunks, &c)
	}

	if n := len(png.chunks); n == 0 || png.chunks[n-1].Type.String() != endChunkType {
		return nil, fmt.Errorf("%w: chunk sequence does not end in %s",
			ErrMissingEndChunk, endChunkType)
	}
	return png, nil
}

// ParsePNG parses a complete in-memory PNG byte buffer.
func ParsePNG(b []byte) (*PNG, error) {
	return Load(bytes.NewReader(b))
}

// FromChunks composes a PNG from a chunk sequence. The sequence is used
// as given; Bytes only produces a loadable file if it ends in IEND.
func FromChunks(chunks []*Chunk) *PNG {
	return &PNG{chunks: chunks}
}

// Bytes serializes the signature followed by every chunk in stored
// order. Round-trips exactly with ParsePNG.
func (png *PNG) Bytes() []byte {
	var out bytes.Buffer
	out.WriteString(PNGMagic)
	for _, c := range png.chunks {
		out.Write(c.Bytes())
	}
	return out.Bytes()
}

// Chunks returns the chunk sequence in file order. The slice is a view;
// use AppendChunk and RemoveChunkByType to mutate.
func (png *PNG) Chunks() []*Chunk {
	return png.chunks
}

// AppendChunk inserts a chunk immediately before the IEND chunk, so the
// end marker stays last.
func (png *PNG) AppendChunk(c *Chunk) error {
	for i, existing := range png.chunks {
		if existing.Type.String() == endChunkType {
			png.chunks = slices.Insert(png.chunks, i, c)
			return nil
		}
	}
	return fmt.Errorf("%w: cannot insert %q", ErrMissingEndChunk, c.Type.String())
}

// RemoveChunkByType removes and returns the first chunk whose type code
// matches. Removing IEND is refused since the result could never be
// loaded again; the sequence is left untouched in every error case.
func (png *PNG) RemoveChunkByType(code string) (*Chunk, error) {
	if code == endChunkType {
		return nil, fmt.Errorf("%w: %s must remain the last chunk",
			ErrProtectedChunk, endChunkType)
	}
	for i, c := range png.chunks {
		if c.Type.String() == code {
			png.chunks = slices.Delete(png.chunks, i, i+1)
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no chunk of type %q", ErrChunkNotFound, code)
}

// ChunkByType returns the first chunk whose type code matches, or nil
// when there is none.
func (png *PNG) ChunkByType(code string) *Chunk {
	for _, c := range png.chunks {
		if c.Type.String() == code {
			return c
		}
	}
	return nil
}

// TextChunks examines the chunks of a PNG image and returns the
// payloads of the ancillary ones whose data is valid text, in file
// order. Critical chunks hold binary image data and are never included.
func (png *PNG) TextChunks() []string {
	var chunks []string
	for _, c := range png.chunks {
		if c.Type.IsCritical() {
			continue
		}
		if s, err := c.DataString(); err == nil {
			chunks = append(chunks, s)
		}
	}
	return chunks
}
