// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package glb validates the framing of binary glTF (GLB) containers.
// It checks the header and chunk table only; the JSON scene document
// inside the container is never interpreted.
package glb

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	magicGLTF = 0x46546C67 // "glTF" little-endian
	chunkJSON = 0x4E4F534A // "JSON"
	chunkBIN  = 0x004E4942 // "BIN\x00"

	headerSize      = 12
	chunkHeaderSize = 8
)

// Info summarizes a parsed GLB container.
type Info struct {
	Version  uint32 `json:"version"`
	Length   uint32 `json:"length"`
	JSONSize uint32 `json:"json_size"`
	BinSize  uint32 `json:"bin_size"`
	HasBin   bool   `json:"has_bin"`
}

// Verify parses the GLB container at path and checks its framing.
func Verify(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}

// Parse reads a GLB stream and checks the 12-byte header and chunk table:
// magic "glTF", version 2, a leading JSON chunk, an optional BIN chunk,
// and a declared length matching the bytes present.
func Parse(r io.Reader) (*Info, error) {
	var header struct {
		Magic   uint32
		Version uint32
		Length  uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if header.Magic != magicGLTF {
		return nil, fmt.Errorf("not a GLB container: magic %#08x", header.Magic)
	}
	if header.Version != 2 {
		return nil, fmt.Errorf("unsupported GLB version %d", header.Version)
	}

	info := &Info{Version: header.Version, Length: header.Length}
	consumed := uint32(headerSize)
	first := true

	for consumed < header.Length {
		var chunk struct {
			Length uint32
			Type   uint32
		}
		if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
			return nil, fmt.Errorf("reading chunk header at offset %d: %w", consumed, err)
		}
		consumed += chunkHeaderSize

		switch {
		case first && chunk.Type != chunkJSON:
			return nil, fmt.Errorf("first chunk type %#08x, want JSON", chunk.Type)
		case chunk.Type == chunkJSON:
			info.JSONSize = chunk.Length
		case chunk.Type == chunkBIN:
			info.HasBin = true
			info.BinSize = chunk.Length
		}
		first = false

		// Chunk payloads are padded to 4-byte boundaries and the padded
		// length is what the chunk header declares.
		if chunk.Length%4 != 0 {
			return nil, fmt.Errorf("chunk length %d not 4-byte aligned", chunk.Length)
		}
		if _, err := io.CopyN(io.Discard, r, int64(chunk.Length)); err != nil {
			return nil, fmt.Errorf("chunk truncated at offset %d: %w", consumed, err)
		}
		consumed += chunk.Length
	}

	if first {
		return nil, fmt.Errorf("container has no chunks")
	}
	if consumed != header.Length {
		return nil, fmt.Errorf("declared length %d, found %d bytes", header.Length, consumed)
	}
	return info, nil
}
