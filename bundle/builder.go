// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bundle

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4"
)

// Builder accumulates entries in memory and writes out a complete
// bundle. Entries are compressed as they are added, so a builder that
// collected many reports stays small until WriteTo.
type Builder struct {
	header Header
	blocks []block
}

type block struct {
	name             string
	size, compressed int64
	data             []byte
}

// NewBuilder creates a Builder. The Index of the given header is
// ignored, it is rebuilt from the added entries.
func NewBuilder(header Header) *Builder {
	header.Index = nil
	return &Builder{header: header}
}

// Add compresses data and schedules it under the given name.
// Names must be unique within a bundle.
func (b *Builder) Add(name string, data []byte) error {
	for _, blk := range b.blocks {
		if blk.name == name {
			return fmt.Errorf("duplicate bundle entry %s", name)
		}
	}

	var compressed bytes.Buffer
	zw := lz4.NewWriter(&compressed)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("failed to compress %s: %w", name, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress %s: %w", name, err)
	}

	b.blocks = append(b.blocks, block{
		name:       name,
		size:       int64(len(data)),
		compressed: int64(compressed.Len()),
		data:       compressed.Bytes(),
	})
	return nil
}

// WriteTo writes the finished bundle. Offsets in the index are counted
// from the start of the data section, so the header can grow without
// invalidating them.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	var offset int64
	b.header.Index = b.header.Index[:0]
	for _, blk := range b.blocks {
		b.header.Index = append(b.header.Index, IndexEntry{
			Name:           blk.name,
			Offset:         offset,
			Size:           blk.size,
			CompressedSize: blk.compressed,
		})
		offset += blk.compressed
	}

	headerBytes, err := gobEncode(b.header)
	if err != nil {
		return 0, fmt.Errorf("failed to encode header: %w", err)
	}

	var written int64
	n, err := w.Write(magic[:])
	written += int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(int64ToBinary(int64(len(headerBytes))))
	written += int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(headerBytes)
	written += int64(n)
	if err != nil {
		return written, err
	}
	for _, blk := range b.blocks {
		n, err = w.Write(blk.data)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
