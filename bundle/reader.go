// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bundle

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/pierrec/lz4"
)

// Bundle reads entries out of a written bundle. Reads of separate
// entries are independent, the underlying ReaderAt is never seeked.
type Bundle struct {
	source     io.ReaderAt
	header     Header
	dataOffset int64
}

// Open reads and validates the head of the bundle and decodes the
// header. The rest of the source is read lazily.
func Open(source io.ReaderAt) (*Bundle, error) {
	var head [MagicLength]byte
	if _, err := source.ReadAt(head[:], 0); err != nil {
		return nil, ErrFileFormat
	}
	if !bytes.Equal(head[:], magic[:]) {
		return nil, ErrFileFormat
	}

	sizeBytes := make([]byte, HeaderSizeLength)
	if _, err := source.ReadAt(sizeBytes, MagicLength); err != nil {
		return nil, ErrFileFormat
	}
	headerSize, err := binaryToInt64(sizeBytes)
	if err != nil || headerSize <= 0 {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if _, err := source.ReadAt(headerBytes, MagicLength+HeaderSizeLength); err != nil {
		return nil, ErrFileFormat
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to decode header: %w", err)
	}

	return &Bundle{
		source:     source,
		header:     header,
		dataOffset: MagicLength + HeaderSizeLength + headerSize,
	}, nil
}

// Header returns the decoded bundle header.
func (b *Bundle) Header() Header {
	return b.header
}

// Entry returns index info for a named entry.
func (b *Bundle) Entry(name string) (IndexEntry, error) {
	for _, entry := range b.header.Index {
		if entry.Name == name {
			return entry, nil
		}
	}
	return IndexEntry{}, ErrNotFound
}

// Open returns a decompressing reader for a named entry.
func (b *Bundle) Open(name string) (io.Reader, error) {
	entry, err := b.Entry(name)
	if err != nil {
		return nil, err
	}
	section := io.NewSectionReader(b.source, b.dataOffset+entry.Offset, entry.CompressedSize)
	return lz4.NewReader(section), nil
}

// ReadAll decompresses a named entry in full.
func (b *Bundle) ReadAll(name string) ([]byte, error) {
	rd, err := b.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := ioutil.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
	}
	return data, nil
}
