// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package bundle is an lz4 backed container for probe run artifacts.
// A bundle holds the rendered console report plus one record per check,
// so runs on different drivers can be archived and diffed later. The
// index sits in the header, every entry is compressed individually and
// can be read without touching the others.
package bundle

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
)

// package errors
var (
	ErrFileFormat = errors.New("corrupted or not a probe bundle")
	ErrNotFound   = errors.New("no entry with that name in the bundle")
)

// Sizes relevant to the head of the file.
const (
	MagicLength      = 4
	HeaderSizeLength = 16
)

var magic = [MagicLength]byte{'V', 'K', 'B', '\x00'}

// IndexEntry is info for one entry in the bundle index. Offset is
// relative to the start of the data section.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header identifies the probed device and indexes the entries.
type Header struct {
	Device      string
	Driver      string
	DateCreated int64
	Version     int64
	Index       []IndexEntry
}

func gobEncode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	enc := gob.NewEncoder(&encoded)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func gobDecode(target interface{}, data []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(data))
	return dec.Decode(target)
}

func int64ToBinary(num int64) []byte {
	numBytes := make([]byte, HeaderSizeLength)
	binary.PutVarint(numBytes, num)
	return numBytes
}

func binaryToInt64(bts []byte) (int64, error) {
	num, err := binary.ReadVarint(bytes.NewReader(bts))
	if err != nil {
		return 0, err
	}
	return num, nil
}
