// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package bundle_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/devblok/vkprobe/bundle"
)

var (
	testReport  = "Results: 5/5 PASSED, 0 FAILED"
	testRecords = strings.Repeat("gs_feature_supported,true;", 32)
)

func buildTestBundle(t *testing.T) []byte {
	t.Helper()

	builder := bundle.NewBuilder(bundle.Header{
		Device:      "llvmpipe (LLVM 15.0.7, 256 bits)",
		Driver:      "0.0.1",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err := builder.Add("report.txt", []byte(testReport)); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("records.gob", []byte(testRecords)); err != nil {
		t.Fatal(err)
	}

	buf := bytes.NewBuffer([]byte{})
	if written, err := builder.WriteTo(buf); err != nil {
		t.Fatal(err)
	} else {
		t.Logf("written %d", written)
	}
	return buf.Bytes()
}

func TestCreateAndRead(t *testing.T) {
	data := buildTestBundle(t)

	ar, err := bundle.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	if got := ar.Header().Device; !strings.HasPrefix(got, "llvmpipe") {
		t.Errorf("unexpected device in header: %s", got)
	}
	if len(ar.Header().Index) != 2 {
		t.Errorf("expected 2 index entries, got %d", len(ar.Header().Index))
	}

	report, err := ar.ReadAll("report.txt")
	if err != nil {
		t.Fatal(err)
	}
	if string(report) != testReport {
		t.Error("report entry does not match up")
	}

	records, err := ar.ReadAll("records.gob")
	if err != nil {
		t.Fatal(err)
	}
	if string(records) != testRecords {
		t.Error("records entry does not match up")
	}
}

func TestEntrySizes(t *testing.T) {
	data := buildTestBundle(t)

	ar, err := bundle.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	entry, err := ar.Entry("records.gob")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Size != int64(len(testRecords)) {
		t.Errorf("expected size %d, got %d", len(testRecords), entry.Size)
	}
	if entry.CompressedSize >= entry.Size {
		t.Errorf("repetitive entry did not compress: %d >= %d", entry.CompressedSize, entry.Size)
	}
}

func TestMissingEntry(t *testing.T) {
	data := buildTestBundle(t)

	ar, err := bundle.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ar.ReadAll("nope"); !errors.Is(err, bundle.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDuplicateEntry(t *testing.T) {
	builder := bundle.NewBuilder(bundle.Header{Version: 1})
	if err := builder.Add("report.txt", []byte(testReport)); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("report.txt", []byte(testReport)); err == nil {
		t.Error("expected duplicate entry to fail")
	}
}

func TestCorruptMagic(t *testing.T) {
	data := buildTestBundle(t)
	data[0] = 'X'

	if _, err := bundle.Open(bytes.NewReader(data)); !errors.Is(err, bundle.ErrFileFormat) {
		t.Errorf("expected ErrFileFormat, got %v", err)
	}
}

func TestTooShort(t *testing.T) {
	if _, err := bundle.Open(bytes.NewReader([]byte("VKB"))); !errors.Is(err, bundle.ErrFileFormat) {
		t.Errorf("expected ErrFileFormat, got %v", err)
	}
}
