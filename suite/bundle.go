package suite

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/devblok/vkprobe/bundle"
	"github.com/devblok/vkprobe/core"
)

// Names of the entries a run bundle carries.
const (
	ReportEntry  = "report.txt"
	RecordsEntry = "records.gob"
)

// bundleVersion bumps when the records encoding changes.
const bundleVersion = 1

// WriteBundle archives one suite run: the rendered report plus the
// gob encoded outcome records, tagged with the probed device.
func (s Suite) WriteBundle(w io.Writer, ctx *core.Context, sum Summary) error {
	builder := bundle.NewBuilder(bundle.Header{
		Device:      ctx.DeviceName,
		Driver:      core.FormatDriverVersion(ctx.DriverVersion),
		DateCreated: time.Now().Unix(),
		Version:     bundleVersion,
	})

	if err := builder.Add(ReportEntry, []byte(s.Render(sum))); err != nil {
		return fmt.Errorf("failed to bundle report: %w", err)
	}

	var records bytes.Buffer
	if err := gob.NewEncoder(&records).Encode(sum.Outcomes); err != nil {
		return fmt.Errorf("failed to encode outcomes: %w", err)
	}
	if err := builder.Add(RecordsEntry, records.Bytes()); err != nil {
		return fmt.Errorf("failed to bundle outcomes: %w", err)
	}

	if _, err := builder.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	return nil
}

// WriteBundleFile writes a run bundle to path, replacing any earlier
// bundle there.
func (s Suite) WriteBundleFile(path string, ctx *core.Context, sum Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle file: %w", err)
	}
	if err := s.WriteBundle(f, ctx, sum); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadOutcomes decodes the outcome records of an archived run.
func ReadOutcomes(ar *bundle.Bundle) ([]Outcome, error) {
	data, err := ar.ReadAll(RecordsEntry)
	if err != nil {
		return nil, err
	}
	var outcomes []Outcome
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&outcomes); err != nil {
		return nil, fmt.Errorf("failed to decode outcomes: %w", err)
	}
	return outcomes, nil
}
