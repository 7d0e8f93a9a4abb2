// Package archive assembles export bundles: a zip container with one
// `<id>.json` entry per record, streamed while it is produced so unbounded
// export sets never buffer in memory.
package archive

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/cipherdeck/cipherdeck/store"
)

type Policy string

const (
	All    Policy = "all"
	FirstN Policy = "first_n"
)

type Selector struct {
	Policy Policy
	N      int
}

// Select applies the policy to an id-ordered snapshot.
func (s Selector) Select(records []store.Record) ([]store.Record, error) {
	switch s.Policy {
	case "", All:
		return records, nil
	case FirstN:
		if s.N < 0 {
			return nil, fmt.Errorf("selector: negative count %d", s.N)
		}
		if s.N > len(records) {
			return records, nil
		}
		return records[:s.N], nil
	}
	return nil, fmt.Errorf("selector: unknown policy '%s'", s.Policy)
}

// Build streams the selected records into w as a zip archive. Entries use
// each record's canonical serialization, byte-identical to its persisted
// file. An empty selection still yields a valid archive with a placeholder
// entry.
func Build(w io.Writer, sel Selector, records []store.Record) error {

	selected, err := sel.Select(records)
	if err != nil {
		return err
	}

	z := zip.NewWriter(w)

	if len(selected) == 0 {
		entry, err := z.Create("placeholder.txt")
		if err != nil {
			return fmt.Errorf("create placeholder: %w", err)
		}
		_, err = entry.Write([]byte("Placeholder: No matrices available"))
		if err != nil {
			return fmt.Errorf("write placeholder: %w", err)
		}
		return z.Close()
	}

	for _, rec := range selected {
		data, err := rec.Canonical()
		if err != nil {
			return fmt.Errorf("encode record '%s': %w", rec.ID(), err)
		}
		entry, err := z.Create(rec.ID() + ".json")
		if err != nil {
			return fmt.Errorf("create entry '%s': %w", rec.ID(), err)
		}
		_, err = entry.Write(data)
		if err != nil {
			return fmt.Errorf("write entry '%s': %w", rec.ID(), err)
		}
	}

	return z.Close()
}
