// Package transfer reads and writes directory records as JSON documents for
// export and bulk import.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Import errors.
var (
	ErrMalformedPayload  = fmt.Errorf("%w: payload is not valid JSON", types.ErrValidation)
	ErrStructureMismatch = fmt.Errorf("%w: expected an array of record objects", types.ErrValidation)
)

// Encode writes records as an indented JSON array. A nil slice is written
// as an empty array.
func Encode(w io.Writer, records []types.Record) error {
	if records == nil {
		records = []types.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return nil
}

// Decode reads a JSON array of records. The whole payload is rejected when
// it is not valid JSON, is not an array, or holds an element that is not an
// object; nothing is returned in that case. Record contents are not
// validated here.
func Decode(r io.Reader) ([]types.Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, ErrMalformedPayload
	}

	var elems []json.RawMessage
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrStructureMismatch
	}
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, ErrStructureMismatch
	}

	records := make([]types.Record, 0, len(elems))
	for i, el := range elems {
		el = bytes.TrimSpace(el)
		if len(el) == 0 || el[0] != '{' {
			return nil, fmt.Errorf("element %d: %w", i, ErrStructureMismatch)
		}
		var rec types.Record
		if err := json.Unmarshal(el, &rec); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, ErrStructureMismatch)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ExportFileName returns the download name for an export taken at now,
// directory-records-YYYY-MM-DD.json in UTC.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("directory-records-%s.json", now.UTC().Format("2006-01-02"))
}
