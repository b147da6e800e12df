package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const dateOnly = "2006-01-02"

// Timestamp accepts RFC 3339 timestamps and plain YYYY-MM-DD dates, which
// date pickers send. Dates are read as midnight UTC.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	for _, layout := range []string{time.RFC3339Nano, dateOnly} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", raw)
}

// TimePtr returns nil for a nil receiver.
func (t *Timestamp) TimePtr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

// ClearableTimestamp tells an absent field apart from an explicit null or
// empty string, which clears the stored date.
type ClearableTimestamp struct {
	Present bool
	Value   *time.Time
}

func (t *ClearableTimestamp) UnmarshalJSON(data []byte) error {
	t.Present = true
	t.Value = nil
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		return nil
	}

	var ts Timestamp
	if err := ts.UnmarshalJSON(data); err != nil {
		return err
	}
	t.Value = ts.TimePtr()
	return nil
}

// Cleared reports whether the request asked to remove the date.
func (t ClearableTimestamp) Cleared() bool {
	return t.Present && t.Value == nil
}
