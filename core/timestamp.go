package core

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/dustin/go-humanize"
)

// Timestamp is a time accepting both RFC3339 and "2006-01-02 15:04:05" on the wire. null and "" decode to the zero time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		ts.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			ts.Time = t
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.Format(time.RFC3339))
}

// Relative renders the time as "3 hours ago", "-" when unset.
func (ts Timestamp) Relative() string {
	if ts.IsZero() {
		return "-"
	}
	return humanize.Time(ts.Time)
}
