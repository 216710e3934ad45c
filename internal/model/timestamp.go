package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ClientTime is an instant supplied by a caller. Values without an offset
// are read as UTC.
type ClientTime struct {
	time.Time
}

var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseClientTime accepts RFC 3339 and the ISO 8601 forms Python's
// isoformat() produces.
func ParseClientTime(s string) (time.Time, error) {
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: want ISO 8601", s)
}

func (t *ClientTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseClientTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
