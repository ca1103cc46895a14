package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// localDateTimeLayout is the ISO-8601 local date-time form used on the wire.
// Fractional seconds are printed only when non-zero.
const localDateTimeLayout = "2006-01-02T15:04:05.999999999"

// Accepted input layouts, tried in order. Values without an offset are read in
// the server's local time zone.
var localDateTimeInputLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// LocalDateTime is a point in time exchanged with clients as a date-time
// without zone offset, interpreted in the server's time zone.
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime converts t into the server's local time zone.
func NewLocalDateTime(t time.Time) LocalDateTime {
	if t.IsZero() {
		return LocalDateTime{}
	}
	return LocalDateTime{Time: t.In(time.Local)}
}

// ParseLocalDateTime parses s as a local date-time. RFC 3339 values carrying an
// explicit offset are accepted too and converted to local time.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	for _, layout := range localDateTimeInputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return LocalDateTime{Time: t}, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewLocalDateTime(t), nil
	}
	return LocalDateTime{}, fmt.Errorf("invalid date-time %q: expected yyyy-MM-ddTHH:mm[:ss]", s)
}

func (t LocalDateTime) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Time.In(time.Local).Format(localDateTimeLayout)
}

// MarshalJSON encodes t as a quoted local date-time, or null when zero.
func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a quoted local date-time. null leaves t unchanged.
func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	parsed, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
