package timestamp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// Layout is the Go reference layout for "%Y-%m-%dT%H:%M:%S"
	Layout = "2006-01-02T15:04:05"
	// Pattern is the strftime form of Layout, used in error messages
	Pattern = "%Y-%m-%dT%H:%M:%S"
)

// ParseError reports input that does not match Pattern
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: expected date with format `%s`", e.Value, Pattern)
}

// Format renders t with Layout
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse parses s as a UTC timestamp in Layout. Values that time.Parse would
// tolerate but that do not re-format to the same string (single-digit hours,
// signed years) are rejected.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil || t.Format(Layout) != s {
		return time.Time{}, &ParseError{Value: s}
	}
	return t, nil
}

// Timestamp is a time.Time that (de)serializes with Layout
type Timestamp struct {
	time.Time
}

// New wraps t
func New(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) String() string {
	return Format(t.Time)
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(Format(t.Time))
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding timestamp: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (t Timestamp) MarshalYAML() (interface{}, error) {
	return Format(t.Time), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (t *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("decoding timestamp: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// NullTimestamp is an optional Timestamp. The zero value is null.
type NullTimestamp struct {
	Time  time.Time
	Valid bool
}

// Some returns a valid NullTimestamp holding t
func Some(t time.Time) NullTimestamp {
	return NullTimestamp{Time: t, Valid: true}
}

// MarshalJSON implements json.Marshaler
func (n NullTimestamp) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(Format(n.Time))
}

// UnmarshalJSON implements json.Unmarshaler
func (n *NullTimestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = NullTimestamp{}
		return nil
	}
	var ts Timestamp
	if err := ts.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = Some(ts.Time)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (n NullTimestamp) MarshalYAML() (interface{}, error) {
	if !n.Valid {
		return nil, nil
	}
	return Format(n.Time), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (n *NullTimestamp) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*n = NullTimestamp{}
		return nil
	}
	var ts Timestamp
	if err := ts.UnmarshalYAML(node); err != nil {
		return err
	}
	*n = Some(ts.Time)
	return nil
}
