package timestamp

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"2018-05-19T20:33:46",
		"2023-01-01T00:00:00",
		"1999-12-31T23:59:59",
		"2024-02-29T12:05:09",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			parsed, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", input, err)
			}
			if got := Format(parsed); got != input {
				t.Errorf("Format(Parse(%q)) = %q", input, got)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"2018-05-19",
		"2018-05-19 20:33:46",
		"2018-05-19T20:33:46Z",
		"2018-05-19T20:33:46.123",
		"2018-5-19T20:33:46",
		"2018-05-19T2:33:46",
		"2018-13-19T20:33:46",
		"2023-02-29T00:00:00",
		"not a date",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got nil", input)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("Parse(%q) error type = %T, want *ParseError", input, err)
			}
			if !strings.Contains(err.Error(), Pattern) {
				t.Errorf("error %q does not mention pattern", err.Error())
			}
		})
	}
}

func TestTimestamp_JSON(t *testing.T) {
	var payload struct {
		CreatedOn Timestamp     `json:"created_on"`
		DeletedOn NullTimestamp `json:"deleted_on"`
		UpdatedOn NullTimestamp `json:"updated_on"`
	}

	input := `{"created_on":"2018-05-19T20:33:46","deleted_on":null,"updated_on":"2020-01-02T03:04:05"}`
	if err := json.Unmarshal([]byte(input), &payload); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := time.Date(2018, time.May, 19, 20, 33, 46, 0, time.UTC)
	if !payload.CreatedOn.Equal(want) {
		t.Errorf("CreatedOn = %v, want %v", payload.CreatedOn.Time, want)
	}
	if payload.DeletedOn.Valid {
		t.Error("DeletedOn.Valid = true, want false")
	}
	if !payload.UpdatedOn.Valid {
		t.Error("UpdatedOn.Valid = false, want true")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != input {
		t.Errorf("Marshal() = %s, want %s", data, input)
	}
}

func TestTimestamp_JSONRejects(t *testing.T) {
	tests := []string{
		`"2018-05-19T20:33:46Z"`,
		`1526762026`,
		`null`,
	}

	for _, input := range tests {
		var ts Timestamp
		if err := json.Unmarshal([]byte(input), &ts); err == nil {
			t.Errorf("Unmarshal(%s) expected error", input)
		}
	}
}

func TestTimestamp_YAML(t *testing.T) {
	type doc struct {
		CreatedOn Timestamp     `yaml:"created_on"`
		Approved  NullTimestamp `yaml:"approved"`
	}

	in := doc{
		CreatedOn: New(time.Date(2021, time.March, 4, 5, 6, 7, 0, time.UTC)),
	}

	data, err := yaml.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), "2021-03-04T05:06:07") {
		t.Errorf("Marshal() = %q, missing formatted timestamp", data)
	}

	var out doc
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !out.CreatedOn.Equal(in.CreatedOn.Time) {
		t.Errorf("CreatedOn = %v, want %v", out.CreatedOn, in.CreatedOn)
	}
	if out.Approved.Valid {
		t.Error("Approved.Valid = true, want false")
	}
}
