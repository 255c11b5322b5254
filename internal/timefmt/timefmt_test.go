package timefmt

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00.000"},
		{"only seconds", 53.727069, "00:53.727"},
		{"minutes", 153.727069, "02:33.727"},
		{"hours", 11153.727069, "03:05:53.727"},
		{"exact minute", 60, "01:00.000"},
		{"exact hour", 3600, "01:00:00.000"},
		{"sub-second", 0.5, "00:00.500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.seconds); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}
