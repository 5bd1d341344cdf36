package formatting_test

import (
	"testing"

	"github.com/wayfare-app/wayfare/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"bare number", "512", 512},
		{"bytes unit", "100B", 100},
		{"kilobytes", "10KB", 10 * 1024},
		{"megabytes", "25MB", 25 * 1024 * 1024},
		{"gigabytes", "1GB", 1024 * 1024 * 1024},
		{"terabytes", "2TB", 2 * 1024 * 1024 * 1024 * 1024},
		{"petabytes", "1PB", 1024 * 1024 * 1024 * 1024 * 1024},
		{"fractional", "1.5KB", 1536},
		{"lowercase unit", "25mb", 25 * 1024 * 1024},
		{"space before unit", "25 MB", 25 * 1024 * 1024},
		{"surrounding whitespace", "  25MB  ", 25 * 1024 * 1024},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tc.input)
			if err != nil {
				t.Fatalf("ParseBytes(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseBytesInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"whitespace only", "   "},
		{"no number", "MB"},
		{"unknown unit", "10XB"},
		{"garbage", "lots of bytes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := formatting.ParseBytes(tc.input); err == nil {
				t.Errorf("ParseBytes(%q) succeeded, want error", tc.input)
			}
		})
	}
}
