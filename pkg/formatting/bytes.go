package formatting

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// ParseBytes parses a human-readable byte size string (e.g. "25MB") into a
// byte count. Unit matching is case-insensitive; an optional space between
// number and unit is allowed; a bare number means bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	idx := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})

	numPart, unitPart := s, ""
	if idx >= 0 {
		numPart = s[:idx]
		unitPart = strings.ToUpper(strings.TrimSpace(s[idx:]))
	}

	value, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	if unitPart == "" {
		return int64(value), nil
	}

	unitIdx := slices.Index(units, unitPart)
	if unitIdx == -1 {
		return 0, fmt.Errorf("unknown byte size unit: %q", unitPart)
	}

	return int64(value * math.Pow(1024, float64(unitIdx))), nil
}
