package formats

import (
	"fmt"
	"strconv"
	"strings"
)

// Scene configuration value grammar. The section/record state machine that
// uses these lives with the scene aggregate.

// ParseSectionHeader recognises "[name]" and returns name.
func ParseSectionHeader(line string) (string, bool) {
	if len(line) < 2 || line[0] != '[' || line[len(line)-1] != ']' {
		return "", false
	}
	return strings.TrimSpace(line[1 : len(line)-1]), true
}

// SplitKeyValue splits "key = value" at the first '=' and trims both sides.
func SplitKeyValue(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// IsSkippable reports whether a trimmed line is blank or a '#' comment.
func IsSkippable(line string) bool {
	return line == "" || strings.HasPrefix(line, "#")
}

// ParseFloat parses a single float value.
func ParseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedDirective, s)
	}
	return float32(v), nil
}

// ParseVec3 parses "x, y, z". Components past the third are ignored.
func ParseVec3(s string) ([3]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 {
		return [3]float32{}, fmt.Errorf("%w: %q needs 3 components", ErrMalformedDirective, s)
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		v, err := ParseFloat(parts[i])
		if err != nil {
			return [3]float32{}, err
		}
		out[i] = v
	}
	return out, nil
}

// ParsePointList parses "x,y,z; x,y,z; ...". Malformed points are skipped
// and reported; the well-formed ones are returned in order.
func ParsePointList(s string) ([][3]float32, error) {
	var (
		points [][3]float32
		bad    []string
	)
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p, err := ParseVec3(part)
		if err != nil {
			bad = append(bad, part)
			continue
		}
		points = append(points, p)
	}
	if len(bad) > 0 {
		return points, fmt.Errorf("%w: skipped points %q", ErrMalformedDirective, bad)
	}
	return points, nil
}

// ParseBool treats "true" and "1" as true and anything else as false.
func ParseBool(s string) bool {
	s = strings.TrimSpace(s)
	return s == "true" || s == "1"
}
