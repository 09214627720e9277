package formats

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
)

// MTL holds the material parameters read from a Wavefront MTL file.
// When a file declares several materials the later values win.
type MTL struct {
	Names      []string   // newmtl names in file order
	Ambient    [3]float32 // Ka
	Diffuse    [3]float32 // Kd
	Specular   [3]float32 // Ks
	Shininess  float32    // Ns
	DiffuseMap string     // map_Kd as written, relative to the MTL file

	Warnings error
}

// DefaultMTL returns the parameters used for directives a file omits.
func DefaultMTL() MTL {
	return MTL{
		Ambient:   [3]float32{0.1, 0.1, 0.1},
		Diffuse:   [3]float32{0.7, 0.7, 0.7},
		Specular:  [3]float32{0.2, 0.2, 0.2},
		Shininess: 32,
	}
}

// ParseMTL reads material directives on top of DefaultMTL.
// Unknown directives are ignored.
func ParseMTL(r io.Reader) (*MTL, error) {
	m := DefaultMTL()

	scanner := NewLineScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				m.Names = append(m.Names, fields[1])
			}
		case "Ka":
			err = parseColor(fields[1:], &m.Ambient)
		case "Kd":
			err = parseColor(fields[1:], &m.Diffuse)
		case "Ks":
			err = parseColor(fields[1:], &m.Specular)
		case "Ns":
			var v []float32
			if v, err = parseFloats(fields[1:], 1, 1); err == nil {
				m.Shininess = v[0]
			}
		case "map_Kd":
			if len(fields) < 2 {
				err = fmt.Errorf("missing texture path")
				break
			}
			// Options such as "-s 1 1 1" precede the file name.
			m.DiffuseMap = fields[len(fields)-1]
		}
		if err != nil {
			m.Warnings = multierr.Append(m.Warnings, lineError(line, ErrMalformedDirective, "%s: %v", fields[0], err))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL: %w", err)
	}
	return &m, nil
}

// parseColor reads an r g b triple; a single value is replicated to all
// three channels. dst is left untouched on error.
func parseColor(fields []string, dst *[3]float32) error {
	v, err := parseFloats(fields, 1, 3)
	if err != nil {
		return err
	}
	switch len(v) {
	case 1:
		*dst = [3]float32{v[0], v[0], v[0]}
	case 3:
		*dst = [3]float32{v[0], v[1], v[2]}
	default:
		return fmt.Errorf("want 1 or 3 values, got %d", len(v))
	}
	return nil
}
