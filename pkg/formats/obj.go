package formats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// Attribute defaults used when a face-vertex omits or mis-references them.
var (
	DefaultNormal   = [3]float32{0, 1, 0}
	DefaultTexCoord = [2]float32{0, 0}
)


// OBJVertex is one deduplicated output vertex.
type OBJVertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// FaceVertexKey identifies a face-vertex by its resolved 0-based
// position/texcoord/normal indices. Missing components are -1 and
// unresolvable ones (0, or relative past the start) are -2.
type FaceVertexKey struct {
	Pos, Tex, Norm int
}

const (
	missingIndex = -1
	invalidIndex = -2
)

// OBJ is the result of parsing a Wavefront OBJ file.
type OBJ struct {
	Vertices []OBJVertex // One entry per distinct in-range FaceVertexKey
	Indices  []uint32    // Triangle list, len is a multiple of 3

	// Axis-aligned bounds of the raw positions. Zero when there are none.
	BoundsMin [3]float32
	BoundsMax [3]float32

	MaterialLib string // First mtllib reference as written in the file

	Positions int // Count of v directives
	TexCoords int // Count of vt directives
	Normals   int // Count of vn directives
	Faces     int // Count of accepted f directives

	// TriangulatedFaces counts polygons with more than three corners that
	// were split into a triangle fan.
	TriangulatedFaces int

	// Warnings aggregates recoverable problems; use Warnings() to split.
	Warnings error
}

// objParser holds the scan state of a single ParseOBJ call.
type objParser struct {
	out       *OBJ
	positions [][3]float32
	texCoords [][2]float32
	normals   [][3]float32
	cache     map[FaceVertexKey]uint32
	hasBounds bool
	line      int
}

// ParseOBJ reads OBJ geometry into a deduplicated indexed vertex buffer.
// Only read errors are returned; content problems become warnings.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	p := &objParser{
		out:   &OBJ{},
		cache: make(map[FaceVertexKey]uint32),
	}

	scanner := NewLineScanner(r)
	for scanner.Scan() {
		p.line++
		p.parseLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	p.out.Positions = len(p.positions)
	p.out.TexCoords = len(p.texCoords)
	p.out.Normals = len(p.normals)
	return p.out, nil
}

func (p *objParser) warn(err error) {
	p.out.Warnings = multierr.Append(p.out.Warnings, err)
}

func (p *objParser) parseLine(text string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return
	}

	switch fields[0] {
	case "v":
		v, err := parseFloats(fields[1:], 3, 3)
		if err != nil {
			// Keep the slot so later indices still line up.
			p.positions = append(p.positions, [3]float32{})
			p.warn(lineError(p.line, ErrMalformedDirective, "v: %v", err))
			return
		}
		pos := [3]float32{v[0], v[1], v[2]}
		p.positions = append(p.positions, pos)
		p.fold(pos)

	case "vt":
		v, err := parseFloats(fields[1:], 1, 2)
		if err != nil {
			p.texCoords = append(p.texCoords, DefaultTexCoord)
			p.warn(lineError(p.line, ErrMalformedDirective, "vt: %v", err))
			return
		}
		uv := [2]float32{v[0], 0}
		if len(v) > 1 {
			uv[1] = v[1]
		}
		p.texCoords = append(p.texCoords, uv)

	case "vn":
		v, err := parseFloats(fields[1:], 3, 3)
		if err != nil {
			p.normals = append(p.normals, DefaultNormal)
			p.warn(lineError(p.line, ErrMalformedDirective, "vn: %v", err))
			return
		}
		p.normals = append(p.normals, [3]float32{v[0], v[1], v[2]})

	case "mtllib":
		if len(fields) < 2 {
			p.warn(lineError(p.line, ErrMalformedDirective, "mtllib without path"))
			return
		}
		if p.out.MaterialLib == "" {
			p.out.MaterialLib = fields[1]
		}

	case "f":
		p.parseFace(fields[1:])
	}
}

// fold grows the bounding box to include pos.
func (p *objParser) fold(pos [3]float32) {
	if !p.hasBounds {
		p.out.BoundsMin = pos
		p.out.BoundsMax = pos
		p.hasBounds = true
		return
	}
	for i := 0; i < 3; i++ {
		p.out.BoundsMin[i] = min(p.out.BoundsMin[i], pos[i])
		p.out.BoundsMax[i] = max(p.out.BoundsMax[i], pos[i])
	}
}

// parseFace resolves every corner before emitting anything, so a malformed
// token drops the whole face rather than leaving a partial triangle.
func (p *objParser) parseFace(tokens []string) {
	if len(tokens) < 3 {
		p.warn(lineError(p.line, ErrMalformedDirective, "face needs 3 vertices, got %d", len(tokens)))
		return
	}

	keys := make([]FaceVertexKey, len(tokens))
	for i, tok := range tokens {
		key, err := p.parseFaceVertex(tok)
		if err != nil {
			p.warn(lineError(p.line, ErrMalformedDirective, "face vertex %q: %v", tok, err))
			return
		}
		keys[i] = key
	}

	slots := make([]uint32, len(keys))
	for i, key := range keys {
		slots[i] = p.resolve(key)
	}

	// Fan: (0, i, i+1). A triangle yields exactly one.
	for i := 1; i+1 < len(slots); i++ {
		p.out.Indices = append(p.out.Indices, slots[0], slots[i], slots[i+1])
	}
	p.out.Faces++
	if len(slots) > 3 {
		p.out.TriangulatedFaces++
	}
}

// parseFaceVertex parses "p", "p/t", "p//n" or "p/t/n" into a key.
func (p *objParser) parseFaceVertex(tok string) (FaceVertexKey, error) {
	parts := strings.SplitN(tok, "/", 3)
	key := FaceVertexKey{Pos: missingIndex, Tex: missingIndex, Norm: missingIndex}

	var err error
	if key.Pos, err = resolveIndex(parts[0], len(p.positions)); err != nil {
		return key, err
	}
	if key.Pos == missingIndex {
		return key, fmt.Errorf("missing position index")
	}
	if len(parts) > 1 {
		if key.Tex, err = resolveIndex(parts[1], len(p.texCoords)); err != nil {
			return key, err
		}
	}
	if len(parts) > 2 {
		if key.Norm, err = resolveIndex(parts[2], len(p.normals)); err != nil {
			return key, err
		}
	}
	return key, nil
}

// resolveIndex converts a 1-based or negative (relative) OBJ index into a
// 0-based one. An empty string yields missingIndex; 0 and relative indices
// before the start of the list yield invalidIndex. Positive indices past
// count are returned as is and caught by resolve.
func resolveIndex(s string, count int) (int, error) {
	if s == "" {
		return missingIndex, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0 && count+n >= 0:
		return count + n, nil
	default:
		return invalidIndex, nil
	}
}

func inRange(i, count int) bool {
	return i >= 0 && i < count
}

func indexLabel(i int) string {
	if i == invalidIndex {
		return "invalid"
	}
	return strconv.Itoa(i + 1)
}

// resolve returns the output slot for key, creating the vertex on a cache
// miss. Keys with an out-of-range component get a fresh defaulted vertex
// and are never cached, since the same index may become valid once more
// attributes are declared.
func (p *objParser) resolve(key FaceVertexKey) uint32 {
	if idx, ok := p.cache[key]; ok {
		return idx
	}

	v := OBJVertex{Normal: DefaultNormal, TexCoord: DefaultTexCoord}
	valid := true
	if inRange(key.Pos, len(p.positions)) {
		v.Position = p.positions[key.Pos]
	} else {
		valid = false
		p.warn(lineError(p.line, ErrIndexOutOfRange, "position %s of %d", indexLabel(key.Pos), len(p.positions)))
	}
	if key.Tex != missingIndex {
		if inRange(key.Tex, len(p.texCoords)) {
			v.TexCoord = p.texCoords[key.Tex]
		} else {
			valid = false
			p.warn(lineError(p.line, ErrIndexOutOfRange, "texcoord %s of %d", indexLabel(key.Tex), len(p.texCoords)))
		}
	}
	if key.Norm != missingIndex {
		if inRange(key.Norm, len(p.normals)) {
			v.Normal = p.normals[key.Norm]
		} else {
			valid = false
			p.warn(lineError(p.line, ErrIndexOutOfRange, "normal %s of %d", indexLabel(key.Norm), len(p.normals)))
		}
	}

	idx := uint32(len(p.out.Vertices))
	p.out.Vertices = append(p.out.Vertices, v)
	if valid {
		p.cache[key] = idx
	}
	return idx
}

// parseFloats parses between minN and maxN leading fields as float32.
// Fields past maxN are ignored.
func parseFloats(fields []string, minN, maxN int) ([]float32, error) {
	if len(fields) < minN {
		return nil, fmt.Errorf("want %d values, got %d", minN, len(fields))
	}
	if len(fields) > maxN {
		fields = fields[:maxN]
	}
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		out = append(out, float32(v))
	}
	return out, nil
}
