package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMTL(t *testing.T) {
	src := `# Blender MTL File
newmtl Material
Ns 96.078431
Ka 1.000000 1.000000 1.000000
Kd 0.640000 0.640000 0.640000
Ks 0.500000 0.500000 0.500000
Ke 0.0 0.0 0.0
Ni 1.000000
d 1.000000
illum 2
map_Kd textures/wood.png
`
	m, err := ParseMTL(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []string{"Material"}, m.Names)
	assert.InDelta(t, 96.078431, m.Shininess, 1e-5)
	assert.Equal(t, [3]float32{1, 1, 1}, m.Ambient)
	assert.Equal(t, [3]float32{0.64, 0.64, 0.64}, m.Diffuse)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, m.Specular)
	assert.Equal(t, "textures/wood.png", m.DiffuseMap)
	assert.NoError(t, m.Warnings)
}

func TestParseMTL_DefaultsForMissingDirectives(t *testing.T) {
	m, err := ParseMTL(strings.NewReader("Kd 1 0 0\n"))
	require.NoError(t, err)

	def := DefaultMTL()
	assert.Equal(t, def.Ambient, m.Ambient)
	assert.Equal(t, [3]float32{1, 0, 0}, m.Diffuse)
	assert.Equal(t, def.Specular, m.Specular)
	assert.Equal(t, def.Shininess, m.Shininess)
	assert.Empty(t, m.DiffuseMap)
}

func TestParseMTL_DirectiveOrderIsFree(t *testing.T) {
	a, err := ParseMTL(strings.NewReader("map_Kd a.png\nNs 10\nKa 0.3 0.3 0.3\n"))
	require.NoError(t, err)
	b, err := ParseMTL(strings.NewReader("Ka 0.3 0.3 0.3\nNs 10\nmap_Kd a.png\n"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseMTL_TextureOptions(t *testing.T) {
	m, err := ParseMTL(strings.NewReader("map_Kd -s 2 2 1 brick.jpg\n"))
	require.NoError(t, err)
	assert.Equal(t, "brick.jpg", m.DiffuseMap)
}

func TestParseMTL_MalformedKeepsDefault(t *testing.T) {
	m, err := ParseMTL(strings.NewReader("Kd red green blue\nNs\nKs 0.9\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultMTL().Diffuse, m.Diffuse)
	assert.Equal(t, DefaultMTL().Shininess, m.Shininess)
	assert.Equal(t, [3]float32{0.9, 0.9, 0.9}, m.Specular)
	assert.Len(t, Warnings(m.Warnings), 2)
	assert.True(t, errors.Is(m.Warnings, ErrMalformedDirective))
}
