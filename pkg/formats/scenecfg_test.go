package formats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVec3(t *testing.T) {
	tests := []struct {
		in      string
		want    [3]float32
		wantErr bool
	}{
		{"1.5, -2.0, 3.25", [3]float32{1.5, -2, 3.25}, false},
		{"0,0,0", [3]float32{}, false},
		{" 1 ,2 , 3 , 4", [3]float32{1, 2, 3}, false},
		{"1,2", [3]float32{}, true},
		{"1,two,3", [3]float32{}, true},
		{"", [3]float32{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVec3(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedDirective))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePointList(t *testing.T) {
	pts, err := ParsePointList("0,0,0; 10,0,0 ;10,0,5;")
	require.NoError(t, err)
	assert.Equal(t, [][3]float32{{0, 0, 0}, {10, 0, 0}, {10, 0, 5}}, pts)
}

func TestParsePointList_SkipsBadPoints(t *testing.T) {
	pts, err := ParsePointList("1,2,3; oops; 4,5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDirective))
	assert.Equal(t, [][3]float32{{1, 2, 3}}, pts)
}

func TestParseBool(t *testing.T) {
	for in, want := range map[string]bool{
		"true": true, "1": true, " true ": true,
		"false": false, "0": false, "yes": false, "TRUE": false, "": false,
	} {
		assert.Equal(t, want, ParseBool(in), "ParseBool(%q)", in)
	}
}

func TestParseSectionHeader(t *testing.T) {
	name, ok := ParseSectionHeader("[lights]")
	assert.True(t, ok)
	assert.Equal(t, "lights", name)

	_, ok = ParseSectionHeader("lights]")
	assert.False(t, ok)
	_, ok = ParseSectionHeader("[")
	assert.False(t, ok)
}

func TestSplitKeyValue(t *testing.T) {
	k, v, ok := SplitKeyValue("  position = 1, 2, 3 ")
	require.True(t, ok)
	assert.Equal(t, "position", k)
	assert.Equal(t, "1, 2, 3", v)

	k, v, ok = SplitKeyValue("name=a=b")
	require.True(t, ok)
	assert.Equal(t, "name", k)
	assert.Equal(t, "a=b", v)

	_, _, ok = SplitKeyValue("end")
	assert.False(t, ok)
}

func TestParseFloat(t *testing.T) {
	v, err := ParseFloat(" 45 ")
	require.NoError(t, err)
	assert.Equal(t, float32(45), v)

	_, err = ParseFloat("4.5.1")
	assert.True(t, errors.Is(err, ErrMalformedDirective))
}
