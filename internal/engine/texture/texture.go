// Package texture decodes material texture images into RGBA pixels ready
// for GPU upload.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp" // register decoder

	"github.com/Faultbox/sceneview/internal/assets"
)

// ErrUnsupportedFormat is returned for files that are not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported texture format")

// Loader reads textures through an asset manager.
type Loader struct {
	assets *assets.Manager
	// FlipV flips images so row 0 is the bottom, matching GL texture space.
	FlipV bool
}

// NewLoader creates a texture loader that flips for GL upload.
func NewLoader(m *assets.Manager) *Loader {
	return &Loader{assets: m, FlipV: true}
}

// Load reads and decodes the texture at path.
func (l *Loader) Load(path string) (*image.RGBA, error) {
	data, resolved, err := l.assets.Load(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data, resolved)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", resolved, err)
	}
	if l.FlipV {
		img = transform.FlipV(img)
	}
	return img, nil
}

// Decode decodes image bytes. The container is sniffed from the content;
// name is only consulted for TGA, which has no magic number.
func Decode(data []byte, name string) (*image.RGBA, error) {
	kind, _ := filetype.Match(data)
	switch kind.Extension {
	case "png", "jpg", "bmp":
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return clone.AsRGBA(img), nil
	}

	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	if kind == filetype.Unknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(name))
	}
	return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, filepath.Base(name), kind.MIME.Value)
}
