package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// TGA decoding errors.
var (
	ErrTruncatedTGA   = errors.New("truncated TGA data")
	ErrUnsupportedTGA = errors.New("unsupported TGA variant")
)

const tgaHeaderSize = 18

// tgaReader walks pixel data and writes decoded pixels in file order.
type tgaReader struct {
	img         *image.RGBA
	data        []byte
	width       int
	height      int
	bpp         int // bytes per pixel
	topToBottom bool
	pos         int // byte offset into data
	pixel       int // next pixel index
}

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color TGA
// with 24 or 32 bits per pixel. The result is top-to-bottom.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, ErrTruncatedTGA
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bitsPerPixel := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped", ErrUnsupportedTGA)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: type %d", ErrUnsupportedTGA, imageType)
	}
	if bitsPerPixel != 24 && bitsPerPixel != 32 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedTGA, bitsPerPixel)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, ErrTruncatedTGA
	}

	r := &tgaReader{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		data:        data[offset:],
		width:       width,
		height:      height,
		bpp:         bitsPerPixel / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if len(r.data) < width*height*r.bpp {
			return nil, ErrTruncatedTGA
		}
		for r.pixel < width*height {
			r.put(r.read())
		}
		return r.img, nil
	}

	if err := r.decodeRLE(); err != nil {
		return nil, err
	}
	return r.img, nil
}

func (r *tgaReader) decodeRLE() error {
	total := r.width * r.height
	for r.pixel < total {
		if r.pos >= len(r.data) {
			return ErrTruncatedTGA
		}
		packet := r.data[r.pos]
		r.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if r.pos+r.bpp > len(r.data) {
				return ErrTruncatedTGA
			}
			c := r.read()
			for i := 0; i < count && r.pixel < total; i++ {
				r.put(c)
			}
			continue
		}

		for i := 0; i < count && r.pixel < total; i++ {
			if r.pos+r.bpp > len(r.data) {
				return ErrTruncatedTGA
			}
			r.put(r.read())
		}
	}
	return nil
}

// read consumes one BGR(A) pixel.
func (r *tgaReader) read() color.RGBA {
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c
}

// put stores c at the next pixel, flipping bottom-up files.
func (r *tgaReader) put(c color.RGBA) {
	x := r.pixel % r.width
	y := r.pixel / r.width
	if !r.topToBottom {
		y = r.height - 1 - y
	}
	r.img.SetRGBA(x, y, c)
	r.pixel++
}
