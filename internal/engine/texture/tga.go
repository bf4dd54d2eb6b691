package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// ErrUnsupportedTGA is returned for TGA variants the decoder does not handle.
var ErrUnsupportedTGA = errors.New("unsupported TGA")

const tgaHeaderSize = 18

// DecodeTGA decodes an uncompressed or RLE true-color TGA with 24 or 32 bits
// per pixel. Bottom-up files are flipped so row 0 is the top of the image.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short: %d bytes", len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	switch {
	case colorMapType != 0:
		return nil, fmt.Errorf("%w: color-mapped", ErrUnsupportedTGA)
	case imageType != TGATypeUncompressed && imageType != TGATypeRLE:
		return nil, fmt.Errorf("%w: type %d", ErrUnsupportedTGA, imageType)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedTGA, bpp)
	case width == 0 || height == 0:
		return nil, fmt.Errorf("%w: empty image", ErrUnsupportedTGA)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := tgaDecoder{
		src:         data[offset:],
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		bytesPerPix: bpp / 8,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.decodeRaw()
	} else {
		err = d.decodeRLE()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	img         *image.RGBA
	width       int
	height      int
	bytesPerPix int
	topToBottom bool
	pixel       int // next pixel in file order
}

// readColor reads one BGR(A) pixel.
func (d *tgaDecoder) readColor() (color.RGBA, bool) {
	if d.pos+d.bytesPerPix > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bytesPerPix == 4 {
		c.A = p[3]
	}
	d.pos += d.bytesPerPix
	return c, true
}

// put stores c at the next pixel position.
func (d *tgaDecoder) put(c color.RGBA) {
	x := d.pixel % d.width
	y := d.pixel / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.pixel++
}

func (d *tgaDecoder) total() int {
	return d.width * d.height
}

func (d *tgaDecoder) decodeRaw() error {
	for d.pixel < d.total() {
		c, ok := d.readColor()
		if !ok {
			return fmt.Errorf("TGA pixel data truncated at pixel %d", d.pixel)
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	for d.pixel < d.total() {
		if d.pos >= len(d.src) {
			return fmt.Errorf("TGA RLE data truncated at pixel %d", d.pixel)
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run: one colour repeated.
			c, ok := d.readColor()
			if !ok {
				return fmt.Errorf("TGA RLE data truncated at pixel %d", d.pixel)
			}
			for i := 0; i < count && d.pixel < d.total(); i++ {
				d.put(c)
			}
			continue
		}

		for i := 0; i < count && d.pixel < d.total(); i++ {
			c, ok := d.readColor()
			if !ok {
				return fmt.Errorf("TGA RLE data truncated at pixel %d", d.pixel)
			}
			d.put(c)
		}
	}
	return nil
}
