package kirkkaus

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/google/uuid"
)

// RGB is a single 24-bit pixel.
type RGB struct {
	R, G, B uint8
}

// Buffer is an immutable RGB888 image stored row-major with no row padding.
// Every Buffer carries an identity which is distinct for each constructed Buffer,
// so derived results may be cached against their source image.
//
// The zero-area Buffer is valid and signals there is nothing to display.
type Buffer struct {
	id     uuid.UUID
	width  int
	height int
	pix    []byte
}

var (
	_ ImageBuffered = (*Buffer)(nil)
	_ image.Image   = (*Buffer)(nil)
)

// NewBuffer copies pixels into a new Buffer. It panics if len(pixels) != width*height.
func NewBuffer(width, height int, pixels []RGB) *Buffer {
	mustDims(width, height, len(pixels))
	pix := make([]byte, 3*len(pixels))
	for i, p := range pixels {
		pix[3*i], pix[3*i+1], pix[3*i+2] = p.R, p.G, p.B
	}
	return newBuffer(width, height, pix)
}

// NewBufferRaw creates a Buffer that takes ownership of pix, which holds packed RGB888 pixels.
// pix must not be modified after the call. It panics if len(pix) != 3*width*height.
func NewBufferRaw(width, height int, pix []byte) *Buffer {
	if len(pix)%3 != 0 {
		panic(fmt.Sprintf("kirkkaus: raw pixel data length %d not multiple of 3", len(pix)))
	}
	mustDims(width, height, len(pix)/3)
	return newBuffer(width, height, pix)
}

// Fill returns a width×height Buffer with every pixel set to c.
func Fill(width, height int, c RGB) *Buffer {
	mustDims(width, height, width*height)
	pix := make([]byte, 3*width*height)
	for i := 0; i < len(pix); i += 3 {
		pix[i], pix[i+1], pix[i+2] = c.R, c.G, c.B
	}
	return newBuffer(width, height, pix)
}

// FromImage converts any image to a Buffer, discarding alpha.
func FromImage(img image.Image) *Buffer {
	if buf, ok := img.(*Buffer); ok {
		return buf
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pix := make([]byte, 3*w*h)
	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+4*w]
			for x := 0; x < w; x++ {
				copy(pix[3*(y*w+x):], row[4*x:4*x+3])
			}
		}
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+4*w]
			for x := 0; x < w; x++ {
				copy(pix[3*(y*w+x):], row[4*x:4*x+3])
			}
		}
	default:
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				pix[i], pix[i+1], pix[i+2] = c.R, c.G, c.B
				i += 3
			}
		}
	}
	return newBuffer(w, h, pix)
}

func newBuffer(width, height int, pix []byte) *Buffer {
	return &Buffer{id: uuid.New(), width: width, height: height, pix: pix}
}

func mustDims(width, height, numPixels int) {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("kirkkaus: negative buffer dimensions %dx%d", width, height))
	} else if width*height != numPixels {
		panic(fmt.Sprintf("kirkkaus: %d pixels do not fill %dx%d buffer", numPixels, width, height))
	}
}

// ID returns the identity of the buffer.
func (b *Buffer) ID() uuid.UUID { return b.id }

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Len returns the number of pixels in the buffer.
func (b *Buffer) Len() int { return b.width * b.height }

// Empty reports whether the buffer has zero area.
func (b *Buffer) Empty() bool { return b.width == 0 || b.height == 0 }

// Pixel returns the i'th pixel in row-major order.
func (b *Buffer) Pixel(i int) RGB {
	s := b.pix[3*i : 3*i+3 : 3*i+3]
	return RGB{R: s[0], G: s[1], B: s[2]}
}

// RGBAt returns the pixel at column x and row y.
func (b *Buffer) RGBAt(x, y int) RGB {
	return b.Pixel(y*b.width + x)
}

// Pixels returns a copy of the buffer's pixels in row-major order.
func (b *Buffer) Pixels() []RGB {
	pixels := make([]RGB, b.Len())
	for i := range pixels {
		pixels[i] = b.Pixel(i)
	}
	return pixels
}

// Equal reports whether b and other hold the same dimensions and pixels. Identity is not compared.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	return string(b.pix) == string(other.pix)
}

// Dims implements [Image].
func (b *Buffer) Dims() Dims {
	return Dims{Width: b.width, Height: b.height, Stride: 3 * b.width, Shape: ShapeRGB888}
}

// ReadAt implements [Image].
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("kirkkaus: negative offset %d", off)
	} else if off >= int64(len(b.pix)) {
		return 0, io.EOF
	}
	n := copy(p, b.pix[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Buffer implements [ImageBuffered]. The returned data must not be modified.
func (b *Buffer) Buffer() []byte { return b.pix }

// ColorModel implements [image.Image].
func (b *Buffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements [image.Image].
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements [image.Image].
func (b *Buffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return color.RGBA{}
	}
	p := b.RGBAt(x, y)
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 255}
}

// RGBA returns an opaque copy of the buffer as an [image.RGBA].
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	for i, j := 0, 0; i < len(b.pix); i, j = i+3, j+4 {
		img.Pix[j], img.Pix[j+1], img.Pix[j+2], img.Pix[j+3] = b.pix[i], b.pix[i+1], b.pix[i+2], 255
	}
	return img
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(%dx%d %s)", b.width, b.height, b.id)
}
