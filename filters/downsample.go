package filters

import (
	"fmt"
	"image"

	"github.com/soypat/kirkkaus"
)

// MaxDownsampleFactor is the largest factor exposed by the [Downsampler] control.
const MaxDownsampleFactor = 64

// Downsample reduces src by an integer factor using strided subsampling:
// output pixel (x, y) is the source pixel at (x*factor, y*factor).
// No averaging is done, trading aliasing for speed on large previews.
// The result is floor(width/factor) × floor(height/factor) and may be empty.
// Downsample panics if factor < 1.
func Downsample(src *kirkkaus.Buffer, factor int) *kirkkaus.Buffer {
	if factor < 1 {
		panic(fmt.Sprintf("filters: invalid downsample factor %d", factor))
	}
	if factor == 1 {
		return src
	}
	w, h := src.Width()/factor, src.Height()/factor
	if w == 0 || h == 0 {
		return kirkkaus.NewBufferRaw(w, h, nil)
	}
	pix := src.Buffer()
	srcStride := 3 * src.Width()
	dst := make([]byte, 3*w*h)
	for y := 0; y < h; y++ {
		srcRow := pix[y*factor*srcStride:]
		dstRow := dst[3*y*w : 3*(y+1)*w]
		for x := 0; x < w; x++ {
			copy(dstRow[3*x:3*x+3], srcRow[3*x*factor:])
		}
	}
	return kirkkaus.NewBufferRaw(w, h, dst)
}

// Downsampler is the [kirkkaus.Filter] form of [Downsample]. Unlike [Downsample]
// it works on any RGB888 [kirkkaus.Image], reading rows only as needed.
type Downsampler struct {
	factor int
	ctrls  []kirkkaus.Control
}

var _ kirkkaus.Filter = (*Downsampler)(nil)

// NewDownsampler creates a downsampling filter. Factor is clamped to [1, MaxDownsampleFactor].
func NewDownsampler(factor int) *Downsampler {
	d := &Downsampler{factor: min(max(factor, 1), MaxDownsampleFactor)}
	d.ctrls = []kirkkaus.Control{
		&kirkkaus.ControlOrdered[int]{
			Name:        "Factor",
			Description: "Keep one of every factor pixels along each axis",
			Value:       d.factor,
			Min:         1,
			Max:         MaxDownsampleFactor,
			Step:        1,
			OnChange: func(v int) error {
				d.factor = v
				return nil
			},
		},
	}
	return d
}

// Factor returns the current downsampling stride.
func (d *Downsampler) Factor() int { return d.factor }

// ShapeIO implements [kirkkaus.Filter].
func (d *Downsampler) ShapeIO() (output, input kirkkaus.Shape) {
	return kirkkaus.ShapeRGB888, kirkkaus.ShapeRGB888
}

// Controls implements [kirkkaus.Filter].
func (d *Downsampler) Controls() []kirkkaus.Control { return d.ctrls }

// OutputDims returns the dimensions Process would produce for an input of the given size.
func (d *Downsampler) OutputDims(width, height int) kirkkaus.Dims {
	w, h := width/d.factor, height/d.factor
	return kirkkaus.Dims{Width: w, Height: h, Stride: 3 * w, Shape: kirkkaus.ShapeRGB888}
}

// Process implements [kirkkaus.Filter]. When roi is set the region is subsampled
// starting at its top-left corner. A zero-area result returns the output dims
// with an error for which [kirkkaus.IsEmpty] is true.
func (d *Downsampler) Process(dst []byte, src kirkkaus.Image, roi *image.Rectangle) (kirkkaus.Dims, error) {
	if dst == nil {
		return kirkkaus.Dims{}, errInPlaceResize
	}
	srcDims := src.Dims()
	if srcDims.Shape != kirkkaus.ShapeRGB888 {
		return kirkkaus.Dims{}, errShapeMismatch
	}
	region := image.Rect(0, 0, srcDims.Width, srcDims.Height)
	if roi != nil {
		region = *roi
	}
	dstDims := d.OutputDims(region.Dx(), region.Dy())
	if err := dstDims.Validate(); err != nil {
		return dstDims, err
	}
	dst, _, err := kirkkaus.ValidateProcessArgs(dst, dstDims, src, roi)
	if err != nil {
		return kirkkaus.Dims{}, err
	}
	rowBuf := make([]byte, srcDims.SizeRow())
	for y := 0; y < dstDims.Height; y++ {
		srcRow, err := kirkkaus.ImageRow(rowBuf, src, region.Min.Y+y*d.factor)
		if err != nil {
			return kirkkaus.Dims{}, err
		}
		dstRow := dst[y*dstDims.Stride : (y+1)*dstDims.Stride]
		for x := 0; x < dstDims.Width; x++ {
			off := 3 * (region.Min.X + x*d.factor)
			copy(dstRow[3*x:3*x+3], srcRow[off:off+3])
		}
	}
	return dstDims, nil
}
