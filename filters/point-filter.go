package filters

import (
	"errors"
	"image"

	"github.com/soypat/kirkkaus"
)

var errShapeMismatch = errors.New("pixel shape mismatch")

// PointFunc processes a contiguous run of pixels.
// dst and src contain the same number of pixels worth of bytes.
// The function should iterate through pixels: for i := 0; i < len(src); i += bytesPerPixel { ... }
type PointFunc func(dst, src []byte)

// PointFilter applies a per-pixel transformation using a callback function.
// It handles the iteration, buffering, and ROI logic common to all per-pixel filters.
// The callback is invoked once per row with contiguous pixel data.
type PointFilter struct {
	In    kirkkaus.Shape
	Out   kirkkaus.Shape
	Fn    PointFunc
	Ctrls []kirkkaus.Control // User-defined controls for this filter.
}

var _ kirkkaus.Filter = (*PointFilter)(nil)

// ShapeIO implements [kirkkaus.Filter].
func (f *PointFilter) ShapeIO() (output, input kirkkaus.Shape) {
	return f.Out, f.In
}

// Controls implements [kirkkaus.Filter].
func (f *PointFilter) Controls() []kirkkaus.Control {
	return f.Ctrls
}

// Process implements [kirkkaus.Filter].
func (f *PointFilter) Process(dst []byte, src kirkkaus.Image, roi *image.Rectangle) (kirkkaus.Dims, error) {
	if f.Fn == nil {
		return kirkkaus.Dims{}, errNilPixelFunc
	}

	outShape, inShape := f.ShapeIO()
	srcDims := src.Dims()
	if srcDims.Shape != inShape {
		return kirkkaus.Dims{}, errShapeMismatch
	}

	inBytesPerPixel := (inShape.BitsPerPixel() + 7) / 8
	outBytesPerPixel := (outShape.BitsPerPixel() + 7) / 8

	region := image.Rect(0, 0, srcDims.Width, srcDims.Height)
	if roi != nil {
		region = *roi
	}
	outStride := region.Dx() * outBytesPerPixel
	dstDims := kirkkaus.Dims{
		Width:  region.Dx(),
		Height: region.Dy(),
		Stride: outStride,
		Shape:  outShape,
	}

	dst, _, err := kirkkaus.ValidateProcessArgs(dst, dstDims, src, roi)
	if err != nil {
		return kirkkaus.Dims{}, err
	}

	rowBuf := make([]byte, srcDims.SizeRow()) // Fallback buffer for non-buffered images.
	srcStart := region.Min.X * inBytesPerPixel
	srcEnd := region.Max.X * inBytesPerPixel
	for y := region.Min.Y; y < region.Max.Y; y++ {
		srcRow, err := kirkkaus.ImageRow(rowBuf, src, y)
		if err != nil {
			return kirkkaus.Dims{}, err
		}
		dstRowStart := (y - region.Min.Y) * outStride
		f.Fn(dst[dstRowStart:dstRowStart+outStride], srcRow[srcStart:srcEnd])
	}
	return dstDims, nil
}

var (
	errNilPixelFunc  = errorString("nil PointFunc")
	errInPlaceResize = errorString("resampling filter can not process in place")
)

type errorString string

func (e errorString) Error() string { return string(e) }
