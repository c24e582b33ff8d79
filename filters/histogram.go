package filters

import (
	"github.com/soypat/kirkkaus"
)

// Histogram rendering defaults.
const (
	HistogramBins   = 256
	HistogramHeight = 500
)

// Histogram counts pixels by quantized intensity. Bucket i holds the number
// of pixels whose intensity truncates to i.
type Histogram [HistogramBins]int

// NewHistogram buckets src by average luminance (R+G+B)/3.
func NewHistogram(src *kirkkaus.Buffer) Histogram {
	return NewHistogramMode(src, GrayscaleAverage)
}

// NewHistogramMode buckets src using the intensity given by mode.
func NewHistogramMode(src *kirkkaus.Buffer, mode GrayscaleMode) Histogram {
	var h Histogram
	pix := src.Buffer()
	for i := 0; i < len(pix); i += 3 {
		h[mode.Gray(pix[i], pix[i+1], pix[i+2])]++
	}
	return h
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() (n int) {
	for _, c := range h {
		n += c
	}
	return n
}

// Max returns the largest bucket count.
func (h *Histogram) Max() (m int) {
	for _, c := range h {
		m = max(m, c)
	}
	return m
}

// Render draws the histogram as a binary bar chart HistogramBins wide and height tall.
// Bars grow upward from the bottom row and are scaled so the fullest bucket fills
// the whole column. Bars are white on black. An empty histogram renders all black.
func (h *Histogram) Render(height int) *kirkkaus.Buffer {
	const width = HistogramBins
	height = max(height, 0)
	pix := make([]byte, 3*width*height)
	maxCount := h.Max()
	if maxCount == 0 {
		return kirkkaus.NewBufferRaw(width, height, pix)
	}
	var filled [HistogramBins]float64
	for col, c := range h {
		filled[col] = float64(c) / float64(maxCount)
	}
	for row := 0; row < height; row++ {
		threshold := float64(height-row) / float64(height)
		line := pix[3*row*width : 3*(row+1)*width]
		for col := range filled {
			if filled[col] >= threshold {
				line[3*col], line[3*col+1], line[3*col+2] = 255, 255, 255
			}
		}
	}
	return kirkkaus.NewBufferRaw(width, height, pix)
}

// HistogramImage renders the average luminance histogram of src at the default height.
func HistogramImage(src *kirkkaus.Buffer) *kirkkaus.Buffer {
	h := NewHistogram(src)
	return h.Render(HistogramHeight)
}
