package filters

import "github.com/soypat/kirkkaus"

// Brightness offset limits. At these limits every channel saturates.
const (
	MinBrightness = -255
	MaxBrightness = 255
)

// NewBrightness creates a filter adding offset to each RGB channel independently,
// saturating at 0 and 255. Offset is clamped to [MinBrightness, MaxBrightness].
func NewBrightness(offset int) *PointFilter {
	var lut [256]uint8
	offset = clampOffset(offset)
	fillBrightnessLUT(&lut, offset)
	return &PointFilter{
		In:  kirkkaus.ShapeRGB888,
		Out: kirkkaus.ShapeRGB888,
		Fn: func(dst, src []byte) {
			for i, v := range src {
				dst[i] = lut[v]
			}
		},
		Ctrls: []kirkkaus.Control{
			&kirkkaus.ControlOrdered[int]{
				Name:        "Brightness",
				Description: "Offset added to every color channel",
				Value:       offset,
				Min:         MinBrightness,
				Max:         MaxBrightness,
				Step:        1,
				OnChange: func(v int) error {
					fillBrightnessLUT(&lut, v)
					return nil
				},
			},
		},
	}
}

// AdjustBrightness returns src with offset added to every channel, saturating at 0 and 255.
// Since buffers are immutable a zero offset returns src itself.
func AdjustBrightness(src *kirkkaus.Buffer, offset int) *kirkkaus.Buffer {
	if offset == 0 || src.Empty() {
		return src
	}
	f := NewBrightness(offset)
	pix := src.Buffer()
	dst := make([]byte, len(pix))
	// Buffer rows are unpadded so the whole image is one contiguous run of pixels.
	f.Fn(dst, pix)
	return kirkkaus.NewBufferRaw(src.Width(), src.Height(), dst)
}

func fillBrightnessLUT(lut *[256]uint8, offset int) {
	for v := range lut {
		lut[v] = clampChannel(v + offset)
	}
}

func clampChannel(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}

func clampOffset(offset int) int {
	return min(max(offset, MinBrightness), MaxBrightness)
}
