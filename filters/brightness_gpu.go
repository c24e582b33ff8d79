package filters

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/soypat/kirkkaus"
)

// Channels are normalized to 0..1 so the offset is scaled by 1/255.
// pack4x8unorm rounds to the nearest integer which keeps results identical to [AdjustBrightness].
const brightnessTransform = `
fn transform(c: vec4<f32>) -> vec4<f32> {
    let rgb = clamp(c.rgb + vec3<f32>(u.param0 / 255.0), vec3<f32>(0.0), vec3<f32>(1.0));
    return vec4<f32>(rgb, c.a);
}
`

// BrightnessFilterGPU adds a saturating brightness offset using GPU compute.
type BrightnessFilterGPU struct {
	PointFilterGPU
	offset int
	ctrls  []kirkkaus.Control
}

// NewBrightnessGPU creates a GPU-accelerated brightness filter.
func NewBrightnessGPU(device *wgpu.Device, queue *wgpu.Queue, offset int) (*BrightnessFilterGPU, error) {
	f := &BrightnessFilterGPU{}
	if err := f.Init(device, queue, brightnessTransform); err != nil {
		return nil, err
	}
	f.SetOffset(offset)
	f.ctrls = []kirkkaus.Control{
		&kirkkaus.ControlOrdered[int]{
			Name:        "Brightness",
			Description: "Offset added to every color channel",
			Value:       f.offset,
			Min:         MinBrightness,
			Max:         MaxBrightness,
			Step:        1,
			OnChange: func(v int) error {
				f.SetOffset(v)
				return nil
			},
		},
	}
	return f, nil
}

// SetOffset sets the brightness offset, clamped to [MinBrightness, MaxBrightness].
func (f *BrightnessFilterGPU) SetOffset(offset int) {
	f.offset = clampOffset(offset)
	f.SetParam(0, float32(f.offset))
}

// Offset returns the current brightness offset.
func (f *BrightnessFilterGPU) Offset() int { return f.offset }

// Controls returns the filter's adjustable parameters.
func (f *BrightnessFilterGPU) Controls() []kirkkaus.Control {
	return f.ctrls
}

// Adjust is the GPU equivalent of [AdjustBrightness]. It is not safe to call
// concurrently with SetOffset.
func (f *BrightnessFilterGPU) Adjust(src *kirkkaus.Buffer, offset int) (*kirkkaus.Buffer, error) {
	if offset == 0 || src.Empty() {
		return src, nil
	}
	f.SetOffset(offset)
	result, err := f.Process(src.RGBA())
	if err != nil {
		return nil, err
	}
	return kirkkaus.FromImage(result), nil
}
