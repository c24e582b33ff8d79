package main

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog/log"
	"github.com/soypat/kirkkaus/filters"
	"github.com/soypat/kirkkaus/preview"
)

// setupGPU installs the GPU brightness filter on c. The returned function releases it.
// When no GPU is usable the controller keeps the CPU implementation.
func setupGPU(c *preview.Controller) (cleanup func()) {
	f, err := newBrightnessGPU()
	if err != nil {
		log.Warn().Err(err).Msg("gpu unavailable; adjusting brightness on cpu")
		return func() {}
	}
	c.SetAdjuster(f.Adjust)
	log.Info().Msg("adjusting brightness on gpu")
	return f.Cleanup
}

func newBrightnessGPU() (*filters.BrightnessFilterGPU, error) {
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return nil, fmt.Errorf("webgpu not available")
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	return filters.NewBrightnessGPU(device, device.GetQueue(), 0)
}
