package preview

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/soypat/kirkkaus"
	"github.com/soypat/kirkkaus/filters"
)

// AdjustFunc applies a brightness offset to src. It allows swapping the CPU
// implementation for [filters.BrightnessFilterGPU.Adjust].
type AdjustFunc func(src *kirkkaus.Buffer, offset int) (*kirkkaus.Buffer, error)

func adjustCPU(src *kirkkaus.Buffer, offset int) (*kirkkaus.Buffer, error) {
	return filters.AdjustBrightness(src, offset), nil
}

// Frame is the result of a refresh cycle.
type Frame struct {
	Status LoadState
	// Preview and Histogram are nil when there is nothing to display.
	Preview   *kirkkaus.Buffer
	Histogram *kirkkaus.Buffer
	// Cached is true when the buffers were served from the previous run.
	Cached bool
}

// Controller runs the preview pipeline: downsample, brightness and histogram.
type Controller struct {
	decoder Decoder
	sink    Sink
	log     zerolog.Logger
	adjust  AdjustFunc
	memo    memo
	noCache bool
}

// NewController creates a controller reading images from decoder and displaying them on sink.
func NewController(decoder Decoder, sink Sink, log zerolog.Logger) *Controller {
	return &Controller{
		decoder: decoder,
		sink:    sink,
		log:     log,
		adjust:  adjustCPU,
	}
}

// SetAdjuster replaces the brightness implementation. A nil fn restores the CPU implementation.
func (c *Controller) SetAdjuster(fn AdjustFunc) {
	if fn == nil {
		fn = adjustCPU
	}
	c.adjust = fn
	c.memo.reset()
}

// SetCaching enables or disables reuse of the previous run's output.
func (c *Controller) SetCaching(enabled bool) {
	c.noCache = !enabled
	c.memo.reset()
}

// CacheStats returns the number of pipeline runs served from and missing the cache.
func (c *Controller) CacheStats() (hits, misses int) {
	return c.memo.hits, c.memo.misses
}

// ApplyInput nudges the brightness by one step in the scroll direction
// when the brightness control is hovered. It reports whether brightness changed.
func (c *Controller) ApplyInput(s *State, in Input) (bool, error) {
	if !in.Hovered {
		return false, nil
	}
	step := kirkkaus.ScrollStep(in.Scroll.Y)
	if step == 0 {
		return false, nil
	}
	old := s.Brightness.Value
	v, err := kirkkaus.Nudge(s.Brightness, step*max(s.Brightness.Step, 1))
	if err != nil {
		return false, fmt.Errorf("nudge brightness: %w", err)
	}
	return v != old, nil
}

// Refresh applies in to s and brings the displayed images up to date.
// A pending load skips the pipeline, a failed load sets s.Message. Neither is an error.
// Errors are only returned when the sink rejects an upload or input can not be applied,
// after which the next call to Refresh retries.
func (c *Controller) Refresh(s *State, in Input) (Frame, error) {
	if _, err := c.ApplyInput(s, in); err != nil {
		return Frame{Status: s.Status}, err
	}
	res := c.decoder.Poll()
	if res.State == LoadReady && res.Image == nil {
		res = Failed(errors.New("decoder returned no image"))
	}
	s.Status = res.State
	switch res.State {
	case LoadPending:
		return Frame{Status: LoadPending}, nil
	case LoadFailed:
		c.fail(s, res.Err)
		return Frame{Status: LoadFailed}, nil
	}
	s.Message = ""

	key := frameKey{
		source:     res.Image.ID(),
		brightness: s.Brightness.Value,
		factor:     max(s.Factor, 1),
		mode:       s.Mode.Value,
	}
	frame := Frame{Status: LoadReady}
	var ok bool
	if !c.noCache {
		frame.Preview, frame.Histogram, ok = c.memo.get(key)
		frame.Cached = ok
	}
	if !ok {
		frame.Preview, frame.Histogram = c.run(res.Image, key)
		if !c.noCache {
			c.memo.put(key, frame.Preview, frame.Histogram)
		}
	}
	if frame.Preview == nil || frame.Preview.Empty() {
		s.clearHandles()
		return Frame{Status: LoadReady, Cached: frame.Cached}, nil
	}
	if s.hasUploaded && s.uploaded == key {
		return frame, nil
	}
	if err := c.upload(s, frame); err != nil {
		return frame, err
	}
	s.uploaded, s.hasUploaded = key, true
	return frame, nil
}

func (c *Controller) run(src *kirkkaus.Buffer, key frameKey) (preview, histogram *kirkkaus.Buffer) {
	start := time.Now()
	small := filters.Downsample(src, key.factor)
	if small.Empty() {
		c.log.Debug().
			Int("width", src.Width()).Int("height", src.Height()).Int("factor", key.factor).
			Msg("downsampled image is empty, nothing to display")
		return small, nil
	}
	preview, err := c.adjust(small, key.brightness)
	if err != nil {
		c.log.Warn().Err(err).Msg("brightness adjuster failed; using cpu")
		preview = filters.AdjustBrightness(small, key.brightness)
	}
	h := filters.NewHistogramMode(preview, key.mode)
	histogram = h.Render(filters.HistogramHeight)
	c.log.Debug().
		Int("brightness", key.brightness).Int("factor", key.factor).Stringer("mode", key.mode).
		Int("width", preview.Width()).Int("height", preview.Height()).
		Dur("took", time.Since(start)).
		Msg("pipeline run")
	return preview, histogram
}

func (c *Controller) upload(s *State, frame Frame) error {
	h, err := c.sink.Upload(KeyPreview, frame.Preview)
	if err != nil {
		return fmt.Errorf("upload preview: %w", err)
	}
	s.Preview = h
	h, err = c.sink.Upload(KeyHistogram, frame.Histogram)
	if err != nil {
		return fmt.Errorf("upload histogram: %w", err)
	}
	s.Histogram = h
	return nil
}

func (c *Controller) fail(s *State, err error) {
	msg := "failed to load image"
	if err != nil {
		msg = err.Error()
	}
	if msg != s.Message {
		c.log.Error().Err(err).Msg("image load failed")
	}
	s.Message = msg
	s.clearHandles()
}
