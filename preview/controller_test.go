package preview

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/kirkkaus"
	"github.com/soypat/kirkkaus/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	key string
	img *kirkkaus.Buffer
}

// recordSink records uploads and returns the upload number as handle.
type recordSink struct {
	uploads []upload
	err     error
}

func (s *recordSink) Upload(key string, img *kirkkaus.Buffer) (Handle, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.uploads = append(s.uploads, upload{key: key, img: img})
	return len(s.uploads), nil
}

// switchDecoder returns whatever result is currently set.
type switchDecoder struct{ result LoadResult }

func (d *switchDecoder) Poll() LoadResult { return d.result }

var gray128 = kirkkaus.RGB{R: 128, G: 128, B: 128}

func newTestState(t *testing.T, factor int) *State {
	t.Helper()
	opts := DefaultOptions()
	opts.Factor = factor
	s, err := NewState(opts)
	require.NoError(t, err)
	return s
}

func TestRefreshPending(t *testing.T) {
	sink := &recordSink{}
	c := NewController(&switchDecoder{result: Pending()}, sink, zerolog.Nop())
	s := newTestState(t, 2)
	frame, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.Equal(t, LoadPending, frame.Status)
	assert.Nil(t, frame.Preview)
	assert.Empty(t, sink.uploads)
	assert.Empty(t, s.Message)
	hits, misses := c.CacheStats()
	assert.Zero(t, hits+misses, "pending load must not run the pipeline")
}

func TestRefreshFailedThenReady(t *testing.T) {
	sink := &recordSink{}
	dec := &switchDecoder{result: Failed(errors.New("no such file"))}
	c := NewController(dec, sink, zerolog.Nop())
	s := newTestState(t, 2)

	frame, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.Equal(t, LoadFailed, frame.Status)
	assert.Equal(t, "no such file", s.Message)
	assert.Empty(t, sink.uploads)

	dec.result = Ready(kirkkaus.Fill(20, 10, gray128))
	frame, err = c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.Equal(t, LoadReady, frame.Status)
	assert.Empty(t, s.Message)
	require.Len(t, sink.uploads, 2)
	assert.NotNil(t, s.Preview)
	assert.NotNil(t, s.Histogram)

	dec.result = Ready(nil)
	frame, err = c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.Equal(t, LoadFailed, frame.Status)
	assert.NotEmpty(t, s.Message)
	assert.Nil(t, s.Preview)
}

func TestRefreshScenario(t *testing.T) {
	sink := &recordSink{}
	c := NewController(DecoderFunc(func() LoadResult {
		return Ready(kirkkaus.Fill(20, 10, gray128))
	}), sink, zerolog.Nop())
	s := newTestState(t, 2)
	require.NoError(t, s.Brightness.Set(50))

	frame, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	require.Equal(t, 10, frame.Preview.Width())
	require.Equal(t, 5, frame.Preview.Height())
	for _, p := range frame.Preview.Pixels() {
		require.Equal(t, kirkkaus.RGB{R: 178, G: 178, B: 178}, p)
	}
	require.Equal(t, filters.HistogramBins, frame.Histogram.Width())
	require.Equal(t, filters.HistogramHeight, frame.Histogram.Height())
	assert.Equal(t, uint8(255), frame.Histogram.RGBAt(178, 0).R)
	assert.Equal(t, uint8(0), frame.Histogram.RGBAt(128, filters.HistogramHeight-1).R)

	require.Len(t, sink.uploads, 2)
	assert.Equal(t, KeyPreview, sink.uploads[0].key)
	assert.Equal(t, KeyHistogram, sink.uploads[1].key)
	assert.NotEqual(t, KeyPreview, KeyHistogram)
	assert.Same(t, frame.Preview, sink.uploads[0].img)
	assert.Same(t, frame.Histogram, sink.uploads[1].img)
}

func TestRefreshCache(t *testing.T) {
	src := kirkkaus.Fill(40, 40, gray128)
	sink := &recordSink{}
	dec := &switchDecoder{result: Ready(src)}
	c := NewController(dec, sink, zerolog.Nop())
	s := newTestState(t, 4)

	first, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Same(t, first.Preview, second.Preview)
	assert.Len(t, sink.uploads, 2, "unchanged inputs must not upload again")

	// Brightness change invalidates.
	_, err = c.Refresh(s, Input{Hovered: true, Scroll: ms2.Vec{Y: 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Brightness.Value)
	assert.Len(t, sink.uploads, 4)

	// Same pixels but a new source image invalidates too.
	dec.result = Ready(kirkkaus.Fill(40, 40, gray128))
	third, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Len(t, sink.uploads, 6)

	s.Factor = 8
	fourth, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.False(t, fourth.Cached)
	assert.Equal(t, 5, fourth.Preview.Width())

	require.NoError(t, s.Mode.Cycle())
	fifth, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.False(t, fifth.Cached)

	hits, misses := c.CacheStats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 5, misses)

	c.SetCaching(false)
	sixth, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.False(t, sixth.Cached)
	assert.True(t, sixth.Preview.Equal(fifth.Preview))
}

func TestRefreshDegenerate(t *testing.T) {
	sink := &recordSink{}
	c := NewController(DecoderFunc(func() LoadResult {
		return Ready(kirkkaus.Fill(3, 30, gray128))
	}), sink, zerolog.Nop())
	s := newTestState(t, 4)
	frame, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.Equal(t, LoadReady, frame.Status)
	assert.Nil(t, frame.Preview)
	assert.Nil(t, frame.Histogram)
	assert.Empty(t, sink.uploads)
	assert.Nil(t, s.Preview)

	frame, err = c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.True(t, frame.Cached)
	assert.Nil(t, frame.Preview)
	assert.Empty(t, sink.uploads)
}

func TestRefreshSinkError(t *testing.T) {
	sink := &recordSink{err: errors.New("gpu lost")}
	c := NewController(DecoderFunc(func() LoadResult {
		return Ready(kirkkaus.Fill(8, 8, gray128))
	}), sink, zerolog.Nop())
	s := newTestState(t, 2)
	_, err := c.Refresh(s, Input{})
	require.Error(t, err)
	assert.ErrorIs(t, err, sink.err)

	sink.err = nil
	_, err = c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.Len(t, sink.uploads, 2, "upload retried on next cycle")
}

func TestRefreshAdjusterFallback(t *testing.T) {
	sink := &recordSink{}
	c := NewController(DecoderFunc(func() LoadResult {
		return Ready(kirkkaus.Fill(8, 8, gray128))
	}), sink, zerolog.Nop())
	calls := 0
	c.SetAdjuster(func(src *kirkkaus.Buffer, offset int) (*kirkkaus.Buffer, error) {
		calls++
		return nil, errors.New("device lost")
	})
	s := newTestState(t, 2)
	require.NoError(t, s.Brightness.Set(-28))
	frame, err := c.Refresh(s, Input{})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, kirkkaus.RGB{R: 100, G: 100, B: 100}, frame.Preview.Pixel(0))
}

func TestApplyInput(t *testing.T) {
	c := NewController(DecoderFunc(Pending), &recordSink{}, zerolog.Nop())
	s := newTestState(t, 1)
	tests := []struct {
		in   Input
		want int
	}{
		{Input{Hovered: true, Scroll: ms2.Vec{Y: 3.7}}, 1},
		{Input{Hovered: true, Scroll: ms2.Vec{Y: -0.0001}}, 0},
		{Input{Hovered: true, Scroll: ms2.Vec{Y: -0.0001}}, -1},
		{Input{Hovered: true, Scroll: ms2.Vec{Y: 0}}, -1},
		{Input{Hovered: true, Scroll: ms2.Vec{X: 5}}, -1},
		{Input{Hovered: false, Scroll: ms2.Vec{Y: 10}}, -1},
	}
	for i, test := range tests {
		_, err := c.ApplyInput(s, test.in)
		require.NoError(t, err)
		assert.Equal(t, test.want, s.Brightness.Value, "input %d", i)
	}
}

func TestApplyInputClamps(t *testing.T) {
	c := NewController(DecoderFunc(Pending), &recordSink{}, zerolog.Nop())
	opts := DefaultOptions()
	opts.BrightnessMin, opts.BrightnessMax, opts.Brightness = -100, 100, 100
	s, err := NewState(opts)
	require.NoError(t, err)

	changed, err := c.ApplyInput(s, Input{Hovered: true, Scroll: ms2.Vec{Y: 1}})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 100, s.Brightness.Value)

	require.NoError(t, s.Brightness.Set(-100))
	changed, err = c.ApplyInput(s, Input{Hovered: true, Scroll: ms2.Vec{Y: -2}})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, -100, s.Brightness.Value)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
	bad := []func(*Options){
		func(o *Options) { o.BrightnessMin = -256 },
		func(o *Options) { o.BrightnessMax = 300 },
		func(o *Options) { o.BrightnessMin, o.BrightnessMax = 10, -10 },
		func(o *Options) { o.Brightness = 256 },
		func(o *Options) { o.Step = 0 },
		func(o *Options) { o.Factor = 0 },
	}
	for i, mod := range bad {
		opts := DefaultOptions()
		mod(&opts)
		_, err := NewState(opts)
		assert.Error(t, err, "case %d", i)
	}
}

func TestFileDecoder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gray.png")
	require.NoError(t, imaging.Save(kirkkaus.Fill(6, 4, gray128), path))

	d := NewFileDecoder(path)
	res := d.Wait()
	require.Equal(t, LoadReady, res.State, "err: %v", res.Err)
	assert.Equal(t, 6, res.Image.Width())
	assert.Equal(t, 4, res.Image.Height())
	assert.Equal(t, gray128, res.Image.Pixel(0))
	assert.Equal(t, path, d.Path())

	missing := NewFileDecoder(filepath.Join(dir, "missing.png"))
	res = missing.Wait()
	assert.Equal(t, LoadFailed, res.State)
	assert.ErrorIs(t, res.Err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	res = NewFileDecoder(garbage).Wait()
	assert.Equal(t, LoadFailed, res.State)
	assert.Error(t, res.Err)
}

func TestLoadStateString(t *testing.T) {
	assert.Equal(t, "pending", LoadPending.String())
	assert.Equal(t, "ready", LoadReady.String())
	assert.Equal(t, "failed", LoadFailed.String())
	assert.Equal(t, "LoadState(7)", LoadState(7).String())
}
