package preview

import (
	"fmt"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/soypat/kirkkaus"

	// Register formats beyond the standard library's for imaging.Open.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadState is the state of a source image load.
type LoadState uint8

const (
	// LoadPending means the image is still being decoded. Not an error.
	LoadPending LoadState = iota
	// LoadReady means the image decoded successfully.
	LoadReady
	// LoadFailed means decoding failed and will not be retried by the decoder.
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return fmt.Sprintf("LoadState(%d)", uint8(s))
	}
}

// LoadResult is the outcome of polling a [Decoder]. Image is set only when
// State is LoadReady and Err only when State is LoadFailed.
type LoadResult struct {
	State LoadState
	Image *kirkkaus.Buffer
	Err   error
}

// Pending returns a LoadResult in the LoadPending state.
func Pending() LoadResult { return LoadResult{State: LoadPending} }

// Ready returns a LoadResult holding img.
func Ready(img *kirkkaus.Buffer) LoadResult { return LoadResult{State: LoadReady, Image: img} }

// Failed returns a LoadResult holding err.
func Failed(err error) LoadResult { return LoadResult{State: LoadFailed, Err: err} }

// Decoder supplies the source image. Poll must not block.
type Decoder interface {
	Poll() LoadResult
}

// DecoderFunc adapts a function to the [Decoder] interface.
type DecoderFunc func() LoadResult

func (f DecoderFunc) Poll() LoadResult { return f() }

// FileDecoder decodes an image file in the background.
type FileDecoder struct {
	path   string
	mu     sync.Mutex
	result LoadResult
	done   chan struct{}
}

// NewFileDecoder starts decoding the image at path. EXIF orientation is applied.
func NewFileDecoder(path string) *FileDecoder {
	d := &FileDecoder{path: path, result: Pending(), done: make(chan struct{})}
	go d.decode()
	return d
}

func (d *FileDecoder) decode() {
	defer close(d.done)
	var result LoadResult
	img, err := imaging.Open(d.path, imaging.AutoOrientation(true))
	if err != nil {
		result = Failed(fmt.Errorf("open %s: %w", d.path, err))
	} else {
		result = Ready(kirkkaus.FromImage(img))
	}
	d.mu.Lock()
	d.result = result
	d.mu.Unlock()
}

// Poll implements [Decoder].
func (d *FileDecoder) Poll() LoadResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

// Path returns the path being decoded.
func (d *FileDecoder) Path() string { return d.path }

// Wait blocks until decoding finishes and returns the result.
func (d *FileDecoder) Wait() LoadResult {
	<-d.done
	return d.Poll()
}
