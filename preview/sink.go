package preview

import "github.com/soypat/kirkkaus"

// Keys under which the controller hands images to a [Sink].
// They are stable for the lifetime of the program and distinct per logical image.
const (
	KeyPreview   = "kirkkaus/preview"
	KeyHistogram = "kirkkaus/histogram"
)

// Handle is an opaque reference to an image uploaded to a [Sink].
type Handle any

// Sink displays images. Upload replaces any image previously uploaded under the same key.
// The sink may keep a reference to img since buffers are immutable.
type Sink interface {
	Upload(key string, img *kirkkaus.Buffer) (Handle, error)
}
