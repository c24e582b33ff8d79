package display

import (
	"fmt"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/soypat/kirkkaus"
	"github.com/soypat/kirkkaus/preview"
)

// KittySink writes images to a terminal using the kitty graphics protocol.
// Each key is assigned its own image id so that re-uploading a key replaces
// the image on screen instead of adding another.
type KittySink struct {
	w    io.Writer
	cols uint32
	rows uint32
	ids  map[string]uint32
	next uint32
}

var _ preview.Sink = (*KittySink)(nil)

// NewKittySink creates a sink writing to w. cols and rows bound the displayed
// image size in terminal cells; zero lets the terminal use the image size.
func NewKittySink(w io.Writer, cols, rows int) *KittySink {
	return &KittySink{
		w:    w,
		cols: uint32(max(cols, 0)),
		rows: uint32(max(rows, 0)),
		ids:  make(map[string]uint32),
		next: 1,
	}
}

// ImageID returns the kitty image id used for key, allocating one if needed.
func (s *KittySink) ImageID(key string) uint32 {
	id, ok := s.ids[key]
	if !ok {
		id = s.next
		s.next++
		s.ids[key] = id
	}
	return id
}

// Upload implements [preview.Sink]. The handle is the kitty image id.
func (s *KittySink) Upload(key string, img *kirkkaus.Buffer) (preview.Handle, error) {
	if img.Empty() {
		return nil, fmt.Errorf("upload %s: empty image", key)
	}
	id := s.ImageID(key)
	opts := rasterm.KittyImgOpts{
		DstCols: s.cols,
		DstRows: s.rows,
		ImageId: id,
	}
	if err := rasterm.KittyWriteImage(s.w, img, opts); err != nil {
		return nil, fmt.Errorf("kitty write %s: %w", key, err)
	}
	if _, err := io.WriteString(s.w, "\n"); err != nil {
		return nil, err
	}
	return id, nil
}
