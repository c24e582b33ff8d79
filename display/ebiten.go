// Package display implements preview sinks for a desktop window and for terminals.
package display

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/soypat/kirkkaus"
	"github.com/soypat/kirkkaus/preview"
)

// EbitenSink uploads images to GPU textures for drawing in an ebiten game.
// It must only be used from the ebiten Update and Draw goroutine.
type EbitenSink struct {
	textures map[string]*ebiten.Image
}

var _ preview.Sink = (*EbitenSink)(nil)

func NewEbitenSink() *EbitenSink {
	return &EbitenSink{textures: make(map[string]*ebiten.Image)}
}

// Upload implements [preview.Sink]. The texture previously uploaded under key is
// reused when the size matches, otherwise it is deallocated.
func (s *EbitenSink) Upload(key string, img *kirkkaus.Buffer) (preview.Handle, error) {
	if img.Empty() {
		return nil, fmt.Errorf("upload %s: empty image", key)
	}
	tex := s.textures[key]
	if tex != nil && tex.Bounds() != img.Bounds() {
		tex.Deallocate()
		tex = nil
	}
	if tex == nil {
		tex = ebiten.NewImage(img.Width(), img.Height())
		s.textures[key] = tex
	}
	tex.WritePixels(img.RGBA().Pix)
	return tex, nil
}

// Texture returns the texture uploaded under key or nil.
func (s *EbitenSink) Texture(key string) *ebiten.Image {
	return s.textures[key]
}
