package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog/log"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/kirkkaus/config"
	"github.com/soypat/kirkkaus/display"
	"github.com/soypat/kirkkaus/filters"
	"github.com/soypat/kirkkaus/preview"
)

const (
	margin       = 16
	sliderWidth  = 400
	sliderHeight = 20
	panelTop     = 2*margin + sliderHeight + 16
)

var (
	background  = color.RGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xff}
	sliderTrack = color.RGBA{R: 0x60, G: 0x60, B: 0x68, A: 0xff}
	sliderFill  = color.RGBA{R: 0x7d, G: 0x56, B: 0xf4, A: 0xff}
	sliderHover = color.RGBA{R: 0xa0, G: 0x80, B: 0xff, A: 0xff}
)

// previewWindow is the ebiten game showing the brightness slider, preview and histogram.
type previewWindow struct {
	path     string
	state    *preview.State
	ctrl     *preview.Controller
	sink     *display.EbitenSink
	width    int
	height   int
	slider   image.Rectangle
	hovered  bool
	dragging bool
	lastErr  string
}

func runWindow(cfg *config.Config, path string) error {
	state, err := preview.NewState(cfg.PreviewOptions())
	if err != nil {
		return err
	}
	sink := display.NewEbitenSink()
	ctrl := preview.NewController(preview.NewFileDecoder(path), sink, log.Logger)
	ctrl.SetCaching(cfg.Preview.Cache)
	if cfg.GPU.Enabled {
		defer setupGPU(ctrl)()
	}
	w := &previewWindow{
		path:  path,
		state: state,
		ctrl:  ctrl,
		sink:  sink,
	}
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(w)
}

func (w *previewWindow) Update() error {
	w.slider = image.Rect(margin, margin, margin+min(sliderWidth, max(w.width-200, 100)), margin+sliderHeight)
	cursor := image.Pt(ebiten.CursorPosition())
	w.hovered = cursor.In(w.slider)

	if w.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		w.dragging = true
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		w.dragging = false
	}
	if w.dragging {
		w.dragTo(cursor.X)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if err := w.state.Mode.Cycle(); err != nil {
			return err
		}
	}

	wx, wy := ebiten.Wheel()
	_, err := w.ctrl.Refresh(w.state, preview.Input{
		Hovered: w.hovered,
		Scroll:  ms2.Vec{X: float32(wx), Y: float32(wy)},
	})
	if err != nil {
		if msg := err.Error(); msg != w.lastErr {
			log.Error().Err(err).Msg("refresh failed")
			w.lastErr = msg
		}
	} else {
		w.lastErr = ""
	}
	return nil
}

// dragTo sets the brightness from the cursor position over the slider.
func (w *previewWindow) dragTo(x int) {
	b := w.state.Brightness
	frac := float64(x-w.slider.Min.X) / float64(w.slider.Dx())
	frac = min(max(frac, 0), 1)
	v := b.Min + int(math.Round(frac*float64(b.Max-b.Min)))
	if v != b.Value {
		if err := b.Set(v); err != nil {
			log.Debug().Err(err).Int("value", v).Msg("slider drag rejected")
		}
	}
}

func (w *previewWindow) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	w.drawSlider(screen)

	switch w.state.Status {
	case preview.LoadPending:
		ebitenutil.DebugPrintAt(screen, "Loading "+w.path+"...", margin, panelTop)
		return
	case preview.LoadFailed:
		ebitenutil.DebugPrintAt(screen, "Could not load image: "+w.state.Message, margin, panelTop)
		return
	}
	if w.lastErr != "" {
		ebitenutil.DebugPrintAt(screen, w.lastErr, margin, w.height-margin-16)
	}

	tex, _ := w.state.Preview.(*ebiten.Image)
	hist, _ := w.state.Histogram.(*ebiten.Image)
	if tex == nil || hist == nil {
		ebitenutil.DebugPrintAt(screen, "Image too small to preview", margin, panelTop)
		return
	}
	histWidth := filters.HistogramBins
	availW := float64(w.width - 3*margin - histWidth)
	availH := float64(w.height - panelTop - margin)
	drawFit(screen, tex, margin, panelTop, availW, availH)
	histX := float64(w.width - margin - histWidth)
	drawFit(screen, hist, histX, panelTop+16, float64(histWidth), availH-16)
	label := fmt.Sprintf("Histogram: %s [M]", w.state.Mode.Value)
	ebitenutil.DebugPrintAt(screen, label, int(histX), panelTop)
}

func (w *previewWindow) drawSlider(screen *ebiten.Image) {
	b := w.state.Brightness
	r := w.slider
	x, y := float32(r.Min.X), float32(r.Min.Y)
	width, height := float32(r.Dx()), float32(r.Dy())
	vector.DrawFilledRect(screen, x, y+height/2-2, width, 4, sliderTrack, false)

	frac := float32(b.Value-b.Min) / float32(max(b.Max-b.Min, 1))
	knob := sliderFill
	if w.hovered || w.dragging {
		knob = sliderHover
	}
	vector.DrawFilledRect(screen, x, y+height/2-2, frac*width, 4, knob, false)
	vector.DrawFilledRect(screen, x+frac*width-4, y, 8, height, knob, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: %d", b.Name, b.Value), r.Max.X+margin, r.Min.Y+2)
}

// drawFit draws img scaled to fit in the given box, keeping its aspect ratio.
func drawFit(dst, img *ebiten.Image, x, y, maxW, maxH float64) {
	if maxW <= 0 || maxH <= 0 {
		return
	}
	bounds := img.Bounds()
	scale := min(maxW/float64(bounds.Dx()), maxH/float64(bounds.Dy()))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(img, op)
}

func (w *previewWindow) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.width, w.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
