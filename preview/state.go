package preview

import (
	"fmt"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/kirkkaus"
	"github.com/soypat/kirkkaus/filters"
)

// Input is what the UI layer reports each refresh cycle.
type Input struct {
	// Hovered is true when the pointer is over the brightness control.
	Hovered bool
	// Scroll is the raw wheel delta of this cycle. Only Y is used.
	Scroll ms2.Vec
}

// Options configures a new [State].
type Options struct {
	BrightnessMin int
	BrightnessMax int
	Brightness    int
	Step          int
	Factor        int
	Mode          filters.GrayscaleMode
}

// DefaultOptions returns the full brightness range and a downsample factor of 4.
func DefaultOptions() Options {
	return Options{
		BrightnessMin: filters.MinBrightness,
		BrightnessMax: filters.MaxBrightness,
		Step:          1,
		Factor:        4,
		Mode:          filters.GrayscaleAverage,
	}
}

// Validate checks the options describe a usable state.
func (o Options) Validate() error {
	switch {
	case o.BrightnessMin < filters.MinBrightness || o.BrightnessMax > filters.MaxBrightness:
		return fmt.Errorf("brightness bounds %d..%d exceed %d..%d", o.BrightnessMin, o.BrightnessMax, filters.MinBrightness, filters.MaxBrightness)
	case o.BrightnessMin > o.BrightnessMax:
		return fmt.Errorf("brightness min %d greater than max %d", o.BrightnessMin, o.BrightnessMax)
	case o.Brightness < o.BrightnessMin || o.Brightness > o.BrightnessMax:
		return fmt.Errorf("initial brightness %d outside %d..%d", o.Brightness, o.BrightnessMin, o.BrightnessMax)
	case o.Step < 1:
		return fmt.Errorf("brightness step must be positive, got %d", o.Step)
	case o.Factor < 1:
		return fmt.Errorf("downsample factor must be at least 1, got %d", o.Factor)
	}
	return nil
}

// State is the mutable state of the preview UI. It is owned by the UI loop and
// passed to [Controller.Refresh] every cycle; it is not safe for concurrent use.
type State struct {
	Brightness *kirkkaus.ControlOrdered[int]
	Mode       *kirkkaus.ControlEnum[filters.GrayscaleMode]
	Factor     int

	// Status is the source image load state seen by the last refresh.
	Status LoadState
	// Message is a user facing error message, empty when there is nothing to report.
	Message string
	// Preview and Histogram are the handles returned by the sink. Both are nil
	// when there is nothing to display.
	Preview   Handle
	Histogram Handle

	uploaded    frameKey
	hasUploaded bool
}

// NewState creates the UI state from validated options.
func NewState(opts Options) (*State, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &State{
		Brightness: &kirkkaus.ControlOrdered[int]{
			Name:        "Brightness",
			Description: "Offset added to every color channel of the preview",
			Value:       opts.Brightness,
			Min:         opts.BrightnessMin,
			Max:         opts.BrightnessMax,
			Step:        opts.Step,
		},
		Mode: &kirkkaus.ControlEnum[filters.GrayscaleMode]{
			Name:        "Histogram",
			Description: "Intensity used to bucket histogram pixels",
			Value:       opts.Mode,
			ValidValues: filters.GrayscaleModes,
		},
		Factor: opts.Factor,
		Status: LoadPending,
	}, nil
}

// Controls returns the user editable controls of the state.
func (s *State) Controls() []kirkkaus.Control {
	return []kirkkaus.Control{s.Brightness, s.Mode}
}

func (s *State) clearHandles() {
	s.Preview, s.Histogram = nil, nil
	s.hasUploaded = false
}
