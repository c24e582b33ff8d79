package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/soypat/kirkkaus/config"
	"github.com/soypat/kirkkaus/display"
	"github.com/soypat/kirkkaus/preview"
)

var (
	captionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
)

// runRender decodes path, runs the pipeline once and writes the results to stdout.
func runRender(cfg *config.Config, path string, cols int) error {
	state, err := preview.NewState(cfg.PreviewOptions())
	if err != nil {
		return err
	}
	dec := preview.NewFileDecoder(path)
	res := dec.Wait()
	if res.State == preview.LoadFailed {
		fmt.Println(warnStyle.Render(res.Err.Error()))
		return res.Err
	}

	sink := display.NewKittySink(os.Stdout, cols, 0)
	ctrl := preview.NewController(dec, sink, log.Logger)
	if cfg.GPU.Enabled {
		defer setupGPU(ctrl)()
	}
	frame, err := ctrl.Refresh(state, preview.Input{})
	if err != nil {
		return err
	}
	if frame.Preview == nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%s is too small for downsample factor %d", filepath.Base(path), state.Factor)))
		return nil
	}
	fmt.Println(captionStyle.Render(fmt.Sprintf("%s  %dx%d → %dx%d  brightness %+d  histogram %s",
		filepath.Base(path),
		res.Image.Width(), res.Image.Height(),
		frame.Preview.Width(), frame.Preview.Height(),
		state.Brightness.Value, state.Mode.Value)))
	return nil
}
