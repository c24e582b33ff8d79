package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/soypat/kirkkaus/config"
	"github.com/spf13/pflag"
)

const usage = `Usage:
  kirkkaus [flags] IMAGE          open IMAGE in a preview window
  kirkkaus render [flags] IMAGE   print preview and histogram to a kitty-compatible terminal

Flags:
`

func main() {
	mode := "window"
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "render" {
		mode, args = "render", args[1:]
	}

	fs := pflag.NewFlagSet("kirkkaus", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	cols := fs.Int("cols", 60, "render: preview width in terminal cells")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		os.Exit(2)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	path := fs.Arg(0)

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load(fs)
	if err != nil {
		log.Warn().Err(err).Msg("config load failed; proceeding with defaults")
		cfg = config.DefaultConfig()
	}
	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)

	switch mode {
	case "render":
		err = runRender(cfg, path, *cols)
	default:
		err = runWindow(cfg, path)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", mode).Msg("kirkkaus failed")
	}
}
