package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/zabarnes/RattLe/slither"
)

// Flags holds the command-line options.
type Flags struct {
	// GymHost is the address of a gym-socket-api server
	// started with Universe support.
	GymHost string

	// ConfigPath is an optional JSON file overriding the
	// preprocessing defaults.
	ConfigPath string

	// RecordDir is an optional path where videos of
	// evaluation episodes are stored.
	RecordDir   string
	RecordEvery int

	Episodes int
	MaxSteps int

	EpsBegin float64
	EpsEnd   float64
	EpsSteps int

	FPS          float64
	Remotes      int
	StartTimeout time.Duration

	Render      bool
	ViewerScale int
	Debug       bool

	set *flag.FlagSet
}

// AddFlags adds the options to the flag package's global
// set of flags.
func (f *Flags) AddFlags() {
	f.AddFlagsTo(flag.CommandLine)
}

// AddFlagsTo adds the options to a flag set.
func (f *Flags) AddFlagsTo(fs *flag.FlagSet) {
	f.set = fs
	defaults := slither.DefaultConfigureOptions()
	fs.StringVar(&f.GymHost, "gym", "localhost:5001", "host for gym-socket-api")
	fs.StringVar(&f.ConfigPath, "config", "slither.json", "preprocessing config (JSON)")
	fs.StringVar(&f.RecordDir, "record", "", "directory for evaluation videos")
	fs.IntVar(&f.RecordEvery, "record-every", 10, "episodes between evaluation runs")
	fs.IntVar(&f.Episodes, "episodes", 1000, "number of training episodes")
	fs.IntVar(&f.MaxSteps, "max-steps", 5*60*5, "max timesteps per episode")
	fs.Float64Var(&f.EpsBegin, "eps-begin", 1, "initial exploration rate")
	fs.Float64Var(&f.EpsEnd, "eps-end", 0.1, "final exploration rate")
	fs.IntVar(&f.EpsSteps, "eps-steps", 1000000, "timesteps to anneal exploration")
	fs.Float64Var(&f.FPS, "fps", defaults.FPS, "remote frame rate (overrides config)")
	fs.IntVar(&f.Remotes, "remotes", defaults.Remotes, "number of remotes (overrides config)")
	fs.DurationVar(&f.StartTimeout, "start-timeout",
		time.Duration(defaults.StartTimeout)*time.Second,
		"remote start timeout (overrides config)")
	fs.BoolVar(&f.Render, "render", false, "show raw and processed frames")
	fs.IntVar(&f.ViewerScale, "scale", 4, "viewer magnification")
	fs.BoolVar(&f.Debug, "debug", false, "log environment state changes")
}

// Validate checks the options after parsing.
func (f *Flags) Validate() error {
	if f.RecordDir != "" && f.RecordEvery < 1 {
		return fmt.Errorf("-record-every must be at least 1 (got %d)", f.RecordEvery)
	}
	if f.Episodes < 0 || f.MaxSteps < 1 {
		return fmt.Errorf("bad episode budget: episodes=%d max-steps=%d", f.Episodes,
			f.MaxSteps)
	}
	if f.ViewerScale < 1 {
		return fmt.Errorf("-scale must be at least 1 (got %d)", f.ViewerScale)
	}
	return nil
}

// Apply copies the remote options which were set on the
// command line into a config.
func (f *Flags) Apply(cfg *slither.Config) {
	if f.set == nil {
		return
	}
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "fps":
			cfg.Configure.FPS = f.FPS
		case "remotes":
			cfg.Configure.Remotes = f.Remotes
		case "start-timeout":
			cfg.Configure.StartTimeout = f.StartTimeout.Seconds()
		}
	})
}
