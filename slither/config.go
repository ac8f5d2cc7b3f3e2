package slither

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/unixpickle/essentials"
)

var ErrBadConfig = errors.New("bad configuration")

const (
	EnvName = "internet.SlitherIO-v0"

	ScreenWidth  = 1024
	ScreenHeight = 768
)

// DefaultKeys are the key combinations of the discrete
// action space, after the implicit no-op action.
var DefaultKeys = []string{"left", "right", "space", "left space", "right space"}

// VNCOptions configures the VNC connection to a remote.
type VNCOptions struct {
	Encoding         string `json:"encoding"`
	CompressLevel    int    `json:"compress_level"`
	FineQualityLevel int    `json:"fine_quality_level"`
}

// ConfigureOptions are the options passed to a Universe
// environment's configure call.
// StartTimeout is in seconds.
type ConfigureOptions struct {
	FPS          float64    `json:"fps"`
	Remotes      int        `json:"remotes"`
	StartTimeout float64    `json:"start_timeout"`
	VNCDriver    string     `json:"vnc_driver"`
	VNCKwargs    VNCOptions `json:"vnc_kwargs"`
}

// DefaultConfigureOptions returns a single remote at 5 FPS
// with a 15 minute start timeout.
func DefaultConfigureOptions() ConfigureOptions {
	return ConfigureOptions{
		FPS:          5,
		Remotes:      1,
		StartTimeout: (15 * time.Minute).Seconds(),
		VNCDriver:    "go",
		VNCKwargs: VNCOptions{
			Encoding:         "tight",
			CompressLevel:    0,
			FineQualityLevel: 50,
		},
	}
}

// Universe converts the options to the keyword arguments
// expected by Universe.
func (c *ConfigureOptions) Universe() map[string]interface{} {
	return map[string]interface{}{
		"fps":           c.FPS,
		"remotes":       c.Remotes,
		"start_timeout": c.StartTimeout,
		"vnc_driver":    c.VNCDriver,
		"vnc_kwargs": map[string]interface{}{
			"encoding":           c.VNCKwargs.Encoding,
			"compress_level":     c.VNCKwargs.CompressLevel,
			"fine_quality_level": c.VNCKwargs.FineQualityLevel,
		},
	}
}

// Config stores every parameter of the preprocessing
// pipeline.
type Config struct {
	// Size of raw remote frames.
	ScreenWidth  int `json:"screen_width"`
	ScreenHeight int `json:"screen_height"`

	Crop    Cropper       `json:"crop"`
	Keys    []string      `json:"keys"`
	Segment SegmentConfig `json:"segment"`

	Zoom      float64 `json:"zoom"`
	TrimFirst bool    `json:"trim_first"`

	Configure ConfigureOptions `json:"configure"`
}

// DefaultConfig returns the configuration for the
// Slither.io game viewport.
func DefaultConfig() *Config {
	return &Config{
		ScreenWidth:  ScreenWidth,
		ScreenHeight: ScreenHeight,
		Crop:         Cropper{Top: 84, Left: 18, Height: 300, Width: 500},
		Keys:         append([]string(nil), DefaultKeys...),
		Segment:      DefaultSegmentConfig(),
		Zoom:         0.25,
		TrimFirst:    true,
		Configure:    DefaultConfigureOptions(),
	}
}

// LoadConfig reads a JSON configuration on top of the
// defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (cfg *Config, err error) {
	defer essentials.AddCtxTo("load config", &err)
	cfg = DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return essentials.AddCtx("save config", err)
	}
	return essentials.AddCtx("save config", os.WriteFile(path, data, 0644))
}

// Validate checks the configuration for errors which would
// otherwise only show up on the first frame.
func (c *Config) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrBadConfig, c.ScreenHeight,
			c.ScreenWidth)
	}
	if err := c.Crop.Validate(c.ScreenWidth, c.ScreenHeight); err != nil {
		return err
	}
	if !(c.Zoom > 0) || math.IsInf(c.Zoom, 0) {
		return fmt.Errorf("%w: zoom %v", ErrBadConfig, c.Zoom)
	}
	resizer := &Resizer{Scale: c.Zoom, TrimFirst: c.TrimFirst}
	if w, h := resizer.OutputSize(c.Crop.Width, c.Crop.Height); w <= 0 || h <= 0 {
		return fmt.Errorf("%w: zoom %v leaves a %dx%d observation", ErrBadConfig,
			c.Zoom, h, w)
	}
	seg := &c.Segment
	if seg.ErosionHeight < 1 || seg.ErosionWidth < 1 {
		return fmt.Errorf("%w: erosion window %dx%d", ErrBadConfig, seg.ErosionHeight,
			seg.ErosionWidth)
	}
	if !(seg.BlurSigma >= 0) || math.IsInf(seg.BlurSigma, 0) {
		return fmt.Errorf("%w: blur sigma %v", ErrBadConfig, seg.BlurSigma)
	}
	if !(seg.RelThreshold >= 0) || seg.SnakeThreshold < 0 {
		return fmt.Errorf("%w: thresholds rel=%v snake=%d", ErrBadConfig,
			seg.RelThreshold, seg.SnakeThreshold)
	}
	if !(c.Configure.FPS > 0) || c.Configure.Remotes < 1 {
		return fmt.Errorf("%w: fps=%v remotes=%d", ErrBadConfig, c.Configure.FPS,
			c.Configure.Remotes)
	}
	if _, err := NewActionEncoder(c.Keys); err != nil {
		return err
	}
	return nil
}
