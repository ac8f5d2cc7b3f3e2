package slither

import (
	"errors"
	"fmt"
	"log"

	"github.com/unixpickle/essentials"
)

var (
	ErrNotReady      = errors.New("environment has not been reset")
	ErrRenderMode    = errors.New("unsupported render mode")
	ErrNoObservation = errors.New("remote produced no observation")
)

// Render modes supported by Env.Render.
const (
	RenderHuman    = "human"
	RenderRGBArray = "rgb_array"
)

// A Transport is a (possibly vectorized) remote
// environment.
// Only the first sub-environment of each batch is used.
type Transport interface {
	Reset() (obs []*Frame, err error)
	Step(actions [][]KeyEvent) (obs []*Frame, rewards []float64, dones []bool,
		info interface{}, err error)
	Configure(opts *ConfigureOptions) error
	Close() error
}

// An ImageViewer displays frames in a window.
// Close must be idempotent.
type ImageViewer interface {
	Imshow(f *Frame) error
	Close() error
}

// State is the lifecycle state of an Env.
type State int

const (
	Unstarted State = iota
	Ready
	Closed
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Env wraps a remote Slither.io environment, turning raw
// frames into segmented observations and discrete actions
// into key events.
//
// Frames flow through the stages in order: Cropper,
// Segmenter, then Resizer.
type Env struct {
	Transport Transport
	Cropper   *Cropper
	Segmenter *Segmenter
	Resizer   *Resizer
	Encoder   *ActionEncoder

	// NewViewer is called on the first human render.
	// If nil, human rendering fails.
	NewViewer func() (ImageViewer, error)

	// Logger, if non-nil, receives state transitions.
	Logger *log.Logger

	state   State
	rawObs  *Frame
	procObs *Frame
	viewer  ImageViewer
}

// NewEnv builds the preprocessing pipeline for cfg on top
// of a transport.
func NewEnv(t Transport, cfg *Config) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, essentials.AddCtx("create env", err)
	}
	encoder, err := NewActionEncoder(cfg.Keys)
	if err != nil {
		return nil, essentials.AddCtx("create env", err)
	}
	crop := cfg.Crop
	return &Env{
		Transport: t,
		Cropper:   &crop,
		Segmenter: &Segmenter{Config: cfg.Segment},
		Resizer:   &Resizer{Scale: cfg.Zoom, TrimFirst: cfg.TrimFirst},
		Encoder:   encoder,
	}, nil
}

// State returns the lifecycle state.
func (e *Env) State() State {
	return e.state
}

// NumActions returns the size of the discrete action
// space.
func (e *Env) NumActions() int {
	return e.Encoder.NumActions()
}

// ObservationShape returns the (height, width, depth) of
// observations.
func (e *Env) ObservationShape() (int, int, int) {
	h, w, d := e.Cropper.OutputShape()
	w, h = e.Resizer.OutputSize(w, h)
	return h, w, d
}

// Reset resets the remote and returns the first processed
// observation.
func (e *Env) Reset() (obs *Frame, err error) {
	defer essentials.AddCtxTo("reset slither env", &err)
	frames, err := e.Transport.Reset()
	if err != nil {
		return nil, err
	}
	if err := e.process(frames); err != nil {
		return nil, err
	}
	e.setState(Ready)
	return e.procObs.Copy(), nil
}

// Step sends the key events for an action to the remote
// and returns the next processed observation.
//
// Episode termination is only reported; the caller is
// responsible for calling Reset.
func (e *Env) Step(action int) (obs *Frame, reward float64, done bool,
	info interface{}, err error) {
	defer essentials.AddCtxTo("step slither env", &err)
	if e.state != Ready {
		return nil, 0, false, nil, ErrNotReady
	}
	events, err := e.Encoder.Encode(action)
	if err != nil {
		return nil, 0, false, nil, err
	}
	frames, rewards, dones, info, err := e.Transport.Step([][]KeyEvent{events})
	if err != nil {
		return nil, 0, false, nil, err
	}
	if len(rewards) == 0 || len(dones) == 0 {
		return nil, 0, false, nil, ErrNoObservation
	}
	if err := e.process(frames); err != nil {
		return nil, 0, false, nil, err
	}
	return e.procObs.Copy(), rewards[0], dones[0], info, nil
}

// Render displays or returns the last raw and processed
// frames side by side.
//
// With close set, the viewer window is released and
// nothing is rendered.
// In RenderRGBArray mode, the joined frame is returned.
// In RenderHuman mode, it is shown in a viewer created on
// demand, and nil is returned.
func (e *Env) Render(mode string, close bool) (*Frame, error) {
	if close {
		return nil, e.closeViewer()
	}
	if mode != RenderHuman && mode != RenderRGBArray {
		return nil, fmt.Errorf("render: %w: %q", ErrRenderMode, mode)
	}
	if e.rawObs == nil || e.procObs == nil {
		return nil, essentials.AddCtx("render", ErrNotReady)
	}
	img, err := Concat(e.rawObs, e.procObs)
	if err != nil {
		return nil, essentials.AddCtx("render", err)
	}
	if mode == RenderRGBArray {
		return img, nil
	}
	if e.viewer == nil {
		if e.NewViewer == nil {
			return nil, errors.New("render: no viewer available")
		}
		e.viewer, err = e.NewViewer()
		if err != nil {
			return nil, essentials.AddCtx("render", err)
		}
	}
	return nil, essentials.AddCtx("render", e.viewer.Imshow(img))
}

// Configure forwards options to the remote.
func (e *Env) Configure(opts *ConfigureOptions) error {
	return essentials.AddCtx("configure slither env", e.Transport.Configure(opts))
}

// Close releases the viewer and the remote.
func (e *Env) Close() error {
	viewerErr := e.closeViewer()
	err := e.Transport.Close()
	e.setState(Closed)
	if err != nil {
		return essentials.AddCtx("close slither env", err)
	}
	return viewerErr
}

func (e *Env) process(frames []*Frame) error {
	if len(frames) == 0 || frames[0] == nil {
		return ErrNoObservation
	}
	cropped, err := e.Cropper.Crop(frames[0])
	if err != nil {
		return err
	}
	segmented, err := e.Segmenter.Segment(cropped)
	if err != nil {
		return err
	}
	e.rawObs = e.Resizer.Resize(cropped)
	e.procObs = e.Resizer.Resize(segmented)
	return nil
}

func (e *Env) closeViewer() error {
	if e.viewer == nil {
		return nil
	}
	err := e.viewer.Close()
	e.viewer = nil
	return essentials.AddCtx("close viewer", err)
}

func (e *Env) setState(s State) {
	if e.Logger != nil && s != e.state {
		e.Logger.Printf("slither env: %s -> %s", e.state, s)
	}
	e.state = s
}
