package slither

import (
	"errors"

	"github.com/unixpickle/essentials"
	gym "github.com/unixpickle/gym-socket-api/binding-go"
)

// GymTransport is a Transport backed by a Universe
// environment running behind gym-socket-api.
//
// The API server unvectorizes Universe environments, so
// every batch has exactly one entry.
type GymTransport struct {
	Env gym.Env

	// Dimensions of raw frames.
	Width  int
	Height int
}

// Dial connects to a gym-socket-api server and creates a
// Slither.io environment with the preprocessing pipeline.
//
// If recordDir is non-empty, every episode is recorded to
// that directory, resuming any existing recordings.
func Dial(host string, cfg *Config, recordDir string) (env *Env, err error) {
	defer essentials.AddCtxTo("dial slither env", &err)
	client, err := gym.Make(host, EnvName)
	if err != nil {
		return nil, err
	}
	env, err = NewGymEnv(client, cfg, recordDir)
	if err != nil {
		client.Close()
		return nil, err
	}
	return env, nil
}

// NewGymEnv builds the pipeline on top of a connected
// Universe environment.
//
// The server applies BlockingReset and Unvectorize on
// configure, so only Vision is requested here.
func NewGymEnv(client gym.Env, cfg *Config, recordDir string) (*Env, error) {
	if err := client.UniverseWrap("Vision", nil); err != nil {
		return nil, err
	}
	transport := &GymTransport{
		Env:    client,
		Width:  cfg.ScreenWidth,
		Height: cfg.ScreenHeight,
	}
	if recordDir != "" {
		if err := transport.Monitor(recordDir); err != nil {
			return nil, err
		}
	}
	return NewEnv(transport, cfg)
}

// Monitor records a video of every episode to dir.
func (g *GymTransport) Monitor(dir string) error {
	return g.Env.Monitor(dir, false, true, true)
}

// Reset resets the remote.
func (g *GymTransport) Reset() ([]*Frame, error) {
	obs, err := g.Env.Reset()
	if err != nil {
		return nil, err
	}
	frame, err := g.frame(obs)
	if err != nil {
		return nil, err
	}
	return []*Frame{frame}, nil
}

// Step sends the events of the first action batch to the
// remote.
func (g *GymTransport) Step(actions [][]KeyEvent) (obs []*Frame,
	rewards []float64, dones []bool, info interface{}, err error) {
	events := []interface{}{}
	if len(actions) > 0 {
		for _, evt := range actions[0] {
			events = append(events, evt.Universe())
		}
	}
	rawObs, reward, done, info, err := g.Env.Step(events)
	if err != nil {
		return
	}
	frame, err := g.frame(rawObs)
	if err != nil {
		return
	}
	return []*Frame{frame}, []float64{reward}, []bool{done}, info, nil
}

// Configure configures the Universe remote.
func (g *GymTransport) Configure(opts *ConfigureOptions) error {
	return g.Env.UniverseConfigure(opts.Universe())
}

// Close closes the connection to the API server.
func (g *GymTransport) Close() error {
	return g.Env.Close()
}

func (g *GymTransport) frame(obs gym.Obs) (*Frame, error) {
	if obs == nil {
		return nil, nil
	}
	if u8, ok := obs.(gym.Uint8Obs); ok {
		return FrameFromPixels(g.Width, g.Height, 3, u8.Uint8Obs())
	}
	var value interface{}
	if err := obs.Unmarshal(&value); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return nil, errors.New("observation is not a pixel array")
}
