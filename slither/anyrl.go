package slither

import (
	"fmt"

	"github.com/unixpickle/anyrl"
)

var _ anyrl.Env = &AnyrlEnv{}

// AnyrlEnv exposes an Env as an anyrl.Env.
//
// Observations are scaled to [0, 1].
// Actions are one-hot (or score) vectors with one entry
// per discrete action; the largest entry is taken.
type AnyrlEnv struct {
	Env *Env
}

// Reset resets the environment.
func (a *AnyrlEnv) Reset() (observation []float64, err error) {
	obs, err := a.Env.Reset()
	if err != nil {
		return nil, err
	}
	return FloatObservation(obs), nil
}

// Step takes the arg-max action.
func (a *AnyrlEnv) Step(action []float64) (observation []float64,
	reward float64, done bool, err error) {
	if len(action) != a.Env.NumActions() {
		return nil, 0, false, fmt.Errorf("%w: got %d scores for %d actions",
			ErrActionRange, len(action), a.Env.NumActions())
	}
	obs, reward, done, _, err := a.Env.Step(argMax(action))
	if err != nil {
		return nil, 0, false, err
	}
	return FloatObservation(obs), reward, done, nil
}

// FloatObservation flattens a frame into values in [0, 1].
func FloatObservation(f *Frame) []float64 {
	res := make([]float64, len(f.Pix))
	for i, x := range f.Pix {
		res[i] = float64(x) / 255
	}
	return res
}

// OneHot creates an action vector selecting one action.
func OneHot(action, numActions int) []float64 {
	res := make([]float64, numActions)
	res[action] = 1
	return res
}

func argMax(v []float64) int {
	var best int
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}
	return best
}
