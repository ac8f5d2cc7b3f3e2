package main

import "math/rand"

// LinearSchedule anneals a value linearly from Begin to
// End over NumSteps timesteps.
type LinearSchedule struct {
	Begin    float64
	End      float64
	NumSteps int

	Value float64
}

// NewLinearSchedule creates a schedule at its initial
// value.
func NewLinearSchedule(begin, end float64, numSteps int) *LinearSchedule {
	return &LinearSchedule{Begin: begin, End: end, NumSteps: numSteps, Value: begin}
}

// Update sets Value for timestep t.
func (l *LinearSchedule) Update(t int) {
	if t >= l.NumSteps || l.NumSteps <= 0 {
		l.Value = l.End
		return
	}
	frac := float64(t) / float64(l.NumSteps)
	l.Value = l.Begin + frac*(l.End-l.Begin)
}

// LinearExploration is an epsilon-greedy strategy whose
// epsilon follows a LinearSchedule.
type LinearExploration struct {
	*LinearSchedule

	NumActions int
	Rand       *rand.Rand
}

// Action returns a random action with probability
// epsilon, and best otherwise.
func (l *LinearExploration) Action(best int) int {
	if l.Rand.Float64() < l.Value {
		return l.Rand.Intn(l.NumActions)
	}
	return best
}
