package slither

import (
	"errors"
	"reflect"
	"testing"
)

func TestAnyrlEnv(t *testing.T) {
	env, transport := newTestEnv(t)
	a := &AnyrlEnv{Env: env}

	obs, err := a.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if len(obs) != 74*124*3 {
		t.Fatalf("unexpected observation size %d", len(obs))
	}
	for _, x := range obs {
		if x < 0 || x > 1 {
			t.Fatalf("observation value %f out of range", x)
		}
	}

	_, reward, _, err := a.Step(OneHot(3, env.NumActions()))
	if err != nil {
		t.Fatal(err)
	}
	if reward != 1.5 {
		t.Errorf("unexpected reward %f", reward)
	}
	expected := []KeyEvent{{"left", false}, {"right", false}, {"space", true}}
	if !reflect.DeepEqual(transport.Actions[0], expected) {
		t.Errorf("expected %v but got %v", expected, transport.Actions[0])
	}

	if _, _, _, err := a.Step([]float64{1}); !errors.Is(err, ErrActionRange) {
		t.Errorf("expected ErrActionRange but got %v", err)
	}
}

func TestArgMax(t *testing.T) {
	if idx := argMax([]float64{0.1, 0.7, 0.7, -1}); idx != 1 {
		t.Errorf("expected 1 but got %d", idx)
	}
}
