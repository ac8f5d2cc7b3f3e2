// Command slither_run plays Slither.io through a Universe
// remote with an epsilon-greedy agent.
//
// The agent's Policy is the place to plug in a learned
// Q-function; by default it never presses a key, so the
// behavior is driven entirely by exploration.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/unixpickle/anyrl"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/rip"
	"github.com/zabarnes/RattLe/slither"
	"github.com/zabarnes/RattLe/slither/viewer"
)

// A Policy picks the greedy action for an observation.
type Policy interface {
	Act(obs []float64) int
}

// NoopPolicy always releases every key.
type NoopPolicy struct{}

// Act returns the no-op action.
func (NoopPolicy) Act(obs []float64) int {
	return 0
}

func main() {
	var flags Flags
	flags.AddFlags()
	flag.Parse()
	if err := flags.Validate(); err != nil {
		essentials.Die(err)
	}

	cfg, err := slither.LoadConfig(flags.ConfigPath)
	if err != nil {
		essentials.Die(err)
	}
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		essentials.Die(err)
	}

	log.Println("Connecting to", flags.GymHost, "...")
	env := dialEnv(&flags, cfg, "")
	defer env.Close()

	var recordEnv *slither.Env
	if flags.RecordDir != "" {
		recordEnv = dialEnv(&flags, cfg, flags.RecordDir)
		defer recordEnv.Close()
	}

	viewers := make(chan *viewer.Viewer, 1)
	if flags.Render {
		env.NewViewer = func() (slither.ImageViewer, error) {
			v := viewer.New("RattLe", flags.ViewerScale)
			viewers <- v
			return v, nil
		}
	}

	r := rip.NewRIP()
	trainer := &Trainer{
		Env:       env,
		RecordEnv: recordEnv,
		Flags:     &flags,
		Policy:    NoopPolicy{},
		Exploration: &LinearExploration{
			LinearSchedule: NewLinearSchedule(flags.EpsBegin, flags.EpsEnd,
				flags.EpsSteps),
			NumActions: env.NumActions(),
			Rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		},
	}

	// Play on a background goroutine so that the viewer
	// window can own the main goroutine.
	done := make(chan struct{})
	go func() {
		defer close(done)
		trainer.Run(r)
	}()

	log.Println("Running. Press Ctrl+C to stop.")
	for {
		select {
		case v := <-viewers:
			if err := v.Run(); err != nil {
				log.Println("viewer:", err)
			}
		case <-done:
			return
		}
	}
}

func dialEnv(flags *Flags, cfg *slither.Config, recordDir string) *slither.Env {
	env, err := slither.Dial(flags.GymHost, cfg, recordDir)
	must(err)
	if flags.Debug {
		env.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	must(env.Configure(&cfg.Configure))
	return env
}

// Trainer runs exploration episodes and periodic greedy
// evaluation episodes.
type Trainer struct {
	Env         *slither.Env
	RecordEnv   *slither.Env
	Flags       *Flags
	Policy      Policy
	Exploration *LinearExploration

	timestep int
}

// Run plays episodes until the episode budget is spent or
// r is done.
func (t *Trainer) Run(r *rip.RIP) {
	defer t.Env.Render("", true)
	for episode := 0; episode < t.Flags.Episodes && !r.Done(); episode++ {
		reward, steps := t.episode(t.Env, r, true)
		log.Printf("episode %d: reward=%f steps=%d epsilon=%f mem=%s", episode,
			reward, steps, t.Exploration.Value, memoryUsage())

		if t.RecordEnv != nil && t.Flags.RecordEvery > 0 && (episode+1)%t.Flags.RecordEvery == 0 {
			log.Println("Recording evaluation episode...")
			reward, steps := t.episode(t.RecordEnv, r, false)
			log.Printf("eval %d: reward=%f steps=%d", episode, reward, steps)
		}
	}
}

func (t *Trainer) episode(env *slither.Env, r *rip.RIP, explore bool) (reward float64,
	steps int) {
	numActions := env.NumActions()
	agentEnv := &anyrl.MaxStepsEnv{
		Env:      &slither.AnyrlEnv{Env: env},
		MaxSteps: t.Flags.MaxSteps,
	}
	obs, err := agentEnv.Reset()
	must(err)
	for done := false; !done && !r.Done(); steps++ {
		action := t.Policy.Act(obs)
		if explore {
			t.Exploration.Update(t.timestep)
			action = t.Exploration.Action(action)
			t.timestep++
		}
		var rew float64
		obs, rew, done, err = agentEnv.Step(slither.OneHot(action, numActions))
		must(err)
		reward += rew
		if t.Flags.Render && env == t.Env {
			if _, err := env.Render(slither.RenderHuman, false); errors.Is(err, viewer.ErrClosed) {
				log.Println("Viewer closed; rendering disabled.")
				t.Flags.Render = false
			} else {
				must(err)
			}
		}
	}
	return
}

func memoryUsage() string {
	stats, err := mem.VirtualMemory()
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%.1f%%", stats.UsedPercent)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
