package slither

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownKey  = errors.New("unknown key name")
	ErrActionRange = errors.New("action index out of range")
)

// Keysyms maps key names to X11 keysym codes, as used by
// the VNC key events of a Universe remote.
var Keysyms = map[string]uint32{
	"backspace": 0xff08,
	"tab":       0xff09,
	"return":    0xff0d,
	"enter":     0xff0d,
	"escape":    0xff1b,
	"space":     0x20,
	"left":      0xff51,
	"up":        0xff52,
	"right":     0xff53,
	"down":      0xff54,
	"shift":     0xffe1,
	"ctrl":      0xffe3,
	"alt":       0xffe9,
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		Keysyms[string(c)] = uint32(c)
	}
	for c := '0'; c <= '9'; c++ {
		Keysyms[string(c)] = uint32(c)
	}
}

// Keysym looks up the code for a key name.
func Keysym(name string) (uint32, error) {
	code, ok := Keysyms[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return code, nil
}

// A KeyEvent presses or releases a virtual key.
type KeyEvent struct {
	Key  string
	Down bool
}

// Universe returns the event in the tuple form accepted by
// a Universe environment.
func (k KeyEvent) Universe() []interface{} {
	return []interface{}{"KeyEvent", k.Key, k.Down}
}

func (k KeyEvent) String() string {
	if k.Down {
		return k.Key + "↓"
	}
	return k.Key + "↑"
}

// KeyState tracks which keys are held down.
type KeyState struct {
	keys []string
	down map[string]bool
}

// NewKeyState creates a KeyState which maps held keys to
// action indices.
// The order of keys is the priority order used by Index.
func NewKeyState(keys []string) *KeyState {
	return &KeyState{
		keys: append([]string(nil), keys...),
		down: map[string]bool{},
	}
}

// Apply updates the held keys.
// Releasing a key which is not held is a no-op.
func (k *KeyState) Apply(events []KeyEvent) {
	for _, evt := range events {
		if evt.Down {
			k.down[evt.Key] = true
		} else {
			delete(k.down, evt.Key)
		}
	}
}

// Index returns 1 plus the position of the first tracked
// key that is held, or 0 if no tracked key is held.
func (k *KeyState) Index() int {
	for i, key := range k.keys {
		if k.down[key] {
			return i + 1
		}
	}
	return 0
}

// Held returns the held keys in sorted order.
func (k *KeyState) Held() []string {
	var res []string
	for key := range k.down {
		res = append(res, key)
	}
	sort.Strings(res)
	return res
}

// An ActionEncoder maps discrete actions to key event
// batches.
//
// Action 0 releases every tracked key.
// Action i holds the keys of combination i-1 and releases
// all the other tracked keys.
type ActionEncoder struct {
	keys    []string
	actions [][]KeyEvent
	state   *KeyState
}

// NewActionEncoder creates an encoder for key
// combinations, each a space-separated list of keys.
// Key names are case-insensitive and tracked in lower
// case.
func NewActionEncoder(combos []string) (*ActionEncoder, error) {
	uniq := map[string]bool{}
	var split [][]string
	for _, combo := range combos {
		keys := strings.Fields(strings.ToLower(combo))
		if len(keys) == 0 {
			return nil, fmt.Errorf("%w: empty combination", ErrUnknownKey)
		}
		for _, key := range keys {
			if _, err := Keysym(key); err != nil {
				return nil, err
			}
			uniq[key] = true
		}
		split = append(split, keys)
	}

	var tracked []string
	for key := range uniq {
		tracked = append(tracked, key)
	}
	sort.Strings(tracked)

	res := &ActionEncoder{keys: tracked, state: NewKeyState(tracked)}
	for _, held := range append([][]string{nil}, split...) {
		heldSet := map[string]bool{}
		for _, key := range held {
			heldSet[key] = true
		}
		var events []KeyEvent
		for _, key := range tracked {
			events = append(events, KeyEvent{Key: key, Down: heldSet[key]})
		}
		res.actions = append(res.actions, events)
	}
	return res, nil
}

// NumActions returns the number of discrete actions,
// including the no-op action.
func (a *ActionEncoder) NumActions() int {
	return len(a.actions)
}

// Keys returns the tracked keys in priority order.
func (a *ActionEncoder) Keys() []string {
	return append([]string(nil), a.keys...)
}

// Encode returns a fresh batch of key events for an
// action.
func (a *ActionEncoder) Encode(action int) ([]KeyEvent, error) {
	if action < 0 || action >= len(a.actions) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrActionRange, action,
			len(a.actions)-1)
	}
	return append([]KeyEvent(nil), a.actions[action]...), nil
}

// Decode applies a batch of events to the encoder's key
// state and returns the resulting action index.
//
// The round trip Decode(Encode(i)) == i only holds for
// combinations made of a single key which no earlier key
// in priority order shadows.
func (a *ActionEncoder) Decode(events []KeyEvent) int {
	a.state.Apply(events)
	return a.state.Index()
}
