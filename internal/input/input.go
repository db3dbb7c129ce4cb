// Package input tracks per-frame keyboard state for gameplay code. Front ends
// decode host key events into semantic keys and feed them in; simulation steps
// read the sets and close the frame with EndFrame.
package input

// Key is a semantic game key, already decoded from the host's key codes.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyThrust
	KeyAction
	KeyPause
	KeyConsole
)

// State is the per-frame keyboard tracker. It is owned by the engine and must
// only be mutated through its methods; justPressed/justReleased are cleared
// exactly once per simulation step, never per render.
type State struct {
	held         map[Key]bool
	justPressed  map[Key]bool
	justReleased map[Key]bool
}

func NewState() *State {
	return &State{
		held:         make(map[Key]bool),
		justPressed:  make(map[Key]bool),
		justReleased: make(map[Key]bool),
	}
}

// RecordKeyDown marks a key held. Repeat-fire down events for a key that is
// already held do not retrigger justPressed.
func (s *State) RecordKeyDown(k Key) {
	if !s.held[k] {
		s.justPressed[k] = true
	}
	s.held[k] = true
}

// RecordKeyUp releases a key.
func (s *State) RecordKeyUp(k Key) {
	s.held[k] = false
	s.justReleased[k] = true
	delete(s.justPressed, k)
}

// EndFrame clears the edge sets. The engine calls it once per fixed
// simulation step, after gameplay has sampled the state.
func (s *State) EndFrame() {
	clear(s.justPressed)
	clear(s.justReleased)
}

func (s *State) IsHeld(k Key) bool         { return s.held[k] }
func (s *State) IsJustPressed(k Key) bool  { return s.justPressed[k] }
func (s *State) IsJustReleased(k Key) bool { return s.justReleased[k] }
