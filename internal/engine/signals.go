package engine

// Signal is a typed, payload-free gameplay notification. Scenes and front
// ends emit them; the engine (and anything else subscribed) reacts.
type Signal int

const (
	SignalRestartLevel Signal = iota
	SignalPlayerDeath
	SignalLevelComplete
)

func (s Signal) String() string {
	switch s {
	case SignalRestartLevel:
		return "restart_level"
	case SignalPlayerDeath:
		return "player_death"
	case SignalLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// Dispatcher is an explicit, composition-root-owned signal bus with typed
// variants and visible subscriber lists. Single-threaded: Emit calls
// subscribers synchronously in subscription order.
type Dispatcher struct {
	subs map[Signal][]func()
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{subs: make(map[Signal][]func())}
}

func (d *Dispatcher) Subscribe(sig Signal, fn func()) {
	if fn == nil {
		return
	}
	d.subs[sig] = append(d.subs[sig], fn)
}

func (d *Dispatcher) Emit(sig Signal) {
	for _, fn := range d.subs[sig] {
		fn()
	}
}
