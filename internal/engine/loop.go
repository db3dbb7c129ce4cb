package engine

import "time"

// Loop is the fixed-timestep scheduler. The host front end drives it once per
// animation frame via Tick; the loop drains elapsed time in fixed steps so the
// simulation rate is decoupled from the display rate.
type Loop struct {
	fixedStep time.Duration
	maxSteps  int

	running  bool
	paused   bool
	lastTime time.Time
	budget   time.Duration

	update func(dt float64)
	render func()
}

func NewLoop(fixedStep time.Duration, maxSteps int, update func(dt float64), render func()) *Loop {
	if fixedStep <= 0 {
		fixedStep = time.Second / 60
	}
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Loop{
		fixedStep: fixedStep,
		maxSteps:  maxSteps,
		update:    update,
		render:    render,
	}
}

// Start arms the loop. Calling it while already running is a no-op.
func (l *Loop) Start(now time.Time) {
	if l.running {
		return
	}
	l.running = true
	l.paused = false
	l.lastTime = now
	l.budget = 0
}

// Pause freezes simulation and rendering. The host keeps ticking so Resume is
// observed promptly.
func (l *Loop) Pause() {
	if !l.running || l.paused {
		return
	}
	l.paused = true
}

// Resume unfreezes the loop. The elapsed-time baseline is reset to the resume
// instant so a long pause never turns into a catch-up burst of fixed steps.
func (l *Loop) Resume(now time.Time) {
	if !l.running || !l.paused {
		return
	}
	l.paused = false
	l.lastTime = now
}

// Stop disarms the loop; the next Tick reports false and the host stops
// scheduling frames.
func (l *Loop) Stop() {
	l.running = false
	l.paused = false
}

func (l *Loop) Running() bool { return l.running }
func (l *Loop) Paused() bool  { return l.paused }

// FixedStep returns the simulation step size.
func (l *Loop) FixedStep() time.Duration { return l.fixedStep }

// Tick runs one animation frame: zero or more fixed update steps, then
// exactly one render. It returns whether the host should schedule another
// frame. While paused both update and render are skipped but ticking
// continues, and the baseline is advanced so pause time never enters the
// budget.
func (l *Loop) Tick(now time.Time) bool {
	if !l.running {
		return false
	}

	dt := now.Sub(l.lastTime)
	l.lastTime = now
	if l.paused {
		return l.running
	}
	if dt < 0 {
		dt = 0
	}
	l.budget += dt

	steps := 0
	for l.budget >= l.fixedStep && steps < l.maxSteps && l.running && !l.paused {
		l.update(l.fixedStep.Seconds())
		l.budget -= l.fixedStep
		steps++
	}
	if steps == l.maxSteps && l.budget >= l.fixedStep {
		// After a stall (say, a backgrounded window) we drop the excess
		// instead of chasing it, trading simulated-time accuracy for
		// responsiveness.
		l.budget = 0
	}

	if l.running && !l.paused {
		l.render()
	}
	return l.running
}
