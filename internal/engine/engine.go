// Package engine is the loop-and-progression core: a fixed-timestep
// scheduler, the level-completion state machine over the chapter table, and
// the persisted player progress, wired to scene/presentation/persistence
// collaborators supplied by a front end.
package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redshift-arcade/ascent/internal/game"
	"github.com/redshift-arcade/ascent/internal/input"
)

// Scene is the gameplay collaborator: level geometry, physics, drawing. Load
// is asynchronous; the returned channel yields the result once, and the
// engine keeps ticking while it is pending.
type Scene interface {
	Load(chapter game.ChapterID, level int) <-chan error
	Update(dt float64)
	Render()
	Cleanup()
	Resize(width, height int)
}

// Presentation is the HUD/menu collaborator.
type Presentation interface {
	Update(p *game.Progress)
	Render()
	Resize(width, height int)
}

// Store is the persistence collaborator.
type Store interface {
	Load() (*game.Progress, error)
	Save(p *game.Progress) error
}

// Phase is the level-completion state machine's state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseCompleting
	PhaseTransitioningChapter
	PhaseLoadingNextLevel
	PhaseAllLevelsComplete
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseCompleting:
		return "completing"
	case PhaseTransitioningChapter:
		return "transitioning-chapter"
	case PhaseLoadingNextLevel:
		return "loading-next-level"
	case PhaseAllLevelsComplete:
		return "all-levels-complete"
	default:
		return "unknown"
	}
}

// ErrMissingCollaborator is returned by New when a required collaborator is
// absent. This is an initialization failure: fatal, no retry.
var ErrMissingCollaborator = errors.New("engine: missing collaborator")

// Engine is the composition root. It owns the loop, the progress record, the
// signal dispatcher and the transition sequencer; everything runs on the
// single host thread that calls Tick.
type Engine struct {
	cfg        Config
	loop       *Loop
	scene      Scene
	hud        Presentation
	store      Store
	progress   *game.Progress
	keys       *input.State
	signals    *Dispatcher
	transition *Sequencer

	phase       Phase
	pendingLoad <-chan error
	loadChapter game.ChapterID
	loadLevel   int

	// Captured pre-completion position; a failed advance rolls back to it.
	rollbackLevel   int
	rollbackChapter game.ChapterID
	rollbackArmed   bool

	queuedCompletions   int
	pausedForTransition bool

	lastTick      time.Time
	sinceAutosave time.Duration

	onError   func(error)
	destroyed bool
}

// New wires the engine. scene and store are required; hud may be nil for
// headless use.
func New(cfg Config, scene Scene, hud Presentation, store Store) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scene == nil {
		return nil, fmt.Errorf("%w: scene", ErrMissingCollaborator)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: store", ErrMissingCollaborator)
	}

	progress, err := store.Load()
	if err != nil {
		// Persistence failure on load is recovered locally: play on a
		// fresh record rather than refusing to start.
		log.Printf("engine: load progress failed, starting fresh: %v", err)
		progress = nil
	}
	if progress == nil {
		progress = game.NewProgress()
	}

	e := &Engine{
		cfg:      cfg,
		scene:    scene,
		hud:      hud,
		store:    store,
		progress: progress,
		keys:     input.NewState(),
		signals:  NewDispatcher(),
		phase:    PhasePlaying,
	}
	e.loop = NewLoop(cfg.FixedStep(), cfg.MaxCatchUpSteps, e.update, e.render)
	e.transition = NewSequencer(e.beginSceneLoad)

	e.signals.Subscribe(SignalLevelComplete, e.handleLevelComplete)
	e.signals.Subscribe(SignalRestartLevel, func() { e.RestartLevel() })
	e.signals.Subscribe(SignalPlayerDeath, e.handlePlayerDeath)
	return e, nil
}

// Signals returns the engine-owned dispatcher for scenes and front ends to
// emit gameplay notifications on.
func (e *Engine) Signals() *Dispatcher { return e.signals }

// Input returns the engine-owned keyboard state for front ends to feed and
// scenes to read.
func (e *Engine) Input() *input.State { return e.keys }

// Progress returns the player record for reading. Mutation goes through the
// named operations, invoked by the engine.
func (e *Engine) Progress() *game.Progress { return e.progress }

func (e *Engine) Phase() Phase            { return e.phase }
func (e *Engine) Transition() *Sequencer  { return e.transition }
func (e *Engine) Running() bool           { return e.loop.Running() }
func (e *Engine) Paused() bool            { return e.loop.Paused() }
func (e *Engine) Config() Config          { return e.cfg }

// SetErrorHandler installs the upstream failure hook for non-fatal errors
// (scene load failures, save retries).
func (e *Engine) SetErrorHandler(fn func(error)) { e.onError = fn }

// Start arms the loop and requests the scene for the saved position. A record
// already past the last level stays terminal; completion does not rearm.
func (e *Engine) Start(now time.Time) {
	if e.destroyed || e.loop.Running() {
		return
	}
	e.lastTick = now
	e.loop.Start(now)
	if _, ok := game.ChapterFor(e.progress.CurrentLevel); !ok {
		e.phase = PhaseAllLevelsComplete
		return
	}
	e.phase = PhaseLoadingNextLevel
	e.beginSceneLoad(e.progress.CurrentChapter, e.progress.CurrentLevel)
}

func (e *Engine) Pause() { e.loop.Pause() }

func (e *Engine) Resume(now time.Time) { e.loop.Resume(now) }

// Stop tears the engine down to idle: the loop disarms, the transition and
// its pending load are abandoned, the scene cleans up, and progress is
// persisted one last time.
func (e *Engine) Stop() {
	if !e.loop.Running() && e.destroyed {
		return
	}
	wasRunning := e.loop.Running()
	e.loop.Stop()
	e.transition.Cancel()
	e.pendingLoad = nil
	e.pausedForTransition = false
	if wasRunning {
		e.scene.Cleanup()
	}
	e.saveProgress(e.lastTick)
}

// Destroy stops the engine and marks it unusable.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.Stop()
	e.destroyed = true
}

// Resize propagates the new surface size to the collaborators.
func (e *Engine) Resize(width, height int) {
	e.scene.Resize(width, height)
	if e.hud != nil {
		e.hud.Resize(width, height)
	}
}

// Tick runs one animation frame: pending load resolution, transition
// progress, the fixed-step loop, and the autosave clock. Returns whether the
// host should keep scheduling frames.
func (e *Engine) Tick(now time.Time) bool {
	if e.destroyed {
		return false
	}
	if !e.lastTick.IsZero() {
		e.sinceAutosave += now.Sub(e.lastTick)
	}
	e.lastTick = now

	e.resolvePendingLoad()
	e.transition.Advance(now)
	alive := e.loop.Tick(now)

	if alive && e.sinceAutosave >= e.cfg.AutosaveInterval {
		e.sinceAutosave = 0
		e.saveProgress(now)
	}
	return alive
}

// update is the loop's fixed-step callback. Guarded against pause at its own
// entry so direct callers are safe too.
func (e *Engine) update(dt float64) {
	if e.loop.Paused() {
		return
	}
	if e.phase == PhasePlaying {
		e.scene.Update(dt)
	}
	e.progress.AddTimePlayed(dt)
	e.keys.EndFrame()
}

// render is the loop's once-per-tick callback.
func (e *Engine) render() {
	if e.loop.Paused() {
		return
	}
	e.scene.Render()
	if e.hud != nil {
		e.hud.Update(e.progress)
		e.hud.Render()
	}
}

// handleLevelComplete advances the progression. A completion signal arriving
// while a previous one is still resolving is queued, never dropped and never
// double-applied; one arriving after the climb is finished is ignored.
func (e *Engine) handleLevelComplete() {
	if e.phase == PhaseAllLevelsComplete {
		return
	}
	if e.phase != PhasePlaying {
		e.queuedCompletions++
		return
	}
	e.phase = PhaseCompleting

	prevLevel := e.progress.CurrentLevel
	prevChapter := e.progress.CurrentChapter
	nextLevel := prevLevel + 1

	e.progress.CompleteLevel(prevLevel)
	e.progress.RecordScore(e.progress.Stats.Score)
	e.progress.ClearLevelScore()

	nextChapter, ok := game.ChapterFor(nextLevel)
	if !ok {
		e.progress.AdvanceTo(nextLevel, prevChapter)
		e.saveProgress(e.lastTick)
		e.phase = PhaseAllLevelsComplete
		log.Printf("engine: level %d complete, climb finished", prevLevel)
		return
	}

	e.progress.AdvanceTo(nextLevel, nextChapter)
	// Durability before side effects: a crash mid-transition must not lose
	// the completion.
	e.saveProgress(e.lastTick)

	e.rollbackLevel = prevLevel
	e.rollbackChapter = prevChapter
	e.rollbackArmed = true

	if game.IsChapterBoundary(prevChapter, nextChapter) {
		e.phase = PhaseTransitioningChapter
		if !e.loop.Paused() {
			e.loop.Pause()
			e.pausedForTransition = true
		}
		e.transition.Begin(nextChapter, nextLevel, e.lastTick)
	} else {
		e.phase = PhaseLoadingNextLevel
		e.beginSceneLoad(nextChapter, nextLevel)
	}
}

func (e *Engine) handlePlayerDeath() {
	if e.phase != PhasePlaying {
		return
	}
	e.progress.Respawn()
	e.RestartLevel()
}

// RestartLevel reloads the current level. Ignored outside of Playing.
func (e *Engine) RestartLevel() {
	if e.destroyed || e.phase != PhasePlaying {
		return
	}
	e.rollbackArmed = false
	e.progress.Respawn()
	e.phase = PhaseLoadingNextLevel
	e.beginSceneLoad(e.progress.CurrentChapter, e.progress.CurrentLevel)
}

// LoadLevel jumps straight to a level, deriving the chapter when the caller
// passes none. It is the console/debug surface, not the completion path.
func (e *Engine) LoadLevel(chapter game.ChapterID, level int) error {
	if e.destroyed {
		return fmt.Errorf("engine: destroyed")
	}
	derived, ok := game.ChapterFor(level)
	if !ok {
		return fmt.Errorf("engine: no chapter for level %d", level)
	}
	if chapter == "" {
		chapter = derived
	}
	e.rollbackArmed = false
	e.progress.AdvanceTo(level, chapter)
	e.saveProgress(e.lastTick)
	e.phase = PhaseLoadingNextLevel
	e.beginSceneLoad(chapter, level)
	return nil
}

// ResetProgress discards the run (settings and high score survive) and, if
// the engine is running, reloads from the first level. Unlike the restart
// path this does rearm a finished climb.
func (e *Engine) ResetProgress() {
	if e.destroyed {
		return
	}
	e.transition.Cancel()
	e.pendingLoad = nil
	e.queuedCompletions = 0
	e.rollbackArmed = false
	e.progress.Reset()
	e.saveProgress(e.lastTick)
	if e.loop.Running() {
		e.phase = PhaseLoadingNextLevel
		e.beginSceneLoad(e.progress.CurrentChapter, e.progress.CurrentLevel)
	} else {
		e.phase = PhasePlaying
	}
}

// SaveNow persists progress immediately, outside the autosave cadence.
func (e *Engine) SaveNow() {
	if e.destroyed {
		return
	}
	e.saveProgress(e.lastTick)
}

// UpdateSettings applies new player settings and lets the autosave timer pick
// them up.
func (e *Engine) UpdateSettings(s game.Settings) {
	e.progress.UpdateSettings(s)
}

func (e *Engine) beginSceneLoad(chapter game.ChapterID, level int) {
	e.loadChapter = chapter
	e.loadLevel = level
	e.pendingLoad = e.scene.Load(chapter, level)
}

// resolvePendingLoad polls the outstanding scene load without blocking.
func (e *Engine) resolvePendingLoad() {
	if e.pendingLoad == nil {
		return
	}
	select {
	case err := <-e.pendingLoad:
		e.pendingLoad = nil
		e.onLoadResolved(err)
	default:
	}
}

func (e *Engine) onLoadResolved(err error) {
	if err != nil {
		log.Printf("engine: scene load %s level %d failed: %v", e.loadChapter, e.loadLevel, err)
		if e.rollbackArmed {
			// Roll the failed advance back as a unit and keep playing
			// on the previous level.
			e.progress.AdvanceTo(e.rollbackLevel, e.rollbackChapter)
			e.saveProgress(e.lastTick)
		}
		e.rollbackArmed = false
		e.phase = PhasePlaying
		e.resumeAfterTransition()
		if e.onError != nil {
			e.onError(fmt.Errorf("scene load %s level %d: %w", e.loadChapter, e.loadLevel, err))
		}
		return
	}

	e.rollbackArmed = false
	e.phase = PhasePlaying
	e.resumeAfterTransition()

	if e.queuedCompletions > 0 {
		e.queuedCompletions--
		e.handleLevelComplete()
	}
}

func (e *Engine) resumeAfterTransition() {
	if e.pausedForTransition {
		e.pausedForTransition = false
		e.loop.Resume(e.lastTick)
	}
}

func (e *Engine) saveProgress(now time.Time) {
	e.progress.MarkSaved(now)
	if err := e.store.Save(e.progress); err != nil {
		// Never fatal; the next autosave interval retries.
		log.Printf("engine: save progress failed, will retry: %v", err)
		if e.onError != nil {
			e.onError(fmt.Errorf("save progress: %w", err))
		}
	}
}
