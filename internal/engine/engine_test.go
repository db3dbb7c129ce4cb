package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/redshift-arcade/ascent/internal/game"
)

type sceneLoad struct {
	chapter game.ChapterID
	level   int
}

// fakeScene satisfies Scene. In auto mode loads resolve on the next tick; in
// manual mode the test completes them through the pending channel.
type fakeScene struct {
	manual  bool
	pending chan error

	loads    []sceneLoad
	updates  int
	renders  int
	cleanups int
	width    int
	height   int
}

func (s *fakeScene) Load(chapter game.ChapterID, level int) <-chan error {
	s.loads = append(s.loads, sceneLoad{chapter, level})
	if s.manual {
		s.pending = make(chan error, 1)
		return s.pending
	}
	done := make(chan error, 1)
	done <- nil
	return done
}

func (s *fakeScene) Update(dt float64) { s.updates++ }
func (s *fakeScene) Render()           { s.renders++ }
func (s *fakeScene) Cleanup()          { s.cleanups++ }
func (s *fakeScene) Resize(w, h int)   { s.width, s.height = w, h }

func (s *fakeScene) lastLoad(t *testing.T) sceneLoad {
	t.Helper()
	if len(s.loads) == 0 {
		t.Fatalf("expected at least one scene load")
	}
	return s.loads[len(s.loads)-1]
}

type fakeStore struct {
	progress  *game.Progress
	saves     int
	failNext  int
	lastSaved game.Progress
}

func (f *fakeStore) Load() (*game.Progress, error) {
	return f.progress, nil
}

func (f *fakeStore) Save(p *game.Progress) error {
	if f.failNext > 0 {
		f.failNext--
		return errors.New("disk full")
	}
	f.saves++
	f.lastSaved = *p
	return nil
}

func testConfig() Config {
	return Config{
		SavePath:         "unused.json",
		SimulationHz:     100, // 10ms fixed step
		MaxCatchUpSteps:  5,
		AutosaveInterval: 30 * time.Second,
		WindowWidth:      1280,
		WindowHeight:     720,
	}
}

// harness drives an engine with a deterministic clock.
type harness struct {
	t     *testing.T
	eng   *Engine
	scene *fakeScene
	store *fakeStore
	now   time.Time
}

func newHarness(t *testing.T, scene *fakeScene, store *fakeStore) *harness {
	t.Helper()
	eng, err := New(testConfig(), scene, nil, store)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	h := &harness{t: t, eng: eng, scene: scene, store: store, now: time.Unix(1000, 0)}
	eng.Start(h.now)
	h.tick(0) // resolve the initial scene load in auto mode
	return h
}

// tick advances the clock and runs one animation frame.
func (h *harness) tick(advance time.Duration) {
	h.now = h.now.Add(advance)
	h.eng.Tick(h.now)
}

func (h *harness) wantPhase(want Phase) {
	h.t.Helper()
	if h.eng.Phase() != want {
		h.t.Fatalf("phase = %s, want %s", h.eng.Phase(), want)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(testConfig(), nil, nil, &fakeStore{}); !errors.Is(err, ErrMissingCollaborator) {
		t.Fatalf("expected missing-scene error, got %v", err)
	}
	if _, err := New(testConfig(), &fakeScene{}, nil, nil); !errors.Is(err, ErrMissingCollaborator) {
		t.Fatalf("expected missing-store error, got %v", err)
	}
}

func TestStartLoadsSavedPosition(t *testing.T) {
	store := &fakeStore{progress: func() *game.Progress {
		p := game.NewProgress()
		p.AdvanceTo(12, game.ChapterSky)
		return p
	}()}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)

	load := scene.lastLoad(t)
	if load.chapter != game.ChapterSky || load.level != 12 {
		t.Fatalf("expected initial load of saved position, got %+v", load)
	}
	h.wantPhase(PhasePlaying)
}

func TestMidChapterCompletionLoadsDirectly(t *testing.T) {
	store := &fakeStore{progress: func() *game.Progress {
		p := game.NewProgress()
		p.AdvanceTo(8, game.ChapterEarth)
		return p
	}()}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	savesBefore := store.saves

	h.eng.Signals().Emit(SignalLevelComplete)

	p := h.eng.Progress()
	if p.CurrentLevel != 9 || p.CurrentChapter != game.ChapterEarth {
		t.Fatalf("expected advance to earth level 9, got %s level %d", p.CurrentChapter, p.CurrentLevel)
	}
	if len(p.CompletedLevels) != 1 || p.CompletedLevels[0] != 8 {
		t.Fatalf("expected completed levels [8], got %v", p.CompletedLevels)
	}
	if store.saves != savesBefore+1 {
		t.Fatalf("progress must be persisted before the load side effect")
	}
	if h.eng.Transition().Active() {
		t.Fatalf("no chapter boundary: the transition must not run")
	}
	load := scene.lastLoad(t)
	if load.level != 9 {
		t.Fatalf("expected direct load of level 9, got %+v", load)
	}

	h.tick(10 * time.Millisecond)
	h.wantPhase(PhasePlaying)
}

func TestChapterBoundaryRunsTransition(t *testing.T) {
	store := &fakeStore{progress: func() *game.Progress {
		p := game.NewProgress()
		p.AdvanceTo(10, game.ChapterEarth)
		return p
	}()}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	loadsBefore := len(scene.loads)

	h.eng.Signals().Emit(SignalLevelComplete)
	h.wantPhase(PhaseTransitioningChapter)
	if !h.eng.Transition().Active() {
		t.Fatalf("chapter boundary must start the transition effect")
	}
	if !h.eng.Paused() {
		t.Fatalf("the loop pauses for the chapter transition")
	}
	if len(scene.loads) != loadsBefore {
		t.Fatalf("the scene load is deferred until the transition dwell ends")
	}

	// Drive animation frames through the fade (1s) and dwell (2s).
	for i := 0; i < 200; i++ {
		h.tick(16 * time.Millisecond)
	}
	if len(scene.loads) != loadsBefore+1 {
		t.Fatalf("expected the deferred load after the dwell, got %d loads", len(scene.loads)-loadsBefore)
	}
	load := scene.lastLoad(t)
	if load.chapter != game.ChapterSky || load.level != 11 {
		t.Fatalf("expected load of sky level 11, got %+v", load)
	}

	h.tick(16 * time.Millisecond)
	h.wantPhase(PhasePlaying)
	if h.eng.Paused() {
		t.Fatalf("the loop resumes once the next level is loaded")
	}
	if h.eng.Progress().CurrentChapter != game.ChapterSky {
		t.Fatalf("expected chapter sky, got %s", h.eng.Progress().CurrentChapter)
	}
}

func TestCompletingNineDoesNotTransition(t *testing.T) {
	store := &fakeStore{progress: func() *game.Progress {
		p := game.NewProgress()
		p.AdvanceTo(9, game.ChapterEarth)
		return p
	}()}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)

	h.eng.Signals().Emit(SignalLevelComplete)
	if h.eng.Transition().Active() {
		t.Fatalf("level 9 -> 10 stays inside earth; no transition")
	}
}

func TestFinalLevelCompletionIsTerminal(t *testing.T) {
	store := &fakeStore{progress: func() *game.Progress {
		p := game.NewProgress()
		p.AdvanceTo(100, game.ChapterMars)
		return p
	}()}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	loadsBefore := len(scene.loads)

	h.eng.Signals().Emit(SignalLevelComplete)
	h.wantPhase(PhaseAllLevelsComplete)
	if len(scene.loads) != loadsBefore {
		t.Fatalf("no further level load after the climb is finished")
	}
	if store.lastSaved.CurrentLevel != 101 {
		t.Fatalf("terminal position must be persisted, got level %d", store.lastSaved.CurrentLevel)
	}

	// Terminal state does not rearm: further signals are ignored.
	h.eng.Signals().Emit(SignalLevelComplete)
	h.eng.RestartLevel()
	h.wantPhase(PhaseAllLevelsComplete)
	if len(scene.loads) != loadsBefore {
		t.Fatalf("terminal state must not load scenes")
	}
}

func TestReentrantCompletionIsQueued(t *testing.T) {
	store := &fakeStore{progress: func() *game.Progress {
		p := game.NewProgress()
		p.AdvanceTo(5, game.ChapterEarth)
		return p
	}()}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	scene.manual = true

	h.eng.Signals().Emit(SignalLevelComplete)
	h.wantPhase(PhaseLoadingNextLevel)
	if h.eng.Progress().CurrentLevel != 6 {
		t.Fatalf("first completion should advance to 6, got %d", h.eng.Progress().CurrentLevel)
	}

	// Second signal before the first resolves: queued, never double-applied.
	h.eng.Signals().Emit(SignalLevelComplete)
	if h.eng.Progress().CurrentLevel != 6 {
		t.Fatalf("queued completion must not advance early, got %d", h.eng.Progress().CurrentLevel)
	}

	scene.pending <- nil
	h.tick(16 * time.Millisecond)
	if h.eng.Progress().CurrentLevel != 7 {
		t.Fatalf("queued completion should drain to level 7, got %d", h.eng.Progress().CurrentLevel)
	}
	scene.pending <- nil
	h.tick(16 * time.Millisecond)
	h.wantPhase(PhasePlaying)
}

func TestSceneLoadFailureRollsBack(t *testing.T) {
	store := &fakeStore{progress: func() *game.Progress {
		p := game.NewProgress()
		p.AdvanceTo(7, game.ChapterEarth)
		return p
	}()}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	scene.manual = true

	var reported error
	h.eng.SetErrorHandler(func(err error) { reported = err })

	h.eng.Signals().Emit(SignalLevelComplete)
	if h.eng.Progress().CurrentLevel != 8 {
		t.Fatalf("advance should be staged at level 8")
	}

	scene.pending <- errors.New("level data corrupt")
	h.tick(16 * time.Millisecond)

	p := h.eng.Progress()
	if p.CurrentLevel != 7 || p.CurrentChapter != game.ChapterEarth {
		t.Fatalf("failed load must roll back to the previous level, got %s level %d", p.CurrentChapter, p.CurrentLevel)
	}
	h.wantPhase(PhasePlaying)
	if reported == nil {
		t.Fatalf("load failure must be reported upstream")
	}
	if len(p.CompletedLevels) != 1 || p.CompletedLevels[0] != 7 {
		t.Fatalf("the recorded completion survives the rollback, got %v", p.CompletedLevels)
	}
}

func TestAutosaveTimerAndRetry(t *testing.T) {
	store := &fakeStore{}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	savesBefore := store.saves

	// Within the interval: no save yet.
	h.tick(10 * time.Second)
	if store.saves != savesBefore {
		t.Fatalf("autosave fired early")
	}

	// Crossing the interval with a failing store: logged, not fatal.
	store.failNext = 1
	h.tick(25 * time.Second)
	if store.saves != savesBefore {
		t.Fatalf("failed save should not count as persisted")
	}

	// Next interval retries and succeeds.
	h.tick(31 * time.Second)
	if store.saves != savesBefore+1 {
		t.Fatalf("save should be retried on the next interval, got %d saves", store.saves-savesBefore)
	}
}

func TestPlayerDeathRestartsCurrentLevel(t *testing.T) {
	store := &fakeStore{progress: func() *game.Progress {
		p := game.NewProgress()
		p.AdvanceTo(14, game.ChapterSky)
		p.ApplyStats(game.PlayerStats{Health: 0, MaxHealth: 100, Fuel: 3, MaxFuel: 100, Score: 50})
		return p
	}()}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)

	h.eng.Signals().Emit(SignalPlayerDeath)
	load := scene.lastLoad(t)
	if load.chapter != game.ChapterSky || load.level != 14 {
		t.Fatalf("death should reload the current level, got %+v", load)
	}
	st := h.eng.Progress().Stats
	if st.Health != 100 || st.Fuel != 100 || st.Score != 0 {
		t.Fatalf("death should respawn the player, got %+v", st)
	}
	h.tick(16 * time.Millisecond)
	h.wantPhase(PhasePlaying)
}

func TestUpdateRunsOnlyWhilePlaying(t *testing.T) {
	store := &fakeStore{}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	scene.manual = true

	h.eng.Signals().Emit(SignalLevelComplete)
	h.wantPhase(PhaseLoadingNextLevel)

	before := scene.updates
	renders := scene.renders
	h.tick(20 * time.Millisecond)
	if scene.updates != before {
		t.Fatalf("scene must not simulate while a load is pending")
	}
	if scene.renders != renders+1 {
		t.Fatalf("the loop keeps rendering the previous state while loading")
	}
}

func TestInputEdgesClearOncePerSimulationStep(t *testing.T) {
	store := &fakeStore{}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)

	h.eng.Input().RecordKeyDown(0)
	// A tick too short for a fixed step: render only, edges must survive.
	h.tick(time.Millisecond)
	if !h.eng.Input().IsJustPressed(0) {
		t.Fatalf("justPressed must persist across render-only ticks")
	}
	// One fixed step consumes the edge.
	h.tick(10 * time.Millisecond)
	if h.eng.Input().IsJustPressed(0) {
		t.Fatalf("justPressed must clear after a simulation step")
	}
	if !h.eng.Input().IsHeld(0) {
		t.Fatalf("held state survives the step")
	}
}

func TestStopCleansUpAndPersists(t *testing.T) {
	store := &fakeStore{}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	savesBefore := store.saves

	h.eng.Stop()
	if scene.cleanups != 1 {
		t.Fatalf("stop must run the scene cleanup hook once, got %d", scene.cleanups)
	}
	if store.saves != savesBefore+1 {
		t.Fatalf("stop must persist progress")
	}
	if h.eng.Tick(h.now.Add(16 * time.Millisecond)) {
		t.Fatalf("a stopped engine tells the host to stop scheduling")
	}
}

func TestStopMidTransitionCancelsSequencer(t *testing.T) {
	store := &fakeStore{progress: func() *game.Progress {
		p := game.NewProgress()
		p.AdvanceTo(10, game.ChapterEarth)
		return p
	}()}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	loadsBefore := len(scene.loads)

	h.eng.Signals().Emit(SignalLevelComplete)
	h.wantPhase(PhaseTransitioningChapter)
	h.eng.Stop()

	if h.eng.Transition().Active() {
		t.Fatalf("stop must cancel the transition sequence")
	}
	// Nothing may fire into the torn-down engine later.
	h.eng.Tick(h.now.Add(time.Hour))
	if len(scene.loads) != loadsBefore {
		t.Fatalf("cancelled transition must not request a load after stop")
	}
}

func TestResetProgressRearmsFinishedClimb(t *testing.T) {
	store := &fakeStore{progress: func() *game.Progress {
		p := game.NewProgress()
		p.AdvanceTo(100, game.ChapterMars)
		return p
	}()}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	h.eng.Signals().Emit(SignalLevelComplete)
	h.wantPhase(PhaseAllLevelsComplete)

	h.eng.ResetProgress()
	load := scene.lastLoad(t)
	if load.chapter != game.ChapterEarth || load.level != 1 {
		t.Fatalf("reset should reload from the start, got %+v", load)
	}
	h.tick(16 * time.Millisecond)
	h.wantPhase(PhasePlaying)
}

func TestLoadLevelJump(t *testing.T) {
	store := &fakeStore{}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)

	if err := h.eng.LoadLevel("", 47); err != nil {
		t.Fatalf("load level: %v", err)
	}
	load := scene.lastLoad(t)
	if load.chapter != game.ChapterOrbit || load.level != 47 {
		t.Fatalf("expected jump to orbit level 47, got %+v", load)
	}
	if err := h.eng.LoadLevel("", 300); err == nil {
		t.Fatalf("jumping past the table must fail")
	}
}

func TestResizePropagates(t *testing.T) {
	store := &fakeStore{}
	scene := &fakeScene{}
	h := newHarness(t, scene, store)
	h.eng.Resize(800, 600)
	if scene.width != 800 || scene.height != 600 {
		t.Fatalf("resize did not reach the scene: %dx%d", scene.width, scene.height)
	}
}
