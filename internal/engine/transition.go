package engine

import (
	"time"

	"github.com/redshift-arcade/ascent/internal/game"
)

// Transition timing: the fade ramps 5% per tick at a fixed cadence (full
// cover in one second), then the title frame dwells before the next scene
// load is requested.
const (
	fadeTickInterval = 50 * time.Millisecond
	fadeStep         = 0.05
	titleDwell       = 2 * time.Second
)

type sequencerPhase int

const (
	seqIdle sequencerPhase = iota
	seqFading
	seqTitle
)

// Sequencer presents the chapter-change effect: an opacity ramp to full
// cover, a static title frame, then the deferred scene load. It never blocks
// the scheduler; the engine advances it once per animation tick. Cancel stops
// it cold, so a stopped engine can never receive its load request.
type Sequencer struct {
	phase      sequencerPhase
	opacity    float64
	nextFade   time.Time
	titleUntil time.Time

	chapter game.ChapterID
	level   int

	requestLoad func(chapter game.ChapterID, level int)
}

func NewSequencer(requestLoad func(chapter game.ChapterID, level int)) *Sequencer {
	return &Sequencer{requestLoad: requestLoad}
}

// Begin starts the effect toward the given chapter and level.
func (s *Sequencer) Begin(chapter game.ChapterID, level int, now time.Time) {
	s.phase = seqFading
	s.opacity = 0
	s.chapter = chapter
	s.level = level
	s.nextFade = now.Add(fadeTickInterval)
}

// Advance moves the effect forward to now. When the dwell elapses it issues
// the scene load request exactly once and goes idle.
func (s *Sequencer) Advance(now time.Time) {
	switch s.phase {
	case seqFading:
		for !now.Before(s.nextFade) {
			s.opacity += fadeStep
			s.nextFade = s.nextFade.Add(fadeTickInterval)
			if s.opacity >= 1 {
				s.opacity = 1
				s.phase = seqTitle
				s.titleUntil = now.Add(titleDwell)
				break
			}
		}
	case seqTitle:
		if !now.Before(s.titleUntil) {
			s.phase = seqIdle
			if s.requestLoad != nil {
				s.requestLoad(s.chapter, s.level)
			}
		}
	}
}

// Cancel abandons the sequence without requesting a load.
func (s *Sequencer) Cancel() {
	s.phase = seqIdle
	s.opacity = 0
}

func (s *Sequencer) Active() bool       { return s.phase != seqIdle }
func (s *Sequencer) Opacity() float64   { return s.opacity }
func (s *Sequencer) TitleVisible() bool { return s.phase == seqTitle }

// Target returns the chapter and level the sequence is heading to.
func (s *Sequencer) Target() (game.ChapterID, int) { return s.chapter, s.level }
