package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/redshift-arcade/ascent/internal/engine"
	"github.com/redshift-arcade/ascent/internal/game"
	"github.com/redshift-arcade/ascent/internal/input"
)

const (
	climbRate    = 60.0
	sinkRate     = 22.0
	fuelBurnRate = 4.0
	crashDamage  = 20.0
)

// textScene is the terminal rendition of the placeholder climb: the same
// rules as the desktop scene, rendered into a string frame the view prints.
type textScene struct {
	signals  *engine.Dispatcher
	keys     *input.State
	progress *game.Progress

	chapter game.ChapterID
	level   int

	altitude float64
	goal     float64

	completed bool
	died      bool

	width  int
	height int

	frame string
}

func newTextScene(width, height int) *textScene {
	return &textScene{width: width, height: height}
}

func (s *textScene) attach(eng *engine.Engine) {
	s.signals = eng.Signals()
	s.keys = eng.Input()
	s.progress = eng.Progress()
}

func (s *textScene) Load(chapter game.ChapterID, level int) <-chan error {
	s.chapter = chapter
	s.level = level
	s.altitude = 0
	s.goal = 100 + 20*float64(level)
	s.completed = false
	s.died = false

	st := s.progress.Stats
	st.Fuel = st.MaxFuel
	s.progress.ApplyStats(st)

	done := make(chan error, 1)
	done <- nil
	return done
}

func (s *textScene) Update(dt float64) {
	if s.completed || s.died {
		return
	}
	st := s.progress.Stats

	if s.keys.IsHeld(input.KeyThrust) && st.Fuel > 0 {
		s.altitude += climbRate * dt
		st.Fuel -= fuelBurnRate * dt
		st.Score += 10 * dt
	} else {
		s.altitude -= sinkRate * dt
	}
	if s.altitude < 0 {
		s.altitude = 0
		if st.Fuel <= 0 {
			st.Health -= crashDamage * dt
		}
	}
	s.progress.ApplyStats(st)

	if s.altitude >= s.goal {
		s.completed = true
		s.signals.Emit(engine.SignalLevelComplete)
		return
	}
	if s.progress.Stats.Health <= 0 {
		s.died = true
		s.signals.Emit(engine.SignalPlayerDeath)
	}
}

var (
	sceneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	goalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	shipStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

// Render composes the climb column into the frame string the view prints.
func (s *textScene) Render() {
	rows := s.height - 6
	if rows < 8 {
		rows = 8
	}
	progress := 0.0
	if s.goal > 0 {
		progress = s.altitude / s.goal
		if progress > 1 {
			progress = 1
		}
	}
	shipRow := rows - 1 - int(progress*float64(rows-1))

	var b strings.Builder
	b.WriteString(sceneStyle.Render(fmt.Sprintf("%s · level %d", s.chapter.Title(), s.level)))
	b.WriteByte('\n')
	b.WriteString(goalStyle.Render("──────── goal " + fmt.Sprintf("%dm", int(s.goal)) + " ────────"))
	b.WriteByte('\n')
	for row := 0; row < rows; row++ {
		if row == shipRow {
			b.WriteString(shipStyle.Render("        ^        "))
		} else {
			b.WriteString(dimStyle.Render("        ·        "))
		}
		b.WriteByte('\n')
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("altitude %4.0fm", s.altitude)))
	s.frame = b.String()
}

func (s *textScene) Cleanup() {
	s.frame = ""
}

func (s *textScene) Resize(width, height int) {
	s.width = width
	s.height = height
}
