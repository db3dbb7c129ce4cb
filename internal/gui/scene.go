//go:build cgo
// +build cgo

package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/redshift-arcade/ascent/internal/engine"
	"github.com/redshift-arcade/ascent/internal/game"
	"github.com/redshift-arcade/ascent/internal/input"
)

const (
	climbRate    = 60.0 // units per second under thrust
	sinkRate     = 22.0 // units per second without thrust
	fuelBurnRate = 4.0  // fuel per second under thrust
	crashDamage  = 20.0 // health per second grinding the ground on empty
)

// climbScene is the built-in placeholder gameplay: hold thrust to climb to
// the level's goal altitude before the fuel runs out. It satisfies the
// engine's scene contract so the whole progression path is playable.
type climbScene struct {
	signals  *engine.Dispatcher
	keys     *input.State
	progress *game.Progress

	chapter game.ChapterID
	level   int

	altitude float64
	goal     float64
	drift    float64 // sideways offset, cosmetic

	completed bool
	died      bool

	width  int
	height int
}

func newClimbScene(width, height int) *climbScene {
	return &climbScene{width: width, height: height}
}

// attach wires the scene to the engine-owned collaborators. Must run before
// the engine starts.
func (s *climbScene) attach(eng *engine.Engine) {
	s.signals = eng.Signals()
	s.keys = eng.Input()
	s.progress = eng.Progress()
}

func (s *climbScene) Load(chapter game.ChapterID, level int) <-chan error {
	s.chapter = chapter
	s.level = level
	s.altitude = 0
	s.drift = 0
	s.goal = goalAltitude(level)
	s.completed = false
	s.died = false

	// Each level starts with a full tank.
	st := s.progress.Stats
	st.Fuel = st.MaxFuel
	s.progress.ApplyStats(st)

	done := make(chan error, 1)
	done <- nil
	return done
}

func goalAltitude(level int) float64 {
	return 100 + 20*float64(level)
}

func (s *climbScene) Update(dt float64) {
	if s.completed || s.died {
		return
	}
	st := s.progress.Stats

	thrusting := s.keys.IsHeld(input.KeyThrust) && st.Fuel > 0
	if thrusting {
		s.altitude += climbRate * dt
		st.Fuel -= fuelBurnRate * dt
		st.Score += 10 * dt
	} else {
		s.altitude -= sinkRate * dt
	}
	if s.keys.IsHeld(input.KeyLeft) {
		s.drift -= 40 * dt
	}
	if s.keys.IsHeld(input.KeyRight) {
		s.drift += 40 * dt
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

func (s *climbScene) Render() {
	sky := chapterSkyColor(s.chapter)
	rl.DrawRectangleGradientV(0, 0, int32(s.width), int32(s.height), rl.NewColor(8, 10, 16, 255), sky)

	// Ground and goal markers.
	groundY := int32(s.height - 40)
	rl.DrawRectangle(0, groundY, int32(s.width), 40, rl.NewColor(30, 26, 24, 255))
	progress := 0.0
	if s.goal > 0 {
		progress = s.altitude / s.goal
		if progress > 1 {
			progress = 1
		}
	}
	goalY := int32(60)
	rl.DrawLine(0, goalY, int32(s.width), goalY, colorAccent)
	rl.DrawText(fmt.Sprintf("GOAL %dm", int(s.goal)), 12, goalY-24, 16, colorAccent)

	// The climber: position interpolated between ground and goal line.
	x := int32(s.width/2) + int32(s.drift)
	y := groundY - int32(progress*float64(groundY-goalY))
	rl.DrawCircle(x, y-10, 9, colorText)
	if s.keys != nil && s.keys.IsHeld(input.KeyThrust) && s.progress.Stats.Fuel > 0 {
		rl.DrawTriangle(
			rl.NewVector2(float32(x-5), float32(y-2)),
			rl.NewVector2(float32(x+5), float32(y-2)),
			rl.NewVector2(float32(x), float32(y+10)),
			colorWarn,
		)
	}

	rl.DrawText(fmt.Sprintf("%s  ·  level %d", s.chapter.Title(), s.level), 12, 12, 18, colorText)
	rl.DrawText(fmt.Sprintf("altitude %4.0fm", s.altitude), 12, 34, 16, colorDim)
}

func (s *climbScene) Cleanup() {
	s.completed = false
	s.died = false
	s.altitude = 0
}

func (s *climbScene) Resize(width, height int) {
	s.width = width
	s.height = height
}

func chapterSkyColor(c game.ChapterID) rl.Color {
	switch c {
	case game.ChapterEarth:
		return rl.NewColor(38, 82, 56, 255)
	case game.ChapterSky:
		return rl.NewColor(48, 98, 148, 255)
	case game.ChapterStratosphere:
		return rl.NewColor(38, 48, 98, 255)
	case game.ChapterOrbit:
		return rl.NewColor(18, 20, 44, 255)
	case game.ChapterMars:
		return rl.NewColor(120, 54, 38, 255)
	default:
		return rl.NewColor(20, 24, 32, 255)
	}
}
