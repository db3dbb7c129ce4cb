//go:build cgo
// +build cgo

package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/redshift-arcade/ascent/internal/input"
)

// keyBindings maps raylib key codes onto semantic game keys. Both arrows and
// WASD work; thrust accepts space as well.
var keyBindings = map[int32]input.Key{
	rl.KeyLeft:  input.KeyLeft,
	rl.KeyA:     input.KeyLeft,
	rl.KeyRight: input.KeyRight,
	rl.KeyD:     input.KeyRight,
	rl.KeyUp:    input.KeyThrust,
	rl.KeyW:     input.KeyThrust,
	rl.KeySpace: input.KeyThrust,
	rl.KeyE:     input.KeyAction,
	rl.KeyEnter: input.KeyAction,
}

// pollGameKeys forwards this frame's key edges to the engine-owned input
// state. Held state is tracked there, so only edges are reported.
func (ui *gameUI) pollGameKeys() {
	keys := ui.eng.Input()
	for code, key := range keyBindings {
		if rl.IsKeyPressed(code) {
			keys.RecordKeyDown(key)
		}
		if rl.IsKeyReleased(code) {
			keys.RecordKeyUp(key)
		}
	}
}
