//go:build cgo
// +build cgo

package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/redshift-arcade/ascent/internal/engine"
	"github.com/redshift-arcade/ascent/internal/parser"
)

func (ui *gameUI) updateConsole(now time.Time) {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if ch >= 32 && ch < 127 && ch != '`' {
			ui.consoleLine += string(rune(ch))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(ui.consoleLine) > 0 {
		ui.consoleLine = ui.consoleLine[:len(ui.consoleLine)-1]
	}
	if rl.IsKeyPressed(rl.KeyGrave) || rl.IsKeyPressed(rl.KeyEscape) {
		ui.console = false
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		line := ui.consoleLine
		ui.consoleLine = ""
		ui.console = false
		ui.dispatchCommand(line, now)
	}
}

// dispatchCommand resolves a console line and applies it to the engine.
func (ui *gameUI) dispatchCommand(line string, now time.Time) {
	intent := parser.Parse(line)
	switch intent.Kind {
	case parser.KindHelp:
		for _, usage := range parser.HelpLines() {
			ui.pushMessage(usage)
		}
	case parser.KindPause:
		ui.eng.Pause()
		ui.status = "Paused."
	case parser.KindResume:
		ui.eng.Resume(now)
		ui.status = ""
	case parser.KindRestart:
		ui.eng.Signals().Emit(engine.SignalRestartLevel)
		ui.status = "Level restarted."
	case parser.KindSave:
		ui.eng.SaveNow()
		ui.status = "Progress saved."
	case parser.KindStats:
		p := ui.eng.Progress()
		ui.pushMessage(fmt.Sprintf("%s · level %d · %d levels done",
			p.CurrentChapter.Title(), p.CurrentLevel, len(p.CompletedLevels)))
		ui.pushMessage(fmt.Sprintf("score %.0f total · %.0f best · %s played",
			p.TotalScore, p.HighScore, time.Duration(p.TotalTimePlayed*float64(time.Second)).Round(time.Second)))
	case parser.KindVolume:
		channel, value, err := parser.VolumeArgs(intent)
		if err != nil {
			ui.status = err.Error()
			return
		}
		settings := ui.eng.Progress().Settings
		if channel == "music" {
			settings.MusicVolume = value
		} else {
			settings.SfxVolume = value
		}
		ui.eng.UpdateSettings(settings)
		ui.status = fmt.Sprintf("%s volume %.0f%%", channel, value*100)
	case parser.KindLevel:
		n, err := parser.LevelArg(intent)
		if err != nil {
			ui.status = err.Error()
			return
		}
		if err := ui.eng.LoadLevel("", n); err != nil {
			ui.status = err.Error()
			return
		}
		ui.status = fmt.Sprintf("Jumped to level %d.", n)
	case parser.KindReset:
		ui.eng.ResetProgress()
		ui.status = "Progress reset."
	case parser.KindQuit:
		ui.quit = true
	default:
		ui.status = intent.Clarify
	}
}
