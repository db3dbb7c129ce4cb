//go:build cgo
// +build cgo

package gui

import (
	"fmt"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/redshift-arcade/ascent/internal/engine"
	"github.com/redshift-arcade/ascent/internal/game"
)

func drawPanel(rect rl.Rectangle, title string) {
	rl.DrawRectangleRec(rect, colorPanel)
	rl.DrawRectangleLinesEx(rect, 2, colorBorder)
	if title != "" {
		rl.DrawText(title, int32(rect.X)+14, int32(rect.Y)+10, 22, colorAccent)
	}
}

func drawTextCentered(text string, rect rl.Rectangle, yOffset float32, size int32, tint rl.Color) {
	width := rl.MeasureText(text, size)
	x := int32(rect.X + rect.Width/2 - float32(width)/2)
	rl.DrawText(text, x, int32(rect.Y+yOffset), size, tint)
}

func (ui *gameUI) drawMenu() {
	titleRect := rl.NewRectangle(20, 20, float32(ui.width-40), 130)
	drawPanel(titleRect, "")
	drawTextCentered("A S C E N T", titleRect, 26, 42, colorText)
	drawTextCentered(fmt.Sprintf("v%s (%s) %s", ui.cfg.Version, ui.cfg.Commit, ui.cfg.BuildDate), titleRect, 84, 17, colorDim)

	items := ui.menuItems()
	menuRect := rl.NewRectangle(20, 170, float32(ui.width-40), float32(len(items)*40+30))
	drawPanel(menuRect, "")
	for i, item := range items {
		tint := colorDim
		prefix := "  "
		if i == ui.menuCursor {
			tint = colorAccent
			prefix = "> "
		}
		rl.DrawText(prefix+item.Label, int32(menuRect.X)+20, int32(menuRect.Y)+20+int32(i*40), 20, tint)
	}

	if ui.status != "" {
		rl.DrawText(ui.status, 24, ui.height-30, 17, colorWarn)
	}
}

// drawRunOverlays layers the HUD chrome, the pause and transition effects,
// the console and the message log over the scene the engine just rendered.
func (ui *gameUI) drawRunOverlays() {
	switch ui.eng.Phase() {
	case engine.PhaseTransitioningChapter:
		ui.drawTransition()
	case engine.PhaseAllLevelsComplete:
		ui.drawClimbComplete()
	}

	if ui.eng.Paused() && !ui.eng.Transition().Active() {
		rl.DrawRectangle(0, 0, ui.width, ui.height, rl.NewColor(0, 0, 0, 160))
		rect := rl.NewRectangle(float32(ui.width)/2-150, float32(ui.height)/2-50, 300, 100)
		drawPanel(rect, "")
		drawTextCentered("PAUSED", rect, 26, 28, colorText)
		drawTextCentered("press P to resume", rect, 64, 16, colorDim)
	}

	for i, msg := range ui.messages {
		rl.DrawText(msg, 12, ui.height-int32(40+(len(ui.messages)-i)*20), 15, colorDim)
	}
	if ui.status != "" {
		rl.DrawText(ui.status, 12, ui.height-30, 16, colorWarn)
	}
	if ui.console {
		rect := rl.NewRectangle(10, float32(ui.height)-70, float32(ui.width)-20, 34)
		rl.DrawRectangleRec(rect, rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleLinesEx(rect, 1, colorBorder)
		rl.DrawText("> "+ui.consoleLine+"_", int32(rect.X)+8, int32(rect.Y)+8, 18, colorText)
	}
}

// drawTransition paints the fade ramp and, at full cover, the chapter title
// card with the ready prompt.
func (ui *gameUI) drawTransition() {
	seq := ui.eng.Transition()
	alpha := uint8(seq.Opacity() * 255)
	rl.DrawRectangle(0, 0, ui.width, ui.height, rl.NewColor(0, 0, 0, alpha))
	if !seq.TitleVisible() {
		return
	}

	chapter, level := seq.Target()
	if ui.card.ensure(chapter); ui.card.ok {
		dst := rl.NewRectangle(float32(ui.width)/2-320, float32(ui.height)/2-180, 640, 360)
		src := rl.NewRectangle(0, 0, float32(ui.card.tex.Width), float32(ui.card.tex.Height))
		rl.DrawTexturePro(ui.card.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	}
	rect := rl.NewRectangle(0, float32(ui.height)/2-60, float32(ui.width), 160)
	drawTextCentered(chapter.Title(), rect, 0, 44, colorText)
	drawTextCentered(fmt.Sprintf("level %d", level), rect, 60, 22, colorDim)
	drawTextCentered("get ready", rect, 100, 18, colorAccent)
}

func (ui *gameUI) drawClimbComplete() {
	rl.DrawRectangle(0, 0, ui.width, ui.height, rl.NewColor(0, 0, 0, 200))
	rect := rl.NewRectangle(0, float32(ui.height)/2-80, float32(ui.width), 200)
	p := ui.eng.Progress()
	drawTextCentered("MARS REACHED", rect, 0, 46, colorAccent)
	drawTextCentered(fmt.Sprintf("all %d levels complete", game.MaxLevel), rect, 64, 20, colorText)
	drawTextCentered(fmt.Sprintf("total score %.0f · best %.0f", p.TotalScore, p.HighScore), rect, 96, 18, colorDim)
}

// hud implements the engine's presentation contract for the desktop build.
type hud struct {
	ui       *gameUI
	progress *game.Progress
}

func newHUD(ui *gameUI) *hud {
	return &hud{ui: ui}
}

func (h *hud) Update(p *game.Progress) { h.progress = p }

func (h *hud) Render() {
	p := h.progress
	if p == nil {
		return
	}
	width := h.ui.width
	drawBar(width-232, 14, 220, p.Stats.Health, p.Stats.MaxHealth, rl.NewColor(210, 84, 84, 255), "hull")
	drawBar(width-232, 40, 220, p.Stats.Fuel, p.Stats.MaxFuel, colorWarn, "fuel")
	rl.DrawText(fmt.Sprintf("score %.0f", p.Stats.Score), width-232, 66, 16, colorText)
	rl.DrawText(fmt.Sprintf("total %.0f", p.TotalScore), width-232, 86, 14, colorDim)
}

func (h *hud) Resize(width, height int) {}

func drawBar(x, y, width int32, value, max float64, fill rl.Color, label string) {
	rl.DrawRectangle(x, y, width, 18, rl.NewColor(0, 0, 0, 140))
	if max > 0 {
		frac := value / max
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		rl.DrawRectangle(x+1, y+1, int32(frac*float64(width-2)), 16, fill)
	}
	rl.DrawRectangleLines(x, y, width, 18, colorBorder)
	rl.DrawText(label, x+6, y+3, 12, colorBG)
}

// titleCard caches the current chapter's pre-rendered card texture, when the
// gentitles assets are present on disk.
type titleCard struct {
	chapter game.ChapterID
	tex     rl.Texture2D
	ok      bool
}

func (c *titleCard) ensure(chapter game.ChapterID) {
	if c.chapter == chapter {
		return
	}
	c.unload()
	c.chapter = chapter
	path := filepath.Join("assets", "titles", string(chapter)+".png")
	if _, err := os.Stat(path); err != nil {
		return
	}
	c.tex = rl.LoadTexture(path)
	c.ok = c.tex.ID != 0
}

func (c *titleCard) unload() {
	if c.ok {
		rl.UnloadTexture(c.tex)
	}
	c.ok = false
	c.chapter = ""
}
