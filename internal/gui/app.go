//go:build cgo
// +build cgo

package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/redshift-arcade/ascent/internal/engine"
	"github.com/redshift-arcade/ascent/internal/save"
)

type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	Engine    engine.Config
}

type App struct {
	cfg AppConfig
}

func NewApp(cfg AppConfig) *App {
	return &App{cfg: cfg}
}

type screen int

const (
	screenMenu screen = iota
	screenRun
)

type menuAction int

const (
	actionClimb menuAction = iota
	actionReset
	actionQuit
)

type menuItem struct {
	Label  string
	Action menuAction
}

var (
	colorBG     = rl.NewColor(8, 12, 18, 255)
	colorPanel  = rl.NewColor(14, 24, 35, 255)
	colorBorder = rl.NewColor(120, 170, 255, 255)
	colorText   = rl.NewColor(214, 228, 248, 255)
	colorDim    = rl.NewColor(120, 138, 164, 255)
	colorAccent = rl.NewColor(96, 200, 255, 255)
	colorWarn   = rl.NewColor(255, 198, 96, 255)
)

type gameUI struct {
	cfg AppConfig

	width  int32
	height int32
	quit   bool

	screen     screen
	menuCursor int

	eng   *engine.Engine
	scene *climbScene

	console     bool
	consoleLine string
	messages    []string
	status      string

	card titleCard
}

func (a *App) Run() error {
	ui, err := newGameUI(a.cfg)
	if err != nil {
		return err
	}
	return ui.Run()
}

func newGameUI(cfg AppConfig) (*gameUI, error) {
	ui := &gameUI{
		cfg:    cfg,
		width:  int32(cfg.Engine.WindowWidth),
		height: int32(cfg.Engine.WindowHeight),
		screen: screenMenu,
	}

	scene := newClimbScene(cfg.Engine.WindowWidth, cfg.Engine.WindowHeight)
	store := save.NewStore(cfg.Engine.SavePath)
	eng, err := engine.New(cfg.Engine, scene, newHUD(ui), store)
	if err != nil {
		return nil, err
	}
	scene.attach(eng)
	eng.SetErrorHandler(func(err error) { ui.status = err.Error() })

	ui.eng = eng
	ui.scene = scene
	return ui, nil
}

func (ui *gameUI) Run() error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(ui.width, ui.height, "ascent")
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)

	for !ui.quit && !rl.WindowShouldClose() {
		now := time.Now()

		if rl.IsWindowResized() {
			ui.width = int32(rl.GetScreenWidth())
			ui.height = int32(rl.GetScreenHeight())
			ui.eng.Resize(int(ui.width), int(ui.height))
		}

		ui.handleInput(now)

		rl.BeginDrawing()
		rl.ClearBackground(colorBG)
		ui.frame(now)
		rl.EndDrawing()
	}

	ui.card.unload()
	ui.eng.Destroy()
	rl.CloseWindow()
	return nil
}

// frame drives one animation tick inside the drawing pass, then layers the
// UI on top of whatever the engine rendered.
func (ui *gameUI) frame(now time.Time) {
	switch ui.screen {
	case screenMenu:
		ui.drawMenu()
	case screenRun:
		ui.eng.Tick(now)
		ui.drawRunOverlays()
	}
}

func (ui *gameUI) handleInput(now time.Time) {
	switch ui.screen {
	case screenMenu:
		ui.updateMenu(now)
	case screenRun:
		if ui.console {
			ui.updateConsole(now)
			return
		}
		ui.pollGameKeys()
		if rl.IsKeyPressed(rl.KeyGrave) {
			ui.console = true
			ui.consoleLine = ""
			return
		}
		if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyP) {
			if ui.eng.Paused() {
				ui.eng.Resume(now)
			} else {
				ui.eng.Pause()
			}
		}
	}
}

func (ui *gameUI) updateMenu(now time.Time) {
	items := ui.menuItems()
	if rl.IsKeyPressed(rl.KeyDown) {
		ui.menuCursor = (ui.menuCursor + 1) % len(items)
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		ui.menuCursor = (ui.menuCursor + len(items) - 1) % len(items)
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		ui.quit = true
	}
	if !rl.IsKeyPressed(rl.KeyEnter) {
		return
	}
	switch items[ui.menuCursor].Action {
	case actionClimb:
		ui.eng.Start(now)
		ui.screen = screenRun
		ui.status = ""
	case actionReset:
		ui.eng.ResetProgress()
		ui.status = "Progress reset."
	case actionQuit:
		ui.quit = true
	}
}

func (ui *gameUI) menuItems() []menuItem {
	label := "Start Climb"
	if ui.eng.Progress().CurrentLevel > 1 {
		label = fmt.Sprintf("Continue: %s, level %d",
			ui.eng.Progress().CurrentChapter.Title(), ui.eng.Progress().CurrentLevel)
	}
	return []menuItem{
		{Label: label, Action: actionClimb},
		{Label: "Reset Progress", Action: actionReset},
		{Label: "Quit", Action: actionQuit},
	}
}

func (ui *gameUI) pushMessage(text string) {
	ui.messages = append(ui.messages, text)
	if len(ui.messages) > 8 {
		ui.messages = ui.messages[len(ui.messages)-8:]
	}
}
