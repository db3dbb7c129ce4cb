// Package tui is the terminal front end: the same engine as the desktop
// build, driven by bubbletea ticks instead of a raylib frame loop.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/redshift-arcade/ascent/internal/engine"
	"github.com/redshift-arcade/ascent/internal/input"
	"github.com/redshift-arcade/ascent/internal/parser"
	"github.com/redshift-arcade/ascent/internal/save"
)

// AppConfig carries build identity and the engine configuration.
type AppConfig struct {
	Version   string
	Commit    string
	BuildDate string
	Engine    engine.Config
}

// Run blocks until the player quits the terminal app.
func Run(cfg AppConfig) error {
	m, err := newModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// frameInterval paces engine ticks. The simulation's fixed step is finer;
// the accumulator inside the engine makes up the difference.
const frameInterval = time.Second / 30

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	consoleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	overlayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type model struct {
	cfg   AppConfig
	eng   *engine.Engine
	scene *textScene
	hud   *textHUD

	// Terminals only report key presses, never releases, so a press is
	// treated as a short tap: key down now, key up on the next tick.
	pendingUp []input.Key

	console     bool
	consoleLine string
	status      string
	messages    []string

	width  int
	height int

	started bool
	quit    bool
}

func newModel(cfg AppConfig) (*model, error) {
	scene := newTextScene(cfg.Engine.WindowWidth, cfg.Engine.WindowHeight)
	hud := &textHUD{}
	store := save.NewStore(cfg.Engine.SavePath)

	eng, err := engine.New(cfg.Engine, scene, hud, store)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	scene.attach(eng)

	m := &model{cfg: cfg, eng: eng, scene: scene, hud: hud}
	eng.SetErrorHandler(func(err error) {
		m.status = err.Error()
	})
	return m, nil
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		if !m.started {
			m.started = true
			m.eng.Start(now)
		}
		for _, key := range m.pendingUp {
			m.eng.Input().RecordKeyUp(key)
		}
		m.pendingUp = m.pendingUp[:0]
		m.eng.Tick(now)
		if m.quit {
			m.eng.Stop()
			m.eng.Destroy()
			return m, tea.Quit
		}
		return m, tick()

	case tea.KeyMsg:
		if m.console {
			m.updateConsole(msg)
			return m, nil
		}
		m.handleKey(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.eng.Resize(msg.Width, msg.Height)
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quit = true
	case "`":
		m.console = true
		m.consoleLine = ""
	case "p", "esc":
		if m.eng.Paused() {
			m.eng.Resume(time.Now())
			m.status = ""
		} else {
			m.eng.Pause()
			m.status = "Paused."
		}
	case "up", " ", "w":
		m.tap(input.KeyThrust)
	case "left", "a":
		m.tap(input.KeyLeft)
	case "right", "d":
		m.tap(input.KeyRight)
	case "enter":
		m.tap(input.KeyAction)
	}
}

func (m *model) tap(key input.Key) {
	m.eng.Input().RecordKeyDown(key)
	m.pendingUp = append(m.pendingUp, key)
}

func (m *model) updateConsole(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "`":
		m.console = false
	case "enter":
		line := m.consoleLine
		m.consoleLine = ""
		m.console = false
		m.dispatchCommand(line)
	case "backspace":
		if len(m.consoleLine) > 0 {
			m.consoleLine = m.consoleLine[:len(m.consoleLine)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.consoleLine += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.consoleLine += " "
		}
	}
}

// dispatchCommand resolves a console line and applies it to the engine.
func (m *model) dispatchCommand(line string) {
	intent := parser.Parse(line)
	switch intent.Kind {
	case parser.KindHelp:
		for _, usage := range parser.HelpLines() {
			m.pushMessage(usage)
		}
	case parser.KindPause:
		m.eng.Pause()
		m.status = "Paused."
	case parser.KindResume:
		m.eng.Resume(time.Now())
		m.status = ""
	case parser.KindRestart:
		m.eng.Signals().Emit(engine.SignalRestartLevel)
		m.status = "Level restarted."
	case parser.KindSave:
		m.eng.SaveNow()
		m.status = "Progress saved."
	case parser.KindStats:
		p := m.eng.Progress()
		m.pushMessage(fmt.Sprintf("%s · level %d · %d levels done",
			p.CurrentChapter.Title(), p.CurrentLevel, len(p.CompletedLevels)))
		m.pushMessage(fmt.Sprintf("score %.0f total · %.0f best · %s played",
			p.TotalScore, p.HighScore, time.Duration(p.TotalTimePlayed*float64(time.Second)).Round(time.Second)))
	case parser.KindVolume:
		channel, value, err := parser.VolumeArgs(intent)
		if err != nil {
			m.status = err.Error()
			return
		}
		settings := m.eng.Progress().Settings
		if channel == "music" {
			settings.MusicVolume = value
		} else {
			settings.SfxVolume = value
		}
		m.eng.UpdateSettings(settings)
		m.status = fmt.Sprintf("%s volume %.0f%%", channel, value*100)
	case parser.KindLevel:
		n, err := parser.LevelArg(intent)
		if err != nil {
			m.status = err.Error()
			return
		}
		if err := m.eng.LoadLevel("", n); err != nil {
			m.status = err.Error()
			return
		}
		m.status = fmt.Sprintf("Jumped to level %d.", n)
	case parser.KindReset:
		m.eng.ResetProgress()
		m.status = "Progress reset."
	case parser.KindQuit:
		m.quit = true
	default:
		m.status = intent.Clarify
	}
}

func (m *model) pushMessage(text string) {
	m.messages = append(m.messages, text)
	if len(m.messages) > 6 {
		m.messages = m.messages[len(m.messages)-6:]
	}
}

func (m *model) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render("ASCENT"))
	b.WriteString(helpStyle.Render("  space/↑ thrust · p pause · ` console · q quit"))
	b.WriteString("\n\n")

	switch {
	case m.eng.Phase() == engine.PhaseAllLevelsComplete:
		b.WriteString(overlayStyle.Render("MARS REACHED"))
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render(fmt.Sprintf("Final score %.0f · best %.0f",
			m.eng.Progress().TotalScore, m.eng.Progress().HighScore)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("`reset` in the console starts a fresh climb"))
	case m.eng.Transition().TitleVisible():
		chapter, level := m.eng.Transition().Target()
		b.WriteString(overlayStyle.Render(chapter.Title()))
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(fmt.Sprintf("Level %d · get ready", level)))
	default:
		b.WriteString(m.scene.frame)
		b.WriteString("\n")
		b.WriteString(m.hud.line)
		if m.eng.Paused() && !m.console {
			b.WriteString("\n")
			b.WriteString(overlayStyle.Render("· paused ·"))
		}
	}
	b.WriteString("\n")

	for _, msg := range m.messages {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(msg))
	}
	if m.console {
		b.WriteString("\n")
		b.WriteString(consoleStyle.Render("> " + m.consoleLine + "▌"))
	} else if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}
