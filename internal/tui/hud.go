package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/redshift-arcade/ascent/internal/game"
)

var (
	hudLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	hudValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hudWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	hudGoodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
)

// textHUD renders the status strip under the climb column.
type textHUD struct {
	width int
	line  string
}

func (h *textHUD) Update(p *game.Progress) {
	health := textBar(p.Stats.Health, p.Stats.MaxHealth, 12)
	fuel := textBar(p.Stats.Fuel, p.Stats.MaxFuel, 12)

	healthStyle := hudGoodStyle
	if p.Stats.MaxHealth > 0 && p.Stats.Health/p.Stats.MaxHealth < 0.3 {
		healthStyle = hudWarnStyle
	}

	h.line = strings.Join([]string{
		hudLabelStyle.Render("hull ") + healthStyle.Render(health),
		hudLabelStyle.Render("fuel ") + hudValueStyle.Render(fuel),
		hudLabelStyle.Render("score ") + hudValueStyle.Render(fmt.Sprintf("%.0f", p.Stats.Score)),
		hudLabelStyle.Render("total ") + hudValueStyle.Render(fmt.Sprintf("%.0f", p.TotalScore)),
	}, "  ")
}

func (h *textHUD) Render() {}

func (h *textHUD) Resize(width, height int) {
	h.width = width
}

func textBar(value, max float64, cells int) string {
	if max <= 0 {
		return strings.Repeat("░", cells)
	}
	filled := int(value / max * float64(cells))
	if filled < 0 {
		filled = 0
	}
	if filled > cells {
		filled = cells
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
}
