package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/sleewja/xangaroo/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorFloor:         lipgloss.NewStyle().Foreground(lipgloss.Color("94")),  // Brown
	core.ColorPlayer:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")), // Orange
	core.ColorPlayerLanding: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	core.ColorTrail:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorTrailFaded:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorHazard:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGround:        lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorPickup:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorAccessory:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorDecoration:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorFinish:        lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorMessage:       lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorEffect:        lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	core.ColorHUD:           lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

var hudLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// energyBars holds the HUD meters: the reserve against the pickup cap, the
// share of it committed to a latched jump and the share spent on the
// current controlled jump.
type energyBars struct {
	reserve progress.Model
	next    progress.Model
	spent   progress.Model
}

func newEnergyBars(width int) energyBars {
	return energyBars{
		reserve: progress.New(progress.WithSolidFill("10"), progress.WithWidth(width), progress.WithoutPercentage()),
		next:    progress.New(progress.WithSolidFill("220"), progress.WithWidth(width/2), progress.WithoutPercentage()),
		spent:   progress.New(progress.WithSolidFill("208"), progress.WithWidth(width/2), progress.WithoutPercentage()),
	}
}

// View draws the meters for the given state.
func (b energyBars) View(state core.GameState, capacity float64) string {
	if capacity <= 0 {
		return ""
	}
	reserve := core.ClampF(state.EnergyReserve/capacity, 0, 1)
	next := core.ClampF(state.EnergyForNextJump/capacity, 0, 1)
	spent := 0.0
	if total := state.EnergyReserve + state.ControlledEnergySpent; total > 0 {
		spent = core.ClampF(state.ControlledEnergySpent/total, 0, 1)
	}
	return hudLabel.Render("energy ") + b.reserve.ViewAs(reserve) +
		hudLabel.Render(" next ") + b.next.ViewAs(next) +
		hudLabel.Render(" jump ") + b.spent.ViewAs(spent)
}
