package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jgaura/aura/internal/aura"
)

// StatusView holds everything shown by the status table.
type StatusView struct {
	Gateway  *aura.Gateway
	HotWater *aura.HotWater    // nil when hot water is disabled or unavailable
	Names    map[string]string // Nicknames keyed by device id
	Width    int
}

// statusColumns are the headings of the thermostat table.
var statusColumns = []string{"ID", "Name", "Preset", "Current", "Target", "State"}

// RenderStatus renders the gateway, its thermostats and the hot-water state.
func RenderStatus(v StatusView) string {
	width := v.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var sections []string

	title := HeaderTitleStyle.Render(strings.ToUpper(v.Gateway.Name))
	sub := HeaderCommandStyle.Render(fmt.Sprintf("Device %s · %d thermostat(s)", v.Gateway.ID, len(v.Gateway.Thermostats)))
	sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, title, sub), "")

	if len(v.Gateway.Thermostats) == 0 {
		sections = append(sections, StepPendingStyle.Render("  No thermostats reported by the gateway"))
	} else {
		sections = append(sections, renderThermostatTable(v.Gateway.Thermostats, v.Names))
	}

	if v.HotWater != nil {
		sections = append(sections, "", renderHotWater(v.HotWater))
	}

	return StatusBoxStyle(width).Render(strings.Join(sections, "\n"))
}

func renderThermostatTable(thermostats []aura.Thermostat, names map[string]string) string {
	rows := make([][]string, 0, len(thermostats))
	for _, th := range thermostats {
		rows = append(rows, []string{
			th.ID,
			displayName(th, names),
			th.Preset,
			fmt.Sprintf("%.1f°C", th.CurrentTemp),
			fmt.Sprintf("%.1f°C", th.TargetTemp),
			stateLabel(th),
		})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(statusColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return TableHeaderStyle.PaddingRight(2)
			}
			if col == len(statusColumns)-1 && row >= 0 && row < len(thermostats) {
				if thermostats[row].On {
					return HeatingStyle.PaddingRight(2)
				}
				return IdleStyle.PaddingRight(2)
			}
			return style
		})

	return t.Render()
}

func renderHotWater(hw *aura.HotWater) string {
	state := IdleStyle.Render("OFF")
	if hw.On {
		state = HeatingStyle.Render("ON")
	}
	return HeaderParamKeyStyle.Render(fmt.Sprintf("Hot water (%s):", hw.ID)) + " " + state
}

func stateLabel(th aura.Thermostat) string {
	if th.On {
		return HeatingMarker + " " + th.Action()
	}
	return IdleMarker + " " + th.Action()
}

func displayName(th aura.Thermostat, names map[string]string) string {
	if nick, ok := names[th.ID]; ok && nick != "" {
		return nick
	}
	return th.Name
}
