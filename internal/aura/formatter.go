package aura

import (
	"fmt"
	"strings"
)

// Summary returns a one-line summary of the gateway
func (g *Gateway) Summary() string {
	heating := 0
	for _, t := range g.Thermostats {
		if t.On {
			heating++
		}
	}
	return fmt.Sprintf("%s %s: %d thermostat(s), %d heating", g.Name, g.ID, len(g.Thermostats), heating)
}

// String returns a one-line description of a thermostat
func (t Thermostat) String() string {
	return fmt.Sprintf("%s %q %s %.1f°C -> %.1f°C (%s)", t.ID, t.Name, t.Preset, t.CurrentTemp, t.TargetTemp, t.Action())
}

// String returns a one-line description of the hot water state
func (hw *HotWater) String() string {
	return fmt.Sprintf("Hot water %s: %s", hw.ID, strings.ToUpper(onOff(hw.On)))
}

// FormatCompact returns one line per thermostat, suitable for terminal display.
// names optionally maps device ids to nicknames.
func (g *Gateway) FormatCompact(names map[string]string) string {
	var b strings.Builder

	b.WriteString(g.Summary())
	b.WriteString("\n")
	for _, t := range g.Thermostats {
		b.WriteString(fmt.Sprintf("  %-4s %-20s %-9s %5.1f°C -> %5.1f°C %s\n",
			t.ID, displayName(t, names), t.Preset, t.CurrentTemp, t.TargetTemp, t.Action()))
	}

	return b.String()
}

// FormatDetailed returns a block per thermostat with every reported field
func (g *Gateway) FormatDetailed(names map[string]string) string {
	var b strings.Builder

	b.WriteString("=== Gateway ===\n")
	b.WriteString(fmt.Sprintf("Name:        %s\n", g.Name))
	b.WriteString(fmt.Sprintf("Device ID:   %s\n", g.ID))
	b.WriteString(fmt.Sprintf("Thermostats: %d\n", len(g.Thermostats)))

	for _, t := range g.Thermostats {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("=== %s ===\n", displayName(t, names)))
		b.WriteString(fmt.Sprintf("ID:             %s\n", t.ID))
		if nick, ok := names[t.ID]; ok && nick != t.Name {
			b.WriteString(fmt.Sprintf("Gateway name:   %s\n", t.Name))
		}
		b.WriteString(fmt.Sprintf("Preset:         %s\n", t.Preset))
		b.WriteString(fmt.Sprintf("Mode:           %s\n", t.HVACMode()))
		b.WriteString(fmt.Sprintf("Action:         %s\n", t.Action()))
		b.WriteString(fmt.Sprintf("Current:        %.1f°C\n", t.CurrentTemp))
		b.WriteString(fmt.Sprintf("Target:         %.1f°C\n", t.TargetTemp))
	}

	return b.String()
}

func displayName(t Thermostat, names map[string]string) string {
	if nick, ok := names[t.ID]; ok && nick != "" {
		return nick
	}
	return t.Name
}
