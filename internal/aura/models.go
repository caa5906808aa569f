package aura

// AppID is the fixed application id the vendor expects on login.
const AppID = "1097"

// DefaultGatewayName is the display name given to every resolved gateway.
// The vendor API does not expose a user-facing gateway name.
const DefaultGatewayName = "JG-Gateway"

// RunModes are the presets a thermostat can be switched to, in wire order.
// The index of a preset in this list is part of the command encoding.
var RunModes = []string{
	"Auto",
	"High",
	"Medium",
	"Low",
	"Party",
	"Away",
	"Frost",
}

// RunModesWithDuration are the presets that carry a duration suffix.
var RunModesWithDuration = []string{
	"Party",
	"Away",
}

// HeatingModes are the presets in which a thermostat is considered to be heating.
var HeatingModes = []string{
	"Auto",
	"High",
	"Medium",
	"Low",
	"Party",
}

// modeTable maps the decoded mode byte (rune - 32) to a preset name.
// The table is vendor-defined; entries that do not match a preset are shown
// as a mode with no preset selected.
var modeTable = [...]string{
	"OFFLINE",
	"Auto", // Auto High
	"Auto", // Auto Medium
	"Auto", // Auto Low
	"High",
	"Medium",
	"Low",
	"Party",
	"Away",
	"Frost",
	"ON",
	"ON",
	"UNDEFINED",
	"UNDEFINED",
	"UNDEFINED",
	"UNDEFINED",
	"OFFLINE",
	"Auto", // Auto High
	"Auto", // Auto Medium
	"Auto", // Auto Low
	"High",
	"Medium",
	"Low",
	"Party",
	"Frost",
	"ON",
}

// ModeTableSize is the number of entries in the vendor mode table.
const ModeTableSize = len(modeTable)

// onThreshold is the first mode index that reports the thermostat as calling for heat.
const onThreshold = 10

// HVAC modes and actions derived from a thermostat's preset and demand.
const (
	HVACModeHeat = "heat"
	HVACModeOff  = "off"

	HVACActionHeating = "heating"
	HVACActionIdle    = "idle"
)

// Gateway represents the vendor hub and the thermostats it reported on one fetch.
// A new Gateway is built on every successful fetch; it is never updated in place.
type Gateway struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Thermostats []Thermostat `json:"thermostats"`
}

// Thermostat is one thermostat as reported by the gateway.
type Thermostat struct {
	ID          string  `json:"id"`           // 4-character vendor code
	Name        string  `json:"name"`         // Display name configured in the app
	On          bool    `json:"on"`           // Actively calling for heat
	Preset      string  `json:"preset"`       // Entry of the vendor mode table
	CurrentTemp float64 `json:"current_temp"` // Degrees Celsius, 0.5 resolution
	TargetTemp  float64 `json:"target_temp"`  // Degrees Celsius, 0.5 resolution
}

// HotWater is the state of the hot-water relay.
type HotWater struct {
	ID string `json:"id"`
	On bool   `json:"on"`
}

// Thermostat returns the thermostat with the given id.
func (g *Gateway) Thermostat(id string) (Thermostat, bool) {
	for _, t := range g.Thermostats {
		if t.ID == id {
			return t, true
		}
	}
	return Thermostat{}, false
}

// HVACMode reports "heat" when the preset is one of the heating presets, "off" otherwise.
func (t Thermostat) HVACMode() string {
	if contains(HeatingModes, t.Preset) {
		return HVACModeHeat
	}
	return HVACModeOff
}

// Action reports whether the thermostat is currently heating.
func (t Thermostat) Action() string {
	if t.On {
		return HVACActionHeating
	}
	return HVACActionIdle
}

// PresetIndex returns the position of a preset in RunModes, or -1.
func PresetIndex(preset string) int {
	for i, m := range RunModes {
		if m == preset {
			return i
		}
	}
	return -1
}

// ModeName returns the mode table entry for a decoded mode index.
func ModeName(index int) (string, bool) {
	if index < 0 || index >= len(modeTable) {
		return "", false
	}
	return modeTable[index], true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
