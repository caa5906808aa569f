package aura

import (
	"strings"

	"go.uber.org/zap"

	"github.com/jgaura/aura/internal/logging"
)

// Vendor attribute ids for the hot-water relay.
const (
	hotWaterIDAttr      = "2272"
	hotWaterSummaryAttr = "2257"
)

// hotWaterOnMarker is the character that marks the relay as on.
const hotWaterOnMarker = "3"

// ExtractHotWater decodes a telemetry response into the hot-water relay state.
//
// Attribute 2272 holds the relay id wrapped in single-character delimiters.
// Attribute 2257 holds packed records; the first chunk containing the id
// decides the state: the relay is on when the id plus the two characters that
// follow it end in "3".
func ExtractHotWater(body string) (*HotWater, error) {
	attrs, err := ParseAttributes(body)
	if err != nil {
		return nil, err
	}

	idAttr, ok := findByID(attrs, hotWaterIDAttr)
	if !ok {
		logging.Error("Hot water id missing from response", zap.String("response", body))
		return nil, NewParseError("could not find hot water id in response", nil)
	}

	raw := []rune(strings.TrimSpace(idAttr.value()))
	if len(raw) < 2 {
		return nil, NewParseError("hot water id attribute is too short: "+string(raw), nil)
	}
	id := string(raw[1 : len(raw)-1])
	// An empty id would match every chunk and address no relay.
	if strings.TrimSpace(id) == "" {
		return nil, NewParseError("hot water id is empty: "+string(raw), nil)
	}

	summary, ok := findByID(attrs, hotWaterSummaryAttr)
	if !ok {
		logging.Error("Hot water summary missing from response", zap.String("response", body))
		return nil, NewParseError("could not find hot water summary in response", nil)
	}

	hw := &HotWater{ID: id}
	for _, chunk := range Chunks(summary.value()) {
		pos := strings.Index(chunk, id)
		if pos < 0 {
			continue
		}
		window := []rune(chunk[pos:])
		if n := len([]rune(id)) + 2; len(window) > n {
			window = window[:n]
		}
		hw.On = strings.HasSuffix(string(window), hotWaterOnMarker)
		break
	}

	return hw, nil
}
