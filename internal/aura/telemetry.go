package aura

import (
	"strings"

	"go.uber.org/zap"

	"github.com/jgaura/aura/internal/logging"
)

// Attribute names carrying thermostat display names and packed summaries.
var (
	displayNodeNames = []string{"S02", "S03"}
	summaryNodeNames = []string{"001", "002", "003"}
)

// ExtractThermostats decodes a telemetry response into a Gateway.
//
// Summary attributes hold packed 8-character records; display attributes hold
// comma-separated "<id><name>" entries. One thermostat is produced per display
// entry whose id has a summary record. Display entries without a record are
// dropped: some gateways list more display slots than active devices.
func ExtractThermostats(body string) (*Gateway, error) {
	attrs, err := ParseAttributes(body)
	if err != nil {
		return nil, err
	}

	tails := make(map[string]string)
	for _, a := range attrs {
		if !contains(summaryNodeNames, a.Name) {
			continue
		}
		for id, tail := range SummaryTails(a.value()) {
			tails[id] = tail
		}
	}

	gw := &Gateway{
		ID:          DefaultGatewayName,
		Name:        DefaultGatewayName,
		Thermostats: []Thermostat{},
	}

	for _, a := range attrs {
		if !contains(displayNodeNames, a.Name) {
			continue
		}
		for _, entry := range strings.Split(a.value(), ",") {
			r := []rune(entry)
			if len(r) <= idSize {
				continue
			}
			id := string(r[:idSize])
			tail, ok := tails[id]
			if !ok {
				logging.Debug("Dropping display entry without summary record", zap.String("device_id", id))
				continue
			}

			rec, err := DecodeTail(id, tail)
			if err != nil {
				logging.Error("Failed to decode thermostat record",
					zap.String("device_id", id),
					zap.Error(err),
					zap.String("response", body),
				)
				return nil, err
			}

			gw.Thermostats = append(gw.Thermostats, Thermostat{
				ID:          id,
				Name:        string(r[idSize:]),
				On:          rec.On(),
				Preset:      rec.Preset(),
				CurrentTemp: rec.CurrentTemp,
				TargetTemp:  rec.TargetTemp,
			})
		}
	}

	return gw, nil
}
