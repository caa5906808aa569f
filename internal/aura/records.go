package aura

import "fmt"

// RecordSize is the width of one packed device record.
const RecordSize = 8

// idSize is the width of the device id at the start of a packed record.
const idSize = 4

// asciiOffset is subtracted from every packed character before it is interpreted.
const asciiOffset = 32

// tempStep is the resolution of packed temperatures in degrees Celsius.
const tempStep = 0.5

// Record is one decoded 8-character thermostat record.
//
//	offset 0-3  device id
//	offset 4    status (not interpreted)
//	offset 5    mode index + 32
//	offset 6    current temperature * 2 + 32
//	offset 7    target temperature * 2 + 32
type Record struct {
	ID          string
	ModeIndex   int
	CurrentTemp float64
	TargetTemp  float64
}

// Chunks splits s into RecordSize-character chunks. A trailing partial chunk is
// returned as well; callers that need whole records use SplitRecords.
func Chunks(s string) []string {
	runes := []rune(s)
	chunks := make([]string, 0, (len(runes)+RecordSize-1)/RecordSize)
	for i := 0; i < len(runes); i += RecordSize {
		end := i + RecordSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}

// SplitRecords returns the complete RecordSize-character chunks of s.
// A trailing partial chunk is ignored.
func SplitRecords(s string) []string {
	var records []string
	for _, c := range Chunks(s) {
		if len([]rune(c)) == RecordSize {
			records = append(records, c)
		}
	}
	return records
}

// SummaryTails maps device id to the 4-character tail of its packed record.
// When an id appears more than once the last record wins.
func SummaryTails(summary string) map[string]string {
	tails := make(map[string]string)
	for _, rec := range SplitRecords(summary) {
		r := []rune(rec)
		tails[string(r[:idSize])] = string(r[idSize:])
	}
	return tails
}

// DecodeTail decodes the 4-character tail of a packed record.
func DecodeTail(id, tail string) (Record, error) {
	r := []rune(tail)
	if len(r) != RecordSize-idSize {
		return Record{}, NewParseError(fmt.Sprintf("record %q has a %d-character tail, want %d", id, len(r), RecordSize-idSize), nil)
	}

	mode := int(r[1]) - asciiOffset
	if _, ok := ModeName(mode); !ok {
		return Record{}, NewParseError(fmt.Sprintf("record %q has mode index %d outside the mode table", id, mode), nil)
	}

	return Record{
		ID:          id,
		ModeIndex:   mode,
		CurrentTemp: DecodeTemperature(r[2]),
		TargetTemp:  DecodeTemperature(r[3]),
	}, nil
}

// DecodeRecord decodes a complete 8-character packed record.
func DecodeRecord(rec string) (Record, error) {
	r := []rune(rec)
	if len(r) != RecordSize {
		return Record{}, NewParseError(fmt.Sprintf("record %q is %d characters, want %d", rec, len(r), RecordSize), nil)
	}
	return DecodeTail(string(r[:idSize]), string(r[idSize:]))
}

// DecodeTemperature converts a packed temperature character to degrees.
func DecodeTemperature(c rune) float64 {
	return float64(int(c)-asciiOffset) * tempStep
}

// On reports whether the record's mode means the thermostat is calling for heat.
func (r Record) On() bool {
	return r.ModeIndex >= onThreshold
}

// Preset returns the mode table entry for the record.
func (r Record) Preset() string {
	name, _ := ModeName(r.ModeIndex)
	return name
}
