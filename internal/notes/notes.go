package notes

import (
	"strings"

	"git.lost.host/meutraa/minefix/internal/sim"
)

// Type is the character a note occupies in the chart's measure data.
type Type byte

const (
	None     Type = '0'
	Tap      Type = '1'
	HoldHead Type = '2'
	Tail     Type = '3'
	RollHead Type = '4'
	Attack   Type = 'A'
	Keysound Type = 'K'
	Lift     Type = 'L'
	Mine     Type = 'M'
	Fake     Type = 'F'
)

type Note struct {
	Beat   sim.Beat
	Column int
	Type   Type

	// End is set on hold and roll heads once their tail is joined.
	End sim.Beat
}

// Data walks a chart's measure text and returns every note object in
// row order. Measures are separated by commas and each measure spans
// four beats, so a measure of n rows places row r at beat 4*(m + r/n),
// quantized to the tick.
func Data(chart *sim.Chart) []Note {
	var out []Note
	text := strings.ReplaceAll(chart.Notes(), "\r", "")
	for m, measure := range strings.Split(text, ",") {
		var rows []string
		for _, line := range strings.Split(measure, "\n") {
			if i := strings.Index(line, "//"); i >= 0 {
				line = line[:i]
			}
			line = strings.TrimSpace(line)
			if line != "" {
				rows = append(rows, line)
			}
		}
		ticksPerMeasure := int64(4 * sim.TicksPerBeat)
		for r, row := range rows {
			// Round the row's tick offset half up so odd row counts
			// still quantize to the nearest 192nd.
			n := int64(len(rows))
			offset := (2*ticksPerMeasure*int64(r) + n) / (2 * n)
			beat := sim.Beat(ticksPerMeasure*int64(m) + offset)
			for col := 0; col < len(row); col++ {
				if Type(row[col]) == None {
					continue
				}
				out = append(out, Note{
					Beat:   beat,
					Column: col,
					Type:   Type(row[col]),
				})
			}
		}
	}
	return out
}
