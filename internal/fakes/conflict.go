package fakes

import (
	"strings"

	"git.lost.host/meutraa/minefix/internal/sim"
)

// Conflict records a mine and a judged note landing on the same beat.
// Same-chart conflicts have MineChart == NoteChart.
type Conflict struct {
	Beat      sim.Beat
	MineChart int
	NoteChart int
}

// ConflictError is returned when the simfile has same-beat mine and
// note pairs the caller did not opt into. Both conflict sets are
// carried in full, including the allowed category, so the message can
// show the complete picture.
type ConflictError struct {
	Simfile      *sim.Simfile
	Simultaneous []Conflict
	SplitTiming  []Conflict
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	b.WriteString("ERROR: There are simultaneous mines and notes in your file;\n")
	b.WriteString("you will have to either update the chart or opt into certain behavior\n")
	b.WriteString("in order to remedy this error.\n")
	if len(e.Simultaneous) > 0 {
		b.WriteString("\nSimultaneous mine & note in the same chart (ignore with --allow-simultaneous):\n")
		e.writeConflicts(&b, e.Simultaneous)
		b.WriteString("Ignoring these occurrences will leave the mines on these beats hittable,\n")
		b.WriteString("which may surprise players. Consider relocating these mines instead.\n")
	}
	if len(e.SplitTiming) > 0 {
		b.WriteString("\nSimultaneous mine & note in different charts (fix with --allow-split-timing):\n")
		e.writeConflicts(&b, e.SplitTiming)
		b.WriteString("Note that split timing makes it easy to mess up the timing data if you are\n")
		b.WriteString("still making changes to the chart. Use this feature with caution.\n")
	}
	return b.String()
}

func (e *ConflictError) writeConflicts(b *strings.Builder, cs []Conflict) {
	for _, c := range cs {
		b.WriteString("    b")
		b.WriteString(c.Beat.String())
		b.WriteString(" in ")
		b.WriteString(whichChart(e.Simfile, c.MineChart))
		if c.MineChart != c.NoteChart {
			b.WriteString(" and ")
			b.WriteString(whichChart(e.Simfile, c.NoteChart))
		}
		b.WriteString("\n")
	}
}

// whichChart identifies a chart by its difficulty, prefixed with its
// stepstype when the simfile mixes more than one style.
func whichChart(s *sim.Simfile, index int) string {
	chart := s.Charts[index]
	styles := map[string]struct{}{}
	for _, c := range s.Charts {
		styles[c.Stepstype()] = struct{}{}
	}
	if len(styles) > 1 {
		return chart.Stepstype() + " " + chart.Difficulty()
	}
	return chart.Difficulty()
}

// whichTarget identifies a fake region target as a chart or the
// simfile itself, for human-readable action text.
func whichTarget(s *sim.Simfile, target sim.PropertyHolder) string {
	if chart, ok := target.(*sim.Chart); ok {
		for i, c := range s.Charts {
			if c == chart {
				return "the " + whichChart(s, i) + " chart"
			}
		}
	}
	return "the simfile"
}
