package fakes

import (
	"errors"
	"fmt"
	"sort"

	"git.lost.host/meutraa/minefix/internal/notes"
	"git.lost.host/meutraa/minefix/internal/sim"
)

// ErrNotSSC is returned when the simfile format cannot carry fake
// regions or per-chart timing data.
var ErrNotSSC = errors.New("fake regions require an SSC simfile")

// Options are the caller's conflict permissions.
type Options struct {
	// AllowSimultaneous tolerates a mine and a note on the same beat
	// within one chart; such mines are left hittable.
	AllowSimultaneous bool

	// AllowSplitTiming permits giving a chart its own copy of the
	// timing data when a mine in one chart shares a beat with a note
	// in another.
	AllowSplitTiming bool
}

// position locates one note object: its beat and the chart it lives in.
type position struct {
	beat  sim.Beat
	chart int
}

// notesAndMines is the whole-simfile extraction result: every note and
// mine position, sorted by (beat, chart index), plus every same-beat
// conflict found along the way.
type notesAndMines struct {
	notePositions []position
	minePositions []position

	mustAllowSimultaneous []Conflict
	mustAllowSplitTiming  []Conflict
}

// findChartAt looks up a position list for an entry on the given beat
// and returns its chart index. The list is sorted by beat, so a binary
// search finds the first candidate.
func findChartAt(positions []position, beat sim.Beat) (int, bool) {
	i := sort.Search(len(positions), func(i int) bool {
		return positions[i].beat >= beat
	})
	if i == len(positions) || positions[i].beat != beat {
		return 0, false
	}
	return positions[i].chart, true
}

// recordSameBeat checks a newly extracted position against the
// opposite kind of object, both across previously indexed charts and
// within the current chart, and records any coincidence. Both checks
// run independently; a mine can conflict on both fronts at once.
func (nm *notesAndMines) recordSameBeat(chartPositions []position, pos position, isMine bool) {
	otherCharts := nm.notePositions
	if !isMine {
		otherCharts = nm.minePositions
	}

	if other, ok := findChartAt(otherCharts, pos.beat); ok {
		c := Conflict{Beat: pos.beat, MineChart: pos.chart, NoteChart: other}
		if !isMine {
			c.MineChart, c.NoteChart = other, pos.chart
		}
		nm.mustAllowSplitTiming = append(nm.mustAllowSplitTiming, c)
	}

	if _, ok := findChartAt(chartPositions, pos.beat); ok {
		nm.mustAllowSimultaneous = append(nm.mustAllowSimultaneous, Conflict{
			Beat:      pos.beat,
			MineChart: pos.chart,
			NoteChart: pos.chart,
		})
	}
}

// mergePositions merges two (beat, chart)-sorted lists, preserving the
// order. Each chart's list is merged into the running whole-simfile
// list once, keeping the accumulation linear overall.
func mergePositions(a, b []position) []position {
	out := make([]position, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].beat < b[j].beat ||
			(a[i].beat == b[j].beat && a[i].chart <= b[j].chart) {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// collectNotesAndMines runs the analysis pass: walk every chart's note
// stream in order, classify each object, and detect conflicts as
// positions accumulate. It performs no mutation.
func collectNotesAndMines(s *sim.Simfile) *notesAndMines {
	nm := &notesAndMines{}

	for c, chart := range s.Charts {
		var chartNotes, chartMines []position

		for _, note := range notes.Data(chart) {
			pos := position{beat: note.Beat, chart: c}
			switch note.Type {
			case notes.Mine:
				nm.recordSameBeat(chartNotes, pos, true)
				chartMines = append(chartMines, pos)
			case notes.Fake, notes.Tail:
				// Not judged, cannot conflict.
			default:
				nm.recordSameBeat(chartMines, pos, false)
				chartNotes = append(chartNotes, pos)
			}
		}

		nm.notePositions = mergePositions(nm.notePositions, chartNotes)
		nm.minePositions = mergePositions(nm.minePositions, chartMines)
	}

	return nm
}

// checkConflicts is the policy gate. It fails only when a disallowed
// category is non-empty, but the error carries both complete sets.
func checkConflicts(s *sim.Simfile, opts Options, nm *notesAndMines) error {
	disallowed := (!opts.AllowSimultaneous && len(nm.mustAllowSimultaneous) > 0) ||
		(!opts.AllowSplitTiming && len(nm.mustAllowSplitTiming) > 0)
	if !disallowed {
		return nil
	}
	return &ConflictError{
		Simfile:      s,
		Simultaneous: nm.mustAllowSimultaneous,
		SplitTiming:  nm.mustAllowSplitTiming,
	}
}

// chartsWithMines returns the indexes of charts that contain at least
// one mine, ascending.
func chartsWithMines(nm *notesAndMines) []int {
	seen := map[int]struct{}{}
	var out []int
	for _, pos := range nm.minePositions {
		if _, ok := seen[pos.chart]; ok {
			continue
		}
		seen[pos.chart] = struct{}{}
		out = append(out, pos.chart)
	}
	sort.Ints(out)
	return out
}

// beatAlreadyFake reports whether the beat falls inside an existing
// fake region. Regions are sorted and assumed non-overlapping, so the
// scan stops at the first region starting past the beat.
func beatAlreadyFake(beat sim.Beat, fakeList sim.BeatValues) (bool, error) {
	for _, fake := range fakeList {
		duration, err := sim.BeatFromString(fake.Value)
		if nil != err {
			return false, fmt.Errorf("invalid fake region duration %q: %w", fake.Value, err)
		}
		if fake.Beat <= beat && beat < fake.Beat+duration {
			return true, nil
		}
		if fake.Beat > beat {
			return false, nil
		}
	}
	return false, nil
}

// splitTiming copies the simfile's timing data down into the chart,
// giving it independent timing.
func splitTiming(s *sim.Simfile, chart *sim.Chart) {
	for _, key := range sim.TimingProperties {
		if value, ok := s.Get(key); ok {
			chart.Set(key, value)
		}
	}
}

// Apply adds a one-tick fake region on every isolated mine in every
// chart of the simfile, mutating it in place, and returns the ordered
// list of actions taken.
//
// The whole simfile is analyzed before anything is touched: when a
// disallowed same-beat conflict exists anywhere, Apply returns a
// *ConflictError enumerating every conflict and leaves the simfile
// unchanged.
func Apply(s *sim.Simfile, opts Options) ([]Action, error) {
	if s.Format != sim.FormatSSC {
		return nil, ErrNotSSC
	}

	nm := collectNotesAndMines(s)
	if err := checkConflicts(s, opts, nm); nil != err {
		return nil, err
	}

	var actions []Action
	skipped := 0

	for _, index := range chartsWithMines(nm) {
		chart := s.Charts[index]

		var target sim.PropertyHolder
		switch {
		case chart.HasTiming():
			// The chart's own timing data is authoritative.
			target = chart
		case len(nm.mustAllowSplitTiming) > 0:
			actions = append(actions, Action{
				Text: fmt.Sprintf("copy timing data from the simfile to the %s chart", whichChart(s, index)),
			})
			splitTiming(s, chart)
			target = chart
		default:
			target = s
		}

		existing, hadFakes := target.Get("FAKES")
		fakeList, err := sim.ParseBeatValues(existing)
		if nil != err {
			return nil, fmt.Errorf("unable to parse fake regions of %s: %w", whichTarget(s, target), err)
		}

		inserted := 0
		for _, group := range notes.Group(notes.Data(chart)) {
			mines, others := 0, 0
			for _, n := range group {
				if n.Type == notes.Mine {
					mines++
				} else {
					others++
				}
			}
			if mines == 0 {
				continue
			}
			if others > 0 {
				// A mixed cluster was already permitted by the gate;
				// the mine stays hittable.
				continue
			}

			beat := group[0].Beat
			covered, err := beatAlreadyFake(beat, fakeList)
			if nil != err {
				return nil, err
			}
			if covered {
				skipped++
				continue
			}

			actions = append(actions, Action{
				Text: fmt.Sprintf("add a short fake region on b%s to %s", beat, whichTarget(s, target)),
			})
			fakeList = fakeList.Insert(sim.BeatValue{Beat: beat, Value: sim.Tick().String()})
			inserted++
		}

		if inserted > 0 || hadFakes {
			target.Set("FAKES", fakeList.String())
		}
	}

	if skipped > 0 {
		actions = append(actions, Action{
			Text: fmt.Sprintf("skipped %d already-fake mines", skipped),
			Noop: true,
		})
	}

	return actions, nil
}
