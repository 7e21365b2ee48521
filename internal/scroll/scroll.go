// Package scroll rewrites a simfile's SCROLLS so the chart scrolls at
// a constant visual rate across BPM changes.
package scroll

import (
	"fmt"
	"strconv"
	"strings"

	"git.lost.host/meutraa/minefix/internal/sim"
)

// fixedBPM picks the canonical BPM for the simfile: the maximum of the
// DISPLAYBPM when one is set, otherwise the maximum of the actual BPM
// segments. A "*" (random) display BPM falls back to the actual max.
func fixedBPM(s *sim.Simfile) (float64, error) {
	if display, ok := s.Get("DISPLAYBPM"); ok {
		display = strings.TrimSpace(display)
		if display != "" && display != "*" {
			parts := strings.Split(display, ":")
			bpm, err := strconv.ParseFloat(strings.TrimSpace(parts[len(parts)-1]), 64)
			if nil != err {
				return 0, fmt.Errorf("invalid DISPLAYBPM %q: %w", display, err)
			}
			return bpm, nil
		}
	}

	bpmsStr, _ := s.Get("BPMS")
	bpms, err := sim.ParseBeatValues(bpmsStr)
	if nil != err {
		return 0, err
	}
	if len(bpms) == 0 {
		return 0, fmt.Errorf("simfile has no BPM segments")
	}
	max := 0.0
	for _, bpm := range bpms {
		v, err := strconv.ParseFloat(bpm.Value, 64)
		if nil != err {
			return 0, fmt.Errorf("invalid BPM value %q: %w", bpm.Value, err)
		}
		if v > max {
			max = v
		}
	}
	return max, nil
}

// Fixed sets the simfile's scroll segments to counteract its BPM
// changes, so every section scrolls as if at the canonical BPM.
func Fixed(s *sim.Simfile) error {
	if s.Format != sim.FormatSSC {
		return fmt.Errorf("scroll segments require an SSC simfile")
	}

	fixed, err := fixedBPM(s)
	if nil != err {
		return err
	}

	bpmsStr, _ := s.Get("BPMS")
	bpms, err := sim.ParseBeatValues(bpmsStr)
	if nil != err {
		return err
	}

	scrolls := make(sim.BeatValues, 0, len(bpms))
	for _, bpm := range bpms {
		v, err := strconv.ParseFloat(bpm.Value, 64)
		if nil != err {
			return fmt.Errorf("invalid BPM value %q: %w", bpm.Value, err)
		}
		scrolls = append(scrolls, sim.BeatValue{
			Beat:  bpm.Beat,
			Value: fmt.Sprintf("%.3f", fixed/v),
		})
	}

	s.Set("SCROLLS", scrolls.String())
	return nil
}
