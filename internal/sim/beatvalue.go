package sim

import (
	"fmt"
	"sort"
	"strings"
)

// BeatValue is a single beat=value pair from a timing property such as
// BPMS, SCROLLS or FAKES. The value is kept as the exact text found in
// the file so unrelated entries round-trip unchanged.
type BeatValue struct {
	Beat  Beat
	Value string
}

// BeatValues is an ordered beat=value list. Entries are sorted by beat.
type BeatValues []BeatValue

// ParseBeatValues parses a comma-separated beat=value list, the form
// used by every timing property in an SSC file.
func ParseBeatValues(s string) (BeatValues, error) {
	var out BeatValues
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid beat=value entry %q", entry)
		}
		beat, err := BeatFromString(parts[0])
		if nil != err {
			return nil, err
		}
		out = append(out, BeatValue{Beat: beat, Value: strings.TrimSpace(parts[1])})
	}
	return out, nil
}

func (bvs BeatValues) String() string {
	entries := make([]string, len(bvs))
	for i, bv := range bvs {
		entries[i] = bv.Beat.String() + "=" + bv.Value
	}
	return strings.Join(entries, ",\n")
}

// Insert adds a value in beat order, keeping the list sorted.
func (bvs BeatValues) Insert(bv BeatValue) BeatValues {
	i := sort.Search(len(bvs), func(i int) bool {
		return bvs[i].Beat >= bv.Beat
	})
	out := append(bvs, BeatValue{})
	copy(out[i+1:], out[i:])
	out[i] = bv
	return out
}
