package notes

// Group clusters notes that share a beat, folding hold and roll tails
// into the head they terminate. A tail never starts a cluster of its
// own; its beat becomes the End of the matching head instead.
func Group(ns []Note) [][]Note {
	type ref struct{ group, index int }
	open := map[int]ref{}
	var groups [][]Note
	for _, n := range ns {
		if n.Type == Tail {
			if r, ok := open[n.Column]; ok {
				groups[r.group][r.index].End = n.Beat
				delete(open, n.Column)
			}
			continue
		}
		if len(groups) == 0 || groups[len(groups)-1][0].Beat != n.Beat {
			groups = append(groups, []Note{})
		}
		g := len(groups) - 1
		groups[g] = append(groups[g], n)
		if n.Type == HoldHead || n.Type == RollHead {
			open[n.Column] = ref{group: g, index: len(groups[g]) - 1}
		}
	}
	return groups
}
