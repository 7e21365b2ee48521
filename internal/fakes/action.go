package fakes

// Action is one entry in the ordered record of changes made to a
// simfile. Callers skip persisting the file when every action is a
// no-op, so anything that mutates the simfile must append one.
type Action struct {
	Text string
	Noop bool
}

func (a Action) String() string {
	if a.Noop {
		return "[no-op] " + a.Text
	}
	return a.Text
}

// AnyMutation reports whether the list contains a real change.
func AnyMutation(actions []Action) bool {
	for _, a := range actions {
		if !a.Noop {
			return true
		}
	}
	return false
}
