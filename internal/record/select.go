package record

// SelectByStatus returns the tasks matching filter, in input order.
// FilterAll and any unrecognized filter return a copy of the input.
func SelectByStatus(tasks []Task, filter Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch filter {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// ParseFilter converts s to a Filter and reports whether it is recognized.
// Unrecognized values are returned as-is and behave like FilterAll.
func ParseFilter(s string) (Filter, bool) {
	f := Filter(s)
	for _, known := range Filters {
		if f == known {
			return f, true
		}
	}
	return f, false
}
