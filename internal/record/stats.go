package record

// ComputeStats counts tasks by completion state.
//
// CompletionRate is completed/total as a percentage rounded half up, and 0
// for an empty list.
func ComputeStats(tasks []Task) Stats {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	total := len(tasks)

	rate := 0
	if total > 0 {
		// floor(100*c/t + 1/2) in integers
		rate = (200*completed + total) / (2 * total)
	}

	return Stats{
		Total:          total,
		Completed:      completed,
		Active:         total - completed,
		CompletionRate: rate,
	}
}
