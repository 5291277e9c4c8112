package record

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// priorityRank orders priorities high first. Unknown priorities rank as low.
var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

func rankOf(p Priority) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return priorityRank[PriorityLow]
}

// Orderer sorts task lists. Alphabetical ordering uses the collation rules
// of Locale.
type Orderer struct {
	Locale language.Tag
}

// NewOrderer returns an Orderer for the given locale.
func NewOrderer(locale language.Tag) Orderer {
	return Orderer{Locale: locale}
}

// Order returns a sorted copy of tasks. The input is never mutated.
//
// An empty mode means SortDate. An unrecognized mode returns the copy in
// input order. Sorting is stable, so ties keep their input order.
func (o Orderer) Order(tasks []Task, mode SortMode) []Task {
	out := append([]Task(nil), tasks...)
	if out == nil {
		out = []Task{}
	}

	switch mode {
	case SortDate, "":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt > out[j].CreatedAt
		})
	case SortAlphabetical:
		// collate.Collator is not safe for concurrent use; one per call.
		c := collate.New(o.Locale)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Text, out[j].Text) < 0
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return rankOf(out[i].Priority) < rankOf(out[j].Priority)
		})
	}

	return out
}

// OrderRecords sorts a copy of tasks using English collation.
func OrderRecords(tasks []Task, mode SortMode) []Task {
	return NewOrderer(language.English).Order(tasks, mode)
}

// ParseSortMode converts s to a SortMode and reports whether it is
// recognized. Unrecognized values are returned as-is and leave the view
// in input order.
func ParseSortMode(s string) (SortMode, bool) {
	m := SortMode(s)
	for _, known := range SortModes {
		if m == known {
			return m, true
		}
	}
	return m, false
}
