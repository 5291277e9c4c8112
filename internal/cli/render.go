package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/tasklist/internal/record"
)

// formatTask renders one task on a single line:
//
//	<id>  [x] <priority> <text> (due <date>) #tag ...
func formatTask(t record.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s] %-6s %s", t.ID, mark, t.Priority, t.Text)
	if t.DueDate != nil {
		fmt.Fprintf(&b, " (due %s)", *t.DueDate)
	}
	for _, tag := range t.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	return b.String()
}

// renderList writes a view followed by a summary line.
func renderList(w io.Writer, view []record.Task, total int, filter record.Filter, sort record.SortMode) {
	if len(view) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	for _, t := range view {
		fmt.Fprintln(w, formatTask(t))
	}
	fmt.Fprintf(w, "\n%d of %d shown (filter: %s, sort: %s)\n", len(view), total, filter, sort)
}

// renderStats writes the aggregate counters on one line.
func renderStats(w io.Writer, s record.Stats) {
	fmt.Fprintf(w, "Total: %d  Active: %d  Completed: %d  Progress: %d%%\n",
		s.Total, s.Active, s.Completed, s.CompletionRate)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
