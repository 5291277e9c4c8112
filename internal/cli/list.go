package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/record"
	"github.com/roach88/tasklist/internal/todo"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Filter string
	Sort   string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the filtered, sorted task list",
		Long: `Show tasks filtered by completion state and sorted by date, text or
priority. Defaults come from default_filter and default_sort in the config.

Example:
  tasklist list
  tasklist list --filter active --sort priority`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter (all|active|completed)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort (date|alphabetical|priority)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var filter record.Filter
	if opts.Filter != "" {
		f, ok := record.ParseFilter(opts.Filter)
		if !ok {
			return fail(formatter, ExitCommandError, ErrCodeGeneric,
				fmt.Sprintf("invalid filter %q: must be one of %v", opts.Filter, record.Filters), nil)
		}
		filter = f
	}
	var sortMode record.SortMode
	if opts.Sort != "" {
		m, ok := record.ParseSortMode(opts.Sort)
		if !ok {
			return fail(formatter, ExitCommandError, ErrCodeGeneric,
				fmt.Sprintf("invalid sort %q: must be one of %v", opts.Sort, record.SortModes), nil)
		}
		sortMode = m
	}

	return opts.withSession(cmd.Context(), formatter, func(c *todo.Controller) error {
		if filter != "" {
			c.SetFilter(filter)
		}
		if sortMode != "" {
			c.SetSort(sortMode)
		}

		view := c.View()
		if formatter.Format == "json" {
			return formatter.Success(view)
		}
		renderList(formatter.Writer, view, c.Len(), c.Filter(), c.Sort())
		return nil
	})
}
