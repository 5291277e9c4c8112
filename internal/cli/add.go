package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/record"
	"github.com/roach88/tasklist/internal/todo"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Priority string
	Due      string
	Tags     []string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task to the top of the list",
		Long: `Add a new, not yet completed task.

Text is trimmed and must be non-empty and at most 200 characters.

Example:
  tasklist add "Buy milk"
  tasklist add "File taxes" --priority high --due 2026-04-15 --tag home`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", string(record.PriorityLow), "priority (low|medium|high)")
	cmd.Flags().StringVar(&opts.Due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVarP(&opts.Tags, "tag", "t", nil, "tag (repeatable)")

	return cmd
}

func runAdd(opts *AddOptions, text string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	priority := record.Priority(opts.Priority)
	if !priority.Valid() {
		return fail(formatter, ExitCommandError, ErrCodeGeneric,
			fmt.Sprintf("invalid priority %q: must be one of low, medium, high", opts.Priority), nil)
	}

	return opts.withSession(cmd.Context(), formatter, func(c *todo.Controller) error {
		task, err := c.Add(cmd.Context(), text, record.Options{
			Priority: priority,
			DueDate:  opts.Due,
			Tags:     opts.Tags,
		})
		if err != nil {
			return failMutation(formatter, err)
		}

		formatter.VerboseLog("Stored %s under key %q", plural(c.Len(), "task"), c.Key())
		if formatter.Format == "json" {
			return formatter.Success(task)
		}
		fmt.Fprintf(formatter.Writer, "Added %s\n", formatTask(task))
		return nil
	})
}
