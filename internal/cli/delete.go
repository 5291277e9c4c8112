package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/todo"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Aliases:       []string{"rm"},
		Short:         "Remove a task",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}
}

func runDelete(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	return opts.withSession(cmd.Context(), formatter, func(c *todo.Controller) error {
		task, ok := c.Get(id)
		if !ok {
			return failNotFound(formatter, id)
		}
		if _, err := c.Delete(cmd.Context(), id); err != nil {
			return failMutation(formatter, err)
		}

		if err := dropIfEmpty(cmd.Context(), c); err != nil {
			return failMutation(formatter, err)
		}

		if formatter.Format == "json" {
			return formatter.Success(task)
		}
		fmt.Fprintf(formatter.Writer, "Deleted %s\n", formatTask(task))
		return nil
	})
}
