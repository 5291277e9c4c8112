package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/todo"
)

// NewToggleCommand creates the toggle command.
func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "toggle <id>",
		Short:         "Flip a task between active and completed",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(rootOpts, args[0], cmd)
		},
	}
}

func runToggle(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	return opts.withSession(cmd.Context(), formatter, func(c *todo.Controller) error {
		found, err := c.Toggle(cmd.Context(), id)
		if !found {
			return failNotFound(formatter, id)
		}
		if err != nil {
			return failMutation(formatter, err)
		}

		task, _ := c.Get(id)
		if formatter.Format == "json" {
			return formatter.Success(task)
		}
		verb := "Reopened"
		if task.Completed {
			verb = "Completed"
		}
		fmt.Fprintf(formatter.Writer, "%s %s\n", verb, formatTask(task))
		return nil
	})
}
