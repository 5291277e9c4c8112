package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/todo"
)

// NewClearCompletedCommand creates the clear-completed command.
func NewClearCompletedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear-completed",
		Short:         "Remove every completed task",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			return rootOpts.withSession(cmd.Context(), formatter, func(c *todo.Controller) error {
				removed, err := c.ClearCompleted(cmd.Context())
				if err != nil {
					return failMutation(formatter, err)
				}
				if err := dropIfEmpty(cmd.Context(), c); err != nil {
					return failMutation(formatter, err)
				}
				return outputRemoved(formatter, removed, fmt.Sprintf("Removed %s", plural(removed, "completed task")))
			})
		},
	}
}

// NewClearAllCommand creates the clear-all command.
func NewClearAllCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear-all",
		Short:         "Remove every task and the stored list",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			return rootOpts.withSession(cmd.Context(), formatter, func(c *todo.Controller) error {
				removed := c.Len()
				if err := c.ClearAll(cmd.Context()); err != nil {
					return failMutation(formatter, err)
				}
				return outputRemoved(formatter, removed, fmt.Sprintf("Removed %s", plural(removed, "task")))
			})
		},
	}
}

func outputRemoved(formatter *OutputFormatter, removed int, message string) error {
	if formatter.Format == "json" {
		return formatter.Success(map[string]int{"removed": removed})
	}
	return formatter.Success(message)
}
