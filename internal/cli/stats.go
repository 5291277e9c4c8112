package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/todo"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Show task counts and completion rate",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := rootOpts.formatter(cmd)
			return rootOpts.withSession(cmd.Context(), formatter, func(c *todo.Controller) error {
				stats := c.Stats()
				if formatter.Format == "json" {
					return formatter.Success(stats)
				}
				renderStats(formatter.Writer, stats)
				return nil
			})
		},
	}
}
