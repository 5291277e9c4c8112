package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/record"
	"github.com/roach88/tasklist/internal/todo"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Text      string
	Priority  string
	Due       string
	Tags      []string
	ClearTags bool
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Long: `Change the text, priority, due date or tags of a task. Only the flags
given are changed. --due "" removes the due date.

Example:
  tasklist edit 1700000000000-3f2a9c1b0 --text "Buy oat milk"
  tasklist edit 1700000000000-3f2a9c1b0 --priority high --tag errands`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Text, "text", "", "new text")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "new priority (low|medium|high)")
	cmd.Flags().StringVar(&opts.Due, "due", "", "new due date, empty to clear")
	cmd.Flags().StringSliceVarP(&opts.Tags, "tag", "t", nil, "replace tags (repeatable)")
	cmd.Flags().BoolVar(&opts.ClearTags, "clear-tags", false, "remove all tags")

	return cmd
}

func runEdit(opts *EditOptions, id string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	patch, err := opts.patch(cmd)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	return opts.withSession(cmd.Context(), formatter, func(c *todo.Controller) error {
		found, err := c.Update(cmd.Context(), id, patch)
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
		fmt.Fprintf(formatter.Writer, "Updated %s\n", formatTask(task))
		return nil
	})
}

// patch builds a record.Patch from the flags that were set.
func (o *EditOptions) patch(cmd *cobra.Command) (record.Patch, error) {
	var p record.Patch
	flags := cmd.Flags()

	if flags.Changed("text") {
		text := o.Text
		p.Text = &text
	}
	if flags.Changed("priority") {
		priority := record.Priority(o.Priority)
		if !priority.Valid() {
			return p, fmt.Errorf("invalid priority %q: must be one of low, medium, high", o.Priority)
		}
		p.Priority = &priority
	}
	if flags.Changed("due") {
		due := o.Due
		p.DueDate = &due
	}
	if flags.Changed("tag") && o.ClearTags {
		return p, fmt.Errorf("--tag and --clear-tags cannot be combined")
	}
	if flags.Changed("tag") {
		tags := append([]string{}, o.Tags...)
		p.Tags = &tags
	}
	if o.ClearTags {
		tags := []string{}
		p.Tags = &tags
	}

	if p == (record.Patch{}) {
		return p, fmt.Errorf("nothing to change: use --text, --priority, --due, --tag or --clear-tags")
	}
	return p, nil
}
