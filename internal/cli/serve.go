package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/httpapi"
	"github.com/roach88/tasklist/internal/todo"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list over HTTP",
		Long: `Serve the task list as a JSON HTTP API until interrupted.

Routes:
  GET    /tasks?filter=&sort=    filtered, sorted view
  POST   /tasks                  add a task
  GET    /tasks/:id              one task
  PATCH  /tasks/:id              update a task
  POST   /tasks/:id/toggle       flip completion
  DELETE /tasks/:id              delete a task
  POST   /tasks/clear-completed  remove completed tasks
  DELETE /tasks                  remove every task
  GET    /stats                  counters

Example:
  tasklist serve --addr 127.0.0.1:8765`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides http_addr)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	addr := opts.Addr
	if addr == "" {
		addr = opts.config.HTTPAddr
	}

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return opts.withSession(ctx, formatter, func(c *todo.Controller) error {
		server := httpapi.NewServer(c, opts.logger)
		formatter.VerboseLog("Serving %s from %s", plural(c.Len(), "task"), opts.config.DBPath)
		if err := server.ListenAndServe(ctx, addr); err != nil {
			return fail(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}
		return nil
	})
}
