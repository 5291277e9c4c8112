package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tasklist/internal/record"
	"github.com/roach88/tasklist/internal/todo"
)

// Document formats accepted by export and import.
const (
	DocJSON = "json"
	DocYAML = "yaml"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
	As     string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole task list as a JSON or YAML document",
		Long: `Write every task, in list order, as a JSON array or YAML sequence.
The JSON form is the same document the store holds.

Without --output the document is written to stdout.

Example:
  tasklist export > backup.json
  tasklist export --as yaml --output tasks.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.As, "as", DocJSON, "document format (json|yaml)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.As != DocJSON && opts.As != DocYAML {
		return fail(formatter, ExitCommandError, ErrCodeGeneric,
			fmt.Sprintf("invalid document format %q: must be json or yaml", opts.As), nil)
	}

	return opts.withSession(cmd.Context(), formatter, func(c *todo.Controller) error {
		tasks := c.Export()
		doc, err := encodeDocument(tasks, opts.As)
		if err != nil {
			return fail(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
		}

		if opts.Output == "" {
			_, err := formatter.Writer.Write(doc)
			return err
		}

		if err := os.WriteFile(opts.Output, doc, 0644); err != nil {
			return fail(formatter, ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
		formatter.VerboseLog("Wrote %d bytes to %s", len(doc), opts.Output)

		if formatter.Format == "json" {
			return formatter.Success(map[string]interface{}{"count": len(tasks), "path": opts.Output})
		}
		fmt.Fprintf(formatter.Writer, "Exported %s to %s\n", plural(len(tasks), "task"), opts.Output)
		return nil
	})
}

// encodeDocument renders tasks as an indented JSON array or a YAML sequence.
// Both end with a newline.
func encodeDocument(tasks []record.Task, as string) ([]byte, error) {
	if as == DocYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}
