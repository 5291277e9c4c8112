package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tasklist/internal/record"
	"github.com/roach88/tasklist/internal/schema"
	"github.com/roach88/tasklist/internal/todo"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Replace bool
	As      string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add tasks from a JSON or YAML document",
		Long: `Read tasks from a document written by export (or by hand) and add them
after the existing tasks. With --replace the document becomes the whole list.

The document is checked against the snapshot schema first; nothing is
imported unless every record is valid and every id is unique.

The format is taken from the file extension (.yaml/.yml, otherwise JSON)
unless --as is given.

Example:
  tasklist import backup.json
  tasklist import tasks.yaml --replace`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Replace, "replace", false, "replace the list instead of appending")
	cmd.Flags().StringVar(&opts.As, "as", "", "document format (json|yaml)")

	return cmd
}

func runImport(opts *ImportOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fail(formatter, ExitCommandError, ErrCodeNotFound, fmt.Sprintf("file not found: %s", path), nil)
		}
		return fail(formatter, ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}

	as := opts.As
	if as == "" {
		as = formatFromPath(path)
	}
	if as != DocJSON && as != DocYAML {
		return fail(formatter, ExitCommandError, ErrCodeGeneric,
			fmt.Sprintf("invalid document format %q: must be json or yaml", as), nil)
	}

	tasks, err := decodeDocument(raw, as)
	if err != nil {
		var schemaErr *schema.Error
		if errors.As(err, &schemaErr) {
			return fail(formatter, ExitFailure, ErrCodeSchema, schemaErr.Error(), schemaErr.Violations)
		}
		return fail(formatter, ExitFailure, ErrCodeSchema, err.Error(), nil)
	}
	formatter.VerboseLog("Read %s from %s", plural(len(tasks), "record"), path)

	return opts.withSession(cmd.Context(), formatter, func(c *todo.Controller) error {
		n, err := c.Import(cmd.Context(), tasks, opts.Replace)
		if err != nil {
			var importErr *todo.ImportError
			if errors.As(err, &importErr) {
				return fail(formatter, ExitFailure, ErrCodeSchema, importErr.Error(), nil)
			}
			return failMutation(formatter, err)
		}

		if formatter.Format == "json" {
			return formatter.Success(map[string]interface{}{"imported": n, "total": c.Len()})
		}
		fmt.Fprintf(formatter.Writer, "Imported %s (%s in list)\n", plural(n, "task"), plural(c.Len(), "task"))
		return nil
	})
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DocYAML
	default:
		return DocJSON
	}
}

// decodeDocument validates a snapshot document and decodes it. YAML is
// converted to JSON first so both go through the same schema.
func decodeDocument(raw []byte, as string) ([]record.Task, error) {
	data := raw
	if as == DocYAML {
		var doc interface{}
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		data = converted
	}

	if err := schema.ValidateSnapshot(data); err != nil {
		return nil, err
	}

	var tasks []record.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}
