// Package schema validates task snapshot documents against an embedded
// CUE schema before they are imported into a collection.
//
// The schema is stricter than the controller's own load path: a snapshot
// read back from the store is trusted, an imported document is not.
package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed snapshot.cue
var snapshotCUE string

var (
	loadOnce sync.Once
	ctx      *cue.Context
	snapshot cue.Value
	loadErr  error
)

func load() error {
	loadOnce.Do(func() {
		ctx = cuecontext.New()
		v := ctx.CompileString(snapshotCUE, cue.Filename("snapshot.cue"))
		if err := v.Err(); err != nil {
			loadErr = fmt.Errorf("compile snapshot schema: %w", err)
			return
		}
		snapshot = v.LookupPath(cue.ParsePath("#Snapshot"))
		if !snapshot.Exists() {
			loadErr = fmt.Errorf("snapshot schema has no #Snapshot definition")
		}
	})
	return loadErr
}

// Violation is a single schema failure.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// Error reports why a document does not match the snapshot schema.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return "snapshot does not match schema"
	}
	v := e.Violations[0]
	msg := fmt.Sprintf("snapshot does not match schema: %s", v.Message)
	if v.Path != "" {
		msg = fmt.Sprintf("snapshot does not match schema at %s: %s", v.Path, v.Message)
	}
	if n := len(e.Violations) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// mu guards the shared cue.Context, which is not safe for concurrent use.
var mu sync.Mutex

// ValidateSnapshot checks that data is a JSON array of task records.
// Returns *Error when the document parses but does not conform.
func ValidateSnapshot(data []byte) error {
	if err := load(); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	// JSON is a subset of CUE.
	doc := ctx.CompileBytes(data, cue.Filename("snapshot.json"))
	if err := doc.Err(); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	unified := snapshot.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return toError(err)
	}
	return nil
}

func toError(err error) *Error {
	out := &Error{}
	for _, e := range errors.Errors(err) {
		format, args := e.Msg()
		out.Violations = append(out.Violations, Violation{
			Path:    pathString(e.Path()),
			Message: fmt.Sprintf(format, args...),
			Line:    lineOf(e.Position()),
		})
	}
	return out
}

func pathString(sel []string) string {
	if len(sel) == 0 {
		return ""
	}
	s := sel[0]
	for _, p := range sel[1:] {
		s += "." + p
	}
	return s
}

func lineOf(pos token.Pos) int {
	if !pos.IsValid() {
		return 0
	}
	return pos.Line()
}
