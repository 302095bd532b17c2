// Package interpreter executes EX syntax trees. One Interpreter owns a
// scoped variable store and the visibility-block registry; statements run
// against it in order and the first failure aborts the batch.
package interpreter

import (
	"io"
	"os"

	"ex/interpreter-go/pkg/ast"
	"ex/interpreter-go/pkg/runtime"
)

// Interpreter drives execution of EX statements.
type Interpreter struct {
	env *runtime.Environment

	// Visibility blocks: ordered entry declarations, the lazily built
	// value maps, and the initialization flags. A block's values come to
	// life on the first call of a function granted access to it.
	visibleDefs   map[string][]*ast.VisibleEntry
	visibleValues map[string]map[string]runtime.Value
	visibleInit   map[string]bool

	// The permitted-blocks context of the currently running function.
	// Saved and restored around every call; calls are never concurrent.
	contextBlocks []string
	inFunction    bool

	out io.Writer
}

// New returns an interpreter whose global scope is seeded with the
// standard constants.
func New() *Interpreter {
	interp := &Interpreter{
		env:           runtime.NewEnvironment(),
		visibleDefs:   make(map[string][]*ast.VisibleEntry),
		visibleValues: make(map[string]map[string]runtime.Value),
		visibleInit:   make(map[string]bool),
		out:           os.Stdout,
	}
	defineStandardVariables(interp.env)
	return interp
}

// Environment returns the interpreter's variable store.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// SetOutput redirects print and log output; the default is stdout.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.out = w
}

// Interpret executes statements in order, stopping at the first error.
// State mutated by earlier statements persists across the failure.
func (i *Interpreter) Interpret(statements []ast.Statement) error {
	for _, stmt := range statements {
		if err := i.executeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// runScoped executes fn inside a fresh scope. The deferred truncate
// releases the scope even when fn fails mid-way, so errors cannot leave
// stale scopes behind.
func (i *Interpreter) runScoped(fn func() error) error {
	depth := i.env.Depth()
	i.env.PushScope()
	defer i.env.TruncateTo(depth)
	return fn()
}
