package interpreter

import (
	"ex/interpreter-go/pkg/ast"
	"ex/interpreter-go/pkg/runtime"
)

// callArguments holds evaluated call arguments keyed by the callee's
// external parameter names. Duplicate names keep the last value; order
// remembers first appearance for builtins that are order sensitive.
type callArguments struct {
	values map[string]runtime.Value
	order  []string
}

func newCallArguments() *callArguments {
	return &callArguments{values: make(map[string]runtime.Value)}
}

func (a *callArguments) set(name string, value runtime.Value) {
	if _, ok := a.values[name]; !ok {
		a.order = append(a.order, name)
	}
	a.values[name] = value
}

func (a *callArguments) required(fn, name string) (runtime.Value, error) {
	value, ok := a.values[name]
	if !ok {
		return nil, runtime.Customf("%s missing required argument '%s'", fn, name)
	}
	return value, nil
}

// evaluateFunctionCall resolves a call: arguments are evaluated first,
// builtins are consulted before the binding store, and anything found in
// the store must be a callable label.
func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall) (runtime.Value, error) {
	args := newCallArguments()
	for _, arg := range call.Args {
		value, err := i.evaluateExpression(arg.Value)
		if err != nil {
			return nil, err
		}
		args.set(arg.Name, value)
	}

	if builtin, ok := builtins[call.Function]; ok {
		return builtin(i, args)
	}

	value, err := i.env.Get(call.Function)
	if err != nil {
		return nil, err
	}
	fn, ok := value.(*runtime.FunctionValue)
	if !ok {
		return nil, runtime.Customf("'%s' is not callable (type: %s)", call.Function, value.Kind())
	}
	return i.invokeFunction(fn, args)
}

func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args *callArguments) (runtime.Value, error) {
	for _, block := range fn.VisibleBlocks {
		if _, ok := i.visibleValues[block]; !ok {
			return nil, runtime.Customf("Label '%s' references undefined visible block '%s'", fn.Name, block)
		}
		if !i.visibleInit[block] {
			if err := i.initializeVisibleBlock(block); err != nil {
				return nil, err
			}
		}
	}

	savedBlocks, savedInFunction := i.contextBlocks, i.inFunction
	i.contextBlocks, i.inFunction = fn.VisibleBlocks, true
	defer func() {
		i.contextBlocks, i.inFunction = savedBlocks, savedInFunction
	}()

	depth := i.env.Depth()
	i.env.PushScope()
	defer i.env.TruncateTo(depth)

	for _, block := range fn.VisibleBlocks {
		for name, value := range i.visibleValues[block] {
			if err := i.env.Define(name, runtime.Clone(value)); err != nil {
				return nil, err
			}
		}
	}

	for idx, param := range fn.Params {
		value, ok := args.values[param]
		if !ok {
			return nil, runtime.Customf("Missing required parameter '%s' in function '%s'", param, fn.Name)
		}
		if err := i.env.Define(fn.Internals[idx], value); err != nil {
			return nil, err
		}
	}

	for _, stmt := range fn.Body {
		if err := i.executeStatement(stmt); err != nil {
			return nil, err
		}
	}

	// Refresh the shared blocks from the function's bindings while the
	// call scope is still live; the deferred truncate runs afterwards.
	for _, block := range fn.VisibleBlocks {
		values := i.visibleValues[block]
		for name := range values {
			if current, err := i.env.Get(name); err == nil {
				values[name] = current
			}
		}
	}
	return runtime.NilValue{}, nil
}

// initializeVisibleBlock evaluates a block's entries once, in declaration
// order, inside a throwaway scope so earlier entries are in reach of later
// ones. Values and the initialized flag are stored only when every entry
// succeeds.
func (i *Interpreter) initializeVisibleBlock(block string) error {
	defs, ok := i.visibleDefs[block]
	if !ok {
		return runtime.Customf("Visible block '%s' is declared but has no definition", block)
	}
	values := make(map[string]runtime.Value, len(defs))
	err := i.runScoped(func() error {
		for _, entry := range defs {
			value, err := i.evaluateExpression(entry.Value)
			if err != nil {
				return err
			}
			values[entry.Name] = value
			if err := i.env.Define(entry.Name, runtime.Clone(value)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	i.visibleValues[block] = values
	i.visibleInit[block] = true
	return nil
}
