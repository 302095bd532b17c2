package interpreter

import (
	"ex/interpreter-go/pkg/ast"
	"ex/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.SmartLockStatement:
		value, err := i.env.Get(s.Variable)
		if err != nil {
			return err
		}
		return i.env.DefineSmartLock(s.Variable, value)

	case *ast.SmartUnlockStatement:
		value, err := i.env.Get(s.Variable)
		if err != nil {
			return err
		}
		return i.env.DefineSmartUnlock(s.Variable, value)

	case *ast.SmartKillStatement:
		return i.env.Delete(s.Variable)

	case *ast.SmartReviveStatement:
		// a revived name comes back as a plain Nil binding
		return i.env.Define(s.Variable, runtime.NilValue{})

	case *ast.SmartConstStatement:
		value, err := i.env.Get(s.Variable)
		if err != nil {
			return err
		}
		return i.env.DefineConstant(s.Variable, value)

	case *ast.IfStatement:
		return i.executeIf(s)

	case *ast.LabelStatement:
		return i.executeLabel(s)

	case *ast.JumpStatement:
		return i.executeJump(s)

	case *ast.PassStatement:
		return nil

	case *ast.ForStatement:
		return i.executeFor(s)

	case *ast.WhileStatement:
		return i.executeWhile(s)

	case *ast.DoWhileStatement:
		return i.executeDoWhile(s)

	case *ast.VisibleStatement:
		i.visibleDefs[s.Name] = s.Entries
		i.visibleValues[s.Name] = make(map[string]runtime.Value)
		i.visibleInit[s.Name] = false
		return nil

	case *ast.StructDefStatement:
		methods := make(map[string]*runtime.Method, len(s.Methods))
		for _, m := range s.Methods {
			methods[m.Name] = &runtime.Method{Name: m.Name, Params: m.Params, Body: m.Body}
		}
		return i.env.Define(s.Name, &runtime.StructDefValue{Name: s.Name, Methods: methods})

	case ast.Expression:
		_, err := i.evaluateExpression(s)
		return err

	default:
		return runtime.Customf("Unsupported statement: %s", stmt.NodeType())
	}
}

func (i *Interpreter) executeBlock(body []ast.Statement) error {
	for _, stmt := range body {
		if err := i.executeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeIf runs the first branch whose condition is truthy. Branches
// execute in the enclosing scope; if opens no scope of its own.
func (i *Interpreter) executeIf(s *ast.IfStatement) error {
	condition, err := i.evaluateExpression(s.Condition)
	if err != nil {
		return err
	}
	if runtime.Truthy(condition) {
		return i.executeBlock(s.ThenBranch)
	}
	for _, elif := range s.ElifBranches {
		condition, err := i.evaluateExpression(elif.Condition)
		if err != nil {
			return err
		}
		if runtime.Truthy(condition) {
			return i.executeBlock(elif.Body)
		}
	}
	if s.ElseBranch != nil {
		return i.executeBlock(s.ElseBranch)
	}
	return nil
}

// executeLabel binds each declaration: callable labels become functions,
// bare labels become jump targets. Bodies are not executed here.
func (i *Interpreter) executeLabel(s *ast.LabelStatement) error {
	for _, decl := range s.Labels {
		var value runtime.Value
		if decl.Callable {
			value = &runtime.FunctionValue{
				Name:          decl.Name,
				Params:        decl.Params,
				Internals:     decl.Internals,
				Body:          decl.Body,
				VisibleBlocks: decl.VisibleBlocks,
			}
		} else {
			value = &runtime.ControlFlowValue{Name: decl.Name, Body: decl.Body}
		}
		if err := i.env.Define(decl.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeJump(s *ast.JumpStatement) error {
	target, err := i.env.Get(s.Target)
	if err != nil {
		return err
	}
	flow, ok := target.(*runtime.ControlFlowValue)
	if !ok {
		return runtime.Customf("'%s' is not a valid jump target (must be a control flow label)", s.Target)
	}
	return i.runScoped(func() error {
		return i.executeBlock(flow.Body)
	})
}

// executeFor evaluates the iterable once, then runs the body in a fresh
// scope per element with the iterator bound inside it.
func (i *Interpreter) executeFor(s *ast.ForStatement) error {
	iterable, err := i.evaluateExpression(s.Iterable)
	if err != nil {
		return err
	}
	arr, ok := iterable.(*runtime.ArrayValue)
	if !ok {
		return runtime.Customf("For-loop expects an Array iterable, got %s", iterable.Kind())
	}
	return i.runScoped(func() error {
		for _, element := range arr.Elements {
			err := i.runScoped(func() error {
				if err := i.env.Define(s.Iterator, element); err != nil {
					return err
				}
				return i.executeBlock(s.Body)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// executeWhile re-evaluates the condition in the enclosing scope before
// each iteration; only the body gets a per-iteration scope.
func (i *Interpreter) executeWhile(s *ast.WhileStatement) error {
	for {
		condition, err := i.evaluateExpression(s.Condition)
		if err != nil {
			return err
		}
		if !runtime.Truthy(condition) {
			return nil
		}
		err = i.runScoped(func() error {
			return i.executeBlock(s.Body)
		})
		if err != nil {
			return err
		}
	}
}

func (i *Interpreter) executeDoWhile(s *ast.DoWhileStatement) error {
	for {
		err := i.runScoped(func() error {
			return i.executeBlock(s.Body)
		})
		if err != nil {
			return err
		}
		condition, err := i.evaluateExpression(s.Condition)
		if err != nil {
			return err
		}
		if !runtime.Truthy(condition) {
			return nil
		}
	}
}
