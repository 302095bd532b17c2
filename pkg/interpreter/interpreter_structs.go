package interpreter

import (
	"ex/interpreter-go/pkg/ast"
	"ex/interpreter-go/pkg/runtime"
)

// evaluateStructInstantiation runs a constructor-style call. The method
// name "new" aliases "constructor"; the constructor body works on a fresh
// instance bound as self and the instance read back from self is the
// result of the expression.
func (i *Interpreter) evaluateStructInstantiation(e *ast.StructInstantiation) (runtime.Value, error) {
	value, err := i.env.Get(e.StructName)
	if err != nil {
		return nil, err
	}
	def, ok := value.(*runtime.StructDefValue)
	if !ok {
		return nil, runtime.Customf("'%s' is not a struct definition", e.StructName)
	}

	lookup := e.MethodName
	if lookup == "new" {
		lookup = "constructor"
	}
	method, ok := def.Methods[lookup]
	if !ok {
		return nil, runtime.Customf("Struct '%s' has no method '%s' (lookup '%s')", e.StructName, e.MethodName, lookup)
	}

	instance := &runtime.StructInstanceValue{
		StructName: def.Name,
		Fields:     make(map[string]runtime.Value),
		Methods:    def.Methods,
	}

	depth := i.env.Depth()
	i.env.PushScope()
	defer i.env.TruncateTo(depth)

	if err := i.env.Define("self", instance); err != nil {
		return nil, err
	}
	if err := i.bindMethodArguments(method, e.Args); err != nil {
		return nil, err
	}
	for _, stmt := range method.Body {
		if err := i.executeStatement(stmt); err != nil {
			return nil, err
		}
	}

	selfValue, err := i.env.Get("self")
	if err != nil {
		return nil, err
	}
	result, ok := selfValue.(*runtime.StructInstanceValue)
	if !ok {
		return nil, runtime.Customf("'self' was overwritten with a non-struct value")
	}
	return result, nil
}

// bindMethodArguments pairs positional arguments with the method's
// parameters, skipping a leading self. Arguments are evaluated inside the
// call scope; parameters without an argument stay unbound and surplus
// arguments are never evaluated.
func (i *Interpreter) bindMethodArguments(method *runtime.Method, args []ast.Expression) error {
	params := method.Params
	if len(params) > 0 && params[0] == "self" {
		params = params[1:]
	}
	for idx := 0; idx < len(params) && idx < len(args); idx++ {
		value, err := i.evaluateExpression(args[idx])
		if err != nil {
			return err
		}
		if err := i.env.Define(params[idx], value); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateMemberAccess(e *ast.MemberAccess) (runtime.Value, error) {
	object, err := i.evaluateExpression(e.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.StructInstanceValue)
	if !ok {
		return nil, runtime.Customf("Cannot access member '%s' on non-struct type %s", e.Member, object.Kind())
	}
	field, ok := instance.Fields[e.Member]
	if !ok {
		return nil, runtime.Customf("Struct '%s' has no field '%s'", instance.StructName, e.Member)
	}
	return runtime.Clone(field), nil
}

// evaluateMemberAssign writes a field through a variable reference. A
// self target inside a method takes the fast path; anything else reads
// the variable, updates the field on the copy and rebinds it.
func (i *Interpreter) evaluateMemberAssign(e *ast.MemberAssign) (runtime.Value, error) {
	variable, ok := e.Object.(*ast.Variable)
	if !ok {
		return nil, runtime.Customf("Member assignment requires a simple variable reference")
	}

	if variable.Name == "self" {
		if selfValue, err := i.env.Get("self"); err == nil {
			if instance, ok := selfValue.(*runtime.StructInstanceValue); ok {
				value, err := i.evaluateExpression(e.Value)
				if err != nil {
					return nil, err
				}
				instance.Fields[e.Member] = value
				if err := i.env.Define("self", instance); err != nil {
					return nil, err
				}
				return runtime.NilValue{}, nil
			}
		}
	}

	current, err := i.env.Get(variable.Name)
	if err != nil {
		return nil, err
	}
	instance, ok := current.(*runtime.StructInstanceValue)
	if !ok {
		return nil, runtime.Customf("Cannot assign to member '%s' on non-struct type %s", e.Member, current.Kind())
	}
	value, err := i.evaluateExpression(e.Value)
	if err != nil {
		return nil, err
	}
	instance.Fields[e.Member] = value
	if err := i.env.Define(variable.Name, instance); err != nil {
		return nil, err
	}
	return runtime.NilValue{}, nil
}

// evaluateMethodCall invokes a method on an existing instance. Fields are
// copied into the call scope as plain bindings; after the body runs the
// instance is rebuilt from self, or field by field when self no longer
// holds a struct, and written back to the receiver variable if there was
// one.
func (i *Interpreter) evaluateMethodCall(e *ast.MethodCall) (runtime.Value, error) {
	object, err := i.evaluateExpression(e.Object)
	if err != nil {
		return nil, err
	}
	receiver, ok := object.(*runtime.StructInstanceValue)
	if !ok {
		return nil, runtime.Customf("Cannot call method '%s' on non-struct type %s", e.Method, object.Kind())
	}
	method, ok := receiver.Methods[e.Method]
	if !ok {
		return nil, runtime.Customf("Struct '%s' has no method '%s'", receiver.StructName, e.Method)
	}

	depth := i.env.Depth()
	i.env.PushScope()
	defer i.env.TruncateTo(depth)

	if err := i.env.Define("self", receiver); err != nil {
		return nil, err
	}
	for name, field := range receiver.Fields {
		if err := i.env.Define(name, runtime.Clone(field)); err != nil {
			return nil, err
		}
	}
	if err := i.bindMethodArguments(method, e.Args); err != nil {
		return nil, err
	}
	for _, stmt := range method.Body {
		if err := i.executeStatement(stmt); err != nil {
			return nil, err
		}
	}

	var updated *runtime.StructInstanceValue
	if selfValue, err := i.env.Get("self"); err == nil {
		if instance, ok := selfValue.(*runtime.StructInstanceValue); ok {
			updated = instance
		}
	}
	if updated == nil {
		updated = i.refreshFields(receiver)
	}

	// Close the call scope by hand so the write-back lands on the caller's
	// binding rather than a same-named field binding; the deferred truncate
	// then has nothing left to do.
	i.env.TruncateTo(depth)
	if variable, ok := e.Object.(*ast.Variable); ok {
		if err := i.env.Define(variable.Name, updated); err != nil {
			return nil, err
		}
	}
	return runtime.NilValue{}, nil
}

// refreshFields rebuilds an instance from the call scope's field bindings,
// keeping the original value for any field no longer bound.
func (i *Interpreter) refreshFields(instance *runtime.StructInstanceValue) *runtime.StructInstanceValue {
	updated := runtime.Clone(instance).(*runtime.StructInstanceValue)
	for name := range instance.Fields {
		if value, err := i.env.Get(name); err == nil {
			updated.Fields[name] = value
		}
	}
	return updated
}
