package runtime

// binding pairs a value with its mutability tier. A constant can never be
// reassigned or deleted; a smart-locked binding behaves the same until it
// is explicitly unlocked.
type binding struct {
	value     Value
	constant  bool
	smartLock bool
}

// Environment is the scoped variable store. Scopes form a stack; lookups
// walk from the innermost scope outward, and plain definitions update the
// first binding they find or create one in the current scope.
type Environment struct {
	scopes []map[string]binding
}

// NewEnvironment creates a store holding only the global scope.
func NewEnvironment() *Environment {
	return &Environment{scopes: []map[string]binding{{}}}
}

// Exists reports whether the name is bound in any scope.
func (e *Environment) Exists(name string) bool {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			return true
		}
	}
	return false
}

// Define assigns through the first existing binding for the name, walking
// innermost to outermost, or creates a plain binding in the current scope
// when the name is unbound. Constants and smart-locked bindings reject the
// assignment.
func (e *Environment) Define(name string, value Value) error {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i][name]; ok {
			if b.constant {
				return NewCannotReassignConstant(name)
			}
			if b.smartLock {
				return NewCannotReassignSmartLocked(name)
			}
			b.value = value
			e.scopes[i][name] = b
			return nil
		}
	}
	e.scopes[len(e.scopes)-1][name] = binding{value: value}
	return nil
}

// DefineConstant binds the name as a constant in the current scope,
// overwriting any binding already there.
func (e *Environment) DefineConstant(name string, value Value) error {
	e.scopes[len(e.scopes)-1][name] = binding{value: value, constant: true}
	return nil
}

// DefineSmartLock binds the name as smart-locked in the current scope,
// overwriting any binding already there.
func (e *Environment) DefineSmartLock(name string, value Value) error {
	e.scopes[len(e.scopes)-1][name] = binding{value: value, smartLock: true}
	return nil
}

// DefineSmartUnlock rebinds the name as a plain binding in the current
// scope. Outer bindings are left untouched; unlocking a name bound in an
// enclosing scope shadows it instead.
func (e *Environment) DefineSmartUnlock(name string, value Value) error {
	current := e.scopes[len(e.scopes)-1]
	delete(current, name)
	current[name] = binding{value: value}
	return nil
}

// Get returns a clone of the innermost binding for the name. Handing out
// clones keeps aggregates handled by two variables from aliasing.
func (e *Environment) Get(name string) (Value, error) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i][name]; ok {
			return Clone(b.value), nil
		}
	}
	return nil, NewUndefinedVariable(name)
}

// Delete removes the innermost binding for the name. Constants and
// smart-locked bindings cannot be deleted.
func (e *Environment) Delete(name string) error {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i][name]; ok {
			if b.constant {
				return NewCannotDeleteConstant(name)
			}
			if b.smartLock {
				return NewCannotDeleteSmartLocked(name)
			}
			delete(e.scopes[i], name)
			return nil
		}
	}
	return NewCannotDeleteUndefined(name)
}

// PushScope opens a nested scope.
func (e *Environment) PushScope() {
	e.scopes = append(e.scopes, map[string]binding{})
}

// PopScope discards the innermost scope. The global scope is never popped.
func (e *Environment) PopScope() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// Depth reports the current number of scopes.
func (e *Environment) Depth() int {
	return len(e.scopes)
}

// TruncateTo pops scopes until the stack is back at the given depth. It is
// the cleanup half of the push/defer pairing used around calls, so a body
// that failed mid-execution cannot leak scopes.
func (e *Environment) TruncateTo(depth int) {
	if depth < 1 {
		depth = 1
	}
	for len(e.scopes) > depth {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}
