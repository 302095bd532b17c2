package runtime

import "fmt"

// ErrorKind discriminates the runtime failure categories.
type ErrorKind int

const (
	ErrUndefinedVariable ErrorKind = iota
	ErrCannotReassignConstant
	ErrCannotReassignSmartLocked
	ErrCannotDeleteConstant
	ErrCannotDeleteSmartLocked
	ErrCannotDeleteUndefined
	ErrTypeMismatch
	ErrInvalidUnaryOperation
	ErrInvalidBinaryOperation
	ErrDivisionByZero
	ErrIntegerOverflow
	ErrInvalidNumberFormat
	ErrUnsupportedExpression
	ErrInvalidFunctionCall
	ErrWrongNumberOfArguments
	ErrCustom
)

// RuntimeError is the single failure type produced while executing EX code.
// Line, column and context are optional decorations added near the failure
// site when known.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Line    int // 1-based; 0 when unknown
	Column  int
	Context string
}

func (e *RuntimeError) Error() string {
	msg := "Runtime Error: " + e.Message
	if e.Line > 0 && e.Column > 0 {
		msg = fmt.Sprintf("[line %d:%d] ", e.Line, e.Column) + msg
	}
	if e.Context != "" {
		msg += "\n  Context: " + e.Context
	}
	return msg
}

// WithLocation attaches a source position and returns the error for chaining.
func (e *RuntimeError) WithLocation(line, column int) *RuntimeError {
	e.Line = line
	e.Column = column
	return e
}

// WithContext attaches free-text context and returns the error for chaining.
func (e *RuntimeError) WithContext(context string) *RuntimeError {
	e.Context = context
	return e
}

func newError(kind ErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NewUndefinedVariable(name string) *RuntimeError {
	return newError(ErrUndefinedVariable, "Undefined variable '%s'", name)
}

func NewCannotReassignConstant(name string) *RuntimeError {
	return newError(ErrCannotReassignConstant, "Cannot reassign constant variable '%s'", name)
}

func NewCannotReassignSmartLocked(name string) *RuntimeError {
	return newError(ErrCannotReassignSmartLocked, "Cannot reassign smart-locked variable '%s'", name)
}

func NewCannotDeleteConstant(name string) *RuntimeError {
	return newError(ErrCannotDeleteConstant, "Cannot delete constant variable '%s'", name)
}

func NewCannotDeleteSmartLocked(name string) *RuntimeError {
	return newError(ErrCannotDeleteSmartLocked, "Cannot delete smart-locked variable '%s'", name)
}

func NewCannotDeleteUndefined(name string) *RuntimeError {
	return newError(ErrCannotDeleteUndefined, "Cannot delete undefined variable '%s'", name)
}

func NewTypeMismatch(context, expected, got string) *RuntimeError {
	return newError(ErrTypeMismatch, "Type mismatch in '%s': expected %s, got %s", context, expected, got)
}

func NewInvalidUnaryOperation(op, operand string) *RuntimeError {
	return newError(ErrInvalidUnaryOperation, "Invalid unary operation '%s' on type %s", op, operand)
}

func NewInvalidBinaryOperation(op, left, right string) *RuntimeError {
	return newError(ErrInvalidBinaryOperation, "Invalid binary operation: %s %s %s", left, op, right)
}

func NewDivisionByZero() *RuntimeError {
	return newError(ErrDivisionByZero, "Division by zero")
}

func NewIntegerOverflow() *RuntimeError {
	return newError(ErrIntegerOverflow, "Integer overflow")
}

func NewInvalidNumberFormat(literal string) *RuntimeError {
	return newError(ErrInvalidNumberFormat, "Invalid number format: '%s'", literal)
}

func NewUnsupportedExpression(what string) *RuntimeError {
	return newError(ErrUnsupportedExpression, "Unsupported expression: %s", what)
}

func NewInvalidFunctionCall(what string) *RuntimeError {
	return newError(ErrInvalidFunctionCall, "Invalid function call: %s", what)
}

func NewWrongNumberOfArguments(expected, got int) *RuntimeError {
	return newError(ErrWrongNumberOfArguments, "Wrong number of arguments: expected %d, got %d", expected, got)
}

// Customf builds a free-form runtime error; most value and builtin
// failures use this.
func Customf(format string, args ...any) *RuntimeError {
	return newError(ErrCustom, format, args...)
}
