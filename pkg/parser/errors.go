package parser

import (
	"fmt"
	"strings"

	"ex/interpreter-go/pkg/lexer"
)

// ParseError reports a syntax error at the token where parsing got stuck.
type ParseError struct {
	Token   lexer.Token
	Message string
}

func (e *ParseError) Error() string {
	if e.Token.Kind == lexer.Eof {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

// ErrorList collects every syntax error found in one pass. Parsing
// recovers at statement boundaries so a single run can report them all.
type ErrorList []*ParseError

func (e ErrorList) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}
