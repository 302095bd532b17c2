package lexer

import (
	"fmt"
	"strings"
)

// LexError reports a scanning failure with its 1-based position.
type LexError struct {
	Line    int
	Column  int
	Message string
}

func newLexError(line, column int, message string) *LexError {
	return &LexError{Line: line, Column: column, Message: message}
}

func (e *LexError) Error() string {
	return fmt.Sprintf("[line %d, col %d] %s", e.Line, e.Column, e.Message)
}

// Display renders the error with the offending source line and a caret
// under the failure column.
func (e *LexError) Display(source string) string {
	lines := strings.Split(source, "\n")
	contextLine := ""
	if e.Line-1 >= 0 && e.Line-1 < len(lines) {
		contextLine = lines[e.Line-1]
	}
	padding := strings.Repeat(" ", max(e.Column-1, 0))
	return fmt.Sprintf("\n[Lexer Error] line %d:%d → %s\n   %s\n   %s^",
		e.Line, e.Column, e.Message, contextLine, padding)
}
