package lexer

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"unicode/utf8"
)

// Lexer scans EX source into tokens. The source is held as runes so char
// literals and strings keep multibyte characters intact.
type Lexer struct {
	src    []rune
	source string

	start   int
	current int

	line   int // 1-based
	column int // 1-based, column after the last advance
	tokens []Token
}

func New(source string) *Lexer {
	return &Lexer{
		src:    []rune(source),
		source: source,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Source() string {
	return l.source
}

// ScanTokens consumes the whole source and returns the token stream,
// terminated by an Eof token. Scanning stops at the first error.
func (l *Lexer) ScanTokens() ([]Token, error) {
	for !l.isAtEnd() {
		l.start = l.current
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Kind: Eof, Line: l.line})
	return l.tokens, nil
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.src)
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	c := l.src[l.current]
	l.current++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.current]
}

func (l *Lexer) peekNext() rune {
	if l.current+1 >= len(l.src) {
		return 0
	}
	return l.src[l.current+1]
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.src[l.current] != expected {
		return false
	}
	l.current++
	l.column++
	return true
}

func (l *Lexer) lexeme() string {
	return string(l.src[l.start:l.current])
}

func (l *Lexer) addToken(kind TokenKind) {
	l.tokens = append(l.tokens, Token{Kind: kind, Lexeme: l.lexeme(), Line: l.line})
}

func (l *Lexer) addValueToken(kind TokenKind, lit Literal) {
	l.tokens = append(l.tokens, Token{Kind: kind, Lexeme: l.lexeme(), Line: l.line, Literal: lit})
}

func (l *Lexer) errf(format string, args ...any) *LexError {
	return newLexError(l.line, max(l.column-1, 1), fmt.Sprintf(format, args...))
}

func (l *Lexer) scanToken() error {
	c := l.advance()

	switch c {
	case '(':
		l.addToken(LeftParen)
	case ')':
		l.addToken(RightParen)
	case '?':
		l.addToken(IdentityOperator)
	case '{':
		l.addToken(LeftBrace)
	case '}':
		l.addToken(RightBrace)
	case '[':
		l.addToken(LeftBracket)
	case ']':
		l.addToken(RightBracket)
	case '#':
		l.addToken(Hash)
	case ',':
		l.addToken(Comma)

	case '&':
		if l.match('&') {
			l.addToken(And)
		} else {
			l.addToken(Ampersand)
		}

	case '|':
		if l.match('|') {
			l.addToken(Or)
		} else {
			l.addToken(Pipe)
		}

	case '+':
		if l.match('+') {
			l.addToken(PlusPlus)
		} else {
			l.addToken(Plus)
		}

	case '-':
		if l.match('-') {
			l.addToken(MinusMinus)
		} else if l.match('>') {
			l.addToken(Arrow)
		} else if isDigit(l.peek()) {
			return l.negativeNumber()
		} else {
			l.addToken(Minus)
		}

	case '=':
		if l.match('=') {
			l.addToken(EqualEqual)
		} else {
			l.addToken(Equal)
		}

	case '!':
		if l.match('=') {
			l.addToken(BangEqual)
		} else {
			l.addToken(Bang)
		}

	case '<':
		if l.match('=') {
			l.addToken(LessEqual)
		} else {
			l.addToken(Less)
		}

	case ':':
		if l.match(':') {
			l.addToken(ColonColon)
		} else {
			l.addToken(Colon)
		}

	case '>':
		if l.match('>') {
			l.addToken(Command)
		} else if l.match('=') {
			l.addToken(GreaterEqual)
		} else {
			l.addToken(Greater)
		}

	case '*':
		l.addToken(Star)
	case '%':
		l.addToken(Percent)
	case '.':
		l.addToken(Dot)
	case '@':
		l.addToken(At)

	case '/':
		if l.match('/') {
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		} else if l.match('*') {
			for !l.isAtEnd() {
				if l.peek() == '*' && l.peekNext() == '/' {
					l.advance()
					l.advance()
					break
				}
				l.advance()
			}
		} else {
			l.addToken(Slash)
		}

	case '\'':
		return l.charLiteral()

	case '"':
		return l.stringLiteral()

	case ' ', '\r', '\t':
		// ignore
	case '\n':
		// line counted in advance

	default:
		switch {
		case c == 'O' && radixFor(l.peek()) != 0:
			return l.radixNumber()
		case isDigit(c):
			return l.decimalNumber(c)
		case isIdentStart(c):
			l.identifier(c)
		default:
			return l.errf("Unexpected character: '%c'", c)
		}
	}

	return nil
}

func (l *Lexer) charLiteral() error {
	if l.isAtEnd() {
		return l.errf("Unterminated character literal")
	}

	var ch rune
	if l.peek() == '\\' {
		l.advance()
		if l.isAtEnd() {
			return l.errf("Unterminated escape sequence in character literal")
		}
		escaped, err := l.escapeSequence(l.advance())
		if err != nil {
			return err
		}
		ch = escaped
	} else {
		if l.peek() == '\n' || l.peek() == '\r' {
			return l.errf("Character literal cannot contain newline")
		}
		ch = l.advance()
	}

	if l.isAtEnd() || l.peek() != '\'' {
		return l.errf("Expected closing ' after character literal")
	}
	l.advance()

	l.addValueToken(Char, CharLit{Value: ch})
	return nil
}

// escapeSequence resolves the character after a backslash. The shared set
// serves both char and string literals; the string-only line continuation
// is handled by the caller.
func (l *Lexer) escapeSequence(escaped rune) (rune, error) {
	switch escaped {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	case '\\':
		return '\\', nil
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case 'x':
		h1 := l.advance()
		h2 := l.advance()
		if !isHex(h1) || !isHex(h2) {
			return 0, l.errf("Incomplete or invalid hex escape sequence")
		}
		v, err := strconv.ParseUint(string([]rune{h1, h2}), 16, 8)
		if err != nil {
			return 0, l.errf("Invalid hex escape")
		}
		return rune(v), nil
	case 'u':
		if l.peek() != '{' {
			return 0, l.errf("Expected '{' after \\u")
		}
		l.advance()
		var hex []rune
		for !l.isAtEnd() && l.peek() != '}' {
			if !isHex(l.peek()) {
				return 0, l.errf("Invalid character in unicode escape")
			}
			hex = append(hex, l.advance())
			if len(hex) > 6 {
				return 0, l.errf("Unicode escape sequence too long")
			}
		}
		if l.isAtEnd() || l.peek() != '}' {
			return 0, l.errf("Unterminated unicode escape sequence")
		}
		l.advance()
		if len(hex) == 0 {
			return 0, l.errf("Empty unicode escape sequence")
		}
		cp, err := strconv.ParseUint(string(hex), 16, 32)
		if err != nil || !utf8.ValidRune(rune(cp)) {
			return 0, l.errf("Invalid unicode code point")
		}
		return rune(cp), nil
	default:
		return 0, l.errf("Unknown escape sequence: \\%c", escaped)
	}
}

func (l *Lexer) stringLiteral() error {
	var value []rune

	// triple quoted multiline """ ... """
	isMultiline := l.peek() == '"' && l.peekNext() == '"'
	if isMultiline {
		l.advance()
		l.advance()
	}

	for {
		if l.isAtEnd() {
			term := `"`
			if isMultiline {
				term = `"""`
			}
			return l.errf("Unterminated string literal (expected closing %s)", term)
		}

		if isMultiline {
			if l.peek() == '"' && l.peekNext() == '"' {
				third := rune(0)
				if l.current+2 < len(l.src) {
					third = l.src[l.current+2]
				}
				if third == '"' {
					l.advance()
					l.advance()
					l.advance()
					l.addValueToken(String, StringLit{Value: string(value)})
					return nil
				}
			}
		} else if l.peek() == '"' {
			l.advance()
			l.addValueToken(String, StringLit{Value: string(value)})
			return nil
		}

		if l.peek() == '\\' {
			l.advance()
			if l.isAtEnd() {
				return l.errf("Unterminated escape sequence in string")
			}
			escaped := l.advance()
			if escaped == '\n' {
				// line continuation
				continue
			}
			ch, err := l.escapeSequence(escaped)
			if err != nil {
				return err
			}
			value = append(value, ch)
		} else {
			if l.peek() == '\n' && !isMultiline {
				return l.errf("Unterminated string literal (newline in non-multiline string)")
			}
			value = append(value, l.advance())
		}
	}
}

func (l *Lexer) negativeNumber() error {
	text := []rune{'-'}
	hasDot := false

	for !l.isAtEnd() {
		c := l.peek()
		if c == '.' {
			if hasDot {
				return l.errf("Multiple '.' characters in number")
			}
			if !isDigit(l.peekNext()) {
				return l.errf("Dot must be followed by digit in number")
			}
			hasDot = true
			text = append(text, l.advance())
		} else if isDigit(c) {
			text = append(text, l.advance())
		} else {
			break
		}
	}

	lit := parseNumberLiteral(string(text), hasDot)
	l.tokens = append(l.tokens, Token{Kind: Number, Lexeme: string(text), Line: l.line, Literal: lit})
	return nil
}

func (l *Lexer) decimalNumber(first rune) error {
	text := []rune{first}
	isFloat := false
	hasDot := false

	for !l.isAtEnd() {
		c := l.peek()
		if isDigit(c) {
			text = append(text, l.advance())
		} else if c == '.' {
			if hasDot {
				return l.errf("Multiple '.' in number")
			}
			if !isDigit(l.peekNext()) {
				break // dot operator
			}
			hasDot = true
			isFloat = true
			text = append(text, l.advance())
		} else {
			break
		}
	}

	var lit Literal
	if isFloat {
		v, err := strconv.ParseFloat(string(text), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return l.errf("Invalid float")
		}
		lit = FloatLit{Value: v}
	} else {
		lit = intBestEffort(string(text))
	}
	l.tokens = append(l.tokens, Token{Kind: Number, Lexeme: string(text), Line: l.line, Literal: lit})
	return nil
}

// radixNumber scans O-prefixed literals: Ox hex, Ob binary, Oo octal. A
// capital O not followed by a prefix char scans as an identifier instead.
func (l *Lexer) radixNumber() error {
	radix := radixFor(l.advance())

	var digits []rune
	for !l.isAtEnd() && isRadixDigit(l.peek(), radix) {
		digits = append(digits, l.advance())
	}
	if len(digits) == 0 {
		return l.errf("Expected digits after base prefix (Ox, Ob, Oo)")
	}

	var lit Literal
	if v, ok := new(big.Int).SetString(string(digits), radix); ok && fitsInt128(v) {
		lit = IntLit{Value: v}
	} else {
		lit = BigIntLit{Digits: fmt.Sprintf("(base %d) %s", radix, string(digits))}
	}
	l.tokens = append(l.tokens, Token{Kind: Number, Lexeme: l.lexeme(), Line: l.line, Literal: lit})
	return nil
}

func (l *Lexer) identifier(first rune) {
	text := []rune{first}
	for !l.isAtEnd() && isIdentContinue(l.peek()) {
		text = append(text, l.advance())
	}

	name := string(text)
	if kind, ok := keywords[name]; ok {
		var lit Literal
		switch kind {
		case True:
			lit = BoolLit{Value: true}
		case False:
			lit = BoolLit{Value: false}
		}
		l.tokens = append(l.tokens, Token{Kind: kind, Lexeme: name, Line: l.line, Literal: lit})
		return
	}
	l.tokens = append(l.tokens, Token{Kind: Identifier, Lexeme: name, Line: l.line, Literal: IdentifierLit{Name: name}})
}

//-----------------------------------------------------------------------------
// helpers
//-----------------------------------------------------------------------------

var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

func fitsInt128(v *big.Int) bool {
	return v.Cmp(minInt128) >= 0 && v.Cmp(maxInt128) <= 0
}

// intBestEffort keeps integers that fit the signed 128-bit range as IntLit
// and falls back to the digit string for anything wider.
func intBestEffort(text string) Literal {
	v, ok := new(big.Int).SetString(text, 10)
	if !ok || !fitsInt128(v) {
		return BigIntLit{Digits: text}
	}
	return IntLit{Value: v}
}

// parseNumberLiteral classifies a scanned number: dotted text parses as
// float, everything else as a best-effort integer. Float range overflow
// saturates to infinity rather than erroring.
func parseNumberLiteral(text string, hasDot bool) Literal {
	if hasDot {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return BigIntLit{Digits: text}
		}
		return FloatLit{Value: v}
	}
	return intBestEffort(text)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentContinue(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func isHex(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func radixFor(c rune) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'b', 'B':
		return 2
	case 'o', 'O':
		return 8
	default:
		return 0
	}
}

func isRadixDigit(c rune, radix int) bool {
	switch radix {
	case 16:
		return isHex(c)
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	default:
		return false
	}
}
