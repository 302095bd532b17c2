// Package parser builds EX syntax trees from lexer tokens by recursive
// descent. Errors are collected across the whole input; the parser
// resynchronizes at statement keywords after each one.
package parser

import (
	"math/big"
	"strconv"

	"ex/interpreter-go/pkg/ast"
	"ex/interpreter-go/pkg/lexer"
)

type Parser struct {
	tokens  []lexer.Token
	current int
	errors  ErrorList
}

func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource scans and parses EX source in one step.
func ParseSource(source string) ([]ast.Statement, error) {
	tokens, err := lexer.New(source).ScanTokens()
	if err != nil {
		return nil, err
	}
	return New(tokens).Parse()
}

func (p *Parser) Parse() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}
	if len(p.errors) > 0 {
		return nil, p.errors
	}
	return statements, nil
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func (p *Parser) statement() (ast.Statement, error) {
	switch p.peek().Kind {
	case lexer.Lock:
		p.advance()
		name, err := p.consumeIdentifier("Expected 'Identifier'")
		if err != nil {
			return nil, err
		}
		return ast.NewSmartLockStatement(name), nil

	case lexer.Unlock:
		p.advance()
		name, err := p.consumeIdentifier("Expected 'Identifier'")
		if err != nil {
			return nil, err
		}
		return ast.NewSmartUnlockStatement(name), nil

	case lexer.Kill:
		p.advance()
		name, err := p.consumeIdentifier("Expected 'Identifier'")
		if err != nil {
			return nil, err
		}
		return ast.NewSmartKillStatement(name), nil

	case lexer.Revive:
		p.advance()
		name, err := p.consumeIdentifier("Expected 'Identifier'")
		if err != nil {
			return nil, err
		}
		return ast.NewSmartReviveStatement(name), nil

	case lexer.Eternal:
		p.advance()
		name, err := p.consumeIdentifier("Expected 'Identifier'")
		if err != nil {
			return nil, err
		}
		return ast.NewSmartConstStatement(name), nil

	case lexer.Label:
		p.advance()
		return p.labelStatement()

	case lexer.If:
		p.advance()
		return p.ifStatement()

	case lexer.Jump:
		p.advance()
		target, err := p.consumeIdentifier("Expected jump target after 'jump'")
		if err != nil {
			return nil, err
		}
		return ast.NewJumpStatement(target), nil

	case lexer.Pass:
		p.advance()
		return ast.NewPassStatement(), nil

	case lexer.For:
		p.advance()
		return p.forStatement()

	case lexer.While:
		p.advance()
		return p.whileStatement()

	case lexer.Do:
		p.advance()
		return p.doWhileStatement()

	case lexer.Visible:
		p.advance()
		return p.visibleStatement()

	case lexer.Struct:
		p.advance()
		return p.structStatement()

	default:
		// expressions stand alone as statements
		return p.expression()
	}
}

func (p *Parser) labelStatement() (ast.Statement, error) {
	if p.check(lexer.At) {
		// control flow label: no parameters, not callable
		p.advance()
		name, err := p.consumeIdentifier("Expected label name")
		if err != nil {
			return nil, err
		}
		body, err := p.block("Expected '{' before label body", "Expected '}' after label body")
		if err != nil {
			return nil, err
		}
		decl := ast.NewLabelDecl(name, false, nil, nil, nil, body)
		return ast.NewLabelStatement([]*ast.LabelDecl{decl}), nil
	}

	name, err := p.consumeIdentifier("Expected label name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LeftParen, "Expected '(' after label name"); err != nil {
		return nil, err
	}

	// external=internal parameter pairs
	var params, internals []string
	for !p.check(lexer.RightParen) && !p.isAtEnd() {
		external, err := p.consumeIdentifier("Expected parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.Equal, "Expected '=' in parameter mapping"); err != nil {
			return nil, err
		}
		internal, err := p.consumeIdentifier("Expected internal variable name")
		if err != nil {
			return nil, err
		}
		params = append(params, external)
		internals = append(internals, internal)
		if !p.matchKind(lexer.Comma) {
			break
		}
	}
	if _, err := p.consume(lexer.RightParen, "Expected ')' after parameters"); err != nil {
		return nil, err
	}

	var visibleBlocks []string
	if p.matchKind(lexer.Visibility) {
		if _, err := p.consume(lexer.LeftBracket, "Expected '[' after 'visibility'"); err != nil {
			return nil, err
		}
		for !p.check(lexer.RightBracket) && !p.isAtEnd() {
			block, err := p.consumeIdentifier("Expected visibility block name")
			if err != nil {
				return nil, err
			}
			visibleBlocks = append(visibleBlocks, block)
			if !p.matchKind(lexer.Comma) {
				break
			}
		}
		if _, err := p.consume(lexer.RightBracket, "Expected ']' after visibility blocks"); err != nil {
			return nil, err
		}
	}

	body, err := p.block("Expected '{' before label body", "Expected '}' after label body")
	if err != nil {
		return nil, err
	}
	decl := ast.NewLabelDecl(name, true, visibleBlocks, params, internals, body)
	return ast.NewLabelStatement([]*ast.LabelDecl{decl}), nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	thenBranch, err := p.block("Expected '{' after if condition", "Expected '}' after if body")
	if err != nil {
		return nil, err
	}

	var elifBranches []*ast.ElifBranch
	for p.matchKind(lexer.Elif) {
		elifCondition, err := p.expression()
		if err != nil {
			return nil, err
		}
		elifBody, err := p.block("Expected '{' after elif condition", "Expected '}' after elif body")
		if err != nil {
			return nil, err
		}
		elifBranches = append(elifBranches, ast.NewElifBranch(elifCondition, elifBody))
	}

	var elseBranch []ast.Statement
	if p.matchKind(lexer.Else) {
		elseBranch, err = p.block("Expected '{' after else", "Expected '}' after else body")
		if err != nil {
			return nil, err
		}
	}

	return ast.NewIfStatement(condition, thenBranch, elifBranches, elseBranch), nil
}

func (p *Parser) forStatement() (ast.Statement, error) {
	iterator, err := p.consumeIdentifier("Expected iterator name after 'for'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Colon, "Expected ':' after iterator name"); err != nil {
		return nil, err
	}
	iterable, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block("Expected '{' before for body", "Expected '}' after for body")
	if err != nil {
		return nil, err
	}
	return ast.NewForStatement(iterator, iterable, body), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block("Expected '{' after while condition", "Expected '}' after while body")
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(condition, body), nil
}

func (p *Parser) doWhileStatement() (ast.Statement, error) {
	body, err := p.block("Expected '{' after 'do'", "Expected '}' after do body")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.While, "Expected 'while' after do body"); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.NewDoWhileStatement(body, condition), nil
}

func (p *Parser) visibleStatement() (ast.Statement, error) {
	name, err := p.consumeIdentifier("Expected visibility block name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LeftBrace, "Expected '{' before visibility entries"); err != nil {
		return nil, err
	}
	var entries []*ast.VisibleEntry
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		entryName, err := p.consumeIdentifier("Expected entry name")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.Equal, "Expected '=' after entry name"); err != nil {
			return nil, err
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.NewVisibleEntry(entryName, value))
		if !p.matchKind(lexer.Comma) {
			break
		}
	}
	if _, err := p.consume(lexer.RightBrace, "Expected '}' after visibility entries"); err != nil {
		return nil, err
	}
	return ast.NewVisibleStatement(name, entries), nil
}

func (p *Parser) structStatement() (ast.Statement, error) {
	name, err := p.consumeIdentifier("Expected struct name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LeftBrace, "Expected '{' before struct body"); err != nil {
		return nil, err
	}
	var methods []*ast.MethodDecl
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		methodName, err := p.consumeMethodName("Expected method name")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.LeftParen, "Expected '(' after method name"); err != nil {
			return nil, err
		}
		var params []string
		for !p.check(lexer.RightParen) && !p.isAtEnd() {
			param, err := p.consumeParamName("Expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.matchKind(lexer.Comma) {
				break
			}
		}
		if _, err := p.consume(lexer.RightParen, "Expected ')' after parameters"); err != nil {
			return nil, err
		}
		body, err := p.block("Expected '{' before method body", "Expected '}' after method body")
		if err != nil {
			return nil, err
		}
		methods = append(methods, ast.NewMethodDecl(methodName, params, body))
	}
	if _, err := p.consume(lexer.RightBrace, "Expected '}' after struct body"); err != nil {
		return nil, err
	}
	return ast.NewStructDefStatement(name, methods), nil
}

func (p *Parser) block(openMessage, closeMessage string) ([]ast.Statement, error) {
	if _, err := p.consume(lexer.LeftBrace, openMessage); err != nil {
		return nil, err
	}
	var body []ast.Statement
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.consume(lexer.RightBrace, closeMessage); err != nil {
		return nil, err
	}
	return body, nil
}

//-----------------------------------------------------------------------------
// Expressions (precedence climbing)
//-----------------------------------------------------------------------------

func (p *Parser) expression() (ast.Expression, error) {
	return p.logicalOr()
}

func (p *Parser) logicalOr() (ast.Expression, error) {
	expr, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.matchKind(lexer.Or) {
		op := p.previous().Lexeme
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op, expr, right)
	}
	return expr, nil
}

func (p *Parser) logicalAnd() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.matchKind(lexer.And) {
		op := p.previous().Lexeme
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op, expr, right)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.matchKind(lexer.BangEqual, lexer.EqualEqual) {
		op := p.previous().Lexeme
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op, expr, right)
	}
	return expr, nil
}

func (p *Parser) comparison() (ast.Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.matchKind(lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual) {
		op := p.previous().Lexeme
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op, expr, right)
	}
	return expr, nil
}

func (p *Parser) term() (ast.Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.matchKind(lexer.Plus, lexer.Minus) {
		op := p.previous().Lexeme
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op, expr, right)
	}
	return expr, nil
}

func (p *Parser) factor() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.matchKind(lexer.Star, lexer.Slash) {
		op := p.previous().Lexeme
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op, expr, right)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	switch p.peek().Kind {
	case lexer.Bang, lexer.Minus:
		op := p.advance().Lexeme
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(op, right), nil
	default:
		return p.primary()
	}
}

func (p *Parser) primary() (ast.Expression, error) {
	switch p.peek().Kind {
	case lexer.False:
		p.advance()
		return ast.NewBooleanLiteral(false), nil

	case lexer.True:
		p.advance()
		return ast.NewBooleanLiteral(true), nil

	case lexer.Nil:
		p.advance()
		return ast.NewNilLiteral(), nil

	case lexer.Number:
		tok := p.advance()
		switch lit := tok.Literal.(type) {
		case lexer.IntLit:
			return ast.NewIntegerLiteral(lit.Value), nil
		case lexer.FloatLit:
			return ast.NewFloatLiteral(lit.Value), nil
		case lexer.BigIntLit:
			return ast.NewBigIntLiteral(lit.Digits), nil
		default:
			v, err := strconv.ParseFloat(tok.Lexeme, 64)
			if err != nil {
				return nil, p.errorAt("Invalid number literal")
			}
			return ast.NewFloatLiteral(v), nil
		}

	case lexer.String:
		tok := p.advance()
		if lit, ok := tok.Literal.(lexer.StringLit); ok {
			return ast.NewStringLiteral(lit.Value), nil
		}
		return ast.NewStringLiteral(tok.Lexeme), nil

	case lexer.Char:
		tok := p.advance()
		lit, ok := tok.Literal.(lexer.CharLit)
		if !ok {
			return nil, p.errorAt("Invalid character literal")
		}
		return ast.NewCharLiteral(lit.Value), nil

	case lexer.LeftParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil

	case lexer.Log:
		p.advance()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return ast.NewPrint(value), nil

	case lexer.LeftBracket:
		p.advance()
		return p.arrayOrRange()

	case lexer.Axis:
		p.advance()
		if _, err := p.consume(lexer.LeftBracket, "Expected '[' after 'axis'"); err != nil {
			return nil, err
		}
		elements, err := p.expressionList(lexer.RightBracket)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RightBracket, "Expected ']' after axis elements"); err != nil {
			return nil, err
		}
		return ast.NewAxisLiteral(elements), nil

	case lexer.LeftBrace:
		p.advance()
		return p.dictionary()

	case lexer.Identifier:
		name := p.advance().Lexeme
		return p.identifierExpression(name)

	case lexer.SelfKw:
		p.advance()
		return p.identifierExpression("self")

	default:
		return nil, p.errorAt("Expect expression")
	}
}

// arrayOrRange parses the remainder of a '[' form: either an array literal
// or an inclusive integer range 'a -> b', precomputed at parse time.
func (p *Parser) arrayOrRange() (ast.Expression, error) {
	if p.matchKind(lexer.RightBracket) {
		return ast.NewArrayLiteral(nil), nil
	}

	first, err := p.expression()
	if err != nil {
		return nil, err
	}

	if p.check(lexer.Arrow) {
		from, ok := first.(*ast.IntegerLiteral)
		if !ok {
			return nil, p.errorAt("Range bounds must be integer literals")
		}
		p.advance()
		second, err := p.expression()
		if err != nil {
			return nil, err
		}
		to, ok := second.(*ast.IntegerLiteral)
		if !ok {
			return nil, p.errorAt("Range bounds must be integer literals")
		}
		if _, err := p.consume(lexer.RightBracket, "Expected ']' after range"); err != nil {
			return nil, err
		}
		return ast.NewIterableLiteral(rangeValues(from.Value, to.Value)), nil
	}

	elements := []ast.Expression{first}
	for p.matchKind(lexer.Comma) {
		if p.check(lexer.RightBracket) {
			break
		}
		element, err := p.expression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	if _, err := p.consume(lexer.RightBracket, "Expected ']' after array elements"); err != nil {
		return nil, err
	}
	return ast.NewArrayLiteral(elements), nil
}

func (p *Parser) dictionary() (ast.Expression, error) {
	var entries []*ast.DictionaryEntry
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		key, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.Colon, "Expected ':' between key and value"); err != nil {
			return nil, err
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.NewDictionaryEntry(key, value))
		if !p.matchKind(lexer.Comma) {
			break
		}
	}
	if _, err := p.consume(lexer.RightBrace, "Expected '}' after dictionary entries"); err != nil {
		return nil, err
	}
	return ast.NewDictionaryLiteral(entries), nil
}

// identifierExpression parses everything that can follow a bare name:
// calls with named arguments, struct instantiation, assignment, index
// chains, and the plain variable reference.
func (p *Parser) identifierExpression(name string) (ast.Expression, error) {
	var expr ast.Expression

	switch p.peek().Kind {
	case lexer.LeftParen:
		p.advance()
		args, err := p.namedArguments()
		if err != nil {
			return nil, err
		}
		expr = ast.NewFunctionCall(name, args)

	case lexer.ColonColon:
		p.advance()
		method, err := p.consumeMethodName("Expected method name after '::'")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.LeftParen, "Expected '(' after method name"); err != nil {
			return nil, err
		}
		args, err := p.positionalArguments()
		if err != nil {
			return nil, err
		}
		expr = ast.NewStructInstantiation(name, method, args)

	case lexer.Equal:
		p.advance()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		return ast.NewAllocateVariable(name, value), nil

	case lexer.LeftBracket:
		var accessors []ast.Expression
		for p.matchKind(lexer.LeftBracket) {
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.RightBracket, "Expected ']' after index"); err != nil {
				return nil, err
			}
			accessors = append(accessors, index)
		}
		expr = ast.NewAccess(name, accessors)

	default:
		expr = ast.NewVariable(name)
	}

	return p.postfix(expr)
}

// postfix extends an expression with '.member', '.method(args)' and
// '.member = value' forms. Assignment ends the chain.
func (p *Parser) postfix(expr ast.Expression) (ast.Expression, error) {
	for p.matchKind(lexer.Dot) {
		member, err := p.consumeMethodName("Expected member name after '.'")
		if err != nil {
			return nil, err
		}
		switch p.peek().Kind {
		case lexer.LeftParen:
			p.advance()
			args, err := p.positionalArguments()
			if err != nil {
				return nil, err
			}
			expr = ast.NewMethodCall(expr, member, args)
		case lexer.Equal:
			p.advance()
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			return ast.NewMemberAssign(expr, member, value), nil
		default:
			expr = ast.NewMemberAccess(expr, member)
		}
	}
	return expr, nil
}

// namedArguments parses 'name = expr' pairs up to the closing paren.
func (p *Parser) namedArguments() ([]*ast.Argument, error) {
	var args []*ast.Argument
	for !p.check(lexer.RightParen) && !p.isAtEnd() {
		name, err := p.consumeIdentifier("Expected 'Identifier' for mapping args to parameters")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.Equal, "Expected '=' to differentiate name and expression"); err != nil {
			return nil, err
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, ast.NewArgument(name, value))
		if !p.matchKind(lexer.Comma) {
			break
		}
	}
	if _, err := p.consume(lexer.RightParen, "Expected ')' to enclose function call"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) positionalArguments() ([]ast.Expression, error) {
	args, err := p.expressionList(lexer.RightParen)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RightParen, "Expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

// expressionList parses comma separated expressions up to (not including)
// the closing token.
func (p *Parser) expressionList(closing lexer.TokenKind) ([]ast.Expression, error) {
	var list []ast.Expression
	for !p.check(closing) && !p.isAtEnd() {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if !p.matchKind(lexer.Comma) {
			break
		}
	}
	return list, nil
}

func rangeValues(from, to *big.Int) []*big.Int {
	step := big.NewInt(1)
	if from.Cmp(to) > 0 {
		step = big.NewInt(-1)
	}
	var values []*big.Int
	cursor := new(big.Int).Set(from)
	for {
		values = append(values, new(big.Int).Set(cursor))
		if cursor.Cmp(to) == 0 {
			break
		}
		cursor.Add(cursor, step)
	}
	return values
}

//-----------------------------------------------------------------------------
// Cursor utilities
//-----------------------------------------------------------------------------

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.Eof
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return !p.isAtEnd() && p.peek().Kind == kind
}

func (p *Parser) matchKind(kinds ...lexer.TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind lexer.TokenKind, message string) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAt(message)
}

func (p *Parser) consumeIdentifier(message string) (string, error) {
	if p.check(lexer.Identifier) {
		return p.advance().Lexeme, nil
	}
	return "", p.errorAt(message)
}

// consumeParamName accepts 'self' alongside plain identifiers; struct
// methods name their receiver explicitly.
func (p *Parser) consumeParamName(message string) (string, error) {
	if p.check(lexer.Identifier) || p.check(lexer.SelfKw) {
		return p.advance().Lexeme, nil
	}
	return "", p.errorAt(message)
}

// consumeMethodName also accepts the 'new' and 'constructor' keywords,
// which are legal method names in struct bodies and call sites.
func (p *Parser) consumeMethodName(message string) (string, error) {
	if p.check(lexer.Identifier) || p.check(lexer.NewKw) || p.check(lexer.Constructor) {
		return p.advance().Lexeme, nil
	}
	return "", p.errorAt(message)
}

//-----------------------------------------------------------------------------
// Error handling
//-----------------------------------------------------------------------------

func (p *Parser) errorAt(message string) *ParseError {
	err := &ParseError{Token: p.peek(), Message: message}
	p.errors = append(p.errors, err)
	return err
}

func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		switch p.peek().Kind {
		case lexer.Label, lexer.If, lexer.Jump, lexer.Lock, lexer.Unlock,
			lexer.Kill, lexer.Revive, lexer.Eternal, lexer.For, lexer.While,
			lexer.Do, lexer.Pass, lexer.Visible, lexer.Struct, lexer.Log:
			return
		default:
			p.advance()
		}
	}
}
