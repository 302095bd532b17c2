package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"

	"ex/interpreter-go/pkg/interpreter"
	"ex/interpreter-go/pkg/parser"
)

// The shell's command language is tiny: whitespace-separated words with
// three special markers (">>" hands the rest of the segment to the EX
// interpreter, "&&" chains segments, "./" marks a local executable) and
// four builtin words (chd, cud, clean, exit). Everything else spawns a
// system command.

type shellTokenKind int

const (
	shellWord shellTokenKind = iota
	shellLocalPath
	shellExecMarker
	shellAndAnd
	shellChd
	shellCud
	shellClean
	shellExit
	shellEOF
)

type shellToken struct {
	kind shellTokenKind
	text string
}

type shellLexer struct {
	input []rune
	pos   int
}

func newShellLexer(input string) *shellLexer {
	return &shellLexer{input: []rune(input)}
}

func (l *shellLexer) tokenize() []shellToken {
	var tokens []shellToken
	for {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			break
		}
		tokens = append(tokens, l.next())
	}
	return append(tokens, shellToken{kind: shellEOF})
}

func (l *shellLexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *shellLexer) at(offset int) rune {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// next classifies the token starting at the current position. The
// markers are only recognised at a token boundary; inside a word they
// stay part of the word, so ">> print(a&&b)" keeps the EX operator
// intact.
func (l *shellLexer) next() shellToken {
	switch {
	case l.at(0) == '>' && l.at(1) == '>':
		l.pos += 2
		return shellToken{kind: shellExecMarker, text: ">>"}
	case l.at(0) == '&' && l.at(1) == '&':
		l.pos += 2
		return shellToken{kind: shellAndAnd, text: "&&"}
	case l.at(0) == '.' && l.at(1) == '/':
		return shellToken{kind: shellLocalPath, text: l.readWord()}
	}

	word := l.readWord()
	switch word {
	case "chd":
		return shellToken{kind: shellChd, text: word}
	case "cud":
		return shellToken{kind: shellCud, text: word}
	case "clean":
		return shellToken{kind: shellClean, text: word}
	case "exit":
		return shellToken{kind: shellExit, text: word}
	}
	return shellToken{kind: shellWord, text: word}
}

func (l *shellLexer) readWord() string {
	start := l.pos
	for l.pos < len(l.input) && !unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

// shellCommand is one parsed line action.
type shellCommand interface {
	shellCmd()
}

type emptyCommand struct{}

type exitCommand struct{}

type chdCommand struct {
	directory string
}

type cudCommand struct{}

type cleanCommand struct{}

type execCodeCommand struct {
	code string
}

type localExecCommand struct {
	path string
	args []string
}

type systemCommand struct {
	name string
	args []string
}

type chainCommand struct {
	commands []shellCommand
}

func (emptyCommand) shellCmd()     {}
func (exitCommand) shellCmd()      {}
func (chdCommand) shellCmd()       {}
func (cudCommand) shellCmd()       {}
func (cleanCommand) shellCmd()     {}
func (execCodeCommand) shellCmd()  {}
func (localExecCommand) shellCmd() {}
func (systemCommand) shellCmd()    {}
func (chainCommand) shellCmd()     {}

type shellParser struct {
	tokens  []shellToken
	current int
}

// parseShellLine tokenizes and parses one input line.
func parseShellLine(input string) (shellCommand, error) {
	return (&shellParser{tokens: newShellLexer(input).tokenize()}).parse()
}

func (p *shellParser) parse() (shellCommand, error) {
	if p.isAtEnd() {
		return emptyCommand{}, nil
	}
	first, err := p.singleCommand()
	if err != nil {
		return nil, err
	}
	commands := []shellCommand{first}
	for p.match(shellAndAnd) {
		next, err := p.singleCommand()
		if err != nil {
			return nil, err
		}
		commands = append(commands, next)
	}
	if len(commands) == 1 {
		return commands[0], nil
	}
	return chainCommand{commands: commands}, nil
}

func (p *shellParser) singleCommand() (shellCommand, error) {
	if p.isAtEnd() {
		return emptyCommand{}, nil
	}
	token := p.advance()
	switch token.kind {
	case shellExit:
		return exitCommand{}, nil
	case shellChd:
		next := p.peekToken()
		if next.kind != shellWord {
			return nil, errors.New("Expected directory path after 'chd'")
		}
		p.advance()
		return chdCommand{directory: next.text}, nil
	case shellCud:
		return cudCommand{}, nil
	case shellClean:
		return cleanCommand{}, nil
	case shellExecMarker:
		return execCodeCommand{code: strings.Join(p.collectSegment(), " ")}, nil
	case shellLocalPath:
		return localExecCommand{path: token.text, args: p.collectSegment()}, nil
	case shellWord:
		return systemCommand{name: token.text, args: p.collectSegment()}, nil
	case shellAndAnd:
		return nil, errors.New("Unexpected '&&' operator")
	}
	return emptyCommand{}, nil
}

// collectSegment consumes token texts up to the next chain operator.
func (p *shellParser) collectSegment() []string {
	var parts []string
	for !p.isAtEnd() && p.peekToken().kind != shellAndAnd {
		parts = append(parts, p.advance().text)
	}
	return parts
}

func (p *shellParser) match(kind shellTokenKind) bool {
	if p.peekToken().kind == kind {
		p.advance()
		return true
	}
	return false
}

func (p *shellParser) advance() shellToken {
	if !p.isAtEnd() {
		p.current++
	}
	return p.tokens[p.current-1]
}

func (p *shellParser) peekToken() shellToken {
	return p.tokens[p.current]
}

func (p *shellParser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].kind == shellEOF
}

type executionResult int

const (
	continueExecution executionResult = iota
	exitShell
)

// commandInterpreter executes parsed shell lines against one persistent
// EX interpreter, so ">>" snippets share variables across the session.
type commandInterpreter struct {
	interp *interpreter.Interpreter
}

func newCommandInterpreter() *commandInterpreter {
	return &commandInterpreter{interp: interpreter.New()}
}

func (c *commandInterpreter) execute(command shellCommand) executionResult {
	switch command := command.(type) {
	case exitCommand:
		return exitShell
	case chdCommand:
		if err := os.Chdir(command.directory); err != nil {
			fmt.Fprintf(os.Stderr, "Error changing directory: %s\n", err)
		}
	case cudCommand:
		if cwd, err := os.Getwd(); err == nil {
			fmt.Fprintln(os.Stdout, cwd)
		} else {
			fmt.Fprintf(os.Stderr, "Error getting current directory: %s\n", err)
		}
	case cleanCommand:
		fmt.Fprint(os.Stdout, "\x1b[2J\x1b[1;1H")
	case execCodeCommand:
		if command.code != "" {
			c.runSource(command.code)
		}
	case localExecCommand:
		c.executeLocalPath(command.path, command.args)
	case systemCommand:
		c.executeSystemCommand(command.name, command.args)
	case chainCommand:
		for _, sub := range command.commands {
			if c.execute(sub) == exitShell {
				return exitShell
			}
		}
	case emptyCommand:
	}
	return continueExecution
}

// runSource lexes, parses, and interprets EX code. Errors are reported
// and the shell keeps going; whatever the failing batch already mutated
// stays mutated.
func (c *commandInterpreter) runSource(source string) {
	statements, err := parser.ParseSource(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if err := c.interp.Interpret(statements); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// runFile executes one .ex source file against the session interpreter.
func (c *commandInterpreter) runFile(path string) {
	if source, ok := readSourceFile(path); ok {
		c.runSource(source)
	}
}

func (c *commandInterpreter) executeLocalPath(path string, args []string) {
	if filepath.Ext(path) == ".ex" {
		c.runFile(path)
		return
	}
	err := spawn(path, args)
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		fmt.Fprintf(os.Stderr, "Process exited with status: %s\n", exitErr.ProcessState)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to execute %s: %s\n", path, err)
	}
}

func (c *commandInterpreter) executeSystemCommand(name string, args []string) {
	err := spawn(name, args)
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		fmt.Fprintf(os.Stderr, "Process exited with status: %s\n", exitErr.ProcessState)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Unknown command or failed to execute: %s\n", name)
	}
}

func spawn(name string, args []string) error {
	command := exec.Command(name, args...)
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr
	return command.Run()
}
