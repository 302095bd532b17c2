package lexer

import (
	"fmt"
	"math/big"
)

// TokenKind enumerates every token the scanner can produce. Reserved words
// with no statement form yet (enum, switch, the bit-op words and so on)
// still lex as their own kinds so they cannot be used as identifiers.
type TokenKind int

const (
	// Punctuation and operators.
	LeftParen TokenKind = iota
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Dot
	Minus
	MinusMinus
	Arrow
	Plus
	PlusPlus
	Slash
	Star
	Percent
	Hash
	At
	Colon
	ColonColon
	Equal
	EqualEqual
	Bang
	BangEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	Command
	And
	Or
	Ampersand
	Pipe
	IdentityOperator

	// Literals.
	Identifier
	Number
	String
	Char
	True
	False
	Nil

	// Keywords.
	Import
	Label
	If
	Elif
	Else
	Jump
	Unlabel
	VisibleSoft
	VisibleHard
	Visibility
	Visible
	Struct
	Eternal
	Rooted
	Define
	NewKw
	Return
	Constructor
	SelfKw
	Public
	Private
	DefineMacro
	IfDef
	IfNDef
	UnDef
	Enum
	Switch
	Case
	Default
	Choose
	BitAnd
	BitXor
	BitOr
	BitComp
	BitLShift
	BitRShift
	MacroDef
	Def
	Gen
	Ttv
	Delock
	Kill
	Revive
	IsAlive
	Lock
	Unlock
	Log
	For
	While
	Do
	Pass
	Axis

	Eof
)

var tokenKindNames = map[TokenKind]string{
	LeftParen:        "LeftParen",
	RightParen:       "RightParen",
	LeftBrace:        "LeftBrace",
	RightBrace:       "RightBrace",
	LeftBracket:      "LeftBracket",
	RightBracket:     "RightBracket",
	Comma:            "Comma",
	Dot:              "Dot",
	Minus:            "Minus",
	MinusMinus:       "MinusMinus",
	Arrow:            "Arrow",
	Plus:             "Plus",
	PlusPlus:         "PlusPlus",
	Slash:            "Slash",
	Star:             "Star",
	Percent:          "Percent",
	Hash:             "Hash",
	At:               "At",
	Colon:            "Colon",
	ColonColon:       "ColonColon",
	Equal:            "Equal",
	EqualEqual:       "EqualEqual",
	Bang:             "Bang",
	BangEqual:        "BangEqual",
	Less:             "Less",
	LessEqual:        "LessEqual",
	Greater:          "Greater",
	GreaterEqual:     "GreaterEqual",
	Command:          "Command",
	And:              "And",
	Or:               "Or",
	Ampersand:        "Ampersand",
	Pipe:             "Pipe",
	IdentityOperator: "IdentityOperator",
	Identifier:       "Identifier",
	Number:           "Number",
	String:           "String",
	Char:             "Char",
	True:             "True",
	False:            "False",
	Nil:              "Nil",
	Import:           "Import",
	Label:            "Label",
	If:               "If",
	Elif:             "Elif",
	Else:             "Else",
	Jump:             "Jump",
	Unlabel:          "Unlabel",
	VisibleSoft:      "VisibleSoft",
	VisibleHard:      "VisibleHard",
	Visibility:       "Visibility",
	Visible:          "Visible",
	Struct:           "Struct",
	Eternal:          "Eternal",
	Rooted:           "Rooted",
	Define:           "Define",
	NewKw:            "New",
	Return:           "Return",
	Constructor:      "Constructor",
	SelfKw:           "Self",
	Public:           "Public",
	Private:          "Private",
	DefineMacro:      "DefineMacro",
	IfDef:            "IfDef",
	IfNDef:           "IfNDef",
	UnDef:            "UnDef",
	Enum:             "Enum",
	Switch:           "Switch",
	Case:             "Case",
	Default:          "Default",
	Choose:           "Choose",
	BitAnd:           "BitAnd",
	BitXor:           "BitXor",
	BitOr:            "BitOr",
	BitComp:          "BitComp",
	BitLShift:        "BitLShift",
	BitRShift:        "BitRShift",
	MacroDef:         "MacroDef",
	Def:              "Def",
	Gen:              "Gen",
	Ttv:              "Ttv",
	Delock:           "Delock",
	Kill:             "Kill",
	Revive:           "Revive",
	IsAlive:          "IsAlive",
	Lock:             "Lock",
	Unlock:           "Unlock",
	Log:              "Log",
	For:              "For",
	While:            "While",
	Do:               "Do",
	Pass:             "Pass",
	Axis:             "Axis",
	Eof:              "Eof",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

var keywords = map[string]TokenKind{
	"import":       Import,
	"label":        Label,
	"if":           If,
	"elif":         Elif,
	"else":         Else,
	"jump":         Jump,
	"unlabel":      Unlabel,
	"visible_soft": VisibleSoft,
	"visible_hard": VisibleHard,
	"visibility":   Visibility,
	"visible":      Visible,
	"struct":       Struct,
	"eternal":      Eternal,
	"rooted":       Rooted,
	"define":       Define,
	"new":          NewKw,
	"return":       Return,
	"constructor":  Constructor,
	"self":         SelfKw,
	"public":       Public,
	"private":      Private,
	"true":         True,
	"false":        False,
	"nil":          Nil,
	"_define_":     DefineMacro,
	"ifdef":        IfDef,
	"ifndef":       IfNDef,
	"undef":        UnDef,
	"enum":         Enum,
	"switch":       Switch,
	"case":         Case,
	"default":      Default,
	"choose":       Choose,
	"_and_":        BitAnd,
	"_xor_":        BitXor,
	"_or_":         BitOr,
	"_com_":        BitComp,
	"_lsh_":        BitLShift,
	"_rsh_":        BitRShift,
	"_def_":        MacroDef,
	"def":          Def,
	"gen":          Gen,
	"_ttv_":        Ttv,
	"_delock_":     Delock,
	"kill":         Kill,
	"revive":       Revive,
	"is_alive":     IsAlive,
	"lock":         Lock,
	"unlock":       Unlock,
	"log":          Log,
	"for":          For,
	"while":        While,
	"do":           Do,
	"pass":         Pass,
	"axis":         Axis,
}

// Literal is the value payload a token can carry.
type Literal interface {
	literalValue()
}

type IdentifierLit struct {
	Name string
}

func (IdentifierLit) literalValue() {}

type StringLit struct {
	Value string
}

func (StringLit) literalValue() {}

type BoolLit struct {
	Value bool
}

func (BoolLit) literalValue() {}

type CharLit struct {
	Value rune
}

func (CharLit) literalValue() {}

// IntLit holds an integer that fits the signed 128-bit range.
type IntLit struct {
	Value *big.Int
}

func (IntLit) literalValue() {}

type FloatLit struct {
	Value float64
}

func (FloatLit) literalValue() {}

// BigIntLit holds the digits of an integer too wide for IntLit.
type BigIntLit struct {
	Digits string
}

func (BigIntLit) literalValue() {}

type Token struct {
	Kind    TokenKind
	Lexeme  string
	Line    int
	Literal Literal
}
