// Package token defines the lexical token kinds produced by the lexer and
// consumed by the parser.
package token

import "strings"

// Position identifies a location in the source text.
type Position struct {
	Line   int
	Column int
}

// Type identifies the kind of a token.
type Type int

// Token kinds, grouped the way the lexer recognizes them.
const (
	ILLEGAL Type = iota
	EOF
	COMMENT

	IDENT  // identifiers
	NUMBER // integer or decimal literal
	TEXT   // string literal

	// Type keywords
	INT
	FLOAT
	STRING
	BOOL
	CCHANNEL
	VOID

	// Control keywords
	IF
	ELSE
	WHILE
	FOR
	SEQ
	PAR
	CLASS
	EXTENDS
	NEW
	PRINT
	INPUT
	SEND
	RECEIVE
	RETURN
	THIS

	// Boolean literals
	TRUE
	FALSE

	// Operators
	PLUS
	MINUS
	ASTERISK
	SLASH
	PERCENT
	ASSIGN
	EQ
	NOT_EQ
	LT
	GT
	LE
	GE
	AND
	OR
	NOT

	// Delimiters
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMICOLON
	DOT
)

var names = map[Type]string{
	ILLEGAL:  "ILLEGAL",
	EOF:      "EOF",
	COMMENT:  "COMMENT",
	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	TEXT:     "TEXT",
	INT:      "int",
	FLOAT:    "float",
	STRING:   "string",
	BOOL:     "bool",
	CCHANNEL: "c_channel",
	VOID:     "void",
	IF:       "if",
	ELSE:     "else",
	WHILE:    "while",
	FOR:      "for",
	SEQ:      "seq",
	PAR:      "par",
	CLASS:    "class",
	EXTENDS:  "extends",
	NEW:      "new",
	PRINT:    "print",
	INPUT:    "input",
	SEND:     "send",
	RECEIVE:  "receive",
	RETURN:   "return",
	THIS:     "this",
	TRUE:     "true",
	FALSE:    "false",
}

// String returns a human-readable name for the token type, used in
// diagnostics.
func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Token is a single lexical unit: its kind, its literal text, and the
// position it was scanned from.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

// keywords maps the lowercased keyword spelling to its token type. Keyword
// recognition is case-insensitive; identifiers are not lowercased and
// remain case-sensitive.
var keywords = map[string]Type{
	"int":       INT,
	"float":     FLOAT,
	"string":    STRING,
	"bool":      BOOL,
	"c_channel": CCHANNEL,
	"void":      VOID,
	"if":        IF,
	"else":      ELSE,
	"while":     WHILE,
	"for":       FOR,
	"seq":       SEQ,
	"par":       PAR,
	"class":     CLASS,
	"extends":   EXTENDS,
	"new":       NEW,
	"print":     PRINT,
	"input":     INPUT,
	"send":      SEND,
	"receive":   RECEIVE,
	"return":    RETURN,
	"this":      THIS,
	"true":      TRUE,
	"false":     FALSE,
}

// LookupIdent classifies lexeme as a keyword (case-insensitively) or as a
// plain identifier.
func LookupIdent(lexeme string) Type {
	if tok, ok := keywords[strings.ToLower(lexeme)]; ok {
		return tok
	}
	return IDENT
}

// IsTypeKeyword reports whether t introduces a declared type name.
func IsTypeKeyword(t Type) bool {
	switch t {
	case INT, FLOAT, STRING, BOOL, CCHANNEL, VOID, IDENT:
		return true
	default:
		return false
	}
}
