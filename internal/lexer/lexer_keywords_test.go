package lexer

import (
	"testing"

	"github.com/minipar-lang/minipar/internal/token"
)

func TestNextTokenKeywords(t *testing.T) {
	input := `int float string bool c_channel void
		if else while for seq par class extends new
		print input send receive return this true false`

	tests := []token.Type{
		token.INT, token.FLOAT, token.STRING, token.BOOL, token.CCHANNEL, token.VOID,
		token.IF, token.ELSE, token.WHILE, token.FOR, token.SEQ, token.PAR, token.CLASS,
		token.EXTENDS, token.NEW, token.PRINT, token.INPUT, token.SEND, token.RECEIVE,
		token.RETURN, token.THIS, token.TRUE, token.FALSE, token.EOF,
	}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)", i, expected, tok.Type, tok.Literal)
		}
	}
}

func TestNextTokenKeywordsAreCaseInsensitive(t *testing.T) {
	input := `IF While PAR`

	tests := []token.Type{token.IF, token.WHILE, token.PAR, token.EOF}

	l := New(input)
	for i, expected := range tests {
		tok := l.NextToken()
		if tok.Type != expected {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s", i, expected, tok.Type)
		}
	}
}

func TestNextTokenIdentifiersRemainCaseSensitive(t *testing.T) {
	l := New("MyClass myclass")
	first := l.NextToken()
	second := l.NextToken()

	if first.Type != token.IDENT || first.Literal != "MyClass" {
		t.Fatalf("first = %s %q, want IDENT %q", first.Type, first.Literal, "MyClass")
	}
	if second.Type != token.IDENT || second.Literal != "myclass" {
		t.Fatalf("second = %s %q, want IDENT %q", second.Type, second.Literal, "myclass")
	}
}
