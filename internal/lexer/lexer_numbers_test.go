package lexer

import (
	"testing"

	"github.com/minipar-lang/minipar/internal/token"
)

func TestNextTokenIntegerLiteral(t *testing.T) {
	l := New("42")
	tok := l.NextToken()
	if tok.Type != token.NUMBER || tok.Literal != "42" {
		t.Fatalf("got %s %q, want NUMBER %q", tok.Type, tok.Literal, "42")
	}
}

func TestNextTokenFloatLiteral(t *testing.T) {
	l := New("3.14")
	tok := l.NextToken()
	if tok.Type != token.NUMBER || tok.Literal != "3.14" {
		t.Fatalf("got %s %q, want NUMBER %q", tok.Type, tok.Literal, "3.14")
	}
}

func TestNextTokenTrailingDotIsNotConsumed(t *testing.T) {
	// "5." with no following digit: the dot belongs to whatever comes next,
	// not the number.
	l := New("5.x")
	num := l.NextToken()
	if num.Type != token.NUMBER || num.Literal != "5" {
		t.Fatalf("number = %s %q, want NUMBER %q", num.Type, num.Literal, "5")
	}
	dot := l.NextToken()
	if dot.Type != token.DOT {
		t.Fatalf("second token = %s, want DOT", dot.Type)
	}
}

func TestNextTokenNumberPositions(t *testing.T) {
	l := New("12 34")
	first := l.NextToken()
	second := l.NextToken()

	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Fatalf("first.Pos = %+v, want {1 1}", first.Pos)
	}
	if second.Pos.Column != 4 {
		t.Fatalf("second.Pos.Column = %d, want 4", second.Pos.Column)
	}
}
