package cmd

import (
	"testing"

	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/lexer"
	"github.com/minipar-lang/minipar/internal/parser"
)

func parseProgramForTest(t *testing.T, source string) *ast.Program {
	t.Helper()
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors on %q: %v", source, p.Errors())
	}
	return program
}

func emptyProgram(t *testing.T) *ast.Program {
	return parseProgramForTest(t, `seq { }`)
}

func TestChannelDeclsFindsDeclarationsInsideBlocks(t *testing.T) {
	withGlobals(t, func() {
		program := parseProgramForTest(t, `seq {
			c_channel ch[nodeA nodeB];
		}`)
		decls := channelDecls(program)
		if len(decls) != 1 {
			t.Fatalf("channelDecls found %d declarations, want 1", len(decls))
		}
		if decls[0].ChannelEndpoints[0] != "nodeA" || decls[0].ChannelEndpoints[1] != "nodeB" {
			t.Errorf("endpoints = %v, want [nodeA nodeB]", decls[0].ChannelEndpoints)
		}
	})
}

func TestParseChannelBindingsExplicitMode(t *testing.T) {
	withGlobals(t, func() {
		channelBinds = []string{"nodeA=:9000"}
		bindings, err := parseChannelBindings(emptyProgram(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, ok := bindings["nodeA"]
		if !ok || !got.Listen || got.Addr != ":9000" {
			t.Errorf("bindings[nodeA] = %+v, ok=%v, want Listen=true Addr=:9000", got, ok)
		}
	})
}

func TestParseChannelBindingsImplicitMapResolvesListenerRole(t *testing.T) {
	withGlobals(t, func() {
		channelMap = []string{"nodeA=:9000"}
		nodeID = "nodeA"
		program := parseProgramForTest(t, `c_channel ch[nodeA nodeB];`)
		bindings, err := parseChannelBindings(program)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, ok := bindings["nodeA"]
		if !ok || !got.Listen || got.Addr != ":9000" {
			t.Errorf("bindings[nodeA] = %+v, ok=%v, want Listen=true Addr=:9000", got, ok)
		}
	})
}

func TestParseChannelBindingsImplicitMapResolvesDialerRole(t *testing.T) {
	withGlobals(t, func() {
		channelMap = []string{"nodeA=:9000"}
		nodeID = "nodeB"
		program := parseProgramForTest(t, `c_channel ch[nodeA nodeB];`)
		bindings, err := parseChannelBindings(program)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, ok := bindings["nodeB"]
		if !ok || got.Listen || got.Addr != ":9000" {
			t.Errorf("bindings[nodeB] = %+v, ok=%v, want Listen=false Addr=:9000 (dialing the listener's own address)", got, ok)
		}
	})
}

func TestParseChannelBindingsImplicitMapRequiresNodeID(t *testing.T) {
	withGlobals(t, func() {
		channelMap = []string{"nodeA=:9000"}
		_, err := parseChannelBindings(emptyProgram(t))
		if err == nil {
			t.Fatal("expected an error when --channel-map is set without --node-id")
		}
	})
}

func TestParseChannelBindingsExplicitWinsOverImplicit(t *testing.T) {
	withGlobals(t, func() {
		channelConnect = []string{"nodeA=:7000"}
		channelMap = []string{"nodeA=:9000"}
		nodeID = "nodeA"
		program := parseProgramForTest(t, `c_channel ch[nodeA nodeB];`)
		bindings, err := parseChannelBindings(program)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := bindings["nodeA"]
		if got.Listen || got.Addr != ":7000" {
			t.Errorf("bindings[nodeA] = %+v, want the explicit --channel-connect entry to win", got)
		}
	})
}

// withGlobals runs fn with the package's cobra-bound flag globals reset
// before and restored after, since they persist across tests otherwise.
func withGlobals(t *testing.T, fn func()) {
	t.Helper()
	oldBinds, oldConnect, oldMap, oldNodeID := channelBinds, channelConnect, channelMap, nodeID
	channelBinds, channelConnect, channelMap, nodeID = nil, nil, nil, ""
	defer func() {
		channelBinds, channelConnect, channelMap, nodeID = oldBinds, oldConnect, oldMap, oldNodeID
	}()
	fn()
}
