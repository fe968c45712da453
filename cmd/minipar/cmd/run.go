package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/errors"
	"github.com/minipar-lang/minipar/internal/interp"
	"github.com/minipar-lang/minipar/internal/lexer"
	"github.com/minipar-lang/minipar/internal/parser"
	"github.com/minipar-lang/minipar/internal/semantic"
)

var (
	showTokens     bool
	showAST        bool
	showSymbols    bool
	emitTAC        bool
	saveTACPath    string
	channelBinds   []string
	channelConnect []string
	channelMap     []string
	nodeID         string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a minipar program",
	Long: `Lex, parse, semantically check, and execute a minipar program.

Examples:
  # Run a script file
  minipar run script.minipar

  # Run with diagnostic dumps
  minipar run --show-tokens --show-ast --show-symbols script.minipar

  # Bind a networked channel endpoint named "worker" to listen on :9000
  minipar run --node-id worker --channel-bind worker=:9000 script.minipar

  # Resolve bind-vs-connect implicitly from a channel's own declared
  # endpoint ids, instead of naming a role explicitly
  minipar run --node-id worker --channel-map worker=:9000 script.minipar`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&showTokens, "show-tokens", false, "print the token stream before running")
	runCmd.Flags().BoolVar(&showAST, "show-ast", false, "print the parsed AST before running")
	runCmd.Flags().BoolVar(&showSymbols, "show-symbols", false, "print the semantic analyzer's symbol table")
	runCmd.Flags().BoolVar(&emitTAC, "emit-tac", false, "print the three-address-code translation")
	runCmd.Flags().StringVar(&saveTACPath, "save-tac", "", "write the three-address-code translation to a file")
	runCmd.Flags().StringArrayVar(&channelBinds, "channel-bind", nil, "id=addr: listen for a networked channel endpoint")
	runCmd.Flags().StringArrayVar(&channelConnect, "channel-connect", nil, "id=addr: dial out to a networked channel endpoint")
	runCmd.Flags().StringArrayVar(&channelMap, "channel-map", nil, "id=addr: address for a declared channel endpoint id; role is resolved via --node-id")
	runCmd.Flags().StringVar(&nodeID, "node-id", "", "this process's own endpoint id; resolves bind vs connect for --channel-map")
}

func runScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	if showTokens {
		printTokens(source)
	}

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		compilerErrors := errors.FromStringErrors(p.Errors(), source, filename)
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	if showAST {
		fmt.Println(program.String())
	}

	analyzer := semantic.New(source, filename)
	report := analyzer.Analyze(program)

	if len(report.Warnings) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(report.Warnings, true))
	}
	if !report.Success {
		fmt.Fprint(os.Stderr, errors.FormatErrors(report.Errors, true))
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(report.Errors))
	}

	if showSymbols {
		printSymbols(report)
	}

	if emitTAC || saveTACPath != "" {
		if err := handleTAC(program, emitTAC, saveTACPath); err != nil {
			return err
		}
	}

	bindings, err := parseChannelBindings(program)
	if err != nil {
		return err
	}

	interpreter := interp.New(os.Stdout, &stdinProvider{r: bufio.NewReader(os.Stdin)})
	if len(bindings) > 0 {
		interpreter.SetNetworkBindings(bindings)
	}

	if err := interpreter.Run(program); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}

// parseChannelBindings builds the id -> NetworkBinding map consumed by
// interp.Interpreter.SetNetworkBindings, combining this language's two
// channel-configuration mechanisms: an explicit map naming a role per id
// (--channel-bind/--channel-connect) and an implicit one that resolves the
// role from a channel declaration's own pair of endpoint ids plus this
// process's --node-id (--channel-map). Explicit entries win on id conflicts.
func parseChannelBindings(program *ast.Program) (map[string]interp.NetworkBinding, error) {
	bindings := make(map[string]interp.NetworkBinding)
	explicit := make(map[string]bool)
	for _, spec := range channelBinds {
		id, addr, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --channel-bind %q, expected id=addr", spec)
		}
		bindings[id] = interp.NetworkBinding{Addr: addr, Listen: true}
		explicit[id] = true
	}
	for _, spec := range channelConnect {
		id, addr, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --channel-connect %q, expected id=addr", spec)
		}
		bindings[id] = interp.NetworkBinding{Addr: addr, Listen: false}
		explicit[id] = true
	}

	if len(channelMap) == 0 {
		return bindings, nil
	}
	if nodeID == "" {
		return nil, fmt.Errorf("--channel-map requires --node-id to resolve bind vs connect")
	}
	if explicit[nodeID] {
		return bindings, nil
	}
	addrs := make(map[string]string, len(channelMap))
	for _, spec := range channelMap {
		id, addr, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --channel-map %q, expected id=addr", spec)
		}
		addrs[id] = addr
	}

	// A channel declaration's endpoint pair is [listener id, dialer id]: the
	// listener binds the address published under its own id, and the dialer
	// reaches out to that same address. Only the declaration whose pair
	// includes this process's --node-id resolves a role here.
	for _, decl := range channelDecls(program) {
		first, second := decl.ChannelEndpoints[0], decl.ChannelEndpoints[1]
		addr, ok := addrs[first]
		if !ok {
			continue
		}
		switch nodeID {
		case first:
			bindings[nodeID] = interp.NetworkBinding{Addr: addr, Listen: true}
		case second:
			bindings[nodeID] = interp.NetworkBinding{Addr: addr, Listen: false}
		}
	}
	return bindings, nil
}

// channelDecls collects every c_channel VarDecl declared with two endpoint
// ids that is reachable from program,
// walking into seq/par blocks and control-flow bodies so a channel declared
// inside a nested block still resolves via --channel-map.
func channelDecls(program *ast.Program) []*ast.VarDecl {
	var decls []*ast.VarDecl
	var walkStmt func(ast.Statement)
	walkStmt = func(s ast.Statement) {
		switch node := s.(type) {
		case *ast.VarDecl:
			if len(node.ChannelEndpoints) == 2 {
				decls = append(decls, node)
			}
		case *ast.Block:
			for _, inner := range node.Statements {
				walkStmt(inner)
			}
		case *ast.IfStmt:
			walkStmt(node.Then)
			if node.Else != nil {
				walkStmt(node.Else)
			}
		case *ast.WhileStmt:
			walkStmt(node.Body)
		case *ast.ForStmt:
			walkStmt(node.Body)
		}
	}
	for _, child := range program.Children {
		if s, ok := child.(ast.Statement); ok {
			walkStmt(s)
		}
	}
	return decls
}

// stdinProvider implements interp.InputProvider over the process's own
// stdin, for batch CLI runs with no embedder-supplied rendezvous.
type stdinProvider struct {
	r *bufio.Reader
}

func (p *stdinProvider) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(os.Stdout, prompt)
	}
	line, err := p.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
