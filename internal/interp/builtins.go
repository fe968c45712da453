package interp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var intPattern = regexp.MustCompile(`^-?[0-9]+$`)

// isBuiltinName reports whether name is one of the pre-populated built-in
// functions.
func isBuiltinName(name string) bool {
	switch name {
	case "strlen", "substr", "charat", "indexof", "parseint", "print", "input":
		return true
	default:
		return false
	}
}

// callBuiltin executes one of the built-in functions directly; it is
// invoked from expression evaluation whenever a CallExpr's callee resolves
// to a name with no matching user FunctionDecl.
func (in *Interpreter) callBuiltin(name string, args []Value, task *taskContext) (Value, error) {
	switch name {
	case "strlen":
		s := stringArg(args, 0)
		return &Int{Value: int64(len(s))}, nil
	case "substr":
		s := stringArg(args, 0)
		start := intArg(args, 1)
		length := intArg(args, 2)
		return &String{Value: substr(s, start, length)}, nil
	case "charat":
		s := stringArg(args, 0)
		i := intArg(args, 1)
		if i < 0 || i >= len(s) {
			return &String{Value: ""}, nil
		}
		return &String{Value: string(s[i])}, nil
	case "indexof":
		s := stringArg(args, 0)
		needle := stringArg(args, 1)
		from := 0
		if len(args) > 2 {
			from = intArg(args, 2)
		}
		if from < 0 {
			from = 0
		}
		if from > len(s) {
			return &Int{Value: -1}, nil
		}
		idx := strings.Index(s[from:], needle)
		if idx < 0 {
			return &Int{Value: -1}, nil
		}
		return &Int{Value: int64(idx + from)}, nil
	case "parseint":
		return &Int{Value: int64(parseIntPermissive(stringArg(args, 0)))}, nil
	case "print":
		in.writeOutput(printEscape(stringArg(args, 0)))
		return unsetValue, nil
	case "input":
		line, err := task.input.ReadLine("")
		if err != nil {
			return nil, err
		}
		return &String{Value: line}, nil
	default:
		return nil, fmt.Errorf("unknown built-in %s", name)
	}
}

func stringArg(args []Value, i int) string {
	if i >= len(args) {
		return ""
	}
	return stringify(args[i])
}

func intArg(args []Value, i int) int {
	if i >= len(args) {
		return 0
	}
	switch n := args[i].(type) {
	case *Int:
		return int(n.Value)
	case *Float:
		return int(n.Value)
	default:
		return 0
	}
}

// substr returns the length-long slice of s starting at start, clamped to
// s's bounds.
func substr(s string, start, length int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(s) {
		return ""
	}
	end := start + length
	if end > len(s) || length < 0 {
		end = len(s)
	}
	return s[start:end]
}

// parseIntPermissive parses s as an integer after stripping whitespace; if
// the clean parse fails, scans an optional leading '-' followed by digits
// until the first non-digit, returning 0 if nothing parseable.
func parseIntPermissive(s string) int {
	trimmed := strings.TrimSpace(s)
	if v, err := strconv.Atoi(trimmed); err == nil {
		return v
	}
	i := 0
	neg := false
	if i < len(trimmed) && trimmed[i] == '-' {
		neg = true
		i++
	}
	start := i
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	v, err := strconv.Atoi(trimmed[start:i])
	if err != nil {
		return 0
	}
	if neg {
		return -v
	}
	return v
}

// printEscape expands the two-character escape sequences \n and \t.
func printEscape(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	return s
}

// coerceInput converts a raw input line to targetType, returning an error
// on a failed coercion.
func coerceInput(line, targetType string) (Value, error) {
	switch targetType {
	case "int":
		if !intPattern.MatchString(line) {
			return nil, fmt.Errorf("cannot coerce input %q to int", line)
		}
		v, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot coerce input %q to int", line)
		}
		return &Int{Value: v}, nil
	case "float":
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot coerce input %q to float", line)
		}
		return &Float{Value: v}, nil
	case "bool":
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "true", "1", "yes", "verdadeiro", "sim":
			return &Bool{Value: true}, nil
		case "false", "0", "no", "não", "falso":
			return &Bool{Value: false}, nil
		default:
			return nil, fmt.Errorf("cannot coerce input %q to bool", line)
		}
	default:
		return &String{Value: line}, nil
	}
}
