package semantic

import "strings"

// Primitive type names. Comparisons are case-insensitive, so these are
// always compared in their canonical lower-case form via normalizeType.
const (
	TInt     = "int"
	TFloat   = "float"
	TString  = "string"
	TBool    = "bool"
	TVoid    = "void"
	TChannel = "c_channel"
	TObject  = "object" // unknown compile-time element type; assignable anywhere with a warning
)

func normalizeType(t string) string { return strings.ToLower(t) }

func isNumeric(t string) bool {
	t = normalizeType(t)
	return t == TInt || t == TFloat
}

// assignable reports whether a value of type source may be stored into a
// location of type target. classes is consulted for covariance: target ←
// source is allowed if source transitively extends target.
func assignable(target, source string, classes *ClassTable) (ok bool, warn bool) {
	target, source = normalizeType(target), normalizeType(source)
	if target == source {
		return true, false
	}
	if source == TObject {
		return true, true
	}
	if target == TFloat && source == TInt {
		return true, false
	}
	if target == TString {
		return true, false
	}
	if classes != nil && classes.IsSubclassOf(source, target) {
		return true, false
	}
	return false, false
}

// resultType computes the static type of a binary arithmetic/concatenation
// expression under the language's operator typing rules.
func resultType(op, left, right string) (result string, ok bool) {
	left, right = normalizeType(left), normalizeType(right)
	switch op {
	case "+":
		if left == TString || right == TString {
			return TString, true
		}
		if isNumeric(left) && isNumeric(right) {
			if left == TFloat || right == TFloat {
				return TFloat, true
			}
			return TInt, true
		}
		return "", false
	case "-", "*", "/", "%":
		if !isNumeric(left) || !isNumeric(right) {
			return "", false
		}
		if left == TFloat || right == TFloat {
			return TFloat, true
		}
		return TInt, true
	case "&&", "||":
		if left == TBool && right == TBool {
			return TBool, true
		}
		return "", false
	case "==", "!=":
		if isNumeric(left) && isNumeric(right) {
			return TBool, true
		}
		if left == TString && right == TString {
			return TBool, true
		}
		return "", false
	case "<", ">", "<=", ">=":
		if isNumeric(left) && isNumeric(right) {
			return TBool, true
		}
		return "", false
	default:
		return "", false
	}
}
