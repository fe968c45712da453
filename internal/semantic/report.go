package semantic

import cerrors "github.com/minipar-lang/minipar/internal/errors"

// Statistics summarizes a single analysis run, echoed back to callers (the
// CLI's `--show-symbols` output and the embedder's Analyze result).
type Statistics struct {
	Classes   int
	Functions int
	Globals   int
	Errors    int
	Warnings  int
}

// Report is the semantic analyzer's contract result: success, accumulated
// diagnostics, and a snapshot of the statistics.
type Report struct {
	Success    bool
	Errors     []*cerrors.CompilerError
	Warnings   []*cerrors.CompilerError
	Statistics Statistics

	classes *ClassTable
	global  *Scope
}

func (a *Analyzer) buildReport() *Report {
	stats := Statistics{
		Classes:  len(a.classes.All()),
		Errors:   len(a.errs),
		Warnings: len(a.warnings),
	}
	for _, sym := range a.global.All() {
		if sym.IsFunction {
			stats.Functions++
		} else {
			stats.Globals++
		}
	}
	return &Report{
		Success:    len(a.errs) == 0,
		Errors:     a.errs,
		Warnings:   a.warnings,
		Statistics: stats,
		classes:    a.classes,
		global:     a.global,
	}
}

// Symbols returns a JSON-marshalable projection of the global scope and
// class table, used by the CLI's `--show-symbols` flag and the embedder's
// Analyze result.
func (r *Report) Symbols() map[string]any {
	globals := make(map[string]any, len(r.global.All()))
	for name, sym := range r.global.All() {
		entry := map[string]any{
			"kind": "variable",
			"type": sym.Type,
		}
		if sym.IsFunction {
			entry["kind"] = "function"
			entry["returnType"] = sym.ReturnType
			entry["paramTypes"] = sym.ParamTypes
		}
		if sym.IsArray {
			entry["array"] = true
			entry["elementType"] = sym.ArrayElemType
		}
		globals[name] = entry
	}

	classes := make(map[string]any, len(r.classes.All()))
	for name, ci := range r.classes.All() {
		attrs := make([]string, 0, len(ci.Attributes))
		for attrName := range ci.Attributes {
			attrs = append(attrs, attrName)
		}
		methods := make([]string, 0, len(ci.Methods))
		for methodName := range ci.Methods {
			methods = append(methods, methodName)
		}
		classes[name] = map[string]any{
			"parent":     ci.Parent,
			"attributes": attrs,
			"methods":    methods,
		}
	}

	return map[string]any{
		"globals": globals,
		"classes": classes,
	}
}
