package cel

import (
	"sort"
	"strings"

	"github.com/google/cel-go/common/decls"
	"github.com/google/cel-go/common/types"
)

// Function describes a function or macro usable in expressions.
type Function struct {
	Name     string
	Category string
	Usages   []string // one per overload, e.g. "string.startsWith(string) -> bool"
	Macro    bool
}

// Functions lists the functions and macros of the evaluator's environment,
// sorted by name. Operators are left out.
func (e *Evaluator) Functions() []Function {
	byName := map[string]*Function{}
	get := func(name string) *Function {
		fn, ok := byName[name]
		if !ok {
			fn = &Function{Name: name, Category: categorize(name)}
			byName[name] = fn
		}
		return fn
	}

	for name, decl := range e.env.Functions() {
		if isOperator(name) {
			continue
		}
		fn := get(name)
		seen := map[string]bool{}
		for _, o := range decl.OverloadDecls() {
			u := usage(name, o)
			if seen[u] {
				continue
			}
			seen[u] = true
			fn.Usages = append(fn.Usages, u)
		}
		sort.Strings(fn.Usages)
	}
	for _, m := range e.env.Macros() {
		if isOperator(m.Function()) {
			continue
		}
		fn := get(m.Function())
		fn.Macro = true
		fn.Category = "macro"
	}

	out := make([]Function, 0, len(byName))
	for _, fn := range byName {
		out = append(out, *fn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func typeLabel(t *types.Type) string {
	if t == nil {
		return "any"
	}
	if name := t.DeclaredTypeName(); name != "" {
		return name
	}
	if name := t.TypeName(); name != "" {
		return name
	}
	return "any"
}

// usage renders an overload as receiver.name(args) -> result or
// name(args) -> result.
func usage(name string, o *decls.OverloadDecl) string {
	params := o.ArgTypes()
	labels := make([]string, len(params))
	for i, p := range params {
		labels[i] = typeLabel(p)
	}
	call := name + "(" + strings.Join(labels, ", ") + ")"
	if o.IsMemberFunction() && len(labels) > 0 {
		call = labels[0] + "." + name + "(" + strings.Join(labels[1:], ", ") + ")"
	}
	return call + " -> " + typeLabel(o.ResultType())
}

var operators = map[string]bool{
	"!_": true, "-_": true, "@in": true, "@not_strictly_false": true,
	"_[_]": true, "_[?_]": true, "_?._": true, "_in_": true,
}

// isOperator reports internal declarations such as _+_, @in or math.@max.
func isOperator(name string) bool {
	if operators[name] || strings.Contains(name, "@") {
		return true
	}
	return strings.HasPrefix(name, "_") && strings.HasSuffix(name, "_")
}

func categorize(name string) string {
	n := strings.ToLower(name)
	switch {
	case hasAny(n, "base64", "encode", "decode"):
		return "encoding"
	case strings.HasPrefix(n, "math."):
		return "math"
	case hasAny(n, "matches", "regex"):
		return "regex"
	case hasAny(n, "string", "upper", "lower", "trim", "split", "join", "replace", "substring",
		"index", "startswith", "endswith", "contains", "charat", "format", "quote", "reverse"):
		return "string"
	case hasAny(n, "lists.", "flatten", "slice", "sort", "distinct", "range", "first", "last"):
		return "list"
	case hasAny(n, "int", "uint", "double", "bool", "bytes", "dyn", "type", "timestamp", "duration"):
		return "conversion"
	case hasAny(n, "get"):
		return "datetime"
	default:
		return "general"
	}
}

func hasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
