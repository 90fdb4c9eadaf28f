package cel

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/jptr/pkg/tree"
)

// Variables bound for every evaluation.
const (
	// VarValue holds the node's value.
	VarValue = "_"
	// VarPointer holds the JSON pointer of the node, "" for the root.
	VarPointer = "pointer"
	// VarKind holds the node's kind name ("object", "array", "string", ...).
	VarKind = "kind"
)

// ErrNotBool is returned by Match when the expression does not yield a bool.
var ErrNotBool = errors.New("expression did not evaluate to a bool")

// Evaluator compiles and evaluates CEL expressions against tree nodes.
// Compiled programs are cached per expression; an Evaluator is safe for
// concurrent use.
type Evaluator struct {
	env *cel.Env

	mu    sync.Mutex
	progs map[string]cel.Program
}

// NewEvaluator creates an evaluator with the standard library and the
// strings, encoders, lists and math extensions.
func NewEvaluator() (*Evaluator, error) {
	env, err := newStandardCELEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env, progs: map[string]cel.Program{}}, nil
}

func newStandardCELEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 7+len(opts))
	allOpts = append(allOpts,
		cel.Variable(VarValue, cel.DynType),
		cel.Variable(VarPointer, cel.StringType),
		cel.Variable(VarKind, cel.StringType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// Compile parses and checks expr, returning the cached program on repeat
// calls.
func (e *Evaluator) Compile(expr string) (cel.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prg, ok := e.progs[expr]; ok {
		return prg, nil
	}
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	e.progs[expr] = prg
	return prg, nil
}

// Check reports whether expr compiles.
func (e *Evaluator) Check(expr string) error {
	_, err := e.Compile(expr)
	return err
}

// Evaluate runs expr against n found at pointer p and returns the result as
// a new tree owned by the caller.
func (e *Evaluator) Evaluate(expr, p string, n *tree.Node) (*tree.Node, error) {
	val, err := e.eval(expr, p, n)
	if err != nil {
		return nil, err
	}
	out, err := tree.FromGo(ToGo(val))
	if err != nil {
		return nil, fmt.Errorf("result: %w", err)
	}
	return out, nil
}

// Match runs a predicate against n found at pointer p.
func (e *Evaluator) Match(expr, p string, n *tree.Node) (bool, error) {
	val, err := e.eval(expr, p, n)
	if err != nil {
		return false, err
	}
	b, ok := val.(types.Bool)
	if !ok {
		return false, fmt.Errorf("%w: got %s", ErrNotBool, val.Type().TypeName())
	}
	return bool(b), nil
}

func (e *Evaluator) eval(expr, p string, n *tree.Node) (ref.Val, error) {
	prg, err := e.Compile(expr)
	if err != nil {
		return nil, err
	}
	val, _, err := prg.Eval(map[string]any{
		VarValue:   n.Interface(),
		VarPointer: p,
		VarKind:    n.Kind().String(),
	})
	if err != nil {
		return nil, fmt.Errorf("eval error: %w", err)
	}
	return val, nil
}

// ToGo converts CEL values to plain Go values recursively: maps become
// map[string]any and lists []any.
func ToGo(val ref.Val) any {
	if val == nil {
		return nil
	}
	switch v := val.(type) {
	case types.Null:
		return nil
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return string(v)
	}

	valuer, ok := val.(interface{ Value() any })
	if !ok {
		return val
	}
	return toGoValue(valuer.Value())
}

func toGoValue(v any) any {
	switch inner := v.(type) {
	case ref.Val:
		return ToGo(inner)
	case []ref.Val:
		out := make([]any, len(inner))
		for i, elem := range inner {
			out[i] = ToGo(elem)
		}
		return out
	case []any:
		out := make([]any, len(inner))
		for i, elem := range inner {
			out[i] = toGoValue(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(inner))
		for k, elem := range inner {
			out[k] = toGoValue(elem)
		}
		return out
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(inner))
		for k, elem := range inner {
			out[fmt.Sprint(ToGo(k))] = ToGo(elem)
		}
		return out
	default:
		return v
	}
}
