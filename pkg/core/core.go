// Package core is the library entry point of jptr: load a document, resolve
// and set JSON Pointers against it, list its nodes and render results.
package core

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jptr/internal/cel"
	"github.com/oakwood-commons/jptr/internal/formatter"
	"github.com/oakwood-commons/jptr/internal/limiter"
	"github.com/oakwood-commons/jptr/pkg/loader"
	"github.com/oakwood-commons/jptr/pkg/logger"
	"github.com/oakwood-commons/jptr/pkg/pointer"
	"github.com/oakwood-commons/jptr/pkg/tree"
)

// ErrExpression marks a CEL expression that does not compile.
var ErrExpression = errors.New("invalid expression")

// Evaluator evaluates expressions against a node found at a pointer.
type Evaluator interface {
	Check(expr string) error
	Evaluate(expr, path string, n *tree.Node) (*tree.Node, error)
	Match(expr, path string, n *tree.Node) (bool, error)
}

// Engine bundles the evaluator, output options and logger used to work
// with documents.
type Engine struct {
	Evaluator Evaluator
	Output    formatter.Options
	Logger    logr.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithEvaluator sets a custom evaluator.
func WithEvaluator(ev Evaluator) Option {
	return func(e *Engine) {
		e.Evaluator = ev
	}
}

// WithOutput sets how Render prints nodes.
func WithOutput(opts formatter.Options) Option {
	return func(e *Engine) {
		e.Output = opts
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(lgr logr.Logger) Option {
	return func(e *Engine) {
		e.Logger = lgr
	}
}

// New creates an Engine with defaults: the CEL evaluator, indented JSON
// output and a discarding logger.
func New(opts ...Option) (*Engine, error) {
	engine := &Engine{
		Output: formatter.Options{Format: formatter.OutputJSON, Indent: 2},
		Logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.Evaluator == nil {
		ev, err := cel.NewEvaluator()
		if err != nil {
			return nil, err
		}
		engine.Evaluator = ev
	}
	return engine, nil
}

// LoadRoot parses input into a single root; multi-document input becomes an
// array. The caller owns the result.
func LoadRoot(input string) (*tree.Node, loader.Format, error) {
	return loader.LoadRoot(input)
}

// LoadRootBytes parses data into a single root.
func LoadRootBytes(data []byte) (*tree.Node, loader.Format, error) {
	return loader.LoadRootBytes(data)
}

// LoadFile reads a file and parses it into a single root.
func LoadFile(path string) (*tree.Node, loader.Format, error) {
	return loader.LoadFile(path)
}

// LoadFile reads a file with the engine's logger recording format detection.
func (e *Engine) LoadFile(path string) (*tree.Node, loader.Format, error) {
	return loader.LoadFileWithLogger(path, e.Logger)
}

// LoadBytes parses data with the engine's logger recording format detection.
func (e *Engine) LoadBytes(data []byte) (*tree.Node, loader.Format, error) {
	return loader.LoadRootBytesWithLogger(data, e.Logger)
}

// Pointer expands a pointer template the way Get and Set do. Without args
// path is returned unchanged.
func (e *Engine) Pointer(path string, args ...any) (string, error) {
	if len(args) == 0 {
		return path, nil
	}
	return pointer.Format(path, args...)
}

// Get resolves path against root. With args, path is a printf template.
// The result is borrowed from root.
func (e *Engine) Get(root *tree.Node, path string, args ...any) (*tree.Node, error) {
	resolved, err := e.Pointer(path, args...)
	if err != nil {
		e.Logger.V(1).Info("resolve failed", logger.PointerKey, path, "error", err.Error())
		return nil, err
	}
	n, err := pointer.Get(root, resolved)
	if err != nil {
		e.Logger.V(1).Info("resolve failed", logger.PointerKey, resolved, "error", err.Error())
		return nil, err
	}
	return n, nil
}

// Set stores value at path in doc. With args, path is a printf template.
// Ownership follows pointer.Set: on Retained the caller still owns value.
func (e *Engine) Set(doc *tree.Document, path string, value *tree.Node, args ...any) (pointer.Ownership, error) {
	resolved, err := e.Pointer(path, args...)
	if err != nil {
		e.Logger.V(1).Info("set failed", logger.PointerKey, path, "error", err.Error())
		return pointer.Retained, err
	}
	own, err := pointer.Set(doc, resolved, value)
	if err != nil {
		e.Logger.V(1).Info("set failed", logger.PointerKey, resolved, "error", err.Error())
	}
	return own, err
}

// Evaluate runs expr with _ bound to n. The caller owns the result.
func (e *Engine) Evaluate(expr, path string, n *tree.Node) (*tree.Node, error) {
	if e == nil || e.Evaluator == nil {
		return nil, fmt.Errorf("evaluator is not configured")
	}
	return e.Evaluator.Evaluate(expr, path, n)
}

// Query selects the nodes returned by Entries.
type Query struct {
	From   string // pointer of the subtree to list; "" is the whole document
	Where  string // CEL predicate; empty keeps every node
	Leaves bool   // keep only scalars and empty containers
	Window limiter.Config
}

// Entries lists the nodes of root selected by q, parents before children,
// each with its absolute pointer. Values are borrowed from root.
func (e *Engine) Entries(root *tree.Node, q Query) ([]formatter.Entry, error) {
	if err := q.Window.Validate(); err != nil {
		return nil, err
	}
	from, err := pointer.Parse(q.From)
	if err != nil {
		return nil, err
	}
	start, err := from.Get(root)
	if err != nil {
		return nil, err
	}
	if q.Where != "" {
		if err := e.Evaluator.Check(q.Where); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExpression, err)
		}
	}

	var entries []formatter.Entry
	err = pointer.Walk(start, func(p pointer.Pointer, v *tree.Node) error {
		if q.Leaves && v.IsContainer() && v.Len() > 0 {
			return nil
		}
		abs := from.Append(p.Tokens()...).String()
		if q.Where != "" {
			ok, err := e.Evaluator.Match(q.Where, abs, v)
			if err != nil {
				return fmt.Errorf("where at %q: %w", abs, err)
			}
			if !ok {
				return nil
			}
		}
		entries = append(entries, formatter.Entry{Pointer: abs, Value: v})
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.Logger.V(1).Info("listed", logger.PointerKey, q.From, "entries", len(entries))
	return limiter.Apply(q.Window, entries), nil
}

// Render prints n with the engine's output options.
func (e *Engine) Render(n *tree.Node) (string, error) {
	return formatter.Format(n, e.Output)
}
