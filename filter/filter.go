// Package filter selects records with expr-lang boolean expressions.
//
// A record is the JSON form of a value, so an expression refers to fields
// by their JSON names:
//
//	status == "pending" && icontains(title, "promo")
//	total_contacts > 10
//	hasPrefix(phone, "024")
//
// Besides the expr builtins (lower, upper, hasPrefix, the contains
// operator, ...) expressions can call icontains, digits, parseDate and
// daysSince.
package filter

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultCacheSize bounds the package-level compiler's cache.
const DefaultCacheSize = 128

// Filter is a compiled expression, safe for concurrent use.
type Filter struct {
	expression string
	program    *vm.Program
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one record.
func (f *Filter) Match(record map[string]any) (bool, error) {
	env := make(map[string]any, len(record)+len(helpers))
	maps.Copy(env, record)
	maps.Copy(env, helpers)

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, err
	}
	matched, _ := out.(bool)
	return matched, nil
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache enables caching of compiled filters with the given size
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache[*Filter](size)
		}
	}
}

// Compiler turns expressions into filters.
type Compiler struct {
	cache *lruCache[*Filter]
}

// NewCompiler creates a compiler. Without WithCache nothing is cached.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile compiles expression into a filter that must yield a boolean.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helpers),
		expr.AllowUndefinedVariables(), // record fields are only known at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &Filter{expression: expression, program: program}
	if c.cache != nil {
		c.cache.Put(expression, f)
	}
	return f, nil
}

// CacheSize returns the number of cached filters
func (c *Compiler) CacheSize() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

var defaultCompiler = NewCompiler(WithCache(DefaultCacheSize))

// Compile compiles expression with the shared caching compiler.
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the items for which f holds, in their original order.
// A nil filter keeps everything.
func Apply[T any](f *Filter, items []T) ([]T, error) {
	if f == nil {
		return items, nil
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		record, err := ToRecord(item)
		if err != nil {
			return nil, &EvaluationError{
				Expression: f.expression,
				Record:     fmt.Sprintf("#%d", i),
				Reason:     "record is not representable as JSON",
				Err:        err,
			}
		}
		matched, err := f.Match(record)
		if err != nil {
			return nil, &EvaluationError{
				Expression: f.expression,
				Record:     recordName(record, i),
				Reason:     err.Error(),
				Err:        err,
			}
		}
		if matched {
			out = append(out, item)
		}
	}
	return out, nil
}

// ToRecord converts v to the field map expressions are evaluated against.
func ToRecord(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func recordName(record map[string]any, index int) string {
	for _, key := range []string{"id", "name", "sender_name"} {
		if s, ok := record[key].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("#%d", index)
}

var helpers = map[string]any{
	"icontains": func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	},
	"digits": func(str string) string {
		return strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, str)
	},
	"parseDate": parseDate,
	"daysSince": func(date string) int {
		t := parseDate(date)
		if t.IsZero() {
			return -1
		}
		return int(time.Since(t).Hours() / 24)
	},
}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// parseDate accepts the date formats seen in API records; the zero time
// means unparseable.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
