// Package where parses the CMS query filter object into an expression tree.
//
// The accepted shape mirrors the host CMS:
//
//	{
//	  "status": {"equals": "published"},
//	  "meta.price": {"greater_than": 10, "less_than": 100},
//	  "or": [{"featured": {"equals": true}}, {"views": {"greater_than_equal": 1000}}]
//	}
//
// Sibling keys are combined with AND. A field whose value is not an operator object is
// shorthand for equals.
package where

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidFilter marks malformed filter input.
var ErrInvalidFilter = errors.New("invalid where filter")

// Op is a field comparison operator.
type Op string

const (
	OpEquals           Op = "equals"
	OpNotEquals        Op = "not_equals"
	OpGreaterThan      Op = "greater_than"
	OpGreaterThanEqual Op = "greater_than_equal"
	OpLessThan         Op = "less_than"
	OpLessThanEqual    Op = "less_than_equal"
	OpIn               Op = "in"
	OpNotIn            Op = "not_in"
	OpExists           Op = "exists"
	OpLike             Op = "like"
	OpContains         Op = "contains"
)

var knownOps = map[Op]struct{}{
	OpEquals: {}, OpNotEquals: {}, OpGreaterThan: {}, OpGreaterThanEqual: {},
	OpLessThan: {}, OpLessThanEqual: {}, OpIn: {}, OpNotIn: {}, OpExists: {},
	OpLike: {}, OpContains: {},
}

// Expr is a node of a parsed filter.
type Expr interface {
	isExpr()
}

// Condition compares the value at Path against Value.
type Condition struct {
	Path  string
	Op    Op
	Value interface{}
}

// And matches when every child matches. An empty And matches everything.
type And []Expr

// Or matches when at least one child matches. An empty Or matches nothing.
type Or []Expr

func (Condition) isExpr() {}
func (And) isExpr()       {}
func (Or) isExpr()        {}

// Parse converts a raw filter object into an expression.
// A nil or empty object parses to nil, which matches every document.
func Parse(raw map[string]interface{}) (Expr, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	expr, err := parseObject(raw)
	if err != nil {
		return nil, err
	}
	return simplify(expr), nil
}

func parseObject(raw map[string]interface{}) (And, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	// Deterministic order keeps generated SQL stable.
	sort.Strings(keys)

	out := make(And, 0, len(keys))
	for _, key := range keys {
		value := raw[key]
		switch strings.ToLower(key) {
		case "and":
			children, err := parseList(key, value)
			if err != nil {
				return nil, err
			}
			out = append(out, And(children))
		case "or":
			children, err := parseList(key, value)
			if err != nil {
				return nil, err
			}
			out = append(out, Or(children))
		default:
			conds, err := parseField(key, value)
			if err != nil {
				return nil, err
			}
			out = append(out, conds...)
		}
	}
	return out, nil
}

func parseList(key string, value interface{}) ([]Expr, error) {
	items, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %q must be an array", ErrInvalidFilter, key)
	}

	children := make([]Expr, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be an object", ErrInvalidFilter, key, i)
		}
		child, err := parseObject(obj)
		if err != nil {
			return nil, err
		}
		children = append(children, simplify(child))
	}
	return children, nil
}

func parseField(path string, value interface{}) ([]Expr, error) {
	if strings.Trim(path, ".") == "" {
		return nil, fmt.Errorf("%w: empty field path", ErrInvalidFilter)
	}

	ops, ok := value.(map[string]interface{})
	if !ok {
		return []Expr{Condition{Path: path, Op: OpEquals, Value: value}}, nil
	}

	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)

	conds := make([]Expr, 0, len(names))
	for _, name := range names {
		op := Op(name)
		if _, known := knownOps[op]; !known {
			return nil, fmt.Errorf("%w: unsupported operator %q on %q", ErrInvalidFilter, name, path)
		}
		cond := Condition{Path: path, Op: op, Value: ops[name]}
		if err := validate(cond); err != nil {
			return nil, err
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

func validate(c Condition) error {
	switch c.Op {
	case OpIn, OpNotIn:
		if _, ok := listValues(c.Value); !ok {
			return fmt.Errorf("%w: %s on %q needs an array or comma separated string", ErrInvalidFilter, c.Op, c.Path)
		}
	case OpExists:
		if _, ok := truthy(c.Value); !ok {
			return fmt.Errorf("%w: exists on %q needs a boolean", ErrInvalidFilter, c.Path)
		}
	case OpLike, OpContains:
		if _, ok := c.Value.(string); !ok {
			return fmt.Errorf("%w: %s on %q needs a string", ErrInvalidFilter, c.Op, c.Path)
		}
	case OpGreaterThan, OpGreaterThanEqual, OpLessThan, OpLessThanEqual:
		if !isScalar(c.Value) || c.Value == nil {
			return fmt.Errorf("%w: %s on %q needs a number or string", ErrInvalidFilter, c.Op, c.Path)
		}
	}
	return nil
}

func simplify(a And) Expr {
	if len(a) == 1 {
		return a[0]
	}
	return a
}

// ListValues returns the candidate values of an in / not_in condition.
func ListValues(v interface{}) []interface{} {
	values, _ := listValues(v)
	return values
}

func listValues(v interface{}) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case string:
		parts := strings.Split(t, ",")
		out := make([]interface{}, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// Truthy interprets the operand of an exists condition.
func Truthy(v interface{}) bool {
	b, _ := truthy(v)
	return b
}

func truthy(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(t) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// LikeWords splits a like operand into the words that must all be present.
func LikeWords(v interface{}) []string {
	s, _ := v.(string)
	return strings.Fields(s)
}

func isScalar(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return false
	}
	return true
}
