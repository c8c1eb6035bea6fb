package postgres

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/paneldeck/paneldeck/internal/core/document"
	"github.com/paneldeck/paneldeck/internal/core/where"
)

// predicateBuilder compiles a where expression into a JSONB predicate over the
// documents.data column. Placeholders continue after the args already collected.
type predicateBuilder struct {
	args []interface{}
}

func newPredicateBuilder(initial ...interface{}) *predicateBuilder {
	return &predicateBuilder{args: append([]interface{}(nil), initial...)}
}

func (b *predicateBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *predicateBuilder) pathArg(path string) string {
	return b.arg(pq.Array(splitPath(path)))
}

func (b *predicateBuilder) build(expr where.Expr) (string, error) {
	switch e := expr.(type) {
	case nil:
		return "TRUE", nil
	case where.And:
		return b.join(e, " AND ", "TRUE")
	case where.Or:
		return b.join(e, " OR ", "FALSE")
	case where.Condition:
		return b.condition(e)
	}
	return "", fmt.Errorf("%w: unsupported expression %T", where.ErrInvalidFilter, expr)
}

func (b *predicateBuilder) join(children []where.Expr, sep, empty string) (string, error) {
	if len(children) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(children))
	for _, child := range children {
		sql, err := b.build(child)
		if err != nil {
			return "", err
		}
		parts = append(parts, sql)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func (b *predicateBuilder) condition(c where.Condition) (string, error) {
	p := b.pathArg(c.Path)
	value := fmt.Sprintf("(data #> %s::text[])", p)
	text := fmt.Sprintf("(data #>> %s::text[])", p)
	present := fmt.Sprintf("(%s IS NOT NULL AND %s <> 'null'::jsonb)", value, value)

	switch c.Op {
	case where.OpEquals:
		if c.Value == nil {
			return "NOT " + present, nil
		}
		v, err := b.jsonArg(c.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s::jsonb", value, v), nil

	case where.OpNotEquals:
		if c.Value == nil {
			return present, nil
		}
		v, err := b.jsonArg(c.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s IS DISTINCT FROM %s::jsonb", value, v), nil

	case where.OpExists:
		if where.Truthy(c.Value) {
			return present, nil
		}
		return "NOT " + present, nil

	case where.OpIn, where.OpNotIn:
		v, err := b.jsonArg(where.ListValues(c.Value))
		if err != nil {
			return "", err
		}
		in := fmt.Sprintf("COALESCE(%s AND %s::jsonb @> %s, FALSE)", present, v, value)
		if c.Op == where.OpNotIn {
			return "NOT " + in, nil
		}
		return in, nil

	case where.OpLike:
		words := where.LikeWords(c.Value)
		parts := []string{fmt.Sprintf("jsonb_typeof(%s) = 'string'", value)}
		for _, word := range words {
			parts = append(parts, fmt.Sprintf("%s ILIKE %s", text, b.arg(likePattern(word))))
		}
		return "(" + strings.Join(parts, " AND ") + ")", nil

	case where.OpContains:
		needle, _ := c.Value.(string)
		return fmt.Sprintf("(jsonb_typeof(%s) = 'string' AND %s ILIKE %s)", value, text, b.arg(likePattern(needle))), nil

	case where.OpGreaterThan, where.OpGreaterThanEqual, where.OpLessThan, where.OpLessThanEqual:
		return b.comparison(c, value, text)
	}
	return "", fmt.Errorf("%w: unsupported operator %q", where.ErrInvalidFilter, c.Op)
}

func (b *predicateBuilder) comparison(c where.Condition, value, text string) (string, error) {
	op := map[where.Op]string{
		where.OpGreaterThan:      ">",
		where.OpGreaterThanEqual: ">=",
		where.OpLessThan:         "<",
		where.OpLessThanEqual:    "<=",
	}[c.Op]

	// CASE guards the numeric cast: AND does not guarantee evaluation order.
	if s, ok := c.Value.(string); ok {
		return fmt.Sprintf("CASE WHEN jsonb_typeof(%s) = 'string' THEN %s %s %s ELSE FALSE END",
			value, text, op, b.arg(s)), nil
	}
	if _, isBool := c.Value.(bool); !isBool {
		if n, ok := document.ToNumber(c.Value); ok {
			return fmt.Sprintf("CASE WHEN jsonb_typeof(%s) = 'number' THEN %s::numeric %s %s ELSE FALSE END",
				value, text, op, b.arg(n)), nil
		}
	}
	return "FALSE", nil
}

func (b *predicateBuilder) jsonArg(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", where.ErrInvalidFilter, err)
	}
	return b.arg(string(raw)), nil
}

func splitPath(path string) []string {
	parts := strings.Split(path, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
