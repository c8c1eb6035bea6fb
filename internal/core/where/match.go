package where

import (
	"encoding/json"
	"strings"

	"github.com/paneldeck/paneldeck/internal/core/document"
)

// Match evaluates expr against doc. A nil expression matches every document.
func Match(expr Expr, doc map[string]interface{}) bool {
	switch e := expr.(type) {
	case nil:
		return true
	case And:
		for _, child := range e {
			if !Match(child, doc) {
				return false
			}
		}
		return true
	case Or:
		for _, child := range e {
			if Match(child, doc) {
				return true
			}
		}
		return false
	case Condition:
		return matchCondition(e, doc)
	}
	return false
}

func matchCondition(c Condition, doc map[string]interface{}) bool {
	actual, found := document.Lookup(doc, c.Path)
	present := found && actual != nil

	switch c.Op {
	case OpEquals:
		return equal(actual, c.Value)
	case OpNotEquals:
		return !equal(actual, c.Value)
	case OpExists:
		return present == Truthy(c.Value)
	case OpIn:
		return present && inList(actual, ListValues(c.Value))
	case OpNotIn:
		return !present || !inList(actual, ListValues(c.Value))
	case OpLike:
		s, ok := actual.(string)
		if !ok {
			return false
		}
		s = strings.ToLower(s)
		for _, word := range LikeWords(c.Value) {
			if !strings.Contains(s, strings.ToLower(word)) {
				return false
			}
		}
		return true
	case OpContains:
		s, ok := actual.(string)
		needle, _ := c.Value.(string)
		return ok && strings.Contains(strings.ToLower(s), strings.ToLower(needle))
	case OpGreaterThan, OpGreaterThanEqual, OpLessThan, OpLessThanEqual:
		if !present {
			return false
		}
		cmp, ok := compare(actual, c.Value)
		if !ok {
			return false
		}
		switch c.Op {
		case OpGreaterThan:
			return cmp > 0
		case OpGreaterThanEqual:
			return cmp >= 0
		case OpLessThan:
			return cmp < 0
		default:
			return cmp <= 0
		}
	}
	return false
}

func inList(actual interface{}, candidates []interface{}) bool {
	if items, ok := actual.([]interface{}); ok {
		for _, item := range items {
			if inList(item, candidates) {
				return true
			}
		}
		return false
	}
	for _, candidate := range candidates {
		if equal(actual, candidate) {
			return true
		}
	}
	return false
}

// equal compares JSON values; numbers compare by value regardless of Go type.
func equal(actual, expected interface{}) bool {
	if actual == nil || expected == nil {
		return actual == nil && expected == nil
	}

	an, aNum := jsonNumber(actual)
	en, eNum := jsonNumber(expected)
	if aNum || eNum {
		return aNum && eNum && an == en
	}

	switch a := actual.(type) {
	case string:
		e, ok := expected.(string)
		return ok && a == e
	case bool:
		e, ok := expected.(bool)
		return ok && a == e
	}

	aj, err := json.Marshal(actual)
	if err != nil {
		return false
	}
	ej, err := json.Marshal(expected)
	if err != nil {
		return false
	}
	return string(aj) == string(ej)
}

// compare orders two scalars: numbers numerically, strings lexically.
// Mixed kinds are not comparable.
func compare(actual, expected interface{}) (int, bool) {
	an, aNum := jsonNumber(actual)
	en, eNum := jsonNumber(expected)
	if aNum && eNum {
		switch {
		case an < en:
			return -1, true
		case an > en:
			return 1, true
		}
		return 0, true
	}

	as, aStr := actual.(string)
	es, eStr := expected.(string)
	if aStr && eStr {
		return strings.Compare(as, es), true
	}
	return 0, false
}

// jsonNumber reports the value of v when v is a number type (not a numeric string).
func jsonNumber(v interface{}) (float64, bool) {
	switch v.(type) {
	case string, bool, nil:
		return 0, false
	}
	return document.ToNumber(v)
}
