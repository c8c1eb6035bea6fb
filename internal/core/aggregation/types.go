package aggregation

import "fmt"

// Operator is the aggregation requested for a collection field.
// The zero value (OpNone) means "return documents, do not aggregate".
type Operator string

const (
	OpNone     Operator = ""
	OpCount    Operator = "count"
	OpSum      Operator = "sum"
	OpAvg      Operator = "avg"
	OpMin      Operator = "min"
	OpMax      Operator = "max"
	OpEarliest Operator = "earliest"
	OpLatest   Operator = "latest"
)

// Operators lists every aggregating operator in wire order.
var Operators = []Operator{OpCount, OpSum, OpAvg, OpMin, OpMax, OpEarliest, OpLatest}

// Kind groups operators by how they are evaluated.
type Kind int

const (
	KindDocuments Kind = iota // no operator: page or dump documents
	KindCount                 // source total, no document inspection
	KindTemporal              // single top document by sort order
	KindNumeric               // accumulate coerced numbers over a scan
)

// ParseOperator validates a wire operator name. The empty string maps to OpNone.
func ParseOperator(s string) (Operator, error) {
	op := Operator(s)
	if op == OpNone {
		return OpNone, nil
	}
	for _, known := range Operators {
		if op == known {
			return op, nil
		}
	}
	return OpNone, fmt.Errorf("unsupported operator %q", s)
}

// Kind reports the evaluation strategy for op.
func (op Operator) Kind() Kind {
	switch op {
	case OpCount:
		return KindCount
	case OpEarliest, OpLatest:
		return KindTemporal
	case OpSum, OpAvg, OpMin, OpMax:
		return KindNumeric
	default:
		return KindDocuments
	}
}

// RequiresField reports whether op reads a document field.
func (op Operator) RequiresField() bool {
	k := op.Kind()
	return k == KindTemporal || k == KindNumeric
}

// SortKey returns the sort expression that puts the wanted document first for a
// temporal operator: ascending for earliest, descending for latest.
func (op Operator) SortKey(field string) string {
	if op == OpLatest {
		return "-" + field
	}
	return field
}

func (op Operator) String() string {
	if op == OpNone {
		return "none"
	}
	return string(op)
}
