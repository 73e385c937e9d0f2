// Package condition parses the predicate text of REM directives.
//
// Three forms are recognized, tried in this order:
//
//	lo (<|<=) field (<|<=) hi      range over supplyDate, amount, special
//	field (=|!=) value             textual equality over any field
//	field (<|<=|>|>=) value        inequality over supplyDate, amount, special
//
// Strict bounds are normalized to inclusive ones by stepping the literal by
// one (integers) or one microsecond (dates), so callers only ever see closed
// ranges and >=/<= inequalities.
package condition

import (
	"fmt"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Condition is a parsed predicate: Range, Equality or Inequality.
type Condition interface {
	// Target returns the field the predicate reads.
	Target() types.Field
	String() string
	isCondition()
}

// Range matches Min <= field <= Max.
type Range struct {
	Field    types.Field
	Min, Max types.Bound
}

// Equality matches field text == Literal (Equal) or != Literal (!Equal).
type Equality struct {
	Field   types.Field
	Literal string
	Equal   bool
}

// Inequality matches field >= Literal (GreaterOrEqual) or field <= Literal.
type Inequality struct {
	Field          types.Field
	Literal        types.Bound
	GreaterOrEqual bool
}

func (r Range) Target() types.Field      { return r.Field }
func (e Equality) Target() types.Field   { return e.Field }
func (i Inequality) Target() types.Field { return i.Field }

func (Range) isCondition()      {}
func (Equality) isCondition()   {}
func (Inequality) isCondition() {}

func (r Range) String() string {
	return fmt.Sprintf("%s <= %s <= %s", r.Min, r.Field, r.Max)
}

func (e Equality) String() string {
	op := "="
	if !e.Equal {
		op = "!="
	}
	return fmt.Sprintf("%s %s %s", e.Field, op, e.Literal)
}

func (i Inequality) String() string {
	op := "<="
	if i.GreaterOrEqual {
		op = ">="
	}
	return fmt.Sprintf("%s %s %s", i.Field, op, i.Literal)
}
