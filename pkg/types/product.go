package types

import (
	"strconv"
	"time"
)

// Kind identifies a product variant.
type Kind int

// Product kinds. The zero value is not a valid kind.
const (
	KindBelt Kind = iota + 1
	KindCake
	KindCup
)

// kindNames maps each kind to the type token used in product files and
// ADD directives.
var kindNames = map[Kind]string{
	KindBelt: "Belt",
	KindCake: "Cake",
	KindCup:  "Cup",
}

// Kinds lists every product kind in display order.
var Kinds = []Kind{KindBelt, KindCake, KindCup}

// String returns the type token ("Belt", "Cake", "Cup").
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind resolves a type token by exact, case-sensitive match.
// Returns ErrUnknownType for any other token.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, Errorf(ErrUnknownType, "%q", s)
}

// Product is an immutable product record. The variant-specific scalar is
// stored in metal (Belt) or measure (Cake height, Cup volume).
type Product struct {
	kind       Kind
	supplyDate time.Time
	name       string
	amount     int
	metal      bool
	measure    int
}

// NewBelt returns a Belt with the given metal flag.
func NewBelt(supplyDate time.Time, name string, amount int, metal bool) Product {
	return Product{kind: KindBelt, supplyDate: supplyDate, name: name, amount: amount, metal: metal}
}

// NewCake returns a Cake with the given height.
func NewCake(supplyDate time.Time, name string, amount, height int) Product {
	return Product{kind: KindCake, supplyDate: supplyDate, name: name, amount: amount, measure: height}
}

// NewCup returns a Cup with the given volume.
func NewCup(supplyDate time.Time, name string, amount, volume int) Product {
	return Product{kind: KindCup, supplyDate: supplyDate, name: name, amount: amount, measure: volume}
}

// Kind returns the product variant.
func (p Product) Kind() Kind { return p.kind }

// SupplyDate returns the supply date.
func (p Product) SupplyDate() time.Time { return p.supplyDate }

// Name returns the product name.
func (p Product) Name() string { return p.name }

// Amount returns the supplied amount.
func (p Product) Amount() int { return p.amount }

// Metal reports the metal flag. ok is false unless the product is a Belt.
func (p Product) Metal() (metal, ok bool) {
	return p.metal, p.kind == KindBelt
}

// Height returns the cake height. ok is false unless the product is a Cake.
func (p Product) Height() (height int, ok bool) {
	return p.measure, p.kind == KindCake
}

// Volume returns the cup volume. ok is false unless the product is a Cup.
func (p Product) Volume() (volume int, ok bool) {
	return p.measure, p.kind == KindCup
}

// OrderedSpecial returns the special attribute when it has an ordering:
// Cake height or Cup volume. A Belt's metal flag is not ordered.
func (p Product) OrderedSpecial() (int, bool) {
	switch p.kind {
	case KindCake, KindCup:
		return p.measure, true
	default:
		return 0, false
	}
}

// SpecialText returns the special attribute in its textual form:
// "True"/"False" for a Belt, a decimal integer otherwise.
func (p Product) SpecialText() string {
	if p.kind == KindBelt {
		return FormatBool(p.metal)
	}
	return strconv.Itoa(p.measure)
}

// Ordered resolves an ordered field to a Bound. ok is false when the field
// has no ordering for this product (name, or special on a Belt).
func (p Product) Ordered(f Field) (b Bound, ok bool) {
	switch f {
	case FieldSupplyDate:
		return DateBound(p.supplyDate), true
	case FieldAmount:
		return IntBound(p.amount), true
	case FieldSpecial:
		if v, ok := p.OrderedSpecial(); ok {
			return IntBound(v), true
		}
	}
	return Bound{}, false
}

// Text returns the textual form of a field used for equality conditions.
// Dates use DateTextLayout, so equality is on text, never on the instant.
func (p Product) Text(f Field) string {
	switch f {
	case FieldSupplyDate:
		return p.supplyDate.Format(DateTextLayout)
	case FieldName:
		return p.name
	case FieldAmount:
		return strconv.Itoa(p.amount)
	case FieldSpecial:
		return p.SpecialText()
	default:
		return ""
	}
}

// Equal reports field-wise equality. Supply dates compare as instants.
func (p Product) Equal(o Product) bool {
	return p.kind == o.kind &&
		p.supplyDate.Equal(o.supplyDate) &&
		p.name == o.name &&
		p.amount == o.amount &&
		p.metal == o.metal &&
		p.measure == o.measure
}

// FormatBool renders a metal flag the way product files spell it.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
