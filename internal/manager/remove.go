// Conditional bulk removals used by REM directives.
package manager

import (
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// RemoveByRange deletes every product whose field lies in the closed interval
// [lo, hi] and returns how many were removed. For FieldSpecial only Cake
// height and Cup volume take part; Belts are never matched.
func (m *Manager) RemoveByRange(field types.Field, lo, hi types.Bound) (int, error) {
	if err := checkOrdered(field, lo); err != nil {
		return 0, err
	}
	if err := checkOrdered(field, hi); err != nil {
		return 0, err
	}
	return m.removeWhere(func(p types.Product) bool {
		v, ok := p.Ordered(field)
		return ok && v.Compare(lo) >= 0 && v.Compare(hi) <= 0
	}), nil
}

// RemoveEqual deletes every product whose field text equals value (isEqual)
// or differs from it (!isEqual). The comparison is on text: dates compare in
// types.DateTextLayout, numbers in decimal, a Belt's metal flag as
// "True"/"False".
func (m *Manager) RemoveEqual(field types.Field, value string, isEqual bool) int {
	if _, ok := types.ParseField(string(field)); !ok {
		return 0
	}
	return m.removeWhere(func(p types.Product) bool {
		return (p.Text(field) == value) == isEqual
	})
}

// RemoveByInequality deletes every product whose field is >= value
// (greaterOrEqual) or <= value (!greaterOrEqual). For FieldSpecial Belts are
// never matched.
func (m *Manager) RemoveByInequality(field types.Field, value types.Bound, greaterOrEqual bool) (int, error) {
	if err := checkOrdered(field, value); err != nil {
		return 0, err
	}
	return m.removeWhere(func(p types.Product) bool {
		v, ok := p.Ordered(field)
		if !ok {
			return false
		}
		if greaterOrEqual {
			return v.Compare(value) >= 0
		}
		return v.Compare(value) <= 0
	}), nil
}

// checkOrdered rejects fields without an ordering and bounds whose type does
// not match the field.
func checkOrdered(field types.Field, b types.Bound) error {
	if !field.Ordered() {
		return types.Errorf(types.ErrConditionSyntax, "field %q has no ordering", field)
	}
	if field.Dated() != b.IsDate() {
		return types.Errorf(types.ErrConditionSyntax, "bound %s does not match field %q", b, field)
	}
	return nil
}
