// Package codec converts products to and from their single-line text form:
//
//	Belt(01.01.2023, "Belt", 10, True)
//	Cake(01.01.2023, "Cake", 5, 15)
//	Cup(01.01.2023, "Cup", 20, 250)
//
// The interior is split on ", " so a name containing that sequence does not
// round-trip.
package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// fieldSep separates the four values inside the parentheses.
const fieldSep = ", "

// Format renders p as one product line without a trailing newline.
func Format(p types.Product) string {
	return fmt.Sprintf("%s(%s, \"%s\", %d, %s)",
		p.Kind(),
		p.SupplyDate().Format(types.DateLayout),
		p.Name(),
		p.Amount(),
		p.SpecialText(),
	)
}

// Parse reads one product line. Malformed lines fail with types.ErrFormat and
// unrecognized type tokens with types.ErrUnknownType.
func Parse(line string) (types.Product, error) {
	line = strings.TrimSpace(line)

	token, rest, ok := strings.Cut(line, "(")
	if !ok {
		return types.Product{}, types.Errorf(types.ErrFormat, "missing '(' in %q", line)
	}
	interior, ok := strings.CutSuffix(rest, ")")
	if !ok {
		return types.Product{}, types.Errorf(types.ErrFormat, "missing trailing ')' in %q", line)
	}

	kind, err := types.ParseKind(token)
	if err != nil {
		return types.Product{}, err
	}

	values := strings.Split(interior, fieldSep)
	if len(values) != 4 {
		return types.Product{}, types.Errorf(types.ErrFormat, "want 4 values, got %d in %q", len(values), line)
	}

	date, err := time.Parse(types.DateLayout, values[0])
	if err != nil {
		return types.Product{}, types.Errorf(types.ErrFormat, "supply date %q: want dd.mm.yyyy", values[0])
	}

	name, err := unquote(values[1])
	if err != nil {
		return types.Product{}, err
	}

	amount, err := strconv.Atoi(values[2])
	if err != nil {
		return types.Product{}, types.Errorf(types.ErrFormat, "amount %q is not an integer", values[2])
	}

	switch kind {
	case types.KindBelt:
		return types.NewBelt(date, name, amount, strings.EqualFold(values[3], "true")), nil
	case types.KindCake, types.KindCup:
		measure, err := strconv.Atoi(values[3])
		if err != nil {
			return types.Product{}, types.Errorf(types.ErrFormat, "%s special %q is not an integer", kind, values[3])
		}
		if kind == types.KindCake {
			return types.NewCake(date, name, amount, measure), nil
		}
		return types.NewCup(date, name, amount, measure), nil
	}
	return types.Product{}, types.Errorf(types.ErrUnknownType, "%q", token)
}

// unquote drops exactly one leading and one trailing character.
func unquote(s string) (string, error) {
	if len(s) < 2 {
		return "", types.Errorf(types.ErrFormat, "name %q is not quoted", s)
	}
	return s[1 : len(s)-1], nil
}
