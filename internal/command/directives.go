// ADD, REM and SAVE handlers.
package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/stockroom/internal/codec"
	"github.com/mesh-intelligence/stockroom/internal/condition"
	"github.com/mesh-intelligence/stockroom/internal/manager"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// addFields is the number of ;-separated values an ADD directive needs:
// type;date;name;amount;special.
const addFields = 5

// ParseAdd builds a product from the argument of an ADD directive. Values
// beyond the fifth are ignored.
func ParseAdd(arg string) (types.Product, error) {
	parts := strings.Split(arg, ";")
	if len(parts) < addFields {
		return types.Product{}, types.Errorf(types.ErrCommandFormat,
			"ADD needs type;date;name;amount;special, got %d field(s)", len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return ParseProduct(parts[0], parts[1], parts[2], parts[3], parts[4])
}

// ParseProduct coerces the five textual product values: a type token, a
// dd.mm.yyyy date, a name, a non-negative amount and the special value
// (True/False for Belt, an integer for Cake and Cup). Failures wrap
// types.ErrCommandFormat.
func ParseProduct(kindText, dateText, name, amountText, specialText string) (types.Product, error) {
	kind, err := types.ParseKind(kindText)
	if err != nil {
		return types.Product{}, fmt.Errorf("%w: %w", types.ErrCommandFormat, err)
	}

	date, err := time.Parse(types.DateLayout, dateText)
	if err != nil {
		return types.Product{}, types.Errorf(types.ErrCommandFormat, "supply date %q: want dd.mm.yyyy", dateText)
	}

	if name == "" {
		return types.Product{}, fmt.Errorf("%w: %w", types.ErrCommandFormat, types.ErrEmptyName)
	}

	amount, err := strconv.Atoi(amountText)
	if err != nil || amount < 0 {
		return types.Product{}, types.Errorf(types.ErrCommandFormat, "amount %q is not a non-negative integer", amountText)
	}

	if kind == types.KindBelt {
		metal, err := parseMetal(specialText)
		if err != nil {
			return types.Product{}, err
		}
		return types.NewBelt(date, name, amount, metal), nil
	}

	measure, err := strconv.Atoi(specialText)
	if err != nil {
		return types.Product{}, types.Errorf(types.ErrCommandFormat, "%s special %q is not an integer", kind, specialText)
	}
	if kind == types.KindCake {
		return types.NewCake(date, name, amount, measure), nil
	}
	return types.NewCup(date, name, amount, measure), nil
}

// parseMetal accepts True/False in any case plus the strconv.ParseBool
// spellings.
func parseMetal(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, types.Errorf(types.ErrCommandFormat, "Belt special %q is not True or False", s)
	}
	return b, nil
}

// Apply runs the manager removal matching c and returns how many products
// were removed.
func Apply(m *manager.Manager, c condition.Condition) (int, error) {
	switch c := c.(type) {
	case condition.Range:
		return m.RemoveByRange(c.Field, c.Min, c.Max)
	case condition.Equality:
		return m.RemoveEqual(c.Field, c.Literal, c.Equal), nil
	case condition.Inequality:
		return m.RemoveByInequality(c.Field, c.Literal, c.GreaterOrEqual)
	default:
		return 0, types.Errorf(types.ErrConditionSyntax, "unsupported condition %T", c)
	}
}

func (p *Processor) remove(arg string) (int, error) {
	c, err := condition.Parse(arg)
	if err != nil {
		return 0, err
	}
	return Apply(p.manager, c)
}

// save writes a snapshot of the current products to path, replacing it.
func (p *Processor) save(path string) error {
	if path == "" {
		return types.Errorf(types.ErrCommandFormat, "SAVE needs a file path")
	}
	if err := codec.Save(path, p.manager.Products()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// newRunID returns a UUID v7 for tagging a run's log lines.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
