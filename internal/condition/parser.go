package condition

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// dateLayouts are the accepted spellings of a date literal.
var dateLayouts = []string{"2006-01-02", types.DateLayout}

// token is a whitespace-delimited word and its byte offset in the source.
type token struct {
	text string
	pos  int
}

// rule tries one grammar alternative. matched reports whether the text has
// the alternative's shape; once matched, err is final and later rules are
// not tried.
type rule func(src string, toks []token) (c Condition, matched bool, err error)

// rules in priority order. Range comes first because the other forms' value
// capture would swallow its text.
var rules = []rule{parseRange, parseEquality, parseInequality}

// Parse parses condition text. Failures wrap types.ErrConditionSyntax, or
// types.ErrRangeOrder when a normalized range is empty.
func Parse(text string) (Condition, error) {
	src := strings.TrimSpace(text)
	toks := tokenize(src)
	for _, r := range rules {
		c, matched, err := r(src, toks)
		if matched {
			return c, err
		}
	}
	return nil, types.Errorf(types.ErrConditionSyntax, "unsupported condition %q", text)
}

func tokenize(src string) []token {
	var toks []token
	start := -1
	for i, r := range src {
		if unicode.IsSpace(r) {
			if start >= 0 {
				toks = append(toks, token{text: src[start:i], pos: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, token{text: src[start:], pos: start})
	}
	return toks
}

// restFrom returns the raw source text starting at token i.
func restFrom(src string, toks []token, i int) string {
	return src[toks[i].pos:]
}

func isLessOp(s string) bool { return s == "<" || s == "<=" }

func isOrderOp(s string) bool { return isLessOp(s) || s == ">" || s == ">=" }

func orderedField(s string) (types.Field, bool) {
	f, ok := types.ParseField(s)
	return f, ok && f.Ordered()
}

// parseRange matches "lo op field op hi". The lower literal is greedy: the
// last operator-field-operator triple wins.
func parseRange(src string, toks []token) (Condition, bool, error) {
	for k := len(toks) - 4; k >= 1; k-- {
		if !isLessOp(toks[k].text) || !isLessOp(toks[k+2].text) {
			continue
		}
		field, ok := orderedField(toks[k+1].text)
		if !ok {
			continue
		}

		loText := strings.TrimSpace(src[:toks[k].pos])
		hiText := restFrom(src, toks, k+3)

		lo, err := parseLiteral(field, loText)
		if err != nil {
			return nil, true, err
		}
		hi, err := parseLiteral(field, hiText)
		if err != nil {
			return nil, true, err
		}
		if toks[k].text == "<" {
			if lo, ok = lo.Step(1); !ok {
				return nil, true, types.Errorf(types.ErrRangeOrder, "nothing lies above %s", lo)
			}
		}
		if toks[k+2].text == "<" {
			if hi, ok = hi.Step(-1); !ok {
				return nil, true, types.Errorf(types.ErrRangeOrder, "nothing lies below %s", hi)
			}
		}
		if lo.Compare(hi) > 0 {
			return nil, true, types.Errorf(types.ErrRangeOrder, "%s > %s", lo, hi)
		}
		return Range{Field: field, Min: lo, Max: hi}, true, nil
	}
	return nil, false, nil
}

// parseEquality matches "field = value" and "field != value". The value is
// the raw remaining text and is never coerced.
func parseEquality(src string, toks []token) (Condition, bool, error) {
	if len(toks) < 3 {
		return nil, false, nil
	}
	field, ok := types.ParseField(toks[0].text)
	if !ok {
		return nil, false, nil
	}
	op := toks[1].text
	if op != "=" && op != "!=" {
		return nil, false, nil
	}
	return Equality{Field: field, Literal: restFrom(src, toks, 2), Equal: op == "="}, true, nil
}

// parseInequality matches "field op value" with op in <, <=, >, >=.
func parseInequality(src string, toks []token) (Condition, bool, error) {
	if len(toks) < 3 {
		return nil, false, nil
	}
	field, ok := orderedField(toks[0].text)
	if !ok || !isOrderOp(toks[1].text) {
		return nil, false, nil
	}

	value, err := parseLiteral(field, restFrom(src, toks, 2))
	if err != nil {
		return nil, true, err
	}

	op := toks[1].text
	dir := 0
	switch op {
	case "<":
		dir = -1
	case ">":
		dir = 1
	}
	if dir != 0 {
		if value, ok = value.Step(dir); !ok {
			return nil, true, types.Errorf(types.ErrConditionSyntax, "%s %s %s: literal is at the end of the integer range", field, op, value)
		}
	}
	return Inequality{Field: field, Literal: value, GreaterOrEqual: op[0] == '>'}, true, nil
}

// parseLiteral coerces text to the field's literal type: a date for
// supplyDate, an integer otherwise.
func parseLiteral(field types.Field, text string) (types.Bound, error) {
	if field.Dated() {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return types.DateBound(t), nil
			}
		}
		return types.Bound{}, types.Errorf(types.ErrConditionSyntax, "%q is not a date (want yyyy-mm-dd or dd.mm.yyyy)", text)
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return types.Bound{}, types.Errorf(types.ErrConditionSyntax, "%q is not an integer", text)
	}
	return types.IntBound(n), nil
}
