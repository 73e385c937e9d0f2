package types

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every failure surfaced by the codec, the condition parser,
// the manager and the command processor wraps exactly one of these.
var (
	ErrFormat          = errors.New("malformed product line")
	ErrUnknownType     = errors.New("unknown product type")
	ErrCommandFormat   = errors.New("malformed command")
	ErrConditionSyntax = errors.New("invalid condition")
	ErrRangeOrder      = errors.New("range lower bound exceeds upper bound")
)

// Presentation errors.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrEmptyName       = errors.New("product name cannot be empty")
)

// errorKinds names the taxonomy in match priority order. An ADD with an
// unknown type wraps both ErrCommandFormat and ErrUnknownType and is reported
// as a command format error.
var errorKinds = []struct {
	err  error
	name string
}{
	{ErrRangeOrder, "RangeOrderError"},
	{ErrConditionSyntax, "ConditionSyntaxError"},
	{ErrCommandFormat, "CommandFormatError"},
	{ErrUnknownType, "UnknownTypeError"},
	{ErrFormat, "FormatError"},
	{ErrIndexOutOfRange, "IndexError"},
	{ErrEmptyName, "NameError"},
}

// Errorf wraps sentinel with a formatted detail: "<sentinel>: <detail>".
func Errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

// KindOf names the taxonomy entry err belongs to, for display by a shell.
// Returns "Error" when err wraps none of the sentinels.
func KindOf(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "Error"
}
