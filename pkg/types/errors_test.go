package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	err := Errorf(ErrFormat, "line %d", 3)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, "malformed product line: line 3", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"format", Errorf(ErrFormat, "x"), "FormatError"},
		{"unknown type", Errorf(ErrUnknownType, "x"), "UnknownTypeError"},
		{"command wrapping unknown type", fmt.Errorf("%w: %w", ErrCommandFormat, ErrUnknownType), "CommandFormatError"},
		{"condition syntax", Errorf(ErrConditionSyntax, "x"), "ConditionSyntaxError"},
		{"range order", Errorf(ErrRangeOrder, "x"), "RangeOrderError"},
		{"foreign", errors.New("boom"), "Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
