package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

var day = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFormat(t *testing.T) {
	assert.Equal(t, `Belt(01.01.2023, "Belt", 10, True)`, Format(types.NewBelt(day, "Belt", 10, true)))
	assert.Equal(t, `Cake(01.01.2023, "Cake", 5, 15)`, Format(types.NewCake(day, "Cake", 5, 15)))
	assert.Equal(t, `Cup(01.01.2023, "Cup", 20, 250)`, Format(types.NewCup(day, "Cup", 20, 250)))
	assert.Equal(t, `Belt(31.12.2024, "Plain", 0, False)`,
		Format(types.NewBelt(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "Plain", 0, false)))
}

func TestRoundTrip(t *testing.T) {
	products := []types.Product{
		types.NewBelt(day, "Belt", 10, true),
		types.NewBelt(day, "Cloth belt", 3, false),
		types.NewCake(day, "Cake", 5, 15),
		types.NewCup(day, "Cup", 20, 250),
		types.NewCup(day, "Big \"mug\"", 1000000, 3000),
	}

	for _, p := range products {
		t.Run(Format(p), func(t *testing.T) {
			got, err := Parse(Format(p))
			require.NoError(t, err)
			assert.True(t, p.Equal(got), "round trip changed %s into %s", Format(p), Format(got))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    types.Product
		wantErr error
	}{
		{
			name: "belt lower case flag",
			line: `Belt(01.01.2023, "Belt", 10, true)`,
			want: types.NewBelt(day, "Belt", 10, true),
		},
		{
			name: "belt any other flag is false",
			line: `Belt(01.01.2023, "Belt", 10, yes)`,
			want: types.NewBelt(day, "Belt", 10, false),
		},
		{
			name: "surrounding whitespace",
			line: "  Cake(01.01.2023, \"Cake\", 5, 15)\r\n",
			want: types.NewCake(day, "Cake", 5, 15),
		},
		{
			name:    "unknown type",
			line:    `Mug(01.01.2023, "Mug", 1, 1)`,
			wantErr: types.ErrUnknownType,
		},
		{
			name:    "no parenthesis",
			line:    `Cup 01.01.2023`,
			wantErr: types.ErrFormat,
		},
		{
			name:    "no closing parenthesis",
			line:    `Cup(01.01.2023, "Cup", 20, 250`,
			wantErr: types.ErrFormat,
		},
		{
			name:    "iso date",
			line:    `Cup(2023-01-01, "Cup", 20, 250)`,
			wantErr: types.ErrFormat,
		},
		{
			name:    "non-numeric amount",
			line:    `Cup(01.01.2023, "Cup", many, 250)`,
			wantErr: types.ErrFormat,
		},
		{
			name:    "non-numeric volume",
			line:    `Cup(01.01.2023, "Cup", 20, big)`,
			wantErr: types.ErrFormat,
		},
		{
			name:    "name containing separator mis-parses",
			line:    `Cake(01.01.2023, "Sugar, spice", 5, 15)`,
			wantErr: types.ErrFormat,
		},
		{
			name:    "too few values",
			line:    `Cake(01.01.2023, "Cake", 5)`,
			wantErr: types.ErrFormat,
		},
		{
			name:    "unquoted single character name",
			line:    `Cake(01.01.2023, x, 5, 15)`,
			wantErr: types.ErrFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", Format(got))
		})
	}
}
