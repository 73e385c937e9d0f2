package stockroom

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seeded() *Inventory {
	return New(
		types.NewBelt(day(2023, 1, 1), "Belt", 10, true),
		types.NewCake(day(2023, 1, 1), "Cake", 5, 15),
		types.NewCup(day(2023, 1, 1), "Cup", 20, 250),
	)
}

func names(inv *Inventory) []string {
	var out []string
	for _, p := range inv.Products() {
		out = append(out, p.Name())
	}
	return out
}

func TestRemove(t *testing.T) {
	tests := []struct {
		cond    string
		removed int
		left    []string
	}{
		{"10 <= amount <= 20", 2, []string{"Cake"}},
		{"special > 100", 1, []string{"Belt", "Cake"}},
		{"name != Cake", 2, []string{"Cake"}},
		{"supplyDate >= 2023-01-01", 3, nil},
		{"special = True", 1, []string{"Cake", "Cup"}},
	}
	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			inv := seeded()
			n, err := inv.Remove(tt.cond)
			require.NoError(t, err)
			assert.Equal(t, tt.removed, n)
			assert.Equal(t, tt.left, names(inv))
		})
	}
}

func TestRemoveRejectsBadCondition(t *testing.T) {
	inv := seeded()

	_, err := inv.Remove("amount ~ 10")
	assert.ErrorIs(t, err, types.ErrConditionSyntax)

	_, err = inv.Remove("20 <= amount <= 10")
	assert.ErrorIs(t, err, types.ErrRangeOrder)

	assert.Equal(t, 3, inv.Len())
}

func TestAddDelete(t *testing.T) {
	inv := New()
	inv.Add(types.NewCup(day(2023, 2, 1), "Mug", 1, 300))
	inv.Add(types.NewCake(day(2023, 2, 2), "Tart", 2, 5))

	assert.False(t, inv.Delete(2))
	assert.True(t, inv.Delete(0))
	assert.Equal(t, []string{"Tart"}, names(inv))
}

func TestOpenSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.txt")
	require.NoError(t, seeded().Save(path))

	inv, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Belt", "Cake", "Cup"}, names(inv))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Belt(01.01.2023, \"Belt\", 10, True)\nCake(01.01.2023, \"Cake\", 5, 15)\nCup(01.01.2023, \"Cup\", 20, 250)\n", string(data))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	inv := seeded()
	sum, err := inv.Run(strings.NewReader("ADD Cup;02.01.2023;Jug;1;900\nREM amount <= 5\n"), nil, false)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Added)
	assert.Equal(t, 2, sum.Removed)
	assert.Equal(t, []string{"Belt", "Cup"}, names(inv))
}

func TestRunContinueOnError(t *testing.T) {
	inv := seeded()
	_, err := inv.Run(strings.NewReader("REM amount ~ 1\nREM name = Belt\n"), nil, true)

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 1, lineErr.Line)
	assert.Equal(t, []string{"Cake", "Cup"}, names(inv))
}

func TestStats(t *testing.T) {
	stats, err := seeded().Stats()
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, KindSummary{Kind: types.KindBelt, Count: 1, TotalAmount: 10, Metal: 1}, stats[0])
	assert.Equal(t, KindSummary{Kind: types.KindCup, Count: 1, TotalAmount: 20, MinSpecial: 250, MaxSpecial: 250, SpecialValid: true}, stats[2])
}
