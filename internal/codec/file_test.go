package codec

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func sampleProducts() []types.Product {
	return []types.Product{
		types.NewBelt(day, "Belt", 10, true),
		types.NewCake(day, "Cake", 5, 15),
		types.NewCup(day, "Cup", 20, 250),
	}
}

const sampleFile = `Belt(01.01.2023, "Belt", 10, True)
Cake(01.01.2023, "Cake", 5, 15)
Cup(01.01.2023, "Cup", 20, 250)
`

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleProducts()))
	assert.Equal(t, sampleFile, buf.String())
}

func TestRead(t *testing.T) {
	t.Run("skips blank lines", func(t *testing.T) {
		got, err := Read(strings.NewReader("\n" + sampleFile + "\n   \n"))
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, p := range sampleProducts() {
			assert.True(t, p.Equal(got[i]), "product %d", i)
		}
	})

	t.Run("reports the failing line", func(t *testing.T) {
		_, err := Read(strings.NewReader(sampleFile + "Mug(01.01.2023, \"Mug\", 1, 1)\n"))
		require.Error(t, err)

		var lineErr *LineError
		require.ErrorAs(t, err, &lineErr)
		assert.Equal(t, 4, lineErr.Line)
		assert.Contains(t, lineErr.Text, "Mug")
		assert.ErrorIs(t, err, types.ErrUnknownType)
	})
}

func TestReadLongLines(t *testing.T) {
	long := strings.Repeat("x", 70_000)
	input := sampleFile + `Cup(01.01.2023, "` + long + `", 1, 2)` + "\n" + `Belt(02.01.2023, "Last", 3, False)`

	got, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, long, got[3].Name())
	assert.Equal(t, "Last", got[4].Name())
}

func TestReadCRLF(t *testing.T) {
	got, err := Read(strings.NewReader(strings.ReplaceAll(sampleFile, "\n", "\r\n")))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, sampleProducts()[1].Equal(got[1]))
}

func TestLineReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single line without newline", "a", []string{"a"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
		{"carriage returns dropped", "a\r\nb\r\n", []string{"a", "b"}},
		{"longer than a scanner buffer", strings.Repeat("y", 100_000) + "\nz", []string{strings.Repeat("y", 100_000), "z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLineReader(strings.NewReader(tt.input))
			var got []string
			for lr.Scan() {
				got = append(got, lr.Text())
			}
			require.NoError(t, lr.Err())
			assert.Equal(t, tt.want, got)
			assert.False(t, lr.Scan(), "reader stays exhausted")
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.txt")

	require.NoError(t, Save(path, sampleProducts()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleFile, string(data))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, sampleProducts()[2].Equal(got[2]))
}

func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "products.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer than the new\n"), 0o644))

	require.NoError(t, Save(path, sampleProducts()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Belt(01.01.2023, \"Belt\", 10, True)\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, Save(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveMissingDirectory(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "nope", "products.txt"), sampleProducts())
	assert.Error(t, err)
}

func TestSaveFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	t.Run("new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		require.NoError(t, Save(path, sampleProducts()))

		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultFileMode, fi.Mode().Perm())
	})

	t.Run("existing file keeps its mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o600))
		require.NoError(t, os.Chmod(path, 0o640))

		require.NoError(t, Save(path, sampleProducts()[:1]))

		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), fi.Mode().Perm())
	})
}
