// This file provides product-file read/write helpers with atomic persistence.
package codec

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// DefaultFileMode is the permission set given to product files Save creates.
const DefaultFileMode os.FileMode = 0o644

// LineError reports a product line that failed to parse.
type LineError struct {
	Line int    // 1-based line number.
	Text string // Raw line text.
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Read parses one product per line from r. Blank lines are skipped. The first
// malformed line stops the read with a *LineError.
func Read(r io.Reader) ([]types.Product, error) {
	var products []types.Product
	scanner := NewLineReader(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		p, err := Parse(text)
		if err != nil {
			return nil, &LineError{Line: lineNum, Text: text, Err: err}
		}
		products = append(products, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning products: %w", err)
	}
	return products, nil
}

// Write renders one product per line, each newline-terminated.
func Write(w io.Writer, products []types.Product) error {
	bw := bufio.NewWriter(w)
	for _, p := range products {
		if _, err := bw.WriteString(Format(p)); err != nil {
			return fmt.Errorf("writing product: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	return nil
}

// Load reads a product file.
func Load(path string) ([]types.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	products, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return products, nil
}

// Save atomically replaces path with the given products using the temp-file,
// fsync, rename pattern. The temp file lives next to path so the rename stays
// on one filesystem. An existing file keeps its permission bits; a new one is
// created with DefaultFileMode.
func Save(path string, products []types.Product) error {
	mode := DefaultFileMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".products-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting mode on temp file: %w", err)
	}
	if err := Write(tmp, products); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
