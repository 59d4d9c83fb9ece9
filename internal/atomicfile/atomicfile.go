// Package atomicfile replaces files with the temp-file, fsync, rename
// pattern so a reader never sees a half-written file.
package atomicfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// rename is swapped in tests to simulate a failing medium.
var rename = os.Rename

// Write streams content produced by fill into a temp file next to path and
// renames it over path. On any error path keeps its previous content and
// the temp file is removed.
func Write(path, pattern string, fill func(w io.Writer) error) error {
	return Build(path, pattern, func(tmpName string) error {
		f, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("opening temp file: %w", err)
		}
		w := bufio.NewWriter(f)
		if err := fill(w); err != nil {
			f.Close()
			return err
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return fmt.Errorf("flushing buffer: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing temp file: %w", err)
		}
		return nil
	})
}

// Build creates an empty temp file next to path, lets fill produce the
// complete file at that name, syncs it, and renames it over path. Use it
// when the producer needs a path rather than a writer.
func Build(path, pattern string, fill func(tmpName string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := fill(tmpName); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := syncFile(tmpName); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func syncFile(name string) error {
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
