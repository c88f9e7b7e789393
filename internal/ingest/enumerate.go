package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Enumerate lists the regular files in dir whose extension matches ext, in directory
// listing order. The extension match ignores case and a missing leading dot.
// An empty directory yields an empty list. A missing directory yields an error
// wrapping fs.ErrNotExist.
func Enumerate(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	want := normalizeExt(ext)
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if want != "" && normalizeExt(filepath.Ext(entry.Name())) != want {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
