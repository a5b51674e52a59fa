package media

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scan returns all supported slide files directly inside dir, sorted
// alphabetically (case-insensitive), as absolute paths.
func Scan(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if IsSupportedExt(filepath.Ext(e.Name())) {
			files = append(files, filepath.Join(abs, e.Name()))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, nil
}
