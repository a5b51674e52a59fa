package media

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ListEntry is one slide named by a slide list file.
type ListEntry struct {
	Path  string
	Title string
}

// ParseList parses a .m3u/.m3u8/.pls file naming slides, in order.
// Relative entries are resolved against the list file directory. Titles come
// from #EXTINF lines (m3u) or TitleN keys (pls).
func ParseList(path string) ([]ListEntry, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsListExt(ext) {
		return nil, fmt.Errorf("unsupported slide list format %s", ext)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading slide list: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("slide list is not valid UTF-8")
	}

	text := strings.TrimPrefix(string(data), "\uFEFF")
	baseDir := filepath.Dir(abs)
	scanner := bufio.NewScanner(strings.NewReader(text))

	if ext == ".pls" {
		return parsePLS(scanner, baseDir), nil
	}
	return parseM3U(scanner, baseDir), nil
}

// FilterViewable keeps entries that exist, are regular files, and have a
// supported slide extension. Paths are made absolute.
func FilterViewable(entries []ListEntry) []ListEntry {
	out := make([]ListEntry, 0, len(entries))
	for _, e := range entries {
		info, err := os.Stat(e.Path)
		if err != nil || info.IsDir() {
			continue
		}
		if !IsSupportedExt(filepath.Ext(e.Path)) {
			continue
		}
		if abs, err := filepath.Abs(e.Path); err == nil {
			e.Path = abs
		}
		out = append(out, e)
	}
	return out
}

func parseM3U(scanner *bufio.Scanner, baseDir string) []ListEntry {
	var entries []ListEntry
	pendingTitle := ""
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			if comma := strings.Index(line, ","); comma >= 0 {
				pendingTitle = strings.TrimSpace(line[comma+1:])
			}
			continue
		case strings.HasPrefix(line, "#"):
			continue
		}
		entries = append(entries, ListEntry{
			Path:  resolveEntryPath(strings.Trim(line, `"`), baseDir),
			Title: pendingTitle,
		})
		pendingTitle = ""
	}
	return entries
}

func parsePLS(scanner *bufio.Scanner, baseDir string) []ListEntry {
	files := map[int]string{}
	titles := map[int]string{}
	var order []int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		eq := strings.Index(line, "=")
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		if val == "" {
			continue
		}

		if n, ok := plsKeyIndex(key, "File"); ok {
			if _, seen := files[n]; !seen {
				order = append(order, n)
			}
			files[n] = resolveEntryPath(val, baseDir)
		} else if n, ok := plsKeyIndex(key, "Title"); ok {
			titles[n] = val
		}
	}

	entries := make([]ListEntry, 0, len(order))
	for _, n := range order {
		entries = append(entries, ListEntry{Path: files[n], Title: titles[n]})
	}
	return entries
}

// plsKeyIndex parses keys like File3 (case-insensitive prefix).
func plsKeyIndex(key, prefix string) (int, bool) {
	if len(key) <= len(prefix) || !strings.EqualFold(key[:len(prefix)], prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(key[len(prefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func resolveEntryPath(raw, baseDir string) string {
	p := filepath.Clean(raw)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
