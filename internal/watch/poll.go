package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// fingerprint summarizes the observable state of a target. Two equal
// fingerprints mean no change was seen between polls.
func fingerprint(t *target) string {
	if !t.dir {
		return statFingerprint(t.path)
	}

	entries, err := os.ReadDir(t.path)
	if err != nil {
		return "missing"
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if t.match != nil && !t.match(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(statFingerprint(filepath.Join(t.path, name)))
		sb.WriteByte(';')
	}
	return sb.String()
}

func statFingerprint(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "missing"
	}
	return fmt.Sprintf("%d:%d", info.ModTime().UnixNano(), info.Size())
}
