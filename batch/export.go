package batch

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Exporter persists one generated post locally and returns where it
// landed. Export failures are warnings, never batch failures.
type Exporter interface {
	Export(content, filename string) (string, error)
}

// FileExporter writes posts into a directory, creating it on first use.
type FileExporter struct {
	Dir string
}

func (f FileExporter) Export(content, filename string) (string, error) {
	dir := f.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ExportFilename builds "<keyword>-<timestamp>.txt" with characters
// unsafe in filenames replaced.
func ExportFilename(keyword string, now time.Time) string {
	ts := now.UTC().Format("2006-01-02T15-04-05")
	return sanitizeFilename(keyword) + "-" + ts + ".txt"
}

func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "post"
	}
	return b.String()
}
