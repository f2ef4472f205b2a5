package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExporterWritesIntoDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := FileExporter{Dir: dir}.Export("Keyword: a\n", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Keyword: a\n", string(data))
}
