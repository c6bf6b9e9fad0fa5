package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "portraits")
	w := &FileWriter{Dir: dir}

	err := w.Write(context.Background(), WriteParams{
		Name:        "mira_icon.png",
		Data:        []byte("png-bytes"),
		ContentType: "image/png",
	})
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "mira_icon.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), written)
}

func TestFileWriterOverwrites(t *testing.T) {
	dir := t.TempDir()
	w := &FileWriter{Dir: dir}
	ctx := context.Background()

	require.NoError(t, w.Write(ctx, WriteParams{Name: "a.png", Data: []byte("old")}))
	require.NoError(t, w.Write(ctx, WriteParams{Name: "a.png", Data: []byte("new")}))

	written, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), written)
}
