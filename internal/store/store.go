package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
)

type WriteParams struct {
	Name        string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// Writer is where finished portraits go. The generation pipeline never
// writes files itself.
type Writer interface {
	Write(context.Context, WriteParams) error
}

type FileWriter struct {
	Dir string
}

func (w *FileWriter) Write(ctx context.Context, params WriteParams) error {
	log := logr.FromContextOrDiscard(ctx).WithName("file")
	log.Info("writing", "file", params.Name, "dir", w.Dir)

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.Dir, params.Name), params.Data, 0600)
}
