package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/tmorland/facegen/internal/portrait"
)

// Disk persists results under root/<first 2 hex chars of key>/, two files
// per entry: <key>.json metadata and <key>.png payload. The layout is
// stable across runs and shared by anything pointing at the same root.
type Disk struct {
	root string
}

func NewDisk(root string) (*Disk, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		root = filepath.Join(home, ".facegen_cache")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Disk{root: root}, nil
}

type diskMeta struct {
	Name string `json:"name"`
	Seed *int64 `json:"seed"`
}

// Key hashes a canonical sorted-field JSON encoding of the parameters, so
// the key never depends on encoding order.
func (*Disk) Key(p Params) string {
	fields := map[string]any{
		"prompt":   p.Prompt,
		"negative": p.Negative,
		"model":    p.Model,
		"size":     p.Size,
		"seed":     nil,
	}
	if p.Seed != nil {
		fields["seed"] = *p.Seed
	}
	// Map keys marshal in sorted order.
	data, _ := json.Marshal(fields)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (d *Disk) paths(key string) (meta, payload string) {
	dir := filepath.Join(d.root, key[:2])
	return filepath.Join(dir, key+".json"), filepath.Join(dir, key+".png")
}

// Get treats every failure mode as a miss: missing or truncated files,
// unreadable metadata, a payload without its companion.
func (d *Disk) Get(_ context.Context, key string) (*portrait.Result, bool) {
	// A key too short to shard can never have been written.
	if len(key) < 2 {
		return nil, false
	}
	metaPath, payloadPath := d.paths(key)

	metaData, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, false
	}
	var meta diskMeta
	if err := json.Unmarshal(metaData, &meta); err != nil || meta.Name == "" {
		return nil, false
	}
	png, err := os.ReadFile(payloadPath)
	if err != nil || len(png) == 0 {
		return nil, false
	}
	return portrait.New(meta.Name, png, meta.Seed), true
}

// Put writes the payload first and the metadata last, each through an
// atomic rename, so a reader never observes metadata without its payload.
// Write failures are logged and swallowed; they must not fail generation.
func (d *Disk) Put(ctx context.Context, key string, result *portrait.Result) {
	if len(key) < 2 {
		return
	}
	log := logr.FromContextOrDiscard(ctx).WithName("cache").WithValues("key", key)

	metaPath, payloadPath := d.paths(key)
	if err := os.MkdirAll(filepath.Dir(metaPath), 0o755); err != nil {
		log.Error(err, "cache write skipped")
		return
	}

	metaData, err := json.Marshal(diskMeta{Name: result.Name, Seed: result.Seed})
	if err != nil {
		log.Error(err, "cache write skipped")
		return
	}
	if err := writeAtomic(payloadPath, result.PNG); err != nil {
		log.Error(err, "cache write skipped")
		return
	}
	if err := writeAtomic(metaPath, metaData); err != nil {
		log.Error(err, "cache write skipped")
	}
}

func (d *Disk) Clear() error {
	if err := os.RemoveAll(d.root); err != nil {
		return err
	}
	return os.MkdirAll(d.root, 0o755)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
