package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tmorland/facegen/internal/portrait"
)

const DefaultMemoryCapacity = 100

// Memory is a bounded in-memory cache with LRU eviction, for batch runs
// that revisit identical parameters within one process.
type Memory struct {
	entries *lru.Cache[string, *portrait.Result]
}

func NewMemory(capacity int) (*Memory, error) {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	entries, err := lru.New[string, *portrait.Result](capacity)
	if err != nil {
		return nil, err
	}
	return &Memory{entries: entries}, nil
}

// Key hashes the delimited concatenation of all parameters. Order matters;
// a nil seed encodes differently from any concrete seed value.
func (*Memory) Key(p Params) string {
	seed := "none"
	if p.Seed != nil {
		seed = strconv.FormatInt(*p.Seed, 10)
	}
	data := fmt.Sprintf("%s|%s|%s|%d|%s", p.Prompt, p.Negative, p.Model, p.Size, seed)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

func (m *Memory) Get(_ context.Context, key string) (*portrait.Result, bool) {
	return m.entries.Get(key)
}

func (m *Memory) Put(_ context.Context, key string, result *portrait.Result) {
	m.entries.Add(key, result)
}

func (m *Memory) Clear() error {
	m.entries.Purge()
	return nil
}
