package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmorland/facegen/internal/spec"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "session.json", `{
		"world": {"context": "a desert caravan", "style": "gouache", "negative": "blurry"},
		"characters": [{"name": "Khellan", "role": "guide"}],
		"variants": [{"name": "icon", "size": 64}]
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a desert caravan", cfg.World.Context)
	require.Len(t, cfg.Characters, 1)
	assert.Equal(t, "Khellan", cfg.Characters[0].Name)
	require.Len(t, cfg.Variants, 1)
	assert.Equal(t, 64, cfg.Variants[0].Size)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeFile(t, t.TempDir(), "broken.json", "{not json")
	_, err = Load(path)
	assert.ErrorContains(t, err, "parse")
}

func TestLoadCharactersFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "khellan.json", `{"name": "Khellan", "role": "guide"}`)

	characters, err := LoadCharacters(path)
	require.NoError(t, err)
	require.Len(t, characters, 1)
	assert.Equal(t, "Khellan", characters[0].Name)
}

func TestLoadCharactersDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_mira.json", `{"name": "Mira"}`)
	writeFile(t, dir, "a_khellan.json", `{"name": "Khellan"}`)
	writeFile(t, dir, "notes.txt", "ignored")

	characters, err := LoadCharacters(dir)
	require.NoError(t, err)
	require.Len(t, characters, 2)
	// Files load in name order, not modification order.
	assert.Equal(t, "Khellan", characters[0].Name)
	assert.Equal(t, "Mira", characters[1].Name)
}

func TestSpecs(t *testing.T) {
	cfg := Config{
		World:      World{Context: "ctx", Style: "style", Negative: "neg"},
		Characters: []Character{{Name: "Mira", Role: "pilot", Description: "desc"}},
		Variants: []Variant{
			{Name: "icon", Size: 64},
			{Name: "bust"},
		},
	}

	world, characters, variants, err := cfg.Specs()
	require.NoError(t, err)
	assert.Equal(t, "ctx", world.Context)
	require.Len(t, characters, 1)
	require.Len(t, variants, 2)
	assert.Equal(t, 64, variants[0].Size)
	assert.Equal(t, defaultVariantSize, variants[1].Size, "missing size takes the default")
}

func TestSpecsValidation(t *testing.T) {
	base := Config{
		World:    World{Context: "ctx", Style: "style"},
		Variants: []Variant{{Name: "icon", Size: 64}},
	}

	t.Run("blank world context", func(t *testing.T) {
		cfg := base
		cfg.World.Context = " "
		_, _, _, err := cfg.Specs()
		assert.ErrorIs(t, err, spec.ErrInvalid)
	})

	t.Run("blank character name", func(t *testing.T) {
		cfg := base
		cfg.Characters = []Character{{Name: ""}}
		_, _, _, err := cfg.Specs()
		assert.ErrorIs(t, err, spec.ErrInvalid)
	})

	t.Run("oversized variant", func(t *testing.T) {
		cfg := base
		cfg.Variants = []Variant{{Name: "huge", Size: 2048}}
		_, _, _, err := cfg.Specs()
		assert.ErrorIs(t, err, spec.ErrInvalid)
	})
}

func TestSampleRoundtrips(t *testing.T) {
	data, err := SampleJSON()
	require.NoError(t, err)

	var cfg Config
	require.NoError(t, json.Unmarshal(data, &cfg))

	_, characters, variants, err := cfg.Specs()
	require.NoError(t, err)
	assert.Len(t, characters, 2)
	assert.Len(t, variants, 3)
}
