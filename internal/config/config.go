package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
	"github.com/tmorland/facegen/internal/spec"
)

const defaultVariantSize = 256

// Config is the JSON session file: one world, the variants to produce and
// optionally the characters (which may instead come from separate files).
type Config struct {
	World      World       `json:"world"`
	Characters []Character `json:"characters,omitempty"`
	Variants   []Variant   `json:"variants"`
}

type World struct {
	Context  string `json:"context"`
	Style    string `json:"style"`
	Negative string `json:"negative,omitempty"`
}

type Character struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Description string `json:"description,omitempty"`
}

type Variant struct {
	Name        string `json:"name"`
	Size        int    `json:"size,omitempty"`
	PromptFrame string `json:"prompt_frame,omitempty"`
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadCharacters reads one character JSON file, or every *.json in a
// directory in name order.
func LoadCharacters(path string) ([]Character, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	files := []string{path}
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.json"))
		if err != nil {
			return nil, err
		}
		sort.Strings(files)
	}

	characters := make([]Character, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var character Character
		if err := json.Unmarshal(data, &character); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		characters = append(characters, character)
	}
	return characters, nil
}

// Specs validates the raw config into value records, defaulting a missing
// variant size.
func (c Config) Specs() (spec.World, []spec.Character, []spec.Variant, error) {
	world, err := spec.NewWorld(c.World.Context, c.World.Style, c.World.Negative)
	if err != nil {
		return spec.World{}, nil, nil, err
	}

	characters := make([]spec.Character, 0, len(c.Characters))
	for _, raw := range c.Characters {
		character, err := spec.NewCharacter(raw.Name, raw.Role, raw.Description)
		if err != nil {
			return spec.World{}, nil, nil, err
		}
		characters = append(characters, character)
	}

	variants := make([]spec.Variant, 0, len(c.Variants))
	for _, raw := range c.Variants {
		size := lo.Ternary(raw.Size > 0, raw.Size, defaultVariantSize)
		variant, err := spec.NewVariant(raw.Name, size, raw.PromptFrame)
		if err != nil {
			return spec.World{}, nil, nil, err
		}
		variants = append(variants, variant)
	}

	return world, characters, variants, nil
}

// Sample is the starter config emitted by `facegen init-config`.
func Sample() Config {
	return Config{
		World: World{
			Context:  "A fantasy medieval kingdom with magic and dragons.",
			Style:    "Painterly fantasy art, rich colors, dramatic lighting.",
			Negative: "text, watermark, blurry, modern elements",
		},
		Characters: []Character{
			{
				Name:        "Elena Stormblade",
				Role:        "Knight Captain",
				Description: "Stern woman in plate armor, silver hair, battle scars, determined expression.",
			},
			{
				Name:        "Finn Quickfingers",
				Role:        "Thief",
				Description: "Young man with mischievous grin, hooded cloak, daggers at belt.",
			},
		},
		Variants: []Variant{
			{
				Name:        "icon",
				Size:        64,
				PromptFrame: "Small square icon, face closeup, bold silhouette, readable at tiny size.",
			},
			{
				Name:        "bust",
				Size:        256,
				PromptFrame: "Portrait from shoulders up, neutral background, clear details.",
			},
			{
				Name:        "full",
				Size:        1024,
				PromptFrame: "Full body portrait, character in environment, detailed.",
			},
		},
	}
}

func SampleJSON() ([]byte, error) {
	return json.MarshalIndent(Sample(), "", "  ")
}
