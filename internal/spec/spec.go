package spec

import (
	"errors"
	"fmt"
	"strings"
)

// GenerationSize is the square resolution every backend is asked to produce,
// independent of a variant's requested output size.
const GenerationSize = 1024

const MaxVariantSize = 1024

var ErrInvalid = errors.New("invalid spec")

// World is the shared setting and art direction for a generation session.
// Construct with NewWorld; values are read-only afterwards.
type World struct {
	Context  string
	Style    string
	Negative string
}

func NewWorld(context, style, negative string) (World, error) {
	if strings.TrimSpace(context) == "" {
		return World{}, fmt.Errorf("%w: world context cannot be empty", ErrInvalid)
	}
	if strings.TrimSpace(style) == "" {
		return World{}, fmt.Errorf("%w: world style cannot be empty", ErrInvalid)
	}
	return World{Context: context, Style: style, Negative: negative}, nil
}

type Character struct {
	Name        string
	Role        string
	Description string
}

func NewCharacter(name, role, description string) (Character, error) {
	if strings.TrimSpace(name) == "" {
		return Character{}, fmt.Errorf("%w: character name cannot be empty", ErrInvalid)
	}
	return Character{Name: name, Role: role, Description: description}, nil
}

// Variant names one output configuration, e.g. a 64px icon vs a 1024px
// full portrait of the same character.
type Variant struct {
	Name        string
	Size        int
	PromptFrame string
}

func NewVariant(name string, size int, promptFrame string) (Variant, error) {
	if strings.TrimSpace(name) == "" {
		return Variant{}, fmt.Errorf("%w: variant name cannot be empty", ErrInvalid)
	}
	if size < 1 {
		return Variant{}, fmt.Errorf("%w: variant size must be positive, got %d", ErrInvalid, size)
	}
	if size > MaxVariantSize {
		return Variant{}, fmt.Errorf("%w: variant size max is %d, got %d", ErrInvalid, MaxVariantSize, size)
	}
	return Variant{Name: name, Size: size, PromptFrame: promptFrame}, nil
}
