package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmorland/facegen/internal/cache"
	"github.com/tmorland/facegen/internal/img"
	"github.com/tmorland/facegen/internal/log"
	"github.com/tmorland/facegen/internal/model"
	"github.com/tmorland/facegen/internal/portrait"
	"github.com/tmorland/facegen/internal/prompt"
	"github.com/tmorland/facegen/internal/spec"
)

var ErrInvalidCount = errors.New("count must be at least 1")

// Client drives the generation pipeline for one backend model: compose the
// prompt, consult the cache, invoke the adapter on a miss, normalize the
// result to the variant size and store it back.
type Client struct {
	invoker   model.Invoker
	adapter   model.Adapter
	modelName string
	modelID   string
	cache     cache.Cache
	composer  *prompt.Composer
	processor *img.Processor
}

// New resolves modelName in the registry, failing fast on an unknown model.
// A nil store disables caching.
func New(invoker model.Invoker, registry model.Registry, modelName string, store cache.Cache) (*Client, error) {
	if modelName == "" {
		modelName = model.DefaultModel
	}
	adapter, err := registry.Adapter(modelName)
	if err != nil {
		return nil, err
	}
	if store == nil {
		store = &cache.Noop{}
	}
	return &Client{
		invoker:   invoker,
		adapter:   adapter,
		modelName: modelName,
		modelID:   adapter.ModelID(),
		cache:     store,
		composer:  &prompt.Composer{},
		processor: &img.Processor{},
	}, nil
}

func (c *Client) Model() string { return c.modelName }

// Generate produces count portraits per variant. With a supplied seed,
// repetition i uses seed+i; without one each backend call draws its own.
// Each slice holds exactly count results in repetition order.
func (c *Client) Generate(ctx context.Context, world spec.World, character spec.Character, variants []spec.Variant, seed *int64, count int) (map[string][]*portrait.Result, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCount, count)
	}

	logger := log.FromContextOrDiscard(ctx).With("model", c.modelName, "character", character.Name)

	results := make(map[string][]*portrait.Result, len(variants))
	for _, variant := range variants {
		positive, negative, err := c.composer.Compose(world, character, variant)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", variant.Name, err)
		}

		items := make([]*portrait.Result, 0, count)
		for i := 0; i < count; i++ {
			effective := seed
			if seed != nil {
				s := *seed + int64(i)
				effective = &s
			}
			result, err := c.generateOne(ctx, positive, negative, variant, effective)
			if err != nil {
				return nil, fmt.Errorf("variant %s: %w", variant.Name, err)
			}
			items = append(items, result)
		}
		results[variant.Name] = items
		logger.Info("variant complete", "variant", variant.Name, "count", count)
	}
	return results, nil
}

func (c *Client) generateOne(ctx context.Context, positive, negative string, variant spec.Variant, seed *int64) (*portrait.Result, error) {
	logger := log.FromContextOrDiscard(ctx).With("variant", variant.Name)

	// Keyed by requested output size, not the generation resolution: the
	// stored artifact differs per size even when the backend output would
	// not.
	key := c.cache.Key(cache.Params{
		Prompt:   positive,
		Negative: negative,
		Model:    c.modelName,
		Size:     variant.Size,
		Seed:     seed,
	})
	if cached, ok := c.cache.Get(ctx, key); ok {
		logger.Debug("cache hit", "key", key)
		return cached.Relabel(variant.Name), nil
	}

	raw, usedSeed, err := c.adapter.Generate(ctx, c.invoker, c.modelID, model.Request{
		Prompt:   positive,
		Negative: negative,
		Seed:     seed,
		Width:    spec.GenerationSize,
		Height:   spec.GenerationSize,
	})
	if err != nil {
		return nil, err
	}

	final, err := c.processor.Process(ctx, raw, variant.Size, spec.GenerationSize)
	if err != nil {
		return nil, err
	}

	result := portrait.New(variant.Name, final, usedSeed)
	c.cache.Put(ctx, key, result)
	return result, nil
}
