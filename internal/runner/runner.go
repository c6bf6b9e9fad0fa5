package runner

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/tmorland/facegen/internal/client"
	"github.com/tmorland/facegen/internal/log"
	"github.com/tmorland/facegen/internal/portrait"
	"github.com/tmorland/facegen/internal/spec"
	"github.com/tmorland/facegen/internal/store"
	"golang.org/x/sync/errgroup"
)

// Outcome reports one character's batch result. A failed character never
// stops the batch; its error lands here.
type Outcome struct {
	Character string
	Files     []string
	Err       error
}

type Runner struct {
	client *client.Client
	writer store.Writer
}

func New(c *client.Client, w store.Writer) *Runner {
	return &Runner{client: c, writer: w}
}

// Run generates every variant for every character in order, writing
// finished portraits through the writer. Generation is sequential; only
// the writes for one character fan out.
func (r *Runner) Run(ctx context.Context, world spec.World, characters []spec.Character, variants []spec.Variant, seed *int64, count int) ([]Outcome, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w, got %d", client.ErrInvalidCount, count)
	}

	logger := log.FromContextOrDiscard(ctx).With("model", r.client.Model())

	outcomes := make([]Outcome, 0, len(characters))
	for _, character := range characters {
		logger.Info("generating portraits", "character", character.Name)

		results, err := r.client.Generate(ctx, world, character, variants, seed, count)
		if err != nil {
			logger.Error("generation failed", "character", character.Name, "error", err)
			outcomes = append(outcomes, Outcome{Character: character.Name, Err: err})
			continue
		}

		files, err := r.write(ctx, character, results, count)
		outcomes = append(outcomes, Outcome{Character: character.Name, Files: files, Err: err})
	}
	return outcomes, nil
}

func (r *Runner) write(ctx context.Context, character spec.Character, results map[string][]*portrait.Result, count int) ([]string, error) {
	safe := strings.ReplaceAll(strings.ToLower(character.Name), " ", "_")

	var writes []store.WriteParams
	for variantName, items := range results {
		for i, result := range items {
			name := lo.Ternary(count == 1,
				fmt.Sprintf("%s_%s.png", safe, variantName),
				fmt.Sprintf("%s_%s_%d.png", safe, variantName, i+1))
			writes = append(writes, store.WriteParams{
				Name:        name,
				Data:        result.PNG,
				ContentType: "image/png",
				Metadata: map[string]string{
					"character": character.Name,
					"variant":   variantName,
					"model":     r.client.Model(),
					"seed":      seedString(result.Seed),
				},
			})
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	for _, w := range writes {
		w := w
		group.Go(func() error {
			return r.writer.Write(ctx, w)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return lo.Map(writes, func(w store.WriteParams, _ int) string { return w.Name }), nil
}

func seedString(seed *int64) string {
	if seed == nil {
		return ""
	}
	return strconv.FormatInt(*seed, 10)
}
