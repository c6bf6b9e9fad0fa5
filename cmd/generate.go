package cmd

import (
	"errors"

	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tmorland/facegen/internal/config"
	"github.com/tmorland/facegen/internal/inject"
	"github.com/tmorland/facegen/internal/model"
	"github.com/tmorland/facegen/internal/runner"
)

var (
	flagOutput     string
	flagCharacters string
	flagRegion     string
	flagModel      string
	flagSeed       int64
	flagCount      int
	flagNoCache    bool
	flagCacheDir   string
	flagBucket     string
)

var generateCmd = &cobra.Command{
	Use:   "generate CONFIG",
	Short: "Generate portraits from a JSON configuration file",
	Long: `Generate portraits from a JSON configuration file.

CONFIG holds the world and variants; characters can live in the config
or come separately via --characters.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&flagOutput, "output", "o", ".", "output directory for generated images")
	f.StringVarP(&flagCharacters, "characters", "c", "", "character JSON file or directory of character JSONs")
	f.StringVarP(&flagRegion, "region", "r", "", "AWS region (default: AWS default resolution)")
	f.StringVarP(&flagModel, "model", "m", model.DefaultModel, "Bedrock model to use (titan, sdxl, sd35)")
	f.Int64VarP(&flagSeed, "seed", "s", 0, "seed for reproducible generation")
	f.IntVarP(&flagCount, "count", "n", 1, "number of images to generate per variant")
	f.BoolVar(&flagNoCache, "no-cache", false, "disable result caching")
	f.StringVar(&flagCacheDir, "cache-dir", "", "custom cache directory")
	f.StringVar(&flagBucket, "s3-bucket", "", "upload results to this S3 bucket instead of the output directory")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if flagCharacters != "" {
		extra, err := config.LoadCharacters(flagCharacters)
		if err != nil {
			return err
		}
		cfg.Characters = append(cfg.Characters, extra...)
	}
	if len(cfg.Variants) == 0 {
		return errors.New("no variants specified in config")
	}

	world, characters, variants, err := cfg.Specs()
	if err != nil {
		return err
	}
	if len(characters) == 0 {
		return errors.New("no characters specified")
	}

	var seed *int64
	if cmd.Flags().Changed("seed") {
		seed = lo.ToPtr(flagSeed)
	}

	injector := inject.Setup(ctx, inject.Options{
		Region:   flagRegion,
		Model:    flagModel,
		NoCache:  flagNoCache,
		CacheDir: flagCacheDir,
		Output:   flagOutput,
		Bucket:   flagBucket,
	})
	defer func() { _ = injector.Shutdown() }()

	run, err := do.Invoke[*runner.Runner](injector)
	if err != nil {
		return err
	}

	outcomes, err := run.Run(ctx, world, characters, variants, seed, flagCount)
	if err != nil {
		return err
	}

	total := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			cmd.PrintErrf("%s: %v\n", outcome.Character, outcome.Err)
			continue
		}
		for _, file := range outcome.Files {
			cmd.Printf("  saved: %s\n", file)
		}
		total += len(outcome.Files)
	}
	cmd.Printf("Done! Generated %d images.\n", total)
	return nil
}
