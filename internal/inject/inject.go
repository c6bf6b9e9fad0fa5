package inject

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/samber/do"
	"github.com/tmorland/facegen/internal/cache"
	"github.com/tmorland/facegen/internal/client"
	"github.com/tmorland/facegen/internal/log"
	"github.com/tmorland/facegen/internal/model"
	"github.com/tmorland/facegen/internal/runner"
	"github.com/tmorland/facegen/internal/store"
)

// Options carry the already-parsed CLI choices into the object graph.
type Options struct {
	Region   string
	Model    string
	NoCache  bool
	CacheDir string
	Output   string
	Bucket   string
}

func Setup(ctx context.Context, opts Options) *do.Injector {
	logger := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		},
	})

	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		loadOpts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRetryMaxAttempts(3),
			awsconfig.WithHTTPClient(awshttp.NewBuildableClient().WithTimeout(120 * time.Second)),
		}
		if opts.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
		}
		return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	})
	do.Provide[*bedrockruntime.Client](injector, func(i *do.Injector) (*bedrockruntime.Client, error) {
		return bedrockruntime.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})
	do.Provide[*s3.Client](injector, func(i *do.Injector) (*s3.Client, error) {
		return s3.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})

	do.Provide[model.Registry](injector, func(i *do.Injector) (model.Registry, error) {
		return model.NewRegistry(), nil
	})
	do.Provide[cache.Cache](injector, func(i *do.Injector) (cache.Cache, error) {
		if opts.NoCache {
			return &cache.Noop{}, nil
		}
		return cache.NewDisk(opts.CacheDir)
	})
	do.Provide[*client.Client](injector, func(i *do.Injector) (*client.Client, error) {
		return client.New(
			do.MustInvoke[*bedrockruntime.Client](i),
			do.MustInvoke[model.Registry](i),
			opts.Model,
			do.MustInvoke[cache.Cache](i),
		)
	})
	do.Provide[store.Writer](injector, func(i *do.Injector) (store.Writer, error) {
		if opts.Bucket != "" {
			return &store.S3Writer{Client: do.MustInvoke[*s3.Client](i), Bucket: opts.Bucket}, nil
		}
		return &store.FileWriter{Dir: opts.Output}, nil
	})
	do.Provide[*runner.Runner](injector, func(i *do.Injector) (*runner.Runner, error) {
		return runner.New(do.MustInvoke[*client.Client](i), do.MustInvoke[store.Writer](i)), nil
	})

	return injector
}
