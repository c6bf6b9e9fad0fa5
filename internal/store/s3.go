package store

import (
	"bytes"
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/go-logr/logr"
)

type S3Writer struct {
	Client *s3.Client
	Bucket string
	Prefix string
}

func (w *S3Writer) Write(ctx context.Context, params WriteParams) error {
	key := path.Join(w.Prefix, params.Name)
	log := logr.FromContextOrDiscard(ctx).WithValues(
		"key", key,
		"content-type", params.ContentType,
		"metadata", params.Metadata,
		"bucket", w.Bucket,
	)
	log.Info("uploading to s3")

	_, err := w.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(w.Bucket),
		Key:          aws.String(key),
		ContentType:  aws.String(params.ContentType),
		Body:         bytes.NewReader(params.Data),
		Metadata:     params.Metadata,
		StorageClass: s3types.StorageClassIntelligentTiering,
	})
	return err
}
