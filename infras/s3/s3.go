package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"hotelops/config"
	"hotelops/infras/otel"
	"hotelops/shared/constant"
	"hotelops/shared/failure"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"

	defaultRegion = "auto"
)

var errDisabled = failure.Unimplemented("object storage is disabled")

// S3 archives generated files in an S3 compatible bucket.
type S3 interface {
	// UploadFileBytes stores fileData under directory/fileName and returns its public URL.
	// An empty bucketName uses the configured bucket.
	UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error)
}

type bucketStore struct {
	client *s3.Client
	s3Cfg  s3Settings
	otel   otel.Otel
}

type s3Settings struct {
	bucket       string
	apiEndpoint  string
	publicDomain string
}

// objectURL prefers the public domain. Without one the object is addressed path-style on
// the API endpoint.
func (s s3Settings) objectURL(bucket, key string) string {
	base := strings.TrimSuffix(s.publicDomain, "/")
	if base == "" {
		base = strings.TrimSuffix(s.apiEndpoint, "/") + "/" + bucket
	}

	return base + "/" + key
}

func (b *bucketStore) UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := bucketName
	if bucket == "" {
		bucket = b.s3Cfg.bucket
	}

	key := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    bucket,
	})

	if _, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileData),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileData))),
	}); err != nil {
		log.Error().Err(err).Str("bucket", bucket).Str("key", key).Msg("s3 upload failed")

		return constant.Empty, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Info().Str("bucket", bucket).Str("key", key).Int("bytes", len(fileData)).Msg("s3 object stored")

	return b.s3Cfg.objectURL(bucket, key), nil
}

type disabledS3 struct{}

func (disabledS3) UploadFileBytes(context.Context, string, string, string, string, []byte) (string, error) {
	return constant.Empty, errDisabled
}

// New builds the bucket client. A disabled bucket answers every call with a 501 failure.
func New(cfg *config.Config, ot otel.Otel) S3 {
	s3Cfg := cfg.External.S3
	if !s3Cfg.Enable {
		log.Warn().Msg("s3 disabled: report archiving is unavailable")

		return disabledS3{}
	}

	region := s3Cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s3Cfg.AccessKeyID, s3Cfg.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load aws configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3Cfg.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(s3Cfg.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &bucketStore{
		client: client,
		otel:   ot,
		s3Cfg: s3Settings{
			bucket:       s3Cfg.BucketName,
			apiEndpoint:  s3Cfg.APIEndpoint,
			publicDomain: s3Cfg.PublicDomain,
		},
	}
}
