package media_storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/internal/config"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

type s3Adapter struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
	logger   logger.Logger
}

// NewS3Adapter builds the bucket-backed uploader and makes sure the
// public bucket exists before first use.
func NewS3Adapter(ctx context.Context, cfg config.Config, log logger.Logger) (service.Uploader, error) {
	if cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("storage bucket has not config")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Storage.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Storage.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	a := &s3Adapter{
		client:   client,
		bucket:   cfg.Storage.Bucket,
		region:   cfg.Storage.Region,
		endpoint: cfg.Storage.Endpoint,
		logger:   log,
	}

	if err := a.ensureBucket(ctx); err != nil {
		return nil, err
	}

	log.Info("Storage bucket ready.", zap.String("bucket", a.bucket))
	return a, nil
}

// ensureBucket creates the public bucket when it does not exist yet.
// When creation is denied by policy the returned error names the
// manual action instead of a bare API failure.
func (a *s3Adapter) ensureBucket(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(a.bucket),
	})
	if err == nil {
		return nil
	}

	a.logger.Warn("Bucket not reachable, attempting to create it", zap.String("bucket", a.bucket), zap.Error(err))

	_, err = a.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(a.bucket),
	})
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		var exists *s3types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf(
			"cannot create bucket %q: %w. Manual action required: create a PUBLIC bucket named %q in your storage console",
			a.bucket, err, a.bucket,
		)
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Sid": "PublicRead",
			"Effect": "Allow",
			"Principal": "*",
			"Action": "s3:GetObject",
			"Resource": "arn:aws:s3:::%s/*"
		}]
	}`, a.bucket)

	_, err = a.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(a.bucket),
		Policy: aws.String(policy),
	})
	if err != nil {
		return fmt.Errorf(
			"bucket %q created but public-read policy was denied: %w. Manual action required: allow public read on the bucket",
			a.bucket, err,
		)
	}

	a.logger.Info("Created public bucket.", zap.String("bucket", a.bucket))
	return nil
}

func (a *s3Adapter) Upload(ctx context.Context, file io.Reader, folder string, fileName string) (string, error) {
	key := path.Join(folder, fileName)

	var sniff [512]byte
	n, readErr := io.ReadFull(file, sniff[:])
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("read upload: %w", readErr)
	}
	mimeType := http.DetectContentType(sniff[:n])
	body := io.MultiReader(bytes.NewReader(sniff[:n]), file)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("put object bucket=%s key=%s: %w", a.bucket, key, err)
	}

	return a.publicURL(key), nil
}

func (a *s3Adapter) Delete(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object bucket=%s key=%s: %w", a.bucket, key, err)
	}
	return nil
}

func (a *s3Adapter) publicURL(key string) string {
	if a.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(a.endpoint, "/"), a.bucket, key)
	}
	if a.region != "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", a.bucket, key)
}
