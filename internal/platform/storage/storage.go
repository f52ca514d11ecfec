// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage uploads user images to S3-compatible object storage
(Cloudflare R2 in production) and hands back their public URLs.

Only storage is handled here. Images are stored exactly as received.
*/
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/taibuivan/dishly/internal/platform/config"
)

// ObjectPutter is the part of [s3.Client] the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader writes objects to one bucket.
type S3Uploader struct {
	client        ObjectPutter
	bucket        string
	publicBaseURL string
}

// NewS3Uploader wraps an existing client.
func NewS3Uploader(client ObjectPutter, bucket, publicBaseURL string) *S3Uploader {
	return &S3Uploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

/*
NewS3UploaderFromConfig builds an S3 client from the S3_* settings.

A custom endpoint switches the client to path-style addressing, which R2 and
MinIO expect.
*/
func NewS3UploaderFromConfig(context context.Context, cfg *config.Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		if cfg.S3Endpoint != "" {
			options.BaseEndpoint = aws.String(cfg.S3Endpoint)
			options.UsePathStyle = true
		}
	})

	return NewS3Uploader(client, cfg.S3Bucket, cfg.S3PublicBaseURL), nil
}

// Upload stores body under key and returns its public URL.
func (uploader *S3Uploader) Upload(context context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := uploader.client.PutObject(context, &s3.PutObjectInput{
		Bucket:      aws.String(uploader.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}
	return uploader.publicBaseURL + "/" + key, nil
}
