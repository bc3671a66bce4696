package storage

import (
	cfgpkg "WikiGo/internal/config"
	"WikiGo/internal/model"
	"WikiGo/internal/transfer"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Storage хранит содержимое вложений в S3-совместимом бакете (AWS или MinIO).
type S3Storage struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

// NewS3Storage собирает S3-клиент из конфигурации инстанса.
func NewS3Storage(cfg *cfgpkg.Config) (*S3Storage, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("s3 storage requires S3_BUCKET")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true // MinIO
		}
	})

	return &S3Storage{client: client, bucket: cfg.S3Bucket, endpoint: cfg.S3Endpoint}, nil
}

func (s *S3Storage) Open(ctx context.Context, att model.Attachment) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &att.FilePath,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, transfer.Wrap(transfer.KindAttachmentNotFound,
				fmt.Sprintf("attachment %s has no stored content", att.ID), err)
		}
		return nil, err
	}
	return out.Body, nil
}

func (s *S3Storage) Save(ctx context.Context, att model.Attachment, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &att.FilePath,
		Body:        r,
		ContentType: aws.String(att.ContentType),
	})
	return err
}

func (s *S3Storage) Info() transfer.AttachmentInfo {
	return transfer.AttachmentInfo{
		Type:     "aws",
		Bucket:   s.bucket,
		Endpoint: s.endpoint,
	}
}
