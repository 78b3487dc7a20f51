// Package s3report sube documentos de reporte a un bucket S3 (o MinIO).
package s3report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/reports"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const keyTimeLayout = "20060102T150405Z"

var ErrBucketRequired = errors.New("s3 bucket required")

type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // opcional (MinIO, localstack)
	Prefix    string
	PathStyle bool

	// Opcionales; si vienen vacíos se usa la cadena por defecto de AWS.
	AccessKeyID     string
	SecretAccessKey string
}

func FromConfig(c config.ExportConfig) Config {
	return Config{
		Bucket:    c.S3Bucket,
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		Prefix:    c.S3Prefix,
		PathStyle: c.S3PathStyle,

		AccessKeyID:     c.S3AccessKeyID,
		SecretAccessKey: c.S3SecretAccessKey,
	}
}

type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrBucketRequired
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client, cfg.Bucket, cfg.Prefix)
}

// NewWithClient permite inyectar un cliente ya construido (tests).
func NewWithClient(client *s3.Client, bucket, prefix string) (*Uploader, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, ErrBucketRequired
	}
	return &Uploader{client: client, bucket: bucket, prefix: prefix}, nil
}

// Key es <prefix><generated_at UTC>.json.
func (u *Uploader) Key(doc reports.Document) string {
	return u.prefix + doc.GeneratedAt.UTC().Format(keyTimeLayout) + ".json"
}

// Upload escribe el documento como JSON y devuelve la key usada.
func (u *Uploader) Upload(ctx context.Context, doc reports.Document) (string, error) {
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	key := u.Key(doc)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", u.bucket, key, err)
	}
	return key, nil
}
