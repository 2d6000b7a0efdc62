package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/talent-scout/internal/domain/media"
	"github.com/riskibarqy/talent-scout/internal/platform/resilience"
	"github.com/riskibarqy/talent-scout/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

type Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	KeyPrefix       string
	UsePathStyle    bool
	MaxBytes        int64
	CircuitBreaker  resilience.CircuitBreakerConfig
}

type objectAPI interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
}

// Storage keeps uploads in an S3 compatible bucket (AWS, R2, MinIO).
type Storage struct {
	client   objectAPI
	bucket   string
	baseURL  string
	prefix   string
	maxBytes int64
	breaker  *resilience.CircuitBreaker
	now      func() time.Time
}

func New(ctx context.Context, cfg Config) (*Storage, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newWithClient(client, cfg), nil
}

func newWithClient(client objectAPI, cfg Config) *Storage {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if baseURL == "" {
		baseURL = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/") + "/" + cfg.Bucket
	}
	return &Storage{
		client:   client,
		bucket:   cfg.Bucket,
		baseURL:  baseURL,
		prefix:   strings.Trim(strings.TrimSpace(cfg.KeyPrefix), "/"),
		maxBytes: cfg.MaxBytes,
		breaker:  resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		now:      time.Now,
	}
}

func (s *Storage) Put(ctx context.Context, upload media.Upload) (string, error) {
	if err := media.ValidateExtension(upload.Filename); err != nil {
		return "", err
	}
	if upload.Body == nil {
		return "", fmt.Errorf("upload %s has no body", upload.Field)
	}

	// The SDK needs a seekable body to sign plain HTTP endpoints.
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	body := upload.Body
	if s.maxBytes > 0 {
		body = io.LimitReader(upload.Body, s.maxBytes+1)
	}
	if _, err := buf.ReadFrom(body); err != nil {
		return "", fmt.Errorf("read upload %s: %w", upload.Field, err)
	}
	if s.maxBytes > 0 && int64(buf.Len()) > s.maxBytes {
		return "", fmt.Errorf("upload %s exceeds %d bytes", upload.Field, s.maxBytes)
	}

	key := s.objectKey(media.ObjectName(upload.Field, upload.Filename, s.now()))
	input := &awss3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(buf.B),
	}
	if ct := strings.TrimSpace(upload.ContentType); ct != "" {
		input.ContentType = aws.String(ct)
	}

	err := s.breaker.Execute(func() error {
		_, err := s.client.PutObject(ctx, input)
		return err
	}, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", usecase.ErrUpstreamFailure, crerr.Wrapf(err, "put object %s", key))
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes an object previously returned by Put. URLs that do not
// belong to this bucket are ignored.
func (s *Storage) Delete(ctx context.Context, publicURL string) error {
	key, ok := strings.CutPrefix(strings.TrimSpace(publicURL), s.baseURL+"/")
	if !ok || key == "" {
		return nil
	}

	err := s.breaker.Execute(func() error {
		_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		return err
	}, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", usecase.ErrUpstreamFailure, crerr.Wrapf(err, "delete object %s", key))
	}
	return nil
}

func (s *Storage) objectKey(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}
