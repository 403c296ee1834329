// Package s3 stores entry files as objects in an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/mdobak/go-xerrors"

	"auction_backend/internal/feature/encyclopedia/usecase"
)

// Config locates the bucket. Endpoint is only set for non-AWS services
// such as MinIO and switches the client to path-style addressing.
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// API is the subset of the S3 client the store uses.
type API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store is an EntryStorage on an S3 bucket.
type Store struct {
	api    API
	bucket string
	prefix string
}

var _ usecase.EntryStorage = (*Store)(nil)

// NewClient builds an S3 client from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewClient(ctx context.Context, cfg Config, httpClient *http.Client) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
		config.WithHTTPClient(httpClient),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, xerrors.Newf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// New creates a Store over api. Keys are prefixed with prefix when set.
func New(api API, bucket, prefix string) *Store {
	return &Store{api: api, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *Store) key(p string) string {
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if s.prefix == "" {
		return p
	}
	if p == "" {
		return s.prefix
	}
	return s.prefix + "/" + p
}

// ListFiles lists the objects directly under dir.
func (s *Store) ListFiles(ctx context.Context, dir string) ([]string, error) {
	prefix := s.key(dir)
	if prefix != "" {
		prefix += "/"
	}

	names := []string{}
	pager := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, xerrors.Newf("list %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			if name := strings.TrimPrefix(aws.ToString(obj.Key), prefix); name != "" {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

func (s *Store) ReadFile(ctx context.Context, p string) ([]byte, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, usecase.ErrFileNotFound
		}
		return nil, xerrors.Newf("get %s: %w", p, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, xerrors.Newf("read %s: %w", p, err)
	}
	return data, nil
}

// CreateFile is a conditional put (If-None-Match: *), so the bucket
// decides atomically whether the key is free.
func (s *Store) CreateFile(ctx context.Context, p string, data []byte) error {
	_, err := s.api.PutObject(ctx, s.putInput(p, data, true))
	if isPreconditionFailed(err) {
		return usecase.ErrFileExists
	}
	if err != nil {
		return xerrors.Newf("create %s: %w", p, err)
	}
	return nil
}

func (s *Store) WriteFile(ctx context.Context, p string, data []byte) error {
	if _, err := s.api.PutObject(ctx, s.putInput(p, data, false)); err != nil {
		return xerrors.Newf("put %s: %w", p, err)
	}
	return nil
}

func (s *Store) putInput(p string, data []byte, exclusive bool) *s3.PutObjectInput {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(p)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("text/markdown; charset=utf-8"),
	}
	if exclusive {
		in.IfNoneMatch = aws.String("*")
	}
	return in
}

// isPreconditionFailed reports a failed If-None-Match. S3 answers 412
// PreconditionFailed, or 409 ConditionalRequestConflict while a concurrent
// upload to the same key is in flight.
func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "PreconditionFailed", "ConditionalRequestConflict":
		return true
	}
	return false
}
