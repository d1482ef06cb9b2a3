package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gogotex/schemes/internal/scheme"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOOptions holds the MinIO connection settings.
type MinIOOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// MinIOStore keeps the list as the object "<key>.json" in a bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
	object string
}

// NewMinIOStore creates the client and ensures the bucket exists.
func NewMinIOStore(ctx context.Context, opts MinIOOptions, key string) (*MinIOStore, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	if opts.Bucket == "" {
		opts.Bucket = "schemes"
	}
	mc, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, opts.Bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return &MinIOStore{client: mc, bucket: opts.Bucket, object: keyOrDefault(key) + ".json"}, nil
}

func (s *MinIOStore) Driver() string { return "minio" }

func (s *MinIOStore) Load(ctx context.Context) ([]scheme.Scheme, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, false, err
	}
	defer obj.Close()
	if _, err := obj.Stat(); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, false, nil
		}
		return nil, false, err
	}
	b, err := io.ReadAll(obj)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", s.object, err)
	}
	list, err := decode(b)
	if err != nil {
		return nil, false, err
	}
	return list, true, nil
}

func (s *MinIOStore) Save(ctx context.Context, list []scheme.Scheme) error {
	b, err := encode(list)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, s.object, bytes.NewReader(b), int64(len(b)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}
