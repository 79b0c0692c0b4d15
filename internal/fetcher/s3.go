package fetcher

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// S3Options configures access to an S3-compatible bucket.
type S3Options struct {
	Endpoint  string // host[:port]; empty means s3.amazonaws.com
	Region    string
	AccessKey string
	SecretKey string
	Insecure  bool // plain HTTP, for local MinIO
	PathStyle bool
}

// S3Fetcher implements Fetcher over objects under a bucket prefix, addressed
// as s3://bucket/prefix.
type S3Fetcher struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewS3Fetcher creates an S3Fetcher for an s3:// location.
func NewS3Fetcher(location string, opts S3Options) (*S3Fetcher, error) {
	bucket, prefix, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}
	creds := credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, "")
	if opts.AccessKey == "" {
		creds = credentials.NewEnvAWS()
	}
	lookup := minio.BucketLookupAuto
	if opts.PathStyle {
		lookup = minio.BucketLookupPath
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        creds,
		Secure:       !opts.Insecure,
		Region:       opts.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "s3 fetch: create client for %s", endpoint)
	}
	return &S3Fetcher{client: client, bucket: bucket, prefix: prefix}, nil
}

func parseS3Location(location string) (bucket, prefix string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", eris.Wrapf(err, "s3 fetch: parse location %q", location)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", eris.Errorf("s3 fetch: location %q must be s3://bucket[/prefix]", location)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// Key returns the object key for a records file name.
func (f *S3Fetcher) Key(name string) string {
	return path.Join(f.prefix, name)
}

// Fetch opens the named object.
func (f *S3Fetcher) Fetch(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	key := f.Key(name)

	start := time.Now()
	if _, err := f.client.StatObject(ctx, f.bucket, key, minio.StatObjectOptions{}); err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == "NoSuchKey" || code == "NotFound" {
			return nil, eris.Errorf("s3 fetch: s3://%s/%s not found", f.bucket, key)
		}
		return nil, eris.Wrapf(err, "s3 fetch: stat s3://%s/%s", f.bucket, key)
	}

	obj, err := f.client.GetObject(ctx, f.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, eris.Wrapf(err, "s3 fetch: get s3://%s/%s", f.bucket, key)
	}

	zap.L().Debug("fetched records object",
		zap.String("bucket", f.bucket),
		zap.String("key", key),
		zap.Duration("elapsed", time.Since(start)),
	)
	return obj, nil
}
