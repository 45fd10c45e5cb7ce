package store

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/time/rate"
)

// RemoteOption configures a remote storage root.
type RemoteOption func(*remoteOptions)

type remoteOptions struct {
	limiter *rate.Limiter
}

// WithRateLimit throttles remote object fetches.
func WithRateLimit(limit rate.Limit, burst int) RemoteOption {
	return func(o *remoteOptions) {
		o.limiter = rate.NewLimiter(limit, burst)
	}
}

func applyRemoteOptions(optFns []RemoteOption) remoteOptions {
	var o remoteOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// S3Root is a storage root whose chunk files live in an S3 bucket under a
// key prefix. Matching objects are synced on demand into cacheDir,
// preserving their relative layout; objects with a `.zst` or `.lz4`
// suffix are cached decompressed.
type S3Root struct {
	client     *s3.Client
	downloader *manager.Downloader
	bucket     string
	prefix     string
	cache      *cache
}

// NewS3Root creates an S3-backed root.
func NewS3Root(client *s3.Client, bucket, prefix, cacheDir string, optFns ...RemoteOption) *S3Root {
	o := applyRemoteOptions(optFns)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Root{
		client:     client,
		downloader: manager.NewDownloader(client),
		bucket:     bucket,
		prefix:     prefix,
		cache:      newCache(cacheDir, o.limiter),
	}
}

// NewS3RootFromConfig creates an S3-backed root using the default AWS
// configuration chain.
func NewS3RootFromConfig(ctx context.Context, bucket, prefix, cacheDir string, optFns ...RemoteOption) (*S3Root, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}
	return NewS3Root(s3.NewFromConfig(cfg), bucket, prefix, cacheDir, optFns...), nil
}

// Glob implements Root.
func (r *S3Root) Glob(ctx context.Context, epochGlob, pattern, extension string) ([]string, error) {
	var matches []string
	paginator := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(r.bucket),
		Prefix: aws.String(r.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), r.prefix)
			rel, compression := splitCompression(key)
			if !matchRel(rel, epochGlob, pattern, extension) {
				continue
			}
			local, err := r.fetch(ctx, rel, compression)
			if err != nil {
				return nil, err
			}
			matches = append(matches, local)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

func (r *S3Root) fetch(ctx context.Context, rel, compression string) (string, error) {
	key := r.prefix + rel + compression
	input := &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}
	return r.cache.fetch(ctx, rel, func(ctx context.Context, w io.Writer) error {
		if wa, ok := w.(io.WriterAt); ok && compression == "" {
			// Plain objects go through the concurrent range downloader.
			_, err := r.downloader.Download(ctx, wa, input)
			return err
		}
		out, err := r.client.GetObject(ctx, input)
		if err != nil {
			return err
		}
		defer out.Body.Close()
		return decompress(w, out.Body, compression)
	})
}
