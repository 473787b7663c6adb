package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/talentwire/scout/pkg/fsx"
)

// S3FileSystem implements fsx.FileSystem on top of an S3 bucket. All
// paths are rooted under the configured prefix.
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3FileSystem creates a filesystem rooted at s3://bucket/prefix.
func NewS3FileSystem(client *s3.Client, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (f *S3FileSystem) key(path string) string {
	path = strings.TrimPrefix(path, "/")
	if f.prefix == "" {
		return path
	}
	if strings.HasPrefix(path, f.prefix+"/") {
		return path
	}
	return f.prefix + "/" + path
}

// Join builds an S3 object key from segments.
func (f *S3FileSystem) Join(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "/")
}

// WriteFile uploads data to the bucket.
func (f *S3FileSystem) WriteFile(ctx context.Context, path string, data []byte) error {
	return f.WriteFileStream(ctx, path, bytes.NewReader(data))
}

// WriteFileStream uploads the contents of r to the bucket.
func (f *S3FileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(path)),
		Body:   r,
	})
	return err
}

// ReadFile downloads the full object at path.
func (f *S3FileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	stream, err := f.ReadFileStream(ctx, path)
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	return io.ReadAll(stream)
}

// ReadFileStream opens the object at path for streaming.
func (f *S3FileSystem) ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(path)),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// Exists reports whether the object at path is present.
func (f *S3FileSystem) Exists(ctx context.Context, path string) (bool, error) {
	_, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(path)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteFile removes the object at path.
func (f *S3FileSystem) DeleteFile(ctx context.Context, path string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(path)),
	})
	return err
}
