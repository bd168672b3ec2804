// Package publish writes rendered pages to their destinations: a local
// directory or an S3 bucket.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/lu-dev/lu/internal/errors"
)

// ContentType of rendered pages.
const ContentType = "text/html; charset=utf-8"

// Sink stores a rendered page under name and returns where it went.
type Sink interface {
	Publish(ctx context.Context, name string, page []byte) (string, error)
}

// cleanName rejects names escaping the destination root.
func cleanName(name string) (string, error) {
	slashed := filepath.ToSlash(name)
	for _, seg := range strings.Split(slashed, "/") {
		if seg == ".." {
			return "", errors.New("L082").WithDetailf("invalid page name %q", name)
		}
	}
	clean := path.Clean("/" + slashed)[1:]
	if clean == "" {
		return "", errors.New("L082").WithDetailf("invalid page name %q", name)
	}
	return clean, nil
}

// DirSink writes pages below a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates dir if needed.
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("L082").Wrap(err)
	}
	return &DirSink{dir: dir}, nil
}

// Publish writes the page and returns its path.
func (s *DirSink) Publish(ctx context.Context, name string, page []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", errors.New("L082").Wrap(err)
	}

	// write then rename so readers never see a partial page
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, page, 0644); err != nil {
		return "", errors.New("L082").Wrap(err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", errors.New("L082").Wrap(err)
	}
	return dst, nil
}

// PutObjectAPI is the part of *s3.Client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads pages to a bucket.
//
// Example usage:
//
//	sink, err := publish.NewS3SinkFromConfig(ctx, "eu-west-1", "my-site", "pages/")
//	loc, err := sink.Publish(ctx, "index.html", page)
type S3Sink struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Sink returns a sink using client.
func NewS3Sink(client PutObjectAPI, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// NewS3SinkFromConfig loads the default AWS configuration (environment,
// shared files), overriding the region when one is given.
func NewS3SinkFromConfig(ctx context.Context, region, bucket, prefix string) (*S3Sink, error) {
	var optfns []func(*awsconfig.LoadOptions) error
	if region != "" {
		optfns = append(optfns, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, optfns...)
	if err != nil {
		return nil, errors.New("L082").WithDetail("loading AWS configuration").Wrap(err)
	}
	return NewS3Sink(s3.NewFromConfig(cfg), bucket, prefix), nil
}

// Key returns the object key of a page name.
func (s *S3Sink) Key(name string) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	return s.prefix + clean, nil
}

// Publish uploads the page and returns its s3:// URL.
func (s *S3Sink) Publish(ctx context.Context, name string, page []byte) (string, error) {
	key, err := s.Key(name)
	if err != nil {
		return "", err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(page),
		ContentType: aws.String(ContentType),
		Metadata: map[string]string{
			"rendered-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New("L082").WithDetailf("s3 upload of %s failed", key).Wrap(err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// Multi publishes to every sink in order and returns every location. It
// stops at the first failure.
type Multi []Sink

// Publish implements Sink; the locations are joined with ", ".
func (m Multi) Publish(ctx context.Context, name string, page []byte) (string, error) {
	locs := make([]string, 0, len(m))
	for _, s := range m {
		loc, err := s.Publish(ctx, name, page)
		if err != nil {
			return strings.Join(locs, ", "), err
		}
		locs = append(locs, loc)
	}
	return strings.Join(locs, ", "), nil
}
