package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// IsS3URL reports whether rawURL points at an S3 object.
func IsS3URL(rawURL string) bool {
	return strings.HasPrefix(rawURL, "s3://")
}

// Fetch downloads the bytes at rawURL, dispatching to S3 or plain HTTP(S)
// depending on its scheme.
func Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if IsS3URL(rawURL) {
		return fetchS3(ctx, rawURL)
	}
	return fetchHTTP(ctx, rawURL)
}

func fetchS3(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing s3 url %q: %w", rawURL, err)
	}
	bucket := parsed.Host
	if bucket == "" {
		return nil, fmt.Errorf("s3 url %q has no bucket", rawURL)
	}
	key := strings.TrimPrefix(parsed.Path, "/")

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("getting s3 object %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading s3 object body: %w", err)
	}
	return body, nil
}

func fetchHTTP(ctx context.Context, rawURL string) ([]byte, error) {
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("parsing url %q: %w", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", rawURL, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %q: unexpected status %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body for %q: %w", rawURL, err)
	}
	return body, nil
}
