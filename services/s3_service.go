package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageResolver turns a stored image value into a displayable URL.
type ImageResolver interface {
	ResolveImage(ctx context.Context, value string) (string, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3ImageResolver presigns profile photos stored as S3 keys. Values that are
// already absolute URLs are returned untouched.
type S3ImageResolver struct {
	Presigner objectPresigner
	Bucket    string
	Expires   time.Duration
}

// NewS3ImageResolver creates a resolver for bucket using the given S3 client.
func NewS3ImageResolver(client *s3.Client, bucket string, expires time.Duration) *S3ImageResolver {
	return &S3ImageResolver{
		Presigner: s3.NewPresignClient(client),
		Bucket:    bucket,
		Expires:   expires,
	}
}

// ResolveImage generates a presigned read URL for a key
func (r *S3ImageResolver) ResolveImage(ctx context.Context, value string) (string, error) {
	if IsAbsoluteURL(value) {
		return value, nil
	}
	key := strings.TrimPrefix(strings.TrimSpace(value), "/")
	params := &s3.GetObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(key),
	}
	presigned, err := r.Presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(r.Expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign image '%s': %w", key, err)
	}
	return presigned.URL, nil
}

// IsAbsoluteURL reports whether value carries a URL scheme.
func IsAbsoluteURL(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "file://")
}
