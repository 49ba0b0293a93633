package s3infra

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// presignTTL bounds how long a released download link stays fetchable.
const presignTTL = 15 * time.Minute

// LinkResolver produces the gated download URL released after a successful
// verification.
type LinkResolver struct {
	client *s3.Client
	bucket string
	key    string
}

// NewLinkResolver creates a resolver that presigns GET URLs for the hosted
// artifact.
func NewLinkResolver(client *s3.Client, bucket, key string) *LinkResolver {
	return &LinkResolver{client: client, bucket: bucket, key: key}
}

// DownloadURL generates a time-limited presigned GET URL for the artifact.
func (l *LinkResolver) DownloadURL(ctx context.Context) (string, error) {
	presigner := s3.NewPresignClient(l.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(l.key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return req.URL, nil
}
