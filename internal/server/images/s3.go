package images

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	sc "github.com/dmitrijs2005/microblog/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectPutter is the slice of the S3 API the store uses.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads profile pictures to an S3-compatible backend and returns
// URLs under the configured public base.
type S3Store struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
}

// NewS3Store builds an S3 client from the server configuration. Static
// credentials and a custom base endpoint cover MinIO-style backends.
func NewS3Store(ctx context.Context, c *sc.Config) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(c.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.S3RootUser,
			c.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &S3Store{
		client:        client,
		bucket:        c.S3Bucket,
		publicBaseURL: strings.TrimRight(c.S3PublicBaseURL, "/"),
	}, nil
}

func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("profilePics/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Store uploads data under a random date-partitioned key and returns the
// stable retrieval URL.
func (s *S3Store) Store(ctx context.Context, data []byte, contentType string) (string, error) {

	key := randomStorageKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}

	return s.publicBaseURL + "/" + key, nil
}
