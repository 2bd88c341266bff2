package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignedUpload describes a one-shot direct upload the client performs itself.
type PresignedUpload struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	Key       string            `json:"key"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// UploadPresigner issues presigned PUT URLs.
type UploadPresigner interface {
	PresignPut(ctx context.Context, bucket, key, contentType string, expiry time.Duration) (*PresignedUpload, error)
}

type S3Presigner struct {
	presigner *s3.PresignClient
}

func NewS3Presigner(cfg sdkaws.Config) *S3Presigner {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// LocalStack only serves path style buckets.
		o.UsePathStyle = EndpointFromEnv() != ""
	})
	return &S3Presigner{presigner: s3.NewPresignClient(client)}
}

func (p *S3Presigner) PresignPut(ctx context.Context, bucket, key, contentType string, expiry time.Duration) (*PresignedUpload, error) {
	input := &s3.PutObjectInput{
		Bucket:      sdkaws.String(bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}

	presigned, err := p.presigner.PresignPutObject(ctx, input, s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign put object: %w", err)
	}

	headers := make(map[string]string, len(presigned.SignedHeader))
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &PresignedUpload{
		URL:       presigned.URL,
		Method:    presigned.Method,
		Headers:   headers,
		Key:       key,
		ExpiresAt: time.Now().Add(expiry).UTC(),
	}, nil
}
