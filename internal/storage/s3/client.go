package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const (
	contentTypePDF            = "application/pdf"
	defaultS3Region           = "us-east-1"
	defaultPresignedURLExpiry = time.Hour
	codeNotFound              = "NotFound"

	errFailedUploadObjectFmt                 = "failed to upload object %s: %w"
	errFailedGeneratePresignedDownloadURLFmt = "failed to generate presigned download URL: %w"
	errFailedHeadBucketFmt                   = "failed to check bucket: %w"
	errFailedCreateBucketFmt                 = "failed to create bucket: %w"
	errFailedWaitBucketExistsFmt             = "failed to wait for bucket to exist: %w"
)

// Client stores generated documents in one bucket and hands out time-limited
// download links for them.
type Client struct {
	svc                s3iface.S3API
	bucketName         string
	presignedURLExpiry time.Duration
}

func NewClient(svc s3iface.S3API, bucketName string, presignedURLExpiry time.Duration) *Client {
	if presignedURLExpiry <= 0 {
		presignedURLExpiry = defaultPresignedURLExpiry
	}
	return &Client{
		svc:                svc,
		bucketName:         bucketName,
		presignedURLExpiry: presignedURLExpiry,
	}
}

func (c *Client) UploadPDF(ctx context.Context, objectKey string, body []byte) error {
	_, err := c.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucketName),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentTypePDF),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf(errFailedUploadObjectFmt, objectKey, err)
	}

	return nil
}

func (c *Client) PresignGet(ctx context.Context, objectKey string) (string, error) {
	req, _ := c.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey),
	})
	req.SetContext(ctx)

	url, err := req.Presign(c.presignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf(errFailedGeneratePresignedDownloadURLFmt, err)
	}

	return url, nil
}

// EnsureBucket creates the bucket when it does not exist yet. It is meant for
// local emulators; deployed stacks provision the bucket themselves.
func (c *Client) EnsureBucket(ctx context.Context, region string) error {
	_, err := c.svc.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	})
	if err == nil {
		return nil
	}

	var aerr awserr.Error
	if !errors.As(err, &aerr) || (aerr.Code() != codeNotFound && aerr.Code() != s3.ErrCodeNoSuchBucket) {
		return fmt.Errorf(errFailedHeadBucketFmt, err)
	}

	input := &s3.CreateBucketInput{
		Bucket: aws.String(c.bucketName),
	}

	if region != "" && region != defaultS3Region {
		input.CreateBucketConfiguration = &s3.CreateBucketConfiguration{
			LocationConstraint: aws.String(region),
		}
	}

	if _, err := c.svc.CreateBucketWithContext(ctx, input); err != nil {
		return fmt.Errorf(errFailedCreateBucketFmt, err)
	}

	if err := c.svc.WaitUntilBucketExistsWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf(errFailedWaitBucketExistsFmt, err)
	}

	return nil
}
