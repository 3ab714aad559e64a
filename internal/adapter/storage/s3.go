package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3manager "github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/semmidev/bucketsync/internal/config"
	"github.com/semmidev/bucketsync/internal/domain"
)

// s3API is the subset of the S3 client S3Store depends on, extracted so
// tests can substitute a fake.
type s3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var _ s3API = (*s3.Client)(nil)

type uploaderAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

var _ uploaderAPI = (*s3manager.Uploader)(nil)

// S3Store is a remote object store bound to one target's bucket, prefix
// and credentials. Objects live at "{prefix}/{name}".
type S3Store struct {
	client   s3API
	uploader uploaderAPI
	bucket   string
	prefix   string
}

// NewS3 builds a store handle for one target using its static credential
// pair. The credentials are not verified here; the first call against the
// bucket surfaces auth problems.
func NewS3(ctx context.Context, target config.Target) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(target.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(target.AccessKey, target.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3Store{
		client:   client,
		uploader: s3manager.NewUploader(client),
		bucket:   target.Bucket,
		prefix:   target.Prefix,
	}, nil
}

func (s *S3Store) key(name string) string {
	return s.prefix + "/" + name
}

// List returns the name of every object under the prefix, draining all
// pages before returning. The folder marker object some tools create at
// "{prefix}/" is skipped.
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix + "/"),
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classify(fmt.Errorf("failed to list bucket %s: %w", s.bucket, err))
		}

		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix+"/")
			if name == "" {
				continue
			}
			names = append(names, name)
		}
	}

	return names, nil
}

// Upload streams a local file to "{prefix}/{name}", overwriting any
// existing object under that key.
func (s *S3Store) Upload(ctx context.Context, localPath string, name string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   file,
	})
	if err != nil {
		return classify(fmt.Errorf("failed to upload %s: %w", s.key(name), err))
	}

	return nil
}

// Delete removes one object. Deleting a key that is already gone counts
// as success: the object is absent either way.
func (s *S3Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return classify(fmt.Errorf("failed to delete %s: %w", s.key(name), err))
	}

	return nil
}

// Ping performs the cheapest authenticated call against the bucket: a
// single-key listing with no prefix.
func (s *S3Store) Ping(ctx context.Context) error {
	_, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return classify(fmt.Errorf("failed to list bucket %s: %w", s.bucket, err))
	}

	return nil
}

// classify maps AWS SDK failures onto the domain sentinels so callers can
// tell credential problems from everything else with errors.Is.
func classify(err error) error {
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return fmt.Errorf("%w: %w", domain.ErrBucketNotFound, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidAccessKeyId", "SignatureDoesNotMatch", "AccessDenied", "ExpiredToken", "InvalidClientTokenId":
			return fmt.Errorf("%w: %w", domain.ErrAuth, err)
		case "NoSuchBucket":
			return fmt.Errorf("%w: %w", domain.ErrBucketNotFound, err)
		}
	}

	return err
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}

	return false
}
