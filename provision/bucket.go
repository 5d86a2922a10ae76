package provision

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// BucketAPI is the subset of the S3 client used for the artifact store.
type BucketAPI interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// EnsureArtifactBucket creates the pipeline artifact bucket.
// Returns nil if the bucket already exists and is owned by us.
func (p *Provisioner) EnsureArtifactBucket(ctx context.Context, bucket string) error {
	p.log.WithField("bucket", bucket).Info("Creating artifact bucket...")

	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucket),
	}
	// us-east-1 rejects an explicit location constraint
	if p.region != "" && p.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(p.region),
		}
	}

	if _, err := p.buckets.CreateBucket(ctx, input); err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			p.log.WithField("bucket", bucket).Info("Artifact bucket already exists.")
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}

	p.log.WithField("bucket", bucket).Info("Artifact bucket created.")
	return nil
}

func isBucketAlreadyOwnedByYou(err error) bool {
	var baoby *s3types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "BucketAlreadyOwnedByYou"
	}
	return false
}
