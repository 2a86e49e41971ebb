package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/younsl/s3inventory/internal/models"
	"github.com/younsl/s3inventory/pkg/utils"
)

// S3Inspector lists buckets of one region and reads their exposure settings
type S3Inspector struct {
	client S3API
	region string
}

// NewS3Inspector creates an S3Inspector filtering on the given region
func NewS3Inspector(client S3API, region string) *S3Inspector {
	return &S3Inspector{
		client: client,
		region: region,
	}
}

// Region returns the target region of the inspector
func (c *S3Inspector) Region() string {
	return c.region
}

// ListAllBuckets returns every bucket owned by the account in enumeration order
func (c *S3Inspector) ListAllBuckets(ctx context.Context) ([]models.BucketRef, error) {
	result, err := c.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("error listing S3 buckets: %w", err)
	}

	buckets := make([]models.BucketRef, 0, len(result.Buckets))
	for _, b := range result.Buckets {
		buckets = append(buckets, models.BucketRef{
			Name:         aws.ToString(b.Name),
			CreationDate: aws.ToTime(b.CreationDate),
		})
	}
	return buckets, nil
}

// FilterByRegion keeps the buckets located in the inspector's region.
// A location lookup failure aborts the whole filter.
func (c *S3Inspector) FilterByRegion(ctx context.Context, buckets []models.BucketRef) ([]models.BucketRef, error) {
	var regionBuckets []models.BucketRef
	for _, bucket := range buckets {
		location, err := c.GetBucketRegion(ctx, bucket.Name)
		if err != nil {
			return nil, err
		}
		if location != c.region {
			continue
		}
		regionBuckets = append(regionBuckets, bucket)
	}
	return regionBuckets, nil
}

// ListRegionBuckets lists all buckets and keeps those located in the inspector's region
func (c *S3Inspector) ListRegionBuckets(ctx context.Context) ([]models.BucketRef, error) {
	buckets, err := c.ListAllBuckets(ctx)
	if err != nil {
		return nil, err
	}
	return c.FilterByRegion(ctx, buckets)
}

// GetBucketRegion determines the region for a bucket
func (c *S3Inspector) GetBucketRegion(ctx context.Context, bucketName string) (string, error) {
	location, err := c.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		return "", fmt.Errorf("error getting location of bucket %s: %w", bucketName, err)
	}
	return utils.RegionFromLocationConstraint(string(location.LocationConstraint)), nil
}

// GetAccessBlock returns the public access block of a bucket.
// A bucket without any public access block yields AccessBlock{Configured: false}.
func (c *S3Inspector) GetAccessBlock(ctx context.Context, bucketName string) (models.AccessBlock, error) {
	result, err := c.client.GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		if hasErrorCode(err, ErrCodeNoSuchPublicAccessBlock) {
			return models.AccessBlock{}, nil
		}
		return models.AccessBlock{}, fmt.Errorf("error getting public access block of bucket %s: %w", bucketName, err)
	}

	cfg := result.PublicAccessBlockConfiguration
	if cfg == nil {
		return models.AccessBlock{}, nil
	}

	return models.AccessBlock{
		Configured:            true,
		BlockPublicAcls:       aws.ToBool(cfg.BlockPublicAcls),
		IgnorePublicAcls:      aws.ToBool(cfg.IgnorePublicAcls),
		BlockPublicPolicy:     aws.ToBool(cfg.BlockPublicPolicy),
		RestrictPublicBuckets: aws.ToBool(cfg.RestrictPublicBuckets),
	}, nil
}

// GetPolicyStatus returns the bucket policy status of a bucket.
// A bucket without a policy yields PolicyStatus{Present: false, IsPublic: false}.
func (c *S3Inspector) GetPolicyStatus(ctx context.Context, bucketName string) (models.PolicyStatus, error) {
	result, err := c.client.GetBucketPolicyStatus(ctx, &s3.GetBucketPolicyStatusInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		if hasErrorCode(err, ErrCodeNoSuchBucketPolicy) {
			return models.PolicyStatus{}, nil
		}
		return models.PolicyStatus{}, fmt.Errorf("error getting policy status of bucket %s: %w", bucketName, err)
	}

	status := models.PolicyStatus{Present: true}
	if result.PolicyStatus != nil {
		status.IsPublic = aws.ToBool(result.PolicyStatus.IsPublic)
	}
	return status, nil
}

// IsFullyAccessBlocked reports whether all four public access restrictions are enabled.
//
// A bucket with no public access block is exposed, so the result is false. With legacy set
// the absent case reports true instead, matching older inventory scoring.
func IsFullyAccessBlocked(block models.AccessBlock, legacy bool) bool {
	if !block.Configured {
		return legacy
	}
	return block.BlockPublicAcls &&
		block.IgnorePublicAcls &&
		block.BlockPublicPolicy &&
		block.RestrictPublicBuckets
}
