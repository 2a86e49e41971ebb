package aws

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type fakeBucket struct {
	name        string
	created     time.Time
	location    string
	locationErr error
	accessBlock *s3Types.PublicAccessBlockConfiguration
	accessErr   error
	policy      *s3Types.PolicyStatus
	policyErr   error
}

type fakeS3 struct {
	buckets []fakeBucket
	listErr error
	calls   []string
}

var _ S3API = (*fakeS3)(nil)

func (f *fakeS3) find(name *string) (fakeBucket, error) {
	for _, b := range f.buckets {
		if b.name == aws.ToString(name) {
			return b, nil
		}
	}
	return fakeBucket{}, &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "not found"}
}

func (f *fakeS3) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	f.calls = append(f.calls, "ListBuckets")
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &s3.ListBucketsOutput{}
	for _, b := range f.buckets {
		out.Buckets = append(out.Buckets, s3Types.Bucket{
			Name:         aws.String(b.name),
			CreationDate: aws.Time(b.created),
		})
	}
	return out, nil
}

func (f *fakeS3) GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error) {
	f.calls = append(f.calls, "GetBucketLocation:"+aws.ToString(params.Bucket))
	b, err := f.find(params.Bucket)
	if err != nil {
		return nil, err
	}
	if b.locationErr != nil {
		return nil, b.locationErr
	}
	return &s3.GetBucketLocationOutput{
		LocationConstraint: s3Types.BucketLocationConstraint(b.location),
	}, nil
}

func (f *fakeS3) GetPublicAccessBlock(ctx context.Context, params *s3.GetPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.GetPublicAccessBlockOutput, error) {
	f.calls = append(f.calls, "GetPublicAccessBlock:"+aws.ToString(params.Bucket))
	b, err := f.find(params.Bucket)
	if err != nil {
		return nil, err
	}
	if b.accessErr != nil {
		return nil, b.accessErr
	}
	return &s3.GetPublicAccessBlockOutput{PublicAccessBlockConfiguration: b.accessBlock}, nil
}

func (f *fakeS3) GetBucketPolicyStatus(ctx context.Context, params *s3.GetBucketPolicyStatusInput, optFns ...func(*s3.Options)) (*s3.GetBucketPolicyStatusOutput, error) {
	f.calls = append(f.calls, "GetBucketPolicyStatus:"+aws.ToString(params.Bucket))
	b, err := f.find(params.Bucket)
	if err != nil {
		return nil, err
	}
	if b.policyErr != nil {
		return nil, b.policyErr
	}
	return &s3.GetBucketPolicyStatusOutput{PolicyStatus: b.policy}, nil
}

type fakeCloudWatch struct {
	datapoints []cwTypes.Datapoint
	err        error
	inputs     []*cloudwatch.GetMetricStatisticsInput
}

var _ CloudWatchAPI = (*fakeCloudWatch)(nil)

func (f *fakeCloudWatch) GetMetricStatistics(ctx context.Context, params *cloudwatch.GetMetricStatisticsInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.GetMetricStatisticsOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &cloudwatch.GetMetricStatisticsOutput{Datapoints: f.datapoints}, nil
}

var errThrottled = errors.New("throttled")

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

func fullBlock() *s3Types.PublicAccessBlockConfiguration {
	return &s3Types.PublicAccessBlockConfiguration{
		BlockPublicAcls:       aws.Bool(true),
		IgnorePublicAcls:      aws.Bool(true),
		BlockPublicPolicy:     aws.Bool(true),
		RestrictPublicBuckets: aws.Bool(true),
	}
}
