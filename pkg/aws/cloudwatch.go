package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwTypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/younsl/s3inventory/internal/models"
)

const (
	// AWS CloudWatch namespace for S3 storage metrics
	namespaceS3 = "AWS/S3"

	// S3 storage metric names
	MetricBucketSizeBytes = "BucketSizeBytes"
	MetricNumberOfObjects = "NumberOfObjects"

	// StorageType dimension values
	StorageTypeStandard = "StandardStorage"
	StorageTypeAll      = "AllStorageTypes"

	metricWindowDays  = 7
	metricPeriodSecs  = 86400 // 1 day
	defaultMetricUnit = "Bytes"
)

// MetricFetcher reads daily S3 storage metrics from CloudWatch
type MetricFetcher struct {
	client CloudWatchAPI
	now    func() time.Time
}

// NewMetricFetcher creates a MetricFetcher backed by the given CloudWatch client
func NewMetricFetcher(client CloudWatchAPI) *MetricFetcher {
	return &MetricFetcher{
		client: client,
		now:    time.Now,
	}
}

// SetClock replaces the time source used to compute the metric window
func (f *MetricFetcher) SetClock(now func() time.Time) {
	f.now = now
}

// FetchMetric returns the most recent daily Average of a bucket metric over the last 7 days.
// It returns nil without error when CloudWatch has no datapoint in the window.
func (f *MetricFetcher) FetchMetric(ctx context.Context, bucketName, metricName, storageType string) (*models.MetricSample, error) {
	endTime := f.now()
	startTime := endTime.AddDate(0, 0, -metricWindowDays)

	input := &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String(namespaceS3),
		MetricName: aws.String(metricName),
		Dimensions: []cwTypes.Dimension{
			{
				Name:  aws.String("BucketName"),
				Value: aws.String(bucketName),
			},
			{
				Name:  aws.String("StorageType"),
				Value: aws.String(storageType),
			},
		},
		StartTime:  aws.Time(startTime),
		EndTime:    aws.Time(endTime),
		Period:     aws.Int32(metricPeriodSecs),
		Statistics: []cwTypes.Statistic{cwTypes.StatisticAverage},
	}

	result, err := f.client.GetMetricStatistics(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("error getting %s metric for bucket %s: %w", metricName, bucketName, err)
	}

	latest, ok := latestDatapoint(result.Datapoints)
	if !ok {
		return nil, nil
	}

	sample := &models.MetricSample{
		Timestamp: aws.ToTime(latest.Timestamp),
		Value:     aws.ToFloat64(latest.Average),
		Unit:      string(latest.Unit),
	}
	if sample.Unit == "" {
		sample.Unit = defaultMetricUnit
	}
	return sample, nil
}

// FetchBucketSize returns the Standard storage size of a bucket in bytes
func (f *MetricFetcher) FetchBucketSize(ctx context.Context, bucketName string) (*models.MetricSample, error) {
	return f.FetchMetric(ctx, bucketName, MetricBucketSizeBytes, StorageTypeStandard)
}

// FetchObjectCount returns the number of objects of a bucket across all storage types
func (f *MetricFetcher) FetchObjectCount(ctx context.Context, bucketName string) (*models.MetricSample, error) {
	return f.FetchMetric(ctx, bucketName, MetricNumberOfObjects, StorageTypeAll)
}

// latestDatapoint picks the datapoint with the newest timestamp.
// On equal timestamps the first one returned by CloudWatch wins.
func latestDatapoint(datapoints []cwTypes.Datapoint) (cwTypes.Datapoint, bool) {
	if len(datapoints) == 0 {
		return cwTypes.Datapoint{}, false
	}

	latest := datapoints[0]
	for _, dp := range datapoints[1:] {
		if aws.ToTime(dp.Timestamp).After(aws.ToTime(latest.Timestamp)) {
			latest = dp
		}
	}
	return latest, true
}
