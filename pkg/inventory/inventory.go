// Package inventory runs the bucket inventory pipeline: list, inspect, classify and report.
package inventory

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/younsl/s3inventory/internal/models"
	"github.com/younsl/s3inventory/pkg/aws"
	"github.com/younsl/s3inventory/pkg/classifier"
	"github.com/younsl/s3inventory/pkg/utils"
)

// BucketSource lists buckets and reads their exposure settings
type BucketSource interface {
	ListAllBuckets(ctx context.Context) ([]models.BucketRef, error)
	FilterByRegion(ctx context.Context, buckets []models.BucketRef) ([]models.BucketRef, error)
	GetAccessBlock(ctx context.Context, bucketName string) (models.AccessBlock, error)
	GetPolicyStatus(ctx context.Context, bucketName string) (models.PolicyStatus, error)
}

// MetricSource reads bucket storage metrics
type MetricSource interface {
	FetchBucketSize(ctx context.Context, bucketName string) (*models.MetricSample, error)
	FetchObjectCount(ctx context.Context, bucketName string) (*models.MetricSample, error)
}

// ReportSink persists the collected records
type ReportSink interface {
	Write(records []models.BucketRecord) error
}

// ProgressFunc is called before each bucket is inspected
type ProgressFunc func(index, total int, bucketName string)

// Options controls how a Runner behaves
type Options struct {
	// LegacyScoring reproduces the scoring of older inventory spreadsheets: a bucket with no
	// public access block counts as fully blocked, and the object count stands in for the
	// public access flag when classifying.
	LegacyScoring bool

	// DryRun collects and classifies buckets without writing the report
	DryRun bool

	Progress ProgressFunc
}

// SkippedBucket is a bucket left out of the report because inspecting it failed
type SkippedBucket struct {
	Name string
	Err  error
}

// Result is the outcome of a run
type Result struct {
	TotalBuckets  int // Buckets owned by the account
	RegionBuckets int // Buckets located in the target region
	Records       []models.BucketRecord
	Skipped       []SkippedBucket
	Written       bool
}

// Runner sequences the inventory of one region
type Runner struct {
	buckets BucketSource
	metrics MetricSource
	sink    ReportSink
	log     logrus.FieldLogger
	opts    Options
}

// NewRunner creates a Runner
func NewRunner(buckets BucketSource, metrics MetricSource, sink ReportSink, log logrus.FieldLogger, opts Options) *Runner {
	return &Runner{
		buckets: buckets,
		metrics: metrics,
		sink:    sink,
		log:     log,
		opts:    opts,
	}
}

// Run inventories every bucket of the target region and writes the report once.
//
// Listing or region filtering failures abort the run. A failure while inspecting a single
// bucket is logged and the bucket is left out of the report.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var result Result

	r.log.Info("Listing S3 buckets")
	all, err := r.buckets.ListAllBuckets(ctx)
	if err != nil {
		return result, err
	}
	result.TotalBuckets = len(all)

	if len(all) == 0 {
		r.log.Info("No buckets found")
		return result, nil
	}

	regionBuckets, err := r.buckets.FilterByRegion(ctx, all)
	if err != nil {
		return result, fmt.Errorf("error filtering buckets by region: %w", err)
	}
	result.RegionBuckets = len(regionBuckets)
	r.log.WithFields(logrus.Fields{
		"total":  len(all),
		"region": len(regionBuckets),
	}).Info("Filtered buckets by region")

	for i, bucket := range regionBuckets {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if r.opts.Progress != nil {
			r.opts.Progress(i, len(regionBuckets), bucket.Name)
		}

		bucketLog := r.log.WithField("bucket", bucket.Name)
		bucketLog.Debug("Inspecting bucket")

		record, err := r.inspect(ctx, bucket)
		if err != nil {
			bucketLog.WithError(err).Error("Unexpected error processing bucket, skipping")
			result.Skipped = append(result.Skipped, SkippedBucket{Name: bucket.Name, Err: err})
			continue
		}

		bucketLog.WithFields(logrus.Fields{
			"importance": record.Classification.Importance,
			"removable":  record.Classification.Removable,
		}).Debug("Bucket classified")
		result.Records = append(result.Records, record)
	}

	if r.opts.DryRun || r.sink == nil {
		r.log.Info("Dry run, report not written")
		return result, nil
	}

	if err := r.sink.Write(result.Records); err != nil {
		return result, err
	}
	result.Written = true
	r.log.WithField("rows", len(result.Records)).Info("Report written")

	return result, nil
}

// inspect gathers the exposure settings and storage metrics of one bucket and classifies it
func (r *Runner) inspect(ctx context.Context, bucket models.BucketRef) (models.BucketRecord, error) {
	record := models.BucketRecord{
		Name:         bucket.Name,
		CreationDate: bucket.CreationDate,
	}

	access, err := r.buckets.GetAccessBlock(ctx, bucket.Name)
	if err != nil {
		return record, err
	}

	policy, err := r.buckets.GetPolicyStatus(ctx, bucket.Name)
	if err != nil {
		return record, err
	}

	size, err := r.metrics.FetchBucketSize(ctx, bucket.Name)
	if err != nil {
		return record, err
	}

	count, err := r.metrics.FetchObjectCount(ctx, bucket.Name)
	if err != nil {
		return record, err
	}

	if size != nil {
		record.SizeBytes = &size.Value
	}
	if count != nil {
		record.ObjectCount = &count.Value
	}
	record.AccessBlockConfigured = access.Configured
	record.IsFullyAccessBlocked = aws.IsFullyAccessBlocked(access, r.opts.LegacyScoring)
	record.HasPublicPolicy = policy.IsPublic
	record.Classification = classifier.Classify(ClassifierInput(record, r.opts.LegacyScoring))

	return record, nil
}

// ClassifierInput builds the classifier input of a record.
// In legacy mode a non-zero object count is used as the public access flag.
func ClassifierInput(record models.BucketRecord, legacy bool) classifier.Input {
	in := classifier.Input{
		SizeBytes:    record.SizeBytes,
		PublicAccess: record.IsPubliclyExposed(),
		PublicPolicy: record.HasPublicPolicy,
	}
	if legacy {
		in.PublicAccess = utils.IsTruthy(record.ObjectCount)
	}
	return in
}
