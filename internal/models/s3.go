package models

import "time"

// Importance is the operational tier assigned to a bucket
type Importance string

const (
	ImportanceIrrelevant Importance = "irrelevant"
	ImportanceImportant  Importance = "important"
	ImportanceCritical   Importance = "critical"
)

// Classification is the scoring outcome for a single bucket
type Classification struct {
	Importance Importance
	Removable  bool // True if the bucket is a cleanup candidate
}

// BucketRef identifies a bucket returned by the lister
type BucketRef struct {
	Name         string
	CreationDate time.Time
}

// MetricSample is the most recent daily CloudWatch datapoint for a bucket metric
type MetricSample struct {
	Timestamp time.Time
	Value     float64
	Unit      string
}

// AccessBlock is the public access block state of a bucket.
// Configured is false when the bucket has no public access block at all.
type AccessBlock struct {
	Configured            bool
	BlockPublicAcls       bool
	IgnorePublicAcls      bool
	BlockPublicPolicy     bool
	RestrictPublicBuckets bool
}

// PolicyStatus is the bucket policy state of a bucket
type PolicyStatus struct {
	Present  bool // False when the bucket has no policy attached
	IsPublic bool
}

// BucketRecord represents one inventoried S3 bucket
type BucketRecord struct {
	Name         string
	CreationDate time.Time

	// CloudWatch storage metrics, nil when no datapoint exists in the window
	SizeBytes   *float64
	ObjectCount *float64

	// Exposure
	AccessBlockConfigured bool // False when the bucket has no public access block
	IsFullyAccessBlocked  bool
	HasPublicPolicy       bool

	Classification Classification
}

// IsPubliclyExposed reports whether the bucket lacks a complete public access block
func (r BucketRecord) IsPubliclyExposed() bool {
	return !r.IsFullyAccessBlocked
}
