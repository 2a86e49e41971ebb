// Package classifier scores S3 buckets into importance tiers.
package classifier

import (
	"github.com/younsl/s3inventory/internal/models"
)

// GB is one gibibyte in bytes
const GB = 1 << 30

const (
	largeBucketBytes  = 100 * GB
	mediumBucketBytes = 10 * GB

	irrelevantMaxScore = 4
	importantMaxScore  = 7
)

// Input holds the bucket attributes the score is computed from
type Input struct {
	SizeBytes    *float64 // nil when no size datapoint exists
	PublicAccess bool
	PublicPolicy bool
}

// Classify maps a bucket to an importance tier.
//
// Each attribute contributes 1 to 3 points:
//
//	size > 100 GB: 3, size > 10 GB: 2, otherwise: 1
//	public access: 3, otherwise: 1
//	public policy: 3, otherwise: 1
//
// A total of 4 or less is irrelevant and removable, 5 to 7 is important, 8 or more is critical.
func Classify(in Input) models.Classification {
	score := Score(in)

	switch {
	case score <= irrelevantMaxScore:
		return models.Classification{Importance: models.ImportanceIrrelevant, Removable: true}
	case score <= importantMaxScore:
		return models.Classification{Importance: models.ImportanceImportant, Removable: false}
	default:
		return models.Classification{Importance: models.ImportanceCritical, Removable: false}
	}
}

// Score returns the raw score of a bucket, between 3 and 9
func Score(in Input) int {
	return sizeScore(in.SizeBytes) + flagScore(in.PublicAccess) + flagScore(in.PublicPolicy)
}

// sizeScore treats a missing or NaN size as small, since NaN fails every comparison
func sizeScore(size *float64) int {
	if size == nil {
		return 1
	}
	switch {
	case *size > largeBucketBytes:
		return 3
	case *size > mediumBucketBytes:
		return 2
	default:
		return 1
	}
}

func flagScore(flag bool) int {
	if flag {
		return 3
	}
	return 1
}
