package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// S3 error codes that signal an absent configuration rather than a failure
const (
	ErrCodeNoSuchPublicAccessBlock = "NoSuchPublicAccessBlockConfiguration"
	ErrCodeNoSuchBucketPolicy      = "NoSuchBucketPolicy"
)

// hasErrorCode reports whether err is an AWS API error with one of the given codes
func hasErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}
