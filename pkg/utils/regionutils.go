package utils

import "regexp"

// regionCodePattern matches AWS region codes such as us-east-1, ap-southeast-5 or us-gov-west-1
var regionCodePattern = regexp.MustCompile(`^[a-z]{2}(-gov|-iso[a-z]?)?-[a-z]+-[0-9]+$`)

// RegionDescriptiveNames maps AWS region codes to descriptive names
var RegionDescriptiveNames = map[string]string{
	"us-east-1":      "US East (N. Virginia)",
	"us-east-2":      "US East (Ohio)",
	"us-west-1":      "US West (N. California)",
	"us-west-2":      "US West (Oregon)",
	"af-south-1":     "Africa (Cape Town)",
	"ap-east-1":      "Asia Pacific (Hong Kong)",
	"ap-south-1":     "Asia Pacific (Mumbai)",
	"ap-northeast-1": "Asia Pacific (Tokyo)",
	"ap-northeast-2": "Asia Pacific (Seoul)",
	"ap-northeast-3": "Asia Pacific (Osaka)",
	"ap-southeast-1": "Asia Pacific (Singapore)",
	"ap-southeast-2": "Asia Pacific (Sydney)",
	"ap-southeast-3": "Asia Pacific (Jakarta)",
	"ap-southeast-4": "Asia Pacific (Melbourne)",
	"ap-south-2":     "Asia Pacific (Hyderabad)",
	"ca-central-1":   "Canada (Central)",
	"ca-west-1":      "Canada West (Calgary)",
	"eu-central-2":   "EU (Zurich)",
	"eu-south-2":     "EU (Spain)",
	"il-central-1":   "Israel (Tel Aviv)",
	"me-central-1":   "Middle East (UAE)",
	"eu-central-1":   "EU (Frankfurt)",
	"eu-west-1":      "EU (Ireland)",
	"eu-west-2":      "EU (London)",
	"eu-west-3":      "EU (Paris)",
	"eu-north-1":     "EU (Stockholm)",
	"eu-south-1":     "EU (Milan)",
	"me-south-1":     "Middle East (Bahrain)",
	"sa-east-1":      "South America (Sao Paulo)",
}

// GetRegionDescriptiveName returns the location name the AWS Pricing API uses for a region
func GetRegionDescriptiveName(region string) (string, bool) {
	name, ok := RegionDescriptiveNames[region]
	return name, ok
}

// IsValidRegion checks if a region code is well formed.
// Regions missing from RegionDescriptiveNames are valid but have no Pricing API location.
func IsValidRegion(region string) bool {
	return regionCodePattern.MatchString(region)
}

// GetDefaultRegion returns the default AWS region
func GetDefaultRegion() string {
	return "us-east-1"
}

// RegionFromLocationConstraint converts an S3 bucket location constraint to a region code.
// An empty constraint means us-east-1, and the legacy "EU" constraint means eu-west-1.
func RegionFromLocationConstraint(constraint string) string {
	switch constraint {
	case "":
		return GetDefaultRegion()
	case "EU":
		return "eu-west-1"
	default:
		return constraint
	}
}
