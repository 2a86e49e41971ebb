package pricing

// PricingSource represents the source of pricing information
type PricingSource string

const (
	// PricingSourceAPI indicates pricing data came from AWS API
	PricingSourceAPI PricingSource = "API"

	// PricingSourceCache indicates pricing data came from cache
	PricingSourceCache PricingSource = "Cache"

	// PricingSourceDefault indicates pricing data came from hardcoded defaults
	PricingSourceDefault PricingSource = "Default"

	// PricingSourceNA indicates pricing data is not available
	PricingSourceNA PricingSource = "N/A"
)

// APIStats counts Pricing API lookups for one region
type APIStats struct {
	Success int
	Failure int
	Cache   int
}

// Total returns the number of API calls made, cache hits excluded
func (s APIStats) Total() int {
	return s.Success + s.Failure
}

// SuccessRate returns the percentage of successful API calls
func (s APIStats) SuccessRate() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Success) / float64(s.Total()) * 100.0
}

// Default S3 Standard storage prices in USD per GB-month (first tier)
// These are fallback prices if Pricing API fails
var DefaultS3StandardPrices = map[string]float64{
	"us-east-1":      0.023,
	"us-east-2":      0.023,
	"us-west-1":      0.026,
	"us-west-2":      0.023,
	"ca-central-1":   0.025,
	"eu-west-1":      0.023,
	"eu-west-2":      0.024,
	"eu-central-1":   0.0245,
	"ap-northeast-1": 0.025,
	"ap-northeast-2": 0.025, // Seoul region is about 9% more expensive
	"ap-southeast-1": 0.025,
	"ap-south-1":     0.025,
	"sa-east-1":      0.0405,
}
