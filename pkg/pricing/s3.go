package pricing

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/younsl/s3inventory/internal/models"
	"github.com/younsl/s3inventory/pkg/utils"
)

const (
	serviceCodeS3 = "AmazonS3"
	bytesPerGB    = 1 << 30
)

// Estimator looks up S3 Standard storage prices, caching them per region
type Estimator struct {
	client PricingAPI

	mu    sync.Mutex
	cache map[string]float64
	stats map[string]*APIStats
}

// NewEstimator creates an Estimator. A nil client makes every lookup use the default prices.
func NewEstimator(client PricingAPI) *Estimator {
	return &Estimator{
		client: client,
		cache:  make(map[string]float64),
		stats:  make(map[string]*APIStats),
	}
}

// StandardStoragePrice returns the S3 Standard storage price in USD per GB-month for a region
func (e *Estimator) StandardStoragePrice(ctx context.Context, region string) (float64, PricingSource) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if price, ok := e.cache[region]; ok {
		e.regionStats(region).Cache++
		return price, PricingSourceCache
	}

	location, ok := utils.GetRegionDescriptiveName(region)
	if ok && e.client != nil {
		price, err := e.fetchStandardStoragePrice(ctx, location)
		if err == nil {
			e.regionStats(region).Success++
			e.cache[region] = price
			return price, PricingSourceAPI
		}
		e.regionStats(region).Failure++
	}

	if price, ok := DefaultS3StandardPrices[region]; ok {
		return price, PricingSourceDefault
	}
	return 0, PricingSourceNA
}

func (e *Estimator) fetchStandardStoragePrice(ctx context.Context, location string) (float64, error) {
	products, err := getPricingProducts(ctx, e.client, serviceCodeS3, []types.Filter{
		termMatch("location", location),
		termMatch("productFamily", "Storage"),
		termMatch("storageClass", "General Purpose"),
		termMatch("volumeType", "Standard"),
	})
	if err != nil {
		return 0, err
	}

	var lastErr error
	for _, product := range products {
		price, err := ExtractFirstTierPrice(product)
		if err == nil {
			return price, nil
		}
		lastErr = err
	}
	return 0, lastErr
}

// regionStats must be called with e.mu held
func (e *Estimator) regionStats(region string) *APIStats {
	s, ok := e.stats[region]
	if !ok {
		s = &APIStats{}
		e.stats[region] = s
	}
	return s
}

// Stats returns a copy of the Pricing API statistics by region
func (e *Estimator) Stats() map[string]APIStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	statsCopy := make(map[string]APIStats, len(e.stats))
	for region, s := range e.stats {
		statsCopy[region] = *s
	}
	return statsCopy
}

// EstimateMonthlyCost returns the monthly storage cost of the records at the given price.
// Buckets without a size datapoint are not counted.
func EstimateMonthlyCost(records []models.BucketRecord, pricePerGB float64) float64 {
	var totalGB float64
	for _, record := range records {
		totalGB += utils.FloatOrZero(record.SizeBytes) / bytesPerGB
	}
	return totalGB * pricePerGB
}
