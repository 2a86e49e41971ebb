package pricing

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/younsl/s3inventory/internal/models"
)

const standardStorageProduct = `{
  "product": {"productFamily": "Storage", "attributes": {"volumeType": "Standard"}},
  "terms": {
    "OnDemand": {
      "SKU.JRTCKXETXF": {
        "priceDimensions": {
          "SKU.JRTCKXETXF.PGHJ3S3EYE": {
            "beginRange": "51200", "endRange": "512000",
            "pricePerUnit": {"USD": "0.0220000000"}
          },
          "SKU.JRTCKXETXF.6YS6EN2CT7": {
            "beginRange": "0", "endRange": "51200",
            "pricePerUnit": {"USD": "0.0230000000"}
          }
        }
      }
    }
  }
}`

type fakePricing struct {
	priceList []string
	err       error
	calls     int
	lastInput *pricing.GetProductsInput
}

func (f *fakePricing) GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
	f.calls++
	f.lastInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &pricing.GetProductsOutput{PriceList: f.priceList}, nil
}

func TestExtractFirstTierPrice(t *testing.T) {
	price, err := ExtractFirstTierPrice(standardStorageProduct)
	if err != nil {
		t.Fatalf("ExtractFirstTierPrice() error = %v", err)
	}
	if price != 0.023 {
		t.Errorf("price = %v, want 0.023", price)
	}

	for _, doc := range []string{`not json`, `{}`, `{"terms":{"OnDemand":{}}}`} {
		if _, err := ExtractFirstTierPrice(doc); err == nil {
			t.Errorf("expected error for %q", doc)
		}
	}
}

func TestStandardStoragePriceFromAPI(t *testing.T) {
	client := &fakePricing{priceList: []string{standardStorageProduct}}
	e := NewEstimator(client)

	price, source := e.StandardStoragePrice(context.Background(), "us-east-1")
	if price != 0.023 || source != PricingSourceAPI {
		t.Fatalf("got %v from %s, want 0.023 from API", price, source)
	}
	if aws.ToString(client.lastInput.ServiceCode) != "AmazonS3" {
		t.Errorf("service code = %q", aws.ToString(client.lastInput.ServiceCode))
	}

	price, source = e.StandardStoragePrice(context.Background(), "us-east-1")
	if price != 0.023 || source != PricingSourceCache {
		t.Fatalf("second lookup got %v from %s, want cache", price, source)
	}
	if client.calls != 1 {
		t.Errorf("expected 1 API call, got %d", client.calls)
	}

	stats := e.Stats()["us-east-1"]
	if stats.Success != 1 || stats.Cache != 1 || stats.Failure != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.SuccessRate() != 100 {
		t.Errorf("success rate = %v", stats.SuccessRate())
	}
}

func TestStandardStoragePriceFallback(t *testing.T) {
	e := NewEstimator(&fakePricing{err: errors.New("AccessDenied")})

	price, source := e.StandardStoragePrice(context.Background(), "ap-northeast-2")
	if source != PricingSourceDefault || price != DefaultS3StandardPrices["ap-northeast-2"] {
		t.Fatalf("got %v from %s, want default price", price, source)
	}
	if e.Stats()["ap-northeast-2"].Failure != 1 {
		t.Errorf("expected a recorded failure, got %+v", e.Stats())
	}

	if _, source := NewEstimator(nil).StandardStoragePrice(context.Background(), "me-south-1"); source != PricingSourceNA {
		t.Errorf("region without default price should be N/A, got %s", source)
	}
}

func TestEstimateMonthlyCost(t *testing.T) {
	ten, hundred, nan := 10.0*bytesPerGB, 100.0*bytesPerGB, math.NaN()
	records := []models.BucketRecord{
		{Name: "a", SizeBytes: &ten},
		{Name: "b", SizeBytes: &hundred},
		{Name: "c"},
		{Name: "d", SizeBytes: &nan},
	}

	got := EstimateMonthlyCost(records, 0.023)
	if math.Abs(got-110*0.023) > 1e-9 {
		t.Errorf("EstimateMonthlyCost() = %v, want %v", got, 110*0.023)
	}
}
