package pricing

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ExtractFirstTierPrice extracts the USD on-demand price of the first usage tier
// (beginRange 0) from a pricing product document
func ExtractFirstTierPrice(priceJSON string) (float64, error) {
	if !gjson.Valid(priceJSON) {
		return 0, fmt.Errorf("error parsing pricing data: invalid JSON")
	}

	onDemand := gjson.Get(priceJSON, "terms.OnDemand")
	if !onDemand.Exists() {
		return 0, fmt.Errorf("OnDemand field not found or invalid")
	}

	var (
		price float64
		found bool
	)
	onDemand.ForEach(func(_, skuOffer gjson.Result) bool {
		skuOffer.Get("priceDimensions").ForEach(func(_, dimension gjson.Result) bool {
			if dimension.Get("beginRange").String() != "0" {
				return true
			}
			usd := dimension.Get("pricePerUnit.USD")
			if !usd.Exists() {
				return true
			}
			price = usd.Float()
			found = true
			return false
		})
		return !found
	})

	if !found {
		return 0, fmt.Errorf("USD price not found or invalid")
	}
	return price, nil
}
