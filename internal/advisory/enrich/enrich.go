// Package enrich cross-references extracted entities against the reference
// datasets to build the response context bundle.
package enrich

import (
	"sort"
	"strings"

	"shamba-workers/internal/models"
)

// MarketQuote is one market paired with the produce price line that
// matched the queried crop.
type MarketQuote struct {
	Market models.Market
	Price  models.ProducePrice
}

// Bundle is the ranked, filtered context handed to response synthesis.
type Bundle struct {
	Quotes       []MarketQuote
	Warehouses   []models.Warehouse
	Forecast     *models.Forecast
	Transporters []models.Transporter
}

// BestMarketsForCrop filters markets whose produce prices contain the crop
// as a case-insensitive substring ("potato" matches "Sweet Potato" by
// design), sorts descending by price and returns the top 3. Returns an
// empty slice, never nil semantics the caller must guard, when nothing
// matches or the crop is empty.
func BestMarketsForCrop(markets []models.Market, crop string) []MarketQuote {
	quotes := []MarketQuote{}
	if crop == "" {
		return quotes
	}
	needle := strings.ToLower(crop)

	for _, m := range markets {
		for _, pp := range m.ProducePrices {
			if strings.Contains(strings.ToLower(pp.ProduceName), needle) {
				quotes = append(quotes, MarketQuote{Market: m, Price: pp})
				break
			}
		}
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Price.Price > quotes[j].Price.Price
	})

	if len(quotes) > 3 {
		quotes = quotes[:3]
	}
	return quotes
}

// WarehousesForCrop filters warehouses whose goods types contain the crop
// as a case-insensitive substring.
func WarehousesForCrop(warehouses []models.Warehouse, crop string) []models.Warehouse {
	out := []models.Warehouse{}
	if crop == "" {
		return out
	}
	needle := strings.ToLower(crop)

	for _, w := range warehouses {
		for _, g := range w.GoodsTypes {
			if strings.Contains(strings.ToLower(g), needle) {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

// TopForecast picks, among forecasts whose produce name contains the crop,
// the one with the highest expected demand as the authoritative forecast.
// Ties break to the first encountered. Returns nil when nothing matches.
func TopForecast(forecasts []models.Forecast, crop string) *models.Forecast {
	if crop == "" {
		return nil
	}
	needle := strings.ToLower(crop)

	var best *models.Forecast
	for i := range forecasts {
		f := &forecasts[i]
		if !strings.Contains(strings.ToLower(f.ProduceName), needle) {
			continue
		}
		if best == nil || f.ExpectedDemand > best.ExpectedDemand {
			best = f
		}
	}
	if best == nil {
		return nil
	}
	copied := *best
	return &copied
}

// TransportersForCounty filters transporters serving the county
// (case-insensitive substring over the served list).
func TransportersForCounty(transporters []models.Transporter, county string) []models.Transporter {
	out := []models.Transporter{}
	if county == "" {
		return out
	}
	needle := strings.ToLower(county)

	for _, t := range transporters {
		for _, c := range t.CountiesServed {
			if strings.Contains(strings.ToLower(c), needle) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Build assembles the full enrichment bundle for one crop/location pair.
// Pure and side-effect free; every field degrades to empty when nothing
// matches.
func Build(crop, location string,
	markets []models.Market,
	forecasts []models.Forecast,
	warehouses []models.Warehouse,
	transporters []models.Transporter,
) Bundle {
	return Bundle{
		Quotes:       BestMarketsForCrop(markets, crop),
		Warehouses:   WarehousesForCrop(warehouses, crop),
		Forecast:     TopForecast(forecasts, crop),
		Transporters: TransportersForCounty(transporters, location),
	}
}
