package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shamba-workers/internal/models"
)

func testMarkets() []models.Market {
	return []models.Market{
		{
			ID: "m1", Name: "Wakulima", County: "nairobi",
			ProducePrices: []models.ProducePrice{
				{ProduceName: "Tomatoes", Price: 80, Unit: "kg"},
				{ProduceName: "Maize", Price: 45, Unit: "kg"},
			},
		},
		{
			ID: "m2", Name: "Kongowea", County: "mombasa",
			ProducePrices: []models.ProducePrice{
				{ProduceName: "Tomatoes", Price: 120, Unit: "kg"},
			},
		},
		{
			ID: "m3", Name: "Karatina", County: "nyeri",
			ProducePrices: []models.ProducePrice{
				{ProduceName: "Sweet Potato", Price: 60, Unit: "kg"},
			},
		},
		{
			ID: "m4", Name: "Kibuye", County: "kisumu",
			ProducePrices: []models.ProducePrice{
				{ProduceName: "Tomatoes", Price: 95, Unit: "kg"},
			},
		},
		{
			ID: "m5", Name: "Eldoret Main", County: "uasin gishu",
			ProducePrices: []models.ProducePrice{
				{ProduceName: "Tomatoes", Price: 70, Unit: "kg"},
			},
		},
	}
}

func TestBestMarketsForCrop_SortsDescendingByPrice(t *testing.T) {
	quotes := BestMarketsForCrop(testMarkets(), "tomato")

	assert.Len(t, quotes, 3)
	assert.Equal(t, "m2", quotes[0].Market.ID)
	assert.Equal(t, float64(120), quotes[0].Price.Price)
	assert.Equal(t, "m4", quotes[1].Market.ID)
	assert.Equal(t, "m1", quotes[2].Market.ID)
}

func TestBestMarketsForCrop_SubstringMatchIsDeliberate(t *testing.T) {
	// "potato" matches "Sweet Potato"; fuzzy containment is the policy.
	quotes := BestMarketsForCrop(testMarkets(), "potato")
	assert.Len(t, quotes, 1)
	assert.Equal(t, "m3", quotes[0].Market.ID)
}

func TestBestMarketsForCrop_EmptyResults(t *testing.T) {
	assert.Empty(t, BestMarketsForCrop(testMarkets(), "saffron"))
	assert.Empty(t, BestMarketsForCrop(testMarkets(), ""))
	assert.Empty(t, BestMarketsForCrop(nil, "maize"))
}

func TestWarehousesForCrop(t *testing.T) {
	warehouses := []models.Warehouse{
		{ID: "w1", Name: "Nakuru Silos", GoodsTypes: []string{"maize", "wheat"}},
		{ID: "w2", Name: "Mombasa Cold Store", GoodsTypes: []string{"tomatoes", "mangoes"}, HasRefrigeration: true},
	}

	got := WarehousesForCrop(warehouses, "tomato")
	assert.Len(t, got, 1)
	assert.Equal(t, "w2", got[0].ID)

	assert.Empty(t, WarehousesForCrop(warehouses, "coffee"))
}

func TestTopForecast_HighestExpectedDemandWins(t *testing.T) {
	forecasts := []models.Forecast{
		{ID: "f1", ProduceName: "Maize", ExpectedDemand: 5000},
		{ID: "f2", ProduceName: "Maize", ExpectedDemand: 9000},
		{ID: "f3", ProduceName: "Beans", ExpectedDemand: 20000},
	}

	got := TopForecast(forecasts, "maize")
	assert.NotNil(t, got)
	assert.Equal(t, "f2", got.ID)
}

func TestTopForecast_TieBreaksToFirstEncountered(t *testing.T) {
	forecasts := []models.Forecast{
		{ID: "f1", ProduceName: "Maize", ExpectedDemand: 5000},
		{ID: "f2", ProduceName: "Maize", ExpectedDemand: 5000},
	}

	got := TopForecast(forecasts, "maize")
	assert.Equal(t, "f1", got.ID)
}

func TestTopForecast_NoMatchReturnsNil(t *testing.T) {
	assert.Nil(t, TopForecast(nil, "maize"))
	assert.Nil(t, TopForecast([]models.Forecast{{ProduceName: "Beans"}}, "maize"))
}

func TestTransportersForCounty(t *testing.T) {
	transporters := []models.Transporter{
		{ID: "t1", CountiesServed: []string{"nakuru", "nairobi"}},
		{ID: "t2", CountiesServed: []string{"mombasa", "kilifi"}},
	}

	got := TransportersForCounty(transporters, "nakuru")
	assert.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestBuild_DegradesToEmptyBundle(t *testing.T) {
	b := Build("", "", nil, nil, nil, nil)
	assert.Empty(t, b.Quotes)
	assert.Empty(t, b.Warehouses)
	assert.Nil(t, b.Forecast)
	assert.Empty(t, b.Transporters)
}
