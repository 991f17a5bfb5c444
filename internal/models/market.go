// internal/models/market.go
package models

// ProducePrice is one priced produce line at a market on a given date.
type ProducePrice struct {
	ProduceName string  `json:"produceName"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Date        string  `json:"date"`
}

// Coordinates is an optional lat/long pair.
type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Market is read-only reference data supplied by the dataset store.
type Market struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	County        string         `json:"county"`
	Coordinates   *Coordinates   `json:"coordinates,omitempty"`
	ProducePrices []ProducePrice `json:"producePrices"`
}

// ConfidenceLevel grades how reliable a forecast is.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// Forecast is a production/demand projection for one produce over a period.
type Forecast struct {
	ID                 string          `json:"id"`
	ProduceName        string          `json:"produceName"`
	Period             string          `json:"period"`
	ExpectedProduction float64         `json:"expectedProduction"`
	ExpectedDemand     float64         `json:"expectedDemand"`
	ConfidenceLevel    ConfidenceLevel `json:"confidenceLevel"`
	County             string          `json:"county,omitempty"`
	Unit               string          `json:"unit,omitempty"`
}

// Warehouse is a storage facility record used for capability filtering.
type Warehouse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	County           string   `json:"county"`
	Location         string   `json:"location,omitempty"`
	CapacityTons     float64  `json:"capacityTons"`
	HasRefrigeration bool     `json:"hasRefrigeration"`
	GoodsTypes       []string `json:"goodsTypes"`
	PricePerMonth    float64  `json:"pricePerMonth,omitempty"`
}

// Transporter is a logistics provider record.
type Transporter struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	CountiesServed []string `json:"countiesServed"`
	HasRefrigerated bool    `json:"hasRefrigerated"`
	CapacityTons   float64  `json:"capacityTons"`
	ContactPhone   string   `json:"contactPhone,omitempty"`
}
