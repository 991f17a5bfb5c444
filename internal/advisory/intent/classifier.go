// Package intent maps a farmer message to one of the discrete advisory
// intents using an ordered keyword-rule cascade.
package intent

import (
	"strings"

	"shamba-workers/internal/advisory/entity"
)

// Type is the classified purpose of a user message.
type Type string

const (
	Greeting       Type = "greeting"
	Thanks         Type = "thanks"
	Counterfeit    Type = "counterfeit"
	Disease        Type = "disease"
	Policy         Type = "policy"
	Technology     Type = "technology"
	Insights       Type = "insights"
	Forecast       Type = "forecast"
	Market         Type = "market"
	Warehouse      Type = "warehouse"
	Transport      Type = "transport"
	Buyers         Type = "buyers"
	SupplyChain    Type = "supplyChain"
	QualityControl Type = "qualityControl"
	AboutAI        Type = "aboutAI"
	General        Type = "general"
)

// Intent is the classification result with whatever entities were found.
// Absent entities are empty strings, never errors.
type Intent struct {
	Type       Type   `json:"type"`
	Crop       string `json:"crop,omitempty"`
	Location   string `json:"location,omitempty"`
	Product    string `json:"product,omitempty"`
	Policy     string `json:"policy,omitempty"`
	Technology string `json:"technology,omitempty"`
}

// rule pairs an intent type with its keyword predicate.
type rule struct {
	typ      Type
	keywords []string
}

// cascade is evaluated top to bottom; the first matching rule wins. The
// order is part of the external behavioral contract: a message containing
// both "price" and "storage" resolves to market because market is checked
// before warehouse.
var cascade = []rule{
	{Greeting, []string{
		"hello", "hi ", "hey", "good morning", "good afternoon",
		"good evening", "habari", "jambo", "mambo",
	}},
	{Thanks, []string{"thank", "thanks", "asante", "shukran"}},
	{Counterfeit, []string{
		"counterfeit", "fake", "genuine", "authentic", "imitation",
		"bandia",
	}},
	{Disease, []string{
		"disease", "pest", "blight", "wilt", "fungus", "aphid",
		"armyworm", "infection", "magonjwa", "dying", "yellowing",
	}},
	{Policy, []string{
		"policy", "subsidy", "subsidies", "government", "regulation",
		"levy", "e-voucher", "cess",
	}},
	{Technology, []string{
		"technology", "irrigation", "greenhouse", "mobile app", "digital",
		"innovation", "solar", "drone", "tractor",
	}},
	{Insights, []string{
		"insight", "insights", "trend", "sentiment", "farmers saying",
		"community report", "what are farmers",
	}},
	{Forecast, []string{
		"forecast", "predict", "projection", "next season", "expected",
		"production estimate", "demand outlook",
	}},
	{Market, []string{
		"price", "market", "sell", "how much", "bei", "soko", "cost",
	}},
	{Warehouse, []string{
		"warehouse", "storage", "store my", "cold room", "silo", "ghala",
	}},
	{Transport, []string{
		"transport", "delivery", "truck", "logistics", "usafiri",
		"move my",
	}},
	{Buyers, []string{
		"buyer", "buyers", "who buys", "purchase", "wholesale", "customer",
	}},
	{SupplyChain, []string{
		"supply chain", "middlemen", "value chain", "distribution",
	}},
	{QualityControl, []string{
		"quality", "grade", "grading", "standard", "certification",
		"inspection",
	}},
	{AboutAI, []string{
		"who are you", "what are you", "about you", "how do you work",
		"are you a robot", "are you human", "ai assistant",
	}},
}

// Classify evaluates the cascade against the lower-cased message and
// returns the first matching intent, attaching extracted entities.
// State-free; never fails. Falls back to General when nothing matches.
func Classify(message string) Intent {
	text := strings.ToLower(message)

	out := Intent{
		Type:       General,
		Crop:       entity.Crop(text),
		Location:   entity.Location(text),
		Product:    entity.Product(text),
		Policy:     entity.Policy(text),
		Technology: entity.Technology(text),
	}

	for _, r := range cascade {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				out.Type = r.typ
				return out
			}
		}
	}
	return out
}
