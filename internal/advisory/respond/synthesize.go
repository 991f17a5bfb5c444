// internal/advisory/respond/synthesize.go
package respond

import (
	"fmt"
	"strings"

	"shamba-workers/internal/advisory/enrich"
	"shamba-workers/internal/advisory/intent"
	"shamba-workers/internal/advisory/language"
	"shamba-workers/internal/advisory/sentiment"
	"shamba-workers/internal/models"
)

// Context carries everything synthesis may draw on for one turn: the
// enrichment bundle plus the read-only sentiment collections.
type Context struct {
	Bundle   enrich.Bundle
	Reports  []models.SentimentReport
	Clusters []models.SentimentCluster
	Insights []models.SentimentInsight
}

// Synthesize produces the final reply for a classified intent. Non-English
// messages first attempt the localized template path; if no localized
// template matches, synthesis falls through to the English intent
// dispatch. Every English branch ends with the data-attribution footer.
func Synthesize(in intent.Intent, lang language.Language, message string, ctx Context) string {
	if lang != language.English {
		if reply, ok := HandleLanguageResponse(lang, message, ctx.Bundle.Quotes); ok {
			return reply
		}
	}

	var body string
	switch in.Type {
	case intent.Greeting:
		body = greetingResponse()
	case intent.Thanks:
		body = thanksResponse()
	case intent.Counterfeit:
		body = safely(fallbackCounterfeit, func() string {
			return sentiment.CounterfeitAlert(ctx.Clusters, in.Product, in.Location)
		})
	case intent.Disease:
		body = safely(fallbackDisease, func() string {
			return diseaseResponse(in, ctx)
		})
	case intent.Policy:
		body = safely(fallbackPolicy, func() string {
			return sentiment.PolicyImplementationGap(ctx.Reports, in.Policy, in.Location)
		})
	case intent.Technology:
		body = safely(fallbackTechnology, func() string {
			return sentiment.TechnologyAdoptionSentiment(ctx.Reports, in.Technology)
		})
	case intent.Insights:
		body = safely(fallbackInsights, func() string {
			return insightsResponse(ctx.Insights)
		})
	case intent.Forecast:
		body = safely(fallbackForecast, func() string {
			return forecastResponse(in, ctx.Bundle.Forecast)
		})
	case intent.Market:
		body = safely(fallbackMarket, func() string {
			return marketResponse(in, ctx.Bundle.Quotes)
		})
	case intent.Warehouse:
		body = safely(fallbackWarehouse, func() string {
			return warehouseResponse(in, ctx.Bundle.Warehouses)
		})
	case intent.Transport:
		body = safely(fallbackTransport, func() string {
			return transportResponse(in, ctx.Bundle.Transporters)
		})
	case intent.Buyers:
		body = safely(fallbackBuyers, func() string {
			return buyersResponse(in, ctx.Bundle)
		})
	case intent.SupplyChain:
		body = supplyChainResponse()
	case intent.QualityControl:
		body = qualityControlResponse()
	case intent.AboutAI:
		body = aboutAIResponse()
	default:
		body = generalResponse(in)
	}

	return appendAttribution(in.Type, body)
}

// safely runs a synthesis sub-function and converts any panic into the
// branch's conversational fallback, so failures never escape the branch
// that produced them.
func safely(fallback string, fn func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fallback
		}
	}()
	return fn()
}

// Intent-specific fallbacks used when a sub-function fails internally.
const (
	fallbackCounterfeit = "I can't check counterfeit reports right now. Would you like market price information instead?"
	fallbackDisease     = "I can't check disease reports right now. Would you like to hear what other farmers in your county are reporting instead?"
	fallbackPolicy      = "I can't check policy feedback right now. Would you like market information instead?"
	fallbackTechnology  = "I can't check technology adoption reports right now. Would you like to try again shortly?"
	fallbackInsights    = "I don't have fresh community insights right now. Would you like market prices instead?"
	fallbackForecast    = "I can't produce a forecast right now. Would you like current market prices instead?"
	fallbackMarket      = "I can't fetch market prices right now. Would you like storage or transport options instead?"
	fallbackWarehouse   = "I can't fetch warehouse listings right now. Would you like market prices instead?"
	fallbackTransport   = "I can't fetch transporter listings right now. Would you like warehouse options instead?"
	fallbackBuyers      = "I can't fetch buyer information right now. Would you like market prices instead?"
)

func greetingResponse() string {
	return "Hello! I'm your ShambaConnect farming assistant. I can help you with market prices, production forecasts, storage, transport, buyers, and what other farmers are reporting. What do you need today?"
}

func thanksResponse() string {
	return "You're welcome! I'm here whenever you need farming advice."
}

func aboutAIResponse() string {
	return "I'm the ShambaConnect advisory assistant. I answer farming questions using market price surveys, production forecasts, registered storage and transport listings, and verified reports from farmers across Kenya. I don't guess: when I don't have data, I'll tell you."
}

func diseaseResponse(in intent.Intent, ctx Context) string {
	if in.Crop == "" {
		return "Which crop is affected? Tell me the crop and your county, and I'll check disease reports from farmers near you."
	}
	return sentiment.DiseaseAlert(ctx.Insights, ctx.Reports, in.Crop, in.Location)
}

func insightsResponse(insights []models.SentimentInsight) string {
	if len(insights) == 0 {
		return "No community insights are available yet. Insights appear once enough verified farmer reports cluster around a topic. Would you like to contribute a report?"
	}

	var b strings.Builder
	b.WriteString("Here's what farmers across the network are reporting:\n")
	shown := insights
	if len(shown) > 3 {
		shown = shown[:3]
	}
	for _, ins := range shown {
		fmt.Fprintf(&b, "\n• %s (%d reports, %.0f%% confidence) %s",
			ins.Insight, ins.SourceReportCount, ins.ConfidenceScore*100, ins.ActionableAdvice)
	}
	return b.String()
}

func forecastResponse(in intent.Intent, forecast *models.Forecast) string {
	if in.Crop == "" {
		return "Which crop would you like a forecast for? Tell me the crop and, if you can, your county."
	}

	// Authored special case: the Nyandarua potato outlook is a fixed
	// report with its own citations, not derived from enrichment data.
	if in.Crop == "potato" && (in.Location == "" || in.Location == "nyandarua") {
		return nyandaruaPotatoForecast
	}

	if forecast == nil {
		return fmt.Sprintf("I don't have a production forecast for %s yet. Would you like current market prices for %s instead?", in.Crop, in.Crop)
	}

	unit := forecast.Unit
	if unit == "" {
		unit = "tonnes"
	}
	scope := forecast.County
	if scope == "" {
		scope = "the monitored counties"
	}
	return fmt.Sprintf(
		"Forecast for %s (%s): expected production is %.0f %s against expected demand of %.0f %s in %s. Confidence level: %s. When demand outpaces production, prices typically firm up towards the end of the period.",
		forecast.ProduceName, forecast.Period,
		forecast.ExpectedProduction, unit,
		forecast.ExpectedDemand, unit,
		scope, forecast.ConfidenceLevel,
	)
}

// nyandaruaPotatoForecast is a literal authored report, preserved verbatim
// as a named special case rather than generated from enrichment data.
const nyandaruaPotatoForecast = `Potato outlook for Nyandarua and the central highlands:

Production is expected to rise about 12% this season as rains normalized after last year's shortfall, with Nyandarua remaining the leading producing county. Demand from Nairobi and Nakuru urban markets continues to grow faster than supply, so farm-gate prices are expected to hold between KES 25 and KES 35 per kg for ware potatoes, with certified seed potato commanding a premium. Storage losses remain the biggest risk: consider diffuse-light stores or sell within three weeks of harvest.

Sources: National Potato Council of Kenya seasonal bulletin; Nyandarua County Department of Agriculture production survey; KALRO Tigoni potato research updates.`

func marketResponse(in intent.Intent, quotes []enrich.MarketQuote) string {
	if in.Crop == "" {
		return "Which crop are you interested in? Tell me the crop and I'll find the best market prices for you."
	}
	if len(quotes) == 0 {
		return fmt.Sprintf("I don't have current price listings for %s. Prices are updated as county surveys come in; try again later or ask about another crop.", in.Crop)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Best current prices for %s:\n", in.Crop)
	for i, q := range quotes {
		fmt.Fprintf(&b, "\n%d. %s (%s county): KES %.0f per %s for %s",
			i+1, q.Market.Name, q.Market.County, q.Price.Price, q.Price.Unit, q.Price.ProduceName)
	}
	b.WriteString("\n\nPrices move daily; confirm with the market before transporting produce.")
	return b.String()
}

func warehouseResponse(in intent.Intent, warehouses []models.Warehouse) string {
	if in.Crop == "" {
		return "Which crop do you need storage for? Some stores are dry-goods only, so the crop matters."
	}
	if len(warehouses) == 0 {
		return fmt.Sprintf("I couldn't find a registered warehouse that handles %s. Would you like me to check transporters who could move it to a larger depot instead?", in.Crop)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Storage options for %s:\n", in.Crop)
	for _, w := range warehouses {
		refrigerated := ""
		if w.HasRefrigeration {
			refrigerated = ", refrigerated"
		}
		fmt.Fprintf(&b, "\n• %s (%s county): %.0f tonne capacity%s", w.Name, w.County, w.CapacityTons, refrigerated)
	}
	return b.String()
}

func transportResponse(in intent.Intent, transporters []models.Transporter) string {
	if in.Location == "" {
		return "Which county are you transporting from? I'll list transporters serving that route."
	}
	if len(transporters) == 0 {
		return fmt.Sprintf("No registered transporters currently serve %s. Would you like storage options near you instead?", in.Location)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Transporters serving %s:\n", in.Location)
	for _, t := range transporters {
		refrigerated := ""
		if t.HasRefrigerated {
			refrigerated = " (refrigerated available)"
		}
		fmt.Fprintf(&b, "\n• %s: up to %.0f tonnes%s", t.Name, t.CapacityTons, refrigerated)
	}
	return b.String()
}

func buyersResponse(in intent.Intent, bundle enrich.Bundle) string {
	if in.Crop == "" {
		return "Which crop are you selling? I'll point you to the markets and buyers paying the most for it."
	}
	if len(bundle.Quotes) == 0 {
		return fmt.Sprintf("I don't have active buyer listings for %s right now. Registered buyers appear in the marketplace section as they post demand.", in.Crop)
	}

	top := bundle.Quotes[0]
	body := fmt.Sprintf(
		"The strongest buying activity for %s is around %s in %s county, where it currently fetches KES %.0f per %s.",
		in.Crop, top.Market.Name, top.Market.County, top.Price.Price, top.Price.Unit,
	)
	if bundle.Forecast != nil {
		body += fmt.Sprintf(" Expected demand for %s this period is %.0f %s, so buyers are likely to stay active.",
			bundle.Forecast.ProduceName, bundle.Forecast.ExpectedDemand, orUnit(bundle.Forecast.Unit))
	}
	return body
}

func supplyChainResponse() string {
	return "To shorten your supply chain: sell through aggregation centres where farmers pool produce for better bargaining power, compare farm-gate offers against the market prices I can fetch for you, and use registered transporters so you're not dependent on a single middleman's lorry. Ask me for prices, storage or transport for a specific crop and I'll fill in the details."
}

func qualityControlResponse() string {
	return "Quality and grading basics: sort produce by size and ripeness before market day, use clean ventilated crates rather than sacks for perishables, and keep produce shaded after harvest. For export or contract buyers you'll need to meet KEBS standards and keep spray records for traceability. Ask about a specific crop for storage and handling advice."
}

func generalResponse(in intent.Intent) string {
	if in.Crop != "" {
		return fmt.Sprintf("I can help with %s in a few ways: market prices, production forecasts, storage, transport, or what other farmers are reporting. What would you like to know?", in.Crop)
	}
	return "I can help you with market prices, production and demand forecasts, storage and transport options, buyers, and verified reports from other farmers. Ask me something like \"what is the maize price in Nakuru\" or \"is there disease affecting potatoes\"."
}

func orUnit(unit string) string {
	if unit == "" {
		return "tonnes"
	}
	return unit
}
