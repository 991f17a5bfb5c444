// internal/advisory/respond/localized.go
package respond

import (
	"fmt"
	"math/rand"
	"strings"

	"shamba-workers/internal/advisory/enrich"
	"shamba-workers/internal/advisory/entity"
	"shamba-workers/internal/advisory/language"
)

// swahiliPriceResponse is the generic Swahili price reply used when the
// question is not about maize.
const swahiliPriceResponse = "Bei za mazao hubadilika kila siku kulingana na soko. Angalia sehemu ya masoko kwenye programu kwa bei za leo za zao lako."

// HandleLanguageResponse attempts a localized template reply for a
// non-English message. Returns (reply, true) when a template matched.
// Returns ("", false) to signal fall-through to English synthesis: either
// the language is only partially localized, or the message carries
// extractable entities that the English data path can answer better.
func HandleLanguageResponse(lang language.Language, message string, quotes []enrich.MarketQuote) (string, bool) {
	set, ok := localizedSets[lang]
	if !ok {
		return "", false
	}

	text := strings.ToLower(message)
	crop := entity.Crop(text)

	for _, r := range set.rules {
		if !containsAny(text, r.keywords) {
			continue
		}
		reply := pickResponse(lang, r, crop)
		if reply == "" {
			continue
		}
		// Market-price enhancement: only when a crop and at least one
		// relevant market were resolved, and the language defines the
		// localized clause.
		if set.enhance != nil && crop != "" && len(quotes) > 0 {
			q := quotes[0]
			reply += " " + set.enhance(crop, q.Market.Name, q.Price.Price, q.Price.Unit)
		}
		return reply, true
	}

	// Fully localized languages answer unmatched small talk with their
	// no-match template, but only when the message carries nothing the
	// English data path could use.
	if set.noMatch != "" && crop == "" && entity.Location(text) == "" {
		return set.noMatch, true
	}

	return "", false
}

// pickResponse resolves the reply text for a matched rule. The Swahili
// price-question rule is data-driven: maize questions return one of the
// fixed maizePricesResponses strings.
func pickResponse(lang language.Language, r localizedRule, crop string) string {
	if lang == language.Swahili && r.pat == patPriceQuestion {
		if crop == "maize" {
			return maizePricesResponses[rand.Intn(len(maizePricesResponses))]
		}
		return swahiliPriceResponse
	}
	if len(r.responses) == 0 {
		return ""
	}
	if len(r.responses) == 1 {
		return r.responses[0]
	}
	return r.responses[rand.Intn(len(r.responses))]
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func swahiliEnhancement(crop, market string, price float64, unit string) string {
	return fmt.Sprintf("Kwa sasa, bei bora ya %s ni KES %.0f kwa %s katika soko la %s.", crop, price, unit, market)
}

func kikuyuEnhancement(crop, market string, price float64, unit string) string {
	return fmt.Sprintf("Rĩu, thogora mwega wa %s nĩ KES %.0f o %s thoko-inĩ ya %s.", crop, price, unit, market)
}

func luoEnhancement(crop, market string, price float64, unit string) string {
	return fmt.Sprintf("Sani, nengo maber mar %s en KES %.0f kuom %s e chiro mar %s.", crop, price, unit, market)
}
