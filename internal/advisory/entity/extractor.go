// Package entity pulls crop, location, product, policy and technology
// mentions out of raw message text via pattern matching.
package entity

import (
	"regexp"
	"sort"
	"strings"
)

// cropSynonyms maps regional-language produce names to the canonical
// English crop used by the reference datasets.
var cropSynonyms = map[string]string{
	"mahindi":   "maize",
	"oduma":     "maize",
	"bandek":    "maize",
	"mbemba":    "maize",
	"mbembe":    "maize",
	"mpempe":    "maize",
	"maharagwe": "beans",
	"viazi":     "potato",
	"nyanya":    "tomato",
	"sukuma":    "kale",
	"vitunguu":  "onion",
	"ndizi":     "banana",
	"mchele":    "rice",
	"ngano":     "wheat",
	"mihogo":    "cassava",
}

var canonicalCrops = []string{
	"maize", "beans", "potato", "potatoes", "sweet potato", "tomato",
	"tomatoes", "cabbage", "kale", "onion", "onions", "banana", "bananas",
	"mango", "mangoes", "avocado", "coffee", "tea", "rice", "wheat",
	"sorghum", "millet", "cassava", "carrot", "carrots", "peas",
	"sugarcane", "macadamia",
}

var counties = []string{
	"baringo", "bomet", "bungoma", "busia", "elgeyo marakwet", "embu",
	"garissa", "homa bay", "isiolo", "kajiado", "kakamega", "kericho",
	"kiambu", "kilifi", "kirinyaga", "kisii", "kisumu", "kitui", "kwale",
	"laikipia", "lamu", "machakos", "makueni", "mandera", "marsabit",
	"meru", "migori", "mombasa", "murang'a", "nairobi", "nakuru", "nandi",
	"narok", "nyamira", "nyandarua", "nyeri", "samburu", "siaya",
	"taita taveta", "tana river", "tharaka nithi", "trans nzoia",
	"turkana", "uasin gishu", "vihiga", "wajir", "west pokot",
}

var products = []string{
	"fertilizer", "fertiliser", "seeds", "seed", "pesticide", "herbicide",
	"insecticide", "fungicide", "animal feed", "vaccine", "agrochemical",
}

var policies = []string{
	"subsidy", "subsidies", "e-voucher", "voucher", "levy", "cess",
	"price control", "import duty", "export ban", "minimum price",
	"land policy", "tax",
}

var technologies = []string{
	"drip irrigation", "irrigation", "greenhouse", "solar dryer", "solar",
	"mobile app", "sms alerts", "m-pesa", "tractor", "drone",
	"soil testing", "cold storage", "hermetic bags",
}

var (
	cropPattern       = alternation(append(keys(cropSynonyms), canonicalCrops...))
	locationPattern   = alternation(counties)
	productPattern    = alternation(products)
	policyPattern     = alternation(policies)
	technologyPattern = alternation(technologies)
)

// alternation builds a word-bounded alternation over the terms, longest
// first so multi-word terms win over their prefixes ("sweet potato" before
// "potato").
func alternation(terms []string) *regexp.Regexp {
	sorted := make([]string, len(terms))
	copy(sorted, terms)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	for i, t := range sorted {
		sorted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`\b(` + strings.Join(sorted, "|") + `)\b`)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// Crop returns the first crop mentioned in the text, normalized to its
// canonical English name. A message mentioning two crops yields only the
// first encountered positionally. Empty string means no crop found.
func Crop(text string) string {
	match := cropPattern.FindString(strings.ToLower(text))
	if match == "" {
		return ""
	}
	if canonical, ok := cropSynonyms[match]; ok {
		return canonical
	}
	return normalizeCrop(match)
}

// Location returns the first Kenyan county mentioned in the text, or "".
func Location(text string) string {
	return locationPattern.FindString(strings.ToLower(text))
}

// Product returns the first agricultural input product mentioned, or "".
func Product(text string) string {
	return productPattern.FindString(strings.ToLower(text))
}

// Policy returns the first policy term mentioned, or "".
func Policy(text string) string {
	return policyPattern.FindString(strings.ToLower(text))
}

// Technology returns the first technology term mentioned, or "".
func Technology(text string) string {
	return technologyPattern.FindString(strings.ToLower(text))
}

// normalizeCrop collapses simple plural forms so "tomatoes" and "tomato"
// enrich against the same produce rows.
func normalizeCrop(crop string) string {
	switch crop {
	case "potatoes":
		return "potato"
	case "tomatoes":
		return "tomato"
	case "onions":
		return "onion"
	case "bananas":
		return "banana"
	case "mangoes":
		return "mango"
	case "carrots":
		return "carrot"
	}
	return crop
}
