// internal/advisory/sentiment/engine.go
package sentiment

import (
	"fmt"
	"sort"
	"strings"

	"shamba-workers/internal/models"
)

// noDataResponse is the shared graceful degradation when zero reports or
// clusters match a query.
func noDataResponse(subject string) string {
	return fmt.Sprintf(
		"I don't have any farmer reports about %s yet. Would you like to contribute what you're seeing in your area? Verified reports help other farmers.",
		subject,
	)
}

// CounterfeitAlert checks alert clusters for counterfeit activity matching
// the product and location. Returns the first matching cluster formatted
// with report count and confidence percentage, or a verify-authenticity
// fallback. Never fails.
func CounterfeitAlert(clusters []models.SentimentCluster, product, location string) string {
	for _, c := range clusters {
		if c.Sentiment != models.SentimentNegative || !c.IsAlert {
			continue
		}
		if !topicMatches(c, models.TopicCounterfeit, product) {
			continue
		}
		if !countiesMatch(c.Counties, location) {
			continue
		}
		return fmt.Sprintf(
			"⚠️ Counterfeit alert: %d verified farmer reports (%.0f%% confidence) flag fake %s in %s. Buy only from certified agro-dealers and check packaging seals.",
			c.ReportCount, c.ConfidenceScore*100, orDefault(product, "farm inputs"), joinCounties(c.Counties),
		)
	}
	return fmt.Sprintf(
		"No counterfeit alerts for %s in your area right now. Still, always verify authenticity before buying: check for KEBS marks and buy from certified dealers.",
		orDefault(product, "farm inputs"),
	)
}

// DiseaseAlert is a two-tier lookup: a matching insight (pre-synthesized,
// higher confidence) produces confident phrasing; raw report matches only
// produce hedged "unverified reports" phrasing. This distinction is a core
// invariant of the engine.
func DiseaseAlert(insights []models.SentimentInsight, reports []models.SentimentReport, crop, location string) string {
	for _, ins := range insights {
		if ins.Topic != models.TopicDisease {
			continue
		}
		if !insightMatchesCrop(ins, crop) {
			continue
		}
		if !countiesMatch(ins.AffectedCounties, location) {
			continue
		}
		return fmt.Sprintf(
			"🚨 Disease alert (%.0f%% confidence, %d reports): %s %s",
			ins.ConfidenceScore*100, ins.SourceReportCount, ins.Insight, ins.ActionableAdvice,
		)
	}

	matched := 0
	for _, r := range reports {
		if r.Topic != models.TopicDisease {
			continue
		}
		if crop != "" && !strings.Contains(strings.ToLower(r.Text), strings.ToLower(crop)) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(r.County), strings.ToLower(location)) {
			continue
		}
		matched++
	}
	if matched > 0 {
		return fmt.Sprintf(
			"There are %d unverified reports of crop disease matching your question. Treat this as an early signal, not a confirmed alert: inspect your crop closely and contact your extension officer if you see symptoms.",
			matched,
		)
	}

	return noDataResponse("crop disease " + describeScope(crop, location))
}

// PolicyImplementationGap computes the negative share over matching
// reports and buckets into three severity tiers. The thresholds are exact:
// above 70% is a gap, 30-70% is mixed, below 30% is positive.
func PolicyImplementationGap(reports []models.SentimentReport, policy, location string) string {
	total, negative := 0, 0
	for _, r := range reports {
		if r.Topic != models.TopicPolicy {
			continue
		}
		if policy != "" && !reportMentions(r, policy) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(r.County), strings.ToLower(location)) {
			continue
		}
		total++
		if r.Sentiment == models.SentimentNegative {
			negative++
		}
	}

	if total == 0 {
		return noDataResponse("the " + orDefault(policy, "policy") + " program " + describeScope("", location))
	}

	negativePercentage := float64(negative) / float64(total) * 100

	switch {
	case negativePercentage > 70:
		return fmt.Sprintf(
			"Implementation gap detected: %.0f%% of %d farmer reports on the %s program are negative. Farmers on the ground are not seeing the promised benefits. Raise this with your county agriculture office.",
			negativePercentage, total, orDefault(policy, "policy"),
		)
	case negativePercentage >= 30:
		return fmt.Sprintf(
			"Mixed results: %.0f%% of %d farmer reports on the %s program are negative. Experiences vary by area, so ask farmers near you before relying on it.",
			negativePercentage, total, orDefault(policy, "policy"),
		)
	default:
		return fmt.Sprintf(
			"Positive so far: only %.0f%% of %d farmer reports on the %s program are negative. Most farmers report it working as intended.",
			negativePercentage, total, orDefault(policy, "policy"),
		)
	}
}

// TechnologyAdoptionSentiment buckets the positive share the same way and
// surfaces the 3 most frequent tags across matching reports (frequency
// descending, ties broken by first-seen order).
func TechnologyAdoptionSentiment(reports []models.SentimentReport, technology string) string {
	total, positive := 0, 0
	tagCounts := map[string]int{}
	tagOrder := []string{}

	for _, r := range reports {
		if r.Topic != models.TopicTechnology {
			continue
		}
		if technology != "" && !reportMentions(r, technology) {
			continue
		}
		total++
		if r.Sentiment == models.SentimentPositive {
			positive++
		}
		for _, tag := range r.Tags {
			if tagCounts[tag] == 0 {
				tagOrder = append(tagOrder, tag)
			}
			tagCounts[tag]++
		}
	}

	if total == 0 {
		return noDataResponse(orDefault(technology, "that technology"))
	}

	positivePercentage := float64(positive) / float64(total) * 100
	topTags := topTagsByFrequency(tagCounts, tagOrder, 3)

	var verdict string
	switch {
	case positivePercentage > 70:
		verdict = "Farmers are largely POSITIVE"
	case positivePercentage >= 30:
		verdict = "Farmer experience is MIXED"
	default:
		verdict = "Farmers are largely NEGATIVE"
	}

	response := fmt.Sprintf(
		"%s about %s: %.0f%% of %d reports are favourable.",
		verdict, orDefault(technology, "this technology"), positivePercentage, total,
	)
	if len(topTags) > 0 {
		response += " Most mentioned: " + strings.Join(topTags, ", ") + "."
	}
	return response
}

func topTagsByFrequency(counts map[string]int, firstSeen []string, n int) []string {
	tags := make([]string, len(firstSeen))
	copy(tags, firstSeen)
	sort.SliceStable(tags, func(i, j int) bool {
		return counts[tags[i]] > counts[tags[j]]
	})
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

func topicMatches(c models.SentimentCluster, topic models.Topic, term string) bool {
	if c.Topic != topic {
		return false
	}
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(string(c.Topic)), needle) {
		return true
	}
	for _, kw := range c.Keywords {
		if strings.Contains(strings.ToLower(kw), needle) {
			return true
		}
	}
	return false
}

func insightMatchesCrop(ins models.SentimentInsight, crop string) bool {
	if crop == "" {
		return true
	}
	needle := strings.ToLower(crop)
	for _, c := range ins.AffectedCrops {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(ins.Insight), needle)
}

func countiesMatch(counties []string, location string) bool {
	if location == "" {
		return true
	}
	needle := strings.ToLower(location)
	for _, c := range counties {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	return false
}

func reportMentions(r models.SentimentReport, term string) bool {
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(r.Text), needle) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func joinCounties(counties []string) string {
	if len(counties) == 0 {
		return "your area"
	}
	return strings.Join(counties, ", ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func describeScope(crop, location string) string {
	switch {
	case crop != "" && location != "":
		return "affecting " + crop + " in " + location
	case crop != "":
		return "affecting " + crop
	case location != "":
		return "in " + location
	default:
		return "in your area"
	}
}
