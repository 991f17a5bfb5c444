// Package sentiment aggregates verified farmer reports into topic clusters
// and derives counterfeit/disease/policy/technology insights.
package sentiment

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"shamba-workers/internal/models"
)

const (
	// Minimum verified reports before a topic forms a cluster.
	minClusterReports = 3

	// Share of negative reports above which a cluster becomes an alert.
	alertNegativeShare = 0.6

	// Report count at which cluster confidence saturates at 1.0.
	confidenceSaturation = 20
)

// BuildClusters recomputes topic clusters from verified reports. Derived
// data only: the input is never mutated and the result is rebuilt from
// scratch on every call.
func BuildClusters(reports []models.SentimentReport) []models.SentimentCluster {
	byTopic := map[models.Topic][]models.SentimentReport{}
	topicOrder := []models.Topic{}

	for _, r := range reports {
		if !r.Verified {
			continue
		}
		if _, seen := byTopic[r.Topic]; !seen {
			topicOrder = append(topicOrder, r.Topic)
		}
		byTopic[r.Topic] = append(byTopic[r.Topic], r)
	}

	clusters := []models.SentimentCluster{}
	for _, topic := range topicOrder {
		group := byTopic[topic]
		if len(group) < minClusterReports {
			continue
		}
		clusters = append(clusters, clusterFromGroup(topic, group))
	}
	return clusters
}

func clusterFromGroup(topic models.Topic, group []models.SentimentReport) models.SentimentCluster {
	negatives := 0
	countySet := map[string]bool{}
	counties := []string{}
	keywords := []string{}
	keywordSeen := map[string]bool{}
	var latest time.Time

	for _, r := range group {
		if r.Sentiment == models.SentimentNegative {
			negatives++
		}
		if r.County != "" && !countySet[r.County] {
			countySet[r.County] = true
			counties = append(counties, r.County)
		}
		for _, tag := range r.Tags {
			if !keywordSeen[tag] {
				keywordSeen[tag] = true
				keywords = append(keywords, tag)
			}
		}
		if r.Timestamp.After(latest) {
			latest = r.Timestamp
		}
	}

	negativeShare := float64(negatives) / float64(len(group))

	confidence := float64(len(group)) / confidenceSaturation
	if confidence > 1 {
		confidence = 1
	}

	return models.SentimentCluster{
		ID:              uuid.NewString(),
		Topic:           topic,
		Sentiment:       dominantSentiment(group),
		Keywords:        keywords,
		ReportCount:     len(group),
		Counties:        counties,
		ConfidenceScore: confidence,
		LastUpdated:     latest,
		IsAlert:         negativeShare > alertNegativeShare,
	}
}

func dominantSentiment(group []models.SentimentReport) models.Sentiment {
	counts := map[models.Sentiment]int{}
	for _, r := range group {
		counts[r.Sentiment]++
	}

	best := models.SentimentNeutral
	bestCount := 0
	// Fixed evaluation order keeps ties deterministic.
	for _, s := range []models.Sentiment{
		models.SentimentNegative,
		models.SentimentPositive,
		models.SentimentNeutral,
	} {
		if counts[s] > bestCount {
			best = s
			bestCount = counts[s]
		}
	}
	return best
}

// insightAdvice holds the per-topic actionable advice attached to
// synthesized insights.
var insightAdvice = map[models.Topic]string{
	models.TopicCounterfeit: "Buy inputs only from certified agro-dealers and check for KEBS verification marks before paying.",
	models.TopicDisease:     "Isolate affected plants, consult your county agricultural extension officer, and avoid moving planting material out of the area.",
	models.TopicPolicy:      "Confirm program details at your county agriculture office before committing resources.",
	models.TopicTechnology:  "Visit a demonstration farm or ask a neighbouring adopter before investing.",
	models.TopicOther:       "Share more details through a verified report so other farmers can benefit.",
}

// BuildInsights synthesizes narrative insights from alert clusters.
// Non-alert clusters are skipped: an insight asserts something farmers
// should act on, so it needs the stronger signal.
func BuildInsights(clusters []models.SentimentCluster) []models.SentimentInsight {
	insights := []models.SentimentInsight{}
	for _, c := range clusters {
		if !c.IsAlert {
			continue
		}
		insights = append(insights, models.SentimentInsight{
			ID:                uuid.NewString(),
			Topic:             c.Topic,
			Insight:           insightNarrative(c),
			ActionableAdvice:  insightAdvice[c.Topic],
			AffectedCrops:     cropsFromKeywords(c.Keywords),
			AffectedCounties:  c.Counties,
			ConfidenceScore:   c.ConfidenceScore,
			SourceReportCount: c.ReportCount,
		})
	}
	return insights
}

func insightNarrative(c models.SentimentCluster) string {
	countyPart := "several counties"
	if len(c.Counties) == 1 {
		countyPart = c.Counties[0]
	}
	switch c.Topic {
	case models.TopicCounterfeit:
		return "Multiple verified reports point to counterfeit farm inputs circulating in " + countyPart + "."
	case models.TopicDisease:
		return "Verified reports indicate crop disease pressure building in " + countyPart + "."
	case models.TopicPolicy:
		return "Farmers in " + countyPart + " report problems with how a policy program is being implemented."
	case models.TopicTechnology:
		return "Farmers in " + countyPart + " report significant issues with a promoted technology."
	default:
		return "Farmers in " + countyPart + " are reporting a recurring concern."
	}
}

// cropsFromKeywords keeps the keyword tags that name crops so insights can
// be matched against crop queries. Tags are free-form, so this is a best
// effort over the sorted tag list.
func cropsFromKeywords(keywords []string) []string {
	known := map[string]bool{
		"maize": true, "beans": true, "potato": true, "tomato": true,
		"kale": true, "cabbage": true, "coffee": true, "tea": true,
		"wheat": true, "rice": true, "banana": true, "avocado": true,
	}
	crops := []string{}
	for _, k := range keywords {
		if known[k] {
			crops = append(crops, k)
		}
	}
	sort.Strings(crops)
	return crops
}
