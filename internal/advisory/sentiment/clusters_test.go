package sentiment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shamba-workers/internal/models"
)

func verifiedReport(id string, topic models.Topic, sentiment models.Sentiment, county string, tags ...string) models.SentimentReport {
	return models.SentimentReport{
		ID:        id,
		County:    county,
		Sentiment: sentiment,
		Topic:     topic,
		Text:      "report " + id,
		Timestamp: time.Now(),
		Verified:  true,
		Tags:      tags,
	}
}

func TestBuildClusters_GroupsByTopic(t *testing.T) {
	reports := []models.SentimentReport{
		verifiedReport("r1", models.TopicDisease, models.SentimentNegative, "kisumu", "maize"),
		verifiedReport("r2", models.TopicDisease, models.SentimentNegative, "siaya", "maize"),
		verifiedReport("r3", models.TopicDisease, models.SentimentNegative, "kisumu", "blight"),
		verifiedReport("r4", models.TopicPolicy, models.SentimentPositive, "nakuru"),
	}

	clusters := BuildClusters(reports)

	// The policy topic has only one report, below the cluster minimum.
	assert.Len(t, clusters, 1)
	c := clusters[0]
	assert.Equal(t, models.TopicDisease, c.Topic)
	assert.Equal(t, 3, c.ReportCount)
	assert.ElementsMatch(t, []string{"kisumu", "siaya"}, c.Counties)
	assert.ElementsMatch(t, []string{"maize", "blight"}, c.Keywords)
	assert.NotEmpty(t, c.ID)
}

func TestBuildClusters_IgnoresUnverifiedReports(t *testing.T) {
	reports := []models.SentimentReport{
		verifiedReport("r1", models.TopicDisease, models.SentimentNegative, "kisumu"),
		verifiedReport("r2", models.TopicDisease, models.SentimentNegative, "kisumu"),
		{ID: "r3", Topic: models.TopicDisease, Sentiment: models.SentimentNegative, County: "kisumu", Verified: false},
	}

	assert.Empty(t, BuildClusters(reports))
}

func TestBuildClusters_AlertRequiresNegativeMajority(t *testing.T) {
	negative := []models.SentimentReport{
		verifiedReport("r1", models.TopicCounterfeit, models.SentimentNegative, "nakuru"),
		verifiedReport("r2", models.TopicCounterfeit, models.SentimentNegative, "nakuru"),
		verifiedReport("r3", models.TopicCounterfeit, models.SentimentNegative, "nakuru"),
		verifiedReport("r4", models.TopicCounterfeit, models.SentimentPositive, "nakuru"),
	}
	clusters := BuildClusters(negative)
	assert.Len(t, clusters, 1)
	assert.True(t, clusters[0].IsAlert)

	balanced := []models.SentimentReport{
		verifiedReport("r1", models.TopicCounterfeit, models.SentimentNegative, "nakuru"),
		verifiedReport("r2", models.TopicCounterfeit, models.SentimentPositive, "nakuru"),
		verifiedReport("r3", models.TopicCounterfeit, models.SentimentPositive, "nakuru"),
	}
	clusters = BuildClusters(balanced)
	assert.Len(t, clusters, 1)
	assert.False(t, clusters[0].IsAlert)
}

func TestBuildClusters_ConfidenceRisesWithReportCount(t *testing.T) {
	small := makeReports(models.TopicDisease, 3, 4)
	large := makeReports(models.TopicDisease, 15, 20)

	smallClusters := BuildClusters(small)
	largeClusters := BuildClusters(large)

	assert.Less(t, smallClusters[0].ConfidenceScore, largeClusters[0].ConfidenceScore)
	assert.Equal(t, 1.0, largeClusters[0].ConfidenceScore)
}

func TestBuildInsights_OnlyFromAlertClusters(t *testing.T) {
	clusters := []models.SentimentCluster{
		{Topic: models.TopicDisease, IsAlert: true, Counties: []string{"kisumu"}, Keywords: []string{"maize"}, ReportCount: 10, ConfidenceScore: 0.5},
		{Topic: models.TopicPolicy, IsAlert: false, Counties: []string{"nakuru"}, ReportCount: 5, ConfidenceScore: 0.25},
	}

	insights := BuildInsights(clusters)

	assert.Len(t, insights, 1)
	ins := insights[0]
	assert.Equal(t, models.TopicDisease, ins.Topic)
	assert.Contains(t, ins.Insight, "kisumu")
	assert.Equal(t, []string{"maize"}, ins.AffectedCrops)
	assert.NotEmpty(t, ins.ActionableAdvice)
	assert.Equal(t, 10, ins.SourceReportCount)
}
