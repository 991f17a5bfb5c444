// internal/models/sentiment.go
package models

import "time"

// Sentiment is the polarity of a farmer report.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Topic categorizes what a sentiment report is about.
type Topic string

const (
	TopicCounterfeit Topic = "counterfeit"
	TopicDisease     Topic = "disease"
	TopicPolicy      Topic = "policy"
	TopicTechnology  Topic = "technology"
	TopicOther       Topic = "other"
)

// SentimentReport is one farmer submission, the atomic unit of
// collective intelligence. Created externally, consumed read-only.
type SentimentReport struct {
	ID        string    `json:"id"`
	FarmerID  string    `json:"farmerId"`
	County    string    `json:"county"`
	Location  string    `json:"location"`
	Sentiment Sentiment `json:"sentiment"`
	Topic     Topic     `json:"topic"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Verified  bool      `json:"verified"`
	Tags      []string  `json:"tags"`
}

// SentimentCluster aggregates reports sharing a topic. Derived, recomputed
// per query. ConfidenceScore rises with report density; IsAlert is set only
// when the negative-sentiment share exceeds the alert threshold.
type SentimentCluster struct {
	ID              string    `json:"id"`
	Topic           Topic     `json:"topic"`
	Sentiment       Sentiment `json:"sentiment"`
	Keywords        []string  `json:"keywords"`
	ReportCount     int       `json:"reportCount"`
	Counties        []string  `json:"counties"`
	ConfidenceScore float64   `json:"confidenceScore"`
	LastUpdated     time.Time `json:"lastUpdated"`
	IsAlert         bool      `json:"isAlert"`
}

// SentimentInsight is a narrative synthesis over one or more clusters.
type SentimentInsight struct {
	ID                string   `json:"id"`
	Topic             Topic    `json:"topic"`
	Insight           string   `json:"insight"`
	ActionableAdvice  string   `json:"actionableAdvice"`
	AffectedCrops     []string `json:"affectedCrops"`
	AffectedCounties  []string `json:"affectedCounties"`
	ConfidenceScore   float64  `json:"confidenceScore"`
	SourceReportCount int      `json:"sourceReportCount"`
}
