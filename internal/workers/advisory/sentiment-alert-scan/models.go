// internal/workers/advisory/sentiment-alert-scan/models.go
package sentimentalertscan

type Input struct {
	County string `json:"county,omitempty"`
	Topic  string `json:"topic,omitempty"`
}

type Output struct {
	ClustersScanned   int      `json:"clustersScanned"`
	AlertsFound       int      `json:"alertsFound"`
	NotificationsSent int      `json:"notificationsSent"`
	AlertTopics       []string `json:"alertTopics,omitempty"`
}
