// internal/workers/advisory/ingest-sentiment-report/models.go
package ingestsentimentreport

// Input carries one raw report document as submitted by the intake
// process. It is validated before anything else touches it.
type Input struct {
	Report map[string]interface{} `json:"report"`
}

type Output struct {
	Accepted bool     `json:"accepted"`
	ReportID string   `json:"reportId,omitempty"`
	Reasons  []string `json:"reasons,omitempty"`
}
