package ingestsentimentreport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"shamba-workers/internal/common/logger"
	"shamba-workers/internal/common/metrics"
	"shamba-workers/internal/common/validation"
	"shamba-workers/internal/models"
)

const (
	TaskType = "ingest-sentiment-report"

	// recentWindow caps the duplicate lookup.
	recentWindow = 5
)

var (
	ErrReportIndexFailed = errors.New("REPORT_INDEX_FAILED")
)

// ReportIndex is the search-store surface the ingest path needs.
// Satisfied by datastore.SentimentSearch.
type ReportIndex interface {
	SearchReports(ctx context.Context, query, county string, limit int) ([]models.SentimentReport, error)
	IndexReport(ctx context.Context, report models.SentimentReport) error
}

type Handler struct {
	config *Config
	index  ReportIndex
	logger logger.Logger
}

func NewHandler(config *Config, index ReportIndex, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "REPORT_INDEX_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

// execute validates, dedups and indexes one report document. A document
// that fails validation is rejected with a warning, never a job failure.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || len(input.Report) == 0 {
		metrics.SentimentReportsIngested.WithLabelValues("rejected").Inc()
		return &Output{Accepted: false, Reasons: []string{"report document is required"}}, nil
	}

	doc := input.Report
	if _, ok := doc["id"]; !ok {
		// Intake assigns the document ID so re-delivery stays idempotent.
		doc["id"] = uuid.NewString()
	}

	result, err := validation.ValidateDocument(validation.SchemaSentimentReport, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportIndexFailed, err)
	}
	if !result.Valid {
		h.logger.Warn("report document rejected", map[string]interface{}{
			"errors": result.ErrorSummary(),
		})
		metrics.SentimentReportsIngested.WithLabelValues("rejected").Inc()
		return &Output{Accepted: false, Reasons: result.Errors}, nil
	}

	report, err := decodeReport(doc)
	if err != nil {
		h.logger.Warn("report document rejected", map[string]interface{}{
			"errors": err.Error(),
		})
		metrics.SentimentReportsIngested.WithLabelValues("rejected").Inc()
		return &Output{Accepted: false, Reasons: []string{err.Error()}}, nil
	}

	if dup, found := h.findDuplicate(ctx, report); found {
		h.logger.Info("duplicate report skipped", map[string]interface{}{
			"reportId":    report.ID,
			"duplicateOf": dup.ID,
		})
		metrics.SentimentReportsIngested.WithLabelValues("duplicate").Inc()
		return &Output{
			Accepted: false,
			ReportID: report.ID,
			Reasons:  []string{fmt.Sprintf("duplicate of report %s", dup.ID)},
		}, nil
	}

	if err := h.index.IndexReport(ctx, report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportIndexFailed, err)
	}

	metrics.SentimentReportsIngested.WithLabelValues("accepted").Inc()
	return &Output{Accepted: true, ReportID: report.ID}, nil
}

func decodeReport(doc map[string]interface{}) (models.SentimentReport, error) {
	var report models.SentimentReport
	raw, err := json.Marshal(doc)
	if err != nil {
		return report, fmt.Errorf("report document does not decode: %v", err)
	}
	if err := json.Unmarshal(raw, &report); err != nil {
		return report, fmt.Errorf("report document does not decode: %v", err)
	}
	return report, nil
}

// findDuplicate looks for a recent report with the same farmer and text.
// Search degradation never blocks ingestion, indexing is idempotent by ID.
func (h *Handler) findDuplicate(ctx context.Context, report models.SentimentReport) (models.SentimentReport, bool) {
	hits, err := h.index.SearchReports(ctx, report.Text, report.County, recentWindow)
	if err != nil {
		h.logger.Warn("duplicate lookup failed, ingesting anyway", map[string]interface{}{
			"error": err.Error(),
		})
		return models.SentimentReport{}, false
	}

	for _, hit := range hits {
		if hit.ID == report.ID {
			continue
		}
		if hit.FarmerID == report.FarmerID && strings.EqualFold(hit.Text, report.Text) {
			return hit, true
		}
	}
	return models.SentimentReport{}, false
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
