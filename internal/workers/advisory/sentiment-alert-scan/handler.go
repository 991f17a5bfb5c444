package sentimentalertscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"shamba-workers/internal/advisory/sentiment"
	apperrors "shamba-workers/internal/common/errors"
	"shamba-workers/internal/common/logger"
	"shamba-workers/internal/common/metrics"
	"shamba-workers/internal/models"
)

const (
	TaskType = "sentiment-alert-scan"
)

var (
	ErrAlertScanFailed        = errors.New("ALERT_SCAN_FAILED")
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// ReportSource yields the raw sentiment reports to scan. Satisfied by any
// datastore.Datasets implementation.
type ReportSource interface {
	GetSentimentReports(ctx context.Context) ([]models.SentimentReport, error)
}

type Handler struct {
	config    *Config
	source    ReportSource
	notifiers []Notifier
	logger    logger.Logger
	errors    *apperrors.ErrorHandler
}

func NewHandler(config *Config, source ReportSource, notifiers []Notifier, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		source:    source,
		notifiers: notifiers,
		logger:    scoped,
		errors:    apperrors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		var stdErr *apperrors.StandardError
		if errors.Is(err, ErrNotificationSendFailed) {
			stdErr = apperrors.NewNotificationSendFailedError("all", err)
		} else {
			stdErr = apperrors.NewAlertScanFailedError(err)
		}
		h.errors.HandleJobError(ctx, client, job, stdErr)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		input = &Input{}
	}

	reports, err := h.source.GetSentimentReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlertScanFailed, err)
	}

	reports = filterReports(reports, input.County, input.Topic)
	clusters := sentiment.BuildClusters(reports)

	output := &Output{ClustersScanned: len(clusters)}
	attempted, sent := 0, 0

	for _, c := range clusters {
		if !c.IsAlert {
			continue
		}
		output.AlertsFound++
		output.AlertTopics = append(output.AlertTopics, string(c.Topic))

		subject, body := formatAlert(c)
		for _, n := range h.notifiers {
			attempted++
			if err := n.Send(ctx, subject, body); err != nil {
				h.logger.Warn("alert notification failed", map[string]interface{}{
					"channel": n.Channel(),
					"topic":   string(c.Topic),
					"error":   err.Error(),
				})
				continue
			}
			sent++
			metrics.SentimentAlertsPublished.WithLabelValues(n.Channel()).Inc()
		}
	}
	output.NotificationsSent = sent

	if attempted > 0 && sent == 0 {
		return nil, fmt.Errorf("%w: all %d deliveries failed", ErrNotificationSendFailed, attempted)
	}

	h.logger.Info("sentiment scan finished", map[string]interface{}{
		"clusters": output.ClustersScanned,
		"alerts":   output.AlertsFound,
		"sent":     output.NotificationsSent,
	})
	return output, nil
}

func filterReports(reports []models.SentimentReport, county, topic string) []models.SentimentReport {
	if county == "" && topic == "" {
		return reports
	}
	out := make([]models.SentimentReport, 0, len(reports))
	for _, r := range reports {
		if county != "" && !strings.EqualFold(r.County, county) {
			continue
		}
		if topic != "" && !strings.EqualFold(string(r.Topic), topic) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func formatAlert(c models.SentimentCluster) (subject, body string) {
	counties := "multiple counties"
	if len(c.Counties) > 0 {
		counties = strings.Join(c.Counties, ", ")
	}
	subject = fmt.Sprintf("ShambaConnect alert: %s reports rising in %s", c.Topic, counties)
	body = fmt.Sprintf(
		"%d verified farmer reports flag %s issues in %s (confidence %.0f%%).",
		c.ReportCount, c.Topic, counties, c.ConfidenceScore*100,
	)
	if len(c.Keywords) > 0 {
		body += " Keywords: " + strings.Join(c.Keywords, ", ") + "."
	}
	return subject, body
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
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
