package generateresponse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"shamba-workers/internal/advisory"
	"shamba-workers/internal/common/logger"
	"shamba-workers/internal/models"
)

const (
	TaskType = "generate-response"
)

var (
	ErrMessageMissing    = errors.New("MESSAGE_MISSING")
	ErrDatasetLoadFailed = errors.New("DATASET_LOAD_FAILED")
)

// Responder produces one advisory reply per farmer message. Satisfied by
// advisory.Pipeline.
type Responder interface {
	Respond(ctx context.Context, message string) (advisory.Result, error)
}

type Handler struct {
	config    *Config
	responder Responder
	logger    logger.Logger
}

func NewHandler(config *Config, responder Responder, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		responder: responder,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		errorCode := "DATASET_LOAD_FAILED"
		retries := int32(3)
		if errors.Is(err, ErrMessageMissing) {
			errorCode = "MESSAGE_MISSING"
			retries = 0
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	message := strings.TrimSpace(input.UserMessage)
	if message == "" {
		// Orchestrations that resume a conversation may send only the
		// turn history. Fall back to the latest user turn.
		var conv models.Conversation
		for _, m := range input.History {
			conv = conv.Append(m)
		}
		if last, ok := conv.LastUserMessage(); ok {
			message = strings.TrimSpace(last.Content)
		}
	}
	if message == "" {
		return nil, fmt.Errorf("%w: userMessage is required", ErrMessageMissing)
	}

	res, err := h.responder.Respond(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetLoadFailed, err)
	}

	return &Output{
		Response: res.Reply,
		Language: string(res.Language),
		Intent:   string(res.Intent),
		Crop:     res.Crop,
		Location: res.Location,
	}, nil
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
