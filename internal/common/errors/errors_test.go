package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError_RetryableTechnicalError(t *testing.T) {
	stdErr := NewDatasetLoadFailedError(errors.New("connection refused"))

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "DATASET_LOAD_FAILED", bpmnErr.Code)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.Equal(t, "DATASET_LOAD_FAILED", bpmnErr.ErrorVariables["originalErrorCode"])
}

func TestConvertToBPMNError_BusinessErrorNoRetries(t *testing.T) {
	stdErr := NewMessageMissingError()

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "MESSAGE_MISSING", bpmnErr.Code)
	assert.False(t, bpmnErr.Retryable)
	assert.Equal(t, 0, bpmnErr.Retries)
}

func TestConvertToBPMNError_UnmappedCodeFallsBack(t *testing.T) {
	stdErr := &StandardError{Code: "SOMETHING_NEW", Message: "x", Retryable: false}

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "SOMETHING_NEW", bpmnErr.Code)
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeAlertScanFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeNotificationSendFailed))
	assert.Equal(t, 2, GetRetryCount(ErrCodeQueryTimeout))
	assert.Equal(t, 2, GetRetryCount(ErrCodeCacheUnavailable))
	assert.Equal(t, 0, GetRetryCount(ErrCodeMessageMissing))
	assert.Equal(t, 0, GetRetryCount(ErrCodeDatasetValidationFailed))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeSearchQueryFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeIndexNotFound))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "DATASET", GetErrorCategory(ErrCodeDatasetLoadFailed))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeElasticsearchConnectionFailed))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "ALERTS", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "ADVISORY", GetErrorCategory(ErrCodeMessageMissing))
	assert.Equal(t, "OTHER", GetErrorCategory("BUSINESS_RULE_VIOLATION"))
}

func TestToErrorVariables_MergesCustomVariables(t *testing.T) {
	bpmnErr := &BPMNError{
		Code:    "ALERT_SCAN_FAILED",
		Message: "scan failed",
		ErrorVariables: map[string]interface{}{
			"county": "nakuru",
		},
	}

	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, "ALERT_SCAN_FAILED", vars["errorCode"])
	assert.Equal(t, "nakuru", vars["county"])
}

func TestNotificationSendFailedError_CarriesChannel(t *testing.T) {
	stdErr := NewNotificationSendFailedError("sms", errors.New("topic gone"))

	require.Equal(t, ErrCodeNotificationSendFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "sms")
	assert.Contains(t, stdErr.Details, "topic gone")
	assert.True(t, stdErr.Retryable)
}
