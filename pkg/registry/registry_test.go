package registry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRegistry() *WorkerRegistry {
	return &WorkerRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-08-01T00:00:00Z",
		Workers: []Worker{
			{
				ID:                   "generate-response",
				DisplayName:          "Generate Response",
				Description:          "Answers one farmer message",
				Category:             "advisory",
				Version:              "1.0.0",
				TaskType:             "generate-response",
				ImplementationStatus: "completed",
				ErrorCodes:           []string{"MESSAGE_MISSING", "DATASET_LOAD_FAILED"},
				Timeout:              "30s",
				Retries:              3,
			},
			{
				ID:                   "sentiment-alert-scan",
				DisplayName:          "Sentiment Alert Scan",
				Description:          "Scans reports for alert clusters",
				Category:             "advisory",
				Version:              "1.0.0",
				TaskType:             "sentiment-alert-scan",
				ImplementationStatus: "completed",
				Timeout:              "60s",
				Retries:              3,
			},
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "worker-registry.json")
	require.NoError(t, SaveRegistry(sampleRegistry(), path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Workers, 2)
	assert.Equal(t, "generate-response", loaded.Workers[0].TaskType)
}

func TestFindByTaskType(t *testing.T) {
	reg := sampleRegistry()

	w, ok := reg.FindByTaskType("sentiment-alert-scan")
	require.True(t, ok)
	assert.Equal(t, "Sentiment Alert Scan", w.DisplayName)

	_, ok = reg.FindByTaskType("unknown-task")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, sampleRegistry().Validate())

	empty := &WorkerRegistry{}
	assert.Error(t, empty.Validate())

	dup := sampleRegistry()
	dup.Workers[1].ID = dup.Workers[0].ID
	assert.ErrorContains(t, dup.Validate(), "duplicate")

	missing := sampleRegistry()
	missing.Workers[0].TaskType = ""
	assert.ErrorContains(t, missing.Validate(), "TaskType")
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
