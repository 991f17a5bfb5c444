package generateresponse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shamba-workers/internal/advisory"
	"shamba-workers/internal/common/logger"
	"shamba-workers/internal/datastore"
	"shamba-workers/internal/models"
)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func testSnapshot() datastore.Snapshot {
	return datastore.Snapshot{
		Markets: []models.Market{
			{
				ID:     "mkt-001",
				Name:   "Wakulima Market",
				County: "nairobi",
				ProducePrices: []models.ProducePrice{
					{ProduceName: "Maize", Price: 48, Unit: "kg"},
				},
			},
		},
		Forecasts: []models.Forecast{
			{
				ID:                 "fc-001",
				ProduceName:        "Maize",
				Period:             "2026-Q4",
				ExpectedProduction: 1200,
				ExpectedDemand:     900,
				ConfidenceLevel:    models.ConfidenceHigh,
			},
		},
	}
}

func newTestHandler(t *testing.T) *Handler {
	store := datastore.NewMemory(testSnapshot())
	pipeline := advisory.NewPipeline(store, logger.NewTestLogger(t))
	return NewHandler(createTestConfig(), pipeline, logger.NewTestLogger(t))
}

func TestExecute_MarketQuestion(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		UserMessage: "what is the maize price in nairobi",
		FarmerID:    "farmer-42",
	})
	require.NoError(t, err)

	assert.Contains(t, output.Response, "KES")
	assert.Equal(t, "english", output.Language)
	assert.Equal(t, "maize", output.Crop)
	assert.Equal(t, "nairobi", output.Location)
	assert.NotEmpty(t, output.Intent)
}

func TestExecute_MissingMessage(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{FarmerID: "farmer-42"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMessageMissing))
}

func TestExecute_WhitespaceOnlyMessage(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{UserMessage: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMessageMissing))
}

func TestExecute_BlankMessageFallsBackToHistory(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		ConversationID: "conv-7",
		History: []models.ConversationMessage{
			{ID: "m1", Role: models.RoleUser, Content: "habari"},
			{ID: "m2", Role: models.RoleAssistant, Content: "Habari! Nikusaidie vipi?"},
			{ID: "m3", Role: models.RoleUser, Content: "what is the maize price in nairobi"},
		},
	})
	require.NoError(t, err)

	// Latest user turn drives the pipeline, not the assistant reply.
	assert.Contains(t, output.Response, "KES")
	assert.Equal(t, "maize", output.Crop)
}

func TestExecute_HistoryWithoutUserTurnIsMissing(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		History: []models.ConversationMessage{
			{ID: "m1", Role: models.RoleSystem, Content: "session opened"},
			{ID: "m2", Role: models.RoleAssistant, Content: "Karibu ShambaConnect"},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMessageMissing))
}

func TestExecute_NilInput(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), nil)
	require.Error(t, err)
}

type failingResponder struct{}

func (failingResponder) Respond(ctx context.Context, message string) (advisory.Result, error) {
	return advisory.Result{}, errors.New("postgres is down")
}

func TestExecute_ResponderFailure(t *testing.T) {
	h := NewHandler(createTestConfig(), failingResponder{}, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{UserMessage: "bei ya mahindi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatasetLoadFailed))
	assert.Contains(t, err.Error(), "postgres is down")
}

func TestExecute_GarbageInputStillAnswers(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{UserMessage: "askjdh??##"})
	require.NoError(t, err)
	assert.NotEmpty(t, output.Response)
}
