package sentimentalertscan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shamba-workers/internal/common/logger"
	"shamba-workers/internal/datastore"
	"shamba-workers/internal/models"
)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

// fakeNotifier records deliveries and can be told to fail.
type fakeNotifier struct {
	channel  string
	fail     bool
	subjects []string
	bodies   []string
}

func (f *fakeNotifier) Channel() string { return f.channel }

func (f *fakeNotifier) Send(ctx context.Context, subject, body string) error {
	if f.fail {
		return errors.New("delivery refused")
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

func counterfeitReports(n int, county string) []models.SentimentReport {
	reports := make([]models.SentimentReport, 0, n)
	for i := 0; i < n; i++ {
		reports = append(reports, models.SentimentReport{
			ID:        "rep-" + string(rune('a'+i)),
			FarmerID:  "farmer-1",
			County:    county,
			Sentiment: models.SentimentNegative,
			Topic:     models.TopicCounterfeit,
			Text:      "bought fake fertilizer",
			Tags:      []string{"fertilizer"},
			Verified:  true,
		})
	}
	return reports
}

func newTestHandler(t *testing.T, reports []models.SentimentReport, notifiers ...Notifier) *Handler {
	store := datastore.NewMemory(datastore.Snapshot{Reports: reports})
	return NewHandler(createTestConfig(), store, notifiers, logger.NewTestLogger(t))
}

func TestExecute_AlertClusterNotifiesAllChannels(t *testing.T) {
	email := &fakeNotifier{channel: "email"}
	sms := &fakeNotifier{channel: "sms"}
	h := newTestHandler(t, counterfeitReports(5, "nakuru"), email, sms)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, 1, output.ClustersScanned)
	assert.Equal(t, 1, output.AlertsFound)
	assert.Equal(t, 2, output.NotificationsSent)
	assert.Equal(t, []string{"counterfeit"}, output.AlertTopics)

	require.Len(t, email.bodies, 1)
	assert.Contains(t, email.subjects[0], "counterfeit")
	assert.Contains(t, email.bodies[0], "nakuru")
	assert.Contains(t, email.bodies[0], "fertilizer")
	require.Len(t, sms.bodies, 1)
}

func TestExecute_NoAlertsBelowClusterMinimum(t *testing.T) {
	email := &fakeNotifier{channel: "email"}
	h := newTestHandler(t, counterfeitReports(2, "nakuru"), email)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, 0, output.ClustersScanned)
	assert.Equal(t, 0, output.AlertsFound)
	assert.Empty(t, email.bodies)
}

func TestExecute_PositiveClusterIsNotAnAlert(t *testing.T) {
	reports := []models.SentimentReport{}
	for i := 0; i < 4; i++ {
		reports = append(reports, models.SentimentReport{
			ID:        "rep-pos",
			FarmerID:  "farmer-2",
			County:    "kiambu",
			Sentiment: models.SentimentPositive,
			Topic:     models.TopicTechnology,
			Text:      "drip irrigation working well",
			Verified:  true,
		})
	}
	email := &fakeNotifier{channel: "email"}
	h := newTestHandler(t, reports, email)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, 1, output.ClustersScanned)
	assert.Equal(t, 0, output.AlertsFound)
	assert.Empty(t, email.bodies)
}

func TestExecute_CountyFilter(t *testing.T) {
	reports := append(counterfeitReports(5, "nakuru"), counterfeitReports(5, "kisumu")...)
	email := &fakeNotifier{channel: "email"}
	h := newTestHandler(t, reports, email)

	output, err := h.Execute(context.Background(), &Input{County: "kisumu"})
	require.NoError(t, err)

	assert.Equal(t, 1, output.AlertsFound)
	require.Len(t, email.bodies, 1)
	assert.Contains(t, email.bodies[0], "kisumu")
	assert.NotContains(t, email.bodies[0], "nakuru")
}

func TestExecute_PartialDeliveryFailureStillCompletes(t *testing.T) {
	email := &fakeNotifier{channel: "email", fail: true}
	sms := &fakeNotifier{channel: "sms"}
	h := newTestHandler(t, counterfeitReports(5, "nakuru"), email, sms)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, 1, output.NotificationsSent)
}

func TestExecute_AllDeliveriesFailed(t *testing.T) {
	email := &fakeNotifier{channel: "email", fail: true}
	sms := &fakeNotifier{channel: "sms", fail: true}
	h := newTestHandler(t, counterfeitReports(5, "nakuru"), email, sms)

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotificationSendFailed))
}

type failingSource struct{}

func (failingSource) GetSentimentReports(ctx context.Context) ([]models.SentimentReport, error) {
	return nil, errors.New("elasticsearch unreachable")
}

func TestExecute_SourceFailure(t *testing.T) {
	h := NewHandler(createTestConfig(), failingSource{}, nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlertScanFailed))
}

func TestExecute_NilInputScansEverything(t *testing.T) {
	email := &fakeNotifier{channel: "email"}
	h := newTestHandler(t, counterfeitReports(5, "nakuru"), email)

	output, err := h.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, output.AlertsFound)
}
