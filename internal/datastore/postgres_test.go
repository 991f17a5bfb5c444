package datastore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shamba-workers/internal/common/database"
	"shamba-workers/internal/models"
)

func newMockStore(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgres(&database.PostgresClient{DB: db}), mock
}

func TestPostgres_GetMarkets(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "county", "latitude", "longitude", "produce_prices",
	}).AddRow(
		"mkt-1", "Wakulima", "nairobi", -1.2833, 36.8333,
		[]byte(`[{"produceName":"Maize","price":48,"unit":"kg","date":"2026-08-28"}]`),
	).AddRow(
		"mkt-2", "Kongowea", "mombasa", nil, nil, []byte(`[]`),
	)
	mock.ExpectQuery(`SELECT id, name, county, latitude, longitude, produce_prices\s+FROM markets`).
		WillReturnRows(rows)

	markets, err := store.GetMarkets(context.Background())

	require.NoError(t, err)
	require.Len(t, markets, 2)
	assert.Equal(t, "Wakulima", markets[0].Name)
	require.NotNil(t, markets[0].Coordinates)
	assert.InDelta(t, -1.2833, markets[0].Coordinates.Lat, 0.0001)
	require.Len(t, markets[0].ProducePrices, 1)
	assert.Equal(t, "Maize", markets[0].ProducePrices[0].ProduceName)
	assert.Nil(t, markets[1].Coordinates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetMarkets_BadPricePayload(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "county", "latitude", "longitude", "produce_prices",
	}).AddRow("mkt-1", "Wakulima", "nairobi", nil, nil, []byte(`{not json`))
	mock.ExpectQuery(`SELECT id, name, county, latitude, longitude, produce_prices\s+FROM markets`).
		WillReturnRows(rows)

	markets, err := store.GetMarkets(context.Background())

	assert.Error(t, err)
	assert.Nil(t, markets)
	assert.Contains(t, err.Error(), "mkt-1")
}

func TestPostgres_GetForecasts(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "produce_name", "period", "expected_production", "expected_demand",
		"confidence_level", "county", "unit",
	}).AddRow(
		"fc-1", "Potato", "2026 short rains", 1200.0, 1800.0, "high", "nyandarua", "tonnes",
	)
	mock.ExpectQuery(`SELECT id, produce_name, period, expected_production, expected_demand`).
		WillReturnRows(rows)

	forecasts, err := store.GetForecasts(context.Background())

	require.NoError(t, err)
	require.Len(t, forecasts, 1)
	assert.Equal(t, models.ConfidenceHigh, forecasts[0].ConfidenceLevel)
	assert.Equal(t, 1800.0, forecasts[0].ExpectedDemand)
}

func TestPostgres_GetWarehouses_ScansGoodsTypesArray(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "county", "location", "goods_types", "has_refrigeration",
		"capacity_tons", "price_per_month",
	}).AddRow(
		"wh-1", "Eldoret Grain Store", "uasin gishu", "Eldoret town",
		"{maize,wheat,beans}", false, 500.0, 12000.0,
	)
	mock.ExpectQuery(`SELECT id, name, county, location, goods_types, has_refrigeration`).
		WillReturnRows(rows)

	warehouses, err := store.GetWarehouses(context.Background())

	require.NoError(t, err)
	require.Len(t, warehouses, 1)
	assert.Equal(t, []string{"maize", "wheat", "beans"}, warehouses[0].GoodsTypes)
	assert.False(t, warehouses[0].HasRefrigeration)
}

func TestPostgres_GetTransporters(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "name", "counties_served", "has_refrigerated", "capacity_tons", "contact_phone",
	}).AddRow(
		"tr-1", "Rift Valley Haulers", "{nakuru,\"uasin gishu\"}", true, 10.0, "+254700000001",
	)
	mock.ExpectQuery(`SELECT id, name, counties_served, has_refrigerated, capacity_tons, contact_phone`).
		WillReturnRows(rows)

	transporters, err := store.GetTransporters(context.Background())

	require.NoError(t, err)
	require.Len(t, transporters, 1)
	assert.Equal(t, []string{"nakuru", "uasin gishu"}, transporters[0].CountiesServed)
	assert.True(t, transporters[0].HasRefrigerated)
}

func TestPostgres_GetSentimentReports(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "farmer_id", "county", "location", "sentiment", "topic", "text",
		"created_at", "verified", "tags",
	}).AddRow(
		"rep-1", "farmer-9", "kisumu", "Ahero", "negative", "disease",
		"leaf blight spreading on maize", now, true, "{maize,blight}",
	)
	mock.ExpectQuery(`SELECT id, farmer_id, county, location, sentiment, topic, text`).
		WillReturnRows(rows)

	reports, err := store.GetSentimentReports(context.Background())

	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, models.TopicDisease, reports[0].Topic)
	assert.Equal(t, models.SentimentNegative, reports[0].Sentiment)
	assert.True(t, reports[0].Verified)
	assert.Equal(t, []string{"maize", "blight"}, reports[0].Tags)
	assert.Equal(t, now, reports[0].Timestamp)
}

func TestPostgres_GetSentimentClusters(t *testing.T) {
	store, mock := newMockStore(t)

	updated := time.Date(2026, 8, 25, 6, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "topic", "sentiment", "keywords", "report_count", "counties",
		"confidence_score", "last_updated", "is_alert",
	}).AddRow(
		"cl-1", "counterfeit", "negative", "{fertilizer,fake}", 12,
		"{nakuru,kericho}", 0.6, updated, true,
	)
	mock.ExpectQuery(`SELECT id, topic, sentiment, keywords, report_count, counties`).
		WillReturnRows(rows)

	clusters, err := store.GetSentimentClusters(context.Background())

	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.True(t, clusters[0].IsAlert)
	assert.Equal(t, 12, clusters[0].ReportCount)
	assert.Equal(t, []string{"nakuru", "kericho"}, clusters[0].Counties)
}

func TestPostgres_GetSentimentInsights(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "topic", "insight", "actionable_advice", "affected_crops",
		"affected_counties", "confidence_score", "source_report_count",
	}).AddRow(
		"ins-1", "disease", "Maize blight reports rising in western counties",
		"Scout fields weekly and report suspected cases", "{maize}",
		"{kisumu,siaya}", 0.75, 15,
	)
	mock.ExpectQuery(`SELECT id, topic, insight, actionable_advice, affected_crops`).
		WillReturnRows(rows)

	insights, err := store.GetSentimentInsights(context.Background())

	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, []string{"maize"}, insights[0].AffectedCrops)
	assert.Equal(t, 15, insights[0].SourceReportCount)
}

func TestPostgres_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, name, county, latitude, longitude, produce_prices`).
		WillReturnError(errors.New("connection refused"))

	markets, err := store.GetMarkets(context.Background())

	assert.Error(t, err)
	assert.Nil(t, markets)
	assert.Contains(t, err.Error(), "failed to query markets")
}

func TestLoadSnapshot_AbortsOnFirstFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, name, county, latitude, longitude, produce_prices`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "county", "latitude", "longitude", "produce_prices",
		}))
	mock.ExpectQuery(`SELECT id, produce_name, period`).
		WillReturnError(errors.New("connection reset"))

	snap, err := LoadSnapshot(context.Background(), store)

	assert.Error(t, err)
	assert.Nil(t, snap)
}
