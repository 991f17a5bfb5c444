// internal/datastore/postgres.go
package datastore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"shamba-workers/internal/common/database"
	"shamba-workers/internal/models"
)

// Postgres reads the reference datasets from the platform database.
// Array columns use text[], produce price lines are stored as jsonb.
type Postgres struct {
	client *database.PostgresClient
}

// NewPostgres wraps an existing database client.
func NewPostgres(client *database.PostgresClient) *Postgres {
	return &Postgres{client: client}
}

const marketsQuery = `
	SELECT id, name, county, latitude, longitude, produce_prices
	FROM markets
	ORDER BY name`

func (p *Postgres) GetMarkets(ctx context.Context) ([]models.Market, error) {
	rows, err := p.client.Query(ctx, marketsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query markets: %w", err)
	}
	defer rows.Close()

	var markets []models.Market
	for rows.Next() {
		var (
			m         models.Market
			lat, lng  sql.NullFloat64
			pricesRaw []byte
		)
		if err := rows.Scan(&m.ID, &m.Name, &m.County, &lat, &lng, &pricesRaw); err != nil {
			return nil, fmt.Errorf("failed to scan market: %w", err)
		}
		if lat.Valid && lng.Valid {
			m.Coordinates = &models.Coordinates{Lat: lat.Float64, Long: lng.Float64}
		}
		if len(pricesRaw) > 0 {
			if err := json.Unmarshal(pricesRaw, &m.ProducePrices); err != nil {
				return nil, fmt.Errorf("failed to decode produce prices for market %s: %w", m.ID, err)
			}
		}
		markets = append(markets, m)
	}
	return markets, rows.Err()
}

const forecastsQuery = `
	SELECT id, produce_name, period, expected_production, expected_demand,
	       confidence_level, county, unit
	FROM forecasts
	ORDER BY period, produce_name`

func (p *Postgres) GetForecasts(ctx context.Context) ([]models.Forecast, error) {
	rows, err := p.client.Query(ctx, forecastsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query forecasts: %w", err)
	}
	defer rows.Close()

	var forecasts []models.Forecast
	for rows.Next() {
		var f models.Forecast
		if err := rows.Scan(&f.ID, &f.ProduceName, &f.Period, &f.ExpectedProduction,
			&f.ExpectedDemand, &f.ConfidenceLevel, &f.County, &f.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan forecast: %w", err)
		}
		forecasts = append(forecasts, f)
	}
	return forecasts, rows.Err()
}

const warehousesQuery = `
	SELECT id, name, county, location, goods_types, has_refrigeration,
	       capacity_tons, price_per_month
	FROM warehouses
	ORDER BY county, name`

func (p *Postgres) GetWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	rows, err := p.client.Query(ctx, warehousesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouses: %w", err)
	}
	defer rows.Close()

	var warehouses []models.Warehouse
	for rows.Next() {
		var w models.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.County, &w.Location,
			pq.Array(&w.GoodsTypes), &w.HasRefrigeration, &w.CapacityTons,
			&w.PricePerMonth); err != nil {
			return nil, fmt.Errorf("failed to scan warehouse: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, rows.Err()
}

const transportersQuery = `
	SELECT id, name, counties_served, has_refrigerated, capacity_tons, contact_phone
	FROM transporters
	ORDER BY name`

func (p *Postgres) GetTransporters(ctx context.Context) ([]models.Transporter, error) {
	rows, err := p.client.Query(ctx, transportersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query transporters: %w", err)
	}
	defer rows.Close()

	var transporters []models.Transporter
	for rows.Next() {
		var t models.Transporter
		if err := rows.Scan(&t.ID, &t.Name, pq.Array(&t.CountiesServed),
			&t.HasRefrigerated, &t.CapacityTons, &t.ContactPhone); err != nil {
			return nil, fmt.Errorf("failed to scan transporter: %w", err)
		}
		transporters = append(transporters, t)
	}
	return transporters, rows.Err()
}

const reportsQuery = `
	SELECT id, farmer_id, county, location, sentiment, topic, text,
	       created_at, verified, tags
	FROM sentiment_reports
	ORDER BY created_at DESC`

func (p *Postgres) GetSentimentReports(ctx context.Context) ([]models.SentimentReport, error) {
	rows, err := p.client.Query(ctx, reportsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiment reports: %w", err)
	}
	defer rows.Close()

	var reports []models.SentimentReport
	for rows.Next() {
		var r models.SentimentReport
		if err := rows.Scan(&r.ID, &r.FarmerID, &r.County, &r.Location,
			&r.Sentiment, &r.Topic, &r.Text, &r.Timestamp, &r.Verified,
			pq.Array(&r.Tags)); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

const clustersQuery = `
	SELECT id, topic, sentiment, keywords, report_count, counties,
	       confidence_score, last_updated, is_alert
	FROM sentiment_clusters
	ORDER BY last_updated DESC`

func (p *Postgres) GetSentimentClusters(ctx context.Context) ([]models.SentimentCluster, error) {
	rows, err := p.client.Query(ctx, clustersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiment clusters: %w", err)
	}
	defer rows.Close()

	var clusters []models.SentimentCluster
	for rows.Next() {
		var c models.SentimentCluster
		if err := rows.Scan(&c.ID, &c.Topic, &c.Sentiment, pq.Array(&c.Keywords),
			&c.ReportCount, pq.Array(&c.Counties), &c.ConfidenceScore,
			&c.LastUpdated, &c.IsAlert); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment cluster: %w", err)
		}
		clusters = append(clusters, c)
	}
	return clusters, rows.Err()
}

const insightsQuery = `
	SELECT id, topic, insight, actionable_advice, affected_crops,
	       affected_counties, confidence_score, source_report_count
	FROM sentiment_insights
	ORDER BY confidence_score DESC`

func (p *Postgres) GetSentimentInsights(ctx context.Context) ([]models.SentimentInsight, error) {
	rows, err := p.client.Query(ctx, insightsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query sentiment insights: %w", err)
	}
	defer rows.Close()

	var insights []models.SentimentInsight
	for rows.Next() {
		var i models.SentimentInsight
		if err := rows.Scan(&i.ID, &i.Topic, &i.Insight, &i.ActionableAdvice,
			pq.Array(&i.AffectedCrops), pq.Array(&i.AffectedCounties),
			&i.ConfidenceScore, &i.SourceReportCount); err != nil {
			return nil, fmt.Errorf("failed to scan sentiment insight: %w", err)
		}
		insights = append(insights, i)
	}
	return insights, rows.Err()
}
