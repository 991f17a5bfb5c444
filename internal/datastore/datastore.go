// Package datastore defines the read-only collaborator contracts the
// advisory pipeline consumes, and the backing implementations (postgres,
// elasticsearch, redis cache, in-memory snapshot).
package datastore

import (
	"context"

	"shamba-workers/internal/models"
)

// Datasets is the bulk-read contract for the reference data. All reads
// return full collections; the pipeline assumes no pagination and treats
// results as immutable snapshots for the duration of one request.
type Datasets interface {
	GetMarkets(ctx context.Context) ([]models.Market, error)
	GetForecasts(ctx context.Context) ([]models.Forecast, error)
	GetWarehouses(ctx context.Context) ([]models.Warehouse, error)
	GetTransporters(ctx context.Context) ([]models.Transporter, error)
	GetSentimentReports(ctx context.Context) ([]models.SentimentReport, error)
	GetSentimentClusters(ctx context.Context) ([]models.SentimentCluster, error)
	GetSentimentInsights(ctx context.Context) ([]models.SentimentInsight, error)
}

// Snapshot is one immutable bundle of every dataset, fetched fresh per
// pipeline invocation.
type Snapshot struct {
	Markets      []models.Market
	Forecasts    []models.Forecast
	Warehouses   []models.Warehouse
	Transporters []models.Transporter
	Reports      []models.SentimentReport
	Clusters     []models.SentimentCluster
	Insights     []models.SentimentInsight
}

// LoadSnapshot reads every dataset from the store. The first failing read
// aborts the load; partial snapshots are never returned.
func LoadSnapshot(ctx context.Context, d Datasets) (*Snapshot, error) {
	markets, err := d.GetMarkets(ctx)
	if err != nil {
		return nil, err
	}
	forecasts, err := d.GetForecasts(ctx)
	if err != nil {
		return nil, err
	}
	warehouses, err := d.GetWarehouses(ctx)
	if err != nil {
		return nil, err
	}
	transporters, err := d.GetTransporters(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := d.GetSentimentReports(ctx)
	if err != nil {
		return nil, err
	}
	clusters, err := d.GetSentimentClusters(ctx)
	if err != nil {
		return nil, err
	}
	insights, err := d.GetSentimentInsights(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Markets:      markets,
		Forecasts:    forecasts,
		Warehouses:   warehouses,
		Transporters: transporters,
		Reports:      reports,
		Clusters:     clusters,
		Insights:     insights,
	}, nil
}
