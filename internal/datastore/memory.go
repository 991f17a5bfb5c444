// internal/datastore/memory.go
package datastore

import (
	"context"
	"sync"

	"shamba-workers/internal/models"
)

// Memory is an in-process Datasets implementation backed by a fixed
// snapshot. Used by tests and by local development without postgres.
type Memory struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewMemory creates a memory store seeded with the given snapshot.
func NewMemory(snap Snapshot) *Memory {
	return &Memory{snap: snap}
}

// Replace swaps the entire snapshot atomically.
func (m *Memory) Replace(snap Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
}

func (m *Memory) GetMarkets(_ context.Context) ([]models.Market, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Market(nil), m.snap.Markets...), nil
}

func (m *Memory) GetForecasts(_ context.Context) ([]models.Forecast, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Forecast(nil), m.snap.Forecasts...), nil
}

func (m *Memory) GetWarehouses(_ context.Context) ([]models.Warehouse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Warehouse(nil), m.snap.Warehouses...), nil
}

func (m *Memory) GetTransporters(_ context.Context) ([]models.Transporter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Transporter(nil), m.snap.Transporters...), nil
}

func (m *Memory) GetSentimentReports(_ context.Context) ([]models.SentimentReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.SentimentReport(nil), m.snap.Reports...), nil
}

func (m *Memory) GetSentimentClusters(_ context.Context) ([]models.SentimentCluster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.SentimentCluster(nil), m.snap.Clusters...), nil
}

func (m *Memory) GetSentimentInsights(_ context.Context) ([]models.SentimentInsight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.SentimentInsight(nil), m.snap.Insights...), nil
}
