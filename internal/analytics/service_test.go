package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	stats    Stats
	recent   []RecentSale
	monthly  []ChartPoint
	weekly   []ChartPoint
	statsErr error
}

func (m *mockRepository) GetStats(_ context.Context) (*Stats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	stats := m.stats
	return &stats, nil
}

func (m *mockRepository) ListRecentSales(_ context.Context, limit int) ([]RecentSale, error) {
	if len(m.recent) > limit {
		return m.recent[:limit], nil
	}
	return m.recent, nil
}

func (m *mockRepository) MonthlyRevenue(_ context.Context, months int) ([]ChartPoint, error) {
	return m.monthly, nil
}

func (m *mockRepository) WeeklyRevenue(_ context.Context) ([]ChartPoint, error) {
	return m.weekly, nil
}

func TestGetDashboard(t *testing.T) {
	repo := &mockRepository{
		stats: Stats{TotalProducts: 3, TotalEarning: 150.5, TotalViews: 42, TotalSales: 2},
		recent: []RecentSale{
			{ID: "p1", Name: "Widget", Amount: 9.99, Date: time.Now()},
		},
		monthly: []ChartPoint{{Name: "Jan", Value: 100}, {Name: "Feb", Value: 50.5}},
		weekly:  []ChartPoint{{Name: "Mon", Value: 10}},
	}
	service := NewService(repo)

	dashboard, err := service.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, repo.stats, dashboard.Stats)
	assert.Len(t, dashboard.RecentSales, 1)
	assert.Len(t, dashboard.ChartData.Monthly, 2)
	assert.Len(t, dashboard.ChartData.Weekly, 1)
}

func TestGetDashboard_EmptyRecentSalesIsNotNil(t *testing.T) {
	service := NewService(&mockRepository{})

	dashboard, err := service.GetDashboard(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, dashboard.RecentSales)
	assert.Empty(t, dashboard.RecentSales)
}

func TestGetDashboard_StatsError(t *testing.T) {
	service := NewService(&mockRepository{statsErr: assert.AnError})

	_, err := service.GetDashboard(context.Background())
	assert.Error(t, err)
}
