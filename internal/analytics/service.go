// Package analytics computes dashboard and revenue statistics over the catalog.
package analytics

import (
	"context"
	"fmt"
	"time"
)

// Stats holds the headline dashboard numbers.
type Stats struct {
	TotalProducts int     `json:"total_products"`
	TotalEarning  float64 `json:"total_earning"`
	TotalViews    int     `json:"total_views"`
	TotalSales    int     `json:"total_sales"`
}

// RecentSale is a recently updated product shown in the dashboard feed.
type RecentSale struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// ChartPoint is a single labeled value in a revenue series.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ChartData groups the revenue series by granularity.
type ChartData struct {
	Monthly []ChartPoint `json:"monthly"`
	Weekly  []ChartPoint `json:"weekly"`
}

// Dashboard is the full payload of the dashboard stats endpoint.
type Dashboard struct {
	Stats       Stats        `json:"stats"`
	RecentSales []RecentSale `json:"recent_sales"`
	ChartData   ChartData    `json:"chart_data"`
}

// Repository defines the aggregate queries backing the dashboard.
type Repository interface {
	GetStats(ctx context.Context) (*Stats, error)
	ListRecentSales(ctx context.Context, limit int) ([]RecentSale, error)
	MonthlyRevenue(ctx context.Context, months int) ([]ChartPoint, error)
	WeeklyRevenue(ctx context.Context) ([]ChartPoint, error)
}

// recentSalesLimit caps the dashboard activity feed.
const recentSalesLimit = 6

// Service assembles dashboard statistics.
type Service struct {
	repo Repository
}

// NewService creates a new analytics service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetDashboard collects totals, the recent sales feed and the revenue series.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	recent, err := s.repo.ListRecentSales(ctx, recentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent sales: %w", err)
	}
	if recent == nil {
		recent = make([]RecentSale, 0)
	}

	monthly, err := s.repo.MonthlyRevenue(ctx, 12)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}

	weekly, err := s.repo.WeeklyRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("weekly revenue: %w", err)
	}

	return &Dashboard{
		Stats:       *stats,
		RecentSales: recent,
		ChartData: ChartData{
			Monthly: monthly,
			Weekly:  weekly,
		},
	}, nil
}
