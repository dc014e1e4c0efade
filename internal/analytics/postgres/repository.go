// Package postgres provides PostgreSQL implementation of the analytics repository.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfwise/shelfwise/internal/analytics"
)

// Repository implements the analytics.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetStats computes headline totals over the products table.
func (r *Repository) GetStats(ctx context.Context) (*analytics.Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(revenue), 0),
			COALESCE(SUM(views), 0),
			COUNT(*) FILTER (WHERE status = 'published')
		FROM products
	`
	var stats analytics.Stats
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalProducts,
		&stats.TotalEarning,
		&stats.TotalViews,
		&stats.TotalSales,
	)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &stats, nil
}

// ListRecentSales returns the latest updated products.
func (r *Repository) ListRecentSales(ctx context.Context, limit int) ([]analytics.RecentSale, error) {
	query := `
		SELECT id, name, price, updated_at
		FROM products
		ORDER BY updated_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sales: %w", err)
	}
	defer rows.Close()

	var sales []analytics.RecentSale
	for rows.Next() {
		var sale analytics.RecentSale
		if err := rows.Scan(&sale.ID, &sale.Name, &sale.Amount, &sale.Date); err != nil {
			return nil, fmt.Errorf("scan recent sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent sales: %w", err)
	}

	return sales, nil
}

// MonthlyRevenue returns revenue grouped by month over the trailing window.
// Months without activity are filled with zero so the series is dense.
func (r *Repository) MonthlyRevenue(ctx context.Context, months int) ([]analytics.ChartPoint, error) {
	query := `
		SELECT to_char(m.month, 'Mon'), COALESCE(SUM(p.revenue), 0)
		FROM generate_series(
			date_trunc('month', now()) - make_interval(months => $1 - 1),
			date_trunc('month', now()),
			interval '1 month'
		) AS m(month)
		LEFT JOIN products p ON date_trunc('month', p.updated_at) = m.month
		GROUP BY m.month
		ORDER BY m.month
	`
	return r.queryPoints(ctx, query, months)
}

// WeeklyRevenue returns revenue grouped by day over the trailing week.
func (r *Repository) WeeklyRevenue(ctx context.Context) ([]analytics.ChartPoint, error) {
	query := `
		SELECT to_char(d.day, 'Dy'), COALESCE(SUM(p.revenue), 0)
		FROM generate_series(
			date_trunc('day', now()) - interval '6 days',
			date_trunc('day', now()),
			interval '1 day'
		) AS d(day)
		LEFT JOIN products p ON date_trunc('day', p.updated_at) = d.day
		GROUP BY d.day
		ORDER BY d.day
	`
	return r.queryPoints(ctx, query)
}

func (r *Repository) queryPoints(ctx context.Context, query string, args ...interface{}) ([]analytics.ChartPoint, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query revenue series: %w", err)
	}
	defer rows.Close()

	var points []analytics.ChartPoint
	for rows.Next() {
		var point analytics.ChartPoint
		if err := rows.Scan(&point.Name, &point.Value); err != nil {
			return nil, fmt.Errorf("scan revenue point: %w", err)
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revenue series: %w", err)
	}

	return points, nil
}
