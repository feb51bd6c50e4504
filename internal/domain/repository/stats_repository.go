package repository

import (
	"context"

	"library-api/internal/domain/entity"
)

// StatsRepository supplies the aggregates behind /api/stats.
type StatsRepository interface {
	BookTotals(ctx context.Context) (totalCopies, availableCopies, uniqueTitles int, err error)
	StudentCount(ctx context.Context) (int, error)
	BorrowStatusCounts(ctx context.Context) (map[entity.BorrowStatus]int, error)
	CategoryStats(ctx context.Context) ([]entity.CategoryStat, error)
	// OverdueTotals counts overdue records and sums their stored fine amounts.
	OverdueTotals(ctx context.Context) (count int, fineSum float64, err error)
}
