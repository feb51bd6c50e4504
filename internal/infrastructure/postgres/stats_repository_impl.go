package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"library-api/internal/domain/entity"
	"library-api/internal/domain/repository"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) BookTotals(ctx context.Context) (int, int, int, error) {
	var totalCopies, availableCopies, uniqueTitles int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_copies), 0), COALESCE(SUM(available_copies), 0), COUNT(*)
		FROM books
	`).Scan(&totalCopies, &availableCopies, &uniqueTitles)
	return totalCopies, availableCopies, uniqueTitles, err
}

func (r *StatsRepository) StudentCount(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&n)
	return n, err
}

func (r *StatsRepository) BorrowStatusCounts(ctx context.Context) (map[entity.BorrowStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM borrow_records GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[entity.BorrowStatus]int)
	for rows.Next() {
		var status entity.BorrowStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *StatsRepository) CategoryStats(ctx context.Context) ([]entity.CategoryStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, COALESCE(SUM(total_copies), 0), COALESCE(SUM(available_copies), 0), COUNT(*)
		FROM books GROUP BY category ORDER BY category
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]entity.CategoryStat, 0)
	for rows.Next() {
		var cs entity.CategoryStat
		if err := rows.Scan(&cs.Name, &cs.TotalBooks, &cs.AvailableBooks, &cs.BookCount); err != nil {
			return nil, err
		}
		stats = append(stats, cs)
	}
	return stats, rows.Err()
}

func (r *StatsRepository) OverdueTotals(ctx context.Context) (int, float64, error) {
	var count int
	var fineSum float64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(fine_amount), 0)
		FROM borrow_records WHERE status = 'overdue'
	`).Scan(&count, &fineSum)
	return count, fineSum, err
}

var _ repository.StatsRepository = (*StatsRepository)(nil)
