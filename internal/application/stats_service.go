package application

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"library-api/internal/domain/entity"
	"library-api/internal/domain/repository"
)

type StatsService struct {
	Stats   repository.StatsRepository
	Records repository.BorrowRepository
	Logger  *logrus.Logger

	Now func() time.Time
}

func NewStatsService(stats repository.StatsRepository, records repository.BorrowRepository, logger *logrus.Logger) *StatsService {
	return &StatsService{Stats: stats, Records: records, Logger: logger, Now: time.Now}
}

// Overview assembles the aggregate statistics payload. Overdue statuses are
// swept first so the borrowing counts reflect the current time.
func (s *StatsService) Overview(ctx context.Context) (*entity.LibraryStats, error) {
	if _, err := s.Records.MarkOverdue(ctx, s.Now()); err != nil {
		return nil, err
	}

	totalCopies, availableCopies, uniqueTitles, err := s.Stats.BookTotals(ctx)
	if err != nil {
		return nil, err
	}
	studentCount, err := s.Stats.StudentCount(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.Stats.BorrowStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.Stats.CategoryStats(ctx)
	if err != nil {
		return nil, err
	}
	overdueCount, fineSum, err := s.Stats.OverdueTotals(ctx)
	if err != nil {
		return nil, err
	}

	stats := &entity.LibraryStats{Categories: categories}
	stats.Books.Total = totalCopies
	stats.Books.Available = availableCopies
	stats.Books.Borrowed = totalCopies - availableCopies
	stats.Books.UniqueTitles = uniqueTitles
	stats.Students.Total = studentCount
	stats.Borrowing.Active = statusCounts[entity.StatusBorrowed]
	stats.Borrowing.Returned = statusCounts[entity.StatusReturned]
	stats.Borrowing.Overdue = statusCounts[entity.StatusOverdue]
	stats.Fines.TotalOverdueBooks = overdueCount
	// The sum is a float accumulation; round to cents before it hits JSON.
	stats.Fines.TotalFineAmount = math.Round(fineSum*100) / 100
	return stats, nil
}
