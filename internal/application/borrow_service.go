package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"library-api/internal/domain/entity"
	"library-api/internal/domain/repository"
	"library-api/pkg/apperr"
)

// BorrowService is the borrowing engine. Every multi-entity mutation runs
// inside one store transaction; the service owns the rule ordering and fine
// computation, the store supplies atomicity.
type BorrowService struct {
	Store   repository.BorrowStore
	Records repository.BorrowRepository
	Logger  *logrus.Logger

	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

func NewBorrowService(store repository.BorrowStore, records repository.BorrowRepository, logger *logrus.Logger) *BorrowService {
	return &BorrowService{Store: store, Records: records, Logger: logger, Now: time.Now}
}

// Checkout lends a book to a student. Preconditions are verified in order
// inside the transaction: student exists, book exists, a copy is free, the
// student is under their limit, and the pair has no active record yet.
func (s *BorrowService) Checkout(ctx context.Context, studentID, bookID int64) (*entity.BorrowRecord, error) {
	now := s.Now()
	var rec *entity.BorrowRecord

	err := s.Store.WithinTx(ctx, func(tx repository.BorrowTx) error {
		student, err := tx.StudentForUpdate(ctx, studentID)
		if err != nil {
			return err
		}
		book, err := tx.BookForUpdate(ctx, bookID)
		if err != nil {
			return err
		}
		if book.AvailableCopies <= 0 {
			return apperr.Conflict("Book is not available for borrowing")
		}
		if student.CurrentBooksCount >= student.MaxBooksAllowed {
			return apperr.Conflict("Student has reached maximum borrowing limit")
		}
		active, err := tx.HasActiveBorrow(ctx, studentID, bookID)
		if err != nil {
			return err
		}
		if active {
			return apperr.Conflict("Student already has this book borrowed")
		}

		rec = &entity.BorrowRecord{
			StudentID:  studentID,
			BookID:     bookID,
			BorrowDate: now,
			DueDate:    entity.DueDateFor(now),
			Status:     entity.StatusBorrowed,
		}
		if err := tx.CreateBorrow(ctx, rec); err != nil {
			return err
		}
		if err := tx.AddBookCopies(ctx, bookID, -1); err != nil {
			return err
		}
		if err := tx.AddStudentBooks(ctx, studentID, 1); err != nil {
			return err
		}

		rec.Book = &entity.BookSummary{Title: book.Title, Author: book.Author}
		rec.Student = &entity.StudentSummary{Name: student.Name, StudentID: student.StudentID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"borrow_id": rec.ID, "student_id": studentID, "book_id": bookID, "due_date": rec.DueDate,
	}).Info("book borrowed")
	return rec, nil
}

// Return closes a borrow record, finalizing its fine. A record can only be
// returned once; a second attempt is a conflict, not a no-op.
func (s *BorrowService) Return(ctx context.Context, borrowID int64) (*entity.BorrowRecord, error) {
	now := s.Now()
	var rec *entity.BorrowRecord

	err := s.Store.WithinTx(ctx, func(tx repository.BorrowTx) error {
		var err error
		rec, err = tx.BorrowForUpdate(ctx, borrowID)
		if err != nil {
			return err
		}
		if rec.Status == entity.StatusReturned {
			return apperr.Conflict("Book has already been returned")
		}

		// Lock order matches Checkout: student row before book row.
		student, err := tx.StudentForUpdate(ctx, rec.StudentID)
		if err != nil {
			return err
		}
		book, err := tx.BookForUpdate(ctx, rec.BookID)
		if err != nil {
			return err
		}

		rec.Status = entity.StatusReturned
		rec.ReturnDate = &now
		rec.FineAmount = entity.Fine(rec.DueDate, now)
		if err := tx.FinishBorrow(ctx, rec); err != nil {
			return err
		}
		if err := tx.AddBookCopies(ctx, rec.BookID, 1); err != nil {
			return err
		}
		if err := tx.AddStudentBooks(ctx, rec.StudentID, -1); err != nil {
			return err
		}

		rec.Book = &entity.BookSummary{Title: book.Title, Author: book.Author}
		rec.Student = &entity.StudentSummary{Name: student.Name, StudentID: student.StudentID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"borrow_id": rec.ID, "fine": rec.FineAmount,
	}).Info("book returned")
	return rec, nil
}

// ListRecords returns a page of borrow records, sweeping overdue statuses
// first so the page reflects the current time.
func (s *BorrowService) ListRecords(ctx context.Context, f entity.RecordFilter, page, limit int) ([]*entity.BorrowRecord, int, error) {
	if err := s.sweep(ctx); err != nil {
		return nil, 0, err
	}
	return s.Records.List(ctx, f, (page-1)*limit, limit)
}

// Overdue returns every overdue record enriched with its live days-overdue
// count and running fine. The running fine is recomputed per read and never
// persisted; the stored fineAmount is only set at an actual return.
func (s *BorrowService) Overdue(ctx context.Context) ([]*entity.OverdueRecord, error) {
	if err := s.sweep(ctx); err != nil {
		return nil, err
	}
	records, err := s.Records.ListOverdue(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	enriched := make([]*entity.OverdueRecord, 0, len(records))
	for _, rec := range records {
		enriched = append(enriched, &entity.OverdueRecord{
			BorrowRecord:   *rec,
			DaysOverdue:    entity.DaysLate(rec.DueDate, now),
			CalculatedFine: entity.Fine(rec.DueDate, now),
		})
	}
	return enriched, nil
}

// sweep lazily transitions due records from borrowed to overdue. Freshness
// is bounded by the last read that triggered it; there is no background job.
func (s *BorrowService) sweep(ctx context.Context) error {
	n, err := s.Records.MarkOverdue(ctx, s.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.Logger.WithField("count", n).Debug("marked records overdue")
	}
	return nil
}
