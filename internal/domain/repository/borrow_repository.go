package repository

import (
	"context"
	"time"

	"library-api/internal/domain/entity"
)

// BorrowRepository is the read side of borrow records.
type BorrowRepository interface {
	List(ctx context.Context, f entity.RecordFilter, offset, limit int) ([]*entity.BorrowRecord, int, error)
	ListOverdue(ctx context.Context) ([]*entity.BorrowRecord, error)
	ListByBook(ctx context.Context, bookID int64) ([]*entity.BorrowRecord, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*entity.BorrowRecord, error)

	// MarkOverdue bulk-transitions records from borrowed to overdue whose due
	// date has passed asOf. Returns the number of records transitioned.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// BorrowStore runs the borrowing engine's multi-entity mutations inside one
// atomic transaction. The engine is handed a BorrowTx scoped to that
// transaction; returning an error rolls everything back.
type BorrowStore interface {
	WithinTx(ctx context.Context, fn func(tx BorrowTx) error) error
}

// BorrowTx exposes the primitives the engine needs. Reads lock the row for
// the duration of the transaction; counter updates are conditional so the
// derived-counter invariants cannot be violated even under racing commits.
type BorrowTx interface {
	StudentForUpdate(ctx context.Context, id int64) (*entity.Student, error)
	BookForUpdate(ctx context.Context, id int64) (*entity.Book, error)
	HasActiveBorrow(ctx context.Context, studentID, bookID int64) (bool, error)
	CreateBorrow(ctx context.Context, rec *entity.BorrowRecord) error
	BorrowForUpdate(ctx context.Context, id int64) (*entity.BorrowRecord, error)
	// FinishBorrow persists status, returnDate and fineAmount of a return.
	FinishBorrow(ctx context.Context, rec *entity.BorrowRecord) error
	// AddBookCopies moves available_copies by delta, failing instead of
	// leaving the range [0, total_copies].
	AddBookCopies(ctx context.Context, bookID int64, delta int) error
	// AddStudentBooks moves current_books_count by delta, failing instead of
	// leaving the range [0, max_books_allowed].
	AddStudentBooks(ctx context.Context, studentID int64, delta int) error
}
