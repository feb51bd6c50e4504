package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-api/internal/domain/entity"
	"library-api/internal/domain/repository"
	"library-api/pkg/apperr"
)

// BorrowStore runs borrowing-engine mutations in a single transaction.
// Entity reads inside the transaction take row locks, and the counter
// updates are conditional, so racing checkouts on the last copy serialize
// on the book row and the loser fails instead of overselling.
type BorrowStore struct {
	pool *pgxpool.Pool
}

func NewBorrowStore(pool *pgxpool.Pool) *BorrowStore {
	return &BorrowStore{pool: pool}
}

func (s *BorrowStore) WithinTx(ctx context.Context, fn func(tx repository.BorrowTx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&borrowTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type borrowTx struct {
	tx pgx.Tx
}

func (t *borrowTx) StudentForUpdate(ctx context.Context, id int64) (*entity.Student, error) {
	s, err := scanStudent(t.tx.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Student not found")
		}
		return nil, err
	}
	return s, nil
}

func (t *borrowTx) BookForUpdate(ctx context.Context, id int64) (*entity.Book, error) {
	b, err := scanBook(t.tx.QueryRow(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book not found")
		}
		return nil, err
	}
	return b, nil
}

func (t *borrowTx) HasActiveBorrow(ctx context.Context, studentID, bookID int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM borrow_records
			WHERE student_id = $1 AND book_id = $2 AND status IN ('borrowed', 'overdue')
		)
	`, studentID, bookID).Scan(&exists)
	return exists, err
}

func (t *borrowTx) CreateBorrow(ctx context.Context, rec *entity.BorrowRecord) error {
	row := t.tx.QueryRow(ctx, `
		INSERT INTO borrow_records (student_id, book_id, borrow_date, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, rec.StudentID, rec.BookID, rec.BorrowDate, rec.DueDate, rec.Status)
	return row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (t *borrowTx) BorrowForUpdate(ctx context.Context, id int64) (*entity.BorrowRecord, error) {
	rec, err := scanRecord(t.tx.QueryRow(ctx, `
		SELECT br.id, br.student_id, br.book_id, br.borrow_date, br.due_date,
			br.return_date, br.status, br.fine_amount, br.created_at, br.updated_at
		FROM borrow_records br WHERE br.id = $1 FOR UPDATE
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Borrow record not found")
		}
		return nil, err
	}
	return rec, nil
}

func (t *borrowTx) FinishBorrow(ctx context.Context, rec *entity.BorrowRecord) error {
	res, err := t.tx.Exec(ctx, `
		UPDATE borrow_records
		SET status = $1, return_date = $2, fine_amount = $3, updated_at = now()
		WHERE id = $4
	`, rec.Status, rec.ReturnDate, rec.FineAmount, rec.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("Borrow record not found")
	}
	return nil
}

func (t *borrowTx) AddBookCopies(ctx context.Context, bookID int64, delta int) error {
	res, err := t.tx.Exec(ctx, `
		UPDATE books
		SET available_copies = available_copies + $1, updated_at = now()
		WHERE id = $2 AND available_copies + $1 BETWEEN 0 AND total_copies
	`, delta, bookID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		if delta < 0 {
			return apperr.Conflict("Book is not available for borrowing")
		}
		return apperr.Conflict("Book copy count out of range")
	}
	return nil
}

func (t *borrowTx) AddStudentBooks(ctx context.Context, studentID int64, delta int) error {
	res, err := t.tx.Exec(ctx, `
		UPDATE students
		SET current_books_count = current_books_count + $1, updated_at = now()
		WHERE id = $2 AND current_books_count + $1 BETWEEN 0 AND max_books_allowed
	`, delta, studentID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		if delta > 0 {
			return apperr.Conflict("Student has reached maximum borrowing limit")
		}
		return apperr.Conflict("Student book count out of range")
	}
	return nil
}

var (
	_ repository.BorrowStore = (*BorrowStore)(nil)
	_ repository.BorrowTx    = (*borrowTx)(nil)
)
