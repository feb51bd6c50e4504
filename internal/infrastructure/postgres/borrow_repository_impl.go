package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-api/internal/domain/entity"
	"library-api/internal/domain/repository"
)

type BorrowRepository struct {
	pool *pgxpool.Pool
}

func NewBorrowRepository(pool *pgxpool.Pool) *BorrowRepository {
	return &BorrowRepository{pool: pool}
}

const recordColumns = `br.id, br.student_id, br.book_id, br.borrow_date, br.due_date,
	br.return_date, br.status, br.fine_amount, br.created_at, br.updated_at`

func scanRecord(row pgx.Row, dst ...any) (*entity.BorrowRecord, error) {
	rec := &entity.BorrowRecord{}
	targets := []any{&rec.ID, &rec.StudentID, &rec.BookID, &rec.BorrowDate, &rec.DueDate,
		&rec.ReturnDate, &rec.Status, &rec.FineAmount, &rec.CreatedAt, &rec.UpdatedAt}
	if err := row.Scan(append(targets, dst...)...); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *BorrowRepository) List(ctx context.Context, f entity.RecordFilter, offset, limit int) ([]*entity.BorrowRecord, int, error) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.StudentID != 0 {
		add("br.student_id = $%d", f.StudentID)
	}
	if f.BookID != 0 {
		add("br.book_id = $%d", f.BookID)
	}
	if f.Status != "" {
		add("br.status = $%d", f.Status)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM borrow_records br`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT `+recordColumns+`, b.title, b.author, b.isbn, s.name, s.student_id, s.email
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id
		JOIN students s ON s.id = br.student_id`+where+`
		ORDER BY br.borrow_date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]*entity.BorrowRecord, 0)
	for rows.Next() {
		book := &entity.BookSummary{}
		student := &entity.StudentSummary{}
		rec, err := scanRecord(rows, &book.Title, &book.Author, &book.ISBN,
			&student.Name, &student.StudentID, &student.Email)
		if err != nil {
			return nil, 0, err
		}
		rec.Book, rec.Student = book, student
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

func (r *BorrowRepository) ListOverdue(ctx context.Context) ([]*entity.BorrowRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+`, b.title, b.author, b.isbn, s.name, s.student_id, s.email
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id
		JOIN students s ON s.id = br.student_id
		WHERE br.status = 'overdue'
		ORDER BY br.due_date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*entity.BorrowRecord, 0)
	for rows.Next() {
		book := &entity.BookSummary{}
		student := &entity.StudentSummary{}
		rec, err := scanRecord(rows, &book.Title, &book.Author, &book.ISBN,
			&student.Name, &student.StudentID, &student.Email)
		if err != nil {
			return nil, err
		}
		rec.Book, rec.Student = book, student
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListByBook returns a book's borrow history with borrower summaries.
func (r *BorrowRepository) ListByBook(ctx context.Context, bookID int64) ([]*entity.BorrowRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+`, s.name, s.student_id
		FROM borrow_records br
		JOIN students s ON s.id = br.student_id
		WHERE br.book_id = $1
		ORDER BY br.borrow_date DESC
	`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*entity.BorrowRecord, 0)
	for rows.Next() {
		student := &entity.StudentSummary{}
		rec, err := scanRecord(rows, &student.Name, &student.StudentID)
		if err != nil {
			return nil, err
		}
		rec.Student = student
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListByStudent returns a student's borrow history with book summaries.
func (r *BorrowRepository) ListByStudent(ctx context.Context, studentID int64) ([]*entity.BorrowRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+`, b.title, b.author, b.isbn
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id
		WHERE br.student_id = $1
		ORDER BY br.borrow_date DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*entity.BorrowRecord, 0)
	for rows.Next() {
		book := &entity.BookSummary{}
		rec, err := scanRecord(rows, &book.Title, &book.Author, &book.ISBN)
		if err != nil {
			return nil, err
		}
		rec.Book = book
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *BorrowRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE borrow_records
		SET status = 'overdue', updated_at = now()
		WHERE status = 'borrowed' AND due_date < $1
	`, asOf)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.BorrowRepository = (*BorrowRepository)(nil)
