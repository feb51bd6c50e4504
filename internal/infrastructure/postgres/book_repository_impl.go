package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-api/internal/domain/entity"
	"library-api/internal/domain/repository"
	"library-api/pkg/apperr"
)

type BookRepository struct {
	pool *pgxpool.Pool
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

const bookColumns = `id, title, author, isbn, category, total_copies, available_copies, created_at, updated_at`

func scanBook(row pgx.Row) (*entity.Book, error) {
	b := &entity.Book{}
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Category,
		&b.TotalCopies, &b.AvailableCopies, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookRepository) Create(ctx context.Context, b *entity.Book) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO books (title, author, isbn, category, total_copies, available_copies)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, created_at, updated_at
	`, b.Title, b.Author, b.ISBN, b.Category, b.TotalCopies)

	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperr.Duplicate("Book with this ISBN already exists")
		}
		return err
	}
	b.AvailableCopies = b.TotalCopies
	return nil
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*entity.Book, error) {
	b, err := scanBook(r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book not found")
		}
		return nil, err
	}
	return b, nil
}

func (r *BookRepository) List(ctx context.Context, f entity.BookFilter, offset, limit int) ([]*entity.Book, int, error) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Category != "" {
		add("category ILIKE $%d", "%"+f.Category+"%")
	}
	if f.Author != "" {
		add("author ILIKE $%d", "%"+f.Author+"%")
	}
	if f.Title != "" {
		add("title ILIKE $%d", "%"+f.Title+"%")
	}
	if f.AvailableOnly {
		conds = append(conds, "available_copies > 0")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+bookColumns+` FROM books`+where+
		` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	books := make([]*entity.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, total, rows.Err()
}

func (r *BookRepository) Update(ctx context.Context, b *entity.Book, copiesDelta int) error {
	// available_copies is shifted, not rewritten: a checkout racing this
	// update keeps its decrement. The condition rejects shrinking total
	// copies below the number currently out.
	row := r.pool.QueryRow(ctx, `
		UPDATE books
		SET title = $1, author = $2, category = $3, total_copies = $4,
			available_copies = available_copies + $5, updated_at = now()
		WHERE id = $6 AND available_copies + $5 BETWEEN 0 AND $4
		RETURNING available_copies, updated_at
	`, b.Title, b.Author, b.Category, b.TotalCopies, copiesDelta, b.ID)

	if err := row.Scan(&b.AvailableCopies, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if copiesDelta < 0 {
				return apperr.Conflict("Cannot reduce total copies below the number currently borrowed")
			}
			return apperr.NotFound("Book not found")
		}
		return err
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("Book not found")
	}
	return nil
}

func (r *BookRepository) CountActiveBorrows(ctx context.Context, bookID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM borrow_records
		WHERE book_id = $1 AND status IN ('borrowed', 'overdue')
	`, bookID).Scan(&n)
	return n, err
}

var _ repository.BookRepository = (*BookRepository)(nil)
