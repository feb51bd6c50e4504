package repository

import (
	"context"

	"library-api/internal/domain/entity"
)

// BookRepository defines book catalog persistence.
type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id int64) (*entity.Book, error)
	List(ctx context.Context, f entity.BookFilter, offset, limit int) ([]*entity.Book, int, error)

	// Update rewrites the descriptive fields and total_copies.
	// available_copies moves by copiesDelta relative to the stored row, never
	// absolutely, so a checkout committing between the caller's read and this
	// write is not undone. The write fails instead of leaving
	// available_copies outside [0, total_copies]; b.AvailableCopies is
	// refreshed from the stored result.
	Update(ctx context.Context, b *entity.Book, copiesDelta int) error
	Delete(ctx context.Context, id int64) error
	CountActiveBorrows(ctx context.Context, bookID int64) (int, error)
}
