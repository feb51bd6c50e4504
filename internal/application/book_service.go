package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"library-api/internal/domain/entity"
	"library-api/internal/domain/repository"
	"library-api/pkg/apperr"
)

type BookService struct {
	Books   repository.BookRepository
	Records repository.BorrowRepository
	Logger  *logrus.Logger
}

func NewBookService(books repository.BookRepository, records repository.BorrowRepository, logger *logrus.Logger) *BookService {
	return &BookService{Books: books, Records: records, Logger: logger}
}

type CreateBookInput struct {
	Title       string
	Author      string
	ISBN        string
	Category    string
	TotalCopies int
}

// UpdateBookInput carries a partial update; nil fields are left unchanged.
// ISBN is deliberately not updatable.
type UpdateBookInput struct {
	Title       *string
	Author      *string
	Category    *string
	TotalCopies *int
}

func (s *BookService) List(ctx context.Context, f entity.BookFilter, page, limit int) ([]*entity.Book, int, error) {
	return s.Books.List(ctx, f, (page-1)*limit, limit)
}

// Get returns a book together with its full borrow history.
func (s *BookService) Get(ctx context.Context, id int64) (*entity.BookWithHistory, error) {
	book, err := s.Books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.Records.ListByBook(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.BookWithHistory{Book: *book, BorrowRecords: history}, nil
}

func (s *BookService) Create(ctx context.Context, in CreateBookInput) (*entity.Book, error) {
	book := &entity.Book{
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		Category:    in.Category,
		TotalCopies: in.TotalCopies,
	}
	if err := s.Books.Create(ctx, book); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"book_id": book.ID, "isbn": book.ISBN}).Info("book added")
	return book, nil
}

// Update applies a partial update. Changing totalCopies moves
// availableCopies by the same delta so the active-borrow count is preserved;
// shrinking below the number of borrowed copies is rejected.
func (s *BookService) Update(ctx context.Context, id int64, in UpdateBookInput) (*entity.Book, error) {
	book, err := s.Books.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		book.Title = *in.Title
	}
	if in.Author != nil {
		book.Author = *in.Author
	}
	if in.Category != nil {
		book.Category = *in.Category
	}
	copiesDelta := 0
	if in.TotalCopies != nil && *in.TotalCopies != book.TotalCopies {
		copiesDelta = *in.TotalCopies - book.TotalCopies
		if book.AvailableCopies+copiesDelta < 0 {
			return nil, apperr.Conflict("Cannot reduce total copies below the number currently borrowed")
		}
		book.TotalCopies = *in.TotalCopies
	}

	// The delta is applied against the stored row, which may have moved
	// since the read above; the repository re-checks the range.
	if err := s.Books.Update(ctx, book, copiesDelta); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book unless any active borrow record still references it.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	active, err := s.Books.CountActiveBorrows(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperr.Conflict("Cannot delete book that is currently borrowed")
	}
	if err := s.Books.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.WithField("book_id", id).Info("book deleted")
	return nil
}
