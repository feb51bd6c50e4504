package application

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/domain/entity"
	"library-api/pkg/apperr"
)

func newBookService(store *memStore) *BookService {
	return NewBookService(bookRepoAdapter{store}, store, logrus.New())
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestCreateBookSetsAvailableCopies(t *testing.T) {
	store := newMemStore()
	svc := newBookService(store)

	book, err := svc.Create(context.Background(), CreateBookInput{
		Title: "1984", Author: "George Orwell", ISBN: "978-0-452-28423-4",
		Category: "Fiction", TotalCopies: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, book.AvailableCopies)
}

func TestCreateBookDuplicateISBN(t *testing.T) {
	store := newMemStore()
	store.addBook("1984", "George Orwell", "978-0-452-28423-4", "Fiction", 1)
	svc := newBookService(store)

	_, err := svc.Create(context.Background(), CreateBookInput{
		Title: "1984 again", Author: "Someone", ISBN: "978-0-452-28423-4",
		Category: "Fiction", TotalCopies: 1,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindDuplicate))
}

func TestUpdateBookAdjustsAvailableCopies(t *testing.T) {
	store := newMemStore()
	book := store.addBook("1984", "George Orwell", "978-0-452-28423-4", "Fiction", 3)
	book.AvailableCopies = 1 // two copies out on loan
	svc := newBookService(store)

	updated, err := svc.Update(context.Background(), book.ID, UpdateBookInput{TotalCopies: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.TotalCopies)
	assert.Equal(t, 3, updated.AvailableCopies)
}

func TestUpdateBookRejectsShrinkBelowBorrowed(t *testing.T) {
	store := newMemStore()
	book := store.addBook("1984", "George Orwell", "978-0-452-28423-4", "Fiction", 3)
	book.AvailableCopies = 0 // all three out on loan
	svc := newBookService(store)

	_, err := svc.Update(context.Background(), book.ID, UpdateBookInput{TotalCopies: intPtr(2)})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, 3, store.books[book.ID].TotalCopies)
}

func TestUpdateBookPartialFields(t *testing.T) {
	store := newMemStore()
	book := store.addBook("1984", "George Orwell", "978-0-452-28423-4", "Fiction", 3)
	svc := newBookService(store)

	updated, err := svc.Update(context.Background(), book.ID, UpdateBookInput{Title: strPtr("Nineteen Eighty-Four")})
	require.NoError(t, err)
	assert.Equal(t, "Nineteen Eighty-Four", updated.Title)
	assert.Equal(t, "George Orwell", updated.Author)
	assert.Equal(t, 3, updated.TotalCopies)
}

// bookRepoAfterRead runs a callback after each successful read, standing in
// for work committed between an update's read and its write.
type bookRepoAfterRead struct {
	bookRepoAdapter
	afterRead func()
}

func (r bookRepoAfterRead) GetByID(ctx context.Context, id int64) (*entity.Book, error) {
	b, err := r.bookRepoAdapter.GetByID(ctx, id)
	if err == nil && r.afterRead != nil {
		r.afterRead()
	}
	return b, err
}

func TestUpdateBookKeepsConcurrentCheckoutDecrement(t *testing.T) {
	store := newMemStore()
	book := store.addBook("1984", "George Orwell", "978-0-452-28423-4", "Fiction", 3)
	student := store.addStudent("Ada", "ada@example.com", "STU001", 5)
	borrowSvc := newBorrowService(store)

	// A checkout commits after the update reads the book but before it
	// writes. The title-only update must not write back the stale counter.
	repo := bookRepoAfterRead{bookRepoAdapter{store}, func() {
		_, err := borrowSvc.Checkout(context.Background(), student.ID, book.ID)
		require.NoError(t, err)
	}}
	svc := NewBookService(repo, store, logrus.New())

	updated, err := svc.Update(context.Background(), book.ID, UpdateBookInput{Title: strPtr("Nineteen Eighty-Four")})
	require.NoError(t, err)
	assert.Equal(t, "Nineteen Eighty-Four", updated.Title)
	assert.Equal(t, 2, updated.AvailableCopies)
	assert.Equal(t, 2, store.books[book.ID].AvailableCopies)
}

func TestUpdateBookGrowAppliesDeltaToFreshCounter(t *testing.T) {
	store := newMemStore()
	book := store.addBook("1984", "George Orwell", "978-0-452-28423-4", "Fiction", 3)
	student := store.addStudent("Ada", "ada@example.com", "STU001", 5)
	borrowSvc := newBorrowService(store)

	repo := bookRepoAfterRead{bookRepoAdapter{store}, func() {
		_, err := borrowSvc.Checkout(context.Background(), student.ID, book.ID)
		require.NoError(t, err)
	}}
	svc := NewBookService(repo, store, logrus.New())

	updated, err := svc.Update(context.Background(), book.ID, UpdateBookInput{TotalCopies: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.TotalCopies)
	// +2 copies on top of the freshly decremented counter, not the snapshot.
	assert.Equal(t, 4, updated.AvailableCopies)
	assert.Equal(t, 4, store.books[book.ID].AvailableCopies)
}

func TestDeleteBookBlockedByActiveBorrow(t *testing.T) {
	store := newMemStore()
	book := store.addBook("1984", "George Orwell", "978-0-452-28423-4", "Fiction", 1)
	student := store.addStudent("Ada", "ada@example.com", "STU001", 5)
	borrowSvc := newBorrowService(store)
	svc := newBookService(store)

	rec, err := borrowSvc.Checkout(context.Background(), student.ID, book.ID)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), book.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.EqualError(t, err, "Cannot delete book that is currently borrowed")

	// Once the loan closes, the delete goes through.
	_, err = borrowSvc.Return(context.Background(), rec.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), book.ID))
	_, err = svc.Get(context.Background(), book.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListBooksFilters(t *testing.T) {
	store := newMemStore()
	store.addBook("1984", "George Orwell", "978-0-452-28423-4", "Dystopian Fiction", 2)
	gatsby := store.addBook("The Great Gatsby", "F. Scott Fitzgerald", "978-0-7432-7356-5", "Fiction", 1)
	gatsby.AvailableCopies = 0
	svc := newBookService(store)

	books, total, err := svc.List(context.Background(), entity.BookFilter{Category: "fiction"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, books, 2)

	books, total, err = svc.List(context.Background(), entity.BookFilter{AvailableOnly: true}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "1984", books[0].Title)
}

func TestGetBookWithHistory(t *testing.T) {
	store := newMemStore()
	book := store.addBook("1984", "George Orwell", "978-0-452-28423-4", "Fiction", 1)
	student := store.addStudent("Ada", "ada@example.com", "STU001", 5)
	borrowSvc := newBorrowService(store)
	svc := newBookService(store)

	_, err := borrowSvc.Checkout(context.Background(), student.ID, book.ID)
	require.NoError(t, err)

	detail, err := svc.Get(context.Background(), book.ID)
	require.NoError(t, err)
	require.Len(t, detail.BorrowRecords, 1)
	assert.Equal(t, book.ID, detail.BorrowRecords[0].BookID)
}
