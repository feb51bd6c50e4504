package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"library-api/internal/domain/entity"
	"library-api/internal/domain/repository"
	"library-api/pkg/apperr"
)

// memStore is an in-memory stand-in for the Postgres store. It mirrors the
// transactional semantics the engine relies on: mutations inside WithinTx
// are all-or-nothing, and the counter updates enforce the same range guards
// as the conditional SQL updates.
type memStore struct {
	mu       sync.Mutex
	books    map[int64]*entity.Book
	students map[int64]*entity.Student
	records  map[int64]*entity.BorrowRecord
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		books:    make(map[int64]*entity.Book),
		students: make(map[int64]*entity.Student),
		records:  make(map[int64]*entity.BorrowRecord),
	}
}

func (m *memStore) addBook(title, author, isbn, category string, copies int) *entity.Book {
	m.nextID++
	b := &entity.Book{ID: m.nextID, Title: title, Author: author, ISBN: isbn,
		Category: category, TotalCopies: copies, AvailableCopies: copies}
	m.books[b.ID] = b
	return b
}

func (m *memStore) addStudent(name, email, studentID string, maxBooks int) *entity.Student {
	m.nextID++
	s := &entity.Student{ID: m.nextID, Name: name, Email: email,
		StudentID: studentID, MaxBooksAllowed: maxBooks}
	m.students[s.ID] = s
	return s
}

func (m *memStore) snapshot() (map[int64]*entity.Book, map[int64]*entity.Student, map[int64]*entity.BorrowRecord) {
	books := make(map[int64]*entity.Book, len(m.books))
	for id, b := range m.books {
		cp := *b
		books[id] = &cp
	}
	students := make(map[int64]*entity.Student, len(m.students))
	for id, s := range m.students {
		cp := *s
		students[id] = &cp
	}
	records := make(map[int64]*entity.BorrowRecord, len(m.records))
	for id, r := range m.records {
		cp := *r
		records[id] = &cp
	}
	return books, students, records
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx repository.BorrowTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	books, students, records := m.snapshot()
	if err := fn(&memTx{store: m}); err != nil {
		m.books, m.students, m.records = books, students, records
		return err
	}
	return nil
}

type memTx struct {
	store *memStore
}

func (t *memTx) StudentForUpdate(ctx context.Context, id int64) (*entity.Student, error) {
	s, ok := t.store.students[id]
	if !ok {
		return nil, apperr.NotFound("Student not found")
	}
	cp := *s
	return &cp, nil
}

func (t *memTx) BookForUpdate(ctx context.Context, id int64) (*entity.Book, error) {
	b, ok := t.store.books[id]
	if !ok {
		return nil, apperr.NotFound("Book not found")
	}
	cp := *b
	return &cp, nil
}

func (t *memTx) HasActiveBorrow(ctx context.Context, studentID, bookID int64) (bool, error) {
	for _, r := range t.store.records {
		if r.StudentID == studentID && r.BookID == bookID && r.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) CreateBorrow(ctx context.Context, rec *entity.BorrowRecord) error {
	t.store.nextID++
	rec.ID = t.store.nextID
	cp := *rec
	t.store.records[rec.ID] = &cp
	return nil
}

func (t *memTx) BorrowForUpdate(ctx context.Context, id int64) (*entity.BorrowRecord, error) {
	r, ok := t.store.records[id]
	if !ok {
		return nil, apperr.NotFound("Borrow record not found")
	}
	cp := *r
	return &cp, nil
}

func (t *memTx) FinishBorrow(ctx context.Context, rec *entity.BorrowRecord) error {
	stored, ok := t.store.records[rec.ID]
	if !ok {
		return apperr.NotFound("Borrow record not found")
	}
	stored.Status = rec.Status
	stored.ReturnDate = rec.ReturnDate
	stored.FineAmount = rec.FineAmount
	return nil
}

func (t *memTx) AddBookCopies(ctx context.Context, bookID int64, delta int) error {
	b, ok := t.store.books[bookID]
	if !ok {
		return apperr.NotFound("Book not found")
	}
	next := b.AvailableCopies + delta
	if next < 0 || next > b.TotalCopies {
		return apperr.Conflict("Book is not available for borrowing")
	}
	b.AvailableCopies = next
	return nil
}

func (t *memTx) AddStudentBooks(ctx context.Context, studentID int64, delta int) error {
	s, ok := t.store.students[studentID]
	if !ok {
		return apperr.NotFound("Student not found")
	}
	next := s.CurrentBooksCount + delta
	if next < 0 || next > s.MaxBooksAllowed {
		return apperr.Conflict("Student has reached maximum borrowing limit")
	}
	s.CurrentBooksCount = next
	return nil
}

// --- read side ---

func (m *memStore) sortedRecords() []*entity.BorrowRecord {
	out := make([]*entity.BorrowRecord, 0, len(m.records))
	for _, r := range m.records {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BorrowDate.After(out[j].BorrowDate) })
	return out
}

func (m *memStore) List(ctx context.Context, f entity.RecordFilter, offset, limit int) ([]*entity.BorrowRecord, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]*entity.BorrowRecord, 0)
	for _, r := range m.sortedRecords() {
		if f.StudentID != 0 && r.StudentID != f.StudentID {
			continue
		}
		if f.BookID != 0 && r.BookID != f.BookID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		matched = append(matched, r)
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *memStore) ListOverdue(ctx context.Context) ([]*entity.BorrowRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.BorrowRecord, 0)
	for _, r := range m.sortedRecords() {
		if r.Status == entity.StatusOverdue {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (m *memStore) ListByBook(ctx context.Context, bookID int64) ([]*entity.BorrowRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.BorrowRecord, 0)
	for _, r := range m.sortedRecords() {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ListByStudent(ctx context.Context, studentID int64) ([]*entity.BorrowRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.BorrowRecord, 0)
	for _, r := range m.sortedRecords() {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.records {
		if r.Status == entity.StatusBorrowed && r.DueDate.Before(asOf) {
			r.Status = entity.StatusOverdue
			n++
		}
	}
	return n, nil
}

// --- book repository side, for BookService tests ---

func (m *memStore) Create(ctx context.Context, b *entity.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.books {
		if existing.ISBN == b.ISBN {
			return apperr.Duplicate("Book with this ISBN already exists")
		}
	}
	m.nextID++
	b.ID = m.nextID
	b.AvailableCopies = b.TotalCopies
	cp := *b
	m.books[b.ID] = &cp
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*entity.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, apperr.NotFound("Book not found")
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) ListBooks(ctx context.Context, f entity.BookFilter, offset, limit int) ([]*entity.Book, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]*entity.Book, 0)
	for _, b := range m.books {
		if f.Title != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(f.Title)) {
			continue
		}
		if f.Author != "" && !strings.Contains(strings.ToLower(b.Author), strings.ToLower(f.Author)) {
			continue
		}
		if f.Category != "" && !strings.Contains(strings.ToLower(b.Category), strings.ToLower(f.Category)) {
			continue
		}
		if f.AvailableOnly && b.AvailableCopies <= 0 {
			continue
		}
		cp := *b
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *memStore) Update(ctx context.Context, b *entity.Book, copiesDelta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.books[b.ID]
	if !ok {
		return apperr.NotFound("Book not found")
	}
	next := stored.AvailableCopies + copiesDelta
	if next < 0 || next > b.TotalCopies {
		return apperr.Conflict("Cannot reduce total copies below the number currently borrowed")
	}
	stored.Title = b.Title
	stored.Author = b.Author
	stored.Category = b.Category
	stored.TotalCopies = b.TotalCopies
	stored.AvailableCopies = next
	b.AvailableCopies = next
	return nil
}

func (m *memStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return apperr.NotFound("Book not found")
	}
	delete(m.books, id)
	return nil
}

func (m *memStore) CountActiveBorrows(ctx context.Context, bookID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.records {
		if r.BookID == bookID && r.Active() {
			n++
		}
	}
	return n, nil
}

// bookRepoAdapter renames List so memStore can satisfy both repository
// interfaces despite the clashing method name.
type bookRepoAdapter struct {
	*memStore
}

func (a bookRepoAdapter) List(ctx context.Context, f entity.BookFilter, offset, limit int) ([]*entity.Book, int, error) {
	return a.ListBooks(ctx, f, offset, limit)
}

var (
	_ repository.BorrowStore      = (*memStore)(nil)
	_ repository.BorrowRepository = (*memStore)(nil)
	_ repository.BookRepository   = bookRepoAdapter{}
)
