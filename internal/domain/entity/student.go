package entity

import "time"

// DefaultMaxBooksAllowed applies when registration omits maxBooksAllowed.
const DefaultMaxBooksAllowed = 5

// Student is a registered borrower. CurrentBooksCount mirrors the number of
// this student's active borrow records and is maintained transactionally by
// the borrowing engine.
type Student struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	StudentID         string    `json:"studentId"`
	MaxBooksAllowed   int       `json:"maxBooksAllowed"`
	CurrentBooksCount int       `json:"currentBooksCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// StudentWithHistory is the student detail payload including borrow history.
type StudentWithHistory struct {
	Student
	BorrowRecords []*BorrowRecord `json:"borrowRecords"`
}
