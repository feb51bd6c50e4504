package entity

import (
	"math"
	"time"
)

// BorrowStatus is the lifecycle state of a borrow record.
type BorrowStatus string

const (
	StatusBorrowed BorrowStatus = "borrowed"
	StatusOverdue  BorrowStatus = "overdue"
	StatusReturned BorrowStatus = "returned"
)

// LoanPeriodDays is the checkout term; due date is borrow date plus this.
const LoanPeriodDays = 14

// FinePerDay is charged per day late, in currency units.
const FinePerDay = 2.0

// BorrowRecord joins a Book and a Student for one loan. It is created in
// state borrowed, lazily flips to overdue once the due date passes, and
// transitions to returned exactly once, at which point FineAmount is final.
type BorrowRecord struct {
	ID         int64        `json:"id"`
	StudentID  int64        `json:"studentId"`
	BookID     int64        `json:"bookId"`
	BorrowDate time.Time    `json:"borrowDate"`
	DueDate    time.Time    `json:"dueDate"`
	ReturnDate *time.Time   `json:"returnDate,omitempty"`
	Status     BorrowStatus `json:"status"`
	FineAmount float64      `json:"fineAmount"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`

	// Joined summaries, populated on reads that include relations.
	Book    *BookSummary    `json:"book,omitempty"`
	Student *StudentSummary `json:"student,omitempty"`
}

// BookSummary is the slice of book fields embedded in borrow-record reads.
type BookSummary struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn,omitempty"`
}

// StudentSummary is the slice of student fields embedded in borrow-record reads.
type StudentSummary struct {
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
	Email     string `json:"email,omitempty"`
}

// OverdueRecord enriches an overdue borrow record with its live penalty,
// recomputed at read time and never persisted.
type OverdueRecord struct {
	BorrowRecord
	DaysOverdue    int     `json:"daysOverdue"`
	CalculatedFine float64 `json:"calculatedFine"`
}

// RecordFilter narrows a borrow-record listing.
type RecordFilter struct {
	StudentID int64
	BookID    int64
	Status    BorrowStatus
}

// Active reports whether the record still holds a copy.
func (r *BorrowRecord) Active() bool {
	return r.Status == StatusBorrowed || r.Status == StatusOverdue
}

// DueDateFor computes the due date for a checkout at borrowDate.
func DueDateFor(borrowDate time.Time) time.Time {
	return borrowDate.AddDate(0, 0, LoanPeriodDays)
}

// DaysLate counts full-or-partial days past due at asOf, never negative.
// Any fraction of a day counts as a whole day.
func DaysLate(dueDate, asOf time.Time) int {
	d := int(math.Ceil(asOf.Sub(dueDate).Hours() / 24))
	if d < 0 {
		return 0
	}
	return d
}

// Fine computes the penalty owed at asOf for a record due at dueDate.
// Zero when returned on or before the due date.
func Fine(dueDate, asOf time.Time) float64 {
	days := DaysLate(dueDate, asOf)
	if days <= 0 {
		return 0
	}
	return float64(days) * FinePerDay
}
