package entity

import "time"

// Book is an independently owned aggregate. AvailableCopies is a derived
// counter: total_copies minus the number of active borrow records referencing
// this book. Only the borrowing engine's transactions may move it.
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	Category        string    `json:"category"`
	TotalCopies     int       `json:"totalCopies"`
	AvailableCopies int       `json:"availableCopies"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BookFilter narrows a book listing. String fields match as case-insensitive
// substrings; AvailableOnly keeps books with at least one free copy.
type BookFilter struct {
	Title         string
	Author        string
	Category      string
	AvailableOnly bool
}

// BookWithHistory is the book detail payload including its borrow history.
type BookWithHistory struct {
	Book
	BorrowRecords []*BorrowRecord `json:"borrowRecords"`
}
