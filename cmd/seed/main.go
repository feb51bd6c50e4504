package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"library-api/config"
	pginfra "library-api/internal/infrastructure/postgres"
	"library-api/pkg/helpers"
)

type seedBook struct {
	title    string
	author   string
	isbn     string
	category string
	copies   int
}

type seedStudent struct {
	name      string
	email     string
	studentID string
	maxBooks  int
}

var books = []seedBook{
	{"The Great Gatsby", "F. Scott Fitzgerald", "978-0-7432-7356-5", "Fiction", 5},
	{"To Kill a Mockingbird", "Harper Lee", "978-0-06-112008-4", "Fiction", 3},
	{"1984", "George Orwell", "978-0-452-28423-4", "Dystopian Fiction", 4},
	{"Pride and Prejudice", "Jane Austen", "978-0-14-143951-8", "Romance", 2},
	{"The Catcher in the Rye", "J.D. Salinger", "978-0-316-76948-0", "Fiction", 3},
	{"Lord of the Flies", "William Golding", "978-0-571-05686-2", "Fiction", 4},
	{"The Lord of the Rings", "J.R.R. Tolkien", "978-0-544-00341-5", "Fantasy", 6},
	{"Harry Potter and the Philosopher's Stone", "J.K. Rowling", "978-0-7475-3269-9", "Fantasy", 8},
	{"Introduction to Algorithms", "Thomas H. Cormen", "978-0-262-03384-8", "Computer Science", 3},
	{"Clean Code", "Robert C. Martin", "978-0-13-235088-4", "Computer Science", 2},
}

var students = []seedStudent{
	{"John Doe", "john.doe@university.edu", "STU001", 5},
	{"Jane Smith", "jane.smith@university.edu", "STU002", 5},
	{"Mike Johnson", "mike.johnson@university.edu", "STU003", 3},
	{"Sarah Wilson", "sarah.wilson@university.edu", "STU004", 5},
	{"David Brown", "david.brown@university.edu", "STU005", 4},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	logger.Info("seeding database...")

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE borrow_records, books, students RESTART IDENTITY CASCADE`); err != nil {
			return err
		}

		bookIDs := make([]int64, 0, len(books))
		for _, b := range books {
			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO books (title, author, isbn, category, total_copies, available_copies)
				VALUES ($1, $2, $3, $4, $5, $5)
				RETURNING id`,
				b.title, b.author, b.isbn, b.category, b.copies).Scan(&id)
			if err != nil {
				return err
			}
			bookIDs = append(bookIDs, id)
		}

		studentIDs := make([]int64, 0, len(students))
		for _, s := range students {
			var id int64
			err := tx.QueryRow(ctx, `
				INSERT INTO students (name, email, student_id, max_books_allowed, current_books_count)
				VALUES ($1, $2, $3, $4, 0)
				RETURNING id`,
				s.name, s.email, s.studentID, s.maxBooks).Scan(&id)
			if err != nil {
				return err
			}
			studentIDs = append(studentIDs, id)
		}

		// One overdue loan with an accrued fine and one current loan,
		// so the records and stats endpoints show data out of the box.
		now := time.Now()
		type seedLoan struct {
			student, book int
			borrowed, due time.Time
			status        string
			fine          float64
		}
		loans := []seedLoan{
			{0, 0, now.AddDate(0, 0, -20), now.AddDate(0, 0, -6), "overdue", 12.0},
			{1, 1, now, now.AddDate(0, 0, 14), "borrowed", 0},
		}
		for _, l := range loans {
			_, err := tx.Exec(ctx, `
				INSERT INTO borrow_records (student_id, book_id, borrow_date, due_date, status, fine_amount)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				studentIDs[l.student], bookIDs[l.book], l.borrowed, l.due, l.status, l.fine)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `UPDATE books SET available_copies = available_copies - 1 WHERE id = $1`, bookIDs[l.book]); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `UPDATE students SET current_books_count = current_books_count + 1 WHERE id = $1`, studentIDs[l.student]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	logger.WithField("books", len(books)).WithField("students", len(students)).Info("seeding completed")
}
