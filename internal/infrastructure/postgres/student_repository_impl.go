package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-api/internal/domain/entity"
	"library-api/internal/domain/repository"
	"library-api/pkg/apperr"
)

type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, name, email, student_id, max_books_allowed, current_books_count, created_at, updated_at`

func scanStudent(row pgx.Row) (*entity.Student, error) {
	s := &entity.Student{}
	err := row.Scan(&s.ID, &s.Name, &s.Email, &s.StudentID,
		&s.MaxBooksAllowed, &s.CurrentBooksCount, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *StudentRepository) Create(ctx context.Context, s *entity.Student) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO students (name, email, student_id, max_books_allowed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, current_books_count, created_at, updated_at
	`, s.Name, s.Email, s.StudentID, s.MaxBooksAllowed)

	if err := row.Scan(&s.ID, &s.CurrentBooksCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperr.Duplicate("Student with this email or student ID already exists")
		}
		return err
	}
	return nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*entity.Student, error) {
	s, err := scanStudent(r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Student not found")
		}
		return nil, err
	}
	return s, nil
}

func (r *StudentRepository) List(ctx context.Context, offset, limit int) ([]*entity.Student, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+studentColumns+` FROM students
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students := make([]*entity.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, rows.Err()
}

var _ repository.StudentRepository = (*StudentRepository)(nil)
