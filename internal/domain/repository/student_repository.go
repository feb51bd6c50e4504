package repository

import (
	"context"

	"library-api/internal/domain/entity"
)

// StudentRepository defines student roster persistence.
type StudentRepository interface {
	Create(ctx context.Context, s *entity.Student) error
	GetByID(ctx context.Context, id int64) (*entity.Student, error)
	List(ctx context.Context, offset, limit int) ([]*entity.Student, int, error)
}
