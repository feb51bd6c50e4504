package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"library-api/internal/domain/entity"
	"library-api/internal/domain/repository"
)

type StudentService struct {
	Students repository.StudentRepository
	Records  repository.BorrowRepository
	Logger   *logrus.Logger
}

func NewStudentService(students repository.StudentRepository, records repository.BorrowRepository, logger *logrus.Logger) *StudentService {
	return &StudentService{Students: students, Records: records, Logger: logger}
}

type RegisterStudentInput struct {
	Name            string
	Email           string
	StudentID       string
	MaxBooksAllowed *int
}

func (s *StudentService) List(ctx context.Context, page, limit int) ([]*entity.Student, int, error) {
	return s.Students.List(ctx, (page-1)*limit, limit)
}

// Get returns a student together with their full borrow history.
func (s *StudentService) Get(ctx context.Context, id int64) (*entity.StudentWithHistory, error) {
	student, err := s.Students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.Records.ListByStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.StudentWithHistory{Student: *student, BorrowRecords: history}, nil
}

func (s *StudentService) Register(ctx context.Context, in RegisterStudentInput) (*entity.Student, error) {
	maxBooks := entity.DefaultMaxBooksAllowed
	if in.MaxBooksAllowed != nil {
		maxBooks = *in.MaxBooksAllowed
	}
	student := &entity.Student{
		Name:            in.Name,
		Email:           in.Email,
		StudentID:       in.StudentID,
		MaxBooksAllowed: maxBooks,
	}
	if err := s.Students.Create(ctx, student); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"id": student.ID, "student_id": student.StudentID}).Info("student registered")
	return student, nil
}
