package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-api/internal/application"
	"library-api/pkg/response"
	"library-api/pkg/validation"
)

type StudentHandler struct {
	Svc    *application.StudentService
	Logger *logrus.Logger
	Debug  bool
}

func NewStudentHandler(svc *application.StudentService, logger *logrus.Logger, debug bool) *StudentHandler {
	return &StudentHandler{Svc: svc, Logger: logger, Debug: debug}
}

type registerStudentRequest struct {
	Name            string `json:"name" binding:"required,max=255"`
	Email           string `json:"email" binding:"required,email"`
	StudentID       string `json:"studentId" binding:"required,max=50"`
	MaxBooksAllowed *int   `json:"maxBooksAllowed" binding:"omitempty,min=1,max=20"`
}

func (h *StudentHandler) List(c *gin.Context) {
	var q paginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}

	students, total, err := h.Svc.List(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to fetch students")
		return
	}
	response.Paginated(c, students, response.NewPagination(q.Page, q.Limit, total))
}

func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	student, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to fetch student")
		return
	}
	response.Success(c, http.StatusOK, student, "")
}

func (h *StudentHandler) Register(c *gin.Context) {
	var req registerStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}

	student, err := h.Svc.Register(c.Request.Context(), application.RegisterStudentInput{
		Name:            req.Name,
		Email:           req.Email,
		StudentID:       req.StudentID,
		MaxBooksAllowed: req.MaxBooksAllowed,
	})
	if err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to register student")
		return
	}
	response.Success(c, http.StatusCreated, student, "Student registered successfully")
}
