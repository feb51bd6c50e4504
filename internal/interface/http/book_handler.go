package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-api/internal/application"
	"library-api/internal/domain/entity"
	"library-api/pkg/response"
	"library-api/pkg/validation"
)

type BookHandler struct {
	Svc    *application.BookService
	Logger *logrus.Logger
	Debug  bool
}

func NewBookHandler(svc *application.BookService, logger *logrus.Logger, debug bool) *BookHandler {
	return &BookHandler{Svc: svc, Logger: logger, Debug: debug}
}

type listBooksQuery struct {
	paginationQuery
	Category  string `form:"category"`
	Author    string `form:"author"`
	Title     string `form:"title"`
	Available string `form:"available"`
}

type createBookRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Author      string `json:"author" binding:"required,max=255"`
	ISBN        string `json:"isbn" binding:"required,isbn"`
	Category    string `json:"category" binding:"required,max=100"`
	TotalCopies int    `json:"totalCopies" binding:"required,min=1"`
}

type updateBookRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Author      *string `json:"author" binding:"omitempty,min=1,max=255"`
	Category    *string `json:"category" binding:"omitempty,min=1,max=100"`
	TotalCopies *int    `json:"totalCopies" binding:"omitempty,min=1"`
}

func (h *BookHandler) List(c *gin.Context) {
	var q listBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}

	filter := entity.BookFilter{
		Category:      q.Category,
		Author:        q.Author,
		Title:         q.Title,
		AvailableOnly: q.Available == "true",
	}
	books, total, err := h.Svc.List(c.Request.Context(), filter, q.Page, q.Limit)
	if err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to fetch books")
		return
	}
	response.Paginated(c, books, response.NewPagination(q.Page, q.Limit, total))
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	book, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to fetch book")
		return
	}
	response.Success(c, http.StatusOK, book, "")
}

func (h *BookHandler) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}

	book, err := h.Svc.Create(c.Request.Context(), application.CreateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Category:    req.Category,
		TotalCopies: req.TotalCopies,
	})
	if err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to add book")
		return
	}
	response.Success(c, http.StatusCreated, book, "Book added successfully")
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}

	book, err := h.Svc.Update(c.Request.Context(), id, application.UpdateBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		TotalCopies: req.TotalCopies,
	})
	if err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to update book")
		return
	}
	response.Success(c, http.StatusOK, book, "Book updated successfully")
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to delete book")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Book deleted successfully")
}
