package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-api/internal/application"
	"library-api/internal/domain/entity"
	"library-api/pkg/apperr"
	"library-api/pkg/response"
	"library-api/pkg/validation"
)

type BorrowHandler struct {
	Svc    *application.BorrowService
	Logger *logrus.Logger
	Debug  bool
}

func NewBorrowHandler(svc *application.BorrowService, logger *logrus.Logger, debug bool) *BorrowHandler {
	return &BorrowHandler{Svc: svc, Logger: logger, Debug: debug}
}

type checkoutRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
	BookID    int64 `json:"bookId" binding:"required"`
}

type returnRequest struct {
	BorrowID int64 `json:"borrowId" binding:"required"`
}

type listRecordsQuery struct {
	paginationQuery
	StudentID int64  `form:"studentId" binding:"omitempty,min=1"`
	BookID    int64  `form:"bookId" binding:"omitempty,min=1"`
	Status    string `form:"status" binding:"omitempty,oneof=borrowed overdue returned"`
}

// businessError flattens every checkout/return business failure to 400 with
// a plain message, not-found cases included.
func (h *BorrowHandler) businessError(c *gin.Context, err error, fallback string) {
	if apperr.KindOf(err) == apperr.KindInternal {
		writeError(c, h.Logger, h.Debug, err, fallback)
		return
	}
	response.Error(c, http.StatusBadRequest, err.Error(), nil)
}

func (h *BorrowHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}

	rec, err := h.Svc.Checkout(c.Request.Context(), req.StudentID, req.BookID)
	if err != nil {
		h.businessError(c, err, "Failed to borrow book")
		return
	}
	response.Success(c, http.StatusCreated, rec, "Book borrowed successfully")
}

func (h *BorrowHandler) Return(c *gin.Context) {
	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}

	rec, err := h.Svc.Return(c.Request.Context(), req.BorrowID)
	if err != nil {
		h.businessError(c, err, "Failed to return book")
		return
	}
	response.Success(c, http.StatusOK, rec, "Book returned successfully")
}

func (h *BorrowHandler) Records(c *gin.Context) {
	var q listRecordsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation error", validation.ToDetails(err))
		return
	}

	filter := entity.RecordFilter{
		StudentID: q.StudentID,
		BookID:    q.BookID,
		Status:    entity.BorrowStatus(q.Status),
	}
	records, total, err := h.Svc.ListRecords(c.Request.Context(), filter, q.Page, q.Limit)
	if err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to fetch borrow records")
		return
	}
	response.Paginated(c, records, response.NewPagination(q.Page, q.Limit, total))
}

func (h *BorrowHandler) Overdue(c *gin.Context) {
	records, err := h.Svc.Overdue(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to fetch overdue records")
		return
	}
	response.List(c, records, len(records))
}
