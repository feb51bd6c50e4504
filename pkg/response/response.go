package response

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse[T any] struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       T           `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Total      *int        `json:"total,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
}

// Pagination describes a page of a larger result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes totalPages from the row count and page size.
func NewPagination(page, limit, total int) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

func Success[T any](c *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, APIResponse[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.GetString("request_id"),
	})
}

// Paginated writes a successful page of results with pagination meta.
func Paginated[T any](c *gin.Context, data T, p *Pagination) {
	c.JSON(http.StatusOK, APIResponse[T]{
		Success:    true,
		Data:       data,
		Pagination: p,
		RequestID:  c.GetString("request_id"),
	})
}

// List writes a successful unpaginated collection with its total count.
func List[T any](c *gin.Context, data T, total int) {
	c.JSON(http.StatusOK, APIResponse[T]{
		Success:   true,
		Data:      data,
		Total:     &total,
		RequestID: c.GetString("request_id"),
	})
}

func Error(c *gin.Context, status int, message string, errs interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, APIResponse[any]{
		Success:   false,
		Message:   message,
		Errors:    errs,
		RequestID: c.GetString("request_id"),
	})
}
