package modules

import (
	"github.com/gin-gonic/gin"

	handlers "library-api/internal/interface/http"
)

// BorrowModule mounts the circulation routes:
// POST /api/borrow/checkout, POST /api/borrow/return,
// GET /api/borrow/records, GET /api/borrow/overdue

type BorrowModule struct {
	Handler *handlers.BorrowHandler
}

func NewBorrowModule(h *handlers.BorrowHandler) *BorrowModule {
	return &BorrowModule{Handler: h}
}

func (m *BorrowModule) Register(rg *gin.RouterGroup) {
	borrow := rg.Group("/borrow")
	{
		borrow.POST("/checkout", m.Handler.Checkout)
		borrow.POST("/return", m.Handler.Return)
		borrow.GET("/records", m.Handler.Records)
		borrow.GET("/overdue", m.Handler.Overdue)
	}
}
