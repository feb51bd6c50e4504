package modules

import (
	"github.com/gin-gonic/gin"

	handlers "library-api/internal/interface/http"
)

// BookModule mounts the book catalog routes:
// GET/POST /api/books, GET/PUT/DELETE /api/books/:id

type BookModule struct {
	Handler *handlers.BookHandler
}

func NewBookModule(h *handlers.BookHandler) *BookModule {
	return &BookModule{Handler: h}
}

func (m *BookModule) Register(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		books.GET("", m.Handler.List)
		books.GET("/:id", m.Handler.Get)
		books.POST("", m.Handler.Create)
		books.PUT("/:id", m.Handler.Update)
		books.DELETE("/:id", m.Handler.Delete)
	}
}
