package modules

import (
	"github.com/gin-gonic/gin"

	handlers "library-api/internal/interface/http"
)

// StudentModule mounts the student roster routes:
// GET/POST /api/students, GET /api/students/:id

type StudentModule struct {
	Handler *handlers.StudentHandler
}

func NewStudentModule(h *handlers.StudentHandler) *StudentModule {
	return &StudentModule{Handler: h}
}

func (m *StudentModule) Register(rg *gin.RouterGroup) {
	students := rg.Group("/students")
	{
		students.GET("", m.Handler.List)
		students.GET("/:id", m.Handler.Get)
		students.POST("", m.Handler.Register)
	}
}
