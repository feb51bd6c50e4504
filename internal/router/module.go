package router

import "github.com/gin-gonic/gin"

// Module is a feature (books, students, borrowing, stats) that registers
// its routes on the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
