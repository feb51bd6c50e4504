package modules

import (
	"github.com/gin-gonic/gin"

	handlers "library-api/internal/interface/http"
)

// StatsModule mounts GET /api/stats.

type StatsModule struct {
	Handler *handlers.StatsHandler
}

func NewStatsModule(h *handlers.StatsHandler) *StatsModule {
	return &StatsModule{Handler: h}
}

func (m *StatsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/stats", m.Handler.Overview)
}
