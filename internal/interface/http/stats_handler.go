package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-api/internal/application"
	"library-api/pkg/response"
)

type StatsHandler struct {
	Svc    *application.StatsService
	Logger *logrus.Logger
	Debug  bool
}

func NewStatsHandler(svc *application.StatsService, logger *logrus.Logger, debug bool) *StatsHandler {
	return &StatsHandler{Svc: svc, Logger: logger, Debug: debug}
}

func (h *StatsHandler) Overview(c *gin.Context) {
	stats, err := h.Svc.Overview(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, h.Debug, err, "Failed to fetch statistics")
		return
	}
	response.Success(c, http.StatusOK, stats, "")
}
