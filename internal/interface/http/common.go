package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"library-api/pkg/apperr"
	"library-api/pkg/response"
)

// paginationQuery is shared by every paginated listing endpoint.
type paginationQuery struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid id parameter", nil)
		return 0, false
	}
	return id, true
}

// writeError translates an application error into the CRUD status mapping.
// Internal failures log the cause and, outside production, echo it in the
// response; typed business errors surface their message with the mapped
// status.
func writeError(c *gin.Context, logger *logrus.Logger, debug bool, err error, fallback string) {
	if apperr.KindOf(err) != apperr.KindInternal {
		response.Error(c, apperr.HTTPStatus(err), err.Error(), nil)
		return
	}
	logger.WithError(err).Error(fallback)
	var detail interface{}
	if debug {
		detail = err.Error()
	}
	response.Error(c, http.StatusInternalServerError, fallback, detail)
}
