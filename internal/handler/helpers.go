package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/voyagehq/sofdesk/internal/middleware"
	"github.com/voyagehq/sofdesk/internal/pkg/errcode"
	apperr "github.com/voyagehq/sofdesk/internal/pkg/errors"
	"github.com/voyagehq/sofdesk/internal/pkg/response"
)

// handleError maps the pipeline error taxonomy onto HTTP statuses. Error
// messages go to the client as-is; they never carry credentials.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, apperr.ErrUnsupportedType):
		response.Error(c, http.StatusBadRequest, errcode.ErrUnsupportedType, err.Error())
	case errors.Is(err, apperr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, err.Error())
	case errors.Is(err, apperr.ErrNoCredential):
		response.Error(c, http.StatusInternalServerError, errcode.ErrNoCredential, err.Error())
	case errors.Is(err, apperr.ErrExtraction):
		response.Error(c, http.StatusInternalServerError, errcode.ErrExtraction, err.Error())
	case apperr.IsProviderError(err):
		response.Error(c, http.StatusInternalServerError, errcode.ErrProvider, err.Error())
	case errors.Is(err, apperr.ErrStructureParse),
		errors.Is(err, apperr.ErrSchema),
		errors.Is(err, apperr.ErrSectionInvalid):
		response.Error(c, http.StatusInternalServerError, errcode.ErrStructuring, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, errcode.ErrInternal, "internal error")
	}
}
