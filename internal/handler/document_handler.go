package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/voyagehq/sofdesk/internal/model"
	"github.com/voyagehq/sofdesk/internal/pipeline"
	"github.com/voyagehq/sofdesk/internal/pkg/errcode"
	"github.com/voyagehq/sofdesk/internal/pkg/response"
)

type DocumentHandler struct {
	pipe           *pipeline.Service
	maxUploadBytes int64
}

func NewDocumentHandler(pipe *pipeline.Service, maxUploadBytes int64) *DocumentHandler {
	return &DocumentHandler{pipe: pipe, maxUploadBytes: maxUploadBytes}
}

// Process accepts a multipart upload and runs it through the intake pipeline.
func (h *DocumentHandler) Process(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrMissingFile, "file is required")
		return
	}
	sessionID := strings.TrimSpace(c.PostForm("session_id"))
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrMissingSession, "session_id is required")
		return
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "file exceeds upload size limit")
		return
	}
	debug := isTruthy(c.PostForm("debug"))

	opened, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "failed to open file")
		return
	}
	defer opened.Close()
	data, err := io.ReadAll(opened)
	if err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "failed to read file")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	doc := model.RawDocument{
		Bytes:       data,
		ContentType: contentType,
		FileName:    file.Filename,
		SessionID:   sessionID,
	}
	processed, err := h.pipe.Process(c.Request.Context(), doc, debug)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, processed)
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
