package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rates_backend/internal/feature/logs/domain/entity"
	"rates_backend/internal/feature/logs/transport/http/dto"
	"rates_backend/internal/feature/logs/usecase"
)

// LogsUsecase はログサービスのユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type LogsUsecase interface {
	Save(ctx context.Context, e entity.LogEntry) error
	Recent(ctx context.Context) ([]entity.LogEntry, error)
	Summarize(ctx context.Context) (usecase.Summary, error)
}

// LogsHandler handles the centralized logger HTTP endpoints.
type LogsHandler struct {
	uc LogsUsecase
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(uc LogsUsecase) *LogsHandler {
	return &LogsHandler{uc: uc}
}

// Post stores one log entry sent by a worker. Entries without a message are
// rejected with 400.
func (h *LogsHandler) Post(c *gin.Context) {
	var req dto.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log entry"})
		return
	}

	err := h.uc.Save(c.Request.Context(), entity.LogEntry{
		Level:     req.Level,
		Message:   req.Message,
		Timestamp: req.Timestamp,
		Source:    req.LogSource,
	})
	if errors.Is(err, usecase.ErrEmptyMessage) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log entry"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while saving the log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// Recent returns the log entries of the last eight hours, newest first.
func (h *LogsHandler) Recent(c *gin.Context) {
	logs, err := h.uc.Recent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.LogItem, 0, len(logs))
	for _, e := range logs {
		out = append(out, dto.LogItem{
			ID:        e.ID,
			Level:     e.Level,
			Message:   e.Message,
			Timestamp: e.Timestamp,
			LogSource: e.Source,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Summary returns the latest table-count report lines from the workers.
func (h *LogsHandler) Summary(c *gin.Context) {
	s, err := h.uc.Summarize(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}
