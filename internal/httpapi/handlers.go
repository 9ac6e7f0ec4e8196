package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/b0gochort/spamwarden/internal/agent"
	"github.com/b0gochort/spamwarden/internal/auth"
	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/queue"
	"github.com/b0gochort/spamwarden/internal/review"
	"github.com/b0gochort/spamwarden/internal/scoring"
	"github.com/b0gochort/spamwarden/internal/store"
	"github.com/b0gochort/spamwarden/internal/storeerr"
	"github.com/b0gochort/spamwarden/internal/telemetry"
)

type handlers struct {
	st      store.Store
	queue   *queue.Service
	review  *review.Service
	scoring *scoring.Service
	retrain *agent.RetrainAgentRunner
	auth    *auth.Service
	metrics *telemetry.Metrics
	logger  *zap.Logger
}

func (h *handlers) health(c *gin.Context) {
	if _, err := h.st.GetSettings(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":           "up",
		"classifier_ready": h.scoring.IsReady(c.Request.Context()),
	})
}

func (h *handlers) login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, expiresAt, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": expiresAt})
}

func (h *handlers) enqueueMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.queue.Enqueue(c.Request.Context(), req.Text)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *handlers) queueCounts(c *gin.Context) {
	counts, err := h.queue.Counts(c.Request.Context())
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *handlers) reviewMessage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	var req struct {
		Label      models.Label `json:"label" binding:"required"`
		ReviewedBy string       `json:"reviewed_by" binding:"required"`
		Note       string       `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rev, err := h.review.AddReview(c.Request.Context(), id, req.Label, req.ReviewedBy, req.Note)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	h.metrics.Reviews.Add(context.Background(), 1, metric.WithAttributes(attribute.String("label", string(req.Label))))
	c.JSON(http.StatusCreated, rev)
}

func (h *handlers) forceRetrain(c *gin.Context) {
	var req struct {
		Template models.TrainTemplate `json:"template"`
		Activate bool                 `json:"activate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Template == "" {
		req.Template = models.TemplateLight
	}

	event := h.retrain.ForceRetrain(c.Request.Context(), req.Template, req.Activate)
	if !event.Success {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": event.Reason})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *handlers) getSettings(c *gin.Context) {
	settings, err := h.st.GetSettings(c.Request.Context())
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *handlers) updateSettings(c *gin.Context) {
	var req models.SystemSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = 1

	if err := validateThresholds(req.ThresholdAllow, req.ThresholdBlock); err != nil {
		writeStoreErr(c, err)
		return
	}

	if err := h.st.UpdateSettings(c.Request.Context(), &req); err != nil {
		writeStoreErr(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func validateThresholds(allow, block float64) error {
	if allow < 0 || allow > 1 || block < 0 || block > 1 {
		return storeerr.InvalidInput("updateSettings", errors.New("thresholds must be within [0, 1]"))
	}
	if allow > block {
		return storeerr.InvalidInput("updateSettings", errors.New("threshold_allow must not exceed threshold_block"))
	}
	return nil
}

func writeStoreErr(c *gin.Context, err error) {
	switch storeerr.KindOf(err) {
	case storeerr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case storeerr.KindInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case storeerr.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case storeerr.KindNotReady:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
