package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/go-emergency-prep/internal/alerts"
	"github.com/mr1hm/go-emergency-prep/internal/models"
	"github.com/mr1hm/go-emergency-prep/internal/service"
	"github.com/mr1hm/go-emergency-prep/internal/training"
)

const sourceManual = "manual"

type Handler struct {
	alerts         *service.AlertService
	training       *service.TrainingService
	plan           models.EmergencyPlan
	recentLimit    int
	dashboardLimit int
}

func NewHandler(a *service.AlertService, t *service.TrainingService, plan models.EmergencyPlan, recentLimit, dashboardLimit int) *Handler {
	return &Handler{
		alerts:         a,
		training:       t,
		plan:           plan,
		recentLimit:    recentLimit,
		dashboardLimit: dashboardLimit,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	api := r.Group("/api")

	api.GET("/alerts", h.listAlerts)
	api.GET("/alerts/stats", h.alertStats)
	api.POST("/alerts", h.createAlert)
	api.POST("/alerts/:id/deactivate", h.deactivateAlert)
	api.DELETE("/alerts/:id", h.dismissAlert)

	api.GET("/modules", h.listModules)
	api.GET("/modules/summary", h.moduleSummary)
	api.GET("/modules/:type", h.getModule)
	api.POST("/modules/:type/lessons/:index/select", h.selectLesson)
	api.POST("/modules/:type/complete", h.completeLesson)
	api.POST("/modules/:type/next", h.nextLesson)
	api.POST("/modules/:type/previous", h.previousLesson)

	api.GET("/dashboard", h.dashboard)
	api.GET("/plan", h.getPlan)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listAlerts(c *gin.Context) {
	limit := h.recentLimit
	if l := c.Query("limit"); l != "" {
		lim, err := strconv.Atoi(l)
		if err != nil || lim < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = lim
	}

	var list []models.Alert
	switch c.DefaultQuery("status", "all") {
	case "all":
		list = h.alerts.All()
	case "active":
		list = h.alerts.Active()
	case "recent":
		list = h.alerts.Recent(limit)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of all, active, recent"})
		return
	}

	c.JSON(http.StatusOK, AlertListResponse{Alerts: list, Count: len(list)})
}

func (h *Handler) alertStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.alerts.Stats())
}

func (h *Handler) createAlert(c *gin.Context) {
	var draft models.AlertDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if draft.Source == "" {
		draft.Source = sourceManual
	}

	a, err := h.alerts.Create(c.Request.Context(), draft)
	if err != nil {
		if errors.Is(err, alerts.ErrMissingField) || errors.Is(err, alerts.ErrInvalidType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("error creating alert", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create alert"})
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *Handler) deactivateAlert(c *gin.Context) {
	if err := h.alerts.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		slog.Error("error deactivating alert", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate alert"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) dismissAlert(c *gin.Context) {
	if err := h.alerts.Dismiss(c.Request.Context(), c.Param("id")); err != nil {
		slog.Error("error dismissing alert", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to dismiss alert"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listModules(c *gin.Context) {
	c.JSON(http.StatusOK, toModuleList(h.training.Modules()))
}

func (h *Handler) moduleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.training.Summary())
}

func (h *Handler) getModule(c *gin.Context) {
	t, ok := moduleParam(c)
	if !ok {
		return
	}

	m, err := h.training.Module(t)
	if err != nil {
		h.trainingError(c, err)
		return
	}
	state, err := h.training.Session(t)
	if err != nil {
		h.trainingError(c, err)
		return
	}

	resp := toModuleResponse(m)
	resp.Session = &state
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) selectLesson(c *gin.Context) {
	t, ok := moduleParam(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lesson index must be an integer"})
		return
	}

	state, err := h.training.SelectLesson(c.Request.Context(), t, index)
	if err != nil {
		h.trainingError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) completeLesson(c *gin.Context) {
	h.navigate(c, h.training.CompleteLesson)
}

func (h *Handler) nextLesson(c *gin.Context) {
	h.navigate(c, h.training.Next)
}

func (h *Handler) previousLesson(c *gin.Context) {
	h.navigate(c, h.training.Previous)
}

func (h *Handler) navigate(c *gin.Context, op func(ctx context.Context, t models.ModuleType) (training.SessionState, error)) {
	t, ok := moduleParam(c)
	if !ok {
		return
	}

	state, err := op(c.Request.Context(), t)
	if err != nil {
		h.trainingError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, service.BuildDashboard(h.alerts, h.training, h.dashboardLimit))
}

func (h *Handler) getPlan(c *gin.Context) {
	c.JSON(http.StatusOK, h.plan)
}

func (h *Handler) trainingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, training.ErrUnknownModule):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, training.ErrLessonOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("training operation failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update progress"})
	}
}

func moduleParam(c *gin.Context) (models.ModuleType, bool) {
	t, ok := models.ParseModuleType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown module: " + c.Param("type")})
		return "", false
	}
	return t, true
}
