package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nmswainston/dwellpath-backend/config"
	"github.com/nmswainston/dwellpath-backend/models"
	"github.com/nmswainston/dwellpath-backend/residency"
	"github.com/nmswainston/dwellpath-backend/utils"
	"github.com/nmswainston/dwellpath-backend/workflow"
	"github.com/sirupsen/logrus"
)

type handlers struct {
	logger *logrus.Logger
	svc    *residency.Service
	sink   workflow.AlertSink
}

func newHandlers(logger *logrus.Logger, svc *residency.Service) *handlers {
	return &handlers{logger: logger, svc: svc, sink: models.NewGormStore()}
}

func ownerId(c *gin.Context) string {
	id, _ := utils.GetOwnerIdFromContext(c.Request.Context())
	return id
}

func pathId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// yearQuery parses ?year=; when absent it falls back to the current UTC year.
func yearQuery(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().UTC().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, false
	}
	return year, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorInvalidDateRange), errors.Is(err, utils.ErrorInvalidStateCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ---- intervals ----

func (h *handlers) createInterval(c *gin.Context) {
	var input models.NewResidencyInterval
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := ownerId(c)
	interval, err := models.CreateResidencyInterval(c.Request.Context(), owner, &input)
	if err != nil {
		writeError(c, err)
		return
	}

	// Second, best-effort step: the write above is already durable, so an
	// alert evaluation failure must not fail the request.
	draft := workflow.ProcessIntervalAlert(c.Request.Context(), h.logger, h.svc, h.sink, owner, interval.ToRecord())
	h.invalidateDashboard(owner)

	c.JSON(http.StatusCreated, gin.H{"interval": interval, "alert": draft})
}

func (h *handlers) listIntervals(c *gin.Context) {
	var year *int
	if raw := c.Query("year"); raw != "" {
		y, ok := yearQuery(c)
		if !ok {
			return
		}
		year = &y
	}
	var state *string
	if raw := c.Query("state"); raw != "" {
		state = &raw
	}

	intervals, err := models.GetResidencyIntervals(c.Request.Context(), ownerId(c), year, state)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intervals": intervals})
}

func (h *handlers) updateInterval(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	var input models.NewResidencyInterval
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := ownerId(c)
	interval, err := models.UpdateResidencyInterval(c.Request.Context(), owner, id, &input)
	if err != nil {
		writeError(c, err)
		return
	}

	draft := workflow.ProcessIntervalAlert(c.Request.Context(), h.logger, h.svc, h.sink, owner, interval.ToRecord())
	h.invalidateDashboard(owner)

	c.JSON(http.StatusOK, gin.H{"interval": interval, "alert": draft})
}

func (h *handlers) deleteInterval(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	owner := ownerId(c)
	interval, err := models.DeleteResidencyInterval(c.Request.Context(), owner, id)
	if err != nil {
		writeError(c, err)
		return
	}
	h.invalidateDashboard(owner)

	c.JSON(http.StatusOK, gin.H{"interval": interval})
}

// ---- residency reads ----

func (h *handlers) stateDayTotals(c *gin.Context) {
	year, ok := yearQuery(c)
	if !ok {
		return
	}

	totals, err := h.svc.ComputeStateDayTotals(c.Request.Context(), ownerId(c), year)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"year": year, "states": totals})
}

func (h *handlers) dashboard(c *gin.Context) {
	owner := ownerId(c)
	cacheKey := dashboardCacheKey(owner)

	if dashboardCacheEnabled() {
		var cached residency.DashboardStats
		found, err := config.GetRedisObject(cacheKey, &cached)
		if err != nil {
			config.LogError(h.logger, "handlers", "dashboard", "redis read", cacheKey, err)
		} else if found {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	stats, err := h.svc.ComputeDashboardStats(c.Request.Context(), owner)
	if err != nil {
		writeError(c, err)
		return
	}

	if dashboardCacheEnabled() {
		if err := config.SetRedisObject(cacheKey, stats, dashboardCacheTTL()); err != nil {
			config.LogError(h.logger, "handlers", "dashboard", "redis write", cacheKey, err)
		}
	}

	c.JSON(http.StatusOK, stats)
}

func dashboardCacheEnabled() bool {
	return os.Getenv("ENABLE_DASHBOARD_CACHE") == "true"
}

func dashboardCacheTTL() time.Duration {
	if raw := os.Getenv("DASHBOARD_CACHE_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 60 * time.Second
}

func dashboardCacheKey(owner string) string {
	return fmt.Sprintf("dashboard:%s:%d", owner, time.Now().UTC().Year())
}

func (h *handlers) invalidateDashboard(owner string) {
	if !dashboardCacheEnabled() {
		return
	}
	if err := config.RemoveRedisKey(dashboardCacheKey(owner)); err != nil {
		config.LogError(h.logger, "handlers", "invalidateDashboard", "redis del", owner, err)
	}
}

// ---- alerts ----

func (h *handlers) listAlerts(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	alerts, err := models.GetAlerts(c.Request.Context(), ownerId(c), unreadOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (h *handlers) markAlertRead(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	alert, err := models.MarkAlertRead(c.Request.Context(), ownerId(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": alert})
}

func (h *handlers) deleteAlert(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	alert, err := models.DeleteAlert(c.Request.Context(), ownerId(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": alert})
}

// ---- expenses ----

func (h *handlers) createExpense(c *gin.Context) {
	var input models.NewExpense
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expense, err := models.CreateExpense(c.Request.Context(), ownerId(c), &input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

func (h *handlers) listExpenses(c *gin.Context) {
	var year *int
	if raw := c.Query("year"); raw != "" {
		y, ok := yearQuery(c)
		if !ok {
			return
		}
		year = &y
	}
	var state *string
	if raw := c.Query("state"); raw != "" {
		state = &raw
	}
	expenses, err := models.GetExpenses(c.Request.Context(), ownerId(c), year, state)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses})
}

func (h *handlers) deleteExpense(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	expense, err := models.DeleteExpense(c.Request.Context(), ownerId(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// ---- journal entries ----

func (h *handlers) createJournalEntry(c *gin.Context) {
	var input models.NewJournalEntry
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := models.CreateJournalEntry(c.Request.Context(), ownerId(c), &input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"journal_entry": entry})
}

func (h *handlers) listJournalEntries(c *gin.Context) {
	var year *int
	if raw := c.Query("year"); raw != "" {
		y, ok := yearQuery(c)
		if !ok {
			return
		}
		year = &y
	}
	var state *string
	if raw := c.Query("state"); raw != "" {
		state = &raw
	}
	entries, err := models.GetJournalEntries(c.Request.Context(), ownerId(c), year, state)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"journal_entries": entries})
}

func (h *handlers) deleteJournalEntry(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}
	entry, err := models.DeleteJournalEntry(c.Request.Context(), ownerId(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"journal_entry": entry})
}

// ---- audit package ----

func (h *handlers) auditPackage(c *gin.Context) {
	year, ok := yearQuery(c)
	if !ok {
		return
	}
	stateFilter := strings.ToUpper(strings.TrimSpace(c.Query("state")))
	if stateFilter != "" && len(stateFilter) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ErrorInvalidStateCode.Error()})
		return
	}

	pkg, err := workflow.GenerateAuditPackage(c.Request.Context(), h.logger, h.svc, ownerId(c), year, stateFilter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *handlers) auditHistory(c *gin.Context) {
	logs, err := models.GetAuditLogs(c.Request.Context(), ownerId(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit_logs": logs})
}
