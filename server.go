package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nmswainston/dwellpath-backend/config"
	"github.com/nmswainston/dwellpath-backend/middlewares"
	"github.com/nmswainston/dwellpath-backend/models"
	"github.com/nmswainston/dwellpath-backend/residency"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

func main() {
	logger := config.GetLogger()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(customErrorLogger(logger))
	r.Use(cors.New(corsConfig()))

	svc := residency.NewService(models.NewGormStore(), config.ResidencyPolicy())
	h := newHandlers(logger, svc)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middlewares.CorrelationMiddleware(), middlewares.OwnerMiddleware())
	{
		api.POST("/intervals", h.createInterval)
		api.GET("/intervals", h.listIntervals)
		api.PUT("/intervals/:id", h.updateInterval)
		api.DELETE("/intervals/:id", h.deleteInterval)

		api.GET("/residency/day-totals", h.stateDayTotals)
		api.GET("/dashboard", h.dashboard)

		api.GET("/alerts", h.listAlerts)
		api.PUT("/alerts/:id/read", h.markAlertRead)
		api.DELETE("/alerts/:id", h.deleteAlert)

		api.POST("/expenses", h.createExpense)
		api.GET("/expenses", h.listExpenses)
		api.DELETE("/expenses/:id", h.deleteExpense)

		api.POST("/journal-entries", h.createJournalEntry)
		api.GET("/journal-entries", h.listJournalEntries)
		api.DELETE("/journal-entries/:id", h.deleteJournalEntry)

		api.GET("/audit-package", h.auditPackage)
		api.GET("/audit-history", h.auditHistory)
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies AFTER the listener is up so the container starts
	// answering health checks quickly.
	config.ConnectDatabaseWithRetry()
	models.MigrateTable()
	go config.ConnectRedisWithRetry()

	logger.WithFields(logrus.Fields{"port": port}).Info("dwellpath backend started")

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	origins := splitAndTrim(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Owner-Id", "X-Correlation-Id")
	return cfg
}

// customErrorLogger logs only requests that collected errors.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
