package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"souschef/internal/domain"
	"souschef/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PopularityService is the read side the stats endpoints serve
type PopularityService interface {
	PopularityByEntity(ctx context.Context, kind string) ([]domain.Popularity, error)
	PopularityByDayOfWeek(ctx context.Context, kind string) ([]domain.Popularity, error)
}

// Pinger reports whether the database is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

type handler struct {
	stats  PopularityService
	db     Pinger
	logger *zap.Logger
}

type errorResp struct {
	Error string `json:"error"`
}

type popularityResp struct {
	Kind  string              `json:"kind"`
	Items []domain.Popularity `json:"items"`
}

// NewRouter builds the stats HTTP API
func NewRouter(stats PopularityService, db Pinger, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResp{Error: "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, errorResp{Error: "method not allowed"})
	})

	h := &handler{stats: stats, db: db, logger: logger}

	r.GET("/healthz", h.health)

	g := r.Group("/stats")
	g.GET("/popularity/:kind", h.popularityByEntity)
	g.GET("/weekday/:kind", h.popularityByDayOfWeek)

	return r
}

func (h *handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) popularityByEntity(c *gin.Context) {
	kind := c.Param("kind")
	items, err := h.stats.PopularityByEntity(c.Request.Context(), kind)
	h.writePopularity(c, kind, items, err)
}

func (h *handler) popularityByDayOfWeek(c *gin.Context) {
	kind := c.Param("kind")
	items, err := h.stats.PopularityByDayOfWeek(c.Request.Context(), kind)
	h.writePopularity(c, kind, items, err)
}

func (h *handler) writePopularity(c *gin.Context, kind string, items []domain.Popularity, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownKind):
		c.JSON(http.StatusBadRequest, errorResp{Error: err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, errorResp{Error: "stats unavailable"})
	default:
		if items == nil {
			items = []domain.Popularity{}
		}
		c.JSON(http.StatusOK, popularityResp{Kind: kind, Items: items})
	}
}

// requestLogger logs one line per request with zap
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
