package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sumatra-gis/hazard-sentinel/internal/aggregator"
	"github.com/sumatra-gis/hazard-sentinel/internal/models"
)

// PointProvider serves the fused hazard snapshot. Satisfied by
// aggregator.Aggregator.
type PointProvider interface {
	Points(ctx context.Context) *aggregator.Snapshot
}

type Handler struct {
	provider PointProvider
	registry *prometheus.Registry
}

func NewHandler(provider PointProvider, registry *prometheus.Registry) *Handler {
	return &Handler{
		provider: provider,
		registry: registry,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/disasters/aggregate", h.getAggregate)
	r.GET("/health", h.health)
	if h.registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))
	}
}

type aggregateResponse struct {
	Success   bool                 `json:"success"`
	Count     int                  `json:"count"`
	Timestamp string               `json:"timestamp"`
	Data      []models.HazardPoint `json:"data"`
}

// getAggregate returns the fused hazard set. An optional ?type= query
// narrows the result to one hazard type; unknown values are ignored, as
// the display client treats them as "all".
func (h *Handler) getAggregate(c *gin.Context) {
	snap := h.provider.Points(c.Request.Context())

	data := snap.Points
	if t := parseHazardType(c.Query("type")); t != "" {
		filtered := make([]models.HazardPoint, 0, len(data))
		for _, p := range data {
			if p.Type == t {
				filtered = append(filtered, p)
			}
		}
		data = filtered
	}
	if data == nil {
		data = []models.HazardPoint{}
	}

	c.JSON(http.StatusOK, aggregateResponse{
		Success:   true,
		Count:     len(data),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      data,
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseHazardType(s string) models.HazardType {
	switch strings.ToUpper(s) {
	case "FIRE":
		return models.HazardTypeFire
	case "FLOOD":
		return models.HazardTypeFlood
	case "LANDSLIDE":
		return models.HazardTypeLandslide
	case "WAVE":
		return models.HazardTypeWave
	case "VOLCANO":
		return models.HazardTypeVolcano
	case "EARTHQUAKE":
		return models.HazardTypeEarthquake
	default:
		return ""
	}
}
