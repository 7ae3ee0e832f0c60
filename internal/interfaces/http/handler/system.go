package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/dto"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// HealthStatus is the body of GET /health
type HealthStatus struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Time    time.Time         `json:"time"`
}

// SystemHandler serves liveness and dependency health
type SystemHandler struct {
	BaseHandler
	version string
	timeout time.Duration
	checks  map[string]HealthCheck
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{
		version: version,
		timeout: 2 * time.Second,
		checks:  make(map[string]HealthCheck),
	}
}

// AddCheck registers a named dependency probe
func (h *SystemHandler) AddCheck(name string, check HealthCheck) *SystemHandler {
	h.checks[name] = check
	return h
}

// Health handles GET /health. Any failing check answers 503.
// @Summary      Health check
// @Description  Report liveness and dependency health
// @Tags         system
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthStatus}
// @Failure      503 {object} dto.Response{data=HealthStatus}
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := HealthStatus{
		Status:  "healthy",
		Version: h.version,
		Checks:  make(map[string]string, len(names)),
		Time:    time.Now().UTC(),
	}
	code := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			status.Checks[name] = err.Error()
			status.Status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "ok"
	}

	c.JSON(code, dto.Response{Success: code == http.StatusOK, Data: status})
}
