package handler

import (
	"net/http"

	"medreq-service/internal/changelog"
	"medreq-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SystemHandler serves operational endpoints backed by the changelog cache
type SystemHandler struct {
	cache *changelog.Cache
}

// NewSystemHandler creates the system handler
func NewSystemHandler(cache *changelog.Cache) *SystemHandler {
	return &SystemHandler{cache: cache}
}

// GetCommits returns the recent commit feed of the project repository
func (h *SystemHandler) GetCommits(c echo.Context) error {
	log := logger.FromContext(c)

	commits, err := h.cache.Get(c.Request().Context())
	if err != nil {
		log.Error("Failed to fetch commits", zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{
			"message": "Failed to fetch commit history",
		})
	}
	return c.JSON(http.StatusOK, commits)
}
