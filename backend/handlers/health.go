package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	webmodels "github.com/hublist/hublist/backend/models"
	webutils "github.com/hublist/hublist/backend/utils"
)

// HealthCheck reports service and database health
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := webmodels.NewHealthCheck(webApp.Version)

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		if err := webApp.DB.Ping(ctx); err != nil {
			health.AddComponent("database", "unhealthy", err.Error(), nil)
		} else {
			health.AddComponent("database", "healthy", "", nil)
		}

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return webutils.SendJSON(c, status, health)
	}
}
