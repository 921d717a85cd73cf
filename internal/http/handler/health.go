package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
)

const probeTimeout = 2 * time.Second

// Probe checks one dependency for the readiness endpoint.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

func DatabaseProbe(db *sql.DB) Probe {
	return Probe{Name: "database", Check: db.PingContext}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck runs every probe and answers 503 as soon as one of them fails.
// Dependency errors are not echoed to the client.
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(probes ...Probe) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), probeTimeout)
		defer cancel()

		res := healthResponse{Status: "healthy", Checks: make(map[string]string, len(probes))}
		for _, p := range probes {
			if err := p.Check(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", p.Name+" unavailable")
			}
			res.Checks[p.Name] = "ok"
		}
		return c.JSON(res)
	}
}

// LivenessProbe answers 200 while the process is serving; it checks nothing.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
