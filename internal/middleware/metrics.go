package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "civicvoice_redis_errors_total",
		Help: "Total number of Redis command errors",
	},
	[]string{"command"},
)

// VoteOperations counts vote operations by target type and outcome.
var VoteOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "civicvoice_vote_operations_total",
		Help: "Total number of vote operations",
	},
	[]string{"target", "outcome"},
)

// StatusTransitions counts complaint status transitions by new status.
var StatusTransitions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "civicvoice_status_transitions_total",
		Help: "Total number of complaint status transitions",
	},
	[]string{"status"},
)

var fiberProm *fiberprometheus.FiberPrometheus

// InitMetrics registers the Prometheus HTTP middleware and exposes /metrics on the app.
func InitMetrics(app *fiber.App) {
	fiberProm = fiberprometheus.New("civicvoice")
	fiberProm.RegisterAt(app, "/metrics")
}

// MetricsMiddleware returns the request instrumentation handler.
// InitMetrics must be called first.
func MetricsMiddleware() fiber.Handler {
	if fiberProm == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return fiberProm.Middleware
}
