package check_health

import (
	"context"
	"time"

	"github.com/light-bringer/decant-store/internal/app/product/contracts"
	"github.com/light-bringer/decant-store/internal/pkg/clock"
)

// Status values reported by the health check.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// Result is the outcome of one health probe.
type Result struct {
	Status      string
	Timestamp   time.Time
	Database    string
	Environment string
	Error       string
}

// Healthy reports whether the store answered the probe.
func (r *Result) Healthy() bool {
	return r.Status == StatusHealthy
}

// Query probes store connectivity.
type Query struct {
	readModel   contracts.ReadModel
	clock       clock.Clock
	environment string
	timeout     time.Duration
}

// NewQuery creates a new health check query.
func NewQuery(readModel contracts.ReadModel, clk clock.Clock, environment string, timeout time.Duration) *Query {
	return &Query{
		readModel:   readModel,
		clock:       clk,
		environment: environment,
		timeout:     timeout,
	}
}

// Execute pings the store. It never returns an error; failures are reported
// in the result.
func (q *Query) Execute(ctx context.Context) *Result {
	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	result := &Result{
		Timestamp:   q.clock.Now().UTC(),
		Environment: q.environment,
	}
	if err := q.readModel.Ping(ctx); err != nil {
		result.Status = StatusUnhealthy
		result.Database = DatabaseDisconnected
		result.Error = err.Error()
		return result
	}
	result.Status = StatusHealthy
	result.Database = DatabaseConnected
	return result
}
