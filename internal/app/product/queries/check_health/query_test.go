package check_health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/decant-store/internal/app/product/repo"
	"github.com/light-bringer/decant-store/internal/pkg/clock"
)

var now = time.Date(2024, 6, 1, 9, 30, 0, 0, time.FixedZone("EEST", 3*60*60))

func TestExecute_Healthy(t *testing.T) {
	q := NewQuery(repo.NewMemoryReadModel(), clock.Fixed(now), "production", time.Second)

	result := q.Execute(context.Background())

	assert.True(t, result.Healthy())
	assert.Equal(t, StatusHealthy, result.Status)
	assert.Equal(t, DatabaseConnected, result.Database)
	assert.Equal(t, "production", result.Environment)
	assert.Equal(t, now.UTC(), result.Timestamp)
	assert.Empty(t, result.Error)
}

func TestExecute_Unhealthy(t *testing.T) {
	rm := repo.NewMemoryReadModel()
	rm.Fail(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))
	q := NewQuery(rm, clock.Fixed(now), "development", 0)

	result := q.Execute(context.Background())

	assert.False(t, result.Healthy())
	assert.Equal(t, StatusUnhealthy, result.Status)
	assert.Equal(t, DatabaseDisconnected, result.Database)
	assert.Equal(t, "dial tcp 127.0.0.1:5432: connect: connection refused", result.Error)
}
