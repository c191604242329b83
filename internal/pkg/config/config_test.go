//go:build unit

package config_test

import (
	"testing"
	"time"

	"ticket-allocator/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, config.StoreDriverPostgres, cfg.Store.Driver)
		assert.Equal(t, config.ScoringWeighted, cfg.Queue.Scoring)
		assert.Equal(t, 15*time.Minute, cfg.Queue.OfferTimeout())
		assert.Equal(t, 10*time.Minute, cfg.Queue.PurchaseTimeout())
		assert.Equal(t, 1000, cfg.Queue.MaxQueueSize)
		assert.Equal(t, 30*time.Second, cfg.Scheduler.SweepInterval)
		assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.CORS.AllowOrigins)
	})

	t.Run("overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("STORE_DRIVER", "memory")
		t.Setenv("QUEUE_SCORING", "fifo")
		t.Setenv("QUEUE_OFFER_TIMEOUT_MINUTES", "5")
		t.Setenv("SCHEDULER_SWEEP_INTERVAL", "2s")

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, config.StoreDriverMemory, cfg.Store.Driver)
		assert.Equal(t, config.ScoringFIFO, cfg.Queue.Scoring)
		assert.Equal(t, 5*time.Minute, cfg.Queue.OfferTimeout())
		assert.Equal(t, 2*time.Second, cfg.Scheduler.SweepInterval)
	})

	t.Run("rejected values", func(t *testing.T) {
		tests := []struct {
			name string
			env  map[string]string
		}{
			{name: "unknown store driver", env: map[string]string{"STORE_DRIVER": "sqlite"}},
			{name: "unknown scoring", env: map[string]string{"QUEUE_SCORING": "random"}},
			{name: "malformed duration", env: map[string]string{"SCHEDULER_SWEEP_INTERVAL": "soon"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				setRequired(t)
				for k, v := range tt.env {
					t.Setenv(k, v)
				}
				_, err := config.LoadConfig()
				assert.Error(t, err)
			})
		}
	})
}

func TestBuildDSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "tickets", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "postgres://u:p@db:5432/tickets?sslmode=disable&timezone=UTC", c.BuildDSN())
}
