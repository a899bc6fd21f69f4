package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("ORDER_SERVICE_ADDR", ":9999")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("CATALOG_TIMEOUT", "not-a-duration")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("USER_GRPC_TARGET", "user:50051")
	t.Setenv("USER_GRPC_ADDR", "")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.OrderSvcAddr)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 5*time.Second, cfg.CatalogTimeout)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "user:50051", cfg.UserGRPCTarget)
	assert.Equal(t, ":50051", cfg.UserGRPCAddr)
	assert.NotEmpty(t, cfg.PostgresDSN)
}
