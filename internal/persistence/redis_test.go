package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/spec-kit/nutrisense/internal/config"
)

func TestRedis_PingAndClose(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	rdb := NewRedis(ctx, config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	assert.NoError(t, rdb.Ping(ctx))

	mr.Close()
	assert.Error(t, rdb.Ping(ctx))
	rdb.Close()
}

func TestPostgres_DisabledWithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	assert.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.Error(t, pg.Ping(context.Background()))
	assert.NoError(t, RunMigrations(context.Background(), pg.PoolHandle(), zap.NewNop()))
	pg.Close()
}
