package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Cache.IndexTTL)
	assert.False(t, cfg.Cache.VaryByPage)
	assert.Equal(t, 10, cfg.Pagination.PerPage)
	assert.Equal(t, "/auth/login", cfg.Auth.LoginURL)
	assert.Equal(t, "token", cfg.Auth.CookieName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POSTBOARD_SERVER_PORT", "9090")
	t.Setenv("POSTBOARD_CACHE_VARY_BY_PAGE", "true")
	t.Setenv("POSTBOARD_CACHE_INDEX_TTL", "5s")
	t.Setenv("POSTBOARD_DATABASE_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Cache.VaryByPage)
	assert.Equal(t, 5*time.Second, cfg.Cache.IndexTTL)
	assert.Equal(t, "postboard.db", cfg.Database.DatabaseDSN())
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", c.DatabaseDSN())

	c.DSN = "postgres://x"
	assert.Equal(t, "postgres://x", c.DatabaseDSN())
}
