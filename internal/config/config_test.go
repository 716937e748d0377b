package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mmo-db-gateway/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.Cache.Disabled)
	assert.Equal(t, config.CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.Reservation.Window)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GATEWAY_DISABLE_CACHE", "true")
	t.Setenv("GATEWAY_CACHE_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://store:6379/0")
	t.Setenv("CACHE_REDIS_URL", "")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORAGE_RESERVATION_WINDOW", "750ms")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Cache.Disabled)
	assert.Equal(t, config.CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis://store:6379/0", cfg.CacheRedisURL())
	assert.Equal(t, 750*time.Millisecond, cfg.Reservation.Window)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"GATEWAY_CACHE_BACKEND": "memcached"}},
		{name: "redis backend without url", env: map[string]string{"GATEWAY_CACHE_BACKEND": "redis", "REDIS_URL": "", "CACHE_REDIS_URL": ""}},
		{name: "unknown log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "zero window", env: map[string]string{"STORAGE_RESERVATION_WINDOW": "0s"}},
		{name: "unparsable window", env: map[string]string{"STORAGE_RESERVATION_WINDOW": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestDefaultSocialSettings(t *testing.T) {
	s := config.DefaultSocialSettings()

	require.Len(t, s.GuildRoles, 6)
	assert.Equal(t, "Master", s.GuildRoles[0].Name)
	assert.True(t, s.GuildRoles[0].CanInvite)
	assert.True(t, s.GuildRoles[0].CanKick)
	assert.True(t, s.GuildRoles[0].CanUseStorage)
	assert.Equal(t, "Member 5", s.GuildRoles[5].Name)
	assert.False(t, s.GuildRoles[5].CanUseStorage)
	assert.Empty(t, s.GuildExpTree)
	assert.Equal(t, 1, s.PointCost(42, 0))
	assert.Zero(t, s.MaxLevel(42))
}

func TestLoadSocialSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "social.toml")
	content := `
guild_exp_tree = [100, 200, 400]
default_max_guild_members = 30

[[guild_roles]]
name = "Leader"
can_invite = true
can_kick = true
can_use_storage = true

[[guild_roles]]
name = "Recruit"

[[guild_skills]]
id = 7
max_level = 2
costs = [1, 3]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := config.LoadSocialSettings(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []int{100, 200, 400}, s.GuildExpTree)
	assert.Equal(t, 30, s.DefaultMaxGuildMembers)
	require.Len(t, s.Roles(), 2)
	assert.Equal(t, "Recruit", s.Roles()[1].Name)
	assert.Equal(t, 2, s.MaxLevel(7))
	assert.Equal(t, 3, s.PointCost(7, 1))
	assert.Equal(t, 1, s.PointCost(7, 5))
}

func TestLoadSocialSettingsMissingFile(t *testing.T) {
	s, err := config.LoadSocialSettings(filepath.Join(t.TempDir(), "absent.toml"), nil)
	require.NoError(t, err)
	assert.Len(t, s.GuildRoles, 6)
}

func TestLoadSocialSettingsRejectsDecreasingTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "social.toml")
	require.NoError(t, os.WriteFile(path, []byte("guild_exp_tree = [200, 100]\n"), 0o600))

	_, err := config.LoadSocialSettings(path, nil)
	assert.Error(t, err)
}
