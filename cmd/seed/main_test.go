package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/config"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
)

func TestSeeder(t *testing.T) {
	cfg := &config.Config{
		DBDriver:  config.DriverSQLite,
		DBPath:    filepath.Join(t.TempDir(), "seed.db"),
		JWTSecret: "test-secret",
		JWTTTL:    time.Hour,
	}
	l := zaptest.NewLogger(t).Sugar()
	gdb, err := db.NewGormClient(cfg, l)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	contacts := service.NewContacts(gdb, service.NewTagResolver(l), l)
	s := newSeeder(gdb, service.NewGeneral(gdb, auth.NewTokens(cfg), l), contacts, service.NewTags(gdb, l), l)
	ctx := context.Background()

	require.NoError(t, s.run(ctx, false))
	require.NoError(t, s.run(ctx, false), "seeding twice keeps the existing demo user")

	user, _, err := s.general.Login(ctx, demoEmail, demoPassword)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	stats, err := contacts.Stats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(demoContacts)), stats.TotalContacts)
	assert.Equal(t, int64(3), stats.FavoriteContacts)
	require.NotEmpty(t, stats.TopTags)
	assert.Equal(t, "Business", stats.TopTags[0].Name)
	assert.Equal(t, int64(5), stats.TopTags[0].ContactCount)

	tags, err := s.tags.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, tags, len(demoTags))

	require.NoError(t, s.run(ctx, true))
	again, _, err := s.general.Login(ctx, demoEmail, demoPassword)
	require.NoError(t, err)
	assert.NotEqual(t, user.ID, again.ID)

	var n int64
	require.NoError(t, gdb.Model(&db.Contact{}).Count(&n).Error)
	assert.Equal(t, int64(len(demoContacts)), n)
}
