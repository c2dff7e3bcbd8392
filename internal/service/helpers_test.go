package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/config"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
)

type testEnv struct {
	db       *gorm.DB
	logger   *zap.SugaredLogger
	general  *General
	contacts *Contacts
	tags     *Tags
	ctx      context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		DBDriver:  config.DriverSQLite,
		DBPath:    filepath.Join(t.TempDir(), "linkleaf.db"),
		JWTSecret: "test-secret",
		JWTTTL:    time.Hour,
	}
	l := zaptest.NewLogger(t).Sugar()

	gdb, err := db.NewGormClient(cfg, l)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	general := NewGeneral(gdb, auth.NewTokens(cfg), l)
	general.cost = bcrypt.MinCost

	return &testEnv{
		db:       gdb,
		logger:   l,
		general:  general,
		contacts: NewContacts(gdb, NewTagResolver(l), l),
		tags:     NewTags(gdb, l),
		ctx:      context.Background(),
	}
}

func (e *testEnv) seedUser(t *testing.T, email string) *db.User {
	t.Helper()
	user, _, err := e.general.Register(e.ctx, email, "password123", "Demo", "User")
	require.NoError(t, err)
	return user
}

func (e *testEnv) seedContact(t *testing.T, userID uint64, name string, tags ...string) *db.Contact {
	t.Helper()
	contact, err := e.contacts.Create(e.ctx, userID, ContactFields{Name: strPtr(name)}, tags)
	require.NoError(t, err)
	return contact
}

// setClock pins the contacts clock so timestamps are comparable.
func (e *testEnv) setClock(at time.Time) {
	e.contacts.now = func() time.Time { return at }
}

func (e *testEnv) linkCount(t *testing.T, contactID uint64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&db.ContactTag{}).Where("contact_id = ?", contactID).Count(&n).Error)
	return n
}

func tagNames(c *db.Contact) []string {
	names := make([]string, 0, len(c.Tags))
	for _, tag := range c.Tags {
		names = append(names, tag.Name)
	}
	return names
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
