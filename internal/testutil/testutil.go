// Package testutil provides common test utilities for the VendorHub backend:
// isolated SQLite databases with every table migrated, resolved principals,
// a controllable clock and gin test contexts.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/sqlite"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewSQLiteDB opens an isolated in-memory SQLite database with every table
// migrated and the tenant callbacks registered. It is closed on cleanup.
func NewSQLiteDB(t *testing.T) *persistence.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := persistence.Open(sqlite.Open(dsn), nil)
	require.NoError(t, err, "Failed to open SQLite database")
	require.NoError(t, db.DB.AutoMigrate(models.All()...), "Failed to migrate models")

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// NewTestUUID generates a deterministic UUID for testing
func NewTestUUID(seed string) uuid.UUID {
	namespace := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	return uuid.NewSHA1(namespace, []byte(seed))
}

// Principal builds a resolved principal in a fresh random tenant
func Principal(role identity.Role) identity.Principal {
	return identity.Principal{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Role:     role,
		Email:    string(role) + "@example.com",
	}
}

// PrincipalIn builds a resolved principal inside tenantID
func PrincipalIn(tenantID uuid.UUID, role identity.Role) identity.Principal {
	p := Principal(role)
	p.TenantID = tenantID
	return p
}

// Context attaches p to a background context the way the tenant resolver does
func Context(p identity.Principal) context.Context {
	return identity.WithPrincipal(context.Background(), p)
}

// FakeClock implements integration.Clock. Sleep returns immediately and
// advances the clock; every requested wait is remembered.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewFakeClock creates a clock stopped at start
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the fake current time
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep advances the clock by d unless ctx is already done
func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// Advance moves the clock forward without recording a sleep
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Sleeps returns the waits requested so far
func (c *FakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// TestContext wraps a Gin test context with HTTP recorder
type TestContext struct {
	Context  *gin.Context
	Recorder *httptest.ResponseRecorder
	Engine   *gin.Engine
}

// NewTestContext creates a new Gin test context
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()

	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	return &TestContext{
		Context:  c,
		Recorder: w,
		Engine:   engine,
	}
}
