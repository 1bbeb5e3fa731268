package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medal-tally-system/models"
	"medal-tally-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestApp wires the whole stack against a fresh in-memory store with the
// full festival seed, exactly like main does.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Team{},
		&models.Category{},
		&models.Event{},
		&models.Result{},
		&models.User{},
	))
	require.NoError(t, services.Seed(db))

	sessions := session.New(session.Config{
		KeyLookup:    "cookie:medal_tally_session",
		KeyGenerator: uuid.NewString,
	})

	app := fiber.New()
	SetupAuthRoutes(app, services.NewAuthService(db, sessions))
	SetupScoreboardRoutes(app,
		services.NewScoreService(db, sessions),
		services.NewTeamService(db),
		services.NewEventService(db),
		sessions,
	)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body, cookie string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

// loginAdmin signs in with the seeded admin account and returns the session
// cookie to attach to subsequent requests.
func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp, _ := doRequest(t, app, http.MethodPost, "/api/login",
		`{"username":"arcuadmin","password":"ArCuAdmin2025"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	setCookie := resp.Header.Get("Set-Cookie")
	require.NotEmpty(t, setCookie)
	cookie, _, _ := strings.Cut(setCookie, ";")
	return cookie
}

func decodeObject(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func decodeArray(t *testing.T, raw []byte) []any {
	t.Helper()
	var out []any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
