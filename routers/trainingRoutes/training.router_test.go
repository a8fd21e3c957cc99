package trainingRoutes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trainhub/config"
	controllers "trainhub/controllers/training"
	"trainhub/database"
	"trainhub/hierarchy"
	"trainhub/middleware"
	"trainhub/models"
	trainingModels "trainhub/models/training"
	"trainhub/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "router-test-secret"}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&trainingModels.Module{},
		&trainingModels.Training{},
		&trainingModels.TrainingPrerequisite{},
		&trainingModels.Video{},
		&trainingModels.UserProgress{},
		&trainingModels.UserCertificate{},
		&models.AuditLog{},
	))

	mod := trainingModels.Module{Title: "Workplace Safety", Category: "Safety", OrderIndex: 1, IsActive: true}
	mod.ID = 1
	tr := trainingModels.Training{ModuleID: 1, Title: "Fire Drill", OrderIndex: 1, IsActive: true}
	tr.ID = 1
	vid := trainingModels.Video{TrainingID: 1, Title: "Evacuation", DurationSeconds: 100, OrderIndex: 1, IsActive: true}
	vid.ID = 101
	require.NoError(t, db.Create(&mod).Error)
	require.NoError(t, db.Create(&tr).Error)
	require.NoError(t, db.Create(&vid).Error)

	database.Database = database.DbInstance{Db: db}

	provider := hierarchy.NewProvider()
	idx, err := hierarchy.LoadIndex(db)
	require.NoError(t, err)
	provider.Replace(idx)

	controllers.Setup(progress.NewService(db, provider, "router-test-cert-secret"), provider)

	app := fiber.New()
	SetupTrainingRoutes(app)

	token, err := middleware.GenerateJWT(7, "Route Tester")
	require.NoError(t, err)
	return app, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) (bool, map[string]interface{}) {
	t.Helper()

	var payload struct {
		Status  bool                   `json:"status"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload.Status, payload.Data
}

func TestProgressListNotShadowedByTrainingRoute(t *testing.T) {
	app, token := newTestApp(t)

	// /training/progress must reach the listing handler, not the /:id route
	// whose validator would reject "progress" as a training id
	resp := doRequest(t, app, fiber.MethodGet, "/training/progress", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ok, data := decodeEnvelope(t, resp)
	assert.True(t, ok)
	assert.Contains(t, data, "progress")
	assert.Contains(t, data, "pagination")
}

func TestModulesListNotShadowedByTrainingRoute(t *testing.T) {
	app, token := newTestApp(t)

	resp := doRequest(t, app, fiber.MethodGet, "/training/modules", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ok, data := decodeEnvelope(t, resp)
	assert.True(t, ok)
	assert.Contains(t, data, "modules")
}

func TestAllRoutesReachTheirHandlers(t *testing.T) {
	app, token := newTestApp(t)

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{fiber.MethodGet, "/training/modules", ""},
		{fiber.MethodGet, "/training/progress", ""},
		{fiber.MethodGet, "/training/module/1", ""},
		{fiber.MethodGet, "/training/1", ""},
		{fiber.MethodPost, "/training/video/101/progress", `{"progress_seconds": 10}`},
		{fiber.MethodGet, "/training/video/101/status", ""},
		{fiber.MethodGet, "/user/certificates", ""},
		{fiber.MethodGet, "/user/dashboard", ""},
	}

	for _, tc := range cases {
		resp := doRequest(t, app, tc.method, tc.path, token, tc.body)
		assert.Equalf(t, fiber.StatusOK, resp.StatusCode, "%s %s", tc.method, tc.path)
	}
}

func TestSubmitProgressRoute(t *testing.T) {
	app, token := newTestApp(t)

	resp := doRequest(t, app, fiber.MethodPost, "/training/video/101/progress", token,
		`{"progress_seconds": 95}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ok, data := decodeEnvelope(t, resp)
	assert.True(t, ok)
	assert.Contains(t, data, "progress")
	assert.Equal(t, 1.0, data["training_progress"])
	assert.Equal(t, true, data["training_completed"])
	assert.NotNil(t, data["certificate"])
}

func TestRoutesRejectMissingToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, fiber.MethodGet, "/training/progress", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, "/user/dashboard", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRoutesRejectInvalidIDs(t *testing.T) {
	app, token := newTestApp(t)

	resp := doRequest(t, app, fiber.MethodGet, "/training/abc", token, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, "/training/video/999/status", token, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
