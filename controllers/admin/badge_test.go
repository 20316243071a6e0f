package adminController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	adminRoutes "academy/routers/adminRoutes"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	adminRoutes.SetupAdminRoutes(app)
	return app
}

func createUser(t *testing.T, name, email, role string) (models.User, string) {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: role, Password: "test-hash"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestAwardBadgeIsAtomicAcrossTheBatch(t *testing.T) {
	app := setupTestApp(t)
	_, adminToken := createUser(t, "Mira", "mira@example.com", models.RoleAdmin)
	alice, _ := createUser(t, "Alice", "alice@example.com", models.RoleStudent)
	ben, _ := createUser(t, "Ben", "ben@example.com", models.RoleStudent)

	status, payload := doRequest(t, app, http.MethodPost, "/admin/badge/create", adminToken, fiber.Map{
		"name": "Early Finisher",
	})
	require.Equal(t, http.StatusCreated, status)
	badgeID := uint(payload["data"].(map[string]interface{})["ID"].(float64))

	// One unknown user in the batch rolls back the whole award.
	status, _ = doRequest(t, app, http.MethodPost, "/admin/badge/award", adminToken, fiber.Map{
		"badge_id": badgeID,
		"user_ids": []uint{alice.ID, ben.ID, 9999},
	})
	require.Equal(t, http.StatusBadRequest, status)

	var count int64
	database.Database.Db.Model(&models.UserBadge{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// A clean batch lands for everyone, and repeating it stays idempotent.
	for i := 0; i < 2; i++ {
		status, _ = doRequest(t, app, http.MethodPost, "/admin/badge/award", adminToken, fiber.Map{
			"badge_id": badgeID,
			"user_ids": []uint{alice.ID, ben.ID},
		})
		require.Equal(t, http.StatusOK, status)
	}

	database.Database.Db.Model(&models.UserBadge{}).Count(&count)
	assert.EqualValues(t, 2, count)

	var notifications int64
	database.Database.Db.Model(&models.Notification{}).
		Where("type = ?", models.NotificationBadgeAwarded).Count(&notifications)
	assert.EqualValues(t, 2, notifications)
}

func TestBadgeRoutesRequireAdminRole(t *testing.T) {
	app := setupTestApp(t)
	_, studentToken := createUser(t, "Alice", "alice@example.com", models.RoleStudent)

	status, _ := doRequest(t, app, http.MethodPost, "/admin/badge/create", studentToken, fiber.Map{
		"name": "Early Finisher",
	})
	assert.Equal(t, http.StatusForbidden, status)
}
