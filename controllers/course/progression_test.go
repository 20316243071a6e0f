package controllers_test

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
	courseModels "academy/models/course"
	courseRoutes "academy/routers/courseRoutes"
)

// setupTestApp wires the course routes against a fresh in-memory database.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
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

// seedCourse creates a published course with three ordered modules, each
// holding one text lesson and one assignment lesson.
func seedCourse(t *testing.T) (courseModels.Course, []courseModels.Module, map[uint][]courseModels.Lesson) {
	t.Helper()
	db := database.Database.Db

	course := courseModels.Course{Title: "Go Fundamentals", IsPublished: true, Status: "ACTIVE"}
	require.NoError(t, db.Create(&course).Error)

	modules := make([]courseModels.Module, 0, 3)
	lessons := make(map[uint][]courseModels.Lesson)
	for i := 0; i < 3; i++ {
		mod := courseModels.Module{CourseID: course.ID, Title: fmt.Sprintf("Module %d", i+1), OrderIndex: i}
		require.NoError(t, db.Create(&mod).Error)
		modules = append(modules, mod)

		text := courseModels.Lesson{CourseID: course.ID, ModuleID: mod.ID, Title: "Reading", Kind: courseModels.LessonText, OrderIndex: 0, IsPublished: true}
		require.NoError(t, db.Create(&text).Error)
		task := courseModels.Lesson{CourseID: course.ID, ModuleID: mod.ID, Title: "Exercise", Kind: courseModels.LessonAssignment, OrderIndex: 1, IsPublished: true}
		require.NoError(t, db.Create(&task).Error)
		lessons[mod.ID] = []courseModels.Lesson{text, task}
	}
	return course, modules, lessons
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

func dataMap(t *testing.T, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok, "expected data object, got %v", payload["data"])
	return data
}

func indexValues(t *testing.T, raw interface{}) []int {
	t.Helper()
	list, ok := raw.([]interface{})
	require.True(t, ok, "expected array, got %v", raw)
	out := make([]int, len(list))
	for i, v := range list {
		out[i] = int(v.(float64))
	}
	return out
}

func TestProgressRecordCreatedLazily(t *testing.T) {
	app := setupTestApp(t)
	course, _, _ := seedCourse(t)
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)

	status, payload := doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	data := dataMap(t, payload)
	progress := data["progress"].(map[string]interface{})
	assert.Equal(t, []int{0}, indexValues(t, progress["unlocked_modules"]))
	assert.Equal(t, []int{0}, indexValues(t, data["effective_unlock"]))
	assert.EqualValues(t, 0, progress["current_module_index"])

	// A second read reuses the record instead of creating another.
	status, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var count int64
	database.Database.Db.Model(&courseModels.ModuleProgress{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestMarkLessonCompleteIsIdempotent(t *testing.T) {
	app := setupTestApp(t)
	course, modules, lessons := seedCourse(t)
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)

	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	lesson := lessons[modules[0].ID][0]
	path := fmt.Sprintf("/course/%d/module/%d/lesson/%d/complete", course.ID, modules[0].ID, lesson.ID)

	for i := 0; i < 2; i++ {
		status, _ := doRequest(t, app, http.MethodPost, path, token, nil)
		require.Equal(t, http.StatusOK, status)
	}

	var record courseModels.ModuleProgress
	require.NoError(t, database.Database.Db.First(&record).Error)
	assert.Len(t, record.CompletedLessons, 1)
	assert.Len(t, record.LessonCompletionDates, 1)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.First(&enrollment).Error)
	assert.Equal(t, 1, enrollment.CompletedLessons)
	assert.Equal(t, 6, enrollment.TotalLessons)
	assert.Equal(t, courseModels.EnrollInProgress, enrollment.Status)
}

func TestLockedModuleIsDenied(t *testing.T) {
	app := setupTestApp(t)
	course, modules, lessons := seedCourse(t)
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)

	lesson := lessons[modules[1].ID][0]
	path := fmt.Sprintf("/course/%d/module/%d/lesson/%d/complete", course.ID, modules[1].ID, lesson.ID)

	status, payload := doRequest(t, app, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.EqualValues(t, 0, dataMap(t, payload)["redirect_index"])

	// Nothing was recorded for the locked module.
	var record courseModels.ModuleProgress
	require.NoError(t, database.Database.Db.First(&record).Error)
	assert.Empty(t, record.CompletedLessons)
}

func TestAccessCheckHonorsOverrides(t *testing.T) {
	app := setupTestApp(t)
	course, modules, _ := seedCourse(t)
	student, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)

	accessPath := fmt.Sprintf("/course/%d/module/%d/access", course.ID, modules[2].ID)
	status, payload := doRequest(t, app, http.MethodGet, accessPath, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, dataMap(t, payload)["allowed"])

	overridePath := fmt.Sprintf("/staff/student/%d/course/%d/unlock", student.ID, course.ID)
	status, _ = doRequest(t, app, http.MethodPost, overridePath, staffToken, fiber.Map{"module_index": 2})
	require.Equal(t, http.StatusOK, status)

	status, payload = doRequest(t, app, http.MethodGet, accessPath, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, dataMap(t, payload)["allowed"])

	// Unlock is idempotent: a second call leaves a single entry in each set.
	status, _ = doRequest(t, app, http.MethodPost, overridePath, staffToken, fiber.Map{"module_index": 2})
	require.Equal(t, http.StatusOK, status)

	var record courseModels.ModuleProgress
	require.NoError(t, database.Database.Db.First(&record).Error)
	assert.Equal(t, []int{2}, record.OverrideUnlocked.Values())
	assert.Equal(t, []int{0, 2}, record.UnlockedModules.Values())
}

func TestLockModuleResetsCurrentIndex(t *testing.T) {
	app := setupTestApp(t)
	course, _, _ := seedCourse(t)
	student, _ := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)

	forcePath := fmt.Sprintf("/staff/student/%d/course/%d/force-progress", student.ID, course.ID)
	status, _ := doRequest(t, app, http.MethodPost, forcePath, staffToken, fiber.Map{"module_index": 2})
	require.Equal(t, http.StatusOK, status)

	var record courseModels.ModuleProgress
	require.NoError(t, database.Database.Db.First(&record).Error)
	assert.Equal(t, []int{0, 1, 2}, record.UnlockedModules.Values())
	assert.Equal(t, 2, record.CurrentModuleIndex)

	lockPath := fmt.Sprintf("/staff/student/%d/course/%d/lock", student.ID, course.ID)
	status, _ = doRequest(t, app, http.MethodPost, lockPath, staffToken, fiber.Map{"module_index": 2})
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, database.Database.Db.First(&record).Error)
	assert.Equal(t, []int{0, 1}, record.UnlockedModules.Values())
	assert.Equal(t, 1, record.CurrentModuleIndex)
}

func TestFirstModuleCannotBeLocked(t *testing.T) {
	app := setupTestApp(t)
	course, _, _ := seedCourse(t)
	student, _ := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)

	lockPath := fmt.Sprintf("/staff/student/%d/course/%d/lock", student.ID, course.ID)
	status, _ := doRequest(t, app, http.MethodPost, lockPath, staffToken, fiber.Map{"module_index": 0})
	require.Equal(t, http.StatusBadRequest, status)

	var record courseModels.ModuleProgress
	require.NoError(t, database.Database.Db.First(&record).Error)
	assert.Equal(t, []int{0}, record.UnlockedModules.Values())
}

func TestStaffRoutesRejectStudents(t *testing.T) {
	app := setupTestApp(t)
	course, _, _ := seedCourse(t)
	student, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)

	path := fmt.Sprintf("/staff/student/%d/course/%d/unlock", student.ID, course.ID)
	status, _ := doRequest(t, app, http.MethodPost, path, token, fiber.Map{"module_index": 1})
	assert.Equal(t, http.StatusForbidden, status)
}
