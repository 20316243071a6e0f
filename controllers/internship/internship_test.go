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
	internshipModels "academy/models/internship"
	"academy/progression"
	internshipRoutes "academy/routers/internshipRoutes"
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
	internshipRoutes.SetupInternshipRoutes(app)
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

func currentProgress(t *testing.T, internshipID uint) internshipModels.Internship {
	t.Helper()
	var record internshipModels.Internship
	require.NoError(t, database.Database.Db.First(&record, internshipID).Error)
	return record
}

func TestInternshipProgressTracksStagesAndTasks(t *testing.T) {
	app := setupTestApp(t)
	student, _ := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)

	status, payload := doRequest(t, app, http.MethodPost, "/internship/create", staffToken, fiber.Map{
		"student_id": student.ID,
		"title":      "Backend Intern",
		"company":    "Acme Labs",
	})
	require.Equal(t, http.StatusCreated, status)
	data := payload["data"].(map[string]interface{})
	internshipID := uint(data["ID"].(float64))
	assert.EqualValues(t, 1, data["current_stage"])
	assert.EqualValues(t, 0, data["progress"])

	// Advance to stage 3.
	promotePath := fmt.Sprintf("/internship/%d/promote", internshipID)
	for i := 0; i < 2; i++ {
		status, _ = doRequest(t, app, http.MethodPost, promotePath, staffToken, nil)
		require.Equal(t, http.StatusOK, status)
	}

	record := currentProgress(t, internshipID)
	assert.Equal(t, 3, record.CurrentStage)
	assert.Equal(t, []string{"stage-1", "stage-2"}, record.CompletedStages.Values())
	assert.Equal(t, 33, record.Progress)

	// Four tasks in stage 3, none completed: the stage fraction is still zero.
	taskPath := fmt.Sprintf("/internship/%d/task", internshipID)
	taskIDs := make([]uint, 0, 4)
	for i := 0; i < 4; i++ {
		status, payload = doRequest(t, app, http.MethodPost, taskPath, staffToken, fiber.Map{
			"title": fmt.Sprintf("Task %d", i+1),
		})
		require.Equal(t, http.StatusCreated, status)
		task := payload["data"].(map[string]interface{})["task"].(map[string]interface{})
		taskIDs = append(taskIDs, uint(task["ID"].(float64)))
	}
	assert.Equal(t, 33, currentProgress(t, internshipID).Progress)

	// Two of four done: 2/6 stages plus half a stage, rounded.
	for _, taskID := range taskIDs[:2] {
		statusPath := fmt.Sprintf("/internship/%d/task/%d/status", internshipID, taskID)
		status, _ = doRequest(t, app, http.MethodPatch, statusPath, staffToken, fiber.Map{
			"status": progression.TaskCompleted,
		})
		require.Equal(t, http.StatusOK, status)
	}
	assert.Equal(t, 42, currentProgress(t, internshipID).Progress)

	// Promotion rebases to the new stage: the half-finished stage-3 task list
	// stops counting and the fraction starts over at zero.
	status, _ = doRequest(t, app, http.MethodPost, promotePath, staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	record = currentProgress(t, internshipID)
	assert.Equal(t, 4, record.CurrentStage)
	assert.Equal(t, 50, record.Progress)

	// Finishing the leftover stage-3 tasks no longer moves the needle.
	for _, taskID := range taskIDs[2:] {
		statusPath := fmt.Sprintf("/internship/%d/task/%d/status", internshipID, taskID)
		status, _ = doRequest(t, app, http.MethodPatch, statusPath, staffToken, fiber.Map{
			"status": progression.TaskCompleted,
		})
		require.Equal(t, http.StatusOK, status)
	}
	assert.Equal(t, 50, currentProgress(t, internshipID).Progress)
}

func TestPromoteBeyondFinalStageIsRejected(t *testing.T) {
	app := setupTestApp(t)
	student, _ := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)

	record := internshipModels.Internship{
		StudentID:       student.ID,
		Title:           "Backend Intern",
		Company:         "Acme Labs",
		CurrentStage:    progression.StageCount,
		CompletedStages: progression.NewStringSet("stage-1", "stage-2", "stage-3", "stage-4", "stage-5"),
		Status:          internshipModels.StatusActive,
	}
	require.NoError(t, database.Database.Db.Create(&record).Error)

	path := fmt.Sprintf("/internship/%d/promote", record.ID)
	status, _ := doRequest(t, app, http.MethodPost, path, staffToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTaskStatusValidation(t *testing.T) {
	app := setupTestApp(t)
	student, studentToken := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)

	status, payload := doRequest(t, app, http.MethodPost, "/internship/create", staffToken, fiber.Map{
		"student_id": student.ID,
		"title":      "Backend Intern",
		"company":    "Acme Labs",
	})
	require.Equal(t, http.StatusCreated, status)
	internshipID := uint(payload["data"].(map[string]interface{})["ID"].(float64))

	taskPath := fmt.Sprintf("/internship/%d/task", internshipID)
	status, payload = doRequest(t, app, http.MethodPost, taskPath, staffToken, fiber.Map{"title": "Write docs"})
	require.Equal(t, http.StatusCreated, status)
	taskID := uint(payload["data"].(map[string]interface{})["task"].(map[string]interface{})["ID"].(float64))

	statusPath := fmt.Sprintf("/internship/%d/task/%d/status", internshipID, taskID)

	// Students can move their own tasks, but only to known statuses.
	status, _ = doRequest(t, app, http.MethodPatch, statusPath, studentToken, fiber.Map{"status": "DONE"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doRequest(t, app, http.MethodPatch, statusPath, studentToken, fiber.Map{"status": progression.TaskInProgress})
	assert.Equal(t, http.StatusOK, status)
}

func TestProjectStageAdvanceRecomputesProgress(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)

	status, payload := doRequest(t, app, http.MethodPost, "/project/create", token, fiber.Map{
		"title": "Log aggregator",
	})
	require.Equal(t, http.StatusCreated, status)
	projectID := uint(payload["data"].(map[string]interface{})["ID"].(float64))

	taskPath := fmt.Sprintf("/project/%d/task", projectID)
	status, payload = doRequest(t, app, http.MethodPost, taskPath, token, fiber.Map{"title": "Parse input"})
	require.Equal(t, http.StatusCreated, status)
	taskID := uint(payload["data"].(map[string]interface{})["task"].(map[string]interface{})["ID"].(float64))

	statusPath := fmt.Sprintf("/project/%d/task/%d/status", projectID, taskID)
	status, payload = doRequest(t, app, http.MethodPatch, statusPath, token, fiber.Map{"status": progression.TaskCompleted})
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 17, payload["data"].(map[string]interface{})["progress"])

	// Stage 2 opens with no task credit carried over from stage 1.
	advancePath := fmt.Sprintf("/project/%d/advance", projectID)
	status, payload = doRequest(t, app, http.MethodPost, advancePath, token, nil)
	require.Equal(t, http.StatusOK, status)
	data := payload["data"].(map[string]interface{})
	assert.EqualValues(t, 2, data["current_stage"])
	assert.EqualValues(t, 17, data["progress"])

	status, payload = doRequest(t, app, http.MethodPost, taskPath, token, fiber.Map{"title": "Ship queries"})
	require.Equal(t, http.StatusCreated, status)
	taskID = uint(payload["data"].(map[string]interface{})["task"].(map[string]interface{})["ID"].(float64))

	statusPath = fmt.Sprintf("/project/%d/task/%d/status", projectID, taskID)
	status, payload = doRequest(t, app, http.MethodPatch, statusPath, token, fiber.Map{"status": progression.TaskCompleted})
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 33, payload["data"].(map[string]interface{})["progress"])
}
