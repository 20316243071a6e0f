package controllers_test

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/database"
	"academy/models"
	courseModels "academy/models/course"
)

func completeLesson(t *testing.T, app *fiber.App, token string, courseID, moduleID, lessonID uint) {
	t.Helper()
	path := fmt.Sprintf("/course/%d/module/%d/lesson/%d/complete", courseID, moduleID, lessonID)
	status, _ := doRequest(t, app, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, status)
}

func submitAssignment(t *testing.T, app *fiber.App, token string, courseID, moduleID uint) (int, map[string]interface{}) {
	t.Helper()
	path := fmt.Sprintf("/course/%d/module/%d/assignment/submit", courseID, moduleID)
	return doRequest(t, app, http.MethodPost, path, token, fiber.Map{
		"submission_link": "https://github.com/asha/solution",
	})
}

func reviewAssignment(t *testing.T, app *fiber.App, token string, assignmentID uint, body fiber.Map) (int, map[string]interface{}) {
	t.Helper()
	path := fmt.Sprintf("/staff/assignment/%d/review", assignmentID)
	return doRequest(t, app, http.MethodPatch, path, token, body)
}

func TestSubmitAssignmentRequiresGatingLessons(t *testing.T) {
	app := setupTestApp(t)
	course, modules, lessons := seedCourse(t)
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)

	gating := lessons[modules[0].ID][1] // the ASSIGNMENT-kind lesson

	status, payload := submitAssignment(t, app, token, course.ID, modules[0].ID)
	require.Equal(t, http.StatusForbidden, status)
	missing := dataMap(t, payload)["missing_lessons"].([]interface{})
	require.Len(t, missing, 1)
	assert.Equal(t, strconv.Itoa(int(gating.ID)), missing[0])

	completeLesson(t, app, token, course.ID, modules[0].ID, gating.ID)

	status, payload = submitAssignment(t, app, token, course.ID, modules[0].ID)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, courseModels.AssignmentPending, dataMap(t, payload)["status"])
}

func TestSubmitAssignmentWithNoGatingLessons(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)

	// A module holding only reading material has nothing to complete first.
	course := courseModels.Course{Title: "Go Essays", IsPublished: true, Status: "ACTIVE"}
	require.NoError(t, db.Create(&course).Error)
	mod := courseModels.Module{CourseID: course.ID, Title: "Module 1", OrderIndex: 0}
	require.NoError(t, db.Create(&mod).Error)
	text := courseModels.Lesson{CourseID: course.ID, ModuleID: mod.ID, Title: "Reading", Kind: courseModels.LessonText, OrderIndex: 0, IsPublished: true}
	require.NoError(t, db.Create(&text).Error)

	status, payload := submitAssignment(t, app, token, course.ID, mod.ID)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, courseModels.AssignmentPending, dataMap(t, payload)["status"])
}

func TestApprovalUnlocksNextModuleByDefault(t *testing.T) {
	app := setupTestApp(t)
	course, modules, lessons := seedCourse(t)
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)

	completeLesson(t, app, token, course.ID, modules[0].ID, lessons[modules[0].ID][1].ID)
	status, payload := submitAssignment(t, app, token, course.ID, modules[0].ID)
	require.Equal(t, http.StatusOK, status)
	assignmentID := uint(dataMap(t, payload)["ID"].(float64))

	// No access config stored: approval alone unlocks, even without a score.
	status, payload = reviewAssignment(t, app, staffToken, assignmentID, fiber.Map{
		"status": courseModels.AssignmentApproved,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, dataMap(t, payload)["module_unlocked"])

	var record courseModels.ModuleProgress
	require.NoError(t, database.Database.Db.First(&record).Error)
	assert.Equal(t, []int{0, 1}, record.UnlockedModules.Values())
	assert.Equal(t, 1, record.CurrentModuleIndex)

	moduleKey := strconv.Itoa(int(modules[0].ID))
	assert.Contains(t, record.ApprovalDates, moduleKey)
	assert.Contains(t, record.ApprovedByMap, moduleKey)
}

func TestScoreThresholdGatesAutoUnlock(t *testing.T) {
	app := setupTestApp(t)
	course, modules, lessons := seedCourse(t)
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)
	_, adminToken := createUser(t, "Mira", "mira@example.com", models.RoleAdmin)

	configPath := fmt.Sprintf("/admin/course/%d/access-config", course.ID)
	status, _ := doRequest(t, app, http.MethodPut, configPath, adminToken, fiber.Map{
		"auto_unlock_enabled":         true,
		"auto_unlock_score_threshold": 80,
	})
	require.Equal(t, http.StatusOK, status)

	completeLesson(t, app, token, course.ID, modules[0].ID, lessons[modules[0].ID][1].ID)
	status, payload := submitAssignment(t, app, token, course.ID, modules[0].ID)
	require.Equal(t, http.StatusOK, status)
	assignmentID := uint(dataMap(t, payload)["ID"].(float64))

	// Below threshold: approval is recorded but the next module stays locked.
	status, payload = reviewAssignment(t, app, staffToken, assignmentID, fiber.Map{
		"status": courseModels.AssignmentApproved,
		"score":  75,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, dataMap(t, payload)["module_unlocked"])

	var record courseModels.ModuleProgress
	require.NoError(t, database.Database.Db.First(&record).Error)
	assert.Equal(t, []int{0}, record.UnlockedModules.Values())
	assert.Equal(t, 0, record.CurrentModuleIndex)
	assert.Contains(t, record.ApprovalDates, strconv.Itoa(int(modules[0].ID)))

	// A later review at the threshold fires the unlock.
	status, payload = reviewAssignment(t, app, staffToken, assignmentID, fiber.Map{
		"status": courseModels.AssignmentApproved,
		"score":  80,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, dataMap(t, payload)["module_unlocked"])

	require.NoError(t, database.Database.Db.First(&record).Error)
	assert.Equal(t, []int{0, 1}, record.UnlockedModules.Values())
	assert.Equal(t, 1, record.CurrentModuleIndex)
}

func TestApprovalWithoutScoreFailsWhenThresholdEnabled(t *testing.T) {
	app := setupTestApp(t)
	course, modules, lessons := seedCourse(t)
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)
	_, adminToken := createUser(t, "Mira", "mira@example.com", models.RoleAdmin)

	configPath := fmt.Sprintf("/admin/course/%d/access-config", course.ID)
	status, _ := doRequest(t, app, http.MethodPut, configPath, adminToken, fiber.Map{
		"auto_unlock_enabled": true,
	})
	require.Equal(t, http.StatusOK, status)

	completeLesson(t, app, token, course.ID, modules[0].ID, lessons[modules[0].ID][1].ID)
	status, payload := submitAssignment(t, app, token, course.ID, modules[0].ID)
	require.Equal(t, http.StatusOK, status)
	assignmentID := uint(dataMap(t, payload)["ID"].(float64))

	status, payload = reviewAssignment(t, app, staffToken, assignmentID, fiber.Map{
		"status": courseModels.AssignmentApproved,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, dataMap(t, payload)["module_unlocked"])
}

func TestResubmissionReusesTheSameRecord(t *testing.T) {
	app := setupTestApp(t)
	course, modules, lessons := seedCourse(t)
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)

	completeLesson(t, app, token, course.ID, modules[0].ID, lessons[modules[0].ID][1].ID)
	status, payload := submitAssignment(t, app, token, course.ID, modules[0].ID)
	require.Equal(t, http.StatusOK, status)
	assignmentID := uint(dataMap(t, payload)["ID"].(float64))

	status, _ = reviewAssignment(t, app, staffToken, assignmentID, fiber.Map{
		"status":   courseModels.AssignmentRejected,
		"feedback": "Please handle the error cases.",
	})
	require.Equal(t, http.StatusOK, status)

	status, payload = submitAssignment(t, app, token, course.ID, modules[0].ID)
	require.Equal(t, http.StatusOK, status)
	data := dataMap(t, payload)
	assert.EqualValues(t, assignmentID, data["ID"])
	assert.Equal(t, courseModels.AssignmentPending, data["status"])
	assert.Empty(t, data["feedback"])
	assert.Nil(t, data["score"])

	var count int64
	database.Database.Db.Model(&courseModels.ModuleAssignment{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRejectionClearsApprovalMarks(t *testing.T) {
	app := setupTestApp(t)
	course, modules, lessons := seedCourse(t)
	_, token := createUser(t, "Asha", "asha@example.com", models.RoleStudent)
	_, staffToken := createUser(t, "Tariq", "tariq@example.com", models.RoleTrainer)

	completeLesson(t, app, token, course.ID, modules[0].ID, lessons[modules[0].ID][1].ID)
	status, payload := submitAssignment(t, app, token, course.ID, modules[0].ID)
	require.Equal(t, http.StatusOK, status)
	assignmentID := uint(dataMap(t, payload)["ID"].(float64))

	status, _ = reviewAssignment(t, app, staffToken, assignmentID, fiber.Map{
		"status": courseModels.AssignmentRejected,
	})
	require.Equal(t, http.StatusOK, status)

	var assignment courseModels.ModuleAssignment
	require.NoError(t, database.Database.Db.First(&assignment, assignmentID).Error)
	assert.Equal(t, courseModels.AssignmentRejected, assignment.Status)
	assert.Nil(t, assignment.ApprovedBy)
	assert.Nil(t, assignment.ApprovedAt)
}
