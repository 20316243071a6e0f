package utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"academy/config"
	"academy/database"
	"academy/models"
	courseModels "academy/models/course"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func TestProcessDueCertificatesIsIdempotent(t *testing.T) {
	db := setupTestDb(t)

	user := models.User{Name: "Asha", Email: "asha@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{Title: "Go Fundamentals", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	done := courseModels.Enrollment{
		UserID: user.ID, CourseID: course.ID,
		Status: courseModels.EnrollmentComplete, Progress: 100,
	}
	require.NoError(t, db.Create(&done).Error)

	// A second enrollment still in progress must not be certified.
	other := models.User{Name: "Ben", Email: "ben@example.com", Password: "x"}
	require.NoError(t, db.Create(&other).Error)
	inProgress := courseModels.Enrollment{
		UserID: other.ID, CourseID: course.ID,
		Status: courseModels.EnrollInProgress, Progress: 60,
	}
	require.NoError(t, db.Create(&inProgress).Error)

	ProcessDueCertificates()
	ProcessDueCertificates()

	var certs []courseModels.Certificate
	require.NoError(t, db.Find(&certs).Error)
	require.Len(t, certs, 1)
	assert.Equal(t, user.ID, certs[0].UserID)
	assert.True(t, strings.HasPrefix(certs[0].CertificateNumber, "CERT-"))

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", user.ID, models.NotificationCertificateIssued).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}
