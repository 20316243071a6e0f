package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"academy/database"
	"academy/models"
	courseModels "academy/models/course"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[CERT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ProcessDueCertificates issues certificates for enrollments that reached
// 100% and have none yet. The existence check makes the pass idempotent, and
// a failure on one record is logged and skipped so the rest of the batch
// still runs; the record is picked up again on the next run.
func ProcessDueCertificates() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("progress >= ? AND status = ? AND is_deleted = false", 100, courseModels.EnrollmentComplete).
		Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching completed enrollments: " + err.Error())
		return
	}

	issued := 0
	for _, enrollment := range enrollments {
		// Already certified? Then nothing to do for this record.
		var existing courseModels.Certificate
		if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = false", enrollment.UserID, enrollment.CourseID).
			First(&existing).Error; err == nil {
			continue
		}

		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = false", enrollment.CourseID).First(&course).Error; err != nil {
			logScheduler(fmt.Sprintf("Skipping enrollment %d: course %d not found", enrollment.ID, enrollment.CourseID))
			continue
		}

		certificate := courseModels.Certificate{
			UserID:            enrollment.UserID,
			CourseID:          enrollment.CourseID,
			CertificateNumber: "CERT-" + uuid.NewString(),
			IssuedAt:          time.Now(),
		}
		if err := db.Create(&certificate).Error; err != nil {
			logScheduler(fmt.Sprintf("Failed to issue certificate for enrollment %d: %v", enrollment.ID, err))
			continue
		}
		issued++

		SendNotification(enrollment.UserID, NotificationPayload{
			Type:    models.NotificationCertificateIssued,
			Title:   "Certificate issued",
			Message: fmt.Sprintf("Your certificate for %q is ready.", course.Title),
		})

		var user models.User
		if err := db.Select("name, email").First(&user, enrollment.UserID).Error; err == nil && user.Email != "" {
			go SendCertificateEmail(user.Email, user.Name, course.Title, certificate.CertificateNumber)
		}
	}

	if issued > 0 {
		logScheduler(fmt.Sprintf("Issued %d certificate(s)", issued))
	}
}

// StartCertificateScheduler runs the certificate pass hourly.
func StartCertificateScheduler(c *cron.Cron) {
	c.AddFunc("0 * * * *", func() {
		ProcessDueCertificates()
	})
	logScheduler("Certificate scheduler started - runs hourly")
}

// InitializeSchedulers initializes all background schedulers
func InitializeSchedulers() *cron.Cron {
	logScheduler("Initializing schedulers...")

	c := cron.New()
	StartCertificateScheduler(c)
	c.Start()

	logScheduler("All schedulers initialized successfully")
	return c
}
