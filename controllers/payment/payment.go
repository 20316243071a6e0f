package paymentController

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/utils"
)

// CreateCoursePayment opens a gateway checkout for a paid course. Free
// courses never reach this endpoint; enrollment handles them directly.
func CreateCoursePayment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if course.Price <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is free, enroll directly!", nil)
	}

	// Reuse an open checkout instead of stacking pending orders.
	var existing models.CoursePayment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?", userId, courseID, models.PaymentPending, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment already in progress.", existing)
	}

	var paid models.CoursePayment
	if err := db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?", userId, courseID, models.PaymentPaid, false).First(&paid).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already purchased!", nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	orderID := "ORDER-" + uuid.NewString()

	token, redirectURL, err := utils.CreateSnapToken(orderID, course.Price, user.Name, user.Email, course.Title)
	if err != nil {
		log.Printf("Error creating gateway transaction: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment!", nil)
	}

	payment := models.CoursePayment{
		UserID:      userId,
		CourseID:    uint(courseID),
		OrderID:     orderID,
		Amount:      course.Price,
		SnapToken:   token,
		RedirectURL: redirectURL,
		Status:      models.PaymentPending,
	}
	if err := db.Create(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save payment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment created successfully!", payment)
}

// PaymentCallback receives gateway status notifications and settles the
// order. Unauthenticated; the order ID is the gateway's reference.
func PaymentCallback(c *fiber.Ctx) error {
	reqData := new(struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var payment models.CoursePayment
	if err := db.Where("order_id = ? AND is_deleted = ?", reqData.OrderID, false).First(&payment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}

	if payment.Status != models.PaymentPending {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Order already settled.", payment)
	}

	switch reqData.TransactionStatus {
	case "capture", "settlement":
		if reqData.FraudStatus == "challenge" || reqData.FraudStatus == "deny" {
			payment.Status = models.PaymentFailed
			break
		}
		now := time.Now()
		payment.Status = models.PaymentPaid
		payment.PaidAt = &now
	case "deny", "cancel", "failure":
		payment.Status = models.PaymentFailed
	case "expire":
		payment.Status = models.PaymentExpired
	default:
		// pending and unknown statuses leave the order open
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Order still pending.", payment)
	}

	if err := db.Save(&payment).Error; err != nil {
		log.Printf("Error settling order %s: %v", payment.OrderID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order updated.", payment)
}

// GetMyPayments lists the authenticated user's payments.
func GetMyPayments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var payments []models.CoursePayment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("created_at desc").
		Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", payments)
}
