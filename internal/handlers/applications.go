package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scholarstream/internal/models"
	"github.com/example/scholarstream/internal/store"
)

// ApplicationHandler manages scholarship applications.
type ApplicationHandler struct {
	applications *store.ApplicationRepo
}

// NewApplicationHandler constructs ApplicationHandler.
func NewApplicationHandler(applications *store.ApplicationRepo) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// List returns applications, optionally filtered by applicant email, newest
// first.
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	apps, err := h.applications.List(c.Context(), c.Query("userEmail"))
	if err != nil {
		return err
	}

	return c.JSON(apps)
}

// Create submits a new application. Status fields are server-assigned: every
// application starts pending and unpaid with empty feedback.
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var app models.Application
	if err := c.BodyParser(&app); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	app.ApplicationStatus = models.ApplicationStatusPending
	app.PaymentStatus = models.PaymentStatusUnpaid
	app.Feedback = ""
	app.TrackingID = ""
	app.ApplicationDate = time.Now().UTC()

	if err := h.applications.Insert(c.Context(), &app); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"insertedId": app.ID.Hex(),
		"data":       app,
	})
}

// SetFeedback records moderator feedback.
func (h *ApplicationHandler) SetFeedback(c *fiber.Ctx) error {
	var payload struct {
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	modified, err := h.applications.SetFeedback(c.Context(), c.Params("id"), payload.Feedback)
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "modifiedCount": modified})
}

// SetStatus transitions the moderation status.
func (h *ApplicationHandler) SetStatus(c *fiber.Ctx) error {
	var payload struct {
		ApplicationStatus string `json:"applicationStatus"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch payload.ApplicationStatus {
	case models.ApplicationStatusPending, models.ApplicationStatusAccepted, models.ApplicationStatusRejected:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown application status")
	}

	modified, err := h.applications.SetStatus(c.Context(), c.Params("id"), payload.ApplicationStatus)
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "modifiedCount": modified})
}

// Delete withdraws an application.
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.applications.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "deletedCount": deleted})
}
