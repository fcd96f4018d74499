package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scholarstream/internal/models"
	"github.com/example/scholarstream/internal/store"
)

// ReviewHandler manages scholarship reviews.
type ReviewHandler struct {
	reviews *store.ReviewRepo
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(reviews *store.ReviewRepo) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// ByScholarship returns reviews of one scholarship, newest first.
func (h *ReviewHandler) ByScholarship(c *fiber.Ctx) error {
	reviews, err := h.reviews.ByScholarship(c.Context(), c.Params("scholarshipId"))
	if err != nil {
		return err
	}

	return c.JSON(reviews)
}

// Mine returns reviews written by the given reviewer email.
func (h *ReviewHandler) Mine(c *fiber.Ctx) error {
	reviews, err := h.reviews.ByReviewer(c.Context(), c.Query("reviewerEmail"))
	if err != nil {
		return err
	}

	return c.JSON(reviews)
}

// Create posts a review. The date is server-assigned.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	review.Date = time.Now().UTC()

	if err := h.reviews.Insert(c.Context(), &review); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": review})
}

// Update changes the rating and comment on a review.
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	var payload struct {
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	modified, err := h.reviews.Update(c.Context(), c.Params("id"), payload.Rating, payload.Comment)
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "modifiedCount": modified})
}

// Delete removes a review.
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.reviews.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "deletedCount": deleted})
}
