package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scholarstream/internal/models"
	"github.com/example/scholarstream/internal/store"
	"github.com/example/scholarstream/internal/utils"
)

// ScholarshipHandler manages scholarship listings.
type ScholarshipHandler struct {
	scholarships *store.ScholarshipRepo
}

// NewScholarshipHandler constructs ScholarshipHandler.
func NewScholarshipHandler(scholarships *store.ScholarshipRepo) *ScholarshipHandler {
	return &ScholarshipHandler{scholarships: scholarships}
}

// List returns scholarships, optionally filtered by the posting email.
func (h *ScholarshipHandler) List(c *fiber.Ctx) error {
	scholarships, err := h.scholarships.List(c.Context(), c.Query("email"))
	if err != nil {
		return err
	}

	return c.JSON(scholarships)
}

// Home returns the six most recent scholarships for the landing page.
func (h *ScholarshipHandler) Home(c *fiber.Ctx) error {
	scholarships, err := h.scholarships.Latest(c.Context(), 6)
	if err != nil {
		return err
	}

	return c.JSON(scholarships)
}

// Get returns a single scholarship.
func (h *ScholarshipHandler) Get(c *fiber.Ctx) error {
	scholarship, err := h.scholarships.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "scholarship not found")
		}
		return err
	}

	return c.JSON(scholarship)
}

// Search returns a sorted, paginated page of scholarships matching the search
// text, together with the total match count.
func (h *ScholarshipHandler) Search(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	scholarships, total, err := h.scholarships.Search(c.Context(), store.SearchParams{
		Query:     c.Query("searchData"),
		SortField: c.Query("sortField", "postDate"),
		Ascending: c.Query("sortOrder") == "asc",
		Skip:      pg.Skip,
		Limit:     int64(pg.Limit),
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"result": scholarships, "total": total})
}

// Create posts a new scholarship.
func (h *ScholarshipHandler) Create(c *fiber.Ctx) error {
	var scholarship models.Scholarship
	if err := c.BodyParser(&scholarship); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	scholarship.CreatedAt = time.Now().UTC()

	if err := h.scholarships.Insert(c.Context(), &scholarship); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": scholarship})
}

// Update applies the posted fields to a scholarship.
func (h *ScholarshipHandler) Update(c *fiber.Ctx) error {
	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(fields) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "empty update")
	}

	modified, err := h.scholarships.Update(c.Context(), c.Params("id"), fields)
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "modifiedCount": modified})
}

// Delete removes a scholarship.
func (h *ScholarshipHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.scholarships.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "deletedCount": deleted})
}
