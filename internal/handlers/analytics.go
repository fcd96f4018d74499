package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/scholarstream/internal/store"
)

// AnalyticsHandler serves the admin dashboard counters.
type AnalyticsHandler struct {
	users        *store.UserRepo
	scholarships *store.ScholarshipRepo
	applications *store.ApplicationRepo
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(users *store.UserRepo, scholarships *store.ScholarshipRepo, applications *store.ApplicationRepo) *AnalyticsHandler {
	return &AnalyticsHandler{
		users:        users,
		scholarships: scholarships,
		applications: applications,
	}
}

// Users returns the total user count.
func (h *AnalyticsHandler) Users(c *fiber.Ctx) error {
	total, err := h.users.Count(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(total)
}

// Scholarships returns the total scholarship count.
func (h *AnalyticsHandler) Scholarships(c *fiber.Ctx) error {
	total, err := h.scholarships.Count(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(total)
}

// ApplicationFees returns the sum of all application fees.
func (h *AnalyticsHandler) ApplicationFees(c *fiber.Ctx) error {
	total, err := h.applications.TotalFees(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"totalFees": total})
}

// ByUniversity returns scholarship counts grouped by university.
func (h *AnalyticsHandler) ByUniversity(c *fiber.Ctx) error {
	counts, err := h.scholarships.CountByUniversity(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(counts)
}

// ByScholarship returns application counts grouped by scholarship name.
func (h *AnalyticsHandler) ByScholarship(c *fiber.Ctx) error {
	counts, err := h.applications.CountByScholarship(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(counts)
}
