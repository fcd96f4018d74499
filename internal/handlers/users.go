package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scholarstream/internal/middleware"
	"github.com/example/scholarstream/internal/models"
	"github.com/example/scholarstream/internal/store"
)

// UserHandler manages account records.
type UserHandler struct {
	users *store.UserRepo
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *store.UserRepo) *UserHandler {
	return &UserHandler{users: users}
}

// List returns the caller's own account record. The email query must match
// the authenticated email.
func (h *UserHandler) List(c *fiber.Ctx) error {
	email := c.Query("email")

	decoded, _ := middleware.DecodedEmail(c)
	if email != decoded {
		return fiber.NewError(fiber.StatusForbidden, "forbidden access")
	}

	users, err := h.users.List(c.Context(), store.UserFilter{Email: email})
	if err != nil {
		return err
	}

	return c.JSON(users)
}

// AdminList returns accounts, optionally filtered by role.
func (h *UserHandler) AdminList(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context(), store.UserFilter{Role: c.Query("role")})
	if err != nil {
		return err
	}

	return c.JSON(users)
}

// Role returns the stored role for an email, defaulting to student.
func (h *UserHandler) Role(c *fiber.Ctx) error {
	role, err := h.users.RoleByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"role": role})
}

// Create registers an account on first sign-in. Repeat registrations for the
// same email are acknowledged without inserting a second record.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if user.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	if _, err := h.users.FindByEmail(c.Context(), user.Email); err == nil {
		return c.JSON(fiber.Map{"message": "user already exists"})
	} else if err != store.ErrNotFound {
		return err
	}

	user.Role = models.RoleStudent
	user.CreatedAt = time.Now().UTC()

	if err := h.users.Insert(c.Context(), &user); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user})
}

// SetRole updates the role tag on an account.
func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	var payload struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch payload.Role {
	case models.RoleStudent, models.RoleModerator, models.RoleAdmin:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown role")
	}

	modified, err := h.users.SetRole(c.Context(), c.Params("id"), payload.Role)
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "modifiedCount": modified})
}

// Delete removes an account.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.users.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrInvalidID) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "deletedCount": deleted})
}
