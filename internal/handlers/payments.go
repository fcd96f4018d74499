package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scholarstream/internal/services"
	"github.com/example/scholarstream/internal/store"
)

// PaymentHandler exposes the payment confirmation workflow over HTTP. The
// confirmation endpoints always answer 200 with a success/failure envelope;
// only transport-level failures surface as errors.
type PaymentHandler struct {
	service  *services.PaymentService
	payments *store.PaymentRepo
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(service *services.PaymentService, payments *store.PaymentRepo) *PaymentHandler {
	return &PaymentHandler{service: service, payments: payments}
}

// CreateCheckout creates a hosted checkout session and returns the provider
// redirect URL.
func (h *PaymentHandler) CreateCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	url, err := h.service.CreateCheckout(c.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequest) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(fiber.Map{"url": url})
}

// Success confirms a completed checkout session.
func (h *PaymentHandler) Success(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	result, err := h.service.ConfirmSuccess(c.Context(), sessionID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Cancelled marks the application behind a cancelled checkout session.
func (h *PaymentHandler) Cancelled(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session_id is required")
	}

	result, err := h.service.ConfirmCancelled(c.Context(), sessionID)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// GetByTransaction returns the stored payment record for a transaction
// reference.
func (h *PaymentHandler) GetByTransaction(c *fiber.Ctx) error {
	payment, err := h.payments.FindByTransactionID(c.Context(), c.Params("transactionId"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "payment not found")
		}
		return err
	}

	return c.JSON(payment)
}
