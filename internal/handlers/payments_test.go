package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/scholarstream/internal/handlers"
	"github.com/example/scholarstream/internal/models"
	"github.com/example/scholarstream/internal/services"
	"github.com/example/scholarstream/internal/store"
)

type stubProvider struct {
	sessions map[string]*services.CheckoutSession
}

func (s *stubProvider) CreateSession(_ context.Context, _ services.CreateSessionParams) (*services.CheckoutSession, error) {
	return &services.CheckoutSession{ID: "cs_test", URL: "https://checkout.test/cs_test"}, nil
}

func (s *stubProvider) RetrieveSession(_ context.Context, id string) (*services.CheckoutSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, errors.New("no such session")
	}
	return session, nil
}

type stubApplications struct {
	paid     map[string]string
	rejected map[string]int
}

func (s *stubApplications) MarkPaid(_ context.Context, id, trackingID string) (int64, error) {
	s.paid[id] = trackingID
	return 1, nil
}

func (s *stubApplications) MarkPaymentRejected(_ context.Context, id string) (int64, error) {
	s.rejected[id]++
	return 1, nil
}

type stubPayments struct {
	records map[string]*models.Payment
}

func (s *stubPayments) FindByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	record, ok := s.records[transactionID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return record, nil
}

func (s *stubPayments) Insert(_ context.Context, payment *models.Payment) error {
	if _, ok := s.records[payment.TransactionID]; ok {
		return store.ErrDuplicateTransaction
	}
	s.records[payment.TransactionID] = payment
	return nil
}

func newPaymentApp(provider *stubProvider) (*fiber.App, *stubApplications, *stubPayments) {
	apps := &stubApplications{paid: map[string]string{}, rejected: map[string]int{}}
	payments := &stubPayments{records: map[string]*models.Payment{}}

	svc := services.NewPaymentService(provider, apps, payments, "https://scholarstream.test")
	handler := handlers.NewPaymentHandler(svc, nil)

	app := fiber.New()
	app.Post("/create-checkout-session", handler.CreateCheckout)
	app.Patch("/payment-success", handler.Success)
	app.Patch("/payment-cancelled", handler.Cancelled)

	return app, apps, payments
}

func TestCreateCheckoutEndpoint(t *testing.T) {
	app, _, _ := newPaymentApp(&stubProvider{})

	body := `{"cost":"75","applicationId":"app1","scholarshipName":"STEM Grant","universityName":"Tech University","userName":"Jordan Lee","userEmail":"student@example.com"}`
	req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.URL != "https://checkout.test/cs_test" {
		t.Errorf("url = %q", payload.URL)
	}
}

func TestCreateCheckoutEndpointRejectsBadCost(t *testing.T) {
	app, _, _ := newPaymentApp(&stubProvider{})

	body := `{"cost":"free","applicationId":"app1","scholarshipName":"STEM Grant","universityName":"Tech University","userName":"Jordan Lee","userEmail":"student@example.com"}`
	req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPaymentSuccessEndpoint(t *testing.T) {
	provider := &stubProvider{sessions: map[string]*services.CheckoutSession{
		"cs_1": {
			ID:            "cs_1",
			PaymentStatus: services.SessionPaid,
			TransactionID: "pi_1",
			AmountTotal:   7500,
			Currency:      "usd",
			CustomerEmail: "student@example.com",
			Metadata: map[string]string{
				"newApplicationId": "app1",
				"scholarshipName":  "STEM Grant",
				"universityName":   "Tech University",
				"userName":         "Jordan Lee",
			},
		},
	}}
	app, apps, payments := newPaymentApp(provider)

	req := httptest.NewRequest("PATCH", "/payment-success?session_id=cs_1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result services.ConfirmResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Success {
		t.Error("Success = false, want true")
	}
	if result.AmountPaid != 75 {
		t.Errorf("AmountPaid = %v, want 75", result.AmountPaid)
	}
	if apps.paid["app1"] != result.TrackingID {
		t.Errorf("application tracking = %q, want %q", apps.paid["app1"], result.TrackingID)
	}
	if len(payments.records) != 1 {
		t.Errorf("payment records = %d, want 1", len(payments.records))
	}
}

func TestPaymentSuccessEndpointRequiresSessionID(t *testing.T) {
	app, _, _ := newPaymentApp(&stubProvider{})

	req := httptest.NewRequest("PATCH", "/payment-success", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestPaymentCancelledEndpoint(t *testing.T) {
	provider := &stubProvider{sessions: map[string]*services.CheckoutSession{
		"cs_1": {
			ID:            "cs_1",
			PaymentStatus: "unpaid",
			Metadata: map[string]string{
				"newApplicationId": "app1",
				"scholarshipName":  "STEM Grant",
			},
		},
	}}
	app, apps, payments := newPaymentApp(provider)

	req := httptest.NewRequest("PATCH", "/payment-cancelled?session_id=cs_1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result services.CancelResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Success {
		t.Error("Success = true, want false")
	}
	if apps.rejected["app1"] != 1 {
		t.Errorf("rejections = %d, want 1", apps.rejected["app1"])
	}
	if len(payments.records) != 0 {
		t.Errorf("payment records = %d, want 0", len(payments.records))
	}
}
