package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/scholarstream/internal/models"
	"github.com/example/scholarstream/internal/store"
	"github.com/example/scholarstream/internal/utils"
)

// Session metadata keys set at creation and read back at confirmation time.
const (
	metaApplicationID   = "newApplicationId"
	metaScholarshipName = "scholarshipName"
	metaUniversityName  = "universityName"
	metaUserName        = "userName"
)

const checkoutCurrency = "USD"

// ErrInvalidRequest marks checkout input the workflow rejects before calling
// the provider.
var ErrInvalidRequest = errors.New("invalid checkout request")

// CheckoutProvider is the payment-provider contract the workflow consumes.
type CheckoutProvider interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// ApplicationStore covers the application mutations the workflow performs.
type ApplicationStore interface {
	MarkPaid(ctx context.Context, id, trackingID string) (int64, error)
	MarkPaymentRejected(ctx context.Context, id string) (int64, error)
}

// PaymentStore covers payment-record persistence. Insert must fail with
// store.ErrDuplicateTransaction on a duplicate transaction reference.
type PaymentStore interface {
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error)
	Insert(ctx context.Context, payment *models.Payment) error
}

// PaymentService orchestrates checkout-session creation and payment
// confirmation. It is stateless between calls; all durable state lives in the
// injected stores.
type PaymentService struct {
	provider     CheckoutProvider
	applications ApplicationStore
	payments     PaymentStore
	siteDomain   string
}

// NewPaymentService constructs PaymentService.
func NewPaymentService(provider CheckoutProvider, applications ApplicationStore, payments PaymentStore, siteDomain string) *PaymentService {
	return &PaymentService{
		provider:     provider,
		applications: applications,
		payments:     payments,
		siteDomain:   siteDomain,
	}
}

// CheckoutRequest is the client input for creating a checkout session.
type CheckoutRequest struct {
	Cost            string `json:"cost"`
	ApplicationID   string `json:"applicationId"`
	ScholarshipName string `json:"scholarshipName"`
	UniversityName  string `json:"universityName"`
	UserName        string `json:"userName"`
	UserEmail       string `json:"userEmail"`
}

// ConfirmResult is the structured outcome of a success confirmation.
type ConfirmResult struct {
	Success            bool    `json:"success"`
	Message            string  `json:"message,omitempty"`
	ApplicationID      string  `json:"applicationId,omitempty"`
	ScholarshipName    string  `json:"scholarshipName,omitempty"`
	UniversityName     string  `json:"universityName,omitempty"`
	UserName           string  `json:"userName,omitempty"`
	AmountPaid         float64 `json:"amountPaid,omitempty"`
	TransactionID      string  `json:"transactionId,omitempty"`
	TrackingID         string  `json:"trackingId,omitempty"`
	ApplicationUpdated int64   `json:"applicationUpdated"`
	PaymentRecorded    bool    `json:"paymentRecorded"`
}

// CancelResult is the structured outcome of a cancellation.
type CancelResult struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	ApplicationID   string `json:"applicationId,omitempty"`
	ScholarshipName string `json:"scholarshipName,omitempty"`
	Error           string `json:"error,omitempty"`
}

// CreateCheckout validates the request and creates a provider-hosted checkout
// session, returning its redirect URL. Nothing is written locally; the
// session lives only in the provider until confirmation.
func (s *PaymentService) CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error) {
	if err := validateCheckout(req); err != nil {
		return "", err
	}

	cost, err := strconv.Atoi(strings.TrimSpace(req.Cost))
	if err != nil {
		return "", fmt.Errorf("%w: cost must be numeric", ErrInvalidRequest)
	}
	if cost <= 0 {
		return "", fmt.Errorf("%w: cost must be positive", ErrInvalidRequest)
	}

	session, err := s.provider.CreateSession(ctx, CreateSessionParams{
		AmountMinor:   int64(cost) * 100,
		Currency:      checkoutCurrency,
		ProductName:   "Application fee: " + req.ScholarshipName,
		CustomerEmail: req.UserEmail,
		Metadata: map[string]string{
			metaApplicationID:   req.ApplicationID,
			metaScholarshipName: req.ScholarshipName,
			metaUniversityName:  req.UniversityName,
			metaUserName:        req.UserName,
		},
		SuccessURL: s.siteDomain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.siteDomain + "/dashboard/payment-cancelled?session_id={CHECKOUT_SESSION_ID}",
	})
	if err != nil {
		return "", err
	}

	return session.URL, nil
}

// ConfirmSuccess finalizes a checkout after the provider redirect. A payment
// record is inserted at most once per transaction reference: the lookup below
// short-circuits the common repeat, and the store's unique index settles any
// race: the losing insert is translated into the already-exists outcome
// carrying the winner's tracking ID.
func (s *PaymentService) ConfirmSuccess(ctx context.Context, sessionID string) (*ConfirmResult, error) {
	trackingID := utils.GenerateTrackingID()

	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.TransactionID != "" {
		existing, err := s.payments.FindByTransactionID(ctx, session.TransactionID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return alreadyProcessed(existing), nil
		}
	}

	if session.PaymentStatus != SessionPaid {
		return &ConfirmResult{Success: false, Message: "payment not completed"}, nil
	}

	applicationID := session.Metadata[metaApplicationID]

	// Update-then-insert is deliberately not atomic across the two
	// collections; an insert failure after the update leaves the
	// application marked paid without a record.
	updated, err := s.applications.MarkPaid(ctx, applicationID, trackingID)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		TransactionID:   session.TransactionID,
		Amount:          float64(session.AmountTotal) / 100,
		Currency:        session.Currency,
		CustomerEmail:   session.CustomerEmail,
		ApplicationID:   applicationID,
		ScholarshipName: session.Metadata[metaScholarshipName],
		UniversityName:  session.Metadata[metaUniversityName],
		UserName:        session.Metadata[metaUserName],
		PaymentStatus:   session.PaymentStatus,
		TrackingID:      trackingID,
		PaidAt:          time.Now().UTC(),
	}

	if err := s.payments.Insert(ctx, payment); err != nil {
		if errors.Is(err, store.ErrDuplicateTransaction) {
			existing, lookupErr := s.payments.FindByTransactionID(ctx, session.TransactionID)
			if lookupErr != nil {
				return nil, lookupErr
			}
			return alreadyProcessed(existing), nil
		}
		return nil, err
	}

	return &ConfirmResult{
		Success:            true,
		Message:            "Payment Successful",
		ApplicationID:      applicationID,
		ScholarshipName:    payment.ScholarshipName,
		UniversityName:     payment.UniversityName,
		UserName:           payment.UserName,
		AmountPaid:         payment.Amount,
		TransactionID:      payment.TransactionID,
		TrackingID:         trackingID,
		ApplicationUpdated: updated,
		PaymentRecorded:    true,
	}, nil
}

// ConfirmCancelled marks the application referenced by the session as
// payment-rejected. No payment record is written. An application ID that no
// longer resolves is a zero-match update, not an error.
func (s *PaymentService) ConfirmCancelled(ctx context.Context, sessionID string) (*CancelResult, error) {
	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	applicationID := session.Metadata[metaApplicationID]
	if applicationID != "" {
		if _, err := s.applications.MarkPaymentRejected(ctx, applicationID); err != nil {
			return nil, err
		}
	}

	return &CancelResult{
		Success:         false,
		Message:         "Payment Failed",
		ApplicationID:   applicationID,
		ScholarshipName: session.Metadata[metaScholarshipName],
		Error:           "Transaction was cancelled",
	}, nil
}

func alreadyProcessed(payment *models.Payment) *ConfirmResult {
	return &ConfirmResult{
		Success:            true,
		Message:            "transaction already exists",
		ApplicationID:      payment.ApplicationID,
		ScholarshipName:    payment.ScholarshipName,
		UniversityName:     payment.UniversityName,
		UserName:           payment.UserName,
		AmountPaid:         payment.Amount,
		TransactionID:      payment.TransactionID,
		TrackingID:         payment.TrackingID,
		ApplicationUpdated: 0,
		PaymentRecorded:    false,
	}
}

func validateCheckout(req CheckoutRequest) error {
	required := map[string]string{
		"cost":            req.Cost,
		"applicationId":   req.ApplicationID,
		"scholarshipName": req.ScholarshipName,
		"universityName":  req.UniversityName,
		"userName":        req.UserName,
		"userEmail":       req.UserEmail,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidRequest, field)
		}
	}
	return nil
}
