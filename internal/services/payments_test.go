package services_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/example/scholarstream/internal/models"
	"github.com/example/scholarstream/internal/services"
	"github.com/example/scholarstream/internal/store"
)

var trackingPattern = regexp.MustCompile(`^ZP-\d{14}-[A-Z0-9]{6}$`)

type fakeProvider struct {
	sessions    map[string]*services.CheckoutSession
	created     []services.CreateSessionParams
	retrieveErr error
}

func (f *fakeProvider) CreateSession(_ context.Context, params services.CreateSessionParams) (*services.CheckoutSession, error) {
	f.created = append(f.created, params)
	return &services.CheckoutSession{ID: "cs_test", URL: "https://checkout.test/cs_test"}, nil
}

func (f *fakeProvider) RetrieveSession(_ context.Context, id string) (*services.CheckoutSession, error) {
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	session, ok := f.sessions[id]
	if !ok {
		return nil, errors.New("no such session")
	}
	return session, nil
}

type fakeApplications struct {
	known      map[string]bool
	paid       map[string]string
	rejected   map[string]int
	markedPaid int
}

func newFakeApplications(ids ...string) *fakeApplications {
	known := map[string]bool{}
	for _, id := range ids {
		known[id] = true
	}
	return &fakeApplications{
		known:    known,
		paid:     map[string]string{},
		rejected: map[string]int{},
	}
}

func (f *fakeApplications) MarkPaid(_ context.Context, id, trackingID string) (int64, error) {
	f.markedPaid++
	if !f.known[id] {
		return 0, nil
	}
	f.paid[id] = trackingID
	return 1, nil
}

func (f *fakeApplications) MarkPaymentRejected(_ context.Context, id string) (int64, error) {
	f.rejected[id]++
	if !f.known[id] {
		return 0, nil
	}
	return 1, nil
}

// fakePayments enforces transactionId uniqueness the way the real store's
// unique index does. findMisses makes the first N lookups miss even when a
// record exists, simulating a concurrent writer landing between the
// existence check and the insert.
type fakePayments struct {
	records    map[string]*models.Payment
	findMisses int
}

func newFakePayments() *fakePayments {
	return &fakePayments{records: map[string]*models.Payment{}}
}

func (f *fakePayments) FindByTransactionID(_ context.Context, transactionID string) (*models.Payment, error) {
	if f.findMisses > 0 {
		f.findMisses--
		return nil, store.ErrNotFound
	}
	record, ok := f.records[transactionID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakePayments) Insert(_ context.Context, payment *models.Payment) error {
	if _, ok := f.records[payment.TransactionID]; ok {
		return store.ErrDuplicateTransaction
	}
	copied := *payment
	f.records[payment.TransactionID] = &copied
	return nil
}

func paidSession(transactionID, applicationID string) *services.CheckoutSession {
	return &services.CheckoutSession{
		ID:            "cs_1",
		PaymentStatus: services.SessionPaid,
		TransactionID: transactionID,
		AmountTotal:   5000,
		Currency:      "usd",
		CustomerEmail: "student@example.com",
		Metadata: map[string]string{
			"newApplicationId": applicationID,
			"scholarshipName":  "STEM Grant",
			"universityName":   "Tech University",
			"userName":         "Jordan Lee",
		},
	}
}

func newService(provider *fakeProvider, apps *fakeApplications, payments *fakePayments) *services.PaymentService {
	return services.NewPaymentService(provider, apps, payments, "https://scholarstream.test")
}

func TestCreateCheckout(t *testing.T) {
	provider := &fakeProvider{}
	svc := newService(provider, newFakeApplications(), newFakePayments())

	url, err := svc.CreateCheckout(context.Background(), services.CheckoutRequest{
		Cost:            "50",
		ApplicationID:   "app1",
		ScholarshipName: "STEM Grant",
		UniversityName:  "Tech University",
		UserName:        "Jordan Lee",
		UserEmail:       "student@example.com",
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}
	if url != "https://checkout.test/cs_test" {
		t.Errorf("url = %q", url)
	}

	if len(provider.created) != 1 {
		t.Fatalf("created %d sessions, want 1", len(provider.created))
	}
	params := provider.created[0]
	if params.AmountMinor != 5000 {
		t.Errorf("AmountMinor = %d, want 5000", params.AmountMinor)
	}
	if params.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", params.Currency)
	}
	if params.CustomerEmail != "student@example.com" {
		t.Errorf("CustomerEmail = %q", params.CustomerEmail)
	}
	if params.Metadata["newApplicationId"] != "app1" {
		t.Errorf("metadata application id = %q", params.Metadata["newApplicationId"])
	}
	if params.Metadata["scholarshipName"] != "STEM Grant" {
		t.Errorf("metadata scholarship = %q", params.Metadata["scholarshipName"])
	}
	if !strings.HasPrefix(params.SuccessURL, "https://scholarstream.test/dashboard/payment-success") {
		t.Errorf("SuccessURL = %q", params.SuccessURL)
	}
	if !strings.HasPrefix(params.CancelURL, "https://scholarstream.test/dashboard/payment-cancelled") {
		t.Errorf("CancelURL = %q", params.CancelURL)
	}
}

func TestCreateCheckoutRejectsBadInput(t *testing.T) {
	valid := services.CheckoutRequest{
		Cost:            "50",
		ApplicationID:   "app1",
		ScholarshipName: "STEM Grant",
		UniversityName:  "Tech University",
		UserName:        "Jordan Lee",
		UserEmail:       "student@example.com",
	}

	tests := []struct {
		name   string
		mutate func(*services.CheckoutRequest)
	}{
		{"missing cost", func(r *services.CheckoutRequest) { r.Cost = "" }},
		{"non-numeric cost", func(r *services.CheckoutRequest) { r.Cost = "fifty" }},
		{"zero cost", func(r *services.CheckoutRequest) { r.Cost = "0" }},
		{"negative cost", func(r *services.CheckoutRequest) { r.Cost = "-5" }},
		{"fractional cost", func(r *services.CheckoutRequest) { r.Cost = "49.99" }},
		{"missing application id", func(r *services.CheckoutRequest) { r.ApplicationID = "" }},
		{"missing scholarship", func(r *services.CheckoutRequest) { r.ScholarshipName = "" }},
		{"missing university", func(r *services.CheckoutRequest) { r.UniversityName = "" }},
		{"missing user name", func(r *services.CheckoutRequest) { r.UserName = "" }},
		{"missing email", func(r *services.CheckoutRequest) { r.UserEmail = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeProvider{}
			svc := newService(provider, newFakeApplications(), newFakePayments())

			req := valid
			tc.mutate(&req)

			if _, err := svc.CreateCheckout(context.Background(), req); !errors.Is(err, services.ErrInvalidRequest) {
				t.Fatalf("err = %v, want ErrInvalidRequest", err)
			}
			if len(provider.created) != 0 {
				t.Errorf("provider called %d times, want 0", len(provider.created))
			}
		})
	}
}

func TestConfirmSuccess(t *testing.T) {
	provider := &fakeProvider{sessions: map[string]*services.CheckoutSession{
		"cs_1": paidSession("pi_1", "app1"),
	}}
	apps := newFakeApplications("app1")
	payments := newFakePayments()
	svc := newService(provider, apps, payments)

	result, err := svc.ConfirmSuccess(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("ConfirmSuccess: %v", err)
	}

	if !result.Success {
		t.Fatal("Success = false, want true")
	}
	if !trackingPattern.MatchString(result.TrackingID) {
		t.Errorf("TrackingID %q does not match %v", result.TrackingID, trackingPattern)
	}
	if result.ApplicationID != "app1" || result.ScholarshipName != "STEM Grant" || result.UniversityName != "Tech University" {
		t.Errorf("result echoes wrong session data: %+v", result)
	}
	if result.AmountPaid != 50 {
		t.Errorf("AmountPaid = %v, want 50", result.AmountPaid)
	}
	if result.ApplicationUpdated != 1 || !result.PaymentRecorded {
		t.Errorf("write outcomes = (%d, %v), want (1, true)", result.ApplicationUpdated, result.PaymentRecorded)
	}

	if apps.paid["app1"] != result.TrackingID {
		t.Errorf("application tracking = %q, want %q", apps.paid["app1"], result.TrackingID)
	}

	record, ok := payments.records["pi_1"]
	if !ok {
		t.Fatal("no payment record for pi_1")
	}
	if record.Amount != 50 || record.Currency != "usd" || record.CustomerEmail != "student@example.com" {
		t.Errorf("payment record = %+v", record)
	}
	if record.TrackingID != result.TrackingID {
		t.Errorf("record tracking = %q, want %q", record.TrackingID, result.TrackingID)
	}
}

func TestConfirmSuccessRepeatIsIdempotent(t *testing.T) {
	provider := &fakeProvider{sessions: map[string]*services.CheckoutSession{
		"cs_1": paidSession("pi_1", "app1"),
	}}
	apps := newFakeApplications("app1")
	payments := newFakePayments()
	svc := newService(provider, apps, payments)

	first, err := svc.ConfirmSuccess(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	second, err := svc.ConfirmSuccess(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}

	if !second.Success {
		t.Error("second Success = false, want true")
	}
	if !strings.Contains(second.Message, "already") {
		t.Errorf("second Message = %q, want already-exists wording", second.Message)
	}
	if second.TrackingID != first.TrackingID {
		t.Errorf("second tracking = %q, want first %q", second.TrackingID, first.TrackingID)
	}
	if second.PaymentRecorded {
		t.Error("second PaymentRecorded = true, want false")
	}
	if len(payments.records) != 1 {
		t.Errorf("payment records = %d, want 1", len(payments.records))
	}
	if apps.markedPaid != 1 {
		t.Errorf("application transitions = %d, want 1", apps.markedPaid)
	}
}

func TestConfirmSuccessLosesDuplicateRace(t *testing.T) {
	provider := &fakeProvider{sessions: map[string]*services.CheckoutSession{
		"cs_1": paidSession("pi_1", "app1"),
	}}
	apps := newFakeApplications("app1")
	payments := newFakePayments()

	// A concurrent confirmation already recorded the transaction, but the
	// loser's existence check runs before it can see that record.
	winner := &models.Payment{
		TransactionID:   "pi_1",
		ApplicationID:   "app1",
		ScholarshipName: "STEM Grant",
		UniversityName:  "Tech University",
		UserName:        "Jordan Lee",
		Amount:          50,
		TrackingID:      "ZP-20260828120000-AAAAAA",
	}
	if err := payments.Insert(context.Background(), winner); err != nil {
		t.Fatalf("seed winner: %v", err)
	}
	payments.findMisses = 1

	svc := newService(provider, apps, payments)

	result, err := svc.ConfirmSuccess(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("ConfirmSuccess: %v", err)
	}

	if !result.Success {
		t.Error("Success = false, want true")
	}
	if !strings.Contains(result.Message, "already") {
		t.Errorf("Message = %q, want already-exists wording", result.Message)
	}
	if result.TrackingID != winner.TrackingID {
		t.Errorf("TrackingID = %q, want winner's %q", result.TrackingID, winner.TrackingID)
	}
	if len(payments.records) != 1 {
		t.Errorf("payment records = %d, want 1", len(payments.records))
	}
}

func TestConfirmSuccessUnpaidSessionWritesNothing(t *testing.T) {
	session := paidSession("pi_1", "app1")
	session.PaymentStatus = "unpaid"

	provider := &fakeProvider{sessions: map[string]*services.CheckoutSession{"cs_1": session}}
	apps := newFakeApplications("app1")
	payments := newFakePayments()
	svc := newService(provider, apps, payments)

	result, err := svc.ConfirmSuccess(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("ConfirmSuccess: %v", err)
	}

	if result.Success {
		t.Error("Success = true, want false")
	}
	if len(payments.records) != 0 {
		t.Errorf("payment records = %d, want 0", len(payments.records))
	}
	if apps.markedPaid != 0 {
		t.Errorf("application transitions = %d, want 0", apps.markedPaid)
	}
}

func TestConfirmSuccessProviderError(t *testing.T) {
	provider := &fakeProvider{retrieveErr: errors.New("provider down")}
	svc := newService(provider, newFakeApplications(), newFakePayments())

	if _, err := svc.ConfirmSuccess(context.Background(), "cs_1"); err == nil {
		t.Fatal("err = nil, want provider error")
	}
}

func TestConfirmCancelled(t *testing.T) {
	provider := &fakeProvider{sessions: map[string]*services.CheckoutSession{
		"cs_1": paidSession("pi_1", "app1"),
	}}
	apps := newFakeApplications("app1")
	payments := newFakePayments()
	svc := newService(provider, apps, payments)

	result, err := svc.ConfirmCancelled(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("ConfirmCancelled: %v", err)
	}

	if result.Success {
		t.Error("Success = true, want false")
	}
	if result.ApplicationID != "app1" || result.ScholarshipName != "STEM Grant" {
		t.Errorf("result = %+v", result)
	}
	if apps.rejected["app1"] != 1 {
		t.Errorf("rejections = %d, want 1", apps.rejected["app1"])
	}
	if len(payments.records) != 0 {
		t.Errorf("payment records = %d, want 0", len(payments.records))
	}
}

func TestConfirmCancelledUnknownApplication(t *testing.T) {
	session := paidSession("pi_1", "gone")
	provider := &fakeProvider{sessions: map[string]*services.CheckoutSession{"cs_1": session}}
	apps := newFakeApplications("app1")
	svc := newService(provider, apps, newFakePayments())

	result, err := svc.ConfirmCancelled(context.Background(), "cs_1")
	if err != nil {
		t.Fatalf("ConfirmCancelled: %v", err)
	}
	if result.Success {
		t.Error("Success = true, want false")
	}
}
