package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"foodstore/internal/domain"
	"foodstore/internal/email"
)

// recordingSender captures welcome emails without sending anything.
type recordingSender struct {
	sent []*email.Email
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg *email.Email) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestRegisterProvisionsCart(t *testing.T) {
	store := newFakeStore()
	svc := NewCustomerService(store, nil, nil)

	customer, err := svc.Register(context.Background(), domain.RegisterParams{
		Email:     "anna@example.com",
		Password:  "correct horse",
		FirstName: "Anna",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if customer.Email != "anna@example.com" {
		t.Errorf("email = %q, want %q", customer.Email, "anna@example.com")
	}
	if customer.AccountType != domain.AccountTypeCustomer {
		t.Errorf("account_type = %q, want %q", customer.AccountType, domain.AccountTypeCustomer)
	}

	// The account and its cart exist together, with zero totals.
	cart, err := store.GetCartByCustomerID(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("no cart provisioned for new customer: %v", err)
	}
	if cart.TotalCount != 0 {
		t.Errorf("new cart total_count = %d, want 0", cart.TotalCount)
	}

	carts := NewCartService(store)
	view, err := carts.GetCartForCustomer(context.Background(), customer.ID.String())
	if err != nil {
		t.Fatalf("GetCartForCustomer() error = %v", err)
	}
	if !view.TotalPrice.Equal(decimal.Zero) {
		t.Errorf("new cart total_price = %s, want 0", view.TotalPrice)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewCustomerService(store, nil, nil)

	params := domain.RegisterParams{Email: "anna@example.com", Password: "correct horse"}
	if _, err := svc.Register(context.Background(), params); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), params)
	if !errors.Is(err, domain.ErrCustomerExists) {
		t.Fatalf("second Register() error = %v, want ErrCustomerExists", err)
	}
	if len(store.customers) != 1 {
		t.Errorf("store has %d customers, want 1", len(store.customers))
	}
}

func TestRegisterValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewCustomerService(store, nil, nil)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "correct horse"},
		{"short password", "anna@example.com", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), domain.RegisterParams{
				Email:    tt.email,
				Password: tt.password,
			})
			if got := domain.ErrorCode(err); got != domain.EINVALID {
				t.Errorf("Register() error code = %q (%v), want EINVALID", got, err)
			}
		})
	}
}

func TestRegisterSendsWelcomeEmail(t *testing.T) {
	store := newFakeStore()
	sender := &recordingSender{}
	svc := NewCustomerService(store, sender, nil)

	if _, err := svc.Register(context.Background(), domain.RegisterParams{
		Email:     "anna@example.com",
		Password:  "correct horse",
		FirstName: "Anna",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.sent))
	}
	if sender.sent[0].To != "anna@example.com" {
		t.Errorf("welcome email to = %q, want %q", sender.sent[0].To, "anna@example.com")
	}
}

func TestRegisterSurvivesMailerFailure(t *testing.T) {
	store := newFakeStore()
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewCustomerService(store, sender, nil)

	customer, err := svc.Register(context.Background(), domain.RegisterParams{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register() error = %v, want nil despite mailer failure", err)
	}
	if customer == nil {
		t.Fatal("Register() customer = nil")
	}
}

func TestAuthenticate(t *testing.T) {
	store := newFakeStore()
	svc := NewCustomerService(store, nil, nil)

	if _, err := svc.Register(context.Background(), domain.RegisterParams{
		Email:    "anna@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	customer, err := svc.Authenticate(context.Background(), "anna@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if customer.Email != "anna@example.com" {
		t.Errorf("email = %q, want %q", customer.Email, "anna@example.com")
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "anna@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "correct horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := newFakeStore()
	svc := NewCustomerService(store, nil, nil)

	registered, err := svc.Register(context.Background(), domain.RegisterParams{
		Email:    "anna@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	token, err := svc.CreateSession(context.Background(), registered.ID.String())
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if token == "" {
		t.Fatal("CreateSession() returned empty token")
	}

	customer, err := svc.GetCustomerBySessionToken(context.Background(), token)
	if err != nil {
		t.Fatalf("GetCustomerBySessionToken() error = %v", err)
	}
	if customer.ID != registered.ID {
		t.Errorf("session resolves to customer %v, want %v", customer.ID, registered.ID)
	}

	if err := svc.DeleteSession(context.Background(), token); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := svc.GetCustomerBySessionToken(context.Background(), token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("resolved deleted session, error = %v, want ErrSessionNotFound", err)
	}
}
