package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"foodstore/internal/auth"
	"foodstore/internal/domain"
	"foodstore/internal/email"
	"foodstore/internal/repository"
)

// sessionDuration is how long a login session stays valid.
const sessionDuration = 30 * 24 * time.Hour

// customerService implements domain.CustomerService. Registration provisions
// the customer's cart in the same transaction as the account row, so every
// customer has exactly one cart from the moment the account exists.
type customerService struct {
	store  repository.Store
	mailer email.Sender
	logger *slog.Logger
}

var _ domain.CustomerService = (*customerService)(nil)

// NewCustomerService creates a new SQL-backed customer service.
// mailer may be nil, in which case no welcome email is sent.
func NewCustomerService(store repository.Store, mailer email.Sender, logger *slog.Logger) domain.CustomerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &customerService{
		store:  store,
		mailer: mailer,
		logger: logger,
	}
}

// Register creates a customer account and provisions its cart with zero
// totals.
func (s *customerService) Register(ctx context.Context, params domain.RegisterParams) (*domain.Customer, error) {
	if params.Email == "" || len(params.Email) < 3 {
		return nil, domain.Invalid("customer.register", "a valid email is required")
	}

	existing, err := s.store.GetCustomerByEmail(ctx, params.Email)
	if err == nil && existing.ID.Valid {
		return nil, domain.ErrCustomerExists
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.Internal(err, "customer.register", "failed to check existing customer")
	}

	passwordHash, err := auth.HashPassword(params.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, domain.Invalid("customer.register", err.Error())
		}
		return nil, domain.Internal(err, "customer.register", "failed to hash password")
	}

	var customer repository.Customer
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		customer, err = q.CreateCustomer(ctx, repository.CreateCustomerParams{
			Email:        params.Email,
			PasswordHash: passwordHash,
			FirstName:    textOrNull(params.FirstName),
			LastName:     textOrNull(params.LastName),
			AccountType:  domain.AccountTypeCustomer,
		})
		if err != nil {
			return domain.Internal(err, "customer.register", "failed to create customer")
		}

		// Cart provisioning is an explicit step of account creation, not a
		// storage-level hook.
		if err := q.CreateCart(ctx, customer.ID); err != nil {
			return domain.Internal(err, "customer.register", "failed to provision cart")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best effort; a failed welcome email never fails registration.
	if s.mailer != nil {
		if err := s.mailer.Send(ctx, email.WelcomeEmail(customer.Email, customer.FirstName.String)); err != nil {
			s.logger.Warn("failed to send welcome email",
				"email", customer.Email, "error", err)
		}
	}

	return mapCustomer(customer), nil
}

// Authenticate verifies email/password and returns the customer if valid.
func (s *customerService) Authenticate(ctx context.Context, email, password string) (*domain.Customer, error) {
	customer, err := s.store.GetCustomerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.Internal(err, "customer.authenticate", "failed to get customer")
	}

	if err := auth.VerifyPassword(password, customer.PasswordHash); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return mapCustomer(customer), nil
}

// CreateSession creates a login session and returns its token.
func (s *customerService) CreateSession(ctx context.Context, customerID string) (string, error) {
	var customerUUID pgtype.UUID
	if err := customerUUID.Scan(customerID); err != nil {
		return "", domain.ErrCustomerNotFound
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return "", domain.Internal(err, "customer.create_session", "failed to generate session token")
	}

	expiresAt := pgtype.Timestamptz{Time: time.Now().Add(sessionDuration), Valid: true}
	if _, err := s.store.CreateSession(ctx, repository.CreateSessionParams{
		CustomerID: customerUUID,
		Token:      token,
		ExpiresAt:  expiresAt,
	}); err != nil {
		return "", domain.Internal(err, "customer.create_session", "failed to create session")
	}

	return token, nil
}

// GetCustomerBySessionToken resolves a session token to its customer.
func (s *customerService) GetCustomerBySessionToken(ctx context.Context, token string) (*domain.Customer, error) {
	customer, err := s.store.GetCustomerBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, domain.Internal(err, "customer.get_by_session", "failed to get customer by session")
	}

	return mapCustomer(customer), nil
}

// DeleteSession invalidates a session token.
func (s *customerService) DeleteSession(ctx context.Context, token string) error {
	if err := s.store.DeleteSession(ctx, token); err != nil {
		return domain.Internal(err, "customer.delete_session", "failed to delete session")
	}
	return nil
}

func mapCustomer(c repository.Customer) *domain.Customer {
	return &domain.Customer{
		ID:          c.ID,
		Email:       c.Email,
		FirstName:   c.FirstName.String,
		LastName:    c.LastName.String,
		AccountType: c.AccountType,
		CreatedAt:   c.CreatedAt,
	}
}

func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
