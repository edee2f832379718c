package domain

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Account types.
const (
	AccountTypeCustomer = "customer"
	AccountTypeAdmin    = "admin"
)

var (
	ErrCustomerNotFound   = &Error{Code: ENOTFOUND, Message: "Customer not found"}
	ErrCustomerExists     = &Error{Code: ECONFLICT, Message: "An account with this email already exists"}
	ErrInvalidCredentials = &Error{Code: EUNAUTHORIZED, Message: "Invalid email or password"}
	ErrSessionNotFound    = &Error{Code: EUNAUTHORIZED, Message: "Session expired or not found"}
)

// CustomerService provides account and session operations.
// Registering an account also provisions the customer's cart with zero
// totals, in the same transaction.
type CustomerService interface {
	Register(ctx context.Context, params RegisterParams) (*Customer, error)
	Authenticate(ctx context.Context, email, password string) (*Customer, error)
	CreateSession(ctx context.Context, customerID string) (token string, err error)
	GetCustomerBySessionToken(ctx context.Context, token string) (*Customer, error)
	DeleteSession(ctx context.Context, token string) error
}

// Customer is an account that owns exactly one cart.
type Customer struct {
	ID          pgtype.UUID
	Email       string
	FirstName   string
	LastName    string
	AccountType string
	CreatedAt   pgtype.Timestamptz
}

// IsAdmin reports whether the customer may manage the catalog.
func (c *Customer) IsAdmin() bool {
	return c.AccountType == AccountTypeAdmin
}

// RegisterParams holds input for account creation.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}
