package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

type CreateCustomerParams struct {
	Email        string
	PasswordHash string
	FirstName    pgtype.Text
	LastName     pgtype.Text
	AccountType  string
}

const createCustomer = `
INSERT INTO customers (email, password_hash, first_name, last_name, account_type)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, email, password_hash, first_name, last_name, account_type, created_at, updated_at`

func (q *Queries) CreateCustomer(ctx context.Context, arg CreateCustomerParams) (Customer, error) {
	row := q.db.QueryRow(ctx, createCustomer,
		arg.Email, arg.PasswordHash, arg.FirstName, arg.LastName, arg.AccountType)
	var c Customer
	err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
		&c.AccountType, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getCustomerByEmail = `
SELECT id, email, password_hash, first_name, last_name, account_type, created_at, updated_at
FROM customers
WHERE email = $1`

func (q *Queries) GetCustomerByEmail(ctx context.Context, email string) (Customer, error) {
	row := q.db.QueryRow(ctx, getCustomerByEmail, email)
	var c Customer
	err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
		&c.AccountType, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getCustomerByID = `
SELECT id, email, password_hash, first_name, last_name, account_type, created_at, updated_at
FROM customers
WHERE id = $1`

func (q *Queries) GetCustomerByID(ctx context.Context, id pgtype.UUID) (Customer, error) {
	row := q.db.QueryRow(ctx, getCustomerByID, id)
	var c Customer
	err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
		&c.AccountType, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

type CreateSessionParams struct {
	CustomerID pgtype.UUID
	Token      string
	ExpiresAt  pgtype.Timestamptz
}

const createSession = `
INSERT INTO sessions (customer_id, token, expires_at)
VALUES ($1, $2, $3)
RETURNING id, customer_id, token, expires_at, created_at`

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error) {
	row := q.db.QueryRow(ctx, createSession, arg.CustomerID, arg.Token, arg.ExpiresAt)
	var s Session
	err := row.Scan(&s.ID, &s.CustomerID, &s.Token, &s.ExpiresAt, &s.CreatedAt)
	return s, err
}

const getCustomerBySessionToken = `
SELECT c.id, c.email, c.password_hash, c.first_name, c.last_name, c.account_type, c.created_at, c.updated_at
FROM customers c
JOIN sessions s ON s.customer_id = c.id
WHERE s.token = $1 AND s.expires_at > now()`

func (q *Queries) GetCustomerBySessionToken(ctx context.Context, token string) (Customer, error) {
	row := q.db.QueryRow(ctx, getCustomerBySessionToken, token)
	var c Customer
	err := row.Scan(&c.ID, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
		&c.AccountType, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const deleteSession = `
DELETE FROM sessions WHERE token = $1`

func (q *Queries) DeleteSession(ctx context.Context, token string) error {
	_, err := q.db.Exec(ctx, deleteSession, token)
	return err
}

const deleteExpiredSessions = `
DELETE FROM sessions WHERE expires_at <= now()`

func (q *Queries) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteExpiredSessions)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
