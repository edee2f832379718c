// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"foodstore/internal"
	"foodstore/internal/auth"
	"foodstore/internal/domain"
	"foodstore/internal/repository"
)

// minAdminPasswordLength is stricter than the customer minimum since the
// admin account manages the whole catalog.
const minAdminPasswordLength = 12

func validateAdminConfig(cfg internal.AdminConfig) error {
	if cfg.Email == "" {
		return errors.New("admin email is required")
	}
	if cfg.Password == "" {
		return errors.New("admin password is required")
	}
	if len(cfg.Password) < minAdminPasswordLength {
		return fmt.Errorf("admin password must be at least %d characters", minAdminPasswordLength)
	}
	return nil
}

// EnsureAdmin creates the initial admin account if it doesn't exist.
// This function is idempotent - safe to call on every startup.
//
// If the admin account already exists (by email), it returns without error.
// With no email/password configured it logs a warning and skips, which keeps
// development setups working without an admin.
func EnsureAdmin(ctx context.Context, store repository.Store, cfg internal.AdminConfig, logger *slog.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping admin creation - FOODSTORE_ADMIN_EMAIL or FOODSTORE_ADMIN_PASSWORD not set",
			"hint", "Set these environment variables to create an admin account on first startup",
		)
		return nil
	}

	if err := validateAdminConfig(cfg); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	existing, err := store.GetCustomerByEmail(ctx, cfg.Email)
	if err == nil && existing.ID.Valid {
		logger.Info("bootstrap: admin account already exists", "email", cfg.Email)
		return nil
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	// Admins get a cart too; every customer row has one.
	err = store.ExecTx(ctx, func(q repository.Querier) error {
		customer, err := q.CreateCustomer(ctx, repository.CreateCustomerParams{
			Email:        cfg.Email,
			PasswordHash: passwordHash,
			FirstName:    pgtype.Text{String: cfg.FirstName, Valid: true},
			LastName:     pgtype.Text{String: cfg.LastName, Valid: true},
			AccountType:  domain.AccountTypeAdmin,
		})
		if err != nil {
			return err
		}
		return q.CreateCart(ctx, customer.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info("bootstrap: admin account created", "email", cfg.Email)
	return nil
}
