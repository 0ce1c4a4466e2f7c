package auth

import (
	"context"
	"fmt"

	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/domain/user"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 12

// EnsureAdmin creates the initial admin account when it does not exist yet.
// Called once at startup with credentials from the environment; an existing
// account is left untouched.
func EnsureAdmin(
	ctx context.Context,
	logger *logrus.Logger,
	users user.Repository,
	email, password, name string,
) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !domain.IsNotFoundError(err) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	account := &user.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		Active:       true,
	}
	if err := users.Create(ctx, account); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.WithField("email", email).Info("initial admin account created")
	return nil
}
