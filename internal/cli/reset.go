package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/terraincognita07/gravida/internal/db"
	"github.com/terraincognita07/gravida/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunResetPasswordCommand is the offline escape hatch for a locked-out owner:
// it sets a temporary password and mints a fresh recovery code directly in
// the database file.
func RunResetPasswordCommand(dbPath string, email string) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	users := db.NewUserRepository(database)
	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := generateTemporaryPassword(12)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	recoveryCode, err := security.NewRecoveryCode()
	if err != nil {
		return fmt.Errorf("generate recovery code: %w", err)
	}
	recoveryHash, err := bcrypt.GenerateFromPassword([]byte(security.NormalizeRecoveryCode(recoveryCode)), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash recovery code: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	user.RecoveryCodeHash = string(recoveryHash)
	if err := users.Save(&user); err != nil {
		return fmt.Errorf("update user credentials: %w", err)
	}

	fmt.Println("Password reset successful")
	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	fmt.Printf("New recovery code:  %s\n", recoveryCode)
	fmt.Println("Sign in with the temporary password and change it right away.")

	return nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	return security.RandomString(length, alphabet)
}
