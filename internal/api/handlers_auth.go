package api

import (
	"net/mail"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gravida/internal/models"
	"github.com/terraincognita07/gravida/internal/security"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type recoverInput struct {
	Email        string `json:"email"`
	RecoveryCode string `json:"recovery_code"`
	NewPassword  string `json:"new_password"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SetupStatus tells the client whether the single owner account exists yet.
func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	count, err := handler.repos.Users.CountUsers()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load setup status")
	}
	return c.JSON(fiber.Map{"needs_setup": count == 0})
}

// Register creates the owner account. The instance is single-user: a second
// registration is rejected outright.
func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials, validationError := parseAndValidateCredentials(c)
	if validationError != "" {
		return apiError(c, fiber.StatusBadRequest, validationError)
	}

	count, err := handler.repos.Users.CountUsers()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}
	if count > 0 {
		return apiError(c, fiber.StatusConflict, "owner account already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	recoveryCode, err := security.NewRecoveryCode()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create recovery code")
	}
	recoveryHash, err := bcrypt.GenerateFromPassword([]byte(security.NormalizeRecoveryCode(recoveryCode)), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create recovery code")
	}

	user := models.User{
		Email:            credentials.Email,
		PasswordHash:     string(passwordHash),
		RecoveryCodeHash: string(recoveryHash),
		CreatedAt:        time.Now().In(handler.location),
	}
	if err := handler.repos.Users.Create(&user); err != nil {
		return apiError(c, fiber.StatusConflict, "owner account already exists")
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	// The recovery code is shown exactly once; only its hash is stored.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":            true,
		"recovery_code": recoveryCode,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.repos.Users.FindByNormalizedEmail(normalizeEmail(credentials.Email))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// Recover resets the password using the one-time-shown recovery code.
func (handler *Handler) Recover(c *fiber.Ctx) error {
	input := recoverInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if len(input.NewPassword) < minPasswordLength {
		return apiError(c, fiber.StatusBadRequest, "weak password")
	}

	user, err := handler.repos.Users.FindByNormalizedEmail(normalizeEmail(input.Email))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid recovery code")
	}
	normalizedCode := security.NormalizeRecoveryCode(input.RecoveryCode)
	if err := bcrypt.CompareHashAndPassword([]byte(user.RecoveryCodeHash), []byte(normalizedCode)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid recovery code")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}

	// Rotate the recovery code: a used code must not work twice.
	newCode, err := security.NewRecoveryCode()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create recovery code")
	}
	newCodeHash, err := bcrypt.GenerateFromPassword([]byte(security.NormalizeRecoveryCode(newCode)), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create recovery code")
	}

	user.PasswordHash = string(passwordHash)
	user.RecoveryCodeHash = string(newCodeHash)
	if err := handler.repos.Users.Save(&user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update account")
	}

	return c.JSON(fiber.Map{"ok": true, "recovery_code": newCode})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid current password")
	}
	if len(input.NewPassword) < minPasswordLength {
		return apiError(c, fiber.StatusBadRequest, "weak password")
	}
	if input.NewPassword == input.CurrentPassword {
		return apiError(c, fiber.StatusBadRequest, "new password must differ")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to secure password")
	}
	user.PasswordHash = string(passwordHash)
	if err := handler.repos.Users.Save(user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update account")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func parseAndValidateCredentials(c *fiber.Ctx) (credentialsInput, string) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentials, "invalid input"
	}

	credentials.Email = normalizeEmail(credentials.Email)
	if credentials.Email == "" {
		return credentials, "email is required"
	}
	if _, err := mail.ParseAddress(credentials.Email); err != nil {
		return credentials, "invalid email"
	}
	if len(credentials.Password) < minPasswordLength {
		return credentials, "weak password"
	}
	return credentials, ""
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
