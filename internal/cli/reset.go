package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/terraincognita07/staffpulse/internal/db"
	"github.com/terraincognita07/staffpulse/internal/models"
	"github.com/terraincognita07/staffpulse/internal/security"
	"github.com/terraincognita07/staffpulse/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunResetPasswordCommand resets a staff member's password from the
// server console, for when a company's only manager locks themselves
// out. Interactive mode prompts for the new password without echo;
// otherwise a temporary one is generated and printed once.
func RunResetPasswordCommand(dbPath string, email string, interactive bool) error {
	normalizedEmail := services.NormalizeEmail(email)
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

	var user models.User
	if err := database.Where("email = ?", normalizedEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	newPassword := ""
	if interactive {
		newPassword, err = promptNewPassword()
		if err != nil {
			return err
		}
	} else {
		newPassword, err = generateTemporaryPassword(12)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(passwordHash)
	if err := database.Save(&user).Error; err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Println("Password reset successful")
	if !interactive {
		fmt.Printf("Temporary password: %s\n", newPassword)
		fmt.Println("Share it over a secure channel and ask the user to change it.")
	}

	return nil
}

func promptNewPassword() (string, error) {
	fmt.Print("New password: ")
	first, err := readPasswordNoEcho(os.Stdin)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Print("Repeat password: ")
	second, err := readPasswordNoEcho(os.Stdin)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimSpace(string(first))
	if password != strings.TrimSpace(string(second)) {
		return "", errors.New("passwords do not match")
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return "", err
	}
	return password, nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	return security.RandomString(length, alphabet)
}
