package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MaxLessonIDLength = 128
	MaxNameLength     = 64
	MaxLanguageLength = 32
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores bytes past 72
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NormalizeWalletAddress checks a 0x-prefixed 20-byte hex address and lowercases it.
func NormalizeWalletAddress(address string) (string, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("wallet address is required")
	}
	if err := validate.Var(address, "eth_addr"); err != nil {
		return "", fmt.Errorf("wallet address must be a 0x-prefixed 40 character hex string")
	}
	return strings.ToLower(address), nil
}

// ValidateLessonID rejects blank, oversized or non-printable lesson ids.
func ValidateLessonID(lessonID string) error {
	if strings.TrimSpace(lessonID) == "" {
		return fmt.Errorf("lesson id is required")
	}
	if !utf8.ValidString(lessonID) {
		return fmt.Errorf("lesson id must be valid UTF-8")
	}
	if len(lessonID) > MaxLessonIDLength {
		return fmt.Errorf("lesson id cannot exceed %d characters", MaxLessonIDLength)
	}
	for _, r := range lessonID {
		if !unicode.IsPrint(r) {
			return fmt.Errorf("lesson id contains non-printable characters")
		}
	}
	return nil
}

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	}
	return nil
}

func ValidateLanguage(language string) error {
	if utf8.RuneCountInString(language) > MaxLanguageLength {
		return fmt.Errorf("language cannot exceed %d characters", MaxLanguageLength)
	}
	return nil
}

func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("email must be a valid address")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password cannot exceed %d bytes", MaxPasswordLength)
	}
	return nil
}
