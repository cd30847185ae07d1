// Package auth owns the session lifecycle and the locally persisted user
// profile. It composes the API client and the secret store: tokens and the
// current-user snapshot live in secrets, the profile lives in the store.
package auth

import (
	"strings"
	"time"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
)

// User is the locally persisted user profile.
type User struct {
	// ID is the opaque, immutable user identifier.
	ID string `json:"id"`

	// Email is unique within the store.
	Email string `json:"email"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// Profile holds the optional attributes collected after onboarding.
	Profile *Profile `json:"profile,omitempty"`
}

// Profile holds the optional user attributes.
type Profile struct {
	Age                *int     `json:"age,omitempty"`
	Gender             string   `json:"gender,omitempty"`
	HeightCm           *float64 `json:"heightCm,omitempty"`
	WeightKg           *float64 `json:"weightKg,omitempty"`
	ActivityLevel      string   `json:"activityLevel,omitempty"`
	DietaryPreferences []string `json:"dietaryPreferences,omitempty"`
	HealthGoals        []string `json:"healthGoals,omitempty"`
}

// DisplayName joins the name parts for presentation.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

const minPasswordLength = 8

// validateCredentials applies the client-side checks shared by login and
// registration.
func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return apperrors.Validation(apperrors.KindEmptyFields)
	}
	if !validEmail(email) {
		return apperrors.Validation(apperrors.KindInvalidEmail)
	}
	if len(password) < minPasswordLength {
		return apperrors.Validation(apperrors.KindWeakPassword)
	}
	return nil
}

// validEmail applies a shallow shape check; the server is authoritative.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
