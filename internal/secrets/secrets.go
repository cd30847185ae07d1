// Package secrets provides the keyed secret store used for tokens and the
// current-user snapshot. Implementations guarantee that a write to a key is
// atomic: readers never observe a half-written value.
package secrets

import "context"

// Well-known secret keys.
const (
	KeyAuthToken        = "auth_token"
	KeyRefreshToken     = "refresh_token"
	KeyCurrentUser      = "current_user"
	KeyDeviceID         = "device_id"
	KeyBiometricEnabled = "biometric_enabled"
)

// Store is the secret-store contract. Load returns storage/key_not_found
// for an absent key.
type Store interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
}
