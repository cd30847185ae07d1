package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/vladamisici/food-analyzer-sub001/internal/apiclient"
	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
	"github.com/vladamisici/food-analyzer-sub001/internal/goals"
	"github.com/vladamisici/food-analyzer-sub001/internal/history"
	"github.com/vladamisici/food-analyzer-sub001/internal/secrets"
)

// APIClient is the remote auth surface the service depends on.
type APIClient interface {
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.SessionResponse, error)
	Login(ctx context.Context, creds apiclient.Credentials) (*apiclient.SessionResponse, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context, refreshToken string) (*apiclient.SessionResponse, error)
	Me(ctx context.Context) (*apiclient.UserPayload, error)
}

// Service owns the session lifecycle: sign-in, registration, token refresh,
// and the locally cached user profile.
type Service struct {
	api     APIClient
	secrets secrets.Store
	users   UserRepository
	history history.Repository
	goals   goals.Repository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewService(api APIClient, sec secrets.Store, users UserRepository,
	hist history.Repository, gls goals.Repository, logger zerolog.Logger) *Service {
	return &Service{
		api:     api,
		secrets: sec,
		users:   users,
		history: hist,
		goals:   gls,
		logger:  logger.With().Str("component", "auth").Logger(),
		now:     time.Now,
	}
}

// Login authenticates with the remote service and persists the session.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	session, err := s.api.Login(ctx, apiclient.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	user, err := s.persistSession(ctx, session)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("signed in")
	return user, nil
}

// Register creates an account and persists the resulting session.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*User, error) {
	if firstName == "" || lastName == "" {
		return nil, apperrors.Validation(apperrors.KindEmptyFields)
	}
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	session, err := s.api.Register(ctx, apiclient.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return nil, err
	}
	user, err := s.persistSession(ctx, session)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("registered")
	return user, nil
}

// Logout ends the session. The remote call is best effort: the local
// session is cleared no matter what the server says.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		s.logger.Warn().Err(err).Msg("remote logout failed, clearing local session")
	}
	return s.clearSession(ctx)
}

// CurrentUser returns the signed-in user's profile. It asks the server
// first, retrying exactly once after a refresh when the token has expired,
// and falls back to the local snapshot when the network is unavailable.
func (s *Service) CurrentUser(ctx context.Context) (*User, error) {
	payload, err := s.api.Me(ctx)
	if apperrors.IsKind(err, apperrors.KindTokenExpired) {
		if err = s.RefreshSession(ctx); err != nil {
			return nil, err
		}
		payload, err = s.api.Me(ctx)
	}
	switch {
	case err == nil:
		user := userFromPayload(*payload)
		if cached, cerr := s.localUser(ctx); cerr == nil && cached != nil {
			user.Profile = cached.Profile
		}
		if uerr := s.users.Upsert(ctx, user); uerr != nil {
			s.logger.Warn().Err(uerr).Msg("could not cache user profile")
		}
		if berr := s.saveSnapshot(ctx, user); berr != nil {
			s.logger.Warn().Err(berr).Msg("could not store user snapshot")
		}
		return &user, nil
	case errors.Is(err, context.Canceled):
		return nil, err
	case apperrors.DomainOf(err) == apperrors.DomainNetworking:
		cached, cerr := s.localUser(ctx)
		if cerr == nil && cached != nil {
			s.logger.Debug().Msg("serving cached profile, network unavailable")
			return cached, nil
		}
		return nil, err
	default:
		return nil, err
	}
}

// RefreshSession ensures a usable access token. It is a no-op success when
// the stored token has not expired; otherwise it exchanges the refresh
// token for a new session. A failed exchange is terminal: the local session
// is cleared and the caller must sign in again.
func (s *Service) RefreshSession(ctx context.Context) error {
	if token, err := s.secrets.Load(ctx, secrets.KeyAuthToken); err == nil {
		if !tokenExpired(string(token), s.now()) {
			return nil
		}
	}

	refresh, err := s.secrets.Load(ctx, secrets.KeyRefreshToken)
	if err != nil {
		return apperrors.Authentication(apperrors.KindUnauthorized)
	}

	session, err := s.api.Refresh(ctx, string(refresh))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		if apperrors.DomainOf(err) == apperrors.DomainNetworking &&
			!apperrors.IsKind(err, apperrors.KindServerError) {
			// Transient transport failure; keep the session so a later
			// attempt can still succeed.
			return err
		}
		s.logger.Warn().Err(err).Msg("refresh rejected, clearing session")
		if cerr := s.clearSession(ctx); cerr != nil {
			s.logger.Error().Err(cerr).Msg("could not clear session")
		}
		return apperrors.Authentication(apperrors.KindTokenExpired)
	}

	if _, err := s.persistSession(ctx, session); err != nil {
		return err
	}
	s.logger.Debug().Msg("session refreshed")
	return nil
}

// IsAuthenticated reports whether a session is present locally. It does not
// consult the server.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	return s.secrets.Exists(ctx, secrets.KeyAuthToken)
}

// CurrentUserID returns the signed-in user's id from the local snapshot
// without touching the network.
func (s *Service) CurrentUserID(ctx context.Context) (string, error) {
	user, err := s.localUser(ctx)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.Authentication(apperrors.KindUnauthorized)
	}
	return user.ID, nil
}

// DeleteAccount removes every trace of the signed-in user from the device:
// analyses, goals, the profile row, and the session secrets.
func (s *Service) DeleteAccount(ctx context.Context) error {
	user, err := s.localUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.Authentication(apperrors.KindUnauthorized)
	}

	// The user row goes first: in the store its foreign keys cascade to
	// analyses and goals, so the wipe commits as one scope. The explicit
	// deletes cover repositories without referential actions.
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	if err := s.history.DeleteAllForUser(ctx, user.ID); err != nil {
		return err
	}
	if err := s.goals.DeleteAllForUser(ctx, user.ID); err != nil {
		return err
	}
	if err := s.clearSession(ctx); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("account data deleted")
	return nil
}

// UpdateProfile merges the optional attributes into the stored profile and
// refreshes the snapshot.
func (s *Service) UpdateProfile(ctx context.Context, profile Profile) (*User, error) {
	user, err := s.localUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Authentication(apperrors.KindUnauthorized)
	}

	user.Profile = &profile
	if err := s.users.Upsert(ctx, *user); err != nil {
		return nil, err
	}
	if err := s.saveSnapshot(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// persistSession stores the tokens and the user snapshot, and caches the
// profile row locally.
func (s *Service) persistSession(ctx context.Context, session *apiclient.SessionResponse) (*User, error) {
	if err := s.secrets.Save(ctx, secrets.KeyAuthToken, []byte(session.Token)); err != nil {
		return nil, err
	}
	if session.RefreshToken != "" {
		if err := s.secrets.Save(ctx, secrets.KeyRefreshToken, []byte(session.RefreshToken)); err != nil {
			return nil, err
		}
	}

	user := userFromPayload(session.User)
	if existing, err := s.users.FindByID(ctx, user.ID); err == nil {
		user.Profile = existing.Profile
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	if err := s.saveSnapshot(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// clearSession removes the tokens and the snapshot. Deletes are idempotent.
func (s *Service) clearSession(ctx context.Context) error {
	for _, key := range []string{secrets.KeyAuthToken, secrets.KeyRefreshToken, secrets.KeyCurrentUser} {
		if err := s.secrets.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// localUser returns the snapshot, or nil when no session is stored.
func (s *Service) localUser(ctx context.Context) (*User, error) {
	raw, err := s.secrets.Load(ctx, secrets.KeyCurrentUser)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, apperrors.Storage(apperrors.KindDecodingFailed, err)
	}
	return &user, nil
}

func (s *Service) saveSnapshot(ctx context.Context, user User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return apperrors.Storage(apperrors.KindEncodingFailed, err)
	}
	return s.secrets.Save(ctx, secrets.KeyCurrentUser, raw)
}

func userFromPayload(p apiclient.UserPayload) User {
	return User{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		CreatedAt: p.CreatedAt,
	}
}
