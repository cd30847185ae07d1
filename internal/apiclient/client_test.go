package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladamisici/food-analyzer-sub001/internal/apiclient"
	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
	"github.com/vladamisici/food-analyzer-sub001/internal/secrets"
)

func newTestClient(t *testing.T, server *httptest.Server, withToken bool) *apiclient.Client {
	t.Helper()
	store := secrets.NewMemory()
	if withToken {
		require.NoError(t, store.Save(context.Background(), secrets.KeyAuthToken, []byte("tok_test")))
	}
	return apiclient.NewClient(apiclient.ClientConfig{
		AuthBaseURL: server.URL,
		FoodBaseURL: server.URL,
		HTTPClient:  server.Client(),
		Secrets:     store,
	})
}

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		status     int
		wantDomain apperrors.Domain
		wantKind   apperrors.Kind
		wantCode   int
	}{
		{http.StatusUnauthorized, apperrors.DomainAuthentication, apperrors.KindUnauthorized, 0},
		{http.StatusForbidden, apperrors.DomainAuthentication, apperrors.KindTokenExpired, 0},
		{http.StatusConflict, apperrors.DomainAuthentication, apperrors.KindUserExists, 0},
		{http.StatusUnprocessableEntity, apperrors.DomainValidation, apperrors.KindInvalidCredentials, 0},
		{http.StatusInternalServerError, apperrors.DomainNetworking, apperrors.KindServerError, 500},
		{http.StatusBadGateway, apperrors.DomainNetworking, apperrors.KindServerError, 502},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			client := newTestClient(t, server, false)
			_, err := client.Login(context.Background(), apiclient.Credentials{
				Email: "a@example.com", Password: "secret123",
			})

			require.Error(t, err)
			assert.Equal(t, tc.wantDomain, apperrors.DomainOf(err))
			assert.Equal(t, tc.wantKind, apperrors.KindOf(err))
			if tc.wantCode != 0 {
				var appErr *apperrors.Error
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tc.wantCode, appErr.Code)
			}
		})
	}
}

func TestLogin_DecodesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"), "login is unauthenticated")

		var creds apiclient.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@example.com", creds.Email)

		json.NewEncoder(w).Encode(map[string]any{
			"token":        "tok_1",
			"refreshToken": "rt_1",
			"user": map[string]any{
				"id":        "usr_1",
				"email":     "a@example.com",
				"firstName": "Ada",
				"createdAt": "2026-03-14T08:00:00Z",
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server, false)
	session, err := client.Login(context.Background(), apiclient.Credentials{
		Email: "a@example.com", Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "tok_1", session.Token)
	assert.Equal(t, "rt_1", session.RefreshToken)
	assert.Equal(t, "usr_1", session.User.ID)
	assert.Equal(t, "Ada", session.User.FirstName)
}

func TestAuthenticatedCall_AttachesBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok_test", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"id": "usr_1", "email": "a@example.com"})
	}))
	defer server.Close()

	client := newTestClient(t, server, true)
	user, err := client.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "usr_1", user.ID)
}

func TestAuthenticatedCall_NoTokenFailsWithoutRequest(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(t, server, false)
	_, err := client.Me(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	assert.False(t, called, "no anonymous fallback request may be made")
}

func TestDecodeFailure_MapsToDecodingError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(t, server, false)
	_, err := client.Login(context.Background(), apiclient.Credentials{Email: "a@b.c", Password: "x"})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindDecodingError, apperrors.KindOf(err))
}

func TestTransportFailure_NoConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse further connections

	client := apiclient.NewClient(apiclient.ClientConfig{
		AuthBaseURL: server.URL,
		FoodBaseURL: server.URL,
		Secrets:     secrets.NewMemory(),
	})

	_, err := client.Login(context.Background(), apiclient.Credentials{Email: "a@b.c", Password: "x"})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindNoConnection, apperrors.KindOf(err))
}

func TestCancelledContext_SurfacesCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Login(ctx, apiclient.Credentials{Email: "a@b.c", Password: "x"})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, apperrors.Kind(""), apperrors.KindOf(err), "cancellation is not a taxonomy error")
}

func TestRefresh_SendsRefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/refresh", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "rt_old", body["refreshToken"])
		json.NewEncoder(w).Encode(map[string]any{"token": "tok_new", "refreshToken": "rt_new"})
	}))
	defer server.Close()

	client := newTestClient(t, server, false)
	session, err := client.Refresh(context.Background(), "rt_old")

	require.NoError(t, err)
	assert.Equal(t, "tok_new", session.Token)
}
