package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shelfwise/shelfwise/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "tok-valid"

// newTestServer fakes the server endpoints the session store talks to.
// Any bearer token other than testToken is rejected with 401.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	user := domain.User{ID: "u1", Email: "alice@x.com", Role: domain.RoleStoreKeeper}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Email != "alice@x.com" || body.Password != "pw123456" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "invalid credentials"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"token": testToken, "user": user},
		})
	})
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "invalid token"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"user": user},
		})
	})
	mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]string{"message": "logged out"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestStore(t *testing.T) (*Store, Storage) {
	t.Helper()
	server := newTestServer(t)
	storage := NewMemStorage()
	return NewStore(NewAPI(server.URL), storage), storage
}

func TestStore_StartsLoading(t *testing.T) {
	store, _ := newTestStore(t)

	state := store.State()
	assert.True(t, state.Loading)
	assert.False(t, state.IsAuthenticated)
}

func TestRehydrate_NoSession(t *testing.T) {
	store, _ := newTestStore(t)

	store.Rehydrate(context.Background())

	state := store.State()
	assert.False(t, state.Loading)
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
}

func TestRehydrate_ValidSession(t *testing.T) {
	store, storage := newTestStore(t)
	require.NoError(t, storage.Save(testToken, &domain.User{ID: "u1", Role: domain.RoleStoreKeeper}))

	store.Rehydrate(context.Background())

	state := store.State()
	assert.False(t, state.Loading)
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "u1", state.User.ID)
	assert.Equal(t, testToken, state.Token)
}

func TestRehydrate_RejectedTokenClearsStorage(t *testing.T) {
	store, storage := newTestStore(t)
	require.NoError(t, storage.Save("tok-stale", &domain.User{ID: "u1"}))

	store.Rehydrate(context.Background())

	state := store.State()
	assert.False(t, state.Loading)
	assert.False(t, state.IsAuthenticated)

	_, _, err := storage.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRehydrate_RunsOnce(t *testing.T) {
	store, storage := newTestStore(t)

	store.Rehydrate(context.Background())
	assert.False(t, store.State().IsAuthenticated)

	// A session appearing later must not be picked up by a second call.
	require.NoError(t, storage.Save(testToken, &domain.User{ID: "u1"}))
	store.Rehydrate(context.Background())
	assert.False(t, store.State().IsAuthenticated)
}

func TestLogin_Success(t *testing.T) {
	store, storage := newTestStore(t)
	store.Rehydrate(context.Background())

	require.NoError(t, store.Login(context.Background(), "alice@x.com", "pw123456"))

	state := store.State()
	assert.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "alice@x.com", state.User.Email)
	assert.Equal(t, testToken, state.Token)

	token, _, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, testToken, token)
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	store, storage := newTestStore(t)
	store.Rehydrate(context.Background())
	before := store.State()

	err := store.Login(context.Background(), "alice@x.com", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)

	assert.Equal(t, before, store.State())
	_, _, loadErr := storage.Load()
	assert.ErrorIs(t, loadErr, ErrNoSession)
}

func TestLogout_ResetsState(t *testing.T) {
	store, storage := newTestStore(t)
	store.Rehydrate(context.Background())
	require.NoError(t, store.Login(context.Background(), "alice@x.com", "pw123456"))

	store.Logout(context.Background())

	state := store.State()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)
	assert.Empty(t, state.Token)

	_, _, err := storage.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestUnauthorizedResponseForcesLogout(t *testing.T) {
	server := newTestServer(t)
	storage := NewMemStorage()
	api := NewAPI(server.URL)
	store := NewStore(api, storage)
	store.Rehydrate(context.Background())
	require.NoError(t, store.Login(context.Background(), "alice@x.com", "pw123456"))

	// Simulate the server rotating its secret: the held token stops working.
	store.mu.Lock()
	store.state.Token = "tok-revoked"
	store.mu.Unlock()

	_, err := api.GetProfile(context.Background())
	require.Error(t, err)

	state := store.State()
	assert.False(t, state.IsAuthenticated)
	assert.Nil(t, state.User)

	_, _, loadErr := storage.Load()
	assert.ErrorIs(t, loadErr, ErrNoSession)
}
