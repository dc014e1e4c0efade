package client

import (
	"context"
	"sync"

	"github.com/shelfwise/shelfwise/internal/domain"
)

// State is the session store snapshot. IsAuthenticated is true iff a
// server-confirmed token is held; Loading is true only during the initial
// rehydration check.
type State struct {
	IsAuthenticated bool
	User            *domain.User
	Token           string
	Loading         bool
}

// Actions form the closed set of state transitions. The reducer is a pure
// function of (state, action); all side effects (HTTP, storage) happen in
// the store operations before dispatch.
type action interface{ isAction() }

type rehydrateSucceeded struct {
	user  *domain.User
	token string
}

type rehydrateFailed struct{}

type loginSucceeded struct {
	user  *domain.User
	token string
}

type loggedOut struct{}

func (rehydrateSucceeded) isAction() {}
func (rehydrateFailed) isAction()    {}
func (loginSucceeded) isAction()     {}
func (loggedOut) isAction()          {}

// reduce computes the next state. Unknown transitions keep the state as is.
func reduce(state State, act action) State {
	switch a := act.(type) {
	case rehydrateSucceeded:
		return State{IsAuthenticated: true, User: a.user, Token: a.token, Loading: false}
	case rehydrateFailed:
		return State{Loading: false}
	case loginSucceeded:
		return State{IsAuthenticated: true, User: a.user, Token: a.token, Loading: false}
	case loggedOut:
		return State{Loading: false}
	}
	return state
}

// Store is the authoritative client-side session state. It starts in the
// loading state and stays there until Rehydrate completes.
type Store struct {
	mu      sync.Mutex
	state   State
	api     *API
	storage Storage

	rehydrateOnce sync.Once
}

// NewStore creates a session store bound to an API client and storage.
// The API client is wired to read the bearer token from the store and to
// force a local logout whenever an authenticated request gets a 401.
func NewStore(api *API, storage Storage) *Store {
	s := &Store{
		state:   State{Loading: true},
		api:     api,
		storage: storage,
	}
	api.tokenSource = s.currentToken
	api.onUnauthorized = s.forceLogout
	return s
}

// State returns a snapshot of the current session state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Rehydrate restores the session from persistent storage, confirming the
// persisted token against the server. It runs at most once; either outcome
// ends the loading phase. On any failure the persisted session is cleared.
func (s *Store) Rehydrate(ctx context.Context) {
	s.rehydrateOnce.Do(func() {
		token, _, err := s.storage.Load()
		if err != nil {
			_ = s.storage.Clear()
			s.dispatch(rehydrateFailed{})
			return
		}

		// Expose the token so GetProfile authenticates; the session is not
		// considered authenticated until the server confirms it.
		s.mu.Lock()
		s.state.Token = token
		s.mu.Unlock()

		user, err := s.api.GetProfile(ctx)
		if err != nil {
			_ = s.storage.Clear()
			s.dispatch(rehydrateFailed{})
			return
		}

		_ = s.storage.Save(token, user)
		s.dispatch(rehydrateSucceeded{user: user, token: token})
	})
}

// Login authenticates against the server. On failure the error propagates
// and the state is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.storage.Save(token, user); err != nil {
		return err
	}

	s.dispatch(loginSucceeded{user: user, token: token})
	return nil
}

// Logout notifies the server best-effort and always resets local state.
func (s *Store) Logout(ctx context.Context) {
	// Server-side logout is an acknowledgment only; its failure never
	// blocks the local reset.
	_ = s.api.Logout(ctx)
	s.forceLogout()
}

func (s *Store) forceLogout() {
	_ = s.storage.Clear()
	s.dispatch(loggedOut{})
}

func (s *Store) dispatch(act action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state, act)
}

func (s *Store) currentToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}
