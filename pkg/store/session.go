package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

const (
	authBlob  = "auth-storage"
	tokenBlob = "token"
)

// SessionStore holds the logged-in user, if any. The backend owns token
// verification; this is a persisted key-value holder.
type SessionStore struct {
	mu      sync.Mutex
	storage Storage
	user    *User
}

func NewSessionStore(ctx context.Context, storage Storage) (*SessionStore, error) {
	s := &SessionStore{storage: storage}

	data, err := storage.Load(ctx, authBlob)
	if errors.Is(err, ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rehydrate session: %w", err)
	}
	var state struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("rehydrate session: %w", err)
	}
	s.user = state.User
	return s, nil
}

func (s *SessionStore) SetUser(ctx context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	return s.commit(ctx)
}

// Logout clears the user and drops the standalone token blob. The cleared
// state is committed first; if that fails the user is restored so memory
// stays consistent with the persisted blob.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.user
	s.user = nil
	if err := s.commit(ctx); err != nil {
		s.user = prev
		return err
	}
	if err := s.storage.Delete(ctx, tokenBlob); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

func (s *SessionStore) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *SessionStore) commit(ctx context.Context) error {
	state := struct {
		User *User `json:"user"`
	}{User: s.user}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := s.storage.Save(ctx, authBlob, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
