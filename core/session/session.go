// Package session holds the one authenticated identity of the client:
// a bearer token and the role names granted to it.
package session

import (
	"fmt"
	"sync"
)

const (
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
	RoleDelivery = "DELIVERY"
)

// Store persists the token and roles across restarts.
type Store interface {
	Load() (token string, roles []string, err error)
	Save(token string, roles []string) error
}

type Session struct {
	mu    sync.RWMutex
	token string
	roles []string
	store Store
}

// New loads any previously saved identity. An absent store entry is an
// empty session, not an error.
func New(store Store) (*Session, error) {
	s := &Session{store: store}

	token, roles, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	s.token = token
	s.roles = roles
	return s, nil
}

func (s *Session) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	return s.store.Save(s.token, s.roles)
}

func (s *Session) SaveRoles(roles []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roles = append([]string(nil), roles...)
	return s.store.Save(s.token, s.roles)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.roles...)
}

func (s *Session) HasRole(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Session) IsAdmin() bool { return s.HasRole(RoleAdmin) }

func (s *Session) IsCustomer() bool { return s.HasRole(RoleCustomer) }

func (s *Session) IsDeliveryPerson() bool { return s.HasRole(RoleDelivery) }

// Logout clears the token and the roles together, under one lock and
// one store write.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.roles = nil
	return s.store.Save("", nil)
}
