// Package usergwtest provides a programmable usergw.Gateway for tests.
package usergwtest

import (
	"context"
	"fmt"
	"sync"

	"goals-platform/internal/domain"
	"goals-platform/internal/usergw"
)

// Stub answers from an in-memory user set. Ids marked with FailFor, or all
// ids after SetUnavailable(true), resolve to an unavailable error.
type Stub struct {
	mu          sync.Mutex
	users       map[int64]domain.User
	failing     map[int64]bool
	unavailable bool
	calls       map[int64]int
}

var _ usergw.Gateway = (*Stub)(nil)

func New(users ...domain.User) *Stub {
	s := &Stub{
		users:   map[int64]domain.User{},
		failing: map[int64]bool{},
		calls:   map[int64]int{},
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *Stub) Put(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Stub) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *Stub) FailFor(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[id] = true
}

func (s *Stub) SetUnavailable(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = v
}

// Calls is the number of FetchUser calls made for id.
func (s *Stub) Calls(id int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

func (s *Stub) FetchUser(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[id]++
	if err := ctx.Err(); err != nil {
		return nil, &usergw.UnavailableError{Op: "fetch_user", Reason: "context", Err: err}
	}
	if s.unavailable || s.failing[id] {
		return nil, &usergw.UnavailableError{Op: "fetch_user", Reason: fmt.Sprintf("stubbed failure for %d", id)}
	}
	u, ok := s.users[id]
	if !ok {
		return nil, usergw.ErrNotFound
	}
	return &u, nil
}

func (s *Stub) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unavailable {
		return nil, &usergw.UnavailableError{Op: "list_users", Reason: "stubbed failure"}
	}
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}
