package service

import (
	"context"

	"goals-platform/internal/domain"
	"goals-platform/internal/usergw"
)

// UserDirectory exposes the user service's records through the goal
// service. Unlike goal reads it does not degrade: an unreachable user
// service is an error for the caller.
type UserDirectory struct {
	gw usergw.Gateway
}

func NewUserDirectory(gw usergw.Gateway) *UserDirectory { return &UserDirectory{gw: gw} }

func (d *UserDirectory) List(ctx context.Context) ([]domain.User, error) {
	users, err := d.gw.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (d *UserDirectory) Get(ctx context.Context, id int64) (*domain.User, error) {
	u, err := d.gw.FetchUser(ctx, id)
	if usergw.Classify(err) == usergw.OutcomeNotFound {
		return nil, domain.NewNotFound(domain.ResourceUser, id)
	}
	return u, err
}
