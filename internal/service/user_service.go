package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"goals-platform/internal/core/cache"
	"goals-platform/internal/domain"
)

type CreateUserInput struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Surname string `json:"surname" validate:"required,notblank,max=100"`
	Email   string `json:"email" validate:"omitempty,email,max=191"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
}

// UpdateUserInput changes only the fields that are present.
type UpdateUserInput struct {
	Name    *string `json:"name" validate:"omitempty,notblank,max=100"`
	Surname *string `json:"surname" validate:"omitempty,notblank,max=100"`
	Email   *string `json:"email" validate:"omitempty,email,max=191"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
}

// UserService owns user records. Single-user reads go through an optional
// Redis cache; writes evict the affected key.
type UserService struct {
	repo  domain.UserRepository
	cache *cache.Cache
	log   *zap.Logger
}

// NewUserService accepts a nil cache.
func NewUserService(repo domain.UserRepository, c *cache.Cache, l *zap.Logger) *UserService {
	return &UserService{repo: repo, cache: c, log: l.Named("users")}
}

func userKey(id int64) string { return fmt.Sprintf("user:%d", id) }

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storage("user.list", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	load := func(ctx context.Context) (*domain.User, error) {
		u, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, s.storage("user.get", err)
		}
		if u == nil {
			return nil, domain.NewNotFound(domain.ResourceUser, id)
		}
		return u, nil
	}
	if s.cache == nil {
		return load(ctx)
	}
	return cache.GetOrLoadJSON(ctx, s.cache, userKey(id), load)
}

// FindByName matches names case-insensitively. An empty result is a
// NotFoundError.
func (s *UserService) FindByName(ctx context.Context, name string) ([]domain.User, error) {
	users, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, s.storage("user.find_by_name", err)
	}
	if len(users) == 0 {
		return nil, domain.NewNotFound("user with name", name)
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	u := &domain.User{Name: in.Name, Surname: in.Surname, Email: in.Email, Phone: in.Phone}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, s.storage("user.create", err)
	}
	s.log.Info("user created", zap.Int64("user_id", u.ID))
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storage("user.get", err)
	}
	if u == nil {
		return nil, domain.NewNotFound(domain.ResourceUser, id)
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Surname != nil {
		u.Surname = *in.Surname
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	ok, err := s.repo.Update(ctx, u)
	if err != nil {
		return nil, s.storage("user.update", err)
	}
	if !ok {
		s.evict(ctx, id)
		return nil, domain.NewNotFound(domain.ResourceUser, id)
	}
	s.evict(ctx, id)
	s.log.Info("user updated", zap.Int64("user_id", id))
	return u, nil
}

// Delete does not touch goals that reference the user; their reads then
// show the "user not found" placeholder.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.storage("user.delete", err)
	}
	if !ok {
		return domain.NewNotFound(domain.ResourceUser, id)
	}
	s.evict(ctx, id)
	s.log.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

func (s *UserService) evict(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userKey(id)); err != nil {
		s.log.Warn("cache eviction failed", zap.Int64("user_id", id), zap.Error(err))
	}
}

func (s *UserService) storage(op string, err error) error {
	s.log.Error("storage failure", zap.String("op", op), zap.Error(err))
	return domain.NewStorageError(op, err)
}
