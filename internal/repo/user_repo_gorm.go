package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"goals-platform/internal/domain"
	"goals-platform/internal/feature/user"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	m := user.FromDomain(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	u.ID = m.ID
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := m.ToDomain()
	return &u, nil
}

// FindByName matches on the stored normalized key.
func (r *UserRepo) FindByName(ctx context.Context, name string) ([]domain.User, error) {
	return r.find(r.db.WithContext(ctx).Where("name_key = ?", domain.NormalizeText(name)))
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *UserRepo) find(q *gorm.DB) ([]domain.User, error) {
	var ms []user.UserModel
	if err := q.Order("id").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&user.UserModel{ID: u.ID}).
		Select("name", "name_key", "surname", "email", "phone", "updated_at").
		Updates(user.FromDomain(u))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	return exists(r.db.WithContext(ctx).Model(&user.UserModel{}), u.ID)
}

func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&user.UserModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
