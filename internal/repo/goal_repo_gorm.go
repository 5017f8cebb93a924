package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"goals-platform/internal/domain"
	"goals-platform/internal/feature/goal"
)

type GoalRepo struct{ db *gorm.DB }

func NewGoalRepo(db *gorm.DB) *GoalRepo { return &GoalRepo{db: db} }

func (r *GoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	m := goal.FromDomain(g)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	g.ID = m.ID
	return nil
}

func (r *GoalRepo) FindByID(ctx context.Context, id int64) (*domain.Goal, error) {
	var m goal.GoalModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g := m.ToDomain()
	return &g, nil
}

// FindByTitle is an exact match; callers pass an already normalized title.
func (r *GoalRepo) FindByTitle(ctx context.Context, title string) ([]domain.Goal, error) {
	return r.find(r.db.WithContext(ctx).Where("title = ?", title))
}

func (r *GoalRepo) FindByUserID(ctx context.Context, userID int64) ([]domain.Goal, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GoalRepo) List(ctx context.Context) ([]domain.Goal, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GoalRepo) find(q *gorm.DB) ([]domain.Goal, error) {
	var ms []goal.GoalModel
	if err := q.Order("id").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Goal, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

// Update writes the mutable columns only; id, due date and owner stay as
// stored. It reports false when the row no longer exists.
func (r *GoalRepo) Update(ctx context.Context, g *domain.Goal) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&goal.GoalModel{ID: g.ID}).
		Select("title", "description", "completed", "updated_at").
		Updates(goal.FromDomain(g))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	return exists(r.db.WithContext(ctx).Model(&goal.GoalModel{}), g.ID)
}

func (r *GoalRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&goal.GoalModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
