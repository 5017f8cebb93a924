package goal

import (
	"time"

	"goals-platform/internal/domain"
)

// GoalModel has no foreign key on user_id: users live in another store.
type GoalModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:255;not null;index"`
	Description string    `gorm:"size:1024;not null"`
	DueDate     time.Time `gorm:"type:date;not null"`
	Completed   bool      `gorm:"not null;default:false"`
	UserID      int64     `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (GoalModel) TableName() string { return "goals" }

func FromDomain(g *domain.Goal) *GoalModel {
	return &GoalModel{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		DueDate:     g.DueDate,
		Completed:   g.Completed,
		UserID:      g.UserID,
	}
}

func (m *GoalModel) ToDomain() domain.Goal {
	return domain.Goal{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		DueDate:     m.DueDate,
		Completed:   m.Completed,
		UserID:      m.UserID,
	}
}
