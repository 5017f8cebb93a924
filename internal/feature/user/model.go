package user

import (
	"time"

	"goals-platform/internal/domain"
)

type UserModel struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"size:100;not null"`
	NameKey string `gorm:"size:100;not null;index"` // domain.NormalizeText(Name)
	Surname string `gorm:"size:100;not null"`
	Email   string `gorm:"size:191"`
	Phone   string `gorm:"size:32"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func FromDomain(u *domain.User) *UserModel {
	return &UserModel{
		ID:      u.ID,
		Name:    u.Name,
		NameKey: domain.NormalizeText(u.Name),
		Surname: u.Surname,
		Email:   u.Email,
		Phone:   u.Phone,
	}
}

func (m *UserModel) ToDomain() domain.User {
	return domain.User{ID: m.ID, Name: m.Name, Surname: m.Surname, Email: m.Email, Phone: m.Phone}
}
