package domain

import "context"

// ResourceUser names a missing user in NotFoundError.
const ResourceUser = "user"

type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// UserRepository is the user store. FindByID returns (nil, nil) when the
// user does not exist.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByName(ctx context.Context, name string) ([]User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
