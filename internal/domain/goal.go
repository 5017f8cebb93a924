package domain

import (
	"context"
	"time"
)

// DueDateLayout is the only accepted textual form of a goal due date.
const DueDateLayout = "2006-01-02"

// Stored length limits in characters, applied to normalized text.
const (
	MaxTitleLen       = 255
	MaxDescriptionLen = 1000
)

const (
	GoalStatusPending   = "PENDING"
	GoalStatusCompleted = "COMPLETED"
)

// Goal is owned by the goal service. UserID lives in the user service's
// namespace and is never checked by the goal store itself.
type Goal struct {
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	Completed   bool
	UserID      int64
}

// Status is the human-facing completion state.
func (g Goal) Status() string {
	if g.Completed {
		return GoalStatusCompleted
	}
	return GoalStatusPending
}

// GoalView is a goal as returned on read paths, with the owner's display
// name resolved (or a placeholder when it could not be).
type GoalView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Completed   bool   `json:"completed"`
	Status      string `json:"status"`
	UserID      int64  `json:"userId"`
	UserName    string `json:"userName"`
}

func NewGoalView(g Goal, userName string) GoalView {
	return GoalView{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		DueDate:     g.DueDate.Format(DueDateLayout),
		Completed:   g.Completed,
		Status:      g.Status(),
		UserID:      g.UserID,
		UserName:    userName,
	}
}

// GoalRepository is the goal store. FindByID returns (nil, nil) when the
// goal does not exist; Update and Delete report whether the row existed.
type GoalRepository interface {
	Create(ctx context.Context, g *Goal) error
	FindByID(ctx context.Context, id int64) (*Goal, error)
	FindByTitle(ctx context.Context, title string) ([]Goal, error)
	FindByUserID(ctx context.Context, userID int64) ([]Goal, error)
	List(ctx context.Context) ([]Goal, error)
	Update(ctx context.Context, g *Goal) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
