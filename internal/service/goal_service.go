package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"goals-platform/internal/domain"
	"goals-platform/internal/usergw"
)

type CreateGoalInput struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank,max=1000"`
	DueDate     string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	UserID      int64  `json:"userId" validate:"required,gt=0"`
}

// UpdateGoalInput carries the mutable fields. Completed is 0 or 1.
type UpdateGoalInput struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank,max=1000"`
	Completed   *int   `json:"completed" validate:"required,oneof=0 1"`
}

// GoalService owns goal records. Writes go through the ReferenceValidator,
// reads through the Enricher.
type GoalService struct {
	repo      domain.GoalRepository
	validator *ReferenceValidator
	enricher  *Enricher
	log       *zap.Logger
}

func NewGoalService(repo domain.GoalRepository, gw usergw.Gateway, l *zap.Logger) *GoalService {
	l = l.Named("goals")
	return &GoalService{
		repo:      repo,
		validator: NewReferenceValidator(gw, l),
		enricher:  NewEnricher(gw, l),
		log:       l,
	}
}

func (s *GoalService) List(ctx context.Context) ([]domain.GoalView, error) {
	goals, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.storage("goal.list", err)
	}
	return s.enricher.EnrichAll(ctx, goals), nil
}

func (s *GoalService) Get(ctx context.Context, id int64) (domain.GoalView, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.GoalView{}, s.storage("goal.get", err)
	}
	if g == nil {
		return domain.GoalView{}, domain.NewNotFound("goal", id)
	}
	return s.enricher.Enrich(ctx, *g), nil
}

// FindByTitle matches titles exactly after normalization, so the lookup is
// case-insensitive. An empty result is a NotFoundError.
func (s *GoalService) FindByTitle(ctx context.Context, title string) ([]domain.GoalView, error) {
	goals, err := s.repo.FindByTitle(ctx, domain.NormalizeText(title))
	if err != nil {
		return nil, s.storage("goal.find_by_title", err)
	}
	if len(goals) == 0 {
		return nil, domain.NewNotFound("goal with title", title)
	}
	return s.enricher.EnrichAll(ctx, goals), nil
}

func (s *GoalService) ListByUser(ctx context.Context, userID int64) ([]domain.GoalView, error) {
	goals, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, s.storage("goal.list_by_user", err)
	}
	return s.enricher.EnrichAll(ctx, goals), nil
}

// Create persists a new, not yet completed goal. Nothing is stored unless
// the user service confirmed the owner exists.
func (s *GoalService) Create(ctx context.Context, in CreateGoalInput) (domain.GoalView, error) {
	if err := validateInput(in); err != nil {
		return domain.GoalView{}, err
	}
	due, err := time.Parse(domain.DueDateLayout, in.DueDate)
	if err != nil {
		return domain.GoalView{}, &domain.ValidationError{Field: "dueDate", Message: "must be a date in YYYY-MM-DD format"}
	}

	title, desc, err := normalizeGoalText(in.Title, in.Description)
	if err != nil {
		return domain.GoalView{}, err
	}

	owner, verdict := s.validator.Check(ctx, in.UserID)
	if verdict != Accepted {
		return domain.GoalView{}, &domain.ReferenceError{UserID: in.UserID}
	}

	g := &domain.Goal{
		Title:       title,
		Description: desc,
		DueDate:     due,
		UserID:      in.UserID,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return domain.GoalView{}, s.storage("goal.create", err)
	}
	s.log.Info("goal created", zap.Int64("goal_id", g.ID), zap.Int64("user_id", g.UserID))
	return domain.NewGoalView(*g, owner.Name), nil
}

// Update changes title, description and completion. The owner and due date
// are fixed at creation, so the user reference is not checked again.
func (s *GoalService) Update(ctx context.Context, id int64, in UpdateGoalInput) (domain.GoalView, error) {
	if err := validateInput(in); err != nil {
		return domain.GoalView{}, err
	}
	title, desc, err := normalizeGoalText(in.Title, in.Description)
	if err != nil {
		return domain.GoalView{}, err
	}
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.GoalView{}, s.storage("goal.get", err)
	}
	if g == nil {
		return domain.GoalView{}, domain.NewNotFound("goal", id)
	}

	g.Title = title
	g.Description = desc
	g.Completed = *in.Completed == 1
	ok, err := s.repo.Update(ctx, g)
	if err != nil {
		return domain.GoalView{}, s.storage("goal.update", err)
	}
	if !ok {
		return domain.GoalView{}, domain.NewNotFound("goal", id)
	}
	s.log.Info("goal updated", zap.Int64("goal_id", id), zap.Bool("completed", g.Completed))
	return s.enricher.Enrich(ctx, *g), nil
}

// Delete removes the goal. Deleting a missing id is a NotFoundError and
// leaves the store unchanged.
func (s *GoalService) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.storage("goal.delete", err)
	}
	if !ok {
		return domain.NewNotFound("goal", id)
	}
	s.log.Info("goal deleted", zap.Int64("goal_id", id))
	return nil
}

func (s *GoalService) storage(op string, err error) error {
	s.log.Error("storage failure", zap.String("op", op), zap.Error(err))
	return domain.NewStorageError(op, err)
}
