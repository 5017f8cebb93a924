package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"goals-platform/internal/domain"
	"goals-platform/internal/usergw"
)

// Display names used when the owner cannot be resolved.
const (
	DisplayNameUserNotFound = "user not found"
	DisplayNameUnavailable  = "retrieval failed"
)

const defaultEnrichParallelism = 8

// Enricher applies the fail-open policy: every goal comes back, with the
// owner's name or one of the placeholders above.
type Enricher struct {
	gw          usergw.Gateway
	log         *zap.Logger
	parallelism int
}

func NewEnricher(gw usergw.Gateway, l *zap.Logger) *Enricher {
	return &Enricher{gw: gw, log: l, parallelism: defaultEnrichParallelism}
}

func (e *Enricher) DisplayName(ctx context.Context, userID int64) string {
	u, err := e.gw.FetchUser(ctx, userID)
	switch usergw.Classify(err) {
	case usergw.OutcomeFound:
		return u.Name
	case usergw.OutcomeNotFound:
		return DisplayNameUserNotFound
	default:
		e.log.Warn("owner name unavailable", zap.Int64("user_id", userID), zap.Error(err))
		return DisplayNameUnavailable
	}
}

func (e *Enricher) Enrich(ctx context.Context, g domain.Goal) domain.GoalView {
	return domain.NewGoalView(g, e.DisplayName(ctx, g.UserID))
}

// EnrichAll keeps input order. Each goal gets its own lookup; repeated
// owners are not deduplicated.
func (e *Enricher) EnrichAll(ctx context.Context, goals []domain.Goal) []domain.GoalView {
	out := make([]domain.GoalView, len(goals))
	var eg errgroup.Group
	eg.SetLimit(e.parallelism)
	for i := range goals {
		i := i
		eg.Go(func() error {
			out[i] = e.Enrich(ctx, goals[i])
			return nil
		})
	}
	_ = eg.Wait()
	return out
}
