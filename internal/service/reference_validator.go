package service

import (
	"context"

	"go.uber.org/zap"

	"goals-platform/internal/domain"
	"goals-platform/internal/usergw"
)

// Verdict is the result of checking a goal's user reference on the write path.
type Verdict int

const (
	Accepted Verdict = iota
	RejectedNotFound
	RejectedUnavailable
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case RejectedNotFound:
		return "rejected_not_found"
	default:
		return "rejected_unavailable"
	}
}

// ReferenceValidator applies the fail-closed policy: a user reference is
// accepted only when the user service positively returns the user.
type ReferenceValidator struct {
	gw  usergw.Gateway
	log *zap.Logger
}

func NewReferenceValidator(gw usergw.Gateway, l *zap.Logger) *ReferenceValidator {
	return &ReferenceValidator{gw: gw, log: l}
}

// Check returns the user on acceptance so callers need no second lookup.
func (v *ReferenceValidator) Check(ctx context.Context, userID int64) (*domain.User, Verdict) {
	u, err := v.gw.FetchUser(ctx, userID)
	switch usergw.Classify(err) {
	case usergw.OutcomeFound:
		return u, Accepted
	case usergw.OutcomeNotFound:
		v.log.Warn("goal rejected: user does not exist", zap.Int64("user_id", userID))
		return nil, RejectedNotFound
	default:
		v.log.Error("goal rejected: user service unavailable", zap.Int64("user_id", userID), zap.Error(err))
		return nil, RejectedUnavailable
	}
}

func (v *ReferenceValidator) Validate(ctx context.Context, userID int64) bool {
	_, verdict := v.Check(ctx, userID)
	return verdict == Accepted
}
