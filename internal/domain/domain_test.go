package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	for _, in := range []string{"math goals", "MATH GOALS", "Math Goals", "mAtH gOaLs"} {
		assert.Equal(t, "MATH GOALS", NormalizeText(in), in)
	}
	assert.Equal(t, "STRASSE", NormalizeText("straße"))
	assert.Equal(t, "CAFÉ", NormalizeText("café"))
	assert.Equal(t, "", NormalizeText(""))
}

func TestGoalView(t *testing.T) {
	g := Goal{
		ID:          7,
		Title:       "LEARN GO",
		Description: "FINISH COURSE",
		DueDate:     time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		UserID:      1,
	}
	v := NewGoalView(g, "Ana")
	assert.Equal(t, "2025-12-01", v.DueDate)
	assert.Equal(t, GoalStatusPending, v.Status)
	assert.Equal(t, "Ana", v.UserName)

	g.Completed = true
	assert.Equal(t, GoalStatusCompleted, NewGoalView(g, "").Status)
}

func TestErrorTaxonomy(t *testing.T) {
	nf := NewNotFound("goal", 42)
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.Equal(t, "goal '42' not found", nf.Error())

	cause := errors.New("connection reset")
	se := fmt.Errorf("create goal: %w", NewStorageError("goal.create", cause))
	assert.True(t, errors.Is(se, ErrStorage))
	assert.True(t, errors.Is(se, cause))
	assert.False(t, errors.Is(se, ErrNotFound))

	re := &ReferenceError{UserID: 999}
	assert.Contains(t, re.Error(), "999")

	ve := &ValidationError{Field: "title", Message: "must not be blank"}
	assert.Contains(t, ve.Error(), "title")
}
