package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"goals-platform/internal/domain"
	"goals-platform/internal/feature/goal"
	"goals-platform/internal/feature/user"
	"goals-platform/internal/repo"
	"goals-platform/internal/usergw/usergwtest"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&goal.GoalModel{}, &user.UserModel{}))
	return db
}

var (
	ana = domain.User{ID: 1, Name: "Ana", Surname: "Ruiz"}
	bo  = domain.User{ID: 2, Name: "Bo", Surname: "Lind"}
)

func newGoalService(t *testing.T, users ...domain.User) (*GoalService, *usergwtest.Stub, *repo.GoalRepo) {
	t.Helper()
	gw := usergwtest.New(users...)
	r := repo.NewGoalRepo(setupTestDB(t))
	return NewGoalService(r, gw, zap.NewNop()), gw, r
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

type mockGoalRepo struct{ mock.Mock }

var _ domain.GoalRepository = (*mockGoalRepo)(nil)

func (m *mockGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockGoalRepo) FindByID(ctx context.Context, id int64) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*domain.Goal)
	return g, args.Error(1)
}

func (m *mockGoalRepo) FindByTitle(ctx context.Context, title string) ([]domain.Goal, error) {
	args := m.Called(ctx, title)
	gs, _ := args.Get(0).([]domain.Goal)
	return gs, args.Error(1)
}

func (m *mockGoalRepo) FindByUserID(ctx context.Context, userID int64) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	gs, _ := args.Get(0).([]domain.Goal)
	return gs, args.Error(1)
}

func (m *mockGoalRepo) List(ctx context.Context) ([]domain.Goal, error) {
	args := m.Called(ctx)
	gs, _ := args.Get(0).([]domain.Goal)
	return gs, args.Error(1)
}

func (m *mockGoalRepo) Update(ctx context.Context, g *domain.Goal) (bool, error) {
	args := m.Called(ctx, g)
	return args.Bool(0), args.Error(1)
}

func (m *mockGoalRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
