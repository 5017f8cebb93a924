package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"goals-platform/internal/core/auth"
	"goals-platform/internal/core/database"
	"goals-platform/internal/domain"
	"goals-platform/internal/feature/goal"
	"goals-platform/internal/feature/user"
	"goals-platform/internal/repo"
	"goals-platform/internal/service"
	"goals-platform/internal/transport/http/handler"
	"goals-platform/internal/usergw"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func call(t *testing.T, h http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if env.Code != 0 {
		assert.Equal(t, env.Code, w.Code, "http status must equal envelope code")
	}
	return w.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func openDB(t *testing.T, model any) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model))
	return db
}

type platform struct {
	users   *httptest.Server
	goals   http.Handler
	userAPI http.Handler
}

// newPlatform wires both services the way the binaries do, with service
// tokens enabled and the goal service talking to the user service over HTTP.
func newPlatform(t *testing.T) *platform {
	t.Helper()
	log := zap.NewNop()
	secret := []byte("scenario-secret")

	userEngine := NewEngine(Options{
		Logger:      log,
		ServiceAuth: &auth.JWTer{Secret: secret, Issuer: "goals-platform"},
		Callers:     []string{"goalsvc"},
	}, &handler.UserHandler{Users: service.NewUserService(repo.NewUserRepo(openDB(t, &user.UserModel{})), nil, log)})
	users := httptest.NewServer(userEngine)
	t.Cleanup(users.Close)

	gw, err := usergw.NewHTTPGateway(usergw.Options{
		BaseURL: users.URL,
		Timeout: time.Second,
		Caller:  "goalsvc",
		Tokens:  &auth.JWTer{Secret: secret, Issuer: "goals-platform", TTL: time.Minute},
		Logger:  log,
	})
	require.NoError(t, err)
	goals := NewEngine(Options{Logger: log}, &handler.GoalHandler{
		Goals: service.NewGoalService(repo.NewGoalRepo(openDB(t, &goal.GoalModel{})), gw, log),
		Users: service.NewUserDirectory(gw),
	})

	// direct client for seeding users, carrying a valid token
	tok, err := (&auth.JWTer{Secret: secret, Issuer: "goals-platform", TTL: time.Minute}).Issue("goalsvc")
	require.NoError(t, err)
	userAPI := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
		userEngine.ServeHTTP(w, r)
	})
	return &platform{users: users, goals: goals, userAPI: userAPI}
}

func TestScenario_GoalLifecycleAcrossServices(t *testing.T) {
	p := newPlatform(t)

	status, env := call(t, p.userAPI, http.MethodPost, "/api/v1/users", `{"name":"Ana","surname":"Ruiz"}`)
	require.Equal(t, http.StatusCreated, status)
	ana := decode[domain.User](t, env.Data)
	require.NotZero(t, ana.ID)

	// create a goal for an existing user
	body := fmt.Sprintf(`{"title":"Math goals","description":"learn algebra","dueDate":"2025-12-01","userId":%d}`, ana.ID)
	status, env = call(t, p.goals, http.MethodPost, "/api/v1/goals", body)
	require.Equal(t, http.StatusCreated, status, env.Msg)
	created := decode[domain.GoalView](t, env.Data)
	assert.Equal(t, "MATH GOALS", created.Title)
	assert.Equal(t, "LEARN ALGEBRA", created.Description)
	assert.Equal(t, "Ana", created.UserName)
	assert.Equal(t, domain.GoalStatusPending, created.Status)

	// a goal for a user that does not exist is rejected and not stored
	status, env = call(t, p.goals, http.MethodPost, "/api/v1/goals",
		`{"title":"Ghost","description":"x","dueDate":"2025-12-01","userId":999}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, env.Msg, "999")
	_, env = call(t, p.goals, http.MethodGet, "/api/v1/goals", "")
	assert.Len(t, decode[[]domain.GoalView](t, env.Data), 1)

	// title lookup ignores case
	for _, q := range []string{"math goals", "MATH GOALS", "Math Goals"} {
		status, env = call(t, p.goals, http.MethodGet, "/api/v1/goals/title/"+url.PathEscape(q), "")
		require.Equal(t, http.StatusOK, status)
		found := decode[[]domain.GoalView](t, env.Data)
		require.Len(t, found, 1)
		assert.Equal(t, created.ID, found[0].ID)
	}
	status, _ = call(t, p.goals, http.MethodGet, "/api/v1/goals/title/unknown", "")
	assert.Equal(t, http.StatusNotFound, status)

	// by owner, and the user directory proxy
	_, env = call(t, p.goals, http.MethodGet, fmt.Sprintf("/api/v1/goals/user/%d", ana.ID), "")
	assert.Len(t, decode[[]domain.GoalView](t, env.Data), 1)
	status, env = call(t, p.goals, http.MethodGet, fmt.Sprintf("/api/v1/goals/users/%d", ana.ID), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ana", decode[domain.User](t, env.Data).Name)
	status, _ = call(t, p.goals, http.MethodGet, "/api/v1/goals/users/999", "")
	assert.Equal(t, http.StatusNotFound, status)

	// update
	path := fmt.Sprintf("/api/v1/goals/%d", created.ID)
	status, env = call(t, p.goals, http.MethodPut, path, `{"title":"calculus","description":"limits","completed":1}`)
	require.Equal(t, http.StatusOK, status, env.Msg)
	updated := decode[domain.GoalView](t, env.Data)
	assert.Equal(t, "CALCULUS", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, domain.GoalStatusCompleted, updated.Status)
	assert.Equal(t, created.DueDate, updated.DueDate)

	status, env = call(t, p.goals, http.MethodPut, path, `{"title":"calculus","description":"limits","completed":2}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Msg, "completed")

	// owner deleted: reads degrade, the goal survives
	status, _ = call(t, p.userAPI, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", ana.ID), "")
	require.Equal(t, http.StatusOK, status)
	_, env = call(t, p.goals, http.MethodGet, path, "")
	assert.Equal(t, service.DisplayNameUserNotFound, decode[domain.GoalView](t, env.Data).UserName)

	// user service down: reads still answer, writes are refused
	p.users.Close()
	status, env = call(t, p.goals, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, service.DisplayNameUnavailable, decode[domain.GoalView](t, env.Data).UserName)
	status, _ = call(t, p.goals, http.MethodPost, "/api/v1/goals", body)
	assert.Equal(t, http.StatusNotFound, status)
	status, env = call(t, p.goals, http.MethodGet, "/api/v1/goals/users", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal error", env.Msg)

	// delete is reported once, then the goal is gone
	status, env = call(t, p.goals, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), fmt.Sprint(created.ID))
	status, _ = call(t, p.goals, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = call(t, p.goals, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestScenario_ValidationAndRouting(t *testing.T) {
	p := newPlatform(t)

	tests := []struct {
		name, method, path, body string
		status                   int
	}{
		{"missing title", http.MethodPost, "/api/v1/goals", `{"description":"d","dueDate":"2025-01-01","userId":1}`, 400},
		{"bad date", http.MethodPost, "/api/v1/goals", `{"title":"t","description":"d","dueDate":"2025/01/01","userId":1}`, 400},
		{"string user id", http.MethodPost, "/api/v1/goals", `{"title":"t","description":"d","dueDate":"2025-01-01","userId":"one"}`, 400},
		{"malformed json", http.MethodPost, "/api/v1/goals", `{"title":`, 400},
		{"non-numeric id", http.MethodGet, "/api/v1/goals/abc", "", 400},
		{"unknown goal", http.MethodGet, "/api/v1/goals/42", "", 404},
		{"unknown route", http.MethodGet, "/api/v2/goals", "", 404},
		{"empty list", http.MethodGet, "/api/v1/goals", "", 200},
		{"health", http.MethodGet, "/health", "", 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := call(t, p.goals, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
		})
	}

	t.Run("user service requires a service token", func(t *testing.T) {
		res, err := http.Get(p.users.URL + "/api/v1/users")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		w := httptest.NewRecorder()
		p.goals.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http_requests_total")
	})
}

func TestScenario_MisroutedUserServiceIsUnavailable(t *testing.T) {
	// an engine without the user module answers every lookup with a route miss
	srv := httptest.NewServer(NewEngine(Options{}))
	t.Cleanup(srv.Close)

	for _, base := range []string{srv.URL, srv.URL + "/prefix"} {
		gw, err := usergw.NewHTTPGateway(usergw.Options{BaseURL: base, Timeout: time.Second})
		require.NoError(t, err)
		_, err = gw.FetchUser(context.Background(), 1)
		assert.Equal(t, usergw.OutcomeUnavailable, usergw.Classify(err), base)
	}
}

func TestScenario_MissingUserIsNotFound(t *testing.T) {
	p := newPlatform(t)
	gw, err := usergw.NewHTTPGateway(usergw.Options{
		BaseURL: p.users.URL,
		Timeout: time.Second,
		Caller:  "goalsvc",
		Tokens:  &auth.JWTer{Secret: []byte("scenario-secret"), Issuer: "goals-platform", TTL: time.Minute},
	})
	require.NoError(t, err)
	_, err = gw.FetchUser(context.Background(), 404)
	assert.Equal(t, usergw.OutcomeNotFound, usergw.Classify(err))
}
