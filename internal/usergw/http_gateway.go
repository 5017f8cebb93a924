package usergw

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"goals-platform/internal/domain"
	resp "goals-platform/internal/transport/http/response"
)

const maxBodyBytes = 1 << 20

// TokenIssuer signs the service token sent with each call. *auth.JWTer
// satisfies it.
type TokenIssuer interface {
	Issue(service string) (string, error)
}

type Options struct {
	BaseURL string
	Timeout time.Duration // required; bounds every call
	Caller  string        // service name put in the token
	Tokens  TokenIssuer   // optional
	Client  *http.Client  // optional; Timeout is applied on top
	Logger  *zap.Logger
}

// HTTPGateway calls the user service's REST API. It holds no cache and
// does not coalesce calls; each lookup is one round trip without retry.
type HTTPGateway struct {
	baseURL string
	timeout time.Duration
	caller  string
	tokens  TokenIssuer
	client  *http.Client
	log     *zap.Logger
}

var _ Gateway = (*HTTPGateway)(nil)

func NewHTTPGateway(o Options) (*HTTPGateway, error) {
	if o.BaseURL == "" {
		return nil, fmt.Errorf("usergw: base url is required")
	}
	if o.Timeout <= 0 {
		return nil, fmt.Errorf("usergw: timeout must be positive")
	}
	client := o.Client
	if client == nil {
		client = &http.Client{}
	}
	c := *client
	c.Timeout = o.Timeout
	l := o.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(o.BaseURL, "/"),
		timeout: o.Timeout,
		caller:  o.Caller,
		tokens:  o.Tokens,
		client:  &c,
		log:     l.Named("usergw"),
	}, nil
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (g *HTTPGateway) FetchUser(ctx context.Context, id int64) (*domain.User, error) {
	const op = "fetch_user"
	start := time.Now()

	u, err := g.fetchUser(ctx, id)

	outcome := Classify(err)
	lookupTotal.WithLabelValues(op, string(outcome)).Inc()
	lookupLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	switch outcome {
	case OutcomeNotFound:
		g.log.Warn("user not found", zap.Int64("user_id", id))
	case OutcomeUnavailable:
		g.log.Error("user lookup failed",
			zap.Int64("user_id", id),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err))
	}
	return u, err
}

func (g *HTTPGateway) fetchUser(ctx context.Context, id int64) (*domain.User, error) {
	const op = "fetch_user"
	status, env, err := g.get(ctx, op, fmt.Sprintf("/api/v1/users/%d", id))
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound && env.Code == resp.CodeNotFound:
		if missingUser(env.Data, id) {
			return nil, ErrNotFound
		}
		return nil, unavailable(op, "404 does not name the requested user", nil)
	case status != http.StatusOK || env.Code != resp.CodeOK:
		return nil, unavailable(op, fmt.Sprintf("status %d code %d", status, env.Code), nil)
	}
	var u domain.User
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return nil, unavailable(op, "decode user", err)
	}
	if u.ID != id {
		return nil, unavailable(op, fmt.Sprintf("asked for user %d, got %d", id, u.ID), nil)
	}
	return &u, nil
}

// missingUser reports whether a 404 body names this user as the absent
// record. Route misses carry no such detail.
func missingUser(data json.RawMessage, id int64) bool {
	var m resp.Missing
	if err := json.Unmarshal(data, &m); err != nil {
		return false
	}
	return m.Resource == domain.ResourceUser && m.Key == strconv.FormatInt(id, 10)
}

func (g *HTTPGateway) ListUsers(ctx context.Context) ([]domain.User, error) {
	const op = "list_users"
	start := time.Now()
	users, err := g.listUsers(ctx)
	lookupTotal.WithLabelValues(op, string(Classify(err))).Inc()
	lookupLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		g.log.Error("user listing failed", zap.Error(err))
	}
	return users, err
}

func (g *HTTPGateway) listUsers(ctx context.Context) ([]domain.User, error) {
	const op = "list_users"
	status, env, err := g.get(ctx, op, "/api/v1/users")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || env.Code != resp.CodeOK {
		return nil, unavailable(op, fmt.Sprintf("status %d code %d", status, env.Code), nil)
	}
	var users []domain.User
	if err := json.Unmarshal(env.Data, &users); err != nil {
		return nil, unavailable(op, "decode users", err)
	}
	return users, nil
}

// get performs one bounded GET. A non-nil error is always an
// UnavailableError, including a body that is not an envelope.
func (g *HTTPGateway) get(ctx context.Context, op, path string) (int, envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return 0, envelope{}, unavailable(op, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if g.tokens != nil {
		tok, err := g.tokens.Issue(g.caller)
		if err != nil {
			return 0, envelope{}, unavailable(op, "issue service token", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := g.client.Do(req)
	if err != nil {
		return 0, envelope{}, unavailable(op, "transport", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return res.StatusCode, envelope{}, unavailable(op, "read body", err)
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return res.StatusCode, envelope{}, unavailable(op, fmt.Sprintf("status %d: malformed body", res.StatusCode), err)
	}
	return res.StatusCode, env, nil
}
