package ez

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"goals-platform/internal/domain"
	resp "goals-platform/internal/transport/http/response"
)

// Binder selects where an action's input comes from.
type Binder string

const (
	BindJSON Binder = "json"
	BindNone Binder = "none" // the handler reads c.Param itself
)

// AErr is an error that already knows its envelope code.
type AErr struct {
	Code int
	Msg  string
	Err  error
	Data any // envelope data; empty object when nil
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: "internal error", Err: err}
}

// FromError maps service errors onto envelope codes. Anything unrecognized
// becomes an opaque 500; its detail stays in the logs.
func FromError(err error) *AErr {
	var (
		ae  *AErr
		ve  *domain.ValidationError
		re  *domain.ReferenceError
		nfe *domain.NotFoundError
	)
	switch {
	case errors.As(err, &ae):
		return ae
	case errors.As(err, &ve):
		return &AErr{Code: resp.CodeBadRequest, Msg: ve.Error(), Err: err}
	case errors.As(err, &re):
		return &AErr{Code: resp.CodeNotFound, Msg: re.Error(), Err: err}
	case errors.As(err, &nfe):
		return &AErr{
			Code: resp.CodeNotFound,
			Msg:  nfe.Error(),
			Err:  err,
			Data: resp.Missing{Resource: nfe.Resource, Key: nfe.Key},
		}
	default:
		return &AErr{Code: resp.CodeServerError, Msg: "internal error", Err: err}
	}
}

// Action is one route: I is the bound input, O the envelope data.
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	Status  int // success status; 200 when zero
	Handler func(c *gin.Context, in *I) (O, error)
}

// Register mounts a on g. Errors are attached to the gin context so the
// access log records the cause.
func Register[I any, O any](g gin.IRoutes, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}
	h := func(c *gin.Context) {
		var in I
		if a.Binder == BindJSON {
			if err := c.ShouldBindJSON(&in); err != nil {
				Abort(c, bindError(err))
				return
			}
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			Abort(c, err)
			return
		}
		c.JSON(status, resp.OK(out))
	}
	g.Handle(strings.ToUpper(a.Method), a.Path, h)
}

// Abort writes err as an envelope whose code matches the HTTP status.
func Abort(c *gin.Context, err error) {
	ae := FromError(err)
	if ae.Err != nil {
		_ = c.Error(ae.Err)
	}
	body := resp.Error(ae.Code, ae.Error())
	if ae.Data != nil {
		body.Data = ae.Data
	}
	c.AbortWithStatusJSON(resp.HTTPStatus(ae.Code), body)
}

func bindError(err error) error {
	var (
		te *json.UnmarshalTypeError
		se *json.SyntaxError
	)
	switch {
	case errors.Is(err, io.EOF):
		return BadRequest("request body is required")
	case errors.As(err, &te):
		return &domain.ValidationError{Field: te.Field, Message: "must be of type " + te.Type.String()}
	case errors.As(err, &se):
		return BadRequest("malformed JSON body")
	default:
		return BadRequest("invalid request body")
	}
}

// ParamID reads a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Message: fmt.Sprintf("must be a positive integer, got %q", c.Param(name))}
	}
	return id, nil
}
