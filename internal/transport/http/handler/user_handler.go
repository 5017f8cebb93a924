package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goals-platform/internal/domain"
	"goals-platform/internal/service"
	"goals-platform/internal/transport/http/ez"
)

type UserHandler struct {
	Users *service.UserService
}

func (h *UserHandler) Priority() int { return 10 }

func (h *UserHandler) Mount(g *gin.RouterGroup) {
	users := g.Group("/users")

	ez.Register(users, ez.Action[struct{}, []domain.User]{
		Method: http.MethodGet, Path: "", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return h.Users.List(c.Request.Context())
		},
	})
	ez.Register(users, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet, Path: "/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.Users.Get(c.Request.Context(), id)
		},
	})
	ez.Register(users, ez.Action[struct{}, []domain.User]{
		Method: http.MethodGet, Path: "/name/:name", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return h.Users.FindByName(c.Request.Context(), c.Param("name"))
		},
	})
	ez.Register(users, ez.Action[service.CreateUserInput, *domain.User]{
		Method: http.MethodPost, Path: "", Binder: ez.BindJSON, Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.CreateUserInput) (*domain.User, error) {
			return h.Users.Create(c.Request.Context(), *in)
		},
	})
	ez.Register(users, ez.Action[service.UpdateUserInput, *domain.User]{
		Method: http.MethodPut, Path: "/:id", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.UpdateUserInput) (*domain.User, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.Users.Update(c.Request.Context(), id, *in)
		},
	})
	ez.Register(users, ez.Action[struct{}, deleted]{
		Method: http.MethodDelete, Path: "/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (deleted, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return deleted{}, err
			}
			if err := h.Users.Delete(c.Request.Context(), id); err != nil {
				return deleted{}, err
			}
			return deleted{ID: id, Message: "user deleted"}, nil
		},
	})
}
