package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goals-platform/internal/domain"
	"goals-platform/internal/service"
	"goals-platform/internal/transport/http/ez"
)

type GoalHandler struct {
	Goals *service.GoalService
	Users *service.UserDirectory
}

type deleted struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func (h *GoalHandler) Priority() int { return 10 }

// Mount registers the goal routes on g, which is expected to be /api/v1.
func (h *GoalHandler) Mount(g *gin.RouterGroup) {
	goals := g.Group("/goals")

	ez.Register(goals, ez.Action[struct{}, []domain.GoalView]{
		Method: http.MethodGet, Path: "", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.GoalView, error) {
			return h.Goals.List(c.Request.Context())
		},
	})
	ez.Register(goals, ez.Action[struct{}, domain.GoalView]{
		Method: http.MethodGet, Path: "/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.GoalView, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return domain.GoalView{}, err
			}
			return h.Goals.Get(c.Request.Context(), id)
		},
	})
	ez.Register(goals, ez.Action[struct{}, []domain.GoalView]{
		Method: http.MethodGet, Path: "/title/:title", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.GoalView, error) {
			return h.Goals.FindByTitle(c.Request.Context(), c.Param("title"))
		},
	})
	ez.Register(goals, ez.Action[struct{}, []domain.GoalView]{
		Method: http.MethodGet, Path: "/user/:userId", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.GoalView, error) {
			uid, err := ez.ParamID(c, "userId")
			if err != nil {
				return nil, err
			}
			return h.Goals.ListByUser(c.Request.Context(), uid)
		},
	})
	ez.Register(goals, ez.Action[service.CreateGoalInput, domain.GoalView]{
		Method: http.MethodPost, Path: "", Binder: ez.BindJSON, Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.CreateGoalInput) (domain.GoalView, error) {
			return h.Goals.Create(c.Request.Context(), *in)
		},
	})
	ez.Register(goals, ez.Action[service.UpdateGoalInput, domain.GoalView]{
		Method: http.MethodPut, Path: "/:id", Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.UpdateGoalInput) (domain.GoalView, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return domain.GoalView{}, err
			}
			return h.Goals.Update(c.Request.Context(), id, *in)
		},
	})
	ez.Register(goals, ez.Action[struct{}, deleted]{
		Method: http.MethodDelete, Path: "/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (deleted, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return deleted{}, err
			}
			if err := h.Goals.Delete(c.Request.Context(), id); err != nil {
				return deleted{}, err
			}
			return deleted{ID: id, Message: "goal deleted"}, nil
		},
	})

	// user directory, read through the gateway
	ez.Register(goals, ez.Action[struct{}, []domain.User]{
		Method: http.MethodGet, Path: "/users", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return h.Users.List(c.Request.Context())
		},
	})
	ez.Register(goals, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet, Path: "/users/:id", Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			return h.Users.Get(c.Request.Context(), id)
		},
	})
}
