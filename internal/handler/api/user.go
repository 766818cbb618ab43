package api

import (
	"net/http"

	reqdto "table-booking/internal/handler/dto/request"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	commands commands.UserCommands
	queries  queries.UserQueries
}

func NewUserHandler(userCommands commands.UserCommands, userQueries queries.UserQueries) *UserHandler {
	return &UserHandler{
		commands: userCommands,
		queries:  userQueries,
	}
}

// @Summary Register user
// @Tags users
// @Accept json
// @Produce json
// @Param request body reqdto.CreateUserRequest true "User"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req reqdto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithAppError(c, reqdto.BindingError(err))
		return
	}

	draft, err := req.ToDraft()
	if err != nil {
		httperr.AbortWithAppError(c, reqdto.DomainError(err))
		return
	}

	created, err := h.commands.RegisterUser(c.Request.Context(), draft)
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromUser(created))
}

// @Summary List users
// @Description All users, or the one registered under email
// @Tags users
// @Produce json
// @Param email query string false "Exact email"
// @Success 200 {array} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var q reqdto.ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithAppError(c, reqdto.BindingError(err))
		return
	}

	email, err := q.EmailFilter()
	if err != nil {
		httperr.AbortWithAppError(c, reqdto.DomainError(err))
		return
	}

	users, err := h.queries.ListUsers(c.Request.Context(), email)
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromUserViews(users))
}
