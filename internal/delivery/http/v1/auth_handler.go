package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	users := protected.Group("/users")
	{
		users.GET("/me", handler.Me)
		users.POST("/role", handler.SetRole)
	}
}

type SetRoleRequest struct {
	Role      string `json:"role" binding:"required,oneof=job_seeker employer"`
	FullName  string `json:"full_name" binding:"omitempty,valid_name,no_emoji"`
	AvatarURL string `json:"avatar_url"`
}

// Me godoc
// @Summary      Current user
// @Description  Returns the authenticated user's profile row
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", user)
}

// SetRole godoc
// @Summary      Select account role
// @Description  Assigns job_seeker or employer to the authenticated user. Idempotent upsert so OAuth users without a profile row can complete signup.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        role  body      SetRoleRequest  true  "Role selection"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /users/role [post]
// @Security     BearerAuth
func (h *AuthHandler) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	email := c.GetString(string(domain.KeyUserEmail))

	user, err := h.authUC.SetRole(c.Request.Context(), userID, email, req.FullName, req.AvatarURL, req.Role)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Role updated", user)
}
