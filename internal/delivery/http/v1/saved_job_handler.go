package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type SavedJobHandler struct {
	savedUC domain.SavedJobUsecase
}

func NewSavedJobHandler(protected *gin.RouterGroup, savedUC domain.SavedJobUsecase) {
	handler := &SavedJobHandler{savedUC: savedUC}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("/:id/save", handler.ToggleSave)
		jobs.GET("/:id/saved", handler.GetStatus)
	}

	protected.GET("/seekers/saved-jobs", handler.ListSaved)
}

// ToggleSave godoc
// @Summary      Toggle saved state of a job
// @Description  Saves the job when unsaved, removes it otherwise. Returns the resulting action.
// @Tags         saved-jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/save [post]
// @Security     BearerAuth
func (h *SavedJobHandler) ToggleSave(c *gin.Context) {
	if role := c.GetString(string(domain.KeyUserRole)); role != domain.RoleJobSeeker {
		c.Error(apperror.Forbidden("Only job seekers can save jobs"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	action, err := h.savedUC.ToggleSave(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved state updated", gin.H{"action": action})
}

// GetStatus godoc
// @Summary      Saved state of a job
// @Tags         saved-jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Router       /jobs/{id}/saved [get]
// @Security     BearerAuth
func (h *SavedJobHandler) GetStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	saved, err := h.savedUC.GetSavedStatus(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved state retrieved", gin.H{"saved": saved})
}

// ListSaved godoc
// @Summary      List saved jobs
// @Tags         saved-jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /seekers/saved-jobs [get]
// @Security     BearerAuth
func (h *SavedJobHandler) ListSaved(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	saved, err := h.savedUC.ListSaved(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved jobs retrieved", saved)
}
