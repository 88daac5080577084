package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/upload"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase, uploadLimiter gin.HandlerFunc) {
	handler := &ApplicationHandler{appUC: appUC}

	seekers := protected.Group("/seekers")
	{
		seekers.POST("/jobs/:id/apply", uploadLimiter, handler.Apply)
		seekers.GET("/applications", handler.MyApplications)
	}

	employers := protected.Group("/employers")
	{
		employers.GET("/jobs/:id/applications", handler.ListByJob)
		employers.GET("/applications/:id", handler.GetDetail)
	}
}

// Apply godoc
// @Summary      Apply for a job
// @Description  Submits an application with an optional CV (multipart field "cv", max 5MB) and cover letter. One application per job per seeker.
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        id            path      string  true   "Job ID"
// @Param        cv            formData  file    false  "CV file (PDF, DOC, DOCX)"
// @Param        cover_letter  formData  string  false  "Cover letter text"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /seekers/jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	if role := c.GetString(string(domain.KeyUserRole)); role != domain.RoleJobSeeker {
		c.Error(apperror.Forbidden("Only job seekers can apply for jobs"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	jobID := c.Param("id")
	coverLetter := c.PostForm("cover_letter")

	var cv *domain.FileUpload
	fileHeader, err := c.FormFile("cv")
	if err == nil && fileHeader != nil {
		if fileHeader.Size > upload.MaxFileSize {
			c.Error(apperror.BadRequest("File size must not exceed 5MB"))
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			c.Error(apperror.Internal(err))
			return
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, upload.MaxFileSize+1))
		if err != nil {
			c.Error(apperror.Internal(err))
			return
		}
		cv = &domain.FileUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	app, err := h.appUC.Apply(c.Request.Context(), userID, jobID, cv, coverLetter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// MyApplications godoc
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /seekers/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	apps, err := h.appUC.GetMyApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// ListByJob godoc
// @Summary      List applications for a job
// @Description  Returns applications for a job owned by the authenticated employer
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	apps, err := h.appUC.ListByJobID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}

// GetDetail godoc
// @Summary      Application detail
// @Description  Returns one application, restricted to the owner of its job
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetail(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	app, err := h.appUC.GetApplicationDetail(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}
