package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - job browsing requires no authentication
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
		publicJobs.POST("/:id/view", handler.RegisterView)
	}

	// Employer-only job management
	employerJobs := protected.Group("/employers/jobs", middleware.RequireRole(domain.RoleEmployer))
	{
		employerJobs.GET("", handler.ListByEmployer)
		employerJobs.POST("", handler.Create)
		employerJobs.PUT("/:id", handler.Update)
		employerJobs.DELETE("/:id", handler.Delete)
	}
}

type CreateJobRequest struct {
	Title               string     `json:"title" binding:"required"`
	CompanyName         string     `json:"company_name" binding:"required"`
	Location            string     `json:"location"`
	Salary              string     `json:"salary"`
	SalaryMin           int64      `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax           int64      `json:"salary_max" binding:"omitempty,gte=0,gtefield=SalaryMin"`
	Category            string     `json:"category" binding:"required"`
	Type                string     `json:"type"`
	Description         string     `json:"description" binding:"required"`
	ExperienceLevel     string     `json:"experience_level"`
	RequiredSkills      string     `json:"required_skills"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	CaptchaToken        string     `json:"captcha_token"`
}

// Create godoc
// @Summary      Create a job posting
// @Description  Creates a job for the authenticated employer. Requires a CAPTCHA token when verification is configured.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /employers/jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	job := req.toDomain()

	if err := h.jobUC.CreateJob(c.Request.Context(), userID, job, req.CaptchaToken); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

func (r *CreateJobRequest) toDomain() *domain.Job {
	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}
	return &domain.Job{
		Title:               r.Title,
		CompanyName:         r.CompanyName,
		Location:            r.Location,
		Salary:              r.Salary,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		Category:            r.Category,
		Type:                r.Type,
		Description:         r.Description,
		ExperienceLevel:     toPtr(r.ExperienceLevel),
		RequiredSkills:      toPtr(r.RequiredSkills),
		ApplicationDeadline: r.ApplicationDeadline,
	}
}

// List godoc
// @Summary      List jobs
// @Description  Public job listing with optional category, type, location, and keyword filters
// @Tags         jobs
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        type      query     string  false  "Employment type filter"
// @Param        location  query     string  false  "Location substring filter"
// @Param        q         query     string  false  "Keyword across title, company, description"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        page_size query     int     false  "Page size (default 20)"
// @Success      200       {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	filter := domain.JobFilter{
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Location: c.Query("location"),
		Keyword:  c.Query("q"),
	}
	page, pageSize := pagination(c)

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Jobs retrieved", jobs, total, page, pageSize)
}

// GetDetails godoc
// @Summary      Job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// RegisterView godoc
// @Summary      Record a job view
// @Description  Increments the job's view counter. Always returns 202; counting is best-effort.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      202  {object}  response.Response
// @Router       /jobs/{id}/view [post]
func (h *JobHandler) RegisterView(c *gin.Context) {
	h.jobUC.RegisterView(c.Request.Context(), c.Param("id"))
	response.Success(c, http.StatusAccepted, "View recorded", nil)
}

// ListByEmployer godoc
// @Summary      List own job postings
// @Tags         jobs
// @Produce      json
// @Param        page      query     int  false  "Page number"
// @Param        page_size query     int  false  "Page size"
// @Success      200       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Router       /employers/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListByEmployer(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, pageSize := pagination(c)

	jobs, total, err := h.jobUC.ListJobsByEmployer(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Jobs retrieved", jobs, total, page, pageSize)
}

// Update godoc
// @Summary      Update a job posting
// @Description  Updates a job owned by the authenticated employer
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string            true  "Job ID"
// @Param        job  body      CreateJobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	job := req.toDomain()
	job.ID = c.Param("id")

	if err := h.jobUC.UpdateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete a job posting
// @Description  Deletes a job owned by the authenticated employer
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.jobUC.DeleteJob(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// pagination reads page/page_size query params with defaults.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}
