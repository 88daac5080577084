package v1

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/upload"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

// NewProfileHandler registers profile routes. The legacy group keeps the old
// client path /api/upload-avatar working.
func NewProfileHandler(protected *gin.RouterGroup, legacy *gin.RouterGroup, profileUC domain.ProfileUsecase, uploadLimiter gin.HandlerFunc) {
	handler := &ProfileHandler{profileUC: profileUC}

	profiles := protected.Group("/profiles")
	{
		profiles.GET("/me", handler.Me)
		profiles.POST("/avatar", uploadLimiter, handler.UploadAvatar)
	}

	seekers := protected.Group("/seekers")
	{
		seekers.GET("/profile", handler.GetSeekerProfile)
		seekers.PUT("/profile", handler.UpdateSeekerProfile)
	}

	employers := protected.Group("/employers")
	{
		employers.GET("/profile", handler.GetEmployerProfile)
		employers.PUT("/profile", handler.UpdateEmployerProfile)
		employers.POST("/profile/logo", uploadLimiter, handler.UploadCompanyLogo)
	}

	legacy.POST("/upload-avatar", uploadLimiter, handler.UploadAvatar)
}

type UpdateSeekerProfileRequest struct {
	Bio              *string  `json:"bio"`
	Location         *string  `json:"location"`
	Skills           []string `json:"skills"`
	PhoneNumber      *string  `json:"phone_number" binding:"omitempty,valid_phone"`
	LinkedinURL      *string  `json:"linkedin_url" binding:"omitempty,valid_link"`
	GithubURL        *string  `json:"github_url" binding:"omitempty,valid_link"`
	PortfolioURL     *string  `json:"portfolio_url" binding:"omitempty,valid_link"`
	JobAlertsEnabled bool     `json:"job_alerts_enabled"`
}

type UpdateEmployerProfileRequest struct {
	CompanyName        string  `json:"company_name" binding:"required,valid_name,no_emoji"`
	CompanyWebsite     *string `json:"company_website" binding:"omitempty,valid_link"`
	CompanyDescription *string `json:"company_description"`
	Location           *string `json:"location"`
}

// Me godoc
// @Summary      Own profile by role
// @Description  Returns the seeker or employer profile matching the caller's role.
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /profiles/me [get]
// @Security     BearerAuth
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	switch role {
	case domain.RoleJobSeeker:
		profile, err := h.profileUC.GetSeekerProfile(c.Request.Context(), userID)
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "Profile retrieved", profile)
	case domain.RoleEmployer:
		profile, err := h.profileUC.GetEmployerProfile(c.Request.Context(), userID)
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "Profile retrieved", profile)
	default:
		c.Error(apperror.BadRequest("Select a role first"))
	}
}

// GetSeekerProfile godoc
// @Summary      Seeker profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /seekers/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetSeekerProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.GetSeekerProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateSeekerProfile godoc
// @Summary      Update seeker profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateSeekerProfileRequest  true  "Profile fields"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /seekers/profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateSeekerProfile(c *gin.Context) {
	var req UpdateSeekerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	profile := &domain.JobSeekerProfile{
		Bio:              req.Bio,
		Location:         req.Location,
		Skills:           req.Skills,
		PhoneNumber:      req.PhoneNumber,
		LinkedinURL:      req.LinkedinURL,
		GithubURL:        req.GithubURL,
		PortfolioURL:     req.PortfolioURL,
		JobAlertsEnabled: req.JobAlertsEnabled,
	}

	if err := h.profileUC.UpdateSeekerProfile(c.Request.Context(), userID, profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// GetEmployerProfile godoc
// @Summary      Employer profile
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /employers/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetEmployerProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.GetEmployerProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateEmployerProfile godoc
// @Summary      Update employer profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateEmployerProfileRequest  true  "Profile fields"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /employers/profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateEmployerProfile(c *gin.Context) {
	if role := c.GetString(string(domain.KeyUserRole)); role != domain.RoleEmployer {
		c.Error(apperror.Forbidden("Only employers can update a company profile"))
		return
	}

	var req UpdateEmployerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	profile := &domain.EmployerProfile{
		CompanyName:        req.CompanyName,
		CompanyWebsite:     req.CompanyWebsite,
		CompanyDescription: req.CompanyDescription,
		Location:           req.Location,
	}

	if err := h.profileUC.UpdateEmployerProfile(c.Request.Context(), userID, profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// UploadAvatar godoc
// @Summary      Upload avatar
// @Description  Accepts a JPEG, PNG, or WebP image (multipart field "file", max 5MB), stores a downscaled copy, and returns the public URL.
// @Tags         profiles
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /profiles/avatar [post]
// @Security     BearerAuth
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	file, err := readImageForm(c)
	if err != nil {
		c.Error(err)
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	url, err := h.profileUC.UploadAvatar(c.Request.Context(), userID, file)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Avatar uploaded", gin.H{"url": url})
}

// UploadCompanyLogo godoc
// @Summary      Upload company logo
// @Tags         profiles
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /employers/profile/logo [post]
// @Security     BearerAuth
func (h *ProfileHandler) UploadCompanyLogo(c *gin.Context) {
	if role := c.GetString(string(domain.KeyUserRole)); role != domain.RoleEmployer {
		c.Error(apperror.Forbidden("Only employers can upload a company logo"))
		return
	}

	file, err := readImageForm(c)
	if err != nil {
		c.Error(err)
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	url, err := h.profileUC.UploadCompanyLogo(c.Request.Context(), userID, file)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Logo uploaded", gin.H{"url": url})
}

// readImageForm reads the multipart "file" field with the size cap applied
// before buffering.
func readImageForm(c *gin.Context) (*domain.FileUpload, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, apperror.BadRequest("No file provided")
	}
	if fileHeader.Size > upload.MaxFileSize {
		return nil, apperror.BadRequest("File size must not exceed 5MB")
	}

	var f multipart.File
	if f, err = fileHeader.Open(); err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, upload.MaxFileSize+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.FileUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
