package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
)

type MockJobUsecase struct{ mock.Mock }

func (m *MockJobUsecase) CreateJob(ctx context.Context, userID string, job *domain.Job, captchaToken string) error {
	return m.Called(ctx, userID, job, captchaToken).Error(0)
}

func (m *MockJobUsecase) GetJobDetails(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter, page, pageSize int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobUsecase) ListJobsByEmployer(ctx context.Context, userID string, page, pageSize int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobUsecase) UpdateJob(ctx context.Context, userID string, job *domain.Job) error {
	return m.Called(ctx, userID, job).Error(0)
}

func (m *MockJobUsecase) DeleteJob(ctx context.Context, userID, jobID string) error {
	return m.Called(ctx, userID, jobID).Error(0)
}

func (m *MockJobUsecase) RegisterView(ctx context.Context, jobID string) {
	m.Called(ctx, jobID)
}

// newJobRouter mounts the job routes behind a stub auth context with the
// given role attached, the way AuthMiddleware would after token validation.
func newJobRouter(role string, uc domain.JobUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(string(domain.KeyUserID), "user-1")
		c.Set(string(domain.KeyUserRole), role)
	})
	v1.NewJobHandler(r.Group("/v1"), r.Group("/v1"), uc)
	return r
}

const validJobBody = `{
	"title": "Backend Engineer",
	"company_name": "Acme",
	"category": "Engineering",
	"description": "Build APIs"
}`

func TestJobRoutesRequireEmployerRole(t *testing.T) {
	t.Run("seeker cannot create a job", func(t *testing.T) {
		uc := new(MockJobUsecase)
		r := newJobRouter(domain.RoleJobSeeker, uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/employers/jobs", strings.NewReader(validJobBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		uc.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("seeker cannot update a job", func(t *testing.T) {
		uc := new(MockJobUsecase)
		r := newJobRouter(domain.RoleJobSeeker, uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/v1/employers/jobs/job-1", strings.NewReader(validJobBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		uc.AssertNotCalled(t, "UpdateJob", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("seeker cannot delete a job", func(t *testing.T) {
		uc := new(MockJobUsecase)
		r := newJobRouter(domain.RoleJobSeeker, uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/employers/jobs/job-1", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		uc.AssertNotCalled(t, "DeleteJob", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("user without a role is rejected", func(t *testing.T) {
		uc := new(MockJobUsecase)
		r := newJobRouter("", uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/employers/jobs", strings.NewReader(validJobBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		uc.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("employer creates a job", func(t *testing.T) {
		uc := new(MockJobUsecase)
		uc.On("CreateJob", mock.Anything, "user-1", mock.AnythingOfType("*domain.Job"), "").Return(nil)
		r := newJobRouter(domain.RoleEmployer, uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/employers/jobs", strings.NewReader(validJobBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("public listing needs no role", func(t *testing.T) {
		uc := new(MockJobUsecase)
		uc.On("ListJobs", mock.Anything, mock.Anything, 1, 20).Return([]domain.Job{}, int64(0), nil)
		r := newJobRouter("", uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/jobs", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
