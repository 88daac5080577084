package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/captcha"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.AppUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppUser), args.Error(1)
}

func (m *MockUserRepo) Upsert(ctx context.Context, user *domain.AppUser) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	return m.Called(ctx, userID, avatarURL).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchByEmployer(ctx context.Context, employerID string, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, employerID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) Delete(ctx context.Context, id, employerID string) error {
	return m.Called(ctx, id, employerID).Error(0)
}

func (m *MockJobRepo) IncrementViews(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) FetchPostedSince(ctx context.Context, since time.Time, limit int) ([]domain.Job, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

type MockEmployerProfileRepo struct {
	mock.Mock
}

func (m *MockEmployerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}

func (m *MockEmployerProfileRepo) Upsert(ctx context.Context, profile *domain.EmployerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	args := m.Called(ctx, jobID, applicantID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByApplicantID(ctx context.Context, applicantID string) ([]domain.Application, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

type MockSavedJobRepo struct {
	mock.Mock
}

func (m *MockSavedJobRepo) Create(ctx context.Context, saved *domain.SavedJob) error {
	return m.Called(ctx, saved).Error(0)
}

func (m *MockSavedJobRepo) Delete(ctx context.Context, userID, jobID string) error {
	return m.Called(ctx, userID, jobID).Error(0)
}

func (m *MockSavedJobRepo) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	args := m.Called(ctx, userID, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedJobRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedJob), args.Error(1)
}

type MockConversationRepo struct {
	mock.Mock
}

func (m *MockConversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	return m.Called(ctx, conv).Error(0)
}

func (m *MockConversationRepo) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepo) FindByTriple(ctx context.Context, employerID, seekerID string, jobID *string) (*domain.Conversation, error) {
	args := m.Called(ctx, employerID, seekerID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *MockConversationRepo) Touch(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockMessageRepo) ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, id int64, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, bucket, key, data, contentType)
	return args.String(0), args.Error(1)
}

type fakeCaptcha struct {
	configured bool
	err        error
}

func (f *fakeCaptcha) Verify(_ context.Context, _ string) error { return f.err }
func (f *fakeCaptcha) IsConfigured() bool                       { return f.configured }

func strPtr(s string) *string { return &s }

// Tests

func TestSetRole(t *testing.T) {
	mockUsers := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockUsers)

	t.Run("Should reject unknown roles", func(t *testing.T) {
		_, err := uc.SetRole(context.Background(), "u1", "a@b.com", "", "", "admin")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "job_seeker or employer")
	})

	t.Run("Should upsert and derive name from email", func(t *testing.T) {
		mockUsers.On("Upsert", mock.Anything, mock.MatchedBy(func(u *domain.AppUser) bool {
			return u.ID == "u1" && u.Role == domain.RoleJobSeeker && u.FullName == "jane.doe"
		})).Return(nil).Once()

		user, err := uc.SetRole(context.Background(), "u1", "jane.doe@example.com", "", "", domain.RoleJobSeeker)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleJobSeeker, user.Role)
		mockUsers.AssertExpectations(t)
	})
}

func TestCreateJob(t *testing.T) {
	t.Run("Should require an employer profile", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockEmployers := new(MockEmployerProfileRepo)
		mockEmployers.On("GetByUserID", mock.Anything, "emp1").Return(nil, domain.ErrNotFound)

		uc := usecase.NewJobUsecase(mockJobs, mockEmployers, &fakeCaptcha{})
		err := uc.CreateJob(context.Background(), "emp1", &domain.Job{
			Title: "Go Engineer", CompanyName: "Acme", Category: "Engineering", Description: "Build things",
		}, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "company profile")
		mockJobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject failed CAPTCHA before touching storage", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockEmployers := new(MockEmployerProfileRepo)

		uc := usecase.NewJobUsecase(mockJobs, mockEmployers, &fakeCaptcha{configured: true, err: captcha.ErrNotVerified})
		err := uc.CreateJob(context.Background(), "emp1", &domain.Job{
			Title: "Go Engineer", CompanyName: "Acme", Category: "Engineering", Description: "Build things",
		}, "bad-token")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "CAPTCHA")
		mockEmployers.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})

	t.Run("Should assign an ID and the owner on create", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockEmployers := new(MockEmployerProfileRepo)
		mockEmployers.On("GetByUserID", mock.Anything, "emp1").Return(&domain.EmployerProfile{UserID: "emp1", CompanyName: "Acme"}, nil)
		mockJobs.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.Job) bool {
			return j.ID != "" && j.EmployerID == "emp1"
		})).Return(nil).Once()

		uc := usecase.NewJobUsecase(mockJobs, mockEmployers, &fakeCaptcha{})
		err := uc.CreateJob(context.Background(), "emp1", &domain.Job{
			Title: "Go Engineer", CompanyName: "Acme", Category: "Engineering", Description: "Build things",
		}, "")
		assert.NoError(t, err)
		mockJobs.AssertExpectations(t)
	})

	t.Run("Should surface not-found on deleting someone else's job", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockEmployers := new(MockEmployerProfileRepo)
		mockJobs.On("Delete", mock.Anything, "job1", "intruder").Return(domain.ErrNotFound)

		uc := usecase.NewJobUsecase(mockJobs, mockEmployers, &fakeCaptcha{})
		err := uc.DeleteJob(context.Background(), "intruder", "job1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestApply(t *testing.T) {
	job := &domain.Job{ID: "job1", EmployerID: "emp1", Title: "Go Engineer"}

	newUC := func(apps *MockApplicationRepo, jobs *MockJobRepo, store *MockStorage, notifs *MockNotificationRepo) domain.ApplicationUsecase {
		notifier := usecase.NewNotificationUsecase(notifs, nil)
		return usecase.NewApplicationUsecase(apps, jobs, store, notifier, "resumes")
	}

	t.Run("Should reject oversized CV before any storage call", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockStore := new(MockStorage)
		mockNotifs := new(MockNotificationRepo)
		mockJobs.On("GetByID", mock.Anything, "job1").Return(job, nil)
		mockApps.On("Exists", mock.Anything, "job1", "seeker1").Return(false, nil)

		uc := newUC(mockApps, mockJobs, mockStore, mockNotifs)
		cv := &domain.FileUpload{Filename: "cv.pdf", ContentType: "application/pdf", Data: make([]byte, 5*1024*1024+1)}
		_, err := uc.Apply(context.Background(), "seeker1", "job1", cv, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "5MB")
		mockStore.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockApps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject applying to own job", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, "job1").Return(job, nil)

		uc := newUC(mockApps, mockJobs, new(MockStorage), new(MockNotificationRepo))
		_, err := uc.Apply(context.Background(), "emp1", "job1", nil, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own job")
	})

	t.Run("Should detect a duplicate before touching storage", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockStore := new(MockStorage)
		mockJobs.On("GetByID", mock.Anything, "job1").Return(job, nil)
		mockApps.On("Exists", mock.Anything, "job1", "seeker1").Return(true, nil)

		uc := newUC(mockApps, mockJobs, mockStore, new(MockNotificationRepo))
		cv := &domain.FileUpload{Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.7 test")}
		_, err := uc.Apply(context.Background(), "seeker1", "job1", cv, "")
		assert.Error(t, err)
		assert.Equal(t, "You have already applied for this job.", err.Error())
		mockStore.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockApps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should map a concurrent duplicate insert to the known message", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, "job1").Return(job, nil)
		mockApps.On("Exists", mock.Anything, "job1", "seeker1").Return(false, nil)
		mockApps.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAlreadyExists)

		uc := newUC(mockApps, mockJobs, new(MockStorage), new(MockNotificationRepo))
		_, err := uc.Apply(context.Background(), "seeker1", "job1", nil, "")
		assert.Error(t, err)
		assert.Equal(t, "You have already applied for this job.", err.Error())
	})

	t.Run("Should notify the employer with a link to the application", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockNotifs := new(MockNotificationRepo)
		mockJobs.On("GetByID", mock.Anything, "job1").Return(job, nil)
		mockApps.On("Exists", mock.Anything, "job1", "seeker1").Return(false, nil)

		var createdID string
		mockApps.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Application) bool {
			createdID = a.ID
			return a.Status == domain.ApplicationStatusNew && a.ApplicantID == "seeker1"
		})).Return(nil).Once()
		mockNotifs.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == "emp1" &&
				n.Kind == domain.NotificationKindSystem &&
				n.LinkURL != nil && *n.LinkURL == "/dashboard/applications/"+createdID
		})).Return(nil).Once()

		uc := newUC(mockApps, mockJobs, new(MockStorage), mockNotifs)
		app, err := uc.Apply(context.Background(), "seeker1", "job1", nil, "  I would love this role.  ")
		assert.NoError(t, err)
		assert.NotNil(t, app.CoverLetter)
		assert.Equal(t, "I would love this role.", *app.CoverLetter)
		mockNotifs.AssertExpectations(t)
	})

	t.Run("Should keep the application when notification insert fails", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockNotifs := new(MockNotificationRepo)
		mockJobs.On("GetByID", mock.Anything, "job1").Return(job, nil)
		mockApps.On("Exists", mock.Anything, "job1", "seeker1").Return(false, nil)
		mockApps.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockNotifs.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		uc := newUC(mockApps, mockJobs, new(MockStorage), mockNotifs)
		app, err := uc.Apply(context.Background(), "seeker1", "job1", nil, "")
		assert.NoError(t, err)
		assert.NotNil(t, app)
	})

	t.Run("Should restrict application lists to the job owner", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, "job1").Return(job, nil)

		uc := newUC(mockApps, mockJobs, new(MockStorage), new(MockNotificationRepo))
		_, err := uc.ListByJobID(context.Background(), "someone-else", "job1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "do not own")
		mockApps.AssertNotCalled(t, "GetByJobID", mock.Anything, mock.Anything)
	})
}

func TestToggleSave(t *testing.T) {
	job := &domain.Job{ID: "job1", EmployerID: "emp1"}

	t.Run("Should save when not saved yet", func(t *testing.T) {
		mockSaved := new(MockSavedJobRepo)
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, "job1").Return(job, nil)
		mockSaved.On("Exists", mock.Anything, "seeker1", "job1").Return(false, nil)
		mockSaved.On("Create", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewSavedJobUsecase(mockSaved, mockJobs)
		action, err := uc.ToggleSave(context.Background(), "seeker1", "job1")
		assert.NoError(t, err)
		assert.Equal(t, domain.SaveActionSaved, action)
	})

	t.Run("Should remove when already saved", func(t *testing.T) {
		mockSaved := new(MockSavedJobRepo)
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, "job1").Return(job, nil)
		mockSaved.On("Exists", mock.Anything, "seeker1", "job1").Return(true, nil)
		mockSaved.On("Delete", mock.Anything, "seeker1", "job1").Return(nil)

		uc := usecase.NewSavedJobUsecase(mockSaved, mockJobs)
		action, err := uc.ToggleSave(context.Background(), "seeker1", "job1")
		assert.NoError(t, err)
		assert.Equal(t, domain.SaveActionRemoved, action)
	})

	t.Run("Should treat a lost save race as saved", func(t *testing.T) {
		mockSaved := new(MockSavedJobRepo)
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", mock.Anything, "job1").Return(job, nil)
		mockSaved.On("Exists", mock.Anything, "seeker1", "job1").Return(false, nil)
		mockSaved.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAlreadyExists)

		uc := usecase.NewSavedJobUsecase(mockSaved, mockJobs)
		action, err := uc.ToggleSave(context.Background(), "seeker1", "job1")
		assert.NoError(t, err)
		assert.Equal(t, domain.SaveActionSaved, action)
	})
}

func TestStartConversation(t *testing.T) {
	newUC := func(convs *MockConversationRepo, users *MockUserRepo) domain.MessagingUsecase {
		notifier := usecase.NewNotificationUsecase(new(MockNotificationRepo), nil)
		return usecase.NewMessagingUsecase(convs, new(MockMessageRepo), users, notifier, nil)
	}

	t.Run("Should return the existing conversation for the triple", func(t *testing.T) {
		mockConvs := new(MockConversationRepo)
		mockUsers := new(MockUserRepo)
		existing := &domain.Conversation{ID: "conv1", EmployerID: "emp1", SeekerID: "seeker1"}
		mockUsers.On("GetByID", mock.Anything, "emp1").Return(&domain.AppUser{ID: "emp1"}, nil)
		mockConvs.On("FindByTriple", mock.Anything, "emp1", "seeker1", (*string)(nil)).Return(existing, nil)

		uc := newUC(mockConvs, mockUsers)
		conv, err := uc.StartConversation(context.Background(), "seeker1", domain.RoleJobSeeker, "emp1", nil)
		assert.NoError(t, err)
		assert.Equal(t, "conv1", conv.ID)
		mockConvs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should converge on the winner after losing a create race", func(t *testing.T) {
		mockConvs := new(MockConversationRepo)
		mockUsers := new(MockUserRepo)
		winner := &domain.Conversation{ID: "winner", EmployerID: "emp1", SeekerID: "seeker1"}
		mockUsers.On("GetByID", mock.Anything, "seeker1").Return(&domain.AppUser{ID: "seeker1"}, nil)
		mockConvs.On("FindByTriple", mock.Anything, "emp1", "seeker1", (*string)(nil)).Return(nil, domain.ErrNotFound).Once()
		mockConvs.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAlreadyExists)
		mockConvs.On("FindByTriple", mock.Anything, "emp1", "seeker1", (*string)(nil)).Return(winner, nil).Once()

		uc := newUC(mockConvs, mockUsers)
		conv, err := uc.StartConversation(context.Background(), "emp1", domain.RoleEmployer, "seeker1", nil)
		assert.NoError(t, err)
		assert.Equal(t, "winner", conv.ID)
	})

	t.Run("Should reject conversations with yourself", func(t *testing.T) {
		uc := newUC(new(MockConversationRepo), new(MockUserRepo))
		_, err := uc.StartConversation(context.Background(), "u1", domain.RoleEmployer, "u1", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "yourself")
	})

	t.Run("Should require a chosen role", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		mockUsers.On("GetByID", mock.Anything, "u2").Return(&domain.AppUser{ID: "u2"}, nil)
		uc := newUC(new(MockConversationRepo), mockUsers)
		_, err := uc.StartConversation(context.Background(), "u1", "", "u2", nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "role")
	})
}

func TestSendMessage(t *testing.T) {
	conv := &domain.Conversation{ID: "conv1", EmployerID: "emp1", SeekerID: "seeker1"}

	newUC := func(convs *MockConversationRepo, msgs *MockMessageRepo, users *MockUserRepo, notifs *MockNotificationRepo) domain.MessagingUsecase {
		notifier := usecase.NewNotificationUsecase(notifs, nil)
		return usecase.NewMessagingUsecase(convs, msgs, users, notifier, nil)
	}

	t.Run("Should reject whitespace-only content", func(t *testing.T) {
		uc := newUC(new(MockConversationRepo), new(MockMessageRepo), new(MockUserRepo), new(MockNotificationRepo))
		_, err := uc.SendMessage(context.Background(), "emp1", "conv1", "   \n\t ")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("Should reject non-participants", func(t *testing.T) {
		mockConvs := new(MockConversationRepo)
		mockConvs.On("GetByID", mock.Anything, "conv1").Return(conv, nil)

		uc := newUC(mockConvs, new(MockMessageRepo), new(MockUserRepo), new(MockNotificationRepo))
		_, err := uc.SendMessage(context.Background(), "intruder", "conv1", "hello")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a participant")
	})

	t.Run("Should trim content and notify the counterpart", func(t *testing.T) {
		mockConvs := new(MockConversationRepo)
		mockMsgs := new(MockMessageRepo)
		mockUsers := new(MockUserRepo)
		mockNotifs := new(MockNotificationRepo)

		mockConvs.On("GetByID", mock.Anything, "conv1").Return(conv, nil)
		mockMsgs.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
			return m.Content == "hello there" && m.SenderID == "seeker1"
		})).Return(nil).Once()
		mockConvs.On("Touch", mock.Anything, "conv1").Return(nil)
		mockUsers.On("GetByID", mock.Anything, "seeker1").Return(&domain.AppUser{ID: "seeker1", FullName: "Jane Doe"}, nil)
		mockNotifs.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == "emp1" &&
				n.Kind == domain.NotificationKindMessage &&
				n.Message == "New message from Jane Doe" &&
				n.LinkURL != nil && *n.LinkURL == "/dashboard/chat/conv1"
		})).Return(nil).Once()

		uc := newUC(mockConvs, mockMsgs, mockUsers, mockNotifs)
		msg, err := uc.SendMessage(context.Background(), "seeker1", "conv1", "  hello there  ")
		assert.NoError(t, err)
		assert.Equal(t, "hello there", msg.Content)
		mockNotifs.AssertExpectations(t)
	})
}

func TestListConversationsNames(t *testing.T) {
	mockConvs := new(MockConversationRepo)
	mockConvs.On("ListByUser", mock.Anything, "emp1", 50).Return([]domain.Conversation{
		{ID: "c1", EmployerID: "emp1", SeekerID: "s1", EmployerName: strPtr("Acme"), SeekerName: strPtr("Jane")},
		{ID: "c2", EmployerID: "e2", SeekerID: "emp1", EmployerName: strPtr("Globex"), SeekerName: strPtr("Me")},
	}, nil)

	notifier := usecase.NewNotificationUsecase(new(MockNotificationRepo), nil)
	uc := usecase.NewMessagingUsecase(mockConvs, new(MockMessageRepo), new(MockUserRepo), notifier, nil)

	convs, err := uc.ListConversations(context.Background(), "emp1")
	assert.NoError(t, err)
	assert.Equal(t, "Jane", *convs[0].OtherUserName)
	assert.Equal(t, "Globex", *convs[1].OtherUserName)
}

func TestNotifications(t *testing.T) {
	t.Run("Should scope mark-read to the owner", func(t *testing.T) {
		mockNotifs := new(MockNotificationRepo)
		mockNotifs.On("MarkRead", mock.Anything, int64(7), "u1").Return(domain.ErrNotFound)

		uc := usecase.NewNotificationUsecase(mockNotifs, nil)
		err := uc.MarkRead(context.Background(), "u1", 7)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("Should report how many rows mark-all-read flipped", func(t *testing.T) {
		mockNotifs := new(MockNotificationRepo)
		mockNotifs.On("MarkAllRead", mock.Anything, "u1").Return(int64(3), nil)

		uc := usecase.NewNotificationUsecase(mockNotifs, nil)
		updated, err := uc.MarkAllRead(context.Background(), "u1")
		assert.NoError(t, err)
		assert.Equal(t, int64(3), updated)
	})

	t.Run("Notify should swallow repository failures", func(t *testing.T) {
		mockNotifs := new(MockNotificationRepo)
		mockNotifs.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		uc := usecase.NewNotificationUsecase(mockNotifs, nil)
		assert.NotPanics(t, func() {
			uc.Notify(context.Background(), "u1", domain.NotificationKindSystem, "hi", nil)
		})
	})
}
