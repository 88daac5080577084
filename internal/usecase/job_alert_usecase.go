package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/email"
)

const (
	alertLookback     = 24 * time.Hour
	alertJobBatchSize = 200
	alertMaxPerEmail  = 10
)

type jobAlertUsecase struct {
	jobRepo     domain.JobRepository
	seekerRepo  domain.SeekerProfileRepository
	notifier    domain.NotificationUsecase
	mailer      *email.EmailService
	frontendURL string
}

func NewJobAlertUsecase(
	jobRepo domain.JobRepository,
	seekerRepo domain.SeekerProfileRepository,
	notifier domain.NotificationUsecase,
	mailer *email.EmailService,
	frontendURL string,
) domain.JobAlertUsecase {
	return &jobAlertUsecase{
		jobRepo:     jobRepo,
		seekerRepo:  seekerRepo,
		notifier:    notifier,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// RunMatching pairs jobs posted in the last day with opted-in seekers whose
// skills overlap the job's requirements, then notifies each match in-app and
// by email when SMTP is configured.
func (uc *jobAlertUsecase) RunMatching(ctx context.Context) error {
	jobs, err := uc.jobRepo.FetchPostedSince(ctx, time.Now().Add(-alertLookback), alertJobBatchSize)
	if err != nil {
		return fmt.Errorf("fetch recent jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil
	}

	seekers, err := uc.seekerRepo.FetchWithAlertsEnabled(ctx)
	if err != nil {
		return fmt.Errorf("fetch alert subscribers: %w", err)
	}

	matched := 0
	for i := range seekers {
		seeker := &seekers[i]
		matches := matchJobs(jobs, seeker.Skills)
		if len(matches) == 0 {
			continue
		}
		matched++

		link := "/jobs"
		uc.notifier.Notify(ctx, seeker.UserID, domain.NotificationKindSystem,
			fmt.Sprintf("%d new jobs match your skills", len(matches)), &link)

		if uc.mailer == nil || !uc.mailer.IsConfigured() || seeker.Email == "" {
			continue
		}
		if err := uc.mailer.SendJobAlert(seeker.Email, uc.buildAlert(seeker, matches)); err != nil {
			slog.Warn("failed to send job alert email", "user_id", seeker.UserID, "error", err)
		}
	}

	slog.Info("job matching pass complete", "jobs", len(jobs), "subscribers", len(seekers), "matched", matched)
	return nil
}

func (uc *jobAlertUsecase) buildAlert(seeker *domain.JobSeekerProfile, matches []domain.Job) email.JobAlertData {
	if len(matches) > alertMaxPerEmail {
		matches = matches[:alertMaxPerEmail]
	}
	entries := make([]email.JobAlertEntry, 0, len(matches))
	for _, job := range matches {
		entries = append(entries, email.JobAlertEntry{
			Title:       job.Title,
			CompanyName: job.CompanyName,
			Location:    job.Location,
			JobURL:      uc.frontendURL + "/jobs/" + job.ID,
		})
	}
	name := seeker.FullName
	if name == "" {
		name = "there"
	}
	return email.JobAlertData{
		RecipientName: name,
		Jobs:          entries,
		FrontendURL:   uc.frontendURL,
	}
}

// matchJobs returns jobs whose required skills or title mention any of the
// seeker's skills. Comparison is case-insensitive.
func matchJobs(jobs []domain.Job, skills []string) []domain.Job {
	if len(skills) == 0 {
		return nil
	}
	lowered := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			lowered = append(lowered, s)
		}
	}

	var matches []domain.Job
	for _, job := range jobs {
		haystack := strings.ToLower(job.Title)
		if job.RequiredSkills != nil {
			haystack += " " + strings.ToLower(*job.RequiredSkills)
		}
		for _, skill := range lowered {
			if strings.Contains(haystack, skill) {
				matches = append(matches, job)
				break
			}
		}
	}
	return matches
}
