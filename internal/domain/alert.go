package domain

import "context"

// JobAlertUsecase is the background matcher: it pairs recently posted jobs
// with opted-in seeker profiles and notifies the matches.
type JobAlertUsecase interface {
	// RunMatching performs one matching pass. Per-seeker failures are
	// logged and skipped; the pass itself only fails on storage errors.
	RunMatching(ctx context.Context) error
}
