package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.AppUser, error) {
	query := `
		SELECT id, email, role, full_name, username, avatar_url, created_at, updated_at
		FROM app_users
		WHERE id = $1`

	var u domain.AppUser
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Role, &u.FullName, &u.Username, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Upsert creates or updates the user row. The signup trigger usually creates
// the row, but OAuth users picking a role may arrive first.
func (r *userRepo) Upsert(ctx context.Context, user *domain.AppUser) error {
	query := `
		INSERT INTO app_users (id, email, role, full_name, username, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (id) DO UPDATE SET
			role = EXCLUDED.role,
			full_name = EXCLUDED.full_name,
			avatar_url = COALESCE(EXCLUDED.avatar_url, app_users.avatar_url),
			updated_at = EXCLUDED.updated_at`

	now := time.Now()
	user.UpdatedAt = now
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.Role, user.FullName, user.Username, user.AvatarURL, now,
	)
	return err
}

func (r *userRepo) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	query := `UPDATE app_users SET avatar_url = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, userID, avatarURL, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
