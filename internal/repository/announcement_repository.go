package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsphere/acadsphere-backend/internal/model"
)

// AnnouncementRepository persists announcement documents.
type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository.
func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

const announcementColumns = `id, name, course, content, img, created_at, updated_at`

// Create inserts a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO announcements (name, course, content, img)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		a.Name, a.Course, a.Content, a.Img,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

// GetByID retrieves an announcement by its UUID.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id)
	return scanAnnouncement(row)
}

// ListAll retrieves every announcement, newest first.
func (r *AnnouncementRepository) ListAll(ctx context.Context) ([]model.Announcement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+announcementColumns+` FROM announcements ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []model.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, *a)
	}
	return announcements, rows.Err()
}

// Update merges the supplied fields into a stored announcement. Nil fields
// keep the stored value.
func (r *AnnouncementRepository) Update(ctx context.Context, id uuid.UUID, name, course, content, img *string) (*model.Announcement, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE announcements SET
		     name = COALESCE($2, name),
		     course = COALESCE($3, course),
		     content = COALESCE($4, content),
		     img = COALESCE($5, img),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+announcementColumns,
		id, name, course, content, img)
	return scanAnnouncement(row)
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAnnouncement(row pgx.Row) (*model.Announcement, error) {
	a := &model.Announcement{}
	err := row.Scan(&a.ID, &a.Name, &a.Course, &a.Content, &a.Img,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
