package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acadsphere/acadsphere-backend/internal/model"
)

// AnnouncementStore is the persistence surface the announcement service needs.
type AnnouncementStore interface {
	Create(ctx context.Context, a *model.Announcement) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Announcement, error)
	ListAll(ctx context.Context) ([]model.Announcement, error)
	Update(ctx context.Context, id uuid.UUID, name, course, content, img *string) (*model.Announcement, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AnnouncementService is a thin persistence wrapper; announcements carry no
// algorithmic content.
type AnnouncementService struct {
	store AnnouncementStore
	log   zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(store AnnouncementStore, log zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{
		store: store,
		log:   log.With().Str("component", "announcement_service").Logger(),
	}
}

// Create persists a new announcement.
func (s *AnnouncementService) Create(ctx context.Context, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	a := &model.Announcement{
		Name:    req.Name,
		Course:  req.Course,
		Content: req.Content,
		Img:     req.Img,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return a, nil
}

// List returns every announcement, newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]model.Announcement, error) {
	announcements, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	if announcements == nil {
		announcements = []model.Announcement{}
	}
	return announcements, nil
}

// Get returns a single announcement by id.
func (s *AnnouncementService) Get(ctx context.Context, id uuid.UUID) (*model.Announcement, error) {
	return s.store.GetByID(ctx, id)
}

// Update merges the non-empty fields of req into the stored announcement.
func (s *AnnouncementService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAnnouncementRequest) (*model.Announcement, error) {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id,
		nonEmpty(req.Name), nonEmpty(req.Course), nonEmpty(req.Content), nonEmpty(req.Img))
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
