package model

import (
	"time"

	"github.com/google/uuid"
)

// Announcement is a single-field content document shown on course pages.
type Announcement struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Course    string    `json:"course"`
	Content   string    `json:"content"`
	Img       string    `json:"img"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateAnnouncementRequest is the payload for creating an announcement.
type CreateAnnouncementRequest struct {
	Name    string `json:"name" binding:"required"`
	Course  string `json:"course" binding:"required"`
	Content string `json:"content" binding:"required"`
	Img     string `json:"img" binding:"required"`
}

// UpdateAnnouncementRequest carries any subset of announcement fields.
// Empty fields are not staged for persistence.
type UpdateAnnouncementRequest struct {
	Name    string `json:"name"`
	Course  string `json:"course"`
	Content string `json:"content"`
	Img     string `json:"img"`
}
