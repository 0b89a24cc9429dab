package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acadsphere/acadsphere-backend/internal/model"
	"github.com/acadsphere/acadsphere-backend/internal/repository"
	"github.com/acadsphere/acadsphere-backend/internal/response"
	"github.com/acadsphere/acadsphere-backend/internal/service"
	"github.com/acadsphere/acadsphere-backend/internal/validator"
)

// AnnouncementHandler wires the announcement CRUD surface to its store.
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
	log                 zerolog.Logger
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(announcementService *service.AnnouncementService, log zerolog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		log:                 log.With().Str("component", "announcement_handler").Logger(),
	}
}

// List godoc
// GET /api/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	announcements, err := h.announcementService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, announcements)
}

// Get godoc
// GET /api/announcements/:id
func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, ok := h.announcementID(c)
	if !ok {
		return
	}

	a, err := h.announcementService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

// Create godoc
// POST /api/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req model.CreateAnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.Message(c, http.StatusBadRequest,
			"Please provide all required fields: name, course, content, img")
		return
	}

	a, err := h.announcementService.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, a)
}

// Update godoc
// PUT /api/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := h.announcementID(c)
	if !ok {
		return
	}

	var req model.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	a, err := h.announcementService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

// Delete godoc
// DELETE /api/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := h.announcementID(c)
	if !ok {
		return
	}

	if err := h.announcementService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Announcement removed")
}

func (h *AnnouncementHandler) announcementID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrAnnouncementNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func (h *AnnouncementHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrAnnouncementNotFound)
		return
	}

	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("Announcement persistence fault")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
