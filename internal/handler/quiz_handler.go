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

// QuizHandler wires the quiz HTTP surface to the validator, the store and
// the grading engine.
type QuizHandler struct {
	quizService *service.QuizService
	log         zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		log:         log.With().Str("component", "quiz_handler").Logger(),
	}
}

// List godoc
// GET /api/quizzes
func (h *QuizHandler) List(c *gin.Context) {
	quizzes, err := h.quizService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quizzes)
}

// Get godoc
// GET /api/quizzes/:id
func (h *QuizHandler) Get(c *gin.Context) {
	id, ok := h.quizID(c)
	if !ok {
		return
	}

	quiz, err := h.quizService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quiz)
}

// Create godoc
// POST /api/quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	var req model.SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, quiz)
}

// Update godoc
// PUT /api/quizzes/:id
func (h *QuizHandler) Update(c *gin.Context) {
	id, ok := h.quizID(c)
	if !ok {
		return
	}

	var req model.SaveQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, quiz)
}

// Delete godoc
// DELETE /api/quizzes/:id
func (h *QuizHandler) Delete(c *gin.Context) {
	id, ok := h.quizID(c)
	if !ok {
		return
	}

	if err := h.quizService.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Quiz removed")
}

// Submit godoc
// POST /api/quizzes/:id/submit
func (h *QuizHandler) Submit(c *gin.Context) {
	id, ok := h.quizID(c)
	if !ok {
		return
	}

	// The body must be a bare array; anything else is rejected here so
	// the grading engine only ever sees a well-typed sequence.
	var submission []model.SubmissionEntry
	if err := c.ShouldBindJSON(&submission); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrSubmissionNotArray)
		return
	}

	result, err := h.quizService.Submit(c.Request.Context(), id, submission)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// quizID parses the path id. Malformed ids resolve to not-found, the same
// way the store treats an id that matches nothing.
func (h *QuizHandler) quizID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// fail maps a service error onto the HTTP contract: validation failures
// report the violated rule, unknown ids report not-found, and anything else
// is logged as a persistence fault and generalized.
func (h *QuizHandler) fail(c *gin.Context, err error) {
	var ruleErr *validator.RuleError
	if errors.As(err, &ruleErr) {
		response.Message(c, http.StatusBadRequest, ruleErr.Message)
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrQuizNotFound)
		return
	}

	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("Quiz persistence fault")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
