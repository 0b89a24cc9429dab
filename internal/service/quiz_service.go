package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acadsphere/acadsphere-backend/internal/grading"
	"github.com/acadsphere/acadsphere-backend/internal/model"
	"github.com/acadsphere/acadsphere-backend/internal/validator"
)

// QuizStore is the persistence surface the quiz service needs.
type QuizStore interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error)
	ListAll(ctx context.Context) ([]model.Quiz, error)
	Update(ctx context.Context, id uuid.UUID, patch *model.QuizPatch) (*model.Quiz, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuizCache is the grading fast lane. Get reports a miss as (nil, nil).
type QuizCache interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Quiz, error)
	Set(ctx context.Context, quiz *model.Quiz) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// ResultQueue receives grade records for asynchronous persistence.
type ResultQueue interface {
	Enqueue(ctx context.Context, rec model.GradeRecord) error
}

// QuizService orchestrates validation, persistence, caching and grading.
type QuizService struct {
	store   QuizStore
	cache   QuizCache
	results ResultQueue
	log     zerolog.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(store QuizStore, cache QuizCache, results ResultQueue, log zerolog.Logger) *QuizService {
	return &QuizService{
		store:   store,
		cache:   cache,
		results: results,
		log:     log.With().Str("component", "quiz_service").Logger(),
	}
}

// Create validates a full quiz payload and persists the normalized document.
func (s *QuizService) Create(ctx context.Context, req *model.SaveQuizRequest) (*model.Quiz, error) {
	quiz, ruleErr := validator.QuizCreate(req)
	if ruleErr != nil {
		return nil, ruleErr
	}

	if err := s.store.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// List returns every quiz sorted by due date ascending.
func (s *QuizService) List(ctx context.Context) ([]model.Quiz, error) {
	quizzes, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	return quizzes, nil
}

// Get returns a single quiz by id.
func (s *QuizService) Get(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	return s.store.GetByID(ctx, id)
}

// Update validates a partial payload and merges the staged fields into the
// stored document. Existence is confirmed first with one uncoordinated read;
// the merge itself is a single patch statement, not fetch-mutate-store.
func (s *QuizService) Update(ctx context.Context, id uuid.UUID, req *model.SaveQuizRequest) (*model.Quiz, error) {
	patch, ruleErr := validator.QuizUpdate(req)
	if ruleErr != nil {
		return nil, ruleErr
	}

	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, err
	}

	quiz, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return quiz, nil
}

// Delete removes a quiz document and its cached copy.
func (s *QuizService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Submit grades a submission against the stored quiz. The read goes through
// the cache; the grade record is queued for the persistence worker on a
// best-effort basis and never fails the request.
func (s *QuizService) Submit(ctx context.Context, id uuid.UUID, submission []model.SubmissionEntry) (grading.Result, error) {
	quiz, err := s.loadForGrading(ctx, id)
	if err != nil {
		return grading.Result{}, err
	}

	result := grading.Grade(quiz, submission)

	if s.results != nil {
		rec := model.GradeRecord{
			QuizID:         quiz.ID,
			Score:          result.Score,
			TotalQuestions: result.TotalQuestions,
			Percentage:     result.Percentage,
			Status:         result.Status,
			SubmittedAt:    time.Now().UTC(),
		}
		if err := s.results.Enqueue(ctx, rec); err != nil {
			s.log.Warn().Err(err).Str("quiz_id", id.String()).Msg("Failed to enqueue grade record")
		}
	}

	return result, nil
}

func (s *QuizService) loadForGrading(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	if s.cache != nil {
		quiz, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("quiz_id", id.String()).Msg("Quiz cache read failed")
		} else if quiz != nil {
			return quiz, nil
		}
	}

	quiz, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, quiz); err != nil {
			s.log.Warn().Err(err).Str("quiz_id", id.String()).Msg("Quiz cache write failed")
		}
	}
	return quiz, nil
}

func (s *QuizService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("quiz_id", id.String()).Msg("Quiz cache invalidation failed")
	}
}
