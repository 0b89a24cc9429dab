package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acadsphere/acadsphere-backend/internal/model"
)

// QuizRepository persists quiz documents. A quiz is stored as a single row:
// queryable scalar columns plus the nested questions/answers document in a
// jsonb column. Question ids are assigned here, at document-write time.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

const quizColumns = `id, title, course, topic, due_date, questions, created_at, updated_at`

// Create inserts a new quiz document and fills in the store-assigned
// identifiers and timestamps.
func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	assignQuestionIDs(quiz.Questions)

	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (title, course, topic, due_date, questions)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		quiz.Title, quiz.Course, quiz.Topic, quiz.DueDate, questionsJSON,
	).Scan(&quiz.ID, &quiz.CreatedAt, &quiz.UpdatedAt)
}

// GetByID retrieves a quiz document by its UUID.
func (r *QuizRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id)
	return scanQuiz(row)
}

// ListAll retrieves every quiz, sorted by due date ascending.
func (r *QuizRepository) ListAll(ctx context.Context) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+quizColumns+` FROM quizzes ORDER BY due_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, *quiz)
	}
	return quizzes, rows.Err()
}

// Update applies a partial-field merge to a stored quiz in one statement:
// nil patch fields keep the stored value via COALESCE, so untouched fields
// survive without a fetch-then-write cycle. Returns the updated document.
func (r *QuizRepository) Update(ctx context.Context, id uuid.UUID, patch *model.QuizPatch) (*model.Quiz, error) {
	var questionsJSON []byte
	if patch.Questions != nil {
		assignQuestionIDs(*patch.Questions)
		encoded, err := json.Marshal(*patch.Questions)
		if err != nil {
			return nil, fmt.Errorf("encode questions: %w", err)
		}
		questionsJSON = encoded
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE quizzes SET
		     title = COALESCE($2, title),
		     course = COALESCE($3, course),
		     topic = COALESCE($4, topic),
		     due_date = COALESCE($5, due_date),
		     questions = COALESCE($6, questions),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+quizColumns,
		id, patch.Title, patch.Course, patch.Topic, patch.DueDate, questionsJSON)
	return scanQuiz(row)
}

// Delete removes a quiz document and everything nested in it.
func (r *QuizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// assignQuestionIDs gives every question lacking an id a fresh one.
func assignQuestionIDs(questions []model.Question) {
	for i := range questions {
		if questions[i].ID == uuid.Nil {
			questions[i].ID = uuid.New()
		}
	}
}

func scanQuiz(row pgx.Row) (*model.Quiz, error) {
	quiz := &model.Quiz{}
	var questionsJSON []byte

	err := row.Scan(&quiz.ID, &quiz.Title, &quiz.Course, &quiz.Topic,
		&quiz.DueDate, &questionsJSON, &quiz.CreatedAt, &quiz.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	quiz.Questions = []model.Question{}
	if len(questionsJSON) > 0 {
		if err := json.Unmarshal(questionsJSON, &quiz.Questions); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
	}
	if quiz.Questions == nil {
		quiz.Questions = []model.Question{}
	}
	return quiz, nil
}
