package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Quiz is a gradable document: metadata plus an ordered sequence of
// questions. Questions and answers live inside the quiz document and have
// no lifecycle of their own.
type Quiz struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Course    string     `json:"course"`
	Topic     string     `json:"topic"`
	DueDate   time.Time  `json:"dueDate"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Question is a single gradable item. The answers sequence always holds
// exactly four entries; the validator enforces that arity on the way in.
type Question struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Answers     []Answer  `json:"answers"`
}

// Answer is one selectable choice. Any number of a question's answers may
// be marked correct, including none.
type Answer struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// SaveQuizRequest is the raw payload for creating or updating a quiz.
// Scalar fields are pointers so the validator can tell an absent field from
// an empty one; Questions stays raw so the validator can check that it is
// actually an array before descending into it.
type SaveQuizRequest struct {
	Title     *string         `json:"title"`
	Course    *string         `json:"course"`
	Topic     *string         `json:"topic"`
	DueDate   *string         `json:"dueDate"`
	Questions json.RawMessage `json:"questions"`
}

// QuizPatch is a normalized partial update. Nil fields are left untouched
// by the store; a non-nil Questions pointer replaces the whole sequence.
type QuizPatch struct {
	Title     *string
	Course    *string
	Topic     *string
	DueDate   *time.Time
	Questions *[]Question
}

// IsEmpty reports whether the patch stages no fields at all.
func (p *QuizPatch) IsEmpty() bool {
	return p.Title == nil && p.Course == nil && p.Topic == nil &&
		p.DueDate == nil && p.Questions == nil
}
