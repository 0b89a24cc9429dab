package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionEntry is one answer selection in a submitted answer set.
// Submissions are transient and deliberately loose: the question id is an
// arbitrary string and the index is a pointer so the grading engine can
// skip entries that omit it.
type SubmissionEntry struct {
	QuestionID          string `json:"questionId"`
	SelectedAnswerIndex *int   `json:"selectedAnswerIndex"`
}

// GradeRecord is the audit row persisted for each graded submission.
type GradeRecord struct {
	QuizID         uuid.UUID `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     float64   `json:"percentage"`
	Status         string    `json:"status"`
	SubmittedAt    time.Time `json:"submitted_at"`
}
