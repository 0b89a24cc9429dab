// Package grading scores submitted answer sets against a stored quiz.
//
// Grade is total and deterministic: malformed submission entries are
// skipped, never rejected, and the quiz is never mutated. Callers may
// invoke it concurrently without coordination.
package grading

import (
	"github.com/acadsphere/acadsphere-backend/internal/model"
)

// PassThreshold is the percentage at or above which a submission passes.
const PassThreshold = 70.0

const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Result is the outcome of grading one submission against one quiz.
type Result struct {
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
	Status         string  `json:"status"`
}

// Grade evaluates a submission against a quiz.
//
// Every entry is evaluated independently, in order. An entry contributes a
// point iff its question id resolves to a question in the quiz, its index
// is within the question's answer sequence, and the answer at that index
// is marked correct. Entries that fail any of those checks are skipped.
// Duplicate entries for the same question are not deduplicated; each one
// can score.
func Grade(quiz *model.Quiz, submission []model.SubmissionEntry) Result {
	total := len(quiz.Questions)

	byID := make(map[string]*model.Question, total)
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		byID[q.ID.String()] = q
	}

	correct := 0
	for _, entry := range submission {
		if entry.QuestionID == "" || entry.SelectedAnswerIndex == nil {
			continue
		}
		q, ok := byID[entry.QuestionID]
		if !ok {
			continue
		}
		idx := *entry.SelectedAnswerIndex
		if idx < 0 || idx >= len(q.Answers) {
			continue
		}
		if q.Answers[idx].IsCorrect {
			correct++
		}
	}

	pct := 0.0
	if total > 0 {
		pct = float64(correct) / float64(total) * 100
	}

	status := StatusFail
	if pct >= PassThreshold {
		status = StatusPass
	}

	return Result{
		Score:          correct,
		TotalQuestions: total,
		Percentage:     pct,
		Status:         status,
	}
}
