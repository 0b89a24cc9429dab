package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/acadsphere/acadsphere-backend/internal/model"
)

// RuleError names the first violated quiz validation rule. It is the only
// error kind the quiz validator produces; rules are checked in a fixed
// order and checking stops at the first failure.
type RuleError struct {
	Field   string
	Message string
}

func (e *RuleError) Error() string { return e.Message }

func ruleError(field, format string, args ...interface{}) *RuleError {
	return &RuleError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// answersPerQuestion is the fixed arity of a question's answer sequence.
// It is a validation-time invariant; nothing downstream re-checks it.
const answersPerQuestion = 4

// dueDateLayouts are the accepted dueDate formats, tried in order.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

const badDueDateMessage = "Invalid date format for dueDate. Please use ISO 8601 format (e.g., 2024-03-20T15:00:00Z)"

func parseDueDate(raw string) (time.Time, bool) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// QuizCreate checks a full create payload and returns the normalized quiz
// (text fields trimmed, dueDate parsed, questions decoded) or the first
// violated rule. It is a pure check with no side effects.
func QuizCreate(req *model.SaveQuizRequest) (*model.Quiz, *RuleError) {
	title := trimmed(req.Title)
	course := trimmed(req.Course)
	topic := trimmed(req.Topic)
	dueDate := trimmed(req.DueDate)

	if title == "" || course == "" || topic == "" || dueDate == "" {
		return nil, ruleError("required",
			"Please provide all required fields: title, course, topic, dueDate")
	}

	due, ok := parseDueDate(dueDate)
	if !ok {
		return nil, ruleError("dueDate", badDueDateMessage)
	}

	questions := []model.Question{}
	if rawPresent(req.Questions) {
		parsed, ruleErr := parseQuestions(req.Questions)
		if ruleErr != nil {
			return nil, ruleErr
		}
		questions = parsed
	}

	return &model.Quiz{
		Title:     title,
		Course:    course,
		Topic:     topic,
		DueDate:   due,
		Questions: questions,
	}, nil
}

// QuizUpdate checks a partial payload and returns the patch of staged
// fields. Only present fields are validated; absent or empty fields are
// left untouched, matching the partial-update contract.
func QuizUpdate(req *model.SaveQuizRequest) (*model.QuizPatch, *RuleError) {
	patch := &model.QuizPatch{}

	if t := trimmed(req.Title); t != "" {
		patch.Title = &t
	}
	if c := trimmed(req.Course); c != "" {
		patch.Course = &c
	}
	if t := trimmed(req.Topic); t != "" {
		patch.Topic = &t
	}
	if d := trimmed(req.DueDate); d != "" {
		due, ok := parseDueDate(d)
		if !ok {
			return nil, ruleError("dueDate", badDueDateMessage)
		}
		patch.DueDate = &due
	}
	if rawPresent(req.Questions) {
		questions, ruleErr := parseQuestions(req.Questions)
		if ruleErr != nil {
			return nil, ruleErr
		}
		patch.Questions = &questions
	}

	return patch, nil
}

// rawQuestion and rawAnswer keep nested values raw so field types can be
// checked one rule at a time instead of failing wholesale at decode.
type rawQuestion struct {
	Description *string         `json:"description"`
	Answers     json.RawMessage `json:"answers"`
}

type rawAnswer struct {
	Text      json.RawMessage `json:"text"`
	IsCorrect json.RawMessage `json:"isCorrect"`
}

func parseQuestions(raw json.RawMessage) ([]model.Question, *RuleError) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, ruleError("questions", "questions must be an array")
	}

	questions := make([]model.Question, 0, len(elements))
	for i, element := range elements {
		q, ruleErr := parseQuestion(i+1, element)
		if ruleErr != nil {
			return nil, ruleErr
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func parseQuestion(num int, element json.RawMessage) (model.Question, *RuleError) {
	var rq rawQuestion
	if err := json.Unmarshal(element, &rq); err != nil {
		return model.Question{}, ruleError("questions",
			"Question %d must be an object", num)
	}

	if rq.Description == nil || *rq.Description == "" {
		return model.Question{}, ruleError("questions",
			"Question %d: description is required", num)
	}

	var rawAnswers []json.RawMessage
	if !rawPresent(rq.Answers) {
		return model.Question{}, ruleError("questions",
			"Question %d: exactly %d answers are required", num, answersPerQuestion)
	}
	if err := json.Unmarshal(rq.Answers, &rawAnswers); err != nil {
		return model.Question{}, ruleError("questions",
			"Question %d: answers must be an array", num)
	}
	if len(rawAnswers) != answersPerQuestion {
		return model.Question{}, ruleError("questions",
			"Question %d: exactly %d answers are required", num, answersPerQuestion)
	}

	answers := make([]model.Answer, 0, answersPerQuestion)
	for j, rawAns := range rawAnswers {
		answer, ruleErr := parseAnswer(num, j+1, rawAns)
		if ruleErr != nil {
			return model.Question{}, ruleErr
		}
		answers = append(answers, answer)
	}

	return model.Question{
		Description: *rq.Description,
		Answers:     answers,
	}, nil
}

func parseAnswer(qNum, aNum int, raw json.RawMessage) (model.Answer, *RuleError) {
	var ra rawAnswer
	if err := json.Unmarshal(raw, &ra); err != nil {
		return model.Answer{}, ruleError("questions",
			"Question %d, answer %d must be an object", qNum, aNum)
	}

	if !rawPresent(ra.Text) {
		return model.Answer{}, ruleError("questions",
			"Question %d, answer %d: text is required", qNum, aNum)
	}
	var text string
	if err := json.Unmarshal(ra.Text, &text); err != nil {
		return model.Answer{}, ruleError("questions",
			"Question %d, answer %d: text must be a string", qNum, aNum)
	}

	if !rawPresent(ra.IsCorrect) {
		return model.Answer{}, ruleError("questions",
			"Question %d, answer %d: isCorrect is required", qNum, aNum)
	}
	var isCorrect bool
	if err := json.Unmarshal(ra.IsCorrect, &isCorrect); err != nil {
		return model.Answer{}, ruleError("questions",
			"Question %d, answer %d: isCorrect must be a boolean", qNum, aNum)
	}

	return model.Answer{Text: text, IsCorrect: isCorrect}, nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// rawPresent reports whether a raw JSON field was supplied with a non-null
// value.
func rawPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
