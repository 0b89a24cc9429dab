package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/acadsphere/acadsphere-backend/internal/config"
	"github.com/acadsphere/acadsphere-backend/internal/handler"
	"github.com/acadsphere/acadsphere-backend/internal/middleware"
	"github.com/acadsphere/acadsphere-backend/internal/model"
	"github.com/acadsphere/acadsphere-backend/internal/repository"
	"github.com/acadsphere/acadsphere-backend/internal/router"
	"github.com/acadsphere/acadsphere-backend/internal/service"
	"github.com/acadsphere/acadsphere-backend/internal/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Setup()
	os.Exit(m.Run())
}

/* ---------------- In-memory stores ---------------- */

type memQuizStore struct {
	quizzes map[uuid.UUID]*model.Quiz
}

func newMemQuizStore() *memQuizStore {
	return &memQuizStore{quizzes: map[uuid.UUID]*model.Quiz{}}
}

func (s *memQuizStore) Create(_ context.Context, quiz *model.Quiz) error {
	quiz.ID = uuid.New()
	now := time.Now().UTC()
	quiz.CreatedAt, quiz.UpdatedAt = now, now
	for i := range quiz.Questions {
		quiz.Questions[i].ID = uuid.New()
	}
	stored := *quiz
	s.quizzes[quiz.ID] = &stored
	return nil
}

func (s *memQuizStore) GetByID(_ context.Context, id uuid.UUID) (*model.Quiz, error) {
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *quiz
	return &copied, nil
}

func (s *memQuizStore) ListAll(context.Context) ([]model.Quiz, error) {
	var out []model.Quiz
	for _, quiz := range s.quizzes {
		out = append(out, *quiz)
	}
	return out, nil
}

func (s *memQuizStore) Update(_ context.Context, id uuid.UUID, patch *model.QuizPatch) (*model.Quiz, error) {
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		quiz.Title = *patch.Title
	}
	if patch.Course != nil {
		quiz.Course = *patch.Course
	}
	if patch.Topic != nil {
		quiz.Topic = *patch.Topic
	}
	if patch.DueDate != nil {
		quiz.DueDate = *patch.DueDate
	}
	if patch.Questions != nil {
		questions := *patch.Questions
		for i := range questions {
			questions[i].ID = uuid.New()
		}
		quiz.Questions = questions
	}
	quiz.UpdatedAt = time.Now().UTC()
	copied := *quiz
	return &copied, nil
}

func (s *memQuizStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.quizzes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.quizzes, id)
	return nil
}

type memAnnouncementStore struct {
	announcements map[uuid.UUID]*model.Announcement
}

func newMemAnnouncementStore() *memAnnouncementStore {
	return &memAnnouncementStore{announcements: map[uuid.UUID]*model.Announcement{}}
}

func (s *memAnnouncementStore) Create(_ context.Context, a *model.Announcement) error {
	a.ID = uuid.New()
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	stored := *a
	s.announcements[a.ID] = &stored
	return nil
}

func (s *memAnnouncementStore) GetByID(_ context.Context, id uuid.UUID) (*model.Announcement, error) {
	a, ok := s.announcements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s *memAnnouncementStore) ListAll(context.Context) ([]model.Announcement, error) {
	var out []model.Announcement
	for _, a := range s.announcements {
		out = append(out, *a)
	}
	return out, nil
}

func (s *memAnnouncementStore) Update(_ context.Context, id uuid.UUID, name, course, content, img *string) (*model.Announcement, error) {
	a, ok := s.announcements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if name != nil {
		a.Name = *name
	}
	if course != nil {
		a.Course = *course
	}
	if content != nil {
		a.Content = *content
	}
	if img != nil {
		a.Img = *img
	}
	copied := *a
	return &copied, nil
}

func (s *memAnnouncementStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.announcements[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.announcements, id)
	return nil
}

/* ---------------- Harness ---------------- */

type testApp struct {
	engine        *gin.Engine
	quizzes       *memQuizStore
	announcements *memAnnouncementStore
}

func newTestApp() *testApp {
	quizStore := newMemQuizStore()
	announcementStore := newMemAnnouncementStore()
	log := zerolog.Nop()

	quizService := service.NewQuizService(quizStore, nil, nil, log)
	announcementService := service.NewAnnouncementService(announcementStore, log)

	handlers := &router.Handlers{
		Quiz:         handler.NewQuizHandler(quizService, log),
		Announcement: handler.NewAnnouncementHandler(announcementService, log),
	}

	cfg := &config.Config{
		GinMode:             gin.TestMode,
		SubmitRatePerMinute: 1000,
	}

	return &testApp{
		engine:        router.SetupRouter(handlers, middleware.AllowAll{}, cfg),
		quizzes:       quizStore,
		announcements: announcementStore,
	}
}

func (app *testApp) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, w, &body)
	return body.Message
}

const validQuizBody = `{
	"title": "Midterm Review",
	"course": "MATH 201",
	"topic": "Calculus",
	"dueDate": "2026-03-20T15:00:00Z",
	"questions": [
		{
			"description": "What is 2+2?",
			"answers": [
				{"text": "3", "isCorrect": false},
				{"text": "4", "isCorrect": true},
				{"text": "5", "isCorrect": false},
				{"text": "22", "isCorrect": false}
			]
		}
	]
}`

func createQuiz(t *testing.T, app *testApp) model.Quiz {
	t.Helper()
	w := app.request(t, http.MethodPost, "/api/quizzes", validQuizBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("create quiz: status %d, body %s", w.Code, w.Body.String())
	}
	var quiz model.Quiz
	decode(t, w, &quiz)
	return quiz
}

/* ---------------- Quiz routes ---------------- */

func TestCreateQuiz(t *testing.T) {
	app := newTestApp()

	quiz := createQuiz(t, app)
	if quiz.ID == uuid.Nil {
		t.Error("created quiz has no id")
	}
	if len(quiz.Questions) != 1 || quiz.Questions[0].ID == uuid.Nil {
		t.Errorf("question ids not assigned: %+v", quiz.Questions)
	}
}

func TestCreateQuizMissingDueDate(t *testing.T) {
	app := newTestApp()

	w := app.request(t, http.MethodPost, "/api/quizzes",
		`{"title": "T", "course": "C", "topic": "X"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := message(t, w); !strings.Contains(msg, "dueDate") {
		t.Errorf("message %q should name dueDate", msg)
	}
	if len(app.quizzes.quizzes) != 0 {
		t.Error("no document may be persisted on validation failure")
	}
}

func TestCreateQuizWrongAnswerArity(t *testing.T) {
	app := newTestApp()

	body := `{
		"title": "T", "course": "C", "topic": "X", "dueDate": "2026-03-20T15:00:00Z",
		"questions": [{"description": "q", "answers": [
			{"text": "a", "isCorrect": true},
			{"text": "b", "isCorrect": false},
			{"text": "c", "isCorrect": false}
		]}]
	}`
	w := app.request(t, http.MethodPost, "/api/quizzes", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := message(t, w); !strings.Contains(msg, "exactly 4 answers") {
		t.Errorf("message %q should name the arity rule", msg)
	}
}

func TestGetQuizNotFound(t *testing.T) {
	app := newTestApp()

	for _, path := range []string{
		"/api/quizzes/" + uuid.New().String(),
		"/api/quizzes/not-a-valid-id",
	} {
		w := app.request(t, http.MethodGet, path, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", path, w.Code)
			continue
		}
		if msg := message(t, w); msg != "Quiz not found" {
			t.Errorf("%s: message = %q", path, msg)
		}
	}
}

func TestUpdateQuizPartial(t *testing.T) {
	app := newTestApp()
	quiz := createQuiz(t, app)

	w := app.request(t, http.MethodPut, "/api/quizzes/"+quiz.ID.String(),
		`{"topic": "Integrals"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var updated model.Quiz
	decode(t, w, &updated)
	if updated.Topic != "Integrals" {
		t.Errorf("topic = %q, want Integrals", updated.Topic)
	}
	if updated.Title != quiz.Title {
		t.Errorf("title changed to %q, untouched fields must survive", updated.Title)
	}
	if len(updated.Questions) != 1 {
		t.Errorf("questions dropped by partial update: %+v", updated.Questions)
	}
}

func TestUpdateQuizUnknown(t *testing.T) {
	app := newTestApp()

	w := app.request(t, http.MethodPut, "/api/quizzes/"+uuid.New().String(),
		`{"title": "New"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestUpdateQuizBadDueDate(t *testing.T) {
	app := newTestApp()
	quiz := createQuiz(t, app)

	w := app.request(t, http.MethodPut, "/api/quizzes/"+quiz.ID.String(),
		`{"dueDate": "soon"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDeleteQuiz(t *testing.T) {
	app := newTestApp()
	quiz := createQuiz(t, app)

	w := app.request(t, http.MethodDelete, "/api/quizzes/"+quiz.ID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if msg := message(t, w); msg != "Quiz removed" {
		t.Errorf("message = %q", msg)
	}

	w = app.request(t, http.MethodDelete, "/api/quizzes/"+quiz.ID.String(), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", w.Code)
	}
}

func TestListQuizzes(t *testing.T) {
	app := newTestApp()
	createQuiz(t, app)

	w := app.request(t, http.MethodGet, "/api/quizzes", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var quizzes []model.Quiz
	decode(t, w, &quizzes)
	if len(quizzes) != 1 {
		t.Fatalf("got %d quizzes, want 1", len(quizzes))
	}
}

/* ---------------- Submit route ---------------- */

func TestSubmitQuiz(t *testing.T) {
	app := newTestApp()
	quiz := createQuiz(t, app)
	questionID := quiz.Questions[0].ID.String()

	body := `[{"questionId": "` + questionID + `", "selectedAnswerIndex": 1}]`
	w := app.request(t, http.MethodPost, "/api/quizzes/"+quiz.ID.String()+"/submit", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var result struct {
		Score          int     `json:"score"`
		TotalQuestions int     `json:"totalQuestions"`
		Percentage     float64 `json:"percentage"`
		Status         string  `json:"status"`
	}
	decode(t, w, &result)

	if result.Score != 1 || result.TotalQuestions != 1 {
		t.Errorf("got %+v, want 1/1", result)
	}
	if result.Percentage != 100 || result.Status != "pass" {
		t.Errorf("got %+v, want 100%% pass", result)
	}
}

func TestSubmitBodyMustBeArray(t *testing.T) {
	app := newTestApp()
	quiz := createQuiz(t, app)

	w := app.request(t, http.MethodPost, "/api/quizzes/"+quiz.ID.String()+"/submit",
		`{"questionId": "x", "selectedAnswerIndex": 1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := message(t, w); !strings.Contains(msg, "array") {
		t.Errorf("message = %q, should say the body must be an array", msg)
	}
}

func TestSubmitUnknownQuiz(t *testing.T) {
	app := newTestApp()

	w := app.request(t, http.MethodPost, "/api/quizzes/"+uuid.New().String()+"/submit", `[]`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

/* ---------------- Announcement routes ---------------- */

func TestCreateAnnouncement(t *testing.T) {
	app := newTestApp()

	w := app.request(t, http.MethodPost, "/api/announcements",
		`{"name": "Exam week", "course": "MATH 201", "content": "Room change", "img": "exam.png"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var a model.Announcement
	decode(t, w, &a)
	if a.ID == uuid.Nil || a.Name != "Exam week" {
		t.Errorf("unexpected announcement: %+v", a)
	}
}

func TestCreateAnnouncementMissingFields(t *testing.T) {
	app := newTestApp()

	w := app.request(t, http.MethodPost, "/api/announcements",
		`{"name": "Exam week"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := message(t, w); !strings.Contains(msg, "required fields") {
		t.Errorf("message = %q", msg)
	}
}

func TestAnnouncementUpdateAndDelete(t *testing.T) {
	app := newTestApp()

	w := app.request(t, http.MethodPost, "/api/announcements",
		`{"name": "Exam week", "course": "MATH 201", "content": "Room change", "img": "exam.png"}`)
	var a model.Announcement
	decode(t, w, &a)

	w = app.request(t, http.MethodPut, "/api/announcements/"+a.ID.String(),
		`{"content": "Room unchanged after all"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d", w.Code)
	}
	var updated model.Announcement
	decode(t, w, &updated)
	if updated.Content != "Room unchanged after all" || updated.Name != a.Name {
		t.Errorf("merge semantics broken: %+v", updated)
	}

	w = app.request(t, http.MethodDelete, "/api/announcements/"+a.ID.String(), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	if msg := message(t, w); msg != "Announcement removed" {
		t.Errorf("message = %q", msg)
	}
}
