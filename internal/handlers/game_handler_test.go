package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"signplay/internal/database"
	"signplay/internal/models"
	"signplay/internal/repository"
	"signplay/internal/service"
)

type gameHandlerEnv struct {
	handler *GameHandler
	game    *service.GameService
	user    *models.User
}

func newGameHandlerEnv(t *testing.T) *gameHandlerEnv {
	t.Helper()

	db, err := database.InitializeSQLite(filepath.Join(t.TempDir(), "handler.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)

	game := service.NewGameService(sessionRepo, questionRepo, answerRepo, userRepo)
	stats := service.NewStatsService(userRepo, sessionRepo, questionRepo, answerRepo)

	user, err := userRepo.CreateUser("dash@example.com", "hash", "Player")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	return &gameHandlerEnv{
		handler: NewGameHandler(game, stats),
		game:    game,
		user:    user,
	}
}

func authedRequest(method, target string, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func TestStatsRespondsTopLevel(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newGameHandlerEnv(t)

	session, err := env.game.StartSession(env.user.ID)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if _, err := env.game.RecordQuestion(env.user.ID, &models.QuestionResponse{
		SessionID:      session.ID,
		QuestionText:   "3 + 4",
		ExpectedAnswer: 7,
		ObservedAnswer: 7,
		Accuracy:       100,
	}); err != nil {
		t.Fatalf("RecordQuestion() error = %v", err)
	}
	if _, err := env.game.CompleteSession(env.user.ID, session.ID); err != nil {
		t.Fatalf("CompleteSession() error = %v", err)
	}

	recorder := httptest.NewRecorder()
	env.handler.Stats(recorder, authedRequest("GET", "/api/game/stats", env.user.ID))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}

	// The dashboard reads the merged structure directly, not a wrapper
	var body map[string]json.RawMessage
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	for _, key := range []string{"user", "recentGames", "trends"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
	if _, ok := body["stats"]; ok {
		t.Error("statistics should not be nested under a wrapper key")
	}

	var userBlock models.UserStats
	if err := json.Unmarshal(body["user"], &userBlock); err != nil {
		t.Fatalf("failed to decode user block: %v", err)
	}
	if userBlock.TotalGamesPlayed != 1 {
		t.Errorf("TotalGamesPlayed = %d, want 1", userBlock.TotalGamesPlayed)
	}
}

func TestHistoryRespondsWithBareArray(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newGameHandlerEnv(t)

	recorder := httptest.NewRecorder()
	env.handler.History(recorder, authedRequest("GET", "/api/game/history", env.user.ID))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	// An empty history is an empty array, not null or an object
	if body := bytes.TrimSpace(recorder.Body.Bytes()); len(body) == 0 || body[0] != '[' {
		t.Fatalf("expected a JSON array, got %q", body)
	}

	if _, err := env.game.SaveLegacyResult(env.user.ID, &models.AnswerRecord{
		Question:       "2 + 2",
		ExpectedAnswer: 4,
		ObservedAnswer: 4,
		Accuracy:       100,
	}); err != nil {
		t.Fatalf("SaveLegacyResult() error = %v", err)
	}

	recorder = httptest.NewRecorder()
	env.handler.History(recorder, authedRequest("GET", "/api/game/history", env.user.ID))

	var records []models.AnswerRecord
	if err := json.Unmarshal(recorder.Body.Bytes(), &records); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(records) != 1 || records[0].Question != "2 + 2" {
		t.Fatalf("unexpected history: %+v", records)
	}
}
