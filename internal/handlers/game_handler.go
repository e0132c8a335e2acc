package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"signplay/internal/models"
	"signplay/internal/service"
)

// GameHandler handles the game session and statistics endpoints
type GameHandler struct {
	gameService  *service.GameService
	statsService *service.StatsService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService, statsService *service.StatsService) *GameHandler {
	return &GameHandler{
		gameService:  gameService,
		statsService: statsService,
	}
}

// StartSession handles POST /api/game/start-session
func (h *GameHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	session, err := h.gameService.StartSession(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to start game session", "start session failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"gameId":  session.ID,
	})
}

type saveQuestionRequest struct {
	GameID          int64   `json:"gameId"`
	QuestionIndex   int     `json:"questionIndex"`
	QuestionText    string  `json:"questionText"`
	CorrectAnswer   int     `json:"correctAnswer"`
	PredictedAnswer int     `json:"predictedAnswer"`
	Accuracy        int     `json:"accuracy"`
	Confidence      float64 `json:"confidence"`
	ResponseTimeMs  int     `json:"responseTimeMs"`
}

// SaveQuestion handles POST /api/game/save-question
func (h *GameHandler) SaveQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	var req saveQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	response, err := h.gameService.RecordQuestion(userID, &models.QuestionResponse{
		SessionID:      req.GameID,
		QuestionIndex:  req.QuestionIndex,
		QuestionText:   req.QuestionText,
		ExpectedAnswer: req.CorrectAnswer,
		ObservedAnswer: req.PredictedAnswer,
		Accuracy:       req.Accuracy,
		Confidence:     req.Confidence,
		ResponseTimeMs: req.ResponseTimeMs,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save question", "save question failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questionResponse": response,
	})
}

// CompleteSession handles POST /api/game/complete-session
func (h *GameHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	var req struct {
		GameID int64 `json:"gameId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	stats, err := h.gameService.CompleteSession(userID, req.GameID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			respondWithError(w, http.StatusNotFound, "Game session not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to complete game session", "complete session failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"sessionStats": stats,
	})
}

type saveResultRequest struct {
	Question        string  `json:"question"`
	CorrectAnswer   int     `json:"correctAnswer"`
	PredictedAnswer int     `json:"predictedAnswer"`
	Accuracy        int     `json:"accuracy"`
	Speed           float64 `json:"speed"`
	DexterityScore  float64 `json:"dexterityScore"`
}

// SaveResult handles POST /api/game/save-result, the pre-session flow
func (h *GameHandler) SaveResult(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	var req saveResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	record, err := h.gameService.SaveLegacyResult(userID, &models.AnswerRecord{
		Question:       req.Question,
		ExpectedAnswer: req.CorrectAnswer,
		ObservedAnswer: req.PredictedAnswer,
		Accuracy:       req.Accuracy,
		Speed:          req.Speed,
		DexterityScore: req.DexterityScore,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to save game result", "save result failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"gameRecord": record,
	})
}

// Stats handles GET /api/game/stats
func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	stats, err := h.statsService.GetStats(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to load statistics", "get stats failed", err)
		return
	}

	// The dashboard reads user/recentGames/trends at the top level
	respondJSON(w, http.StatusOK, stats)
}

// History handles GET /api/game/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	records, err := h.gameService.History(userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load history", "get history failed", err)
		return
	}
	if records == nil {
		records = []models.AnswerRecord{}
	}

	// The history endpoint responds with the bare array
	respondJSON(w, http.StatusOK, records)
}

// TestAuth handles GET /api/game/test-auth, a connectivity check for the
// client to verify its stored token before starting a game
func (h *GameHandler) TestAuth(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"userId":  userID,
	})
}
