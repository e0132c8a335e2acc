package service

import (
	"errors"
	"fmt"
	"math"

	"signplay/internal/models"
	"signplay/internal/repository"
)

var ErrSessionNotFound = errors.New("game session not found")

// GameService handles the quiz session lifecycle and account aggregates
type GameService struct {
	sessionRepo  *repository.SessionRepository
	questionRepo *repository.QuestionRepository
	answerRepo   *repository.AnswerRepository
	userRepo     *repository.UserRepository
}

// NewGameService creates a new game service
func NewGameService(sessionRepo *repository.SessionRepository, questionRepo *repository.QuestionRepository, answerRepo *repository.AnswerRepository, userRepo *repository.UserRepository) *GameService {
	return &GameService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		userRepo:     userRepo,
	}
}

// StartSession opens a new quiz session for a user
func (s *GameService) StartSession(userID int64) (*models.GameSession, error) {
	session, err := s.sessionRepo.CreateSession(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return session, nil
}

// RecordQuestion stores one answered question within a session. Correctness
// is derived from the expected and observed answers, never taken from the
// client. The session is not checked for existence, ownership or openness;
// responses are filtered by (session, user) when read back at completion.
func (s *GameService) RecordQuestion(userID int64, response *models.QuestionResponse) (*models.QuestionResponse, error) {
	response.UserID = userID
	response.IsCorrect = response.ExpectedAnswer == response.ObservedAnswer

	created, err := s.questionRepo.CreateResponse(response)
	if err != nil {
		return nil, fmt.Errorf("failed to record question: %w", err)
	}
	return created, nil
}

// CompleteSession closes a session, computes its aggregate stats from the
// recorded questions and refreshes the user's account aggregates from all
// completed sessions. The two writes are sequential, not atomic; a crash
// between them leaves the account aggregates one session behind until the
// next completion.
func (s *GameService) CompleteSession(userID, sessionID int64) (*models.SessionStats, error) {
	session, err := s.sessionRepo.GetSessionByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, ErrSessionNotFound
	}

	responses, err := s.questionRepo.ListBySession(sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	stats := summarizeResponses(responses)
	bestDexterity := dexterityFromAccuracy(stats.AverageAccuracy)

	if err := s.sessionRepo.CompleteSession(sessionID, stats, bestDexterity); err != nil {
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	if err := s.refreshUserAggregates(userID); err != nil {
		return nil, fmt.Errorf("failed to update user aggregates: %w", err)
	}

	return &stats, nil
}

// refreshUserAggregates recomputes the account-level counters from all of
// the user's completed sessions
func (s *GameService) refreshUserAggregates(userID int64) error {
	totals, err := s.sessionRepo.TotalsForUser(userID)
	if err != nil {
		return err
	}

	averageAccuracy := roundPercent(totals.CorrectCount, totals.TotalQuestions)
	return s.userRepo.UpdateAggregates(userID, totals.CompletedSessions, averageAccuracy, totals.BestDexterity)
}

// SaveLegacyResult stores a single pre-session answer record and bumps the
// account counters the legacy way: one game per answer, with accuracy and
// dexterity recomputed over all answer records. Unknown users get the
// record stored but no counter update.
func (s *GameService) SaveLegacyResult(userID int64, record *models.AnswerRecord) (*models.AnswerRecord, error) {
	record.UserID = userID
	record.IsCorrect = record.ExpectedAnswer == record.ObservedAnswer

	created, err := s.answerRepo.CreateRecord(record)
	if err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return created, nil
	}

	aggregates, err := s.answerRepo.AggregatesForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate answer records: %w", err)
	}

	averageAccuracy := int(math.Round(aggregates.MeanAccuracy))
	if err := s.userRepo.UpdateAggregates(userID, user.TotalGamesPlayed+1, averageAccuracy, aggregates.BestDexterity); err != nil {
		return nil, fmt.Errorf("failed to update user aggregates: %w", err)
	}

	return created, nil
}

// History returns all of a user's legacy answer records, newest first
func (s *GameService) History(userID int64) ([]models.AnswerRecord, error) {
	records, err := s.answerRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return records, nil
}

// summarizeResponses reduces a session's question responses to its
// aggregate stats. Accuracy is the share of correct answers as a rounded
// percentage, and the score awards 10 points per correct answer.
func summarizeResponses(responses []models.QuestionResponse) models.SessionStats {
	correct := 0
	for _, r := range responses {
		if r.IsCorrect {
			correct++
		}
	}
	total := len(responses)
	return models.SessionStats{
		TotalQuestions:  total,
		CorrectCount:    correct,
		IncorrectCount:  total - correct,
		AverageAccuracy: roundPercent(correct, total),
		TotalScore:      correct * 10,
	}
}

// roundPercent returns correct/total as a rounded percentage, 0 when there
// is nothing to divide by
func roundPercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// dexterityFromAccuracy maps a session's average accuracy to a dexterity
// score on a 70 to 100 scale, capped at 100
func dexterityFromAccuracy(averageAccuracy int) float64 {
	score := 70 + float64(averageAccuracy)*0.3
	return math.Min(100, score)
}
