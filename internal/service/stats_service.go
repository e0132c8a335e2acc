package service

import (
	"fmt"

	"signplay/internal/models"
	"signplay/internal/repository"
)

const (
	recentGamesLimit = 10
	recentFetchLimit = 20
	trendsLimit      = 10

	// every 10 legacy answers count as one game for the derived total
	legacyAnswersPerGame = 10
)

// StatsService merges session-based and legacy answer data into the
// dashboard statistics view
type StatsService struct {
	userRepo     *repository.UserRepository
	sessionRepo  *repository.SessionRepository
	questionRepo *repository.QuestionRepository
	answerRepo   *repository.AnswerRepository
}

// NewStatsService creates a new stats service
func NewStatsService(userRepo *repository.UserRepository, sessionRepo *repository.SessionRepository, questionRepo *repository.QuestionRepository, answerRepo *repository.AnswerRepository) *StatsService {
	return &StatsService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
	}
}

// GetStats builds the dashboard view for a user. Games-played and accuracy
// are derived across both data sources and then merged with the stored
// account aggregates by taking the maximum per field, so the reported
// numbers never go down between reads.
func (s *StatsService) GetStats(userID int64) (*models.PlayerStats, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	sessions, err := s.sessionRepo.ListCompletedByUser(userID, recentGamesLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sessionCount, err := s.sessionRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	questions, err := s.questionRepo.ListRecentByUser(userID, recentFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list question responses: %w", err)
	}
	questionCount, err := s.questionRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count question responses: %w", err)
	}
	questionCorrect, err := s.questionRepo.CountCorrectByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count correct responses: %w", err)
	}

	answers, err := s.answerRepo.ListRecentByUser(userID, recentFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list answer records: %w", err)
	}
	answerCount, err := s.answerRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count answer records: %w", err)
	}
	answerCorrect, err := s.answerRepo.CountCorrectByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count correct answer records: %w", err)
	}

	userBlock := buildUserStats(user, statTotals{
		sessionCount:    sessionCount,
		questionCount:   questionCount,
		questionCorrect: questionCorrect,
		answerCount:     answerCount,
		answerCorrect:   answerCorrect,
	})

	return &models.PlayerStats{
		User:        userBlock,
		RecentGames: buildRecentGames(sessions, answers),
		Recent:      questions,
		Trends:      buildTrends(questions, answers),
	}, nil
}

type statTotals struct {
	sessionCount    int
	questionCount   int
	questionCorrect int
	answerCount     int
	answerCorrect   int
}

// buildUserStats derives the user block, merging derived games-played and
// accuracy with the stored aggregates via max so neither decreases
func buildUserStats(user *models.User, totals statTotals) models.UserStats {
	derivedGames := totals.sessionCount + totals.answerCount/legacyAnswersPerGame
	totalCorrect := totals.questionCorrect + totals.answerCorrect
	totalAnswers := totals.questionCount + totals.answerCount
	accuracyRate := roundPercent(totalCorrect, totalAnswers)

	return models.UserStats{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		TotalGamesPlayed: max(derivedGames, user.TotalGamesPlayed),
		AverageAccuracy:  max(accuracyRate, user.AverageAccuracy),
		CorrectAnswers:   totalCorrect,
		IncorrectAnswers: totalAnswers - totalCorrect,
		DexterityScore:   user.DexterityScore,
	}
}

// buildRecentGames fills up to 10 entries, completed sessions first and
// legacy answers after. The two sources are concatenated, not merged by
// timestamp, so a legacy answer newer than every session still lists after
// the sessions.
func buildRecentGames(sessions []models.GameSession, answers []models.AnswerRecord) []models.RecentGame {
	games := make([]models.RecentGame, 0, recentGamesLimit)

	for _, session := range sessions {
		if len(games) == recentGamesLimit {
			break
		}
		timestamp := session.StartedAt
		if session.EndedAt != nil {
			timestamp = *session.EndedAt
		}
		games = append(games, models.RecentGame{
			ID:             session.ID,
			Question:       fmt.Sprintf("Game Session - %d questions", session.TotalQuestions),
			ExpectedAnswer: session.CorrectCount,
			ObservedAnswer: session.CorrectCount,
			Accuracy:       session.AverageAccuracy,
			IsCorrect:      session.AverageAccuracy >= 70,
			Timestamp:      timestamp,
		})
	}

	for _, answer := range answers {
		if len(games) == recentGamesLimit {
			break
		}
		games = append(games, models.RecentGame{
			ID:             answer.ID,
			Question:       answer.Question,
			ExpectedAnswer: answer.ExpectedAnswer,
			ObservedAnswer: answer.ObservedAnswer,
			Accuracy:       answer.Accuracy,
			IsCorrect:      answer.IsCorrect,
			Timestamp:      answer.RecordedAt,
		})
	}

	return games
}

// buildTrends returns up to 10 points, oldest first. Question responses
// win outright when any exist; legacy answers are only a fallback, the two
// sources are never mixed.
func buildTrends(questions []models.QuestionResponse, answers []models.AnswerRecord) []models.TrendPoint {
	if len(questions) > 0 {
		n := min(len(questions), trendsLimit)
		points := make([]models.TrendPoint, 0, n)
		for i := n - 1; i >= 0; i-- {
			q := questions[i]
			points = append(points, models.TrendPoint{
				ID:        q.ID,
				Accuracy:  q.Accuracy,
				IsCorrect: q.IsCorrect,
				Timestamp: q.CapturedAt,
				Question:  q.QuestionText,
			})
		}
		return points
	}

	n := min(len(answers), trendsLimit)
	points := make([]models.TrendPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		a := answers[i]
		points = append(points, models.TrendPoint{
			ID:        a.ID,
			Accuracy:  a.Accuracy,
			IsCorrect: a.IsCorrect,
			Timestamp: a.RecordedAt,
			Question:  a.Question,
		})
	}
	return points
}
