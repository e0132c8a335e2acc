package service

import (
	"testing"
	"time"

	"signplay/internal/models"
)

func TestBuildUserStats(t *testing.T) {
	user := &models.User{ID: 1, Name: "Ana", Email: "ana@example.com"}

	tests := []struct {
		name          string
		user          *models.User
		totals        statTotals
		expectedGames int
		expectedAcc   int
		expectedRight int
		expectedWrong int
	}{
		{
			name:          "empty account",
			user:          user,
			totals:        statTotals{},
			expectedGames: 0,
			expectedAcc:   0,
			expectedRight: 0,
			expectedWrong: 0,
		},
		{
			name: "fifteen legacy answers count as one game",
			user: user,
			totals: statTotals{
				answerCount:   15,
				answerCorrect: 9,
			},
			expectedGames: 1,
			expectedAcc:   60,
			expectedRight: 9,
			expectedWrong: 6,
		},
		{
			name: "sessions and legacy combine",
			user: user,
			totals: statTotals{
				sessionCount:    2,
				questionCount:   20,
				questionCorrect: 15,
				answerCount:     10,
				answerCorrect:   5,
			},
			expectedGames: 3,
			expectedAcc:   67,
			expectedRight: 20,
			expectedWrong: 10,
		},
		{
			name: "stored aggregates win when higher",
			user: &models.User{ID: 1, TotalGamesPlayed: 9, AverageAccuracy: 80},
			totals: statTotals{
				sessionCount:    1,
				questionCount:   10,
				questionCorrect: 5,
			},
			expectedGames: 9,
			expectedAcc:   80,
			expectedRight: 5,
			expectedWrong: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := buildUserStats(tt.user, tt.totals)
			if result.TotalGamesPlayed != tt.expectedGames {
				t.Errorf("TotalGamesPlayed = %d, want %d", result.TotalGamesPlayed, tt.expectedGames)
			}
			if result.AverageAccuracy != tt.expectedAcc {
				t.Errorf("AverageAccuracy = %d, want %d", result.AverageAccuracy, tt.expectedAcc)
			}
			if result.CorrectAnswers != tt.expectedRight {
				t.Errorf("CorrectAnswers = %d, want %d", result.CorrectAnswers, tt.expectedRight)
			}
			if result.IncorrectAnswers != tt.expectedWrong {
				t.Errorf("IncorrectAnswers = %d, want %d", result.IncorrectAnswers, tt.expectedWrong)
			}
			// The merge never reports less than what was stored
			if result.TotalGamesPlayed < tt.user.TotalGamesPlayed {
				t.Errorf("TotalGamesPlayed %d decreased below stored %d", result.TotalGamesPlayed, tt.user.TotalGamesPlayed)
			}
			if result.AverageAccuracy < tt.user.AverageAccuracy {
				t.Errorf("AverageAccuracy %d decreased below stored %d", result.AverageAccuracy, tt.user.AverageAccuracy)
			}
		})
	}
}

func TestBuildRecentGames(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ended := base.Add(time.Hour)

	sessions := []models.GameSession{
		{ID: 1, TotalQuestions: 10, CorrectCount: 8, AverageAccuracy: 80, EndedAt: &ended},
		{ID: 2, TotalQuestions: 10, CorrectCount: 5, AverageAccuracy: 50, StartedAt: base},
	}
	answers := []models.AnswerRecord{
		{ID: 10, Question: "3 + 4", ExpectedAnswer: 7, ObservedAnswer: 7, Accuracy: 100, IsCorrect: true, RecordedAt: base.Add(2 * time.Hour)},
		{ID: 11, Question: "2 + 2", ExpectedAnswer: 4, ObservedAnswer: 5, Accuracy: 0, RecordedAt: base},
	}

	games := buildRecentGames(sessions, answers)

	if len(games) != 4 {
		t.Fatalf("len(games) = %d, want 4", len(games))
	}

	// Sessions come first even when a legacy answer is newer
	if games[0].ID != 1 || games[1].ID != 2 {
		t.Errorf("sessions not listed first: got IDs %d, %d", games[0].ID, games[1].ID)
	}
	if games[2].ID != 10 || games[3].ID != 11 {
		t.Errorf("legacy answers not appended after sessions: got IDs %d, %d", games[2].ID, games[3].ID)
	}

	if games[0].Question != "Game Session - 10 questions" {
		t.Errorf("session label = %q", games[0].Question)
	}
	// Session entries report the correct count in both answer fields
	if games[0].ExpectedAnswer != 8 || games[0].ObservedAnswer != 8 {
		t.Errorf("session answers = %d/%d, want 8/8", games[0].ExpectedAnswer, games[0].ObservedAnswer)
	}
	if !games[0].IsCorrect {
		t.Error("session with 80%% accuracy should count as correct")
	}
	if games[1].IsCorrect {
		t.Error("session with 50%% accuracy should not count as correct")
	}
	if !games[0].Timestamp.Equal(ended) {
		t.Errorf("completed session should use its end time, got %v", games[0].Timestamp)
	}
	if !games[1].Timestamp.Equal(base) {
		t.Errorf("session without end time should fall back to start time, got %v", games[1].Timestamp)
	}
}

func TestBuildRecentGamesCap(t *testing.T) {
	sessions := make([]models.GameSession, 4)
	for i := range sessions {
		sessions[i].ID = int64(i + 1)
	}
	answers := make([]models.AnswerRecord, 20)
	for i := range answers {
		answers[i].ID = int64(100 + i)
	}

	games := buildRecentGames(sessions, answers)
	if len(games) != 10 {
		t.Fatalf("len(games) = %d, want 10", len(games))
	}
	// 4 sessions leave 6 slots for legacy answers
	if games[3].ID != 4 {
		t.Errorf("games[3].ID = %d, want 4", games[3].ID)
	}
	if games[4].ID != 100 || games[9].ID != 105 {
		t.Errorf("legacy fill = %d..%d, want 100..105", games[4].ID, games[9].ID)
	}
}

func TestBuildTrends(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	questions := []models.QuestionResponse{
		{ID: 3, Accuracy: 100, IsCorrect: true, CapturedAt: base.Add(2 * time.Minute), QuestionText: "5 + 1"},
		{ID: 2, Accuracy: 0, CapturedAt: base.Add(time.Minute), QuestionText: "4 + 3"},
		{ID: 1, Accuracy: 100, IsCorrect: true, CapturedAt: base, QuestionText: "1 + 2"},
	}
	answers := []models.AnswerRecord{
		{ID: 20, Accuracy: 100, IsCorrect: true, RecordedAt: base, Question: "6 + 1"},
	}

	t.Run("question responses win when present", func(t *testing.T) {
		trends := buildTrends(questions, answers)
		if len(trends) != 3 {
			t.Fatalf("len(trends) = %d, want 3", len(trends))
		}
		// Oldest first after reversal
		if trends[0].ID != 1 || trends[2].ID != 3 {
			t.Errorf("trends not oldest-first: got IDs %d..%d", trends[0].ID, trends[2].ID)
		}
		for _, point := range trends {
			if point.ID == 20 {
				t.Error("legacy answer mixed into question-response trends")
			}
		}
	})

	t.Run("legacy fallback when no question responses", func(t *testing.T) {
		trends := buildTrends(nil, answers)
		if len(trends) != 1 {
			t.Fatalf("len(trends) = %d, want 1", len(trends))
		}
		if trends[0].ID != 20 || trends[0].Question != "6 + 1" {
			t.Errorf("unexpected fallback point: %+v", trends[0])
		}
	})

	t.Run("empty account has empty trends", func(t *testing.T) {
		trends := buildTrends(nil, nil)
		if len(trends) != 0 {
			t.Errorf("len(trends) = %d, want 0", len(trends))
		}
	})

	t.Run("only the ten newest points survive", func(t *testing.T) {
		many := make([]models.QuestionResponse, 15)
		for i := range many {
			// Newest first, as returned by the repository
			many[i].ID = int64(15 - i)
			many[i].CapturedAt = base.Add(time.Duration(15-i) * time.Minute)
		}
		trends := buildTrends(many, nil)
		if len(trends) != 10 {
			t.Fatalf("len(trends) = %d, want 10", len(trends))
		}
		if trends[0].ID != 6 || trends[9].ID != 15 {
			t.Errorf("trend window = %d..%d, want 6..15", trends[0].ID, trends[9].ID)
		}
	})
}
