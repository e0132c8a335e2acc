package models

import "time"

// UserStats is the user block of the dashboard statistics response.
// Games-played and accuracy are the max of the stored account aggregates
// and the values derived at read time, so they never decrease.
type UserStats struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	TotalGamesPlayed int     `json:"totalGamesPlayed"`
	AverageAccuracy  int     `json:"averageAccuracy"`
	CorrectAnswers   int     `json:"correctAnswers"`
	IncorrectAnswers int     `json:"incorrectAnswers"`
	DexterityScore   float64 `json:"dexterityScore"`
}

// RecentGame is one entry of the dashboard's recent-games list. Completed
// sessions and legacy answer records are both projected into this shape.
type RecentGame struct {
	ID             int64     `json:"id"`
	Question       string    `json:"question"`
	ExpectedAnswer int       `json:"correctAnswer"`
	ObservedAnswer int       `json:"predictedAnswer"`
	Accuracy       int       `json:"accuracy"`
	IsCorrect      bool      `json:"isCorrect"`
	Timestamp      time.Time `json:"timestamp"`
}

// TrendPoint is one entry of the dashboard's accuracy trend, oldest first
type TrendPoint struct {
	ID        int64     `json:"id"`
	Accuracy  int       `json:"accuracy"`
	IsCorrect bool      `json:"isCorrect"`
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
}

// PlayerStats is the full dashboard statistics response
type PlayerStats struct {
	User        UserStats          `json:"user"`
	RecentGames []RecentGame       `json:"recentGames"`
	Recent      []QuestionResponse `json:"recentQuestions"`
	Trends      []TrendPoint       `json:"trends"`
}
