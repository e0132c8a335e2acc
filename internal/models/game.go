package models

import "time"

// GameSession represents one quiz run of up to 10 questions.
// Aggregate fields hold zero values until IsCompleted is set; readers
// must not trust them before completion.
type GameSession struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"userId"`
	StartedAt          time.Time  `json:"startedAt"`
	EndedAt            *time.Time `json:"endedAt,omitempty"`
	TotalQuestions     int        `json:"totalQuestions"`
	CorrectCount       int        `json:"correctCount"`
	IncorrectCount     int        `json:"incorrectCount"`
	AverageAccuracy    int        `json:"averageAccuracy"`
	TotalScore         int        `json:"totalScore"`
	BestDexterityScore float64    `json:"bestDexterityScore"`
	IsCompleted        bool       `json:"isCompleted"`
	Notes              string     `json:"notes,omitempty"`
}

// QuestionResponse represents one answered question within a session.
// Immutable once written.
type QuestionResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	SessionID      int64     `json:"gameId"`
	QuestionIndex  int       `json:"questionIndex"`
	QuestionText   string    `json:"questionText"`
	ExpectedAnswer int       `json:"correctAnswer"`
	ObservedAnswer int       `json:"predictedAnswer"`
	Confidence     float64   `json:"confidence"`
	ResponseTimeMs int       `json:"responseTimeMs"`
	Accuracy       int       `json:"accuracy"`
	IsCorrect      bool      `json:"isCorrect"`
	CapturedAt     time.Time `json:"capturedAt"`
}

// AnswerRecord is a pre-session-model record of one question/answer pair.
// The dexterity score is assigned by the client at write time, not derived
// from gesture confidence. Immutable once written.
type AnswerRecord struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	Question       string    `json:"question"`
	ExpectedAnswer int       `json:"correctAnswer"`
	ObservedAnswer int       `json:"predictedAnswer"`
	Accuracy       int       `json:"accuracy"`
	Speed          float64   `json:"speed"`
	DexterityScore float64   `json:"dexterityScore"`
	IsCorrect      bool      `json:"isCorrect"`
	RecordedAt     time.Time `json:"timestamp"`
}

// SessionStats holds the aggregate counts returned on session completion
type SessionStats struct {
	TotalQuestions  int `json:"totalQuestions"`
	CorrectCount    int `json:"correctCount"`
	IncorrectCount  int `json:"incorrectCount"`
	AverageAccuracy int `json:"averageAccuracy"`
	TotalScore      int `json:"totalScore"`
}
