package repository

import (
	"fmt"
	"time"

	"signplay/internal/database"
	"signplay/internal/models"
)

// QuestionRepository handles database operations for question responses
type QuestionRepository struct {
	db *database.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, user_id, session_id, question_index, question_text,
	expected_answer, observed_answer, confidence, response_time_ms,
	accuracy, is_correct, captured_at`

// CreateResponse records one answered question within a session.
// No check that the session is still open or that the index is unique;
// rows are filtered by (session, user) when read back.
func (r *QuestionRepository) CreateResponse(response *models.QuestionResponse) (*models.QuestionResponse, error) {
	now := time.Now()
	query := `
		INSERT INTO question_responses
			(user_id, session_id, question_index, question_text, expected_answer,
			 observed_answer, confidence, response_time_ms, accuracy, is_correct, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		response.UserID,
		response.SessionID,
		response.QuestionIndex,
		response.QuestionText,
		response.ExpectedAnswer,
		response.ObservedAnswer,
		response.Confidence,
		response.ResponseTimeMs,
		response.Accuracy,
		response.IsCorrect,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create question response: %w", err)
	}

	created := *response
	created.ID = id
	created.CapturedAt = now
	return &created, nil
}

// ListBySession returns all responses for a session belonging to a user
func (r *QuestionRepository) ListBySession(sessionID, userID int64) ([]models.QuestionResponse, error) {
	query := "SELECT " + questionColumns + ` FROM question_responses
		WHERE session_id = ? AND user_id = ?
		ORDER BY question_index ASC`

	return r.queryResponses(query, sessionID, userID)
}

// ListRecentByUser returns a user's most recent responses, newest first
func (r *QuestionRepository) ListRecentByUser(userID int64, limit int) ([]models.QuestionResponse, error) {
	query := "SELECT " + questionColumns + ` FROM question_responses
		WHERE user_id = ?
		ORDER BY captured_at DESC
		LIMIT ?`

	return r.queryResponses(query, userID, limit)
}

// CountByUser counts all of a user's question responses
func (r *QuestionRepository) CountByUser(userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM question_responses WHERE user_id = ?"
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}

// CountCorrectByUser counts a user's correct question responses
func (r *QuestionRepository) CountCorrectByUser(userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM question_responses WHERE user_id = ? AND is_correct = ?"
	if err := r.db.QueryRow(query, userID, true).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count correct responses: %w", err)
	}
	return count, nil
}

func (r *QuestionRepository) queryResponses(query string, args ...interface{}) ([]models.QuestionResponse, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var responses []models.QuestionResponse
	for rows.Next() {
		var response models.QuestionResponse
		err := rows.Scan(
			&response.ID,
			&response.UserID,
			&response.SessionID,
			&response.QuestionIndex,
			&response.QuestionText,
			&response.ExpectedAnswer,
			&response.ObservedAnswer,
			&response.Confidence,
			&response.ResponseTimeMs,
			&response.Accuracy,
			&response.IsCorrect,
			&response.CapturedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, response)
	}

	return responses, rows.Err()
}
