package repository

import (
	"database/sql"
	"fmt"
	"time"

	"signplay/internal/database"
	"signplay/internal/models"
)

// SessionRepository handles database operations for game sessions
type SessionRepository struct {
	db *database.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `id, user_id, started_at, ended_at, total_questions,
	correct_count, incorrect_count, average_accuracy, total_score,
	best_dexterity_score, is_completed, COALESCE(notes, '')`

// CreateSession opens a new game session for a user.
// There is no limit on how many open sessions a user may have.
func (r *SessionRepository) CreateSession(userID int64) (*models.GameSession, error) {
	now := time.Now()
	query := `
		INSERT INTO game_sessions (user_id, started_at)
		VALUES (?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.GameSession{
		ID:        id,
		UserID:    userID,
		StartedAt: now,
	}, nil
}

// GetSessionByID retrieves a session by ID
func (r *SessionRepository) GetSessionByID(sessionID int64) (*models.GameSession, error) {
	query := "SELECT " + sessionColumns + " FROM game_sessions WHERE id = ?"

	session, err := scanSession(r.db.QueryRow(query, sessionID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// CompleteSession writes the aggregate fields onto a session and marks it completed
func (r *SessionRepository) CompleteSession(sessionID int64, stats models.SessionStats, bestDexterityScore float64) error {
	query := `
		UPDATE game_sessions
		SET ended_at = ?, total_questions = ?, correct_count = ?, incorrect_count = ?,
		    average_accuracy = ?, total_score = ?, best_dexterity_score = ?, is_completed = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		time.Now(),
		stats.TotalQuestions,
		stats.CorrectCount,
		stats.IncorrectCount,
		stats.AverageAccuracy,
		stats.TotalScore,
		bestDexterityScore,
		true,
		sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// ListCompletedByUser returns a user's most recently completed sessions, newest first
func (r *SessionRepository) ListCompletedByUser(userID int64, limit int) ([]models.GameSession, error) {
	query := "SELECT " + sessionColumns + ` FROM game_sessions
		WHERE user_id = ? AND is_completed = ?
		ORDER BY ended_at DESC
		LIMIT ?`

	rows, err := r.db.Query(query, userID, true, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.GameSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}

	return sessions, rows.Err()
}

// CountCompletedByUser counts a user's completed sessions
func (r *SessionRepository) CountCompletedByUser(userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM game_sessions WHERE user_id = ? AND is_completed = ?"
	if err := r.db.QueryRow(query, userID, true).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}

// SessionTotals holds sums across a user's completed sessions
type SessionTotals struct {
	CompletedSessions int
	CorrectCount      int
	TotalQuestions    int
	BestDexterity     float64
}

// TotalsForUser aggregates correct counts, question counts and the best
// dexterity score across all of a user's completed sessions
func (r *SessionRepository) TotalsForUser(userID int64) (SessionTotals, error) {
	var totals SessionTotals
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(correct_count), 0),
		       COALESCE(SUM(total_questions), 0),
		       COALESCE(MAX(best_dexterity_score), 0)
		FROM game_sessions
		WHERE user_id = ? AND is_completed = ?
	`
	err := r.db.QueryRow(query, userID, true).Scan(
		&totals.CompletedSessions,
		&totals.CorrectCount,
		&totals.TotalQuestions,
		&totals.BestDexterity,
	)
	if err != nil {
		return SessionTotals{}, fmt.Errorf("failed to aggregate sessions: %w", err)
	}
	return totals, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*models.GameSession, error) {
	session := &models.GameSession{}
	var endedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.StartedAt,
		&endedAt,
		&session.TotalQuestions,
		&session.CorrectCount,
		&session.IncorrectCount,
		&session.AverageAccuracy,
		&session.TotalScore,
		&session.BestDexterityScore,
		&session.IsCompleted,
		&session.Notes,
	)
	if err != nil {
		return nil, err
	}

	if endedAt.Valid {
		session.EndedAt = &endedAt.Time
	}

	return session, nil
}
