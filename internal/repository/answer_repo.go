package repository

import (
	"fmt"
	"time"

	"signplay/internal/database"
	"signplay/internal/models"
)

// AnswerRepository handles database operations for legacy answer records
type AnswerRepository struct {
	db *database.DB
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(db *database.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

const answerColumns = `id, user_id, question, expected_answer, observed_answer,
	accuracy, speed, dexterity_score, is_correct, recorded_at`

// CreateRecord stores one legacy answer record
func (r *AnswerRepository) CreateRecord(record *models.AnswerRecord) (*models.AnswerRecord, error) {
	now := time.Now()
	query := `
		INSERT INTO answer_records
			(user_id, question, expected_answer, observed_answer, accuracy,
			 speed, dexterity_score, is_correct, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		record.UserID,
		record.Question,
		record.ExpectedAnswer,
		record.ObservedAnswer,
		record.Accuracy,
		record.Speed,
		record.DexterityScore,
		record.IsCorrect,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create answer record: %w", err)
	}

	created := *record
	created.ID = id
	created.RecordedAt = now
	return &created, nil
}

// ListByUser returns all of a user's answer records, newest first
func (r *AnswerRepository) ListByUser(userID int64) ([]models.AnswerRecord, error) {
	query := "SELECT " + answerColumns + ` FROM answer_records
		WHERE user_id = ?
		ORDER BY recorded_at DESC`

	return r.queryRecords(query, userID)
}

// ListRecentByUser returns a user's most recent answer records, newest first
func (r *AnswerRepository) ListRecentByUser(userID int64, limit int) ([]models.AnswerRecord, error) {
	query := "SELECT " + answerColumns + ` FROM answer_records
		WHERE user_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?`

	return r.queryRecords(query, userID, limit)
}

// CountByUser counts all of a user's answer records
func (r *AnswerRepository) CountByUser(userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM answer_records WHERE user_id = ?"
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count answer records: %w", err)
	}
	return count, nil
}

// CountCorrectByUser counts a user's correct answer records
func (r *AnswerRepository) CountCorrectByUser(userID int64) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM answer_records WHERE user_id = ? AND is_correct = ?"
	if err := r.db.QueryRow(query, userID, true).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count correct answer records: %w", err)
	}
	return count, nil
}

// AnswerAggregates holds averages across a user's answer records
type AnswerAggregates struct {
	Count         int
	MeanAccuracy  float64
	BestDexterity float64
}

// AggregatesForUser computes the mean accuracy and the best dexterity
// score across all of a user's answer records
func (r *AnswerRepository) AggregatesForUser(userID int64) (AnswerAggregates, error) {
	var agg AnswerAggregates
	query := `
		SELECT COUNT(*),
		       COALESCE(AVG(accuracy), 0),
		       COALESCE(MAX(dexterity_score), 0)
		FROM answer_records
		WHERE user_id = ?
	`
	err := r.db.QueryRow(query, userID).Scan(&agg.Count, &agg.MeanAccuracy, &agg.BestDexterity)
	if err != nil {
		return AnswerAggregates{}, fmt.Errorf("failed to aggregate answer records: %w", err)
	}
	return agg, nil
}

func (r *AnswerRepository) queryRecords(query string, args ...interface{}) ([]models.AnswerRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list answer records: %w", err)
	}
	defer rows.Close()

	var records []models.AnswerRecord
	for rows.Next() {
		var record models.AnswerRecord
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Question,
			&record.ExpectedAnswer,
			&record.ObservedAnswer,
			&record.Accuracy,
			&record.Speed,
			&record.DexterityScore,
			&record.IsCorrect,
			&record.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}
