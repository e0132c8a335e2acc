package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"signplay/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string                   `json:"version"`
	ExportedAt   time.Time                `json:"exported_at"`
	DatabaseType string                   `json:"database_type"`
	Users        []UserBackup             `json:"users"`
	Sessions     []SessionBackup          `json:"sessions"`
	Questions    []QuestionResponseBackup `json:"questions"`
	Answers      []AnswerRecordBackup     `json:"answers"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"password_hash"`
	Name             string    `json:"name"`
	OAuthProvider    string    `json:"oauth_provider"`
	OAuthSubject     string    `json:"oauth_subject"`
	TotalGamesPlayed int       `json:"total_games_played"`
	AverageAccuracy  int       `json:"average_accuracy"`
	DexterityScore   float64   `json:"dexterity_score"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SessionBackup represents a game session record for backup
type SessionBackup struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	StartedAt          time.Time  `json:"started_at"`
	EndedAt            *time.Time `json:"ended_at"`
	TotalQuestions     int        `json:"total_questions"`
	CorrectCount       int        `json:"correct_count"`
	IncorrectCount     int        `json:"incorrect_count"`
	AverageAccuracy    int        `json:"average_accuracy"`
	TotalScore         int        `json:"total_score"`
	BestDexterityScore float64    `json:"best_dexterity_score"`
	IsCompleted        bool       `json:"is_completed"`
	Notes              string     `json:"notes"`
}

// QuestionResponseBackup represents a question response record for backup
type QuestionResponseBackup struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	SessionID      int64     `json:"session_id"`
	QuestionIndex  int       `json:"question_index"`
	QuestionText   string    `json:"question_text"`
	ExpectedAnswer int       `json:"expected_answer"`
	ObservedAnswer int       `json:"observed_answer"`
	Confidence     float64   `json:"confidence"`
	ResponseTimeMs int       `json:"response_time_ms"`
	Accuracy       int       `json:"accuracy"`
	IsCorrect      bool      `json:"is_correct"`
	CapturedAt     time.Time `json:"captured_at"`
}

// AnswerRecordBackup represents a legacy answer record for backup
type AnswerRecordBackup struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Question       string    `json:"question"`
	ExpectedAnswer int       `json:"expected_answer"`
	ObservedAnswer int       `json:"observed_answer"`
	Accuracy       int       `json:"accuracy"`
	Speed          float64   `json:"speed"`
	DexterityScore float64   `json:"dexterity_score"`
	IsCorrect      bool      `json:"is_correct"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: "universal",
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportSessions(backup); err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}
	if err := s.exportQuestions(backup); err != nil {
		return fmt.Errorf("failed to export question responses: %w", err)
	}
	if err := s.exportAnswers(backup); err != nil {
		return fmt.Errorf("failed to export answer records: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d sessions, %d question responses, %d answer records",
		len(backup.Users), len(backup.Sessions), len(backup.Questions), len(backup.Answers))

	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader. The whole
// restore runs in one transaction so a failed import leaves no partial
// rows behind.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Import in order of dependencies
	if err := s.importUsers(tx, backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importSessions(tx, backup.Sessions); err != nil {
		return fmt.Errorf("failed to import sessions: %w", err)
	}
	if err := s.importQuestions(tx, backup.Questions); err != nil {
		return fmt.Errorf("failed to import question responses: %w", err)
	}
	if err := s.importAnswers(tx, backup.Answers); err != nil {
		return fmt.Errorf("failed to import answer records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := `SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''),
		COALESCE(oauth_subject, ''), total_games_played, average_accuracy,
		dexterity_score, created_at, updated_at FROM users ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.OAuthProvider,
			&u.OAuthSubject, &u.TotalGamesPlayed, &u.AverageAccuracy, &u.DexterityScore,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportSessions(backup *BackupData) error {
	query := `SELECT id, user_id, started_at, ended_at, total_questions, correct_count,
		incorrect_count, average_accuracy, total_score, best_dexterity_score,
		is_completed, COALESCE(notes, '') FROM game_sessions ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sess SessionBackup
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.StartedAt, &sess.EndedAt,
			&sess.TotalQuestions, &sess.CorrectCount, &sess.IncorrectCount,
			&sess.AverageAccuracy, &sess.TotalScore, &sess.BestDexterityScore,
			&sess.IsCompleted, &sess.Notes); err != nil {
			return err
		}
		backup.Sessions = append(backup.Sessions, sess)
	}
	return rows.Err()
}

func (s *BackupService) exportQuestions(backup *BackupData) error {
	query := `SELECT id, user_id, session_id, question_index, question_text,
		expected_answer, observed_answer, confidence, response_time_ms, accuracy,
		is_correct, captured_at FROM question_responses ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q QuestionResponseBackup
		if err := rows.Scan(&q.ID, &q.UserID, &q.SessionID, &q.QuestionIndex,
			&q.QuestionText, &q.ExpectedAnswer, &q.ObservedAnswer, &q.Confidence,
			&q.ResponseTimeMs, &q.Accuracy, &q.IsCorrect, &q.CapturedAt); err != nil {
			return err
		}
		backup.Questions = append(backup.Questions, q)
	}
	return rows.Err()
}

func (s *BackupService) exportAnswers(backup *BackupData) error {
	query := `SELECT id, user_id, question, expected_answer, observed_answer, accuracy,
		speed, dexterity_score, is_correct, recorded_at FROM answer_records ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AnswerRecordBackup
		if err := rows.Scan(&a.ID, &a.UserID, &a.Question, &a.ExpectedAnswer,
			&a.ObservedAnswer, &a.Accuracy, &a.Speed, &a.DexterityScore,
			&a.IsCorrect, &a.RecordedAt); err != nil {
			return err
		}
		backup.Answers = append(backup.Answers, a)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(dbtx database.DBTX, users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := `INSERT INTO users (id, email, password_hash, name, oauth_provider,
			oauth_subject, total_games_played, average_accuracy, dexterity_score,
			created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := dbtx.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name, u.OAuthProvider,
			u.OAuthSubject, u.TotalGamesPlayed, u.AverageAccuracy, u.DexterityScore,
			u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importSessions(dbtx database.DBTX, sessions []SessionBackup) error {
	log.Printf("Importing %d sessions...", len(sessions))
	for _, sess := range sessions {
		query := `INSERT INTO game_sessions (id, user_id, started_at, ended_at,
			total_questions, correct_count, incorrect_count, average_accuracy,
			total_score, best_dexterity_score, is_completed, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := dbtx.Exec(query, sess.ID, sess.UserID, sess.StartedAt, sess.EndedAt,
			sess.TotalQuestions, sess.CorrectCount, sess.IncorrectCount,
			sess.AverageAccuracy, sess.TotalScore, sess.BestDexterityScore,
			sess.IsCompleted, sess.Notes)
		if err != nil {
			return fmt.Errorf("failed to import session %d: %w", sess.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importQuestions(dbtx database.DBTX, questions []QuestionResponseBackup) error {
	log.Printf("Importing %d question responses...", len(questions))
	for _, q := range questions {
		query := `INSERT INTO question_responses (id, user_id, session_id, question_index,
			question_text, expected_answer, observed_answer, confidence,
			response_time_ms, accuracy, is_correct, captured_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := dbtx.Exec(query, q.ID, q.UserID, q.SessionID, q.QuestionIndex,
			q.QuestionText, q.ExpectedAnswer, q.ObservedAnswer, q.Confidence,
			q.ResponseTimeMs, q.Accuracy, q.IsCorrect, q.CapturedAt)
		if err != nil {
			return fmt.Errorf("failed to import question response %d: %w", q.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importAnswers(dbtx database.DBTX, answers []AnswerRecordBackup) error {
	log.Printf("Importing %d answer records...", len(answers))
	for _, a := range answers {
		query := `INSERT INTO answer_records (id, user_id, question, expected_answer,
			observed_answer, accuracy, speed, dexterity_score, is_correct, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := dbtx.Exec(query, a.ID, a.UserID, a.Question, a.ExpectedAnswer,
			a.ObservedAnswer, a.Accuracy, a.Speed, a.DexterityScore, a.IsCorrect,
			a.RecordedAt)
		if err != nil {
			return fmt.Errorf("failed to import answer record %d: %w", a.ID, err)
		}
	}
	return nil
}
