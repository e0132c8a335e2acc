package models

import "time"

// User represents a player account in the system
type User struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	PasswordHash  string `json:"-"`
	Name          string `json:"name"`
	OAuthProvider string `json:"-"`
	OAuthSubject  string `json:"-"`
	// Rolling aggregates, recomputed whenever a session or answer record
	// is finalized. Never decreased at read time (see stats service).
	TotalGamesPlayed int       `json:"totalGamesPlayed"`
	AverageAccuracy  int       `json:"averageAccuracy"`
	DexterityScore   float64   `json:"dexterityScore"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PasswordResetToken represents a token for password reset
type PasswordResetToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// IsExpired checks if the reset token has expired
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
