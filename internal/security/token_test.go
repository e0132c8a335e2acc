package security

import (
	"testing"
	"time"
)

func TestTokenIssueAndVerify(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned empty token")
	}

	userID, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() userID = %d, want 42", userID)
	}
}

func TestTokenVerifyRejects(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	otherManager := NewTokenManager("other-secret", time.Hour)
	expiredManager := NewTokenManager("test-secret", -time.Minute)

	validToken, err := manager.Issue(7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	foreignToken, err := otherManager.Issue(7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	expiredToken, err := expiredManager.Issue(7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "garbage token", token: "abc.def.ghi"},
		{name: "wrong secret", token: foreignToken},
		{name: "expired token", token: expiredToken},
		{name: "truncated token", token: validToken[:len(validToken)-5]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Verify(tt.token); err == nil {
				t.Error("Verify() accepted an invalid token")
			}
		})
	}
}
