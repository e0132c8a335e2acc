package security

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty hash")
	}
	if hash == "correct horse battery" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	// Same input produces a different hash each time (random salt)
	other, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == other {
		t.Error("two hashes of the same password are identical")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("sesame-open-8")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		expected bool
	}{
		{name: "correct password", password: "sesame-open-8", hash: hash, expected: true},
		{name: "wrong password", password: "sesame-open-9", hash: hash, expected: false},
		{name: "empty password", password: "", hash: hash, expected: false},
		{name: "malformed hash", password: "sesame-open-8", hash: "not-a-hash", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := CheckPassword(tt.password, tt.hash); result != tt.expected {
				t.Errorf("CheckPassword() = %v, want %v", result, tt.expected)
			}
		})
	}
}
