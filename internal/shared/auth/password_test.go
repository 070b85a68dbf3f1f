package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "my-secure-password"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty hash")
	}
	if hash == password {
		t.Fatal("HashPassword() returned plaintext password")
	}

	// Verify it's a valid bcrypt hash
	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		t.Errorf("HashPassword() produced invalid bcrypt hash: %v", err)
	}
}

func TestHashPassword_DifferentHashesForSamePassword(t *testing.T) {
	password := "same-password"
	hash1, _ := HashPassword(password)
	hash2, _ := HashPassword(password)

	if hash1 == hash2 {
		t.Error("HashPassword() produced identical hashes for same password (no salt)")
	}
}

func TestHashPassword_MatchesOnlyOriginal(t *testing.T) {
	hash, _ := HashPassword("correct-password")

	tests := []struct {
		name      string
		candidate string
		wantMatch bool
	}{
		{name: "Correct password", candidate: "correct-password", wantMatch: true},
		{name: "Wrong password", candidate: "wrong-password", wantMatch: false},
		{name: "Empty password", candidate: "", wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(tt.candidate))
			if (err == nil) != tt.wantMatch {
				t.Errorf("match = %v, want %v", err == nil, tt.wantMatch)
			}
		})
	}
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	hash, err := HashPassword("")
	if err != nil {
		t.Fatalf("HashPassword() failed with empty password: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), nil); err != nil {
		t.Errorf("empty password roundtrip failed: %v", err)
	}
}
