package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := NewJWT("my-secret-key")

	userID := int64(123)
	email := "test@example.com"

	token, err := j.Generate(userID, email)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := j.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Validate() got UserID %d, want %d", claims.UserID, userID)
	}
	if claims.Email != email {
		t.Errorf("Validate() got Email %s, want %s", claims.Email, email)
	}
	if claims.Subject != "123" {
		t.Errorf("Validate() got Subject %q, want 123", claims.Subject)
	}

	// Tampered signature
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".invalid-signature"
	if _, err := j.Validate(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Validate() error = %v for tampered signature, want ErrTokenInvalid", err)
	}

	if _, err := j.Validate("invalid.token"); err == nil {
		t.Error("Validate() accepted invalid format")
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := NewJWT("secret-a").Generate(1, "a@example.com")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if _, err := NewJWT("secret-b").Validate(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Validate() error = %v, want ErrTokenInvalid", err)
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT("my-secret-key").WithTTL(-time.Hour)

	token, err := j.Generate(1, "expired@example.com")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := j.Validate(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Validate() error = %v for expired token, want ErrTokenExpired", err)
	}
}

func TestJWT_RejectsOtherAlgorithms(t *testing.T) {
	j := NewJWT("my-secret-key")

	claims := &JWTClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() failed: %v", err)
	}

	if _, err := j.Validate(token); err == nil {
		t.Error("Validate() accepted an unsigned token")
	}
}

func TestJWT_RequiresExpiry(t *testing.T) {
	j := NewJWT("my-secret-key")

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTClaims{UserID: 1}).SignedString([]byte("my-secret-key"))
	if err != nil {
		t.Fatalf("SignedString() failed: %v", err)
	}

	if _, err := j.Validate(token); err == nil {
		t.Error("Validate() accepted a token without exp")
	}
}
