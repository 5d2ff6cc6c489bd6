package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/App-Dev-Project1/TigerTrack-Lost-Found-System/internal/model"
)

func testUser() *model.User {
	return &model.User{ID: 1, Username: "desk", Role: model.RoleOperator}
}

func TestIssueAndValidate(t *testing.T) {
	s := NewSessions("test-secret-key", 0)

	token, issued, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := s.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != 1 {
		t.Errorf("expected uid 1, got %d", claims.UserID)
	}
	if claims.Username != "desk" {
		t.Errorf("expected username 'desk', got %q", claims.Username)
	}
	if claims.Role != model.RoleOperator {
		t.Errorf("expected role 'operator', got %q", claims.Role)
	}
	if claims.ID != issued.ID {
		t.Errorf("expected jti %q, got %q", issued.ID, claims.ID)
	}
}

func TestUniqueJTI(t *testing.T) {
	s := NewSessions("secret", 0)
	_, a, _ := s.Issue(testUser())
	_, b, _ := s.Issue(testUser())
	if a.ID == b.ID {
		t.Error("expected distinct token ids")
	}
}

func TestValidateWrongSecret(t *testing.T) {
	token, _, _ := NewSessions("secret1", 0).Issue(testUser())

	_, err := NewSessions("secret2", 0).Validate(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	_, err := NewSessions("secret", 0).Validate("not-a-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestExpiry(t *testing.T) {
	s := NewSessions("secret", time.Hour)
	start := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }

	token, claims, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !claims.ExpiresAt.Time.Equal(start.Add(time.Hour)) {
		t.Errorf("expected expiry %v, got %v", start.Add(time.Hour), claims.ExpiresAt.Time)
	}

	s.now = func() time.Time { return start.Add(59 * time.Minute) }
	if _, err := s.Validate(token); err != nil {
		t.Errorf("token should still be valid: %v", err)
	}

	s.now = func() time.Time { return start.Add(61 * time.Minute) }
	if _, err := s.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected wrong password to fail")
	}
}
