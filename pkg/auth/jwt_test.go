package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("s3cret", time.Hour)
	tok, err := m.GenerateToken("user-1", RoleInstitution, "bfa")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := m.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID() != "user-1" || claims.Role != RoleInstitution || claims.InstitutionID != "bfa" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IsStaff() {
		t.Fatal("institution should be staff")
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("s3cret", time.Hour)

	other := NewJWTManager("different", time.Hour)
	foreign, _ := other.GenerateToken("user-1", RoleApplicant, "")

	expired, _ := NewJWTManager("s3cret", -time.Minute).GenerateToken("user-1", RoleApplicant, "")

	badRole, _ := m.GenerateToken("user-1", Role("root"), "")
	noSubject, _ := m.GenerateToken("", RoleApplicant, "")

	for name, tok := range map[string]string{
		"garbage":    "not.a.token",
		"foreign":    foreign,
		"expired":    expired,
		"bad role":   badRole,
		"no subject": noSubject,
	} {
		if _, err := m.ValidateToken(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: want ErrInvalidToken, got %v", name, err)
		}
	}
}
