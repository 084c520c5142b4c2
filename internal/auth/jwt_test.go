package auth

import (
	"strings"
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, "archivist")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Operator != "archivist" {
		t.Errorf("operator = %q, want archivist", claims.Operator)
	}
	if claims.ID == "" {
		t.Error("JTI not set")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("right-secret", "archivist")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken("wrong-secret", token); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenTampered(t *testing.T) {
	token, err := GenerateToken("secret", "archivist")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + ".eyJvcGVyYXRvciI6ImludHJ1ZGVyIn0." + parts[2]
	if _, err := ValidateToken("secret", tampered); err == nil {
		t.Error("expected validation to fail for tampered payload")
	}
}

func TestCheckAdminKey(t *testing.T) {
	if !CheckAdminKey("key", "key") {
		t.Error("matching keys rejected")
	}
	if CheckAdminKey("key", "other") {
		t.Error("mismatched keys accepted")
	}
	if CheckAdminKey("", "") {
		t.Error("empty configured key must never match")
	}
}
