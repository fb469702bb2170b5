package services

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAuthToken("abc123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	subject, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if subject != "abc123" {
		t.Fatalf("subject = %q, want %q", subject, "abc123")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAuthToken("abc123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewJWTService("secret-b").ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestTokenGarbage(t *testing.T) {
	if _, err := NewJWTService("s").ValidateToken("not.a.jwt"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
