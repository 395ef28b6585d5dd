package auth

import (
	"testing"
	"time"
)

func testTokens() TokenService {
	return TokenService{
		Secret:   []byte("test-secret"),
		Issuer:   "animecal-test",
		Duration: time.Hour,
	}
}

func TestSignParseRoundTrip(t *testing.T) {
	ts := testTokens()
	u := &User{ID: "u1", Username: "tester", Email: "t@example.com", TokenVersion: 3}

	token, exp, err := ts.Sign(u)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry should be in the future, got %v", exp)
	}

	claims, err := ts.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "tester" || claims.Email != "t@example.com" {
		t.Errorf("claims mismatch: %+v", claims)
	}
	if claims.TokenVersion != 3 {
		t.Errorf("token version: got %d", claims.TokenVersion)
	}
	if claims.Issuer != "animecal-test" || claims.Subject != "u1" {
		t.Errorf("registered claims mismatch: %+v", claims.RegisteredClaims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := testTokens().Sign(&User{ID: "u1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	other := TokenService{Secret: []byte("different"), Issuer: "animecal-test", Duration: time.Hour}
	if _, err := other.Parse(token); err == nil {
		t.Error("expected parse failure with wrong secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	ts := testTokens()
	ts.Duration = -time.Minute

	token, _, err := ts.Sign(&User{ID: "u1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := ts.Parse(token); err == nil {
		t.Error("expected parse failure for expired token")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := testTokens().Parse("not-a-jwt"); err == nil {
		t.Error("expected parse failure")
	}
}
