package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestAuthenticator(exp time.Duration) *JWTAuthenticator {
	return NewJWTAuthenticator("test-secret", "mensa", "mensa", exp)
}

func TestUserTokenRoundTrip(t *testing.T) {
	a := newTestAuthenticator(2 * time.Hour)

	token, err := a.GenerateUserToken(42, "kathmandu", "ramesh")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if got := claims["userId"].(float64); got != 42 {
		t.Errorf("userId = %v, want 42", got)
	}
	if claims["site"] != "kathmandu" || claims["username"] != "ramesh" {
		t.Errorf("unexpected claims: %v", claims)
	}
	if _, hasRole := claims["role"]; hasRole {
		t.Error("user token must not carry a role claim")
	}
}

func TestAdminTokenCarriesRole(t *testing.T) {
	a := newTestAuthenticator(2 * time.Hour)

	token, err := a.GenerateAdminToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	if claims["role"] != "admin" {
		t.Errorf("role = %v, want admin", claims["role"])
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	a := newTestAuthenticator(-time.Minute)

	token, err := a.GenerateUserToken(1, "site", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := a.ValidateToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	a := newTestAuthenticator(2 * time.Hour)
	other := NewJWTAuthenticator("other-secret", "mensa", "mensa", 2*time.Hour)

	token, err := other.GenerateUserToken(1, "site", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := a.ValidateToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	a := newTestAuthenticator(2 * time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := a.ValidateToken(token); err == nil {
			t.Fatalf("expected %q to be rejected", token)
		}
	}
}
