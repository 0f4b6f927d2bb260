package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
)

func TestTokenIssuer_SignAndVerify(t *testing.T) {
	issuer := auth.TokenIssuer{
		Secret:   []byte("unit-test-secret"),
		TokenTTL: time.Hour,
	}

	t.Run("round-trips the claims", func(t *testing.T) {
		token, expiresAt, err := issuer.Sign("user-1", "account-1", "member")
		if err != nil {
			t.Fatalf("Sign() returned unexpected error: %v", err)
		}
		if token == "" {
			t.Fatal("Expected a signed token")
		}
		if time.Until(expiresAt) < 59*time.Minute {
			t.Errorf("Expected expiry about an hour out, got %v", expiresAt)
		}

		claims, err := issuer.Verify(token)
		if err != nil {
			t.Fatalf("Verify() returned unexpected error: %v", err)
		}

		if claims.UserID != "user-1" {
			t.Errorf("Expected user 'user-1', got '%s'", claims.UserID)
		}
		if claims.AccountID != "account-1" {
			t.Errorf("Expected account 'account-1', got '%s'", claims.AccountID)
		}
		if claims.Role != "member" {
			t.Errorf("Expected role 'member', got '%s'", claims.Role)
		}
		if claims.Issuer != "rental-portfolio-manager" {
			t.Errorf("Expected issuer 'rental-portfolio-manager', got '%s'", claims.Issuer)
		}
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		foreign := auth.TokenIssuer{Secret: []byte("not-the-secret"), TokenTTL: time.Hour}
		token, _, err := foreign.Sign("user-1", "account-1", "owner")
		if err != nil {
			t.Fatalf("Sign() returned unexpected error: %v", err)
		}

		if _, err := issuer.Verify(token); err == nil {
			t.Error("Expected verification to fail for a foreign signature")
		}
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := auth.TokenIssuer{Secret: []byte("unit-test-secret"), TokenTTL: -time.Minute}
		token, _, err := expired.Sign("user-1", "account-1", "owner")
		if err != nil {
			t.Fatalf("Sign() returned unexpected error: %v", err)
		}

		if _, err := issuer.Verify(token); err == nil {
			t.Error("Expected verification to fail for an expired token")
		}
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		if _, err := issuer.Verify("not.a.token"); err == nil {
			t.Error("Expected verification to fail for malformed input")
		}
	})
}

func TestPasswordHashing(t *testing.T) {
	t.Run("verifies the original password", func(t *testing.T) {
		hash, err := auth.HashPassword("correct horse battery staple")
		if err != nil {
			t.Fatalf("HashPassword() returned unexpected error: %v", err)
		}
		if hash == "correct horse battery staple" {
			t.Fatal("Expected the hash to differ from the plaintext")
		}

		if !auth.CheckPassword(hash, "correct horse battery staple") {
			t.Error("Expected the original password to verify")
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		hash, err := auth.HashPassword("correct horse battery staple")
		if err != nil {
			t.Fatalf("HashPassword() returned unexpected error: %v", err)
		}

		if auth.CheckPassword(hash, "correct horse battery stable") {
			t.Error("Expected a wrong password to fail verification")
		}
	})

	t.Run("hashes are salted", func(t *testing.T) {
		first, err := auth.HashPassword("same password")
		if err != nil {
			t.Fatalf("HashPassword() returned unexpected error: %v", err)
		}
		second, err := auth.HashPassword("same password")
		if err != nil {
			t.Fatalf("HashPassword() returned unexpected error: %v", err)
		}

		if first == second {
			t.Error("Expected distinct hashes for the same password")
		}
	})
}

func TestContextHelpers(t *testing.T) {
	t.Run("round-trips identity through the context", func(t *testing.T) {
		ctx := auth.WithUser(context.Background(), "user-1", "account-1", "member")

		if auth.UserIDFromContext(ctx) != "user-1" {
			t.Errorf("Expected user 'user-1', got '%s'", auth.UserIDFromContext(ctx))
		}
		if auth.AccountIDFromContext(ctx) != "account-1" {
			t.Errorf("Expected account 'account-1', got '%s'", auth.AccountIDFromContext(ctx))
		}
		if auth.RoleFromContext(ctx) != "member" {
			t.Errorf("Expected role 'member', got '%s'", auth.RoleFromContext(ctx))
		}
	})

	t.Run("returns empty strings for an unauthenticated context", func(t *testing.T) {
		ctx := context.Background()

		if auth.UserIDFromContext(ctx) != "" {
			t.Error("Expected empty user ID")
		}
		if auth.AccountIDFromContext(ctx) != "" {
			t.Error("Expected empty account ID")
		}
		if auth.RoleFromContext(ctx) != "" {
			t.Error("Expected empty role")
		}
	})
}
